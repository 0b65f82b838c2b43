package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"

	"github.com/iho/corebank/internal/domain"
)

func TestGLRepositoryGetByNumNotFound(t *testing.T) {
	mockPool := newMockPool(t)
	mockPool.ExpectQuery("FROM gl_setup").
		WithArgs("999999999").
		WillReturnError(pgx.ErrNoRows)

	repo := newGLRepository(mockPool)
	_, err := repo.GetByNum(context.Background(), "999999999")
	if !errors.Is(err, domain.ErrGLNotFound) {
		t.Fatalf("expected ErrGLNotFound, got %v", err)
	}

	assertExpectations(t, mockPool)
}

func TestGLRepositoryCreateDuplicate(t *testing.T) {
	mockPool := newMockPool(t)
	mockPool.ExpectExec("INSERT INTO gl_setup").
		WithArgs("110101001", "001", int16(domain.LayerSubProduct), pgxmock.AnyArg(), "Savings", pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: pgErrUniqueViolation})

	repo := newGLRepository(mockPool)
	err := repo.Create(context.Background(), nil, &domain.GLSetup{
		GLNum:       "110101001",
		LayerGLNum:  "001",
		LayerID:     domain.LayerSubProduct,
		ParentGLNum: "110101000",
		GLName:      "Savings",
	})
	if !errors.Is(err, domain.ErrGLAlreadyExists) {
		t.Fatalf("expected ErrGLAlreadyExists, got %v", err)
	}

	assertExpectations(t, mockPool)
}

func TestProductRepositoryCreateSubProduct(t *testing.T) {
	mockPool := newMockPool(t)
	mockPool.ExpectQuery("INSERT INTO sub_products").
		WithArgs(int64(1), "SBBDT", "Savings BDT", "110101001", pgxmock.AnyArg(), "510101001", "410101001").
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(42)))
	mockPool.ExpectQuery("INSERT INTO sub_products").
		WithArgs(int64(1), "SBBDT", "Savings BDT again", "110101001", pgxmock.AnyArg(), "", "").
		WillReturnError(&pgconn.PgError{Code: pgErrUniqueViolation})

	repo := newProductRepository(mockPool)
	sub := &domain.SubProduct{
		ProductID:                       1,
		Code:                            "SBBDT",
		Name:                            "Savings BDT",
		CumGLNum:                        "110101001",
		EffectiveInterestRate:           decimal.RequireFromString("4.5"),
		InterestReceivableExpenditureGL: "510101001",
		InterestIncomePayableGL:         "410101001",
	}
	if err := repo.CreateSubProduct(context.Background(), nil, sub); err != nil {
		t.Fatalf("CreateSubProduct: %v", err)
	}
	if sub.ID != 42 {
		t.Fatalf("expected id 42, got %d", sub.ID)
	}

	err := repo.CreateSubProduct(context.Background(), nil, &domain.SubProduct{
		ProductID: 1,
		Code:      "SBBDT",
		Name:      "Savings BDT again",
		CumGLNum:  "110101001",
	})
	if !errors.Is(err, domain.ErrSubProductExists) {
		t.Fatalf("expected ErrSubProductExists, got %v", err)
	}

	assertExpectations(t, mockPool)
}

func TestTransactionRepositoryUpdateStatusMissing(t *testing.T) {
	mockPool := newMockPool(t)
	mockPool.ExpectExec("UPDATE transactions SET status").
		WithArgs("T1-1", "Verified", pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	repo := newTransactionRepository(mockPool)
	err := repo.UpdateStatus(context.Background(), nil, "T1-1", domain.TranStatusVerified, time.Now())
	if !errors.Is(err, domain.ErrTransactionNotFound) {
		t.Fatalf("expected ErrTransactionNotFound, got %v", err)
	}

	assertExpectations(t, mockPool)
}

func TestTransactionRepositoryCreateInTx(t *testing.T) {
	mockPool := newMockPool(t)
	mockPool.ExpectBegin()
	for _, id := range []string{"T1-1", "T1-2"} {
		mockPool.ExpectExec("INSERT INTO transactions").
			WithArgs(id, "T1", pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
				pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
				pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
	}
	mockPool.ExpectCommit()

	ctx := context.Background()
	tx, err := newTxManagerWithPool(mockPool).Begin(ctx)
	if err != nil {
		t.Fatalf("begin: %v", err)
	}

	amount := decimal.RequireFromString("100")
	legs := []*domain.Transaction{
		{TranID: "T1-1", AccountNo: "A", DrCr: domain.Debit, TranCcy: "BDT", FcyAmt: amount, ExchangeRate: decimal.NewFromInt(1), LcyAmt: amount, Status: domain.TranStatusEntry},
		{TranID: "T1-2", AccountNo: "B", DrCr: domain.Credit, TranCcy: "BDT", FcyAmt: amount, ExchangeRate: decimal.NewFromInt(1), LcyAmt: amount, Status: domain.TranStatusEntry},
	}

	repo := newTransactionRepository(mockPool)
	if err := repo.CreateTx(ctx, tx, legs); err != nil {
		t.Fatalf("CreateTx: %v", err)
	}
	if err := tx.Commit(ctx); err != nil {
		t.Fatalf("commit: %v", err)
	}

	assertExpectations(t, mockPool)
}

func TestBalanceRepositoryLatestMissing(t *testing.T) {
	mockPool := newMockPool(t)
	mockPool.ExpectQuery("FROM account_balances").
		WithArgs("100000001001", pgxmock.AnyArg()).
		WillReturnError(pgx.ErrNoRows)
	mockPool.ExpectQuery("FROM gl_balances").
		WithArgs("110101001", pgxmock.AnyArg()).
		WillReturnError(pgx.ErrNoRows)

	repo := newBalanceRepository(mockPool)
	ctx := context.Background()
	day := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)

	bal, err := repo.LatestAccountBalanceBefore(ctx, "100000001001", day)
	if err != nil || bal != nil {
		t.Fatalf("expected nil balance without error, got %v, %v", bal, err)
	}

	gl, err := repo.LatestGLBalanceBefore(ctx, "110101001", day)
	if err != nil || gl != nil {
		t.Fatalf("expected nil GL balance without error, got %v, %v", gl, err)
	}

	assertExpectations(t, mockPool)
}

func TestSequenceRepositoryLockAccountSeq(t *testing.T) {
	mockPool := newMockPool(t)
	mockPool.ExpectExec("INSERT INTO account_sequences").
		WithArgs("110101001").
		WillReturnResult(pgxmock.NewResult("INSERT", 0))
	mockPool.ExpectQuery("SELECT seq_number FROM account_sequences").
		WithArgs("110101001").
		WillReturnRows(pgxmock.NewRows([]string{"seq_number"}).AddRow(int32(41)))
	mockPool.ExpectExec("UPDATE account_sequences").
		WithArgs("110101001", int32(42), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	repo := newSequenceRepository(mockPool)
	ctx := context.Background()

	seq, err := repo.LockAccountSeq(ctx, nil, "110101001")
	if err != nil {
		t.Fatalf("LockAccountSeq: %v", err)
	}
	if seq != 41 {
		t.Fatalf("expected 41, got %d", seq)
	}

	if err := repo.SetAccountSeq(ctx, nil, "110101001", seq+1, time.Now()); err != nil {
		t.Fatalf("SetAccountSeq: %v", err)
	}

	assertExpectations(t, mockPool)
}

func TestSequenceRepositoryLockKey(t *testing.T) {
	mockPool := newMockPool(t)
	mockPool.ExpectExec("pg_advisory_xact_lock").
		WithArgs(int32(7), int32(2)).
		WillReturnResult(pgxmock.NewResult("SELECT", 1))

	if err := newSequenceRepository(mockPool).LockKey(context.Background(), nil, 7, 2); err != nil {
		t.Fatalf("LockKey: %v", err)
	}

	assertExpectations(t, mockPool)
}

func TestSequenceRepositoryCustomerIDs(t *testing.T) {
	mockPool := newMockPool(t)
	created := time.Date(2025, 1, 15, 9, 0, 0, 0, time.UTC)
	mockPool.ExpectQuery("SELECT MAX\\(customer_id\\)").
		WithArgs(int64(10000000), int64(19999999)).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(nil))
	mockPool.ExpectQuery("generate_series").
		WithArgs(int64(10000000), int64(19999999)).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(10000003)))
	mockPool.ExpectQuery("FROM customer_accounts").
		WithArgs("12345678", int32(8)).
		WillReturnRows(pgxmock.NewRows([]string{"seq"}).AddRow(int32(2)))
	mockPool.ExpectExec("INSERT INTO customers").
		WithArgs(int64(10000003), int16(domain.CustomerIndividual), "Jane", pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	repo := newSequenceRepository(mockPool)
	ctx := context.Background()

	if _, ok, err := repo.MaxCustomerID(ctx, nil, 10000000, 19999999); err != nil || ok {
		t.Fatalf("expected empty range, got ok=%v err=%v", ok, err)
	}
	id, ok, err := repo.FirstFreeCustomerID(ctx, nil, 10000000, 19999999)
	if err != nil || !ok || id != 10000003 {
		t.Fatalf("expected first free id 10000003, got %d ok=%v err=%v", id, ok, err)
	}
	seq, err := repo.MaxCustomerAccountSeq(ctx, nil, "12345678")
	if err != nil || seq != 2 {
		t.Fatalf("expected account seq 2, got %d err=%v", seq, err)
	}
	if err := repo.ReserveCustomerID(ctx, nil, id, domain.CustomerIndividual, "Jane", created); err != nil {
		t.Fatalf("ReserveCustomerID: %v", err)
	}

	assertExpectations(t, mockPool)
}

func TestEODLogRepository(t *testing.T) {
	mockPool := newMockPool(t)
	day := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	started := day.Add(18 * time.Hour)
	ended := started.Add(time.Minute)

	mockPool.ExpectExec("INSERT INTO eod_job_logs").
		WithArgs("J1", "R1", pgxmock.AnyArg(), domain.JobMovementPosting, pgxmock.AnyArg(), "ADMIN",
			int32(0), string(domain.JobRunning), "", "", pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mockPool.ExpectExec("UPDATE eod_job_logs").
		WithArgs("J1", int32(3), string(domain.JobSuccess), "", "", pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mockPool.ExpectQuery("FROM eod_job_logs").
		WithArgs(pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "run_id", "eod_date", "job_name", "system_date", "user_id",
			"records_processed", "status", "error_message", "failed_at_step", "started_at", "ended_at",
		}).
			AddRow("J1", "R1", day, domain.JobMovementPosting, day, "ADMIN", int32(3), "Success", "", "", started, ended).
			AddRow("J2", "R1", day, domain.JobAccountBalance, day, "ADMIN", int32(0), "Running", "", "", ended, nil))

	repo := newEODLogRepository(mockPool)
	ctx := context.Background()

	log := &domain.EODJobLog{
		ID: "J1", RunID: "R1", EODDate: day, JobName: domain.JobMovementPosting, SystemDate: day,
		UserID: "ADMIN", Status: domain.JobRunning, StartedAt: started,
	}
	if err := repo.Create(ctx, log); err != nil {
		t.Fatalf("Create: %v", err)
	}
	log.RecordsProcessed = 3
	log.Status = domain.JobSuccess
	log.EndedAt = &ended
	if err := repo.Finish(ctx, log); err != nil {
		t.Fatalf("Finish: %v", err)
	}

	logs, err := repo.ListByDate(ctx, day)
	if err != nil {
		t.Fatalf("ListByDate: %v", err)
	}
	if len(logs) != 2 {
		t.Fatalf("expected 2 logs, got %d", len(logs))
	}
	if logs[0].RecordsProcessed != 3 || logs[0].Status != domain.JobSuccess || logs[0].EndedAt == nil || !logs[0].EndedAt.Equal(ended) {
		t.Fatalf("unexpected first log %+v", logs[0])
	}
	if logs[1].EndedAt != nil || !logs[1].EODDate.Equal(day) {
		t.Fatalf("expected running job without end time, got %+v", logs[1])
	}

	assertExpectations(t, mockPool)
}

func TestAccrualRepositoryGeneration(t *testing.T) {
	mockPool := newMockPool(t)
	day := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)

	mockPool.ExpectQuery("SELECT DISTINCT account_no FROM interest_accruals").
		WithArgs(pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"account_no"}).AddRow("123456781001"))
	mockPool.ExpectQuery("SUBSTRING\\(accr_tran_id").
		WithArgs(pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"seq"}).AddRow(int32(4)))
	mockPool.ExpectExec("INSERT INTO interest_accruals").
		WithArgs("S20250115000000005-1", "123456781001", pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), "D",
			"510101001", pgxmock.AnyArg(), pgxmock.AnyArg(), "BDT", pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			"Interest Expenditure Accrual - 123456781001", string(domain.AccrualPending)).
		WillReturnError(&pgconn.PgError{Code: pgErrUniqueViolation})
	mockPool.ExpectQuery("FROM account_balance_accruals").
		WithArgs("123456781001", pgxmock.AnyArg()).
		WillReturnError(pgx.ErrNoRows)
	mockPool.ExpectExec("INSERT INTO account_balance_accruals").
		WithArgs("123456781001", pgxmock.AnyArg(), "110101001", "BDT", pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	repo := newAccrualRepository(mockPool)
	ctx := context.Background()

	accounts, err := repo.ListAccountNos(ctx, day)
	if err != nil || len(accounts) != 1 || accounts[0] != "123456781001" {
		t.Fatalf("unexpected accrued accounts %v, %v", accounts, err)
	}

	seq, err := repo.MaxSequence(ctx, day)
	if err != nil || seq != 4 {
		t.Fatalf("expected sequence 4, got %d, %v", seq, err)
	}

	err = repo.CreateAccruals(ctx, nil, []*domain.InterestAccrual{{
		AccrTranID:  domain.AccrualTranID(day, seq+1, 1),
		AccountNo:   "123456781001",
		AccrualDate: day,
		TranDate:    day,
		ValueDate:   day,
		DrCr:        domain.Debit,
		GLAccountNo: "510101001",
		Amount:      decimal.NewFromFloat(1.37),
		TranCcy:     "BDT",
		Narration:   "Interest Expenditure Accrual - 123456781001",
		Status:      domain.AccrualPending,
	}})
	if err == nil || !isUniqueViolation(err) {
		t.Fatalf("expected wrapped unique violation, got %v", err)
	}

	prev, err := repo.LatestBalanceBefore(ctx, "123456781001", day)
	if err != nil || prev != nil {
		t.Fatalf("expected no earlier accrual balance, got %v, %v", prev, err)
	}

	balance := domain.NewAccountBalanceAccrual("123456781001", "110101001", "BDT", day,
		decimal.Zero, decimal.NewFromFloat(1.37), decimal.NewFromFloat(1.37), day)
	if err := repo.UpsertBalance(ctx, nil, balance); err != nil {
		t.Fatalf("UpsertBalance: %v", err)
	}

	assertExpectations(t, mockPool)
}

func TestParameterRepository(t *testing.T) {
	mockPool := newMockPool(t)
	updated := time.Date(2025, 1, 15, 9, 0, 0, 0, time.UTC)
	mockPool.ExpectQuery("FROM parameters WHERE name").
		WithArgs(domain.ParamSystemDate).
		WillReturnRows(pgxmock.NewRows([]string{"name", "value", "updated_by", "updated_at"}).
			AddRow(domain.ParamSystemDate, "2025-01-15", "ADMIN", updated))
	mockPool.ExpectQuery("FROM parameters WHERE name").
		WithArgs("Nope").
		WillReturnError(pgx.ErrNoRows)
	mockPool.ExpectExec("INSERT INTO parameters").
		WithArgs(domain.ParamSystemDate, "2025-01-16", "ADMIN", pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	repo := newParameterRepository(mockPool)
	ctx := context.Background()

	p, err := repo.Get(ctx, domain.ParamSystemDate)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if p.Value != "2025-01-15" || p.UpdatedBy != "ADMIN" {
		t.Fatalf("unexpected parameter %+v", p)
	}

	if _, err := repo.Get(ctx, "Nope"); !errors.Is(err, domain.ErrParameterNotFound) {
		t.Fatalf("expected ErrParameterNotFound, got %v", err)
	}

	err = repo.Set(ctx, &domain.Parameter{Name: domain.ParamSystemDate, Value: "2025-01-16", UpdatedBy: "ADMIN", UpdatedAt: updated})
	if err != nil {
		t.Fatalf("Set: %v", err)
	}

	assertExpectations(t, mockPool)
}

func TestExchangeRateRepositoryErrors(t *testing.T) {
	mockPool := newMockPool(t)
	mockPool.ExpectExec("INSERT INTO exchange_rates").
		WithArgs("USD/BDT", pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			"", pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: pgErrUniqueViolation})
	mockPool.ExpectExec("UPDATE exchange_rates").
		WithArgs("USD/BDT", pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			"", pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mockPool.ExpectQuery("FROM exchange_rates WHERE ccy_pair").
		WithArgs("EUR/BDT", pgxmock.AnyArg()).
		WillReturnError(pgx.ErrNoRows)

	repo := newExchangeRateRepository(mockPool)
	ctx := context.Background()
	rate := &domain.ExchangeRate{
		CcyPair:     "USD/BDT",
		RateDate:    time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
		MidRate:     decimal.RequireFromString("110.5"),
		BuyingRate:  decimal.RequireFromString("110"),
		SellingRate: decimal.RequireFromString("111"),
	}

	if err := repo.Create(ctx, rate); !errors.Is(err, domain.ErrExchangeRateExists) {
		t.Fatalf("Create: expected ErrExchangeRateExists, got %v", err)
	}
	if err := repo.Update(ctx, rate); !errors.Is(err, domain.ErrExchangeRateNotFound) {
		t.Fatalf("Update: expected ErrExchangeRateNotFound, got %v", err)
	}
	if _, err := repo.LatestOnOrBefore(ctx, "EUR/BDT", rate.RateDate); !errors.Is(err, domain.ErrExchangeRateNotFound) {
		t.Fatalf("LatestOnOrBefore: expected ErrExchangeRateNotFound, got %v", err)
	}

	assertExpectations(t, mockPool)
}

func TestValueDateLogRepositoryMarkPostedMissing(t *testing.T) {
	mockPool := newMockPool(t)
	mockPool.ExpectExec("UPDATE value_date_logs").
		WithArgs("T9-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := newValueDateLogRepository(mockPool).MarkPosted(context.Background(), nil, "T9-1")
	if !errors.Is(err, domain.ErrTransactionNotFound) {
		t.Fatalf("expected ErrTransactionNotFound, got %v", err)
	}

	assertExpectations(t, mockPool)
}

func TestAuditRepository(t *testing.T) {
	mockPool := newMockPool(t)
	start := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)

	mockPool.ExpectExec("INSERT INTO audit_logs").
		WithArgs(pgxmock.AnyArg(), "ADMIN", string(domain.AuditActionEODRun), "eod", "2025-01-15", "",
			pgxmock.AnyArg(), pgxmock.AnyArg(), string(domain.AuditStatusSuccess), "", start).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mockPool.ExpectQuery(`FROM audit_logs WHERE user_id = \$1 AND created_at >= \$2 ORDER BY created_at DESC LIMIT \$3`).
		WithArgs("ADMIN", start, 10).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "user_id", "action", "resource_type", "resource_id", "request_id",
			"before_state", "after_state", "status", "error_message", "created_at",
		}).AddRow(
			"01HZX", "ADMIN", "eod.run", "eod", "2025-01-15", "req-1",
			[]byte(`{}`), []byte(`{"status":"SUCCESS"}`), "success", "", start,
		))

	repo := newAuditRepository(mockPool)
	ctx := context.Background()

	log := &domain.AuditLog{
		UserID:       "ADMIN",
		Action:       domain.AuditActionEODRun,
		ResourceType: "eod",
		ResourceID:   "2025-01-15",
		Status:       domain.AuditStatusSuccess,
		CreatedAt:    start,
	}
	if err := repo.Create(ctx, log); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if log.ID == "" {
		t.Fatalf("expected Create to assign an id")
	}

	logs, err := repo.List(ctx, domain.AuditFilter{UserID: "ADMIN", StartDate: &start, Limit: 10})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(logs) != 1 {
		t.Fatalf("expected 1 log, got %d", len(logs))
	}
	if logs[0].Action != domain.AuditActionEODRun || logs[0].AfterState["status"] != "SUCCESS" {
		t.Fatalf("unexpected log %+v", logs[0])
	}

	assertExpectations(t, mockPool)
}
