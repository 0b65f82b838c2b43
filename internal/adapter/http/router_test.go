package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/corebank/internal/adapter/http/handler"
	apimiddleware "github.com/iho/corebank/internal/adapter/http/middleware"
	"github.com/iho/corebank/internal/domain"
	"github.com/iho/corebank/internal/infrastructure/metrics"
	"github.com/iho/corebank/internal/usecase"
	"github.com/iho/corebank/internal/usecase/mocks"
)

func TestNewRouter_HealthEndpointAvailable(t *testing.T) {
	router := NewRouter(newRouterConfig())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected /health to return 200, got %d", rec.Code)
	}
}

func TestNewRouter_RateLimiterBlocksExcessRequests(t *testing.T) {
	rl := apimiddleware.NewRateLimiter(1, 1, nil)
	router := NewRouter(newRouterConfig(func(cfg *RouterConfig) {
		cfg.RateLimiter = rl
	}))

	req1 := httptest.NewRequest(http.MethodGet, "/health", nil)
	req1.RemoteAddr = "1.2.3.4:1234"
	rec1 := httptest.NewRecorder()
	router.ServeHTTP(rec1, req1)
	if rec1.Code != http.StatusOK {
		t.Fatalf("expected first request to succeed, got %d", rec1.Code)
	}

	req2 := httptest.NewRequest(http.MethodGet, "/health", nil)
	req2.RemoteAddr = "1.2.3.4:1234"
	rec2 := httptest.NewRecorder()
	router.ServeHTTP(rec2, req2)
	if rec2.Code != http.StatusTooManyRequests {
		t.Fatalf("expected second request to be throttled, got %d", rec2.Code)
	}
}

func TestNewRouter_IdempotencyMiddlewareInvokesStore(t *testing.T) {
	store := mocks.NewMockIdempotencyStore()
	checked := false
	store.CheckAndSetFunc = func(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
		checked = true
		if ttl != time.Hour {
			t.Errorf("expected configured TTL, got %s", ttl)
		}
		return false, nil, nil
	}
	router := NewRouter(newRouterConfig(func(cfg *RouterConfig) {
		cfg.IdempotencyStore = store
		cfg.IdempotencyTTL = time.Hour
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/eod/run", nil)
	req.Header.Set(handler.UserIDHeader, "ADMIN")
	req.Header.Set(apimiddleware.IdempotencyKeyHeader, "key-123")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if !checked {
		t.Fatalf("expected idempotency store to be used")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestNewRouter_MetricsEndpoint(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	router := NewRouter(newRouterConfig(func(cfg *RouterConfig) {
		cfg.Metrics = m
		cfg.Gatherer = reg
	}))

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/system-date", nil))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected /metrics to return 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `corebank_http_requests_total{method="GET",path="/api/v1/system-date",status="200"} 1`) {
		t.Fatalf("expected request counter in exposition, got:\n%s", rec.Body.String())
	}
}

func TestNewRouter_RegistersKeyRoutes(t *testing.T) {
	router := NewRouter(newRouterConfig())

	chiRoutes, ok := router.(chi.Router)
	if !ok {
		t.Fatal("router does not implement chi.Routes")
	}

	seen := map[string]bool{}
	if err := chi.Walk(chiRoutes, func(method string, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		seen[method+" "+route] = true
		return nil
	}); err != nil {
		t.Fatalf("walk failed: %v", err)
	}

	expected := []string{
		"GET /health",
		"GET /ready",
		"GET /metrics",
		"POST /api/v1/eod/run",
		"GET /api/v1/eod/{date}",
		"POST /api/v1/bod/run",
		"POST /api/v1/batches/movements",
		"POST /api/v1/batches/accruals",
		"POST /api/v1/transactions/",
		"GET /api/v1/transactions/{id}",
		"POST /api/v1/transactions/{id}/verify",
		"POST /api/v1/accounts/customer",
		"POST /api/v1/accounts/office",
		"POST /api/v1/accounts/generic-number",
		"GET /api/v1/accounts/{accountNo}",
		"POST /api/v1/customers/id",
		"POST /api/v1/gl",
		"GET /api/v1/gl/{glNum}",
		"GET /api/v1/gl/{glNum}/path",
		"GET /api/v1/gl/{glNum}/children",
		"POST /api/v1/sub-products",
		"POST /api/v1/rates/",
		"PUT /api/v1/rates/",
		"GET /api/v1/rates/convert",
		"GET /api/v1/system-date",
		"PUT /api/v1/system-date",
		"POST /api/v1/settlements/check",
	}

	for _, route := range expected {
		if !seen[route] {
			t.Fatalf("expected route %s to be registered", route)
		}
	}
}

func newRouterConfig(opts ...func(*RouterConfig)) RouterConfig {
	clock := stubClock{}
	cfg := RouterConfig{
		HealthHandler:      handler.NewHealthHandler(nil, nil),
		BatchHandler:       handler.NewBatchHandler(handler.BatchServices{EOD: stubEOD{}, BOD: stubBatch{}, Movements: stubBatch{}, Accruals: stubAccruals{}, Clock: clock}),
		TransactionHandler: handler.NewTransactionHandler(stubTransactions{}),
		AccountHandler:     handler.NewAccountHandler(stubAccounts{}, stubAccounts{}),
		GLHandler:          handler.NewGLHandler(stubGL{}, stubGL{}),
		RateHandler:        handler.NewRateHandler(stubRates{}, clock),
		SystemDateHandler:  handler.NewSystemDateHandler(clock),
		SettlementHandler:  handler.NewSettlementHandler(stubSettlements{}),
		Gatherer:           prometheus.NewRegistry(),
		Logger:             zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

var routerDate = time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)

type stubClock struct{}

func (stubClock) SystemDate(context.Context) (time.Time, error) { return routerDate, nil }

func (stubClock) SetSystemDate(context.Context, time.Time, string) error { return nil }

type stubEOD struct{}

func (stubEOD) Run(ctx context.Context, userID string) (*domain.EODSummary, error) {
	return &domain.EODSummary{EODDate: routerDate, Status: domain.EODSuccess, Balanced: true}, nil
}

func (stubEOD) Summary(ctx context.Context, date time.Time) (*domain.EODSummary, error) {
	return &domain.EODSummary{EODDate: date, Status: domain.EODSuccess}, nil
}

type stubBatch struct{}

func (stubBatch) Run(context.Context, string) (*domain.BatchResult[*domain.Transaction], error) {
	return &domain.BatchResult[*domain.Transaction]{}, nil
}

func (stubBatch) Post(context.Context, time.Time) (*domain.BatchResult[*domain.Transaction], error) {
	return &domain.BatchResult[*domain.Transaction]{}, nil
}

type stubAccruals struct{}

func (stubAccruals) Post(context.Context, time.Time) (*domain.BatchResult[*domain.InterestAccrual], error) {
	return &domain.BatchResult[*domain.InterestAccrual]{}, nil
}

type stubTransactions struct{}

func (stubTransactions) Create(context.Context, usecase.CreateTransactionInput) ([]*domain.Transaction, error) {
	return nil, nil
}

func (stubTransactions) Get(context.Context, string) ([]*domain.Transaction, error) { return nil, nil }

func (stubTransactions) Verify(context.Context, string, string) ([]*domain.Transaction, error) {
	return nil, nil
}

type stubAccounts struct{}

func (stubAccounts) OpenCustomerAccount(context.Context, usecase.OpenCustomerAccountInput) (*domain.CustomerAccount, error) {
	return &domain.CustomerAccount{}, nil
}

func (stubAccounts) OpenOfficeAccount(context.Context, usecase.OpenOfficeAccountInput) (*domain.OfficeAccount, error) {
	return &domain.OfficeAccount{}, nil
}

func (stubAccounts) AllocateCustomerID(context.Context, usecase.AllocateCustomerIDInput) (int64, error) {
	return 10000001, nil
}

func (stubAccounts) AllocateGenericAccountNo(_ context.Context, in usecase.AllocateGenericAccountNoInput) (string, error) {
	return in.GLNum + "001", nil
}

func (stubAccounts) Info(_ context.Context, accountNo string) (*domain.AccountInfo, error) {
	return &domain.AccountInfo{AccountNo: accountNo}, nil
}

type stubGL struct{}

func (stubGL) Create(_ context.Context, in usecase.CreateGLInput) (*domain.GLSetup, error) {
	return &domain.GLSetup{GLNum: in.GLNum}, nil
}

func (stubGL) CreateSubProduct(_ context.Context, in usecase.CreateSubProductInput) (*domain.SubProduct, error) {
	return &domain.SubProduct{Code: in.Code}, nil
}

func (stubGL) Path(context.Context, string) ([]*domain.GLSetup, error) { return nil, nil }

func (stubGL) Children(context.Context, string) ([]*domain.GLSetup, error) { return nil, nil }

func (stubGL) Profile(_ context.Context, glNum string) (*domain.GLProfile, error) {
	return &domain.GLProfile{GL: &domain.GLSetup{GLNum: glNum}}, nil
}

type stubRates struct{}

func (stubRates) CreateRate(context.Context, usecase.RateInput) (*domain.ExchangeRate, error) {
	return &domain.ExchangeRate{}, nil
}

func (stubRates) UpdateRate(context.Context, usecase.RateInput) (*domain.ExchangeRate, error) {
	return &domain.ExchangeRate{}, nil
}

func (stubRates) ConvertToLCY(_ context.Context, amount decimal.Decimal, _ string, _ time.Time) (decimal.Decimal, decimal.Decimal, error) {
	return amount, decimal.NewFromInt(1), nil
}

func (stubRates) LocalCurrency() string { return "BDT" }

type stubSettlements struct{}

func (stubSettlements) CheckBatch(context.Context, []usecase.SettlementInput) []*domain.SettlementAlert {
	return nil
}
