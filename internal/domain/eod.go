package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EODStatus is the overall outcome of an EOD run.
type EODStatus string

const (
	EODSuccess EODStatus = "SUCCESS"
	EODFailed  EODStatus = "FAILED"
)

// EODSummary reports one EOD run.
type EODSummary struct {
	RunID             string
	EODDate           time.Time
	StartTime         time.Time
	EndTime           time.Time
	MovementsPosted   int
	AccrualsGenerated int
	AccrualsPosted    int
	AccountsProcessed int
	AccrualAccounts   int
	GLsProcessed      int
	TotalDebits       decimal.Decimal
	TotalCredits      decimal.Decimal
	Balanced          bool
	Status            EODStatus
	ErrorMessage      string
	NextSystemDate    *time.Time
}

// Fail marks the summary failed with a message.
func (s *EODSummary) Fail(msg string) {
	s.Status = EODFailed
	if s.ErrorMessage == "" {
		s.ErrorMessage = msg
		return
	}
	s.ErrorMessage += "; " + msg
}

// JobStatus is the status of one EOD job log row.
type JobStatus string

const (
	JobRunning JobStatus = "Running"
	JobSuccess JobStatus = "Success"
	JobFailed  JobStatus = "Failed"
)

// EOD job names.
const (
	JobPreEODValidation    = "Pre-EOD Validation"
	JobAccrualGeneration   = "Interest Accrual Transaction Update"
	JobMovementPosting     = "GL Movement Update"
	JobAccrualPosting      = "Interest Accrual GL Movement Update"
	JobAccountBalance      = "Account Balance Update"
	JobAccrualBalance      = "Interest Accrual Account Balance Update"
	JobGLBalance           = "GL Balance Update"
	JobDoubleEntry         = "Double-Entry Validation"
	JobSystemDateIncrement = "System Date Increment"
	JobBOD                 = "BOD Value Date Promotion"
)

// IsEODJob reports whether a job log row belongs to an EOD run rather than
// a BOD run.
func IsEODJob(name string) bool {
	return name != JobBOD
}

// EODJobLog records one job of an EOD run.
type EODJobLog struct {
	ID               string
	RunID            string
	EODDate          time.Time
	JobName          string
	SystemDate       time.Time
	UserID           string
	RecordsProcessed int
	Status           JobStatus
	ErrorMessage     string
	FailedAtStep     string
	StartedAt        time.Time
	EndedAt          *time.Time
}

// ValidationResult is the outcome of the pre-EOD gate.
type ValidationResult struct {
	Valid   bool
	Message string
}

// DoubleEntryResult is the day's debit/credit comparison.
type DoubleEntryResult struct {
	Date         time.Time
	TotalDebits  decimal.Decimal
	TotalCredits decimal.Decimal
	Balanced     bool
}

// Difference is debits minus credits.
func (r *DoubleEntryResult) Difference() decimal.Decimal {
	return r.TotalDebits.Sub(r.TotalCredits)
}

// BatchFailure pairs a failed item with its error.
type BatchFailure[T any] struct {
	Item T
	Err  error
}

// BatchResult partitions a batch run into succeeded, skipped and failed items.
type BatchResult[T any] struct {
	Succeeded []T
	Skipped   []T
	Failed    []BatchFailure[T]
}

// Succeed records a processed item.
func (r *BatchResult[T]) Succeed(item T) {
	r.Succeeded = append(r.Succeeded, item)
}

// Skip records an item left untouched because it was already processed.
func (r *BatchResult[T]) Skip(item T) {
	r.Skipped = append(r.Skipped, item)
}

// Fail records a failed item.
func (r *BatchResult[T]) Fail(item T, err error) {
	r.Failed = append(r.Failed, BatchFailure[T]{Item: item, Err: err})
}

// Processed is the number of succeeded items.
func (r *BatchResult[T]) Processed() int { return len(r.Succeeded) }

// Errored is the number of failed items.
func (r *BatchResult[T]) Errored() int { return len(r.Failed) }
