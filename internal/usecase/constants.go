package usecase

import "time"

const (
	// DefaultTransactionTimeout is the maximum duration for a database transaction
	// This prevents long-running transactions from blocking tables
	DefaultTransactionTimeout = 10 * time.Second

	// MaxPostingAmount is the maximum LCY amount of one leg (in decimal string)
	MaxPostingAmount = "1000000000000"

	// IdempotencyKeyTTL is how long idempotency keys are cached
	IdempotencyKeyTTL = 24 * time.Hour

	// ParameterCacheTTL bounds how stale a cached parameter may be
	ParameterCacheTTL = 5 * time.Minute

	// RateCacheTTL bounds how stale a cached exchange rate may be
	RateCacheTTL = time.Hour

	// BatchLockTTL caps how long an EOD or BOD lock survives a crashed holder
	BatchLockTTL = 30 * time.Minute

	// Default value-date window in days around the system date
	DefaultPastValueDateLimitDays   = 90
	DefaultFutureValueDateLimitDays = 30

	// Batch lock keys
	LockKeyEOD = "eod"
	LockKeyBOD = "bod"
)

func lockTTL(d time.Duration) time.Duration {
	if d <= 0 {
		return BatchLockTTL
	}
	return d
}
