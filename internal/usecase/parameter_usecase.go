package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/corebank/internal/domain"
	"github.com/iho/corebank/internal/infrastructure/metrics"
)

// ParameterUseCase reads the parameter store through a cache.
type ParameterUseCase struct {
	repo    ParameterRepository
	cache   Cache
	ttl     time.Duration
	logger  zerolog.Logger
	metrics *metrics.Metrics
}

// NewParameterUseCase creates a new ParameterUseCase. A nil cache reads the
// store directly.
func NewParameterUseCase(repo ParameterRepository, cache Cache, ttl time.Duration, logger zerolog.Logger, m *metrics.Metrics) *ParameterUseCase {
	if ttl <= 0 {
		ttl = ParameterCacheTTL
	}
	return &ParameterUseCase{repo: repo, cache: cache, ttl: ttl, logger: logger, metrics: m}
}

func parameterCacheKey(name string) string {
	return "cache:param:" + name
}

// Get returns the raw value of a parameter.
func (uc *ParameterUseCase) Get(ctx context.Context, name string) (string, error) {
	key := parameterCacheKey(name)
	if uc.cache != nil {
		if v, err := uc.cache.Get(ctx, key); err == nil {
			uc.cacheLookup("hit")
			return v, nil
		}
		uc.cacheLookup("miss")
	}

	p, err := uc.repo.Get(ctx, name)
	if err != nil {
		if errors.Is(err, domain.ErrParameterNotFound) {
			return "", fmt.Errorf("%w: %s", domain.ErrParameterNotFound, name)
		}
		return "", err
	}

	if uc.cache != nil {
		_ = uc.cache.Set(ctx, key, p.Value, uc.ttl)
	}
	return p.Value, nil
}

// Set writes a parameter and drops its cached value.
func (uc *ParameterUseCase) Set(ctx context.Context, name, value, updatedBy string) error {
	err := uc.repo.Set(ctx, &domain.Parameter{
		Name:      name,
		Value:     value,
		UpdatedBy: updatedBy,
		UpdatedAt: time.Now().UTC(),
	})
	if err != nil {
		return err
	}
	if uc.cache != nil {
		_ = uc.cache.Delete(ctx, parameterCacheKey(name))
	}
	return nil
}

// lookup returns the trimmed value and whether it should be parsed.
func (uc *ParameterUseCase) lookup(ctx context.Context, name string) (string, bool) {
	v, err := uc.Get(ctx, name)
	if err != nil {
		if !errors.Is(err, domain.ErrParameterNotFound) {
			uc.logger.Warn().Err(err).Str("parameter", name).Msg("parameter lookup failed, using default")
		}
		return "", false
	}
	return strings.TrimSpace(v), true
}

// Int returns an integer parameter, or def when missing or invalid.
func (uc *ParameterUseCase) Int(ctx context.Context, name string, def int) int {
	v, ok := uc.lookup(ctx, name)
	if !ok {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		uc.logger.Warn().Str("parameter", name).Str("value", v).Int("default", def).Msg("invalid integer parameter")
		return def
	}
	return n
}

// Decimal returns a decimal parameter, or def when missing or invalid.
func (uc *ParameterUseCase) Decimal(ctx context.Context, name string, def decimal.Decimal) decimal.Decimal {
	v, ok := uc.lookup(ctx, name)
	if !ok {
		return def
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		uc.logger.Warn().Str("parameter", name).Str("value", v).Str("default", def.String()).Msg("invalid decimal parameter")
		return def
	}
	return d
}

// Bool returns a boolean parameter, or def when missing or invalid.
func (uc *ParameterUseCase) Bool(ctx context.Context, name string, def bool) bool {
	v, ok := uc.lookup(ctx, name)
	if !ok {
		return def
	}
	switch strings.ToUpper(v) {
	case "Y", "YES", "TRUE", "1":
		return true
	case "N", "NO", "FALSE", "0":
		return false
	}
	uc.logger.Warn().Str("parameter", name).Str("value", v).Bool("default", def).Msg("invalid boolean parameter")
	return def
}

// String returns a string parameter, or def when missing or blank.
func (uc *ParameterUseCase) String(ctx context.Context, name, def string) string {
	v, ok := uc.lookup(ctx, name)
	if !ok || v == "" {
		return def
	}
	return v
}

// Date returns a date parameter. Missing and unparsable values both report
// ErrParameterNotFound.
func (uc *ParameterUseCase) Date(ctx context.Context, name string) (time.Time, error) {
	v, err := uc.Get(ctx, name)
	if err != nil {
		return time.Time{}, err
	}
	d, err := domain.ParseDate(strings.TrimSpace(v))
	if err != nil {
		uc.logger.Warn().Str("parameter", name).Str("value", v).Msg("invalid date parameter")
		return time.Time{}, fmt.Errorf("%w: %s has invalid date %q", domain.ErrParameterNotFound, name, v)
	}
	return d, nil
}

func (uc *ParameterUseCase) cacheLookup(result string) {
	if uc.metrics != nil {
		uc.metrics.CacheLookups.WithLabelValues("parameter", result).Inc()
	}
}

// SystemDateUseCase provides the business date. It never falls back to the
// host clock.
type SystemDateUseCase struct {
	params   *ParameterUseCase
	fallback string
	audit    auditor
	metrics  *metrics.Metrics
}

// NewSystemDateUseCase creates a new SystemDateUseCase. fallback is the
// configured date used when the parameter store has none.
func NewSystemDateUseCase(
	params *ParameterUseCase,
	fallback string,
	auditRepo AuditRepository,
	idGen IDGenerator,
	m *metrics.Metrics,
) *SystemDateUseCase {
	return &SystemDateUseCase{
		params:   params,
		fallback: strings.TrimSpace(fallback),
		audit:    auditor{repo: auditRepo, idGen: idGen},
		metrics:  m,
	}
}

// SystemDate returns the current business date.
func (uc *SystemDateUseCase) SystemDate(ctx context.Context) (time.Time, error) {
	d, err := uc.params.Date(ctx, domain.ParamSystemDate)
	if err == nil {
		return d, nil
	}
	if !errors.Is(err, domain.ErrParameterNotFound) {
		return time.Time{}, err
	}

	if uc.fallback != "" {
		if d, perr := domain.ParseDate(uc.fallback); perr == nil {
			return d, nil
		}
	}
	return time.Time{}, domain.ErrSystemDateNotConfigured
}

// SetSystemDate sets the business date.
func (uc *SystemDateUseCase) SetSystemDate(ctx context.Context, date time.Time, userID string) error {
	date = domain.DateOf(date)
	err := uc.params.Set(ctx, domain.ParamSystemDate, date.Format(domain.DateLayout), userID)
	uc.audit.record(ctx, userID, domain.AuditActionSystemDateSet, "parameter", domain.ParamSystemDate,
		map[string]string{"system_date": date.Format(domain.DateLayout)}, err)
	return err
}

// Advance moves the business date forward by one day and returns it.
func (uc *SystemDateUseCase) Advance(ctx context.Context, userID string) (time.Time, error) {
	current, err := uc.SystemDate(ctx)
	if err != nil {
		return time.Time{}, err
	}

	next := current.AddDate(0, 0, 1)
	if err := uc.SetSystemDate(ctx, next, userID); err != nil {
		return time.Time{}, err
	}

	if uc.metrics != nil {
		uc.metrics.SystemDateAdvances.Inc()
	}
	return next, nil
}
