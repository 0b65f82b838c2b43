package usecase

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/corebank/internal/domain"
	"github.com/iho/corebank/internal/infrastructure/metrics"
)

// DefaultSettlementThreshold applies when no threshold parameter is set.
var DefaultSettlementThreshold = decimal.NewFromInt(50000)

// SettlementAlertUseCase raises alerts for large FX settlement gains and
// losses. Delivery happens downstream of the outbox.
type SettlementAlertUseCase struct {
	params     *ParameterUseCase
	txManager  TransactionManager
	outboxRepo OutboxRepository
	idGen      IDGenerator
	logger     zerolog.Logger
	metrics    *metrics.Metrics
}

// NewSettlementAlertUseCase creates a new SettlementAlertUseCase.
func NewSettlementAlertUseCase(
	params *ParameterUseCase,
	txManager TransactionManager,
	outboxRepo OutboxRepository,
	idGen IDGenerator,
	logger zerolog.Logger,
	m *metrics.Metrics,
) *SettlementAlertUseCase {
	return &SettlementAlertUseCase{
		params:     params,
		txManager:  txManager,
		outboxRepo: outboxRepo,
		idGen:      idGen,
		logger:     logger,
		metrics:    m,
	}
}

// SettlementInput is one realised gain or loss to check.
type SettlementInput struct {
	Kind      domain.SettlementKind
	Amount    decimal.Decimal
	Currency  string
	Reference string
}

// Check returns an alert when amount reaches the threshold for kind.
func (uc *SettlementAlertUseCase) Check(ctx context.Context, kind domain.SettlementKind, amount decimal.Decimal, ccy, ref string) (*domain.SettlementAlert, bool) {
	if !uc.params.Bool(ctx, domain.ParamSettlementAlertsEnabled, true) {
		return nil, false
	}

	param := domain.ParamSettlementGainThreshold
	if kind == domain.SettlementLoss {
		param = domain.ParamSettlementLossThreshold
	}
	threshold := uc.params.Decimal(ctx, param, DefaultSettlementThreshold)

	if amount.Abs().LessThan(threshold) {
		return nil, false
	}

	severity := domain.SeverityFor(amount, threshold)
	alert := &domain.SettlementAlert{
		Kind:           kind,
		Reference:      ref,
		Currency:       ccy,
		Amount:         amount.Abs(),
		Threshold:      threshold,
		Severity:       severity,
		ActionRequired: severity == domain.SeverityCritical,
	}

	if uc.metrics != nil {
		uc.metrics.SettlementAlerts.WithLabelValues(string(kind), string(severity)).Inc()
	}
	uc.logger.Warn().
		Str("kind", string(kind)).
		Str("reference", ref).
		Str("currency", ccy).
		Str("amount", alert.Amount.StringFixed(2)).
		Str("threshold", threshold.StringFixed(2)).
		Str("severity", string(severity)).
		Msg("settlement alert raised")

	uc.publish(ctx, alert)
	return alert, true
}

// CheckBatch checks every input and returns the alerts raised.
func (uc *SettlementAlertUseCase) CheckBatch(ctx context.Context, inputs []SettlementInput) []*domain.SettlementAlert {
	var alerts []*domain.SettlementAlert
	for _, in := range inputs {
		if alert, ok := uc.Check(ctx, in.Kind, in.Amount, in.Currency, in.Reference); ok {
			alerts = append(alerts, alert)
		}
	}
	return alerts
}

func (uc *SettlementAlertUseCase) publish(ctx context.Context, alert *domain.SettlementAlert) {
	if uc.outboxRepo == nil {
		return
	}

	payload := domain.SettlementAlertEvent{
		Kind:           string(alert.Kind),
		Reference:      alert.Reference,
		Currency:       alert.Currency,
		Amount:         alert.Amount.StringFixed(2),
		Threshold:      alert.Threshold.StringFixed(2),
		Severity:       string(alert.Severity),
		ActionRequired: alert.ActionRequired,
	}
	event := &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		AggregateID:   alert.Reference,
		AggregateType: domain.AggregateTypeSettlement,
		EventType:     domain.EventTypeSettlementAlertRaised,
		Payload:       payload.Map(),
		CreatedAt:     time.Now().UTC(),
	}
	if err := writeEvent(ctx, uc.txManager, uc.outboxRepo, event); err != nil {
		uc.logger.Warn().Err(err).Str("reference", alert.Reference).Msg("failed to write settlement alert event")
	}
}
