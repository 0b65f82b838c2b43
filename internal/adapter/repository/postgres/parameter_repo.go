package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/corebank/internal/domain"
	"github.com/iho/corebank/internal/infrastructure/postgres/generated"
)

// ParameterRepository implements usecase.ParameterRepository.
type ParameterRepository struct {
	queries *generated.Queries
}

// NewParameterRepository creates a new ParameterRepository.
func NewParameterRepository(pool *pgxpool.Pool) *ParameterRepository {
	return newParameterRepository(pool)
}

func newParameterRepository(db generated.DBTX) *ParameterRepository {
	return &ParameterRepository{queries: generated.New(db)}
}

func (r *ParameterRepository) Get(ctx context.Context, name string) (*domain.Parameter, error) {
	row, err := r.queries.GetParameter(ctx, name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", domain.ErrParameterNotFound, name)
		}
		return nil, err
	}

	return &domain.Parameter{
		Name:      row.Name,
		Value:     row.Value,
		UpdatedBy: row.UpdatedBy,
		UpdatedAt: row.UpdatedAt.Time,
	}, nil
}

func (r *ParameterRepository) Set(ctx context.Context, p *domain.Parameter) error {
	return r.queries.UpsertParameter(ctx, generated.UpsertParameterParams{
		Name:      p.Name,
		Value:     p.Value,
		UpdatedBy: p.UpdatedBy,
		UpdatedAt: timeToPgTimestamptz(p.UpdatedAt),
	})
}
