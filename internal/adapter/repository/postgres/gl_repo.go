package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/corebank/internal/domain"
	"github.com/iho/corebank/internal/infrastructure/postgres/generated"
	"github.com/iho/corebank/internal/usecase"
)

// GLRepository implements usecase.GLRepository.
type GLRepository struct {
	db      generated.DBTX
	queries *generated.Queries
}

// NewGLRepository creates a new GLRepository.
func NewGLRepository(pool *pgxpool.Pool) *GLRepository {
	return newGLRepository(pool)
}

func newGLRepository(db generated.DBTX) *GLRepository {
	return &GLRepository{
		db:      db,
		queries: generated.New(db),
	}
}

// GetByNum retrieves a chart-of-accounts node.
func (r *GLRepository) GetByNum(ctx context.Context, glNum string) (*domain.GLSetup, error) {
	row, err := r.queries.GetGLSetup(ctx, glNum)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", domain.ErrGLNotFound, glNum)
		}

		return nil, err
	}

	return rowToGLSetup(row), nil
}

// Create inserts a GL node. A nil tx writes through the pool.
func (r *GLRepository) Create(ctx context.Context, tx usecase.Transaction, gl *domain.GLSetup) error {
	err := queriesFor(tx, r.db).CreateGLSetup(ctx, generated.CreateGLSetupParams{
		GlNum:       gl.GLNum,
		LayerGlNum:  gl.LayerGLNum,
		LayerID:     int16(gl.LayerID),
		ParentGlNum: textOrNull(gl.ParentGLNum),
		GlName:      gl.GLName,
		CreatedAt:   timeToPgTimestamptz(gl.CreatedAt),
	})
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: %s", domain.ErrGLAlreadyExists, gl.GLNum)
	}

	return err
}

// ListChildren returns the direct children of a GL ordered by number.
func (r *GLRepository) ListChildren(ctx context.Context, parentGLNum string) ([]*domain.GLSetup, error) {
	rows, err := r.queries.ListGLChildren(ctx, textOrNull(parentGLNum))
	if err != nil {
		return nil, err
	}

	gls := make([]*domain.GLSetup, 0, len(rows))
	for _, row := range rows {
		gls = append(gls, rowToGLSetup(row))
	}

	return gls, nil
}

// ExistsByNameAndParent reports whether a sibling already carries glName.
func (r *GLRepository) ExistsByNameAndParent(ctx context.Context, glName, parentGLNum string) (bool, error) {
	return r.queries.ExistsGLByNameAndParent(ctx, generated.ExistsGLByNameAndParentParams{
		GlName:      glName,
		ParentGlNum: textOrNull(parentGLNum),
	})
}

// ExistsByLayerGLNum reports whether a sibling already uses the layer segment.
func (r *GLRepository) ExistsByLayerGLNum(ctx context.Context, parentGLNum, layerGLNum string) (bool, error) {
	return r.queries.ExistsGLByLayerSegment(ctx, generated.ExistsGLByLayerSegmentParams{
		ParentGlNum: textOrNull(parentGLNum),
		LayerGlNum:  layerGLNum,
	})
}

func rowToGLSetup(row generated.GlSetup) *domain.GLSetup {
	return &domain.GLSetup{
		GLNum:       row.GlNum,
		LayerGLNum:  row.LayerGlNum,
		LayerID:     int(row.LayerID),
		ParentGLNum: row.ParentGlNum.String,
		GLName:      row.GlName,
		CreatedAt:   row.CreatedAt.Time,
	}
}

// ProductRepository implements usecase.ProductRepository.
type ProductRepository struct {
	db      generated.DBTX
	queries *generated.Queries
}

// NewProductRepository creates a new ProductRepository.
func NewProductRepository(pool *pgxpool.Pool) *ProductRepository {
	return newProductRepository(pool)
}

func newProductRepository(db generated.DBTX) *ProductRepository {
	return &ProductRepository{
		db:      db,
		queries: generated.New(db),
	}
}

// GetProduct retrieves a product master row.
func (r *ProductRepository) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	row, err := r.queries.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %d", domain.ErrProductNotFound, id)
		}

		return nil, err
	}

	return &domain.Product{
		ID:       row.ID,
		Code:     row.Code,
		Name:     row.Name,
		CumGLNum: row.CumGlNum,
	}, nil
}

// GetSubProduct retrieves a sub-product master row.
func (r *ProductRepository) GetSubProduct(ctx context.Context, id int64) (*domain.SubProduct, error) {
	row, err := r.queries.GetSubProduct(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %d", domain.ErrSubProductNotFound, id)
		}

		return nil, err
	}

	return &domain.SubProduct{
		ID:                              row.ID,
		ProductID:                       row.ProductID,
		Code:                            row.Code,
		Name:                            row.Name,
		CumGLNum:                        row.CumGlNum,
		EffectiveInterestRate:           numericToDecimal(row.EffectiveInterestRate),
		InterestReceivableExpenditureGL: row.InterestReceivableExpenditureGl,
		InterestIncomePayableGL:         row.InterestIncomePayableGl,
	}, nil
}

// CreateSubProduct inserts a sub-product and sets its generated id.
func (r *ProductRepository) CreateSubProduct(ctx context.Context, tx usecase.Transaction, sub *domain.SubProduct) error {
	id, err := queriesFor(tx, r.db).CreateSubProduct(ctx, generated.CreateSubProductParams{
		ProductID:                       sub.ProductID,
		Code:                            sub.Code,
		Name:                            sub.Name,
		CumGlNum:                        sub.CumGLNum,
		EffectiveInterestRate:           decimalToNumeric(sub.EffectiveInterestRate),
		InterestReceivableExpenditureGl: sub.InterestReceivableExpenditureGL,
		InterestIncomePayableGl:         sub.InterestIncomePayableGL,
	})
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s", domain.ErrSubProductExists, sub.Code)
		}
		return err
	}

	sub.ID = id
	return nil
}
