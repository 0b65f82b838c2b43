package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/corebank/internal/domain"
)

// maxHierarchyDepth is the number of layers in the chart of accounts.
const maxHierarchyDepth = domain.LayerSubProduct + 1

// GLHierarchyUseCase resolves GL ancestry.
type GLHierarchyUseCase struct {
	glRepo GLRepository
}

// NewGLHierarchyUseCase creates a new GLHierarchyUseCase.
func NewGLHierarchyUseCase(glRepo GLRepository) *GLHierarchyUseCase {
	return &GLHierarchyUseCase{glRepo: glRepo}
}

func (uc *GLHierarchyUseCase) get(ctx context.Context, glNum string) (*domain.GLSetup, error) {
	gl, err := uc.glRepo.GetByNum(ctx, glNum)
	if err != nil {
		if errors.Is(err, domain.ErrGLNotFound) {
			return nil, fmt.Errorf("%w: %s", domain.ErrGLNotFound, glNum)
		}
		return nil, err
	}
	return gl, nil
}

// Path returns the chain from the root down to glNum.
func (uc *GLHierarchyUseCase) Path(ctx context.Context, glNum string) ([]*domain.GLSetup, error) {
	chain := make([]*domain.GLSetup, 0, maxHierarchyDepth)
	current := glNum

	for {
		if len(chain) == maxHierarchyDepth {
			return nil, fmt.Errorf("%w: %s is more than %d layers deep", domain.ErrGLHierarchyInvalid, glNum, maxHierarchyDepth)
		}

		gl, err := uc.get(ctx, current)
		if err != nil {
			return nil, err
		}
		chain = append(chain, gl)

		if gl.IsRoot() || gl.ParentGLNum == "" {
			break
		}
		current = gl.ParentGLNum
	}

	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain, nil
}

// Layer3Parent walks up from glNum to its product-layer ancestor. It returns
// the GL itself when it is a product GL and (nil, nil) when the chain ends
// without reaching layer 3.
func (uc *GLHierarchyUseCase) Layer3Parent(ctx context.Context, glNum string) (*domain.GLSetup, error) {
	current := glNum

	for steps := 0; steps < maxHierarchyDepth; steps++ {
		gl, err := uc.get(ctx, current)
		if err != nil {
			return nil, err
		}

		switch {
		case gl.LayerID == domain.LayerProduct:
			return gl, nil
		case gl.LayerID < domain.LayerProduct, gl.ParentGLNum == "":
			return nil, nil
		}
		current = gl.ParentGLNum
	}

	return nil, fmt.Errorf("%w: %s", domain.ErrGLHierarchyInvalid, glNum)
}

func (uc *GLHierarchyUseCase) layer3Is(ctx context.Context, glNum string, codes ...string) (bool, error) {
	parent, err := uc.Layer3Parent(ctx, glNum)
	if err != nil || parent == nil {
		return false, err
	}
	for _, code := range codes {
		if parent.GLNum == code {
			return true, nil
		}
	}
	return false, nil
}

// IsOverdraft reports whether glNum sits under either overdraft product GL.
func (uc *GLHierarchyUseCase) IsOverdraft(ctx context.Context, glNum string) (bool, error) {
	return uc.layer3Is(ctx, glNum, domain.OverdraftGL, domain.OverdraftInterestIncomeGL)
}

// IsOverdraftLiability reports whether glNum sits under the overdraft product GL.
func (uc *GLHierarchyUseCase) IsOverdraftLiability(ctx context.Context, glNum string) (bool, error) {
	return uc.layer3Is(ctx, glNum, domain.OverdraftGL)
}

// IsOverdraftAsset reports whether glNum sits under the overdraft interest income GL.
func (uc *GLHierarchyUseCase) IsOverdraftAsset(ctx context.Context, glNum string) (bool, error) {
	return uc.layer3Is(ctx, glNum, domain.OverdraftInterestIncomeGL)
}

// Profile returns glNum with its overdraft classification.
func (uc *GLHierarchyUseCase) Profile(ctx context.Context, glNum string) (*domain.GLProfile, error) {
	gl, err := uc.get(ctx, glNum)
	if err != nil {
		return nil, err
	}
	liability, err := uc.IsOverdraftLiability(ctx, glNum)
	if err != nil {
		return nil, err
	}
	asset, err := uc.IsOverdraftAsset(ctx, glNum)
	if err != nil {
		return nil, err
	}
	return &domain.GLProfile{GL: gl, OverdraftLiability: liability, OverdraftAsset: asset}, nil
}

// Children lists the direct children of glNum.
func (uc *GLHierarchyUseCase) Children(ctx context.Context, glNum string) ([]*domain.GLSetup, error) {
	if _, err := uc.get(ctx, glNum); err != nil {
		return nil, err
	}
	return uc.glRepo.ListChildren(ctx, glNum)
}

// GLSetupUseCase validates and creates chart-of-accounts nodes and the
// sub-products mapped onto them.
type GLSetupUseCase struct {
	txManager   TransactionManager
	glRepo      GLRepository
	productRepo ProductRepository
	audit       auditor
}

// NewGLSetupUseCase creates a new GLSetupUseCase.
func NewGLSetupUseCase(
	txManager TransactionManager,
	glRepo GLRepository,
	productRepo ProductRepository,
	auditRepo AuditRepository,
	idGen IDGenerator,
) *GLSetupUseCase {
	return &GLSetupUseCase{
		txManager:   txManager,
		glRepo:      glRepo,
		productRepo: productRepo,
		audit:       auditor{repo: auditRepo, idGen: idGen},
	}
}

// CreateGLInput represents input for creating a GL node.
type CreateGLInput struct {
	GLNum       string `validate:"required,len=9,numeric"`
	LayerGLNum  string `validate:"required,numeric,max=9"`
	LayerID     int    `validate:"min=0,max=4"`
	ParentGLNum string `validate:"omitempty,len=9,numeric"`
	GLName      string `validate:"required,max=100"`
	CreatedBy   string
}

// Create validates and stores a new GL node.
func (uc *GLSetupUseCase) Create(ctx context.Context, input CreateGLInput) (*domain.GLSetup, error) {
	if err := validateInput(input, domain.ErrInvalidGLSetup); err != nil {
		return nil, err
	}

	gl := &domain.GLSetup{
		GLNum:       input.GLNum,
		LayerGLNum:  input.LayerGLNum,
		LayerID:     input.LayerID,
		ParentGLNum: input.ParentGLNum,
		GLName:      input.GLName,
		CreatedAt:   time.Now().UTC(),
	}

	err := uc.create(ctx, gl)
	uc.audit.record(ctx, input.CreatedBy, domain.AuditActionGLCreate, "gl", gl.GLNum, gl, err)
	if err != nil {
		return nil, err
	}
	return gl, nil
}

func (uc *GLSetupUseCase) create(ctx context.Context, gl *domain.GLSetup) error {
	if err := uc.ValidateSetup(ctx, gl); err != nil {
		return err
	}

	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	if err := uc.glRepo.Create(txCtx, tx, gl); err != nil {
		return err
	}

	return tx.Commit(txCtx)
}

// CreateSubProductInput represents input for creating a sub-product.
type CreateSubProductInput struct {
	ProductID                       int64  `validate:"required,min=1"`
	Code                            string `validate:"required,max=20"`
	Name                            string `validate:"required,max=100"`
	CumGLNum                        string `validate:"required,len=9,numeric"`
	EffectiveInterestRate           decimal.Decimal
	InterestReceivableExpenditureGL string `validate:"omitempty,len=9,numeric"`
	InterestIncomePayableGL         string `validate:"omitempty,len=9,numeric"`
	CreatedBy                       string
}

// CreateSubProduct stores a sub-product once its GL is confirmed to be a
// layer-4 child of the product's GL and its interest GLs exist.
func (uc *GLSetupUseCase) CreateSubProduct(ctx context.Context, input CreateSubProductInput) (*domain.SubProduct, error) {
	if err := validateInput(input, domain.ErrInvalidGLSetup); err != nil {
		return nil, err
	}
	if input.EffectiveInterestRate.IsNegative() {
		return nil, fmt.Errorf("%w: interest rate %s is negative", domain.ErrInvalidGLSetup, input.EffectiveInterestRate)
	}

	sub := &domain.SubProduct{
		ProductID:                       input.ProductID,
		Code:                            input.Code,
		Name:                            input.Name,
		CumGLNum:                        input.CumGLNum,
		EffectiveInterestRate:           input.EffectiveInterestRate,
		InterestReceivableExpenditureGL: input.InterestReceivableExpenditureGL,
		InterestIncomePayableGL:         input.InterestIncomePayableGL,
	}

	err := uc.createSubProduct(ctx, sub)
	uc.audit.record(ctx, input.CreatedBy, domain.AuditActionSubProductCreate, "sub_product", sub.Code, sub, err)
	if err != nil {
		return nil, err
	}
	return sub, nil
}

func (uc *GLSetupUseCase) createSubProduct(ctx context.Context, sub *domain.SubProduct) error {
	product, err := uc.productRepo.GetProduct(ctx, sub.ProductID)
	if err != nil {
		return err
	}
	if err := uc.ValidateSubProductGL(ctx, product.CumGLNum, sub.CumGLNum); err != nil {
		return err
	}
	for _, glNum := range []string{sub.InterestReceivableExpenditureGL, sub.InterestIncomePayableGL} {
		if glNum == "" {
			continue
		}
		if _, err := uc.glRepo.GetByNum(ctx, glNum); err != nil {
			if errors.Is(err, domain.ErrGLNotFound) {
				return fmt.Errorf("%w: interest GL %s", domain.ErrGLNotFound, glNum)
			}
			return err
		}
	}

	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	if err := uc.productRepo.CreateSubProduct(txCtx, tx, sub); err != nil {
		return err
	}

	return tx.Commit(txCtx)
}

// ValidateSetup checks a GL node against the layer rules and its siblings.
func (uc *GLSetupUseCase) ValidateSetup(ctx context.Context, gl *domain.GLSetup) error {
	segLen, ok := domain.SegmentLength(gl.LayerID)
	if !ok {
		return fmt.Errorf("%w: layer %d", domain.ErrInvalidGLSetup, gl.LayerID)
	}
	if len(gl.LayerGLNum) != segLen || !domain.IsDigits(gl.LayerGLNum) {
		return fmt.Errorf("%w: layer %d needs a %d-digit layer GL, got %q", domain.ErrInvalidGLSetup, gl.LayerID, segLen, gl.LayerGLNum)
	}
	if len(gl.GLNum) != domain.GLNumLength || !domain.IsDigits(gl.GLNum) {
		return fmt.Errorf("%w: GL number %q must be %d digits", domain.ErrInvalidGLSetup, gl.GLNum, domain.GLNumLength)
	}

	if _, err := uc.glRepo.GetByNum(ctx, gl.GLNum); err == nil {
		return fmt.Errorf("%w: %s", domain.ErrGLAlreadyExists, gl.GLNum)
	} else if !errors.Is(err, domain.ErrGLNotFound) {
		return err
	}

	if gl.LayerID == domain.LayerRoot {
		if gl.ParentGLNum != "" {
			return fmt.Errorf("%w: layer 0 GL cannot have a parent", domain.ErrInvalidGLSetup)
		}
		if gl.GLNum != gl.LayerGLNum {
			return fmt.Errorf("%w: layer 0 GL number must equal its layer GL", domain.ErrInvalidGLSetup)
		}
		return nil
	}

	if gl.ParentGLNum == "" {
		return fmt.Errorf("%w: layer %d GL needs a parent", domain.ErrInvalidGLSetup, gl.LayerID)
	}
	parent, err := uc.glRepo.GetByNum(ctx, gl.ParentGLNum)
	if err != nil {
		if errors.Is(err, domain.ErrGLNotFound) {
			return fmt.Errorf("%w: parent %s does not exist", domain.ErrInvalidGLSetup, gl.ParentGLNum)
		}
		return err
	}
	if parent.LayerID != gl.LayerID-1 {
		return fmt.Errorf("%w: parent %s is layer %d, expected %d", domain.ErrInvalidGLSetup, parent.GLNum, parent.LayerID, gl.LayerID-1)
	}

	composed, err := domain.ComposeGLNum(parent.GLNum, gl.LayerGLNum)
	if err != nil {
		return err
	}
	if composed != gl.GLNum {
		return fmt.Errorf("%w: expected GL number %s from parent %s and layer GL %s", domain.ErrInvalidGLSetup, composed, parent.GLNum, gl.LayerGLNum)
	}

	dupName, err := uc.glRepo.ExistsByNameAndParent(ctx, gl.GLName, gl.ParentGLNum)
	if err != nil {
		return err
	}
	if dupName {
		return fmt.Errorf("%w: name %q already used under %s", domain.ErrGLAlreadyExists, gl.GLName, gl.ParentGLNum)
	}

	dupLayer, err := uc.glRepo.ExistsByLayerGLNum(ctx, gl.ParentGLNum, gl.LayerGLNum)
	if err != nil {
		return err
	}
	if dupLayer {
		return fmt.Errorf("%w: layer GL %s already used under %s", domain.ErrGLAlreadyExists, gl.LayerGLNum, gl.ParentGLNum)
	}

	return nil
}

// ValidateProductGL checks glNum is an existing layer-3 GL.
func (uc *GLSetupUseCase) ValidateProductGL(ctx context.Context, glNum string) error {
	gl, err := uc.glRepo.GetByNum(ctx, glNum)
	if err != nil {
		if errors.Is(err, domain.ErrGLNotFound) {
			return fmt.Errorf("%w: %s", domain.ErrGLNotFound, glNum)
		}
		return err
	}
	if gl.LayerID != domain.LayerProduct {
		return fmt.Errorf("%w: product GL %s is layer %d", domain.ErrInvalidGLSetup, glNum, gl.LayerID)
	}
	return nil
}

// ValidateSubProductGL checks subProductGL is a layer-4 child of productGL.
func (uc *GLSetupUseCase) ValidateSubProductGL(ctx context.Context, productGL, subProductGL string) error {
	if err := uc.ValidateProductGL(ctx, productGL); err != nil {
		return err
	}

	gl, err := uc.glRepo.GetByNum(ctx, subProductGL)
	if err != nil {
		if errors.Is(err, domain.ErrGLNotFound) {
			return fmt.Errorf("%w: %s", domain.ErrGLNotFound, subProductGL)
		}
		return err
	}
	if gl.LayerID != domain.LayerSubProduct {
		return fmt.Errorf("%w: sub-product GL %s is layer %d", domain.ErrInvalidGLSetup, subProductGL, gl.LayerID)
	}
	if gl.ParentGLNum != productGL {
		return fmt.Errorf("%w: sub-product GL %s is not under product GL %s", domain.ErrInvalidGLSetup, subProductGL, productGL)
	}
	return nil
}
