package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Sacoleiras-api/internal/application/dto"
	"github.com/jhoicas/Sacoleiras-api/internal/application/usecase"
	"github.com/jhoicas/Sacoleiras-api/internal/domain"
	"github.com/jhoicas/Sacoleiras-api/internal/domain/access"
	"github.com/jhoicas/Sacoleiras-api/internal/domain/entity"
	"github.com/jhoicas/Sacoleiras-api/internal/domain/repository"
	"github.com/jhoicas/Sacoleiras-api/internal/infrastructure/memory"
)

var (
	admin = access.Identity{UserID: "u-admin", Role: entity.RoleAdmin}
	ana   = access.Identity{UserID: "u-ana", Role: entity.RoleSacoleira, ResellerID: "r-ana"}
)

func TestCategory_CRUD(t *testing.T) {
	s := memory.NewStore()
	uc := usecase.NewCategoryUseCase(s.Categories(), s)
	ctx := context.Background()

	c, err := uc.Create(ctx, admin, dto.CreateCategoryRequest{Name: "  Bijuterias "})
	require.NoError(t, err)
	assert.Equal(t, "Bijuterias", c.Name)

	_, err = uc.Create(ctx, admin, dto.CreateCategoryRequest{Name: "Bijuterias"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = uc.Create(ctx, admin, dto.CreateCategoryRequest{Name: entity.UncategorizedName})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	up, err := uc.Update(ctx, admin, c.ID, dto.UpdateCategoryRequest{Name: "Acessórios"})
	require.NoError(t, err)
	assert.Equal(t, "Acessórios", up.Name)

	missing, err := uc.Update(ctx, admin, "nope", dto.UpdateCategoryRequest{Name: "X"})
	require.NoError(t, err)
	assert.Nil(t, missing)

	list, err := uc.List(ctx, ana)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, uc.Delete(ctx, admin, c.ID))
	assert.ErrorIs(t, uc.Delete(ctx, admin, c.ID), domain.ErrNotFound)
}

func TestCategory_SacoleiraNoEscribe(t *testing.T) {
	s := memory.NewStore()
	uc := usecase.NewCategoryUseCase(s.Categories(), s)
	ctx := context.Background()

	_, err := uc.Create(ctx, ana, dto.CreateCategoryRequest{Name: "Roupas"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.ErrorIs(t, uc.Delete(ctx, ana, "c1"), domain.ErrForbidden)
}

// recordingCategories cuenta los Delete que llegan al repositorio.
type recordingCategories struct {
	repository.CategoryRepository
	deletes int
}

func (r *recordingCategories) Delete(ctx context.Context, id string) error {
	r.deletes++
	return r.CategoryRepository.Delete(ctx, id)
}

type recordingTx struct {
	store *memory.Store
	cats  *recordingCategories
}

func (tx recordingTx) RunCatalog(_ context.Context, fn func(repository.CategoryRepository, repository.ProductRepository) error) error {
	return fn(tx.cats, tx.store.Products())
}

func TestCategory_DeleteConProductosSeRechazaSinEscribir(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()
	require.NoError(t, s.Categories().Create(ctx, &entity.Category{ID: "c1", Name: "Roupas"}))
	require.NoError(t, s.Products().Create(ctx, &entity.Product{ID: "p1", Name: "Blusa", CategoryID: "c1", Price: decimal.NewFromInt(10)}))

	cats := &recordingCategories{CategoryRepository: s.Categories()}
	uc := usecase.NewCategoryUseCase(cats, recordingTx{store: s, cats: cats})

	err := uc.Delete(ctx, admin, "c1")
	assert.ErrorIs(t, err, domain.ErrCategoryInUse)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Zero(t, cats.deletes)

	still, err := s.Categories().GetByID(ctx, "c1")
	require.NoError(t, err)
	assert.NotNil(t, still)
}
