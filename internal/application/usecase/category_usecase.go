package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Sacoleiras-api/internal/application/dto"
	"github.com/jhoicas/Sacoleiras-api/internal/domain"
	"github.com/jhoicas/Sacoleiras-api/internal/domain/access"
	"github.com/jhoicas/Sacoleiras-api/internal/domain/entity"
	"github.com/jhoicas/Sacoleiras-api/internal/domain/repository"
)

// CatalogTxRunner ejecuta fn con repos de catálogo atados a una misma transacción.
type CatalogTxRunner interface {
	RunCatalog(ctx context.Context, fn func(
		categories repository.CategoryRepository,
		products repository.ProductRepository,
	) error) error
}

// CategoryUseCase casos de uso CRUD para categorías. Escritura solo admin.
type CategoryUseCase struct {
	repo repository.CategoryRepository
	tx   CatalogTxRunner
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(repo repository.CategoryRepository, tx CatalogTxRunner) *CategoryUseCase {
	return &CategoryUseCase{repo: repo, tx: tx}
}

// Create crea una categoría con nombre único.
func (uc *CategoryUseCase) Create(ctx context.Context, id access.Identity, in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	if err := access.Authorize(id, access.ActionCreate, access.ResourceCategory); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	if name == "" || name == entity.UncategorizedName {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	c := &entity.Category{ID: uuid.New().String(), Name: name, CreatedAt: now, UpdatedAt: now}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return toCategoryResponse(c), nil
}

// List lista todas las categorías.
func (uc *CategoryUseCase) List(ctx context.Context, id access.Identity) ([]dto.CategoryResponse, error) {
	if err := access.Authorize(id, access.ActionRead, access.ResourceCategory); err != nil {
		return nil, err
	}
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		out = append(out, *toCategoryResponse(c))
	}
	return out, nil
}

// Update renombra una categoría. Devuelve nil, nil si no existe.
func (uc *CategoryUseCase) Update(ctx context.Context, id access.Identity, categoryID string, in dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	if err := access.Authorize(id, access.ActionUpdate, access.ResourceCategory); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	if name == "" || name == entity.UncategorizedName {
		return nil, domain.ErrInvalidInput
	}
	c, err := uc.repo.GetByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, nil
	}
	if name != c.Name {
		existing, err := uc.repo.GetByName(ctx, name)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, domain.ErrDuplicate
		}
	}
	c.Name = name
	c.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return toCategoryResponse(c), nil
}

// Delete elimina una categoría. Se rechaza con ErrCategoryInUse si algún producto la referencia;
// en ese caso no se envía ninguna escritura a la base.
func (uc *CategoryUseCase) Delete(ctx context.Context, id access.Identity, categoryID string) error {
	if err := access.Authorize(id, access.ActionDelete, access.ResourceCategory); err != nil {
		return err
	}
	return uc.tx.RunCatalog(ctx, func(categories repository.CategoryRepository, products repository.ProductRepository) error {
		c, err := categories.GetByID(ctx, categoryID)
		if err != nil {
			return err
		}
		if c == nil {
			return domain.ErrNotFound
		}
		n, err := products.CountByCategory(ctx, categoryID)
		if err != nil {
			return err
		}
		if n > 0 {
			return domain.ErrCategoryInUse
		}
		return categories.Delete(ctx, categoryID)
	})
}

func toCategoryResponse(c *entity.Category) *dto.CategoryResponse {
	return &dto.CategoryResponse{
		ID:        c.ID,
		Name:      c.Name,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
