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

// ProductUseCase casos de uso CRUD para productos del catálogo.
type ProductUseCase struct {
	repo         repository.ProductRepository
	categoryRepo repository.CategoryRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, categoryRepo repository.CategoryRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo, categoryRepo: categoryRepo}
}

// Create crea un producto. Precio > 0 con dos decimales como máximo, stock mínimo >= 0;
// la categoría es opcional.
func (uc *ProductUseCase) Create(ctx context.Context, id access.Identity, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if err := access.Authorize(id, access.ActionCreate, access.ResourceProduct); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	if name == "" || !entity.ValidAmount(in.Price) || in.MinStock < 0 {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.checkCategory(ctx, in.CategoryID); err != nil {
		return nil, err
	}
	now := time.Now()
	p := &entity.Product{
		ID:         uuid.New().String(),
		Name:       name,
		CategoryID: in.CategoryID,
		Price:      in.Price,
		MinStock:   in.MinStock,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	// releer para obtener el nombre de categoría resuelto
	created, err := uc.repo.GetByID(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	if created == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(created), nil
}

// GetByID obtiene un producto por ID. Devuelve nil, nil si no existe.
func (uc *ProductUseCase) GetByID(ctx context.Context, id access.Identity, productID string) (*dto.ProductResponse, error) {
	if err := access.Authorize(id, access.ActionRead, access.ResourceProduct); err != nil {
		return nil, err
	}
	p, err := uc.repo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, nil
	}
	return toProductResponse(p), nil
}

// Update actualiza un producto. Devuelve nil, nil si no existe.
func (uc *ProductUseCase) Update(ctx context.Context, id access.Identity, productID string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if err := access.Authorize(id, access.ActionUpdate, access.ResourceProduct); err != nil {
		return nil, err
	}
	p, err := uc.repo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, nil
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.ErrInvalidInput
		}
		p.Name = name
	}
	if in.CategoryID != nil {
		if err := uc.checkCategory(ctx, *in.CategoryID); err != nil {
			return nil, err
		}
		p.CategoryID = *in.CategoryID
	}
	if in.Price != nil {
		if !entity.ValidAmount(*in.Price) {
			return nil, domain.ErrInvalidInput
		}
		p.Price = *in.Price
	}
	if in.MinStock != nil {
		if *in.MinStock < 0 {
			return nil, domain.ErrInvalidInput
		}
		p.MinStock = *in.MinStock
	}
	p.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	updated, err := uc.repo.GetByID(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, nil
	}
	return toProductResponse(updated), nil
}

// List lista productos con paginación.
func (uc *ProductUseCase) List(ctx context.Context, id access.Identity, limit, offset int) (*dto.ProductListResponse, error) {
	if err := access.Authorize(id, access.ActionRead, access.ResourceProduct); err != nil {
		return nil, err
	}
	list, err := uc.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Delete elimina un producto. Un producto con lançamentos no puede eliminarse (ErrConflict).
func (uc *ProductUseCase) Delete(ctx context.Context, id access.Identity, productID string) error {
	if err := access.Authorize(id, access.ActionDelete, access.ResourceProduct); err != nil {
		return err
	}
	p, err := uc.repo.GetByID(ctx, productID)
	if err != nil {
		return err
	}
	if p == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(ctx, productID)
}

func (uc *ProductUseCase) checkCategory(ctx context.Context, categoryID string) error {
	if categoryID == "" {
		return nil
	}
	c, err := uc.categoryRepo.GetByID(ctx, categoryID)
	if err != nil {
		return err
	}
	if c == nil {
		return domain.ErrNotFound
	}
	return nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	category := p.CategoryName
	if category == "" {
		category = entity.UncategorizedName
	}
	return &dto.ProductResponse{
		ID:         p.ID,
		Name:       p.Name,
		CategoryID: p.CategoryID,
		Category:   category,
		Price:      p.Price,
		MinStock:   p.MinStock,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}
