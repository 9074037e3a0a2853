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

// ResellerUseCase casos de uso para sacoleiras. Admin gestiona todas; una sacoleira solo lee su registro.
type ResellerUseCase struct {
	repo     repository.ResellerRepository
	userRepo repository.UserRepository
}

// NewResellerUseCase construye el caso de uso.
func NewResellerUseCase(repo repository.ResellerRepository, userRepo repository.UserRepository) *ResellerUseCase {
	return &ResellerUseCase{repo: repo, userRepo: userRepo}
}

// Create da de alta una sacoleira, opcionalmente vinculada a un usuario con rol sacoleira.
func (uc *ResellerUseCase) Create(ctx context.Context, id access.Identity, in dto.CreateResellerRequest) (*dto.ResellerResponse, error) {
	if err := access.Authorize(id, access.ActionCreate, access.ResourceReseller); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.checkUserLink(ctx, in.UserID); err != nil {
		return nil, err
	}
	now := time.Now()
	r := &entity.Reseller{
		ID:         uuid.New().String(),
		Name:       name,
		NationalID: strings.TrimSpace(in.NationalID),
		Phone:      strings.TrimSpace(in.Phone),
		Email:      strings.TrimSpace(in.Email),
		Address:    strings.TrimSpace(in.Address),
		UserID:     in.UserID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.repo.Create(ctx, r); err != nil {
		return nil, err
	}
	return toResellerResponse(r), nil
}

// GetByID obtiene una sacoleira. Una identidad sacoleira solo puede pedir la suya (ErrForbidden).
// Devuelve nil, nil si no existe.
func (uc *ResellerUseCase) GetByID(ctx context.Context, id access.Identity, resellerID string) (*dto.ResellerResponse, error) {
	if err := access.Authorize(id, access.ActionRead, access.ResourceReseller); err != nil {
		return nil, err
	}
	scoped, err := access.ScopeReseller(id, resellerID)
	if err != nil {
		return nil, err
	}
	r, err := uc.repo.GetByID(ctx, scoped)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, nil
	}
	return toResellerResponse(r), nil
}

// List lista sacoleiras. Admin ve todas; una sacoleira recibe solo su propio registro.
func (uc *ResellerUseCase) List(ctx context.Context, id access.Identity) ([]dto.ResellerResponse, error) {
	if err := access.Authorize(id, access.ActionRead, access.ResourceReseller); err != nil {
		return nil, err
	}
	scoped, err := access.ScopeReseller(id, "")
	if err != nil {
		return nil, err
	}
	if scoped != "" {
		r, err := uc.repo.GetByID(ctx, scoped)
		if err != nil {
			return nil, err
		}
		if r == nil {
			return []dto.ResellerResponse{}, nil
		}
		return []dto.ResellerResponse{*toResellerResponse(r)}, nil
	}
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ResellerResponse, 0, len(list))
	for _, r := range list {
		out = append(out, *toResellerResponse(r))
	}
	return out, nil
}

// Update actualiza una sacoleira (solo admin). Devuelve nil, nil si no existe.
func (uc *ResellerUseCase) Update(ctx context.Context, id access.Identity, resellerID string, in dto.UpdateResellerRequest) (*dto.ResellerResponse, error) {
	if err := access.Authorize(id, access.ActionUpdate, access.ResourceReseller); err != nil {
		return nil, err
	}
	r, err := uc.repo.GetByID(ctx, resellerID)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, nil
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.ErrInvalidInput
		}
		r.Name = name
	}
	if in.NationalID != nil {
		r.NationalID = strings.TrimSpace(*in.NationalID)
	}
	if in.Phone != nil {
		r.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.Email != nil {
		r.Email = strings.TrimSpace(*in.Email)
	}
	if in.Address != nil {
		r.Address = strings.TrimSpace(*in.Address)
	}
	if in.UserID != nil {
		if err := uc.checkUserLink(ctx, *in.UserID); err != nil {
			return nil, err
		}
		r.UserID = *in.UserID
	}
	r.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, r); err != nil {
		return nil, err
	}
	return toResellerResponse(r), nil
}

// Delete elimina una sacoleira (solo admin). Con lançamentos registrados devuelve ErrConflict.
func (uc *ResellerUseCase) Delete(ctx context.Context, id access.Identity, resellerID string) error {
	if err := access.Authorize(id, access.ActionDelete, access.ResourceReseller); err != nil {
		return err
	}
	r, err := uc.repo.GetByID(ctx, resellerID)
	if err != nil {
		return err
	}
	if r == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(ctx, resellerID)
}

// LinkedResellerID devuelve la sacoleira vinculada hoy al usuario, "" si no tiene.
func (uc *ResellerUseCase) LinkedResellerID(ctx context.Context, userID string) (string, error) {
	r, err := uc.repo.GetByUserID(ctx, userID)
	if err != nil {
		return "", err
	}
	if r == nil {
		return "", nil
	}
	return r.ID, nil
}

// checkUserLink valida que el usuario a vincular exista y tenga rol sacoleira.
func (uc *ResellerUseCase) checkUserLink(ctx context.Context, userID string) error {
	if userID == "" {
		return nil
	}
	u, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if u == nil {
		return domain.ErrNotFound
	}
	if u.Role != entity.RoleSacoleira {
		return domain.ErrInvalidInput
	}
	return nil
}

func toResellerResponse(r *entity.Reseller) *dto.ResellerResponse {
	return &dto.ResellerResponse{
		ID:         r.ID,
		Name:       r.Name,
		NationalID: r.NationalID,
		Phone:      r.Phone,
		Email:      r.Email,
		Address:    r.Address,
		UserID:     r.UserID,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}
