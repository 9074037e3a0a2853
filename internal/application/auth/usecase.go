package auth

import (
	"context"
	"crypto/subtle"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Sacoleiras-api/internal/application/dto"
	"github.com/jhoicas/Sacoleiras-api/internal/domain"
	"github.com/jhoicas/Sacoleiras-api/internal/domain/entity"
	"github.com/jhoicas/Sacoleiras-api/internal/domain/repository"
	"github.com/jhoicas/Sacoleiras-api/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro y login.
type AuthUseCase struct {
	userRepo     repository.UserRepository
	resellerRepo repository.ResellerRepository
	jwtCfg       JWTConfig
	adminCode    string
}

// NewAuthUseCase construye el caso de uso de auth.
// adminCode vacío deshabilita el registro de administradores.
func NewAuthUseCase(userRepo repository.UserRepository, resellerRepo repository.ResellerRepository, jwtCfg JWTConfig, adminCode string) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, resellerRepo: resellerRepo, jwtCfg: jwtCfg, adminCode: adminCode}
}

// RegisterUser crea un usuario: hashea password con bcrypt y persiste.
// Rol por defecto sacoleira; rol admin exige el código de alta configurado (ErrForbidden si no coincide).
// Devuelve ErrEmailAlreadyExists si el email ya existe.
func (uc *AuthUseCase) RegisterUser(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || len(in.Password) < 8 {
		return nil, domain.ErrInvalidInput
	}
	role := in.Role
	if role == "" {
		role = entity.RoleSacoleira
	}
	switch role {
	case entity.RoleSacoleira:
	case entity.RoleAdmin:
		if !uc.validAdminCode(in.AdminCode) {
			return nil, domain.ErrForbidden
		}
	default:
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = email
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         role,
		Status:       entity.UserStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return toUserResponse(user, ""), nil
}

// Login verifica email/password, genera JWT y retorna token + usuario.
// El token de una sacoleira lleva el id de la sacoleira vinculada (vacío si aún no fue vinculada).
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(in.Email)))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if user.Status != entity.UserStatusActive {
		return nil, domain.ErrForbidden
	}
	var resellerID string
	if user.Role == entity.RoleSacoleira {
		r, err := uc.resellerRepo.GetByUserID(ctx, user.ID)
		if err != nil {
			return nil, err
		}
		if r != nil {
			resellerID = r.ID
		}
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Role, resellerID, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *toUserResponse(user, resellerID),
	}, nil
}

func (uc *AuthUseCase) validAdminCode(code string) bool {
	if uc.adminCode == "" || code == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(code), []byte(uc.adminCode)) == 1
}

func toUserResponse(u *entity.User, resellerID string) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:         u.ID,
		Email:      u.Email,
		Name:       u.Name,
		Role:       u.Role,
		Status:     u.Status,
		ResellerID: resellerID,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}
