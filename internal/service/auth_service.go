package service

import (
	"context"
	"errors"
	"time"

	"carhub/internal/config"
	"carhub/internal/dto"
	"carhub/internal/model"
	"carhub/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error)
	CreateAdmin(ctx context.Context, req dto.CreateAdminRequest) (*dto.AdminResponse, error)
	ListAdmins(ctx context.Context, includeInactive bool) ([]dto.AdminResponse, error)
	UpdateAdmin(ctx context.Context, id uuid.UUID, req dto.UpdateAdminRequest) (*dto.AdminResponse, error)
	DeactivateAdmin(ctx context.Context, id uuid.UUID) error
	ReactivateAdmin(ctx context.Context, id uuid.UUID) error
}

type authService struct {
	repo repository.AdminRepository
	cfg  *config.Config
}

func NewAuthService(repo repository.AdminRepository, cfg *config.Config) AuthService {
	return &authService{repo: repo, cfg: cfg}
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	admin, err := s.repo.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	now := time.Now()
	admin.LastLoginAt = &now
	if err := s.repo.Update(ctx, admin); err != nil {
		log.Warn().Err(err).Str("username", admin.Username).Msg("failed to record last login")
	}

	return s.tokenResponse(admin)
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error) {
	token, err := jwt.Parse(refreshToken, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("refresh token invalid or expired")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid claims")
	}
	userIDStr, ok := claims["user_id"].(string)
	if !ok {
		return nil, errors.New("malformed token")
	}
	uid, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil, errors.New("malformed token")
	}

	admin, err := s.repo.FindByID(ctx, uid)
	if err != nil || !admin.Active {
		return nil, errors.New("account not found or inactive")
	}

	return s.tokenResponse(admin)
}

func (s *authService) CreateAdmin(ctx context.Context, req dto.CreateAdminRequest) (*dto.AdminResponse, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
	if err != nil {
		return nil, err
	}
	admin := &model.Admin{
		Username:     req.Username,
		FullName:     req.FullName,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         req.Role,
		Active:       true,
	}
	if err := s.repo.Create(ctx, admin); err != nil {
		return nil, persistErr("create admin", err)
	}
	resp := adminToResponse(admin)
	return &resp, nil
}

func (s *authService) ListAdmins(ctx context.Context, includeInactive bool) ([]dto.AdminResponse, error) {
	var admins []model.Admin
	var err error
	if includeInactive {
		admins, err = s.repo.ListAll(ctx)
	} else {
		admins, err = s.repo.List(ctx)
	}
	if err != nil {
		return nil, persistErr("list admins", err)
	}
	resp := make([]dto.AdminResponse, len(admins))
	for i := range admins {
		resp[i] = adminToResponse(&admins[i])
	}
	return resp, nil
}

func (s *authService) UpdateAdmin(ctx context.Context, id uuid.UUID, req dto.UpdateAdminRequest) (*dto.AdminResponse, error) {
	admin, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	if req.FullName != "" {
		admin.FullName = req.FullName
	}
	if req.Email != nil {
		admin.Email = req.Email
	}
	if req.Role != "" {
		admin.Role = req.Role
	}
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
		if err != nil {
			return nil, err
		}
		admin.PasswordHash = string(hash)
	}
	if err := s.repo.Update(ctx, admin); err != nil {
		return nil, persistErr("update admin", err)
	}
	resp := adminToResponse(admin)
	return &resp, nil
}

func (s *authService) DeactivateAdmin(ctx context.Context, id uuid.UUID) error {
	return s.repo.SoftDelete(ctx, id)
}

func (s *authService) ReactivateAdmin(ctx context.Context, id uuid.UUID) error {
	return s.repo.Reactivate(ctx, id)
}

func (s *authService) tokenResponse(admin *model.Admin) (*dto.LoginResponse, error) {
	accessToken, err := s.generateToken(admin, time.Duration(s.cfg.JWTExpirationHours)*time.Hour)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.generateToken(admin, time.Duration(s.cfg.JWTRefreshHours)*time.Hour)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
		ExpiresIn:    s.cfg.JWTExpirationHours * 3600,
		User:         adminToResponse(admin),
	}, nil
}

func (s *authService) generateToken(admin *model.Admin, duration time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id":  admin.ID.String(),
		"username": admin.Username,
		"role":     admin.Role,
		"exp":      time.Now().Add(duration).Unix(),
		"iat":      time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func adminToResponse(a *model.Admin) dto.AdminResponse {
	return dto.AdminResponse{
		ID:       a.ID.String(),
		Username: a.Username,
		FullName: a.FullName,
		Email:    a.Email,
		Role:     a.Role,
		Active:   a.Active,
	}
}
