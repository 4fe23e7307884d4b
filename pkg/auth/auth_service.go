package auth

import (
	"context"
	"crypto/subtle"

	"brewstock/domain"
	"brewstock/internal/utils"
	"brewstock/pkg/jwt"

	"golang.org/x/crypto/bcrypt"
)

type (
	AuthService interface {
		Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error)
	}

	authService struct {
		jwtService   jwt.JWTService
		adminEmail   string
		passwordHash string
	}
)

func NewAuthService(jwtService jwt.JWTService) AuthService {
	return &authService{
		jwtService:   jwtService,
		adminEmail:   utils.GetConfig("ADMIN_EMAIL"),
		passwordHash: utils.GetConfig("ADMIN_PASSWORD_HASH"),
	}
}

func (s *authService) Login(_ context.Context, req domain.LoginRequest) (domain.LoginResponse, error) {
	if subtle.ConstantTimeCompare([]byte(req.Email), []byte(s.adminEmail)) != 1 {
		return domain.LoginResponse{}, domain.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(s.passwordHash), []byte(req.Password)); err != nil {
		return domain.LoginResponse{}, domain.ErrInvalidCredentials
	}

	token := s.jwtService.GenerateTokenUser(s.adminEmail, domain.RoleAdmin)
	return domain.LoginResponse{Token: token, Role: domain.RoleAdmin}, nil
}
