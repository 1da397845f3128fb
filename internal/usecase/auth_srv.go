package usecase

import (
	"context"
	"fmt"
	"time"

	"cinema-reservation/internal/data/repository"
	"cinema-reservation/internal/dto/request"
	"cinema-reservation/internal/dto/response"
	"cinema-reservation/pkg/utils"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type AuthService interface {
	Login(ctx context.Context, req *request.Login) (*response.Login, error)
}

type authService struct {
	users  repository.UserRepository
	jwtCfg utils.JWTConfig
	log    *zap.Logger
}

func NewAuthService(users repository.UserRepository, jwtCfg utils.JWTConfig, log *zap.Logger) AuthService {
	return &authService{
		users:  users,
		jwtCfg: jwtCfg,
		log:    log.With(zap.String("service", "auth")),
	}
}

func (s *authService) Login(ctx context.Context, req *request.Login) (*response.Login, error) {
	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.log.Warn("Login attempt with wrong password", zap.String("email", req.Email))
		return nil, ErrInvalidCredentials
	}

	token, err := utils.SignToken(s.jwtCfg, user.ID, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	s.log.Info("User logged in", zap.String("user_id", user.ID.String()))

	return &response.Login{
		Token:     token,
		ExpiresAt: time.Now().Add(time.Duration(s.jwtCfg.ExpiryMinutes) * time.Minute),
		User: response.User{
			UID:       user.ID.String(),
			Email:     user.Email,
			Role:      string(user.Role),
			CreatedAt: user.CreatedAt,
		},
	}, nil
}
