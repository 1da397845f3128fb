package usecase

import (
	"context"
	"fmt"
	"time"

	"cinema-reservation/internal/data/entity"
	"cinema-reservation/internal/data/repository"
	"cinema-reservation/internal/dto/request"
	"cinema-reservation/internal/dto/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type UserService interface {
	Create(ctx context.Context, req *request.CreateUser) (*response.User, error)
	List(ctx context.Context) ([]response.User, error)
	UpdateRole(ctx context.Context, id uuid.UUID, req *request.UpdateUserRole) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type userService struct {
	users repository.UserRepository
	log   *zap.Logger
}

func NewUserService(users repository.UserRepository, log *zap.Logger) UserService {
	return &userService{
		users: users,
		log:   log.With(zap.String("service", "user")),
	}
}

func (s *userService) Create(ctx context.Context, req *request.CreateUser) (*response.User, error) {
	existing, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now()
	user := &entity.User{
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         entity.UserRole(req.Role),
	}
	user.ID = uuid.New()
	user.CreatedAt = now
	user.UpdatedAt = now

	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.log.Info("User created",
		zap.String("user_id", user.ID.String()),
		zap.String("role", req.Role),
	)

	return &response.User{
		UID:       user.ID.String(),
		Email:     user.Email,
		Role:      string(user.Role),
		CreatedAt: user.CreatedAt,
	}, nil
}

func (s *userService) List(ctx context.Context) ([]response.User, error) {
	users, err := s.users.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	result := make([]response.User, 0, len(users))
	for _, user := range users {
		result = append(result, response.User{
			UID:       user.ID.String(),
			Email:     user.Email,
			Role:      string(user.Role),
			CreatedAt: user.CreatedAt,
		})
	}

	return result, nil
}

func (s *userService) UpdateRole(ctx context.Context, id uuid.UUID, req *request.UpdateUserRole) error {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("update user role: %w", err)
	}
	if user == nil {
		return ErrNotFound
	}

	if err := s.users.UpdateRole(ctx, id, entity.UserRole(req.Role)); err != nil {
		return fmt.Errorf("update user role: %w", err)
	}

	s.log.Info("User role updated",
		zap.String("user_id", id.String()),
		zap.String("role", req.Role),
	)

	return nil
}

func (s *userService) Delete(ctx context.Context, id uuid.UUID) error {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if user == nil {
		return ErrNotFound
	}

	if err := s.users.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}

	s.log.Info("User deleted", zap.String("user_id", id.String()))

	return nil
}
