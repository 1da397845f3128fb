package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"cinema-reservation/internal/data/entity"
	"cinema-reservation/internal/data/repository"
	"cinema-reservation/internal/dto/request"
	"cinema-reservation/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type fakeUserRepo struct {
	repository.UserRepository

	user *entity.User
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	if f.user != nil && f.user.Email == email {
		return f.user, nil
	}
	return nil, nil
}

func newAuthFixture(t *testing.T, password string) (AuthService, *entity.User) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &entity.User{
		Email:        "admin@example.com",
		PasswordHash: string(hash),
		Role:         entity.UserRoleSuper,
	}
	user.ID = uuid.New()
	user.CreatedAt = time.Now()

	cfg := utils.JWTConfig{Secret: "test-secret", ExpiryMinutes: 60}
	service := NewAuthService(&fakeUserRepo{user: user}, cfg, zap.NewNop())

	return service, user
}

func TestLoginIssuesToken(t *testing.T) {
	service, user := newAuthFixture(t, "correct-horse-battery")

	result, err := service.Login(context.Background(), &request.Login{
		Email:    user.Email,
		Password: "correct-horse-battery",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Token == "" {
		t.Fatal("expected a signed token")
	}
	if result.User.Role != "super" {
		t.Fatalf("expected super role, got %s", result.User.Role)
	}

	claims, err := utils.ParseToken(utils.JWTConfig{Secret: "test-secret"}, result.Token)
	if err != nil {
		t.Fatalf("issued token does not parse: %v", err)
	}
	if claims.Subject != user.ID.String() {
		t.Fatalf("expected subject %s, got %s", user.ID, claims.Subject)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	service, user := newAuthFixture(t, "correct-horse-battery")

	_, err := service.Login(context.Background(), &request.Login{
		Email:    user.Email,
		Password: "wrong-password-here",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	service, _ := newAuthFixture(t, "correct-horse-battery")

	_, err := service.Login(context.Background(), &request.Login{
		Email:    "nobody@example.com",
		Password: "whatever-password",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}
