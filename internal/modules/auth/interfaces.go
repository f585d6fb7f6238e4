package auth

import (
	"context"

	"minifacebook/internal/domain"
	"minifacebook/internal/pkg/jwt"
)

// UserRepositoryInterface lists what the auth service needs from storage.
type UserRepositoryInterface interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByLogin(ctx context.Context, identifier string) (*domain.User, error)
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
}

type jwtService interface {
	GenerateToken(id jwt.Identity) (string, error)
}
