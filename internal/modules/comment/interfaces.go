package comment

import (
	"context"

	"minifacebook/internal/domain"
)

type CommentRepositoryInterface interface {
	Create(ctx context.Context, c *domain.Comment) error
	GetByID(ctx context.Context, id int64) (*domain.Comment, error)
	View(ctx context.Context, id int64) (*domain.CommentView, error)
	Delete(ctx context.Context, id int64) error
}

type postLookup interface {
	Exists(ctx context.Context, id int64) (bool, error)
}
