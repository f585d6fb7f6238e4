package post

import (
	"context"
	"mime/multipart"

	"minifacebook/internal/domain"
	"minifacebook/internal/modules/media"
)

// PostRepositoryInterface lists what the post service needs from storage.
type PostRepositoryInterface interface {
	Create(ctx context.Context, p *domain.Post, attachments []domain.Attachment) error
	GetByID(ctx context.Context, id int64) (*domain.Post, error)
	UpdateContent(ctx context.Context, id int64, content string) error
	Delete(ctx context.Context, id int64) error
	MediaURLs(ctx context.Context, id int64) ([]string, error)
	ToggleLike(ctx context.Context, postID, userID int64) (bool, error)
	View(ctx context.Context, postID, viewerID int64) (*domain.PostView, error)
	List(ctx context.Context, viewerID int64, limit int) ([]domain.PostView, error)
}

type mediaIntake interface {
	Check(fh *multipart.FileHeader) (domain.MediaKind, error)
	Accept(ctx context.Context, fh *multipart.FileHeader) (*media.StoredFile, error)
	Discard(ctx context.Context, files []*media.StoredFile)
	Release(ctx context.Context, urls []string)
}
