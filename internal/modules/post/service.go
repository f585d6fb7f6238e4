package post

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"minifacebook/internal/domain"
	"minifacebook/internal/modules/media"
	"minifacebook/internal/repository"
)

type Service struct {
	posts PostRepositoryInterface
	media mediaIntake
	log   *zap.Logger
}

func NewService(posts PostRepositoryInterface, media mediaIntake, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{posts: posts, media: media, log: log}
}

// CreatePost stores every file first, then writes the post and its media rows
// in one transaction. Any failure removes the files written so far.
func (s *Service) CreatePost(ctx context.Context, authorID int64, req CreatePostRequest) (*domain.PostView, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" && len(req.Files) == 0 {
		return nil, ErrEmptyPost
	}
	if len(req.Files) > MaxFilesPerPost {
		return nil, ErrTooManyFiles
	}

	// Reject the whole request before anything reaches storage.
	for _, fh := range req.Files {
		if _, err := s.media.Check(fh); err != nil {
			return nil, err
		}
	}

	stored := make([]*media.StoredFile, 0, len(req.Files))
	attachments := make([]domain.Attachment, 0, len(req.Files))
	for _, fh := range req.Files {
		f, err := s.media.Accept(ctx, fh)
		if err != nil {
			s.media.Discard(ctx, stored)
			return nil, err
		}
		stored = append(stored, f)
		attachments = append(attachments, f.Attachment())
	}

	p := &domain.Post{UserID: authorID, Content: content}
	if err := s.posts.Create(ctx, p, attachments); err != nil {
		s.media.Discard(ctx, stored)
		return nil, fmt.Errorf("create post: %w", err)
	}

	s.log.Info("post created",
		zap.Int64("post_id", p.ID),
		zap.Int64("user_id", authorID),
		zap.Int("attachments", len(attachments)),
	)

	return s.posts.View(ctx, p.ID, authorID)
}

// ListPosts returns the newest posts as seen by viewerID.
func (s *Service) ListPosts(ctx context.Context, viewerID int64) ([]domain.PostView, error) {
	return s.posts.List(ctx, viewerID, ListLimit)
}

func (s *Service) UpdatePost(ctx context.Context, postID, editorID int64, content string) (*domain.PostView, error) {
	p, err := s.loadOwned(ctx, postID, editorID)
	if err != nil {
		return nil, err
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyContent
	}

	if err := s.posts.UpdateContent(ctx, p.ID, content); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return s.posts.View(ctx, p.ID, editorID)
}

func (s *Service) DeletePost(ctx context.Context, postID, requesterID int64) error {
	p, err := s.loadOwned(ctx, postID, requesterID)
	if err != nil {
		return err
	}

	urls, err := s.posts.MediaURLs(ctx, p.ID)
	if err != nil {
		return err
	}

	if err := s.posts.Delete(ctx, p.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrPostNotFound
		}
		return err
	}

	// Rows are gone; stale files only cost disk space.
	s.media.Release(ctx, urls)
	return nil
}

// ToggleLike reports whether the post is liked by userID after the call.
func (s *Service) ToggleLike(ctx context.Context, postID, userID int64) (bool, error) {
	liked, err := s.posts.ToggleLike(ctx, postID, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return false, ErrPostNotFound
	}
	return liked, err
}

func (s *Service) loadOwned(ctx context.Context, postID, userID int64) (*domain.Post, error) {
	p, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	if p.UserID != userID {
		return nil, ErrForbidden
	}
	return p, nil
}
