package comment

import (
	"context"
	"errors"
	"strings"

	"minifacebook/internal/domain"
	"minifacebook/internal/repository"
)

type Service struct {
	comments CommentRepositoryInterface
	posts    postLookup
}

func NewService(comments CommentRepositoryInterface, posts postLookup) *Service {
	return &Service{comments: comments, posts: posts}
}

// AddComment validates content before it looks the post up.
func (s *Service) AddComment(ctx context.Context, postID, authorID int64, content string) (*domain.CommentView, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyContent
	}

	ok, err := s.posts.Exists(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrPostNotFound
	}

	c := &domain.Comment{PostID: postID, UserID: authorID, Content: content}
	if err := s.comments.Create(ctx, c); err != nil {
		return nil, err
	}
	return s.comments.View(ctx, c.ID)
}

func (s *Service) DeleteComment(ctx context.Context, commentID, requesterID int64) error {
	c, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrCommentNotFound
		}
		return err
	}
	if c.UserID != requesterID {
		return ErrForbidden
	}

	if err := s.comments.Delete(ctx, commentID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrCommentNotFound
		}
		return err
	}
	return nil
}
