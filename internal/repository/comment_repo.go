package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"minifacebook/internal/domain"
)

type CommentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

const commentViewSelect = `
SELECT c.id, c.post_id, c.user_id, c.content, c.created_at,
       u.username, u.full_name, u.avatar
FROM comments c
JOIN users u ON u.id = c.user_id`

func (r *CommentRepository) Create(ctx context.Context, c *domain.Comment) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *CommentRepository) GetByID(ctx context.Context, id int64) (*domain.Comment, error) {
	var c domain.Comment
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *CommentRepository) View(ctx context.Context, id int64) (*domain.CommentView, error) {
	var rows []domain.CommentView
	if err := r.db.WithContext(ctx).Raw(commentViewSelect+` WHERE c.id = ?`, id).Scan(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return &rows[0], nil
}

func (r *CommentRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&domain.Comment{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// listCommentViews returns a post's comments oldest first.
func listCommentViews(db *gorm.DB, postID int64) ([]domain.CommentView, error) {
	rows := []domain.CommentView{}
	err := db.Raw(commentViewSelect+` WHERE c.post_id = ? ORDER BY c.created_at ASC, c.id ASC`, postID).Scan(&rows).Error
	return rows, err
}
