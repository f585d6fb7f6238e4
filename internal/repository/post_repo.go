package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"minifacebook/internal/domain"
)

type PostRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) *PostRepository {
	return &PostRepository{db: db}
}

const postViewSelect = `
SELECT p.id, p.user_id, p.content, p.created_at, p.updated_at,
       u.username, u.full_name, u.avatar,
       (SELECT COUNT(*) FROM post_likes pl WHERE pl.post_id = p.id) AS likes_count,
       (SELECT COUNT(*) FROM comments c WHERE c.post_id = p.id) AS comments_count,
       EXISTS(SELECT 1 FROM post_likes vl WHERE vl.post_id = p.id AND vl.user_id = ?) AS is_liked
FROM posts p
JOIN users u ON u.id = p.user_id`

// Create stores the post and its attachment rows in one transaction.
func (r *PostRepository) Create(ctx context.Context, p *domain.Post, attachments []domain.Attachment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(p).Error; err != nil {
			return fmt.Errorf("insert post: %w", err)
		}

		for _, a := range attachments {
			var err error
			switch a.Kind {
			case domain.MediaImage:
				err = tx.Create(&domain.PostImage{PostID: p.ID, ImageURL: a.URL}).Error
			case domain.MediaVideo:
				err = tx.Create(&domain.PostVideo{PostID: p.ID, VideoURL: a.URL}).Error
			default:
				err = fmt.Errorf("unknown media kind %q", a.Kind)
			}
			if err != nil {
				return fmt.Errorf("insert post media: %w", err)
			}
		}
		return nil
	})
}

func (r *PostRepository) GetByID(ctx context.Context, id int64) (*domain.Post, error) {
	var p domain.Post
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *PostRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Post{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *PostRepository) UpdateContent(ctx context.Context, id int64, content string) error {
	res := r.db.WithContext(ctx).Model(&domain.Post{}).Where("id = ?", id).Updates(map[string]any{
		"content":    content,
		"updated_at": time.Now(),
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the post together with its media rows, likes and comments.
// The schema cascades as well; deleting explicitly keeps engines without
// enforced foreign keys consistent.
func (r *PostRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, child := range []any{&domain.PostImage{}, &domain.PostVideo{}, &domain.PostLike{}, &domain.Comment{}} {
			if err := tx.Where("post_id = ?", id).Delete(child).Error; err != nil {
				return err
			}
		}
		res := tx.Delete(&domain.Post{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// MediaURLs lists every image and video reference attached to the post.
func (r *PostRepository) MediaURLs(ctx context.Context, id int64) ([]string, error) {
	db := r.db.WithContext(ctx)
	var images, videos []string
	if err := db.Model(&domain.PostImage{}).Where("post_id = ?", id).Pluck("image_url", &images).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&domain.PostVideo{}).Where("post_id = ?", id).Pluck("video_url", &videos).Error; err != nil {
		return nil, err
	}
	return append(images, videos...), nil
}

// ToggleLike flips the (post, user) like and keeps the cached counter in step,
// all inside one transaction. It reports whether the post is now liked.
func (r *PostRepository) ToggleLike(ctx context.Context, postID, userID int64) (bool, error) {
	var liked bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var posts int64
		if err := tx.Model(&domain.Post{}).Where("id = ?", postID).Count(&posts).Error; err != nil {
			return err
		}
		if posts == 0 {
			return ErrNotFound
		}

		var existing domain.PostLike
		err := tx.Where("post_id = ? AND user_id = ?", postID, userID).First(&existing).Error
		switch {
		case err == nil:
			if err := tx.Delete(&existing).Error; err != nil {
				return err
			}
			liked = false
			return tx.Model(&domain.Post{}).Where("id = ?", postID).
				UpdateColumn("likes_count", gorm.Expr("CASE WHEN likes_count > 0 THEN likes_count - 1 ELSE 0 END")).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := tx.Create(&domain.PostLike{PostID: postID, UserID: userID}).Error; err != nil {
				return err
			}
			liked = true
			return tx.Model(&domain.Post{}).Where("id = ?", postID).
				UpdateColumn("likes_count", gorm.Expr("likes_count + 1")).Error
		default:
			return err
		}
	})
	return liked, err
}

// View returns one hydrated post as seen by viewerID.
func (r *PostRepository) View(ctx context.Context, postID, viewerID int64) (*domain.PostView, error) {
	var rows []domain.PostView
	if err := r.db.WithContext(ctx).Raw(postViewSelect+` WHERE p.id = ?`, viewerID, postID).Scan(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	v := rows[0]
	if err := r.hydrate(ctx, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// List returns the newest posts first. Media and comments are loaded with
// separate queries per post.
func (r *PostRepository) List(ctx context.Context, viewerID int64, limit int) ([]domain.PostView, error) {
	var rows []domain.PostView
	err := r.db.WithContext(ctx).
		Raw(postViewSelect+` ORDER BY p.created_at DESC, p.id DESC LIMIT ?`, viewerID, limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for i := range rows {
		if err := r.hydrate(ctx, &rows[i]); err != nil {
			return nil, err
		}
	}
	if rows == nil {
		rows = []domain.PostView{}
	}
	return rows, nil
}

func (r *PostRepository) hydrate(ctx context.Context, v *domain.PostView) error {
	db := r.db.WithContext(ctx)

	v.Images = []string{}
	if err := db.Model(&domain.PostImage{}).Where("post_id = ?", v.ID).Order("id ASC").Pluck("image_url", &v.Images).Error; err != nil {
		return fmt.Errorf("load images: %w", err)
	}

	v.Videos = []string{}
	if err := db.Model(&domain.PostVideo{}).Where("post_id = ?", v.ID).Order("id ASC").Pluck("video_url", &v.Videos).Error; err != nil {
		return fmt.Errorf("load videos: %w", err)
	}

	comments, err := listCommentViews(db, v.ID)
	if err != nil {
		return fmt.Errorf("load comments: %w", err)
	}
	v.Comments = comments
	return nil
}
