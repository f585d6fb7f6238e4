package domain

import (
	"strings"
	"time"
)

type MediaKind string

const (
	MediaImage MediaKind = "image"
	MediaVideo MediaKind = "video"
)

// KindOf classifies a declared content type; ok is false for anything
// that is neither an image nor a video.
func KindOf(contentType string) (MediaKind, bool) {
	ct := strings.ToLower(strings.TrimSpace(contentType))
	switch {
	case strings.HasPrefix(ct, "image/"):
		return MediaImage, true
	case strings.HasPrefix(ct, "video/"):
		return MediaVideo, true
	}
	return "", false
}

// Dir is the storage partition for the kind.
func (k MediaKind) Dir() string {
	if k == MediaVideo {
		return "videos"
	}
	return "images"
}

type Post struct {
	ID         int64     `gorm:"column:id;primaryKey"`
	UserID     int64     `gorm:"column:user_id;not null;index"`
	Content    string    `gorm:"column:content;type:text;not null;default:''"`
	LikesCount int64     `gorm:"column:likes_count;not null;default:0"`
	CreatedAt  time.Time `gorm:"column:created_at;index"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`

	Images   []PostImage `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
	Videos   []PostVideo `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
	Comments []Comment   `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
	Likes    []PostLike  `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
}

func (Post) TableName() string { return "posts" }

type PostImage struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	PostID    int64     `gorm:"column:post_id;not null;index"`
	ImageURL  string    `gorm:"column:image_url;size:512;not null"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (PostImage) TableName() string { return "post_images" }

type PostVideo struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	PostID    int64     `gorm:"column:post_id;not null;index"`
	VideoURL  string    `gorm:"column:video_url;size:512;not null"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (PostVideo) TableName() string { return "post_videos" }

type Comment struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	PostID    int64     `gorm:"column:post_id;not null;index"`
	UserID    int64     `gorm:"column:user_id;not null"`
	Content   string    `gorm:"column:content;type:text;not null"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (Comment) TableName() string { return "comments" }

// PostLike is unique per (post, user).
type PostLike struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	PostID    int64     `gorm:"column:post_id;not null;uniqueIndex:idx_post_likes_post_user"`
	UserID    int64     `gorm:"column:user_id;not null;uniqueIndex:idx_post_likes_post_user"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (PostLike) TableName() string { return "post_likes" }

// Attachment is a stored media reference waiting to be linked to a post.
type Attachment struct {
	Kind MediaKind
	URL  string
}

// PostView is a post hydrated with its author, media, comments and
// the aggregates computed for one viewer.
type PostView struct {
	ID            int64         `json:"id"`
	UserID        int64         `json:"user_id"`
	Content       string        `json:"content"`
	LikesCount    int64         `json:"likes_count"`
	CommentsCount int64         `json:"comments_count"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
	Username      string        `json:"username"`
	FullName      string        `json:"full_name"`
	Avatar        *string       `json:"avatar"`
	IsLiked       bool          `json:"is_liked"`
	Images        []string      `gorm:"-" json:"images"`
	Videos        []string      `gorm:"-" json:"videos"`
	Comments      []CommentView `gorm:"-" json:"comments"`
}

// CommentView is a comment hydrated with its author's profile fields.
type CommentView struct {
	ID        int64     `json:"id"`
	PostID    int64     `json:"post_id"`
	UserID    int64     `json:"user_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	Username  string    `json:"username"`
	FullName  string    `json:"full_name"`
	Avatar    *string   `json:"avatar"`
}
