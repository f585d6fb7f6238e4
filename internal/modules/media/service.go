package media

import (
	"context"
	"fmt"
	"math/rand/v2"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"minifacebook/internal/domain"
)

const (
	MaxFileSize = 50 * 1024 * 1024 // 50 MB
	URLPrefix   = "/uploads"

	cleanupTimeout = 30 * time.Second
)

// StoredFile is one accepted upload.
type StoredFile struct {
	Kind        domain.MediaKind
	Key         string
	URL         string
	ContentType string
	Size        int64
}

func (f *StoredFile) Attachment() domain.Attachment {
	return domain.Attachment{Kind: f.Kind, URL: f.URL}
}

// Service accepts image/video uploads and writes them through a Store.
type Service struct {
	store   Store
	maxSize int64
	log     *zap.Logger
	now     func() time.Time
}

func NewService(store Store, maxSize int64, log *zap.Logger) *Service {
	if maxSize <= 0 {
		maxSize = MaxFileSize
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{store: store, maxSize: maxSize, log: log, now: time.Now}
}

func (s *Service) MaxSize() int64 { return s.maxSize }

// Check validates an upload without touching storage.
func (s *Service) Check(fh *multipart.FileHeader) (domain.MediaKind, error) {
	kind, ok := domain.KindOf(fh.Header.Get("Content-Type"))
	if !ok {
		return "", ErrUnsupportedType
	}
	if fh.Size == 0 {
		return "", ErrEmptyFile
	}
	if fh.Size > s.maxSize {
		return "", ErrFileTooLarge
	}
	return kind, nil
}

// Accept validates the upload by its declared content type and size,
// then stores it under images/ or videos/ with a collision-resistant name.
func (s *Service) Accept(ctx context.Context, fh *multipart.FileHeader) (*StoredFile, error) {
	kind, err := s.Check(fh)
	if err != nil {
		return nil, err
	}
	contentType := strings.ToLower(strings.TrimSpace(fh.Header.Get("Content-Type")))

	file, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	name := fmt.Sprintf("post-%d-%d%s", s.now().UnixMilli(), rand.Int64N(1_000_000_000), extensionFor(fh.Filename, contentType))
	key := kind.Dir() + "/" + name

	if err := s.store.Put(ctx, key, contentType, file, fh.Size); err != nil {
		return nil, fmt.Errorf("failed to store %s: %w", key, err)
	}

	s.log.Info("media stored", zap.String("key", key), zap.Int64("size", fh.Size))

	return &StoredFile{
		Kind:        kind,
		Key:         key,
		URL:         URLPrefix + "/" + key,
		ContentType: contentType,
		Size:        fh.Size,
	}, nil
}

// cleanupContext outlives the request: a client that disconnects mid-upload
// cancels ctx, and the removals must still reach the store.
func cleanupContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), cleanupTimeout)
}

// Discard removes files written earlier in a request that ended up failing.
func (s *Service) Discard(ctx context.Context, files []*StoredFile) {
	ctx, cancel := cleanupContext(ctx)
	defer cancel()

	for _, f := range files {
		if f == nil {
			continue
		}
		if err := s.store.Remove(ctx, f.Key); err != nil {
			s.log.Error("failed to remove media", zap.String("key", f.Key), zap.Error(err))
		}
	}
}

// KeyFromURL maps a public reference path back to its storage key.
func KeyFromURL(url string) (string, bool) {
	key, ok := strings.CutPrefix(url, URLPrefix+"/")
	if !ok || key == "" {
		return "", false
	}
	if _, err := cleanKey(key); err != nil {
		return "", false
	}
	return key, true
}

// Release removes stored files by their public URLs. Unknown URLs are skipped.
func (s *Service) Release(ctx context.Context, urls []string) {
	ctx, cancel := cleanupContext(ctx)
	defer cancel()

	for _, u := range urls {
		key, ok := KeyFromURL(u)
		if !ok {
			s.log.Warn("skipping unknown media url", zap.String("url", u))
			continue
		}
		if err := s.store.Remove(ctx, key); err != nil {
			s.log.Error("failed to remove media", zap.String("key", key), zap.Error(err))
		}
	}
}

func extensionFor(filename, contentType string) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(filename)))
	if len(ext) > 1 && len(ext) <= 10 && isAlnum(ext[1:]) {
		return ext
	}
	return mimeToExt(contentType)
}

func isAlnum(s string) bool {
	for _, r := range s {
		if !((r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')) {
			return false
		}
	}
	return true
}

func mimeToExt(mime string) string {
	switch mime {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	case "video/mp4":
		return ".mp4"
	case "video/webm":
		return ".webm"
	case "video/quicktime":
		return ".mov"
	default:
		return ".bin"
	}
}
