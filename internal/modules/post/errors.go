package post

import "errors"

var (
	ErrEmptyPost    = errors.New("post must have content or at least one attachment")
	ErrEmptyContent = errors.New("content must not be empty")
	ErrPostNotFound = errors.New("post not found")
	ErrForbidden    = errors.New("only the author can modify this post")
	ErrTooManyFiles = errors.New("too many files")
)
