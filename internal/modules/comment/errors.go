package comment

import "errors"

var (
	ErrEmptyContent    = errors.New("comment content must not be empty")
	ErrPostNotFound    = errors.New("post not found")
	ErrCommentNotFound = errors.New("comment not found")
	ErrForbidden       = errors.New("only the author can delete this comment")
)
