package media

import "errors"

var (
	ErrUnsupportedType = errors.New("only image and video files are accepted")
	ErrFileTooLarge    = errors.New("file exceeds maximum allowed size")
	ErrEmptyFile       = errors.New("file is empty")
	ErrInvalidKey      = errors.New("invalid media key")
)
