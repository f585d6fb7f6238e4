package post

import "mime/multipart"

// MaxFilesPerPost caps the "media" parts of one create request.
const MaxFilesPerPost = 10

// ListLimit is how many posts the feed returns.
const ListLimit = 50

type CreatePostRequest struct {
	Content string
	Files   []*multipart.FileHeader
}

type UpdatePostRequest struct {
	Content string `json:"content"`
}
