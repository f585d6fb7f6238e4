package comment

type CreateCommentRequest struct {
	Content string `json:"content"`
}
