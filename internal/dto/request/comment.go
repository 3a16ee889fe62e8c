package request

type CreateCommentRequest struct {
	Body string `json:"body" validate:"required,notblank,max=1000"`
}
