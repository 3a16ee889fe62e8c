package response

import (
	"time"

	"movie-discovery/internal/data/entity"
)

type CommentResponse struct {
	ID        string    `json:"id"`
	MovieID   string    `json:"movie_id"`
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

func CommentToResponse(comment *entity.Comment) CommentResponse {
	return CommentResponse{
		ID:        comment.ID.String(),
		MovieID:   comment.MovieID,
		UserID:    comment.UserID.String(),
		Username:  comment.AuthorName,
		Body:      comment.Body,
		CreatedAt: comment.CreatedAt,
	}
}
