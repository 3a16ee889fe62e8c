package wire

import (
	"net/http"

	"movie-discovery/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireComment(
	r chi.Router,
	commentHandler *adaptor.CommentHandler,
	authenticate func(http.Handler) http.Handler,
) {
	r.Get("/movies/{id}/comments", commentHandler.List)

	// Posting requires a session
	r.With(authenticate).Post("/movies/{id}/comments", commentHandler.Create)
}
