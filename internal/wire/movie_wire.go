package wire

import (
	"movie-discovery/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireMovie(r chi.Router, movieHandler *adaptor.MovieHandler) {
	// Registered before /{id} so "search" is never read as an id
	r.Get("/movies/search", movieHandler.Search)
	r.Get("/movies/{id}", movieHandler.GetDetails)
}
