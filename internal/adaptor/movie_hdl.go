package adaptor

import (
	"net/http"

	"movie-discovery/internal/usecase"
	"movie-discovery/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type MovieHandler struct {
	service usecase.MovieService
	log     *zap.Logger
}

func NewMovieHandler(service usecase.MovieService, log *zap.Logger) *MovieHandler {
	return &MovieHandler{
		service: service,
		log:     log.With(zap.String("handler", "movie")),
	}
}

// Search handles GET /api/v1/movies/search?q=
func (h *MovieHandler) Search(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		handleServiceError(w, h.log, err, "search movies")
		return
	}

	utils.ResponseSuccess(w, "success", result)
}

// GetDetails handles GET /api/v1/movies/{id}
func (h *MovieHandler) GetDetails(w http.ResponseWriter, r *http.Request) {
	movie, err := h.service.GetDetails(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "get movie details")
		return
	}

	utils.ResponseSuccess(w, "success", movie)
}
