// internal/wire/wire.go
package wire

import (
	"net/http"

	"movie-discovery/internal/adaptor"
	"movie-discovery/internal/data/repository"
	"movie-discovery/internal/usecase"
	"movie-discovery/pkg/middleware"
	"movie-discovery/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

const apiPrefix = "/api/v1"

// App holds the wired HTTP surface
type App struct {
	Router  *chi.Mux
	Service *usecase.Service
}

// Wiring builds services, handlers and routes
func Wiring(
	repo *repository.Repository,
	provider usecase.MovieProvider,
	tokens *utils.TokenManager,
	config *utils.Config,
	logger *zap.Logger,
) *App {
	service := usecase.NewService(repo, provider, tokens, logger)
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, service, config, logger)

	return &App{
		Router:  router,
		Service: service,
	}
}

func setupRouter(
	handler *adaptor.Handler,
	service *usecase.Service,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware, outermost first
	r.Use(chimw.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS(config.CORS.AllowedOrigins))

	authenticate := middleware.Authenticate(service.Auth, logger)

	r.Route(apiPrefix, func(r chi.Router) {
		wireAuth(r, handler.Auth, authenticate)
		wireMovie(r, handler.Movie)
		wireComment(r, handler.Comment, authenticate)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		utils.ResponseSuccess(w, "OK", nil)
	})

	return r
}
