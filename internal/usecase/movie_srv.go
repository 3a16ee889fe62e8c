package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"movie-discovery/internal/dto/response"
	"movie-discovery/pkg/omdb"

	"go.uber.org/zap"
)

// listSeparator is how OMDb joins Genre and Actors values
const listSeparator = ", "

// MovieProvider is the external movie database, implemented by *omdb.Client
type MovieProvider interface {
	Search(ctx context.Context, query string) ([]omdb.SearchItem, error)
	GetByID(ctx context.Context, imdbID string) (*omdb.Movie, error)
}

type MovieService interface {
	Search(ctx context.Context, query string) (*response.SearchResponse, error)
	GetDetails(ctx context.Context, id string) (*response.MovieDetail, error)
}

type movieService struct {
	provider MovieProvider
	log      *zap.Logger
}

func NewMovieService(provider MovieProvider, log *zap.Logger) MovieService {
	return &movieService{
		provider: provider,
		log:      log.With(zap.String("service", "movie")),
	}
}

func (s *movieService) Search(ctx context.Context, query string) (*response.SearchResponse, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}

	items, err := s.provider.Search(ctx, query)
	if err != nil {
		s.log.Error("Provider search failed", zap.Error(err), zap.String("query", query))
		return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}

	results := make([]response.MovieSummary, 0, len(items))
	for _, item := range items {
		results = append(results, response.MovieSummary{
			ID:     item.ImdbID,
			Title:  item.Title,
			Year:   item.Year,
			Poster: optional(item.Poster),
			Type:   item.Type,
		})
	}

	s.log.Debug("Search served", zap.String("query", query), zap.Int("results", len(results)))

	return &response.SearchResponse{Query: query, Results: results}, nil
}

func (s *movieService) GetDetails(ctx context.Context, id string) (*response.MovieDetail, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("%w: movie ID is required", ErrInvalidInput)
	}

	movie, err := s.provider.GetByID(ctx, id)
	switch {
	case errors.Is(err, omdb.ErrNotFound):
		return nil, fmt.Errorf("%w: movie %s", ErrNotFound, id)
	case err != nil:
		s.log.Error("Provider lookup failed", zap.Error(err), zap.String("movie_id", id))
		return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}

	// The detail must describe the movie that was asked for
	if movie.ImdbID != "" && !strings.EqualFold(movie.ImdbID, id) {
		s.log.Warn("Provider returned a different movie",
			zap.String("requested", id),
			zap.String("returned", movie.ImdbID))
		return nil, fmt.Errorf("%w: movie %s", ErrNotFound, id)
	}

	return &response.MovieDetail{
		ID:         id,
		Title:      movie.Title,
		Year:       movie.Year,
		Poster:     optional(movie.Poster),
		Plot:       movie.Plot,
		Runtime:    movie.Runtime,
		Genres:     SplitList(movie.Genre),
		Rated:      movie.Rated,
		Director:   movie.Director,
		Actors:     SplitList(movie.Actors),
		ImdbRating: parseRating(movie.ImdbRating),
	}, nil
}

// SplitList splits an OMDb list field such as "Action, Drama" keeping order.
// A non-empty field never yields an empty list.
func SplitList(field string) []string {
	field = strings.TrimSpace(field)
	if field == "" {
		return []string{}
	}

	parts := strings.Split(field, listSeparator)
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}

	if len(out) == 0 {
		return []string{field}
	}
	return out
}

func parseRating(raw string) *float64 {
	if raw == "" || raw == omdb.NotAvailable {
		return nil
	}
	score, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &score
}

// optional drops OMDb's "N/A" placeholder
func optional(value string) string {
	if value == omdb.NotAvailable {
		return ""
	}
	return value
}
