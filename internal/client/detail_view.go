package client

import (
	"context"
	"fmt"
	"sync"

	"movie-discovery/internal/dto/response"
)

type State string

const (
	StateIdle      State = "idle"
	StateLoading   State = "loading"
	StateDisplayed State = "displayed"
	StateNotFound  State = "not_found"
	StateLoaded    State = "loaded"
	StateFailed    State = "failed"
)

// MovieFetcher is satisfied by *Client
type MovieFetcher interface {
	GetMovieDetails(ctx context.Context, id string) (*response.MovieDetail, error)
}

// MovieViewModel is a movie detail shaped for display
type MovieViewModel struct {
	ID       string
	Title    string
	Year     string
	Poster   string
	Plot     string
	Runtime  string
	Genres   []string
	Rated    string
	Director string
	Actors   []string
	Rating   string
}

func toViewModel(movie *response.MovieDetail) *MovieViewModel {
	rating := "N/A"
	if movie.ImdbRating != nil {
		rating = fmt.Sprintf("%.1f/10", *movie.ImdbRating)
	}

	return &MovieViewModel{
		ID:       movie.ID,
		Title:    movie.Title,
		Year:     movie.Year,
		Poster:   movie.Poster,
		Plot:     movie.Plot,
		Runtime:  movie.Runtime,
		Genres:   append([]string(nil), movie.Genres...),
		Rated:    movie.Rated,
		Director: movie.Director,
		Actors:   append([]string(nil), movie.Actors...),
		Rating:   rating,
	}
}

type DetailSnapshot struct {
	State     State
	MovieID   string
	Movie     *MovieViewModel
	CanGoBack bool
	// Err is the last fetch failure. The not_found presentation is the same
	// whatever it holds.
	Err error
}

// DetailView shows one movie at a time. Each Open starts a new generation and
// only the newest generation's fetch result is applied.
type DetailView struct {
	fetcher  MovieFetcher
	onChange func(DetailSnapshot)

	mu         sync.Mutex
	generation uint64
	snapshot   DetailSnapshot
}

type DetailOption func(*DetailView)

// OnDetailChange registers fn to receive every state transition. fn runs with
// the view locked and must not call back into it.
func OnDetailChange(fn func(DetailSnapshot)) DetailOption {
	return func(v *DetailView) { v.onChange = fn }
}

func NewDetailView(fetcher MovieFetcher, opts ...DetailOption) *DetailView {
	v := &DetailView{
		fetcher:  fetcher,
		snapshot: DetailSnapshot{State: StateIdle},
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Open navigates to movie id and blocks until its fetch settles. The returned
// snapshot is the view's state at that point, which belongs to a newer Open
// if one started meanwhile.
func (v *DetailView) Open(ctx context.Context, id string) DetailSnapshot {
	v.mu.Lock()
	v.generation++
	gen := v.generation
	v.setLocked(DetailSnapshot{State: StateLoading, MovieID: id})
	v.mu.Unlock()

	movie, err := v.fetcher.GetMovieDetails(ctx, id)

	v.mu.Lock()
	defer v.mu.Unlock()

	if gen != v.generation {
		return v.snapshot
	}

	if err != nil {
		v.setLocked(DetailSnapshot{
			State:     StateNotFound,
			MovieID:   id,
			CanGoBack: true,
			Err:       err,
		})
		return v.snapshot
	}

	v.setLocked(DetailSnapshot{
		State:   StateDisplayed,
		MovieID: id,
		Movie:   toViewModel(movie),
	})
	return v.snapshot
}

func (v *DetailView) Snapshot() DetailSnapshot {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.snapshot
}

func (v *DetailView) setLocked(s DetailSnapshot) {
	v.snapshot = s
	if v.onChange != nil {
		v.onChange(s)
	}
}
