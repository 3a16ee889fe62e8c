package client

import (
	"context"
	"errors"
	"sync"

	"movie-discovery/internal/dto/response"
)

var ErrNoMovie = errors.New("no movie opened")

// CommentsAPI is satisfied by *Client
type CommentsAPI interface {
	ListComments(ctx context.Context, movieID string) ([]response.CommentResponse, error)
	PostComment(ctx context.Context, movieID, body string) (*response.CommentResponse, error)
}

type CommentsSnapshot struct {
	State    State
	MovieID  string
	Comments []response.CommentResponse
	Err      error
}

// CommentsView lists a movie's comments. Loads follow the same generation
// rule as DetailView.
type CommentsView struct {
	api CommentsAPI

	mu         sync.Mutex
	generation uint64
	snapshot   CommentsSnapshot
}

func NewCommentsView(api CommentsAPI) *CommentsView {
	return &CommentsView{
		api:      api,
		snapshot: CommentsSnapshot{State: StateIdle},
	}
}

func (v *CommentsView) Load(ctx context.Context, movieID string) CommentsSnapshot {
	v.mu.Lock()
	v.generation++
	gen := v.generation
	v.snapshot = CommentsSnapshot{State: StateLoading, MovieID: movieID}
	v.mu.Unlock()

	comments, err := v.api.ListComments(ctx, movieID)

	v.mu.Lock()
	defer v.mu.Unlock()

	if gen != v.generation {
		return v.snapshot
	}

	if err != nil {
		v.snapshot = CommentsSnapshot{State: StateFailed, MovieID: movieID, Err: err}
		return v.snapshot
	}

	v.snapshot = CommentsSnapshot{State: StateLoaded, MovieID: movieID, Comments: comments}
	return v.snapshot
}

// Post adds a comment to the current movie and reloads the list. A failed
// post leaves the list untouched.
func (v *CommentsView) Post(ctx context.Context, body string) (*response.CommentResponse, CommentsSnapshot, error) {
	v.mu.Lock()
	movieID := v.snapshot.MovieID
	v.mu.Unlock()

	if movieID == "" {
		return nil, v.Snapshot(), ErrNoMovie
	}

	comment, err := v.api.PostComment(ctx, movieID, body)
	if err != nil {
		return nil, v.Snapshot(), err
	}

	return comment, v.Load(ctx, movieID), nil
}

func (v *CommentsView) Snapshot() CommentsSnapshot {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.snapshot
}
