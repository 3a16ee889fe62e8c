package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"movie-discovery/internal/client"
	"movie-discovery/internal/dto/response"
	"movie-discovery/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderDetail(t *testing.T) {
	t.Run("displayed", func(t *testing.T) {
		var buf bytes.Buffer
		renderDetail(&buf, client.DetailSnapshot{
			State: client.StateDisplayed,
			Movie: &client.MovieViewModel{
				Title: "The Matrix", Year: "1999", Genres: []string{"Action", "Sci-Fi"}, Rating: "8.7/10",
			},
		})

		assert.Contains(t, buf.String(), "The Matrix (1999)")
		assert.Contains(t, buf.String(), "Action, Sci-Fi")
		assert.Contains(t, buf.String(), "IMDb: 8.7/10")
	})

	t.Run("not found offers back", func(t *testing.T) {
		var buf bytes.Buffer
		renderDetail(&buf, client.DetailSnapshot{State: client.StateNotFound, CanGoBack: true})

		assert.Equal(t, "Movie not found.\nGo back and try another search.\n", buf.String())
	})
}

func TestRenderSearchEmpty(t *testing.T) {
	var buf bytes.Buffer
	renderSearch(&buf, &response.SearchResponse{Query: "zzzz", Results: []response.MovieSummary{}})

	assert.Equal(t, "No movies found for \"zzzz\"\n", buf.String())
}

func TestRunShow(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/movies/tt0133093":
			utils.ResponseSuccess(w, "success", response.MovieDetail{ID: "tt0133093", Title: "The Matrix", Year: "1999"})
		case "/api/v1/movies/tt0000001":
			utils.ResponseBadGateway(w, "Movie provider is unavailable, try again later")
		default:
			utils.ResponseNotFound(w, "not found")
		}
	}))
	defer srv.Close()

	tests := []struct {
		id   string
		want string
		diag string
	}{
		{id: "tt0133093", want: "The Matrix (1999)"},
		{id: "tt0000000", want: "Movie not found."},
		{id: "tt0000001", want: "Movie not found.", diag: "Movie provider is unavailable"},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			cmds := newCommands()
			var diag bytes.Buffer
			cmds.diag = &diag

			selected, err := cmds.app.Parse([]string{"--api", srv.URL, "show", tt.id})
			require.NoError(t, err)

			var buf bytes.Buffer
			require.NoError(t, cmds.run(context.Background(), selected, &buf))
			assert.Contains(t, buf.String(), "Loading...")
			assert.Contains(t, buf.String(), tt.want)

			if tt.diag == "" {
				assert.Empty(t, diag.String())
			} else {
				assert.Contains(t, diag.String(), tt.diag)
			}
		})
	}
}
