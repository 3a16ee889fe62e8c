package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"movie-discovery/internal/client"
	"movie-discovery/internal/dto/response"
)

func renderSearch(w io.Writer, result *response.SearchResponse) {
	if len(result.Results) == 0 {
		fmt.Fprintf(w, "No movies found for %q\n", result.Query)
		return
	}

	for _, movie := range result.Results {
		fmt.Fprintf(w, "%-12s %s (%s)\n", movie.ID, movie.Title, movie.Year)
	}
}

func renderDetail(w io.Writer, snap client.DetailSnapshot) {
	switch snap.State {
	case client.StateDisplayed:
		m := snap.Movie
		fmt.Fprintf(w, "%s (%s)\n", m.Title, m.Year)
		fmt.Fprintf(w, "%s | %s | %s\n", m.Rated, m.Runtime, strings.Join(m.Genres, ", "))
		fmt.Fprintf(w, "Director: %s\n", m.Director)
		fmt.Fprintf(w, "Cast: %s\n", strings.Join(m.Actors, ", "))
		fmt.Fprintf(w, "IMDb: %s\n", m.Rating)
		if m.Poster != "" {
			fmt.Fprintf(w, "Poster: %s\n", m.Poster)
		}
		fmt.Fprintf(w, "\n%s\n", m.Plot)

	case client.StateNotFound:
		fmt.Fprintln(w, "Movie not found.")
		if snap.CanGoBack {
			fmt.Fprintln(w, "Go back and try another search.")
		}

	default:
		fmt.Fprintln(w, "Loading...")
	}
}

func renderComments(w io.Writer, snap client.CommentsSnapshot) {
	switch snap.State {
	case client.StateLoaded:
		if len(snap.Comments) == 0 {
			fmt.Fprintln(w, "No comments yet.")
			return
		}
		for _, c := range snap.Comments {
			fmt.Fprintf(w, "[%s] %s: %s\n", c.CreatedAt.Format("2006-01-02 15:04"), c.Username, c.Body)
		}

	case client.StateFailed:
		fmt.Fprintf(w, "Could not load comments: %v\n", snap.Err)

	default:
		fmt.Fprintln(w, "Loading...")
	}
}

func renderSession(w io.Writer, username, token string, expiresAt time.Time) {
	fmt.Fprintf(w, "Logged in as %s until %s\n", username, expiresAt.Format(time.RFC3339))
	fmt.Fprintf(w, "export MOVIEVIEW_TOKEN=%s\n", token)
}
