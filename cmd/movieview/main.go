// Command movieview is a terminal client for the movie-discovery API.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"movie-discovery/internal/client"

	"github.com/alecthomas/kingpin/v2"
)

type commands struct {
	app *kingpin.Application
	// diag receives failure details the views do not show
	diag io.Writer

	apiURL  *string
	token   *string
	timeout *time.Duration

	search      *kingpin.CmdClause
	searchQuery *[]string

	show   *kingpin.CmdClause
	showID *string

	comments   *kingpin.CmdClause
	commentsID *string

	comment     *kingpin.CmdClause
	commentID   *string
	commentBody *[]string

	register         *kingpin.CmdClause
	registerUsername *string
	registerEmail    *string
	registerPassword *string

	login         *kingpin.CmdClause
	loginUsername *string
	loginPassword *string

	me *kingpin.CmdClause
}

func newCommands() *commands {
	c := &commands{
		app:  kingpin.New("movieview", "Search movies, read details and comments."),
		diag: os.Stderr,
	}

	c.apiURL = c.app.Flag("api", "movie-discovery API base URL").
		Envar("MOVIEVIEW_API").Default("http://localhost:8080").String()
	c.token = c.app.Flag("token", "session token from login or register").
		Envar("MOVIEVIEW_TOKEN").String()
	c.timeout = c.app.Flag("timeout", "request timeout").Default("30s").Duration()

	c.search = c.app.Command("search", "Search movies by title.")
	c.searchQuery = c.search.Arg("query", "title to search for").Required().Strings()

	c.show = c.app.Command("show", "Show a movie's details.")
	c.showID = c.show.Arg("id", "IMDb id, e.g. tt0133093").Required().String()

	c.comments = c.app.Command("comments", "List a movie's comments.")
	c.commentsID = c.comments.Arg("id", "IMDb id").Required().String()

	c.comment = c.app.Command("comment", "Post a comment on a movie.")
	c.commentID = c.comment.Arg("id", "IMDb id").Required().String()
	c.commentBody = c.comment.Arg("body", "comment text").Required().Strings()

	c.register = c.app.Command("register", "Create an account.")
	c.registerUsername = c.register.Arg("username", "letters and digits, 3 to 50").Required().String()
	c.registerEmail = c.register.Arg("email", "email address").Required().String()
	c.registerPassword = c.register.Flag("password", "account password").Envar("MOVIEVIEW_PASSWORD").Required().String()

	c.login = c.app.Command("login", "Log in and print a session token.")
	c.loginUsername = c.login.Arg("username", "username or email").Required().String()
	c.loginPassword = c.login.Flag("password", "account password").Envar("MOVIEVIEW_PASSWORD").Required().String()

	c.me = c.app.Command("me", "Show the logged in user.")

	return c
}

func main() {
	cmds := newCommands()
	selected := kingpin.MustParse(cmds.app.Parse(os.Args[1:]))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cmds.run(ctx, selected, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "movieview:", err)
		os.Exit(1)
	}
}

func (c *commands) run(ctx context.Context, selected string, out io.Writer) error {
	api, err := client.New(*c.apiURL, client.WithToken(*c.token))
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, *c.timeout)
	defer cancel()

	switch selected {
	case c.search.FullCommand():
		result, err := api.Search(ctx, strings.Join(*c.searchQuery, " "))
		if err != nil {
			return err
		}
		renderSearch(out, result)

	case c.show.FullCommand():
		view := client.NewDetailView(api, client.OnDetailChange(func(s client.DetailSnapshot) {
			if s.State == client.StateLoading {
				fmt.Fprintln(out, "Loading...")
			}
		}))
		snap := view.Open(ctx, *c.showID)
		renderDetail(out, snap)
		// The screen is the same for every failure; only a real 404 goes unreported
		if snap.State == client.StateNotFound && snap.Err != nil && !client.IsNotFound(snap.Err) {
			fmt.Fprintf(c.diag, "movieview: %v\n", snap.Err)
		}

	case c.comments.FullCommand():
		view := client.NewCommentsView(api)
		renderComments(out, view.Load(ctx, *c.commentsID))

	case c.comment.FullCommand():
		view := client.NewCommentsView(api)
		view.Load(ctx, *c.commentID)
		_, snap, err := view.Post(ctx, strings.Join(*c.commentBody, " "))
		if err != nil {
			return err
		}
		renderComments(out, snap)

	case c.register.FullCommand():
		resp, err := api.Register(ctx, *c.registerUsername, *c.registerEmail, *c.registerPassword)
		if err != nil {
			return err
		}
		renderSession(out, resp.User.Username, resp.Token, resp.ExpiresAt)

	case c.login.FullCommand():
		resp, err := api.Login(ctx, *c.loginUsername, *c.loginPassword)
		if err != nil {
			return err
		}
		renderSession(out, resp.User.Username, resp.Token, resp.ExpiresAt)

	case c.me.FullCommand():
		user, err := api.Me(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s <%s>\nid: %s\nmember since %s\n",
			user.Username, user.Email, user.ID, user.CreatedAt.Format("2006-01-02"))

	default:
		return fmt.Errorf("unknown command %q", selected)
	}

	return nil
}
