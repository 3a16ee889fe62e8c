// Package client talks to the movie-discovery API and holds the view state
// the movieview CLI renders.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"movie-discovery/internal/dto/request"
	"movie-discovery/internal/dto/response"
)

const apiPrefix = "api/v1"

// APIError is a non-2xx answer from the server
type APIError struct {
	StatusCode int
	Message    string
	Fields     map[string]string
}

func (e *APIError) Error() string {
	if len(e.Fields) == 0 {
		return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("api error %d: %s %v", e.StatusCode, e.Message, e.Fields)
}

// IsNotFound reports whether err is a 404 from the server
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  json.RawMessage `json:"errors"`
}

type Client struct {
	baseURL *url.URL
	http    *http.Client

	mu    sync.RWMutex
	token string
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

func New(baseURL string, opts ...Option) (*Client, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse api url %q: %w", baseURL, err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("api url %q must be absolute", baseURL)
	}

	c := &Client{
		baseURL: base,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

func (c *Client) Register(ctx context.Context, username, email, password string) (*response.AuthResponse, error) {
	req := request.RegisterRequest{Username: username, Email: email, Password: password}

	var resp response.AuthResponse
	if err := c.do(ctx, http.MethodPost, []string{"auth", "register"}, nil, req, &resp); err != nil {
		return nil, err
	}

	c.SetToken(resp.Token)
	return &resp, nil
}

func (c *Client) Login(ctx context.Context, username, password string) (*response.AuthResponse, error) {
	req := request.LoginRequest{Username: username, Password: password}

	var resp response.AuthResponse
	if err := c.do(ctx, http.MethodPost, []string{"auth", "login"}, nil, req, &resp); err != nil {
		return nil, err
	}

	c.SetToken(resp.Token)
	return &resp, nil
}

func (c *Client) Me(ctx context.Context) (*response.UserResponse, error) {
	var user response.UserResponse
	if err := c.do(ctx, http.MethodGet, []string{"auth", "me"}, nil, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) Search(ctx context.Context, query string) (*response.SearchResponse, error) {
	var result response.SearchResponse
	params := url.Values{"q": []string{query}}
	if err := c.do(ctx, http.MethodGet, []string{"movies", "search"}, params, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) GetMovieDetails(ctx context.Context, id string) (*response.MovieDetail, error) {
	var movie response.MovieDetail
	if err := c.do(ctx, http.MethodGet, []string{"movies", id}, nil, nil, &movie); err != nil {
		return nil, err
	}
	return &movie, nil
}

func (c *Client) ListComments(ctx context.Context, movieID string) ([]response.CommentResponse, error) {
	comments := []response.CommentResponse{}
	if err := c.do(ctx, http.MethodGet, []string{"movies", movieID, "comments"}, nil, nil, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

func (c *Client) PostComment(ctx context.Context, movieID, body string) (*response.CommentResponse, error) {
	req := request.CreateCommentRequest{Body: body}

	var comment response.CommentResponse
	if err := c.do(ctx, http.MethodPost, []string{"movies", movieID, "comments"}, nil, req, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

func (c *Client) do(ctx context.Context, method string, path []string, params url.Values, in, out any) error {
	for _, segment := range path {
		if strings.TrimSpace(segment) == "" || strings.Contains(segment, "/") {
			return fmt.Errorf("invalid path segment %q", segment)
		}
	}

	u := c.baseURL.JoinPath(append([]string{apiPrefix}, path...)...)
	if params != nil {
		u.RawQuery = params.Encode()
	}

	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, u.Path, err)
	}
	defer resp.Body.Close()

	var env envelope
	decodeErr := json.NewDecoder(resp.Body).Decode(&env)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: env.Message}
		if decodeErr != nil || apiErr.Message == "" {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}
		if len(env.Errors) > 0 {
			// Only validation failures carry a field map
			_ = json.Unmarshal(env.Errors, &apiErr.Fields)
		}
		return apiErr
	}

	if decodeErr != nil {
		return fmt.Errorf("decode response: %w", decodeErr)
	}
	if out != nil && len(env.Data) > 0 && string(env.Data) != "null" {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("decode data: %w", err)
		}
	}
	return nil
}
