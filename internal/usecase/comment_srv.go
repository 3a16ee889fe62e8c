package usecase

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"movie-discovery/internal/data/entity"
	"movie-discovery/internal/data/repository"
	"movie-discovery/internal/dto/request"
	"movie-discovery/internal/dto/response"
	"movie-discovery/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// movieIDPattern is an IMDb title id that fits comments.movie_id VARCHAR(32)
var movieIDPattern = regexp.MustCompile(`^tt[0-9]{1,30}$`)

func normalizeMovieID(movieID string) (string, error) {
	movieID = strings.TrimSpace(movieID)
	if movieID == "" {
		return "", fmt.Errorf("%w: movie ID is required", ErrInvalidInput)
	}
	if !movieIDPattern.MatchString(movieID) {
		return "", fmt.Errorf("%w: movie ID must look like tt0133093", ErrInvalidInput)
	}
	return movieID, nil
}

type CommentService interface {
	ListByMovie(ctx context.Context, movieID string) ([]response.CommentResponse, error)
	Create(ctx context.Context, userID, username, movieID string, req *request.CreateCommentRequest) (*response.CommentResponse, error)
}

type commentService struct {
	comments repository.CommentRepository
	log      *zap.Logger
}

func NewCommentService(comments repository.CommentRepository, log *zap.Logger) CommentService {
	return &commentService{
		comments: comments,
		log:      log.With(zap.String("service", "comment")),
	}
}

func (s *commentService) ListByMovie(ctx context.Context, movieID string) ([]response.CommentResponse, error) {
	movieID, err := normalizeMovieID(movieID)
	if err != nil {
		return nil, err
	}

	comments, err := s.comments.FindByMovieID(ctx, movieID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}

	resp := make([]response.CommentResponse, 0, len(comments))
	for _, comment := range comments {
		resp = append(resp, response.CommentToResponse(comment))
	}

	return resp, nil
}

func (s *commentService) Create(ctx context.Context, userID, username, movieID string, req *request.CreateCommentRequest) (*response.CommentResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid user ID", ErrUnauthenticated)
	}

	movieID, err = normalizeMovieID(movieID)
	if err != nil {
		return nil, err
	}

	req.Body = strings.TrimSpace(req.Body)
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create comment validation failed", zap.Any("errors", errs))
		return nil, &ValidationError{Fields: errs}
	}

	comment := &entity.Comment{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now().UTC(),
		},
		MovieID:    movieID,
		UserID:     userUUID,
		Body:       req.Body,
		AuthorName: username,
	}

	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}

	s.log.Info("Comment created",
		zap.String("comment_id", comment.ID.String()),
		zap.String("user_id", userID),
		zap.String("movie_id", movieID),
	)

	resp := response.CommentToResponse(comment)
	return &resp, nil
}
