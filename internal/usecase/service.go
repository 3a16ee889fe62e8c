package usecase

import (
	"movie-discovery/internal/data/repository"
	"movie-discovery/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth    AuthService
	Movie   MovieService
	Comment CommentService
}

func NewService(
	repo *repository.Repository,
	provider MovieProvider,
	tokens *utils.TokenManager,
	log *zap.Logger,
) *Service {
	return &Service{
		Auth:    NewAuthService(repo.User, tokens, log),
		Movie:   NewMovieService(provider, log),
		Comment: NewCommentService(repo.Comment, log),
	}
}
