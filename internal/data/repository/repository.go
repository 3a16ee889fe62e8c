package repository

import (
	"movie-discovery/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User    UserRepository
	Comment CommentRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:    NewUserRepository(db, log),
		Comment: NewCommentRepository(db, log),
	}
}
