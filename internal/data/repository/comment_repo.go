package repository

import (
	"context"
	"fmt"

	"movie-discovery/internal/data/entity"
	"movie-discovery/pkg/database"

	"go.uber.org/zap"
)

type CommentRepository interface {
	Create(ctx context.Context, comment *entity.Comment) error
	FindByMovieID(ctx context.Context, movieID string) ([]*entity.Comment, error)
}

type commentRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewCommentRepository(db database.PgxIface, log *zap.Logger) CommentRepository {
	return &commentRepository{
		db:  db,
		log: log.With(zap.String("repository", "comment")),
	}
}

func (r *commentRepository) Create(ctx context.Context, comment *entity.Comment) error {
	query := `
		INSERT INTO comments (id, movie_id, user_id, body, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.Exec(ctx, query,
		comment.ID,
		comment.MovieID,
		comment.UserID,
		comment.Body,
		comment.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create comment",
			zap.Error(err),
			zap.String("user_id", comment.UserID.String()),
			zap.String("movie_id", comment.MovieID),
		)
		return fmt.Errorf("create comment for movie %s by user %s: %w",
			comment.MovieID, comment.UserID.String(), err)
	}

	return nil
}

// FindByMovieID returns every comment of a movie, newest first
func (r *commentRepository) FindByMovieID(ctx context.Context, movieID string) ([]*entity.Comment, error) {
	query := `
		SELECT c.id, c.movie_id, c.user_id, u.username, c.body, c.created_at
		FROM comments c
		JOIN users u ON u.id = c.user_id
		WHERE c.movie_id = $1
		ORDER BY c.created_at DESC
	`

	rows, err := r.db.Query(ctx, query, movieID)
	if err != nil {
		r.log.Error("Failed to find comments by movie ID",
			zap.Error(err),
			zap.String("movie_id", movieID),
		)
		return nil, fmt.Errorf("find comments by movie ID %s: %w", movieID, err)
	}
	defer rows.Close()

	comments := []*entity.Comment{}
	for rows.Next() {
		var comment entity.Comment
		err := rows.Scan(
			&comment.ID,
			&comment.MovieID,
			&comment.UserID,
			&comment.AuthorName,
			&comment.Body,
			&comment.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan comment row", zap.Error(err))
			return nil, fmt.Errorf("scan comment row: %w", err)
		}
		comments = append(comments, &comment)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate comment rows: %w", err)
	}

	return comments, nil
}
