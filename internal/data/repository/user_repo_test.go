package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"movie-discovery/internal/data/entity"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var userColumns = []string{"id", "username", "email", "password", "created_at", "updated_at"}

func newMockPool(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		mock.Close()
	})
	return mock
}

func sampleUser() *entity.User {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	return &entity.User{
		Base:         entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Username:     "neo",
		Email:        "neo@zion.io",
		PasswordHash: "$2a$10$hash",
	}
}

func TestUserRepositoryCreate(t *testing.T) {
	t.Run("inserts row", func(t *testing.T) {
		mock := newMockPool(t)
		repo := NewUserRepository(mock, zap.NewNop())
		user := sampleUser()

		mock.ExpectExec("INSERT INTO users").
			WithArgs(user.ID, user.Username, user.Email, user.PasswordHash, user.CreatedAt, user.UpdatedAt).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		assert.NoError(t, repo.Create(context.Background(), user))
	})

	t.Run("unique violation is duplicate", func(t *testing.T) {
		mock := newMockPool(t)
		repo := NewUserRepository(mock, zap.NewNop())
		user := sampleUser()

		mock.ExpectExec("INSERT INTO users").
			WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

		err := repo.Create(context.Background(), user)
		assert.ErrorIs(t, err, ErrDuplicate)
	})

	t.Run("other errors are wrapped", func(t *testing.T) {
		mock := newMockPool(t)
		repo := NewUserRepository(mock, zap.NewNop())
		boom := errors.New("connection reset")

		mock.ExpectExec("INSERT INTO users").
			WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
			WillReturnError(boom)

		err := repo.Create(context.Background(), sampleUser())
		assert.ErrorIs(t, err, boom)
		assert.NotErrorIs(t, err, ErrDuplicate)
	})
}

func TestUserRepositoryFind(t *testing.T) {
	t.Run("by username", func(t *testing.T) {
		mock := newMockPool(t)
		repo := NewUserRepository(mock, zap.NewNop())
		user := sampleUser()

		mock.ExpectQuery(`WHERE username = \$1`).
			WithArgs("neo").
			WillReturnRows(pgxmock.NewRows(userColumns).
				AddRow(user.ID, user.Username, user.Email, user.PasswordHash, user.CreatedAt, user.UpdatedAt))

		got, err := repo.FindByUsername(context.Background(), "neo")
		require.NoError(t, err)
		assert.Equal(t, user, got)
	})

	t.Run("by email", func(t *testing.T) {
		mock := newMockPool(t)
		repo := NewUserRepository(mock, zap.NewNop())
		user := sampleUser()

		mock.ExpectQuery(`WHERE email = \$1`).
			WithArgs("neo@zion.io").
			WillReturnRows(pgxmock.NewRows(userColumns).
				AddRow(user.ID, user.Username, user.Email, user.PasswordHash, user.CreatedAt, user.UpdatedAt))

		got, err := repo.FindByEmail(context.Background(), "neo@zion.io")
		require.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)
	})

	t.Run("no rows is nil without error", func(t *testing.T) {
		mock := newMockPool(t)
		repo := NewUserRepository(mock, zap.NewNop())
		id := uuid.New()

		mock.ExpectQuery(`WHERE id = \$1`).
			WithArgs(id).
			WillReturnError(pgx.ErrNoRows)

		got, err := repo.FindByID(context.Background(), id)
		assert.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("query failure", func(t *testing.T) {
		mock := newMockPool(t)
		repo := NewUserRepository(mock, zap.NewNop())

		mock.ExpectQuery(`WHERE username = \$1`).
			WithArgs("neo").
			WillReturnError(errors.New("timeout"))

		got, err := repo.FindByUsername(context.Background(), "neo")
		assert.Error(t, err)
		assert.Nil(t, got)
	})
}
