package usecase

import (
	"context"

	"movie-discovery/internal/data/entity"
	"movie-discovery/pkg/omdb"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, user *entity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*entity.User)
	return user, args.Error(1)
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	user, _ := args.Get(0).(*entity.User)
	return user, args.Error(1)
}

func (m *mockUserRepo) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	args := m.Called(ctx, username)
	user, _ := args.Get(0).(*entity.User)
	return user, args.Error(1)
}

type mockCommentRepo struct {
	mock.Mock
}

func (m *mockCommentRepo) Create(ctx context.Context, comment *entity.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *mockCommentRepo) FindByMovieID(ctx context.Context, movieID string) ([]*entity.Comment, error) {
	args := m.Called(ctx, movieID)
	comments, _ := args.Get(0).([]*entity.Comment)
	return comments, args.Error(1)
}

type mockProvider struct {
	mock.Mock
}

func (m *mockProvider) Search(ctx context.Context, query string) ([]omdb.SearchItem, error) {
	args := m.Called(ctx, query)
	items, _ := args.Get(0).([]omdb.SearchItem)
	return items, args.Error(1)
}

func (m *mockProvider) GetByID(ctx context.Context, imdbID string) (*omdb.Movie, error) {
	args := m.Called(ctx, imdbID)
	movie, _ := args.Get(0).(*omdb.Movie)
	return movie, args.Error(1)
}
