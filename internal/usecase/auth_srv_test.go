package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"movie-discovery/internal/data/entity"
	"movie-discovery/internal/data/repository"
	"movie-discovery/internal/dto/request"
	"movie-discovery/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// memoryUsers is a UserRepository backed by a map, for end-to-end auth flows
type memoryUsers struct {
	mu    sync.Mutex
	users map[uuid.UUID]*entity.User
}

func newMemoryUsers() *memoryUsers {
	return &memoryUsers{users: map[uuid.UUID]*entity.User{}}
}

func (m *memoryUsers) Create(_ context.Context, user *entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == user.Email || u.Username == user.Username {
			return repository.ErrDuplicate
		}
	}
	cp := *user
	m.users[user.ID] = &cp
	return nil
}

func (m *memoryUsers) find(match func(*entity.User) bool) *entity.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if match(u) {
			cp := *u
			return &cp
		}
	}
	return nil
}

func (m *memoryUsers) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	return m.find(func(u *entity.User) bool { return u.ID == id }), nil
}

func (m *memoryUsers) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	return m.find(func(u *entity.User) bool { return u.Email == email }), nil
}

func (m *memoryUsers) FindByUsername(_ context.Context, username string) (*entity.User, error) {
	return m.find(func(u *entity.User) bool { return u.Username == username }), nil
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestTokens(clock *fakeClock) *utils.TokenManager {
	tokens := utils.NewTokenManager("test-secret", 24*time.Hour, "movie-discovery")
	if clock != nil {
		tokens = tokens.WithClock(clock.Now)
	}
	return tokens
}

func TestAuthFlow(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{now: time.Now()}
	service := NewAuthService(newMemoryUsers(), newTestTokens(clock), zap.NewNop())

	registered, err := service.Register(ctx, &request.RegisterRequest{
		Username: "neo",
		Email:    "Neo@Zion.io",
		Password: "redpill99",
	})
	require.NoError(t, err)
	assert.Equal(t, "neo@zion.io", registered.User.Email, "email is normalized")
	assert.NotEmpty(t, registered.Token)

	t.Run("login by username", func(t *testing.T) {
		resp, err := service.Login(ctx, &request.LoginRequest{Username: "neo", Password: "redpill99"})
		require.NoError(t, err)
		assert.Equal(t, registered.User.ID, resp.User.ID)
		assert.NotEmpty(t, resp.Token)
	})

	t.Run("login by email", func(t *testing.T) {
		resp, err := service.Login(ctx, &request.LoginRequest{Username: "NEO@zion.io", Password: "redpill99"})
		require.NoError(t, err)
		assert.Equal(t, registered.User.ID, resp.User.ID)
	})

	t.Run("wrong password issues no token", func(t *testing.T) {
		resp, err := service.Login(ctx, &request.LoginRequest{Username: "neo", Password: "bluepill99"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
		assert.Nil(t, resp)
	})

	t.Run("unknown user looks the same as wrong password", func(t *testing.T) {
		_, errUnknown := service.Login(ctx, &request.LoginRequest{Username: "smith", Password: "redpill99"})
		_, errWrong := service.Login(ctx, &request.LoginRequest{Username: "neo", Password: "bluepill99"})
		assert.ErrorIs(t, errUnknown, ErrInvalidCredentials)
		assert.Equal(t, errWrong.Error(), errUnknown.Error())
	})

	t.Run("duplicate username", func(t *testing.T) {
		_, err := service.Register(ctx, &request.RegisterRequest{
			Username: "neo", Email: "other@zion.io", Password: "redpill99",
		})
		assert.ErrorIs(t, err, ErrDuplicateUser)
	})

	t.Run("duplicate email", func(t *testing.T) {
		_, err := service.Register(ctx, &request.RegisterRequest{
			Username: "thomas", Email: "neo@zion.io", Password: "redpill99",
		})
		assert.ErrorIs(t, err, ErrDuplicateUser)
	})

	t.Run("token resolves to the same user until expiry", func(t *testing.T) {
		resp, err := service.Login(ctx, &request.LoginRequest{Username: "neo", Password: "redpill99"})
		require.NoError(t, err)

		clock.Advance(23 * time.Hour)
		user, err := service.GetCurrentUser(ctx, resp.Token)
		require.NoError(t, err)
		assert.Equal(t, registered.User.ID, user.ID)
		assert.Equal(t, "neo", user.Username)

		clock.Advance(2 * time.Hour)
		_, err = service.GetCurrentUser(ctx, resp.Token)
		assert.ErrorIs(t, err, ErrUnauthenticated)
	})
}

func TestRegisterValidation(t *testing.T) {
	cases := map[string]request.RegisterRequest{
		"missing username": {Email: "neo@zion.io", Password: "redpill99"},
		"bad email":        {Username: "neo", Email: "zion", Password: "redpill99"},
		"short password":   {Username: "neo", Email: "neo@zion.io", Password: "r3d"},
		"weak password":    {Username: "neo", Email: "neo@zion.io", Password: "redpillred"},
		"password over 72 bytes": {
			Username: "neo", Email: "neo@zion.io", Password: strings.Repeat("é", 40) + "1",
		},
	}

	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			users := new(mockUserRepo)
			service := NewAuthService(users, newTestTokens(nil), zap.NewNop())

			_, err := service.Register(context.Background(), &req)
			assert.ErrorIs(t, err, ErrInvalidInput)
			users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestRegisterValidationFields(t *testing.T) {
	service := NewAuthService(new(mockUserRepo), newTestTokens(nil), zap.NewNop())

	_, err := service.Register(context.Background(), &request.RegisterRequest{
		Username: "neo", Email: "zion", Password: "redpill99",
	})

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, map[string]string{"Email": "Invalid email format"}, validationErr.Fields)
}

func TestRegisterRepositoryFailures(t *testing.T) {
	req := func() *request.RegisterRequest {
		return &request.RegisterRequest{Username: "neo", Email: "neo@zion.io", Password: "redpill99"}
	}

	t.Run("lookup error", func(t *testing.T) {
		users := new(mockUserRepo)
		users.On("FindByEmail", mock.Anything, "neo@zion.io").Return(nil, errors.New("db down"))
		service := NewAuthService(users, newTestTokens(nil), zap.NewNop())

		_, err := service.Register(context.Background(), req())
		assert.ErrorContains(t, err, "db down")
		assert.NotErrorIs(t, err, ErrDuplicateUser)
	})

	t.Run("insert race maps to duplicate", func(t *testing.T) {
		users := new(mockUserRepo)
		users.On("FindByEmail", mock.Anything, "neo@zion.io").Return(nil, nil)
		users.On("FindByUsername", mock.Anything, "neo").Return(nil, nil)
		users.On("Create", mock.Anything, mock.AnythingOfType("*entity.User")).Return(repository.ErrDuplicate)
		service := NewAuthService(users, newTestTokens(nil), zap.NewNop())

		_, err := service.Register(context.Background(), req())
		assert.ErrorIs(t, err, ErrDuplicateUser)
		users.AssertExpectations(t)
	})

	t.Run("stores a bcrypt hash, never the password", func(t *testing.T) {
		users := new(mockUserRepo)
		users.On("FindByEmail", mock.Anything, "neo@zion.io").Return(nil, nil)
		users.On("FindByUsername", mock.Anything, "neo").Return(nil, nil)
		users.On("Create", mock.Anything, mock.MatchedBy(func(u *entity.User) bool {
			return u.PasswordHash != "redpill99" && utils.CheckPasswordHash("redpill99", u.PasswordHash)
		})).Return(nil)
		service := NewAuthService(users, newTestTokens(nil), zap.NewNop())

		_, err := service.Register(context.Background(), req())
		require.NoError(t, err)
		users.AssertExpectations(t)
	})
}

func TestGetCurrentUser(t *testing.T) {
	tokens := newTestTokens(nil)

	t.Run("malformed token", func(t *testing.T) {
		service := NewAuthService(new(mockUserRepo), tokens, zap.NewNop())
		_, err := service.GetCurrentUser(context.Background(), "garbage")
		assert.ErrorIs(t, err, ErrUnauthenticated)
	})

	t.Run("missing token", func(t *testing.T) {
		service := NewAuthService(new(mockUserRepo), tokens, zap.NewNop())
		_, err := service.GetCurrentUser(context.Background(), "")
		assert.ErrorIs(t, err, ErrUnauthenticated)
	})

	t.Run("user deleted after issue", func(t *testing.T) {
		userID := uuid.New()
		token, _, err := tokens.Issue(userID, "ghost")
		require.NoError(t, err)

		users := new(mockUserRepo)
		users.On("FindByID", mock.Anything, userID).Return(nil, nil)
		service := NewAuthService(users, tokens, zap.NewNop())

		_, err = service.GetCurrentUser(context.Background(), token)
		assert.ErrorIs(t, err, ErrUnauthenticated)
	})

	t.Run("store failure is not an auth failure", func(t *testing.T) {
		userID := uuid.New()
		token, _, err := tokens.Issue(userID, "neo")
		require.NoError(t, err)

		users := new(mockUserRepo)
		users.On("FindByID", mock.Anything, userID).Return(nil, errors.New("db down"))
		service := NewAuthService(users, tokens, zap.NewNop())

		_, err = service.GetCurrentUser(context.Background(), token)
		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrUnauthenticated)
	})
}
