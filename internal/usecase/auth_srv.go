package usecase

import (
	"context"
	"errors"
	"fmt"
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

type AuthService interface {
	Register(ctx context.Context, req *request.RegisterRequest) (*response.AuthResponse, error)
	Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error)
	GetCurrentUser(ctx context.Context, token string) (*response.UserResponse, error)
}

type authService struct {
	users  repository.UserRepository
	tokens *utils.TokenManager
	log    *zap.Logger
}

func NewAuthService(
	users repository.UserRepository,
	tokens *utils.TokenManager,
	log *zap.Logger,
) AuthService {
	return &authService{
		users:  users,
		tokens: tokens,
		log:    log.With(zap.String("service", "auth")),
	}
}

func (s *authService) Register(ctx context.Context, req *request.RegisterRequest) (*response.AuthResponse, error) {
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	// 1. Validate input
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Register validation failed", zap.Any("errors", errs))
		return nil, &ValidationError{Fields: errs}
	}

	// 2. Email and username must be unused
	existingUser, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if existingUser != nil {
		return nil, fmt.Errorf("%w: email already registered", ErrDuplicateUser)
	}

	existingUser, err = s.users.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if existingUser != nil {
		return nil, fmt.Errorf("%w: username already taken", ErrDuplicateUser)
	}

	// 3. Hash password
	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("process password: %w", err)
	}

	// 4. Save user
	now := time.Now().UTC()
	user := &entity.User{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hashedPassword,
	}

	if err := s.users.Create(ctx, user); err != nil {
		// Lost a race with a concurrent registration
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("%w: username or email already registered", ErrDuplicateUser)
		}
		return nil, fmt.Errorf("create account: %w", err)
	}

	// 5. Log the new user in
	token, expiresAt, err := s.tokens.Issue(user.ID, user.Username)
	if err != nil {
		s.log.Error("Failed to issue token after register",
			zap.Error(err), zap.String("user_id", user.ID.String()))
		return nil, fmt.Errorf("issue token: %w", err)
	}

	s.log.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username))

	resp := response.AuthToResponse(user, token, expiresAt)
	return &resp, nil
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error) {
	req.Username = strings.TrimSpace(req.Username)

	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Login validation failed", zap.Any("errors", errs))
		return nil, &ValidationError{Fields: errs}
	}

	// Identifier may be an email or a username
	var user *entity.User
	var err error
	if strings.Contains(req.Username, "@") {
		user, err = s.users.FindByEmail(ctx, strings.ToLower(req.Username))
	} else {
		user, err = s.users.FindByUsername(ctx, req.Username)
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}

	// Same answer for unknown user and wrong password
	if user == nil {
		s.log.Warn("Login for unknown user", zap.String("identifier", req.Username))
		return nil, ErrInvalidCredentials
	}
	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.log.Warn("Invalid password", zap.String("user_id", user.ID.String()))
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokens.Issue(user.ID, user.Username)
	if err != nil {
		s.log.Error("Failed to issue token", zap.Error(err), zap.String("user_id", user.ID.String()))
		return nil, fmt.Errorf("issue token: %w", err)
	}

	s.log.Info("User logged in",
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username))

	resp := response.AuthToResponse(user, token, expiresAt)
	return &resp, nil
}

func (s *authService) GetCurrentUser(ctx context.Context, token string) (*response.UserResponse, error) {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnauthenticated, err)
	}

	user, err := s.users.FindByID(ctx, claims.UserID())
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		s.log.Warn("Token for missing user", zap.String("user_id", claims.Subject))
		return nil, fmt.Errorf("%w: user no longer exists", ErrUnauthenticated)
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}
