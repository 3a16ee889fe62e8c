package utils

import (
	"context"

	"movie-discovery/internal/dto/response"

	"github.com/google/uuid"
)

type contextKey string

const (
	UserIDKey   contextKey = "user_id"
	UsernameKey contextKey = "username"
	UserKey     contextKey = "user"
)

func GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	userIDVal := ctx.Value(UserIDKey)
	if userIDVal == nil {
		return uuid.Nil, false
	}

	userIDStr, ok := userIDVal.(string)
	if !ok {
		return uuid.Nil, false
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return uuid.Nil, false
	}

	return userID, true
}

func GetUsernameFromContext(ctx context.Context) (string, bool) {
	val := ctx.Value(UsernameKey)
	if val == nil {
		return "", false
	}

	username, ok := val.(string)
	return username, ok
}

func SetUserContext(ctx context.Context, userID uuid.UUID, username string) context.Context {
	ctx = context.WithValue(ctx, UserIDKey, userID.String())
	ctx = context.WithValue(ctx, UsernameKey, username)
	return ctx
}

// GetCurrentUserFromContext returns the profile resolved by the auth middleware
func GetCurrentUserFromContext(ctx context.Context) (*response.UserResponse, bool) {
	user, ok := ctx.Value(UserKey).(*response.UserResponse)
	return user, ok && user != nil
}

func SetCurrentUserContext(ctx context.Context, user *response.UserResponse) context.Context {
	return context.WithValue(ctx, UserKey, user)
}
