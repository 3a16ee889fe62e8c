package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"movie-discovery/internal/dto/response"
	"movie-discovery/internal/usecase"
	"movie-discovery/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TokenAuthenticator resolves a bearer token to the user it was issued for
type TokenAuthenticator interface {
	GetCurrentUser(ctx context.Context, token string) (*response.UserResponse, error)
}

// Authenticate rejects requests without a valid bearer token and stores the
// resolved user in the request context.
func Authenticate(auth TokenAuthenticator, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				utils.ResponseUnauthorized(w, "Missing or malformed authorization token. Use: Bearer <token>")
				return
			}

			user, err := auth.GetCurrentUser(r.Context(), token)
			if errors.Is(err, usecase.ErrUnauthenticated) {
				logger.Warn("Rejected session token",
					zap.String("path", r.URL.Path),
					zap.Error(err))
				utils.ResponseUnauthorized(w, "Invalid or expired session")
				return
			}
			if err != nil {
				logger.Error("Failed to validate session",
					zap.String("path", r.URL.Path),
					zap.Error(err))
				utils.ResponseInternalError(w, "Internal server error")
				return
			}

			userID, err := uuid.Parse(user.ID)
			if err != nil {
				logger.Error("Resolved user has malformed ID", zap.String("user_id", user.ID))
				utils.ResponseUnauthorized(w, "Invalid or expired session")
				return
			}

			ctx := utils.SetUserContext(r.Context(), userID, user.Username)
			ctx = utils.SetCurrentUserContext(ctx, user)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", false
	}

	scheme, token, found := strings.Cut(authHeader, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}

	token = strings.TrimSpace(token)
	return token, token != ""
}
