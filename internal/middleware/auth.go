package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/PrafullShinde28/CAMPUSAI/internal/logger"
	"github.com/PrafullShinde28/CAMPUSAI/internal/models"
	"github.com/PrafullShinde28/CAMPUSAI/internal/services"
)

type contextKey string

const userKey contextKey = "user"

// UserStore resolves the application user behind a verified identity.
type UserStore interface {
	GetByFirebaseUID(ctx context.Context, uid string) (*models.User, error)
	FindOrCreate(ctx context.Context, nu models.NewUser) (*models.User, error)
}

type Authenticator struct {
	verifier services.TokenVerifier
	users    UserStore
	log      *logger.Logger
}

func NewAuthenticator(verifier services.TokenVerifier, users UserStore, log *logger.Logger) *Authenticator {
	return &Authenticator{verifier: verifier, users: users, log: log}
}

// Resolve verifies token and returns its user, creating the user on first
// sight. Verification failures wrap services.ErrInvalidToken.
func (a *Authenticator) Resolve(ctx context.Context, token string) (*models.User, error) {
	claims, err := a.verifier.Verify(ctx, token)
	if err != nil {
		return nil, err
	}

	user, err := a.users.GetByFirebaseUID(ctx, claims.UID)
	if err == nil {
		return user, nil
	}

	return a.users.FindOrCreate(ctx, NewUserFromClaims(claims))
}

// NewUserFromClaims derives the insert shape for a first login. The name
// falls back to the local part of the email address.
func NewUserFromClaims(c *services.Claims) models.NewUser {
	name := strings.TrimSpace(c.Name)
	if name == "" {
		name, _, _ = strings.Cut(c.Email, "@")
	}

	nu := models.NewUser{
		Email:       c.Email,
		Name:        name,
		FirebaseUID: c.UID,
	}
	if c.Picture != "" {
		picture := c.Picture
		nu.ProfileImage = &picture
	}
	return nu
}

// Middleware authenticates the bearer token and attaches the user to the context.
func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			writeError(w, http.StatusUnauthorized, "No token provided")
			return
		}

		user, err := a.Resolve(r.Context(), token)
		if errors.Is(err, services.ErrInvalidToken) {
			writeError(w, http.StatusUnauthorized, "Invalid token")
			return
		}
		if err != nil {
			a.log.Error("resolve authenticated user",
				"request_id", middleware.GetReqID(r.Context()),
				"error", err,
			)
			writeError(w, http.StatusUnauthorized, "Authentication failed")
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
	})
}

func bearerToken(r *http.Request) (string, bool) {
	parts := strings.SplitN(r.Header.Get("Authorization"), " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || strings.TrimSpace(parts[1]) == "" {
		return "", false
	}
	return strings.TrimSpace(parts[1]), true
}

func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// CurrentUser returns the authenticated user, or nil outside the auth middleware.
func CurrentUser(ctx context.Context) *models.User {
	user, _ := ctx.Value(userKey).(*models.User)
	return user
}

// GetUserID extracts the authenticated user's id from request context
func GetUserID(ctx context.Context) uuid.UUID {
	if user := CurrentUser(ctx); user != nil {
		return user.ID
	}
	return uuid.Nil
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(models.ErrorResponse{Message: message})
}
