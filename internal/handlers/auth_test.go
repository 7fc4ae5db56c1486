package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/PrafullShinde28/CAMPUSAI/internal/middleware"
	"github.com/PrafullShinde28/CAMPUSAI/internal/models"
	"github.com/PrafullShinde28/CAMPUSAI/internal/repository"
	"github.com/PrafullShinde28/CAMPUSAI/internal/services"
)

const testSecret = "0123456789abcdef0123456789abcdef"

type memoryUsers struct {
	mu    sync.Mutex
	byUID map[string]*models.User
}

func (m *memoryUsers) GetByFirebaseUID(ctx context.Context, uid string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.byUID[uid]; ok {
		return u, nil
	}
	return nil, repository.ErrNotFound
}

func (m *memoryUsers) FindOrCreate(ctx context.Context, nu models.NewUser) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.byUID[nu.FirebaseUID]; ok {
		return u, nil
	}
	u := &models.User{ID: uuid.New(), Email: nu.Email, Name: nu.Name, FirebaseUID: nu.FirebaseUID, ProfileImage: nu.ProfileImage}
	m.byUID[nu.FirebaseUID] = u
	return u, nil
}

func newAuthHandler() (*AuthHandler, *services.LocalVerifier, *memoryUsers) {
	verifier := services.NewLocalVerifier(testSecret)
	users := &memoryUsers{byUID: map[string]*models.User{}}
	return NewAuthHandler(middleware.NewAuthenticator(verifier, users, nopLog), nopLog), verifier, users
}

func TestAuthVerify_IdempotentCreate(t *testing.T) {
	h, verifier, users := newAuthHandler()
	token, err := verifier.Sign(services.Claims{UID: "uid-7", Email: "alan@example.com", Picture: "https://img/alan.png"}, time.Hour)
	if err != nil {
		t.Fatal(err)
	}

	var ids []uuid.UUID
	for i := 0; i < 2; i++ {
		rr := httptest.NewRecorder()
		h.Verify(rr, newRequest(t, http.MethodPost, "/api/auth/verify", map[string]string{"idToken": token}, nil, nil))
		if rr.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d (%s)", rr.Code, rr.Body.String())
		}
		var body struct {
			User models.User `json:"user"`
		}
		decodeBody(t, rr, &body)
		if body.User.Name != "alan" {
			t.Errorf("expected name fallback to email local part, got %q", body.User.Name)
		}
		if body.User.ProfileImage == nil || *body.User.ProfileImage != "https://img/alan.png" {
			t.Errorf("expected profile image from claims")
		}
		ids = append(ids, body.User.ID)
	}

	if ids[0] != ids[1] {
		t.Fatalf("expected the same user id twice, got %s and %s", ids[0], ids[1])
	}
	if len(users.byUID) != 1 {
		t.Fatalf("expected exactly one user, got %d", len(users.byUID))
	}
}

func TestAuthVerify_Rejections(t *testing.T) {
	tests := []struct {
		name string
		body interface{}
	}{
		{"garbage token", map[string]string{"idToken": "garbage"}},
		{"missing token", map[string]string{}},
		{"not json", "{"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _, users := newAuthHandler()
			rr := httptest.NewRecorder()
			h.Verify(rr, newRequest(t, http.MethodPost, "/api/auth/verify", tt.body, nil, nil))

			expectMessage(t, rr, http.StatusUnauthorized, "Invalid token")
			if len(users.byUID) != 0 {
				t.Fatal("no user may be created for a rejected token")
			}
		})
	}
}
