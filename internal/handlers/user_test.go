package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/PrafullShinde28/CAMPUSAI/internal/models"
	"github.com/PrafullShinde28/CAMPUSAI/internal/repository"
)

type stubUserRepo struct {
	user      *models.User
	takenMail string
	calls     int
}

func (s *stubUserRepo) UpdateProfile(ctx context.Context, id uuid.UUID, req models.UpdateProfileRequest) (*models.User, error) {
	s.calls++
	if req.Email != nil && *req.Email == s.takenMail {
		return nil, repository.ErrDuplicate
	}
	if req.Name != nil {
		s.user.Name = *req.Name
	}
	if req.Email != nil {
		s.user.Email = *req.Email
	}
	return s.user, nil
}

func TestGetProfile(t *testing.T) {
	user := testUser()
	h := NewUserHandler(&stubUserRepo{}, nopLog)

	rr := httptest.NewRecorder()
	h.GetProfile(rr, newRequest(t, http.MethodGet, "/api/user/profile", nil, user, nil))
	var body struct {
		User models.User `json:"user"`
	}
	decodeBody(t, rr, &body)
	if body.User.ID != user.ID {
		t.Fatalf("expected current user, got %+v", body.User)
	}
}

func TestUpdateProfile(t *testing.T) {
	user := testUser()
	repo := &stubUserRepo{user: user, takenMail: "taken@example.com"}
	h := NewUserHandler(repo, nopLog)

	tests := []struct {
		name    string
		body    string
		status  int
		message string
	}{
		{"invalid email", `{"email": "not-an-email"}`, http.StatusBadRequest, "Invalid data"},
		{"empty name", `{"name": ""}`, http.StatusBadRequest, "Invalid data"},
		{"duplicate email", `{"email": "taken@example.com"}`, http.StatusBadRequest, "Email already in use"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			h.UpdateProfile(rr, newRequest(t, http.MethodPut, "/api/user/profile", tt.body, user, nil))
			expectMessage(t, rr, tt.status, tt.message)
		})
	}

	rr := httptest.NewRecorder()
	h.UpdateProfile(rr, newRequest(t, http.MethodPut, "/api/user/profile", `{"name": "Ada L."}`, user, nil))
	if rr.Code != http.StatusOK || user.Name != "Ada L." {
		t.Fatalf("expected name update, got %d (%s)", rr.Code, user.Name)
	}

	calls := repo.calls
	rr = httptest.NewRecorder()
	h.UpdateProfile(rr, newRequest(t, http.MethodPut, "/api/user/profile", `{"studyPoints": 99999}`, user, nil))
	if rr.Code != http.StatusOK || repo.calls != calls || user.StudyPoints != 0 {
		t.Fatal("server-owned counters must be ignored")
	}
}
