package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/PrafullShinde28/CAMPUSAI/internal/models"
)

type stubCompletedQuizzes struct {
	quizzes []*models.Quiz
}

func (s *stubCompletedQuizzes) ListCompletedByUser(ctx context.Context, userID uuid.UUID) ([]*models.Quiz, error) {
	return s.quizzes, nil
}

func intPtr(v int) *int { return &v }

func TestExplain(t *testing.T) {
	assistant := &fakeAssistant{text: "Entropy measures disorder."}
	h := NewLearningHandler(assistant, &stubCompletedQuizzes{}, &stubStudyPlanRepo{}, nopLog)

	rr := httptest.NewRecorder()
	h.Explain(rr, newRequest(t, http.MethodPost, "/api/learning-buddy/explain", `{"concept": "Entropy"}`, testUser(), nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var body map[string]string
	decodeBody(t, rr, &body)
	if body["explanation"] != "Entropy measures disorder." || assistant.gotConcept != "Entropy" {
		t.Fatalf("unexpected response %v", body)
	}

	rr = httptest.NewRecorder()
	h.Explain(rr, newRequest(t, http.MethodPost, "/", `{"context": "physics"}`, testUser(), nil))
	expectMessage(t, rr, http.StatusBadRequest, "Invalid data")

	h = NewLearningHandler(&fakeAssistant{err: errors.New("deadline exceeded")}, &stubCompletedQuizzes{}, &stubStudyPlanRepo{}, nopLog)
	rr = httptest.NewRecorder()
	h.Explain(rr, newRequest(t, http.MethodPost, "/", `{"concept": "Entropy"}`, testUser(), nil))
	expectMessage(t, rr, http.StatusInternalServerError, "Failed to explain concept")
}

func TestPerformance(t *testing.T) {
	user := testUser()
	plans := &stubStudyPlanRepo{plans: []*models.StudyPlan{
		{UserID: user.ID, Duration: intPtr(90)},
		{UserID: user.ID, Duration: intPtr(30)},
		{UserID: user.ID},
		{UserID: uuid.New(), Duration: intPtr(600)},
	}}
	quizzes := &stubCompletedQuizzes{quizzes: []*models.Quiz{{Subject: "Physics", Score: intPtr(4), TotalQuestions: 5}}}
	assistant := &fakeAssistant{text: "Keep going."}
	h := NewLearningHandler(assistant, quizzes, plans, nopLog)

	rr := httptest.NewRecorder()
	h.Performance(rr, newRequest(t, http.MethodGet, "/api/analytics/performance", nil, user, nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var body map[string]string
	decodeBody(t, rr, &body)
	if body["analysis"] != "Keep going." {
		t.Fatalf("unexpected analysis %v", body)
	}
	if assistant.gotHours != 2 || assistant.gotQuizzes != 1 {
		t.Fatalf("expected 2 hours and 1 quiz, got %v and %d", assistant.gotHours, assistant.gotQuizzes)
	}
}
