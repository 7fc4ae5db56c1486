package handlers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/PrafullShinde28/CAMPUSAI/internal/models"
	"github.com/PrafullShinde28/CAMPUSAI/internal/repository"
	"github.com/PrafullShinde28/CAMPUSAI/internal/services"
)

type stubQuizRepo struct {
	quizzes []*models.Quiz
	points  map[uuid.UUID]int
}

func (s *stubQuizRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Quiz, error) {
	var out []*models.Quiz
	for _, q := range s.quizzes {
		if q.UserID == userID {
			out = append(out, q)
		}
	}
	return out, nil
}

func (s *stubQuizRepo) Create(ctx context.Context, q *models.Quiz) error {
	q.ID = uuid.New()
	q.TotalQuestions = len(q.Questions)
	s.quizzes = append(s.quizzes, q)
	return nil
}

func (s *stubQuizRepo) GetByID(ctx context.Context, id, userID uuid.UUID) (*models.Quiz, error) {
	for _, q := range s.quizzes {
		if q.ID == id && q.UserID == userID {
			return q, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *stubQuizRepo) Complete(ctx context.Context, id, userID uuid.UUID, score int) (*models.Quiz, int, error) {
	q, err := s.GetByID(ctx, id, userID)
	if err != nil {
		return nil, 0, err
	}
	if score > q.TotalQuestions {
		return nil, 0, repository.ErrScoreOutOfRange
	}
	previous := 0
	if q.Completed && q.Score != nil {
		previous = *q.Score
	}
	q.Score = &score
	q.Completed = true
	delta := (score - previous) * models.PointsPerCorrect
	if delta != 0 {
		s.points[userID] += delta
	}
	return q, delta, nil
}

func TestQuizGenerate_Defaults(t *testing.T) {
	repo := &stubQuizRepo{}
	assistant := &fakeAssistant{questions: sampleQuestions(5)}
	h := NewQuizHandler(repo, assistant, &recordingNotifier{}, nopLog)

	rr := httptest.NewRecorder()
	h.Generate(rr, newRequest(t, http.MethodPost, "/api/quizzes/generate", `{"subject": "Algebra"}`, testUser(), nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", rr.Code, rr.Body.String())
	}
	var body struct {
		Quiz models.Quiz `json:"quiz"`
	}
	decodeBody(t, rr, &body)
	if body.Quiz.Title != "Algebra Quiz" || body.Quiz.TotalQuestions != 5 || len(body.Quiz.Questions) != 5 {
		t.Fatalf("unexpected quiz %+v", body.Quiz)
	}
	if assistant.gotCount != 5 || assistant.gotDiff != "Medium" {
		t.Errorf("expected defaults 5/Medium, got %d/%s", assistant.gotCount, assistant.gotDiff)
	}
}

func TestQuizGenerate_MalformedModelOutputCreatesNothing(t *testing.T) {
	repo := &stubQuizRepo{}
	h := NewQuizHandler(repo, &fakeAssistant{err: services.ErrMalformedResponse}, &recordingNotifier{}, nopLog)

	rr := httptest.NewRecorder()
	h.Generate(rr, newRequest(t, http.MethodPost, "/api/quizzes/generate",
		`{"subject": "Algebra", "difficulty": "Beginner", "numQuestions": 5}`, testUser(), nil))

	expectMessage(t, rr, http.StatusInternalServerError, "Failed to generate quiz")
	if len(repo.quizzes) != 0 {
		t.Fatal("expected no quiz to be stored")
	}
}

func TestQuizGenerate_Validation(t *testing.T) {
	for name, body := range map[string]string{
		"missing subject": `{"numQuestions": 5}`,
		"too many":        `{"subject": "Algebra", "numQuestions": 50}`,
		"negative":        `{"subject": "Algebra", "numQuestions": -1}`,
	} {
		t.Run(name, func(t *testing.T) {
			h := NewQuizHandler(&stubQuizRepo{}, &fakeAssistant{}, &recordingNotifier{}, nopLog)
			rr := httptest.NewRecorder()
			h.Generate(rr, newRequest(t, http.MethodPost, "/api/quizzes/generate", body, testUser(), nil))
			expectMessage(t, rr, http.StatusBadRequest, "Invalid data")
		})
	}
}

func TestQuizComplete_PointsFollowRecordedScore(t *testing.T) {
	user := testUser()
	quiz := &models.Quiz{ID: uuid.New(), UserID: user.ID, Title: "Algebra Quiz", Questions: sampleQuestions(5), TotalQuestions: 5}
	repo := &stubQuizRepo{quizzes: []*models.Quiz{quiz}, points: map[uuid.UUID]int{}}
	notifier := &recordingNotifier{}
	h := NewQuizHandler(repo, &fakeAssistant{}, notifier, nopLog)
	params := map[string]string{"id": quiz.ID.String()}

	steps := []struct {
		score      int
		wantPoints int
	}{
		{5, 50},
		{5, 50},
		{0, 0},
		{3, 30},
	}
	for i, step := range steps {
		rr := httptest.NewRecorder()
		body := fmt.Sprintf(`{"score": %d}`, step.score)
		h.Complete(rr, newRequest(t, http.MethodPut, "/api/quizzes/"+quiz.ID.String()+"/complete", body, user, params))
		if rr.Code != http.StatusOK {
			t.Fatalf("step %d: expected 200, got %d (%s)", i, rr.Code, rr.Body.String())
		}
		if *quiz.Score != step.score || repo.points[user.ID] != step.wantPoints {
			t.Fatalf("step %d: expected score %d and %d points, got %d and %d",
				i, step.score, step.wantPoints, *quiz.Score, repo.points[user.ID])
		}
	}

	if len(notifier.sent) != 2 || notifier.sent[0].kind != models.NotificationQuizCompleted {
		t.Fatalf("expected a notification for each points gain, got %+v", notifier.sent)
	}
}

func TestQuizGet(t *testing.T) {
	user := testUser()
	quiz := &models.Quiz{ID: uuid.New(), UserID: user.ID, Title: "Algebra Quiz", TotalQuestions: 5}
	repo := &stubQuizRepo{quizzes: []*models.Quiz{quiz}}
	h := NewQuizHandler(repo, &fakeAssistant{}, &recordingNotifier{}, nopLog)

	rr := httptest.NewRecorder()
	h.Get(rr, newRequest(t, http.MethodGet, "/", nil, user, map[string]string{"id": quiz.ID.String()}))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	rr = httptest.NewRecorder()
	h.Get(rr, newRequest(t, http.MethodGet, "/", nil, testUser(), map[string]string{"id": quiz.ID.String()}))
	expectMessage(t, rr, http.StatusNotFound, "Quiz not found")

	rr = httptest.NewRecorder()
	h.Get(rr, newRequest(t, http.MethodGet, "/", nil, user, map[string]string{"id": "nope"}))
	expectMessage(t, rr, http.StatusBadRequest, "Invalid id")
}

func TestQuizComplete_Rejections(t *testing.T) {
	user := testUser()
	quiz := &models.Quiz{ID: uuid.New(), UserID: user.ID, TotalQuestions: 5}

	tests := []struct {
		name    string
		user    *models.User
		id      string
		body    string
		status  int
		message string
	}{
		{"score above total", user, quiz.ID.String(), `{"score": 6}`, http.StatusBadRequest, "Invalid data"},
		{"negative score", user, quiz.ID.String(), `{"score": -1}`, http.StatusBadRequest, "Invalid data"},
		{"missing score", user, quiz.ID.String(), `{}`, http.StatusBadRequest, "Invalid data"},
		{"unknown quiz", user, uuid.NewString(), `{"score": 1}`, http.StatusNotFound, "Quiz not found"},
		{"foreign quiz", testUser(), quiz.ID.String(), `{"score": 1}`, http.StatusNotFound, "Quiz not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &stubQuizRepo{quizzes: []*models.Quiz{quiz}, points: map[uuid.UUID]int{}}
			h := NewQuizHandler(repo, &fakeAssistant{}, &recordingNotifier{}, nopLog)

			rr := httptest.NewRecorder()
			h.Complete(rr, newRequest(t, http.MethodPut, "/", tt.body, tt.user, map[string]string{"id": tt.id}))

			expectMessage(t, rr, tt.status, tt.message)
			if quiz.Completed || len(repo.points) != 0 {
				t.Fatal("rejected completion must not mutate anything")
			}
		})
	}
}
