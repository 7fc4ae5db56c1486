package repository

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/PrafullShinde28/CAMPUSAI/internal/database"
	"github.com/PrafullShinde28/CAMPUSAI/internal/logger"
	"github.com/PrafullShinde28/CAMPUSAI/internal/models"
)

// These tests run against a real database and are skipped unless
// TEST_DATABASE_URL points at a disposable Postgres instance.
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	pool, err := database.NewPostgresPool(url)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(pool.Close)

	if err := database.RunMigrations(pool, filepath.Join("..", "..", "migrations"), logger.Nop()); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return pool
}

func testContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func createTestUser(t *testing.T, ctx context.Context, users *UserRepo) *models.User {
	t.Helper()
	uid := uuid.NewString()
	u, err := users.FindOrCreate(ctx, models.NewUser{Email: uid + "@example.com", Name: "Test", FirebaseUID: uid})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u
}

func studyPoints(t *testing.T, ctx context.Context, users *UserRepo, u *models.User) int {
	t.Helper()
	fresh, err := users.GetByFirebaseUID(ctx, u.FirebaseUID)
	if err != nil {
		t.Fatalf("reload user: %v", err)
	}
	return fresh.StudyPoints
}

func TestUserRepo_FindOrCreateIsIdempotent(t *testing.T) {
	pool := testPool(t)
	ctx := testContext(t)
	users := NewUserRepo(pool)

	uid := uuid.NewString()
	nu := models.NewUser{Email: uid + "@example.com", Name: "Ada", FirebaseUID: uid}

	first, err := users.FindOrCreate(ctx, nu)
	if err != nil {
		t.Fatalf("first call: %v", err)
	}
	second, err := users.FindOrCreate(ctx, nu)
	if err != nil {
		t.Fatalf("second call: %v", err)
	}
	if first.ID != second.ID {
		t.Fatalf("expected the same row, got %s and %s", first.ID, second.ID)
	}

	var count int
	if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE firebase_uid = $1`, uid).Scan(&count); err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Fatalf("expected one user row, got %d", count)
	}
}

func TestQuizRepo_CompleteKeepsPointsInStepWithScore(t *testing.T) {
	pool := testPool(t)
	ctx := testContext(t)
	users := NewUserRepo(pool)
	quizzes := NewQuizRepo(pool)
	user := createTestUser(t, ctx, users)

	quiz := &models.Quiz{
		UserID:    user.ID,
		Title:     "Algebra Quiz",
		Subject:   "Algebra",
		Questions: make([]models.QuizQuestion, 5),
	}
	if err := quizzes.Create(ctx, quiz); err != nil {
		t.Fatalf("create quiz: %v", err)
	}

	steps := []struct {
		score      int
		wantDelta  int
		wantPoints int
	}{
		{5, 50, 50},
		{5, 0, 50},
		{0, -50, 0},
		{3, 30, 30},
	}
	for i, step := range steps {
		got, delta, err := quizzes.Complete(ctx, quiz.ID, user.ID, step.score)
		if err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
		if !got.Completed || got.Score == nil || *got.Score != step.score {
			t.Fatalf("step %d: unexpected quiz %+v", i, got)
		}
		if delta != step.wantDelta {
			t.Errorf("step %d: expected delta %d, got %d", i, step.wantDelta, delta)
		}
		if points := studyPoints(t, ctx, users, user); points != step.wantPoints {
			t.Fatalf("step %d: expected %d points, got %d", i, step.wantPoints, points)
		}
	}
}

func TestQuizRepo_CompleteRejections(t *testing.T) {
	pool := testPool(t)
	ctx := testContext(t)
	users := NewUserRepo(pool)
	quizzes := NewQuizRepo(pool)
	owner := createTestUser(t, ctx, users)
	stranger := createTestUser(t, ctx, users)

	quiz := &models.Quiz{UserID: owner.ID, Title: "Q", Subject: "S", Questions: make([]models.QuizQuestion, 3)}
	if err := quizzes.Create(ctx, quiz); err != nil {
		t.Fatal(err)
	}

	if _, _, err := quizzes.Complete(ctx, quiz.ID, owner.ID, 4); !errors.Is(err, ErrScoreOutOfRange) {
		t.Errorf("expected ErrScoreOutOfRange, got %v", err)
	}
	if _, _, err := quizzes.Complete(ctx, quiz.ID, stranger.ID, 1); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for a foreign quiz, got %v", err)
	}
	if _, err := quizzes.GetByID(ctx, quiz.ID, stranger.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected foreign read to be not found, got %v", err)
	}

	stored, err := quizzes.GetByID(ctx, quiz.ID, owner.ID)
	if err != nil {
		t.Fatal(err)
	}
	if stored.Completed || studyPoints(t, ctx, users, owner) != 0 {
		t.Fatal("rejected completions must not change anything")
	}
}

func memberRows(t *testing.T, ctx context.Context, pool *pgxpool.Pool, groupID, userID uuid.UUID) int {
	t.Helper()
	var n int
	err := pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM study_group_members WHERE group_id = $1 AND user_id = $2`, groupID, userID,
	).Scan(&n)
	if err != nil {
		t.Fatal(err)
	}
	return n
}

func TestStudyGroupRepo_CreateAndJoin(t *testing.T) {
	pool := testPool(t)
	ctx := testContext(t)
	users := NewUserRepo(pool)
	groups := NewStudyGroupRepo(pool)
	owner := createTestUser(t, ctx, users)
	joiner := createTestUser(t, ctx, users)

	group := &models.StudyGroup{Name: "Calculus", Subject: "Math", OwnerID: owner.ID}
	if err := groups.Create(ctx, group); err != nil {
		t.Fatalf("create: %v", err)
	}

	stored, err := groups.GetByID(ctx, group.ID)
	if err != nil {
		t.Fatal(err)
	}
	if stored.MembersCount != 1 || !stored.IsActive {
		t.Fatalf("expected one member and active, got %+v", stored)
	}
	if n := memberRows(t, ctx, pool, group.ID, owner.ID); n != 1 {
		t.Fatalf("expected owner membership row, got %d", n)
	}

	joined, err := groups.Join(ctx, group.ID, joiner.ID)
	if err != nil {
		t.Fatalf("join: %v", err)
	}
	if joined.MembersCount != 2 {
		t.Fatalf("expected members_count 2, got %d", joined.MembersCount)
	}
	if n := memberRows(t, ctx, pool, group.ID, joiner.ID); n != 1 {
		t.Fatalf("expected one membership row for joiner, got %d", n)
	}

	mine, err := groups.ListByMember(ctx, joiner.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(mine) != 1 || mine[0].ID != group.ID {
		t.Fatalf("expected joined group in ListByMember, got %+v", mine)
	}

	if _, err := groups.Join(ctx, uuid.New(), joiner.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown group, got %v", err)
	}
}

func TestIdeaRepo_ConcurrentLikes(t *testing.T) {
	pool := testPool(t)
	ctx := testContext(t)
	users := NewUserRepo(pool)
	ideas := NewIdeaRepo(pool)
	author := createTestUser(t, ctx, users)

	idea := &models.Idea{Title: "Flashcards", Description: "Spaced repetition", Category: "tools", UserID: author.ID}
	if err := ideas.Create(ctx, idea); err != nil {
		t.Fatalf("create: %v", err)
	}

	const n = 20
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := ideas.Like(ctx, idea.ID); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("like: %v", err)
	}

	var likes int
	if err := pool.QueryRow(ctx, `SELECT likes FROM ideas WHERE id = $1`, idea.ID).Scan(&likes); err != nil {
		t.Fatal(err)
	}
	if likes != n {
		t.Fatalf("expected %d likes, got %d", n, likes)
	}

	if _, err := ideas.Like(ctx, uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown idea, got %v", err)
	}
}
