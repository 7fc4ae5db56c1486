package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/PrafullShinde28/CAMPUSAI/internal/models"
)

type QuizRepo struct {
	pool *pgxpool.Pool
}

func NewQuizRepo(pool *pgxpool.Pool) *QuizRepo {
	return &QuizRepo{pool: pool}
}

const quizColumns = `id, user_id, title, subject, questions, score, total_questions, completed, created_at`

func scanQuiz(row pgx.Row) (*models.Quiz, error) {
	q := &models.Quiz{}
	var questions []byte
	err := row.Scan(&q.ID, &q.UserID, &q.Title, &q.Subject, &questions, &q.Score, &q.TotalQuestions,
		&q.Completed, &q.CreatedAt)
	if err != nil {
		return nil, translate(err)
	}
	if err := json.Unmarshal(questions, &q.Questions); err != nil {
		return nil, fmt.Errorf("decode questions of quiz %s: %w", q.ID, err)
	}
	return q, nil
}

func (r *QuizRepo) list(ctx context.Context, query string, args ...any) ([]*models.Quiz, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	quizzes := make([]*models.Quiz, 0)
	for rows.Next() {
		q, err := scanQuiz(rows)
		if err != nil {
			return nil, err
		}
		quizzes = append(quizzes, q)
	}
	return quizzes, rows.Err()
}

func (r *QuizRepo) Create(ctx context.Context, q *models.Quiz) error {
	q.ID = uuid.New()
	q.TotalQuestions = len(q.Questions)
	questionsBytes, err := json.Marshal(q.Questions)
	if err != nil {
		return fmt.Errorf("encode questions: %w", err)
	}

	query := `INSERT INTO quizzes (id, user_id, title, subject, questions, total_questions)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING created_at`

	return r.pool.QueryRow(ctx, query,
		q.ID, q.UserID, q.Title, q.Subject, questionsBytes, q.TotalQuestions,
	).Scan(&q.CreatedAt)
}

// GetByID returns a quiz owned by userID. Foreign quizzes yield ErrNotFound.
func (r *QuizRepo) GetByID(ctx context.Context, id, userID uuid.UUID) (*models.Quiz, error) {
	return scanQuiz(r.pool.QueryRow(ctx,
		`SELECT `+quizColumns+` FROM quizzes WHERE id = $1 AND user_id = $2`, id, userID))
}

func (r *QuizRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Quiz, error) {
	return r.list(ctx, `SELECT `+quizColumns+` FROM quizzes WHERE user_id = $1 ORDER BY created_at DESC`, userID)
}

func (r *QuizRepo) ListCompletedByUser(ctx context.Context, userID uuid.UUID) ([]*models.Quiz, error) {
	return r.list(ctx, `SELECT `+quizColumns+` FROM quizzes
		WHERE user_id = $1 AND completed = TRUE ORDER BY created_at DESC`, userID)
}

// Complete records the score of a quiz owned by userID and moves the user's
// study points by the change in score*PointsPerCorrect in the same
// transaction, so points always match the recorded score. The first
// completion awards score*PointsPerCorrect. It returns the points delta.
func (r *QuizRepo) Complete(ctx context.Context, id, userID uuid.UUID, score int) (*models.Quiz, int, error) {
	var (
		quiz  *models.Quiz
		delta int
	)

	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		var total, previous int
		err := tx.QueryRow(ctx,
			`SELECT total_questions, CASE WHEN completed THEN COALESCE(score, 0) ELSE 0 END
			FROM quizzes WHERE id = $1 AND user_id = $2 FOR UPDATE`,
			id, userID,
		).Scan(&total, &previous)
		if err != nil {
			return translate(err)
		}
		if score > total {
			return ErrScoreOutOfRange
		}

		quiz, err = scanQuiz(tx.QueryRow(ctx,
			`UPDATE quizzes SET score = $2, completed = TRUE WHERE id = $1 RETURNING `+quizColumns,
			id, score,
		))
		if err != nil {
			return err
		}

		delta = (score - previous) * models.PointsPerCorrect
		if delta == 0 {
			return nil
		}

		_, err = tx.Exec(ctx,
			`UPDATE users SET study_points = study_points + $2, updated_at = NOW() WHERE id = $1`,
			userID, delta,
		)
		if err != nil {
			return fmt.Errorf("award study points: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return quiz, delta, nil
}
