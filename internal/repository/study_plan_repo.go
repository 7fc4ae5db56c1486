package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/PrafullShinde28/CAMPUSAI/internal/models"
)

type StudyPlanRepo struct {
	pool *pgxpool.Pool
}

func NewStudyPlanRepo(pool *pgxpool.Pool) *StudyPlanRepo {
	return &StudyPlanRepo{pool: pool}
}

const studyPlanColumns = `id, user_id, title, description, scheduled_at, duration, difficulty, completed, created_at`

func scanStudyPlan(row pgx.Row) (*models.StudyPlan, error) {
	p := &models.StudyPlan{}
	err := row.Scan(&p.ID, &p.UserID, &p.Title, &p.Description, &p.ScheduledAt, &p.Duration,
		&p.Difficulty, &p.Completed, &p.CreatedAt)
	if err != nil {
		return nil, translate(err)
	}
	return p, nil
}

func collectStudyPlans(rows pgx.Rows) ([]*models.StudyPlan, error) {
	defer rows.Close()

	plans := make([]*models.StudyPlan, 0)
	for rows.Next() {
		p, err := scanStudyPlan(rows)
		if err != nil {
			return nil, err
		}
		plans = append(plans, p)
	}
	return plans, rows.Err()
}

func (r *StudyPlanRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.StudyPlan, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+studyPlanColumns+` FROM study_plans WHERE user_id = $1 ORDER BY scheduled_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	return collectStudyPlans(rows)
}

const insertStudyPlan = `
	INSERT INTO study_plans (id, user_id, title, description, scheduled_at, duration, difficulty, completed)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	RETURNING created_at`

func (r *StudyPlanRepo) Create(ctx context.Context, p *models.StudyPlan) error {
	p.ID = uuid.New()
	return r.pool.QueryRow(ctx, insertStudyPlan,
		p.ID, p.UserID, p.Title, p.Description, p.ScheduledAt, p.Duration, p.Difficulty, p.Completed,
	).Scan(&p.CreatedAt)
}

// CreateBatch inserts all plans or none.
func (r *StudyPlanRepo) CreateBatch(ctx context.Context, plans []*models.StudyPlan) error {
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		for i, p := range plans {
			p.ID = uuid.New()
			err := tx.QueryRow(ctx, insertStudyPlan,
				p.ID, p.UserID, p.Title, p.Description, p.ScheduledAt, p.Duration, p.Difficulty, p.Completed,
			).Scan(&p.CreatedAt)
			if err != nil {
				return fmt.Errorf("insert study plan %d: %w", i, err)
			}
		}
		return nil
	})
}

// Update applies the non-nil fields of req to a plan owned by userID.
// Rescheduling a plan re-arms its reminder.
func (r *StudyPlanRepo) Update(ctx context.Context, id, userID uuid.UUID, req models.UpdateStudyPlanRequest) (*models.StudyPlan, error) {
	query := `
		UPDATE study_plans
		SET title = COALESCE($3, title),
			description = COALESCE($4, description),
			scheduled_at = COALESCE($5, scheduled_at),
			duration = COALESCE($6, duration),
			difficulty = COALESCE($7, difficulty),
			completed = COALESCE($8, completed),
			reminder_sent_at = CASE WHEN $5::timestamptz IS NULL THEN reminder_sent_at ELSE NULL END
		WHERE id = $1 AND user_id = $2
		RETURNING ` + studyPlanColumns

	return scanStudyPlan(r.pool.QueryRow(ctx, query, id, userID,
		req.Title, req.Description, req.ScheduledAt, req.Duration, req.Difficulty, req.Completed,
	))
}

// ListDueForReminder returns open plans starting in [from, until] that have not been reminded yet.
func (r *StudyPlanRepo) ListDueForReminder(ctx context.Context, from, until time.Time, limit int) ([]*models.StudyPlan, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+studyPlanColumns+`
		FROM study_plans
		WHERE completed = FALSE
		  AND reminder_sent_at IS NULL
		  AND scheduled_at >= $1
		  AND scheduled_at <= $2
		ORDER BY scheduled_at
		LIMIT $3
	`, from, until, limit)
	if err != nil {
		return nil, err
	}
	return collectStudyPlans(rows)
}

// MarkReminderSent claims the reminder for a plan. It reports false when
// another process already claimed it.
func (r *StudyPlanRepo) MarkReminderSent(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE study_plans SET reminder_sent_at = NOW() WHERE id = $1 AND reminder_sent_at IS NULL`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}
