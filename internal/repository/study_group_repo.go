package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/PrafullShinde28/CAMPUSAI/internal/models"
)

type StudyGroupRepo struct {
	pool *pgxpool.Pool
}

func NewStudyGroupRepo(pool *pgxpool.Pool) *StudyGroupRepo {
	return &StudyGroupRepo{pool: pool}
}

const studyGroupColumns = `id, name, subject, description, owner_id, members_count, is_active, created_at`

func scanStudyGroup(row pgx.Row) (*models.StudyGroup, error) {
	g := &models.StudyGroup{}
	err := row.Scan(&g.ID, &g.Name, &g.Subject, &g.Description, &g.OwnerID, &g.MembersCount, &g.IsActive, &g.CreatedAt)
	if err != nil {
		return nil, translate(err)
	}
	return g, nil
}

func (r *StudyGroupRepo) list(ctx context.Context, query string, args ...any) ([]*models.StudyGroup, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	groups := make([]*models.StudyGroup, 0)
	for rows.Next() {
		g, err := scanStudyGroup(rows)
		if err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}

func (r *StudyGroupRepo) ListActive(ctx context.Context) ([]*models.StudyGroup, error) {
	return r.list(ctx, `SELECT `+studyGroupColumns+` FROM study_groups WHERE is_active = TRUE ORDER BY created_at DESC`)
}

func (r *StudyGroupRepo) ListByMember(ctx context.Context, userID uuid.UUID) ([]*models.StudyGroup, error) {
	return r.list(ctx, `
		SELECT `+studyGroupColumns+`
		FROM study_groups g
		WHERE g.is_active = TRUE
		  AND EXISTS (SELECT 1 FROM study_group_members m WHERE m.group_id = g.id AND m.user_id = $1)
		ORDER BY g.created_at DESC`, userID)
}

func (r *StudyGroupRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.StudyGroup, error) {
	return scanStudyGroup(r.pool.QueryRow(ctx, `SELECT `+studyGroupColumns+` FROM study_groups WHERE id = $1`, id))
}

const insertMember = `INSERT INTO study_group_members (id, group_id, user_id) VALUES ($1, $2, $3)`

// Create inserts the group and its owner's membership in one transaction.
func (r *StudyGroupRepo) Create(ctx context.Context, g *models.StudyGroup) error {
	g.ID = uuid.New()
	g.MembersCount = 1
	g.IsActive = true

	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			INSERT INTO study_groups (id, name, subject, description, owner_id, members_count, is_active)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING created_at`,
			g.ID, g.Name, g.Subject, g.Description, g.OwnerID, g.MembersCount, g.IsActive,
		).Scan(&g.CreatedAt)
		if err != nil {
			return fmt.Errorf("insert study group: %w", err)
		}

		if _, err := tx.Exec(ctx, insertMember, uuid.New(), g.ID, g.OwnerID); err != nil {
			return fmt.Errorf("insert owner membership: %w", err)
		}
		return nil
	})
}

// Join adds one membership row and bumps members_count by one, atomically.
// Inactive or unknown groups yield ErrNotFound.
func (r *StudyGroupRepo) Join(ctx context.Context, groupID, userID uuid.UUID) (*models.StudyGroup, error) {
	var group *models.StudyGroup

	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		var err error
		group, err = scanStudyGroup(tx.QueryRow(ctx, `
			UPDATE study_groups SET members_count = members_count + 1
			WHERE id = $1 AND is_active = TRUE
			RETURNING `+studyGroupColumns, groupID))
		if err != nil {
			return err
		}

		if _, err := tx.Exec(ctx, insertMember, uuid.New(), groupID, userID); err != nil {
			return fmt.Errorf("insert membership: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return group, nil
}
