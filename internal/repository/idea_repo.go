package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/PrafullShinde28/CAMPUSAI/internal/models"
)

type IdeaRepo struct {
	pool *pgxpool.Pool
}

func NewIdeaRepo(pool *pgxpool.Pool) *IdeaRepo {
	return &IdeaRepo{pool: pool}
}

const ideaColumns = `id, title, description, category, user_id, likes, created_at`

func scanIdea(row pgx.Row) (*models.Idea, error) {
	i := &models.Idea{}
	if err := row.Scan(&i.ID, &i.Title, &i.Description, &i.Category, &i.UserID, &i.Likes, &i.CreatedAt); err != nil {
		return nil, translate(err)
	}
	return i, nil
}

func (r *IdeaRepo) List(ctx context.Context) ([]*models.Idea, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+ideaColumns+` FROM ideas ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ideas := make([]*models.Idea, 0)
	for rows.Next() {
		i, err := scanIdea(rows)
		if err != nil {
			return nil, err
		}
		ideas = append(ideas, i)
	}
	return ideas, rows.Err()
}

func (r *IdeaRepo) Create(ctx context.Context, i *models.Idea) error {
	i.ID = uuid.New()
	i.Likes = 0
	return r.pool.QueryRow(ctx, `
		INSERT INTO ideas (id, title, description, category, user_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`,
		i.ID, i.Title, i.Description, i.Category, i.UserID,
	).Scan(&i.CreatedAt)
}

// Like increments the counter in SQL so concurrent likes are never lost.
func (r *IdeaRepo) Like(ctx context.Context, id uuid.UUID) (*models.Idea, error) {
	return scanIdea(r.pool.QueryRow(ctx,
		`UPDATE ideas SET likes = likes + 1 WHERE id = $1 RETURNING `+ideaColumns, id))
}
