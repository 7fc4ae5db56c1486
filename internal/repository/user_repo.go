package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/PrafullShinde28/CAMPUSAI/internal/models"
)

type UserRepo struct {
	pool *pgxpool.Pool
}

func NewUserRepo(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

const userColumns = `id, email, name, profile_image, firebase_uid, study_streak, study_points,
	collaboration_score, created_at, updated_at`

func scanUser(row pgx.Row) (*models.User, error) {
	u := &models.User{}
	err := row.Scan(
		&u.ID, &u.Email, &u.Name, &u.ProfileImage, &u.FirebaseUID, &u.StudyStreak, &u.StudyPoints,
		&u.CollaborationScore, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, translate(err)
	}
	return u, nil
}

func (r *UserRepo) GetByFirebaseUID(ctx context.Context, uid string) (*models.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE firebase_uid = $1`, uid))
}

// FindOrCreate returns the user bound to nu.FirebaseUID, inserting it first if
// needed. Concurrent calls for the same uid resolve to the same row.
func (r *UserRepo) FindOrCreate(ctx context.Context, nu models.NewUser) (*models.User, error) {
	query := `
		INSERT INTO users (id, email, name, profile_image, firebase_uid)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (firebase_uid) DO UPDATE SET firebase_uid = EXCLUDED.firebase_uid
		RETURNING ` + userColumns

	return scanUser(r.pool.QueryRow(ctx, query,
		uuid.New(), nu.Email, nu.Name, nu.ProfileImage, nu.FirebaseUID,
	))
}

func (r *UserRepo) UpdateProfile(ctx context.Context, id uuid.UUID, req models.UpdateProfileRequest) (*models.User, error) {
	query := `
		UPDATE users
		SET name = COALESCE($2, name),
			email = COALESCE($3, email),
			profile_image = COALESCE($4, profile_image),
			updated_at = NOW()
		WHERE id = $1
		RETURNING ` + userColumns

	return scanUser(r.pool.QueryRow(ctx, query, id, req.Name, req.Email, req.ProfileImage))
}
