package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/PrafullShinde28/CAMPUSAI/internal/models"
)

type PeerMatchRepo struct {
	pool *pgxpool.Pool
}

func NewPeerMatchRepo(pool *pgxpool.Pool) *PeerMatchRepo {
	return &PeerMatchRepo{pool: pool}
}

func (r *PeerMatchRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.PeerMatch, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, matched_user_id, compatibility, COALESCE(subjects, '[]'::jsonb), status, created_at
		FROM peer_matches
		WHERE user_id = $1
		ORDER BY compatibility DESC NULLS LAST`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	matches := make([]*models.PeerMatch, 0)
	for rows.Next() {
		m := &models.PeerMatch{}
		if err := rows.Scan(&m.ID, &m.UserID, &m.MatchedUserID, &m.Compatibility, &m.Subjects, &m.Status, &m.CreatedAt); err != nil {
			return nil, err
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}
