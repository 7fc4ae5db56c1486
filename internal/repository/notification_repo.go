package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/PrafullShinde28/CAMPUSAI/internal/models"
)

type NotificationRepo struct {
	pool *pgxpool.Pool
}

func NewNotificationRepo(pool *pgxpool.Pool) *NotificationRepo {
	return &NotificationRepo{pool: pool}
}

const notificationColumns = `id, user_id, title, message, type, read, created_at`

func scanNotification(row pgx.Row) (*models.Notification, error) {
	n := &models.Notification{}
	if err := row.Scan(&n.ID, &n.UserID, &n.Title, &n.Message, &n.Type, &n.Read, &n.CreatedAt); err != nil {
		return nil, translate(err)
	}
	return n, nil
}

func (r *NotificationRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Notification, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+notificationColumns+` FROM notifications WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notifications := make([]*models.Notification, 0)
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

func (r *NotificationRepo) Create(ctx context.Context, n *models.Notification) error {
	n.ID = uuid.New()
	n.Read = false
	return r.pool.QueryRow(ctx, `
		INSERT INTO notifications (id, user_id, title, message, type)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`,
		n.ID, n.UserID, n.Title, n.Message, n.Type,
	).Scan(&n.CreatedAt)
}

// MarkRead flips read to true on a notification owned by userID. Repeated
// calls are harmless.
func (r *NotificationRepo) MarkRead(ctx context.Context, id, userID uuid.UUID) (*models.Notification, error) {
	return scanNotification(r.pool.QueryRow(ctx,
		`UPDATE notifications SET read = TRUE WHERE id = $1 AND user_id = $2 RETURNING `+notificationColumns,
		id, userID))
}
