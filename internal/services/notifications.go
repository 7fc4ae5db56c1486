package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/PrafullShinde28/CAMPUSAI/internal/logger"
	"github.com/PrafullShinde28/CAMPUSAI/internal/models"
)

// UserChannel is the pub/sub channel a user's sockets listen on.
func UserChannel(userID uuid.UUID) string {
	return fmt.Sprintf("user_updates:%s", userID.String())
}

type Publisher interface {
	Publish(ctx context.Context, channel string, payload []byte) error
}

type redisPublisher struct {
	client *redis.Client
}

func NewRedisPublisher(client *redis.Client) Publisher {
	return &redisPublisher{client: client}
}

func (p *redisPublisher) Publish(ctx context.Context, channel string, payload []byte) error {
	return p.client.Publish(ctx, channel, payload).Err()
}

type NotificationStore interface {
	Create(ctx context.Context, n *models.Notification) error
}

// NotificationService persists a notification and pushes it to the user's
// live sockets. Delivery is best effort; the stored row is the source of truth.
type NotificationService struct {
	store     NotificationStore
	publisher Publisher
	log       *logger.Logger
}

func NewNotificationService(store NotificationStore, publisher Publisher, log *logger.Logger) *NotificationService {
	return &NotificationService{store: store, publisher: publisher, log: log}
}

func (s *NotificationService) Notify(ctx context.Context, userID uuid.UUID, title, message, kind string) (*models.Notification, error) {
	n := &models.Notification{
		UserID:  userID,
		Title:   title,
		Message: message,
		Type:    kind,
	}
	if err := s.store.Create(ctx, n); err != nil {
		return nil, fmt.Errorf("store notification: %w", err)
	}

	data, err := json.Marshal(models.WSMessage{Type: "notification", Payload: n})
	if err != nil {
		s.log.Error("encode notification", "notification_id", n.ID, "error", err)
		return n, nil
	}
	if err := s.publisher.Publish(ctx, UserChannel(userID), data); err != nil {
		s.log.Warn("publish notification", "user_id", userID, "notification_id", n.ID, "error", err)
	}
	return n, nil
}
