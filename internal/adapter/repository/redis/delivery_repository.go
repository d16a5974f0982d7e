package redis

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const deliveryKeyPrefix = "webhook:delivery:"

// DeliveryRepository implements the domain.DeliveryRepository interface
// using Redis SET NX with a TTL. Webhook deliveries are retried by the
// sender, so replays within the TTL window must be detected and dropped.
type DeliveryRepository struct {
	client *redis.Client
	logger *slog.Logger
}

// NewDeliveryRepository creates a new Redis-backed delivery repository.
func NewDeliveryRepository(client *redis.Client, logger *slog.Logger) *DeliveryRepository {
	return &DeliveryRepository{
		client: client,
		logger: logger.With("component", "delivery_repository"),
	}
}

// MarkSeen records a delivery ID and reports whether it was already seen.
// SET NX is atomic, so concurrent replays of the same delivery resolve to
// exactly one first-seen winner.
func (r *DeliveryRepository) MarkSeen(ctx context.Context, deliveryID string, ttl time.Duration) (bool, error) {
	set, err := r.client.SetNX(ctx, deliveryKeyPrefix+deliveryID, 1, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("marking delivery %s: %w", deliveryID, err)
	}
	return !set, nil
}
