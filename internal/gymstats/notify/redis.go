package notify

import (
	"context"
	"encoding/json"

	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/gymtracker/internal/gymstats/session"
	"github.com/2beens/gymtracker/internal/telemetry/metrics"
)

const channelPrefix = "gymtracker-notifications||"

func Channel(workoutID string) string {
	return channelPrefix + workoutID
}

// RedisNotifier publishes notifications on a per workout pub/sub channel,
// so clients subscribed to their workout receive them in real time.
type RedisNotifier struct {
	rdb            *redis.Client
	metricsManager *metrics.Manager
}

func NewRedisNotifier(rdb *redis.Client, metricsManager *metrics.Manager) *RedisNotifier {
	return &RedisNotifier{
		rdb:            rdb,
		metricsManager: metricsManager,
	}
}

func (n *RedisNotifier) Notify(ctx context.Context, notification session.Notification) {
	payload, err := json.Marshal(notification)
	if err != nil {
		log.Errorf("redis notifier: marshal notification: %s", err)
		return
	}

	if err := n.rdb.Publish(ctx, Channel(notification.WorkoutID), string(payload)).Err(); err != nil {
		log.Errorf("redis notifier: publish %s for %s: %s", notification.Type, notification.WorkoutID, err)
		n.metricsManager.CounterNotificationFailures.WithLabelValues("redis").Inc()
	}
}
