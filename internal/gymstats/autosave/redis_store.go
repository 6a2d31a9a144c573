package autosave

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/gymtracker/internal/gymstats/workout"
	"github.com/2beens/gymtracker/internal/telemetry/tracing"
)

const (
	keyPrefix = "gymtracker-autosave||"
	indexKey  = "gymtracker-autosave-index"
)

// RedisStore keeps one snapshot per workout under its own key, plus a set
// indexing the workout IDs that have a snapshot.
type RedisStore struct {
	redisClient *redis.Client
}

func NewRedisStore(redisClient *redis.Client) *RedisStore {
	return &RedisStore{
		redisClient: redisClient,
	}
}

func snapshotKey(workoutID string) string {
	return keyPrefix + workoutID
}

func (s *RedisStore) Get(ctx context.Context, workoutID string) (_ *workout.Snapshot, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "autosave.redis.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	raw, err := s.redisClient.Get(ctx, snapshotKey(workoutID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, workout.ErrSnapshotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get snapshot [%s]: %w", workoutID, err)
	}

	return decodeSnapshot(raw)
}

func (s *RedisStore) Put(ctx context.Context, workoutID string, snapshot workout.Snapshot) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "autosave.redis.put")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	raw, err := encodeSnapshot(snapshot)
	if err != nil {
		return err
	}

	if err := s.redisClient.Set(ctx, snapshotKey(workoutID), raw, 0).Err(); err != nil {
		return fmt.Errorf("put snapshot [%s]: %w", workoutID, err)
	}
	if err := s.redisClient.SAdd(ctx, indexKey, workoutID).Err(); err != nil {
		return fmt.Errorf("index snapshot [%s]: %w", workoutID, err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, workoutID string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "autosave.redis.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := s.redisClient.Del(ctx, snapshotKey(workoutID)).Err(); err != nil {
		return fmt.Errorf("delete snapshot [%s]: %w", workoutID, err)
	}
	if err := s.redisClient.SRem(ctx, indexKey, workoutID).Err(); err != nil {
		return fmt.Errorf("unindex snapshot [%s]: %w", workoutID, err)
	}
	return nil
}

// List returns the stored snapshots, most recently saved first. Index entries
// without a snapshot are dropped from the index.
func (s *RedisStore) List(ctx context.Context) (_ []Entry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "autosave.redis.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	ids, err := s.redisClient.SMembers(ctx, indexKey).Result()
	if err != nil {
		return nil, fmt.Errorf("list snapshot ids: %w", err)
	}

	entries := make([]Entry, 0, len(ids))
	for _, id := range ids {
		snapshot, err := s.Get(ctx, id)
		switch {
		case errors.Is(err, workout.ErrSnapshotNotFound):
			if err := s.redisClient.SRem(ctx, indexKey, id).Err(); err != nil {
				log.Warnf("remove stale autosave index entry [%s]: %s", id, err)
			}
			continue
		case errors.Is(err, workout.ErrSnapshotCorrupted):
			log.Warnf("skipping corrupted autosave [%s]: %s", id, err)
			continue
		case err != nil:
			return nil, err
		}
		entries = append(entries, entryFromSnapshot(id, *snapshot))
	}

	sortEntries(entries)
	return entries, nil
}
