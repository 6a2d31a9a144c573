package exercises

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/gymtracker/internal/gymstats/workout"
)

const (
	megabyte = 1024 * 1024

	DefaultCatalogCacheSize = 10 * megabyte
	DefaultCatalogCacheTTL  = 30 * time.Minute
)

type exerciseTypeGetter interface {
	GetExerciseType(ctx context.Context, exerciseTypeID string) (_ ExerciseType, err error)
}

// Catalog serves exercise metadata to the session engine, backed by the exercise types
// repo with an in-memory cache in front of it.
type Catalog struct {
	repo     exerciseTypeGetter
	cache    *freecache.Cache
	cacheTTL int
}

func NewCatalog(repo exerciseTypeGetter, cacheSize int, cacheTTL time.Duration) *Catalog {
	if cacheSize <= 0 {
		cacheSize = DefaultCatalogCacheSize
	}
	if cacheTTL <= 0 {
		cacheTTL = DefaultCatalogCacheTTL
	}
	return &Catalog{
		repo:     repo,
		cache:    freecache.NewCache(cacheSize),
		cacheTTL: int(cacheTTL.Seconds()),
	}
}

func cacheKey(exerciseID string) []byte {
	return []byte(fmt.Sprintf("exercise::%s", exerciseID))
}

func (c *Catalog) GetExerciseMetadata(ctx context.Context, exerciseID string) (workout.ExerciseMetadata, error) {
	key := cacheKey(exerciseID)
	if cached, err := c.cache.Get(key); err == nil {
		var meta workout.ExerciseMetadata
		if err := json.Unmarshal(cached, &meta); err == nil {
			return meta, nil
		} else {
			log.Errorf("catalog: unmarshal cached metadata for %s: %s", exerciseID, err)
		}
	}

	exerciseType, err := c.repo.GetExerciseType(ctx, exerciseID)
	if err != nil {
		return workout.ExerciseMetadata{}, fmt.Errorf("get exercise type %s: %w", exerciseID, err)
	}

	meta := exerciseType.Metadata()
	metaBytes, err := json.Marshal(meta)
	if err != nil {
		log.Errorf("catalog: marshal metadata for %s: %s", exerciseID, err)
		return meta, nil
	}
	if err := c.cache.Set(key, metaBytes, c.cacheTTL); err != nil {
		log.Errorf("catalog: cache metadata for %s: %s", exerciseID, err)
	}

	return meta, nil
}

func (c *Catalog) Invalidate(exerciseID string) {
	c.cache.Del(cacheKey(exerciseID))
}
