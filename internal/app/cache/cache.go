package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"voxi/internal/app/model"
)

// ResultCache memoizes pipeline results in Redis keyed by the audio
// content hash plus the request options. Cache errors are always
// degraded: a miss is returned and processing proceeds.
type ResultCache struct {
	rdb *redis.Client
	ttl time.Duration
	log *zap.Logger
}

// New connects a result cache. A nil client disables caching and every
// lookup misses.
func New(rdb *redis.Client, ttl time.Duration, log *zap.Logger) *ResultCache {
	if log == nil {
		log = zap.NewNop()
	}
	return &ResultCache{rdb: rdb, ttl: ttl, log: log}
}

// Key derives the cache key for a file and option fingerprint. The file
// is hashed by content so re-uploads of identical audio hit.
func (c *ResultCache) Key(filePath, fingerprint string) (string, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("opening file for hashing: %w", err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hashing file: %w", err)
	}
	return "voxi:result:" + hex.EncodeToString(h.Sum(nil)) + ":" + fingerprint, nil
}

// Get returns the cached transcript for key, or (nil, false) on miss or
// any cache error.
func (c *ResultCache) Get(ctx context.Context, key string) (*model.Transcript, bool) {
	if c == nil || c.rdb == nil {
		return nil, false
	}
	payload, err := c.rdb.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		c.log.Warn("result cache get failed", zap.Error(err))
		return nil, false
	}

	var t model.Transcript
	if err := json.Unmarshal(payload, &t); err != nil {
		c.log.Warn("result cache payload corrupt", zap.Error(err))
		return nil, false
	}
	return &t, true
}

// Set stores a transcript under key, best-effort.
func (c *ResultCache) Set(ctx context.Context, key string, t *model.Transcript) {
	if c == nil || c.rdb == nil {
		return
	}
	payload, err := json.Marshal(t)
	if err != nil {
		c.log.Warn("result cache marshal failed", zap.Error(err))
		return
	}
	if err := c.rdb.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		c.log.Warn("result cache set failed", zap.Error(err))
	}
}
