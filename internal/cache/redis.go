// Package cache provides a Redis-backed read cache for the admin's ranked
// applicant views. The cache is strictly best effort: when Redis is missing
// or down every operation becomes a no-op and callers fall through to the
// database.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/InsanelyAvner/fp-nurse-app-sub000/internal/lifecycle"
)

const applicantTTL = 60 * time.Second

// Redis wraps the go-redis client. A nil receiver or nil client means the
// cache is bypassed.
type Redis struct {
	client *redis.Client
	logger *zap.Logger

	warnedUnavailable atomic.Bool
}

// NewRedis connects using REDIS_HOST / REDIS_PORT / REDIS_PASSWORD. When the
// ping fails the returned cache is a transparent bypass rather than an error.
func NewRedis(logger *zap.Logger) *Redis {
	if logger == nil {
		logger = zap.NewNop()
	}

	host := strings.TrimSpace(os.Getenv("REDIS_HOST"))
	if host == "" {
		host = "localhost"
	}
	port := strings.TrimSpace(os.Getenv("REDIS_PORT"))
	if port == "" {
		port = "6379"
	}
	pass := strings.TrimSpace(os.Getenv("REDIS_PASSWORD"))

	addr := fmt.Sprintf("%s:%s", host, port)
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: pass,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("redis unavailable, bypassing cache", zap.String("addr", addr), zap.Error(err))
		_ = client.Close()
		return &Redis{client: nil, logger: logger}
	}

	return &Redis{client: client, logger: logger}
}

func (r *Redis) isUnavailable() bool {
	return r == nil || r.client == nil
}

func (r *Redis) warnUnavailableOnce(err error) {
	if r.warnedUnavailable.CompareAndSwap(false, true) {
		r.logger.Warn("redis error, bypassing cache", zap.Error(err))
	}
}

// ApplicantKey builds the cache key for a ranked view. The per-job version
// counter makes invalidation a single INCR instead of a key scan.
func (r *Redis) ApplicantKey(ctx context.Context, jobID uint, opts lifecycle.RankOptions) string {
	var version int64
	if !r.isUnavailable() {
		v, err := r.client.Get(ctx, fmt.Sprintf("applicants_ver:%d", jobID)).Int64()
		if err != nil && err != redis.Nil {
			r.warnUnavailableOnce(err)
		}
		version = v
	}
	return fmt.Sprintf("applicants:%d:v%d:%s:%s:%s", jobID, version, opts.SortBy, opts.Order, strings.ToLower(opts.Search))
}

// GetApplicants returns the cached rows for the key, if any.
func (r *Redis) GetApplicants(ctx context.Context, key string) ([]lifecycle.ApplicantRow, bool) {
	if r.isUnavailable() {
		return nil, false
	}

	raw, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			r.warnUnavailableOnce(err)
		}
		return nil, false
	}

	var rows []lifecycle.ApplicantRow
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, false
	}
	return rows, true
}

// SetApplicants stores the rows under the key with a short TTL.
func (r *Redis) SetApplicants(ctx context.Context, key string, rows []lifecycle.ApplicantRow) {
	if r.isUnavailable() {
		return
	}

	raw, err := json.Marshal(rows)
	if err != nil {
		return
	}
	if err := r.client.Set(ctx, key, raw, applicantTTL).Err(); err != nil {
		r.warnUnavailableOnce(err)
	}
}

// InvalidateJob bumps the job's version so stale ranked views expire unread.
func (r *Redis) InvalidateJob(ctx context.Context, jobID uint) {
	if r.isUnavailable() {
		return
	}
	if err := r.client.Incr(ctx, fmt.Sprintf("applicants_ver:%d", jobID)).Err(); err != nil {
		r.warnUnavailableOnce(err)
	}
}

// Close releases the underlying client.
func (r *Redis) Close() error {
	if r.isUnavailable() {
		return nil
	}
	return r.client.Close()
}
