package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/InsanelyAvner/fp-nurse-app-sub000/internal/lifecycle"
)

// bypassCache builds a cache that is guaranteed to be in bypass mode.
func bypassCache(t *testing.T) *Redis {
	t.Helper()
	t.Setenv("REDIS_HOST", "127.0.0.1")
	t.Setenv("REDIS_PORT", "1") // nothing listens here
	return NewRedis(nil)
}

func TestBypass_GetReturnsMiss(t *testing.T) {
	r := bypassCache(t)
	rows, ok := r.GetApplicants(context.Background(), "applicants:1:v0:::")
	assert.False(t, ok)
	assert.Nil(t, rows)
}

func TestBypass_SetAndInvalidateAreNoOps(t *testing.T) {
	r := bypassCache(t)
	key := r.ApplicantKey(context.Background(), 1, lifecycle.RankOptions{})
	r.SetApplicants(context.Background(), key, []lifecycle.ApplicantRow{{MatchingScore: 50}})
	r.InvalidateJob(context.Background(), 1)

	_, ok := r.GetApplicants(context.Background(), key)
	assert.False(t, ok)
	assert.NoError(t, r.Close())
}

func TestNilCacheIsSafe(t *testing.T) {
	var r *Redis
	_, ok := r.GetApplicants(context.Background(), "k")
	assert.False(t, ok)
	r.SetApplicants(context.Background(), "k", nil)
	r.InvalidateJob(context.Background(), 1)
	assert.NoError(t, r.Close())
	assert.NotEmpty(t, r.ApplicantKey(context.Background(), 1, lifecycle.RankOptions{}))
}

func TestApplicantKey_EncodesOptions(t *testing.T) {
	r := bypassCache(t)

	base := r.ApplicantKey(context.Background(), 7, lifecycle.RankOptions{})
	sorted := r.ApplicantKey(context.Background(), 7, lifecycle.RankOptions{
		SortBy: lifecycle.SortByExperience,
		Order:  lifecycle.OrderAsc,
		Search: "Alice",
	})

	assert.NotEqual(t, base, sorted)
	assert.Contains(t, sorted, "experienceYears")
	assert.Contains(t, sorted, "asc")
	assert.Contains(t, sorted, "alice")

	// Same options, same key.
	assert.Equal(t, sorted, r.ApplicantKey(context.Background(), 7, lifecycle.RankOptions{
		SortBy: lifecycle.SortByExperience,
		Order:  lifecycle.OrderAsc,
		Search: "Alice",
	}))
}
