package utils

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheKeys(t *testing.T) {
	category := uint(7)
	assert.Equal(t, "reviews:professional:12", ProfessionalReviewsKey(12))
	assert.Equal(t, "users:professionals:all", ProfessionalsKey(nil))
	assert.Equal(t, "users:professionals:category:7", ProfessionalsKey(&category))
	assert.Contains(t, ProfessionalsKey(&category), ProfessionalsPrefix)
}

func TestNopCache(t *testing.T) {
	var c Cache = NopCache{}
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", []int{1, 2}))
	var out []int
	hit, err := c.Get(ctx, "k", &out)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.NoError(t, c.Delete(ctx, "k"))
	assert.NoError(t, c.DeletePrefix(ctx, "k"))
}

func TestRedisCache_UnreachableServer(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 100 * time.Millisecond, MaxRetries: -1})
	t.Cleanup(func() { _ = rdb.Close() })
	c := NewRedisCache(rdb, time.Minute)

	var out string
	hit, err := c.Get(context.Background(), "k", &out)
	assert.Error(t, err)
	assert.False(t, hit)
	assert.NoError(t, c.Delete(context.Background()))
}
