//go:build integration

package integration

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/jsamuelsen/quoteflow/internal/adapters/cache"
)

// startRedis runs a throwaway Redis and returns its host:port.
func startRedis(t *testing.T) string {
	t.Helper()

	ctx := t.Context()

	ctr, err := tcredis.Run(ctx,
		"docker.io/redis:7-alpine",
		testcontainers.WithWaitStrategy(
			wait.ForLog("* Ready to accept connections").
				WithOccurrence(1).
				WithStartupTimeout(time.Minute),
		),
	)
	testcontainers.CleanupContainer(t, ctr)
	require.NoError(t, err, "failed to start redis container")

	host, err := ctr.Host(ctx)
	require.NoError(t, err)

	port, err := ctr.MappedPort(ctx, "6379/tcp")
	require.NoError(t, err)

	return fmt.Sprintf("%s:%s", host, port.Port())
}

// TestRedisCache_BacksQuoteLists runs the service on a Redis cache and
// checks that a second stack sharing the same Redis never calls its
// upstream.
func TestRedisCache_BacksQuoteLists(t *testing.T) {
	addr := startRedis(t)

	first := cache.NewRedis(cache.RedisConfig{Addr: addr, Prefix: "quoteflow:"})
	t.Cleanup(func() { _ = first.Close() })

	a := startStack(t, stackOptions{cache: first})

	status, _ := call(t, http.MethodGet, a.URL()+"/api/quotes", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, int32(1), a.zen.calls.Load())

	second := cache.NewRedis(cache.RedisConfig{Addr: addr, Prefix: "quoteflow:"})
	t.Cleanup(func() { _ = second.Close() })

	b := startStack(t, stackOptions{cache: second})

	status, body := call(t, http.MethodGet, b.URL()+"/api/quotes", "")
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(body), "Zen integration quote.")
	assert.Zero(t, b.zen.calls.Load(), "served from the shared cache")
}
