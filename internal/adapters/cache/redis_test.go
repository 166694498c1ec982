package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quoteflow/internal/domain"
)

func TestRedis_UnreachableServer(t *testing.T) {
	c := NewRedis(RedisConfig{Addr: "127.0.0.1:1", Prefix: "qf:"})
	t.Cleanup(func() { _ = c.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	assert.Equal(t, "redis", c.Name())
	assert.Equal(t, "qf:quotes", c.key("quotes"))

	err := c.Check(ctx)
	require.Error(t, err)
	assert.True(t, domain.IsUnavailable(err))

	_, err = c.Get(ctx, "quotes")
	require.Error(t, err)
	assert.False(t, domain.IsNotFound(err), "transport errors are not cache misses")
}
