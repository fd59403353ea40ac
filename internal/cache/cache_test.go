package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_EmptyAddrDisablesCache(t *testing.T) {
	assert.Nil(t, New("", "", 0, "taskops:"))
}

func TestNilClientIsAlwaysEmpty(t *testing.T) {
	var c *Client
	ctx := context.Background()

	c.SetJSON(ctx, "report:1", map[string]string{"id": "1"}, time.Minute)

	var dst map[string]string
	assert.False(t, c.GetJSON(ctx, "report:1", &dst))
	assert.Nil(t, dst)

	c.Delete(ctx, "report:1")
	assert.NoError(t, c.Ping(ctx))
	assert.NoError(t, c.Close())
}

func TestKeyPrefix(t *testing.T) {
	c := &Client{prefix: "taskops:"}
	assert.Equal(t, "taskops:report:1", c.key("report:1"))
}

func TestClient_RoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)
	c := New(mr.Addr(), "", 0, "taskops:")
	t.Cleanup(func() { _ = c.Close() })
	ctx := context.Background()

	require.NoError(t, c.Ping(ctx))

	c.SetJSON(ctx, "report:1", map[string]string{"id": "1"}, time.Minute)
	assert.True(t, mr.Exists("taskops:report:1"))
	assert.Equal(t, time.Minute, mr.TTL("taskops:report:1"))

	var dst map[string]string
	require.True(t, c.GetJSON(ctx, "report:1", &dst))
	assert.Equal(t, map[string]string{"id": "1"}, dst)

	c.Delete(ctx, "report:1")
	assert.False(t, mr.Exists("taskops:report:1"))
	assert.False(t, c.GetJSON(ctx, "report:1", &dst))
}

func TestClient_CorruptPayloadIsMiss(t *testing.T) {
	mr := miniredis.RunT(t)
	c := New(mr.Addr(), "", 0, "")
	t.Cleanup(func() { _ = c.Close() })

	require.NoError(t, mr.Set("report:1", "{not json"))

	var dst map[string]string
	assert.False(t, c.GetJSON(context.Background(), "report:1", &dst))
}

func TestClient_UnreachableRedisFailsFast(t *testing.T) {
	c := New("127.0.0.1:1", "", 0, "taskops:")
	t.Cleanup(func() { _ = c.Close() })
	ctx := context.Background()

	start := time.Now()
	c.SetJSON(ctx, "report:1", map[string]string{"id": "1"}, time.Minute)
	var dst map[string]string
	assert.False(t, c.GetJSON(ctx, "report:1", &dst))
	c.Delete(ctx, "report:1")
	c.Delete(ctx, "report:2")

	assert.Less(t, time.Since(start), 2*time.Second)
}
