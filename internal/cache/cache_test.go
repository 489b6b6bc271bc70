package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNilClientIsAlwaysMiss(t *testing.T) {
	var c *Client
	ctx := context.Background()

	assert.NoError(t, c.Set(ctx, "k", []byte("v"), time.Minute))
	data, err := c.Get(ctx, "k")
	assert.NoError(t, err)
	assert.Nil(t, data)
	assert.NoError(t, c.Delete(ctx, "k"))
	assert.Error(t, c.Ping(ctx))
	assert.NoError(t, c.Close())

	c.SetJSON(ctx, "k", []string{"a"}, time.Minute)
	var out []string
	assert.False(t, c.GetJSON(ctx, "k", &out))
}

func TestUnreachableRedisFailsSafe(t *testing.T) {
	// Nothing listens on port 1.
	c := New("127.0.0.1:1", "", 0)
	defer c.Close()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	assert.NoError(t, c.Set(ctx, "k", []byte("v"), time.Minute))
	data, err := c.Get(ctx, "k")
	assert.NoError(t, err)
	assert.Nil(t, data)
	assert.Error(t, c.Ping(ctx))
}
