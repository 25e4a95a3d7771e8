package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRedisClient(t *testing.T) {
	c, err := NewRedisClient("redis://:secret@cache.internal:6380/2")
	require.NoError(t, err)
	assert.Equal(t, "cache.internal:6380", c.Options().Addr)
	assert.Equal(t, "secret", c.Options().Password)
	assert.Equal(t, 2, c.Options().DB)

	c, err = NewRedisClient("localhost:6379")
	require.NoError(t, err)
	assert.Equal(t, "localhost:6379", c.Options().Addr)

	_, err = NewRedisClient("redis://host:port:bad/x")
	assert.Error(t, err)
}
