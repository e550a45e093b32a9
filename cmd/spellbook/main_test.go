package main

import (
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestCleanup_ClosesRedisClient(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "localhost:0"})
	redisClient = client
	logger = zap.NewNop()
	t.Cleanup(func() {
		redisClient = nil
		logger = nil
	})

	cleanup()

	assert.Nil(t, redisClient)
	assert.ErrorIs(t, client.Close(), redis.ErrClosed)
}

func TestCleanup_NothingToClose(t *testing.T) {
	redisClient = nil
	logger = nil

	assert.NotPanics(t, cleanup)
}
