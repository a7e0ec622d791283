package adapter_test

import (
	"context"
	"testing"
	"time"

	"smartnotes/internal/adapter"
	"smartnotes/internal/domain"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisCacheAdapterGet(t *testing.T) {
	t.Run("returns stored value", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		cache := adapter.NewRedisCacheAdapter(client)

		mock.ExpectGet("extraction:abc").SetVal(`{"text": "cached"}`)

		val, err := cache.Get(context.Background(), "extraction:abc")

		require.NoError(t, err)
		assert.Equal(t, `{"text": "cached"}`, val)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing key is a cache miss", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		cache := adapter.NewRedisCacheAdapter(client)

		mock.ExpectGet("extraction:missing").RedisNil()

		_, err := cache.Get(context.Background(), "extraction:missing")

		assert.ErrorIs(t, err, domain.ErrCacheMiss)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRedisCacheAdapterSet(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cache := adapter.NewRedisCacheAdapter(client)

	mock.ExpectSet("extraction:abc", "payload", time.Hour).SetVal("OK")

	err := cache.Set(context.Background(), "extraction:abc", "payload", time.Hour)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisCacheAdapterDelete(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cache := adapter.NewRedisCacheAdapter(client)

	mock.ExpectDel("extraction:abc").SetVal(1)

	err := cache.Delete(context.Background(), "extraction:abc")

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisCacheAdapterPing(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cache := adapter.NewRedisCacheAdapter(client)

	mock.ExpectPing().SetVal("PONG")

	assert.NoError(t, cache.Ping(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
