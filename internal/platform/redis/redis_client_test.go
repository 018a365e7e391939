package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewRedisClient はminiredisに接続できることを検証します。
func TestNewRedisClient(t *testing.T) {
	t.Parallel()

	mr := miniredis.RunT(t)

	rdb, err := NewRedisClient(context.Background(), Config{Addr: mr.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdb.Close() })

	require.NoError(t, rdb.Set(context.Background(), "k", "v", 0).Err())
	mr.CheckGet(t, "k", "v")
	assert.NoError(t, Ping(rdb)(context.Background()))
}

// TestNewRedisClient_Password は認証情報が使われることを検証します。
func TestNewRedisClient_Password(t *testing.T) {
	t.Parallel()

	mr := miniredis.RunT(t)
	mr.RequireAuth("secret")

	_, err := NewRedisClient(context.Background(), Config{Addr: mr.Addr()})
	assert.Error(t, err)

	rdb, err := NewRedisClient(context.Background(), Config{Addr: mr.Addr(), Password: "secret"})
	require.NoError(t, err)
	_ = rdb.Close()
}

// TestNewRedisClient_Unreachable は接続できない場合にエラーを返すことを検証します。
func TestNewRedisClient_Unreachable(t *testing.T) {
	t.Parallel()

	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := NewRedisClient(context.Background(), Config{Addr: addr})
	assert.ErrorContains(t, err, "redis ping")
}
