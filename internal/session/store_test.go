package session

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LekaAli/fes/pkg/redis"
)

func setupStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)

	adapter, err := redis.NewRedisAdapter(t.Name(), "fes_test", &redis.Options{
		Addrs: []string{mr.Addr()},
	})
	require.NoError(t, err)

	return NewStore(adapter, time.Hour), mr
}

func TestStore_CreateAndGet(t *testing.T) {
	store, _ := setupStore(t)

	token, err := store.Create(42)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := store.Get(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), userID)
}

func TestStore_GetUnknownToken(t *testing.T) {
	store, _ := setupStore(t)

	_, err := store.Get("not-a-token")
	assert.ErrorIs(t, err, ErrNoSession)

	_, err = store.Get("")
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestStore_Destroy(t *testing.T) {
	store, _ := setupStore(t)

	token, err := store.Create(7)
	require.NoError(t, err)

	require.NoError(t, store.Destroy(token))

	_, err = store.Get(token)
	assert.ErrorIs(t, err, ErrNoSession)

	// destroying twice is harmless
	assert.NoError(t, store.Destroy(token))
}

func TestStore_Expiry(t *testing.T) {
	mr := miniredis.RunT(t)

	adapter, err := redis.NewRedisAdapter(t.Name(), "fes_test", &redis.Options{
		Addrs: []string{mr.Addr()},
	})
	require.NoError(t, err)

	store := NewStore(adapter, time.Minute)

	token, err := store.Create(1)
	require.NoError(t, err)

	mr.FastForward(2 * time.Minute)

	_, err = store.Get(token)
	assert.ErrorIs(t, err, ErrNoSession)
}
