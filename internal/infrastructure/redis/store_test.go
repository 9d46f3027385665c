package redisinfra

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/estate-api/internal/domain"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*OTPStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewOTPStore(client), mr
}

func TestOTPStore_PutGet(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	rec := &domain.OtpRecord{PhoneNumber: "+12025550100", Code: "123456"}
	require.NoError(t, store.Put(ctx, "req-1", rec, 5*time.Minute))

	// Records live under the otp: prefix with the configured TTL.
	assert.True(t, mr.Exists("otp:req-1"))
	assert.InDelta(t, 5*time.Minute, mr.TTL("otp:req-1"), float64(time.Second))

	got, err := store.Get(ctx, "req-1")
	require.NoError(t, err)
	assert.Equal(t, rec.PhoneNumber, got.PhoneNumber)
	assert.Equal(t, rec.Code, got.Code)
}

func TestOTPStore_Get_Missing(t *testing.T) {
	store, _ := newTestStore(t)
	_, err := store.Get(context.Background(), "nope")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrOtpNotFound))
}

func TestOTPStore_Get_DoesNotConsume(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.Put(ctx, "req-1", &domain.OtpRecord{PhoneNumber: "+1", Code: "1"}, time.Minute))

	_, err := store.Get(ctx, "req-1")
	require.NoError(t, err)
	_, err = store.Get(ctx, "req-1")
	require.NoError(t, err)
}

func TestOTPStore_Consume_RemovesRecord(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.Put(ctx, "req-1", &domain.OtpRecord{PhoneNumber: "+1", Code: "1"}, time.Minute))

	got, err := store.Consume(ctx, "req-1")
	require.NoError(t, err)
	assert.Equal(t, "1", got.Code)
	assert.False(t, mr.Exists("otp:req-1"))

	_, err = store.Consume(ctx, "req-1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrOtpNotFound))
}

func TestOTPStore_Expiry(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.Put(ctx, "req-1", &domain.OtpRecord{PhoneNumber: "+1", Code: "1"}, 300*time.Second))

	mr.FastForward(301 * time.Second)

	_, err := store.Get(ctx, "req-1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrOtpNotFound))
}
