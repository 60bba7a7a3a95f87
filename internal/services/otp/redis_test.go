package otp

import (
	"context"
	goerrors "errors"
	"testing"
	"time"

	"internship-recommender/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recordFor(code string, now time.Time) models.OTPRecord {
	return models.OTPRecord{Code: code, ExpiresAt: now.Add(DefaultTTL)}
}

func newRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStore(client, "otp:", DefaultRetention), mr
}

func TestRedisStore_Lifecycle(t *testing.T) {
	ctx := context.Background()
	store, mr := newRedisStore(t)
	now := time.Now()

	require.NoError(t, store.Put(ctx, "a@example.com", recordFor("123456", now)))
	assert.True(t, mr.Exists("otp:a@example.com"))
	assert.Greater(t, mr.TTL("otp:a@example.com"), DefaultTTL)

	res, err := store.Verify(ctx, "a@example.com", "000000", now, DefaultMaxAttempts)
	require.NoError(t, err)
	assert.Equal(t, VerifyResult{Outcome: OutcomeInvalid, Remaining: 2}, res)

	res, err = store.Verify(ctx, "a@example.com", "123456", now, DefaultMaxAttempts)
	require.NoError(t, err)
	assert.Equal(t, OutcomeVerified, res.Outcome)
	assert.False(t, mr.Exists("otp:a@example.com"))

	res, err = store.Verify(ctx, "a@example.com", "123456", now, DefaultMaxAttempts)
	require.NoError(t, err)
	assert.Equal(t, OutcomeNotFound, res.Outcome)
}

func TestRedisStore_Exhaustion(t *testing.T) {
	ctx := context.Background()
	store, _ := newRedisStore(t)
	now := time.Now()

	require.NoError(t, store.Put(ctx, "b@example.com", recordFor("123456", now)))
	for want := 2; want >= 0; want-- {
		res, err := store.Verify(ctx, "b@example.com", "999999", now, DefaultMaxAttempts)
		require.NoError(t, err)
		assert.Equal(t, VerifyResult{Outcome: OutcomeInvalid, Remaining: want}, res)
	}

	res, err := store.Verify(ctx, "b@example.com", "123456", now, DefaultMaxAttempts)
	require.NoError(t, err)
	assert.Equal(t, OutcomeTooManyAttempts, res.Outcome)
}

func TestRedisStore_ExpiredAndOverwrite(t *testing.T) {
	ctx := context.Background()
	store, _ := newRedisStore(t)
	now := time.Now()

	require.NoError(t, store.Put(ctx, "c@example.com", recordFor("111111", now)))
	res, err := store.Verify(ctx, "c@example.com", "111111", now.Add(DefaultTTL+time.Second), DefaultMaxAttempts)
	require.NoError(t, err)
	assert.Equal(t, OutcomeExpired, res.Outcome)

	require.NoError(t, store.Put(ctx, "c@example.com", recordFor("111111", now)))
	_, _ = store.Verify(ctx, "c@example.com", "000000", now, DefaultMaxAttempts)
	require.NoError(t, store.Put(ctx, "c@example.com", recordFor("222222", now)))

	res, err = store.Verify(ctx, "c@example.com", "000000", now, DefaultMaxAttempts)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Remaining, "overwrite resets attempts")
}

func TestRedisStore_VerifyError(t *testing.T) {
	client, mock := redismock.NewClientMock()
	store := NewRedisStore(client, "otp:", DefaultRetention)
	now := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)

	mock.ExpectEvalSha(verifyScript.Hash(), []string{"otp:x@example.com"}, "123456", now.UnixMilli(), DefaultMaxAttempts).
		SetErr(goerrors.New("connection refused"))

	_, err := store.Verify(context.Background(), "x@example.com", "123456", now, DefaultMaxAttempts)
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
