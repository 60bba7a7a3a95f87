// internal/services/otp/redis.go
package otp

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"internship-recommender/internal/models"

	"github.com/redis/go-redis/v9"
)

// verifyScript returns {outcome, remaining}. Outcome codes match Outcome.
var verifyScript = redis.NewScript(`
local rec = redis.call('HMGET', KEYS[1], 'code', 'expires_at', 'attempts')
if not rec[1] then
  return {0, 0}
end
local now = tonumber(ARGV[2])
if now > tonumber(rec[2]) then
  redis.call('DEL', KEYS[1])
  return {1, 0}
end
local attempts = tonumber(rec[3]) or 0
local max = tonumber(ARGV[3])
if attempts >= max then
  redis.call('DEL', KEYS[1])
  return {2, 0}
end
if rec[1] == ARGV[1] then
  redis.call('DEL', KEYS[1])
  return {3, 0}
end
attempts = redis.call('HINCRBY', KEYS[1], 'attempts', 1)
return {4, max - attempts}
`)

// RedisStore keeps one hash per email so every replica sees the same record.
// Keys expire retention after the code does, which keeps "expired"
// observable for a while and then lets Redis reclaim the key.
type RedisStore struct {
	client    redis.UniversalClient
	prefix    string
	retention time.Duration
}

func NewRedisStore(client redis.UniversalClient, prefix string, retention time.Duration) *RedisStore {
	return &RedisStore{client: client, prefix: prefix, retention: retention}
}

func (r *RedisStore) key(email string) string {
	return r.prefix + email
}

func (r *RedisStore) Put(ctx context.Context, email string, record models.OTPRecord) error {
	key := r.key(email)
	ttl := time.Until(record.ExpiresAt) + r.retention
	if ttl <= 0 {
		ttl = time.Second
	}

	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key,
			"code", record.Code,
			"expires_at", strconv.FormatInt(record.ExpiresAt.UnixMilli(), 10),
			"attempts", strconv.Itoa(record.Attempts),
		)
		pipe.Expire(ctx, key, ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to store otp: %w", err)
	}
	return nil
}

func (r *RedisStore) Verify(ctx context.Context, email, code string, now time.Time, maxAttempts int) (VerifyResult, error) {
	res, err := verifyScript.Run(ctx, r.client,
		[]string{r.key(email)},
		code, now.UnixMilli(), maxAttempts,
	).Int64Slice()
	if err != nil {
		return VerifyResult{}, fmt.Errorf("failed to verify otp: %w", err)
	}
	if len(res) != 2 {
		return VerifyResult{}, fmt.Errorf("unexpected verify reply: %v", res)
	}
	return VerifyResult{Outcome: Outcome(res[0]), Remaining: int(res[1])}, nil
}

// Purge is a no-op: key expiry does the work.
func (r *RedisStore) Purge(context.Context, time.Time, time.Duration) (int, error) {
	return 0, nil
}
