package otp

import (
	"context"
	goerrors "errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"internship-recommender/internal/common/config"
	"internship-recommender/internal/common/errors"
	"internship-recommender/internal/common/logger"
	"internship-recommender/internal/common/observability"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSender struct {
	mock.Mock
}

func (m *MockSender) SendOTP(ctx context.Context, email, code string) error {
	args := m.Called(ctx, email, code)
	return args.Error(0)
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func testConfig() *Config {
	return &Config{
		TTL:         DefaultTTL,
		MaxAttempts: DefaultMaxAttempts,
		Retention:   DefaultRetention,
	}
}

func fixedCodes(codes ...string) func() (string, error) {
	i := 0
	return func() (string, error) {
		c := codes[i%len(codes)]
		i++
		return c, nil
	}
}

func newTestService(t *testing.T, cfg *Config, store Store, sender CodeSender, clock *fakeClock, codes ...string) *Service {
	return NewService(cfg, store, sender, logger.NewTestLogger(t), observability.Nop(),
		WithClock(clock.Now),
		WithCodeGenerator(fixedCodes(codes...)),
	)
}

func errorCode(t *testing.T, err error) errors.ErrorCode {
	t.Helper()
	var stdErr *errors.StandardError
	require.True(t, goerrors.As(err, &stdErr), "expected StandardError, got %v", err)
	return stdErr.Code
}

func TestService_SendThenVerifySucceedsOnce(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{now: time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)}
	sender := new(MockSender)
	sender.On("SendOTP", mock.Anything, "a@example.com", "123456").Return(nil).Once()

	svc := newTestService(t, testConfig(), NewMemoryStore(), sender, clock, "123456")

	require.NoError(t, svc.Send(ctx, "a@example.com"))
	require.NoError(t, svc.Verify(ctx, "a@example.com", "123456"))

	err := svc.Verify(ctx, "a@example.com", "123456")
	assert.Equal(t, errors.ErrCodeOTPNotFound, errorCode(t, err))
	sender.AssertExpectations(t)
}

func TestService_ExhaustionBeatsCorrectCode(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{now: time.Now()}
	svc := newTestService(t, testConfig(), NewMemoryStore(), nil, clock, "654321")

	require.NoError(t, svc.Send(ctx, "b@example.com"))

	for want := 2; want >= 0; want-- {
		err := svc.Verify(ctx, "b@example.com", "000000")
		var stdErr *errors.StandardError
		require.True(t, goerrors.As(err, &stdErr))
		assert.Equal(t, errors.ErrCodeOTPInvalid, stdErr.Code)
		assert.Equal(t, want, stdErr.Metadata["attempts_remaining"])
	}

	err := svc.Verify(ctx, "b@example.com", "654321")
	assert.Equal(t, errors.ErrCodeOTPAttemptsExceeded, errorCode(t, err))

	// the exhausted record is gone
	err = svc.Verify(ctx, "b@example.com", "654321")
	assert.Equal(t, errors.ErrCodeOTPNotFound, errorCode(t, err))
}

func TestService_ExpiredRegardlessOfCode(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{now: time.Now()}
	svc := newTestService(t, testConfig(), NewMemoryStore(), nil, clock, "111111")

	require.NoError(t, svc.Send(ctx, "c@example.com"))
	clock.Advance(DefaultTTL + time.Second)

	err := svc.Verify(ctx, "c@example.com", "111111")
	assert.Equal(t, errors.ErrCodeOTPExpired, errorCode(t, err))
}

func TestService_ExactExpiryInstantIsStillValid(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{now: time.Now()}
	svc := newTestService(t, testConfig(), NewMemoryStore(), nil, clock, "111111")

	require.NoError(t, svc.Send(ctx, "c@example.com"))
	clock.Advance(DefaultTTL)

	assert.NoError(t, svc.Verify(ctx, "c@example.com", "111111"))
}

func TestService_ResendOverwritesCodeAndAttempts(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{now: time.Now()}
	svc := newTestService(t, testConfig(), NewMemoryStore(), nil, clock, "111111", "222222")

	require.NoError(t, svc.Send(ctx, "d@example.com"))
	for i := 0; i < 2; i++ {
		_ = svc.Verify(ctx, "d@example.com", "999999")
	}
	clock.Advance(4 * time.Minute)

	require.NoError(t, svc.Resend(ctx, "d@example.com"))
	clock.Advance(2 * time.Minute)

	err := svc.Verify(ctx, "d@example.com", "111111")
	var stdErr *errors.StandardError
	require.True(t, goerrors.As(err, &stdErr))
	assert.Equal(t, errors.ErrCodeOTPInvalid, stdErr.Code)
	assert.Equal(t, 2, stdErr.Metadata["attempts_remaining"])

	assert.NoError(t, svc.Verify(ctx, "d@example.com", "222222"))
}

func TestService_RequiredFields(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, testConfig(), NewMemoryStore(), nil, &fakeClock{now: time.Now()}, "123456")

	err := svc.Send(ctx, "")
	require.Error(t, err)
	assert.Equal(t, "Email is required", err.(*errors.StandardError).Message)

	err = svc.Verify(ctx, "a@example.com", "")
	require.Error(t, err)
	assert.Equal(t, "Email and OTP are required", err.(*errors.StandardError).Message)
}

func TestService_DeliveryFailureDoesNotFailSend(t *testing.T) {
	ctx := context.Background()
	sender := new(MockSender)
	sender.On("SendOTP", mock.Anything, "e@example.com", "123456").Return(goerrors.New("relay down"))

	store := NewMemoryStore()
	svc := newTestService(t, testConfig(), store, sender, &fakeClock{now: time.Now()}, "123456")

	require.NoError(t, svc.Send(ctx, "e@example.com"))
	assert.Equal(t, 1, store.Len())
	assert.NoError(t, svc.Verify(ctx, "e@example.com", "123456"))
}

func TestService_ResendUnthrottledByDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("app:\n  name: recommender\n"), 0o600))
	appCfg, err := config.LoadFromFile(path)
	require.NoError(t, err)
	cfg := LoadConfig(appCfg)
	require.Zero(t, cfg.RatePerMinute)

	ctx := WithClient(context.Background(), "203.0.113.7")
	svc := newTestService(t, cfg, NewMemoryStore(), nil, &fakeClock{now: time.Now()}, "111111", "222222", "333333", "444444", "555555")

	require.NoError(t, svc.Send(ctx, "f@example.com"))
	for i := 0; i < 4; i++ {
		assert.NoError(t, svc.Resend(ctx, "f@example.com"), "resend %d", i+1)
	}
	assert.NoError(t, svc.Verify(ctx, "f@example.com", "555555"))
}

func TestService_ThrottlePerClient(t *testing.T) {
	cfg := testConfig()
	cfg.RatePerMinute = 1
	cfg.RateBurst = 2
	clock := &fakeClock{now: time.Now()}
	svc := newTestService(t, cfg, NewMemoryStore(), nil, clock, "123456")

	alice := WithClient(context.Background(), "198.51.100.1")
	bob := WithClient(context.Background(), "198.51.100.2")

	require.NoError(t, svc.Send(alice, "f@example.com"))
	require.NoError(t, svc.Send(alice, "g@example.com"))

	// the bucket follows the client, not the address being verified
	err := svc.Resend(alice, "h@example.com")
	assert.Equal(t, errors.ErrCodeRateLimited, errorCode(t, err))

	assert.NoError(t, svc.Resend(bob, "f@example.com"))
	assert.NoError(t, svc.Resend(context.Background(), "f@example.com"), "untagged calls skip the throttle")

	clock.Advance(time.Minute)
	assert.NoError(t, svc.Resend(alice, "f@example.com"))
}

func TestService_Purge(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{now: time.Now()}
	store := NewMemoryStore()
	svc := newTestService(t, testConfig(), store, nil, clock, "123456")

	require.NoError(t, svc.Send(ctx, "g@example.com"))
	clock.Advance(DefaultTTL + time.Minute)
	svc.Purge(ctx)
	assert.Equal(t, 1, store.Len(), "recently expired records stay observable")

	clock.Advance(DefaultRetention)
	svc.Purge(ctx)
	assert.Equal(t, 0, store.Len())
}

func TestService_ExpiredVisibleOnlyWithinRetention(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{now: time.Now()}
	svc := newTestService(t, testConfig(), NewMemoryStore(), nil, clock, "123456")

	require.NoError(t, svc.Send(ctx, "early@example.com"))
	require.NoError(t, svc.Send(ctx, "late@example.com"))

	clock.Advance(DefaultTTL + time.Minute)
	svc.Purge(ctx)
	assert.Equal(t, errors.ErrCodeOTPExpired, errorCode(t, svc.Verify(ctx, "early@example.com", "123456")))

	clock.Advance(DefaultRetention)
	svc.Purge(ctx)
	assert.Equal(t, errors.ErrCodeOTPNotFound, errorCode(t, svc.Verify(ctx, "late@example.com", "123456")))
}

func TestService_StartPurgeRejectsBadSchedule(t *testing.T) {
	cfg := testConfig()
	cfg.PurgeSchedule = "not a schedule"
	svc := newTestService(t, cfg, NewMemoryStore(), nil, &fakeClock{now: time.Now()}, "123456")

	assert.Error(t, svc.StartPurge(context.Background()))

	cfg.PurgeSchedule = "@every 1h"
	require.NoError(t, svc.StartPurge(context.Background()))
	svc.Stop()
}

func TestGenerateCode(t *testing.T) {
	for i := 0; i < 50; i++ {
		code, err := GenerateCode()
		require.NoError(t, err)
		assert.Regexp(t, `^[0-9]{6}$`, code)
	}
}

func TestMemoryStore_ConcurrentVerifySucceedsOnce(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	now := time.Now()
	require.NoError(t, store.Put(ctx, "h@example.com", recordFor("123456", now)))

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		verified int
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := store.Verify(ctx, "h@example.com", "123456", now, DefaultMaxAttempts)
			if err == nil && res.Outcome == OutcomeVerified {
				mu.Lock()
				verified++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, verified)
}
