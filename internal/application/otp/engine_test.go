package otp

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/estate-api/internal/domain"
	redisinfra "github.com/estate-api/internal/infrastructure/redis"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockSMSSender struct{ mock.Mock }

func (m *mockSMSSender) SendSMS(ctx context.Context, to, message string) error {
	return m.Called(ctx, to, message).Error(0)
}

func newTestEngine(t *testing.T, sms SMSSender) (*Engine, *miniredis.Miniredis, *redisinfra.OTPStore) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := redisinfra.NewOTPStore(client)
	return NewEngine(store, sms, 5*time.Minute), mr, store
}

func TestIssue_StoresRecordAndSendsSMS(t *testing.T) {
	sms := &mockSMSSender{}
	sms.On("SendSMS", mock.Anything, "+12025550100", mock.AnythingOfType("string")).Return(nil)

	engine, _, store := newTestEngine(t, sms)
	requestID, err := engine.Issue(context.Background(), "+12025550100")

	require.NoError(t, err)
	require.NotEmpty(t, requestID)

	rec, err := store.Get(context.Background(), requestID)
	require.NoError(t, err)
	assert.Equal(t, "+12025550100", rec.PhoneNumber)
	assert.Len(t, rec.Code, 6)
	sms.AssertExpectations(t)
}

func TestIssue_SMSFailure_ReturnsGatewayError(t *testing.T) {
	sms := &mockSMSSender{}
	sms.On("SendSMS", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("sns down"))

	engine, _, _ := newTestEngine(t, sms)
	_, err := engine.Issue(context.Background(), "+12025550100")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrGateway))
}

func TestVerify_HappyPath_ConsumesRecord(t *testing.T) {
	sms := &mockSMSSender{}
	sms.On("SendSMS", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	engine, _, store := newTestEngine(t, sms)
	requestID, err := engine.Issue(context.Background(), "+12025550100")
	require.NoError(t, err)

	rec, err := store.Get(context.Background(), requestID)
	require.NoError(t, err)

	require.NoError(t, engine.Verify(context.Background(), "+12025550100", rec.Code, requestID))

	// The record is gone after a successful verification.
	err = engine.Verify(context.Background(), "+12025550100", rec.Code, requestID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrOtpNotFound))
}

func TestVerify_WrongCode_KeepsRecordLive(t *testing.T) {
	sms := &mockSMSSender{}
	sms.On("SendSMS", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	engine, _, store := newTestEngine(t, sms)
	requestID, err := engine.Issue(context.Background(), "+12025550100")
	require.NoError(t, err)

	err = engine.Verify(context.Background(), "+12025550100", "000000", requestID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrOtpMismatch))

	// A mismatch must not consume the record; the right code still works.
	rec, err := store.Get(context.Background(), requestID)
	require.NoError(t, err)
	require.NoError(t, engine.Verify(context.Background(), "+12025550100", rec.Code, requestID))
}

func TestVerify_WrongPhone_ReturnsMismatch(t *testing.T) {
	sms := &mockSMSSender{}
	sms.On("SendSMS", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	engine, _, store := newTestEngine(t, sms)
	requestID, err := engine.Issue(context.Background(), "+12025550100")
	require.NoError(t, err)

	rec, err := store.Get(context.Background(), requestID)
	require.NoError(t, err)

	err = engine.Verify(context.Background(), "+99999999999", rec.Code, requestID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrOtpMismatch))
}

func TestVerify_Expired_ReturnsNotFound(t *testing.T) {
	sms := &mockSMSSender{}
	sms.On("SendSMS", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	engine, mr, store := newTestEngine(t, sms)
	requestID, err := engine.Issue(context.Background(), "+12025550100")
	require.NoError(t, err)

	rec, err := store.Get(context.Background(), requestID)
	require.NoError(t, err)

	mr.FastForward(6 * time.Minute)

	err = engine.Verify(context.Background(), "+12025550100", rec.Code, requestID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrOtpNotFound))
}

func TestVerify_UnknownRequestID_ReturnsNotFound(t *testing.T) {
	engine, _, _ := newTestEngine(t, &mockSMSSender{})
	err := engine.Verify(context.Background(), "+12025550100", "123456", "no-such-request")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrOtpNotFound))
}

func TestVerify_ConcurrentDuplicates_ExactlyOneWins(t *testing.T) {
	sms := &mockSMSSender{}
	sms.On("SendSMS", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	engine, _, store := newTestEngine(t, sms)
	requestID, err := engine.Issue(context.Background(), "+12025550100")
	require.NoError(t, err)

	rec, err := store.Get(context.Background(), requestID)
	require.NoError(t, err)

	const attempts = 8
	results := make([]error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = engine.Verify(context.Background(), "+12025550100", rec.Code, requestID)
		}(i)
	}
	wg.Wait()

	wins := 0
	for _, err := range results {
		if err == nil {
			wins++
		} else {
			assert.True(t, errors.Is(err, domain.ErrOtpNotFound))
		}
	}
	assert.Equal(t, 1, wins)
}

func TestGenerateCode_SixDigits(t *testing.T) {
	for i := 0; i < 100; i++ {
		code, err := generateCode()
		require.NoError(t, err)
		require.Len(t, code, 6)
		assert.GreaterOrEqual(t, code, "100000")
		assert.LessOrEqual(t, code, "999999")
	}
}
