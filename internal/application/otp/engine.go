package otp

import (
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"github.com/estate-api/internal/domain"
	"github.com/google/uuid"
)

// smsBody is the dispatch format for outbound codes.
const smsBody = "Your OTP is %s. Valid for 5 minutes."

// RecordStore is the ephemeral key-value contract the engine needs.
// Consume must be atomic: of two concurrent callers, exactly one receives
// the record and the other gets domain.ErrOtpNotFound.
type RecordStore interface {
	Put(ctx context.Context, requestID string, rec *domain.OtpRecord, ttl time.Duration) error
	Get(ctx context.Context, requestID string) (*domain.OtpRecord, error)
	Consume(ctx context.Context, requestID string) (*domain.OtpRecord, error)
}

// SMSSender dispatches a text message. A single synchronous attempt, no
// delivery guarantees beyond the gateway's response.
type SMSSender interface {
	SendSMS(ctx context.Context, to, message string) error
}

// Engine generates, stores, dispatches and verifies one-time passcodes.
type Engine struct {
	store RecordStore
	sms   SMSSender
	ttl   time.Duration
}

func NewEngine(store RecordStore, sms SMSSender, ttl time.Duration) *Engine {
	return &Engine{store: store, sms: sms, ttl: ttl}
}

// Issue generates a fresh code and correlation id, persists the record with
// the configured TTL and dispatches the code by SMS. The store write happens
// before the send: a failed write aborts without any outbound message, while
// a failed send leaves the record to expire unused and returns ErrGateway.
func (e *Engine) Issue(ctx context.Context, phoneNumber string) (string, error) {
	code, err := generateCode()
	if err != nil {
		return "", err
	}
	requestID := uuid.NewString()

	rec := &domain.OtpRecord{PhoneNumber: phoneNumber, Code: code}
	if err := e.store.Put(ctx, requestID, rec, e.ttl); err != nil {
		return "", err
	}

	if err := e.sms.SendSMS(ctx, phoneNumber, fmt.Sprintf(smsBody, code)); err != nil {
		slog.Error("failed to send OTP", "phone_number", phoneNumber, "err", err)
		return "", fmt.Errorf("failed to send OTP: %w", domain.ErrGateway)
	}

	slog.Info("OTP sent", "phone_number", phoneNumber, "request_id", requestID)
	return requestID, nil
}

// Verify checks the presented phone/code pair against the stored record.
// A missing record (expired, consumed or never issued) fails with
// ErrOtpNotFound. A mismatch fails with ErrOtpMismatch and leaves the record
// live, permitting retries within the TTL window. A full match consumes the
// record before returning, so a concurrent duplicate request cannot also
// succeed.
func (e *Engine) Verify(ctx context.Context, phoneNumber, code, requestID string) error {
	rec, err := e.store.Get(ctx, requestID)
	if err != nil {
		return err
	}
	if rec.PhoneNumber != phoneNumber || rec.Code != code {
		return domain.ErrOtpMismatch
	}
	// Re-check liveness at consumption: a racing request may have consumed
	// the record between the read and here.
	if _, err := e.store.Consume(ctx, requestID); err != nil {
		return err
	}
	return nil
}

// generateCode returns a uniformly random 6-digit decimal code in
// [100000, 999999].
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
