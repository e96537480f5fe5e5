package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// OTPTTL is how long a one-time password stays valid.
const OTPTTL = 5 * time.Minute

var ErrOTPNotFound = errors.New("otp not found or expired")

// OTPStore keeps one-time passwords in Redis with a TTL. A code is
// consumed on successful verification so it cannot be replayed.
type OTPStore struct {
	client *redis.Client
}

func NewOTPStore(client *redis.Client) *OTPStore {
	return &OTPStore{client: client}
}

func (s *OTPStore) key(phone string) string {
	return fmt.Sprintf("otp:%s", phone)
}

// Save stores the OTP for the phone, replacing any previous one.
func (s *OTPStore) Save(ctx context.Context, phone, otp string) error {
	return s.client.Set(ctx, s.key(phone), otp, OTPTTL).Err()
}

// Verify checks the OTP and deletes it when it matches. A mismatch
// leaves the stored code in place so the user can retry a typo.
func (s *OTPStore) Verify(ctx context.Context, phone, otp string) (bool, error) {
	stored, err := s.client.Get(ctx, s.key(phone)).Result()
	if errors.Is(err, redis.Nil) {
		return false, ErrOTPNotFound
	}
	if err != nil {
		return false, err
	}

	if stored != otp {
		return false, nil
	}

	if err := s.client.Del(ctx, s.key(phone)).Err(); err != nil {
		return false, err
	}
	return true, nil
}
