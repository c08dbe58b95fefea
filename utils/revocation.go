package utils

import (
	"context"
	"errors"
	"time"
)

// RevocationList records logged-out tokens until they would have expired.
// Only the token hash is stored.
type RevocationList struct {
	cache Cache
	now   func() time.Time
}

func NewRevocationList(cache Cache) *RevocationList {
	return &RevocationList{cache: cache, now: time.Now}
}

// Revoke marks token as revoked until expiresAt. Already expired tokens are ignored.
func (l *RevocationList) Revoke(ctx context.Context, token string, expiresAt time.Time) error {
	ttl := expiresAt.Sub(l.now())
	if ttl <= 0 {
		return nil
	}
	return l.cache.Set(ctx, RevokedTokenPrefix+HashToken(token), []byte("1"), ttl)
}

// IsRevoked reports whether token was revoked.
func (l *RevocationList) IsRevoked(ctx context.Context, token string) (bool, error) {
	_, err := l.cache.Get(ctx, RevokedTokenPrefix+HashToken(token))
	if errors.Is(err, ErrCacheMiss) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
