package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"slices"
	"time"
)

// Stamp records that a manifest's content passed every naming check.
type Stamp struct {
	CheckedAt time.Time `json:"checked_at"`
}

// Cache stores check stamps under content digests.
type Cache interface {
	Get(ctx context.Context, key string) (Stamp, bool)
	Set(ctx context.Context, key string, stamp Stamp, ttl time.Duration)
	Delete(ctx context.Context, key string)
	Clear(ctx context.Context)
}

// Key digests manifest content together with the extra reserved words in
// effect. Extending the reserved set can turn a previously clean manifest
// dirty, so the words are part of the key.
func Key(content []byte, extraReserved []string) string {
	h := sha256.New()
	h.Write(content)

	words := slices.Clone(extraReserved)
	slices.Sort(words)
	for _, word := range words {
		h.Write([]byte{0})
		h.Write([]byte(word))
	}

	sum := h.Sum(nil)
	return hex.EncodeToString(sum[:16]) // use first 128 bits
}

// entry pairs a stamp with its expiry.
type entry struct {
	Stamp     Stamp     `json:"stamp"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (e entry) expired() bool {
	return time.Now().After(e.ExpiresAt)
}
