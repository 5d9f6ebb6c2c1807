// Package cache stores finished translations so repeated requests can skip the service.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// TranslationCache is implemented by every backend selectable through cache.backend.
type TranslationCache interface {
	// Get returns the cached value and true, or "" and false on a miss or expiry.
	Get(ctx context.Context, key string) (string, bool)

	Set(ctx context.Context, key, value string) error
}

// Key builds a cache key from the trimmed text hash and the translation direction.
// The service name is part of the key so backends never share entries.
func Key(text, sourceLang, targetLang, service string) string {
	sum := sha256.Sum256([]byte(strings.TrimSpace(text)))
	return hex.EncodeToString(sum[:]) + ":" + sourceLang + ":" + targetLang + ":" + service
}
