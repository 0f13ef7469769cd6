// Package cache keeps recent conversions in memory so unchanged inputs are not
// converted again during batch and watch runs.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"time"
)

// Cache defines the interface for caching
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key derives a cache key from the conversion inputs. parts are extra
// settings that change the output (title overrides, delimiters).
func Key(content string, offset int, parts ...string) string {
	h := sha256.New()
	h.Write([]byte(strconv.Itoa(offset)))
	for _, p := range parts {
		h.Write([]byte{0})
		h.Write([]byte(p))
	}
	h.Write([]byte{0})
	h.Write([]byte(content))
	return "songbook:v1:" + hex.EncodeToString(h.Sum(nil))
}

// Nop is a Cache that stores nothing
type Nop struct{}

func (Nop) Get(string) ([]byte, bool) { return nil, false }
func (Nop) Set(string, []byte, time.Duration) error { return nil }
func (Nop) Delete(string) error { return nil }
func (Nop) Clear() error { return nil }
