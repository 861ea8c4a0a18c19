// Package idx generates ULIDs for sqlite record ids and request ids. They
// sort by creation time, which keeps list queries in insertion order.
package idx

import (
	"crypto/rand"
	"io"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	mu      sync.Mutex
	entropy io.Reader = ulid.Monotonic(rand.Reader, 0)
)

// New returns a ULID for the current time.
func New() string {
	return NewAt(time.Now())
}

// NewAt returns a ULID stamped with t. Ids minted for the same millisecond
// still increase strictly.
func NewAt(t time.Time) string {
	mu.Lock()
	defer mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(t.UTC()), entropy).String()
}

// Valid reports whether s is a canonical ULID. Record lookups use it to
// reject foreign ids without a query.
func Valid(s string) bool {
	_, err := ulid.ParseStrict(s)
	return err == nil
}

