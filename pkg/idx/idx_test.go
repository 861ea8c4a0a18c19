package idx_test

import (
	"testing"
	"time"

	"github.com/aussiebroadwan/staffql/pkg/idx"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	id := idx.New()
	require.Len(t, id, 26)
	require.True(t, idx.Valid(id))
}

func TestNewAt_SortsByTime(t *testing.T) {
	a := idx.NewAt(time.Unix(1, 0))
	b := idx.NewAt(time.Unix(2, 0))
	require.Less(t, a, b)
}

func TestNewAt_SameMillisecondIncreases(t *testing.T) {
	at := time.Unix(1700000000, 0)
	prev := idx.NewAt(at)
	for range 100 {
		next := idx.NewAt(at)
		require.Less(t, prev, next)
		prev = next
	}
}

func TestValid(t *testing.T) {
	require.True(t, idx.Valid("01HQ7T3Z1MZ0JQ3M6MZQ1FQ3ZV"))

	for _, s := range []string{"", "not-a-ulid", "507f1f77bcf86cd799439011", "01hq7t3z1mz0jq3m6mzq1fq3z"} {
		require.False(t, idx.Valid(s), s)
	}
}
