package ids

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewIsUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := New()
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestFixedWidth(t *testing.T) {
	a := At(time.UnixMilli(1))
	b := At(time.Now())
	assert.Len(t, a, timeWidth+suffixWidth)
	assert.Len(t, b, timeWidth+suffixWidth)
}

func TestSortsByCreationTime(t *testing.T) {
	older := At(time.Now().Add(-time.Hour))
	newer := At(time.Now())
	assert.Less(t, older, newer)
}
