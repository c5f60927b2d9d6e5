// Package ids generates the identifiers used for orders and trades.
//
// An id is a fixed-width base62 timestamp prefix followed by a random
// suffix. The alphabet is ASCII-ordered, so equal-width ids sort
// lexicographically in creation order.
package ids

import (
	"crypto/rand"
	"time"

	"github.com/jxskiss/base62"
)

// 0-9A-Za-z in ASCII order; the library default is not sort-friendly.
var encoding = base62.NewEncoding("0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz")

const (
	timeWidth   = 8 // base62 digits; enough for unix-millis far beyond 2100
	suffixWidth = 10
)

// New returns a new time-ordered identifier.
func New() string {
	return At(time.Now())
}

// At returns an identifier carrying the given creation time.
func At(t time.Time) string {
	ts := string(encoding.FormatInt(t.UnixMilli()))
	buf := make([]byte, 0, timeWidth+suffixWidth)
	for i := len(ts); i < timeWidth; i++ {
		buf = append(buf, '0')
	}
	buf = append(buf, ts...)

	var rnd [8]byte
	_, _ = rand.Read(rnd[:])
	suffix := encoding.EncodeToString(rnd[:])
	for i := len(suffix); i < suffixWidth; i++ {
		buf = append(buf, '0')
	}
	if len(suffix) > suffixWidth {
		suffix = suffix[:suffixWidth]
	}
	buf = append(buf, suffix...)
	return string(buf)
}
