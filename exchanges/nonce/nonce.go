package nonce

import (
	"strconv"
	"strings"
	"time"
)

// Width is the fixed character length of a rendered nonce
const Width = 16

// Generator derives nonces from a wall clock at whole second resolution. It
// holds no state beyond the clock so it can be shared by concurrent callers.
//
// Calls made within the same second receive the same nonce.
type Generator struct {
	now func() time.Time
}

// NewGenerator returns a Generator reading the supplied clock, a nil clock
// defaults to time.Now
func NewGenerator(clock func() time.Time) *Generator {
	if clock == nil {
		clock = time.Now
	}
	return &Generator{now: clock}
}

// Next returns the nonce for the current second
func (g *Generator) Next() Value {
	now := time.Now
	if g != nil && g.now != nil {
		now = g.now
	}
	return Value(now().Unix())
}

// Value is a return type for Next
type Value int64

// String returns the decimal digits of the value right padded with zeros to
// Width characters
func (v Value) String() string {
	s := strconv.FormatInt(int64(v), 10)
	if len(s) >= Width {
		return s
	}
	return s + strings.Repeat("0", Width-len(s))
}
