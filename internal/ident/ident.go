package ident

import (
	"strconv"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// Generator produces unique identity strings. Implementations must be safe
// for concurrent use.
type Generator interface {
	Next() string
}

// Sequence issues identities of the form base+n, where base is the Unix time
// in milliseconds at construction and n is an atomic counter starting at zero.
type Sequence struct {
	base    int64
	counter atomic.Int64
}

// NewSequence creates a [Sequence] based at the current time.
func NewSequence() *Sequence {
	return NewSequenceAt(time.Now().UnixMilli())
}

// NewSequenceAt creates a [Sequence] with an explicit base.
func NewSequenceAt(base int64) *Sequence {
	return &Sequence{base: base}
}

// Next returns the next identity in the sequence.
func (s *Sequence) Next() string {
	n := s.counter.Add(1) - 1
	return strconv.FormatInt(s.base+n, 10)
}

var process = NewSequence()

// Process returns the process-wide [Sequence].
func Process() *Sequence {
	return process
}

// UUID issues random UUID identities.
type UUID struct{}

// Next returns a new UUID string.
func (UUID) Next() string {
	return uuid.NewString()
}
