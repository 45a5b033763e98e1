// Copyright 2026 The jsii-kernel Authors
// SPDX-License-Identifier: Apache-2.0

package kernel

// Sequence generates monotonically increasing instance numbers of the
// form origin, origin+stride, origin+2*stride, ... Not safe for
// concurrent use: callers serialize access through Store, which the
// single-threaded event loop already guarantees (see lib/kernelloop).
type Sequence struct {
	next   int64
	stride int64
}

// DefaultOrigin and DefaultStride reserve the low instance numbers
// [0, DefaultOrigin) so a host can mint sentinel IDs without risk of
// colliding with kernel-assigned ones.
const (
	DefaultOrigin int64 = 10000
	DefaultStride int64 = 1
)

// NewSequence builds a Sequence yielding origin, origin+stride, ...
// Panics if origin < 0 or stride <= 0 — both are programmer errors,
// never runtime conditions.
func NewSequence(origin, stride int64) *Sequence {
	if origin < 0 {
		panic("kernel: sequence origin must be >= 0")
	}
	if stride <= 0 {
		panic("kernel: sequence stride must be > 0")
	}
	return &Sequence{next: origin, stride: stride}
}

// Next returns the next value in the sequence and advances it.
func (s *Sequence) Next() int64 {
	n := s.next
	s.next += s.stride
	return n
}
