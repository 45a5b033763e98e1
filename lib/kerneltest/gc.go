// Copyright 2026 The jsii-kernel Authors
// SPDX-License-Identifier: Apache-2.0

package kerneltest

import (
	"runtime"
	"time"
)

// ForceCollect drives the garbage collector and gives runtime.AddCleanup
// callbacks queued for already-unreachable objects a chance to run
// before returning. Callers must have already dropped every strong
// reference to the object under test (including local variables — a
// value kept live by an in-scope variable will not be collected no
// matter how many times this is called).
//
// Cleanup callbacks run on a separate goroutine at a time of the
// runtime's choosing; there is no public API to block until a specific
// callback has executed, so this polls runtime.GC() a few times with a
// short yield between rounds. It always runs five rounds; in practice
// the callbacks run within the first one or two. An object that
// failed to become unreachable is a test bug that the caller's own
// assertions surface once ForceCollect returns without having
// drained anything.
func ForceCollect() {
	for range 5 {
		runtime.GC()
		runtime.Gosched()
		time.Sleep(time.Millisecond)
	}
}
