// Copyright 2026 The jsii-kernel Authors
// SPDX-License-Identifier: Apache-2.0

package kernel_test

import (
	"testing"

	"github.com/yuth/jsii-kernel/lib/kernel"
	"github.com/yuth/jsii-kernel/lib/kerneltest"
)

// TestStoreEmitRecoversPanickingListener exercises spec.md §7's "event
// emission must not throw; listener exceptions are caught and logged
// at most": a panicking listener must not prevent the operation that
// triggered the event from completing, and must not stop later
// listeners from running.
func TestStoreEmitRecoversPanickingListener(t *testing.T) {
	resolver := kerneltest.NewFakeTypeResolver().Class("Foo", "")
	s := newTestStore(resolver)

	var secondRan bool
	s.AddListener(func(kernel.Event) { panic("listener blew up") })
	s.AddListener(func(kernel.Event) { secondRan = true })

	if _, _, err := s.Register("Foo", new(int), nil); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if !secondRan {
		t.Fatal("a panicking listener must not prevent later listeners from running")
	}
}

func TestStoreAddListenerAccumulates(t *testing.T) {
	s := newTestStore(kerneltest.NewFakeTypeResolver().Class("Foo", ""))

	var calls int
	s.AddListener(func(kernel.Event) { calls++ })
	s.AddListener(func(kernel.Event) { calls++ })

	if _, _, err := s.Register("Foo", new(int), nil); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if calls != 2 {
		t.Fatalf("calls = %d, want 2 (one per registered listener)", calls)
	}
}
