// Copyright 2026 The jsii-kernel Authors
// SPDX-License-Identifier: Apache-2.0

package kernel_test

import (
	"testing"

	"github.com/yuth/jsii-kernel/lib/kernel"
	"github.com/yuth/jsii-kernel/lib/kerneltest"
)

// TestHandleProxyReanimationAfterCollection exercises spec.md §4.4/§4.7:
// once the previously minted proxy has actually been collected,
// Handle.Proxy must mint a fresh one rather than returning a stale
// weak.Pointer hit, and HasProxy must reflect that transition.
func TestHandleProxyReanimationAfterCollection(t *testing.T) {
	referent := new(int)
	h := kernel.NewHandleForTest("Foo", "Foo@0", referent, kerneltest.NewFakeTypeResolver(), nil, nil, nil)

	first := h.Proxy()
	firstID := first.InstanceID()
	first = nil
	kerneltest.ForceCollect()

	if h.HasProxy() {
		t.Fatal("HasProxy should be false once the proxy has been collected")
	}

	second := h.Proxy()
	if second == nil {
		t.Fatal("Proxy() returned nil after reanimation")
	}
	if second.InstanceID() != firstID {
		t.Errorf("reanimated proxy instance id = %q, want %q", second.InstanceID(), firstID)
	}
	if second.Unwrap() != referent {
		t.Error("reanimated proxy does not unwrap to the original referent")
	}
	if !h.HasProxy() {
		t.Fatal("HasProxy should be true immediately after reanimation")
	}
}

// TestHandleFinalizationCallbackFiresOnCollection exercises the
// runtime.AddCleanup wiring itself (spec.md §4.5/§5): dropping every
// strong reference to a minted proxy must eventually invoke
// onFinalized with the handle's instance ID, exactly once.
func TestHandleFinalizationCallbackFiresOnCollection(t *testing.T) {
	var got []string
	h := kernel.NewHandleForTest("Foo", "Foo@0", new(int), kerneltest.NewFakeTypeResolver(), nil, nil, func(id string) {
		got = append(got, id)
	})

	p := h.Proxy()
	p = nil
	kerneltest.ForceCollect()
	_ = p

	if len(got) != 1 || got[0] != "Foo@0" {
		t.Fatalf("onFinalized calls = %v, want exactly one call with Foo@0", got)
	}
}
