// Copyright 2026 The jsii-kernel Authors
// SPDX-License-Identifier: Apache-2.0

package kernel_test

import (
	"testing"

	"github.com/yuth/jsii-kernel/lib/kernel"
	"github.com/yuth/jsii-kernel/lib/kerneltest"
)

func TestHandleProxyMintsAndReturnsLiveProxy(t *testing.T) {
	resolver := kerneltest.NewFakeTypeResolver().Class("Foo", "")
	provided, err := kernel.ProvidedInterfaces(resolver, "Foo", nil)
	if err != nil {
		t.Fatal(err)
	}

	referent := new(int)
	h := kernel.NewHandleForTest("Foo", "Foo@10000", referent, resolver, nil, provided, nil)

	if h.HasProxy() {
		t.Fatal("fresh handle should not have a proxy yet")
	}

	p := h.Proxy()
	if p == nil {
		t.Fatal("Proxy() returned nil")
	}
	if !h.HasProxy() {
		t.Fatal("HasProxy() should be true immediately after minting")
	}
	if p.InstanceID() != "Foo@10000" {
		t.Errorf("proxy instance id = %q, want Foo@10000", p.InstanceID())
	}
	if p.Unwrap() != referent {
		t.Error("proxy Unwrap() did not return the original referent")
	}

	// Proxy() is idempotent while the previous proxy is still live.
	if h.Proxy() != p {
		t.Error("Proxy() minted a second proxy while the first was still reachable")
	}
}

func TestHandleMergeInterfacesMinimizes(t *testing.T) {
	resolver := kerneltest.NewFakeTypeResolver().
		Interface("IA").
		Interface("IB", "IA").
		Class("X", "")

	provided, err := kernel.ProvidedInterfaces(resolver, "X", []string{"IA"})
	if err != nil {
		t.Fatal(err)
	}
	declared := kernel.MinimizeDeclaredForTest([]string{"IA"}, provided)
	h := kernel.NewHandleForTest("X", "X@0", new(int), resolver, declared, provided, nil)

	if err := h.MergeInterfacesForTest([]string{"IB", "IA"}); err != nil {
		t.Fatalf("mergeInterfaces: %v", err)
	}

	got := h.Interfaces()
	if len(got) != 1 || got[0] != "IB" {
		t.Errorf("Interfaces() = %v, want [IB] (IA is implied by IB)", got)
	}
}

func TestHandleObjectReferenceOmitsEmptyInterfaces(t *testing.T) {
	h := kernel.NewHandleForTest("Foo", "Foo@0", new(int), nil, nil, nil, nil)
	ref := h.ObjectReference()
	if ref.Ref != "Foo@0" {
		t.Errorf("Ref = %q, want Foo@0", ref.Ref)
	}
	if ref.Interfaces != nil {
		t.Errorf("Interfaces = %v, want nil for an empty declared set", ref.Interfaces)
	}
}

func TestHandleObjectReferenceIncludesSortedInterfaces(t *testing.T) {
	// The declared set is given in the sorted form minimizeDeclared
	// always produces; ObjectReference must carry it in that order.
	h := kernel.NewHandleForTest("Foo", "Foo@0", new(int), nil, []string{"IA", "IB"}, nil, nil)
	ref := h.ObjectReference()
	want := []string{"IA", "IB"}
	for i, fqn := range want {
		if ref.Interfaces[i] != fqn {
			t.Errorf("Interfaces[%d] = %q, want %q", i, ref.Interfaces[i], fqn)
		}
	}
}

func TestRealObjectUnwrapsProxyAndPassesThroughOthers(t *testing.T) {
	referent := new(int)
	p := kernel.NewProxyForTest(referent, "Foo@0")

	if got := kernel.RealObject(p); got != referent {
		t.Errorf("RealObject(proxy) = %v, want the wrapped referent", got)
	}
	if got := kernel.RealObject(referent); got != referent {
		t.Errorf("RealObject(non-proxy) should return its argument unchanged")
	}
}
