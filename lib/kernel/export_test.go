// Copyright 2026 The jsii-kernel Authors
// SPDX-License-Identifier: Apache-2.0

package kernel

// This file exposes package-internal constructors and helpers to the
// external kernel_test package. It exists only so kernel's own tests
// can use kerneltest (which itself imports kernel) without creating
// an import cycle in the internal test build. None of this is part of
// the real, non-test API: export_test.go is never compiled into a
// production build.

func NewHandleForTest(classFQN, instanceID string, referent any, resolver TypeResolver, declared []string, provided map[string]struct{}, onFinalized func(string)) *Handle {
	return newHandle(classFQN, instanceID, referent, resolver, declared, provided, onFinalized)
}

func (h *Handle) MergeInterfacesForTest(moreFQNs []string) error {
	return h.mergeInterfaces(moreFQNs)
}

func MinimizeDeclaredForTest(declared []string, provided map[string]struct{}) []string {
	return minimizeDeclared(declared, provided)
}

func NewProxyForTest(referent any, instanceID string) *Proxy {
	return &Proxy{referent: referent, instanceID: instanceID}
}

func NewTestStore(resolver TypeResolver) *Store {
	return NewStore(NewSequence(0, 1), resolver, nil)
}
