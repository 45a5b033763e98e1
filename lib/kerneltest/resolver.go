// Copyright 2026 The jsii-kernel Authors
// SPDX-License-Identifier: Apache-2.0

package kerneltest

import (
	"fmt"

	"github.com/yuth/jsii-kernel/lib/kernel"
)

// FakeTypeResolver is a map-backed kernel.TypeResolver for tests. Zero
// value is not usable; construct with NewFakeTypeResolver.
type FakeTypeResolver struct {
	types map[string]kernel.TypeDescriptor
}

// NewFakeTypeResolver returns a resolver with no registered types.
func NewFakeTypeResolver() *FakeTypeResolver {
	return &FakeTypeResolver{types: make(map[string]kernel.TypeDescriptor)}
}

// Class registers fqn as a class with the given base (empty for none)
// and directly-declared interfaces, returning the receiver for
// chaining.
func (r *FakeTypeResolver) Class(fqn, base string, interfaces ...string) *FakeTypeResolver {
	r.types[fqn] = kernel.TypeDescriptor{Kind: kernel.KindClass, Base: base, Interfaces: interfaces}
	return r
}

// Interface registers fqn as an interface extending the given parent
// interfaces, returning the receiver for chaining.
func (r *FakeTypeResolver) Interface(fqn string, parents ...string) *FakeTypeResolver {
	r.types[fqn] = kernel.TypeDescriptor{Kind: kernel.KindInterface, Interfaces: parents}
	return r
}

// Enum registers fqn as an enum. Present only so resolvers under test
// can produce the InvalidType case (spec.md §4.2) when a caller
// expects a class or interface.
func (r *FakeTypeResolver) Enum(fqn string) *FakeTypeResolver {
	r.types[fqn] = kernel.TypeDescriptor{Kind: kernel.KindEnum}
	return r
}

// ResolveType implements kernel.TypeResolver.
func (r *FakeTypeResolver) ResolveType(fqn string) (kernel.TypeDescriptor, error) {
	desc, ok := r.types[fqn]
	if !ok {
		return kernel.TypeDescriptor{}, fmt.Errorf("kerneltest: no such type %q", fqn)
	}
	return desc, nil
}
