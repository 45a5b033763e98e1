// Copyright 2026 The jsii-kernel Authors
// SPDX-License-Identifier: Apache-2.0

package kernel

// TypeKind distinguishes the kinds of type a TypeResolver can return.
// Only Class and Interface are meaningful to the interface closure
// builder; Enum is included because the external type loader's
// contract includes it and a resolved enum reaching the closure
// builder is exactly the "wrong kind" condition that yields
// kernelerror.InvalidType.
type TypeKind string

const (
	KindClass     TypeKind = "class"
	KindInterface TypeKind = "interface"
	KindEnum      TypeKind = "enum"
)

// TypeDescriptor is the shape handed back by the externally-owned
// type/assembly loader and FQN resolver (out of scope per spec.md
// §1 — this is the contract toward it, not an implementation of it).
type TypeDescriptor struct {
	// Kind is class, interface, or enum.
	Kind TypeKind

	// Base is the base class FQN, present only when Kind is Class and
	// the class has a declared base other than the implicit root.
	Base string

	// Interfaces lists the interface FQNs declared directly at this
	// type (the class's own "implements" clause, or an interface's own
	// "extends" list).
	Interfaces []string
}

// TypeResolver resolves a fully-qualified name to its TypeDescriptor.
// Implemented by the type/assembly loader, which this package treats
// as an external collaborator.
type TypeResolver interface {
	ResolveType(fqn string) (TypeDescriptor, error)
}
