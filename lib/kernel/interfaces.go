// Copyright 2026 The jsii-kernel Authors
// SPDX-License-Identifier: Apache-2.0

package kernel

import (
	"sort"

	"github.com/yuth/jsii-kernel/kernelerror"
)

// ProvidedInterfaces computes the transitive closure of interfaces
// implied by classFQN's base chain plus the parents each FQN in
// declared itself extends, per spec.md §4.2: walk the class base
// chain collecting every "interfaces" entry at each level (each one
// fully implied by the class, so it and its own parents are in the
// closure), then for each FQN in declared add only *its* parents —
// declaring an interface never implies that same interface, only
// whatever it extends.
//
// classFQN may be empty (anonymous instances use "Object" as their
// classFQN at the Handle layer; ProvidedInterfaces is never called
// with an FQN that does not resolve to a real class).
func ProvidedInterfaces(resolver TypeResolver, classFQN string, declared []string) (map[string]struct{}, error) {
	closure := make(map[string]struct{})

	if classFQN != "" {
		if err := closeClassChain(resolver, classFQN, closure); err != nil {
			return nil, err
		}
	}

	for _, fqn := range declared {
		if err := closeDeclaredParents(resolver, fqn, closure); err != nil {
			return nil, err
		}
	}

	return closure, nil
}

// closeClassChain walks the base-class chain starting at classFQN,
// adding every interface declared at each level (and their parents)
// to closure.
func closeClassChain(resolver TypeResolver, classFQN string, closure map[string]struct{}) error {
	seenClasses := make(map[string]struct{})

	for classFQN != "" {
		if _, already := seenClasses[classFQN]; already {
			// Defensive: a well-formed type system never has a cyclic
			// base chain, but a buggy resolver must not spin forever.
			break
		}
		seenClasses[classFQN] = struct{}{}

		desc, err := resolver.ResolveType(classFQN)
		if err != nil {
			return err
		}
		if desc.Kind != KindClass {
			return kernelerror.New(kernelerror.InvalidType,
				"expected class, got %s for %q", desc.Kind, classFQN)
		}

		for _, iface := range desc.Interfaces {
			if err := closeInterface(resolver, iface, closure); err != nil {
				return err
			}
		}

		classFQN = desc.Base
	}

	return nil
}

// closeDeclaredParents adds fqn's own parent interfaces (and their
// transitive parents) to closure, but not fqn itself: an FQN a caller
// declares directly is never implied by that declaration alone, only
// by whatever it extends, so a bare declared interface with no
// parents contributes nothing to the provided set.
func closeDeclaredParents(resolver TypeResolver, fqn string, closure map[string]struct{}) error {
	desc, err := resolver.ResolveType(fqn)
	if err != nil {
		return err
	}
	if desc.Kind != KindInterface {
		return kernelerror.New(kernelerror.InvalidType,
			"expected interface, got %s for %q", desc.Kind, fqn)
	}

	for _, parent := range desc.Interfaces {
		if err := closeInterface(resolver, parent, closure); err != nil {
			return err
		}
	}

	return nil
}

// closeInterface adds fqn and its transitive parent interfaces to
// closure. An interface already present is not re-walked.
func closeInterface(resolver TypeResolver, fqn string, closure map[string]struct{}) error {
	if _, already := closure[fqn]; already {
		return nil
	}

	desc, err := resolver.ResolveType(fqn)
	if err != nil {
		return err
	}
	if desc.Kind != KindInterface {
		return kernelerror.New(kernelerror.InvalidType,
			"expected interface, got %s for %q", desc.Kind, fqn)
	}

	closure[fqn] = struct{}{}

	for _, parent := range desc.Interfaces {
		if err := closeInterface(resolver, parent, closure); err != nil {
			return err
		}
	}

	return nil
}

// minimizeDeclared removes from declared any FQN already implied by
// provided, deduplicates, and sorts the result lexicographically —
// spec.md §4.3's "sorted list of FQNs ... for determinism on the
// wire" and the invariant declaredInterfaces ∩ providedInterfaces = ∅.
func minimizeDeclared(declared []string, provided map[string]struct{}) []string {
	seen := make(map[string]struct{}, len(declared))
	result := make([]string, 0, len(declared))
	for _, fqn := range declared {
		if _, implied := provided[fqn]; implied {
			continue
		}
		if _, dup := seen[fqn]; dup {
			continue
		}
		seen[fqn] = struct{}{}
		result = append(result, fqn)
	}
	sort.Strings(result)
	return result
}
