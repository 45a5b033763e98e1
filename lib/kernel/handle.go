// Copyright 2026 The jsii-kernel Authors
// SPDX-License-Identifier: Apache-2.0

package kernel

import (
	"runtime"
	"weak"

	"github.com/yuth/jsii-kernel/lib/wire"
)

// Handle is the kernel's per-object bookkeeping record (spec.md §4.3):
// an immutable identity (classFQN, instanceID), a minimized set of
// declared interfaces, the transitive closure they and the class
// imply, a strong reference to the real referent, and a weak
// reference to the most recently minted Proxy.
//
// A Handle is never copied; Store always works with *Handle.
type Handle struct {
	classFQN   string
	instanceID string

	declared []string            // minimized declaredInterfaces, sorted
	provided map[string]struct{} // providedInterfaces

	referent any
	resolver TypeResolver

	proxyRef weak.Pointer[Proxy]

	// onFinalized is invoked (on an indeterminate goroutine, per
	// spec.md §5) when the runtime reports the current proxy
	// collected. Set once by Store at construction; never mutated.
	onFinalized func(instanceID string)
}

func newHandle(classFQN, instanceID string, referent any, resolver TypeResolver, declared []string, provided map[string]struct{}, onFinalized func(string)) *Handle {
	return &Handle{
		classFQN:    classFQN,
		instanceID:  instanceID,
		declared:    declared,
		provided:    provided,
		referent:    referent,
		resolver:    resolver,
		onFinalized: onFinalized,
	}
}

// InstanceID returns the handle's immutable instance ID.
func (h *Handle) InstanceID() string { return h.instanceID }

// ClassFQN returns the handle's immutable class FQN.
func (h *Handle) ClassFQN() string { return h.classFQN }

// Interfaces returns the minimized, lexicographically sorted
// declaredInterfaces (spec.md §4.3). The returned slice is the
// handle's own, also shared with ObjectReference's result; callers
// must not modify it.
func (h *Handle) Interfaces() []string {
	return h.declared
}

// HasProxy reports whether the weakly-held proxy still resolves.
func (h *Handle) HasProxy() bool {
	return h.proxyRef.Value() != nil
}

// Proxy returns the live proxy if one exists, minting a fresh one
// over the real referent otherwise (spec.md §4.3/§4.4). Minting
// installs a new weak reference and registers the new proxy for
// finalization keyed to this handle, so a prior collection event
// cannot be mistakenly attributed to the new proxy.
func (h *Handle) Proxy() *Proxy {
	if p := h.proxyRef.Value(); p != nil {
		return p
	}
	return h.mintProxy()
}

func (h *Handle) mintProxy() *Proxy {
	p := &Proxy{referent: h.referent, instanceID: h.instanceID}
	h.proxyRef = weak.Make(p)
	// arg (h) must never hold a strong reference to p, or p could
	// never become unreachable. Handle only ever holds p weakly via
	// proxyRef, so passing h here is safe.
	runtime.AddCleanup(p, notifyFinalized, h)
	return p
}

// notifyFinalized is the runtime.AddCleanup callback. It receives the
// Handle rather than the instanceID directly (spec.md §4.5) so that
// nothing about the callback's closure can accidentally keep the
// collected proxy reachable; the only thing it does is forward to the
// Store's set-insertion, per spec.md §5's constraint that a
// finalization callback perform no kernel mutation beyond that.
func notifyFinalized(h *Handle) {
	if h.onFinalized != nil {
		h.onFinalized(h.instanceID)
	}
}

// mergeInterfaces extends declaredInterfaces with moreFQNs and
// recomputes providedInterfaces as the closure of classFQN plus the
// full (old ∪ new) declared set, then re-minimizes (spec.md §4.3).
// Recomputing from scratch rather than incrementally extending the
// existing providedInterfaces is equivalent — providedInterfaces is
// always exactly closure(classFQN) ∪ the closures of the parents of
// each declared interface (a declared FQN itself is not added) — and
// avoids having two code paths that must agree on the invariant.
func (h *Handle) mergeInterfaces(moreFQNs []string) error {
	if len(moreFQNs) == 0 {
		return nil
	}

	combined := make([]string, 0, len(h.declared)+len(moreFQNs))
	combined = append(combined, h.declared...)
	combined = append(combined, moreFQNs...)

	provided, err := ProvidedInterfaces(h.resolver, h.classFQN, combined)
	if err != nil {
		return err
	}

	h.provided = provided
	h.declared = minimizeDeclared(combined, provided)
	return nil
}

// ObjectReference produces the wire reference for this handle
// (spec.md §4.3, §6): the interfaces field is present iff the
// minimized declared set is non-empty.
func (h *Handle) ObjectReference() wire.ObjectRef {
	ref := wire.ObjectRef{Ref: h.instanceID}
	if len(h.declared) > 0 {
		ref.Interfaces = h.declared
	}
	return ref
}
