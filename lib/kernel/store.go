// Copyright 2026 The jsii-kernel Authors
// SPDX-License-Identifier: Apache-2.0

package kernel

import (
	"fmt"
	"log/slog"
	"reflect"
	"sort"
	"sync"

	"github.com/yuth/jsii-kernel/kernelerror"
	"github.com/yuth/jsii-kernel/lib/wire"
)

// Store is the kernel-side object registry (spec.md §4.5). It owns
// the mapping from instance ID to Handle and from real referent to
// Handle, mints and reanimates proxies, and accumulates the set of
// instance IDs whose proxy has been observed finalized.
//
// Store's own bookkeeping (handles, byInstance, typeFQNs) is mutated
// only from the single-threaded event loop that owns it (spec.md §5)
// and is therefore unsynchronized. The one piece of state a
// finalization callback can touch concurrently — the finalized set —
// is guarded by finalizedMu.
type Store struct {
	sequence *Sequence
	resolver TypeResolver
	logger   *slog.Logger

	handles    map[string]*Handle
	byInstance map[any]*Handle
	typeFQNs   map[reflect.Type]string

	finalizedMu sync.Mutex
	finalized   map[string]struct{}

	listeners []EventListener
}

// NewStore constructs a Store that assigns instance IDs from
// sequence and resolves types through resolver. A nil logger defaults
// to slog.Default().
func NewStore(sequence *Sequence, resolver TypeResolver, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		sequence:   sequence,
		resolver:   resolver,
		logger:     logger,
		handles:    make(map[string]*Handle),
		byInstance: make(map[any]*Handle),
		typeFQNs:   make(map[reflect.Type]string),
		finalized:  make(map[string]struct{}),
	}
}

// AddListener registers a listener for lifecycle events. Not safe to
// call concurrently with Store operations (event loop rules apply).
func (s *Store) AddListener(listener EventListener) {
	s.listeners = append(s.listeners, listener)
}

// Register implements spec.md §4.5's register: idempotent on the
// real referent's identity (merging interfaces into the existing
// handle when one is found), otherwise allocating a fresh instance ID
// and handle. Always returns a live proxy.
func (s *Store) Register(classFQN string, instance any, interfaceFQNs []string) (*Proxy, wire.ObjectRef, error) {
	if instance == nil {
		return nil, wire.ObjectRef{}, kernelerror.New(kernelerror.NullArgument, "register called with a nil instance")
	}

	key := RealObject(instance)

	if h, ok := s.byInstance[key]; ok {
		if err := h.mergeInterfaces(interfaceFQNs); err != nil {
			return nil, wire.ObjectRef{}, err
		}
		s.unfinalize(h.InstanceID())
		wasDormant := !h.HasProxy()
		proxy := h.Proxy()
		if wasDormant {
			s.emit(Event{Type: Retained, InstanceID: h.InstanceID()})
		}
		return proxy, h.ObjectReference(), nil
	}

	provided, err := ProvidedInterfaces(s.resolver, classFQN, interfaceFQNs)
	if err != nil {
		return nil, wire.ObjectRef{}, err
	}
	declared := minimizeDeclared(interfaceFQNs, provided)

	instanceID := fmt.Sprintf("%s@%d", classFQN, s.sequence.Next())
	h := newHandle(classFQN, instanceID, key, s.resolver, declared, provided, s.markFinalized)

	s.handles[instanceID] = h
	s.byInstance[key] = h
	s.emit(Event{Type: Managed, InstanceID: instanceID})

	// register always hands back a live, user-accessible reference,
	// so HasProxy is guaranteed true on return (spec.md §4.5).
	proxy := h.Proxy()
	return proxy, h.ObjectReference(), nil
}

// DereferenceResult is the handoff value produced by Dereference:
// the most-specific known class FQN, a live proxy over the real
// referent, and the handle's minimized declared interfaces.
type DereferenceResult struct {
	ClassFQN   string
	Proxy      *Proxy
	Interfaces []string
}

// Dereference implements spec.md §4.5's dereference: the handoff
// point from a wire ObjectRef to a user-visible proxy. Reanimates a
// dormant handle back to proxy-live, emitting Retained, and removes
// the instance ID from the finalized set so it cannot appear in a
// later release notification (spec.md §4.7's reanimation rule).
func (s *Store) Dereference(ref wire.ObjectRef) (DereferenceResult, error) {
	h, ok := s.handles[ref.Ref]
	if !ok {
		return DereferenceResult{}, kernelerror.New(kernelerror.UnknownReference, "no managed object for %q", ref.Ref)
	}

	s.unfinalize(h.InstanceID())

	wasDormant := !h.HasProxy()
	proxy := h.Proxy()
	if wasDormant {
		s.emit(Event{Type: Retained, InstanceID: h.InstanceID()})
	}

	return DereferenceResult{
		ClassFQN:   h.ClassFQN(),
		Proxy:      proxy,
		Interfaces: h.Interfaces(),
	}, nil
}

// RefObject consults byInstance and, if instance (or the real
// referent behind a Proxy passed in as instance) is already managed,
// returns its current wire reference. The second return is false when
// the instance is not managed.
//
// Like Dereference, finding a handle here counts as reanimation: it
// clears any pending finalized membership so a proxy that is merely
// being looked up (rather than newly minted) does not ship a stale
// release for an ID the caller is actively holding.
func (s *Store) RefObject(instance any) (wire.ObjectRef, bool) {
	key := RealObject(instance)
	h, ok := s.byInstance[key]
	if !ok {
		return wire.ObjectRef{}, false
	}
	s.unfinalize(h.InstanceID())
	return h.ObjectReference(), true
}

// RegisterType attaches fqn as the most-specific declared type for
// values sharing sample's Go type, recoverable later via TypeFQN. This
// is the Go analogue of spec.md §4.5's "attaches an FQN marker to a
// constructor object": Go has no first-class constructor value to
// tag, so the tag is keyed by reflect.Type instead.
func (s *Store) RegisterType(sample any, fqn string) {
	s.typeFQNs[reflect.TypeOf(sample)] = fqn
}

// TypeFQN recovers the most-specific FQN registered for instance's Go
// type via RegisterType, if any.
func (s *Store) TypeFQN(instance any) (string, bool) {
	fqn, ok := s.typeFQNs[reflect.TypeOf(instance)]
	return fqn, ok
}

// Delete implements spec.md §4.5's delete: removes the handle only if
// its proxy is not currently live. Violating the precondition is a
// programmer error and fails loudly with StillReachable rather than
// silently no-op-ing, per spec.md §4.5.
func (s *Store) Delete(ref wire.ObjectRef) error {
	h, ok := s.handles[ref.Ref]
	if !ok {
		return kernelerror.New(kernelerror.UnknownReference, "no managed object for %q", ref.Ref)
	}
	if h.HasProxy() {
		return kernelerror.New(kernelerror.StillReachable, "instance %q still has a live proxy", ref.Ref)
	}

	delete(s.handles, ref.Ref)
	delete(s.byInstance, h.referent)
	s.emit(Event{Type: Unmanaged, InstanceID: ref.Ref})
	return nil
}

// FinalizedInstanceIDs returns, and clears, the set of instance IDs
// whose proxy has been observed finalized and which have not since
// been reanimated. Called once per event-loop tick immediately before
// writing a response (spec.md §5), so the result is sorted purely for
// deterministic wire output — the underlying set has no order.
func (s *Store) FinalizedInstanceIDs() []string {
	s.finalizedMu.Lock()
	defer s.finalizedMu.Unlock()

	if len(s.finalized) == 0 {
		return nil
	}

	ids := make([]string, 0, len(s.finalized))
	for id := range s.finalized {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	s.finalized = make(map[string]struct{})
	return ids
}

// markFinalized is the Handle finalization callback's entry point
// into the Store. It may run concurrently with FinalizedInstanceIDs
// from a reclamation goroutine (spec.md §5); finalizedMu ensures an
// insertion concurrent with a drain lands in that batch or the next
// one, never neither.
func (s *Store) markFinalized(instanceID string) {
	s.finalizedMu.Lock()
	s.finalized[instanceID] = struct{}{}
	s.finalizedMu.Unlock()
	s.emit(Event{Type: Releasable, InstanceID: instanceID})
}

// unfinalize removes instanceID from the finalized set, if present.
// Called by Dereference/RefObject on reanimation so a handle that
// regains a proxy cannot still ship in the next release batch.
func (s *Store) unfinalize(instanceID string) {
	s.finalizedMu.Lock()
	delete(s.finalized, instanceID)
	s.finalizedMu.Unlock()
}
