// Copyright 2026 The jsii-kernel Authors
// SPDX-License-Identifier: Apache-2.0

package hostref

import (
	"log/slog"
	"runtime"
	"sort"
	"sync"
	"weak"

	"github.com/yuth/jsii-kernel/kernelerror"
	"github.com/yuth/jsii-kernel/lib/wire"
)

// record is the host's per-instance bookkeeping (spec.md §4.6):
// instance ID, declared interfaces, a weak reference to the host
// proxy, and — only for objects the host itself created — a
// conditional strong reference.
type record struct {
	instanceID string
	declared   []string

	proxyRef weak.Pointer[Proxy]

	// strong is non-nil only while this instance is in the
	// both-reachable state of spec.md §4.6's transition table: it was
	// created by the host (via a create request) and the kernel has
	// not yet sent a release notification for it. It holds the host
	// proxy itself, which keeps the proxy from being collected and the
	// instance from becoming deletable.
	strong any
}

func (r *record) hasProxy() bool {
	return r.proxyRef.Value() != nil
}

// Table is the host-side mirror of the kernel's object store
// (spec.md §4.6). It is grounded on the original_source Java
// runtime's ObjectStore: Retain models "(re-)registration implies
// retaining", and DrainDeletable models draining a ReferenceQueue in
// a batch rather than checking a per-object flag.
//
// Table's own bookkeeping (records) is owned by whichever goroutine
// drives the host's protocol loop (lib/hostloop) and is unsynchronized,
// mirroring lib/kernel.Store's single-threaded-owner discipline. The
// one piece of state a finalization callback touches concurrently —
// the deletable set — is guarded by deletableMu, exactly as
// lib/kernel.Store guards its finalized set.
type Table struct {
	logger *slog.Logger

	records map[string]*record

	deletableMu sync.Mutex
	deletable   map[string]struct{}
}

// NewTable constructs an empty Table. A nil logger defaults to
// slog.Default().
func NewTable(logger *slog.Logger) *Table {
	if logger == nil {
		logger = slog.Default()
	}
	return &Table{
		logger:    logger,
		records:   make(map[string]*record),
		deletable: make(map[string]struct{}),
	}
}

// Create registers a host-created object: the host issued a `create`
// request to the kernel and is holding referent as the local stand-in
// for the returned reference. A strong reference is held until the
// kernel reports the instance releasable (spec.md §4.6's
// both-reachable state) — this is the "ban" case where the host must
// keep the object alive because it is the one that asked for it to
// exist.
//
// If ref.Ref is already known, Create behaves like Retain: it
// restores the strong reference rather than creating a duplicate
// record (spec.md §4.6 has exactly one record per instance ID).
func (t *Table) Create(ref wire.ObjectRef, referent any) (*Proxy, error) {
	if r, ok := t.records[ref.Ref]; ok {
		return t.retain(r)
	}

	r := &record{instanceID: ref.Ref, declared: ref.Interfaces}
	proxy := t.mintProxy(r, referent)
	r.strong = proxy
	t.records[ref.Ref] = r
	return proxy, nil
}

// Mirror registers a kernel-origin object: one returned from an
// invocation or dereferenced from a wire reference the host did not
// itself request creation of. No strong reference is held — per
// spec.md §4.6, "the host need not retain a strong reference at all"
// for these; if the host proxy is later reclaimed, a fresh one can
// always be minted by asking the kernel to dereference the same
// reference again.
//
// If ref.Ref is already known, Mirror reuses the existing record
// (minting a fresh proxy if the previous one was collected) rather
// than creating a second one.
func (t *Table) Mirror(ref wire.ObjectRef, referent any) *Proxy {
	if r, ok := t.records[ref.Ref]; ok {
		if p := r.proxyRef.Value(); p != nil {
			return p
		}
		return t.mintProxy(r, referent)
	}

	r := &record{instanceID: ref.Ref, declared: ref.Interfaces}
	proxy := t.mintProxy(r, referent)
	t.records[ref.Ref] = r
	return proxy
}

func (t *Table) mintProxy(r *record, referent any) *Proxy {
	p := &Proxy{referent: referent, instanceID: r.instanceID}
	r.proxyRef = weak.Make(p)
	runtime.AddCleanup(p, t.markDeletable, r.instanceID)
	t.unmarkDeletable(r.instanceID)
	return p
}

// Retain ensures a strong reference exists for instanceID by holding
// its currently live proxy strongly, so the proxy cannot be collected
// until a release notification clears the hold. This is the
// Go analogue of ObjectStore.retain in original_source's Java
// runtime: "(Re-)Registration implies retaining." Returns
// UnknownReference if instanceID is not tracked, or CollectedReferent
// if the proxy has already been reclaimed (the Java runtime's
// IllegalStateException("Referent object was already reclaimed!") —
// a programmer error, since Retain must be called before the proxy
// can have been dropped).
func (t *Table) Retain(instanceID string) error {
	r, ok := t.records[instanceID]
	if !ok {
		return kernelerror.New(kernelerror.UnknownReference, "hostref: no record for %q", instanceID)
	}
	_, err := t.retain(r)
	return err
}

func (t *Table) retain(r *record) (*Proxy, error) {
	p := r.proxyRef.Value()
	if p == nil {
		return nil, kernelerror.New(kernelerror.CollectedReferent, "hostref: referent for %q already reclaimed", r.instanceID)
	}
	r.strong = p
	return p, nil
}

// HandleRelease applies a kernel `release` notification (spec.md
// §4.7): for each instance ID, clears the conditional strong
// reference, moving the record from both-reachable to kernel-only in
// the state table of spec.md §4.6. IDs not present in the table are
// silently ignored — the kernel may report an instance the host never
// created a strong hold for in the first place.
func (t *Table) HandleRelease(instanceIDs []string) {
	for _, id := range instanceIDs {
		if r, ok := t.records[id]; ok {
			r.strong = nil
		}
	}
}

// Forget removes instanceID from the table after a `del` request for
// it has been acknowledged by the kernel. Precondition: the host must
// not still be holding a live proxy for instanceID (spec.md §4.6's
// "the host may not emit del for an instance ID that is still part of
// a reachable reference"); Forget does not itself re-check this since
// DrainDeletable already only surfaces IDs whose proxy has been
// observed collected.
func (t *Table) Forget(instanceID string) {
	delete(t.records, instanceID)
}

// Interfaces returns the declared interfaces recorded for
// instanceID, or nil with ok=false if the instance is not tracked.
func (t *Table) Interfaces(instanceID string) (interfaces []string, ok bool) {
	r, found := t.records[instanceID]
	if !found {
		return nil, false
	}
	return r.declared, true
}

// DrainDeletable returns, and clears, the set of instance IDs whose
// host proxy has been observed collected and which have not since
// been re-mirrored (a re-mirror mints a fresh proxy; Retain of a
// collected proxy fails instead). Mirrors lib/kernel.Store's
// FinalizedInstanceIDs, and — per original_source's ObjectStore —
// also removes the corresponding record, since on the host side
// (unlike the kernel) nothing more needs to survive the drain: the
// host is about to tell the kernel to forget the instance via a `del`
// request, so keeping the emptied record around serves no purpose.
func (t *Table) DrainDeletable() []string {
	t.deletableMu.Lock()
	defer t.deletableMu.Unlock()

	if len(t.deletable) == 0 {
		return nil
	}

	ids := make([]string, 0, len(t.deletable))
	for id := range t.deletable {
		ids = append(ids, id)
		delete(t.records, id)
	}
	sort.Strings(ids)

	t.deletable = make(map[string]struct{})
	return ids
}

func (t *Table) markDeletable(instanceID string) {
	t.deletableMu.Lock()
	t.deletable[instanceID] = struct{}{}
	t.deletableMu.Unlock()
	t.logger.Debug("hostref: proxy collected", slog.String("instance_id", instanceID))
}

func (t *Table) unmarkDeletable(instanceID string) {
	t.deletableMu.Lock()
	delete(t.deletable, instanceID)
	t.deletableMu.Unlock()
}
