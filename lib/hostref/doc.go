// Copyright 2026 The jsii-kernel Authors
// SPDX-License-Identifier: Apache-2.0

// Package hostref implements the host-side mirror of the kernel's
// object store (spec.md §4.6): for every managed object the host
// knows about, it records the instance ID, the declared interfaces,
// a weak reference to the host-side proxy, and — only for objects the
// host itself created — a conditional strong reference released when
// the kernel reports the instance as releasable.
//
// The two host-side operations original_source's Java ObjectStore
// makes explicit and spec.md leaves implicit are both modeled
// directly here: Retain (re-registration implies retaining) and
// DrainDeletable (a finalization queue drained in a batch, mirroring
// Store.FinalizedInstanceIDs on the kernel side).
package hostref
