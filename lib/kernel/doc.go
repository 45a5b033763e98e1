// Copyright 2026 The jsii-kernel Authors
// SPDX-License-Identifier: Apache-2.0

// Package kernel implements the kernel side of a cross-runtime object
// store: the registry that lets a host process hold references to
// behavioral objects whose real implementation lives in this process,
// without either side's garbage collector leaking the other's memory.
//
// The central type is Store. Every managed object gets a Handle
// carrying an instance ID of the form "«classFQN»@«n»" and a weak
// reference to a lazily-minted Proxy; the Store's strong reference to
// the real referent lives only as long as the Handle does, and the
// Handle disappears only on an explicit Delete once no live Proxy
// remains.
//
// Weak observation and collection notification use the standard
// library's weak.Pointer and runtime.AddCleanup rather than a
// hand-rolled reference-counting scheme, because this runtime (Go)
// provides both natively — see the design notes in SPEC_FULL.md.
package kernel
