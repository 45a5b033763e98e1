// Copyright 2026 The jsii-kernel Authors
// SPDX-License-Identifier: Apache-2.0

// Package hostloop is the host-side protocol driver of spec.md's
// "Protocol coupling" (§4.7) and concurrency model (§5): it owns
// applying incoming kernel `release` notifications to a
// lib/hostref.Table before the response line they were piggybacked on
// is processed, and owns emitting `del` requests for instance IDs
// drained from the table's deletable set.
//
// The ordering rule spec.md §4.7 requires ("the host observes releases
// in causal order with the response") falls out for free from reading
// the kernel's output line by line: the kernel always writes the
// `release` notification line, if any, strictly before the response
// line for the request that produced it (lib/kernelloop enforces the
// kernel side of this). Driver.ApplyLine only needs to recognize a
// release-shaped line and apply it; ApplyLine's caller keeps reading
// lines until it gets one that is not a release notification, which
// is then the response.
package hostloop
