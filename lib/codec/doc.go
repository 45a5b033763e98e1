// Copyright 2026 The jsii-kernel Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides the CBOR encoding configuration shared by
// internal, non-wire uses inside the jsii-kernel module.
//
// The kernel<->host object-store protocol itself is JSON (lib/wire,
// spec.md §6) -- that boundary is fixed by the externally owned
// JSON-RPC-style request/response envelope this module plugs into
// (spec.md §1). CBOR is used one level below that, for the host-side
// reference table's local debugging journal (lib/hostloop): an
// append-only, crash-diagnostic record of retain/release/drop events
// that is never consulted to reconstruct object identity on restart
// (spec.md's Non-goals explicitly exclude persistence of object
// identity across process restarts).
//
// This package provides the shared CBOR encoding and decoding modes
// so every internal user encodes identically without duplicating
// configuration. The encoder uses Core Deterministic Encoding
// (RFC 8949 §4.2): sorted map keys, smallest integer encoding, no
// indefinite-length items. Same logical data always produces
// identical bytes, which matters for a diagnostic journal that gets
// diffed across runs.
//
//	data, err := codec.Marshal(value)
//	err = codec.Unmarshal(data, &value)
//
//	encoder := codec.NewEncoder(w)
//	decoder := codec.NewDecoder(r)
package codec
