// Copyright 2026 The jsii-kernel Authors
// SPDX-License-Identifier: Apache-2.0

// Package kernelloop implements the kernel's cooperative event loop
// (spec.md §5): emit a hello greeting, then repeatedly read a
// newline-delimited JSON request, process it, drain and piggyback any
// pending release notification, and write the response — in that
// order, so the host always observes releases before the response
// that may have produced them.
//
// Request kinds outside this repository's scope (create, invoke, get,
// set, callback) are delegated to a RequestHandler supplied by the
// embedder. The loop itself owns "del" and "exit" directly, and
// unconditionally piggybacks the release notification ahead of every
// response regardless of which path produced it.
package kernelloop
