// Copyright 2026 The jsii-kernel Authors
// SPDX-License-Identifier: Apache-2.0

// Package wire defines the JSON shapes of spec.md §6: object
// references, the release notification frame, and the del request and
// response frames. These are the only wire concerns in scope here —
// the general request/response JSON-RPC-style envelope and the rest
// of the kernel's request vocabulary (create, invoke, get, set,
// callback) belong to the externally-owned wire codec and are out of
// scope (spec.md §1); lib/kernelloop's request envelope wraps around
// these shapes without redefining them.
package wire
