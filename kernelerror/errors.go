// Copyright 2026 The jsii-kernel Authors
// SPDX-License-Identifier: Apache-2.0

// Package kernelerror defines the categorized error type shared by the
// kernel-side object store, the host-side reference table, and the
// wire protocol that connects them. A single enum of categories lets
// every layer — the in-process store, the JSON-RPC-like event loop,
// and the host mirror — agree on what an error means without parsing
// message text.
package kernelerror

import (
	"errors"
	"fmt"
)

// Category classifies an object-store error so that callers on either
// side of the protocol boundary can make programmatic decisions
// (retry, treat as a bug, surface to the peer) without parsing the
// human-readable message.
type Category string

const (
	// NullArgument indicates register was called with a nil instance.
	// User-visible; never retried.
	NullArgument Category = "NullArgument"

	// UnknownReference indicates an operation named an instance ID with
	// no live handle. Surfaced to the host.
	UnknownReference Category = "UnknownReference"

	// StillReachable indicates a del was attempted on a handle whose
	// proxy is still live. Surfaced to the host.
	StillReachable Category = "StillReachable"

	// InvalidType indicates the type resolver returned a type of the
	// wrong kind (e.g. an interface where a class was expected).
	// Surfaced to the host.
	InvalidType Category = "InvalidType"

	// CollectedReferent indicates an operation found a record whose
	// referent has already been reclaimed. lib/kernel never returns it
	// (the kernel handle holds a strong reference to the referent — see
	// lib/kernel/handle.go); lib/hostref.Table.Retain returns it when
	// the host proxy for the instance has already been collected.
	// Fatal — never recovered automatically.
	CollectedReferent Category = "CollectedReferent"
)

// Error is a categorized error produced by the object store or the
// host reference table. Err carries the human-readable message; wrap
// it with %w so callers can walk the chain with errors.Is/errors.As.
type Error struct {
	Category Category
	Err      error
}

// New constructs an Error in the given category.
func New(category Category, format string, args ...any) *Error {
	return &Error{Category: category, Err: fmt.Errorf(format, args...)}
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Category, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error with the same Category,
// allowing errors.Is(err, kernelerror.New(kernelerror.StillReachable, ""))-
// style category checks, but callers should prefer the Category
// accessor below for clarity.
func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Category == other.Category
}

// CategoryOf returns the Category of err if it is (or wraps) an
// *Error, and false otherwise.
func CategoryOf(err error) (Category, bool) {
	var kerr *Error
	if !errors.As(err, &kerr) {
		return "", false
	}
	return kerr.Category, true
}
