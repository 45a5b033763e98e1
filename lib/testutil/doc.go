// Copyright 2026 The jsii-kernel Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for jsii-kernel packages.
//
// [RequireReceive], [RequireSend], and [RequireClosed] encapsulate the
// timeout safety valve pattern (select with time.After fallback) so
// that individual tests do not need direct time.After calls. These are
// the only place in the test suite where real wall-clock timeouts are
// used — the finalization callback timing elsewhere is handled by
// lib/kerneltest.ForceCollect's fixed rounds of forced collection
// rather than by a timeout.
//
// [UniqueID] generates monotonically increasing identifiers for test
// disambiguation. Use it instead of time.Now() when tests need unique
// class FQNs or instance ID prefixes that must be distinguishable
// across subtests.
//
// All helpers call t.Fatalf on failure rather than returning errors,
// since test setup failures are not recoverable.
//
// This package has no jsii-kernel-internal dependencies.
package testutil
