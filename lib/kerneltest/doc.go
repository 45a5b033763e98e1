// Copyright 2026 The jsii-kernel Authors
// SPDX-License-Identifier: Apache-2.0

// Package kerneltest provides small in-process test doubles for
// lib/kernel and lib/hostref, in the manner of the standard library's
// own testing conventions: inject a controllable stand-in for a
// nondeterministic runtime facility rather than asserting on real GC
// timing.
//
// [FakeTypeResolver] is a map-backed kernel.TypeResolver for building
// interface-closure fixtures without a real type/assembly loader.
//
// [ForceCollect] runs several rounds of garbage collection with short
// yields in between, so tests exercising Handle's weak proxy
// reference and its runtime.AddCleanup callback do not have to wait
// on GC's own schedule. It cannot wait for a specific callback, so
// it gives those callbacks a chance to run rather than a guarantee.
package kerneltest
