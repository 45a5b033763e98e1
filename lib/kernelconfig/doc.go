// Copyright 2026 The jsii-kernel Authors
// SPDX-License-Identifier: Apache-2.0

// Package kernelconfig loads kernel tuning knobs the same way the
// teacher repository's lib/config loads its configuration: a single
// YAML file located by an environment variable (JSII_KERNEL_CONFIG)
// or an explicit path, with no fallback discovery. Fields absent from
// the file keep the values of [Default] — a missing file is an error,
// not a silent default.
package kernelconfig
