// Copyright 2026 The jsii-kernel Authors
// SPDX-License-Identifier: Apache-2.0

package wire

// ReleaseNotification is the kernel→host one-way notification frame
// of spec.md §4.7/§6, carrying the instance IDs drained from
// Store.FinalizedInstanceIDs. Written as a full JSON line before the
// response it was piggybacked on — never sent out of band.
type ReleaseNotification struct {
	Release []string `json:"release"`
}

// Empty reports whether the notification carries no instance IDs, in
// which case lib/kernelloop must not write it at all.
func (n ReleaseNotification) Empty() bool {
	return len(n.Release) == 0
}
