// Copyright 2026 The jsii-kernel Authors
// SPDX-License-Identifier: Apache-2.0

package hostloop

import (
	"io"
	"sync"

	"github.com/yuth/jsii-kernel/lib/codec"
)

// Kind classifies a JournalEntry.
type Kind string

const (
	KindCreate    Kind = "create"
	KindMirror    Kind = "mirror"
	KindRetain    Kind = "retain"
	KindRelease   Kind = "release"
	KindDel       Kind = "del"
	KindDelFailed Kind = "del_failed"
)

// JournalEntry is one record in a Journal: a single table operation
// and the instance IDs it touched. Struct tags use `cbor` because
// this type is only ever serialized through Journal, never through
// the external JSON wire protocol (lib/codec's struct-tag convention).
type JournalEntry struct {
	Kind        Kind     `cbor:"kind"`
	InstanceIDs []string `cbor:"instance_ids"`
	Detail      string   `cbor:"detail,omitempty"`
}

// Journal is an append-only, CBOR-encoded debugging record of the
// host reference table's operations: created/mirrored/retained
// instances, applied release notifications, and del outcomes. It
// exists purely as a crash-diagnostic audit trail for developers — per
// spec.md's Non-goals, object identity is never reconstructed from it
// on restart, and nothing in this module reads a Journal back in.
//
// Safe for concurrent Append calls; Driver itself is not otherwise
// required to be concurrency-safe (it is owned by the host's single
// protocol-reading goroutine, mirroring lib/kernel.Store), but the
// journal is a separate, independently-lockable sink so a future
// concurrent flush path does not need to take the table's lock.
type Journal struct {
	mu sync.Mutex
	w  io.Writer
}

// NewJournal wraps w as an append target. w is typically an
// os.File opened for append.
func NewJournal(w io.Writer) *Journal {
	return &Journal{w: w}
}

// Append encodes entry and writes it to the journal.
func (j *Journal) Append(entry JournalEntry) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	data, err := codec.Marshal(entry)
	if err != nil {
		return err
	}
	_, err = j.w.Write(data)
	return err
}
