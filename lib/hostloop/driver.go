// Copyright 2026 The jsii-kernel Authors
// SPDX-License-Identifier: Apache-2.0

package hostloop

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/yuth/jsii-kernel/kernelerror"
	"github.com/yuth/jsii-kernel/lib/hostref"
	"github.com/yuth/jsii-kernel/lib/wire"
)

// Driver owns applying `release` notifications to a table and
// emitting `del` requests drained from it.
type Driver struct {
	table   *hostref.Table
	logger  *slog.Logger
	journal *Journal
}

// Option configures a Driver.
type Option func(*Driver)

// WithLogger overrides the default slog.Default() logger.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Driver) { d.logger = logger }
}

// WithJournal attaches a debugging journal. Every applied release and
// every del outcome is recorded to it; see Journal's doc comment for
// why this is a diagnostic aid and not an identity-persistence
// mechanism (spec.md Non-goals).
func WithJournal(journal *Journal) Option {
	return func(d *Driver) { d.journal = journal }
}

// New builds a Driver over table.
func New(table *hostref.Table, opts ...Option) *Driver {
	d := &Driver{table: table, logger: slog.Default()}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// ApplyLine inspects a single line read from the kernel. If it is a
// `release` notification, the instance IDs it carries are applied to
// the table (dropping their conditional strong references) and
// handled reports true, telling the caller to keep reading rather
// than treat this line as a response. If the line is not shaped like
// a release notification, handled is false and the caller should
// process it as the response to whatever request produced it.
func (d *Driver) ApplyLine(line []byte) (handled bool, err error) {
	var probe struct {
		Release []string `json:"release"`
	}
	if err := json.Unmarshal(line, &probe); err != nil {
		return false, fmt.Errorf("hostloop: decoding line: %w", err)
	}
	if probe.Release == nil {
		return false, nil
	}

	d.table.HandleRelease(probe.Release)
	d.logger.Debug("hostloop: applied release notification", slog.Int("count", len(probe.Release)))
	d.journalAppend(JournalEntry{Kind: KindRelease, InstanceIDs: probe.Release})
	return true, nil
}

// FlushDeletes drains the table's deletable set and, for each
// instance ID, writes a `del` request to out and reads the matching
// response line from in. DrainDeletable has already removed each
// drained instance's record from the table, so nothing is restored
// when a del fails: a StillReachable or UnknownReference response is
// logged and journaled, not fatal.
func (d *Driver) FlushDeletes(in *bufio.Scanner, out *json.Encoder) error {
	for _, id := range d.table.DrainDeletable() {
		req := wire.NewDelRequest(wire.ObjectRef{Ref: id})
		if err := out.Encode(req); err != nil {
			return fmt.Errorf("hostloop: writing del request for %q: %w", id, err)
		}

		if !in.Scan() {
			if err := in.Err(); err != nil {
				return fmt.Errorf("hostloop: reading del response for %q: %w", id, err)
			}
			return fmt.Errorf("hostloop: kernel closed input while awaiting del response for %q", id)
		}

		var resp wire.DelResponse
		if err := json.Unmarshal(in.Bytes(), &resp); err != nil {
			return fmt.Errorf("hostloop: decoding del response for %q: %w", id, err)
		}

		if resp.Succeeded() {
			d.journalAppend(JournalEntry{Kind: KindDel, InstanceIDs: []string{id}})
			continue
		}

		d.logger.Warn("hostloop: del request failed",
			slog.String("instance_id", id), slog.String("category", string(resp.Error)))
		d.journalAppend(JournalEntry{Kind: KindDelFailed, InstanceIDs: []string{id}, Detail: resp.Message})
	}
	return nil
}

// Create registers a host-created object with the table and returns
// its proxy, per lib/hostref.Table.Create.
func (d *Driver) Create(ref wire.ObjectRef, referent any) (*hostref.Proxy, error) {
	proxy, err := d.table.Create(ref, referent)
	if err != nil {
		return nil, err
	}
	d.journalAppend(JournalEntry{Kind: KindCreate, InstanceIDs: []string{ref.Ref}})
	return proxy, nil
}

// Mirror registers a kernel-origin object with the table and returns
// its proxy, per lib/hostref.Table.Mirror.
func (d *Driver) Mirror(ref wire.ObjectRef, referent any) *hostref.Proxy {
	proxy := d.table.Mirror(ref, referent)
	d.journalAppend(JournalEntry{Kind: KindMirror, InstanceIDs: []string{ref.Ref}})
	return proxy
}

// Retain re-establishes a strong reference for instanceID, per
// lib/hostref.Table.Retain. Surfaces kernelerror.CollectedReferent if
// the host proxy has already been reclaimed — a programmer error, per
// spec.md §7's classification of that category as fatal.
func (d *Driver) Retain(instanceID string) error {
	if err := d.table.Retain(instanceID); err != nil {
		if category, ok := kernelerror.CategoryOf(err); ok {
			d.logger.Error("hostloop: retain failed", slog.String("instance_id", instanceID), slog.String("category", string(category)))
		}
		return err
	}
	d.journalAppend(JournalEntry{Kind: KindRetain, InstanceIDs: []string{instanceID}})
	return nil
}

func (d *Driver) journalAppend(entry JournalEntry) {
	if d.journal == nil {
		return
	}
	if err := d.journal.Append(entry); err != nil {
		d.logger.Warn("hostloop: journal append failed", slog.Any("error", err))
	}
}
