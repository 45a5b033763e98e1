// Copyright 2026 The jsii-kernel Authors
// SPDX-License-Identifier: Apache-2.0

package kernel

import "log/slog"

// EventType classifies a Store lifecycle event (spec.md §4.5).
type EventType string

const (
	// Managed fires when register allocates a brand new handle.
	Managed EventType = "managed"

	// Retained fires when a dormant handle (HasProxy false) gains a
	// proxy again, via Dereference or Register minting a fresh one.
	// RefObject mints no proxy and does not fire it.
	Retained EventType = "retained"

	// Releasable fires when the finalization callback observes a
	// proxy collected.
	Releasable EventType = "releasable"

	// Unmanaged fires when Delete removes a handle.
	Unmanaged EventType = "unmanaged"
)

// Event describes a single Store lifecycle transition.
type Event struct {
	Type       EventType
	InstanceID string
}

// EventListener receives Store lifecycle events. Per spec.md §7,
// "Event emission ... must not throw; listener exceptions are caught
// and logged at most" — Store.emit recovers a panicking listener and
// logs it rather than letting it escape into the operation that
// triggered the event.
type EventListener func(Event)

func (s *Store) emit(event Event) {
	for _, listener := range s.listeners {
		s.invokeListener(listener, event)
	}
}

func (s *Store) invokeListener(listener EventListener, event Event) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("kernel: event listener panicked",
				slog.String("event", string(event.Type)),
				slog.String("instance_id", event.InstanceID),
				slog.Any("panic", r))
		}
	}()
	listener(event)
}
