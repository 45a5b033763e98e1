// Copyright 2026 The jsii-kernel Authors
// SPDX-License-Identifier: Apache-2.0

package kernelloop

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/yuth/jsii-kernel/lib/kernel"
	"github.com/yuth/jsii-kernel/lib/wire"
)

// maxLineBytes bounds a single newline-delimited JSON message. Object
// references and release batches are small; this is generous without
// being unbounded.
const maxLineBytes = 1 << 20

// RequestHandler processes request kinds outside the object store's
// scope (spec.md §1: create, invoke, get, set, callback belong to the
// externally-owned type loader/invoker). raw is the full request line,
// including its "api" field; the returned bytes are written verbatim
// as the response line.
//
// Handle may itself perform nested host callback round-trips
// (spec.md §5's "Suspension points") before returning — the loop
// simply awaits it. A returned error is treated as fatal to the loop:
// the response envelope for handler-owned request kinds is entirely
// the embedder's concern, so there is no in-scope shape to fall back
// to when Handle cannot produce one.
type RequestHandler interface {
	Handle(raw json.RawMessage) (json.RawMessage, error)
}

// envelope peeks at just enough of a request line to dispatch it.
type envelope struct {
	API string `json:"api"`
}

// Hello is the greeting the loop emits once, before reading its first
// request (spec.md §5 step 1). Shape is intentionally minimal — the
// spec leaves the greeting's payload unconstrained.
type Hello struct {
	Hello string `json:"hello"`
}

// Loop runs the kernel event loop over a Store.
type Loop struct {
	store    *kernel.Store
	handler  RequestHandler
	logger   *slog.Logger
	greeting string
}

// Option configures a Loop.
type Option func(*Loop)

// WithLogger overrides the default slog.Default() logger.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loop) { l.logger = logger }
}

// WithGreeting overrides the default hello payload.
func WithGreeting(greeting string) Option {
	return func(l *Loop) { l.greeting = greeting }
}

// New builds a Loop over store, delegating requests outside this
// package's scope to handler.
func New(store *kernel.Store, handler RequestHandler, opts ...Option) *Loop {
	l := &Loop{
		store:    store,
		handler:  handler,
		logger:   slog.Default(),
		greeting: "jsii-kernel@1",
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Run executes the event loop against input/output until input is
// exhausted or an "exit" request is read. Each request and response
// occupies exactly one line of newline-delimited JSON.
func (l *Loop) Run(input io.Reader, output io.Writer) error {
	scanner := bufio.NewScanner(input)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	encoder := json.NewEncoder(output)

	if err := encoder.Encode(Hello{Hello: l.greeting}); err != nil {
		return fmt.Errorf("kernelloop: writing hello: %w", err)
	}

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var env envelope
		if err := json.Unmarshal(line, &env); err != nil {
			return fmt.Errorf("kernelloop: decoding request: %w", err)
		}

		if env.API == "exit" {
			l.logger.Debug("kernelloop: exit requested")
			return nil
		}

		response, err := l.dispatch(env.API, line)
		if err != nil {
			return fmt.Errorf("kernelloop: processing %q request: %w", env.API, err)
		}

		// Ordering rule (spec.md §4.7/§5): drain and piggyback release
		// notifications produced by this tick before writing the
		// response, so the host observes them in causal order.
		if err := l.writeReleaseIfAny(encoder); err != nil {
			return err
		}

		if err := encoder.Encode(response); err != nil {
			return fmt.Errorf("kernelloop: writing response: %w", err)
		}
	}

	return scanner.Err()
}

func (l *Loop) dispatch(api string, line []byte) (any, error) {
	l.logger.Debug("kernelloop: dispatching request", slog.String("api", api))

	if api == "del" {
		return l.handleDel(line), nil
	}

	return l.handler.Handle(json.RawMessage(line))
}

func (l *Loop) handleDel(line []byte) wire.DelResponse {
	var req wire.DelRequest
	if err := json.Unmarshal(line, &req); err != nil {
		l.logger.Warn("kernelloop: malformed del request", slog.Any("error", err))
		return wire.DelResponse{Error: "UnknownReference", Message: err.Error()}
	}

	if err := l.store.Delete(req.ObjRef); err != nil {
		return wire.ErrorDelResponse(err)
	}
	return wire.OKDelResponse()
}

func (l *Loop) writeReleaseIfAny(encoder *json.Encoder) error {
	ids := l.store.FinalizedInstanceIDs()
	if len(ids) == 0 {
		return nil
	}

	l.logger.Debug("kernelloop: piggybacking release notification", slog.Int("count", len(ids)))
	if err := encoder.Encode(wire.ReleaseNotification{Release: ids}); err != nil {
		return fmt.Errorf("kernelloop: writing release notification: %w", err)
	}
	return nil
}
