// Copyright 2026 The jsii-kernel Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/yuth/jsii-kernel/lib/kernel"
	"github.com/yuth/jsii-kernel/lib/kernelconfig"
	"github.com/yuth/jsii-kernel/lib/kernelloop"
)

// Serve loads configuration (from configPath if non-empty, otherwise
// JSII_KERNEL_CONFIG, otherwise the defaults) and runs the kernel
// event loop over os.Stdin/os.Stdout. The transport-agnostic core —
// the part that actually matters for testing — is kernelloop.Loop.Run,
// which takes plain io.Reader/io.Writer; Serve only binds it to the
// process's stdio, matching the teacher's Serve()/Run(r, w) split for
// its own stdio-facing daemons.
func Serve(configPath string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	logger := cfg.NewLogger(os.Stderr)
	store := kernel.NewStore(cfg.NewSequence(), unresolvedTypeLoader{}, logger)
	loop := kernelloop.New(store, noopRequestHandler{}, kernelloop.WithLogger(logger))

	return loop.Run(os.Stdin, os.Stdout)
}

func loadConfig(configPath string) (*kernelconfig.Config, error) {
	if configPath != "" {
		return kernelconfig.LoadFile(configPath)
	}
	if os.Getenv("JSII_KERNEL_CONFIG") != "" {
		return kernelconfig.Load()
	}
	return kernelconfig.Default(), nil
}

// unresolvedTypeLoader is a placeholder kernel.TypeResolver. The real
// type/assembly loader and FQN resolver is an external collaborator
// out of scope for this module (spec.md §1); wiring it in is an
// embedding concern for whatever process composes this binary with a
// real one, not something this command can supply on its own.
type unresolvedTypeLoader struct{}

func (unresolvedTypeLoader) ResolveType(fqn string) (kernel.TypeDescriptor, error) {
	return kernel.TypeDescriptor{}, fmt.Errorf("jsii-kernel: no type loader configured; cannot resolve %q", fqn)
}

// noopRequestHandler is a placeholder kernelloop.RequestHandler. The
// general request vocabulary (create, invoke, get, set, callback) is
// owned by the externally-owned type loader/invoker (spec.md §1); this
// binary demonstrates the event loop's del/release/exit handling in
// isolation.
type noopRequestHandler struct{}

func (noopRequestHandler) Handle(raw json.RawMessage) (json.RawMessage, error) {
	return nil, fmt.Errorf("jsii-kernel: no request handler configured for %s", raw)
}
