// Copyright 2026 The jsii-kernel Authors
// SPDX-License-Identifier: Apache-2.0

package main

import "testing"

func TestRunVersionFlagDoesNotServe(t *testing.T) {
	if err := run([]string{"--version"}); err != nil {
		t.Fatalf("run(--version) = %v, want nil", err)
	}
}

func TestRunRejectsUnknownFlag(t *testing.T) {
	if err := run([]string{"--not-a-real-flag"}); err == nil {
		t.Fatal("expected an error for an unrecognized flag")
	}
}

func TestLoadConfigDefaultsWhenNothingConfigured(t *testing.T) {
	t.Setenv("JSII_KERNEL_CONFIG", "")

	cfg, err := loadConfig("")
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Sequence.Origin != 10000 {
		t.Errorf("Sequence.Origin = %d, want the default 10000", cfg.Sequence.Origin)
	}
}

func TestUnresolvedTypeLoaderAlwaysErrors(t *testing.T) {
	if _, err := (unresolvedTypeLoader{}).ResolveType("Foo"); err == nil {
		t.Fatal("expected an error from the placeholder type loader")
	}
}

func TestNoopRequestHandlerAlwaysErrors(t *testing.T) {
	if _, err := (noopRequestHandler{}).Handle([]byte(`{"api":"create"}`)); err == nil {
		t.Fatal("expected an error from the placeholder request handler")
	}
}
