// Copyright 2026 The jsii-kernel Authors
// SPDX-License-Identifier: Apache-2.0

package kernelloop

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/yuth/jsii-kernel/lib/kernel"
	"github.com/yuth/jsii-kernel/lib/kerneltest"
	"github.com/yuth/jsii-kernel/lib/wire"
)

// stubHandler answers every non-del request with a fixed echo
// envelope, recording the raw requests it was handed.
type stubHandler struct {
	seen      []string
	responses map[string]json.RawMessage
	err       error
}

func (h *stubHandler) Handle(raw json.RawMessage) (json.RawMessage, error) {
	h.seen = append(h.seen, string(raw))
	if h.err != nil {
		return nil, h.err
	}
	var env envelope
	_ = json.Unmarshal(raw, &env)
	if resp, ok := h.responses[env.API]; ok {
		return resp, nil
	}
	return json.RawMessage(`{"ok":{}}`), nil
}

func readLines(t *testing.T, r *bufio.Scanner, n int) []string {
	t.Helper()
	lines := make([]string, 0, n)
	for i := 0; i < n; i++ {
		if !r.Scan() {
			t.Fatalf("expected %d lines, got %d: %v", n, i, r.Err())
		}
		lines = append(lines, r.Text())
	}
	return lines
}

func TestLoopWritesHelloBeforeAnythingElse(t *testing.T) {
	store := kernel.NewStore(kernel.NewSequence(0, 1), kerneltest.NewFakeTypeResolver(), nil)
	loop := New(store, &stubHandler{})

	input := strings.NewReader(`{"api":"exit"}` + "\n")
	var output bytes.Buffer

	if err := loop.Run(input, &output); err != nil {
		t.Fatalf("Run: %v", err)
	}

	scanner := bufio.NewScanner(&output)
	lines := readLines(t, scanner, 1)

	var hello Hello
	if err := json.Unmarshal([]byte(lines[0]), &hello); err != nil {
		t.Fatalf("decoding hello: %v", err)
	}
	if hello.Hello != "jsii-kernel@1" {
		t.Errorf("Hello = %q, want jsii-kernel@1", hello.Hello)
	}
}

func TestLoopExitStopsWithoutWritingAResponse(t *testing.T) {
	store := kernel.NewStore(kernel.NewSequence(0, 1), kerneltest.NewFakeTypeResolver(), nil)
	handler := &stubHandler{}
	loop := New(store, handler)

	input := strings.NewReader(`{"api":"exit"}` + "\n" + `{"api":"should-not-run"}` + "\n")
	var output bytes.Buffer

	if err := loop.Run(input, &output); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(handler.seen) != 0 {
		t.Errorf("handler should never see a request after exit, saw %v", handler.seen)
	}

	scanner := bufio.NewScanner(&output)
	lines := readLines(t, scanner, 1) // hello only
	if len(lines) != 1 {
		t.Fatalf("expected exactly the hello line, got %v", lines)
	}
}

func TestLoopDispatchesDelDirectly(t *testing.T) {
	resolver := kerneltest.NewFakeTypeResolver().Class("Foo", "")
	store := kernel.NewStore(kernel.NewSequence(0, 1), resolver, nil)
	_, ref, err := store.Register("Foo", new(int), nil)
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	// still reachable: Register always hands back a live proxy, so
	// del must fail until that proxy is dropped and collected.
	handler := &stubHandler{}
	loop := New(store, handler)

	reqJSON, err := json.Marshal(wire.NewDelRequest(ref))
	if err != nil {
		t.Fatalf("marshal del request: %v", err)
	}

	input := strings.NewReader(string(reqJSON) + "\n" + `{"api":"exit"}` + "\n")
	var output bytes.Buffer

	if err := loop.Run(input, &output); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(handler.seen) != 0 {
		t.Error("del must be handled by the loop itself, not delegated to the RequestHandler")
	}

	scanner := bufio.NewScanner(&output)
	lines := readLines(t, scanner, 2) // hello, del response

	var resp wire.DelResponse
	if err := json.Unmarshal([]byte(lines[1]), &resp); err != nil {
		t.Fatalf("decoding del response: %v", err)
	}
	if resp.Succeeded() {
		t.Error("del of a still-reachable instance should fail")
	}
}

func TestLoopDelegatesNonDelRequests(t *testing.T) {
	store := kernel.NewStore(kernel.NewSequence(0, 1), kerneltest.NewFakeTypeResolver(), nil)
	handler := &stubHandler{}
	loop := New(store, handler)

	input := strings.NewReader(`{"api":"create"}` + "\n" + `{"api":"exit"}` + "\n")
	var output bytes.Buffer

	if err := loop.Run(input, &output); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(handler.seen) != 1 {
		t.Fatalf("handler.seen = %v, want one captured create request", handler.seen)
	}
}

// TestLoopPiggybacksReleaseBeforeResponse exercises spec.md §4.7/§5's
// ordering rule: a release notification produced during a tick must
// be written before that tick's response line.
func TestLoopPiggybacksReleaseBeforeResponse(t *testing.T) {
	resolver := kerneltest.NewFakeTypeResolver().Class("Foo", "")
	store := kernel.NewStore(kernel.NewSequence(0, 1), resolver, nil)

	proxy, _, err := store.Register("Foo", new(int), nil)
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	instanceID := proxy.InstanceID()
	proxy = nil
	kerneltest.ForceCollect()

	handler := &stubHandler{}
	loop := New(store, handler)

	input := strings.NewReader(`{"api":"create"}` + "\n" + `{"api":"exit"}` + "\n")
	var output bytes.Buffer

	if err := loop.Run(input, &output); err != nil {
		t.Fatalf("Run: %v", err)
	}

	scanner := bufio.NewScanner(&output)
	lines := readLines(t, scanner, 3) // hello, release, response

	var release wire.ReleaseNotification
	if err := json.Unmarshal([]byte(lines[1]), &release); err != nil {
		t.Fatalf("decoding release notification: %v", err)
	}
	if len(release.Release) != 1 || release.Release[0] != instanceID {
		t.Fatalf("release = %v, want [%s]", release.Release, instanceID)
	}

	// The response line must not itself look like a release frame.
	if strings.Contains(lines[2], `"release"`) {
		t.Errorf("response line unexpectedly carries a release field: %s", lines[2])
	}
}

func TestLoopMalformedDelIsUnknownReference(t *testing.T) {
	store := kernel.NewStore(kernel.NewSequence(0, 1), kerneltest.NewFakeTypeResolver(), nil)
	loop := New(store, &stubHandler{})

	input := strings.NewReader(`{"api":"del","objref":"not-an-object"}` + "\n" + `{"api":"exit"}` + "\n")
	var output bytes.Buffer

	if err := loop.Run(input, &output); err != nil {
		t.Fatalf("Run: %v", err)
	}

	scanner := bufio.NewScanner(&output)
	lines := readLines(t, scanner, 2)

	var resp wire.DelResponse
	if err := json.Unmarshal([]byte(lines[1]), &resp); err != nil {
		t.Fatalf("decoding del response: %v", err)
	}
	if resp.Succeeded() {
		t.Error("malformed del request should not succeed")
	}
	if resp.Error != "UnknownReference" {
		t.Errorf("Error = %q, want UnknownReference", resp.Error)
	}
}

func TestLoopHandlerErrorIsFatal(t *testing.T) {
	store := kernel.NewStore(kernel.NewSequence(0, 1), kerneltest.NewFakeTypeResolver(), nil)
	handler := &stubHandler{err: fmt.Errorf("boom")}
	loop := New(store, handler)

	input := strings.NewReader(`{"api":"create"}` + "\n")
	var output bytes.Buffer

	if err := loop.Run(input, &output); err == nil {
		t.Fatal("expected Run to return an error when the handler fails")
	}
}
