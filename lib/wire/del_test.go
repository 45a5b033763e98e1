// Copyright 2026 The jsii-kernel Authors
// SPDX-License-Identifier: Apache-2.0

package wire

import (
	"encoding/json"
	"testing"

	"github.com/yuth/jsii-kernel/kernelerror"
)

func TestNewDelRequest(t *testing.T) {
	req := NewDelRequest(ObjectRef{Ref: "Foo@10000"})
	if req.API != "del" {
		t.Errorf("API = %q, want del", req.API)
	}
	if req.ObjRef.Ref != "Foo@10000" {
		t.Errorf("ObjRef.Ref = %q, want Foo@10000", req.ObjRef.Ref)
	}
}

func TestOKDelResponseSucceeded(t *testing.T) {
	resp := OKDelResponse()
	if !resp.Succeeded() {
		t.Error("OKDelResponse().Succeeded() = false, want true")
	}

	data, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(data) != `{"ok":{}}` {
		t.Errorf("Marshal = %s, want {\"ok\":{}}", data)
	}
}

func TestErrorDelResponseNotSucceeded(t *testing.T) {
	err := kernelerror.New(kernelerror.StillReachable, "instance %q still has a live proxy", "Foo@10000")
	resp := ErrorDelResponse(err)

	if resp.Succeeded() {
		t.Error("ErrorDelResponse(...).Succeeded() = true, want false")
	}
	if resp.Error != kernelerror.StillReachable {
		t.Errorf("Error = %q, want StillReachable", resp.Error)
	}
	if resp.Message == "" {
		t.Error("Message should carry the human-readable error text")
	}
}

func TestErrorDelResponsePanicsOnNonKernelError(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic for a non-kernelerror error")
		}
	}()
	ErrorDelResponse(errPlain("boom"))
}

type errPlain string

func (e errPlain) Error() string { return string(e) }

func TestDelResponseRoundTrip(t *testing.T) {
	original := ErrorDelResponse(kernelerror.New(kernelerror.UnknownReference, "no managed object for %q", "Foo@999"))

	data, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var decoded DelResponse
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if decoded.Error != kernelerror.UnknownReference {
		t.Errorf("Error = %q, want UnknownReference", decoded.Error)
	}
	if decoded.Succeeded() {
		t.Error("decoded error response should not report Succeeded")
	}
}
