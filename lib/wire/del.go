// Copyright 2026 The jsii-kernel Authors
// SPDX-License-Identifier: Apache-2.0

package wire

import "github.com/yuth/jsii-kernel/kernelerror"

// DelRequest is the host→kernel del request frame of spec.md §6:
//
//	{ "api": "del", "objref": { "$jsii.byref": "..." } }
type DelRequest struct {
	API    string    `json:"api"`
	ObjRef ObjectRef `json:"objref"`
}

// NewDelRequest builds a del request for ref.
func NewDelRequest(ref ObjectRef) DelRequest {
	return DelRequest{API: "del", ObjRef: ref}
}

// DelResponse is the kernel's response to a del request: either a
// bare success acknowledgment or a categorized error, per spec.md §6:
//
//	{ "ok": {} }
//	{ "error": "StillReachable" | "UnknownReference", "message": "..." }
type DelResponse struct {
	OK      *struct{}            `json:"ok,omitempty"`
	Error   kernelerror.Category `json:"error,omitempty"`
	Message string               `json:"message,omitempty"`
}

// OKDelResponse builds the success response.
func OKDelResponse() DelResponse {
	return DelResponse{OK: &struct{}{}}
}

// ErrorDelResponse builds an error response from err. Panics if err
// is not a *kernelerror.Error — del only ever fails with
// UnknownReference or StillReachable (spec.md §4.7), both of which
// this package's callers construct through kernelerror.New.
func ErrorDelResponse(err error) DelResponse {
	category, ok := kernelerror.CategoryOf(err)
	if !ok {
		panic("wire: ErrorDelResponse called with a non-kernelerror error: " + err.Error())
	}
	return DelResponse{Error: category, Message: err.Error()}
}

// Succeeded reports whether the response represents success.
func (r DelResponse) Succeeded() bool {
	return r.OK != nil
}
