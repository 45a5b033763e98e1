// Copyright 2026 The jsii-kernel Authors
// SPDX-License-Identifier: Apache-2.0

package wire

import (
	"encoding/json"
	"fmt"
	"sort"
)

const (
	byrefKey     = "$jsii.byref"
	interfaceKey = "$jsii.interfaces"
)

// ObjectRef is the wire shape of an object reference (spec.md §6):
//
//	{ "$jsii.byref": "«fqn»@«n»", "$jsii.interfaces"?: ["fqn", ...] }
//
// Interfaces is omitted from the wire form when empty. Unknown fields
// present on an incoming ObjectRef are preserved verbatim and
// re-emitted on the next Marshal, per spec.md §6's round-trip
// requirement — a peer may attach implementation-specific metadata to
// a reference that this package does not interpret.
type ObjectRef struct {
	Ref        string
	Interfaces []string

	extra map[string]json.RawMessage
}

// MarshalJSON implements json.Marshaler.
func (r ObjectRef) MarshalJSON() ([]byte, error) {
	fields := make(map[string]json.RawMessage, len(r.extra)+2)
	for k, v := range r.extra {
		fields[k] = v
	}

	refJSON, err := json.Marshal(r.Ref)
	if err != nil {
		return nil, err
	}
	fields[byrefKey] = refJSON

	if len(r.Interfaces) > 0 {
		ifaceJSON, err := json.Marshal(r.Interfaces)
		if err != nil {
			return nil, err
		}
		fields[interfaceKey] = ifaceJSON
	} else {
		delete(fields, interfaceKey)
	}

	return marshalOrderedFields(fields)
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *ObjectRef) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return fmt.Errorf("wire: decoding object reference: %w", err)
	}

	refRaw, ok := fields[byrefKey]
	if !ok {
		return fmt.Errorf("wire: object reference missing %q", byrefKey)
	}
	if err := json.Unmarshal(refRaw, &r.Ref); err != nil {
		return fmt.Errorf("wire: decoding %q: %w", byrefKey, err)
	}
	delete(fields, byrefKey)

	if ifaceRaw, ok := fields[interfaceKey]; ok {
		if err := json.Unmarshal(ifaceRaw, &r.Interfaces); err != nil {
			return fmt.Errorf("wire: decoding %q: %w", interfaceKey, err)
		}
		delete(fields, interfaceKey)
	} else {
		r.Interfaces = nil
	}

	if len(fields) > 0 {
		r.extra = fields
	} else {
		r.extra = nil
	}
	return nil
}

// marshalOrderedFields renders fields as a JSON object with keys in
// lexicographic order, so ObjectRef's byte output is deterministic
// regardless of Go map iteration order.
func marshalOrderedFields(fields map[string]json.RawMessage) ([]byte, error) {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	buf := make([]byte, 0, 64)
	buf = append(buf, '{')
	for i, k := range keys {
		if i > 0 {
			buf = append(buf, ',')
		}
		keyJSON, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf = append(buf, keyJSON...)
		buf = append(buf, ':')
		buf = append(buf, fields[k]...)
	}
	buf = append(buf, '}')
	return buf, nil
}
