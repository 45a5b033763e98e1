// Copyright 2026 The jsii-kernel Authors
// SPDX-License-Identifier: Apache-2.0

package wire

import (
	"encoding/json"
	"testing"
)

func TestReleaseNotificationEmpty(t *testing.T) {
	if !(ReleaseNotification{}).Empty() {
		t.Error("zero-value ReleaseNotification should be Empty")
	}
	if (ReleaseNotification{Release: []string{"Foo@10000"}}).Empty() {
		t.Error("a notification carrying instance ids should not be Empty")
	}
}

func TestReleaseNotificationMarshal(t *testing.T) {
	n := ReleaseNotification{Release: []string{"Foo@10000", "Bar@10001"}}

	data, err := json.Marshal(n)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	want := `{"release":["Foo@10000","Bar@10001"]}`
	if string(data) != want {
		t.Errorf("Marshal = %s, want %s", data, want)
	}
}
