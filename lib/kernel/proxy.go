// Copyright 2026 The jsii-kernel Authors
// SPDX-License-Identifier: Apache-2.0

package kernel

// Proxy is the user-facing wrapper around a managed object's real
// referent (spec.md §4.4). It is the thing the Store holds only a
// weak reference to — the Store's strong reference is to the real
// referent, reachable transitively through any live Proxy's own
// strong hold on it.
//
// A Proxy is created lazily by Handle.Proxy and is never constructed
// directly by callers outside this package.
type Proxy struct {
	referent   any
	instanceID string
}

// InstanceID returns the instance ID of the handle this proxy was
// minted for.
func (p *Proxy) InstanceID() string {
	return p.instanceID
}

// Unwrap returns the real referent the proxy forwards to. Go has no
// transparent member-forwarding proxy object the way a dynamic runtime
// does; callers that need the concrete value call Unwrap rather than
// relying on the proxy behaving like the referent under reflection.
func (p *Proxy) Unwrap() any {
	return p.referent
}

// RealObject returns the hidden referent slot of x if x is a Proxy
// minted by this package, or x itself otherwise. This is the
// mechanism spec.md §4.5 calls "restoring identity across the wire":
// it lets Store.Register and Store.RefObject recognize a proxy handed
// back in as an argument and resolve it to the same handle the proxy
// was minted from, rather than registering a second, bogus identity.
func RealObject(x any) any {
	if p, ok := x.(*Proxy); ok {
		return p.referent
	}
	return x
}
