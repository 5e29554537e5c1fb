// Copyright 2016 aletheia7. All rights reserved. Use of this source code is
// governed by a BSD-2-Clause license that can be found in the LICENSE file.

//go:build !norm || !cgo

package norm

import "net/netip"

// engine_none stands in for libnorm when the package is built without
// -tags norm. No instance can be created, so no other method is reached.
type engine_none struct {
	engine
}

func default_engine() engine {
	return engine_none{}
}

func (engine_none) create_instance(bool) instance_handle {
	return instance_invalid
}

func (engine_none) get_version() (major, minor, patch int) {
	return 0, 0, 0
}

func (engine_none) is_unicast_address(address string) bool {
	a, err := netip.ParseAddr(address)
	if err != nil {
		return false
	}
	a = a.Unmap()
	return !a.IsMulticast() && !(a.Is4() && a == netip.AddrFrom4([4]byte{255, 255, 255, 255}))
}
