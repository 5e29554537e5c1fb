// Copyright 2016 aletheia7. All rights reserved. Use of this source code is
// governed by a BSD-2-Clause license that can be found in the LICENSE file.

package norm

import (
	"fmt"
	"net/netip"
	"sync/atomic"
)

// Node is a remote NORM participant.
//
// A Node is either owned or borrowed, decided when it is created. An owned
// Node holds one libnorm reference and Close() releases it exactly once. A
// borrowed Node (from an Event or Object.Get_sender()) references state that
// libnorm manages; Close() does nothing.
type Node struct {
	i        *Instance
	handle   Node_handle
	owned    bool
	released atomic.Bool
}

// Node_from_owned wraps a handle that already carries a libnorm reference
// for the caller (e.g. one retained with NormNodeRetain()). Close() releases
// it.
//
func (o *Instance) Node_from_owned(handle Node_handle) *Node {
	return &Node{i: o, handle: handle, owned: true}
}

// Node_from_borrowed wraps a handle without taking ownership.
//
func (o *Instance) Node_from_borrowed(handle Node_handle) *Node {
	return &Node{i: o, handle: handle}
}

func (o *Node) Handle() Node_handle {
	return o.handle
}

func (o *Node) Is_owned() bool {
	return o.owned
}

// Valid reports whether the handle may still be used: the Instance is alive
// and an owned Node has not been closed.
//
func (o *Node) Valid() bool {
	return o.handle != Node_invalid && o.i.alive() && !o.released.Load()
}

// https://htmlpreview.github.io/?https://github.com/aletheia7/norm/blob/master/norm/doc/NormDeveloperGuide.html#NormNodeGetId
//
func (o *Node) Get_id() Node_id {
	if !o.Valid() {
		return Node_none
	}
	return o.i.api.node_get_id(o.handle)
}

// https://htmlpreview.github.io/?https://github.com/aletheia7/norm/blob/master/norm/doc/NormDeveloperGuide.html#NormNodeGetAddress
//
func (o *Node) Get_address() (netip.AddrPort, error) {
	if !o.Valid() {
		return netip.AddrPort{}, invalid_handle("node get address")
	}
	ap, ok := o.i.api.node_get_address(o.handle)
	if !ok {
		return netip.AddrPort{}, operation_failed("node get address", "failed to get node address")
	}
	return ap, nil
}

// Returns: the most recent command from the remote sender, or an empty
// slice when none is pending.
//
// https://htmlpreview.github.io/?https://github.com/aletheia7/norm/blob/master/norm/doc/NormDeveloperGuide.html#NormNodeGetCommand
//
func (o *Node) Get_command() []byte {
	if !o.Valid() {
		return []byte{}
	}
	if cmd, ok := o.i.api.node_get_command(o.handle); ok && cmd != nil {
		return cmd
	}
	return []byte{}
}

// https://htmlpreview.github.io/?https://github.com/aletheia7/norm/blob/master/norm/doc/NormDeveloperGuide.html#NormNodeGetGrtt
//
func (o *Node) Get_grtt() float64 {
	if !o.Valid() {
		return 0
	}
	return o.i.api.node_get_grtt(o.handle)
}

// Receiver func
//
// https://htmlpreview.github.io/?https://github.com/aletheia7/norm/blob/master/norm/doc/NormDeveloperGuide.html#NormNodeSetUnicastNack
//
func (o *Node) Set_unicast_nack(enable bool) {
	if o.Valid() {
		o.i.api.node_set_unicast_nack(o.handle, enable)
	}
}

// Receiver func
//
// https://htmlpreview.github.io/?https://github.com/aletheia7/norm/blob/master/norm/doc/NormDeveloperGuide.html#NormNodeSetNackingMode
//
func (o *Node) Set_nacking_mode(mode Nacking_mode) {
	if o.Valid() {
		o.i.api.node_set_nacking_mode(o.handle, mode)
	}
}

// Receiver func
//
// https://htmlpreview.github.io/?https://github.com/aletheia7/norm/blob/master/norm/doc/NormDeveloperGuide.html#NormNodeSetRepairBoundary
//
func (o *Node) Set_repair_boundary(boundary Repair_boundary) {
	if o.Valid() {
		o.i.api.node_set_repair_boundary(o.handle, boundary)
	}
}

// https://htmlpreview.github.io/?https://github.com/aletheia7/norm/blob/master/norm/doc/NormDeveloperGuide.html#NormNodeFreeBuffers
//
func (o *Node) Free_buffers() {
	if o.Valid() {
		o.i.api.node_free_buffers(o.handle)
	}
}

// https://htmlpreview.github.io/?https://github.com/aletheia7/norm/blob/master/norm/doc/NormDeveloperGuide.html#NormNodeDelete
//
func (o *Node) Delete() {
	if o.Valid() {
		o.i.api.node_delete(o.handle)
	}
}

// Retain takes a new libnorm reference and returns it as a separate owned
// Node. The receiver is unchanged; Close() the returned Node to drop the
// reference.
//
// https://htmlpreview.github.io/?https://github.com/aletheia7/norm/blob/master/norm/doc/NormDeveloperGuide.html#NormNodeRetain
//
func (o *Node) Retain() (*Node, error) {
	if !o.Valid() {
		return nil, invalid_handle("node retain")
	}
	o.i.api.node_retain(o.handle)
	return o.i.Node_from_owned(o.handle), nil
}

// Release drops one libnorm reference.
//
// On an owned Node, Release is Close(). On a borrowed Node, Release calls
// NormNodeRelease() directly: the caller must hold a reference that was
// taken outside this Node (e.g. by libnorm on its behalf), otherwise the
// node is freed while libnorm still uses it.
//
// https://htmlpreview.github.io/?https://github.com/aletheia7/norm/blob/master/norm/doc/NormDeveloperGuide.html#NormNodeRelease
//
func (o *Node) Release() error {
	if o.owned {
		return o.Close()
	}
	if !o.Valid() {
		return invalid_handle("node release")
	}
	o.i.api.node_release(o.handle)
	return nil
}

// Close releases an owned Node exactly once. It is a no-op for borrowed
// Nodes, on repeated calls, and after the Instance is destroyed (libnorm has
// already freed the node).
//
func (o *Node) Close() error {
	if !o.owned || o.released.Swap(true) {
		return nil
	}
	if o.handle == Node_invalid || !o.i.alive() {
		return nil
	}
	o.i.api.node_release(o.handle)
	return nil
}

func (o *Node) String() string {
	return fmt.Sprintf("node handle: %#x, owned: %v", uintptr(o.handle), o.owned)
}
