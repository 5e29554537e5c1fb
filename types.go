// Copyright 2016 aletheia7. All rights reserved. Use of this source code is
// governed by a BSD-2-Clause license that can be found in the LICENSE file.

package norm

import "fmt"

// Values match the enumerations in normApi.h. c.go verifies them at compile
// time.

type Object_type uint8

const (
	Object_type_none Object_type = iota
	Object_type_data
	Object_type_file
	Object_type_stream
)

var ot = map[Object_type]string{
	Object_type_none:   "none object",
	Object_type_data:   "data object",
	Object_type_file:   "file object",
	Object_type_stream: "stream object",
}

func (o Object_type) String() string {
	if v, ok := ot[o]; ok {
		return v
	}
	return fmt.Sprintf("object type %d", uint8(o))
}

type Node_id uint32

const (
	Node_none Node_id = 0x00000000
	Node_any  Node_id = 0xffffffff
)

var nn = map[Node_id]string{
	Node_none: "node none",
	Node_any:  "node any",
}

func (o Node_id) String() string {
	if s, ok := nn[o]; ok {
		return s
	}
	return fmt.Sprintf("node %x", uint32(o))
}

type Acking_status uint8

const (
	Ack_invalid Acking_status = iota
	Ack_failure
	Ack_pending
	Ack_success
)

var as = map[Acking_status]string{
	Ack_invalid: "ack invalid",
	Ack_failure: "ack failure",
	Ack_pending: "ack pending",
	Ack_success: "ack success",
}

func (o Acking_status) String() string {
	return as[o]
}

type Sync_policy uint8

const (
	Sync_current Sync_policy = iota
	Sync_stream
	Sync_all
)

var sp = map[Sync_policy]string{
	Sync_current: "sync current",
	Sync_stream:  "sync stream",
	Sync_all:     "sync all",
}

func (o Sync_policy) String() string {
	return sp[o]
}

type Nacking_mode uint8

const (
	Nack_none Nacking_mode = iota
	Nack_info_only
	Nack_normal
)

var nm = map[Nacking_mode]string{
	Nack_none:      "nack none",
	Nack_info_only: "nack info only",
	Nack_normal:    "nack normal",
}

func (o Nacking_mode) String() string {
	return nm[o]
}

type Repair_boundary uint8

const (
	Boundary_block Repair_boundary = iota
	Boundary_object
)

var rb = map[Repair_boundary]string{
	Boundary_block:  "repair block",
	Boundary_object: "repair object",
}

func (o Repair_boundary) String() string {
	return rb[o]
}

type Flush_mode uint8

const (
	Flush_none Flush_mode = iota
	Flush_passive
	Flush_active
)

var fm = map[Flush_mode]string{
	Flush_none:    "flush none",
	Flush_passive: "flush passive",
	Flush_active:  "flush active",
}

func (o Flush_mode) String() string {
	return fm[o]
}

type Probe_mode uint8

const (
	Probe_none Probe_mode = iota
	Probe_passive
	Probe_active
)

var pm = map[Probe_mode]string{
	Probe_none:    "probe none",
	Probe_passive: "probe passive",
	Probe_active:  "probe active",
}

func (o Probe_mode) String() string {
	return pm[o]
}

// Start_sender() geometry used by the example programs.
const (
	Default_buffer_space = 1024 * 1024
	Default_segment_size = 1400
	Default_block_size   = 64
	Default_num_parity   = 16
	Max_rx_cache_limit   = 16384
)
