// Copyright 2016 aletheia7. All rights reserved. Use of this source code is
// governed by a BSD-2-Clause license that can be found in the LICENSE file.

package norm

import (
	"net/netip"
	"unsafe"
)

type (
	instance_handle uintptr

	// Session_handle is the raw libnorm NormSessionHandle carried by an Event.
	Session_handle uintptr

	// Object_handle is the raw libnorm NormObjectHandle carried by an Event.
	// Wrap it with Instance.Object_from_borrowed() or
	// Instance.Object_from_owned().
	Object_handle uintptr

	// Node_handle is the raw libnorm NormNodeHandle carried by an Event.
	// Wrap it with Instance.Node_from_borrowed() or Instance.Node_from_owned().
	Node_handle uintptr
)

// libnorm uses a distinct invalid sentinel per handle kind. All are NULL.
const (
	instance_invalid instance_handle = 0
	Session_invalid  Session_handle  = 0
	Object_invalid   Object_handle   = 0
	Node_invalid     Node_handle     = 0
)

// native_event is the NormEvent record: a type discriminant plus the
// session, sender and object fields.
type native_event struct {
	kind    uint32
	session Session_handle
	sender  Node_handle
	object  Object_handle
}

// engine is the fixed libnorm function surface. Every method forwards to
// exactly one Norm* entry point and reports failure the way libnorm does:
// false for boolean calls, the invalid sentinel for handle calls.
type engine interface {
	create_instance(priority_boost bool) instance_handle
	destroy_instance(h instance_handle)
	stop_instance(h instance_handle)
	restart_instance(h instance_handle) bool
	suspend_instance(h instance_handle) bool
	resume_instance(h instance_handle)
	set_cache_directory(h instance_handle, cache_path string) bool
	get_next_event(h instance_handle, wait bool) (native_event, bool)
	get_descriptor(h instance_handle) (int, bool)
	open_debug_log(h instance_handle, path string) bool
	close_debug_log(h instance_handle)
	open_debug_pipe(h instance_handle, pipe_name string) bool
	close_debug_pipe(h instance_handle)
	set_debug_level(level uint)
	get_debug_level() uint
	set_allocation_functions(h instance_handle, alloc_func, free_func unsafe.Pointer)
	get_version() (major, minor, patch int)
	is_unicast_address(address string) bool

	create_session(h instance_handle, address string, port uint16, node_id Node_id) Session_handle
	destroy_session(s Session_handle)
	get_local_node_id(s Session_handle) Node_id
	start_sender(s Session_handle, id uint16, buffer_space uint32, segment_size, block_size, num_parity uint16, fec_id uint8) bool
	stop_sender(s Session_handle)
	start_receiver(s Session_handle, buffer_space uint32) bool
	stop_receiver(s Session_handle)
	set_tx_rate(s Session_handle, bits_per_second float64)
	get_tx_rate(s Session_handle) float64
	set_tx_rate_bounds(s Session_handle, rate_min, rate_max float64)
	set_flow_control(s Session_handle, factor float64)
	set_congestion_control(s Session_handle, enable, adjust_rate bool)
	set_grtt_estimate(s Session_handle, grtt float64)
	get_grtt_estimate(s Session_handle) float64
	set_grtt_max(s Session_handle, grtt_max float64)
	set_grtt_probing_mode(s Session_handle, mode Probe_mode)
	set_backoff_factor(s Session_handle, factor float64)
	set_group_size(s Session_handle, size uint32)
	set_auto_parity(s Session_handle, auto_parity uint8)
	set_tx_only(s Session_handle, tx_only, connect_to_session_address bool)
	set_tx_port(s Session_handle, port uint16, reuse bool, bind_address string) bool
	set_rx_port_reuse(s Session_handle, enable bool, bind_address, sender_address string, sender_port uint16)
	set_tx_cache_bounds(s Session_handle, size_max uint64, count_min, count_max uint32)
	add_acking_node(s Session_handle, id Node_id) bool
	remove_acking_node(s Session_handle, id Node_id)
	get_acking_status(s Session_handle, id Node_id) Acking_status
	set_multicast_interface(s Session_handle, interface_name string) bool
	set_ssm(s Session_handle, source_address string) bool
	set_ttl(s Session_handle, ttl uint8) bool
	set_tos(s Session_handle, tos uint8) bool
	set_loopback(s Session_handle, enable bool) bool
	set_multicast_loopback(s Session_handle, enable bool) bool
	set_fragmentation(s Session_handle, enable bool) bool
	set_tx_socket_buffer(s Session_handle, size uint32) bool
	set_rx_socket_buffer(s Session_handle, size uint32) bool
	set_message_trace(s Session_handle, enable bool)
	set_default_unicast_nack(s Session_handle, enable bool)
	set_rx_cache_limit(s Session_handle, count_max uint16)
	set_silent_receiver(s Session_handle, silent bool, max_delay int)
	set_default_sync_policy(s Session_handle, policy Sync_policy)
	set_default_nacking_mode(s Session_handle, mode Nacking_mode)
	set_default_repair_boundary(s Session_handle, boundary Repair_boundary)
	file_enqueue(s Session_handle, path string, info []byte) Object_handle
	data_enqueue(s Session_handle, data, info []byte) Object_handle
	stream_open(s Session_handle, buffer_space uint32, info []byte) Object_handle
	requeue_object(s Session_handle, obj Object_handle) bool
	set_watermark(s Session_handle, obj Object_handle, override_flush bool) bool
	reset_watermark(s Session_handle) bool
	cancel_watermark(s Session_handle)
	send_command(s Session_handle, cmd []byte, robust bool) bool
	cancel_command(s Session_handle)

	object_get_type(o Object_handle) Object_type
	object_has_info(o Object_handle) bool
	object_get_info_length(o Object_handle) int
	object_get_info(o Object_handle, buf []byte) int
	object_get_size(o Object_handle) int64
	object_get_bytes_pending(o Object_handle) int64
	object_cancel(o Object_handle)
	object_retain(o Object_handle)
	object_release(o Object_handle)
	object_get_sender(o Object_handle) Node_handle
	object_set_nacking_mode(o Object_handle, mode Nacking_mode)
	data_access_data(o Object_handle) []byte
	file_get_name(o Object_handle) (string, bool)
	file_rename(o Object_handle, file_name string) bool
	stream_write(o Object_handle, data []byte) int
	stream_flush(o Object_handle, eom bool, mode Flush_mode)
	stream_set_auto_flush(o Object_handle, mode Flush_mode)
	stream_set_push_enable(o Object_handle, enable bool)
	stream_mark_eom(o Object_handle)
	stream_close(o Object_handle, graceful bool)
	stream_read(o Object_handle, buf []byte) (int, bool)
	stream_has_vacancy(o Object_handle) bool
	stream_seek_msg_start(o Object_handle) bool
	stream_get_read_offset(o Object_handle) uint64

	node_get_id(n Node_handle) Node_id
	node_get_address(n Node_handle) (netip.AddrPort, bool)
	node_get_command(n Node_handle) ([]byte, bool)
	node_get_grtt(n Node_handle) float64
	node_set_unicast_nack(n Node_handle, enable bool)
	node_set_nacking_mode(n Node_handle, mode Nacking_mode)
	node_set_repair_boundary(n Node_handle, boundary Repair_boundary)
	node_free_buffers(n Node_handle)
	node_delete(n Node_handle)
	node_retain(n Node_handle)
	node_release(n Node_handle)
}

// native is the engine used by Create_instance() and Is_unicast_address().
// It is the libnorm binding when built with -tags norm, and engine_none
// otherwise.
var native engine = default_engine()
