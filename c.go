// Copyright 2016 aletheia7. All rights reserved. Use of this source code is
// governed by a BSD-2-Clause license that can be found in the LICENSE file.

//go:build norm && cgo

package norm

/*
#cgo CFLAGS:  -I${SRCDIR}/norm/include -I${SRCDIR}/protolib/include
#cgo LDFLAGS: -L${SRCDIR}/norm/lib -lnorm -L${SRCDIR}/norm/protolib/lib  -lprotokit -lpthread -lstdc++ -lm
#include <stdlib.h>
#include "normApi.h"
*/
import "C"

import (
	"bytes"
	"net/netip"
	"sync"
	"unsafe"
)

// Go enumerations must equal normApi.h. A mismatch fails to compile.
var (
	_ = [1]struct{}{}[int(C.NORM_EVENT_INVALID)-int(Event_type_invalid)]
	_ = [1]struct{}{}[int(C.NORM_TX_QUEUE_VACANCY)-int(Event_type_tx_queue_vacancy)]
	_ = [1]struct{}{}[int(C.NORM_TX_QUEUE_EMPTY)-int(Event_type_tx_queue_empty)]
	_ = [1]struct{}{}[int(C.NORM_TX_FLUSH_COMPLETED)-int(Event_type_tx_flush_completed)]
	_ = [1]struct{}{}[int(C.NORM_TX_WATERMARK_COMPLETED)-int(Event_type_tx_watermark_completed)]
	_ = [1]struct{}{}[int(C.NORM_TX_CMD_SENT)-int(Event_type_tx_cmd_sent)]
	_ = [1]struct{}{}[int(C.NORM_TX_OBJECT_SENT)-int(Event_type_tx_object_sent)]
	_ = [1]struct{}{}[int(C.NORM_TX_OBJECT_PURGED)-int(Event_type_tx_object_purged)]
	_ = [1]struct{}{}[int(C.NORM_TX_RATE_CHANGED)-int(Event_type_tx_rate_changed)]
	_ = [1]struct{}{}[int(C.NORM_LOCAL_SENDER_CLOSED)-int(Event_type_local_sender_closed)]
	_ = [1]struct{}{}[int(C.NORM_REMOTE_SENDER_NEW)-int(Event_type_remote_sender_new)]
	_ = [1]struct{}{}[int(C.NORM_REMOTE_SENDER_RESET)-int(Event_type_remote_sender_reset)]
	_ = [1]struct{}{}[int(C.NORM_REMOTE_SENDER_ADDRESS)-int(Event_type_remote_sender_address)]
	_ = [1]struct{}{}[int(C.NORM_REMOTE_SENDER_ACTIVE)-int(Event_type_remote_sender_active)]
	_ = [1]struct{}{}[int(C.NORM_REMOTE_SENDER_INACTIVE)-int(Event_type_remote_sender_inactive)]
	_ = [1]struct{}{}[int(C.NORM_REMOTE_SENDER_PURGED)-int(Event_type_remote_sender_purged)]
	_ = [1]struct{}{}[int(C.NORM_RX_CMD_NEW)-int(Event_type_rx_cmd_new)]
	_ = [1]struct{}{}[int(C.NORM_RX_OBJECT_NEW)-int(Event_type_rx_object_new)]
	_ = [1]struct{}{}[int(C.NORM_RX_OBJECT_INFO)-int(Event_type_rx_object_info)]
	_ = [1]struct{}{}[int(C.NORM_RX_OBJECT_UPDATED)-int(Event_type_rx_object_updated)]
	_ = [1]struct{}{}[int(C.NORM_RX_OBJECT_COMPLETED)-int(Event_type_rx_object_completed)]
	_ = [1]struct{}{}[int(C.NORM_RX_OBJECT_ABORTED)-int(Event_type_rx_object_aborted)]
	_ = [1]struct{}{}[int(C.NORM_RX_ACK_REQUEST)-int(Event_type_rx_ack_request)]
	_ = [1]struct{}{}[int(C.NORM_GRTT_UPDATED)-int(Event_type_grtt_updated)]
	_ = [1]struct{}{}[int(C.NORM_CC_ACTIVE)-int(Event_type_cc_active)]
	_ = [1]struct{}{}[int(C.NORM_CC_INACTIVE)-int(Event_type_cc_inactive)]
	_ = [1]struct{}{}[int(C.NORM_ACKING_NODE_NEW)-int(Event_type_acking_node_new)]
	_ = [1]struct{}{}[int(C.NORM_SEND_ERROR)-int(Event_type_send_error)]
	_ = [1]struct{}{}[int(C.NORM_USER_TIMEOUT)-int(Event_type_user_timeout)]

	_ = [1]struct{}{}[int(C.NORM_OBJECT_NONE)-int(Object_type_none)]
	_ = [1]struct{}{}[int(C.NORM_OBJECT_DATA)-int(Object_type_data)]
	_ = [1]struct{}{}[int(C.NORM_OBJECT_FILE)-int(Object_type_file)]
	_ = [1]struct{}{}[int(C.NORM_OBJECT_STREAM)-int(Object_type_stream)]

	_ = [1]struct{}{}[int(C.NORM_ACK_INVALID)-int(Ack_invalid)]
	_ = [1]struct{}{}[int(C.NORM_ACK_FAILURE)-int(Ack_failure)]
	_ = [1]struct{}{}[int(C.NORM_ACK_PENDING)-int(Ack_pending)]
	_ = [1]struct{}{}[int(C.NORM_ACK_SUCCESS)-int(Ack_success)]

	_ = [1]struct{}{}[int(C.NORM_SYNC_CURRENT)-int(Sync_current)]
	_ = [1]struct{}{}[int(C.NORM_SYNC_STREAM)-int(Sync_stream)]
	_ = [1]struct{}{}[int(C.NORM_SYNC_ALL)-int(Sync_all)]

	_ = [1]struct{}{}[int(C.NORM_NACK_NONE)-int(Nack_none)]
	_ = [1]struct{}{}[int(C.NORM_NACK_INFO_ONLY)-int(Nack_info_only)]
	_ = [1]struct{}{}[int(C.NORM_NACK_NORMAL)-int(Nack_normal)]

	_ = [1]struct{}{}[int(C.NORM_BOUNDARY_BLOCK)-int(Boundary_block)]
	_ = [1]struct{}{}[int(C.NORM_BOUNDARY_OBJECT)-int(Boundary_object)]

	_ = [1]struct{}{}[int(C.NORM_FLUSH_NONE)-int(Flush_none)]
	_ = [1]struct{}{}[int(C.NORM_FLUSH_PASSIVE)-int(Flush_passive)]
	_ = [1]struct{}{}[int(C.NORM_FLUSH_ACTIVE)-int(Flush_active)]

	_ = [1]struct{}{}[int(C.NORM_PROBE_NONE)-int(Probe_none)]
	_ = [1]struct{}{}[int(C.NORM_PROBE_PASSIVE)-int(Probe_passive)]
	_ = [1]struct{}{}[int(C.NORM_PROBE_ACTIVE)-int(Probe_active)]
)

// Longest NormFileGetName() result accepted.
const max_file_name = 4096

type c_engine struct {
	lock     sync.Mutex
	sessions map[Session_handle]instance_handle
	data     data_refs
}

func default_engine() engine {
	return &c_engine{
		sessions: map[Session_handle]instance_handle{},
	}
}

func (h instance_handle) c() C.NormInstanceHandle {
	return C.NormInstanceHandle(unsafe.Pointer(h))
}

func (h Session_handle) c() C.NormSessionHandle {
	return C.NormSessionHandle(unsafe.Pointer(h))
}

func (h Object_handle) c() C.NormObjectHandle {
	return C.NormObjectHandle(unsafe.Pointer(h))
}

func (h Node_handle) c() C.NormNodeHandle {
	return C.NormNodeHandle(unsafe.Pointer(h))
}

type address struct {
	p *C.char
}

// new_address returns a C string, or NULL for an empty s.
func new_address(s string) (r *address) {
	r = &address{}
	if 0 < len(s) {
		r.p = C.CString(s)
	}
	return
}

func (o *address) free() {
	if o.p != nil {
		C.free(unsafe.Pointer(o.p))
		o.p = nil
	}
}

// b2c points at b for the duration of one call. libnorm copies info and
// command buffers.
func b2c(b []byte) *C.char {
	if len(b) == 0 {
		return nil
	}
	return (*C.char)(unsafe.Pointer(&b[0]))
}

func free_data(ps ...unsafe.Pointer) {
	for _, p := range ps {
		if p != nil {
			C.free(p)
		}
	}
}

func (o *c_engine) create_instance(priority_boost bool) instance_handle {
	h := C.NormCreateInstance(C._Bool(priority_boost))
	if h == C.NORM_INSTANCE_INVALID {
		return instance_invalid
	}
	return instance_handle(uintptr(unsafe.Pointer(h)))
}

func (o *c_engine) destroy_instance(h instance_handle) {
	C.NormDestroyInstance(h.c())
	free_data(o.data.take_instance(h)...)
	o.lock.Lock()
	defer o.lock.Unlock()
	for sh, ih := range o.sessions {
		if ih == h {
			delete(o.sessions, sh)
		}
	}
}

func (o *c_engine) stop_instance(h instance_handle) {
	C.NormStopInstance(h.c())
}

func (o *c_engine) restart_instance(h instance_handle) bool {
	return bool(C.NormRestartInstance(h.c()))
}

func (o *c_engine) suspend_instance(h instance_handle) bool {
	return bool(C.NormSuspendInstance(h.c()))
}

func (o *c_engine) resume_instance(h instance_handle) {
	C.NormResumeInstance(h.c())
}

func (o *c_engine) set_cache_directory(h instance_handle, cache_path string) bool {
	cp := C.CString(cache_path)
	defer C.free(unsafe.Pointer(cp))
	return bool(C.NormSetCacheDirectory(h.c(), cp))
}

func (o *c_engine) get_next_event(h instance_handle, wait bool) (native_event, bool) {
	var ev C.NormEvent
	if !C.NormGetNextEvent(h.c(), &ev, C._Bool(wait)) {
		return native_event{}, false
	}
	r := native_event{
		kind:    uint32(ev._type),
		session: Session_handle(uintptr(unsafe.Pointer(ev.session))),
		sender:  Node_handle(uintptr(unsafe.Pointer(ev.sender))),
		object:  Object_handle(uintptr(unsafe.Pointer(ev.object))),
	}
	if ev._type == C.NORM_TX_OBJECT_PURGED {
		free_data(o.data.purge(r.object))
	}
	return r, true
}

func (o *c_engine) get_descriptor(h instance_handle) (int, bool) {
	d := C.NormGetDescriptor(h.c())
	if d == C.NORM_DESCRIPTOR_INVALID {
		return -1, false
	}
	return int(d), true
}

func (o *c_engine) open_debug_log(h instance_handle, path string) bool {
	fn := C.CString(path)
	defer C.free(unsafe.Pointer(fn))
	return bool(C.NormOpenDebugLog(h.c(), fn))
}

func (o *c_engine) close_debug_log(h instance_handle) {
	C.NormCloseDebugLog(h.c())
}

func (o *c_engine) open_debug_pipe(h instance_handle, pipe_name string) bool {
	fn := C.CString(pipe_name)
	defer C.free(unsafe.Pointer(fn))
	return bool(C.NormOpenDebugPipe(h.c(), fn))
}

func (o *c_engine) close_debug_pipe(h instance_handle) {
	C.NormCloseDebugPipe(h.c())
}

func (o *c_engine) set_debug_level(level uint) {
	C.NormSetDebugLevel(C.uint(level))
}

func (o *c_engine) get_debug_level() uint {
	return uint(C.NormGetDebugLevel())
}

func (o *c_engine) set_allocation_functions(h instance_handle, alloc_func, free_func unsafe.Pointer) {
	C.NormSetAllocationFunctions(h.c(), C.NormAllocFunctionHandle(alloc_func), C.NormFreeFunctionHandle(free_func))
}

func (o *c_engine) get_version() (major, minor, patch int) {
	var ma, mi, pa C.int
	C.NormGetVersion(&ma, &mi, &pa)
	return int(ma), int(mi), int(pa)
}

func (o *c_engine) is_unicast_address(address string) bool {
	ba := C.CString(address)
	defer C.free(unsafe.Pointer(ba))
	return bool(C.NormIsUnicastAddress(ba))
}

func (o *c_engine) create_session(h instance_handle, address string, port uint16, node_id Node_id) Session_handle {
	ba := new_address(address)
	defer ba.free()
	s := C.NormCreateSession(h.c(), ba.p, C.UINT16(port), C.NormNodeId(node_id))
	if s == C.NORM_SESSION_INVALID {
		return Session_invalid
	}
	r := Session_handle(uintptr(unsafe.Pointer(s)))
	o.lock.Lock()
	o.sessions[r] = h
	o.lock.Unlock()
	return r
}

func (o *c_engine) destroy_session(s Session_handle) {
	C.NormDestroySession(s.c())
	free_data(o.data.take_session(s)...)
	o.lock.Lock()
	delete(o.sessions, s)
	o.lock.Unlock()
}

func (o *c_engine) get_local_node_id(s Session_handle) Node_id {
	return Node_id(C.NormGetLocalNodeId(s.c()))
}

func (o *c_engine) start_sender(s Session_handle, id uint16, buffer_space uint32, segment_size, block_size, num_parity uint16, fec_id uint8) bool {
	return bool(C.NormStartSender(s.c(), C.NormSessionId(id), C.UINT32(buffer_space), C.UINT16(segment_size), C.UINT16(block_size), C.UINT16(num_parity), C.UINT8(fec_id)))
}

func (o *c_engine) stop_sender(s Session_handle) {
	C.NormStopSender(s.c())
}

func (o *c_engine) start_receiver(s Session_handle, buffer_space uint32) bool {
	return bool(C.NormStartReceiver(s.c(), C.UINT32(buffer_space)))
}

func (o *c_engine) stop_receiver(s Session_handle) {
	C.NormStopReceiver(s.c())
}

func (o *c_engine) set_tx_rate(s Session_handle, bits_per_second float64) {
	C.NormSetTxRate(s.c(), C.double(bits_per_second))
}

func (o *c_engine) get_tx_rate(s Session_handle) float64 {
	return float64(C.NormGetTxRate(s.c()))
}

func (o *c_engine) set_tx_rate_bounds(s Session_handle, rate_min, rate_max float64) {
	C.NormSetTxRateBounds(s.c(), C.double(rate_min), C.double(rate_max))
}

func (o *c_engine) set_flow_control(s Session_handle, factor float64) {
	C.NormSetFlowControl(s.c(), C.double(factor))
}

func (o *c_engine) set_congestion_control(s Session_handle, enable, adjust_rate bool) {
	C.NormSetCongestionControl(s.c(), C._Bool(enable), C._Bool(adjust_rate))
}

func (o *c_engine) set_grtt_estimate(s Session_handle, grtt float64) {
	C.NormSetGrttEstimate(s.c(), C.double(grtt))
}

func (o *c_engine) get_grtt_estimate(s Session_handle) float64 {
	return float64(C.NormGetGrttEstimate(s.c()))
}

func (o *c_engine) set_grtt_max(s Session_handle, grtt_max float64) {
	C.NormSetGrttMax(s.c(), C.double(grtt_max))
}

func (o *c_engine) set_grtt_probing_mode(s Session_handle, mode Probe_mode) {
	C.NormSetGrttProbingMode(s.c(), C.NormProbingMode(mode))
}

func (o *c_engine) set_backoff_factor(s Session_handle, factor float64) {
	C.NormSetBackoffFactor(s.c(), C.double(factor))
}

func (o *c_engine) set_group_size(s Session_handle, size uint32) {
	C.NormSetGroupSize(s.c(), C.uint(size))
}

func (o *c_engine) set_auto_parity(s Session_handle, auto_parity uint8) {
	C.NormSetAutoParity(s.c(), C.uchar(auto_parity))
}

func (o *c_engine) set_tx_only(s Session_handle, tx_only, connect_to_session_address bool) {
	C.NormSetTxOnly(s.c(), C._Bool(tx_only), C._Bool(connect_to_session_address))
}

func (o *c_engine) set_tx_port(s Session_handle, port uint16, reuse bool, bind_address string) bool {
	ba := new_address(bind_address)
	defer ba.free()
	return bool(C.NormSetTxPort(s.c(), C.UINT16(port), C._Bool(reuse), ba.p))
}

func (o *c_engine) set_rx_port_reuse(s Session_handle, enable bool, bind_address, sender_address string, sender_port uint16) {
	ba := new_address(bind_address)
	defer ba.free()
	sa := new_address(sender_address)
	defer sa.free()
	C.NormSetRxPortReuse(s.c(), C._Bool(enable), ba.p, sa.p, C.UINT16(sender_port))
}

func (o *c_engine) set_tx_cache_bounds(s Session_handle, size_max uint64, count_min, count_max uint32) {
	C.NormSetTxCacheBounds(s.c(), C.NormSize(size_max), C.UINT32(count_min), C.UINT32(count_max))
}

func (o *c_engine) add_acking_node(s Session_handle, id Node_id) bool {
	return bool(C.NormAddAckingNode(s.c(), C.NormNodeId(id)))
}

func (o *c_engine) remove_acking_node(s Session_handle, id Node_id) {
	C.NormRemoveAckingNode(s.c(), C.NormNodeId(id))
}

func (o *c_engine) get_acking_status(s Session_handle, id Node_id) Acking_status {
	return Acking_status(C.NormGetAckingStatus(s.c(), C.NormNodeId(id)))
}

func (o *c_engine) set_multicast_interface(s Session_handle, interface_name string) bool {
	ba := new_address(interface_name)
	defer ba.free()
	return bool(C.NormSetMulticastInterface(s.c(), ba.p))
}

func (o *c_engine) set_ssm(s Session_handle, source_address string) bool {
	ba := new_address(source_address)
	defer ba.free()
	return bool(C.NormSetSSM(s.c(), ba.p))
}

func (o *c_engine) set_ttl(s Session_handle, ttl uint8) bool {
	return bool(C.NormSetTTL(s.c(), C.uchar(ttl)))
}

func (o *c_engine) set_tos(s Session_handle, tos uint8) bool {
	return bool(C.NormSetTOS(s.c(), C.uchar(tos)))
}

func (o *c_engine) set_loopback(s Session_handle, enable bool) bool {
	return bool(C.NormSetLoopback(s.c(), C._Bool(enable)))
}

func (o *c_engine) set_multicast_loopback(s Session_handle, enable bool) bool {
	return bool(C.NormSetMulticastLoopback(s.c(), C._Bool(enable)))
}

func (o *c_engine) set_fragmentation(s Session_handle, enable bool) bool {
	return bool(C.NormSetFragmentation(s.c(), C._Bool(enable)))
}

func (o *c_engine) set_tx_socket_buffer(s Session_handle, size uint32) bool {
	return bool(C.NormSetTxSocketBuffer(s.c(), C.uint(size)))
}

func (o *c_engine) set_rx_socket_buffer(s Session_handle, size uint32) bool {
	return bool(C.NormSetRxSocketBuffer(s.c(), C.uint(size)))
}

func (o *c_engine) set_message_trace(s Session_handle, enable bool) {
	C.NormSetMessageTrace(s.c(), C._Bool(enable))
}

func (o *c_engine) set_default_unicast_nack(s Session_handle, enable bool) {
	C.NormSetDefaultUnicastNack(s.c(), C._Bool(enable))
}

func (o *c_engine) set_rx_cache_limit(s Session_handle, count_max uint16) {
	C.NormSetRxCacheLimit(s.c(), C.ushort(count_max))
}

func (o *c_engine) set_silent_receiver(s Session_handle, silent bool, max_delay int) {
	C.NormSetSilentReceiver(s.c(), C._Bool(silent), C.int(max_delay))
}

func (o *c_engine) set_default_sync_policy(s Session_handle, policy Sync_policy) {
	C.NormSetDefaultSyncPolicy(s.c(), C.NormSyncPolicy(policy))
}

func (o *c_engine) set_default_nacking_mode(s Session_handle, mode Nacking_mode) {
	C.NormSetDefaultNackingMode(s.c(), C.NormNackingMode(mode))
}

func (o *c_engine) set_default_repair_boundary(s Session_handle, boundary Repair_boundary) {
	C.NormSetDefaultRepairBoundary(s.c(), C.NormRepairBoundary(boundary))
}

func object_handle(h C.NormObjectHandle) Object_handle {
	if h == C.NORM_OBJECT_INVALID {
		return Object_invalid
	}
	return Object_handle(uintptr(unsafe.Pointer(h)))
}

func (o *c_engine) file_enqueue(s Session_handle, path string, info []byte) Object_handle {
	fn := C.CString(path)
	defer C.free(unsafe.Pointer(fn))
	return object_handle(C.NormFileEnqueue(s.c(), fn, b2c(info), C.uint(len(info))))
}

func (o *c_engine) data_enqueue(s Session_handle, data, info []byte) Object_handle {
	var p unsafe.Pointer
	if 0 < len(data) {
		p = C.CBytes(data)
	}
	h := object_handle(C.NormDataEnqueue(s.c(), (*C.char)(p), C.UINT32(len(data)), b2c(info), C.uint(len(info))))
	if h == Object_invalid {
		if p != nil {
			C.free(p)
		}
		return h
	}
	if p != nil {
		o.lock.Lock()
		inst := o.sessions[s]
		o.lock.Unlock()
		o.data.add(h, p, inst, s)
	}
	return h
}

func (o *c_engine) stream_open(s Session_handle, buffer_space uint32, info []byte) Object_handle {
	return object_handle(C.NormStreamOpen(s.c(), C.UINT32(buffer_space), b2c(info), C.uint(len(info))))
}

func (o *c_engine) requeue_object(s Session_handle, obj Object_handle) bool {
	return bool(C.NormRequeueObject(s.c(), obj.c()))
}

func (o *c_engine) set_watermark(s Session_handle, obj Object_handle, override_flush bool) bool {
	return bool(C.NormSetWatermark(s.c(), obj.c(), C._Bool(override_flush)))
}

func (o *c_engine) reset_watermark(s Session_handle) bool {
	return bool(C.NormResetWatermark(s.c()))
}

func (o *c_engine) cancel_watermark(s Session_handle) {
	C.NormCancelWatermark(s.c())
}

func (o *c_engine) send_command(s Session_handle, cmd []byte, robust bool) bool {
	return bool(C.NormSendCommand(s.c(), b2c(cmd), C.uint(len(cmd)), C._Bool(robust)))
}

func (o *c_engine) cancel_command(s Session_handle) {
	C.NormCancelCommand(s.c())
}

func (o *c_engine) object_get_type(h Object_handle) Object_type {
	return Object_type(C.NormObjectGetType(h.c()))
}

func (o *c_engine) object_has_info(h Object_handle) bool {
	return bool(C.NormObjectHasInfo(h.c()))
}

func (o *c_engine) object_get_info_length(h Object_handle) int {
	return int(C.NormObjectGetInfoLength(h.c()))
}

func (o *c_engine) object_get_info(h Object_handle, buf []byte) int {
	if len(buf) == 0 {
		return 0
	}
	return int(C.NormObjectGetInfo(h.c(), b2c(buf), C.UINT16(min(len(buf), 0xffff))))
}

func (o *c_engine) object_get_size(h Object_handle) int64 {
	return int64(C.NormObjectGetSize(h.c()))
}

func (o *c_engine) object_get_bytes_pending(h Object_handle) int64 {
	return int64(C.NormObjectGetBytesPending(h.c()))
}

func (o *c_engine) object_cancel(h Object_handle) {
	C.NormObjectCancel(h.c())
}

func (o *c_engine) object_retain(h Object_handle) {
	C.NormObjectRetain(h.c())
	o.data.retain(h)
}

// object_release frees an enqueued buffer once libnorm has purged the
// object and this was the last owned reference.
func (o *c_engine) object_release(h Object_handle) {
	C.NormObjectRelease(h.c())
	free_data(o.data.release(h))
}

func (o *c_engine) object_get_sender(h Object_handle) Node_handle {
	n := C.NormObjectGetSender(h.c())
	if n == C.NORM_NODE_INVALID {
		return Node_invalid
	}
	return Node_handle(uintptr(unsafe.Pointer(n)))
}

func (o *c_engine) object_set_nacking_mode(h Object_handle, mode Nacking_mode) {
	C.NormObjectSetNackingMode(h.c(), C.NormNackingMode(mode))
}

// data_access_data copies the object's buffer so the result survives
// NormObjectRelease().
func (o *c_engine) data_access_data(h Object_handle) []byte {
	p := C.NormDataAccessData(h.c())
	if p == nil {
		return nil
	}
	n := int64(C.NormObjectGetSize(h.c()))
	if n <= 0 {
		return []byte{}
	}
	r := make([]byte, n)
	copy(r, unsafe.Slice((*byte)(unsafe.Pointer(p)), n))
	return r
}

func (o *c_engine) file_get_name(h Object_handle) (string, bool) {
	buf := make([]byte, max_file_name)
	if !C.NormFileGetName(h.c(), b2c(buf), C.uint(len(buf))) {
		return "", false
	}
	if i := bytes.IndexByte(buf, 0); 0 <= i {
		buf = buf[:i]
	}
	return string(buf), true
}

func (o *c_engine) file_rename(h Object_handle, file_name string) bool {
	fn := C.CString(file_name)
	defer C.free(unsafe.Pointer(fn))
	return bool(C.NormFileRename(h.c(), fn))
}

func (o *c_engine) stream_write(h Object_handle, data []byte) int {
	return int(C.NormStreamWrite(h.c(), b2c(data), C.uint(len(data))))
}

func (o *c_engine) stream_flush(h Object_handle, eom bool, mode Flush_mode) {
	C.NormStreamFlush(h.c(), C._Bool(eom), C.NormFlushMode(mode))
}

func (o *c_engine) stream_set_auto_flush(h Object_handle, mode Flush_mode) {
	C.NormStreamSetAutoFlush(h.c(), C.NormFlushMode(mode))
}

func (o *c_engine) stream_set_push_enable(h Object_handle, enable bool) {
	C.NormStreamSetPushEnable(h.c(), C._Bool(enable))
}

func (o *c_engine) stream_mark_eom(h Object_handle) {
	C.NormStreamMarkEom(h.c())
}

func (o *c_engine) stream_close(h Object_handle, graceful bool) {
	C.NormStreamClose(h.c(), C._Bool(graceful))
}

func (o *c_engine) stream_read(h Object_handle, buf []byte) (int, bool) {
	if len(buf) == 0 {
		return 0, true
	}
	num_bytes := C.uint(len(buf))
	ok := bool(C.NormStreamRead(h.c(), b2c(buf), &num_bytes))
	return int(num_bytes), ok
}

func (o *c_engine) stream_has_vacancy(h Object_handle) bool {
	return bool(C.NormStreamHasVacancy(h.c()))
}

func (o *c_engine) stream_seek_msg_start(h Object_handle) bool {
	return bool(C.NormStreamSeekMsgStart(h.c()))
}

func (o *c_engine) stream_get_read_offset(h Object_handle) uint64 {
	return uint64(C.NormStreamGetReadOffset(h.c()))
}

func (o *c_engine) node_get_id(n Node_handle) Node_id {
	return Node_id(C.NormNodeGetId(n.c()))
}

func (o *c_engine) node_get_address(n Node_handle) (netip.AddrPort, bool) {
	addr_len := C.uint(16)
	addr := make([]byte, int(addr_len))
	port := C.UINT16(0)
	if !C.NormNodeGetAddress(n.c(), b2c(addr), &addr_len, &port) {
		return netip.AddrPort{}, false
	}
	a, ok := netip.AddrFromSlice(addr[:addr_len])
	if !ok {
		return netip.AddrPort{}, false
	}
	return netip.AddrPortFrom(a.Unmap(), uint16(port)), true
}

func (o *c_engine) node_get_command(n Node_handle) ([]byte, bool) {
	var buflen C.uint
	C.NormNodeGetCommand(n.c(), nil, &buflen)
	if buflen == 0 {
		return nil, false
	}
	buf := make([]byte, buflen)
	if !C.NormNodeGetCommand(n.c(), b2c(buf), &buflen) {
		return nil, false
	}
	return buf[:buflen], true
}

func (o *c_engine) node_get_grtt(n Node_handle) float64 {
	return float64(C.NormNodeGetGrtt(n.c()))
}

func (o *c_engine) node_set_unicast_nack(n Node_handle, enable bool) {
	C.NormNodeSetUnicastNack(n.c(), C._Bool(enable))
}

func (o *c_engine) node_set_nacking_mode(n Node_handle, mode Nacking_mode) {
	C.NormNodeSetNackingMode(n.c(), C.NormNackingMode(mode))
}

func (o *c_engine) node_set_repair_boundary(n Node_handle, boundary Repair_boundary) {
	C.NormNodeSetRepairBoundary(n.c(), C.NormRepairBoundary(boundary))
}

func (o *c_engine) node_free_buffers(n Node_handle) {
	C.NormNodeFreeBuffers(n.c())
}

func (o *c_engine) node_delete(n Node_handle) {
	C.NormNodeDelete(n.c())
}

func (o *c_engine) node_retain(n Node_handle) {
	C.NormNodeRetain(n.c())
}

func (o *c_engine) node_release(n Node_handle) {
	C.NormNodeRelease(n.c())
}
