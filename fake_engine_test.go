// Copyright 2016 aletheia7. All rights reserved. Use of this source code is
// governed by a BSD-2-Clause license that can be found in the LICENSE file.

package norm

import (
	"net/netip"
	"sync"
	"testing"
	"unsafe"
)

type call struct {
	name string
	args []any
}

// fake_engine records every call in order. Boolean and handle returning
// calls fail when their name is in fail.
type fake_engine struct {
	lock           sync.Mutex
	cond           *sync.Cond
	calls          []call
	fail           map[string]bool
	next           uintptr
	retains        map[uintptr]int
	releases       map[uintptr]int
	sender_started map[Session_handle]bool
	events         []native_event
	destroyed      bool
	object_types   map[Object_handle]Object_type
	info           map[Object_handle][]byte
	data           map[Object_handle][]byte
	stream         map[Object_handle][]byte
	file_names     map[Object_handle]string
	node_ids       map[Node_handle]Node_id
	node_addr      map[Node_handle]netip.AddrPort
	node_cmd       map[Node_handle][]byte
	senders        map[Object_handle]Node_handle
	descriptor     int
	debug_level    uint
	tx_rate        float64
}

func new_fake_engine() *fake_engine {
	f := &fake_engine{
		fail:           map[string]bool{},
		next:           0x1000,
		retains:        map[uintptr]int{},
		releases:       map[uintptr]int{},
		sender_started: map[Session_handle]bool{},
		object_types:   map[Object_handle]Object_type{},
		info:           map[Object_handle][]byte{},
		data:           map[Object_handle][]byte{},
		stream:         map[Object_handle][]byte{},
		file_names:     map[Object_handle]string{},
		node_ids:       map[Node_handle]Node_id{},
		node_addr:      map[Node_handle]netip.AddrPort{},
		node_cmd:       map[Node_handle][]byte{},
		senders:        map[Object_handle]Node_handle{},
		descriptor:     -1,
	}
	f.cond = sync.NewCond(&f.lock)
	return f
}

func (f *fake_engine) record(name string, args ...any) {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.calls = append(f.calls, call{name: name, args: args})
}

// ok records the call and reports whether it should succeed.
func (f *fake_engine) ok(name string, args ...any) bool {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.calls = append(f.calls, call{name: name, args: args})
	return !f.fail[name]
}

func (f *fake_engine) handle() uintptr {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.next += 0x10
	return f.next
}

func (f *fake_engine) names() []string {
	f.lock.Lock()
	defer f.lock.Unlock()
	r := make([]string, len(f.calls))
	for i, c := range f.calls {
		r[i] = c.name
	}
	return r
}

func (f *fake_engine) count(name string) int {
	f.lock.Lock()
	defer f.lock.Unlock()
	n := 0
	for _, c := range f.calls {
		if c.name == name {
			n++
		}
	}
	return n
}

func (f *fake_engine) last(name string) (call, bool) {
	f.lock.Lock()
	defer f.lock.Unlock()
	for i := len(f.calls) - 1; 0 <= i; i-- {
		if f.calls[i].name == name {
			return f.calls[i], true
		}
	}
	return call{}, false
}

func (f *fake_engine) reset_calls() {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.calls = nil
}

func (f *fake_engine) set_fail(name string) {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.fail[name] = true
}

func (f *fake_engine) push(ev ...native_event) {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.events = append(f.events, ev...)
	f.cond.Broadcast()
}

func (f *fake_engine) retain_count(h uintptr) int {
	f.lock.Lock()
	defer f.lock.Unlock()
	return f.retains[h]
}

func (f *fake_engine) release_count(h uintptr) int {
	f.lock.Lock()
	defer f.lock.Unlock()
	return f.releases[h]
}

// new_object registers an object the way libnorm would hand one to the
// receiver.
func (f *fake_engine) new_object(t Object_type) Object_handle {
	h := Object_handle(f.handle())
	f.lock.Lock()
	defer f.lock.Unlock()
	f.object_types[h] = t
	return h
}

func (f *fake_engine) new_node(id Node_id) Node_handle {
	h := Node_handle(f.handle())
	f.lock.Lock()
	defer f.lock.Unlock()
	f.node_ids[h] = id
	return h
}

func (f *fake_engine) create_instance(priority_boost bool) instance_handle {
	if !f.ok("create_instance", priority_boost) {
		return instance_invalid
	}
	return instance_handle(f.handle())
}

func (f *fake_engine) destroy_instance(h instance_handle) {
	f.record("destroy_instance", h)
	f.lock.Lock()
	defer f.lock.Unlock()
	f.destroyed = true
	f.cond.Broadcast()
}

func (f *fake_engine) stop_instance(h instance_handle) {
	f.record("stop_instance", h)
}

func (f *fake_engine) restart_instance(h instance_handle) bool {
	return f.ok("restart_instance", h)
}

func (f *fake_engine) suspend_instance(h instance_handle) bool {
	return f.ok("suspend_instance", h)
}

func (f *fake_engine) resume_instance(h instance_handle) {
	f.record("resume_instance", h)
}

func (f *fake_engine) set_cache_directory(h instance_handle, cache_path string) bool {
	return f.ok("set_cache_directory", h, cache_path)
}

func (f *fake_engine) get_next_event(h instance_handle, wait bool) (native_event, bool) {
	f.record("get_next_event", h, wait)
	f.lock.Lock()
	defer f.lock.Unlock()
	for len(f.events) == 0 {
		if !wait || f.destroyed {
			return native_event{}, false
		}
		f.cond.Wait()
	}
	ev := f.events[0]
	f.events = f.events[1:]
	return ev, true
}

func (f *fake_engine) get_descriptor(h instance_handle) (int, bool) {
	f.record("get_descriptor", h)
	f.lock.Lock()
	defer f.lock.Unlock()
	return f.descriptor, 0 <= f.descriptor
}

func (f *fake_engine) open_debug_log(h instance_handle, path string) bool {
	return f.ok("open_debug_log", h, path)
}

func (f *fake_engine) close_debug_log(h instance_handle) {
	f.record("close_debug_log", h)
}

func (f *fake_engine) open_debug_pipe(h instance_handle, pipe_name string) bool {
	return f.ok("open_debug_pipe", h, pipe_name)
}

func (f *fake_engine) close_debug_pipe(h instance_handle) {
	f.record("close_debug_pipe", h)
}

func (f *fake_engine) set_debug_level(level uint) {
	f.record("set_debug_level", level)
	f.lock.Lock()
	defer f.lock.Unlock()
	f.debug_level = level
}

func (f *fake_engine) get_debug_level() uint {
	f.record("get_debug_level")
	f.lock.Lock()
	defer f.lock.Unlock()
	return f.debug_level
}

func (f *fake_engine) set_allocation_functions(h instance_handle, alloc_func, free_func unsafe.Pointer) {
	f.record("set_allocation_functions", h, alloc_func, free_func)
}

func (f *fake_engine) get_version() (major, minor, patch int) {
	return 1, 5, 9
}

func (f *fake_engine) is_unicast_address(address string) bool {
	return f.ok("is_unicast_address", address)
}

func (f *fake_engine) create_session(h instance_handle, address string, port uint16, node_id Node_id) Session_handle {
	if !f.ok("create_session", h, address, port, node_id) {
		return Session_invalid
	}
	return Session_handle(f.handle())
}

func (f *fake_engine) destroy_session(s Session_handle) {
	f.record("destroy_session", s)
}

func (f *fake_engine) get_local_node_id(s Session_handle) Node_id {
	f.record("get_local_node_id", s)
	return 7
}

func (f *fake_engine) start_sender(s Session_handle, id uint16, buffer_space uint32, segment_size, block_size, num_parity uint16, fec_id uint8) bool {
	if !f.ok("start_sender", s, id, buffer_space, segment_size, block_size, num_parity, fec_id) {
		return false
	}
	f.lock.Lock()
	defer f.lock.Unlock()
	f.sender_started[s] = true
	return true
}

func (f *fake_engine) stop_sender(s Session_handle) {
	f.record("stop_sender", s)
	f.lock.Lock()
	defer f.lock.Unlock()
	delete(f.sender_started, s)
}

func (f *fake_engine) start_receiver(s Session_handle, buffer_space uint32) bool {
	return f.ok("start_receiver", s, buffer_space)
}

func (f *fake_engine) stop_receiver(s Session_handle) {
	f.record("stop_receiver", s)
}

func (f *fake_engine) set_tx_rate(s Session_handle, bits_per_second float64) {
	f.record("set_tx_rate", s, bits_per_second)
	f.lock.Lock()
	defer f.lock.Unlock()
	f.tx_rate = bits_per_second
}

func (f *fake_engine) get_tx_rate(s Session_handle) float64 {
	f.record("get_tx_rate", s)
	f.lock.Lock()
	defer f.lock.Unlock()
	return f.tx_rate
}

func (f *fake_engine) set_tx_rate_bounds(s Session_handle, rate_min, rate_max float64) {
	f.record("set_tx_rate_bounds", s, rate_min, rate_max)
}

func (f *fake_engine) set_flow_control(s Session_handle, factor float64) {
	f.record("set_flow_control", s, factor)
}

func (f *fake_engine) set_congestion_control(s Session_handle, enable, adjust_rate bool) {
	f.record("set_congestion_control", s, enable, adjust_rate)
}

func (f *fake_engine) set_grtt_estimate(s Session_handle, grtt float64) {
	f.record("set_grtt_estimate", s, grtt)
}

func (f *fake_engine) get_grtt_estimate(s Session_handle) float64 {
	f.record("get_grtt_estimate", s)
	return 0.5
}

func (f *fake_engine) set_grtt_max(s Session_handle, grtt_max float64) {
	f.record("set_grtt_max", s, grtt_max)
}

func (f *fake_engine) set_grtt_probing_mode(s Session_handle, mode Probe_mode) {
	f.record("set_grtt_probing_mode", s, mode)
}

func (f *fake_engine) set_backoff_factor(s Session_handle, factor float64) {
	f.record("set_backoff_factor", s, factor)
}

func (f *fake_engine) set_group_size(s Session_handle, size uint32) {
	f.record("set_group_size", s, size)
}

func (f *fake_engine) set_auto_parity(s Session_handle, auto_parity uint8) {
	f.record("set_auto_parity", s, auto_parity)
}

func (f *fake_engine) set_tx_only(s Session_handle, tx_only, connect_to_session_address bool) {
	f.record("set_tx_only", s, tx_only, connect_to_session_address)
}

func (f *fake_engine) set_tx_port(s Session_handle, port uint16, reuse bool, bind_address string) bool {
	return f.ok("set_tx_port", s, port, reuse, bind_address)
}

func (f *fake_engine) set_rx_port_reuse(s Session_handle, enable bool, bind_address, sender_address string, sender_port uint16) {
	f.record("set_rx_port_reuse", s, enable, bind_address, sender_address, sender_port)
}

func (f *fake_engine) set_tx_cache_bounds(s Session_handle, size_max uint64, count_min, count_max uint32) {
	f.record("set_tx_cache_bounds", s, size_max, count_min, count_max)
}

func (f *fake_engine) add_acking_node(s Session_handle, id Node_id) bool {
	return f.ok("add_acking_node", s, id)
}

func (f *fake_engine) remove_acking_node(s Session_handle, id Node_id) {
	f.record("remove_acking_node", s, id)
}

func (f *fake_engine) get_acking_status(s Session_handle, id Node_id) Acking_status {
	f.record("get_acking_status", s, id)
	return Ack_success
}

func (f *fake_engine) set_multicast_interface(s Session_handle, interface_name string) bool {
	return f.ok("set_multicast_interface", s, interface_name)
}

func (f *fake_engine) set_ssm(s Session_handle, source_address string) bool {
	return f.ok("set_ssm", s, source_address)
}

func (f *fake_engine) set_ttl(s Session_handle, ttl uint8) bool {
	return f.ok("set_ttl", s, ttl)
}

func (f *fake_engine) set_tos(s Session_handle, tos uint8) bool {
	return f.ok("set_tos", s, tos)
}

func (f *fake_engine) set_loopback(s Session_handle, enable bool) bool {
	return f.ok("set_loopback", s, enable)
}

func (f *fake_engine) set_multicast_loopback(s Session_handle, enable bool) bool {
	return f.ok("set_multicast_loopback", s, enable)
}

func (f *fake_engine) set_fragmentation(s Session_handle, enable bool) bool {
	return f.ok("set_fragmentation", s, enable)
}

func (f *fake_engine) set_tx_socket_buffer(s Session_handle, size uint32) bool {
	return f.ok("set_tx_socket_buffer", s, size)
}

func (f *fake_engine) set_rx_socket_buffer(s Session_handle, size uint32) bool {
	return f.ok("set_rx_socket_buffer", s, size)
}

func (f *fake_engine) set_message_trace(s Session_handle, enable bool) {
	f.record("set_message_trace", s, enable)
}

func (f *fake_engine) set_default_unicast_nack(s Session_handle, enable bool) {
	f.record("set_default_unicast_nack", s, enable)
}

func (f *fake_engine) set_rx_cache_limit(s Session_handle, count_max uint16) {
	f.record("set_rx_cache_limit", s, count_max)
}

func (f *fake_engine) set_silent_receiver(s Session_handle, silent bool, max_delay int) {
	f.record("set_silent_receiver", s, silent, max_delay)
}

func (f *fake_engine) set_default_sync_policy(s Session_handle, policy Sync_policy) {
	f.record("set_default_sync_policy", s, policy)
}

func (f *fake_engine) set_default_nacking_mode(s Session_handle, mode Nacking_mode) {
	f.record("set_default_nacking_mode", s, mode)
}

func (f *fake_engine) set_default_repair_boundary(s Session_handle, boundary Repair_boundary) {
	f.record("set_default_repair_boundary", s, boundary)
}

func (f *fake_engine) enqueue(name string, s Session_handle, t Object_type, info []byte, args ...any) Object_handle {
	if !f.ok(name, append([]any{s}, args...)...) {
		return Object_invalid
	}
	f.lock.Lock()
	started := f.sender_started[s]
	f.lock.Unlock()
	if !started {
		return Object_invalid
	}
	h := f.new_object(t)
	f.lock.Lock()
	defer f.lock.Unlock()
	if info != nil {
		f.info[h] = append([]byte{}, info...)
	}
	return h
}

func (f *fake_engine) file_enqueue(s Session_handle, path string, info []byte) Object_handle {
	h := f.enqueue("file_enqueue", s, Object_type_file, info, path, info)
	if h != Object_invalid {
		f.lock.Lock()
		f.file_names[h] = path
		f.lock.Unlock()
	}
	return h
}

func (f *fake_engine) data_enqueue(s Session_handle, data, info []byte) Object_handle {
	h := f.enqueue("data_enqueue", s, Object_type_data, info, data, info)
	if h != Object_invalid {
		f.lock.Lock()
		f.data[h] = append([]byte{}, data...)
		f.lock.Unlock()
	}
	return h
}

func (f *fake_engine) stream_open(s Session_handle, buffer_space uint32, info []byte) Object_handle {
	return f.enqueue("stream_open", s, Object_type_stream, info, buffer_space, info)
}

func (f *fake_engine) requeue_object(s Session_handle, obj Object_handle) bool {
	return f.ok("requeue_object", s, obj)
}

func (f *fake_engine) set_watermark(s Session_handle, obj Object_handle, override_flush bool) bool {
	return f.ok("set_watermark", s, obj, override_flush)
}

func (f *fake_engine) reset_watermark(s Session_handle) bool {
	return f.ok("reset_watermark", s)
}

func (f *fake_engine) cancel_watermark(s Session_handle) {
	f.record("cancel_watermark", s)
}

func (f *fake_engine) send_command(s Session_handle, cmd []byte, robust bool) bool {
	return f.ok("send_command", s, cmd, robust)
}

func (f *fake_engine) cancel_command(s Session_handle) {
	f.record("cancel_command", s)
}

func (f *fake_engine) object_get_type(o Object_handle) Object_type {
	f.record("object_get_type", o)
	f.lock.Lock()
	defer f.lock.Unlock()
	return f.object_types[o]
}

func (f *fake_engine) object_has_info(o Object_handle) bool {
	f.record("object_has_info", o)
	f.lock.Lock()
	defer f.lock.Unlock()
	_, ok := f.info[o]
	return ok
}

func (f *fake_engine) object_get_info_length(o Object_handle) int {
	f.record("object_get_info_length", o)
	f.lock.Lock()
	defer f.lock.Unlock()
	return len(f.info[o])
}

func (f *fake_engine) object_get_info(o Object_handle, buf []byte) int {
	if !f.ok("object_get_info", o) {
		return 0
	}
	f.lock.Lock()
	defer f.lock.Unlock()
	return copy(buf, f.info[o])
}

func (f *fake_engine) object_get_size(o Object_handle) int64 {
	f.record("object_get_size", o)
	f.lock.Lock()
	defer f.lock.Unlock()
	return int64(len(f.data[o]))
}

func (f *fake_engine) object_get_bytes_pending(o Object_handle) int64 {
	f.record("object_get_bytes_pending", o)
	return 0
}

func (f *fake_engine) object_cancel(o Object_handle) {
	f.record("object_cancel", o)
}

func (f *fake_engine) object_retain(o Object_handle) {
	f.record("object_retain", o)
	f.lock.Lock()
	defer f.lock.Unlock()
	f.retains[uintptr(o)]++
}

func (f *fake_engine) object_release(o Object_handle) {
	f.record("object_release", o)
	f.lock.Lock()
	defer f.lock.Unlock()
	f.releases[uintptr(o)]++
}

func (f *fake_engine) object_get_sender(o Object_handle) Node_handle {
	f.record("object_get_sender", o)
	f.lock.Lock()
	defer f.lock.Unlock()
	return f.senders[o]
}

func (f *fake_engine) object_set_nacking_mode(o Object_handle, mode Nacking_mode) {
	f.record("object_set_nacking_mode", o, mode)
}

func (f *fake_engine) data_access_data(o Object_handle) []byte {
	f.record("data_access_data", o)
	f.lock.Lock()
	defer f.lock.Unlock()
	if d, ok := f.data[o]; ok {
		return append([]byte{}, d...)
	}
	return nil
}

func (f *fake_engine) file_get_name(o Object_handle) (string, bool) {
	if !f.ok("file_get_name", o) {
		return "", false
	}
	f.lock.Lock()
	defer f.lock.Unlock()
	return f.file_names[o], true
}

func (f *fake_engine) file_rename(o Object_handle, file_name string) bool {
	if !f.ok("file_rename", o, file_name) {
		return false
	}
	f.lock.Lock()
	defer f.lock.Unlock()
	f.file_names[o] = file_name
	return true
}

// stream_write accepts at most 8 bytes per call.
func (f *fake_engine) stream_write(o Object_handle, data []byte) int {
	f.record("stream_write", o, data)
	n := min(len(data), 8)
	f.lock.Lock()
	defer f.lock.Unlock()
	f.stream[o] = append(f.stream[o], data[:n]...)
	return n
}

func (f *fake_engine) stream_flush(o Object_handle, eom bool, mode Flush_mode) {
	f.record("stream_flush", o, eom, mode)
}

func (f *fake_engine) stream_set_auto_flush(o Object_handle, mode Flush_mode) {
	f.record("stream_set_auto_flush", o, mode)
}

func (f *fake_engine) stream_set_push_enable(o Object_handle, enable bool) {
	f.record("stream_set_push_enable", o, enable)
}

func (f *fake_engine) stream_mark_eom(o Object_handle) {
	f.record("stream_mark_eom", o)
}

func (f *fake_engine) stream_close(o Object_handle, graceful bool) {
	f.record("stream_close", o, graceful)
}

func (f *fake_engine) stream_read(o Object_handle, buf []byte) (int, bool) {
	if !f.ok("stream_read", o) {
		return 0, false
	}
	f.lock.Lock()
	defer f.lock.Unlock()
	n := copy(buf, f.stream[o])
	f.stream[o] = f.stream[o][n:]
	return n, true
}

func (f *fake_engine) stream_has_vacancy(o Object_handle) bool {
	return f.ok("stream_has_vacancy", o)
}

func (f *fake_engine) stream_seek_msg_start(o Object_handle) bool {
	return f.ok("stream_seek_msg_start", o)
}

func (f *fake_engine) stream_get_read_offset(o Object_handle) uint64 {
	f.record("stream_get_read_offset", o)
	return 42
}

func (f *fake_engine) node_get_id(n Node_handle) Node_id {
	f.record("node_get_id", n)
	f.lock.Lock()
	defer f.lock.Unlock()
	return f.node_ids[n]
}

func (f *fake_engine) node_get_address(n Node_handle) (netip.AddrPort, bool) {
	f.record("node_get_address", n)
	f.lock.Lock()
	defer f.lock.Unlock()
	ap, ok := f.node_addr[n]
	return ap, ok
}

func (f *fake_engine) node_get_command(n Node_handle) ([]byte, bool) {
	f.record("node_get_command", n)
	f.lock.Lock()
	defer f.lock.Unlock()
	cmd, ok := f.node_cmd[n]
	return cmd, ok
}

func (f *fake_engine) node_get_grtt(n Node_handle) float64 {
	f.record("node_get_grtt", n)
	return 0.25
}

func (f *fake_engine) node_set_unicast_nack(n Node_handle, enable bool) {
	f.record("node_set_unicast_nack", n, enable)
}

func (f *fake_engine) node_set_nacking_mode(n Node_handle, mode Nacking_mode) {
	f.record("node_set_nacking_mode", n, mode)
}

func (f *fake_engine) node_set_repair_boundary(n Node_handle, boundary Repair_boundary) {
	f.record("node_set_repair_boundary", n, boundary)
}

func (f *fake_engine) node_free_buffers(n Node_handle) {
	f.record("node_free_buffers", n)
}

func (f *fake_engine) node_delete(n Node_handle) {
	f.record("node_delete", n)
}

func (f *fake_engine) node_retain(n Node_handle) {
	f.record("node_retain", n)
	f.lock.Lock()
	defer f.lock.Unlock()
	f.retains[uintptr(n)]++
}

func (f *fake_engine) node_release(n Node_handle) {
	f.record("node_release", n)
	f.lock.Lock()
	defer f.lock.Unlock()
	f.releases[uintptr(n)]++
}

// test_instance returns an Instance backed by a fresh fake_engine.
func test_instance(t testing.TB) (*Instance, *fake_engine) {
	t.Helper()
	f := new_fake_engine()
	i, err := new_instance(f, false)
	if err != nil {
		t.Fatalf("new_instance: %v", err)
	}
	t.Cleanup(i.Destroy)
	return i, f
}

func test_session(t testing.TB) (*Session, *fake_engine) {
	t.Helper()
	i, f := test_instance(t)
	s, err := i.Create_session("224.1.2.3", 6003, Node_any)
	if err != nil {
		t.Fatalf("Create_session: %v", err)
	}
	return s, f
}
