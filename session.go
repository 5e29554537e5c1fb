// Copyright 2016 aletheia7. All rights reserved. Use of this source code is
// governed by a BSD-2-Clause license that can be found in the LICENSE file.

package norm

import (
	"fmt"
	"net/netip"
	"sync"
	"sync/atomic"
)

// Session is one NORM session bound to an address and port. It can be a
// sender, a receiver, or both.
//
// A Session is only valid while the Instance that created it is alive.
// After Instance.Destroy() or Session.Destroy(), calls that can fail return
// E_invalid_handle and the rest do nothing.
type Session struct {
	i              *Instance
	handle         Session_handle
	address        string
	port           uint16
	destroyed      atomic.Bool
	user_data_lock sync.Mutex
	user_data      any
}

type refdb struct {
	lock sync.Mutex
	m    map[Session_handle]*Session
}

func (o *refdb) add(sess *Session) {
	o.lock.Lock()
	defer o.lock.Unlock()
	if o.m == nil {
		o.m = map[Session_handle]*Session{}
	}
	o.m[sess.handle] = sess
}

func (o *refdb) remove(sess *Session) {
	o.lock.Lock()
	defer o.lock.Unlock()
	if cur, ok := o.m[sess.handle]; ok && cur == sess {
		delete(o.m, sess.handle)
	}
}

func (o *refdb) get(h Session_handle) *Session {
	o.lock.Lock()
	defer o.lock.Unlock()
	return o.m[h]
}

func (o *refdb) len() int {
	o.lock.Lock()
	defer o.lock.Unlock()
	return len(o.m)
}

// take empties the registry and returns what it held.
func (o *refdb) take() []*Session {
	o.lock.Lock()
	defer o.lock.Unlock()
	r := make([]*Session, 0, len(o.m))
	for _, s := range o.m {
		r = append(r, s)
	}
	o.m = nil
	return r
}

// node_id: Node_any lets libnorm pick one.
//
// https://htmlpreview.github.io/?https://github.com/aletheia7/norm/blob/master/norm/doc/NormDeveloperGuide.html#NormCreateSession
//
// https://raw.githubusercontent.com/aletheia7/norm/master/norm/NormSocketBindingNotes.txt
//
func (o *Instance) Create_session(address string, port uint16, node_id Node_id) (*Session, error) {
	if !o.alive() {
		return nil, invalid_handle("create session")
	}
	if err := check_string("create session", address); err != nil {
		return nil, err
	}
	h := o.api.create_session(o.handle, address, port, node_id)
	if h == Session_invalid {
		o.log_failure("create session", "address", address, "port", port)
		return nil, invalid_handle("create session")
	}
	r := &Session{i: o, handle: h, address: address, port: port}
	o.sess_db.add(r)
	if o.debug.Load() {
		get_logger().Debug("session created", "session", uintptr(h), "address", address, "port", port, "node_id", node_id)
	}
	return r, nil
}

func (o *Session) Handle() Session_handle {
	return o.handle
}

func (o *Session) Get_address() string {
	return o.address
}

func (o *Session) Get_port() uint16 {
	return o.port
}

func (o *Session) Get_instance() *Instance {
	return o.i
}

// Valid reports whether neither the Session nor its Instance has been
// destroyed.
//
func (o *Session) Valid() bool {
	return !o.destroyed.Load() && o.i.alive()
}

func (o *Session) check(op string) error {
	if !o.Valid() {
		return invalid_handle(op)
	}
	return nil
}

func (o *Session) result(ok bool, op, detail string) error {
	if err := bool_result(ok, op, detail); err != nil {
		o.i.log_failure(op, "session", uintptr(o.handle))
		return err
	}
	return nil
}

// Destroy is idempotent. Objects enqueued on the session, or retained from
// its events, become invalid and their Close() makes no libnorm call.
//
// https://htmlpreview.github.io/?https://github.com/aletheia7/norm/blob/master/norm/doc/NormDeveloperGuide.html#NormDestroySession
//
func (o *Session) Destroy() {
	if o.destroyed.Swap(true) {
		return
	}
	o.i.sess_db.remove(o)
	if !o.i.alive() {
		return
	}
	o.i.api.destroy_session(o.handle)
	if o.i.debug.Load() {
		get_logger().Debug("session destroyed", "session", uintptr(o.handle))
	}
}

// Close is Destroy.
//
func (o *Session) Close() error {
	o.Destroy()
	return nil
}

func (o *Session) Get_user_data() any {
	o.user_data_lock.Lock()
	defer o.user_data_lock.Unlock()
	return o.user_data
}

// Set_user_data stores data with the Session.
// Set_user_data does not store user_data in Norm.
//
func (o *Session) Set_user_data(user_data any) {
	o.user_data_lock.Lock()
	defer o.user_data_lock.Unlock()
	o.user_data = user_data
}

// https://htmlpreview.github.io/?https://github.com/aletheia7/norm/blob/master/norm/doc/NormDeveloperGuide.html#NormGetLocalNodeId
//
func (o *Session) Get_local_node_id() Node_id {
	if !o.Valid() {
		return Node_none
	}
	return o.i.api.get_local_node_id(o.handle)
}

// Is_unicast_address reports whether libnorm treats address as unicast. It
// needs no Session.
//
func Is_unicast_address(address string) bool {
	if check_string("is unicast address", address) != nil {
		return false
	}
	return native.is_unicast_address(address)
}

// Sender func
//
// Fails with E_operation_failed when libnorm rejects the configuration,
// e.g. buffer_space too small for segment_size * block_size.
// fec_id: 0 selects libnorm's default.
//
// https://htmlpreview.github.io/?https://github.com/aletheia7/norm/blob/master/norm/doc/NormDeveloperGuide.html#NormStartSender
//
func (o *Session) Start_sender(id uint16, buffer_space uint32, segment_size, block_size, num_parity uint16, fec_id uint8) error {
	if err := o.check("start sender"); err != nil {
		return err
	}
	return o.result(o.i.api.start_sender(o.handle, id, buffer_space, segment_size, block_size, num_parity, fec_id), "start sender", "failed to start NORM sender")
}

// https://htmlpreview.github.io/?https://github.com/aletheia7/norm/blob/master/norm/doc/NormDeveloperGuide.html#NormStopSender
//
func (o *Session) Stop_sender() {
	if o.Valid() {
		o.i.api.stop_sender(o.handle)
	}
}

// Receiver func
//
// https://htmlpreview.github.io/?https://github.com/aletheia7/norm/blob/master/norm/doc/NormDeveloperGuide.html#NormStartReceiver
//
func (o *Session) Start_receiver(buffer_space uint32) error {
	if err := o.check("start receiver"); err != nil {
		return err
	}
	return o.result(o.i.api.start_receiver(o.handle, buffer_space), "start receiver", "failed to start NORM receiver")
}

// https://htmlpreview.github.io/?https://github.com/aletheia7/norm/blob/master/norm/doc/NormDeveloperGuide.html#NormStopReceiver
//
func (o *Session) Stop_receiver() {
	if o.Valid() {
		o.i.api.stop_receiver(o.handle)
	}
}

// Sender func
//
// https://htmlpreview.github.io/?https://github.com/aletheia7/norm/blob/master/norm/doc/NormDeveloperGuide.html#NormSetTxRate
//
func (o *Session) Set_tx_rate(bits_per_second float64) {
	if o.Valid() {
		o.i.api.set_tx_rate(o.handle, bits_per_second)
	}
}

// Sender func
//
// https://htmlpreview.github.io/?https://github.com/aletheia7/norm/blob/master/norm/doc/NormDeveloperGuide.html#NormGetTxRate
//
func (o *Session) Get_tx_rate() float64 {
	if !o.Valid() {
		return 0
	}
	return o.i.api.get_tx_rate(o.handle)
}

// Sender func
//
// A negative bound disables it.
//
// https://htmlpreview.github.io/?https://github.com/aletheia7/norm/blob/master/norm/doc/NormDeveloperGuide.html#NormSetTxRateBounds
//
func (o *Session) Set_tx_rate_bounds(rate_min, rate_max float64) {
	if o.Valid() {
		o.i.api.set_tx_rate_bounds(o.handle, rate_min, rate_max)
	}
}

// https://htmlpreview.github.io/?https://github.com/aletheia7/norm/blob/master/norm/doc/NormDeveloperGuide.html#NormSetFlowControl
//
func (o *Session) Set_flow_control(factor float64) {
	if o.Valid() {
		o.i.api.set_flow_control(o.handle, factor)
	}
}

// Sender func
//
// enable: recommended is true.
// adjust_rate: recommended is true, false is experimental.
//
// https://htmlpreview.github.io/?https://github.com/aletheia7/norm/blob/master/norm/doc/NormDeveloperGuide.html#NormSetCongestionControl
//
func (o *Session) Set_congestion_control(enable, adjust_rate bool) {
	if o.Valid() {
		o.i.api.set_congestion_control(o.handle, enable, adjust_rate)
	}
}

// Sender func
//
// https://htmlpreview.github.io/?https://github.com/aletheia7/norm/blob/master/norm/doc/NormDeveloperGuide.html#NormSetGrttEstimate
//
func (o *Session) Set_grtt_estimate(grtt float64) {
	if o.Valid() {
		o.i.api.set_grtt_estimate(o.handle, grtt)
	}
}

// https://htmlpreview.github.io/?https://github.com/aletheia7/norm/blob/master/norm/doc/NormDeveloperGuide.html#NormGetGrttEstimate
//
func (o *Session) Get_grtt_estimate() float64 {
	if !o.Valid() {
		return 0
	}
	return o.i.api.get_grtt_estimate(o.handle)
}

// Sender func
//
// https://htmlpreview.github.io/?https://github.com/aletheia7/norm/blob/master/norm/doc/NormDeveloperGuide.html#NormSetGrttMax
//
func (o *Session) Set_grtt_max(grtt_max float64) {
	if o.Valid() {
		o.i.api.set_grtt_max(o.handle, grtt_max)
	}
}

// Sender func
//
// https://htmlpreview.github.io/?https://github.com/aletheia7/norm/blob/master/norm/doc/NormDeveloperGuide.html#NormSetGrttProbingMode
//
func (o *Session) Set_grtt_probing_mode(mode Probe_mode) {
	if o.Valid() {
		o.i.api.set_grtt_probing_mode(o.handle, mode)
	}
}

// Sender func
//
// https://htmlpreview.github.io/?https://github.com/aletheia7/norm/blob/master/norm/doc/NormDeveloperGuide.html#NormSetBackoffFactor
//
func (o *Session) Set_backoff_factor(factor float64) {
	if o.Valid() {
		o.i.api.set_backoff_factor(o.handle, factor)
	}
}

// Sender func
//
// https://htmlpreview.github.io/?https://github.com/aletheia7/norm/blob/master/norm/doc/NormDeveloperGuide.html#NormSetGroupSize
//
func (o *Session) Set_group_size(size uint32) {
	if o.Valid() {
		o.i.api.set_group_size(o.handle, size)
	}
}

// https://htmlpreview.github.io/?https://github.com/aletheia7/norm/blob/master/norm/doc/NormDeveloperGuide.html#NormSetAutoParity
//
func (o *Session) Set_auto_parity(auto_parity uint8) {
	if o.Valid() {
		o.i.api.set_auto_parity(o.handle, auto_parity)
	}
}

// https://htmlpreview.github.io/?https://github.com/aletheia7/norm/blob/master/norm/doc/NormDeveloperGuide.html#NormSetTxOnly
//
func (o *Session) Set_tx_only(tx_only, connect_to_session_address bool) {
	if o.Valid() {
		o.i.api.set_tx_only(o.handle, tx_only, connect_to_session_address)
	}
}

// default: session port in Instance.Create_session().
//
// tx_bind_address can be empty.
//
// https://htmlpreview.github.io/?https://github.com/aletheia7/norm/blob/master/norm/doc/NormDeveloperGuide.html#NormSetTxPort
//
func (o *Session) Set_tx_port(tx_port uint16, tx_port_reuse bool, tx_bind_address string) error {
	if err := o.check("set tx port"); err != nil {
		return err
	}
	if err := check_string("set tx port", tx_bind_address); err != nil {
		return err
	}
	return o.result(o.i.api.set_tx_port(o.handle, tx_port, tx_port_reuse, tx_bind_address), "set tx port", "failed to set tx port")
}

// rx_bind_address and rx_sender_address can be empty.
//
// https://htmlpreview.github.io/?https://github.com/aletheia7/norm/blob/master/norm/doc/NormDeveloperGuide.html#NormSetRxPortReuse
//
func (o *Session) Set_rx_port_reuse(rx_port_reuse bool, rx_bind_address, rx_sender_address string, rx_sender_port uint16) error {
	if err := o.check("set rx port reuse"); err != nil {
		return err
	}
	if err := check_string("set rx port reuse", rx_bind_address); err != nil {
		return err
	}
	if err := check_string("set rx port reuse", rx_sender_address); err != nil {
		return err
	}
	o.i.api.set_rx_port_reuse(o.handle, rx_port_reuse, rx_bind_address, rx_sender_address, rx_sender_port)
	return nil
}

// Sender func
//
// defaults: size_max = 20 Mbyte, count_min = 8, recommended min = 2,
// count_max = 256
//
// https://htmlpreview.github.io/?https://github.com/aletheia7/norm/blob/master/norm/doc/NormDeveloperGuide.html#NormSetTxCacheBounds
//
func (o *Session) Set_tx_cache_bounds(size_max uint64, count_min, count_max uint32) {
	if o.Valid() {
		o.i.api.set_tx_cache_bounds(o.handle, size_max, count_min, count_max)
	}
}

// Sender func
//
// https://htmlpreview.github.io/?https://github.com/aletheia7/norm/blob/master/norm/doc/NormDeveloperGuide.html#NormAddAckingNode
//
func (o *Session) Add_acking_node(node_id Node_id) error {
	if err := o.check("add acking node"); err != nil {
		return err
	}
	return o.result(o.i.api.add_acking_node(o.handle, node_id), "add acking node", fmt.Sprintf("failed to add acking %v", node_id))
}

// Sender func
//
// https://htmlpreview.github.io/?https://github.com/aletheia7/norm/blob/master/norm/doc/NormDeveloperGuide.html#NormRemoveAckingNode
//
func (o *Session) Remove_acking_node(node_id Node_id) {
	if o.Valid() {
		o.i.api.remove_acking_node(o.handle, node_id)
	}
}

// Sender func
//
// https://htmlpreview.github.io/?https://github.com/aletheia7/norm/blob/master/norm/doc/NormDeveloperGuide.html#NormGetAckingStatus
//
func (o *Session) Get_acking_status(node_id Node_id) Acking_status {
	if !o.Valid() {
		return Ack_invalid
	}
	return o.i.api.get_acking_status(o.handle, node_id)
}

// Fails when the interface does not exist.
//
// https://htmlpreview.github.io/?https://github.com/aletheia7/norm/blob/master/norm/doc/NormDeveloperGuide.html#NormSetMulticastInterface
//
func (o *Session) Set_multicast_interface(interface_name string) error {
	if err := o.check("set multicast interface"); err != nil {
		return err
	}
	if err := check_string("set multicast interface", interface_name); err != nil {
		return err
	}
	return o.result(o.i.api.set_multicast_interface(o.handle, interface_name), "set multicast interface", "failed to set multicast interface "+interface_name)
}

// Source-specific multicast.
//
// https://htmlpreview.github.io/?https://github.com/aletheia7/norm/blob/master/norm/doc/NormDeveloperGuide.html#NormSetSSM
//
func (o *Session) Set_ssm(source_address string) error {
	if err := o.check("set ssm"); err != nil {
		return err
	}
	if err := check_string("set ssm", source_address); err != nil {
		return err
	}
	return o.result(o.i.api.set_ssm(o.handle, source_address), "set ssm", "failed to set SSM source address "+source_address)
}

// https://htmlpreview.github.io/?https://github.com/aletheia7/norm/blob/master/norm/doc/NormDeveloperGuide.html#NormSetTTL
//
func (o *Session) Set_ttl(ttl uint8) error {
	if err := o.check("set ttl"); err != nil {
		return err
	}
	return o.result(o.i.api.set_ttl(o.handle, ttl), "set ttl", "failed to set TTL")
}

// https://htmlpreview.github.io/?https://github.com/aletheia7/norm/blob/master/norm/doc/NormDeveloperGuide.html#NormSetTOS
//
func (o *Session) Set_tos(tos uint8) error {
	if err := o.check("set tos"); err != nil {
		return err
	}
	return o.result(o.i.api.set_tos(o.handle, tos), "set tos", "failed to set TOS")
}

// https://htmlpreview.github.io/?https://github.com/aletheia7/norm/blob/master/norm/doc/NormDeveloperGuide.html#NormSetLoopback
//
func (o *Session) Set_loopback(enable bool) error {
	if err := o.check("set loopback"); err != nil {
		return err
	}
	return o.result(o.i.api.set_loopback(o.handle, enable), "set loopback", "failed to set loopback")
}

// https://htmlpreview.github.io/?https://github.com/aletheia7/norm/blob/master/norm/doc/NormDeveloperGuide.html#NormSetMulticastLoopback
//
func (o *Session) Set_multicast_loopback(enable bool) error {
	if err := o.check("set multicast loopback"); err != nil {
		return err
	}
	return o.result(o.i.api.set_multicast_loopback(o.handle, enable), "set multicast loopback", "failed to set multicast loopback")
}

// Sender func
//
// https://htmlpreview.github.io/?https://github.com/aletheia7/norm/blob/master/norm/doc/NormDeveloperGuide.html#NormSetFragmentation
//
func (o *Session) Set_fragmentation(enable bool) error {
	if err := o.check("set fragmentation"); err != nil {
		return err
	}
	return o.result(o.i.api.set_fragmentation(o.handle, enable), "set fragmentation", "failed to set fragmentation")
}

// https://htmlpreview.github.io/?https://github.com/aletheia7/norm/blob/master/norm/doc/NormDeveloperGuide.html#NormSetTxSocketBuffer
//
func (o *Session) Set_tx_socket_buffer(buffer_size uint32) error {
	if err := o.check("set tx socket buffer"); err != nil {
		return err
	}
	return o.result(o.i.api.set_tx_socket_buffer(o.handle, buffer_size), "set tx socket buffer", "failed to set TX socket buffer size")
}

// https://htmlpreview.github.io/?https://github.com/aletheia7/norm/blob/master/norm/doc/NormDeveloperGuide.html#NormSetRxSocketBuffer
//
func (o *Session) Set_rx_socket_buffer(buffer_size uint32) error {
	if err := o.check("set rx socket buffer"); err != nil {
		return err
	}
	return o.result(o.i.api.set_rx_socket_buffer(o.handle, buffer_size), "set rx socket buffer", "failed to set RX socket buffer size")
}

// https://htmlpreview.github.io/?https://github.com/aletheia7/norm/blob/master/norm/doc/NormDeveloperGuide.html#NormSetMessageTrace
//
func (o *Session) Set_message_trace(trace bool) {
	if o.Valid() {
		o.i.api.set_message_trace(o.handle, trace)
	}
}

// Receiver func
//
// default: false
//
// https://htmlpreview.github.io/?https://github.com/aletheia7/norm/blob/master/norm/doc/NormDeveloperGuide.html#NormSetDefaultUnicastNack
//
func (o *Session) Set_default_unicast_nack(enable bool) {
	if o.Valid() {
		o.i.api.set_default_unicast_nack(o.handle, enable)
	}
}

// Receiver func
//
// Call before Start_receiver()
//
// default: 256, max: Max_rx_cache_limit
//
// https://htmlpreview.github.io/?https://github.com/aletheia7/norm/blob/master/norm/doc/NormDeveloperGuide.html#NormSetRxCacheLimit
//
func (o *Session) Set_rx_cache_limit(rx_cache_limit uint16) {
	if o.Valid() {
		o.i.api.set_rx_cache_limit(o.handle, min(rx_cache_limit, Max_rx_cache_limit))
	}
}

// Receiver func
//
// https://htmlpreview.github.io/?https://github.com/aletheia7/norm/blob/master/norm/doc/NormDeveloperGuide.html#NormSetSilentReceiver
//
func (o *Session) Set_silent_receiver(silent bool, max_delay int) {
	if o.Valid() {
		o.i.api.set_silent_receiver(o.handle, silent, max_delay)
	}
}

// Receiver func
//
// https://htmlpreview.github.io/?https://github.com/aletheia7/norm/blob/master/norm/doc/NormDeveloperGuide.html#NormSetDefaultSyncPolicy
//
func (o *Session) Set_default_sync_policy(policy Sync_policy) {
	if o.Valid() {
		o.i.api.set_default_sync_policy(o.handle, policy)
	}
}

// Receiver func
//
// https://htmlpreview.github.io/?https://github.com/aletheia7/norm/blob/master/norm/doc/NormDeveloperGuide.html#NormSetDefaultNackingMode
//
func (o *Session) Set_default_nacking_mode(mode Nacking_mode) {
	if o.Valid() {
		o.i.api.set_default_nacking_mode(o.handle, mode)
	}
}

// Receiver func
//
// https://htmlpreview.github.io/?https://github.com/aletheia7/norm/blob/master/norm/doc/NormDeveloperGuide.html#NormSetDefaultRepairBoundary
//
func (o *Session) Set_default_repair_boundary(boundary Repair_boundary) {
	if o.Valid() {
		o.i.api.set_default_repair_boundary(o.handle, boundary)
	}
}

// owned wraps a freshly enqueued handle. The enqueue call itself gives the
// application no reference, so one is taken here for Close() to drop.
func (o *Session) owned(h Object_handle) *Object {
	o.i.api.object_retain(h)
	if o.i.debug.Load() {
		get_logger().Debug("object enqueued", "session", uintptr(o.handle), "object", uintptr(h))
	}
	r := o.i.Object_from_owned(h)
	r.sess = o
	return r
}

// Sender func
//
// Instance.Set_cache_directory() must be called in the receiver in order
// for file transfers to occur. info: nil sends no info, which differs from
// an empty info.
//
// https://htmlpreview.github.io/?https://github.com/aletheia7/norm/blob/master/norm/doc/NormDeveloperGuide.html#NormFileEnqueue
//
func (o *Session) File_enqueue(file_name string, info []byte) (*Object, error) {
	if err := o.check("file enqueue"); err != nil {
		return nil, err
	}
	if err := check_string("file enqueue", file_name); err != nil {
		return nil, err
	}
	h := o.i.api.file_enqueue(o.handle, file_name, info)
	if h == Object_invalid {
		o.i.log_failure("file enqueue", "session", uintptr(o.handle), "file", file_name)
		return nil, file_error("file enqueue", "failed to enqueue file "+file_name)
	}
	return o.owned(h), nil
}

// Sender func
//
// data and info are copied before they reach libnorm and may be reused
// once Data_enqueue returns.
//
// https://htmlpreview.github.io/?https://github.com/aletheia7/norm/blob/master/norm/doc/NormDeveloperGuide.html#NormDataEnqueue
//
func (o *Session) Data_enqueue(data, info []byte) (*Object, error) {
	if err := o.check("data enqueue"); err != nil {
		return nil, err
	}
	h := o.i.api.data_enqueue(o.handle, data, info)
	if h == Object_invalid {
		o.i.log_failure("data enqueue", "session", uintptr(o.handle), "size", len(data))
		return nil, operation_failed("data enqueue", "failed to enqueue data")
	}
	return o.owned(h), nil
}

// Sender func
//
// https://htmlpreview.github.io/?https://github.com/aletheia7/norm/blob/master/norm/doc/NormDeveloperGuide.html#NormStreamOpen
//
func (o *Session) Stream_open(buffer_space uint32, info []byte) (*Object, error) {
	if err := o.check("stream open"); err != nil {
		return nil, err
	}
	h := o.i.api.stream_open(o.handle, buffer_space, info)
	if h == Object_invalid {
		o.i.log_failure("stream open", "session", uintptr(o.handle), "buffer_space", buffer_space)
		return nil, operation_failed("stream open", "failed to open stream")
	}
	return o.owned(h), nil
}

// Sender func
//
// Really only useful for silent non-nacking receivers.
//
// https://htmlpreview.github.io/?https://github.com/aletheia7/norm/blob/master/norm/doc/NormDeveloperGuide.html#NormRequeueObject
//
func (o *Session) Requeue_object(obj *Object) error {
	if err := o.check("requeue object"); err != nil {
		return err
	}
	if obj == nil || !obj.Valid() {
		return invalid_parameter("requeue object", "object is not valid")
	}
	return o.result(o.i.api.requeue_object(o.handle, obj.handle), "requeue object", "failed to requeue object")
}

// Sender func
//
// Fails when libnorm has no suitable object to anchor the watermark.
//
// https://htmlpreview.github.io/?https://github.com/aletheia7/norm/blob/master/norm/doc/NormDeveloperGuide.html#NormSetWatermark
//
func (o *Session) Set_watermark(obj *Object, override_flush bool) error {
	if err := o.check("set watermark"); err != nil {
		return err
	}
	if obj == nil || !obj.Valid() {
		return invalid_parameter("set watermark", "object is not valid")
	}
	return o.result(o.i.api.set_watermark(o.handle, obj.handle, override_flush), "set watermark", "failed to set watermark")
}

// Sender func
//
// https://htmlpreview.github.io/?https://github.com/aletheia7/norm/blob/master/norm/doc/NormDeveloperGuide.html#NormResetWatermark
//
func (o *Session) Reset_watermark() error {
	if err := o.check("reset watermark"); err != nil {
		return err
	}
	return o.result(o.i.api.reset_watermark(o.handle), "reset watermark", "failed to reset watermark")
}

// Sender func
//
// https://htmlpreview.github.io/?https://github.com/aletheia7/norm/blob/master/norm/doc/NormDeveloperGuide.html#NormCancelWatermark
//
func (o *Session) Cancel_watermark() {
	if o.Valid() {
		o.i.api.cancel_watermark(o.handle)
	}
}

// Sender func
//
// https://htmlpreview.github.io/?https://github.com/aletheia7/norm/blob/master/norm/doc/NormDeveloperGuide.html#NormSendCommand
//
func (o *Session) Send_command(cmd []byte, robust bool) error {
	if err := o.check("send command"); err != nil {
		return err
	}
	return o.result(o.i.api.send_command(o.handle, cmd, robust), "send command", "failed to send command")
}

// Sender func
//
// https://htmlpreview.github.io/?https://github.com/aletheia7/norm/blob/master/norm/doc/NormDeveloperGuide.html#NormCancelCommand
//
func (o *Session) Cancel_command() {
	if o.Valid() {
		o.i.api.cancel_command(o.handle)
	}
}

func (o *Session) String() string {
	if ap, err := netip.ParseAddr(o.address); err == nil {
		return fmt.Sprintf("session %v", netip.AddrPortFrom(ap, o.port))
	}
	return fmt.Sprintf("session %v:%v", o.address, o.port)
}
