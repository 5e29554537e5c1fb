// Copyright 2016 aletheia7. All rights reserved. Use of this source code is
// governed by a BSD-2-Clause license that can be found in the LICENSE file.

package norm

import "fmt"

type Event_type uint8

// NormDeveloperGuide.html events:
//
// https://htmlpreview.github.io/?https://github.com/aletheia7/norm/blob/master/norm/doc/NormDeveloperGuide.html#d0e1384
//
// Values are the NormEventType discriminants.
const (
	Event_type_invalid Event_type = iota
	Event_type_tx_queue_vacancy
	Event_type_tx_queue_empty
	Event_type_tx_flush_completed
	Event_type_tx_watermark_completed
	Event_type_tx_cmd_sent
	Event_type_tx_object_sent
	Event_type_tx_object_purged
	Event_type_tx_rate_changed
	Event_type_local_sender_closed
	Event_type_remote_sender_new
	Event_type_remote_sender_reset   // remote sender instanceId or FEC params changed
	Event_type_remote_sender_address // remote sender src addr and/or port changed
	Event_type_remote_sender_active
	Event_type_remote_sender_inactive
	Event_type_remote_sender_purged
	Event_type_rx_cmd_new
	Event_type_rx_object_new
	Event_type_rx_object_info
	Event_type_rx_object_updated
	Event_type_rx_object_completed // not sent for Object_type_stream until Stream_close()
	Event_type_rx_object_aborted
	Event_type_rx_ack_request // application-defined ack request, see NormSetWatermarkEx
	Event_type_grtt_updated
	Event_type_cc_active
	Event_type_cc_inactive
	Event_type_acking_node_new // NormSetAutoAckingNodes
	Event_type_send_error      // ICMP error (e.g. destination unreachable)
	Event_type_user_timeout    // issues when timeout set by NormSetUserTimer() expires

	event_type_count
)

var et = [event_type_count]string{
	Event_type_invalid:                "event invalid",
	Event_type_tx_queue_vacancy:       "tx queue vacancy",
	Event_type_tx_queue_empty:         "tx queue empty",
	Event_type_tx_flush_completed:     "tx flush completed",
	Event_type_tx_watermark_completed: "tx watermark completed",
	Event_type_tx_cmd_sent:            "tx cmd sent",
	Event_type_tx_object_sent:         "tx object sent",
	Event_type_tx_object_purged:       "tx object purged",
	Event_type_tx_rate_changed:        "tx rate changed",
	Event_type_local_sender_closed:    "local sender closed",
	Event_type_remote_sender_new:      "remote sender new",
	Event_type_remote_sender_reset:    "remote sender reset",
	Event_type_remote_sender_address:  "remote sender address",
	Event_type_remote_sender_active:   "remote sender active",
	Event_type_remote_sender_inactive: "remote sender inactive",
	Event_type_remote_sender_purged:   "remote sender purged",
	Event_type_rx_cmd_new:             "rx cmd new",
	Event_type_rx_object_new:          "rx object new",
	Event_type_rx_object_info:         "rx object info",
	Event_type_rx_object_updated:      "rx object updated",
	Event_type_rx_object_completed:    "rx object completed",
	Event_type_rx_object_aborted:      "rx object aborted",
	Event_type_rx_ack_request:         "rx ack request",
	Event_type_grtt_updated:           "grtt updated",
	Event_type_cc_active:              "cc active",
	Event_type_cc_inactive:            "cc inactive",
	Event_type_acking_node_new:        "acking node new",
	Event_type_send_error:             "send error",
	Event_type_user_timeout:           "user timeout",
}

func (o Event_type) String() string {
	if o < event_type_count {
		return et[o]
	}
	return fmt.Sprintf("event type %d", uint8(o))
}

// event_type_from_native maps a NormEventType discriminant to its
// Event_type. Unknown discriminants map to Event_type_invalid.
func event_type_from_native(kind uint32) Event_type {
	if kind < uint32(event_type_count) {
		return Event_type(kind)
	}
	return Event_type_invalid
}

// Event is a snapshot of one NormEvent. The handle fields are raw and
// borrowed: Get_session(), Get_object() and Get_node() wrap them without
// taking ownership. Use Object.Retain()/Node.Retain() to keep one past the
// next Instance.Next_event().
type Event struct {
	Type           Event_type
	Session_handle Session_handle
	Object_handle  Object_handle
	Node_handle    Node_handle
	i              *Instance
}

func (o *Instance) translate(ne native_event) Event {
	return Event{
		Type:           event_type_from_native(ne.kind),
		Session_handle: ne.session,
		Object_handle:  ne.object,
		Node_handle:    ne.sender,
		i:              o,
	}
}

// Returns: the *Session created by this Instance for the event, or nil.
//
func (o Event) Get_session() *Session {
	if o.i == nil || o.Session_handle == Session_invalid {
		return nil
	}
	return o.i.sess_db.get(o.Session_handle)
}

// Returns: a borrowed *Object, or nil when the event carries none.
//
func (o Event) Get_object() *Object {
	if o.i == nil || o.Object_handle == Object_invalid {
		return nil
	}
	r := o.i.Object_from_borrowed(o.Object_handle)
	r.sess = o.Get_session()
	return r
}

// Returns: the borrowed sender *Node, or nil when the event carries none.
//
func (o Event) Get_node() *Node {
	if o.i == nil || o.Node_handle == Node_invalid {
		return nil
	}
	return o.i.Node_from_borrowed(o.Node_handle)
}

func (o Event) String() string {
	return fmt.Sprintf("%v, session: %#x, object: %#x, node: %#x", o.Type, uintptr(o.Session_handle), uintptr(o.Object_handle), uintptr(o.Node_handle))
}
