// Copyright 2016 aletheia7. All rights reserved. Use of this source code is
// governed by a BSD-2-Clause license that can be found in the LICENSE file.

package norm

import (
	"fmt"
	"sync/atomic"
)

// Object is a NORM transport object: Object_type_data, Object_type_file or
// Object_type_stream.
//
// Objects returned by Session.Data_enqueue(), Session.File_enqueue(),
// Session.Stream_open() and Object.Retain() are owned: they hold one libnorm
// reference and Close() releases it exactly once. Objects obtained from an
// Event are borrowed: Close() does nothing and the object is only valid
// until libnorm reports it purged, completed or aborted.
//
// An Object known to belong to a Session becomes invalid when that Session
// is destroyed, and Close() then makes no libnorm call.
type Object struct {
	i        *Instance
	sess     *Session
	handle   Object_handle
	owned    bool
	released atomic.Bool
}

// Object_from_owned wraps a handle that already carries a libnorm reference
// for the caller. Close() releases it.
//
func (o *Instance) Object_from_owned(handle Object_handle) *Object {
	return &Object{i: o, handle: handle, owned: true}
}

// Object_from_borrowed wraps a handle without taking ownership.
//
func (o *Instance) Object_from_borrowed(handle Object_handle) *Object {
	return &Object{i: o, handle: handle}
}

func (o *Object) Handle() Object_handle {
	return o.handle
}

func (o *Object) Is_owned() bool {
	return o.owned
}

// Valid reports whether the handle may still be used: the Instance and the
// owning Session are alive and an owned Object has not been closed.
//
func (o *Object) Valid() bool {
	return o.handle != Object_invalid && o.i.alive() && o.sess_alive() && !o.released.Load()
}

func (o *Object) sess_alive() bool {
	return o.sess == nil || o.sess.Valid()
}

// https://htmlpreview.github.io/?https://github.com/aletheia7/norm/blob/master/norm/doc/NormDeveloperGuide.html#NormObjectGetType
//
func (o *Object) Get_type() Object_type {
	if !o.Valid() {
		return Object_type_none
	}
	return o.i.api.object_get_type(o.handle)
}

func (o *Object) require(op string, t Object_type) error {
	if !o.Valid() {
		return invalid_handle(op)
	}
	if got := o.Get_type(); got != t {
		return invalid_parameter(op, fmt.Sprintf("requires %v, have %v", t, got))
	}
	return nil
}

// https://htmlpreview.github.io/?https://github.com/aletheia7/norm/blob/master/norm/doc/NormDeveloperGuide.html#NormObjectHasInfo
//
func (o *Object) Has_info() bool {
	if !o.Valid() {
		return false
	}
	return o.i.api.object_has_info(o.handle)
}

// https://htmlpreview.github.io/?https://github.com/aletheia7/norm/blob/master/norm/doc/NormDeveloperGuide.html#NormObjectGetInfoLength
//
func (o *Object) Get_info_length() int {
	if !o.Valid() {
		return 0
	}
	return o.i.api.object_get_info_length(o.handle)
}

// Returns: info, or an empty slice when the object has none.
//
// https://htmlpreview.github.io/?https://github.com/aletheia7/norm/blob/master/norm/doc/NormDeveloperGuide.html#NormObjectGetInfo
//
func (o *Object) Get_info() ([]byte, error) {
	if !o.Valid() {
		return nil, invalid_handle("object get info")
	}
	if !o.i.api.object_has_info(o.handle) {
		return []byte{}, nil
	}
	olen := o.i.api.object_get_info_length(o.handle)
	if olen <= 0 {
		return []byte{}, nil
	}
	buf := make([]byte, olen)
	n := o.i.api.object_get_info(o.handle, buf)
	if n <= 0 {
		return nil, operation_failed("object get info", "failed to get info data")
	}
	return buf[:min(n, olen)], nil
}

// https://htmlpreview.github.io/?https://github.com/aletheia7/norm/blob/master/norm/doc/NormDeveloperGuide.html#NormObjectGetSize
//
func (o *Object) Get_size() int64 {
	if !o.Valid() {
		return 0
	}
	return o.i.api.object_get_size(o.handle)
}

// https://htmlpreview.github.io/?https://github.com/aletheia7/norm/blob/master/norm/doc/NormDeveloperGuide.html#NormObjectGetBytesPending
//
func (o *Object) Get_bytes_pending() int64 {
	if !o.Valid() {
		return 0
	}
	return o.i.api.object_get_bytes_pending(o.handle)
}

// Returns a copy of an Object_type_data object's buffer.
//
// https://htmlpreview.github.io/?https://github.com/aletheia7/norm/blob/master/norm/doc/NormDeveloperGuide.html#NormDataAccessData
//
func (o *Object) Data_access_data() ([]byte, error) {
	if err := o.require("data access data", Object_type_data); err != nil {
		return nil, err
	}
	data := o.i.api.data_access_data(o.handle)
	if data == nil {
		return nil, null_pointer("data access data")
	}
	return data, nil
}

// https://htmlpreview.github.io/?https://github.com/aletheia7/norm/blob/master/norm/doc/NormDeveloperGuide.html#NormObjectCancel
//
func (o *Object) Cancel() {
	if o.Valid() {
		o.i.api.object_cancel(o.handle)
	}
}

// Returns: the borrowed sender *Node of a received object.
//
// https://htmlpreview.github.io/?https://github.com/aletheia7/norm/blob/master/norm/doc/NormDeveloperGuide.html#NormObjectGetSender
//
func (o *Object) Get_sender() (*Node, error) {
	if !o.Valid() {
		return nil, invalid_handle("object get sender")
	}
	h := o.i.api.object_get_sender(o.handle)
	if h == Node_invalid {
		return nil, invalid_handle("object get sender")
	}
	return o.i.Node_from_borrowed(h), nil
}

// Receiver func
//
// https://htmlpreview.github.io/?https://github.com/aletheia7/norm/blob/master/norm/doc/NormDeveloperGuide.html#NormObjectSetNackingMode
//
func (o *Object) Set_nacking_mode(mode Nacking_mode) {
	if o.Valid() {
		o.i.api.object_set_nacking_mode(o.handle, mode)
	}
}

// Retain takes a new libnorm reference and returns it as a separate owned
// Object. The receiver is unchanged; Close() the returned Object to drop the
// reference. Use it to keep a borrowed Object from an Event, e.g. an
// Event_type_rx_object_completed data object, past the next event.
//
// https://htmlpreview.github.io/?https://github.com/aletheia7/norm/blob/master/norm/doc/NormDeveloperGuide.html#NormObjectRetain
//
func (o *Object) Retain() (*Object, error) {
	if !o.Valid() {
		return nil, invalid_handle("object retain")
	}
	o.i.api.object_retain(o.handle)
	r := o.i.Object_from_owned(o.handle)
	r.sess = o.sess
	return r, nil
}

// Release drops one libnorm reference.
//
// On an owned Object, Release is Close(). On a borrowed Object, Release
// calls NormObjectRelease() directly: the caller must hold a reference that
// was taken outside this Object, otherwise libnorm frees an object it still
// uses.
//
// https://htmlpreview.github.io/?https://github.com/aletheia7/norm/blob/master/norm/doc/NormDeveloperGuide.html#NormObjectRelease
//
func (o *Object) Release() error {
	if o.owned {
		return o.Close()
	}
	if !o.Valid() {
		return invalid_handle("object release")
	}
	o.i.api.object_release(o.handle)
	return nil
}

// Close releases an owned Object exactly once. It is a no-op for borrowed
// Objects and on repeated calls. After the Instance or the owning Session is
// destroyed it only marks the Object closed, since libnorm has already
// dropped the object.
//
func (o *Object) Close() error {
	if !o.owned || o.released.Swap(true) {
		return nil
	}
	if o.handle == Object_invalid || !o.i.alive() || !o.sess_alive() {
		return nil
	}
	o.i.api.object_release(o.handle)
	if o.i.debug.Load() {
		get_logger().Debug("object released", "object", uintptr(o.handle))
	}
	return nil
}

// Only handle, type and ownership.
//
func (o *Object) String() string {
	return fmt.Sprintf("object handle: %#x, type: %v, owned: %v", uintptr(o.handle), o.Get_type(), o.owned)
}

// File func
//
// https://htmlpreview.github.io/?https://github.com/aletheia7/norm/blob/master/norm/doc/NormDeveloperGuide.html#NormFileGetName
//
func (o *Object) File_get_name() (string, error) {
	if err := o.require("file get name", Object_type_file); err != nil {
		return "", err
	}
	name, ok := o.i.api.file_get_name(o.handle)
	if !ok {
		return "", file_error("file get name", "failed to get file name")
	}
	return name, nil
}

// File func
//
// https://htmlpreview.github.io/?https://github.com/aletheia7/norm/blob/master/norm/doc/NormDeveloperGuide.html#NormFileRename
//
func (o *Object) File_rename(file_name string) error {
	if err := o.require("file rename", Object_type_file); err != nil {
		return err
	}
	if err := check_string("file rename", file_name); err != nil {
		return err
	}
	if !o.i.api.file_rename(o.handle, file_name) {
		return file_error("file rename", "failed to rename "+file_name)
	}
	return nil
}

// Sender func
//
// Returns: the number of bytes accepted, which is less than len(data) when
// the stream buffer is full. Wait for Event_type_tx_queue_vacancy.
//
// https://htmlpreview.github.io/?https://github.com/aletheia7/norm/blob/master/norm/doc/NormDeveloperGuide.html#NormStreamWrite
//
func (o *Object) Stream_write(data []byte) (int, error) {
	if err := o.require("stream write", Object_type_stream); err != nil {
		return 0, err
	}
	if len(data) == 0 {
		return 0, nil
	}
	return o.i.api.stream_write(o.handle, data), nil
}

// Sender func
//
// https://htmlpreview.github.io/?https://github.com/aletheia7/norm/blob/master/norm/doc/NormDeveloperGuide.html#NormStreamFlush
//
func (o *Object) Stream_flush(eom bool, mode Flush_mode) error {
	if err := o.require("stream flush", Object_type_stream); err != nil {
		return err
	}
	o.i.api.stream_flush(o.handle, eom, mode)
	return nil
}

// Sender func
//
// https://htmlpreview.github.io/?https://github.com/aletheia7/norm/blob/master/norm/doc/NormDeveloperGuide.html#NormStreamSetAutoFlush
//
func (o *Object) Stream_set_auto_flush(mode Flush_mode) error {
	if err := o.require("stream set auto flush", Object_type_stream); err != nil {
		return err
	}
	o.i.api.stream_set_auto_flush(o.handle, mode)
	return nil
}

// Sender func
//
// https://htmlpreview.github.io/?https://github.com/aletheia7/norm/blob/master/norm/doc/NormDeveloperGuide.html#NormStreamSetPushEnable
//
func (o *Object) Stream_set_push_enable(enable bool) error {
	if err := o.require("stream set push enable", Object_type_stream); err != nil {
		return err
	}
	o.i.api.stream_set_push_enable(o.handle, enable)
	return nil
}

// Sender func
//
// https://htmlpreview.github.io/?https://github.com/aletheia7/norm/blob/master/norm/doc/NormDeveloperGuide.html#NormStreamMarkEom
//
func (o *Object) Stream_mark_eom() error {
	if err := o.require("stream mark eom", Object_type_stream); err != nil {
		return err
	}
	o.i.api.stream_mark_eom(o.handle)
	return nil
}

// Sender func
//
// graceful: false discards unsent data.
//
// https://htmlpreview.github.io/?https://github.com/aletheia7/norm/blob/master/norm/doc/NormDeveloperGuide.html#NormStreamClose
//
func (o *Object) Stream_close(graceful bool) error {
	if err := o.require("stream close", Object_type_stream); err != nil {
		return err
	}
	o.i.api.stream_close(o.handle, graceful)
	return nil
}

// Receiver func
//
// Stream_read fills buf and returns the number of bytes read. An error with
// E_operation_failed means libnorm detected a stream break; call
// Stream_seek_msg_start() to resynchronize.
//
// https://htmlpreview.github.io/?https://github.com/aletheia7/norm/blob/master/norm/doc/NormDeveloperGuide.html#NormStreamRead
//
func (o *Object) Stream_read(buf []byte) (int, error) {
	if err := o.require("stream read", Object_type_stream); err != nil {
		return 0, err
	}
	n, ok := o.i.api.stream_read(o.handle, buf)
	if !ok {
		return n, operation_failed("stream read", "failed to read from stream")
	}
	return n, nil
}

// Sender func
//
// https://htmlpreview.github.io/?https://github.com/aletheia7/norm/blob/master/norm/doc/NormDeveloperGuide.html#NormStreamHasVacancy
//
func (o *Object) Stream_has_vacancy() (bool, error) {
	if err := o.require("stream has vacancy", Object_type_stream); err != nil {
		return false, err
	}
	return o.i.api.stream_has_vacancy(o.handle), nil
}

// Receiver func
//
// https://htmlpreview.github.io/?https://github.com/aletheia7/norm/blob/master/norm/doc/NormDeveloperGuide.html#NormStreamSeekMsgStart
//
func (o *Object) Stream_seek_msg_start() (bool, error) {
	if err := o.require("stream seek msg start", Object_type_stream); err != nil {
		return false, err
	}
	return o.i.api.stream_seek_msg_start(o.handle), nil
}

// Receiver func
//
// https://htmlpreview.github.io/?https://github.com/aletheia7/norm/blob/master/norm/doc/NormDeveloperGuide.html#NormStreamGetReadOffset
//
func (o *Object) Stream_get_read_offset() (uint64, error) {
	if err := o.require("stream get read offset", Object_type_stream); err != nil {
		return 0, err
	}
	return o.i.api.stream_get_read_offset(o.handle), nil
}
