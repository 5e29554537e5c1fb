// Copyright 2016 aletheia7. All rights reserved. Use of this source code is
// governed by a BSD-2-Clause license that can be found in the LICENSE file.

package norm

import (
	"context"
	"fmt"
	"iter"
	"sync/atomic"
	"unsafe"
)

// Instance is one libnorm engine instance. Every Session, Object and Node is
// tied to the Instance that produced it and becomes invalid once the
// Instance is destroyed.
type Instance struct {
	api       engine
	handle    instance_handle
	destroyed atomic.Bool
	debug     atomic.Bool
	sess_db   refdb
	// shutdown is cancelled by Destroy() before libnorm tears down, waking
	// descriptor waits.
	shutdown        context.Context
	shutdown_cancel context.CancelFunc
}

var version_major, version_minor, version_patch = native.get_version()

// Version returns the libnorm version linked into the binary, or 0.0.0 when
// built without -tags norm.
func Version() string {
	return fmt.Sprintf("%v.%v.%v", version_major, version_minor, version_patch)
}

// priority_boost: true raises the libnorm protocol thread priority.
//
// Fails with E_invalid_handle when libnorm cannot create an instance, which
// is always the case when built without -tags norm.
//
// https://htmlpreview.github.io/?https://github.com/aletheia7/norm/blob/master/norm/doc/NormDeveloperGuide.html#NormCreateInstance
//
func Create_instance(priority_boost bool) (*Instance, error) {
	return new_instance(native, priority_boost)
}

func new_instance(api engine, priority_boost bool) (*Instance, error) {
	h := api.create_instance(priority_boost)
	if h == instance_invalid {
		get_logger().Warn("norm create instance failed", "priority_boost", priority_boost)
		return nil, invalid_handle("create instance")
	}
	r := &Instance{api: api, handle: h}
	r.shutdown, r.shutdown_cancel = context.WithCancel(context.Background())
	return r, nil
}

func (o *Instance) alive() bool {
	return o != nil && !o.destroyed.Load()
}

// Valid reports whether Destroy() has not been called.
//
func (o *Instance) Valid() bool {
	return o.alive()
}

func (o *Instance) log_failure(op string, args ...any) {
	if o.debug.Load() {
		get_logger().Debug("norm "+op+" failed", args...)
	}
}

// Destroy tears down libnorm's instance together with every session, object
// and node it holds. It is idempotent. Wrappers still held by the
// application become invalid and their Close() makes no libnorm call.
//
// A goroutine blocked in Next_event(true) returns false; one blocked in
// Next_event_context() returns E_invalid_handle.
//
// https://htmlpreview.github.io/?https://github.com/aletheia7/norm/blob/master/norm/doc/NormDeveloperGuide.html#NormDestroyInstance
//
func (o *Instance) Destroy() {
	if o.destroyed.Swap(true) {
		return
	}
	o.shutdown_cancel()
	for _, s := range o.sess_db.take() {
		s.destroyed.Store(true)
	}
	o.api.destroy_instance(o.handle)
	if o.debug.Load() {
		get_logger().Debug("instance destroyed", "instance", uintptr(o.handle))
	}
}

// Close is Destroy.
//
func (o *Instance) Close() error {
	o.Destroy()
	return nil
}

// https://htmlpreview.github.io/?https://github.com/aletheia7/norm/blob/master/norm/doc/NormDeveloperGuide.html#NormStopInstance
//
func (o *Instance) Stop() {
	if o.alive() {
		o.api.stop_instance(o.handle)
	}
}

// https://htmlpreview.github.io/?https://github.com/aletheia7/norm/blob/master/norm/doc/NormDeveloperGuide.html#NormRestartInstance
//
func (o *Instance) Restart() error {
	if !o.alive() {
		return invalid_handle("restart instance")
	}
	return bool_result(o.api.restart_instance(o.handle), "restart instance", "failed to restart instance")
}

// https://htmlpreview.github.io/?https://github.com/aletheia7/norm/blob/master/norm/doc/NormDeveloperGuide.html#NormSuspendInstance
//
func (o *Instance) Suspend() error {
	if !o.alive() {
		return invalid_handle("suspend instance")
	}
	return bool_result(o.api.suspend_instance(o.handle), "suspend instance", "failed to suspend instance")
}

// https://htmlpreview.github.io/?https://github.com/aletheia7/norm/blob/master/norm/doc/NormDeveloperGuide.html#NormResumeInstance
//
func (o *Instance) Resume() {
	if o.alive() {
		o.api.resume_instance(o.handle)
	}
}

// Receiver func
//
// Required for Object_type_file reception. libnorm does not complain when
// it is missing; received files are simply dropped.
//
// https://htmlpreview.github.io/?https://github.com/aletheia7/norm/blob/master/norm/doc/NormDeveloperGuide.html#NormSetCacheDirectory
//
func (o *Instance) Set_cache_directory(cache_path string) error {
	if !o.alive() {
		return invalid_handle("set cache directory")
	}
	if err := check_string("set cache directory", cache_path); err != nil {
		return err
	}
	return bool_result(o.api.set_cache_directory(o.handle, cache_path), "set cache directory", "failed to set cache directory "+cache_path)
}

// Set_debug applies to Instance and not libnorm.
//
func (o *Instance) Set_debug(debug bool) {
	o.debug.Store(debug)
}

// Get_debug applies to Instance and not libnorm.
//
func (o *Instance) Get_debug() bool {
	return o.debug.Load()
}

// debug_level: 3, set between 0 and 12 inclusive.
//
// https://htmlpreview.github.io/?https://github.com/aletheia7/norm/blob/master/norm/doc/NormDeveloperGuide.html#NormSetDebugLevel
//
func (o *Instance) Set_debug_level(debug_level uint) {
	if o.alive() {
		o.api.set_debug_level(debug_level)
	}
}

func (o *Instance) Get_debug_level() uint {
	if !o.alive() {
		return 0
	}
	return o.api.get_debug_level()
}

// default: stderr
//
// https://htmlpreview.github.io/?https://github.com/aletheia7/norm/blob/master/norm/doc/NormDeveloperGuide.html#NormOpenDebugLog
//
func (o *Instance) Open_debug_log(file_name string) error {
	if !o.alive() {
		return invalid_handle("open debug log")
	}
	if err := check_string("open debug log", file_name); err != nil {
		return err
	}
	return bool_result(o.api.open_debug_log(o.handle, file_name), "open debug log", "failed to open debug log file "+file_name)
}

// https://htmlpreview.github.io/?https://github.com/aletheia7/norm/blob/master/norm/doc/NormDeveloperGuide.html#NormCloseDebugLog
//
func (o *Instance) Close_debug_log() {
	if o.alive() {
		o.api.close_debug_log(o.handle)
	}
}

// https://htmlpreview.github.io/?https://github.com/aletheia7/norm/blob/master/norm/doc/NormDeveloperGuide.html#NormOpenDebugPipe
//
func (o *Instance) Open_debug_pipe(pipe_name string) error {
	if !o.alive() {
		return invalid_handle("open debug pipe")
	}
	if err := check_string("open debug pipe", pipe_name); err != nil {
		return err
	}
	return bool_result(o.api.open_debug_pipe(o.handle, pipe_name), "open debug pipe", "failed to open debug pipe "+pipe_name)
}

// https://htmlpreview.github.io/?https://github.com/aletheia7/norm/blob/master/norm/doc/NormDeveloperGuide.html#NormCloseDebugPipe
//
func (o *Instance) Close_debug_pipe() {
	if o.alive() {
		o.api.close_debug_pipe(o.handle)
	}
}

func (o *Instance) Get_version() string {
	return Version()
}

// Set_allocation_functions installs C allocator functions used for received
// Object_type_data buffers. alloc_func and free_func must both be C function
// pointers or both be nil; nil restores libnorm's allocator.
//
// https://htmlpreview.github.io/?https://github.com/aletheia7/norm/blob/master/norm/doc/NormDeveloperGuide.html#NormSetAllocationFunctions
//
func (o *Instance) Set_allocation_functions(alloc_func, free_func unsafe.Pointer) error {
	if !o.alive() {
		return invalid_handle("set allocation functions")
	}
	if (alloc_func == nil) != (free_func == nil) {
		return invalid_parameter("set allocation functions", "alloc_func and free_func must both be set or both be nil")
	}
	o.api.set_allocation_functions(o.handle, alloc_func, free_func)
	return nil
}

// Next_event polls libnorm once.
//
// wait: false never blocks and returns false when no event is pending.
// wait: true blocks until an event arrives; it returns false when the
// Instance is destroyed, which is the normal end of an event loop.
//
// Events are returned in the order libnorm generated them.
//
// https://htmlpreview.github.io/?https://github.com/aletheia7/norm/blob/master/norm/doc/NormDeveloperGuide.html#NormGetNextEvent
//
func (o *Instance) Next_event(wait bool) (Event, bool) {
	if !o.alive() {
		return Event{}, false
	}
	ne, ok := o.api.get_next_event(o.handle, wait)
	if !ok {
		return Event{}, false
	}
	ev := o.translate(ne)
	if o.debug.Load() {
		get_logger().Debug("event", "type", ev.Type.String(), "session", uintptr(ev.Session_handle), "object", uintptr(ev.Object_handle), "node", uintptr(ev.Node_handle))
	}
	return ev, true
}

// Events returns a lazy sequence of Next_event(true). The sequence ends the
// first time polling yields no event and never polls again afterwards,
// including on later range loops over the same sequence. The sequence may
// be ranged from several goroutines; each Event goes to exactly one of them.
//
//	for ev := range inst.Events() {
//		switch ev.Type {
//		case norm.Event_type_rx_object_completed:
//		}
//	}
//
func (o *Instance) Events() iter.Seq[Event] {
	var done atomic.Bool
	return func(yield func(Event) bool) {
		for !done.Load() {
			ev, ok := o.Next_event(true)
			if !ok {
				done.Store(true)
				return
			}
			if !yield(ev) {
				return
			}
		}
	}
}

// Event_chan runs Events() on a goroutine and delivers each Event, in order,
// on the returned channel. The channel is closed when the sequence ends or
// ctx is done. Cancelling ctx while libnorm has no pending event takes
// effect when the next event arrives or the Instance is destroyed.
//
func (o *Instance) Event_chan(ctx context.Context) <-chan Event {
	r := make(chan Event)
	go func() {
		defer close(r)
		for ev := range o.Events() {
			select {
			case r <- ev:
			case <-ctx.Done():
				return
			}
			if ctx.Err() != nil {
				return
			}
		}
	}()
	return r
}
