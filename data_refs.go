// Copyright 2016 aletheia7. All rights reserved. Use of this source code is
// governed by a BSD-2-Clause license that can be found in the LICENSE file.

package norm

import (
	"sync"
	"unsafe"
)

// data_ref is a C copy of a NormDataEnqueue() buffer. libnorm points at it
// until the object is purged, and Data_access_data() reads it for as long
// as an owned Object holds a reference.
type data_ref struct {
	p      unsafe.Pointer
	inst   instance_handle
	sess   Session_handle
	refs   int
	purged bool
}

// data_refs decides when an enqueued buffer may be freed: after the purge
// and after the last owned reference is released, or when its session or
// instance is destroyed. Every method returns the buffers that are now
// free to release.
type data_refs struct {
	lock sync.Mutex
	m    map[Object_handle]*data_ref
}

func (o *data_refs) add(h Object_handle, p unsafe.Pointer, inst instance_handle, sess Session_handle) {
	o.lock.Lock()
	defer o.lock.Unlock()
	if o.m == nil {
		o.m = map[Object_handle]*data_ref{}
	}
	o.m[h] = &data_ref{p: p, inst: inst, sess: sess}
}

func (o *data_refs) retain(h Object_handle) {
	o.lock.Lock()
	defer o.lock.Unlock()
	if d, ok := o.m[h]; ok {
		d.refs++
	}
}

func (o *data_refs) release(h Object_handle) unsafe.Pointer {
	o.lock.Lock()
	defer o.lock.Unlock()
	d, ok := o.m[h]
	if !ok {
		return nil
	}
	if 0 < d.refs {
		d.refs--
	}
	return o.drop(h, d)
}

func (o *data_refs) purge(h Object_handle) unsafe.Pointer {
	o.lock.Lock()
	defer o.lock.Unlock()
	d, ok := o.m[h]
	if !ok {
		return nil
	}
	d.purged = true
	return o.drop(h, d)
}

func (o *data_refs) drop(h Object_handle, d *data_ref) unsafe.Pointer {
	if !d.purged || 0 < d.refs {
		return nil
	}
	delete(o.m, h)
	return d.p
}

// take_session removes every buffer enqueued on s.
func (o *data_refs) take_session(s Session_handle) []unsafe.Pointer {
	return o.take(func(d *data_ref) bool { return d.sess == s })
}

// take_instance removes every buffer enqueued under inst.
func (o *data_refs) take_instance(inst instance_handle) []unsafe.Pointer {
	return o.take(func(d *data_ref) bool { return d.inst == inst })
}

func (o *data_refs) take(match func(*data_ref) bool) []unsafe.Pointer {
	o.lock.Lock()
	defer o.lock.Unlock()
	var r []unsafe.Pointer
	for h, d := range o.m {
		if match(d) {
			r = append(r, d.p)
			delete(o.m, h)
		}
	}
	return r
}

func (o *data_refs) len() int {
	o.lock.Lock()
	defer o.lock.Unlock()
	return len(o.m)
}
