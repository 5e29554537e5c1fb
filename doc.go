// Copyright 2016 aletheia7. All rights reserved. Use of this source code is
// governed by a BSD-2-Clause license that can be found in the LICENSE file.

//go:generate go build go-norm-build/norm-build.go
//go:generate ./norm-build
//go:generate rm norm-build

/*
Package norm provides reliable UDP using multicast and unicast
sockets. norm is a cgo wrapper for NACK-Oriented Reliable Multicast (NORM).
Build with -tags norm after go generate has built libnorm. Without the tag
Create_instance() fails with E_invalid_handle.

An application creates an Instance, creates Sessions from it, optionally
applies a Multicast_config, starts the sender and/or receiver role, then
drains events:

	i, err := norm.Create_instance(false)
	...
	defer i.Destroy()
	sess, err := i.Create_session("224.1.2.3", 6003, norm.Node_any)
	...
	err = norm.New_multicast_config("224.1.2.3", 6003).With_ttl(64).With_loopback(true).Apply(sess)
	...
	for ev := range i.Events() {
		...
	}

Events() ends when libnorm reports no further events, which happens when
the Instance is destroyed from another goroutine. Next_event_context() and
Get_descriptor() integrate with contexts and external poll loops.

Lifetimes

Every Session, Object and Node belongs to the Instance that produced it.
Once Instance.Destroy() has been called they are invalid: calls that can
fail return E_invalid_handle, getters return zero values and Close() makes
no libnorm call.

Destroying a Session likewise invalidates the Objects enqueued on it and
those taken from its events. An Object wrapped by hand with
Object_from_owned() is not tied to a Session: close it before
Session.Destroy(), because libnorm has already released it by then.

Objects and Nodes are owned or borrowed. Objects from Data_enqueue(),
File_enqueue(), Stream_open() and Retain() are owned and must be Close()d.
Objects and Nodes from an Event are borrowed; libnorm frees them after the
matching purge, completion or abort event. Retain() a borrowed wrapper to
keep it longer.

Release() on a borrowed wrapper drops a libnorm reference the wrapper never
took. It is only correct when the application holds such a reference by
other means; otherwise it frees an object libnorm still uses. Prefer
Retain() and Close().

Object_type_file and Object_type_data objects can be delivered
out-of-order. Object_type_stream bytes arrive in order; the application
determines message boundaries.

Concurrency

The package adds no goroutines except in Instance.Event_chan(). Calls are
forwarded to libnorm, which serializes them per Instance. Wrappers may be
shared across goroutines under libnorm's own thread-safety rules.
*/
package norm
