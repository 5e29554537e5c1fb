// Copyright 2016 aletheia7. All rights reserved. Use of this source code is
// governed by a BSD-2-Clause license that can be found in the LICENSE file.

//go:build unix

package norm

import (
	"context"

	"golang.org/x/sys/unix"
)

// Get_descriptor returns the libnorm descriptor that becomes readable when
// Next_event(false) has an event. Use it to drive an Instance from an
// external poll/epoll loop. The descriptor belongs to libnorm: do not read
// from or close it.
//
// https://htmlpreview.github.io/?https://github.com/aletheia7/norm/blob/master/norm/doc/NormDeveloperGuide.html#NormGetDescriptor
//
func (o *Instance) Get_descriptor() (int, error) {
	if !o.alive() {
		return -1, invalid_handle("get descriptor")
	}
	fd, ok := o.api.get_descriptor(o.handle)
	if !ok {
		return -1, operation_failed("get descriptor", "no descriptor")
	}
	return fd, nil
}

// Next_event_context waits for the next event until ctx is done. It returns
// ctx.Err() on cancellation and E_invalid_handle once the Instance is
// destroyed, including by Destroy() from another goroutine during the wait.
//
func (o *Instance) Next_event_context(ctx context.Context) (Event, error) {
	fd, err := o.Get_descriptor()
	if err != nil {
		return Event{}, err
	}
	for {
		if ev, ok := o.Next_event(false); ok {
			return ev, nil
		}
		if !o.alive() {
			return Event{}, invalid_handle("next event")
		}
		if err := ctx.Err(); err != nil {
			return Event{}, err
		}
		if err := o.wait_readable(ctx, fd); err != nil {
			if !o.alive() {
				return Event{}, invalid_handle("next event")
			}
			return Event{}, err
		}
	}
}

// wait_readable blocks until fd is readable, ctx is done or the Instance is
// destroyed. A pipe wakes the poll on either of the latter.
func (o *Instance) wait_readable(ctx context.Context, fd int) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer context.AfterFunc(o.shutdown, cancel)()
	var p [2]int
	if err := unix.Pipe2(p[:], unix.O_CLOEXEC|unix.O_NONBLOCK); err != nil {
		return err
	}
	r, w := p[0], p[1]
	fired := make(chan struct{})
	stop := context.AfterFunc(ctx, func() {
		defer close(fired)
		unix.Write(w, []byte{0})
	})
	defer func() {
		if !stop() {
			<-fired
		}
		unix.Close(r)
		unix.Close(w)
	}()
	fds := []unix.PollFd{
		{Fd: int32(fd), Events: unix.POLLIN},
		{Fd: int32(r), Events: unix.POLLIN},
	}
	for {
		_, err := unix.Poll(fds, -1)
		switch {
		case err == unix.EINTR:
			continue
		case err != nil:
			return err
		case fds[1].Revents != 0:
			return ctx.Err()
		case fds[0].Revents&(unix.POLLERR|unix.POLLNVAL) != 0:
			return operation_failed("wait descriptor", "descriptor error")
		}
		return nil
	}
}
