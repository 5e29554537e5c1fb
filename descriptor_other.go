// Copyright 2016 aletheia7. All rights reserved. Use of this source code is
// governed by a BSD-2-Clause license that can be found in the LICENSE file.

//go:build !unix

package norm

import (
	"context"
	"time"
)

const poll_interval = 10 * time.Millisecond

// Get_descriptor is unix only.
//
func (o *Instance) Get_descriptor() (int, error) {
	if !o.alive() {
		return -1, invalid_handle("get descriptor")
	}
	return -1, operation_failed("get descriptor", "not supported on this platform")
}

// Next_event_context waits for the next event until ctx is done. Without a
// descriptor it polls Next_event(false) every poll_interval.
//
func (o *Instance) Next_event_context(ctx context.Context) (Event, error) {
	t := time.NewTicker(poll_interval)
	defer t.Stop()
	for {
		if ev, ok := o.Next_event(false); ok {
			return ev, nil
		}
		if !o.alive() {
			return Event{}, invalid_handle("next event")
		}
		select {
		case <-ctx.Done():
			return Event{}, ctx.Err()
		case <-o.shutdown.Done():
			return Event{}, invalid_handle("next event")
		case <-t.C:
		}
	}
}
