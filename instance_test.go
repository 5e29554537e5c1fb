// Copyright 2016 aletheia7. All rights reserved. Use of this source code is
// governed by a BSD-2-Clause license that can be found in the LICENSE file.

package norm

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInstanceFailure(t *testing.T) {
	f := new_fake_engine()
	f.set_fail("create_instance")
	i, err := new_instance(f, true)
	assert.Nil(t, i)
	assert.ErrorIs(t, err, E_invalid_handle)
}

func TestInstanceVersion(t *testing.T) {
	i, _ := test_instance(t)
	assert.Equal(t, Version(), i.Get_version())
}

func TestNextEventEmpty(t *testing.T) {
	i, f := test_instance(t)
	_, ok := i.Next_event(false)
	assert.False(t, ok)
	c, ok := f.last("get_next_event")
	require.True(t, ok)
	assert.Equal(t, false, c.args[1])
}

func TestNextEventTranslate(t *testing.T) {
	i, f := test_instance(t)
	s, err := i.Create_session("224.1.2.3", 6003, Node_any)
	require.NoError(t, err)
	obj := f.new_object(Object_type_data)
	node := f.new_node(4)
	f.push(native_event{kind: uint32(Event_type_rx_object_completed), session: s.Handle(), object: obj, sender: node})

	ev, ok := i.Next_event(false)
	require.True(t, ok)
	assert.Equal(t, Event_type_rx_object_completed, ev.Type)
	assert.Same(t, s, ev.Get_session())
	assert.Equal(t, obj, ev.Get_object().Handle())
	assert.Equal(t, node, ev.Get_node().Handle())
}

func TestEventsStopsAtFirstNone(t *testing.T) {
	i, f := test_instance(t)
	f.push(
		native_event{kind: uint32(Event_type_tx_queue_empty)},
		native_event{kind: uint32(Event_type_tx_object_sent)},
	)
	f.lock.Lock()
	f.destroyed = true
	f.lock.Unlock()

	seq := i.Events()
	var got []Event_type
	for ev := range seq {
		got = append(got, ev.Type)
	}
	assert.Equal(t, []Event_type{Event_type_tx_queue_empty, Event_type_tx_object_sent}, got)
	assert.Equal(t, 3, f.count("get_next_event"))

	f.push(native_event{kind: uint32(Event_type_tx_queue_empty)})
	for range seq {
		t.Fatal("sequence resumed after end")
	}
	assert.Equal(t, 3, f.count("get_next_event"))
}

func TestEventsEarlyBreak(t *testing.T) {
	i, f := test_instance(t)
	f.push(
		native_event{kind: uint32(Event_type_tx_queue_empty)},
		native_event{kind: uint32(Event_type_tx_object_sent)},
	)
	for range i.Events() {
		break
	}
	assert.Equal(t, 1, f.count("get_next_event"))
	ev, ok := i.Next_event(false)
	require.True(t, ok)
	assert.Equal(t, Event_type_tx_object_sent, ev.Type)
}

func TestInstanceDestroy(t *testing.T) {
	i, f := test_instance(t)
	s, err := i.Create_session("224.1.2.3", 6003, Node_any)
	require.NoError(t, err)

	i.Destroy()
	i.Destroy()
	require.NoError(t, i.Close())
	assert.Equal(t, 1, f.count("destroy_instance"))
	assert.False(t, i.Valid())
	assert.False(t, s.Valid())
	assert.Equal(t, 0, i.sess_db.len())
	assert.ErrorIs(t, i.Restart(), E_invalid_handle)
	assert.ErrorIs(t, i.Suspend(), E_invalid_handle)
	assert.ErrorIs(t, i.Set_cache_directory("/tmp"), E_invalid_handle)
	_, ok := i.Next_event(false)
	assert.False(t, ok)
	assert.Equal(t, 0, f.count("get_next_event"))
}

func TestInstanceRestartFailure(t *testing.T) {
	i, f := test_instance(t)
	require.NoError(t, i.Restart())
	f.set_fail("restart_instance")
	assert.ErrorIs(t, i.Restart(), E_operation_failed)
	f.set_fail("suspend_instance")
	assert.ErrorIs(t, i.Suspend(), E_operation_failed)
	i.Resume()
	i.Stop()
	assert.Equal(t, 1, f.count("resume_instance"))
	assert.Equal(t, 1, f.count("stop_instance"))
}

func TestInstanceDebugFiles(t *testing.T) {
	i, f := test_instance(t)
	require.NoError(t, i.Open_debug_log("/tmp/norm.log"))
	require.NoError(t, i.Open_debug_pipe("normpipe"))
	assert.ErrorIs(t, i.Open_debug_log("a\x00"), E_string_encoding)
	assert.ErrorIs(t, i.Set_cache_directory("a\x00"), E_string_encoding)
	f.set_fail("open_debug_log")
	assert.ErrorIs(t, i.Open_debug_log("/tmp/norm.log"), E_operation_failed)
	i.Close_debug_log()
	i.Close_debug_pipe()

	i.Set_debug_level(3)
	assert.Equal(t, uint(3), i.Get_debug_level())
}

func TestSetAllocationFunctions(t *testing.T) {
	i, f := test_instance(t)
	var x int
	p := unsafe.Pointer(&x)
	assert.ErrorIs(t, i.Set_allocation_functions(p, nil), E_invalid_parameter)
	assert.ErrorIs(t, i.Set_allocation_functions(nil, p), E_invalid_parameter)
	assert.Equal(t, 0, f.count("set_allocation_functions"))
	require.NoError(t, i.Set_allocation_functions(nil, nil))
	require.NoError(t, i.Set_allocation_functions(p, p))
	assert.Equal(t, 2, f.count("set_allocation_functions"))
}

func TestEventChan(t *testing.T) {
	i, f := test_instance(t)
	f.push(
		native_event{kind: uint32(Event_type_remote_sender_new)},
		native_event{kind: uint32(Event_type_rx_object_new)},
		native_event{kind: uint32(Event_type_rx_object_completed)},
	)
	ch := i.Event_chan(context.Background())
	var got []Event_type
	for range 3 {
		select {
		case ev := <-ch:
			got = append(got, ev.Type)
		case <-time.After(5 * time.Second):
			t.Fatal("timeout")
		}
	}
	assert.Equal(t, []Event_type{Event_type_remote_sender_new, Event_type_rx_object_new, Event_type_rx_object_completed}, got)

	i.Destroy()
	select {
	case _, ok := <-ch:
		assert.False(t, ok)
	case <-time.After(5 * time.Second):
		t.Fatal("channel not closed")
	}
}

func TestEventChanCancel(t *testing.T) {
	i, f := test_instance(t)
	ctx, cancel := context.WithCancel(context.Background())
	f.push(native_event{kind: uint32(Event_type_tx_queue_vacancy)})
	ch := i.Event_chan(ctx)
	cancel()
	f.push(native_event{kind: uint32(Event_type_tx_queue_empty)})

	deadline := time.After(5 * time.Second)
	for {
		select {
		case _, ok := <-ch:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("channel not closed after cancel")
		}
	}
}

func TestDestroyUnblocksNextEvent(t *testing.T) {
	i, _ := test_instance(t)
	done := make(chan bool)
	go func() {
		_, ok := i.Next_event(true)
		done <- ok
	}()
	time.Sleep(20 * time.Millisecond)
	i.Destroy()
	select {
	case ok := <-done:
		assert.False(t, ok)
	case <-time.After(5 * time.Second):
		t.Fatal("Next_event(true) still blocked")
	}
}

func TestInstanceDebugLogging(t *testing.T) {
	var buf bytes.Buffer
	Set_logger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { Set_logger(nil) })

	i, f := test_instance(t)
	i.Set_debug(true)
	assert.True(t, i.Get_debug())
	f.set_fail("create_session")
	_, err := i.Create_session("224.1.2.3", 6003, Node_any)
	require.Error(t, err)
	assert.Contains(t, buf.String(), "norm create session failed")

	buf.Reset()
	i.Set_debug(false)
	_, err = i.Create_session("224.1.2.3", 6003, Node_any)
	require.Error(t, err)
	assert.Empty(t, buf.String())
}

func TestEventsSharedAcrossGoroutines(t *testing.T) {
	i, f := test_instance(t)
	for range 100 {
		f.push(native_event{kind: uint32(Event_type_rx_object_updated)})
	}
	f.lock.Lock()
	f.destroyed = true
	f.lock.Unlock()

	seq := i.Events()
	counts := make(chan int)
	for range 4 {
		go func() {
			n := 0
			for range seq {
				n++
			}
			counts <- n
		}()
	}
	total := 0
	for range 4 {
		total += <-counts
	}
	assert.Equal(t, 100, total)
}
