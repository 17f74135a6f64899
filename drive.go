// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package partial

import (
	"context"
)

// task is the waker Drive hands to poll functions.
type task struct {
	woken chan struct{}
}

func newTask() *task { return &task{woken: make(chan struct{}, 1)} }

// Wake records a pending wake. It never blocks; wakes coalesce.
func (t *task) Wake() {
	select {
	case t.woken <- struct{}{}:
	default:
	}
}

// Drive runs poll as one task of a minimal executor: poll is invoked, and each
// time it returns ErrWouldBlock it is invoked again only after the waker it
// was handed has been woken. Any other result, nil included, ends Drive and is
// returned.
//
// A poll that reports not-ready without ever arranging a wake parks the task
// until ctx is done; Drive then returns ctx.Err(). This is how a missing wake
// shows up as a test failure instead of a silent hang.
func Drive(ctx context.Context, poll func(w Waker) error) error {
	t := newTask()
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		err := poll(t)
		if err != ErrWouldBlock {
			return err
		}
		select {
		case <-t.woken:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// DriveRead polls r into p until it is ready and returns that result.
// Progress reported together with ErrWouldBlock counts as ready and is
// returned as-is.
func DriveRead(ctx context.Context, r PollReader, p []byte) (n int, err error) {
	return drive(ctx, func(w Waker) (int, error) { return r.PollRead(w, p) })
}

// DriveWrite polls w with p until it is ready and returns that result, like
// DriveRead.
func DriveWrite(ctx context.Context, w PollWriter, p []byte) (n int, err error) {
	return drive(ctx, func(wk Waker) (int, error) { return w.PollWrite(wk, p) })
}

func drive(ctx context.Context, poll func(w Waker) (int, error)) (n int, err error) {
	var early error
	err = Drive(ctx, func(w Waker) error {
		var e error
		n, e = poll(w)
		if n > 0 && e == ErrWouldBlock {
			early = e
			return nil
		}
		return e
	})
	if err == nil && early != nil {
		err = early
	}
	return n, err
}
