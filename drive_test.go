// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package partial_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"code.hybscloud.com/partial"
)

func TestDrive_MissingWakeTimesOut(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	sp := &silentPoller{}
	_, err := partial.DriveRead(ctx, sp, make([]byte, 1))
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("err = %v want DeadlineExceeded", err)
	}
	if sp.polls != 1 {
		t.Fatalf("polled %d times without a wake", sp.polls)
	}
}

func TestDrive_ScriptedWouldBlockCompletes(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	data := []byte("stutter through every byte")
	src := partial.FromReader(bytes.NewReader(data))
	r := partial.NewAsyncReader(src, partial.Stutter(len(data)))

	var got []byte
	buf := make([]byte, 8)
	for {
		n, err := partial.DriveRead(ctx, r, buf)
		got = append(got, buf[:n]...)
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			t.Fatalf("DriveRead: %v", err)
		}
	}
	if !bytes.Equal(got, data) {
		t.Fatalf("got %q", got)
	}
}

func TestDriveWrite_AllBytes(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	inner := &readyWriter{}
	w := partial.NewAsyncWriter(inner, []partial.Op{
		partial.WouldBlock(), partial.Limited(1), partial.WouldBlock(), partial.WouldBlock(), partial.Limited(2),
	})
	msg := []byte("partial")
	for off := 0; off < len(msg); {
		n, err := partial.DriveWrite(ctx, w, msg[off:])
		if err != nil {
			t.Fatalf("DriveWrite: %v", err)
		}
		off += n
	}
	if string(inner.data) != "partial" {
		t.Fatalf("inner got %q", inner.data)
	}
}

func TestDrive_ReturnsFirstReadyResult(t *testing.T) {
	boom := errors.New("boom")
	calls := 0
	err := partial.Drive(context.Background(), func(w partial.Waker) error {
		calls++
		if calls < 3 {
			w.Wake()
			return partial.ErrWouldBlock
		}
		return boom
	})
	if err != boom || calls != 3 {
		t.Fatalf("err=%v calls=%d", err, calls)
	}
}

func TestDrive_ProgressWithWouldBlock(t *testing.T) {
	pr := partial.PollReaderFunc(func(w partial.Waker, p []byte) (int, error) {
		return copy(p, "ab"), partial.ErrWouldBlock
	})
	n, err := partial.DriveRead(context.Background(), pr, make([]byte, 4))
	if n != 2 || err != partial.ErrWouldBlock {
		t.Fatalf("DriveRead = %d, %v", n, err)
	}
}

func TestDrive_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	called := false
	err := partial.Drive(ctx, func(partial.Waker) error { called = true; return nil })
	if !errors.Is(err, context.Canceled) || called {
		t.Fatalf("err=%v called=%v", err, called)
	}
}
