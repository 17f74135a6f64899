// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package partial_test

import (
	"io"

	"code.hybscloud.com/partial"
)

// countingReader records every call that reaches the inner stream.
type countingReader struct {
	data  []byte
	off   int
	calls int
	lens  []int // len(p) seen per call
	last  int   // n returned by the last call
}

func (r *countingReader) Read(p []byte) (int, error) {
	r.calls++
	r.lens = append(r.lens, len(p))
	if r.off >= len(r.data) {
		r.last = 0
		if len(p) == 0 {
			return 0, nil
		}
		return 0, io.EOF
	}
	n := copy(p, r.data[r.off:])
	r.off += n
	r.last = n
	return n, nil
}

// sliceWriter accepts everything and has no ReaderFrom fast path.
type sliceWriter struct {
	data  []byte
	calls int
}

func (w *sliceWriter) Write(p []byte) (int, error) {
	w.calls++
	w.data = append(w.data, p...)
	return len(p), nil
}

// flushWriter counts Flush calls.
type flushWriter struct {
	sliceWriter
	flushes int
	err     error
}

func (w *flushWriter) Flush() error {
	w.flushes++
	return w.err
}

// errReader always fails with err.
type errReader struct{ err error }

func (e errReader) Read(p []byte) (int, error) { return 0, e.err }

// endless yields len(p) bytes on every call.
type endless struct{}

func (endless) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = 'z'
	}
	return len(p), nil
}

// wakeCounter counts wakes.
type wakeCounter struct{ n int }

func (w *wakeCounter) Wake() { w.n++ }

// silentPoller is a broken PollReader: it reports not-ready and never wakes.
type silentPoller struct{ polls int }

func (s *silentPoller) PollRead(w partial.Waker, p []byte) (int, error) {
	s.polls++
	return 0, partial.ErrWouldBlock
}
