// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package partial

import (
	"io"
)

// Waker reschedules a parked task.
//
// Whoever returns ErrWouldBlock from a poll call is responsible for making sure
// Wake is eventually called on the waker it was handed; otherwise the task is
// never polled again.
type Waker interface {
	Wake()
}

// WakerFunc adapts a function to Waker.
type WakerFunc func()

func (f WakerFunc) Wake() { f() }

// PollReader is the non-blocking counterpart of io.Reader.
//
// PollRead returns one of:
//   - (n, nil): ready; n may be 0 (zero progress is not an error and is not
//     end of stream)
//   - (n, err): ready with an error; n counts bytes read before it
//   - (0, ErrWouldBlock): not ready; w will be woken when it may be
type PollReader interface {
	PollRead(w Waker, p []byte) (n int, err error)
}

// PollWriter is the non-blocking counterpart of io.Writer. Results follow
// PollReader.
type PollWriter interface {
	PollWrite(w Waker, p []byte) (n int, err error)
}

// PollFlusher is optionally implemented by PollWriters with buffered state.
type PollFlusher interface {
	PollFlush(w Waker) error
}

// PollShutdowner is optionally implemented by PollWriters that can be shut
// down, the non-blocking counterpart of io.Closer.
type PollShutdowner interface {
	PollShutdown(w Waker) error
}

// PollReaderFunc adapts a function to PollReader.
type PollReaderFunc func(w Waker, p []byte) (int, error)

func (f PollReaderFunc) PollRead(w Waker, p []byte) (int, error) { return f(w, p) }

// PollWriterFunc adapts a function to PollWriter.
type PollWriterFunc func(w Waker, p []byte) (int, error)

func (f PollWriterFunc) PollWrite(w Waker, p []byte) (int, error) { return f(w, p) }

// NewAsyncReader returns an AsyncReader that polls r following ops.
func NewAsyncReader(r PollReader, ops []Op, opts ...Option) *AsyncReader {
	return &AsyncReader{rd: r, s: newScript(ops, opts...)}
}

// NewAsyncWriter returns an AsyncWriter that polls w following ops.
func NewAsyncWriter(w PollWriter, ops []Op, opts ...Option) *AsyncWriter {
	return &AsyncWriter{wr: w, s: newScript(ops, opts...)}
}

// AsyncReader scripts the polls of an inner PollReader.
type AsyncReader struct {
	rd PollReader
	s  script
}

// PollRead applies the same op rules as Reader.Read. For a WouldBlock op it
// calls w.Wake before returning (0, ErrWouldBlock): the not-ready is synthetic
// and nothing else would ever reschedule the caller.
//
// A nil waker is rejected with ErrInvalidArgument before any op is consumed.
func (r *AsyncReader) PollRead(w Waker, p []byte) (int, error) {
	if r.rd == nil || w == nil {
		return 0, ErrInvalidArgument
	}
	op := r.s.next(callPollRead, len(p))
	if err := pollErr(op, w); err != nil {
		return 0, err
	}
	return r.rd.PollRead(w, p[:op.limit(len(p))])
}

// SetOps replaces the plan with a fresh one over ops.
func (r *AsyncReader) SetOps(ops ...Op) *AsyncReader {
	r.s.reset(ops)
	return r
}

// Plan returns the live plan.
func (r *AsyncReader) Plan() *Plan { return r.s.plan }

// Inner returns the wrapped PollReader.
func (r *AsyncReader) Inner() PollReader { return r.rd }

func (r *AsyncReader) String() string { return r.s.describe("AsyncReader", r.rd) }

// AsyncWriter scripts the polls of an inner PollWriter.
type AsyncWriter struct {
	wr PollWriter
	s  script
}

// PollWrite applies the same op rules as Writer.Write, waking w before a
// scripted not-ready.
func (aw *AsyncWriter) PollWrite(w Waker, p []byte) (int, error) {
	if aw.wr == nil || w == nil {
		return 0, ErrInvalidArgument
	}
	op := aw.s.next(callPollWrite, len(p))
	if err := pollErr(op, w); err != nil {
		return 0, err
	}
	return aw.wr.PollWrite(w, p[:op.limit(len(p))])
}

// PollFlush consumes one op like Writer.Flush. Err and WouldBlock ops fail it
// (waking w for the latter); otherwise it forwards to the inner PollFlusher
// when there is one.
func (aw *AsyncWriter) PollFlush(w Waker) error {
	if aw.wr == nil || w == nil {
		return ErrInvalidArgument
	}
	op := aw.s.next(callPollFlush, 0)
	if err := pollErr(op, w); err != nil {
		return err
	}
	if f, ok := aw.wr.(PollFlusher); ok {
		return f.PollFlush(w)
	}
	return nil
}

// PollShutdown forwards to the inner PollShutdowner when there is one and
// reports ready otherwise. It is not scripted and never consumes an op.
func (aw *AsyncWriter) PollShutdown(w Waker) error {
	if aw.wr == nil || w == nil {
		return ErrInvalidArgument
	}
	if sd, ok := aw.wr.(PollShutdowner); ok {
		return sd.PollShutdown(w)
	}
	return nil
}

// SetOps replaces the plan with a fresh one over ops.
func (aw *AsyncWriter) SetOps(ops ...Op) *AsyncWriter {
	aw.s.reset(ops)
	return aw
}

// Plan returns the live plan.
func (aw *AsyncWriter) Plan() *Plan { return aw.s.plan }

// Inner returns the wrapped PollWriter.
func (aw *AsyncWriter) Inner() PollWriter { return aw.wr }

func (aw *AsyncWriter) String() string { return aw.s.describe("AsyncWriter", aw.wr) }

// pollErr returns the scripted error of op, if any, arranging the wake for a
// scripted not-ready first.
func pollErr(op Op, w Waker) error {
	switch op.Kind() {
	case KindWouldBlock:
		w.Wake()
		return ErrWouldBlock
	case KindError:
		return op.Err()
	default:
		return nil
	}
}

// FromReader adapts an iox-style non-blocking io.Reader, one that returns
// ErrWouldBlock when not ready, to PollReader.
//
// Such a reader has no readiness notification, so the adapter wakes the caller
// immediately whenever r reports ErrWouldBlock; the caller busy-polls.
func FromReader(r io.Reader) PollReader {
	return PollReaderFunc(func(w Waker, p []byte) (int, error) {
		n, err := r.Read(p)
		if err == ErrWouldBlock {
			w.Wake()
		}
		return n, err
	})
}

// FromWriter adapts an iox-style non-blocking io.Writer to PollWriter, waking
// immediately on ErrWouldBlock like FromReader. The result is also a
// PollShutdowner that closes wr when it is an io.Closer.
func FromWriter(wr io.Writer) PollWriter {
	return ioPollWriter{wr: wr}
}

type ioPollWriter struct {
	wr io.Writer
}

func (a ioPollWriter) PollWrite(w Waker, p []byte) (int, error) {
	n, err := a.wr.Write(p)
	if err == ErrWouldBlock {
		w.Wake()
	}
	return n, err
}

func (a ioPollWriter) PollShutdown(w Waker) error {
	err := closeInner(a.wr)
	if err == ErrWouldBlock {
		w.Wake()
	}
	return err
}
