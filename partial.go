// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package partial wraps byte streams so that every Read and Write follows a
// script of partial progress, transient errors and “not ready” signals.
//
// Semantics and design:
//   - Script: a Plan is an ordered list of Ops consumed one per intercepted call.
//     Limited(n) caps the bytes handed to the inner stream, Unlimited passes the
//     call through, Err and WouldBlock fail the call without touching the inner
//     stream. Once the plan is exhausted the wrapper is a transparent pass-through.
//   - Drop-in: Reader and Writer implement io.Reader and io.Writer; AsyncReader
//     and AsyncWriter implement the poll contract (PollReader, PollWriter). A
//     wrapper never fabricates bytes and never claims more progress than the
//     inner stream reports.
//   - Non-intervention: every scripted error and every inner error is returned
//     verbatim. (0, nil) is passed through and is never turned into io.EOF.
//     Retrying is the job of the code under test.
//   - Non-blocking semantics: WouldBlock surfaces as iox.ErrWouldBlock
//     (re-exposed as partial.ErrWouldBlock). Under the poll contract the wrapper
//     calls Waker.Wake before returning it, so the caller is polled again.
//
// Wrappers are single-owner values and are not safe for concurrent use.
// Random plans and plan shrinking for property tests live in package gen.
package partial

import (
	"io"
)

// NewReader returns a Reader that reads from r following ops.
func NewReader(r io.Reader, ops []Op, opts ...Option) *Reader {
	return &Reader{rd: r, s: newScript(ops, opts...)}
}

// NewWriter returns a Writer that writes to w following ops.
func NewWriter(w io.Writer, ops []Op, opts ...Option) *Writer {
	return &Writer{wr: w, s: newScript(ops, opts...)}
}

// NewReadWriter returns a ReadWriter over rw with independent read and write
// plans.
func NewReadWriter(rw io.ReadWriter, readOps, writeOps []Op, opts ...Option) *ReadWriter {
	return &ReadWriter{
		Reader: NewReader(rw, readOps, opts...),
		Writer: NewWriter(rw, writeOps, opts...),
	}
}

// Reader scripts the reads of an inner io.Reader.
//
// Reader deliberately does not implement io.WriterTo: copy helpers would take
// the fast path and bypass the plan.
type Reader struct {
	rd io.Reader
	s  script
}

// Read consults the next op and then reads from the inner reader:
//   - Limited(n): reads into p[:min(n, len(p))] and returns the inner result.
//   - Unlimited: reads into p.
//   - Err(e): returns (0, e) without calling the inner reader.
//   - WouldBlock: returns (0, ErrWouldBlock) without calling the inner reader.
//
// An op is consumed even when len(p) == 0.
func (r *Reader) Read(p []byte) (int, error) {
	if r.rd == nil {
		return 0, ErrInvalidArgument
	}
	op := r.s.next(callRead, len(p))
	if err := op.Err(); err != nil {
		return 0, err
	}
	return r.rd.Read(p[:op.limit(len(p))])
}

// SetOps replaces the plan with a fresh one over ops.
func (r *Reader) SetOps(ops ...Op) *Reader {
	r.s.reset(ops)
	return r
}

// Plan returns the live plan. Its cursor reflects the calls made so far.
func (r *Reader) Plan() *Plan { return r.s.plan }

// Inner returns the wrapped reader.
func (r *Reader) Inner() io.Reader { return r.rd }

// Close closes the inner reader when it is an io.Closer and is a no-op
// otherwise. Close is not scripted: it never consumes an op.
func (r *Reader) Close() error { return closeInner(r.rd) }

func (r *Reader) String() string { return r.s.describe("Reader", r.rd) }

// Writer scripts the writes of an inner io.Writer.
//
// Writer deliberately does not implement io.ReaderFrom.
type Writer struct {
	wr io.Writer
	s  script
}

// Write consults the next op and then writes to the inner writer:
//   - Limited(n): writes p[:min(n, len(p))] and returns the inner result.
//   - Unlimited: writes p.
//   - Err(e): returns (0, e) without calling the inner writer.
//   - WouldBlock: returns (0, ErrWouldBlock) without calling the inner writer.
//
// A short count without an error is returned as-is; unlike a plain io.Writer
// the wrapper does not promote it to io.ErrShortWrite, because a truncated
// write is exactly what it simulates.
func (w *Writer) Write(p []byte) (int, error) {
	if w.wr == nil {
		return 0, ErrInvalidArgument
	}
	op := w.s.next(callWrite, len(p))
	if err := op.Err(); err != nil {
		return 0, err
	}
	return w.wr.Write(p[:op.limit(len(p))])
}

// Flush is an intercepted call: it consumes one op. Err and WouldBlock ops
// fail it; any other op flushes the inner writer when it has a
// Flush() error method, and is a no-op otherwise.
func (w *Writer) Flush() error {
	if w.wr == nil {
		return ErrInvalidArgument
	}
	op := w.s.next(callFlush, 0)
	if err := op.Err(); err != nil {
		return err
	}
	if f, ok := w.wr.(interface{ Flush() error }); ok {
		return f.Flush()
	}
	return nil
}

// SetOps replaces the plan with a fresh one over ops.
func (w *Writer) SetOps(ops ...Op) *Writer {
	w.s.reset(ops)
	return w
}

// Plan returns the live plan. Its cursor reflects the calls made so far.
func (w *Writer) Plan() *Plan { return w.s.plan }

// Inner returns the wrapped writer.
func (w *Writer) Inner() io.Writer { return w.wr }

// Close closes the inner writer when it is an io.Closer and is a no-op
// otherwise. Close is not scripted: it never consumes an op.
func (w *Writer) Close() error { return closeInner(w.wr) }

func (w *Writer) String() string { return w.s.describe("Writer", w.wr) }

// ReadWriter groups Reader and Writer. The two directions consume separate
// plans; reach Plan, SetOps and Inner through the embedded fields.
type ReadWriter struct {
	*Reader
	*Writer
}

// Close closes the shared inner stream once. It never consumes an op.
func (rw *ReadWriter) Close() error { return rw.Writer.Close() }

func (rw *ReadWriter) String() string {
	return "partial.ReadWriter{" + rw.Reader.String() + ", " + rw.Writer.String() + "}"
}

func closeInner(v any) error {
	if v == nil {
		return ErrInvalidArgument
	}
	if c, ok := v.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
