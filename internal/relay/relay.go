// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package relay copies a stream to another while surviving partial progress,
// interruptions and would-block signals without losing or duplicating bytes.
//
// It is the reference consumer for scripted streams: the loop every
// well-behaved caller of a non-blocking or interruptible io.Reader/io.Writer
// needs, and the loop partialcat runs.
package relay

import (
	"context"
	"errors"
	"io"
	"runtime"
	"time"

	"go.uber.org/zap"

	"code.hybscloud.com/partial"
)

const (
	// DefaultBufferSize is the staging buffer size.
	DefaultBufferSize = 32 * 1024

	// DefaultMaxNoProgress is how many consecutive no-progress calls are
	// tolerated on either side before giving up.
	DefaultMaxNoProgress = 100
)

// Options configures Copy.
type Options struct {
	// RetryDelay controls how Copy handles ErrWouldBlock:
	//   - negative: nonblock, return ErrWouldBlock immediately
	//   - zero: yield (runtime.Gosched) and retry
	//   - positive: sleep for the duration and retry
	// ErrInterrupted is always retried at once.
	RetryDelay time.Duration

	// MaxNoProgress bounds consecutive calls that make no progress, either
	// (0, nil) or ErrInterrupted. A reader that exceeds it fails with
	// io.ErrNoProgress, a writer with io.ErrShortWrite. Would-block waits are
	// not counted, except write-side retries under WithNonblock; bound the
	// rest with the context.
	MaxNoProgress int

	BufferSize int

	Logger *zap.Logger
}

var defaultOptions = Options{
	RetryDelay:    0,
	MaxNoProgress: DefaultMaxNoProgress,
	BufferSize:    DefaultBufferSize,
}

type Option func(*Options)

// WithRetryDelay sets the wait policy used on ErrWouldBlock.
func WithRetryDelay(d time.Duration) Option {
	return func(o *Options) { o.RetryDelay = d }
}

// WithNonblock returns a read-side ErrWouldBlock to the caller instead of
// retrying. Bytes already read are still written: a write-side would-block is
// retried at once and counts toward MaxNoProgress.
func WithNonblock() Option {
	return func(o *Options) { o.RetryDelay = -1 }
}

func WithMaxNoProgress(n int) Option {
	return func(o *Options) { o.MaxNoProgress = n }
}

func WithBufferSize(n int) Option {
	return func(o *Options) { o.BufferSize = n }
}

func WithLogger(l *zap.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

type relay struct {
	ctx        context.Context
	retryDelay time.Duration
	maxIdle    int
	log        *zap.Logger
}

// Copy copies src to dst until src reports io.EOF, a non-retryable error
// occurs or ctx is done. It returns the number of bytes written to dst.
//
// Retry rules:
//   - ErrInterrupted from either side: retry the same call.
//   - ErrWouldBlock / ErrMore from either side: keep any progress, then wait
//     per RetryDelay and retry. With a negative RetryDelay a read-side
//     ErrWouldBlock is returned instead; bytes already read are always written
//     first, so no data is lost across calls.
//   - Short writes: the remainder is written again until done.
//
// Copy never uses the io.WriterTo / io.ReaderFrom fast paths: every byte
// crosses src.Read and dst.Write.
func Copy(ctx context.Context, dst io.Writer, src io.Reader, opts ...Option) (written int64, err error) {
	if dst == nil || src == nil {
		return 0, partial.ErrInvalidArgument
	}
	o := defaultOptions
	for _, fn := range opts {
		fn(&o)
	}
	if o.BufferSize <= 0 {
		o.BufferSize = DefaultBufferSize
	}
	if o.MaxNoProgress <= 0 {
		o.MaxNoProgress = DefaultMaxNoProgress
	}
	log := o.Logger
	if log == nil {
		log = zap.NewNop()
	}

	rl := relay{ctx: ctx, retryDelay: o.RetryDelay, maxIdle: o.MaxNoProgress, log: log}
	buf := make([]byte, o.BufferSize)
	for {
		nr, er := rl.readOnce(src, buf)
		if nr > 0 {
			nw, ew := rl.writeAll(dst, buf[:nr])
			written += int64(nw)
			if ew != nil {
				return written, ew
			}
		}
		if er == io.EOF {
			return written, nil
		}
		if er != nil {
			return written, er
		}
	}
}

// wait reports whether the caller should retry after a would-block.
func (rl *relay) wait() (bool, error) {
	if rl.retryDelay < 0 {
		return false, nil
	}
	if rl.retryDelay == 0 {
		runtime.Gosched()
		return true, rl.ctx.Err()
	}
	t := time.NewTimer(rl.retryDelay)
	defer t.Stop()
	select {
	case <-t.C:
		return true, nil
	case <-rl.ctx.Done():
		return false, rl.ctx.Err()
	}
}

// readOnce reads until it gets progress, io.EOF or a non-retryable error.
// Progress delivered with a retryable error is returned as plain progress.
func (rl *relay) readOnce(src io.Reader, p []byte) (int, error) {
	idle := 0
	for {
		if err := rl.ctx.Err(); err != nil {
			return 0, err
		}
		n, err := src.Read(p)
		if n > 0 {
			if isSoft(err) || errors.Is(err, partial.ErrInterrupted) {
				err = nil
			}
			return n, err
		}
		switch {
		case err == nil || errors.Is(err, partial.ErrInterrupted):
			idle++
			if idle >= rl.maxIdle {
				return 0, io.ErrNoProgress
			}
			if err != nil {
				rl.log.Debug("relay: read interrupted, retrying")
			}
		case isSoft(err):
			rl.log.Debug("relay: read would block", zap.Error(err))
			retry, werr := rl.wait()
			if werr != nil {
				return 0, werr
			}
			if !retry {
				return 0, err
			}
		default:
			return 0, err
		}
	}
}

// writeAll writes p in as many calls as it takes. Under WithNonblock a
// would-block is still retried: the bytes are already out of src and
// returning would drop them.
func (rl *relay) writeAll(dst io.Writer, p []byte) (int, error) {
	off, idle := 0, 0
	for off < len(p) {
		if err := rl.ctx.Err(); err != nil {
			return off, err
		}
		n, err := dst.Write(p[off:])
		off += n
		if n > 0 {
			idle = 0
		}
		switch {
		case err == nil || errors.Is(err, partial.ErrInterrupted):
			if n == 0 {
				idle++
				if idle >= rl.maxIdle {
					return off, io.ErrShortWrite
				}
			}
			if err != nil {
				rl.log.Debug("relay: write interrupted, retrying", zap.Int("pending", len(p)-off))
			}
		case isSoft(err):
			rl.log.Debug("relay: write would block", zap.Int("pending", len(p)-off), zap.Error(err))
			if rl.retryDelay < 0 {
				if n == 0 {
					idle++
					if idle >= rl.maxIdle {
						return off, io.ErrShortWrite
					}
				}
				runtime.Gosched()
				continue
			}
			if _, werr := rl.wait(); werr != nil {
				return off, werr
			}
		default:
			return off, err
		}
	}
	return off, nil
}

func isSoft(err error) bool {
	return err == partial.ErrWouldBlock || err == partial.ErrMore
}
