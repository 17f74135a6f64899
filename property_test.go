// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package partial_test

import (
	"bytes"
	"io"
	"testing"

	"pgregory.net/rapid"

	"code.hybscloud.com/partial"
	"code.hybscloud.com/partial/gen"
)

// readAllRetrying reads r to EOF, retrying every retryable error.
func readAllRetrying(t *rapid.T, r io.Reader, bufLen int) []byte {
	var out []byte
	buf := make([]byte, bufLen)
	for {
		n, err := r.Read(buf)
		out = append(out, buf[:n]...)
		switch {
		case err == nil:
		case err == io.EOF:
			return out
		case partial.IsRetryable(err):
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
}

func TestProperty_ReadIntegrity(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		data := rapid.SliceOfN(rapid.Byte(), 0, 512).Draw(t, "data")
		ops := gen.Plan(gen.Default()).Draw(t, "ops")
		bufLen := rapid.IntRange(1, 128).Draw(t, "bufLen")

		got := readAllRetrying(t, partial.NewReader(bytes.NewReader(data), ops), bufLen)
		if !bytes.Equal(got, data) {
			t.Fatalf("read %d bytes, want %d", len(got), len(data))
		}
	})
}

func TestProperty_WriteIntegrity(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		data := rapid.SliceOfN(rapid.Byte(), 0, 512).Draw(t, "data")
		ops := gen.Plan(gen.Default()).Draw(t, "ops")

		inner := &sliceWriter{}
		w := partial.NewWriter(inner, ops)
		for off := 0; off < len(data); {
			n, err := w.Write(data[off:])
			if n < 0 || n > len(data)-off {
				t.Fatalf("n=%d out of range", n)
			}
			off += n
			if err != nil && !partial.IsRetryable(err) {
				t.Fatalf("unexpected error: %v", err)
			}
		}
		if !bytes.Equal(inner.data, data) {
			t.Fatalf("inner got %d bytes, want %d", len(inner.data), len(data))
		}
	})
}

func TestProperty_LimitedBoundsEachCall(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		ops := gen.Plan(gen.Default()).Draw(t, "ops")
		bufLen := rapid.IntRange(0, 128).Draw(t, "bufLen")
		r := partial.NewReader(endless{}, ops)
		buf := make([]byte, bufLen)

		for i, op := range ops {
			n, err := r.Read(buf)
			switch op.Kind() {
			case partial.KindLimited:
				if want := min(op.N(), bufLen); n != want || err != nil {
					t.Fatalf("call %d %v: got %d, %v want %d", i, op, n, err, want)
				}
			case partial.KindUnlimited:
				if n != bufLen || err != nil {
					t.Fatalf("call %d %v: got %d, %v", i, op, n, err)
				}
			default:
				if n != 0 || err != op.Err() {
					t.Fatalf("call %d %v: got %d, %v", i, op, n, err)
				}
			}
			if r.Plan().Consumed() != i+1 {
				t.Fatalf("cursor %d after %d calls", r.Plan().Consumed(), i+1)
			}
		}
		if n, err := r.Read(buf); n != bufLen || err != nil || r.Plan().Consumed() != len(ops) {
			t.Fatalf("after plan: %d, %v consumed=%d", n, err, r.Plan().Consumed())
		}
	})
}

func TestProperty_AsyncWakesOnEveryNotReady(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		ops := gen.Plan(gen.Default()).Draw(t, "ops")
		r := partial.NewAsyncReader(readyPoller{}, ops)
		wk := &wakeCounter{}
		buf := make([]byte, 16)

		notReady := 0
		for range ops {
			if _, err := r.PollRead(wk, buf); err == partial.ErrWouldBlock {
				notReady++
			}
		}
		if wk.n != notReady {
			t.Fatalf("wakes=%d not-ready=%d", wk.n, notReady)
		}
	})
}
