// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package partial_test

import (
	"bytes"
	"testing"

	"code.hybscloud.com/iox"

	"code.hybscloud.com/partial"
)

func TestIOX_CopyPolicyReturnsOnScriptedWouldBlock(t *testing.T) {
	src := partial.NewReader(bytes.NewReader([]byte("0123456789")),
		[]partial.Op{partial.Limited(3), partial.WouldBlock(), partial.Unlimited()})
	dst := &sliceWriter{}

	n, err := iox.CopyPolicy(dst, src, iox.ReturnPolicy{})
	if n != 3 || err != iox.ErrWouldBlock {
		t.Fatalf("first copy = %d, %v want 3, ErrWouldBlock", n, err)
	}
	n, err = iox.CopyPolicy(dst, src, iox.ReturnPolicy{})
	if n != 7 || err != nil {
		t.Fatalf("second copy = %d, %v want 7, nil", n, err)
	}
	if string(dst.data) != "0123456789" {
		t.Fatalf("dst = %q", dst.data)
	}
}

func TestIOX_CopyCompletesShortWrites(t *testing.T) {
	src := &countingReader{data: []byte("0123456789")}
	dst := &sliceWriter{}
	w := partial.NewWriter(dst, []partial.Op{partial.Limited(4), partial.Limited(1)})

	n, err := iox.CopyPolicy(w, src, iox.ReturnPolicy{})
	if n != 10 || err != nil {
		t.Fatalf("copy = %d, %v", n, err)
	}
	if string(dst.data) != "0123456789" || dst.calls != 3 {
		t.Fatalf("dst = %q calls=%d", dst.data, dst.calls)
	}
}

func TestIOX_SentinelsAreShared(t *testing.T) {
	if partial.ErrWouldBlock != iox.ErrWouldBlock || partial.ErrMore != iox.ErrMore {
		t.Fatalf("sentinels must be the iox values")
	}
	if partial.WouldBlock().Err() != iox.ErrWouldBlock {
		t.Fatalf("WouldBlock op does not surface iox.ErrWouldBlock")
	}
}
