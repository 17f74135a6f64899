// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package partial_test

import (
	"testing"

	"go.uber.org/zap"

	"code.hybscloud.com/partial"
)

func TestHelpers_SetLoggerAndName(t *testing.T) {
	var o partial.Options
	l := zap.NewExample()
	partial.WithLogger(l)(&o)
	if o.Logger != l {
		t.Fatalf("Logger not set")
	}
	if o.Name != "" {
		t.Fatalf("Name changed: %q", o.Name)
	}
	partial.WithName("conn")(&o)
	if o.Name != "conn" || o.Logger != l {
		t.Fatalf("helpers do not compose: %+v", o)
	}
}

func TestHelpers_NilLoggerIsSilent(t *testing.T) {
	r := partial.NewReader(endless{}, []partial.Op{partial.Limited(1)}, partial.WithLogger(nil), partial.WithName("x"))
	if n, err := r.Read(make([]byte, 4)); n != 1 || err != nil {
		t.Fatalf("Read = %d, %v", n, err)
	}
}
