// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package partial_test

import (
	"bytes"
	"io"
	"slices"
	"testing"

	"code.hybscloud.com/partial"
)

func TestPresets_Shapes(t *testing.T) {
	cases := []struct {
		name string
		ops  []partial.Op
		want string
	}{
		{"trickle", partial.Trickle(3), "limited(1),limited(1),limited(1)"},
		{"stall", partial.Stall(2), "limited(0),limited(0)"},
		{"stutter", partial.Stutter(2), "wouldblock,limited(1),wouldblock,limited(1)"},
		{"flaky", partial.Flaky(2), "interrupted,unlimited,interrupted,unlimited"},
		{"halves", partial.Halves(4), "limited(8),limited(4),limited(2),limited(1)"},
	}
	for _, tc := range cases {
		if got := partial.FormatOps(tc.ops); got != tc.want {
			t.Fatalf("%s = %q want %q", tc.name, got, tc.want)
		}
		byName, err := partial.Preset(tc.name, 2)
		if err != nil {
			t.Fatalf("Preset(%q): %v", tc.name, err)
		}
		if len(byName) == 0 {
			t.Fatalf("Preset(%q) empty", tc.name)
		}
	}
}

func TestPresets_NonPositiveIsEmpty(t *testing.T) {
	for _, name := range partial.PresetNames() {
		ops, err := partial.Preset(name, 0)
		if err != nil || len(ops) != 0 {
			t.Fatalf("Preset(%q, 0) = %v, %v", name, ops, err)
		}
	}
}

func TestPresets_HalvesCapped(t *testing.T) {
	ops := partial.Halves(100)
	if len(ops) != 30 || ops[0].N() != 1<<29 {
		t.Fatalf("len=%d first=%v", len(ops), ops[0])
	}
}

func TestPresetNames_Sorted(t *testing.T) {
	names := partial.PresetNames()
	if !slices.IsSorted(names) || len(names) != 5 {
		t.Fatalf("names = %v", names)
	}
}

func TestPresets_RetryingReaderCompletes(t *testing.T) {
	data := []byte("presets never end in a failing op")
	for _, name := range partial.PresetNames() {
		ops, _ := partial.Preset(name, 8)
		r := partial.NewReader(bytes.NewReader(data), ops)
		var got []byte
		buf := make([]byte, 5)
		for {
			n, err := r.Read(buf)
			got = append(got, buf[:n]...)
			if err == io.EOF {
				break
			}
			if err != nil && !partial.IsRetryable(err) {
				t.Fatalf("%s: %v", name, err)
			}
		}
		if !bytes.Equal(got, data) {
			t.Fatalf("%s: got %q", name, got)
		}
	}
}
