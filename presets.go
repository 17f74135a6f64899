// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package partial

import (
	"fmt"
	"sort"
)

// Named plan profiles.
//
// Single source of truth, preset name → plan shape for n steps:
//   - trickle  → Limited(1) × n               // one byte per call
//   - stall    → Limited(0) × n               // no progress, no error
//   - stutter  → (WouldBlock, Limited(1)) × n // not-ready before every byte
//   - flaky    → (Interrupted, Unlimited) × n // every other call interrupted
//   - halves   → Limited(2^k) for k = n-1..0  // shrinking windows
//
// A preset never ends in a failing op, so once it is exhausted the wrapper
// passes through and a retrying caller always completes.

type presetKind uint8

const (
	presetTrickle presetKind = iota
	presetStall
	presetStutter
	presetFlaky
	presetHalves
)

var presetNames = map[string]presetKind{
	"trickle": presetTrickle,
	"stall":   presetStall,
	"stutter": presetStutter,
	"flaky":   presetFlaky,
	"halves":  presetHalves,
}

func opsFor(kind presetKind, n int) []Op {
	if n <= 0 {
		return nil
	}
	switch kind {
	case presetStall:
		return repeat(n, Limited(0))
	case presetStutter:
		return repeat(n, WouldBlock(), Limited(1))
	case presetFlaky:
		return repeat(n, Interrupted(), Unlimited())
	case presetHalves:
		if n > 30 {
			n = 30
		}
		ops := make([]Op, 0, n)
		for k := n - 1; k >= 0; k-- {
			ops = append(ops, Limited(1<<k))
		}
		return ops
	default:
		return repeat(n, Limited(1))
	}
}

func repeat(n int, unit ...Op) []Op {
	ops := make([]Op, 0, n*len(unit))
	for range n {
		ops = append(ops, unit...)
	}
	return ops
}

// Trickle returns n Limited(1) ops.
func Trickle(n int) []Op { return opsFor(presetTrickle, n) }

// Stall returns n Limited(0) ops.
func Stall(n int) []Op { return opsFor(presetStall, n) }

// Stutter returns n (WouldBlock, Limited(1)) pairs.
func Stutter(n int) []Op { return opsFor(presetStutter, n) }

// Flaky returns n (Interrupted, Unlimited) pairs.
func Flaky(n int) []Op { return opsFor(presetFlaky, n) }

// Halves returns Limited(2^(n-1)), ..., Limited(1). n is capped at 30.
func Halves(n int) []Op { return opsFor(presetHalves, n) }

// Preset returns the named profile for n steps.
func Preset(name string, n int) ([]Op, error) {
	kind, ok := presetNames[name]
	if !ok {
		return nil, fmt.Errorf("%w: unknown preset %q", ErrInvalidArgument, name)
	}
	return opsFor(kind, n), nil
}

// PresetNames returns the known preset names in sorted order.
func PresetNames() []string {
	names := make([]string, 0, len(presetNames))
	for name := range presetNames {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
