// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package gen produces random partial plans and shrinks failing ones.
//
// It is the narrow seam between package partial and a property-based testing
// framework: Generate and Shrink work with any framework (or none, see
// Minimize), and Op/Plan plug directly into pgregory.net/rapid.
//
// Shrinking always moves toward shorter plans and toward Unlimited ops or
// larger caps, i.e. toward “less hostile” I/O, so a minimized plan names the
// few interruptions a consumer actually fails on.
package gen

import (
	"math/rand/v2"

	"code.hybscloud.com/partial"
)

const (
	// DefaultMaxLen bounds the length of generated plans.
	DefaultMaxLen = 16

	// DefaultMaxLimit bounds the cap of generated Limited ops.
	DefaultMaxLimit = 64
)

// Config bounds generated plans. The zero Config generates only empty plans;
// start from Default.
type Config struct {
	// MaxLen is the maximum plan length.
	MaxLen int

	// MaxLimit is the maximum cap of a Limited op. Shrinking raises caps up
	// to MaxLimit and no further.
	MaxLimit int

	// Errors are the errors Err ops are drawn from. Empty means no Err ops.
	Errors []error

	// WouldBlock enables WouldBlock ops.
	WouldBlock bool
}

// Default returns a Config with DefaultMaxLen, DefaultMaxLimit, interrupted
// errors and WouldBlock ops.
func Default() Config {
	return Config{
		MaxLen:     DefaultMaxLen,
		MaxLimit:   DefaultMaxLimit,
		Errors:     []error{partial.ErrInterrupted},
		WouldBlock: true,
	}
}

func (c Config) normalized() Config {
	if c.MaxLen < 0 {
		c.MaxLen = 0
	}
	if c.MaxLimit < 0 {
		c.MaxLimit = 0
	}
	return c
}

// kinds returns the number of op kinds c can draw from. Index 0 is
// Unlimited and index 1 is Limited; WouldBlock and Err follow when enabled.
func (c Config) kinds() int {
	k := 2
	if c.WouldBlock {
		k++
	}
	if len(c.Errors) > 0 {
		k++
	}
	return k
}

// op maps a kind index and two free draws to an op.
func (c Config) op(kind, capDraw, errDraw int) partial.Op {
	switch kind {
	case 0:
		return partial.Unlimited()
	case 1:
		return partial.Limited(capDraw)
	case 2:
		if c.WouldBlock {
			return partial.WouldBlock()
		}
	}
	return partial.Err(c.Errors[errDraw])
}

// Generate returns a random plan of length at most min(size, MaxLen) with
// caps in [0, MaxLimit]. Equal rng states yield equal plans.
func (c Config) Generate(rng *rand.Rand, size int) []partial.Op {
	c = c.normalized()
	maxLen := min(size, c.MaxLen)
	if maxLen <= 0 {
		return nil
	}
	n := rng.IntN(maxLen + 1)
	ops := make([]partial.Op, n)
	for i := range ops {
		errDraw := 0
		if len(c.Errors) > 0 {
			errDraw = rng.IntN(len(c.Errors))
		}
		ops[i] = c.op(rng.IntN(c.kinds()), rng.IntN(c.MaxLimit+1), errDraw)
	}
	return ops
}

// Generate is Default().Generate.
func Generate(rng *rand.Rand, size int) []partial.Op {
	return Default().Generate(rng, size)
}
