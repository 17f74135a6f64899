// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package gen

import (
	"pgregory.net/rapid"

	"code.hybscloud.com/partial"
)

// Op returns a rapid generator of single ops bounded by cfg.
//
// Draws are laid out so that rapid's own minimization (toward smaller
// integers) matches Shrink: kind 0 is Unlimited and a zero cap draw is
// Limited(MaxLimit).
func Op(cfg Config) *rapid.Generator[partial.Op] {
	cfg = cfg.normalized()
	return rapid.Custom(func(t *rapid.T) partial.Op {
		kind := rapid.IntRange(0, cfg.kinds()-1).Draw(t, "kind")
		capDraw := 0
		if kind == 1 {
			capDraw = cfg.MaxLimit - rapid.IntRange(0, cfg.MaxLimit).Draw(t, "capDeficit")
		}
		errDraw := 0
		if kind == cfg.kinds()-1 && len(cfg.Errors) > 1 {
			errDraw = rapid.IntRange(0, len(cfg.Errors)-1).Draw(t, "err")
		}
		return cfg.op(kind, capDraw, errDraw)
	})
}

// Plan returns a rapid generator of plans of length [0, MaxLen] bounded by
// cfg.
func Plan(cfg Config) *rapid.Generator[[]partial.Op] {
	cfg = cfg.normalized()
	return rapid.SliceOfN(Op(cfg), 0, cfg.MaxLen)
}
