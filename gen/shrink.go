// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package gen

import (
	"iter"

	"code.hybscloud.com/partial"
)

// Weight is the per-op magnitude shrinking decreases:
//
//	Unlimited              0
//	Limited(n), n≥MaxLimit 1
//	Limited(n), n<MaxLimit 1 + MaxLimit - n
//	WouldBlock, Err        MaxLimit + 2
func (c Config) Weight(op partial.Op) int {
	c = c.normalized()
	switch op.Kind() {
	case partial.KindUnlimited:
		return 0
	case partial.KindLimited:
		if op.N() >= c.MaxLimit {
			return 1
		}
		return 1 + c.MaxLimit - op.N()
	default:
		return c.MaxLimit + 2
	}
}

// Size returns (len(ops), Σ Weight). Every Shrink candidate is strictly
// smaller in this lexicographic order, which is well-founded, so repeated
// shrinking terminates.
func (c Config) Size(ops []partial.Op) (length, weight int) {
	for _, op := range ops {
		weight += c.Weight(op)
	}
	return len(ops), weight
}

// Shrink returns a lazy, finite sequence of candidates strictly smaller than
// ops, most aggressive first:
//  1. the empty plan
//  2. the first and second halves
//  3. ops with one element removed, for each position
//  4. ops with one element simplified: to Unlimited, to Limited(MaxLimit), or
//     halfway from its cap toward MaxLimit
//
// Each candidate is a fresh slice; ops is never modified.
func (c Config) Shrink(ops []partial.Op) iter.Seq[[]partial.Op] {
	c = c.normalized()
	return func(yield func([]partial.Op) bool) {
		n := len(ops)
		if n == 0 {
			return
		}
		if !yield([]partial.Op{}) {
			return
		}
		if n >= 2 {
			if !yield(clone(ops[:n/2])) || !yield(clone(ops[n/2:])) {
				return
			}
			for i := range ops {
				if !yield(without(ops, i)) {
					return
				}
			}
		}
		for i, op := range ops {
			for _, s := range c.simpler(op) {
				if !yield(replaced(ops, i, s)) {
					return
				}
			}
		}
	}
}

// simpler returns the ops strictly lighter than op, lightest first.
func (c Config) simpler(op partial.Op) []partial.Op {
	switch op.Kind() {
	case partial.KindUnlimited:
		return nil
	case partial.KindLimited:
		out := []partial.Op{partial.Unlimited()}
		if op.N() < c.MaxLimit {
			out = append(out, partial.Limited(c.MaxLimit))
			if mid := op.N() + (c.MaxLimit-op.N())/2; mid > op.N() && mid < c.MaxLimit {
				out = append(out, partial.Limited(mid))
			}
		}
		return out
	default:
		return []partial.Op{partial.Unlimited(), partial.Limited(c.MaxLimit)}
	}
}

// Shrink is Default().Shrink.
func Shrink(ops []partial.Op) iter.Seq[[]partial.Op] {
	return Default().Shrink(ops)
}

// Minimize greedily shrinks ops while fails keeps reporting true and returns
// the smallest failing plan found. fails(ops) is assumed true; if no
// candidate fails, ops itself is returned. Minimize terminates because every
// accepted candidate is strictly smaller by Size.
func (c Config) Minimize(ops []partial.Op, fails func([]partial.Op) bool) []partial.Op {
	cur := clone(ops)
	for {
		improved := false
		for cand := range c.Shrink(cur) {
			if fails(cand) {
				cur = cand
				improved = true
				break
			}
		}
		if !improved {
			return cur
		}
	}
}

// Minimize is Default().Minimize.
func Minimize(ops []partial.Op, fails func([]partial.Op) bool) []partial.Op {
	return Default().Minimize(ops, fails)
}

func clone(ops []partial.Op) []partial.Op {
	return append([]partial.Op{}, ops...)
}

func without(ops []partial.Op, i int) []partial.Op {
	out := make([]partial.Op, 0, len(ops)-1)
	out = append(out, ops[:i]...)
	return append(out, ops[i+1:]...)
}

func replaced(ops []partial.Op, i int, op partial.Op) []partial.Op {
	out := clone(ops)
	out[i] = op
	return out
}
