// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package partial

// Plan is an ordered sequence of ops plus a cursor.
//
// The cursor advances exactly one position per Next call and never rewinds.
// Once the ops are exhausted, Next keeps returning Unlimited, so a wrapper
// reverts to transparent pass-through. A Plan is replayable: the same ops and
// the same sequence of calls always produce the same outcomes.
//
// A Plan is not safe for concurrent use.
type Plan struct {
	ops []Op
	pos int
}

// NewPlan returns a plan over a private copy of ops.
// Zero ops mean “always pass through”.
func NewPlan(ops ...Op) *Plan {
	return &Plan{ops: append([]Op(nil), ops...)}
}

// Next returns the op at the cursor and advances it. At or past the end it
// returns Unlimited and leaves the cursor in place.
func (p *Plan) Next() Op {
	if p.pos >= len(p.ops) {
		return Unlimited()
	}
	op := p.ops[p.pos]
	p.pos++
	return op
}

// Len returns the number of scripted ops.
func (p *Plan) Len() int { return len(p.ops) }

// Consumed returns how many scripted ops Next has handed out.
func (p *Plan) Consumed() int { return p.pos }

// Remaining returns how many scripted ops are left.
func (p *Plan) Remaining() int { return len(p.ops) - p.pos }

// Exhausted reports whether every further Next yields Unlimited.
func (p *Plan) Exhausted() bool { return p.pos >= len(p.ops) }

// Ops returns a copy of the scripted ops, consumed or not.
func (p *Plan) Ops() []Op { return append([]Op(nil), p.ops...) }

func (p *Plan) String() string { return FormatOps(p.ops) }
