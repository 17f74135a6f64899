// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package partial

import (
	"fmt"

	"go.uber.org/zap"
)

// call names used in log entries
const (
	callRead      = "read"
	callWrite     = "write"
	callFlush     = "flush"
	callPollRead  = "poll_read"
	callPollWrite = "poll_write"
	callPollFlush = "poll_flush"
)

// script is the state shared by every wrapper: the plan cursor and the trace
// logger. One script serves exactly one direction of one wrapper.
type script struct {
	plan *Plan
	log  *zap.Logger
}

func newScript(ops []Op, opts ...Option) script {
	o := defaultOptions
	for _, fn := range opts {
		fn(&o)
	}

	log := o.Logger
	if log == nil {
		log = zap.NewNop()
	}
	if o.Name != "" {
		log = log.With(zap.String("stream", o.Name))
	}
	return script{plan: NewPlan(ops...), log: log}
}

func (s *script) reset(ops []Op) {
	s.plan = NewPlan(ops...)
}

// next consumes one op for an intercepted call requesting l bytes.
func (s *script) next(call string, l int) Op {
	seq := s.plan.Consumed()
	scripted := !s.plan.Exhausted()
	op := s.plan.Next()
	if ce := s.log.Check(zap.DebugLevel, "partial: intercept"); ce != nil {
		ce.Write(
			zap.String("call", call),
			zap.Int("seq", seq),
			zap.Bool("scripted", scripted),
			zap.Stringer("op", op),
			zap.Int("requested", l),
		)
	}
	return op
}

// describe names a wrapper by its inner stream's type and its cursor.
func (s *script) describe(wrapper string, inner any) string {
	return fmt.Sprintf("partial.%s(%T, op %d/%d)", wrapper, inner, s.plan.Consumed(), s.plan.Len())
}
