// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package partial

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Kind classifies an Op.
//
// The zero Kind is Unlimited, so the zero Op is a pass-through.
type Kind uint8

const (
	KindUnlimited Kind = iota
	KindLimited
	KindError
	KindWouldBlock
)

func (k Kind) String() string {
	switch k {
	case KindUnlimited:
		return "Unlimited"
	case KindLimited:
		return "Limited"
	case KindError:
		return "Error"
	case KindWouldBlock:
		return "WouldBlock"
	default:
		return "Kind(unknown)"
	}
}

// Op describes the outcome of one intercepted call.
//
// Ops are immutable values. Construct them with Limited, Unlimited, Err,
// Interrupted or WouldBlock.
type Op struct {
	kind Kind
	n    int
	err  error
}

// Limited allows at most n bytes of the caller's request through. n may be
// zero: the call then makes no progress without failing.
// Limited panics if n is negative.
func Limited(n int) Op {
	if n < 0 {
		panic("partial: negative limit")
	}
	return Op{kind: KindLimited, n: n}
}

// Unlimited passes the call through uncapped.
func Unlimited() Op { return Op{} }

// WouldBlock reports “not ready” without touching the inner stream.
func WouldBlock() Op { return Op{kind: KindWouldBlock} }

// Interrupted fails the call with ErrInterrupted without touching the inner
// stream.
func Interrupted() Op { return Op{kind: KindError, err: ErrInterrupted} }

// Err fails the call with err, returned verbatim, without touching the inner
// stream. Err(ErrWouldBlock) is the same as WouldBlock().
// Err panics if err is nil.
func Err(err error) Op {
	if err == nil {
		panic("partial: nil error op")
	}
	if err == ErrWouldBlock {
		return WouldBlock()
	}
	return Op{kind: KindError, err: err}
}

func (o Op) Kind() Kind { return o.kind }

// N returns the byte cap of a Limited op and zero otherwise.
func (o Op) N() int { return o.n }

// Err returns the error a KindError or KindWouldBlock op fails with, and nil
// otherwise.
func (o Op) Err() error {
	switch o.kind {
	case KindError:
		return o.err
	case KindWouldBlock:
		return ErrWouldBlock
	default:
		return nil
	}
}

// limit caps a request of length l.
func (o Op) limit(l int) int {
	if o.kind == KindLimited && o.n < l {
		return o.n
	}
	return l
}

// String returns the text form accepted by ParseOp.
func (o Op) String() string {
	switch o.kind {
	case KindLimited:
		return "limited(" + strconv.Itoa(o.n) + ")"
	case KindWouldBlock:
		return "wouldblock"
	case KindError:
		if o.err == ErrInterrupted {
			return "interrupted"
		}
		return "error(" + quoteMessage(o.err.Error()) + ")"
	default:
		return "unlimited"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (o Op) MarshalText() ([]byte, error) { return []byte(o.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (o *Op) UnmarshalText(text []byte) error {
	op, err := ParseOp(string(text))
	if err != nil {
		return err
	}
	*o = op
	return nil
}

// ParseOp parses the text form of an Op:
//
//	unlimited | u
//	limited(N) | lN
//	wouldblock | wb
//	interrupted | i
//	error(MESSAGE)
//
// error(MESSAGE) yields a fatal op whose error text is MESSAGE. MESSAGE may be
// a Go-quoted string, which String uses for empty messages and for messages
// with parentheses, quotes, control characters or edge whitespace. Matching is
// case-insensitive except for MESSAGE.
func ParseOp(s string) (Op, error) {
	s = strings.TrimSpace(s)
	lower := strings.ToLower(s)
	switch lower {
	case "unlimited", "u":
		return Unlimited(), nil
	case "wouldblock", "wb":
		return WouldBlock(), nil
	case "interrupted", "i":
		return Interrupted(), nil
	}
	if arg, ok := call(s, "error"); ok {
		if arg == "" {
			return Op{}, fmt.Errorf("%w: empty error message in %q", ErrInvalidArgument, s)
		}
		if arg[0] == '"' {
			msg, err := strconv.Unquote(arg)
			if err != nil {
				return Op{}, fmt.Errorf("%w: bad quoted message in %q", ErrInvalidArgument, s)
			}
			arg = msg
		}
		return Err(errors.New(arg)), nil
	}
	num, ok := call(lower, "limited")
	if !ok && len(lower) > 1 && lower[0] == 'l' {
		num, ok = lower[1:], true
	}
	if ok {
		n, err := strconv.Atoi(num)
		if err != nil || n < 0 {
			return Op{}, fmt.Errorf("%w: bad limit in %q", ErrInvalidArgument, s)
		}
		return Limited(n), nil
	}
	return Op{}, fmt.Errorf("%w: unknown op %q", ErrInvalidArgument, s)
}

// quoteMessage returns msg as written inside error(...). Messages that would
// not parse back verbatim are Go-quoted.
func quoteMessage(msg string) string {
	if msg == "" || strings.TrimSpace(msg) != msg || strings.ContainsAny(msg, "()\"\\\n\r\t") {
		return strconv.Quote(msg)
	}
	return msg
}

// call matches name(arg) case-insensitively on name and returns arg.
func call(s, name string) (string, bool) {
	if len(s) < len(name)+2 || !strings.EqualFold(s[:len(name)], name) {
		return "", false
	}
	rest := s[len(name):]
	if rest[0] != '(' || rest[len(rest)-1] != ')' {
		return "", false
	}
	return rest[1 : len(rest)-1], true
}

// ParseOps parses a comma or whitespace separated list of ops.
// An empty string yields an empty plan.
func ParseOps(s string) ([]Op, error) {
	fields := splitOps(s)
	ops := make([]Op, 0, len(fields))
	for _, f := range fields {
		op, err := ParseOp(f)
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
	}
	return ops, nil
}

// splitOps splits on commas and whitespace outside parentheses and quotes, so
// that error(MESSAGE) may contain either.
func splitOps(s string) []string {
	var fields []string
	depth, start := 0, -1
	quoted, escaped := false, false
	for i, c := range s {
		if quoted {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				quoted = false
			}
			continue
		}
		sep := depth == 0 && (c == ',' || c == ' ' || c == '\t' || c == '\n' || c == '\r')
		switch {
		case c == '"':
			quoted = true
		case sep:
			if start >= 0 {
				fields = append(fields, s[start:i])
				start = -1
			}
			continue
		case c == '(':
			depth++
		case c == ')' && depth > 0:
			depth--
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		fields = append(fields, s[start:])
	}
	return fields
}

// FormatOps returns the comma separated text form of ops.
func FormatOps(ops []Op) string {
	var b strings.Builder
	for i, op := range ops {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(op.String())
	}
	return b.String()
}
