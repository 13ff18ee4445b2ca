package asm

import "encoding/binary"

// FillExpr is the restricted two-symbol expression language a Deferred
// buffer's fills are allowed to carry: a label's address, optionally offset
// by a second named symbol (used for "<label> - next_instr_addr") and/or a
// small integer displacement (used for "<label> + 3"). Spec intentionally
// rules out a general expression evaluator; every fill the encoder ever
// produces fits this shape.
type FillExpr struct {
	Label      string
	RelativeTo string // symbol subtracted from Label's value, or "" for none
	Delta      int64  // added after the subtraction
}

// Eval resolves the expression against a symbol table mapping names to
// absolute addresses (or other resolved integer values).
func (f FillExpr) Eval(symbols map[string]int64) (int64, error) {
	v, ok := symbols[f.Label]
	if !ok {
		return 0, &NameError{Name: f.Label, Message: "undefined symbol in deferred fill"}
	}
	if f.RelativeTo != "" {
		rel, ok := symbols[f.RelativeTo]
		if !ok {
			return 0, &NameError{Name: f.RelativeTo, Message: "undefined symbol in deferred fill"}
		}
		v -= rel
	}
	return v + f.Delta, nil
}

type fill struct {
	offset int
	expr   FillExpr
	width  int // 1, 2, or 4 bytes, signed little-endian
}

// Code is the Deferred-code buffer: a byte sequence plus a list of pending
// "overwrite this offset with the packed value of this expression" requests,
// resolved once a symbol table is available.
type Code struct {
	Bytes []byte
	fills []fill
}

// NewCode wraps a finished byte sequence with no pending fills.
func NewCode(b []byte) *Code {
	return &Code{Bytes: append([]byte(nil), b...)}
}

// Len reports the buffer's byte length, independent of whether its fills
// have been resolved yet.
func (c *Code) Len() int { return len(c.Bytes) }

// Replace records a fill: once Compile is called, bytes
// [offset, offset+width) are overwritten with expr's value packed as a
// signed little-endian integer of the given width.
func (c *Code) Replace(offset int, expr FillExpr, width int) {
	c.fills = append(c.fills, fill{offset: offset, expr: expr, width: width})
}

// Concat appends other's bytes, shifting other's fills by the length of c's
// current bytes so their offsets remain correct in the combined buffer.
func (c *Code) Concat(other *Code) *Code {
	base := len(c.Bytes)
	out := &Code{Bytes: append(append([]byte(nil), c.Bytes...), other.Bytes...)}
	out.fills = append(out.fills, c.fills...)
	for _, f := range other.fills {
		out.fills = append(out.fills, fill{offset: f.offset + base, expr: f.expr, width: f.width})
	}
	return out
}

// Prepend returns a new Code with prefix placed before c's bytes; c's fill
// offsets are shifted by len(prefix).
func (c *Code) Prepend(prefix []byte) *Code {
	out := &Code{Bytes: append(append([]byte(nil), prefix...), c.Bytes...)}
	shift := len(prefix)
	for _, f := range c.fills {
		out.fills = append(out.fills, fill{offset: f.offset + shift, expr: f.expr, width: f.width})
	}
	return out
}

// Append returns a new Code with suffix placed after c's bytes; fill offsets
// are unaffected.
func (c *Code) Append(suffix []byte) *Code {
	out := &Code{Bytes: append(append([]byte(nil), c.Bytes...), suffix...), fills: append([]fill(nil), c.fills...)}
	return out
}

// Compile evaluates every pending fill against symbols and returns the
// resolved byte sequence. c itself is left untouched.
func (c *Code) Compile(symbols map[string]int64) ([]byte, error) {
	out := append([]byte(nil), c.Bytes...)
	for _, f := range c.fills {
		v, err := f.expr.Eval(symbols)
		if err != nil {
			return nil, err
		}
		var packed [4]byte
		switch f.width {
		case 1:
			if v < -128 || v > 127 {
				return nil, &ValueError{Message: "deferred fill value does not fit in 1 byte"}
			}
			packed[0] = byte(int8(v))
		case 2:
			if v < -32768 || v > 32767 {
				return nil, &ValueError{Message: "deferred fill value does not fit in 2 bytes"}
			}
			binary.LittleEndian.PutUint16(packed[:2], uint16(int16(v)))
		case 4:
			if v < -2147483648 || v > 2147483647 {
				return nil, &ValueError{Message: "deferred fill value does not fit in 4 bytes"}
			}
			binary.LittleEndian.PutUint32(packed[:4], uint32(int32(v)))
		default:
			return nil, &RuntimeError{Message: "deferred fill has unsupported pack width"}
		}
		if f.offset+f.width > len(out) {
			return nil, &RuntimeError{Message: "deferred fill offset exceeds buffer length"}
		}
		copy(out[f.offset:f.offset+f.width], packed[:f.width])
	}
	return out, nil
}
