// Package codepage allocates executable memory, places assembled
// instructions into it, and exposes the result as a callable native
// function. It is the runtime half of the assembler: architecture/x86_64
// produces bytes, codepage gives them an address and a calling convention.
package codepage

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/keurnel/assembler/architecture/x86_64"
	"github.com/keurnel/assembler/internal/asm"
)

// Line is one entry of a program: either a label declaration (a zero-length
// marker at the current byte offset) or an instruction. Exactly one of the
// two fields is set.
type Line struct {
	Label string
	Instr *x86_64.Instruction
}

// LabelLine declares a label at the current program position.
func LabelLine(name string) Line { return Line{Label: name} }

// InstrLine wraps an already-encoded instruction.
func InstrLine(i *x86_64.Instruction) Line { return Line{Instr: i} }

// CodePage owns one block of executable memory and the resolved bytes
// placed into it.
type CodePage struct {
	mem     []byte // the raw executable mapping
	program []Line
	labels  map[string]int64 // label name -> byte offset from the page's base
	entries []dumpEntry      // resolved per-line record, for Dump
}

// dumpEntry is one rendered line of Dump's listing: a label declaration (no
// bytes, just its name) or an instruction's resolved bytes plus its
// assembly text.
type dumpEntry struct {
	offset int
	bytes  []byte
	text   string
}

// Compile performs the two-pass assembly spec §4.9 describes: pass one walks
// the program accumulating each label's byte offset; pass two allocates
// nativeSize bytes of executable memory, then resolves each instruction's
// deferred fills against a symbol table of absolute label addresses plus
// that instruction's own start and next-instruction addresses (instr_addr,
// next_instr_addr), writes the result into the mapping, and then makes the
// mapping executable.
func Compile(program []Line) (*CodePage, error) {
	labels := map[string]int64{}
	var cursor int64
	for _, ln := range program {
		if ln.Label != "" {
			if _, dup := labels[ln.Label]; dup {
				return nil, &asm.NameError{Name: ln.Label, Message: "label declared more than once"}
			}
			labels[ln.Label] = cursor
		}
		if ln.Instr != nil {
			cursor += int64(ln.Instr.Len())
		}
	}
	size := int(cursor)
	if size == 0 {
		return nil, &asm.ValueError{Message: "cannot compile an empty program"}
	}

	mem, err := allocExecutable(size)
	if err != nil {
		return nil, &asm.RuntimeError{Message: err.Error()}
	}
	page := &CodePage{mem: mem, program: program, labels: labels}
	runtime.SetFinalizer(page, func(p *CodePage) { freeExecutable(p.mem) })

	base := page.baseAddr()
	out := make([]byte, 0, size)
	var pos int64
	for _, ln := range program {
		if ln.Instr == nil {
			page.entries = append(page.entries, dumpEntry{offset: int(pos), text: ln.Label + ":"})
			continue
		}
		symbols := make(map[string]int64, len(labels)+1)
		for name, off := range labels {
			symbols[name] = base + off
		}
		symbols["instr_addr"] = base + pos
		symbols["next_instr_addr"] = base + pos + int64(ln.Instr.Len())

		resolved, err := ln.Instr.Code.Compile(symbols)
		if err != nil {
			return nil, err
		}
		page.entries = append(page.entries, dumpEntry{offset: int(pos), bytes: resolved, text: ln.Instr.String()})
		out = append(out, resolved...)
		pos += int64(len(resolved))
	}
	copy(page.mem, out)
	if err := page.makeExecutable(); err != nil {
		return nil, &asm.RuntimeError{Message: err.Error()}
	}
	return page, nil
}

// Bytes returns the page's raw executable bytes, for writing to a file or
// otherwise consuming the compiled program directly.
func (p *CodePage) Bytes() []byte {
	out := make([]byte, len(p.mem))
	copy(out, p.mem)
	return out
}

// Dump returns a hex-plus-mnemonic listing of the compiled page, one line
// per program line: the byte offset, that line's machine code in hex, and
// its assembly text. A debug-only aid, never used by the encoding path.
func (p *CodePage) Dump() string {
	var b strings.Builder
	for _, e := range p.entries {
		hex := fmt.Sprintf("%x", e.bytes)
		pad := 40 - len(hex)
		if pad < 1 {
			pad = 1
		}
		fmt.Fprintf(&b, "0x%04x: %s%s%s\n", e.offset, hex, strings.Repeat(" ", pad), e.text)
	}
	return b.String()
}

// Len reports the page's size in bytes.
func (p *CodePage) Len() int { return len(p.mem) }

// LabelOffset returns a declared label's byte offset from the page's base.
func (p *CodePage) LabelOffset(name string) (int64, bool) {
	off, ok := p.labels[name]
	return off, ok
}

// Function returns a Function bound to the page's entry point (byte offset
// 0). The returned Function keeps p alive for as long as it is reachable, so
// the executable mapping is never freed while a caller might still invoke it.
func (p *CodePage) Function() *Function {
	return &Function{page: p, entry: p.baseAddr()}
}

// FunctionAt returns a Function bound to a label's address within the page,
// for programs that expose more than one callable entry point.
func (p *CodePage) FunctionAt(label string) (*Function, error) {
	off, ok := p.labels[label]
	if !ok {
		return nil, &asm.NameError{Name: label, Message: "undefined label"}
	}
	return &Function{page: p, entry: p.baseAddr() + off}, nil
}
