package x86_64

import (
	"fmt"
	"strings"

	"github.com/keurnel/assembler/internal/asm"
)

// Instruction is one assembled line of a program: a mnemonic name, its
// argument vector, and the Code buffer produced by encoding it against
// Table. A single arg that is a Label or a RelTarget is a relative-branch
// target and routes through EncodeBranch; everything else routes through
// Encode. The buffer is
// computed eagerly in the constructor (spec §9's "may compute eagerly"
// option), since nothing about the spec's scope needs to defer encoding
// past construction time — only the label fill inside the buffer is
// deferred, resolved later by the program's two-pass assembly.
type Instruction struct {
	Mnemonic string
	Args     []any
	Code     *asm.Code
}

// NewInstruction looks up name in Table, selects a matching recipe for args,
// and encodes it immediately.
func NewInstruction(nativeBits int, name string, args ...any) (*Instruction, error) {
	m, ok := Table[name]
	if !ok {
		return nil, &asm.NameError{Name: name, Message: "unknown mnemonic"}
	}

	var code *asm.Code
	var err error
	if len(args) == 1 {
		if _, isLabel := args[0].(Label); isLabel {
			code, err = EncodeBranch(m, nativeBits, args[0])
		} else if _, isRel := args[0].(RelTarget); isRel {
			code, err = EncodeBranch(m, nativeBits, args[0])
		}
	}
	if code == nil && err == nil {
		code, err = Encode(m, nativeBits, args...)
	}
	if err != nil {
		return nil, err
	}
	return &Instruction{Mnemonic: name, Args: args, Code: code}, nil
}

// Len reports the instruction's encoded length in bytes.
func (i *Instruction) Len() int { return i.Code.Len() }

// String renders the instruction as Intel-syntax assembly text, used by
// CodePage.Dump for its per-instruction listing — never by the encoding
// path itself.
func (i *Instruction) String() string {
	if len(i.Args) == 0 {
		return i.Mnemonic
	}
	parts := make([]string, len(i.Args))
	for j, a := range i.Args {
		parts[j] = formatArg(a)
	}
	return i.Mnemonic + " " + strings.Join(parts, ", ")
}

func formatArg(a any) string {
	switch v := a.(type) {
	case Register:
		return v.Name
	case Pointer:
		return v.String()
	case Label:
		return string(v)
	case RelTarget:
		return fmt.Sprintf("0x%x", v.Value)
	case []byte:
		return fmt.Sprintf("% x", v)
	case string:
		return fmt.Sprintf("%q", v)
	case int64:
		return fmt.Sprintf("0x%x", v)
	default:
		return fmt.Sprintf("%v", v)
	}
}
