package asm

import "fmt"

// TypeError reports an argument-type category mismatch, an unsupported
// operand combination, or an addressing-mode impossibility (two stack
// pointers, a register too narrow for the addressing mode, and so on).
type TypeError struct {
	Mnemonic string
	Message  string
}

func (e *TypeError) Error() string {
	if e.Mnemonic == "" {
		return "type error: " + e.Message
	}
	return fmt.Sprintf("type error: %s: %s", e.Mnemonic, e.Message)
}

// NameError reports an unknown mnemonic, a duplicate label, or a reference to
// an undefined symbol inside a Deferred fill expression.
type NameError struct {
	Name    string
	Message string
}

func (e *NameError) Error() string {
	return fmt.Sprintf("name error: %s: %s", e.Name, e.Message)
}

// SyntaxError reports a malformed line or operand in the textual front-end.
type SyntaxError struct {
	Message string
}

func (e *SyntaxError) Error() string {
	return "syntax error: " + e.Message
}

// ValueError reports an immediate that is out of range for every packing
// offered by the matched recipe.
type ValueError struct {
	Message string
}

func (e *ValueError) Error() string {
	return "value error: " + e.Message
}

// RuntimeError reports a should-never-happen guard: executable memory
// allocation failure, or emitted bytes exceeding the allocated page.
type RuntimeError struct {
	Message string
}

func (e *RuntimeError) Error() string {
	return "runtime error: " + e.Message
}

// NewTypeError is a convenience constructor matching the mnemonic+message
// shape used throughout the instruction encoder.
func NewTypeError(mnemonic, format string, args ...any) *TypeError {
	return &TypeError{Mnemonic: mnemonic, Message: fmt.Sprintf(format, args...)}
}
