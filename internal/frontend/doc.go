// Package frontend implements the textual front-end of spec §4.10: it turns
// an Intel-syntax multi-line assembly source into the ordered label/
// instruction program that internal/codepage compiles. It is a thin layer
// over architecture/x86_64 — the front-end's only job is to parse text into
// the same Register/Pointer/Label/int64 argument values the structured API
// already accepts, then hand them to x86_64.NewInstruction.
package frontend
