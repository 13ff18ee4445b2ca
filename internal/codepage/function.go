package codepage

import (
	"reflect"
	"unsafe"
)

// Function is a native code entry point backed by a CodePage's executable
// memory. It holds a reference to the owning page so the mapping is never
// freed while the function might still be called.
type Function struct {
	page  *CodePage
	entry int64
}

// Addr returns the function's entry address as a uintptr.
func (f *Function) Addr() uintptr { return uintptr(f.entry) }

// Bind writes f's entry point into fnPtr, a pointer to a Go func variable of
// the caller's chosen signature, so that calling the variable jumps straight
// into the page's machine code. This relies on the one unavoidable unsafe
// boundary any JIT must cross: a Go func value is, at runtime, a pointer to
// a word holding the code address, and reflect.NewAt lets us plant that word
// ourselves instead of letting the compiler generate it. The caller is
// responsible for matching fnPtr's signature to the native code's actual
// calling convention (see ArgInt/ArgFloat).
func Bind(f *Function, fnPtr any) {
	v := reflect.ValueOf(fnPtr)
	if v.Kind() != reflect.Ptr || v.Elem().Kind() != reflect.Func {
		panic("codepage: Bind requires a pointer to a function variable")
	}
	built := reflect.NewAt(v.Elem().Type(), unsafe.Pointer(&f.entry)).Elem()
	v.Elem().Set(built)
}
