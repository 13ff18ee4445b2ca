//go:build windows

package codepage

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

func allocExecutable(size int) ([]byte, error) {
	addr, err := windows.VirtualAlloc(0, uintptr(size), windows.MEM_COMMIT|windows.MEM_RESERVE, windows.PAGE_READWRITE)
	if err != nil {
		return nil, err
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(addr)), size), nil
}

func (p *CodePage) makeExecutable() error {
	var old uint32
	return windows.VirtualProtect(uintptr(unsafe.Pointer(&p.mem[0])), uintptr(len(p.mem)), windows.PAGE_EXECUTE_READ, &old)
}

func (p *CodePage) baseAddr() int64 {
	return int64(uintptr(unsafe.Pointer(&p.mem[0])))
}

func freeExecutable(mem []byte) error {
	return windows.VirtualFree(uintptr(unsafe.Pointer(&mem[0])), 0, windows.MEM_RELEASE)
}
