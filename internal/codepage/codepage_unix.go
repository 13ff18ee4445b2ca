//go:build unix

package codepage

import (
	"unsafe"

	"golang.org/x/sys/unix"
)

func allocExecutable(size int) ([]byte, error) {
	return unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANON)
}

func (p *CodePage) makeExecutable() error {
	return unix.Mprotect(p.mem, unix.PROT_READ|unix.PROT_EXEC)
}

func (p *CodePage) baseAddr() int64 {
	return int64(uintptr(unsafe.Pointer(&p.mem[0])))
}

func freeExecutable(mem []byte) error {
	return unix.Munmap(mem)
}
