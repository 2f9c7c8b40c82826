// Package memory implements the byte-addressed address spaces of the
// machine. A space is logically 2^32 bytes, sparsely backed by pages that
// are zero-filled on demand. A space can optionally be bounded, in which
// case accesses beyond the limit raise an address fault.
//
// Multi-byte accesses are little-endian and need not be aligned.
package memory

import (
	"encoding/binary"
	"fmt"
)

const pageSize = 4096

// AddressFaultError reports an access outside the configured bounds of a
// space, or one that would run past the end of the 2^32 address range.
type AddressFaultError struct {
	Addr uint32
	Size uint32
}

func (e *AddressFaultError) Error() string {
	return fmt.Sprintf("address fault: size %d @ 0x%08x", e.Size, e.Addr)
}

// Space is one linear byte-addressed address space. It is exclusively owned
// by one machine and not safe for concurrent use.
type Space struct {
	pages map[uint32]*[pageSize]byte
	limit uint64 // first invalid address; 1<<32 when unbounded
}

// New returns an unbounded space covering the full 2^32 byte range,
// zero-initialized.
func New() *Space {
	return &Space{
		pages: map[uint32]*[pageSize]byte{},
		limit: 1 << 32,
	}
}

// NewBounded returns a space that faults on any access at or beyond size.
func NewBounded(size uint32) *Space {
	return &Space{
		pages: map[uint32]*[pageSize]byte{},
		limit: uint64(size),
	}
}

// check validates that [addr, addr+size) lies inside the space.
func (s *Space) check(addr, size uint32) error {
	if size == 0 {
		return nil
	}
	if uint64(addr)+uint64(size) > s.limit {
		return &AddressFaultError{Addr: addr, Size: size}
	}
	return nil
}

// page returns the backing page of addr, or nil if it was never written.
func (s *Space) page(addr uint32) *[pageSize]byte {
	return s.pages[addr/pageSize]
}

// dirtyPage returns the backing page of addr, allocating it zero-filled.
func (s *Space) dirtyPage(addr uint32) *[pageSize]byte {
	index := addr / pageSize
	p := s.pages[index]
	if p == nil {
		p = &[pageSize]byte{}
		s.pages[index] = p
	}
	return p
}

// Read fills buf with the bytes at [addr, addr+len(buf)).
func (s *Space) Read(addr uint32, buf []byte) error {
	if err := s.check(addr, uint32(len(buf))); err != nil {
		return err
	}
	for i := range buf {
		a := addr + uint32(i)
		p := s.page(a)
		if p == nil {
			buf[i] = 0
			continue
		}
		buf[i] = p[a%pageSize]
	}
	return nil
}

// Write copies data to [addr, addr+len(data)).
func (s *Space) Write(addr uint32, data []byte) error {
	if err := s.check(addr, uint32(len(data))); err != nil {
		return err
	}
	for i, b := range data {
		a := addr + uint32(i)
		s.dirtyPage(a)[a%pageSize] = b
	}
	return nil
}

// ReadByte reads one byte.
func (s *Space) ReadByte(addr uint32) (uint8, error) {
	if err := s.check(addr, 1); err != nil {
		return 0, err
	}
	p := s.page(addr)
	if p == nil {
		return 0, nil
	}
	return p[addr%pageSize], nil
}

// ReadWord reads a 2-byte little-endian value.
func (s *Space) ReadWord(addr uint32) (uint16, error) {
	var buf [2]byte
	if err := s.Read(addr, buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(buf[:]), nil
}

// ReadDword reads a 4-byte little-endian value.
func (s *Space) ReadDword(addr uint32) (uint32, error) {
	var buf [4]byte
	if err := s.Read(addr, buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(buf[:]), nil
}

// WriteByte writes one byte.
func (s *Space) WriteByte(addr uint32, value uint8) error {
	if err := s.check(addr, 1); err != nil {
		return err
	}
	s.dirtyPage(addr)[addr%pageSize] = value
	return nil
}

// WriteWord writes a 2-byte little-endian value, leaving adjacent bytes
// untouched.
func (s *Space) WriteWord(addr uint32, value uint16) error {
	var buf [2]byte
	binary.LittleEndian.PutUint16(buf[:], value)
	return s.Write(addr, buf[:])
}

// WriteDword writes a 4-byte little-endian value.
func (s *Space) WriteDword(addr uint32, value uint32) error {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], value)
	return s.Write(addr, buf[:])
}
