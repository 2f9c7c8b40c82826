package memory

import (
	"bytes"
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestZeroFill(t *testing.T) {
	s := New()

	b, err := s.ReadByte(0)
	assert.NoError(t, err)
	assert.Equal(t, uint8(0), b)

	d, err := s.ReadDword(0xfffffff0)
	assert.NoError(t, err)
	assert.Equal(t, uint32(0), d)

	buf := []byte{0xff, 0xff, 0xff}
	assert.NoError(t, s.Read(0x12345678, buf))
	assert.True(t, bytes.Equal([]byte{0, 0, 0}, buf))
}

func TestLittleEndian(t *testing.T) {
	s := New()

	assert.NoError(t, s.WriteDword(0x100, 0xdeadbeef))

	b, err := s.ReadByte(0x100)
	assert.NoError(t, err)
	assert.Equal(t, uint8(0xef), b)
	b, err = s.ReadByte(0x103)
	assert.NoError(t, err)
	assert.Equal(t, uint8(0xde), b)

	w, err := s.ReadWord(0x101)
	assert.NoError(t, err)
	assert.Equal(t, uint16(0xadbe), w)

	d, err := s.ReadDword(0x100)
	assert.NoError(t, err)
	assert.Equal(t, uint32(0xdeadbeef), d)
}

// Narrow stores must not disturb adjacent bytes.
func TestNarrowStoreAdjacency(t *testing.T) {
	s := New()

	assert.NoError(t, s.WriteDword(0x200, 0x11223344))
	assert.NoError(t, s.WriteByte(0x201, 0xaa))

	d, err := s.ReadDword(0x200)
	assert.NoError(t, err)
	assert.Equal(t, uint32(0x1122aa44), d)

	assert.NoError(t, s.WriteWord(0x202, 0xbbcc))
	d, err = s.ReadDword(0x200)
	assert.NoError(t, err)
	assert.Equal(t, uint32(0xbbccaa44), d)
}

func TestCrossPageAccess(t *testing.T) {
	s := New()

	addr := uint32(pageSize - 2)
	assert.NoError(t, s.WriteDword(addr, 0x44332211))

	d, err := s.ReadDword(addr)
	assert.NoError(t, err)
	assert.Equal(t, uint32(0x44332211), d)

	b, err := s.ReadByte(pageSize)
	assert.NoError(t, err)
	assert.Equal(t, uint8(0x33), b)
}

func TestBoundedFault(t *testing.T) {
	s := NewBounded(16)

	assert.NoError(t, s.WriteDword(12, 1))

	err := s.WriteDword(13, 1)
	assert.Error(t, err)
	var fault *AddressFaultError
	assert.True(t, errors.As(err, &fault))
	assert.Equal(t, uint32(13), fault.Addr)
	assert.Equal(t, uint32(4), fault.Size)

	_, err = s.ReadByte(16)
	assert.Error(t, err)

	// zero-length accesses never fault
	assert.NoError(t, s.Read(16, nil))
}

// A multi-byte access that would wrap past the end of the 2^32 range faults
// even in an unbounded space.
func TestAddressRangeEdge(t *testing.T) {
	s := New()

	assert.NoError(t, s.WriteByte(0xffffffff, 0x7f))
	b, err := s.ReadByte(0xffffffff)
	assert.NoError(t, err)
	assert.Equal(t, uint8(0x7f), b)

	err = s.WriteDword(0xfffffffd, 1)
	assert.Error(t, err)
	assert.ErrorContains(t, err, "address fault")

	_, err = s.ReadWord(0xffffffff)
	assert.Error(t, err)
}

func TestBulkReadWrite(t *testing.T) {
	s := New()

	data := make([]byte, 3*pageSize)
	for i := range data {
		data[i] = byte(i)
	}
	assert.NoError(t, s.Write(0x500, data))

	got := make([]byte, len(data))
	assert.NoError(t, s.Read(0x500, got))
	assert.True(t, bytes.Equal(data, got))
}
