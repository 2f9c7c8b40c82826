// Package codec implements the bit-exact binary encoding of Aspen
// instructions. Encoding and decoding are stateless mappings parameterized
// by a revision opcode table; they are safe to call concurrently.
package codec

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/retroenv/aspenemu/internal/isa"
)

// ErrMalformedInstruction marks a truncated instruction stream or an opcode
// with no mapping in the configured revision. All decode errors wrap it.
var ErrMalformedInstruction = errors.New("malformed instruction")

// Decode reads one instruction from data starting at offset and returns it
// together with the number of bytes consumed (4, or 8 with an immediate).
func Decode(set *isa.Set, data []byte, offset uint32) (isa.Instruction, uint32, error) {
	if uint64(offset)+isa.HeaderSize > uint64(len(data)) {
		return isa.Instruction{}, 0, fmt.Errorf("%w: %d bytes remaining at offset 0x%08x",
			ErrMalformedInstruction, uint64(len(data))-uint64(offset), offset)
	}

	ctrl := data[offset]
	inst := isa.Instruction{
		Mode:   isa.Mode(ctrl >> 6),
		HasImm: ctrl&0x20 != 0,
		Dest:   ctrl & 0x1f,
		Opcode: data[offset+1],
		ArgA:   data[offset+2] & 0x1f,
		ArgB:   data[offset+3] & 0x1f,
	}

	size := inst.Size()
	if inst.HasImm {
		if uint64(offset)+uint64(size) > uint64(len(data)) {
			return isa.Instruction{}, 0, fmt.Errorf("%w: truncated immediate at offset 0x%08x",
				ErrMalformedInstruction, offset)
		}
		inst.Imm = binary.LittleEndian.Uint32(data[offset+isa.HeaderSize:])
	}

	if _, ok := set.Lookup(inst.Mode, inst.Opcode); !ok {
		return isa.Instruction{}, 0, fmt.Errorf("%w: unknown opcode 0x%02x in mode %d of revision %s",
			ErrMalformedInstruction, inst.Opcode, inst.Mode, set.Revision())
	}

	return inst, size, nil
}

// Encode returns the binary form of an instruction. It is the exact inverse
// of Decode: round-tripping preserves every field under the same revision.
func Encode(set *isa.Set, inst isa.Instruction) ([]byte, error) {
	if _, ok := set.Lookup(inst.Mode, inst.Opcode); !ok {
		return nil, fmt.Errorf("%w: unknown opcode 0x%02x in mode %d of revision %s",
			ErrMalformedInstruction, inst.Opcode, inst.Mode, set.Revision())
	}
	if inst.Mode > 3 || inst.Dest > 0x1f || inst.ArgA > 0x1f || inst.ArgB > 0x1f {
		return nil, fmt.Errorf("%w: operand field out of range", ErrMalformedInstruction)
	}

	data := make([]byte, isa.HeaderSize, inst.Size())
	data[0] = uint8(inst.Mode)<<6 | inst.Dest
	if inst.HasImm {
		data[0] |= 0x20
	}
	data[1] = inst.Opcode
	data[2] = inst.ArgA
	data[3] = inst.ArgB

	if inst.HasImm {
		data = binary.LittleEndian.AppendUint32(data, inst.Imm)
	}
	return data, nil
}
