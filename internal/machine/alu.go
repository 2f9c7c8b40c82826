package machine

import (
	"github.com/retroenv/aspenemu/internal/isa"
)

// execALU executes a mode 1 instruction. All arithmetic is on 32-bit values
// and wraps modulo 2^32; shift amounts use the low 5 bits. Division and
// remainder by zero write 0 to dest instead of faulting.
func (m *Machine) execALU(kind isa.Kind, inst isa.Instruction) {
	a := m.regs.Get(inst.ArgA)
	b := m.operandB(inst)

	var result uint32
	switch kind {
	case isa.Nand:
		result = ^(a & b)
	case isa.Or:
		result = a | b
	case isa.And:
		result = a & b
	case isa.Nor:
		result = ^(a | b)
	case isa.Add:
		result = a + b
	case isa.Sub:
		result = a - b
	case isa.Xor:
		result = a ^ b
	case isa.Lsl:
		result = a << (b & 0x1f)
	case isa.Lsr:
		result = a >> (b & 0x1f)
	case isa.Asr:
		result = uint32(int32(a) >> (b & 0x1f))
	case isa.Mul:
		result = a * b
	case isa.Div:
		if b != 0 {
			result = a / b
		}
	case isa.Rem:
		if b != 0 {
			result = a % b
		}
	case isa.Cmp:
		result = compareSigned(a, b)
	case isa.Mov:
		// mov moves argA or the immediate, argB carries no operand
		result = m.operandA(inst)
	case isa.Inc:
		result = a + 1
	case isa.Dec:
		result = a - 1
	case isa.Se:
		result = boolBit(a == b)
	case isa.Sne:
		result = boolBit(a != b)
	case isa.Sl:
		result = boolBit(int32(a) < int32(b))
	case isa.Sle:
		result = boolBit(int32(a) <= int32(b))
	case isa.Sg:
		result = boolBit(int32(a) > int32(b))
	case isa.Sge:
		result = boolBit(int32(a) >= int32(b))
	}

	m.regs.Set(inst.Dest, result)
}

// compareSigned returns the sign of a-b as -1, 0 or 1 under signed 32-bit
// comparison.
func compareSigned(a, b uint32) uint32 {
	switch {
	case int32(a) < int32(b):
		return ^uint32(0)
	case a == b:
		return 0
	default:
		return 1
	}
}

func boolBit(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}
