package machine

import (
	"github.com/retroenv/aspenemu/internal/isa"
	"github.com/retroenv/aspenemu/internal/register"
)

// execBranch executes a mode 2 instruction and returns the next program
// counter. Branches compare their operands directly; there is no status
// register.
//
// The operand shape is revision scoped: v1 conditionals compare the argA
// register against zero and take the target from the immediate (or the dest
// register without one); graft conditionals compare the argA and argB
// registers against each other and take the target from the dest register,
// or the immediate when present.
func (m *Machine) execBranch(kind isa.Kind, inst isa.Instruction, next uint32) (uint32, error) {
	target := m.branchTarget(inst)

	if kind == isa.Jmp {
		return target, nil
	}

	var a, b uint32
	if m.set.Revision() == isa.RevisionV1 {
		a = m.regs.Get(inst.ArgA)
		b = 0
	} else {
		a = m.regs.Get(inst.ArgA)
		b = m.regs.Get(inst.ArgB)
	}

	if branchTaken(kind, a, b) {
		return target, nil
	}
	return next, nil
}

// branchTarget resolves the jump destination: the immediate when present,
// the dest register otherwise. This holds for both revisions and for jmp.
func (m *Machine) branchTarget(inst isa.Instruction) uint32 {
	if inst.HasImm {
		return inst.Imm
	}
	return m.regs.Get(inst.Dest)
}

// branchTaken evaluates a branch condition. The l/ge/le/g family compares
// signed, the b/ae/be/a family unsigned.
func branchTaken(kind isa.Kind, a, b uint32) bool {
	switch kind {
	case isa.Je:
		return a == b
	case isa.Jne:
		return a != b
	case isa.Jl:
		return int32(a) < int32(b)
	case isa.Jge:
		return int32(a) >= int32(b)
	case isa.Jle:
		return int32(a) <= int32(b)
	case isa.Jg:
		return int32(a) > int32(b)
	case isa.Jb:
		return a < b
	case isa.Jae:
		return a >= b
	case isa.Jbe:
		return a <= b
	case isa.Ja:
		return a > b
	default:
		return false
	}
}

// execStack executes a mode 3 instruction and returns the next program
// counter. Push, pop, call and ret are compound register and memory
// operations completing within one cycle; the stack lives in bus memory at
// the sp register and grows downward in full dwords.
func (m *Machine) execStack(kind isa.Kind, inst isa.Instruction, next uint32) (uint32, error) {
	switch kind {
	case isa.Push:
		return next, m.push(m.regs.Get(inst.ArgA))

	case isa.Pop:
		value, err := m.pop()
		if err != nil {
			return 0, err
		}
		dest := inst.Dest
		if m.set.Revision() == isa.RevisionV1 {
			// v1 pop has no destination operand, it always pops into ra
			dest = register.Ra
		}
		m.regs.Set(dest, value)
		return next, nil

	case isa.Call:
		if err := m.push(next); err != nil {
			return 0, err
		}
		return m.operandA(inst), nil

	case isa.Ret:
		return m.pop()

	default:
		return next, nil
	}
}

func (m *Machine) push(value uint32) error {
	sp := m.regs.Get(register.Sp) - 4
	if err := m.mem.WriteDword(sp, value); err != nil {
		return err
	}
	m.regs.Set(register.Sp, sp)
	return nil
}

func (m *Machine) pop() (uint32, error) {
	sp := m.regs.Get(register.Sp)
	value, err := m.mem.ReadDword(sp)
	if err != nil {
		return 0, err
	}
	m.regs.Set(register.Sp, sp+4)
	return value, nil
}
