// Package machine implements the Aspen fetch-decode-execute engine: program
// counter management, ALU dispatch, branch, call and stack handling, and
// dispatch of device operations to an injected surface.
//
// The engine is single threaded and strictly sequential. One instruction
// fully completes, including any device call, before the next is fetched.
// A machine exclusively owns its register file and both address spaces.
package machine

import (
	"context"
	"errors"
	"fmt"

	"github.com/retroenv/aspenemu/internal/codec"
	"github.com/retroenv/aspenemu/internal/device"
	"github.com/retroenv/aspenemu/internal/isa"
	"github.com/retroenv/aspenemu/internal/memory"
	"github.com/retroenv/aspenemu/internal/register"
	"github.com/retroenv/retrogolib/log"
)

// Config describes a machine at reset time.
type Config struct {
	Revision isa.Revision
	Devices  device.Surface
	Logger   *log.Logger

	// Memory is the initial bus memory image, loaded at address 0.
	// The encoded program is expected at the start of it.
	Memory []byte
	// Storage is the initial image of the storage address space.
	Storage []byte

	// MemoryLimit and StorageLimit bound the spaces when non-zero.
	// Unbounded spaces cover the full 2^32 range, zero-filled.
	MemoryLimit  uint32
	StorageLimit uint32
}

// Machine owns one register file, two address spaces and a program counter,
// configured for exactly one ISA revision.
type Machine struct {
	set     *isa.Set
	devices device.Surface
	logger  *log.Logger

	regs    register.File
	mem     *memory.Space
	storage *memory.Space

	pc     uint32
	clk    uint64
	halted bool

	gfxBase   uint32
	gfxWidth  uint16
	gfxHeight uint16
}

// New creates a machine at reset state: all registers 0, PC 0, the given
// images written to the address spaces.
func New(cfg Config) (*Machine, error) {
	set, err := isa.SetFor(cfg.Revision)
	if err != nil {
		return nil, err
	}
	if cfg.Devices == nil {
		return nil, errors.New("no device surface configured")
	}

	m := &Machine{
		set:     set,
		devices: cfg.Devices,
		logger:  cfg.Logger,
		mem:     newSpace(cfg.MemoryLimit),
		storage: newSpace(cfg.StorageLimit),
	}

	if err := m.mem.Write(0, cfg.Memory); err != nil {
		return nil, fmt.Errorf("loading memory image: %w", err)
	}
	if err := m.storage.Write(0, cfg.Storage); err != nil {
		return nil, fmt.Errorf("loading storage image: %w", err)
	}
	return m, nil
}

func newSpace(limit uint32) *memory.Space {
	if limit == 0 {
		return memory.New()
	}
	return memory.NewBounded(limit)
}

// Run executes instructions until the program halts, an error occurs or the
// context is cancelled.
func (m *Machine) Run(ctx context.Context) error {
	for !m.halted {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := m.Step(); err != nil {
			return err
		}
	}
	return nil
}

// Step fetches, decodes and executes a single instruction.
func (m *Machine) Step() error {
	if m.halted {
		return nil
	}

	inst, size, err := m.fetch()
	if err != nil {
		return err
	}
	kind, ok := m.set.Lookup(inst.Mode, inst.Opcode)
	if !ok {
		// unreachable, the codec already validated the pair
		return fmt.Errorf("%w: unknown opcode 0x%02x in mode %d",
			codec.ErrMalformedInstruction, inst.Opcode, inst.Mode)
	}

	if m.logger != nil {
		m.logger.Debug("exec",
			log.Hex("pc", m.pc),
			log.String("op", kind.String()))
	}

	next := m.pc + size
	switch inst.Mode {
	case isa.ModeSystem:
		err = m.execSystem(kind, inst)
	case isa.ModeALU:
		m.execALU(kind, inst)
	case isa.ModeBranch:
		next, err = m.execBranch(kind, inst, next)
	case isa.ModeStack:
		next, err = m.execStack(kind, inst, next)
	}
	if err != nil {
		return err
	}

	m.pc = next
	m.clk += cycleCost(kind)
	return nil
}

// fetch decodes the instruction at the program counter. It reads up to a
// full 8-byte window from bus memory, falling back to the 4-byte header at
// the very end of a bounded space.
func (m *Machine) fetch() (isa.Instruction, uint32, error) {
	var window [isa.FullSize]byte
	buf := window[:]
	if err := m.mem.Read(m.pc, buf); err != nil {
		buf = window[:isa.HeaderSize]
		if err := m.mem.Read(m.pc, buf); err != nil {
			return isa.Instruction{}, 0, err
		}
	}
	return codec.Decode(m.set, buf, 0)
}

// cycleCost returns the cost of one instruction in machine cycles.
// Operations touching an address space take two cycles, all others one.
func cycleCost(kind isa.Kind) uint64 {
	if kind.TouchesMemory() {
		return 2
	}
	return 1
}

// operandB resolves the second source operand: the immediate when present,
// the argB register otherwise.
func (m *Machine) operandB(inst isa.Instruction) uint32 {
	if inst.HasImm {
		return inst.Imm
	}
	return m.regs.Get(inst.ArgB)
}

// operandA resolves a register-or-immediate operand held in the argA field.
func (m *Machine) operandA(inst isa.Instruction) uint32 {
	if inst.HasImm {
		return inst.Imm
	}
	return m.regs.Get(inst.ArgA)
}

// PC returns the current program counter.
func (m *Machine) PC() uint32 {
	return m.pc
}

// Halted returns true once a hlt instruction was executed.
func (m *Machine) Halted() bool {
	return m.halted
}

// Cycles returns the accumulated machine cycle count.
func (m *Machine) Cycles() uint64 {
	return m.clk
}

// Register reads a register of the file.
func (m *Machine) Register(index uint8) uint32 {
	return m.regs.Get(index)
}

// SetRegister writes a register of the file.
func (m *Machine) SetRegister(index uint8, value uint32) {
	m.regs.Set(index, value)
}

// Memory returns the bus memory space.
func (m *Machine) Memory() *memory.Space {
	return m.mem
}

// Storage returns the storage space.
func (m *Machine) Storage() *memory.Space {
	return m.storage
}
