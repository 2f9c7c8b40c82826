package machine

import (
	"errors"
	"math/bits"

	"github.com/retroenv/aspenemu/internal/device"
	"github.com/retroenv/aspenemu/internal/isa"
)

// displayConfigSize is the size of the setgfx configuration block in bus
// memory: width, height and fps as 16-bit values, 2 bytes padding, then the
// 32-bit framebuffer base address, all little-endian.
const displayConfigSize = 12

// execSystem executes a mode 0 instruction: the device family and the
// load/store family.
func (m *Machine) execSystem(kind isa.Kind, inst isa.Instruction) error {
	switch kind {
	case isa.Nop:
		return nil
	case isa.Hlt:
		m.halted = true
		return nil
	case isa.Pr:
		return m.print(device.StreamOut, inst)
	case isa.Epr:
		return m.print(device.StreamErr, inst)
	case isa.Time:
		m.readTime(inst)
		return nil
	case isa.Rdpc:
		m.regs.Set(inst.Dest, m.pc)
		return nil
	case isa.Kbrd:
		key, _ := m.devices.PollKey()
		m.regs.Set(inst.Dest, key)
		return nil
	case isa.Setgfx:
		return m.configureDisplay(inst)
	case isa.Draw:
		return m.draw()
	case isa.Slp:
		m.devices.SleepMs(m.operandA(inst))
		return nil
	case isa.Rdclk:
		m.regs.Set(inst.ArgA, uint32(m.clk))
		m.regs.Set(inst.ArgB, uint32(m.clk>>32))
		return nil
	default:
		return m.execMemory(kind, inst)
	}
}

// print writes the UTF-8 bytes of mem[argA..argB) to an output stream.
// An empty or inverted range writes nothing.
func (m *Machine) print(stream device.Stream, inst isa.Instruction) error {
	start := m.regs.Get(inst.ArgA)
	end := m.regs.Get(inst.ArgB)
	if end <= start {
		return nil
	}

	text := make([]byte, end-start)
	if err := m.mem.Read(start, text); err != nil {
		return err
	}
	if err := m.devices.WriteText(stream, text); err != nil {
		return &device.Error{Op: stream.String(), Err: err}
	}
	return nil
}

// readTime decomposes the current time as 128-bit nanoseconds since the
// Unix epoch across four registers: dest receives bits 0-31, argA bits
// 32-63, argB bits 64-95. The register named by the low immediate byte
// receives bits 96-127 when the immediate flag is set; without it the top
// dword is discarded.
func (m *Machine) readTime(inst isa.Instruction) {
	now := m.devices.Now()
	hi, lo := bits.Mul64(uint64(now.Unix()), 1e9)
	var carry uint64
	lo, carry = bits.Add64(lo, uint64(now.Nanosecond()), 0)
	hi += carry

	m.regs.Set(inst.Dest, uint32(lo))
	m.regs.Set(inst.ArgA, uint32(lo>>32))
	m.regs.Set(inst.ArgB, uint32(hi))
	if inst.HasImm {
		m.regs.Set(uint8(inst.Imm), uint32(hi>>32))
	}
}

// configureDisplay reads the display configuration block at the operand
// address, stores the framebuffer location and forwards the mode to the
// device surface.
func (m *Machine) configureDisplay(inst isa.Instruction) error {
	addr := m.operandA(inst)
	var block [displayConfigSize]byte
	if err := m.mem.Read(addr, block[:]); err != nil {
		return err
	}

	width := uint16(block[0]) | uint16(block[1])<<8
	height := uint16(block[2]) | uint16(block[3])<<8
	fps := uint16(block[4]) | uint16(block[5])<<8
	base := uint32(block[8]) | uint32(block[9])<<8 | uint32(block[10])<<16 | uint32(block[11])<<24

	m.gfxWidth = width
	m.gfxHeight = height
	m.gfxBase = base

	if err := m.devices.ConfigureDisplay(width, height, fps); err != nil {
		return &device.Error{Op: "setgfx", Err: err}
	}
	return nil
}

// draw transfers the current framebuffer contents from bus memory to the
// display. The transfer completes before the next instruction is fetched.
func (m *Machine) draw() error {
	if m.gfxWidth == 0 || m.gfxHeight == 0 {
		return &device.Error{Op: "draw", Err: errors.New("display not configured")}
	}

	pixels := make([]byte, 4*uint32(m.gfxWidth)*uint32(m.gfxHeight))
	if err := m.mem.Read(m.gfxBase, pixels); err != nil {
		return err
	}
	if err := m.devices.PresentFramebuffer(pixels); err != nil {
		return &device.Error{Op: "draw", Err: err}
	}
	return nil
}

// execMemory executes the load/store family. Loads are
// dest <- space[argA or imm] with zero extension; stores are
// space[dest] <- (argA or imm) writing only the low bytes of the value at
// narrow granularity.
func (m *Machine) execMemory(kind isa.Kind, inst isa.Instruction) error {
	space := m.mem
	switch kind {
	case isa.Sld, isa.Sldw, isa.Sldb, isa.Sst, isa.Sstw, isa.Sstb:
		space = m.storage
	}

	switch kind {
	case isa.Ld, isa.Sld:
		value, err := space.ReadDword(m.operandA(inst))
		if err != nil {
			return err
		}
		m.regs.Set(inst.Dest, value)

	case isa.Ldw, isa.Sldw:
		value, err := space.ReadWord(m.operandA(inst))
		if err != nil {
			return err
		}
		m.regs.Set(inst.Dest, uint32(value))

	case isa.Ldb, isa.Sldb:
		value, err := space.ReadByte(m.operandA(inst))
		if err != nil {
			return err
		}
		m.regs.Set(inst.Dest, uint32(value))

	case isa.Str, isa.Sst:
		return space.WriteDword(m.regs.Get(inst.Dest), m.operandA(inst))

	case isa.Strw, isa.Sstw:
		return space.WriteWord(m.regs.Get(inst.Dest), uint16(m.operandA(inst)))

	case isa.Strb, isa.Sstb:
		return space.WriteByte(m.regs.Get(inst.Dest), uint8(m.operandA(inst)))
	}
	return nil
}
