package machine

import (
	"context"
	"errors"
	"testing"

	"github.com/retroenv/aspenemu/internal/codec"
	"github.com/retroenv/aspenemu/internal/device"
	"github.com/retroenv/aspenemu/internal/isa"
	"github.com/retroenv/aspenemu/internal/register"
	"github.com/retroenv/retrogolib/assert"
)

// testSet resolves the opcode table of a revision.
func testSet(t *testing.T, revision isa.Revision) *isa.Set {
	t.Helper()
	set, err := isa.SetFor(revision)
	assert.NoError(t, err)
	return set
}

// ins fills in the mode and opcode of an instruction from its kind.
func ins(t *testing.T, set *isa.Set, kind isa.Kind, inst isa.Instruction) isa.Instruction {
	t.Helper()
	mode, opcode, ok := set.Encoding(kind)
	assert.True(t, ok)
	inst.Mode = mode
	inst.Opcode = opcode
	return inst
}

// assemble encodes a program into its bus memory image.
func assemble(t *testing.T, set *isa.Set, insts ...isa.Instruction) []byte {
	t.Helper()
	var image []byte
	for _, inst := range insts {
		data, err := codec.Encode(set, inst)
		assert.NoError(t, err)
		image = append(image, data...)
	}
	return image
}

// newTestMachine creates a machine at reset with the program at address 0
// and a recording device surface.
func newTestMachine(t *testing.T, revision isa.Revision, program []byte) (*Machine, *device.Recorder) {
	t.Helper()
	rec := device.NewRecorder()
	m, err := New(Config{
		Revision: revision,
		Devices:  rec,
		Memory:   program,
	})
	assert.NoError(t, err)
	return m, rec
}

// runProgram executes until the program halts.
func runProgram(t *testing.T, m *Machine) {
	t.Helper()
	assert.NoError(t, m.Run(context.Background()))
	assert.True(t, m.Halted())
}

func TestNewUnknownRevision(t *testing.T) {
	_, err := New(Config{
		Revision: "v2",
		Devices:  device.NewRecorder(),
	})
	assert.ErrorContains(t, err, "unsupported ISA revision")
}

func TestNewRequiresDeviceSurface(t *testing.T) {
	_, err := New(Config{Revision: isa.RevisionGraft})
	assert.ErrorContains(t, err, "no device surface")
}

func TestHalt(t *testing.T) {
	set := testSet(t, isa.RevisionGraft)
	program := assemble(t, set,
		ins(t, set, isa.Hlt, isa.Instruction{}),
	)
	m, _ := newTestMachine(t, isa.RevisionGraft, program)

	runProgram(t, m)
	assert.Equal(t, uint32(isa.HeaderSize), m.PC())
	assert.Equal(t, uint64(1), m.Cycles())
}

// After halting, further steps are no-ops and leave the state untouched.
func TestStepAfterHalt(t *testing.T) {
	set := testSet(t, isa.RevisionGraft)
	program := assemble(t, set,
		ins(t, set, isa.Hlt, isa.Instruction{}),
	)
	m, _ := newTestMachine(t, isa.RevisionGraft, program)

	runProgram(t, m)
	pc, clk := m.PC(), m.Cycles()

	assert.NoError(t, m.Step())
	assert.Equal(t, pc, m.PC())
	assert.Equal(t, clk, m.Cycles())
}

func TestRunCancelledContext(t *testing.T) {
	set := testSet(t, isa.RevisionGraft)
	// endless loop
	program := assemble(t, set,
		ins(t, set, isa.Jmp, isa.Instruction{HasImm: true, Imm: 0}),
	)
	m, _ := newTestMachine(t, isa.RevisionGraft, program)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := m.Run(ctx)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.False(t, m.Halted())
}

// A fetch at the very end of a bounded space reads the 4-byte header even
// though the full 8-byte window would fault.
func TestFetchAtBoundedEnd(t *testing.T) {
	set := testSet(t, isa.RevisionGraft)
	program := assemble(t, set,
		ins(t, set, isa.Nop, isa.Instruction{}),
		ins(t, set, isa.Hlt, isa.Instruction{}),
	)
	rec := device.NewRecorder()
	m, err := New(Config{
		Revision:    isa.RevisionGraft,
		Devices:     rec,
		Memory:      program,
		MemoryLimit: uint32(len(program)),
	})
	assert.NoError(t, err)

	runProgram(t, m)
	assert.Equal(t, uint32(len(program)), m.PC())
}

func TestFetchFault(t *testing.T) {
	rec := device.NewRecorder()
	m, err := New(Config{
		Revision:    isa.RevisionGraft,
		Devices:     rec,
		MemoryLimit: 2,
	})
	assert.NoError(t, err)

	assert.Error(t, m.Step())
}

func TestImagesLoadedAtReset(t *testing.T) {
	rec := device.NewRecorder()
	m, err := New(Config{
		Revision: isa.RevisionGraft,
		Devices:  rec,
		Memory:   []byte{0x11, 0x22},
		Storage:  []byte{0x33, 0x44},
	})
	assert.NoError(t, err)

	b, err := m.Memory().ReadByte(1)
	assert.NoError(t, err)
	assert.Equal(t, uint8(0x22), b)

	b, err = m.Storage().ReadByte(0)
	assert.NoError(t, err)
	assert.Equal(t, uint8(0x33), b)

	for i := uint8(0); i < register.Count; i++ {
		assert.Equal(t, uint32(0), m.Register(i))
	}
	assert.Equal(t, uint32(0), m.PC())
	assert.Equal(t, uint64(0), m.Cycles())
}

func TestImageTooLargeForBoundedSpace(t *testing.T) {
	_, err := New(Config{
		Revision:    isa.RevisionGraft,
		Devices:     device.NewRecorder(),
		Memory:      []byte{1, 2, 3, 4},
		MemoryLimit: 2,
	})
	assert.ErrorContains(t, err, "loading memory image")
}
