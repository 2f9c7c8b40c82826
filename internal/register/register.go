// Package register implements the machine register file: 32 general purpose
// 32-bit registers addressed by a 5-bit operand field. Register 0 is the
// zero register; it always reads 0 and writes to it are discarded.
package register

// Count is the number of registers in the file.
const Count = 32

// Register indices by their conventional names. The caller-saved and
// callee-saved roles are a software calling convention only; the machine
// enforces nothing beyond the zero register and the stack pointer usage of
// the push/pop/call/ret operations.
const (
	Zr = iota // zero register
	Ra        // return address
	Sp        // stack pointer
	Gp        // global pointer
	Tp        // thread pointer
	T0
	T1
	T2
	T3
	T4
	T5
	T6
	S0 // saved 0 / frame pointer
	S1
	S2
	S3
	S4
	S5
	S6
	S7
	S8
	S9
	S10
	S11
	A0 // function argument 0 / return value 0
	A1
	A2
	A3
	A4
	A5
	A6
	A7
)

var names = [Count]string{
	"zr", "ra", "sp", "gp", "tp",
	"t0", "t1", "t2", "t3", "t4", "t5", "t6",
	"s0", "s1", "s2", "s3", "s4", "s5", "s6", "s7", "s8", "s9", "s10", "s11",
	"a0", "a1", "a2", "a3", "a4", "a5", "a6", "a7",
}

// Name returns the conventional name of a register index.
func Name(index uint8) string {
	return names[index&0x1f]
}

// File is the register file of one machine. The zero value is a reset file
// with all registers 0.
type File struct {
	regs [Count]uint32
}

// Get reads a register. Indices use the low 5 bits only.
func (f *File) Get(index uint8) uint32 {
	return f.regs[index&0x1f]
}

// Set writes a register. Writes to the zero register are discarded.
func (f *File) Set(index uint8, value uint32) {
	index &= 0x1f
	if index == Zr {
		return
	}
	f.regs[index] = value
}

// Reset sets all registers to 0.
func (f *File) Reset() {
	f.regs = [Count]uint32{}
}
