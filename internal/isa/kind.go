package isa

// Kind identifies the semantic operation of an instruction, independent of
// the (mode, opcode) pair a revision assigns to it.
type Kind uint8

// System/IO operations (mode 0).
const (
	Nop Kind = iota
	Hlt
	Pr
	Epr
	Time
	Rdpc
	Kbrd
	Setgfx
	Draw
	Slp
	Rdclk

	// Load/store family (mode 0). Loads are dest <- space[A or imm],
	// stores are space[dest] <- (A or imm).
	Ld
	Ldw
	Ldb
	Sld
	Sldw
	Sldb
	Str
	Strw
	Strb
	Sst
	Sstw
	Sstb

	// ALU operations (mode 1).
	Nand
	Or
	And
	Nor
	Add
	Sub
	Xor
	Lsl
	Lsr
	Mul
	Div
	Rem
	Cmp
	Mov
	Inc
	Dec
	Asr
	Se
	Sne
	Sl
	Sle
	Sg
	Sge

	// Branches (mode 2).
	Jmp
	Je
	Jne
	Jl
	Jge
	Jle
	Jg
	Jb
	Jae
	Jbe
	Ja

	// Stack and call (mode 3).
	Push
	Pop
	Call
	Ret
)

var kindNames = map[Kind]string{
	Nop:    "nop",
	Hlt:    "hlt",
	Pr:     "pr",
	Epr:    "epr",
	Time:   "time",
	Rdpc:   "rdpc",
	Kbrd:   "kbrd",
	Setgfx: "setgfx",
	Draw:   "draw",
	Slp:    "slp",
	Rdclk:  "rdclk",
	Ld:     "ld",
	Ldw:    "ld.w",
	Ldb:    "ld.b",
	Sld:    "sld",
	Sldw:   "sld.w",
	Sldb:   "sld.b",
	Str:    "str",
	Strw:   "str.w",
	Strb:   "str.b",
	Sst:    "sst",
	Sstw:   "sst.w",
	Sstb:   "sst.b",
	Nand:   "nand",
	Or:     "or",
	And:    "and",
	Nor:    "nor",
	Add:    "add",
	Sub:    "sub",
	Xor:    "xor",
	Lsl:    "lsl",
	Lsr:    "lsr",
	Mul:    "mul",
	Div:    "div",
	Rem:    "rem",
	Cmp:    "cmp",
	Mov:    "mov",
	Inc:    "inc",
	Dec:    "dec",
	Asr:    "asr",
	Se:     "se",
	Sne:    "sne",
	Sl:     "sl",
	Sle:    "sle",
	Sg:     "sg",
	Sge:    "sge",
	Jmp:    "jmp",
	Je:     "je",
	Jne:    "jne",
	Jl:     "jl",
	Jge:    "jge",
	Jle:    "jle",
	Jg:     "jg",
	Jb:     "jb",
	Jae:    "jae",
	Jbe:    "jbe",
	Ja:     "ja",
	Push:   "push",
	Pop:    "pop",
	Call:   "call",
	Ret:    "ret",
}

// String returns the mnemonic of the operation.
func (k Kind) String() string {
	name, ok := kindNames[k]
	if !ok {
		return "unknown"
	}
	return name
}

// TouchesMemory returns true for operations that access an address space,
// which cost an extra machine cycle.
func (k Kind) TouchesMemory() bool {
	switch k {
	case Ld, Ldw, Ldb, Sld, Sldw, Sldb, Str, Strw, Strb, Sst, Sstw, Sstb,
		Push, Pop, Call, Ret:
		return true
	default:
		return false
	}
}
