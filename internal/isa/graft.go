package isa

// graft opcode table. Conditional branches take two explicit comparison
// operands; the extra ALU operations (asr and the se..sge comparison-result
// family) and the rdclk cycle counter exist only here.
var graftSet = newSet(RevisionGraft, []entry{
	{ModeSystem, 0x00, Nop},
	{ModeSystem, 0x01, Hlt},
	{ModeSystem, 0x02, Pr},
	{ModeSystem, 0x03, Epr},
	{ModeSystem, 0x04, Time},
	{ModeSystem, 0x05, Rdpc},
	{ModeSystem, 0x06, Kbrd},
	{ModeSystem, 0x07, Setgfx},
	{ModeSystem, 0x08, Draw},
	{ModeSystem, 0x09, Slp},
	{ModeSystem, 0x0a, Rdclk},

	{ModeSystem, 0x20, Ld},
	{ModeSystem, 0x21, Ldw},
	{ModeSystem, 0x22, Ldb},
	{ModeSystem, 0x23, Sld},
	{ModeSystem, 0x24, Sldw},
	{ModeSystem, 0x25, Sldb},
	{ModeSystem, 0x26, Str},
	{ModeSystem, 0x27, Strw},
	{ModeSystem, 0x28, Strb},
	{ModeSystem, 0x29, Sst},
	{ModeSystem, 0x2a, Sstw},
	{ModeSystem, 0x2b, Sstb},

	{ModeALU, 0x00, Nand},
	{ModeALU, 0x01, Or},
	{ModeALU, 0x02, And},
	{ModeALU, 0x03, Nor},
	{ModeALU, 0x04, Add},
	{ModeALU, 0x05, Sub},
	{ModeALU, 0x06, Xor},
	{ModeALU, 0x07, Lsl},
	{ModeALU, 0x08, Lsr},
	{ModeALU, 0x09, Mul},
	{ModeALU, 0x0a, Div},
	{ModeALU, 0x0b, Rem},
	{ModeALU, 0x0c, Mov},
	{ModeALU, 0x0d, Inc},
	{ModeALU, 0x0e, Dec},
	{ModeALU, 0x0f, Asr},
	{ModeALU, 0x10, Se},
	{ModeALU, 0x11, Sne},
	{ModeALU, 0x12, Sl},
	{ModeALU, 0x13, Sle},
	{ModeALU, 0x14, Sg},
	{ModeALU, 0x15, Sge},

	{ModeBranch, 0x00, Jmp},
	{ModeBranch, 0x01, Je},
	{ModeBranch, 0x02, Jne},
	{ModeBranch, 0x03, Jl},
	{ModeBranch, 0x04, Jge},
	{ModeBranch, 0x05, Jle},
	{ModeBranch, 0x06, Jg},
	{ModeBranch, 0x07, Jb},
	{ModeBranch, 0x08, Jae},
	{ModeBranch, 0x09, Jbe},
	{ModeBranch, 0x0a, Ja},

	{ModeStack, 0x00, Push},
	{ModeStack, 0x01, Pop},
	{ModeStack, 0x02, Call},
	{ModeStack, 0x03, Ret},
})
