// Package isa defines the data model of the Aspen instruction set:
// instruction layout, operation kinds and the two revision-scoped opcode
// tables. It carries no execution state; the tables are immutable after
// package initialization and safe for concurrent readers.
package isa

import (
	"fmt"
)

// Revision selects one of the two mutually exclusive ISA dialects.
// The dialects are not binary compatible and are never auto-detected;
// a machine is configured for exactly one of them.
type Revision string

// Supported ISA revisions.
const (
	RevisionV1    Revision = "v1"
	RevisionGraft Revision = "graft"
)

// Mode is the top-level 2-bit instruction class selector.
type Mode uint8

// Instruction modes.
const (
	ModeSystem Mode = 0 // system/IO and load/store family
	ModeALU    Mode = 1
	ModeBranch Mode = 2
	ModeStack  Mode = 3
)

// Instruction header layout, 4 bytes:
//
//	byte 0: MMIDDDDD  mode (2 bits) | immediate flag (1 bit) | dest (5 bits)
//	byte 1: opcode
//	byte 2: argA (low 5 bits used when a register index)
//	byte 3: argB (low 5 bits used when a register index)
//
// When the immediate flag is set, a 32-bit little-endian immediate follows
// the header, for a total length of 8 bytes.
const (
	// HeaderSize is the encoded size of an instruction without immediate.
	HeaderSize = 4
	// FullSize is the encoded size of an instruction with immediate.
	FullSize = 8
)

// Instruction is one decoded machine instruction. It is immutable once
// decoded; the execution engine consumes and discards it in one step.
type Instruction struct {
	Mode   Mode
	Opcode uint8
	HasImm bool
	Dest   uint8 // destination register index, meaning depends on mode/opcode
	ArgA   uint8
	ArgB   uint8
	Imm    uint32 // valid iff HasImm is set
}

// Size returns the encoded size of the instruction in bytes.
func (i Instruction) Size() uint32 {
	if i.HasImm {
		return FullSize
	}
	return HeaderSize
}

// key packs a (mode, opcode) pair for table lookups.
func key(mode Mode, opcode uint8) uint16 {
	return uint16(mode)<<8 | uint16(opcode)
}

// entry declares one opcode assignment of a revision table.
type entry struct {
	mode   Mode
	opcode uint8
	kind   Kind
}

// Set is the opcode table of one ISA revision. Opcode meaning is revision
// scoped: the same (mode, opcode) pair can map to different operations in
// different revisions.
type Set struct {
	revision Revision
	byCode   map[uint16]Kind
	byKind   map[Kind]uint16
}

func newSet(revision Revision, entries []entry) *Set {
	s := &Set{
		revision: revision,
		byCode:   make(map[uint16]Kind, len(entries)),
		byKind:   make(map[Kind]uint16, len(entries)),
	}
	for _, e := range entries {
		k := key(e.mode, e.opcode)
		if _, ok := s.byCode[k]; ok {
			panic(fmt.Sprintf("isa: duplicate opcode 0x%02x in mode %d of revision %s",
				e.opcode, e.mode, revision))
		}
		s.byCode[k] = e.kind
		s.byKind[e.kind] = k
	}
	return s
}

// Revision returns the revision this table belongs to.
func (s *Set) Revision() Revision {
	return s.revision
}

// Lookup returns the operation assigned to the (mode, opcode) pair,
// or false if the pair has no mapping in this revision.
func (s *Set) Lookup(mode Mode, opcode uint8) (Kind, bool) {
	kind, ok := s.byCode[key(mode, opcode)]
	return kind, ok
}

// Encoding returns the (mode, opcode) pair of an operation,
// or false if the operation does not exist in this revision.
func (s *Set) Encoding(kind Kind) (Mode, uint8, bool) {
	k, ok := s.byKind[kind]
	if !ok {
		return 0, 0, false
	}
	return Mode(k >> 8), uint8(k), true
}

// Kinds returns all operations of this revision, for iteration in tests.
func (s *Set) Kinds() []Kind {
	kinds := make([]Kind, 0, len(s.byKind))
	for kind := range s.byKind {
		kinds = append(kinds, kind)
	}
	return kinds
}

// SetFor returns the opcode table of a revision.
func SetFor(revision Revision) (*Set, error) {
	switch revision {
	case RevisionV1:
		return v1Set, nil
	case RevisionGraft:
		return graftSet, nil
	default:
		return nil, fmt.Errorf("unsupported ISA revision '%s'", revision)
	}
}
