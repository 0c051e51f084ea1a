package bytecode

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// ErrTruncatedStream reports that a method's instruction stream ended
// mid-instruction (or a payload declared more units than remain). The
// instructions decoded up to that point are still returned.
var ErrTruncatedStream = errors.New("bytecode: truncated instruction stream")

// ErrStepLimit reports that a method body exceeded the per-method
// instruction cap. The instructions decoded within the cap are still
// returned.
var ErrStepLimit = errors.New("bytecode: instruction cap exceeded")

// Fault tags an instruction that decoded in degraded form.
type Fault uint8

const (
	FaultNone        Fault = iota
	FaultUnsupported       // unrecognized opcode byte; minimal width consumed
)

// Payload describes a multi-unit pseudo-instruction consumed as one
// opaque block.
type Payload struct {
	Kind  string // "packed-switch", "sparse-switch", "fill-array-data"
	Count uint32 // switch entries / array elements
	Units uint32 // total units consumed including the ident unit
}

// Instruction is one decoded Dalvik instruction.
type Instruction struct {
	Offset  uint32 // code-unit offset within the method
	Opcode  byte
	Info    OpInfo
	Regs    []uint16 // operand registers; for invoke forms, argument registers
	Literal int64    // literal operand, format-dependent
	Index   uint32   // string/type/field/method table index
	Branch  int32    // signed branch offset in code units
	Units   uint32   // consumed width in code units
	Fault   Fault
	Payload *Payload // non-nil for opaque payload blocks
}

// Target returns the absolute branch target in code units.
func (in *Instruction) Target() uint32 {
	return uint32(int64(in.Offset) + int64(in.Branch))
}

// Payload ident values: a nop opcode whose high byte selects the table
// kind.
const (
	identPackedSwitch  = 0x0100
	identSparseSwitch  = 0x0200
	identFillArrayData = 0x0300
)

// Decode decodes one method's instruction stream. insns must be the
// exact declared stream (its length in bytes is twice the declared
// unit count). On a truncation fault the partial instruction list is
// returned together with ErrTruncatedStream; unknown opcodes never
// fail the stream, they decode as flagged single-unit instructions.
func Decode(insns []byte) ([]Instruction, error) {
	return DecodeN(insns, 0)
}

// DecodeN is Decode with a cap on the number of decoded instructions.
// maxSteps <= 0 means no cap.
func DecodeN(insns []byte, maxSteps int) ([]Instruction, error) {
	nUnits := uint32(len(insns) / 2)
	if len(insns)%2 != 0 {
		return nil, fmt.Errorf("%w: odd byte length %d", ErrTruncatedStream, len(insns))
	}
	unit := func(i uint32) uint16 {
		return binary.LittleEndian.Uint16(insns[2*i:])
	}

	var out []Instruction
	for pc := uint32(0); pc < nUnits; {
		if maxSteps > 0 && len(out) >= maxSteps {
			return out, fmt.Errorf("%w: %d instructions", ErrStepLimit, len(out))
		}
		u0 := unit(pc)
		op := byte(u0)
		hi := uint16(u0 >> 8)

		if op == 0x00 && u0 != 0x0000 {
			in, err := decodePayload(unit, pc, nUnits, u0)
			out = append(out, in)
			if err != nil {
				return out, err
			}
			pc += in.Units
			continue
		}

		info := Lookup(op)
		in := Instruction{Offset: pc, Opcode: op, Info: info, Units: uint32(info.Format.Units())}
		if info.Format == FmtUnknown {
			in.Fault = FaultUnsupported
			out = append(out, in)
			pc++
			continue
		}
		if pc+in.Units > nUnits {
			in.Units = nUnits - pc
			out = append(out, in)
			return out, fmt.Errorf("%w: %s at unit %d needs %d units, %d remain",
				ErrTruncatedStream, info.Name, pc, info.Format.Units(), nUnits-pc)
		}

		switch info.Format {
		case Fmt10x:
			// no operands
		case Fmt12x:
			in.Regs = []uint16{hi & 0xf, hi >> 4}
		case Fmt11n:
			in.Regs = []uint16{hi & 0xf}
			in.Literal = int64(int8(hi&0xf0) >> 4) // sign-extended high nibble
		case Fmt11x:
			in.Regs = []uint16{hi}
		case Fmt10t:
			in.Branch = int32(int8(hi))
		case Fmt20t:
			in.Branch = int32(int16(unit(pc + 1)))
		case Fmt22x:
			in.Regs = []uint16{hi, unit(pc + 1)}
		case Fmt21t:
			in.Regs = []uint16{hi}
			in.Branch = int32(int16(unit(pc + 1)))
		case Fmt21s:
			in.Regs = []uint16{hi}
			in.Literal = int64(int16(unit(pc + 1)))
		case Fmt21h:
			in.Regs = []uint16{hi}
			in.Literal = int64(int16(unit(pc+1))) << info.Shift
		case Fmt21c:
			in.Regs = []uint16{hi}
			in.Index = uint32(unit(pc + 1))
		case Fmt23x:
			u1 := unit(pc + 1)
			in.Regs = []uint16{hi, u1 & 0xff, u1 >> 8}
		case Fmt22b:
			u1 := unit(pc + 1)
			in.Regs = []uint16{hi, u1 & 0xff}
			in.Literal = int64(int8(u1 >> 8))
		case Fmt22t:
			in.Regs = []uint16{hi & 0xf, hi >> 4}
			in.Branch = int32(int16(unit(pc + 1)))
		case Fmt22s:
			in.Regs = []uint16{hi & 0xf, hi >> 4}
			in.Literal = int64(int16(unit(pc + 1)))
		case Fmt22c:
			in.Regs = []uint16{hi & 0xf, hi >> 4}
			in.Index = uint32(unit(pc + 1))
		case Fmt30t:
			in.Branch = int32(uint32(unit(pc+1)) | uint32(unit(pc+2))<<16)
		case Fmt32x:
			in.Regs = []uint16{unit(pc + 1), unit(pc + 2)}
		case Fmt31i:
			in.Regs = []uint16{hi}
			in.Literal = int64(int32(uint32(unit(pc+1)) | uint32(unit(pc+2))<<16))
		case Fmt31t:
			in.Regs = []uint16{hi}
			in.Branch = int32(uint32(unit(pc+1)) | uint32(unit(pc+2))<<16)
		case Fmt31c:
			in.Regs = []uint16{hi}
			in.Index = uint32(unit(pc+1)) | uint32(unit(pc+2))<<16
		case Fmt35c:
			in.Index = uint32(unit(pc + 1))
			u2 := unit(pc + 2)
			argc := hi >> 4
			all := [5]uint16{u2 & 0xf, (u2 >> 4) & 0xf, (u2 >> 8) & 0xf, (u2 >> 12) & 0xf, hi & 0xf}
			if argc > 5 {
				argc = 5
			}
			in.Regs = append([]uint16(nil), all[:argc]...)
		case Fmt3rc:
			in.Index = uint32(unit(pc + 1))
			first := unit(pc + 2)
			count := hi
			regs := make([]uint16, 0, count)
			for i := uint16(0); i < count; i++ {
				regs = append(regs, first+i)
			}
			in.Regs = regs
		case Fmt51l:
			in.Regs = []uint16{hi}
			in.Literal = int64(uint64(unit(pc+1)) | uint64(unit(pc+2))<<16 |
				uint64(unit(pc+3))<<32 | uint64(unit(pc+4))<<48)
		}

		out = append(out, in)
		pc += in.Units
	}
	return out, nil
}

// decodePayload consumes a switch-table or fill-array-data pseudo
// instruction as one opaque block of its declared length.
func decodePayload(unit func(uint32) uint16, pc, nUnits uint32, ident uint16) (Instruction, error) {
	in := Instruction{Offset: pc, Opcode: 0x00, Info: Lookup(0x00)}
	p := &Payload{}
	var declared uint32

	need := func(n uint32) bool { return pc+n <= nUnits }

	switch ident {
	case identPackedSwitch:
		p.Kind = "packed-switch"
		if !need(2) {
			break
		}
		p.Count = uint32(unit(pc + 1))
		declared = p.Count*2 + 4
	case identSparseSwitch:
		p.Kind = "sparse-switch"
		if !need(2) {
			break
		}
		p.Count = uint32(unit(pc + 1))
		declared = p.Count*4 + 2
	case identFillArrayData:
		p.Kind = "fill-array-data"
		if !need(4) {
			break
		}
		width := uint32(unit(pc + 1))
		p.Count = uint32(unit(pc+2)) | uint32(unit(pc+3))<<16
		declared = (p.Count*width+1)/2 + 4
	default:
		// nop with a stray high byte; treat as a plain nop unit.
		in.Units = 1
		return in, nil
	}

	in.Payload = p
	if declared == 0 || pc+declared > nUnits {
		// Consume the remainder so the caller sees the exact shortfall.
		p.Units = nUnits - pc
		in.Units = p.Units
		return in, fmt.Errorf("%w: %s payload at unit %d declares %d units, %d remain",
			ErrTruncatedStream, p.Kind, pc, declared, nUnits-pc)
	}
	p.Units = declared
	in.Units = declared
	return in, nil
}
