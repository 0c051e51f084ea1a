// Package bytecode decodes Dalvik instruction streams.
//
// The instruction set is driven by a closed operand-format enumeration
// and a single 256-entry opcode table, so the decode loop itself is a
// plain lookup with no per-opcode branching.
package bytecode

// Format identifies the operand layout following an opcode. The names
// follow the dex format convention: <units><registers><extra>, e.g.
// Fmt22t is two units, two registers, a branch target.
type Format uint8

const (
	Fmt10x Format = iota // op
	Fmt12x               // op vA, vB
	Fmt11n               // op vA, #+B
	Fmt11x               // op vAA
	Fmt10t               // op +AA
	Fmt20t               // op +AAAA
	Fmt22x               // op vAA, vBBBB
	Fmt21t               // op vAA, +BBBB
	Fmt21s               // op vAA, #+BBBB
	Fmt21h               // op vAA, #+BBBB0000(00000000)
	Fmt21c               // op vAA, thing@BBBB
	Fmt23x               // op vAA, vBB, vCC
	Fmt22b               // op vAA, vBB, #+CC
	Fmt22t               // op vA, vB, +CCCC
	Fmt22s               // op vA, vB, #+CCCC
	Fmt22c               // op vA, vB, thing@CCCC
	Fmt30t               // op +AAAAAAAA
	Fmt32x               // op vAAAA, vBBBB
	Fmt31i               // op vAA, #+BBBBBBBB
	Fmt31t               // op vAA, +BBBBBBBB
	Fmt31c               // op vAA, string@BBBBBBBB
	Fmt35c               // op {vC..vG}, thing@BBBB
	Fmt3rc               // op {vCCCC..vNNNN}, thing@BBBB
	Fmt51l               // op vAA, #+BBBBBBBBBBBBBBBB
	FmtUnknown           // unrecognized opcode; one unit is consumed
)

// Units returns the fixed instruction width in 16-bit code units.
func (f Format) Units() int {
	switch f {
	case Fmt10x, Fmt12x, Fmt11n, Fmt11x, Fmt10t:
		return 1
	case Fmt20t, Fmt22x, Fmt21t, Fmt21s, Fmt21h, Fmt21c, Fmt23x, Fmt22b, Fmt22t, Fmt22s, Fmt22c:
		return 2
	case Fmt30t, Fmt32x, Fmt31i, Fmt31t, Fmt31c, Fmt35c, Fmt3rc:
		return 3
	case Fmt51l:
		return 5
	default:
		return 1
	}
}

func (f Format) String() string {
	names := [...]string{
		"10x", "12x", "11n", "11x", "10t", "20t", "22x", "21t", "21s",
		"21h", "21c", "23x", "22b", "22t", "22s", "22c", "30t", "32x",
		"31i", "31t", "31c", "35c", "3rc", "51l", "unknown",
	}
	if int(f) < len(names) {
		return names[f]
	}
	return "invalid"
}
