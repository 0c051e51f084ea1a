package bytecode

import (
	"encoding/binary"
	"errors"
	"testing"
)

// units builds a little-endian instruction stream from 16-bit code units.
func units(us ...uint16) []byte {
	out := make([]byte, 2*len(us))
	for i, u := range us {
		binary.LittleEndian.PutUint16(out[2*i:], u)
	}
	return out
}

func TestDecodeWidths(t *testing.T) {
	// One instruction per format width; decoded lengths must sum to
	// the declared stream length.
	stream := units(
		0x0000,         // nop (10x)
		0x2112,         // const/4 v1, #2 (11n)
		0x0113, 0x0400, // const/16 v1, #4 (21s)
		0x0014, 0x1234, 0x5678, // const v0 (31i)
		0x0018, 0x1111, 0x2222, 0x3333, 0x4444, // const-wide (51l)
		0x000e, // return-void
	)
	insts, err := Decode(stream)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	wantUnits := []uint32{1, 1, 2, 3, 5, 1}
	if len(insts) != len(wantUnits) {
		t.Fatalf("decoded %d instructions, want %d", len(insts), len(wantUnits))
	}
	var sum uint32
	for i, in := range insts {
		if in.Units != wantUnits[i] {
			t.Errorf("inst %d (%s): %d units, want %d", i, in.Info.Name, in.Units, wantUnits[i])
		}
		if in.Offset != sum {
			t.Errorf("inst %d: offset %d, want %d", i, in.Offset, sum)
		}
		sum += in.Units
	}
	if sum != uint32(len(stream)/2) {
		t.Errorf("unit sum %d != stream length %d", sum, len(stream)/2)
	}
}

func TestDecodeOperands(t *testing.T) {
	tests := []struct {
		name   string
		stream []byte
		check  func(t *testing.T, in Instruction)
	}{
		{
			"const4-negative", units(0xF112),
			func(t *testing.T, in Instruction) {
				if in.Regs[0] != 1 || in.Literal != -1 {
					t.Errorf("got v%d = %d, want v1 = -1", in.Regs[0], in.Literal)
				}
			},
		},
		{
			"move12x", units(0x3201), // move v2, v3
			func(t *testing.T, in Instruction) {
				if in.Regs[0] != 2 || in.Regs[1] != 3 {
					t.Errorf("regs = %v, want [2 3]", in.Regs)
				}
			},
		},
		{
			"if-eqz-backward", units(0x0038, 0xFFFE), // if-eqz v0, -2
			func(t *testing.T, in Instruction) {
				if in.Branch != -2 {
					t.Errorf("branch = %d, want -2", in.Branch)
				}
			},
		},
		{
			"const-high16", units(0x0015, 0x0001), // const/high16 v0, #1<<16
			func(t *testing.T, in Instruction) {
				if in.Literal != 1<<16 {
					t.Errorf("literal = %d, want %d", in.Literal, 1<<16)
				}
			},
		},
		{
			"invoke-virtual-args", units(0x206e, 0x0007, 0x0043), // invoke-virtual {v3, v4}, method@7
			func(t *testing.T, in Instruction) {
				if in.Index != 7 {
					t.Errorf("index = %d, want 7", in.Index)
				}
				if len(in.Regs) != 2 || in.Regs[0] != 3 || in.Regs[1] != 4 {
					t.Errorf("regs = %v, want [3 4]", in.Regs)
				}
			},
		},
		{
			"invoke-range", units(0x0374, 0x0002, 0x0005), // invoke-virtual/range {v5..v7}, method@2
			func(t *testing.T, in Instruction) {
				if len(in.Regs) != 3 || in.Regs[0] != 5 || in.Regs[2] != 7 {
					t.Errorf("regs = %v, want [5 6 7]", in.Regs)
				}
			},
		},
		{
			"add-int23x", units(0x0290, 0x0100), // add-int v2, v0, v1
			func(t *testing.T, in Instruction) {
				if in.Regs[0] != 2 || in.Regs[1] != 0 || in.Regs[2] != 1 {
					t.Errorf("regs = %v, want [2 0 1]", in.Regs)
				}
			},
		},
		{
			"lit8-negative", units(0x00d8, 0xFF01), // add-int/lit8 v0, v1, #-1
			func(t *testing.T, in Instruction) {
				if in.Regs[1] != 1 || in.Literal != -1 {
					t.Errorf("got v%d + %d, want v1 + -1", in.Regs[1], in.Literal)
				}
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			insts, err := Decode(tt.stream)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if len(insts) != 1 {
				t.Fatalf("decoded %d instructions, want 1", len(insts))
			}
			tt.check(t, insts[0])
		})
	}
}

func TestDecodeUnknownOpcode(t *testing.T) {
	// 0x3e is a reserved opcode; it must decode as a flagged one-unit
	// instruction without aborting the rest of the stream.
	stream := units(0x003e, 0x000e)
	insts, err := Decode(stream)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(insts) != 2 {
		t.Fatalf("decoded %d instructions, want 2", len(insts))
	}
	if insts[0].Fault != FaultUnsupported {
		t.Errorf("inst 0 fault = %d, want FaultUnsupported", insts[0].Fault)
	}
	if insts[1].Info.Name != "return-void" {
		t.Errorf("decoding did not continue past unknown opcode: %v", insts[1].Info.Name)
	}
}

func TestDecodePayloadBlocks(t *testing.T) {
	// packed-switch payload: ident, size=2, first_key (2 units),
	// 2 targets (2 units each) = 2*2+4 = 8 units.
	stream := units(0x0100, 0x0002, 0x000A, 0x0000, 0x0004, 0x0000, 0x0006, 0x0000)
	insts, err := Decode(stream)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(insts) != 1 {
		t.Fatalf("decoded %d instructions, want 1 opaque block", len(insts))
	}
	p := insts[0].Payload
	if p == nil || p.Kind != "packed-switch" || p.Count != 2 || p.Units != 8 {
		t.Fatalf("payload = %+v", p)
	}

	// fill-array-data: ident, width=1, size=3 → (3*1+1)/2+4 = 6 units.
	stream = units(0x0300, 0x0001, 0x0003, 0x0000, 0x6261, 0x0063)
	insts, err = Decode(stream)
	if err != nil {
		t.Fatalf("Decode fill-array-data: %v", err)
	}
	if p := insts[0].Payload; p == nil || p.Kind != "fill-array-data" || p.Units != 6 {
		t.Fatalf("payload = %+v", insts[0].Payload)
	}
}

func TestDecodeTruncatedStream(t *testing.T) {
	// const/16 needs 2 units but only 1 remains.
	stream := units(0x000e, 0x0113)
	insts, err := Decode(stream)
	if !errors.Is(err, ErrTruncatedStream) {
		t.Fatalf("err = %v, want ErrTruncatedStream", err)
	}
	// The partial list keeps everything decoded before the fault.
	if len(insts) != 2 || insts[0].Info.Name != "return-void" {
		t.Fatalf("partial list = %d instructions", len(insts))
	}
}

func TestDecodeDeterministic(t *testing.T) {
	stream := units(0x2112, 0x0138, 0x0003, 0x000e)
	a, err1 := Decode(stream)
	b, err2 := Decode(stream)
	if err1 != nil || err2 != nil {
		t.Fatalf("Decode: %v / %v", err1, err2)
	}
	if len(a) != len(b) {
		t.Fatalf("lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].Offset != b[i].Offset || a[i].Opcode != b[i].Opcode || a[i].Literal != b[i].Literal {
			t.Errorf("inst %d differs between runs", i)
		}
	}
}

func TestFormatUnitsCoverTable(t *testing.T) {
	// Every named opcode must carry a format with a positive width.
	for op := 0; op < 256; op++ {
		info := Lookup(byte(op))
		if info.Name == "" {
			continue
		}
		if info.Format.Units() < 1 || info.Format.Units() > 5 {
			t.Errorf("opcode %#02x (%s): bad width %d", op, info.Name, info.Format.Units())
		}
	}
}

func TestDecodeNStepLimit(t *testing.T) {
	stream := units(0x0000, 0x0000, 0x0000, 0x0000)
	insts, err := DecodeN(stream, 2)
	if !errors.Is(err, ErrStepLimit) {
		t.Fatalf("err = %v, want ErrStepLimit", err)
	}
	if len(insts) != 2 {
		t.Fatalf("capped list = %d instructions, want 2", len(insts))
	}

	if _, err := DecodeN(stream, 0); err != nil {
		t.Fatalf("uncapped DecodeN: %v", err)
	}
}
