// Package dextest builds small synthetic DEX buffers for tests.
// Fixtures are assembled structurally (header, id tables, class data,
// code items) so tests exercise the same layout real files have.
package dextest

import (
	"encoding/binary"
	"hash/adler32"
	"unicode/utf16"
)

// NoIndex mirrors the format's absent-reference marker.
const NoIndex = 0xffffffff

// Proto is one proto_id fixture entry.
type Proto struct {
	ShortyIdx uint32
	ReturnIdx uint32
	Params    []uint16 // type indices; nil = no parameter list
}

// Ref is an id-table entry referencing class/type-or-proto/name.
type Ref struct {
	ClassIdx uint16
	TypeIdx  uint16 // type index for fields, proto index for methods
	NameIdx  uint32
}

// Method is one method body inside a class fixture.
type Method struct {
	MethodIdx     uint32
	Registers     uint16
	Ins           uint16
	Outs          uint16
	Insns         []uint16 // instruction stream in code units
	DeclaredUnits int      // overrides the declared insns_size; 0 = len(Insns)
}

// Class is one class_def fixture entry.
type Class struct {
	TypeIdx  uint32
	SuperIdx uint32 // use NoIndex for none
	Direct   []Method
	Virtual  []Method
}

// Builder accumulates fixture tables and assembles a DEX buffer.
type Builder struct {
	Strings []string
	// BadStrings substitutes raw string_data_item bytes (ULEB length
	// prefix included) for the given string index, for corruption tests.
	BadStrings map[int][]byte
	Types      []uint32 // descriptor string indices
	Protos     []Proto
	Fields     []Ref
	Methods    []Ref
	Classes    []Class
}

// Build assembles the buffer. The checksum is a valid Adler-32 so
// strict-mode parsing accepts the fixture.
func (b *Builder) Build() []byte {
	const headerSize = 0x70
	stringIdsOff := uint32(headerSize)
	typeIdsOff := stringIdsOff + 4*uint32(len(b.Strings))
	protoIdsOff := typeIdsOff + 4*uint32(len(b.Types))
	fieldIdsOff := protoIdsOff + 12*uint32(len(b.Protos))
	methodIdsOff := fieldIdsOff + 8*uint32(len(b.Fields))
	classDefsOff := methodIdsOff + 8*uint32(len(b.Methods))
	dataOff := classDefsOff + 32*uint32(len(b.Classes))

	// Data section: string data, type lists, code items, class data.
	var data []byte
	abs := func() uint32 { return dataOff + uint32(len(data)) }
	align4 := func() {
		for len(data)%4 != 0 {
			data = append(data, 0)
		}
	}

	stringOffs := make([]uint32, len(b.Strings))
	for i, s := range b.Strings {
		stringOffs[i] = abs()
		if raw, ok := b.BadStrings[i]; ok {
			data = append(data, raw...)
		} else {
			data = append(data, encodeMUTF8Item(s)...)
		}
		data = append(data, 0) // terminating NUL
	}

	paramOffs := make([]uint32, len(b.Protos))
	for i, p := range b.Protos {
		if p.Params == nil {
			continue
		}
		align4()
		paramOffs[i] = abs()
		data = appendU32(data, uint32(len(p.Params)))
		for _, t := range p.Params {
			data = appendU16(data, t)
		}
	}

	type codeKey struct{ class, list, idx int }
	codeOffs := map[codeKey]uint32{}
	for ci, cl := range b.Classes {
		for li, list := range [][]Method{cl.Direct, cl.Virtual} {
			for mi, m := range list {
				align4()
				codeOffs[codeKey{ci, li, mi}] = abs()
				units := m.DeclaredUnits
				if units == 0 {
					units = len(m.Insns)
				}
				data = appendU16(data, m.Registers)
				data = appendU16(data, m.Ins)
				data = appendU16(data, m.Outs)
				data = appendU16(data, 0) // tries
				data = appendU32(data, 0) // debug info
				data = appendU32(data, uint32(units))
				for _, u := range m.Insns {
					data = appendU16(data, u)
				}
			}
		}
	}

	classDataOffs := make([]uint32, len(b.Classes))
	for ci, cl := range b.Classes {
		if len(cl.Direct)+len(cl.Virtual) == 0 {
			continue
		}
		classDataOffs[ci] = abs()
		data = appendULEB(data, 0) // static fields
		data = appendULEB(data, 0) // instance fields
		data = appendULEB(data, uint32(len(cl.Direct)))
		data = appendULEB(data, uint32(len(cl.Virtual)))
		for li, list := range [][]Method{cl.Direct, cl.Virtual} {
			var prev uint32
			for mi, m := range list {
				delta := m.MethodIdx
				if mi > 0 {
					delta = m.MethodIdx - prev
				}
				prev = m.MethodIdx
				data = appendULEB(data, delta)
				data = appendULEB(data, 0) // access flags
				data = appendULEB(data, codeOffs[codeKey{ci, li, mi}])
			}
		}
	}

	total := int(dataOff) + len(data)
	buf := make([]byte, int(dataOff), total)
	copy(buf, []byte("dex\n035\x00"))
	putU32 := func(off int, v uint32) { binary.LittleEndian.PutUint32(buf[off:], v) }
	putU32(0x20, uint32(total))       // file_size
	putU32(0x24, 0x70)                // header_size
	putU32(0x28, 0x12345678)          // endian_tag
	putU32(0x38, uint32(len(b.Strings)))
	putU32(0x3c, stringIdsOff)
	putU32(0x40, uint32(len(b.Types)))
	putU32(0x44, typeIdsOff)
	putU32(0x48, uint32(len(b.Protos)))
	putU32(0x4c, protoIdsOff)
	putU32(0x50, uint32(len(b.Fields)))
	putU32(0x54, fieldIdsOff)
	putU32(0x58, uint32(len(b.Methods)))
	putU32(0x5c, methodIdsOff)
	putU32(0x60, uint32(len(b.Classes)))
	putU32(0x64, classDefsOff)
	putU32(0x68, uint32(len(data)))
	putU32(0x6c, dataOff)

	at := func(off uint32) []byte { return buf[off:] }
	for i, so := range stringOffs {
		binary.LittleEndian.PutUint32(at(stringIdsOff+4*uint32(i)), so)
	}
	for i, t := range b.Types {
		binary.LittleEndian.PutUint32(at(typeIdsOff+4*uint32(i)), t)
	}
	for i, p := range b.Protos {
		off := protoIdsOff + 12*uint32(i)
		binary.LittleEndian.PutUint32(at(off), p.ShortyIdx)
		binary.LittleEndian.PutUint32(at(off+4), p.ReturnIdx)
		binary.LittleEndian.PutUint32(at(off+8), paramOffs[i])
	}
	for i, f := range b.Fields {
		off := fieldIdsOff + 8*uint32(i)
		binary.LittleEndian.PutUint16(at(off), f.ClassIdx)
		binary.LittleEndian.PutUint16(at(off+2), f.TypeIdx)
		binary.LittleEndian.PutUint32(at(off+4), f.NameIdx)
	}
	for i, m := range b.Methods {
		off := methodIdsOff + 8*uint32(i)
		binary.LittleEndian.PutUint16(at(off), m.ClassIdx)
		binary.LittleEndian.PutUint16(at(off+2), m.TypeIdx)
		binary.LittleEndian.PutUint32(at(off+4), m.NameIdx)
	}
	for i, c := range b.Classes {
		off := classDefsOff + 32*uint32(i)
		binary.LittleEndian.PutUint32(at(off), c.TypeIdx)
		binary.LittleEndian.PutUint32(at(off+8), c.SuperIdx)
		binary.LittleEndian.PutUint32(at(off+16), NoIndex) // source_file
		binary.LittleEndian.PutUint32(at(off+24), classDataOffs[i])
	}

	buf = append(buf, data...)
	binary.LittleEndian.PutUint32(buf[8:], adler32.Checksum(buf[12:]))
	return buf
}

func appendU16(b []byte, v uint16) []byte {
	return append(b, byte(v), byte(v>>8))
}

func appendU32(b []byte, v uint32) []byte {
	return append(b, byte(v), byte(v>>8), byte(v>>16), byte(v>>24))
}

func appendULEB(b []byte, v uint32) []byte {
	for {
		c := byte(v & 0x7f)
		v >>= 7
		if v != 0 {
			b = append(b, c|0x80)
		} else {
			return append(b, c)
		}
	}
}

// encodeMUTF8Item encodes a string_data_item: ULEB UTF-16 unit count
// followed by MUTF-8 bytes (no terminator).
func encodeMUTF8Item(s string) []byte {
	units := utf16.Encode([]rune(s))
	out := appendULEB(nil, uint32(len(units)))
	for _, u := range units {
		switch {
		case u == 0:
			out = append(out, 0xc0, 0x80)
		case u < 0x80:
			out = append(out, byte(u))
		case u < 0x800:
			out = append(out, 0xc0|byte(u>>6), 0x80|byte(u&0x3f))
		default:
			out = append(out, 0xe0|byte(u>>12), 0x80|byte((u>>6)&0x3f), 0x80|byte(u&0x3f))
		}
	}
	return out
}
