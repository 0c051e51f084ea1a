package dexfile

import "undex/internal/dexfmt"

// MethodDef is one method definition from a class_data_item, with its
// code item read when present.
type MethodDef struct {
	MethodIdx   uint32
	AccessFlags uint32
	CodeOff     uint32
	Code        *CodeItem // nil for abstract/native methods or on method-local faults
}

// CodeItem holds the register counts and raw instruction stream of one
// method body.
type CodeItem struct {
	Registers uint16 // register slots used by the method
	Ins       uint16 // incoming argument words
	Outs      uint16 // outgoing argument words
	TriesSize uint16
	DebugOff  uint32
	InsnUnits uint32 // declared instruction stream length in 16-bit units
	Insns     []byte // len == 2*InsnUnits
}

// ClassMethods walks the class_data_item of cd and returns the direct
// and virtual method definitions in file order. Faults while reading a
// single code item are recorded in diags and skip only that method's
// body. A class with no class data returns nil, nil.
func (f *File) ClassMethods(cd *ClassDef, diags *dexfmt.Diags) (direct, virtual []MethodDef) {
	if cd.ClassDataOff == 0 {
		return nil, nil
	}
	s := dexfmt.NewStreamAt(f.data, cd.ClassDataOff)
	var counts [4]uint32
	for i := range counts {
		v, err := s.ReadULEB128()
		if err != nil {
			diags.Addf(cd.ClassDataOff, dexfmt.DiagTruncated, "class data header: %v", err)
			return nil, nil
		}
		counts[i] = v
	}
	numStatic, numInstance, numDirect, numVirtual := counts[0], counts[1], counts[2], counts[3]

	// Field entries are ULEB pairs; they only need to be stepped over.
	for i := uint32(0); i < numStatic+numInstance; i++ {
		if _, err := s.ReadULEB128(); err != nil {
			diags.Addf(cd.ClassDataOff, dexfmt.DiagTruncated, "class data fields: %v", err)
			return nil, nil
		}
		if _, err := s.ReadULEB128(); err != nil {
			diags.Addf(cd.ClassDataOff, dexfmt.DiagTruncated, "class data fields: %v", err)
			return nil, nil
		}
	}

	direct = f.readMethodList(s, numDirect, cd.ClassDataOff, diags)
	virtual = f.readMethodList(s, numVirtual, cd.ClassDataOff, diags)
	return direct, virtual
}

// readMethodList reads n encoded_method entries. The method index is
// delta-encoded against the previous entry in the same list.
func (f *File) readMethodList(s *dexfmt.Stream, n uint32, classOff uint32, diags *dexfmt.Diags) []MethodDef {
	out := make([]MethodDef, 0, n)
	var methodIdx uint32
	for i := uint32(0); i < n; i++ {
		delta, err1 := s.ReadULEB128()
		access, err2 := s.ReadULEB128()
		codeOff, err3 := s.ReadULEB128()
		if err1 != nil || err2 != nil || err3 != nil {
			diags.Addf(classOff, dexfmt.DiagTruncated, "encoded method %d truncated", i)
			return out
		}
		if i == 0 {
			methodIdx = delta
		} else {
			methodIdx += delta
		}
		md := MethodDef{MethodIdx: methodIdx, AccessFlags: access, CodeOff: codeOff}
		if codeOff != 0 {
			code, err := f.readCodeItem(codeOff)
			if err != nil {
				// Method-local: the body is dropped, the list goes on.
				diags.Addf(codeOff, dexfmt.DiagTruncated, "code item for method %d: %v", methodIdx, err)
			} else {
				md.Code = code
			}
		}
		out = append(out, md)
	}
	return out
}

// readCodeItem reads the fixed code_item header and the instruction
// stream at off.
func (f *File) readCodeItem(off uint32) (*CodeItem, error) {
	s := dexfmt.NewStreamAt(f.data, off)
	var c CodeItem
	var err error
	if c.Registers, err = s.ReadUint16(); err != nil {
		return nil, err
	}
	if c.Ins, err = s.ReadUint16(); err != nil {
		return nil, err
	}
	if c.Outs, err = s.ReadUint16(); err != nil {
		return nil, err
	}
	if c.TriesSize, err = s.ReadUint16(); err != nil {
		return nil, err
	}
	if c.DebugOff, err = s.ReadUint32(); err != nil {
		return nil, err
	}
	if c.InsnUnits, err = s.ReadUint32(); err != nil {
		return nil, err
	}
	c.Insns, err = s.ReadBytes(int(c.InsnUnits) * 2)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
