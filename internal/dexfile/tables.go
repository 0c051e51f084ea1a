package dexfile

import "undex/internal/dexfmt"

// TypeEntry is one type_id entry with its descriptor resolved through
// the string table.
type TypeEntry struct {
	DescriptorIdx uint32
	Descriptor    string // raw descriptor, e.g. "Ljava/lang/String;"
	Display       string // readable form, e.g. "java.lang.String"
}

// ProtoEntry is one proto_id entry with return and parameter types
// resolved.
type ProtoEntry struct {
	Shorty     string
	ReturnDesc string
	ParamDescs []string
	// Signature is "(<paramDescs>)<returnDesc>", the form used in
	// method display names.
	Signature string
}

// FieldEntry is one field_id entry, name and owner resolved eagerly so
// synthesis never re-reads the tables.
type FieldEntry struct {
	ClassDesc string
	TypeDesc  string
	Name      string
}

// MethodEntry is one method_id entry.
type MethodEntry struct {
	ClassDesc string
	Name      string
	ProtoIdx  uint16
	Signature string
}

// Display returns the full method display name:
// "Lcom/foo/Bar;.baz(I)V".
func (m MethodEntry) Display() string {
	return m.ClassDesc + "." + m.Name + m.Signature
}

// ClassDef is one class_def entry.
type ClassDef struct {
	ClassIdx        uint32
	AccessFlags     uint32
	SuperclassIdx   uint32
	InterfacesOff   uint32
	SourceFileIdx   uint32
	AnnotationsOff  uint32
	ClassDataOff    uint32
	StaticValuesOff uint32

	Descriptor string   // raw descriptor of the class type
	Superclass string   // raw descriptor, "" when NoIndex
	SourceFile string   // "" when NoIndex
	Interfaces []string // raw descriptors
}

func (f *File) parseStrings() {
	n := int(f.Header.StringIDsSize)
	f.Strings = make([]string, n)
	ids := dexfmt.NewStreamAt(f.data, f.Header.StringIDsOff)
	for i := 0; i < n; i++ {
		off, err := ids.ReadUint32()
		if err != nil {
			f.Diags.Addf(f.Header.StringIDsOff, dexfmt.DiagTruncated, "string id %d: %v", i, err)
			f.Strings[i] = string(rune(dexfmt.Replacement))
			continue
		}
		s := dexfmt.NewStreamAt(f.data, off)
		count, err := s.ReadULEB128()
		if err != nil {
			f.Diags.Addf(off, dexfmt.DiagTruncated, "string %d length: %v", i, err)
			f.Strings[i] = string(rune(dexfmt.Replacement))
			continue
		}
		str, nrepl, err := s.ReadMUTF8(count)
		if err != nil {
			f.Diags.Addf(off, dexfmt.DiagTruncated, "string %d data: %v", i, err)
			f.Strings[i] = string(rune(dexfmt.Replacement))
			continue
		}
		if nrepl > 0 {
			f.Diags.Addf(off, dexfmt.DiagStringDecode, "string %d: %d malformed sequences replaced", i, nrepl)
		}
		f.Strings[i] = str
	}
}

func (f *File) parseTypes() {
	n := int(f.Header.TypeIDsSize)
	f.Types = make([]TypeEntry, n)
	s := dexfmt.NewStreamAt(f.data, f.Header.TypeIDsOff)
	for i := 0; i < n; i++ {
		idx, err := s.ReadUint32()
		if err != nil {
			f.Diags.Addf(f.Header.TypeIDsOff, dexfmt.DiagTruncated, "type id %d: %v", i, err)
			f.Types[i] = TypeEntry{Descriptor: Unknown, Display: Unknown}
			continue
		}
		desc, ok := f.stringAt(idx)
		if !ok {
			f.Diags.Addf(f.Header.TypeIDsOff, dexfmt.DiagIndexOutOfRange, "type %d: string index %d out of range", i, idx)
		}
		f.Types[i] = TypeEntry{
			DescriptorIdx: idx,
			Descriptor:    desc,
			Display:       DecodeDescriptor(desc),
		}
	}
}

func (f *File) parseProtos() {
	n := int(f.Header.ProtoIDsSize)
	f.Protos = make([]ProtoEntry, n)
	s := dexfmt.NewStreamAt(f.data, f.Header.ProtoIDsOff)
	for i := 0; i < n; i++ {
		shortyIdx, err1 := s.ReadUint32()
		returnIdx, err2 := s.ReadUint32()
		paramsOff, err3 := s.ReadUint32()
		if err1 != nil || err2 != nil || err3 != nil {
			f.Diags.Addf(f.Header.ProtoIDsOff, dexfmt.DiagTruncated, "proto id %d truncated", i)
			f.Protos[i] = ProtoEntry{Signature: "()" + Unknown}
			continue
		}
		p := ProtoEntry{}
		p.Shorty, _ = f.stringAt(shortyIdx)
		if ret, ok := f.typeDescAt(returnIdx); ok {
			p.ReturnDesc = ret
		} else {
			p.ReturnDesc = Unknown
			f.Diags.Addf(f.Header.ProtoIDsOff, dexfmt.DiagIndexOutOfRange, "proto %d: return type index %d out of range", i, returnIdx)
		}
		if paramsOff != 0 {
			p.ParamDescs = f.parseTypeList(paramsOff)
		}
		sig := "("
		for j, d := range p.ParamDescs {
			if j > 0 {
				sig += " "
			}
			sig += d
		}
		p.Signature = sig + ")" + p.ReturnDesc
		f.Protos[i] = p
	}
}

// parseTypeList reads a type_list item: uint32 size then size uint16
// type indices.
func (f *File) parseTypeList(off uint32) []string {
	s := dexfmt.NewStreamAt(f.data, off)
	size, err := s.ReadUint32()
	if err != nil {
		f.Diags.Addf(off, dexfmt.DiagTruncated, "type list: %v", err)
		return nil
	}
	out := make([]string, 0, size)
	for i := uint32(0); i < size; i++ {
		idx, err := s.ReadUint16()
		if err != nil {
			f.Diags.Addf(off, dexfmt.DiagTruncated, "type list entry %d: %v", i, err)
			break
		}
		d, ok := f.typeDescAt(uint32(idx))
		if !ok {
			d = Unknown
			f.Diags.Addf(off, dexfmt.DiagIndexOutOfRange, "type list entry %d: type index %d out of range", i, idx)
		}
		out = append(out, d)
	}
	return out
}

func (f *File) parseFields() {
	n := int(f.Header.FieldIDsSize)
	f.Fields = make([]FieldEntry, n)
	s := dexfmt.NewStreamAt(f.data, f.Header.FieldIDsOff)
	for i := 0; i < n; i++ {
		classIdx, err1 := s.ReadUint16()
		typeIdx, err2 := s.ReadUint16()
		nameIdx, err3 := s.ReadUint32()
		if err1 != nil || err2 != nil || err3 != nil {
			f.Diags.Addf(f.Header.FieldIDsOff, dexfmt.DiagTruncated, "field id %d truncated", i)
			f.Fields[i] = FieldEntry{ClassDesc: Unknown, TypeDesc: Unknown, Name: Unknown}
			continue
		}
		e := FieldEntry{}
		var ok bool
		if e.ClassDesc, ok = f.typeDescAt(uint32(classIdx)); !ok {
			f.Diags.Addf(f.Header.FieldIDsOff, dexfmt.DiagIndexOutOfRange, "field %d: class index %d out of range", i, classIdx)
		}
		if e.TypeDesc, ok = f.typeDescAt(uint32(typeIdx)); !ok {
			f.Diags.Addf(f.Header.FieldIDsOff, dexfmt.DiagIndexOutOfRange, "field %d: type index %d out of range", i, typeIdx)
		}
		if e.Name, ok = f.stringAt(nameIdx); !ok {
			f.Diags.Addf(f.Header.FieldIDsOff, dexfmt.DiagIndexOutOfRange, "field %d: name index %d out of range", i, nameIdx)
		}
		f.Fields[i] = e
	}
}

func (f *File) parseMethods() {
	n := int(f.Header.MethodIDsSize)
	f.Methods = make([]MethodEntry, n)
	s := dexfmt.NewStreamAt(f.data, f.Header.MethodIDsOff)
	for i := 0; i < n; i++ {
		classIdx, err1 := s.ReadUint16()
		protoIdx, err2 := s.ReadUint16()
		nameIdx, err3 := s.ReadUint32()
		if err1 != nil || err2 != nil || err3 != nil {
			f.Diags.Addf(f.Header.MethodIDsOff, dexfmt.DiagTruncated, "method id %d truncated", i)
			f.Methods[i] = MethodEntry{ClassDesc: Unknown, Name: Unknown, Signature: "()" + Unknown}
			continue
		}
		e := MethodEntry{ProtoIdx: protoIdx}
		var ok bool
		if e.ClassDesc, ok = f.typeDescAt(uint32(classIdx)); !ok {
			f.Diags.Addf(f.Header.MethodIDsOff, dexfmt.DiagIndexOutOfRange, "method %d: class index %d out of range", i, classIdx)
		}
		if e.Name, ok = f.stringAt(nameIdx); !ok {
			f.Diags.Addf(f.Header.MethodIDsOff, dexfmt.DiagIndexOutOfRange, "method %d: name index %d out of range", i, nameIdx)
		}
		if int(protoIdx) < len(f.Protos) {
			e.Signature = f.Protos[protoIdx].Signature
		} else {
			e.Signature = "()" + Unknown
			f.Diags.Addf(f.Header.MethodIDsOff, dexfmt.DiagIndexOutOfRange, "method %d: proto index %d out of range", i, protoIdx)
		}
		f.Methods[i] = e
	}
}

func (f *File) parseClassDefs() {
	n := int(f.Header.ClassDefsSize)
	f.Classes = make([]ClassDef, n)
	s := dexfmt.NewStreamAt(f.data, f.Header.ClassDefsOff)
	for i := 0; i < n; i++ {
		var vals [8]uint32
		bad := false
		for j := range vals {
			v, err := s.ReadUint32()
			if err != nil {
				f.Diags.Addf(f.Header.ClassDefsOff, dexfmt.DiagTruncated, "class def %d truncated", i)
				bad = true
				break
			}
			vals[j] = v
		}
		if bad {
			f.Classes[i] = ClassDef{Descriptor: Unknown}
			continue
		}
		cd := ClassDef{
			ClassIdx:        vals[0],
			AccessFlags:     vals[1],
			SuperclassIdx:   vals[2],
			InterfacesOff:   vals[3],
			SourceFileIdx:   vals[4],
			AnnotationsOff:  vals[5],
			ClassDataOff:    vals[6],
			StaticValuesOff: vals[7],
		}
		var ok bool
		if cd.Descriptor, ok = f.typeDescAt(cd.ClassIdx); !ok {
			f.Diags.Addf(f.Header.ClassDefsOff, dexfmt.DiagIndexOutOfRange, "class def %d: type index %d out of range", i, cd.ClassIdx)
		}
		if cd.SuperclassIdx != NoIndex {
			if cd.Superclass, ok = f.typeDescAt(cd.SuperclassIdx); !ok {
				f.Diags.Addf(f.Header.ClassDefsOff, dexfmt.DiagIndexOutOfRange, "class def %d: superclass index %d out of range", i, cd.SuperclassIdx)
			}
		}
		if cd.SourceFileIdx != NoIndex {
			cd.SourceFile, _ = f.stringAt(cd.SourceFileIdx)
		}
		if cd.InterfacesOff != 0 {
			cd.Interfaces = f.parseTypeList(cd.InterfacesOff)
		}
		f.Classes[i] = cd
	}
}

// stringAt resolves a string table index, degrading to the unknown
// marker when out of range.
func (f *File) stringAt(idx uint32) (string, bool) {
	if int(idx) >= len(f.Strings) {
		return Unknown, false
	}
	return f.Strings[idx], true
}

// typeDescAt resolves a type table index to its raw descriptor.
func (f *File) typeDescAt(idx uint32) (string, bool) {
	if int(idx) >= len(f.Types) {
		return Unknown, false
	}
	return f.Types[idx].Descriptor, true
}
