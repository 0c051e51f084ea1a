package dexfile

import "undex/internal/dexfmt"

// File is one parsed DEX file. The header and tables are parsed once
// by Parse and are read-only afterwards, so a File may be shared by
// any number of concurrent consumers.
type File struct {
	Header  *Header
	Strings []string
	Types   []TypeEntry
	Protos  []ProtoEntry
	Fields  []FieldEntry
	Methods []MethodEntry
	Classes []ClassDef

	// Diags carries the recoverable faults found while parsing the
	// tables. Method-local faults are reported per method instead.
	Diags dexfmt.Diags

	data []byte
	opts dexfmt.Options
}

// Parse reads the header and the six symbol tables. Only structural
// faults (bad magic, inconsistent sizes, truncated header) fail the
// file; everything else degrades entry by entry.
func Parse(data []byte, opts dexfmt.Options) (*File, error) {
	h, err := ParseHeader(data, opts)
	if err != nil {
		return nil, err
	}
	f := &File{Header: h, data: data, opts: opts}
	f.parseStrings()
	f.parseTypes()
	f.parseProtos()
	f.parseFields()
	f.parseMethods()
	f.parseClassDefs()
	return f, nil
}

// Data exposes the raw input buffer for code item decoding.
func (f *File) Data() []byte { return f.data }

// Options exposes the parse options for downstream decoding.
func (f *File) Options() dexfmt.Options { return f.opts }

// StringAt resolves a string index for synthesis; out-of-range indices
// degrade to the unknown marker.
func (f *File) StringAt(idx uint32) (string, bool) { return f.stringAt(idx) }

// TypeAt resolves a type index to its readable display name.
func (f *File) TypeAt(idx uint32) (string, bool) {
	if int(idx) >= len(f.Types) {
		return Unknown, false
	}
	return f.Types[idx].Display, true
}

// TypeDescAt resolves a type index to its raw descriptor.
func (f *File) TypeDescAt(idx uint32) (string, bool) { return f.typeDescAt(idx) }

// FieldAt resolves a field index.
func (f *File) FieldAt(idx uint32) (FieldEntry, bool) {
	if int(idx) >= len(f.Fields) {
		return FieldEntry{ClassDesc: Unknown, TypeDesc: Unknown, Name: Unknown}, false
	}
	return f.Fields[idx], true
}

// MethodAt resolves a method index.
func (f *File) MethodAt(idx uint32) (MethodEntry, bool) {
	if int(idx) >= len(f.Methods) {
		return MethodEntry{ClassDesc: Unknown, Name: Unknown, Signature: "()" + Unknown}, false
	}
	return f.Methods[idx], true
}
