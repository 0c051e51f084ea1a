package pseudo

import (
	"errors"
	"strings"

	"undex/internal/bytecode"
	"undex/internal/dexfile"
	"undex/internal/dexfmt"
)

// Options controls synthesis of one file.
type Options struct {
	// Filter limits output to the listed class descriptors. Nil means
	// every class.
	Filter map[string]bool
	// Opaque forces the listed opcodes to render as annotated
	// placeholders instead of decoded statements.
	Opaque map[byte]bool
	// MaxSteps caps the instructions decoded per method. 0 means no
	// cap.
	MaxSteps int
}

// ClassOutput is one synthesized class block.
type ClassOutput struct {
	Descriptor string // raw descriptor, e.g. "Lcom/foo/Bar;"
	Name       string // display name, e.g. "com.foo.Bar"
	Text       string // full "Class: ...\n{\n...\n}\n" block
	Methods    int
	Faults     int // recoverable faults confined to this class
}

// Result carries the synthesized blocks plus every recoverable fault
// found during table parsing and decoding, for callers that want
// strict accounting.
type Result struct {
	Classes []ClassOutput
	Diags   dexfmt.Diags
}

// Decompile synthesizes pseudo-code for every class in f (or the
// filtered subset), in class table order. It never fails: all faults
// below file-structural level degrade to inline annotations.
func Decompile(f *dexfile.File, opts Options) *Result {
	res := &Result{}
	// Table-level faults found at parse time count toward the file.
	for _, d := range f.Diags.Items() {
		res.Diags.Add(d.Offset, d.Kind, d.Msg)
	}

	for i := range f.Classes {
		cd := &f.Classes[i]
		if opts.Filter != nil && !opts.Filter[cd.Descriptor] {
			continue
		}
		res.Classes = append(res.Classes, synthClass(f, cd, opts, &res.Diags))
	}
	return res
}

func synthClass(f *dexfile.File, cd *dexfile.ClassDef, opts Options, fileDiags *dexfmt.Diags) ClassOutput {
	var classDiags dexfmt.Diags
	sy := &synth{file: f, opaque: opts.Opaque, diags: &classDiags}

	var b strings.Builder
	b.WriteString("Class: ")
	b.WriteString(cd.Descriptor)
	b.WriteString("\n{\n")

	direct, virtual := f.ClassMethods(cd, &classDiags)
	methods := 0
	for _, list := range [][]dexfile.MethodDef{direct, virtual} {
		for i := range list {
			md := &list[i]
			methods++
			if md.Code == nil {
				continue // abstract, native, or body dropped by a local fault
			}
			for _, line := range synthMethod(sy, md, opts.MaxSteps, &classDiags) {
				b.WriteString("  ")
				b.WriteString(line)
				b.WriteByte('\n')
			}
		}
	}
	b.WriteString("}\n")

	for _, d := range classDiags.Items() {
		fileDiags.Add(d.Offset, d.Kind, d.Msg)
	}
	return ClassOutput{
		Descriptor: cd.Descriptor,
		Name:       dexfile.DecodeDescriptor(cd.Descriptor),
		Text:       b.String(),
		Methods:    methods,
		Faults:     classDiags.Len(),
	}
}

// synthMethod decodes and renders one method body. A truncated or
// capped stream keeps the statements already produced and is recorded
// as a method-local fault.
func synthMethod(sy *synth, md *dexfile.MethodDef, maxSteps int, diags *dexfmt.Diags) []string {
	insts, err := bytecode.DecodeN(md.Code.Insns, maxSteps)
	if err != nil {
		if errors.Is(err, bytecode.ErrTruncatedStream) {
			diags.Addf(md.CodeOff, dexfmt.DiagTruncatedStream, "method %d: %v", md.MethodIdx, err)
		} else {
			diags.Addf(md.CodeOff, dexfmt.DiagTruncated, "method %d: %v", md.MethodIdx, err)
		}
	}
	lines := make([]string, 0, len(insts))
	for i := range insts {
		in := &insts[i]
		if in.Fault == bytecode.FaultUnsupported {
			diags.Addf(in.Offset, dexfmt.DiagUnknownOpcode, "method %d: opcode 0x%02x", md.MethodIdx, in.Opcode)
		}
		lines = append(lines, sy.statement(in))
	}
	return lines
}
