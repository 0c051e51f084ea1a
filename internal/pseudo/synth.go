// Package pseudo turns decoded instructions into readable pseudo-code
// statements and assembles them into per-class text blocks.
package pseudo

import (
	"fmt"
	"strings"

	"undex/internal/bytecode"
	"undex/internal/dexfile"
	"undex/internal/dexfmt"
)

// synth renders statements for one method. Register naming is purely
// textual and method-local: register N is always "vN", no dataflow or
// type inference is attempted.
type synth struct {
	file   *dexfile.File
	opaque map[byte]bool
	diags  *dexfmt.Diags
}

// statement renders one instruction as a single line, without
// indentation. Every fault path degrades to an annotated comment, so
// rendering never fails.
func (sy *synth) statement(in *bytecode.Instruction) string {
	if in.Payload != nil {
		if in.Payload.Kind == "fill-array-data" {
			return fmt.Sprintf("// fill array with data (%d elements) @ unit %d", in.Payload.Count, in.Offset)
		}
		return fmt.Sprintf("// %s table (%d entries) @ unit %d", in.Payload.Kind, in.Payload.Count, in.Offset)
	}
	if in.Fault == bytecode.FaultUnsupported {
		return fmt.Sprintf("// Unknown opcode: 0x%02x @ unit %d", in.Opcode, in.Offset)
	}
	info := in.Info
	if sy.opaque[in.Opcode] {
		return fmt.Sprintf("// %s (opaque): 0x%02x @ unit %d", info.Name, in.Opcode, in.Offset)
	}

	r := func(i int) string {
		return fmt.Sprintf("v%d", in.Regs[i])
	}
	stmt := ""
	var notes []string
	if info.Suffix != "" {
		notes = append(notes, info.Suffix)
	}

	switch info.Family {
	case bytecode.FamNop:
		return "// nop"
	case bytecode.FamMove:
		stmt = fmt.Sprintf("%s = %s;", r(0), r(1))
	case bytecode.FamMoveResult:
		stmt = fmt.Sprintf("%s = result;", r(0))
	case bytecode.FamMoveException:
		stmt = fmt.Sprintf("%s = exception;", r(0))
	case bytecode.FamReturnVoid:
		stmt = "return;"
	case bytecode.FamReturn:
		stmt = fmt.Sprintf("return %s;", r(0))
	case bytecode.FamConst:
		stmt = fmt.Sprintf("%s = %d;", r(0), in.Literal)
	case bytecode.FamConstString:
		s, ok := sy.file.StringAt(in.Index)
		if !ok {
			sy.diags.Addf(in.Offset, dexfmt.DiagIndexOutOfRange, "%s: string index %d", info.Name, in.Index)
			stmt = fmt.Sprintf("%s = %s;", r(0), dexfile.Unknown)
			break
		}
		stmt = fmt.Sprintf("%s = %q;", r(0), s)
	case bytecode.FamConstClass:
		stmt = fmt.Sprintf("%s = %s.class;", r(0), sy.typeName(in))
	case bytecode.FamMonitorEnter:
		stmt = fmt.Sprintf("synchronized(%s) {", r(0))
	case bytecode.FamMonitorExit:
		stmt = "}  // end synchronized"
	case bytecode.FamCheckCast:
		stmt = fmt.Sprintf("%s = (%s) %s;", r(0), sy.typeName(in), r(0))
	case bytecode.FamInstanceOf:
		stmt = fmt.Sprintf("%s = (%s instanceof %s);", r(0), r(1), sy.typeName(in))
	case bytecode.FamArrayLength:
		stmt = fmt.Sprintf("%s = %s.length;", r(0), r(1))
	case bytecode.FamNewInstance:
		stmt = fmt.Sprintf("%s = new %s;", r(0), sy.typeName(in))
	case bytecode.FamNewArray:
		stmt = fmt.Sprintf("%s = new %s[%s];", r(0), sy.elementTypeName(in), r(1))
	case bytecode.FamFilledNewArray:
		stmt = fmt.Sprintf("new %s{%s};", sy.typeName(in), sy.regList(in.Regs))
	case bytecode.FamFillArrayData:
		return fmt.Sprintf("// fill array with data: %s, payload @ label_%d", r(0), in.Target())
	case bytecode.FamThrow:
		stmt = fmt.Sprintf("throw %s;", r(0))
	case bytecode.FamGoto:
		stmt = fmt.Sprintf("goto label_%d;", in.Target())
	case bytecode.FamSwitch:
		return fmt.Sprintf("// %s %s: table @ label_%d", info.Name, r(0), in.Target())
	case bytecode.FamCmp:
		stmt = sy.cmp(in)
	case bytecode.FamIf:
		stmt = fmt.Sprintf("if (%s %s %s) goto label_%d;", r(0), info.Op, r(1), in.Target())
	case bytecode.FamIfZ:
		stmt = fmt.Sprintf("if (%s %s 0) goto label_%d;", r(0), info.Op, in.Target())
	case bytecode.FamAGet:
		stmt = fmt.Sprintf("%s = %s[%s];", r(0), r(1), r(2))
	case bytecode.FamAPut:
		stmt = fmt.Sprintf("%s[%s] = %s;", r(1), r(2), r(0))
	case bytecode.FamIGet:
		stmt = fmt.Sprintf("%s = %s.%s;", r(0), r(1), sy.fieldName(in))
	case bytecode.FamIPut:
		stmt = fmt.Sprintf("%s.%s = %s;", r(1), sy.fieldName(in), r(0))
	case bytecode.FamSGet:
		fld, owner := sy.staticField(in)
		stmt = fmt.Sprintf("%s = %s.%s;", r(0), owner, fld)
	case bytecode.FamSPut:
		fld, owner := sy.staticField(in)
		stmt = fmt.Sprintf("%s.%s = %s;", owner, fld, r(0))
	case bytecode.FamInvoke:
		stmt, notes = sy.invoke(in, notes)
	case bytecode.FamUnop:
		stmt = fmt.Sprintf("%s = %s%s;", r(0), info.Op, r(1))
	case bytecode.FamBinop:
		stmt = fmt.Sprintf("%s = %s %s %s;", r(0), r(1), info.Op, r(2))
	case bytecode.FamBinop2Addr:
		stmt = fmt.Sprintf("%s %s= %s;", r(0), info.Op, r(1))
	case bytecode.FamBinopLit:
		if strings.HasPrefix(info.Name, "rsub") {
			stmt = fmt.Sprintf("%s = %d - %s;", r(0), in.Literal, r(1))
		} else {
			stmt = fmt.Sprintf("%s = %s %s %d;", r(0), r(1), info.Op, in.Literal)
		}
	default:
		return fmt.Sprintf("// Unknown opcode: 0x%02x @ unit %d", in.Opcode, in.Offset)
	}

	if len(notes) > 0 {
		stmt += "  // " + strings.Join(notes, ", ")
	}
	return stmt
}

// cmp renders the three comparison shapes: lt-biased, gt-biased, and
// the zero-first long form.
func (sy *synth) cmp(in *bytecode.Instruction) string {
	a := fmt.Sprintf("v%d", in.Regs[1])
	b := fmt.Sprintf("v%d", in.Regs[2])
	dst := fmt.Sprintf("v%d", in.Regs[0])
	switch {
	case in.Info.Name == "cmp-long":
		return fmt.Sprintf("%s = (%s == %s) ? 0 : ((%s < %s) ? -1 : 1);", dst, a, b, a, b)
	case strings.HasPrefix(in.Info.Name, "cmpg"):
		return fmt.Sprintf("%s = (%s > %s) ? 1 : ((%s == %s) ? 0 : -1);", dst, a, b, a, b)
	default: // cmpl
		return fmt.Sprintf("%s = (%s < %s) ? -1 : ((%s == %s) ? 0 : 1);", dst, a, b, a, b)
	}
}

// invoke renders the five call forms. The full resolved display name
// rides along as a trailing comment so the short call stays readable.
func (sy *synth) invoke(in *bytecode.Instruction, notes []string) (string, []string) {
	m, ok := sy.file.MethodAt(in.Index)
	if !ok {
		sy.diags.Addf(in.Offset, dexfmt.DiagIndexOutOfRange, "%s: method index %d", in.Info.Name, in.Index)
	}
	var stmt string
	switch in.Info.Op {
	case "virtual", "interface":
		stmt = fmt.Sprintf("%s.%s(%s);", recv(in.Regs), m.Name, sy.regList(rest(in.Regs)))
	case "super":
		stmt = fmt.Sprintf("super.%s(%s);", m.Name, sy.regList(rest(in.Regs)))
	case "direct":
		stmt = fmt.Sprintf("%s(%s);", m.Name, sy.regList(rest(in.Regs)))
	case "static":
		stmt = fmt.Sprintf("%s.%s(%s);", dexfile.DecodeDescriptor(m.ClassDesc), m.Name, sy.regList(in.Regs))
	}
	if ok {
		notes = append(notes, m.Display())
	}
	return stmt, notes
}

func recv(regs []uint16) string {
	if len(regs) == 0 {
		return "v?"
	}
	return fmt.Sprintf("v%d", regs[0])
}

func rest(regs []uint16) []uint16 {
	if len(regs) == 0 {
		return nil
	}
	return regs[1:]
}

func (sy *synth) regList(regs []uint16) string {
	parts := make([]string, len(regs))
	for i, r := range regs {
		parts[i] = fmt.Sprintf("v%d", r)
	}
	return strings.Join(parts, ", ")
}

// typeName resolves the instruction's type index to a display name.
func (sy *synth) typeName(in *bytecode.Instruction) string {
	name, ok := sy.file.TypeAt(in.Index)
	if !ok {
		sy.diags.Addf(in.Offset, dexfmt.DiagIndexOutOfRange, "%s: type index %d", in.Info.Name, in.Index)
	}
	return name
}

// elementTypeName resolves a new-array type index and strips one array
// dimension: new-array's type is the array type, the allocation reads
// better with the element type.
func (sy *synth) elementTypeName(in *bytecode.Instruction) string {
	desc, ok := sy.file.TypeDescAt(in.Index)
	if !ok {
		sy.diags.Addf(in.Offset, dexfmt.DiagIndexOutOfRange, "%s: type index %d", in.Info.Name, in.Index)
		return dexfile.Unknown
	}
	if strings.HasPrefix(desc, "[") {
		return dexfile.DecodeDescriptor(desc[1:])
	}
	return dexfile.DecodeDescriptor(desc)
}

func (sy *synth) fieldName(in *bytecode.Instruction) string {
	fld, ok := sy.file.FieldAt(in.Index)
	if !ok {
		sy.diags.Addf(in.Offset, dexfmt.DiagIndexOutOfRange, "%s: field index %d", in.Info.Name, in.Index)
	}
	return fld.Name
}

func (sy *synth) staticField(in *bytecode.Instruction) (name, owner string) {
	fld, ok := sy.file.FieldAt(in.Index)
	if !ok {
		sy.diags.Addf(in.Offset, dexfmt.DiagIndexOutOfRange, "%s: field index %d", in.Info.Name, in.Index)
	}
	return fld.Name, dexfile.DecodeDescriptor(fld.ClassDesc)
}
