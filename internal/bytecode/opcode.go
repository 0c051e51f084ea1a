package bytecode

// Family groups opcodes that synthesize the same statement shape.
type Family uint8

const (
	FamUnused Family = iota
	FamNop
	FamMove
	FamMoveResult
	FamMoveException
	FamReturnVoid
	FamReturn
	FamConst
	FamConstString
	FamConstClass
	FamMonitorEnter
	FamMonitorExit
	FamCheckCast
	FamInstanceOf
	FamArrayLength
	FamNewInstance
	FamNewArray
	FamFilledNewArray
	FamFillArrayData
	FamThrow
	FamGoto
	FamSwitch
	FamCmp
	FamIf
	FamIfZ
	FamAGet
	FamAPut
	FamIGet
	FamIPut
	FamSGet
	FamSPut
	FamInvoke
	FamUnop
	FamBinop
	FamBinop2Addr
	FamBinopLit
)

// RefKind says which symbol table an opcode's index operand points into.
type RefKind uint8

const (
	RefNone RefKind = iota
	RefString
	RefType
	RefField
	RefMethod
)

// OpInfo describes one opcode: mnemonic, operand format, statement
// family and the pieces the synthesizer needs to render it.
type OpInfo struct {
	Name   string
	Format Format
	Family Family
	Op     string  // infix operator, condition, cast prefix, or invoke kind
	Suffix string  // annotation appended as a trailing comment ("wide", ...)
	Shift  uint8   // left shift applied to the literal (const/high16 forms)
	Ref    RefKind // table the Index operand resolves against
}

// Lookup returns the OpInfo for an opcode byte. Unrecognized opcodes
// yield an entry with FmtUnknown and FamUnused.
func Lookup(op byte) OpInfo {
	info := ops[op]
	if info.Name == "" {
		return OpInfo{Name: "", Format: FmtUnknown, Family: FamUnused}
	}
	return info
}

// ops is the closed opcode table. Holes (reserved opcode values) stay
// zero and surface through Lookup as unknown.
var ops = [256]OpInfo{
	0x00: {Name: "nop", Format: Fmt10x, Family: FamNop},

	0x01: {Name: "move", Format: Fmt12x, Family: FamMove},
	0x02: {Name: "move/from16", Format: Fmt22x, Family: FamMove},
	0x03: {Name: "move/16", Format: Fmt32x, Family: FamMove},
	0x04: {Name: "move-wide", Format: Fmt12x, Family: FamMove, Suffix: "wide"},
	0x05: {Name: "move-wide/from16", Format: Fmt22x, Family: FamMove, Suffix: "wide"},
	0x06: {Name: "move-wide/16", Format: Fmt32x, Family: FamMove, Suffix: "wide"},
	0x07: {Name: "move-object", Format: Fmt12x, Family: FamMove, Suffix: "object"},
	0x08: {Name: "move-object/from16", Format: Fmt22x, Family: FamMove, Suffix: "object"},
	0x09: {Name: "move-object/16", Format: Fmt32x, Family: FamMove, Suffix: "object"},

	0x0a: {Name: "move-result", Format: Fmt11x, Family: FamMoveResult},
	0x0b: {Name: "move-result-wide", Format: Fmt11x, Family: FamMoveResult, Suffix: "wide"},
	0x0c: {Name: "move-result-object", Format: Fmt11x, Family: FamMoveResult, Suffix: "object"},
	0x0d: {Name: "move-exception", Format: Fmt11x, Family: FamMoveException},

	0x0e: {Name: "return-void", Format: Fmt10x, Family: FamReturnVoid},
	0x0f: {Name: "return", Format: Fmt11x, Family: FamReturn},
	0x10: {Name: "return-wide", Format: Fmt11x, Family: FamReturn, Suffix: "wide"},
	0x11: {Name: "return-object", Format: Fmt11x, Family: FamReturn, Suffix: "object"},

	0x12: {Name: "const/4", Format: Fmt11n, Family: FamConst},
	0x13: {Name: "const/16", Format: Fmt21s, Family: FamConst},
	0x14: {Name: "const", Format: Fmt31i, Family: FamConst},
	0x15: {Name: "const/high16", Format: Fmt21h, Family: FamConst, Shift: 16},
	0x16: {Name: "const-wide/16", Format: Fmt21s, Family: FamConst, Suffix: "wide"},
	0x17: {Name: "const-wide/32", Format: Fmt31i, Family: FamConst, Suffix: "wide"},
	0x18: {Name: "const-wide", Format: Fmt51l, Family: FamConst, Suffix: "wide"},
	0x19: {Name: "const-wide/high16", Format: Fmt21h, Family: FamConst, Shift: 48, Suffix: "wide"},
	0x1a: {Name: "const-string", Format: Fmt21c, Family: FamConstString, Ref: RefString},
	0x1b: {Name: "const-string/jumbo", Format: Fmt31c, Family: FamConstString, Ref: RefString},
	0x1c: {Name: "const-class", Format: Fmt21c, Family: FamConstClass, Ref: RefType},

	0x1d: {Name: "monitor-enter", Format: Fmt11x, Family: FamMonitorEnter},
	0x1e: {Name: "monitor-exit", Format: Fmt11x, Family: FamMonitorExit},

	0x1f: {Name: "check-cast", Format: Fmt21c, Family: FamCheckCast, Ref: RefType},
	0x20: {Name: "instance-of", Format: Fmt22c, Family: FamInstanceOf, Ref: RefType},
	0x21: {Name: "array-length", Format: Fmt12x, Family: FamArrayLength},
	0x22: {Name: "new-instance", Format: Fmt21c, Family: FamNewInstance, Ref: RefType},
	0x23: {Name: "new-array", Format: Fmt22c, Family: FamNewArray, Ref: RefType},
	0x24: {Name: "filled-new-array", Format: Fmt35c, Family: FamFilledNewArray, Ref: RefType},
	0x25: {Name: "filled-new-array/range", Format: Fmt3rc, Family: FamFilledNewArray, Ref: RefType, Suffix: "range"},
	0x26: {Name: "fill-array-data", Format: Fmt31t, Family: FamFillArrayData},

	0x27: {Name: "throw", Format: Fmt11x, Family: FamThrow},
	0x28: {Name: "goto", Format: Fmt10t, Family: FamGoto},
	0x29: {Name: "goto/16", Format: Fmt20t, Family: FamGoto},
	0x2a: {Name: "goto/32", Format: Fmt30t, Family: FamGoto},
	0x2b: {Name: "packed-switch", Format: Fmt31t, Family: FamSwitch},
	0x2c: {Name: "sparse-switch", Format: Fmt31t, Family: FamSwitch},

	0x2d: {Name: "cmpl-float", Format: Fmt23x, Family: FamCmp},
	0x2e: {Name: "cmpg-float", Format: Fmt23x, Family: FamCmp},
	0x2f: {Name: "cmpl-double", Format: Fmt23x, Family: FamCmp, Suffix: "double"},
	0x30: {Name: "cmpg-double", Format: Fmt23x, Family: FamCmp, Suffix: "double"},
	0x31: {Name: "cmp-long", Format: Fmt23x, Family: FamCmp, Suffix: "long"},

	0x32: {Name: "if-eq", Format: Fmt22t, Family: FamIf, Op: "=="},
	0x33: {Name: "if-ne", Format: Fmt22t, Family: FamIf, Op: "!="},
	0x34: {Name: "if-lt", Format: Fmt22t, Family: FamIf, Op: "<"},
	0x35: {Name: "if-ge", Format: Fmt22t, Family: FamIf, Op: ">="},
	0x36: {Name: "if-gt", Format: Fmt22t, Family: FamIf, Op: ">"},
	0x37: {Name: "if-le", Format: Fmt22t, Family: FamIf, Op: "<="},
	0x38: {Name: "if-eqz", Format: Fmt21t, Family: FamIfZ, Op: "=="},
	0x39: {Name: "if-nez", Format: Fmt21t, Family: FamIfZ, Op: "!="},
	0x3a: {Name: "if-ltz", Format: Fmt21t, Family: FamIfZ, Op: "<"},
	0x3b: {Name: "if-gez", Format: Fmt21t, Family: FamIfZ, Op: ">="},
	0x3c: {Name: "if-gtz", Format: Fmt21t, Family: FamIfZ, Op: ">"},
	0x3d: {Name: "if-lez", Format: Fmt21t, Family: FamIfZ, Op: "<="},

	0x44: {Name: "aget", Format: Fmt23x, Family: FamAGet},
	0x45: {Name: "aget-wide", Format: Fmt23x, Family: FamAGet, Suffix: "wide"},
	0x46: {Name: "aget-object", Format: Fmt23x, Family: FamAGet, Suffix: "object"},
	0x47: {Name: "aget-boolean", Format: Fmt23x, Family: FamAGet, Suffix: "boolean"},
	0x48: {Name: "aget-byte", Format: Fmt23x, Family: FamAGet, Suffix: "byte"},
	0x49: {Name: "aget-char", Format: Fmt23x, Family: FamAGet, Suffix: "char"},
	0x4a: {Name: "aget-short", Format: Fmt23x, Family: FamAGet, Suffix: "short"},
	0x4b: {Name: "aput", Format: Fmt23x, Family: FamAPut},
	0x4c: {Name: "aput-wide", Format: Fmt23x, Family: FamAPut, Suffix: "wide"},
	0x4d: {Name: "aput-object", Format: Fmt23x, Family: FamAPut, Suffix: "object"},
	0x4e: {Name: "aput-boolean", Format: Fmt23x, Family: FamAPut, Suffix: "boolean"},
	0x4f: {Name: "aput-byte", Format: Fmt23x, Family: FamAPut, Suffix: "byte"},
	0x50: {Name: "aput-char", Format: Fmt23x, Family: FamAPut, Suffix: "char"},
	0x51: {Name: "aput-short", Format: Fmt23x, Family: FamAPut, Suffix: "short"},

	0x52: {Name: "iget", Format: Fmt22c, Family: FamIGet, Ref: RefField},
	0x53: {Name: "iget-wide", Format: Fmt22c, Family: FamIGet, Ref: RefField, Suffix: "wide"},
	0x54: {Name: "iget-object", Format: Fmt22c, Family: FamIGet, Ref: RefField, Suffix: "object"},
	0x55: {Name: "iget-boolean", Format: Fmt22c, Family: FamIGet, Ref: RefField, Suffix: "boolean"},
	0x56: {Name: "iget-byte", Format: Fmt22c, Family: FamIGet, Ref: RefField, Suffix: "byte"},
	0x57: {Name: "iget-char", Format: Fmt22c, Family: FamIGet, Ref: RefField, Suffix: "char"},
	0x58: {Name: "iget-short", Format: Fmt22c, Family: FamIGet, Ref: RefField, Suffix: "short"},
	0x59: {Name: "iput", Format: Fmt22c, Family: FamIPut, Ref: RefField},
	0x5a: {Name: "iput-wide", Format: Fmt22c, Family: FamIPut, Ref: RefField, Suffix: "wide"},
	0x5b: {Name: "iput-object", Format: Fmt22c, Family: FamIPut, Ref: RefField, Suffix: "object"},
	0x5c: {Name: "iput-boolean", Format: Fmt22c, Family: FamIPut, Ref: RefField, Suffix: "boolean"},
	0x5d: {Name: "iput-byte", Format: Fmt22c, Family: FamIPut, Ref: RefField, Suffix: "byte"},
	0x5e: {Name: "iput-char", Format: Fmt22c, Family: FamIPut, Ref: RefField, Suffix: "char"},
	0x5f: {Name: "iput-short", Format: Fmt22c, Family: FamIPut, Ref: RefField, Suffix: "short"},

	0x60: {Name: "sget", Format: Fmt21c, Family: FamSGet, Ref: RefField, Suffix: "static"},
	0x61: {Name: "sget-wide", Format: Fmt21c, Family: FamSGet, Ref: RefField, Suffix: "static wide"},
	0x62: {Name: "sget-object", Format: Fmt21c, Family: FamSGet, Ref: RefField, Suffix: "static object"},
	0x63: {Name: "sget-boolean", Format: Fmt21c, Family: FamSGet, Ref: RefField, Suffix: "static boolean"},
	0x64: {Name: "sget-byte", Format: Fmt21c, Family: FamSGet, Ref: RefField, Suffix: "static byte"},
	0x65: {Name: "sget-char", Format: Fmt21c, Family: FamSGet, Ref: RefField, Suffix: "static char"},
	0x66: {Name: "sget-short", Format: Fmt21c, Family: FamSGet, Ref: RefField, Suffix: "static short"},
	0x67: {Name: "sput", Format: Fmt21c, Family: FamSPut, Ref: RefField, Suffix: "static"},
	0x68: {Name: "sput-wide", Format: Fmt21c, Family: FamSPut, Ref: RefField, Suffix: "static wide"},
	0x69: {Name: "sput-object", Format: Fmt21c, Family: FamSPut, Ref: RefField, Suffix: "static object"},
	0x6a: {Name: "sput-boolean", Format: Fmt21c, Family: FamSPut, Ref: RefField, Suffix: "static boolean"},
	0x6b: {Name: "sput-byte", Format: Fmt21c, Family: FamSPut, Ref: RefField, Suffix: "static byte"},
	0x6c: {Name: "sput-char", Format: Fmt21c, Family: FamSPut, Ref: RefField, Suffix: "static char"},
	0x6d: {Name: "sput-short", Format: Fmt21c, Family: FamSPut, Ref: RefField, Suffix: "static short"},

	0x6e: {Name: "invoke-virtual", Format: Fmt35c, Family: FamInvoke, Ref: RefMethod, Op: "virtual"},
	0x6f: {Name: "invoke-super", Format: Fmt35c, Family: FamInvoke, Ref: RefMethod, Op: "super"},
	0x70: {Name: "invoke-direct", Format: Fmt35c, Family: FamInvoke, Ref: RefMethod, Op: "direct"},
	0x71: {Name: "invoke-static", Format: Fmt35c, Family: FamInvoke, Ref: RefMethod, Op: "static"},
	0x72: {Name: "invoke-interface", Format: Fmt35c, Family: FamInvoke, Ref: RefMethod, Op: "interface"},
	0x74: {Name: "invoke-virtual/range", Format: Fmt3rc, Family: FamInvoke, Ref: RefMethod, Op: "virtual", Suffix: "range"},
	0x75: {Name: "invoke-super/range", Format: Fmt3rc, Family: FamInvoke, Ref: RefMethod, Op: "super", Suffix: "range"},
	0x76: {Name: "invoke-direct/range", Format: Fmt3rc, Family: FamInvoke, Ref: RefMethod, Op: "direct", Suffix: "range"},
	0x77: {Name: "invoke-static/range", Format: Fmt3rc, Family: FamInvoke, Ref: RefMethod, Op: "static", Suffix: "range"},
	0x78: {Name: "invoke-interface/range", Format: Fmt3rc, Family: FamInvoke, Ref: RefMethod, Op: "interface", Suffix: "range"},

	0x7b: {Name: "neg-int", Format: Fmt12x, Family: FamUnop, Op: "-"},
	0x7c: {Name: "not-int", Format: Fmt12x, Family: FamUnop, Op: "~"},
	0x7d: {Name: "neg-long", Format: Fmt12x, Family: FamUnop, Op: "-", Suffix: "long"},
	0x7e: {Name: "not-long", Format: Fmt12x, Family: FamUnop, Op: "~", Suffix: "long"},
	0x7f: {Name: "neg-float", Format: Fmt12x, Family: FamUnop, Op: "-", Suffix: "float"},
	0x80: {Name: "neg-double", Format: Fmt12x, Family: FamUnop, Op: "-", Suffix: "double"},
	0x81: {Name: "int-to-long", Format: Fmt12x, Family: FamUnop, Op: "(long) "},
	0x82: {Name: "int-to-float", Format: Fmt12x, Family: FamUnop, Op: "(float) "},
	0x83: {Name: "int-to-double", Format: Fmt12x, Family: FamUnop, Op: "(double) "},
	0x84: {Name: "long-to-int", Format: Fmt12x, Family: FamUnop, Op: "(int) "},
	0x85: {Name: "long-to-float", Format: Fmt12x, Family: FamUnop, Op: "(float) "},
	0x86: {Name: "long-to-double", Format: Fmt12x, Family: FamUnop, Op: "(double) "},
	0x87: {Name: "float-to-int", Format: Fmt12x, Family: FamUnop, Op: "(int) "},
	0x88: {Name: "float-to-long", Format: Fmt12x, Family: FamUnop, Op: "(long) "},
	0x89: {Name: "float-to-double", Format: Fmt12x, Family: FamUnop, Op: "(double) "},
	0x8a: {Name: "double-to-int", Format: Fmt12x, Family: FamUnop, Op: "(int) "},
	0x8b: {Name: "double-to-long", Format: Fmt12x, Family: FamUnop, Op: "(long) "},
	0x8c: {Name: "double-to-float", Format: Fmt12x, Family: FamUnop, Op: "(float) "},
	0x8d: {Name: "int-to-byte", Format: Fmt12x, Family: FamUnop, Op: "(byte) "},
	0x8e: {Name: "int-to-char", Format: Fmt12x, Family: FamUnop, Op: "(char) "},
	0x8f: {Name: "int-to-short", Format: Fmt12x, Family: FamUnop, Op: "(short) "},

	0x90: {Name: "add-int", Format: Fmt23x, Family: FamBinop, Op: "+"},
	0x91: {Name: "sub-int", Format: Fmt23x, Family: FamBinop, Op: "-"},
	0x92: {Name: "mul-int", Format: Fmt23x, Family: FamBinop, Op: "*"},
	0x93: {Name: "div-int", Format: Fmt23x, Family: FamBinop, Op: "/"},
	0x94: {Name: "rem-int", Format: Fmt23x, Family: FamBinop, Op: "%"},
	0x95: {Name: "and-int", Format: Fmt23x, Family: FamBinop, Op: "&"},
	0x96: {Name: "or-int", Format: Fmt23x, Family: FamBinop, Op: "|"},
	0x97: {Name: "xor-int", Format: Fmt23x, Family: FamBinop, Op: "^"},
	0x98: {Name: "shl-int", Format: Fmt23x, Family: FamBinop, Op: "<<"},
	0x99: {Name: "shr-int", Format: Fmt23x, Family: FamBinop, Op: ">>"},
	0x9a: {Name: "ushr-int", Format: Fmt23x, Family: FamBinop, Op: ">>>"},
	0x9b: {Name: "add-long", Format: Fmt23x, Family: FamBinop, Op: "+", Suffix: "long"},
	0x9c: {Name: "sub-long", Format: Fmt23x, Family: FamBinop, Op: "-", Suffix: "long"},
	0x9d: {Name: "mul-long", Format: Fmt23x, Family: FamBinop, Op: "*", Suffix: "long"},
	0x9e: {Name: "div-long", Format: Fmt23x, Family: FamBinop, Op: "/", Suffix: "long"},
	0x9f: {Name: "rem-long", Format: Fmt23x, Family: FamBinop, Op: "%", Suffix: "long"},
	0xa0: {Name: "and-long", Format: Fmt23x, Family: FamBinop, Op: "&", Suffix: "long"},
	0xa1: {Name: "or-long", Format: Fmt23x, Family: FamBinop, Op: "|", Suffix: "long"},
	0xa2: {Name: "xor-long", Format: Fmt23x, Family: FamBinop, Op: "^", Suffix: "long"},
	0xa3: {Name: "shl-long", Format: Fmt23x, Family: FamBinop, Op: "<<", Suffix: "long"},
	0xa4: {Name: "shr-long", Format: Fmt23x, Family: FamBinop, Op: ">>", Suffix: "long"},
	0xa5: {Name: "ushr-long", Format: Fmt23x, Family: FamBinop, Op: ">>>", Suffix: "long"},
	0xa6: {Name: "add-float", Format: Fmt23x, Family: FamBinop, Op: "+", Suffix: "float"},
	0xa7: {Name: "sub-float", Format: Fmt23x, Family: FamBinop, Op: "-", Suffix: "float"},
	0xa8: {Name: "mul-float", Format: Fmt23x, Family: FamBinop, Op: "*", Suffix: "float"},
	0xa9: {Name: "div-float", Format: Fmt23x, Family: FamBinop, Op: "/", Suffix: "float"},
	0xaa: {Name: "rem-float", Format: Fmt23x, Family: FamBinop, Op: "%", Suffix: "float"},
	0xab: {Name: "add-double", Format: Fmt23x, Family: FamBinop, Op: "+", Suffix: "double"},
	0xac: {Name: "sub-double", Format: Fmt23x, Family: FamBinop, Op: "-", Suffix: "double"},
	0xad: {Name: "mul-double", Format: Fmt23x, Family: FamBinop, Op: "*", Suffix: "double"},
	0xae: {Name: "div-double", Format: Fmt23x, Family: FamBinop, Op: "/", Suffix: "double"},
	0xaf: {Name: "rem-double", Format: Fmt23x, Family: FamBinop, Op: "%", Suffix: "double"},

	0xb0: {Name: "add-int/2addr", Format: Fmt12x, Family: FamBinop2Addr, Op: "+"},
	0xb1: {Name: "sub-int/2addr", Format: Fmt12x, Family: FamBinop2Addr, Op: "-"},
	0xb2: {Name: "mul-int/2addr", Format: Fmt12x, Family: FamBinop2Addr, Op: "*"},
	0xb3: {Name: "div-int/2addr", Format: Fmt12x, Family: FamBinop2Addr, Op: "/"},
	0xb4: {Name: "rem-int/2addr", Format: Fmt12x, Family: FamBinop2Addr, Op: "%"},
	0xb5: {Name: "and-int/2addr", Format: Fmt12x, Family: FamBinop2Addr, Op: "&"},
	0xb6: {Name: "or-int/2addr", Format: Fmt12x, Family: FamBinop2Addr, Op: "|"},
	0xb7: {Name: "xor-int/2addr", Format: Fmt12x, Family: FamBinop2Addr, Op: "^"},
	0xb8: {Name: "shl-int/2addr", Format: Fmt12x, Family: FamBinop2Addr, Op: "<<"},
	0xb9: {Name: "shr-int/2addr", Format: Fmt12x, Family: FamBinop2Addr, Op: ">>"},
	0xba: {Name: "ushr-int/2addr", Format: Fmt12x, Family: FamBinop2Addr, Op: ">>>"},
	0xbb: {Name: "add-long/2addr", Format: Fmt12x, Family: FamBinop2Addr, Op: "+", Suffix: "long"},
	0xbc: {Name: "sub-long/2addr", Format: Fmt12x, Family: FamBinop2Addr, Op: "-", Suffix: "long"},
	0xbd: {Name: "mul-long/2addr", Format: Fmt12x, Family: FamBinop2Addr, Op: "*", Suffix: "long"},
	0xbe: {Name: "div-long/2addr", Format: Fmt12x, Family: FamBinop2Addr, Op: "/", Suffix: "long"},
	0xbf: {Name: "rem-long/2addr", Format: Fmt12x, Family: FamBinop2Addr, Op: "%", Suffix: "long"},
	0xc0: {Name: "and-long/2addr", Format: Fmt12x, Family: FamBinop2Addr, Op: "&", Suffix: "long"},
	0xc1: {Name: "or-long/2addr", Format: Fmt12x, Family: FamBinop2Addr, Op: "|", Suffix: "long"},
	0xc2: {Name: "xor-long/2addr", Format: Fmt12x, Family: FamBinop2Addr, Op: "^", Suffix: "long"},
	0xc3: {Name: "shl-long/2addr", Format: Fmt12x, Family: FamBinop2Addr, Op: "<<", Suffix: "long"},
	0xc4: {Name: "shr-long/2addr", Format: Fmt12x, Family: FamBinop2Addr, Op: ">>", Suffix: "long"},
	0xc5: {Name: "ushr-long/2addr", Format: Fmt12x, Family: FamBinop2Addr, Op: ">>>", Suffix: "long"},
	0xc6: {Name: "add-float/2addr", Format: Fmt12x, Family: FamBinop2Addr, Op: "+", Suffix: "float"},
	0xc7: {Name: "sub-float/2addr", Format: Fmt12x, Family: FamBinop2Addr, Op: "-", Suffix: "float"},
	0xc8: {Name: "mul-float/2addr", Format: Fmt12x, Family: FamBinop2Addr, Op: "*", Suffix: "float"},
	0xc9: {Name: "div-float/2addr", Format: Fmt12x, Family: FamBinop2Addr, Op: "/", Suffix: "float"},
	0xca: {Name: "rem-float/2addr", Format: Fmt12x, Family: FamBinop2Addr, Op: "%", Suffix: "float"},
	0xcb: {Name: "add-double/2addr", Format: Fmt12x, Family: FamBinop2Addr, Op: "+", Suffix: "double"},
	0xcc: {Name: "sub-double/2addr", Format: Fmt12x, Family: FamBinop2Addr, Op: "-", Suffix: "double"},
	0xcd: {Name: "mul-double/2addr", Format: Fmt12x, Family: FamBinop2Addr, Op: "*", Suffix: "double"},
	0xce: {Name: "div-double/2addr", Format: Fmt12x, Family: FamBinop2Addr, Op: "/", Suffix: "double"},
	0xcf: {Name: "rem-double/2addr", Format: Fmt12x, Family: FamBinop2Addr, Op: "%", Suffix: "double"},

	0xd0: {Name: "add-int/lit16", Format: Fmt22s, Family: FamBinopLit, Op: "+"},
	0xd1: {Name: "rsub-int", Format: Fmt22s, Family: FamBinopLit, Op: "-"},
	0xd2: {Name: "mul-int/lit16", Format: Fmt22s, Family: FamBinopLit, Op: "*"},
	0xd3: {Name: "div-int/lit16", Format: Fmt22s, Family: FamBinopLit, Op: "/"},
	0xd4: {Name: "rem-int/lit16", Format: Fmt22s, Family: FamBinopLit, Op: "%"},
	0xd5: {Name: "and-int/lit16", Format: Fmt22s, Family: FamBinopLit, Op: "&"},
	0xd6: {Name: "or-int/lit16", Format: Fmt22s, Family: FamBinopLit, Op: "|"},
	0xd7: {Name: "xor-int/lit16", Format: Fmt22s, Family: FamBinopLit, Op: "^"},
	0xd8: {Name: "add-int/lit8", Format: Fmt22b, Family: FamBinopLit, Op: "+"},
	0xd9: {Name: "rsub-int/lit8", Format: Fmt22b, Family: FamBinopLit, Op: "-"},
	0xda: {Name: "mul-int/lit8", Format: Fmt22b, Family: FamBinopLit, Op: "*"},
	0xdb: {Name: "div-int/lit8", Format: Fmt22b, Family: FamBinopLit, Op: "/"},
	0xdc: {Name: "rem-int/lit8", Format: Fmt22b, Family: FamBinopLit, Op: "%"},
	0xdd: {Name: "and-int/lit8", Format: Fmt22b, Family: FamBinopLit, Op: "&"},
	0xde: {Name: "or-int/lit8", Format: Fmt22b, Family: FamBinopLit, Op: "|"},
	0xdf: {Name: "xor-int/lit8", Format: Fmt22b, Family: FamBinopLit, Op: "^"},
	0xe0: {Name: "shl-int/lit8", Format: Fmt22b, Family: FamBinopLit, Op: "<<"},
	0xe1: {Name: "shr-int/lit8", Format: Fmt22b, Family: FamBinopLit, Op: ">>"},
	0xe2: {Name: "ushr-int/lit8", Format: Fmt22b, Family: FamBinopLit, Op: ">>>"},
}
