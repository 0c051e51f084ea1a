package dexfile

import "strings"

// Unknown is rendered wherever an index reference cannot be resolved
// within its table's bounds.
const Unknown = "<unknown>"

// DecodeDescriptor turns a DEX type descriptor into a readable name:
// "Ljava/lang/String;" -> "java.lang.String", "[I" -> "int[]".
// See dex-format.html#typedescriptor for the encoding rules.
func DecodeDescriptor(d string) string {
	if d == "" {
		return Unknown
	}
	dims := 0
	for dims < len(d) && d[dims] == '[' {
		dims++
	}
	rest := d[dims:]
	var base string
	if len(rest) > 0 && rest[0] == 'L' {
		base = strings.TrimSuffix(rest[1:], ";")
		base = strings.ReplaceAll(base, "/", ".")
	} else {
		switch rest {
		case "B":
			base = "byte"
		case "C":
			base = "char"
		case "D":
			base = "double"
		case "F":
			base = "float"
		case "I":
			base = "int"
		case "J":
			base = "long"
		case "S":
			base = "short"
		case "Z":
			base = "boolean"
		case "V":
			base = "void"
		default:
			// Not a descriptor we recognize, show it as-is.
			return d
		}
	}
	return base + strings.Repeat("[]", dims)
}
