// Package dexfmt provides the byte cursor and shared diagnostics for DEX parsing.
package dexfmt

import "fmt"

// DiagKind classifies a recoverable fault found during parsing.
type DiagKind string

const (
	DiagTruncated       DiagKind = "truncated"
	DiagIndexOutOfRange DiagKind = "index_out_of_range"
	DiagUnknownOpcode   DiagKind = "unknown_opcode"
	DiagStringDecode    DiagKind = "string_decode"
	DiagTruncatedStream DiagKind = "truncated_stream"
)

// Diag records a non-fatal issue encountered during parsing.
type Diag struct {
	Offset uint32   `json:"offset"`
	Kind   DiagKind `json:"kind"`
	Msg    string   `json:"msg"`
}

func (d Diag) String() string {
	return fmt.Sprintf("[%s] 0x%x: %s", d.Kind, d.Offset, d.Msg)
}

// Diags accumulates diagnostics.
type Diags struct {
	items []Diag
}

func (d *Diags) Add(offset uint32, kind DiagKind, msg string) {
	d.items = append(d.items, Diag{Offset: offset, Kind: kind, Msg: msg})
}

func (d *Diags) Addf(offset uint32, kind DiagKind, format string, args ...any) {
	d.items = append(d.items, Diag{Offset: offset, Kind: kind, Msg: fmt.Sprintf(format, args...)})
}

func (d *Diags) Items() []Diag { return d.items }
func (d *Diags) Len() int      { return len(d.items) }

// Count returns the number of diagnostics of the given kind.
func (d *Diags) Count(kind DiagKind) int {
	n := 0
	for _, it := range d.items {
		if it.Kind == kind {
			n++
		}
	}
	return n
}

// Mode controls error handling behavior.
type Mode int

const (
	ModeBestEffort Mode = iota // continue with placeholders, accumulate diags
	ModeStrict                 // verify checksums, structural errors return early
)

// Options controls parsing behavior across packages.
type Options struct {
	Mode     Mode
	MaxSteps int // per-method instruction cap; 0 = use default
}

// DefaultMaxSteps bounds the decode loop of a single method.
const DefaultMaxSteps = 1_000_000

func (o Options) EffectiveMaxSteps() int {
	if o.MaxSteps > 0 {
		return o.MaxSteps
	}
	return DefaultMaxSteps
}
