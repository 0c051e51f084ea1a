// Package callgraph builds whole-file call graphs and per-method
// control flow graphs from decoded method bodies.
package callgraph

import (
	"github.com/zboralski/lattice"

	"undex/internal/bytecode"
	"undex/internal/dexfile"
	"undex/internal/dexfmt"
)

// CallEdge is one invoke site inside a method body.
type CallEdge struct {
	Index  int    // instruction index within the method
	Callee string // resolved display name of the target method
}

// FuncInfo holds the data needed to build call graph and CFG for one method.
type FuncInfo struct {
	Name  string
	Insts []bytecode.Instruction
	Calls []CallEdge
}

// Collect decodes every method body in f and gathers its invoke sites.
// A truncated instruction stream keeps its decoded prefix and records
// the fault in diags; methods without bodies are skipped.
func Collect(f *dexfile.File, diags *dexfmt.Diags) []FuncInfo {
	var funcs []FuncInfo
	for ci := range f.Classes {
		direct, virtual := f.ClassMethods(&f.Classes[ci], diags)
		for _, list := range [][]dexfile.MethodDef{direct, virtual} {
			for i := range list {
				md := &list[i]
				if md.Code == nil {
					continue
				}
				m, _ := f.MethodAt(md.MethodIdx)
				insts, err := bytecode.DecodeN(md.Code.Insns, f.Options().EffectiveMaxSteps())
				if err != nil {
					diags.Addf(md.CodeOff, dexfmt.DiagTruncatedStream, "method %d: %v", md.MethodIdx, err)
				}
				fi := FuncInfo{Name: m.Display(), Insts: insts}
				for ii := range insts {
					in := &insts[ii]
					if in.Info.Family != bytecode.FamInvoke {
						continue
					}
					callee, ok := f.MethodAt(in.Index)
					if !ok {
						diags.Addf(in.Offset, dexfmt.DiagIndexOutOfRange, "%s: method index %d", in.Info.Name, in.Index)
						continue
					}
					fi.Calls = append(fi.Calls, CallEdge{Index: ii, Callee: callee.Display()})
				}
				funcs = append(funcs, fi)
			}
		}
	}
	return funcs
}

// BuildCallGraph constructs a lattice.Graph from collected methods.
// Each method becomes a node, each resolved invoke site an edge.
func BuildCallGraph(funcs []FuncInfo) *lattice.Graph {
	g := &lattice.Graph{}
	for _, f := range funcs {
		g.Nodes = append(g.Nodes, f.Name)
		for _, e := range f.Calls {
			if e.Callee == "" {
				continue
			}
			g.Edges = append(g.Edges, lattice.Edge{
				Caller: f.Name,
				Callee: e.Callee,
			})
		}
	}
	g.Dedup()
	return g
}
