package callgraph

import (
	"sort"

	"github.com/zboralski/lattice"

	"undex/internal/bytecode"
)

// Succ is one successor edge between basic blocks. Cond is "T"/"F" for
// the two arms of a conditional branch, empty otherwise.
type Succ struct {
	BlockID int
	Cond    string
}

// Block is one basic block over a method's decoded instructions.
// Start and End are instruction indices, not code-unit offsets.
type Block struct {
	ID      int
	Start   int
	End     int
	IsEntry bool
	IsTerm  bool
	Succs   []Succ
}

// MethodCFG is the block partition of a single method body.
type MethodCFG struct {
	Name   string
	Blocks []Block
	Insts  []bytecode.Instruction
}

// flowKind classifies how an instruction ends a basic block.
type flowKind int

const (
	flowNone   flowKind = iota // straight-line instruction
	flowGoto                   // unconditional branch
	flowCond                   // two-way conditional branch
	flowSwitch                 // multi-way; case targets live in a payload
	flowTerm                   // return or throw, no successors
)

func flowOf(in *bytecode.Instruction) flowKind {
	if in.Payload != nil {
		return flowNone // payload tables are data, not control flow
	}
	switch in.Info.Family {
	case bytecode.FamGoto:
		return flowGoto
	case bytecode.FamIf, bytecode.FamIfZ:
		return flowCond
	case bytecode.FamSwitch:
		return flowSwitch
	case bytecode.FamReturn, bytecode.FamReturnVoid, bytecode.FamThrow:
		return flowTerm
	}
	return flowNone
}

// BuildMethodCFG partitions a decoded instruction list into basic
// blocks: find the leaders, cut the blocks, then wire successors.
// Switch case targets sit in payload tables that carry no decoded
// branch list, so a switch contributes only its fallthrough edge.
func BuildMethodCFG(name string, insts []bytecode.Instruction) MethodCFG {
	if len(insts) == 0 {
		return MethodCFG{Name: name, Insts: insts}
	}

	// Map code-unit offset to instruction index for target resolution.
	offToIdx := make(map[uint32]int, len(insts))
	for i := range insts {
		offToIdx[insts[i].Offset] = i
	}

	// Pass 1: identify block leaders.
	leaders := map[int]bool{0: true}
	for i := range insts {
		in := &insts[i]
		kind := flowOf(in)
		if kind == flowNone {
			continue
		}
		if i+1 < len(insts) {
			leaders[i+1] = true
		}
		if kind == flowGoto || kind == flowCond {
			if idx, ok := offToIdx[in.Target()]; ok {
				leaders[idx] = true
			}
		}
	}

	sorted := make([]int, 0, len(leaders))
	for idx := range leaders {
		sorted = append(sorted, idx)
	}
	sort.Ints(sorted)

	// Pass 2: partition into blocks.
	blocks := make([]Block, len(sorted))
	leaderToBlock := make(map[int]int, len(sorted))
	for i, start := range sorted {
		end := len(insts)
		if i+1 < len(sorted) {
			end = sorted[i+1]
		}
		blocks[i] = Block{ID: i, Start: start, End: end, IsEntry: start == 0}
		leaderToBlock[start] = i
	}

	// Pass 3: compute successors.
	for i := range blocks {
		blk := &blocks[i]
		if blk.End <= blk.Start {
			continue
		}
		last := &insts[blk.End-1]
		kind := flowOf(last)

		next, hasNext := leaderToBlock[blk.End]
		target := -1
		if kind == flowGoto || kind == flowCond {
			if idx, ok := offToIdx[last.Target()]; ok {
				if bid, ok := leaderToBlock[idx]; ok {
					target = bid
				}
			}
		}

		switch kind {
		case flowNone, flowSwitch:
			if hasNext {
				blk.Succs = append(blk.Succs, Succ{BlockID: next})
			}
		case flowTerm:
			blk.IsTerm = true
		case flowGoto:
			if target >= 0 {
				blk.Succs = append(blk.Succs, Succ{BlockID: target})
			} else {
				blk.IsTerm = true // target outside the decoded stream
			}
		case flowCond:
			if target >= 0 {
				blk.Succs = append(blk.Succs, Succ{BlockID: target, Cond: "T"})
			}
			if hasNext {
				blk.Succs = append(blk.Succs, Succ{BlockID: next, Cond: "F"})
			}
		}
	}

	return MethodCFG{Name: name, Blocks: blocks, Insts: insts}
}

// BuildCFG constructs a lattice.CFGGraph covering every collected method.
func BuildCFG(funcs []FuncInfo) *lattice.CFGGraph {
	cg := &lattice.CFGGraph{}
	for _, f := range funcs {
		mcfg := BuildMethodCFG(f.Name, f.Insts)
		cg.Funcs = append(cg.Funcs, convertFuncCFG(&mcfg, f.Calls))
	}
	return cg
}

// BuildFuncCFG builds a single-method lattice.FuncCFG. The block count
// comes back too so callers can filter trivial one-block methods.
func BuildFuncCFG(name string, insts []bytecode.Instruction, calls []CallEdge) (*lattice.FuncCFG, int) {
	mcfg := BuildMethodCFG(name, insts)
	return convertFuncCFG(&mcfg, calls), len(mcfg.Blocks)
}

// convertFuncCFG maps a MethodCFG to lattice types, attaching each
// call site to the block whose instruction range contains it.
func convertFuncCFG(mcfg *MethodCFG, calls []CallEdge) *lattice.FuncCFG {
	callByIdx := make(map[int]CallEdge, len(calls))
	for _, c := range calls {
		callByIdx[c.Index] = c
	}

	lcfg := &lattice.FuncCFG{Name: mcfg.Name}
	for _, b := range mcfg.Blocks {
		lb := &lattice.BasicBlock{
			ID:    b.ID,
			Start: b.Start,
			End:   b.End,
			Term:  b.IsTerm,
		}
		for _, s := range b.Succs {
			lb.Succs = append(lb.Succs, lattice.Successor{
				BlockID: s.BlockID,
				Cond:    s.Cond,
			})
		}
		for idx := b.Start; idx < b.End; idx++ {
			if c, ok := callByIdx[idx]; ok {
				lb.Calls = append(lb.Calls, lattice.CallSite{
					Offset: idx,
					Callee: c.Callee,
				})
			}
		}
		lcfg.Blocks = append(lcfg.Blocks, lb)
	}
	return lcfg
}
