package callgraph

import (
	"testing"

	"github.com/zboralski/lattice/render"

	"undex/internal/bytecode"
)

func decodeUnits(t *testing.T, us ...uint16) []bytecode.Instruction {
	t.Helper()
	buf := make([]byte, 0, len(us)*2)
	for _, u := range us {
		buf = append(buf, byte(u), byte(u>>8))
	}
	insts, err := bytecode.Decode(buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	return insts
}

func TestBuildMethodCFG_DOTOutput(t *testing.T) {
	// A diamond over four blocks:
	//
	// entry (B0):
	//   unit 0: const/4 v0, 5
	//   unit 1: if-eqz v0, +6      ; conditional → B2
	//
	// fallthrough path (B1):
	//   unit 3: invoke-virtual {v1}, method 1
	//   unit 6: goto +2            ; jump → B3
	//
	// taken path (B2):
	//   unit 7: return-void
	//
	// join (B3):
	//   unit 8: return-void
	insts := decodeUnits(t,
		0x5012,
		0x0038, 0x0006,
		0x106e, 0x0001, 0x0001,
		0x0228,
		0x000e,
		0x000e,
	)
	calls := []CallEdge{{Index: 2, Callee: "LFoo;.bar(I)I"}}

	funcs := []FuncInfo{{Name: "LFoo;.run()V", Insts: insts, Calls: calls}}
	cfg := BuildCFG(funcs)

	if len(cfg.Funcs) != 1 {
		t.Fatalf("expected 1 function, got %d", len(cfg.Funcs))
	}
	f := cfg.Funcs[0]
	if f.Name != "LFoo;.run()V" {
		t.Errorf("func name = %q", f.Name)
	}
	if len(f.Blocks) != 4 {
		t.Fatalf("expected 4 blocks, got %d", len(f.Blocks))
	}

	// B0: conditional, taken (T) to B2, fallthrough (F) to B1.
	b0 := f.Blocks[0]
	if len(b0.Succs) != 2 {
		t.Fatalf("B0 succs = %+v", b0.Succs)
	}
	if b0.Succs[0].BlockID != 2 || b0.Succs[0].Cond != "T" {
		t.Errorf("B0 taken edge = %+v", b0.Succs[0])
	}
	if b0.Succs[1].BlockID != 1 || b0.Succs[1].Cond != "F" {
		t.Errorf("B0 fallthrough edge = %+v", b0.Succs[1])
	}

	// B1: holds the call, jumps to the join.
	b1 := f.Blocks[1]
	if len(b1.Calls) != 1 || b1.Calls[0].Callee != "LFoo;.bar(I)I" {
		t.Errorf("B1 calls = %+v", b1.Calls)
	}
	if len(b1.Succs) != 1 || b1.Succs[0].BlockID != 3 {
		t.Errorf("B1 succs = %+v", b1.Succs)
	}

	// B2 and B3 both return.
	if !f.Blocks[2].Term {
		t.Error("B2 should be terminal")
	}
	if !f.Blocks[3].Term {
		t.Error("B3 should be terminal")
	}

	dot := render.DOTCFG(cfg, "diamond")
	if dot == "" {
		t.Error("expected non-empty DOT output")
	}
}

func TestBuildMethodCFG_SwitchFallthrough(t *testing.T) {
	// packed-switch case targets live in the payload table; the block
	// keeps only its fallthrough edge.
	insts := decodeUnits(t,
		0x002b, 0x0004, 0x0000, // packed-switch v0, payload at unit 4
		0x000e,                                         // return-void
		0x0100, 0x0001, 0x0000, 0x0000, 0x0002, 0x0000, // payload, 1 entry
	)
	mcfg := BuildMethodCFG("LFoo;.pick(I)V", insts)
	if len(mcfg.Blocks) < 2 {
		t.Fatalf("got %d blocks", len(mcfg.Blocks))
	}
	b0 := mcfg.Blocks[0]
	if len(b0.Succs) != 1 || b0.Succs[0].Cond != "" || b0.Succs[0].BlockID != 1 {
		t.Errorf("switch block succs = %+v", b0.Succs)
	}
}

func TestBuildCallGraph_DOTOutput(t *testing.T) {
	funcs := []FuncInfo{
		{
			Name: "LMain;.main([Ljava/lang/String;)V",
			Calls: []CallEdge{
				{Index: 1, Callee: "LFoo;.<init>()V"},
				{Index: 4, Callee: "LBar;.run()V"},
			},
		},
		{
			Name: "LFoo;.<init>()V",
			Calls: []CallEdge{
				{Index: 0, Callee: "LLog;.log(Ljava/lang/String;)V"},
			},
		},
		{
			Name: "LBar;.run()V",
			Calls: []CallEdge{
				{Index: 2, Callee: "LLog;.log(Ljava/lang/String;)V"},
				{Index: 5, Callee: "LLog;.log(Ljava/lang/String;)V"}, // duplicate site
			},
		},
		{
			Name: "LLog;.log(Ljava/lang/String;)V",
		},
	}

	cg := BuildCallGraph(funcs)
	if len(cg.Nodes) != 4 {
		t.Errorf("nodes = %d, want 4", len(cg.Nodes))
	}
	// Dedup collapses the two LBar; → LLog; sites into one edge.
	if len(cg.Edges) != 4 {
		t.Errorf("edges = %d, want 4: %+v", len(cg.Edges), cg.Edges)
	}

	dot := render.DOT(cg, "callgraph")
	if dot == "" {
		t.Error("expected non-empty DOT output")
	}
}
