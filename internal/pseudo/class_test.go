package pseudo

import (
	"strings"
	"sync"
	"testing"

	"undex/internal/dexfile"
	"undex/internal/dexfmt"
	"undex/internal/dextest"
)

// twoClassFixture builds LFoo; with a three-instruction <init> plus an
// invoke-virtual caller, and LBar; with a bare return.
func twoClassFixture() *dextest.Builder {
	return &dextest.Builder{
		Strings: []string{"<init>", "I", "LFoo;", "Ljava/lang/Object;", "V", "bar", "LBar;"},
		Types:   []uint32{1, 2, 3, 4, 6}, // I, LFoo;, Ljava/lang/Object;, V, LBar;
		Protos: []dextest.Proto{
			{ShortyIdx: 4, ReturnIdx: 3},                      // ()V
			{ShortyIdx: 1, ReturnIdx: 0, Params: []uint16{0}}, // (I)I
		},
		Methods: []dextest.Ref{{ClassIdx: 1, TypeIdx: 0, NameIdx: 0}, {ClassIdx: 1, TypeIdx: 1, NameIdx: 5}},
		Classes: []dextest.Class{
			{
				TypeIdx:  1,
				SuperIdx: 2,
				Direct: []dextest.Method{{
					MethodIdx: 0,
					Registers: 1,
					Insns: []uint16{
						0x5012,         // const/4 v0, 5
						0x0038, 0x0002, // if-eqz v0, +2
						0x000e, // return-void
					},
				}},
			},
			{
				TypeIdx:  4,
				SuperIdx: 2,
				Direct: []dextest.Method{{
					MethodIdx: 0,
					Registers: 3,
					Insns: []uint16{
						0x206e, 0x0001, 0x0021, // invoke-virtual {v1, v2}, method 1
						0x000e, // return-void
					},
				}},
			},
		},
	}
}

func parseFixture(t *testing.T, b *dextest.Builder) *dexfile.File {
	t.Helper()
	f, err := dexfile.Parse(b.Build(), dexfmt.Options{Mode: dexfmt.ModeStrict})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return f
}

func TestDecompileGoldenBlock(t *testing.T) {
	f := parseFixture(t, twoClassFixture())
	res := Decompile(f, Options{})
	if len(res.Classes) != 2 {
		t.Fatalf("got %d classes, want 2", len(res.Classes))
	}

	want := "Class: LFoo;\n" +
		"{\n" +
		"  v0 = 5;\n" +
		"  if (v0 == 0) goto label_3;\n" +
		"  return;\n" +
		"}\n"
	if got := res.Classes[0].Text; got != want {
		t.Errorf("LFoo; block:\n%s\nwant:\n%s", got, want)
	}
	if res.Classes[0].Name != "Foo" || res.Classes[0].Methods != 1 {
		t.Errorf("LFoo; meta = %q, %d methods", res.Classes[0].Name, res.Classes[0].Methods)
	}
	if res.Diags.Len() != 0 {
		t.Errorf("unexpected diags: %v", res.Diags.Items())
	}
}

func TestDecompileInvokeResolution(t *testing.T) {
	f := parseFixture(t, twoClassFixture())
	res := Decompile(f, Options{})
	text := res.Classes[1].Text
	want := "  v1.bar(v2);  // LFoo;.bar(I)I\n"
	if !strings.Contains(text, want) {
		t.Errorf("LBar; block:\n%s\nwant line %q", text, want)
	}
}

func TestDecompileFilter(t *testing.T) {
	f := parseFixture(t, twoClassFixture())
	res := Decompile(f, Options{Filter: map[string]bool{"LBar;": true}})
	if len(res.Classes) != 1 || res.Classes[0].Descriptor != "LBar;" {
		t.Fatalf("filtered classes = %+v", res.Classes)
	}
}

func TestDecompileUnknownOpcode(t *testing.T) {
	b := twoClassFixture()
	b.Classes[0].Direct[0].Insns = []uint16{
		0x003e, // unused opcode
		0x000e, // return-void
	}
	f := parseFixture(t, b)
	res := Decompile(f, Options{})
	text := res.Classes[0].Text
	if !strings.Contains(text, "// Unknown opcode: 0x3e @ unit 0") {
		t.Errorf("missing unknown-opcode annotation:\n%s", text)
	}
	if !strings.Contains(text, "return;") {
		t.Errorf("decoding did not continue past the unknown opcode:\n%s", text)
	}
	if res.Classes[0].Faults != 1 {
		t.Errorf("Faults = %d, want 1", res.Classes[0].Faults)
	}
	if n := res.Diags.Count(dexfmt.DiagUnknownOpcode); n != 1 {
		t.Errorf("unknown opcode diags = %d, want 1", n)
	}
}

func TestDecompileTruncatedStream(t *testing.T) {
	b := twoClassFixture()
	b.Classes[0].Direct[0].Insns = []uint16{
		0x5012, // const/4 v0, 5
		0x0013, // const/16 missing its literal unit
	}
	f := parseFixture(t, b)
	res := Decompile(f, Options{})
	if !strings.Contains(res.Classes[0].Text, "v0 = 5;") {
		t.Errorf("statements before the truncation were dropped:\n%s", res.Classes[0].Text)
	}
	if n := res.Diags.Count(dexfmt.DiagTruncatedStream); n != 1 {
		t.Errorf("truncated stream diags = %d, want 1", n)
	}
	// Only the faulty method is affected.
	if !strings.Contains(res.Classes[1].Text, "return;") {
		t.Errorf("other class lost output:\n%s", res.Classes[1].Text)
	}
}

func TestDecompileOpaqueOpcode(t *testing.T) {
	f := parseFixture(t, twoClassFixture())
	res := Decompile(f, Options{Opaque: map[byte]bool{0x12: true}})
	if !strings.Contains(res.Classes[0].Text, "// const/4 (opaque): 0x12 @ unit 0") {
		t.Errorf("opaque opcode not annotated:\n%s", res.Classes[0].Text)
	}
}

func TestDecompileDeterministic(t *testing.T) {
	f := parseFixture(t, twoClassFixture())
	base := Decompile(f, Options{})

	var wg sync.WaitGroup
	results := make([]*Result, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = Decompile(f, Options{})
		}(i)
	}
	wg.Wait()

	for i, res := range results {
		if len(res.Classes) != len(base.Classes) {
			t.Fatalf("run %d: %d classes, want %d", i, len(res.Classes), len(base.Classes))
		}
		for j := range res.Classes {
			if res.Classes[j].Text != base.Classes[j].Text {
				t.Errorf("run %d: class %d text differs", i, j)
			}
		}
	}
}
