package output

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"undex/internal/pseudo"
)

func TestWriteDecompiled(t *testing.T) {
	dir := t.TempDir()
	classes := []pseudo.ClassOutput{
		{Descriptor: "LFoo;", Text: "Class: LFoo;\n{\n  return;\n}\n"},
		{Descriptor: "LBar;", Text: "Class: LBar;\n{\n}\n"},
	}
	path, err := WriteDecompiled(dir, "classes.dex", classes)
	if err != nil {
		t.Fatalf("WriteDecompiled: %v", err)
	}
	if filepath.Base(path) != "decompiled_classes.dex.txt" {
		t.Errorf("path = %q", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := "Class: LFoo;\n{\n  return;\n}\n\nClass: LBar;\n{\n}\n\n"
	if string(data) != want {
		t.Errorf("content:\n%q\nwant:\n%q", data, want)
	}
}

func TestWriteDOT(t *testing.T) {
	dir := t.TempDir()
	path, err := WriteDOT(dir, "classes.dex/callgraph", "digraph g {}\n")
	if err != nil {
		t.Fatalf("WriteDOT: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "digraph g {}\n" {
		t.Errorf("content = %q", data)
	}
}

func TestWriteSummaryJSON(t *testing.T) {
	dir := t.TempDir()
	in := []Summary{{Dex: "classes.dex", Classes: 3, Methods: 7, Faults: 1}}
	if err := WriteSummaryJSON(dir, in); err != nil {
		t.Fatalf("WriteSummaryJSON: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "summary.json"))
	if err != nil {
		t.Fatal(err)
	}
	var out []Summary
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("round trip = %+v", out)
	}
	if out[0].Dex != "classes.dex" || out[0].Classes != 3 || out[0].Methods != 7 || out[0].Faults != 1 {
		t.Errorf("round trip = %+v", out[0])
	}
}
