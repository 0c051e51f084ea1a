package apk

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func buildZip(t *testing.T, entries map[string][]byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for name, data := range entries {
		f, err := w.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := f.Write(data); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestExtractDexBytes(t *testing.T) {
	archive := buildZip(t, map[string][]byte{
		"AndroidManifest.xml": []byte("<manifest/>"),
		"classes2.dex":        []byte("dex2"),
		"classes.dex":         []byte("dex1"),
		"res/classes.dexes":   []byte("not a dex"),
		"lib/arm64/libx.so":   []byte("elf"),
	})
	entries, err := ExtractDexBytes(archive, "app.apk")
	if err != nil {
		t.Fatalf("ExtractDexBytes: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries: %+v", len(entries), entries)
	}
	// Sorted by name for stable multidex order.
	if entries[0].Name != "classes.dex" || string(entries[0].Data) != "dex1" {
		t.Errorf("entries[0] = %q", entries[0].Name)
	}
	if entries[1].Name != "classes2.dex" || string(entries[1].Data) != "dex2" {
		t.Errorf("entries[1] = %q", entries[1].Name)
	}
}

func TestReadInput(t *testing.T) {
	dir := t.TempDir()

	// A raw DEX file passes through as one entry.
	dexPath := filepath.Join(dir, "classes.dex")
	if err := os.WriteFile(dexPath, []byte("dex\n035\x00rest"), 0644); err != nil {
		t.Fatal(err)
	}
	entries, err := ReadInput(dexPath)
	if err != nil {
		t.Fatalf("ReadInput(dex): %v", err)
	}
	if len(entries) != 1 || entries[0].Name != "classes.dex" {
		t.Fatalf("entries = %+v", entries)
	}

	// An APK gets unpacked.
	apkPath := filepath.Join(dir, "app.apk")
	archive := buildZip(t, map[string][]byte{"classes.dex": []byte("payload")})
	if err := os.WriteFile(apkPath, archive, 0644); err != nil {
		t.Fatal(err)
	}
	entries, err = ReadInput(apkPath)
	if err != nil {
		t.Fatalf("ReadInput(apk): %v", err)
	}
	if len(entries) != 1 || string(entries[0].Data) != "payload" {
		t.Fatalf("entries = %+v", entries)
	}

	if _, err := ReadInput(filepath.Join(dir, "missing.dex")); err == nil {
		t.Error("expected error for missing input")
	}
}

func TestIsArchive(t *testing.T) {
	if IsArchive([]byte("dex\n035\x00")) {
		t.Error("DEX magic classified as archive")
	}
	if !IsArchive([]byte("PK\x03\x04rest")) {
		t.Error("ZIP magic not recognized")
	}
}
