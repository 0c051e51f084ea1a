// Package output writes decompilation results to files.
package output

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"undex/internal/dexfmt"
	"undex/internal/pseudo"
)

// Summary is the machine-readable record for one processed DEX.
type Summary struct {
	Dex     string        `json:"dex"`
	Classes int           `json:"classes"`
	Methods int           `json:"methods"`
	Faults  int           `json:"faults"`
	Diags   []dexfmt.Diag `json:"diags,omitempty"`
}

// WriteDecompiled writes the class blocks of one DEX to
// decompiled_<dexName>.txt, blocks separated by a blank line. The
// written path comes back for logging.
func WriteDecompiled(dir, dexName string, classes []pseudo.ClassOutput) (string, error) {
	path := filepath.Join(dir, "decompiled_"+filepath.Base(dexName)+".txt")
	var sb strings.Builder
	for _, c := range classes {
		sb.WriteString(c.Text)
		sb.WriteByte('\n')
	}
	if err := os.WriteFile(path, []byte(sb.String()), 0644); err != nil {
		return "", fmt.Errorf("output: write %s: %w", path, err)
	}
	return path, nil
}

// WriteDOT writes DOT text to graphs/<name>.dot. name may contain path
// separators for directory grouping.
func WriteDOT(dir, name, dot string) (string, error) {
	path := filepath.Join(dir, "graphs", name+".dot")
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("output: mkdir graphs: %w", err)
	}
	if err := os.WriteFile(path, []byte(dot), 0644); err != nil {
		return "", fmt.Errorf("output: write %s: %w", path, err)
	}
	return path, nil
}

// WriteSummaryJSON writes per-DEX summaries to summary.json.
func WriteSummaryJSON(dir string, summaries []Summary) error {
	return writeJSON(filepath.Join(dir, "summary.json"), summaries)
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("output: create %s: %w", path, err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("output: encode %s: %w", path, err)
	}
	return nil
}
