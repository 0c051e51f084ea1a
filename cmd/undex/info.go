package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"undex/internal/apk"
	"undex/internal/dexfile"
	"undex/internal/dexfmt"
)

func cmdInfo(args []string) error {
	fs := flag.NewFlagSet("info", flag.ExitOnError)
	input := fs.String("input", "", "input APK or DEX file")
	strict := fs.Bool("strict", false, "fail on structural faults, verify the checksum")
	jsonOut := fs.Bool("json", false, "output as JSON")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *input == "" {
		return fmt.Errorf("--input is required")
	}

	opts := dexfmt.Options{}
	if *strict {
		opts.Mode = dexfmt.ModeStrict
	}

	entries, err := apk.ReadInput(*input)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return errNoDex
	}

	type dexInfo struct {
		Name     string `json:"name"`
		Version  int    `json:"version"`
		Checksum uint32 `json:"checksum"`
		FileSize uint32 `json:"file_size"`
		Strings  uint32 `json:"strings"`
		Types    uint32 `json:"types"`
		Protos   uint32 `json:"protos"`
		Fields   uint32 `json:"fields"`
		Methods  uint32 `json:"methods"`
		Classes  uint32 `json:"classes"`
		Diags    int    `json:"diags"`
	}
	var infos []dexInfo

	for _, e := range entries {
		f, err := dexfile.Parse(e.Data, opts)
		if err != nil {
			return fmt.Errorf("%s: %w", e.Name, err)
		}
		h := f.Header
		infos = append(infos, dexInfo{
			Name:     e.Name,
			Version:  h.Version,
			Checksum: h.Checksum,
			FileSize: h.FileSize,
			Strings:  h.StringIDsSize,
			Types:    h.TypeIDsSize,
			Protos:   h.ProtoIDsSize,
			Fields:   h.FieldIDsSize,
			Methods:  h.MethodIDsSize,
			Classes:  h.ClassDefsSize,
			Diags:    f.Diags.Len(),
		})
	}

	if *jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(infos)
	}
	for _, i := range infos {
		fmt.Printf("%s: DEX %03d, %d bytes, checksum %#08x\n", i.Name, i.Version, i.FileSize, i.Checksum)
		fmt.Printf("  strings %d, types %d, protos %d, fields %d, methods %d, classes %d\n",
			i.Strings, i.Types, i.Protos, i.Fields, i.Methods, i.Classes)
		if i.Diags > 0 {
			fmt.Printf("  %d recoverable faults\n", i.Diags)
		}
	}
	return nil
}
