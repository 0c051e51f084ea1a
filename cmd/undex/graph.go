package main

import (
	"flag"
	"fmt"
	"os"

	"undex/internal/apk"
	"undex/internal/dexfile"
	"undex/internal/dexfmt"
)

func cmdGraph(args []string) error {
	fs := flag.NewFlagSet("graph", flag.ExitOnError)
	input := fs.String("input", "", "input APK or DEX file")
	outDir := fs.String("output", "dex_output", "output directory")
	strict := fs.Bool("strict", false, "fail on structural faults, verify the checksum")

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
	if err := os.MkdirAll(*outDir, 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	for _, e := range entries {
		f, err := dexfile.Parse(e.Data, opts)
		if err != nil {
			return fmt.Errorf("%s: %w", e.Name, err)
		}
		if err := writeGraphs(f, e.Name, *outDir); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "%s: graphs written to %s\n", e.Name, *outDir)
	}
	return nil
}
