package main

import (
	"flag"
	"fmt"

	"undex/internal/apk"
	"undex/internal/dexfile"
	"undex/internal/dexfmt"
)

func cmdStrings(args []string) error {
	fs := flag.NewFlagSet("strings", flag.ExitOnError)
	input := fs.String("input", "", "input APK or DEX file")
	maxLen := fs.Int("max-len", 200, "max display length per string (0 = unlimited)")
	indices := fs.Bool("indices", false, "prefix each string with its table index")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *input == "" {
		return fmt.Errorf("--input is required")
	}

	entries, err := apk.ReadInput(*input)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return errNoDex
	}

	for _, e := range entries {
		f, err := dexfile.Parse(e.Data, dexfmt.Options{})
		if err != nil {
			return fmt.Errorf("%s: %w", e.Name, err)
		}
		if len(entries) > 1 {
			fmt.Printf("== %s ==\n", e.Name)
		}
		for i, s := range f.Strings {
			if *maxLen > 0 && len(s) > *maxLen {
				s = s[:*maxLen] + "..."
			}
			if *indices {
				fmt.Printf("%d\t%q\n", i, s)
			} else {
				fmt.Printf("%q\n", s)
			}
		}
	}
	return nil
}
