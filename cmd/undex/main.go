package main

import (
	"fmt"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "decompile":
		err = cmdDecompile(os.Args[2:])
	case "info":
		err = cmdInfo(os.Args[2:])
	case "strings":
		err = cmdStrings(os.Args[2:])
	case "graph":
		err = cmdGraph(os.Args[2:])
	case "help", "-h", "--help":
		usage()
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", os.Args[1])
		usage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `undex — DEX/APK decompiler

Usage:
  undex decompile --input <apk|dex> [--output <dir>]   Decompile to pseudo-code text
  undex info      --input <apk|dex>                    Print header and table summary
  undex strings   --input <apk|dex>                    Extract the string table
  undex graph     --input <apk|dex> --output <dir>     Write call graph and CFG DOT files

Decompile flags:
  --config <file>   undex.toml (default: alongside the input)
  --class <list>    comma-separated class descriptors to keep
  --strict          fail on structural faults, verify the checksum
  --apktool         unpack the APK with apktool instead of reading the ZIP
  --dot             also write call graph DOT files
  --json            also write summary.json
`)
}
