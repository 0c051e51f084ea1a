package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/zboralski/lattice"
	"github.com/zboralski/lattice/render"
	"go.uber.org/zap"

	"undex/internal/apk"
	"undex/internal/callgraph"
	"undex/internal/config"
	"undex/internal/dexfile"
	"undex/internal/dexfmt"
	"undex/internal/output"
	"undex/internal/pseudo"
)

func cmdDecompile(args []string) error {
	fs := flag.NewFlagSet("decompile", flag.ExitOnError)
	input := fs.String("input", "", "input APK or DEX file")
	outDir := fs.String("output", "", "output directory (default: config, then \"dex_output\")")
	cfgPath := fs.String("config", "", "path to undex.toml (default: alongside the input)")
	strict := fs.Bool("strict", false, "fail on structural faults, verify the checksum")
	classFilter := fs.String("class", "", "comma-separated class descriptors to keep")
	useApktool := fs.Bool("apktool", false, "unpack the APK with apktool instead of reading the ZIP")
	dot := fs.Bool("dot", false, "also write call graph DOT files")
	jsonOut := fs.Bool("json", false, "also write summary.json")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *input == "" {
		return fmt.Errorf("--input is required")
	}

	logger, err := zap.NewProduction()
	if err != nil {
		return err
	}
	defer logger.Sync()
	log := logger.Sugar()

	cfg, err := loadConfig(*cfgPath, *input)
	if err != nil {
		return err
	}
	if *strict {
		cfg.Decode.Strict = true
	}
	if *dot {
		cfg.Output.DOT = true
	}
	if *jsonOut {
		cfg.Output.JSON = true
	}
	dir := cfg.Output.Dir
	if *outDir != "" {
		dir = *outDir
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	opaque, err := cfg.OpaqueSet()
	if err != nil {
		return err
	}
	parseOpts := dexfmt.Options{MaxSteps: cfg.Decode.MaxSteps}
	opts := pseudo.Options{
		Opaque:   opaque,
		Filter:   parseFilter(*classFilter),
		MaxSteps: parseOpts.EffectiveMaxSteps(),
	}
	if cfg.Decode.Strict {
		parseOpts.Mode = dexfmt.ModeStrict
	}

	entries, err := readEntries(*input, dir, *useApktool)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return errNoDex
	}
	log.Infow("decompiling", "input", *input, "dex_count", len(entries), "output", dir)

	// One worker per DEX; each writes its own files.
	summaries := make([]output.Summary, len(entries))
	errs := make([]error, len(entries))
	var wg sync.WaitGroup
	for i, e := range entries {
		wg.Add(1)
		go func(i int, e apk.Entry) {
			defer wg.Done()
			summaries[i], errs[i] = decompileOne(e, dir, parseOpts, opts, cfg.Output.DOT, log)
		}(i, e)
	}
	wg.Wait()

	var failed error
	for i, err := range errs {
		if err != nil {
			log.Errorw("dex failed", "dex", entries[i].Name, "err", err)
			failed = err
		}
	}
	if failed != nil && cfg.Decode.Strict {
		return failed
	}

	if cfg.Output.JSON {
		kept := summaries[:0]
		for i, s := range summaries {
			if errs[i] == nil {
				kept = append(kept, s)
			}
		}
		if err := output.WriteSummaryJSON(dir, kept); err != nil {
			return err
		}
	}
	return nil
}

func decompileOne(e apk.Entry, dir string, parseOpts dexfmt.Options, opts pseudo.Options, dot bool, log *zap.SugaredLogger) (output.Summary, error) {
	f, err := dexfile.Parse(e.Data, parseOpts)
	if err != nil {
		return output.Summary{}, err
	}
	res := pseudo.Decompile(f, opts)

	path, err := output.WriteDecompiled(dir, e.Name, res.Classes)
	if err != nil {
		return output.Summary{}, err
	}

	methods := 0
	faults := 0
	for _, c := range res.Classes {
		methods += c.Methods
		faults += c.Faults
	}
	log.Infow("decompiled", "dex", e.Name, "classes", len(res.Classes), "methods", methods, "faults", faults, "out", path)

	if dot {
		if err := writeGraphs(f, e.Name, dir); err != nil {
			return output.Summary{}, err
		}
	}

	return output.Summary{
		Dex:     e.Name,
		Classes: len(res.Classes),
		Methods: methods,
		Faults:  faults,
		Diags:   res.Diags.Items(),
	}, nil
}

func writeGraphs(f *dexfile.File, dexName, dir string) error {
	var diags dexfmt.Diags
	funcs := callgraph.Collect(f, &diags)

	cg := callgraph.BuildCallGraph(funcs)
	if _, err := output.WriteDOT(dir, filepath.Join(dexName, "callgraph"), render.DOT(cg, dexName)); err != nil {
		return err
	}

	// One CFG file per non-trivial method.
	for _, fn := range funcs {
		lcfg, blocks := callgraph.BuildFuncCFG(fn.Name, fn.Insts, fn.Calls)
		if blocks < 2 {
			continue
		}
		g := &lattice.CFGGraph{Funcs: []*lattice.FuncCFG{lcfg}}
		name := filepath.Join(dexName, "cfg", sanitizeFileName(fn.Name))
		if _, err := output.WriteDOT(dir, name, render.DOTCFG(g, fn.Name)); err != nil {
			return err
		}
	}
	return nil
}

// sanitizeFileName maps a method display name to a safe file name.
func sanitizeFileName(name string) string {
	r := strings.NewReplacer("/", ".", ";", "", "(", "_", ")", "_", "[", "", "<", "", ">", "", " ", "")
	return r.Replace(name)
}

func loadConfig(cfgPath, input string) (*config.Config, error) {
	if cfgPath != "" {
		return config.Load(cfgPath)
	}
	return config.LoadOrDefault(filepath.Join(filepath.Dir(input), config.ConfigFileName))
}

func parseFilter(list string) map[string]bool {
	if list == "" {
		return nil
	}
	m := make(map[string]bool)
	for _, d := range strings.Split(list, ",") {
		if d = strings.TrimSpace(d); d != "" {
			m[d] = true
		}
	}
	return m
}

// readEntries loads the input file, going through apktool when asked.
func readEntries(input, dir string, useApktool bool) ([]apk.Entry, error) {
	if !useApktool {
		return apk.ReadInput(input)
	}
	paths, err := apk.RunApktool(input, dir)
	if err != nil {
		return nil, err
	}
	var entries []apk.Entry
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, err
		}
		entries = append(entries, apk.Entry{Name: filepath.Base(p), Data: data})
	}
	return entries, nil
}

var errNoDex = errors.New("no DEX entries found")
