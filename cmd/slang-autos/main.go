// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command slang-autos expands verilog-mode AUTO directives
// (/*AUTOINST*/, /*AUTOLOGIC*/, /*AUTOPORTS*/, AUTO_TEMPLATE) in
// SystemVerilog source files in place.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/sjalloq/slang-autos/autos"
	"github.com/sjalloq/slang-autos/config"
	"github.com/sjalloq/slang-autos/diag"
	"github.com/sjalloq/slang-autos/report"
	"github.com/sjalloq/slang-autos/source"
	"github.com/sjalloq/slang-autos/sv"
	"github.com/sjalloq/slang-autos/sv/svfake"
)

const version = "0.1.0"

// repeatedFlag accumulates one flag given multiple times, the
// convention the elaborator's own `+libext+`/`+incdir+` pass-through
// options use.
type repeatedFlag []string

func (r *repeatedFlag) String() string { return strings.Join(*r, ",") }
func (r *repeatedFlag) Set(v string) error {
	*r = append(*r, v)
	return nil
}

func main() {
	var (
		flagLibDir         repeatedFlag
		flagLibExt         repeatedFlag
		flagIncDir         repeatedFlag
		flagDefine         repeatedFlag
		flagFileList       = flag.String("f", "", "read additional source `filelist`")
		flagDryRun         = flag.Bool("dry-run", false, "compute replacements but do not write files")
		flagDiff           = flag.Bool("diff", false, "print each changed file's old lines ('-') then its new lines ('+') instead of writing files")
		flagCheck          = flag.Bool("check", false, "exit 1 if any file has pending changes, without writing")
		flagClean          = flag.Bool("clean", false, "leave every file unchanged: generated blocks are neither removed nor regenerated")
		flagStrict         = flag.Bool("strict", false, "treat a missing module as an error instead of a warning")
		flagNoAlignment    = flag.Bool("no-alignment", false, "disable column alignment of generated connections")
		flagVerbose        = flag.Bool("verbose", false, "print a summary of aggregated nets and rule hits")
		flagQuiet          = flag.Bool("quiet", false, "suppress warning diagnostics")
		flagNoSingleUnit   = flag.Bool("no-single-unit", false, "elaborate each file as a separate compilation unit")
		flagResolvedRanges = flag.Bool("resolved-ranges", false, "emit elaborated bit ranges instead of source text")
		flagHelp           = flag.Bool("help", false, "print usage and exit")
		flagVersion        = flag.Bool("version", false, "print version and exit")
	)
	flag.Var(&flagLibDir, "y", "library search `dir` (repeatable)")
	flag.Var(&flagLibExt, "libext", "library file `.ext` (repeatable)")
	flag.Var(&flagIncDir, "incdir", "include `dir` (repeatable)")
	flag.Var(&flagDefine, "define", "preprocessor `define` as key=value (repeatable)")
	flag.Parse()

	if *flagHelp {
		flag.Usage()
		os.Exit(0)
	}
	if *flagVersion {
		fmt.Println("slang-autos", version)
		os.Exit(0)
	}

	files := flag.Args()
	if *flagFileList != "" {
		extra, err := readFileList(*flagFileList)
		if err != nil {
			log.Fatal(err)
		}
		files = append(files, extra...)
	}
	if len(files) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	opts := resolveOptions(flagLibDir, flagLibExt, flagIncDir, flagDefine, *flagStrict, *flagNoAlignment, *flagResolvedRanges)
	cfg := autos.GenConfig{
		Indent:           opts.Indent,
		Alignment:        opts.Alignment,
		GroupByDirection: opts.GroupByDirection,
		UseLogic:         opts.UseLogic,
		ResolvedRanges:   opts.ResolvedRanges,
	}

	sink := &diag.Sink{}
	anyError := false
	anyPending := false

	for i, path := range files {
		changed, err := processFile(i, path, opts, cfg, sink, *flagDryRun, *flagDiff, *flagCheck, *flagClean, *flagVerbose, *flagNoSingleUnit)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
			anyError = true
			continue
		}
		if changed {
			anyPending = true
		}
	}

	if !*flagQuiet {
		fmt.Fprint(os.Stderr, sink.Format())
	} else {
		for _, d := range sink.All() {
			if d.Severity == diag.Error {
				fmt.Fprintln(os.Stderr, d.String())
			}
		}
	}
	if sink.HasErrors() {
		anyError = true
	}

	switch {
	case anyError:
		os.Exit(1)
	case *flagCheck && anyPending:
		os.Exit(1)
	default:
		os.Exit(0)
	}
}

func resolveOptions(libdir, libext, incdir, define repeatedFlag, strict, noAlignment, resolvedRanges bool) config.Options {
	opts := config.Defaults()
	sink := &diag.Sink{}

	if path, ok := config.FindRepoFile("."); ok {
		if layer, err := config.ParseRepoFile(path, sink); err == nil {
			opts = config.Merge(opts, layer, path, 0, sink)
		} else {
			fmt.Fprintf(os.Stderr, "%v\n", err)
		}
	}

	defines := map[string]string{}
	for _, d := range define {
		if k, v, ok := strings.Cut(d, "="); ok {
			defines[k] = v
		}
	}
	cliLayer := config.Layer{
		LibDirs: []string(libdir),
		LibExt:  []string(libext),
		IncDirs: []string(incdir),
		Defines: defines,
	}
	if strict {
		t := true
		cliLayer.Strict = &t
	}
	if noAlignment {
		f := false
		cliLayer.Alignment = &f
	}
	if resolvedRanges {
		t := true
		cliLayer.ResolvedRanges = &t
	}
	return config.Merge(opts, cliLayer, "<command line>", 0, sink)
}

// processFile expands one file's AUTO directives and returns whether
// its content changed.
func processFile(idx int, path string, opts config.Options, cfg autos.GenConfig, sink *diag.Sink, dryRun, diff, check, clean, verbose, noSingleUnit bool) (changed bool, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("reading: %w", err)
	}
	buf := source.New(source.BufferId(idx), path, data)

	inlineLayer := config.ParseInline(string(data), path, sink)
	fileOpts := config.Merge(opts, inlineLayer, path, 0, sink)
	fileCfg := cfg
	fileCfg.Indent = fileOpts.Indent
	fileCfg.Alignment = fileOpts.Alignment
	fileCfg.GroupByDirection = fileOpts.GroupByDirection
	fileCfg.UseLogic = fileOpts.UseLogic
	fileCfg.ResolvedRanges = fileOpts.ResolvedRanges

	// No binding to a real SystemVerilog elaborator ships with this
	// repository; svfake.Elaborator recognizes the same declaration
	// shapes its own test fixtures use. Swapping in a real elaborator
	// means implementing sv.Elaborator and passing it here instead.
	elaborator := &svfake.Elaborator{}
	tree, err := elaborator.Parse(buf)
	if err != nil {
		return false, fmt.Errorf("parsing: %w", err)
	}
	comp, err := elaborator.Elaborate([]*source.Buffer{buf}, nil)
	if err != nil || len(comp.TopInstances) == 0 {
		return false, fmt.Errorf("elaborating: %w", err)
	}

	tool := autos.NewAutosTool(buf, comp.TopInstances[0], fileOpts.Strict, fileCfg, verbose, sink)
	var hits *report.RuleHits
	if verbose {
		hits = report.NewRuleHits()
		tool.RuleHit = hits.Hit
	}
	out, err := tool.Expand(tree)
	if err != nil {
		return false, fmt.Errorf("expanding: %w", err)
	}

	if clean {
		out = data // --clean keeps the file's original content; nothing is written.
	}

	if verbose {
		printVerboseReport(path, tool.LastAgg, hits)
	}

	changed = !bytes.Equal(data, out)
	if !changed || check {
		return changed, nil
	}
	if diff {
		printDiff(path, data, out)
		return changed, nil
	}
	if dryRun {
		return changed, nil
	}
	if err := autos.WriteFile(path, out); err != nil {
		return changed, fmt.Errorf("writing: %w", err)
	}
	return changed, nil
}

// widthHistogramBuckets is the number of log-scaled buckets printed by
// the --verbose net-width summary.
const widthHistogramBuckets = 6

// printVerboseReport prints a summary of agg's external net widths and
// hits's AUTO_TEMPLATE rule hit counts to stderr. Only rules that
// matched at least one port appear in the hit counts; rules that never
// matched are not listed.
func printVerboseReport(path string, agg *autos.Aggregator, hits *report.RuleHits) {
	if agg == nil {
		return
	}
	var nets []*autos.NetUsage
	nets = append(nets, agg.ExternalInputs()...)
	nets = append(nets, agg.ExternalOutputs()...)
	nets = append(nets, agg.Inouts()...)

	fmt.Fprintf(os.Stderr, "%s: %d external net(s)\n", path, len(nets))
	if hist := report.NewWidthHistogram(nets, widthHistogramBuckets); len(nets) > 0 {
		fmt.Fprint(os.Stderr, hist.String()+"\n")
	}
	if hits != nil {
		if s := hits.String(); s != "" {
			fmt.Fprintf(os.Stderr, "%s: rule hits:\n%s\n", path, s)
		}
	}
}

func printDiff(path string, before, after []byte) {
	fmt.Printf("--- %s\n+++ %s\n", path, path)
	beforeLines := strings.Split(string(before), "\n")
	afterLines := strings.Split(string(after), "\n")
	for _, l := range beforeLines {
		fmt.Printf("-%s\n", l)
	}
	for _, l := range afterLines {
		fmt.Printf("+%s\n", l)
	}
}

func readFileList(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading filelist %s: %w", path, err)
	}
	var out []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	return out, nil
}

var _ sv.Elaborator = (*svfake.Elaborator)(nil)
