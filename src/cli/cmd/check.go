package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/lorenzwalthert/bonousus/src/output"
	"github.com/lorenzwalthert/bonousus/src/style"
	_ "github.com/lorenzwalthert/bonousus/src/style/rules"
	"github.com/lorenzwalthert/bonousus/src/walk"
)

var (
	checkRules   []string
	checkNoRule  []string
	checkChanged bool
	checkJobs    int
	checkFormat  string
	checkNoCache bool
)

var checkCmd = &cobra.Command{
	Use:   "check [path]",
	Short: "Check R sources for style violations",
	Long: `Check an R source tree against the configured style rules.

Rules run in parallel across files and results are cached by content
hash. With --changed, only files differing from the git target branch
are checked.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().StringSliceVar(&checkRules, "rule", nil, "run only these rules (comma-separated)")
	checkCmd.Flags().StringSliceVar(&checkNoRule, "no-rule", nil, "skip these rules (comma-separated)")
	checkCmd.Flags().BoolVar(&checkChanged, "changed", false, "check only files changed against the git target branch")
	checkCmd.Flags().IntVar(&checkJobs, "jobs", 0, "max concurrent files (default: from config, then 2x CPUs)")
	checkCmd.Flags().StringVar(&checkFormat, "format", "text", "output format: text or json")
	checkCmd.Flags().BoolVar(&checkNoCache, "no-cache", false, "disable cache (clear and recheck)")

	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	if checkFormat != "text" && checkFormat != "json" {
		return fmt.Errorf("unknown format %q (want text or json)", checkFormat)
	}

	rootDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting working directory: %w", err)
	}
	if len(args) > 0 {
		rootDir = args[0]
	}

	// Set up cache
	cache := &style.Cache{
		Dir:     style.ResolveCacheDir(rootDir, cfg.Style.CacheDir),
		Enabled: !checkNoCache,
	}
	if checkNoCache {
		if err := cache.Clear(); err != nil && verbose {
			fmt.Fprintf(os.Stderr, "cache: clear failed: %v\n", err)
		}
	}

	if checkJobs > 0 {
		cfg.Style.Jobs = checkJobs
	}

	engine, err := style.NewEngine(cfg.Style, checkRules, checkNoRule, verbose)
	if err != nil {
		return err
	}
	engine.Cache = cache

	if verbose {
		fmt.Fprintf(os.Stderr, "rules: %v\n", engine.RuleNames())
	}

	files, err := walk.Collect(rootDir, cfg.Style.Exclude)
	if err != nil {
		return fmt.Errorf("collecting files: %w", err)
	}

	ctx := context.Background()

	if checkChanged {
		delta := &walk.Delta{RootDir: rootDir, TargetBranch: cfg.Style.TargetBranch, Verbose: verbose}
		changedSet, deltaErr := delta.ChangedFiles(ctx)
		if deltaErr != nil && verbose {
			fmt.Fprintf(os.Stderr, "delta: %v, falling back to full check\n", deltaErr)
		}
		if changedSet != nil {
			allFiles := files
			files = walk.FilterChanged(files, changedSet)
			if verbose {
				fmt.Fprintf(os.Stderr, "delta: %d/%d files changed\n", len(files), len(allFiles))
			}
		}
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "checking %d files\n", len(files))
	}

	inputs := make([]style.Input, len(files))
	for i, f := range files {
		inputs[i] = style.Input{Path: f.Path, Abs: f.Abs}
	}

	start := time.Now()
	report, err := engine.AnalyzeProject(ctx, inputs)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	w := os.Stdout

	if checkFormat == "json" {
		if err := output.WriteJSON(w, report, len(files), elapsed); err != nil {
			return fmt.Errorf("writing json report: %w", err)
		}
	} else {
		output.ConfigureColor()

		// ── Check section ──
		output.SectionStart(w, "bn_check", "Check")
		sec := output.NewSection(w, "Check", elapsed)
		output.RuleTable(sec, engine.RuleNames(), report)
		sec.Separator()
		sec.Row("%-22s%5d files", "total", len(files))
		sec.Close()
		output.SectionEnd(w, "bn_check")

		// ── Findings section (only when findings > 0) ──
		if len(report.Findings) > 0 {
			output.SectionStart(w, "bn_findings", "Findings")
			fSec := output.NewSection(w, "Findings", 0)
			output.SectionFindings(fSec, report)
			fSec.Separator()
			fSec.Row("%s", output.FindingsSummaryLine(report, len(files)))
			fSec.Close()
			output.SectionEnd(w, "bn_findings")
		}
	}

	if verbose && cache.Enabled {
		fmt.Fprintf(os.Stderr, "cache: %d hits, %d misses\n",
			engine.CacheHits.Load(), engine.CacheMisses.Load())
	}

	failOnName := cfg.Style.FailOn
	if failOnName == "" {
		failOnName = "error"
	}
	failOn, err := style.ParseSeverity(failOnName)
	if err != nil {
		return fmt.Errorf("fail_on: %w", err)
	}
	if max, ok := report.MaxSeverity(); ok && max >= failOn {
		return fmt.Errorf("check failed: %d findings at or above %s", countAtOrAbove(report, failOn), failOn)
	}

	return nil
}

func countAtOrAbove(report *style.Report, sev style.Severity) int {
	n := 0
	for _, f := range report.Findings {
		if f.Severity >= sev {
			n++
		}
	}
	return n
}
