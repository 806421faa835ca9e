package style

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"sort"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/semaphore"

	"github.com/lorenzwalthert/bonousus/src/config"
)

// Input is one file handed to AnalyzeProject. When Abs is set the engine
// reads the file from disk; otherwise Text is analyzed as-is (tests,
// stdin). Path is the logical path used in findings.
type Input struct {
	Path string
	Abs  string
	Text string
}

// Engine orchestrates rule evaluation across files. The rule set and
// resolved configuration are read-only for the duration of a run and
// shared by all worker tasks without locking.
type Engine struct {
	Rules   []Rule
	Verbose bool
	Cache   *Cache

	CacheHits   atomic.Int64
	CacheMisses atomic.Int64

	cfg      config.StyleConfig
	override map[string]Severity // per-rule severity overrides
	jobs     int64
	cfgHash  string
}

// NewEngine creates an engine with the selected rules. Unknown rule
// names — whether selected explicitly or configured — and malformed rule
// options are configuration errors, fatal before any file is analyzed.
func NewEngine(cfg config.StyleConfig, ruleNames, skipNames []string, verbose bool) (*Engine, error) {
	for name := range cfg.Rules {
		if _, err := Get(name); err != nil {
			return nil, err
		}
	}

	skipSet := make(map[string]bool, len(skipNames))
	for _, name := range skipNames {
		skipSet[name] = true
	}

	var rules []Rule
	if len(ruleNames) > 0 {
		// Explicit rule selection
		for _, name := range ruleNames {
			if skipSet[name] {
				continue
			}
			r, err := Get(name)
			if err != nil {
				return nil, err
			}
			if err := configureRule(r, cfg); err != nil {
				return nil, err
			}
			rules = append(rules, r)
		}
	} else {
		// All default-enabled rules minus skipped
		for _, name := range All() {
			if skipSet[name] {
				continue
			}
			r, err := Get(name)
			if err != nil {
				return nil, err
			}
			if rc, ok := cfg.Rules[name]; ok && rc.Enabled != nil && !*rc.Enabled {
				continue
			}
			if !r.DefaultEnabled() {
				if rc, ok := cfg.Rules[name]; !ok || rc.Enabled == nil || !*rc.Enabled {
					continue
				}
			}
			if err := configureRule(r, cfg); err != nil {
				return nil, err
			}
			rules = append(rules, r)
		}
	}

	if len(rules) == 0 {
		return nil, fmt.Errorf("no style rules selected")
	}

	override := make(map[string]Severity)
	for name, rc := range cfg.Rules {
		if rc.Severity == "" {
			continue
		}
		sev, err := ParseSeverity(rc.Severity)
		if err != nil {
			return nil, fmt.Errorf("rule %s: %w", name, err)
		}
		override[name] = sev
	}

	jobs := int64(cfg.Jobs)
	if jobs <= 0 {
		jobs = int64(runtime.NumCPU() * 2)
	}

	e := &Engine{
		Rules:    rules,
		Verbose:  verbose,
		cfg:      cfg,
		override: override,
		jobs:     jobs,
	}
	e.cfgHash = e.configHash()
	return e, nil
}

// configHash fingerprints the resolved configuration and active rule
// set for cache keying.
func (e *Engine) configHash() string {
	names := e.RuleNames()
	sort.Strings(names)
	h := sha256.New()
	for _, name := range names {
		h.Write([]byte(name))
		h.Write([]byte{0})
		if rc, ok := e.cfg.Rules[name]; ok {
			if b, err := json.Marshal(rc); err == nil {
				h.Write(b)
			}
		}
	}
	return hex.EncodeToString(h.Sum(nil))
}

// configureRule passes per-rule options to rules that accept them.
func configureRule(r Rule, cfg config.StyleConfig) error {
	cr, ok := r.(ConfigurableRule)
	if !ok {
		return nil
	}
	rc, exists := cfg.Rules[r.Name()]
	if !exists || rc.Options == nil {
		// Call with an empty map so the rule can apply defaults.
		return cr.Configure(nil)
	}
	return cr.Configure(rc.Options)
}

// RuleNames returns the names of all active rules in this engine.
func (e *Engine) RuleNames() []string {
	names := make([]string, len(e.Rules))
	for i, r := range e.Rules {
		names[i] = r.Name()
	}
	return names
}

// AnalyzeFile tokenizes and parses one file, runs every active rule
// over it and returns the structural summary plus the file's findings,
// suppressed, deduplicated and sorted. Running it twice on identical
// input yields identical output.
func (e *Engine) AnalyzeFile(path, text string) (*Summary, []Finding) {
	src := NewSourceFile(path, text)

	var findings []Finding
	for _, r := range e.Rules {
		findings = append(findings, e.runRule(r, src)...)
	}

	findings = applySuppressions(findings, scanSuppressions(src))
	findings = e.applyOverrides(findings)
	return src.Summarize(), sortAndDedup(findings)
}

// runRule evaluates one rule over one file, converting a panic into a
// single synthetic rule_crashed finding so other rules and files keep
// going.
func (e *Engine) runRule(r Rule, src *SourceFile) (findings []Finding) {
	defer func() {
		if rec := recover(); rec != nil {
			if e.Verbose {
				fmt.Fprintf(os.Stderr, "rule %s crashed on %s: %v\n", r.Name(), src.Path, rec)
			}
			findings = []Finding{{
				Rule:     RuleCrashedID,
				File:     src.Path,
				Line:     1,
				Col:      1,
				Severity: SeverityWarning,
				Message:  fmt.Sprintf("rule %s failed on this file: %v", r.Name(), rec),
			}}
		}
	}()
	return r.Check(src)
}

// applyOverrides rewrites finding severities per the configuration.
func (e *Engine) applyOverrides(findings []Finding) []Finding {
	if len(e.override) == 0 {
		return findings
	}
	for i, f := range findings {
		if sev, ok := e.override[f.Rule]; ok {
			findings[i].Severity = sev
		}
	}
	return findings
}

// AnalyzeProject analyzes all inputs in parallel and aggregates the
// results into a report whose order does not depend on worker count or
// completion order. Cancellation is honored between files: in-flight
// files finish, nothing partial is merged, and a cancelled run returns
// ctx.Err() with no report.
func (e *Engine) AnalyzeProject(ctx context.Context, inputs []Input) (*Report, error) {
	var (
		mu       sync.Mutex
		findings []Finding
		wg       sync.WaitGroup
	)

	sem := semaphore.NewWeighted(e.jobs)

	for _, in := range inputs {
		if ctx.Err() != nil {
			break
		}
		if err := sem.Acquire(ctx, 1); err != nil {
			break
		}
		wg.Add(1)
		go func(in Input) {
			defer wg.Done()
			defer sem.Release(1)

			local := e.analyzeInput(in)
			if len(local) == 0 {
				return
			}
			mu.Lock()
			findings = append(findings, local...)
			mu.Unlock()
		}(in)
	}

	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Whole-project checks (path collisions) run once over all paths.
	paths := make([]string, len(inputs))
	for i, in := range inputs {
		paths[i] = in.Path
	}
	for _, r := range e.Rules {
		if pr, ok := r.(ProjectRule); ok {
			findings = append(findings, e.applyOverrides(pr.CheckProject(paths))...)
		}
	}

	return NewReport(findings), nil
}

// analyzeInput resolves one input's text and analyzes it, consulting
// the finding cache for on-disk inputs. An unreadable file degrades to
// a single file_unreadable finding.
func (e *Engine) analyzeInput(in Input) []Finding {
	text := in.Text
	var key string
	if in.Abs != "" {
		data, err := os.ReadFile(in.Abs)
		if err != nil {
			return []Finding{{
				Rule:     FileUnreadableID,
				File:     in.Path,
				Line:     1,
				Col:      1,
				Severity: SeverityWarning,
				Message:  fmt.Sprintf("cannot read file: %v", err),
			}}
		}
		text = string(data)

		if e.Cache != nil && e.Cache.Enabled {
			key = e.Cache.Key(data, e.cfgHash+"\x00"+in.Path)
			if cached, ok := e.Cache.Get(key); ok {
				e.CacheHits.Add(1)
				return cached
			}
			e.CacheMisses.Add(1)
		}
	}

	_, findings := e.AnalyzeFile(in.Path, text)

	if key != "" {
		if err := e.Cache.Put(key, findings); err != nil && e.Verbose {
			fmt.Fprintf(os.Stderr, "cache: write failed for %s: %v\n", in.Path, err)
		}
	}
	return findings
}
