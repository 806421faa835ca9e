package style

import (
	"fmt"
	"sort"
	"sync"
)

// Rule is the interface every style check implements. Rules are pure,
// stateless evaluators over one SourceFile: they never mutate the tree
// and never see each other's output, which is what makes parallel
// evaluation safe.
type Rule interface {
	Name() string
	DefaultSeverity() Severity
	DefaultEnabled() bool
	Check(file *SourceFile) []Finding
}

// ConfigurableRule is implemented by rules that accept options from the
// per-rule configuration map.
type ConfigurableRule interface {
	Rule
	Configure(opts map[string]any) error
}

// ProjectRule is implemented by rules that additionally need the whole
// project's path list (the filename collision check). CheckProject runs
// once per project, after the per-file passes.
type ProjectRule interface {
	Rule
	CheckProject(paths []string) []Finding
}

// Synthetic rule identifiers for degraded-analysis findings.
const (
	RuleCrashedID    = "rule_crashed"
	FileUnreadableID = "file_unreadable"
)

var (
	registryMu sync.RWMutex
	registry   = map[string]func() Rule{}
)

// Register adds a rule constructor to the global registry.
// Called from init() in each rule file.
func Register(name string, constructor func() Rule) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, exists := registry[name]; exists {
		panic(fmt.Sprintf("style: duplicate rule registration: %s", name))
	}
	registry[name] = constructor
}

// Get returns a new instance of the named rule.
func Get(name string) (Rule, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	ctor, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("style: unknown rule: %s", name)
	}
	return ctor(), nil
}

// All returns sorted names of all registered rules.
func All() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
