package rules

import (
	"encoding/json"
	"fmt"
)

// decodeOptions maps a rule's option map onto a typed config struct via
// a JSON round-trip, so option files stay plain YAML/TOML maps.
func decodeOptions(ruleName string, opts map[string]any, into any) error {
	if len(opts) == 0 {
		return nil
	}
	b, err := json.Marshal(opts)
	if err != nil {
		return fmt.Errorf("%s: marshal options: %w", ruleName, err)
	}
	if err := json.Unmarshal(b, into); err != nil {
		return fmt.Errorf("%s: unmarshal options: %w", ruleName, err)
	}
	return nil
}
