package validate

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Policy stages validation rules on and off. Hosts migrating an existing
// front end can disable individual rules while they phase enforcement
// in; an empty policy enforces everything.
type Policy struct {
	// DisabledRules lists rules that report no violations.
	DisabledRules []Rule `yaml:"disabled_rules"`
}

// LoadPolicy parses a YAML policy document, e.g.:
//
//	disabled_rules:
//	  - loop-exit-in-handler
func LoadPolicy(data []byte) (*Policy, error) {
	var p Policy
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("validate: parse policy: %w", err)
	}

	for _, r := range p.DisabledRules {
		switch r {
		case RuleMixedStyles, RuleLoopExit, RuleValueReturn:
		default:
			return nil, fmt.Errorf("validate: unknown rule %q in policy", r)
		}
	}

	return &p, nil
}

// Check validates a block descriptor under this policy.
func (p *Policy) Check(b *Block) []Violation {
	disabled := make(map[Rule]bool, len(p.DisabledRules))
	for _, r := range p.DisabledRules {
		disabled[r] = true
	}

	return checkRules(b, disabled)
}
