package rewrite

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// Rule is one named regex substitution applied across a source tree.
type Rule struct {
	Name        string
	Description string
	Extensions  []string
	Pattern     *regexp.Regexp
	Replacement string
}

// Builtins cover the one-off cleanups the dashboard codebase has needed so
// far.
var Builtins = []Rule{
	{
		Name:        "dropdown-initial-value",
		Description: "Replace DropdownButtonFormField initialValue: with value:",
		Extensions:  []string{".dart"},
		Pattern:     regexp.MustCompile(`(DropdownButtonFormField[^{]*\{[^}]*?)initialValue:`),
		Replacement: "${1}value:",
	},
	{
		Name:        "with-values-opacity",
		Description: "Replace withValues(alpha: x) with withOpacity(x)",
		Extensions:  []string{".dart"},
		Pattern:     regexp.MustCompile(`withValues\(alpha:\s*([\d.]+)\)`),
		Replacement: "withOpacity($1)",
	},
}

// Lookup resolves a rule by name, built-ins first.
func Lookup(name string, extra []Rule) (Rule, error) {
	for _, r := range Builtins {
		if r.Name == name {
			return r, nil
		}
	}
	for _, r := range extra {
		if r.Name == name {
			return r, nil
		}
	}
	return Rule{}, fmt.Errorf("unknown rewrite rule %q", name)
}

type ruleFile struct {
	Rules []ruleSpec `yaml:"rules"`
}

type ruleSpec struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Extensions  []string `yaml:"extensions"`
	Pattern     string   `yaml:"pattern"`
	Replacement string   `yaml:"replacement"`
}

// LoadRules reads additional rules from a YAML file.
func LoadRules(path string) ([]Rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules file: %w", err)
	}
	var rf ruleFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("parse rules file: %w", err)
	}

	rules := make([]Rule, 0, len(rf.Rules))
	for _, spec := range rf.Rules {
		if spec.Name == "" || spec.Pattern == "" {
			return nil, fmt.Errorf("rewrite rule needs both a name and a pattern")
		}
		re, err := regexp.Compile(spec.Pattern)
		if err != nil {
			return nil, fmt.Errorf("compile pattern for rule %q: %w", spec.Name, err)
		}
		exts := spec.Extensions
		if len(exts) == 0 {
			exts = []string{".dart"}
		}
		rules = append(rules, Rule{
			Name:        spec.Name,
			Description: spec.Description,
			Extensions:  exts,
			Pattern:     re,
			Replacement: spec.Replacement,
		})
	}
	return rules, nil
}
