// file: internal/matcher/category.go
// version: 1.0.0
// guid: 393d2681-d938-4cc9-b954-4854cad998c2

package matcher

import (
	"fmt"
	"strings"
)

// CategoryRule names an equipment category and the tokens that identify it.
type CategoryRule struct {
	Name     string   `yaml:"name" mapstructure:"name"`
	Keywords []string `yaml:"keywords" mapstructure:"keywords"`
}

type compiledRule struct {
	name     string
	keywords map[string]struct{}
}

// CategoryClassifier assigns names to equipment categories. Rules are
// evaluated in declaration order and the first rule whose keywords intersect
// the name's tokens wins, so rule order is part of the configuration.
type CategoryClassifier struct {
	rules []compiledRule
}

// NewCategoryClassifier compiles the rule list. Rule names must be unique
// and every rule needs at least one keyword.
func NewCategoryClassifier(rules []CategoryRule) (*CategoryClassifier, error) {
	compiled := make([]compiledRule, 0, len(rules))
	seen := make(map[string]struct{}, len(rules))
	for i, rule := range rules {
		if rule.Name == "" {
			return nil, fmt.Errorf("category rule %d has no name", i)
		}
		if _, dup := seen[rule.Name]; dup {
			return nil, fmt.Errorf("duplicate category %q", rule.Name)
		}
		seen[rule.Name] = struct{}{}
		if len(rule.Keywords) == 0 {
			return nil, fmt.Errorf("category %q has no keywords", rule.Name)
		}
		keywords := make(map[string]struct{}, len(rule.Keywords))
		for _, keyword := range rule.Keywords {
			keyword = strings.ToLower(strings.TrimSpace(keyword))
			if keyword == "" {
				return nil, fmt.Errorf("category %q has an empty keyword", rule.Name)
			}
			keywords[keyword] = struct{}{}
		}
		compiled = append(compiled, compiledRule{name: rule.Name, keywords: keywords})
	}
	return &CategoryClassifier{rules: compiled}, nil
}

// Classify returns the category of the name, or ok=false when no rule
// matches. A name matching several rules gets the first one declared.
func (c *CategoryClassifier) Classify(name string) (string, bool) {
	tokens := tokenize(name)
	if len(tokens) == 0 {
		return "", false
	}
	for _, rule := range c.rules {
		for token := range tokens {
			if _, ok := rule.keywords[token]; ok {
				return rule.name, true
			}
		}
	}
	return "", false
}

// Categories lists the configured category names in rule order.
func (c *CategoryClassifier) Categories() []string {
	names := make([]string, len(c.rules))
	for i, rule := range c.rules {
		names[i] = rule.name
	}
	return names
}
