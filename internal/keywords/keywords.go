// Package keywords detects technology skills in free text by plain substring
// matching against an ordered list of rules.
package keywords

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mitchellh/mapstructure"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Rule maps a lower-case keyword to the label reported when it is found.
// An empty Label means the title-cased keyword.
type Rule struct {
	Keyword string `mapstructure:"keyword" json:"keyword"`
	Label   string `mapstructure:"label" json:"label,omitempty"`
}

type Detector struct {
	rules []Rule
}

// NewDetector normalizes the rules: keywords are trimmed and lower-cased,
// blank ones are dropped and only the first rule of a keyword is kept.
func NewDetector(rules []Rule) *Detector {
	caser := cases.Title(language.English)
	seen := make(map[string]struct{}, len(rules))
	normalized := make([]Rule, 0, len(rules))

	for _, rule := range rules {
		keyword := strings.ToLower(strings.TrimSpace(rule.Keyword))
		if keyword == "" {
			continue
		}
		if _, ok := seen[keyword]; ok {
			continue
		}
		seen[keyword] = struct{}{}

		label := strings.TrimSpace(rule.Label)
		if label == "" {
			label = caser.String(keyword)
		}
		normalized = append(normalized, Rule{Keyword: keyword, Label: label})
	}

	return &Detector{rules: normalized}
}

// Rules returns the normalized rules in evaluation order.
func (d *Detector) Rules() []Rule {
	return append([]Rule(nil), d.rules...)
}

// Detect returns the sorted distinct labels whose keyword occurs anywhere in
// the text, ignoring case.
func (d *Detector) Detect(text string) []string {
	lower := strings.ToLower(text)
	found := make(map[string]struct{})
	labels := make([]string, 0)

	for _, rule := range d.rules {
		if !strings.Contains(lower, rule.Keyword) {
			continue
		}
		if _, ok := found[rule.Label]; ok {
			continue
		}
		found[rule.Label] = struct{}{}
		labels = append(labels, rule.Label)
	}

	sort.Strings(labels)
	return labels
}

// FromKeywords turns plain keywords into rules with default labels.
func FromKeywords(keywords []string) []Rule {
	rules := make([]Rule, 0, len(keywords))
	for _, keyword := range keywords {
		rules = append(rules, Rule{Keyword: keyword})
	}
	return rules
}

// DecodeRules accepts the raw config value of a rule list. Entries may be
// plain strings or maps with keyword and label keys.
func DecodeRules(raw any) ([]Rule, error) {
	if raw == nil {
		return nil, nil
	}

	items, ok := raw.([]any)
	if !ok {
		if keywords, ok := raw.([]string); ok {
			return FromKeywords(keywords), nil
		}
		return nil, fmt.Errorf("skill rules must be a list, got %T", raw)
	}

	rules := make([]Rule, 0, len(items))
	for idx, item := range items {
		if keyword, ok := item.(string); ok {
			rules = append(rules, Rule{Keyword: keyword})
			continue
		}

		var rule Rule
		if err := mapstructure.Decode(item, &rule); err != nil {
			return nil, fmt.Errorf("decoding skill rule #%d: %w", idx, err)
		}
		rules = append(rules, rule)
	}

	return rules, nil
}
