package desensitize

import (
	"fmt"
	"regexp"
	"strconv"
	"sync/atomic"
)

// Rule rewrites one kind of secret in a log line.
type Rule interface {
	Name() string
	Enabled() bool
	SetEnabled(enabled bool)
	Process(s string) string
}

type ruleState struct {
	name    string
	enabled atomic.Bool
}

func (r *ruleState) Name() string { return r.name }

func (r *ruleState) Enabled() bool { return r.enabled.Load() }

func (r *ruleState) SetEnabled(enabled bool) { r.enabled.Store(enabled) }

// ContentRule replaces every match of a pattern.
type ContentRule struct {
	ruleState
	pattern     *regexp.Regexp
	replacement string
}

// NewContentRule compiles pattern; replacement may reference groups ($1).
func NewContentRule(name, pattern, replacement string) (*ContentRule, error) {
	if name == "" {
		return nil, fmt.Errorf("rule name cannot be empty")
	}
	if pattern == "" {
		return nil, fmt.Errorf("pattern cannot be empty")
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}

	r := &ContentRule{pattern: re, replacement: replacement}
	r.name = name
	r.enabled.Store(true)
	return r, nil
}

// MustNewContentRule is NewContentRule for package-level rules.
func MustNewContentRule(name, pattern, replacement string) *ContentRule {
	rule, err := NewContentRule(name, pattern, replacement)
	if err != nil {
		panic(err)
	}
	return rule
}

func (r *ContentRule) Process(s string) string {
	if !r.Enabled() {
		return s
	}
	return r.pattern.ReplaceAllString(s, r.replacement)
}

// FieldRule masks the value of a JSON string field.
type FieldRule struct {
	ruleState
	fieldName   string
	value       *regexp.Regexp
	replacement string
	field       *regexp.Regexp
}

// NewFieldRule matches "fieldName":"..." and rewrites the parts of the value
// matching pattern.
func NewFieldRule(name, fieldName, pattern, replacement string) (*FieldRule, error) {
	if name == "" {
		return nil, fmt.Errorf("rule name cannot be empty")
	}
	if fieldName == "" {
		return nil, fmt.Errorf("field name cannot be empty")
	}
	if pattern == "" {
		return nil, fmt.Errorf("pattern cannot be empty")
	}

	value, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid field pattern %q: %w", pattern, err)
	}
	field := regexp.MustCompile(`"` + regexp.QuoteMeta(fieldName) + `"\s*:\s*"((?:[^"\\]|\\.)*)"`)

	r := &FieldRule{fieldName: fieldName, value: value, replacement: replacement, field: field}
	r.name = name
	r.enabled.Store(true)
	return r, nil
}

// MustNewFieldRule is NewFieldRule for package-level rules.
func MustNewFieldRule(name, fieldName, pattern, replacement string) *FieldRule {
	rule, err := NewFieldRule(name, fieldName, pattern, replacement)
	if err != nil {
		panic(err)
	}
	return rule
}

func (r *FieldRule) Process(s string) string {
	if !r.Enabled() {
		return s
	}

	return r.field.ReplaceAllStringFunc(s, func(match string) string {
		sub := r.field.FindStringSubmatch(match)
		if len(sub) < 2 {
			return match
		}
		masked := r.value.ReplaceAllString(sub[1], r.replacement)
		return strconv.Quote(r.fieldName) + ":" + `"` + masked + `"`
	})
}
