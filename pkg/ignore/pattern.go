package ignore

import (
	"sort"
	"strings"

	"github.com/sonemaro/insights/pkg/extension"
)

// PatternKind distinguishes exact name rules from wildcard extension rules.
type PatternKind int

const (
	// ExactPattern matches a file or directory by its full name.
	ExactPattern PatternKind = iota
	// WildcardPattern matches files by compound extension ("*.tar.gz").
	WildcardPattern
	// InertPattern is a wildcard shape that is not supported; it never matches.
	InertPattern
)

// Pattern is a single exclusion rule.
type Pattern struct {
	Raw  string
	Kind PatternKind

	// value is the name for exact rules and the dotted extension for
	// wildcard rules.
	value string
}

// ParsePattern classifies a trimmed rule line.
func ParsePattern(raw string) Pattern {
	if !strings.Contains(raw, "*") {
		return Pattern{Raw: raw, Kind: ExactPattern, value: raw}
	}

	ext := strings.TrimPrefix(raw, "*")
	if ext == raw || !strings.HasPrefix(ext, ".") || strings.ContainsAny(ext, "*/\\") {
		return Pattern{Raw: raw, Kind: InertPattern}
	}

	return Pattern{Raw: raw, Kind: WildcardPattern, value: ext}
}

// Match reports whether the rule excludes a node called name.
func (p Pattern) Match(name string) bool {
	switch p.Kind {
	case ExactPattern:
		return name == p.value
	case WildcardPattern:
		return extension.Compound(name) == p.value
	default:
		return false
	}
}

// key identifies a pattern by effect, so "*.png" given twice collapses.
func (p Pattern) key() string {
	switch p.Kind {
	case ExactPattern:
		return "exact:" + p.value
	case WildcardPattern:
		return "ext:" + p.value
	default:
		return "inert:" + p.Raw
	}
}

// PatternSet is an unordered set of patterns deduplicated by effect.
type PatternSet struct {
	patterns map[string]Pattern
}

// NewPatternSet builds a set from raw rule strings.
func NewPatternSet(raw ...string) *PatternSet {
	s := &PatternSet{patterns: make(map[string]Pattern, len(raw))}
	for _, r := range raw {
		s.Add(r)
	}
	return s
}

// Add inserts a raw rule. Empty rules are dropped.
func (s *PatternSet) Add(raw string) {
	if raw == "" {
		return
	}
	p := ParsePattern(raw)
	if _, ok := s.patterns[p.key()]; !ok {
		s.patterns[p.key()] = p
	}
}

// Remove deletes the rule with the same effect as raw.
func (s *PatternSet) Remove(raw string) {
	delete(s.patterns, ParsePattern(raw).key())
}

// Has reports whether a rule with the same effect as raw is present.
func (s *PatternSet) Has(raw string) bool {
	_, ok := s.patterns[ParsePattern(raw).key()]
	return ok
}

// Match returns the first rule excluding name, if any.
func (s *PatternSet) Match(name string) (Pattern, bool) {
	if s == nil {
		return Pattern{}, false
	}
	if p, ok := s.patterns["exact:"+name]; ok {
		return p, true
	}
	if p, ok := s.patterns["ext:"+extension.Compound(name)]; ok {
		return p, true
	}
	return Pattern{}, false
}

// Len returns the number of distinct rules.
func (s *PatternSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.patterns)
}

// Strings returns the raw rules sorted, for logging and comparisons.
func (s *PatternSet) Strings() []string {
	if s == nil {
		return nil
	}
	out := make([]string, 0, len(s.patterns))
	for _, p := range s.patterns {
		out = append(out, p.Raw)
	}
	sort.Strings(out)
	return out
}
