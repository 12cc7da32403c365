package gitignore

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Ignore file names the walker recognizes. Anything else contributes an
// empty rule set.
const (
	GitignoreName = ".gitignore"
	IgnoreName    = ".ignore"
)

// IsIgnoreFileName reports whether name is one of the supported ignore file
// names.
func IsIgnoreFileName(name string) bool {
	return name == GitignoreName || name == IgnoreName
}

// ParseWarning describes an ignore rule that was downgraded or skipped
// during parsing. Warnings are diagnostics, never errors: the rest of the
// file still loads.
type ParseWarning struct {
	Line    int    // 1-indexed line number, 0 when not line-specific
	Pattern string // offending rule text
	Message string
}

func (w ParseWarning) String() string {
	if w.Line == 0 {
		return w.Message
	}
	return fmt.Sprintf("line %d: %s (%q)", w.Line, w.Message, w.Pattern)
}

// Verdict is the outcome of evaluating a rule set against one subject.
type Verdict int

const (
	// VerdictNone means no rule in the set matched the subject.
	VerdictNone Verdict = iota
	// VerdictIgnore means a plain rule matched: the subject is ignored.
	VerdictIgnore
	// VerdictKeep means a negation rule matched: the subject is kept.
	VerdictKeep
)

// RuleSet holds the compiled rules of one directory's ignore file(s),
// rooted at that directory. Rule sets are built once when the walker
// discovers an ignore file and are immutable during evaluation.
type RuleSet struct {
	root    string            // slash-separated directory the rules are relative to
	ignores []*CompiledPattern // plain rules; a match marks the subject ignored
	keeps   []*CompiledPattern // '!' rules; a match re-includes the subject
}

// NewRuleSet returns an empty rule set rooted at root. Empty sets match
// nothing and evaluate in constant time.
func NewRuleSet(root string) *RuleSet {
	return &RuleSet{root: root}
}

// Root returns the directory the rule set is rooted at.
func (rs *RuleSet) Root() string { return rs.root }

// Len returns the number of compiled rules in the set.
func (rs *RuleSet) Len() int { return len(rs.ignores) + len(rs.keeps) }

// Merge appends other's rules to rs. The walker uses it when a directory
// holds both a .gitignore and a .ignore file, so the stack still sees one
// rule set per directory.
func (rs *RuleSet) Merge(other *RuleSet) {
	rs.ignores = append(rs.ignores, other.ignores...)
	rs.keeps = append(rs.keeps, other.keeps...)
}

// add routes a compiled pattern into the negation or plain rule list.
func (rs *RuleSet) add(p *CompiledPattern) {
	if p.Negated() {
		rs.keeps = append(rs.keeps, p)
	} else {
		rs.ignores = append(rs.ignores, p)
	}
}

// Evaluate tests a subject against the rule set. The subject is a
// slash-separated path relative to the set's root; directory subjects carry
// a trailing slash. A negation match wins over any plain match within the
// same set.
func (rs *RuleSet) Evaluate(subject string) Verdict {
	for _, p := range rs.keeps {
		if p.Matches(subject) {
			return VerdictKeep
		}
	}
	for _, p := range rs.ignores {
		if p.Matches(subject) {
			return VerdictIgnore
		}
	}
	return VerdictNone
}

// relative rewrites a walk-scoped subject into the rule set's own scope.
// Returns false when the subject does not live under the set's root.
func (rs *RuleSet) relative(subject string) (string, bool) {
	if rs.root == "" || rs.root == "." {
		return subject, true
	}
	prefix := rs.root + "/"
	if !strings.HasPrefix(subject, prefix) {
		return "", false
	}
	return subject[len(prefix):], true
}

// ParseRules compiles ignore-file content into a RuleSet rooted at root.
// Malformed rules are downgraded to never-matching automata and reported as
// warnings; parsing itself cannot fail.
func ParseRules(root string, content []byte) (*RuleSet, []ParseWarning) {
	rs := NewRuleSet(root)
	var warnings []ParseWarning

	lines := strings.Split(string(content), "\n")
	for i, line := range lines {
		line = strings.TrimSuffix(line, "\r")

		p, ok := Compile(line)
		if !ok {
			continue
		}
		if p.NeverMatches() {
			warnings = append(warnings, ParseWarning{
				Line:    i + 1,
				Pattern: line,
				Message: "malformed pattern never matches",
			})
		}
		rs.add(p)
	}

	return rs, warnings
}

// ParseFile reads and compiles the ignore file at path, rooting the rules
// at the file's directory. A path whose base name is not .gitignore or
// .ignore contributes an empty rule set and a warning rather than an error,
// so callers can treat every candidate uniformly. An unreadable file is an
// error; the caller decides whether that is fatal.
func ParseFile(path string) (*RuleSet, []ParseWarning, error) {
	root := filepath.ToSlash(filepath.Dir(path))

	if name := filepath.Base(path); !IsIgnoreFileName(name) {
		warning := ParseWarning{Message: fmt.Sprintf("unsupported ignore file name %q", name)}
		return NewRuleSet(root), []ParseWarning{warning}, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("could not read ignore file %s: %w", path, err)
	}

	rs, warnings := ParseRules(root, content)
	return rs, warnings, nil
}
