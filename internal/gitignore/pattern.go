// Package gitignore compiles gitignore-style exclusion rules and evaluates
// them against relative paths.
//
// Rules are compiled individually into regular-expression automata
// (CompiledPattern), collected per ignore file into a RuleSet rooted at the
// file's directory, and layered into a Stack as a directory walk descends.
// Subjects are slash-separated paths relative to a rule set's root;
// directory subjects carry a trailing slash.
package gitignore

import (
	"regexp"
	"strings"
)

// CompiledPattern is the immutable matching automaton built from one ignore
// rule line. Compilation is total: every syntactically terminated rule
// yields either a working automaton or one that can never match.
type CompiledPattern struct {
	source string         // original rule line, kept for diagnostics
	negate bool           // rule started with '!' and re-includes matches
	re     *regexp.Regexp // nil for a rule that can never match
}

// Source returns the rule line the pattern was compiled from.
func (p *CompiledPattern) Source() string { return p.source }

// Negated reports whether the rule is a re-include ('!') rule.
func (p *CompiledPattern) Negated() bool { return p.negate }

// NeverMatches reports whether the rule was downgraded to an automaton that
// cannot match any path.
func (p *CompiledPattern) NeverMatches() bool { return p.re == nil }

// Matches reports whether the pattern matches the subject. The subject is a
// slash-separated path relative to the rule set's root; directories are
// tested with a trailing slash retained.
func (p *CompiledPattern) Matches(subject string) bool {
	if p.re == nil {
		return false
	}
	return p.re.MatchString(subject)
}

// Compile translates a single ignore rule line into a CompiledPattern.
//
// Lines that are blank or pure comment after cleaning compile to nothing
// and return ok=false. Malformed rules — a dangling trailing escape, or
// glob syntax the regexp engine rejects — return a pattern that never
// matches rather than an error, so one bad line cannot invalidate the rest
// of its file.
func Compile(line string) (p *CompiledPattern, ok bool) {
	original := line

	// Everything from the first unescaped '#' onward is a comment.
	if i := indexUnescaped(line, '#'); i >= 0 {
		line = line[:i]
	}
	line = trimTrailingSpaces(line)
	if line == "" {
		return nil, false
	}

	p = &CompiledPattern{source: original}
	if strings.HasPrefix(line, "!") {
		p.negate = true
		line = line[1:]
	}
	if line == "" {
		// Nothing left to match after stripping the negation marker.
		return nil, false
	}

	// A trailing backslash escapes nothing; per gitignore the rule is
	// kept but permanently non-matching.
	if hasDanglingEscape(line) {
		return p, true
	}

	re, err := regexp.Compile(buildRegex(line))
	if err != nil {
		// The glob expanded to something the regexp engine rejects,
		// e.g. an unbalanced character class. Degrade to never-match.
		return p, true
	}
	p.re = re
	return p, true
}

// buildRegex translates the cleaned rule body into an anchored regular
// expression over slash-separated relative paths.
func buildRegex(body string) string {
	parts := splitUnescaped(body, '/')

	// A trailing separator restricts the rule to directories. Directory
	// subjects retain their trailing slash, which the generated "/.*"
	// suffix consumes.
	dirOnly := false
	if len(parts) > 1 && parts[len(parts)-1] == "" {
		dirOnly = true
		parts = parts[:len(parts)-1]
	}

	// A separator anywhere but the very end anchors the rule to the rule
	// set's root. Otherwise the rule matches a whole path segment at any
	// depth.
	anchored := len(parts) > 1
	if anchored && parts[0] == "" {
		// Leading slash: anchored, with an empty leading part to drop.
		parts = parts[1:]
	}

	var sb strings.Builder
	sb.WriteString("^")
	if !anchored {
		sb.WriteString(`(?:.*/)?`)
	}

	needSuffix := true
	for i, part := range parts {
		last := i == len(parts)-1
		if part == "**" {
			if last {
				// Trailing ** swallows everything beneath the
				// preceding path.
				sb.WriteString(`.*`)
				needSuffix = false
			} else {
				// Interior ** spans zero or more whole segments.
				sb.WriteString(`(?:[^/]*/)*`)
			}
			continue
		}
		sb.WriteString(translatePart(part))
		if !last {
			sb.WriteString("/")
		}
	}

	if needSuffix {
		if dirOnly {
			sb.WriteString(`/.*`)
		} else {
			// Bound the match to a whole segment: the subject either
			// ends here or continues below a matched directory.
			sb.WriteString(`(?:/.*)?`)
		}
	}
	sb.WriteString("$")
	return sb.String()
}

// translatePart converts one slash-free rule part into regex source. '*'
// and '?' never cross a separator; a backslash makes the next character
// literal.
func translatePart(part string) string {
	var sb strings.Builder
	escaped := false
	for _, c := range part {
		if escaped {
			sb.WriteString(regexp.QuoteMeta(string(c)))
			escaped = false
			continue
		}
		switch c {
		case escapeChar:
			escaped = true
		case '*':
			sb.WriteString(`[^/]*`)
		case '?':
			sb.WriteString(`[^/]`)
		case '.', '+', '(', ')', '|', '^', '$', '{', '}':
			sb.WriteByte('\\')
			sb.WriteRune(c)
		default:
			sb.WriteRune(c)
		}
	}
	return sb.String()
}
