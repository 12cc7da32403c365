package gitignore

// escapeChar introduces an escape sequence inside a rule line. Splitting on
// the escape character itself is not supported.
const escapeChar = '\\'

// indexUnescaped returns the byte index of the first occurrence of target in
// s that is not itself escaped, or -1 if there is none.
func indexUnescaped(s string, target rune) int {
	escaped := false
	for i, c := range s {
		if c == target && !escaped {
			return i
		}
		if c == escapeChar && !escaped {
			escaped = true
		} else {
			escaped = false
		}
	}
	return -1
}

// trimTrailingSpaces removes unescaped trailing spaces from a rule line.
// A trailing space preceded by an odd number of backslashes is escaped and
// significant, so it ends the trim. Only single-byte characters are compared,
// so the string can be scanned as raw bytes.
func trimTrailingSpaces(s string) string {
	end := len(s)
	for i := len(s); i >= 1; i-- {
		if s[i-1] != ' ' {
			break
		}
		// Count the backslashes immediately before the space; an odd
		// run escapes it.
		backslashes := 0
		for j := i - 1; j > 0 && s[j-1] == escapeChar; j-- {
			backslashes++
		}
		if backslashes%2 == 1 {
			break
		}
		end = i - 1
	}
	return s[:end]
}

// splitUnescaped splits s on every unescaped occurrence of sep. Escape
// sequences are carried into the returned parts verbatim, backslash
// included, so later per-part translation still sees them.
func splitUnescaped(s string, sep rune) []string {
	parts := make([]string, 0, 4)
	var part []rune
	escaped := false
	for _, c := range s {
		if escaped {
			part = append(part, c)
			escaped = false
			continue
		}
		switch c {
		case escapeChar:
			part = append(part, c)
			escaped = true
		case sep:
			parts = append(parts, string(part))
			part = part[:0]
		default:
			part = append(part, c)
		}
	}
	return append(parts, string(part))
}

// hasDanglingEscape reports whether s ends in an odd run of backslashes,
// i.e. a backslash that escapes nothing.
func hasDanglingEscape(s string) bool {
	backslashes := 0
	for i := len(s) - 1; i >= 0 && s[i] == escapeChar; i-- {
		backslashes++
	}
	return backslashes%2 == 1
}
