// Package matcher reports the lines of a stream that match a compiled
// search expression.
package matcher

import (
	"bufio"
	"fmt"
	"io"
	"regexp"

	"github.com/fatih/color"
)

// Line length limits for the scanner. Lines beyond maxLineSize abort the
// file with a per-file error rather than the whole run.
const (
	initialLineSize = 64 * 1024
	maxLineSize     = 1024 * 1024
)

// Options controls how matches are reported.
type Options struct {
	// ShowLineNumbers prefixes each reported line with its 1-based line
	// number.
	ShowLineNumbers bool

	// Color highlights matched spans and line numbers. Enable only when
	// the final destination is a terminal.
	Color bool
}

var (
	matchColor   = color.New(color.FgRed, color.Bold)
	lineNumColor = color.New(color.FgGreen)
)

// Compile builds the search expression. ignoreCase folds case across the
// whole expression. A failure here is a fatal invocation error, not a
// per-file one.
func Compile(expr string, ignoreCase bool) (*regexp.Regexp, error) {
	if ignoreCase {
		expr = "(?i:" + expr + ")"
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid search pattern: %w", err)
	}
	return re, nil
}

// FindMatches scans r line by line and writes every line matching re to w,
// in input order. A line that cannot be read aborts this file and returns
// the cause; lines already reported stay reported.
func FindMatches(r io.Reader, w io.Writer, re *regexp.Regexp, opts Options) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, initialLineSize), maxLineSize)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		if !re.MatchString(line) {
			continue
		}

		if opts.Color {
			line = re.ReplaceAllStringFunc(line, func(m string) string {
				return matchColor.Sprint(m)
			})
		}

		var err error
		if opts.ShowLineNumbers {
			prefix := fmt.Sprintf("%d:", lineNum)
			if opts.Color {
				prefix = lineNumColor.Sprint(prefix)
			}
			_, err = fmt.Fprintf(w, "%s%s\n", prefix, line)
		} else {
			_, err = fmt.Fprintf(w, "%s\n", line)
		}
		if err != nil {
			return err
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("could not read line %d: %w", lineNum+1, err)
	}
	return nil
}
