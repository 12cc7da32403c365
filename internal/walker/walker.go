// Package walker discovers candidate text files beneath one or more root
// paths, applying nested .gitignore/.ignore exclusion rules depth-first.
//
// The walk is single-threaded: the ignore stack's push/pop discipline is
// order-dependent and owned by the walking goroutine alone. Candidates are
// streamed to a visit callback so searching can start while discovery is
// still running.
package walker

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"os"
	"path"
	"path/filepath"
	"unicode/utf8"

	"github.com/harrison/seeker/internal/gitignore"
)

// probeSize is the number of leading bytes sampled to classify a file as
// text.
const probeSize = 1024

// NoDepthLimit disables the traversal depth limit.
const NoDepthLimit = math.MaxUint32

// Logger receives traversal diagnostics. A nil logger silences them.
type Logger interface {
	Debugf(format string, args ...any)
	Warnf(format string, args ...any)
}

// Options configures a walk.
type Options struct {
	// MaxDepth limits recursion below each root. Zero still reports the
	// files directly inside a root directory but never descends into its
	// subdirectories; NoDepthLimit disables the limit entirely.
	MaxDepth uint32

	// Logger receives per-path diagnostics. Optional.
	Logger Logger
}

// RootError reports a root path whose metadata could not be read. It is the
// only traversal failure that aborts a walk; everything below a root
// degrades to a diagnostic.
type RootError struct {
	Path string
	Err  error
}

func (e *RootError) Error() string {
	return fmt.Sprintf("root path %s is inaccessible: %v", e.Path, e.Err)
}

func (e *RootError) Unwrap() error { return e.Err }

// Walker performs one depth-first candidate discovery pass. A Walker is
// good for a single Walk: the seen-path set persists, so reuse would
// silently drop everything already visited.
type Walker struct {
	stack *gitignore.Stack
	seen  map[string]struct{}
	probe [probeSize]byte
	opts  Options
}

// New creates a Walker with the given options.
func New(opts Options) *Walker {
	return &Walker{
		stack: gitignore.NewStack(),
		seen:  make(map[string]struct{}),
		opts:  opts,
	}
}

// Walk streams every candidate file beneath roots to visit, in traversal
// order. A candidate is a readable regular file that passes the active
// ignore rules and the text probe. Roots may overlap; each file is visited
// at most once. Walk returns a *RootError when a root's metadata cannot be
// read and nil otherwise.
func (w *Walker) Walk(roots []string, visit func(path string)) error {
	budget := w.opts.MaxDepth
	if budget != NoDepthLimit {
		// One extra level so a depth limit of zero still reaches the
		// root directory's own entries.
		budget++
	}

	for _, root := range roots {
		root = filepath.ToSlash(filepath.Clean(root))
		if err := w.visitPath(root, budget, true, visit); err != nil {
			return err
		}
	}
	return nil
}

// Collect runs Walk and gathers the candidate paths into a slice.
func (w *Walker) Collect(roots []string) ([]string, error) {
	var paths []string
	err := w.Walk(roots, func(p string) {
		paths = append(paths, p)
	})
	return paths, err
}

// visitPath handles one filesystem entry. Directory rule-set pushes are
// paired with deferred pops so the stack unwinds on every exit path.
func (w *Walker) visitPath(p string, remaining uint32, isRoot bool, visit func(string)) error {
	canon := canonicalPath(p)
	if _, dup := w.seen[canon]; dup {
		return nil
	}
	w.seen[canon] = struct{}{}

	// One Lstat per entry; never follow symlinks.
	info, err := os.Lstat(p)
	if err != nil {
		if isRoot {
			return &RootError{Path: p, Err: err}
		}
		w.warnf("skipping %s: %v", p, err)
		return nil
	}

	if info.Mode()&os.ModeSymlink != 0 {
		// Symlinks are neither descended nor reported, so the walk
		// visits a tree, never a graph.
		return nil
	}

	if info.Mode().IsRegular() {
		if w.stack.Ignored(p, false) {
			return nil
		}
		if w.isTextFile(p) {
			visit(p)
		}
		return nil
	}

	if !info.IsDir() {
		// Sockets, devices, pipes: not searchable.
		return nil
	}

	// .git directories are pruned unconditionally, at any depth.
	if path.Base(p) == ".git" {
		return nil
	}

	if w.stack.Ignored(p, true) {
		return nil
	}

	if w.pushIgnoreRules(p) {
		defer w.stack.Pop()
	}

	if remaining == 0 {
		return nil
	}

	entries, err := os.ReadDir(p)
	if err != nil {
		if isRoot {
			return &RootError{Path: p, Err: err}
		}
		w.warnf("could not read directory %s: %v", p, err)
		return nil
	}

	for _, entry := range entries {
		if err := w.visitPath(path.Join(p, entry.Name()), remaining-1, false, visit); err != nil {
			return err
		}
	}
	return nil
}

// pushIgnoreRules loads the directory's .gitignore and .ignore files, if
// present, into a single rule set on the stack. Reports whether a set was
// pushed (and must later be popped).
func (w *Walker) pushIgnoreRules(dir string) bool {
	combined := gitignore.NewRuleSet(dir)
	found := false

	for _, name := range []string{gitignore.GitignoreName, gitignore.IgnoreName} {
		ignorePath := path.Join(dir, name)
		if _, err := os.Lstat(ignorePath); err != nil {
			continue
		}

		rs, warnings, err := gitignore.ParseFile(ignorePath)
		if err != nil {
			w.warnf("%v", err)
			continue
		}
		for _, warning := range warnings {
			w.debugf("%s: %s", ignorePath, warning)
		}
		combined.Merge(rs)
		found = true
	}

	if !found {
		return false
	}
	w.stack.Push(combined)
	return true
}

// isTextFile samples up to probeSize leading bytes: text means no NUL byte
// and valid UTF-8. A multibyte rune cut off at the end of a full sample
// does not disqualify the file. Unreadable files are skipped with a
// diagnostic.
func (w *Walker) isTextFile(p string) bool {
	f, err := os.Open(p)
	if err != nil {
		w.warnf("could not read file %s: %v", p, err)
		return false
	}
	defer f.Close()

	n, err := io.ReadFull(f, w.probe[:])
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		w.warnf("could not read file %s: %v", p, err)
		return false
	}

	sample := w.probe[:n]
	if bytes.IndexByte(sample, 0) >= 0 {
		return false
	}
	if n == probeSize {
		sample = trimIncompleteRune(sample)
	}
	return utf8.Valid(sample)
}

// trimIncompleteRune drops a trailing UTF-8 sequence that the sample
// boundary may have cut short.
func trimIncompleteRune(b []byte) []byte {
	i := len(b) - 1
	for i >= 0 && i > len(b)-utf8.UTFMax && !utf8.RuneStart(b[i]) {
		i--
	}
	if i >= 0 && utf8.RuneStart(b[i]) && !utf8.FullRune(b[i:]) {
		return b[:i]
	}
	return b
}

// canonicalPath is the identity used by the seen-path set, so overlapping
// roots do not produce duplicate work.
func canonicalPath(p string) string {
	abs, err := filepath.Abs(p)
	if err != nil {
		return p
	}
	return filepath.ToSlash(abs)
}

func (w *Walker) warnf(format string, args ...any) {
	if w.opts.Logger != nil {
		w.opts.Logger.Warnf(format, args...)
	}
}

func (w *Walker) debugf(format string, args ...any) {
	if w.opts.Logger != nil {
		w.opts.Logger.Debugf(format, args...)
	}
}
