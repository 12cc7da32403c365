package cmd

import (
	"io"
	"os"
	"regexp"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/harrison/seeker/internal/config"
	"github.com/harrison/seeker/internal/logger"
	"github.com/harrison/seeker/internal/matcher"
	"github.com/harrison/seeker/internal/output"
	"github.com/harrison/seeker/internal/pool"
	"github.com/harrison/seeker/internal/walker"
)

// headerColor renders the per-file header above each block of matches.
var headerColor = color.New(color.FgMagenta, color.Bold)

// grepOptions carries the grep command's flag values into runGrep.
type grepOptions struct {
	pattern       string
	root          string
	maxDepth      uint32
	noLineNumbers bool
	ignoreCase    bool
	workers       int
	noColor       bool
	logLevel      string
	debugLog      bool
}

// NewGrepCommand creates the grep command
func NewGrepCommand() *cobra.Command {
	var opts grepOptions

	cmd := &cobra.Command{
		Use:   "grep <pattern> [path]",
		Short: "Search text files beneath a path for a pattern",
		Long: `Search every text file beneath the given path (default ".") for lines
matching the pattern, which is a regular expression.

Traversal skips symlinks and .git directories and honors .gitignore and
.ignore files at every level of the tree. Files are classified as text by
sampling their first kilobyte; binary files are skipped silently.

Configuration is loaded from .seeker/config.yaml if present.
CLI flags override configuration file settings.

Examples:
  # Search the current directory
  seeker grep 'TODO|FIXME'

  # Case-insensitive search of a subtree, two levels deep
  seeker grep -i -d 2 'licen[cs]e' docs/

  # Plain output for scripting
  seeker grep -N --no-color 'func main' ./cmd`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.pattern = args[0]
			opts.root = "."
			if len(args) == 2 {
				opts.root = args[1]
			}
			return runGrep(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.Uint32VarP(&opts.maxDepth, "max-depth", "d", walker.NoDepthLimit,
		"limit directory traversal depth (0 disables recursion below the root)")
	flags.BoolVarP(&opts.noLineNumbers, "no-line-number", "N", false,
		"suppress line numbers")
	flags.BoolVarP(&opts.ignoreCase, "ignore-case", "i", false,
		"ignore case")
	flags.IntVarP(&opts.workers, "workers", "j", 0,
		"number of search workers (0 = one per core)")
	flags.BoolVar(&opts.noColor, "no-color", false,
		"disable colored output")
	flags.StringVar(&opts.logLevel, "log-level", "",
		"diagnostic verbosity (trace, debug, info, warn, error)")
	flags.BoolVar(&opts.debugLog, "debug-log", false,
		"also write diagnostics to a per-run log file")

	return cmd
}

// runGrep wires the walker, worker pool, matcher, and synchronized output
// together: the walker streams candidate files into the pool, each worker
// searches one file and flushes its matches as a single atomic unit.
func runGrep(cmd *cobra.Command, opts grepOptions) error {
	cfg, err := config.LoadConfigFromDirectory(".")
	if err != nil {
		return err
	}

	// CLI flags override configuration file settings
	flags := cmd.Flags()
	if flags.Changed("max-depth") {
		cfg.MaxDepth = opts.maxDepth
	}
	if flags.Changed("workers") {
		cfg.Workers = opts.workers
	}
	if flags.Changed("no-color") {
		cfg.NoColor = opts.noColor
	}
	if flags.Changed("no-line-number") {
		cfg.LineNumbers = !opts.noLineNumbers
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = opts.logLevel
	}

	if cfg.NoColor {
		color.NoColor = true
	}

	var diag logger.Logger = logger.NewConsoleLogger(cmd.ErrOrStderr(), cfg.LogLevel)
	if opts.debugLog {
		fileLog, err := logger.NewFileLogger(cfg.LogDir, cfg.LogLevel)
		if err != nil {
			return err
		}
		defer fileLog.Close()
		diag = logger.NewMulti(diag, fileLog)
		diag.Debugf("run %s: pattern %q under %s", fileLog.RunID(), opts.pattern, opts.root)
	}

	re, err := matcher.Compile(opts.pattern, opts.ignoreCase)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	sink := output.NewSink(out)
	matchOpts := matcher.Options{
		ShowLineNumbers: cfg.LineNumbers,
		Color:           useColor(out),
	}

	var workers *pool.Pool
	if cfg.Workers > 0 {
		workers = pool.NewWithLogger(cfg.Workers, diag)
	} else {
		workers = pool.AllCoresWithLogger(diag)
	}

	w := walker.New(walker.Options{MaxDepth: cfg.MaxDepth, Logger: diag})
	walkErr := w.Walk([]string{opts.root}, func(path string) {
		workers.Execute(func() {
			searchFile(path, re, matchOpts, sink, diag)
		})
	})

	// Drain whatever was queued even when the walk failed, so already
	// discovered files still report their matches.
	workers.Wait()

	return walkErr
}

// searchFile runs the matcher over one candidate file and emits its matches
// as one atomic header+body unit. Failures are per-file diagnostics; they
// never abort the run.
func searchFile(path string, re *regexp.Regexp, opts matcher.Options, sink *output.Sink, diag logger.Logger) {
	f, err := os.Open(path)
	if err != nil {
		diag.Errorf("could not read file %s: %v", path, err)
		return
	}
	defer f.Close()

	// The header is only printed if something was actually matched.
	header := headerColor.Sprint(path) + ":"
	w := output.NewWriter(sink, header)
	defer w.Close()

	if err := matcher.FindMatches(f, w, re, opts); err != nil {
		diag.Errorf("failed to read %s: %v", path, err)
	}
}

// useColor reports whether output destined for w should be colorized.
func useColor(w io.Writer) bool {
	if color.NoColor {
		return false
	}
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}
