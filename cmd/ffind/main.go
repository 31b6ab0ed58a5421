package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"regexp"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/bamsammich/ffind/internal/config"
	"github.com/bamsammich/ffind/internal/filter"
	"github.com/bamsammich/ffind/internal/proto"
	"github.com/bamsammich/ffind/internal/query"
	"github.com/bamsammich/ffind/internal/search"
	"github.com/bamsammich/ffind/internal/ui"
)

var version = "dev"

func main() {
	os.Exit(run())
}

// searchOpts holds the flags of the default search command.
type searchOpts struct {
	name       string
	path       string
	content    string
	root       string
	socket     string
	color      string
	size       sizeFlag
	mtime      ageFlag
	typ        typeFlag
	limit      int
	before     int
	after      int
	context    int
	regex      bool
	glob       bool
	ignoreCase bool
	compress   bool
	stats      bool
}

//nolint:revive // cyclomatic: CLI entry point wires flags for every predicate
func run() int {
	var (
		opts        searchOpts
		showVersion bool
	)

	rootCmd := &cobra.Command{
		Use:   "ffind [flags] [name-glob]",
		Short: "Instant file and content search backed by a live index",
		Long: `Query a running ffind daemon. The daemon keeps a live index of its
roots, so name, path, type, size and age filters are answered from memory and
only candidate files are read for content search.

A single argument is a basename glob, equivalent to --name.

Examples:
  ffind '*.go'
  ffind --path 'src/**' --type f
  ffind --size +1G --mtime -7
  ffind -c todo --regex -i -C 2`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if showVersion {
				fmt.Fprintf(os.Stdout, "ffind %s\n", version)
				return nil
			}
			if len(args) == 1 {
				if cmd.Flags().Changed("name") {
					return errors.New("name glob given both as argument and --name")
				}
				opts.name = args[0]
			}
			return runSearch(cmd, &opts)
		},
	}

	f := rootCmd.Flags()
	f.BoolVar(&showVersion, "version", false, "print version and exit")
	f.StringVar(&opts.name, "name", "", "match basenames against GLOB")
	f.StringVarP(&opts.path, "path", "p", "", "match paths relative to their root against GLOB (** crosses directories)")
	f.StringVarP(&opts.content, "content", "c", "", "search file contents for PATTERN")
	f.BoolVarP(&opts.regex, "regex", "r", false, "treat the content pattern as a regular expression")
	f.BoolVarP(&opts.glob, "glob", "g", false, "treat the content pattern as a whole-line glob")
	f.BoolVarP(&opts.ignoreCase, "ignore-case", "i", false, "case-insensitive name, path and content matching")
	f.IntVarP(&opts.before, "before", "B", 0, "print NUM lines of leading context")
	f.IntVarP(&opts.after, "after", "A", 0, "print NUM lines of trailing context")
	f.IntVarP(&opts.context, "context", "C", 0, "print NUM lines of context on both sides")
	f.VarP(&opts.typ, "type", "t", "restrict to files (f) or directories (d)")
	f.Var(&opts.size, "size", "size filter: [+-]N[cbkMG] (find -size)")
	f.Var(&opts.mtime, "mtime", "modification age in days: [+-]N (find -mtime)")
	f.IntVarP(&opts.limit, "limit", "n", 0, "stop after NUM results (0 = unlimited)")
	f.StringVar(&opts.root, "root", "", "search only under this indexed directory")
	f.BoolVar(&opts.compress, "compress", false, "request a zstd-compressed response stream")
	f.StringVar(&opts.color, "color", ui.ColorAuto, "colorize output: auto, always or never")
	f.BoolVar(&opts.stats, "stats", false, "print a query summary to stderr")
	rootCmd.PersistentFlags().StringVar(&opts.socket, "socket", "", "daemon socket path")

	rootCmd.AddCommand(daemonCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(pingCmd)
	rootCmd.AddCommand(docsCmd)

	if err := rootCmd.Execute(); err != nil {
		var exitErr *exitError
		if errors.As(err, &exitErr) {
			return exitErr.code
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}
	return 0
}

//nolint:revive // cyclomatic: flag validation for every predicate
func runSearch(cmd *cobra.Command, opts *searchOpts) error {
	if opts.regex && opts.glob {
		return errors.New("--regex and --glob are mutually exclusive")
	}
	if (opts.regex || opts.glob) && opts.content == "" {
		return errors.New("--regex and --glob need a content pattern (-c)")
	}
	if cmd.Flags().Changed("context") {
		if !cmd.Flags().Changed("before") {
			opts.before = opts.context
		}
		if !cmd.Flags().Changed("after") {
			opts.after = opts.context
		}
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Warn("failed to load config", "error", err)
	}
	ui.ApplyTheme(cfg.Theme)

	color, err := ui.ColorEnabled(opts.color, os.Stdout.Fd())
	if err != nil {
		return err
	}

	spec := query.Spec{
		Name:       opts.name,
		Path:       opts.path,
		Content:    opts.content,
		Size:       opts.size.expr,
		MTime:      opts.mtime.expr,
		Limit:      opts.limit,
		Before:     opts.before,
		After:      opts.after,
		Mode:       contentMode(opts),
		Type:       opts.typ.filter,
		IgnoreCase: opts.ignoreCase,
	}
	if opts.root != "" {
		abs, err := filepath.Abs(config.ExpandHome(opts.root))
		if err != nil {
			return fmt.Errorf("--root: %w", err)
		}
		spec.Root = abs
	}
	// Compile locally so pattern errors are reported before connecting.
	if _, err := query.Compile(spec); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := proto.NewClient(resolveSocket(opts.socket, cfg))
	client.Compress = opts.compress

	printer := ui.NewPrinter(ui.PrinterConfig{
		Writer:    os.Stdout,
		ErrWriter: os.Stderr,
		Highlight: highlighter(spec),
		Color:     color,
		Context:   spec.Before > 0 || spec.After > 0,
	})

	end, err := client.Query(ctx, proto.FromSpec(spec), printer.Print)
	if err != nil {
		if ctx.Err() != nil {
			return &exitError{code: 130}
		}
		return err
	}
	if opts.stats {
		fmt.Fprintln(os.Stderr, ui.QuerySummary(end))
	}
	if printer.Results() == 0 {
		return &exitError{code: 1}
	}
	return nil
}

func contentMode(opts *searchOpts) search.Mode {
	switch {
	case opts.regex:
		return search.ModeRegex
	case opts.glob:
		return search.ModeGlob
	default:
		return search.ModeFixed
	}
}

// highlighter returns the span finder used to color matches inside content
// lines, or nil when the query has no content pattern.
func highlighter(spec query.Spec) func(string) [][]int {
	if spec.Content == "" {
		return nil
	}
	var expr string
	switch spec.Mode {
	case search.ModeRegex:
		expr = spec.Content
	case search.ModeGlob:
		expr = filter.LineRegex(spec.Content)
	default:
		expr = regexp.QuoteMeta(spec.Content)
	}
	if spec.IgnoreCase {
		expr = "(?i)" + expr
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil
	}
	return func(line string) [][]int { return re.FindAllStringIndex(line, -1) }
}

// resolveSocket picks the daemon socket: the flag, then the config file,
// then the running daemon's discovery file, then the default location.
func resolveSocket(flag string, cfg config.Config) string {
	if flag != "" {
		return config.ExpandHome(flag)
	}
	if cfg.Daemon.Socket != nil && *cfg.Daemon.Socket != "" {
		return config.ExpandHome(*cfg.Daemon.Socket)
	}
	if info, err := config.ReadDaemonInfo(); err == nil && info.Socket != "" {
		return info.Socket
	}
	return config.DefaultSocketPath()
}

type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit code %d", e.code)
}
