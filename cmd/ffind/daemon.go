package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/bamsammich/ffind/internal/config"
	"github.com/bamsammich/ffind/internal/event"
	"github.com/bamsammich/ffind/internal/index"
	"github.com/bamsammich/ffind/internal/persist"
	"github.com/bamsammich/ffind/internal/proto"
	"github.com/bamsammich/ffind/internal/search"
	"github.com/bamsammich/ffind/internal/stats"
	"github.com/bamsammich/ffind/internal/ui"
	"github.com/bamsammich/ffind/internal/watch"
)

// statsLogInterval is how often the daemon logs its rolling rates at debug
// level.
const statsLogInterval = time.Minute

var daemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "Run the indexing daemon",
	Long: `Run the ffind daemon. It walks every root once, then keeps the index in
sync through filesystem notifications and answers queries on a Unix socket.

Settings come from $XDG_CONFIG_HOME/ffind/config.toml; flags override the
file. With persistence enabled the index is saved periodically and on
shutdown, and reloaded at startup so the initial walk only reconciles.

The daemon runs in the foreground; use a service manager to supervise it.
Its socket and pid are recorded in $XDG_RUNTIME_DIR/ffind/daemon.toml so
that clients find it and a second daemon refuses to start.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runDaemon,
}

func init() {
	f := daemonCmd.Flags()
	f.String("config", "", "config file (default: $XDG_CONFIG_HOME/ffind/config.toml)")
	f.StringArray("root", nil, "directory to index (repeatable; replaces configured roots)")
	f.StringArray("exclude", nil, "skip entries matching PATTERN (repeatable; added to configured excludes)")
	f.String("filter", "", "read include/exclude rules from FILE (\"- pat\" excludes, \"+ pat\" includes)")
	f.Int("workers", 0, "content search workers (default: NumCPU)")
	f.Int("queue-size", 0, "search job queue capacity (default: workers*8)")
	f.Int("batch-size", 0, "results per response batch")
	f.Duration("move-window", 0, "how long a moved-from waits for its moved-to")
	f.Duration("request-timeout", 0, "per-query time limit (default 5m; 0 = none)")
	f.Duration("write-timeout", 0, "cancel a query when its client stops reading for this long (default 10s)")
	f.String("max-scan-size", "", "skip content search in files larger than SIZE (e.g. 64M)")
	f.String("metrics-addr", "", "serve Prometheus metrics on host:port")
	f.String("log-file", "", "also write a JSON log to FILE")
	f.String("watch-backend", "", "notification backend: auto, inotify or fsnotify")
	f.Bool("persist", false, "save the index and reload it at startup")
	f.String("persist-backend", "", "snapshot store: sqlite or bolt")
	f.String("persist-path", "", "snapshot file")
	f.Duration("flush-interval", 0, "save at least this often while changes are pending")
	f.BoolP("verbose", "v", false, "debug logging")
	f.Bool("foreground", true, "run in the foreground (the only supported mode)")
}

// applyDaemonFlags copies explicitly set flags over the config file values.
//
//nolint:revive // cyclomatic: one branch per flag
func applyDaemonFlags(cmd *cobra.Command, cfg *config.Config) error {
	f := cmd.Flags()
	d, p := &cfg.Daemon, &cfg.Persist

	set := func(name string, apply func() error) error {
		if !f.Changed(name) {
			return nil
		}
		if err := apply(); err != nil {
			return fmt.Errorf("--%s: %w", name, err)
		}
		return nil
	}
	str := func(name string, dst **string) error {
		return set(name, func() error {
			v, err := f.GetString(name)
			*dst = &v
			return err
		})
	}
	integer := func(name string, dst **int) error {
		return set(name, func() error {
			v, err := f.GetInt(name)
			*dst = &v
			return err
		})
	}
	duration := func(name string, dst **time.Duration) error {
		return set(name, func() error {
			v, err := f.GetDuration(name)
			*dst = &v
			return err
		})
	}

	return errors.Join(
		set("root", func() (err error) {
			d.Roots, err = f.GetStringArray("root")
			return err
		}),
		set("exclude", func() error {
			v, err := f.GetStringArray("exclude")
			d.Excludes = append(d.Excludes, v...)
			return err
		}),
		str("filter", &d.FilterFile),
		str("socket", &d.Socket),
		integer("workers", &d.Workers),
		integer("queue-size", &d.QueueSize),
		integer("batch-size", &d.BatchSize),
		duration("move-window", &d.MoveWindow),
		duration("request-timeout", &d.RequestTimeout),
		duration("write-timeout", &d.WriteTimeout),
		str("max-scan-size", &d.MaxScanSize),
		str("metrics-addr", &d.MetricsAddr),
		str("log-file", &d.LogFile),
		str("watch-backend", &d.WatchBackend),
		set("persist", func() error {
			v, err := f.GetBool("persist")
			p.Enabled = &v
			return err
		}),
		str("persist-backend", &p.Backend),
		str("persist-path", &p.Path),
		duration("flush-interval", &p.FlushInterval),
	)
}

func loadDaemonSettings(cmd *cobra.Command) (config.Settings, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return config.Settings{}, err
	}
	var cfg config.Config
	if path != "" {
		cfg, err = config.LoadFile(config.ExpandHome(path))
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return config.Settings{}, err
	}
	if err := applyDaemonFlags(cmd, &cfg); err != nil {
		return config.Settings{}, err
	}
	s, err := cfg.Resolve()
	if err != nil {
		return config.Settings{}, err
	}
	if err := s.Validate(); err != nil {
		return config.Settings{}, err
	}
	return s, nil
}

// setupLogging installs the default logger: text on stderr, plus a JSON
// file when configured. The returned func closes the file.
func setupLogging(logFile string, verbose bool) (func(), error) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	textHandler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	var handler slog.Handler = textHandler
	closeFn := func() {}
	if logFile != "" {
		lf, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		jsonHandler := slog.NewJSONHandler(lf, &slog.HandlerOptions{Level: slog.LevelDebug})
		handler = ui.NewMultiHandler(textHandler, jsonHandler)
		closeFn = func() { lf.Close() }
	}
	slog.SetDefault(slog.New(handler))
	return closeFn, nil
}

//nolint:revive,gocyclo // cyclomatic: wires every daemon component
func runDaemon(cmd *cobra.Command, _ []string) error {
	verbose, _ := cmd.Flags().GetBool("verbose") //nolint:errcheck // flag name is hardcoded
	if fg, _ := cmd.Flags().GetBool("foreground"); !fg { //nolint:errcheck // flag name is hardcoded
		return errors.New("background mode is not supported; run under a service manager")
	}

	s, err := loadDaemonSettings(cmd)
	if err != nil {
		return err
	}
	closeLog, err := setupLogging(s.LogFile, verbose)
	if err != nil {
		return err
	}
	defer closeLog()

	chain, err := s.ExcludeChain()
	if err != nil {
		return err
	}
	sink := event.NewLogSink(slog.Default())
	collector := stats.NewCollector()
	store := index.NewStore()

	src, err := watch.NewSource(s.WatchBackend)
	if err != nil {
		return fmt.Errorf("watch backend: %w", err)
	}
	defer src.Close()

	manager, err := watch.NewManager(store, src, watch.Config{
		Filter:         chain,
		Stats:          collector,
		Events:         sink,
		Roots:          s.Roots,
		Workers:        s.Workers,
		MoveWindow:     s.MoveWindow,
		ResyncInterval: s.ResyncInterval,
	})
	if err != nil {
		return err
	}
	roots := manager.Roots()

	pid := os.Getpid()
	if err := config.ClaimDaemonInfo(config.DaemonInfo{
		Started: time.Now(),
		Socket:  s.Socket,
		Version: version,
		Roots:   roots,
		Pid:     pid,
	}); err != nil {
		return err
	}
	defer config.RemoveDaemonInfo(pid)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var snapshots persist.Store
	if s.Persist.Enabled {
		snapshots, err = persist.Open(persist.Backend(s.Persist.Backend), s.Persist.Path)
		if err != nil {
			return fmt.Errorf("open index snapshot: %w", err)
		}
		defer snapshots.Close()
		if _, err := persist.Restore(ctx, snapshots, store, roots, sink); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			slog.Warn("index snapshot not used, doing a full walk", "error", err)
		}
	}

	pool := search.NewPool(search.Config{
		Stats:       collector,
		Events:      sink,
		Workers:     s.Workers,
		QueueSize:   s.QueueSize,
		MaxFileSize: s.MaxScanSize,
	})
	defer pool.Close()

	server, err := proto.NewServer(proto.ServerConfig{
		Store:          store,
		Pool:           pool,
		Stats:          collector,
		Events:         sink,
		SocketPath:     s.Socket,
		Version:        version,
		Batch:          proto.BatchConfig{MaxCount: s.BatchSize},
		RequestTimeout: s.RequestTimeout,
		WriteTimeout:   s.WriteTimeout,
	})
	if err != nil {
		return err
	}

	slog.Info("ffind daemon starting",
		"version", version,
		"roots", roots,
		"workers", s.Workers,
		"queue", s.QueueSize,
		"persist", s.Persist.Enabled,
		"filter_rules", chain.Len(),
	)
	if !chain.Empty() {
		slog.Debug("filter rules", "rules", strings.Split(chain.String(), "\n"))
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error { return server.Serve(gctx) })

	// The flusher starts once the initial walk has settled the index;
	// saving a half-walked tree would only be overwritten.
	walked := make(chan struct{})
	g.Go(func() error {
		if err := manager.Start(gctx); err != nil {
			if gctx.Err() != nil {
				return nil
			}
			return err
		}
		close(walked)
		slog.Info("index ready", "records", store.Len(), "watches", manager.WatchCount())
		return manager.Run(gctx)
	})

	if snapshots != nil {
		flusher := persist.NewFlusher(persist.FlusherConfig{
			Store:     snapshots,
			Index:     store,
			Events:    sink,
			Roots:     roots,
			Interval:  s.Persist.FlushInterval,
			Threshold: uint64(s.Persist.FlushThreshold), //nolint:gosec // G115: validated min=1
		})
		g.Go(func() error {
			select {
			case <-walked:
			case <-gctx.Done():
				return nil
			}
			return flusher.Run(gctx)
		})
	}

	if s.MetricsAddr != "" {
		reg := prometheus.NewRegistry()
		if err := stats.Register(reg, collector, store.Len); err != nil {
			return fmt.Errorf("register metrics: %w", err)
		}
		g.Go(func() error { return stats.ServeMetrics(gctx, s.MetricsAddr, reg) })
	}

	g.Go(func() error {
		tick := time.NewTicker(time.Second)
		defer tick.Stop()
		lastLog := time.Now()
		for {
			select {
			case <-gctx.Done():
				return nil
			case now := <-tick.C:
				collector.Tick()
				if now.Sub(lastLog) >= statsLogInterval {
					lastLog = now
					slog.Debug("daemon stats",
						"records", store.Len(),
						"qps", collector.RollingQueryRate(60),
						"scan_rate", stats.FormatBytes(int64(collector.RollingScanRate(60)))+"/s",
					)
				}
			}
		}
	})

	err = g.Wait()
	slog.Info("ffind daemon stopped", "uptime", collector.Uptime().Round(time.Second))
	return err
}
