package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/bamsammich/ffind/internal/filter"
)

// Defaults applied when neither the config file nor a flag sets a value.
const (
	DefaultQueueFactor    = 8
	DefaultBatchSize      = 256
	DefaultMoveWindow     = time.Second
	DefaultResyncInterval = 2 * time.Second
	DefaultRequestTimeout = 5 * time.Minute
	DefaultWriteTimeout   = 10 * time.Second
	DefaultFlushInterval  = 30 * time.Second
	DefaultFlushThreshold = 100
	DefaultWatchBackend   = "auto"
	DefaultPersistBackend = "sqlite"
)

// Settings is the fully resolved daemon configuration.
type Settings struct {
	Roots          []string      `validate:"required,min=1,dive,required"`
	Excludes       []string      `validate:"dive,required"`
	FilterFile     string
	Socket         string        `validate:"required"`
	Workers        int           `validate:"min=1,max=1024"`
	QueueSize      int           `validate:"min=1"`
	BatchSize      int           `validate:"min=1,max=65536"`
	MoveWindow     time.Duration `validate:"gt=0"`
	RequestTimeout time.Duration `validate:"min=0"`
	WriteTimeout   time.Duration `validate:"gt=0"`
	ResyncInterval time.Duration `validate:"gt=0"`
	MaxScanSize    int64         `validate:"min=0"`
	MetricsAddr    string        `validate:"omitempty,hostname_port"`
	LogFile        string
	WatchBackend   string `validate:"oneof=auto inotify fsnotify"`

	Persist PersistSettings
}

// PersistSettings is the resolved [persist] section.
type PersistSettings struct {
	Enabled        bool
	Backend        string        `validate:"oneof=sqlite bolt"`
	Path           string        `validate:"required_if=Enabled true"`
	FlushInterval  time.Duration `validate:"gt=0"`
	FlushThreshold int           `validate:"min=1"`
}

var validate = validator.New()

// Resolve fills every unset value with its default. Roots are made
// absolute; relative roots are taken against the working directory.
func (c Config) Resolve() (Settings, error) {
	d, p := c.Daemon, c.Persist
	workers := runtime.NumCPU()

	s := Settings{
		Roots:          make([]string, 0, len(d.Roots)),
		Excludes:       d.Excludes,
		FilterFile:     ExpandHome(deref(d.FilterFile, "")),
		Socket:         deref(d.Socket, DefaultSocketPath()),
		Workers:        deref(d.Workers, workers),
		BatchSize:      deref(d.BatchSize, DefaultBatchSize),
		MoveWindow:     deref(d.MoveWindow, DefaultMoveWindow),
		RequestTimeout: deref(d.RequestTimeout, DefaultRequestTimeout),
		WriteTimeout:   deref(d.WriteTimeout, DefaultWriteTimeout),
		ResyncInterval: deref(d.ResyncInterval, DefaultResyncInterval),
		MetricsAddr:    deref(d.MetricsAddr, ""),
		LogFile:        ExpandHome(deref(d.LogFile, "")),
		WatchBackend:   deref(d.WatchBackend, DefaultWatchBackend),
	}
	s.QueueSize = deref(d.QueueSize, s.Workers*DefaultQueueFactor)
	s.Socket = ExpandHome(s.Socket)

	for _, r := range d.Roots {
		abs, err := filepath.Abs(ExpandHome(r))
		if err != nil {
			return Settings{}, fmt.Errorf("root %q: %w", r, err)
		}
		s.Roots = append(s.Roots, abs)
	}

	if d.MaxScanSize != nil && *d.MaxScanSize != "" {
		n, err := filter.ParseSize(*d.MaxScanSize)
		if err != nil {
			return Settings{}, fmt.Errorf("max_scan_size: %w", err)
		}
		s.MaxScanSize = n
	}

	backend := deref(p.Backend, DefaultPersistBackend)
	s.Persist = PersistSettings{
		Enabled:        deref(p.Enabled, false),
		Backend:        backend,
		Path:           ExpandHome(deref(p.Path, DefaultPersistPath(backend))),
		FlushInterval:  deref(p.FlushInterval, DefaultFlushInterval),
		FlushThreshold: deref(p.FlushThreshold, DefaultFlushThreshold),
	}
	return s, nil
}

// Validate checks struct constraints and the rules tags cannot express.
func (s *Settings) Validate() error {
	if err := validate.Struct(s); err != nil {
		return formatValidationError(err)
	}
	if _, err := s.ExcludeChain(); err != nil {
		return err
	}
	return nil
}

// ExcludeChain compiles the exclude patterns, then the rules of the filter
// file, into a filter chain. The first matching rule wins.
func (s *Settings) ExcludeChain() (*filter.Chain, error) {
	chain := filter.NewChain()
	for _, pattern := range s.Excludes {
		if err := chain.AddExclude(pattern); err != nil {
			return nil, fmt.Errorf("excludes: %w", err)
		}
	}
	if s.FilterFile != "" {
		if err := chain.LoadFile(s.FilterFile); err != nil {
			return nil, fmt.Errorf("filter_file: %w", err)
		}
	}
	return chain, nil
}

// formatValidationError reports the first failing field in a readable form.
func formatValidationError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		e := verrs[0]
		return fmt.Errorf("config %s: validation failed on '%s' (value: %v)", e.Namespace(), e.Tag(), e.Value())
	}
	return err
}

func deref[T any](p *T, def T) T {
	if p == nil {
		return def
	}
	return *p
}
