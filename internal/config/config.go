package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/agbru/revfile/internal/dispatch"
	apperrors "github.com/agbru/revfile/internal/errors"
	"github.com/agbru/revfile/internal/pool"
	"github.com/agbru/revfile/internal/reverse"
)

// AppConfig aggregates the application's configuration parameters.
type AppConfig struct {
	// Method is the reversal strategy name as given on the command line.
	Method string
	// Pool is the worker pool kind as given on the command line.
	Pool string

	DataDir string
	Pattern string
	// Workers is the pool capacity.
	Workers int
	// Timeout bounds the whole batch. Zero means no limit.
	Timeout time.Duration

	ChunkSize int
	Strip     string
	MmapCopy  string

	Quiet       bool
	Verbose     bool
	NoColor     bool
	MetricsFile string
	Version     bool
}

// Default returns the configuration used when no flag is given.
func Default() AppConfig {
	return AppConfig{
		Method:    string(reverse.DefaultMethod),
		Pool:      string(pool.DefaultKind),
		DataDir:   dispatch.DefaultDataDir,
		Pattern:   dispatch.DefaultPattern,
		Workers:   pool.DefaultCapacity,
		ChunkSize: reverse.DefaultChunkSize,
		Strip:     string(reverse.Faithful),
		MmapCopy:  string(reverse.Faithful),
	}
}

// ParseConfig parses args (without the program name) into an AppConfig.
// Usage and flag errors are written to errWriter. A -h/-help request returns
// an error matching flag.ErrHelp.
func ParseConfig(programName string, args []string, errWriter io.Writer) (AppConfig, error) {
	cfg := Default()

	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errWriter)
	fs.Usage = func() {
		fmt.Fprintf(errWriter, "Usage: %s [flags] [method] [pool]\n\n", programName)
		fmt.Fprintf(errWriter, "  method  one of %v (default %q)\n", reverse.Methods(), reverse.DefaultMethod)
		fmt.Fprintf(errWriter, "  pool    one of %v (default %q)\n\nFlags:\n", pool.Kinds(), pool.DefaultKind)
		fs.PrintDefaults()
	}

	fs.StringVar(&cfg.DataDir, "data-dir", cfg.DataDir, "Directory holding the input files.")
	fs.StringVar(&cfg.Pattern, "pattern", cfg.Pattern, "Glob pattern selecting input files inside -data-dir.")
	fs.IntVar(&cfg.Workers, "workers", cfg.Workers, "Number of files reversed concurrently.")
	fs.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "Maximum duration of the batch (e.g. 30s); 0 disables it.")
	fs.IntVar(&cfg.ChunkSize, "chunk-size", cfg.ChunkSize, "Chunk size in bytes for the buffer method.")
	fs.StringVar(&cfg.Strip, "strip", cfg.Strip, "Whitespace handling of the buffer method: faithful strips every chunk, corrected only the final line terminator.")
	fs.StringVar(&cfg.MmapCopy, "mmap-copy", cfg.MmapCopy, "Copy range of the mmap method: faithful drops the last input byte, corrected copies all of them.")
	fs.BoolVar(&cfg.Quiet, "quiet", false, "Only print errors.")
	fs.BoolVar(&cfg.Quiet, "q", false, "Shorthand for -quiet.")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "Log every job and print memory usage.")
	fs.BoolVar(&cfg.Verbose, "v", false, "Shorthand for -verbose.")
	fs.BoolVar(&cfg.NoColor, "no-color", false, "Disable colored output.")
	fs.StringVar(&cfg.MetricsFile, "metrics-file", "", "Write Prometheus metrics for the batch to this file.")
	fs.BoolVar(&cfg.Version, "version", false, "Print version information and exit.")
	fs.BoolVar(&cfg.Version, "V", false, "Shorthand for -version.")

	positional, err := parseInterspersed(fs, args)
	if err != nil {
		return AppConfig{}, err
	}
	if cfg.Version {
		return cfg, nil
	}

	switch len(positional) {
	case 2:
		cfg.Pool = positional[1]
		fallthrough
	case 1:
		cfg.Method = positional[0]
	case 0:
	default:
		fmt.Fprintf(errWriter, "too many arguments: %q\n", positional[2:])
		fs.Usage()
		return AppConfig{}, apperrors.NewConfigError("too many arguments: %q", positional[2:])
	}

	if isFlagSetAny(fs, "quiet", "q") && isFlagSetAny(fs, "verbose", "v") {
		return AppConfig{}, apperrors.NewConfigError("-quiet and -verbose are mutually exclusive")
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(errWriter, "Configuration error: %v\n", err)
		return AppConfig{}, err
	}
	return cfg, nil
}

// parseInterspersed lets flags and positionals appear in any order. A bare
// "--" ends flag parsing; everything after it is positional.
func parseInterspersed(fs *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		rest := fs.Args()
		if len(rest) == 0 {
			return positional, nil
		}
		if consumed := len(args) - len(rest); consumed > 0 && args[consumed-1] == "--" {
			return append(positional, rest...), nil
		}
		positional = append(positional, rest[0])
		args = rest[1:]
	}
}

// Validate checks the numeric and enumerated flag values. The method and
// pool names are deliberately not checked here.
func (c AppConfig) Validate() error {
	var errs []error
	if c.Workers < 1 {
		errs = append(errs, apperrors.ValidationError{Field: "workers", Message: "must be at least 1"})
	}
	if c.ChunkSize < reverse.MinChunkSize {
		errs = append(errs, apperrors.ValidationError{
			Field:   "chunk-size",
			Message: fmt.Sprintf("must be at least %d bytes", reverse.MinChunkSize),
		})
	}
	if c.Timeout < 0 {
		errs = append(errs, apperrors.ValidationError{Field: "timeout", Message: "must not be negative"})
	}
	if c.Pattern == "" {
		errs = append(errs, apperrors.ValidationError{Field: "pattern", Message: "must not be empty"})
	}
	if _, err := reverse.ParseFidelity(c.Strip); err != nil {
		errs = append(errs, apperrors.ValidationError{Field: "strip", Message: err.Error()})
	}
	if _, err := reverse.ParseFidelity(c.MmapCopy); err != nil {
		errs = append(errs, apperrors.ValidationError{Field: "mmap-copy", Message: err.Error()})
	}
	return errors.Join(errs...)
}

// ToOptions converts the strategy-related flags into reverse.Options.
// It assumes Validate has passed.
func (c AppConfig) ToOptions() reverse.Options {
	strip, _ := reverse.ParseFidelity(c.Strip)
	mmapCopy, _ := reverse.ParseFidelity(c.MmapCopy)
	return reverse.Options{
		ChunkSize: c.ChunkSize,
		Strip:     strip,
		MmapCopy:  mmapCopy,
	}
}

// isFlagSet checks if a flag was explicitly set on the command line.
func isFlagSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

// isFlagSetAny checks if any of the specified flags were explicitly set.
// This is useful for aliased flags where either the short or long form may be used.
func isFlagSetAny(fs *flag.FlagSet, names ...string) bool {
	for _, name := range names {
		if isFlagSet(fs, name) {
			return true
		}
	}
	return false
}
