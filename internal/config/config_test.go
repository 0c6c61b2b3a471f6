package config

import (
	"bytes"
	"errors"
	"flag"
	"strings"
	"testing"
	"time"

	apperrors "github.com/agbru/revfile/internal/errors"
	"github.com/agbru/revfile/internal/reverse"
)

func TestParseConfig(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		args  []string
		check func(t *testing.T, cfg AppConfig)
	}{
		{
			name: "defaults",
			args: nil,
			check: func(t *testing.T, cfg AppConfig) {
				if cfg != Default() {
					t.Errorf("got %+v, want defaults %+v", cfg, Default())
				}
				if cfg.Method != "buffer" || cfg.Pool != "thread" || cfg.Workers != 8 || cfg.DataDir != "./data" {
					t.Errorf("unexpected defaults %+v", cfg)
				}
			},
		},
		{
			name: "method and pool",
			args: []string{"naive", "process"},
			check: func(t *testing.T, cfg AppConfig) {
				if cfg.Method != "naive" || cfg.Pool != "process" {
					t.Errorf("got method=%q pool=%q", cfg.Method, cfg.Pool)
				}
			},
		},
		{
			name: "method only keeps default pool",
			args: []string{"mmap"},
			check: func(t *testing.T, cfg AppConfig) {
				if cfg.Method != "mmap" || cfg.Pool != "thread" {
					t.Errorf("got method=%q pool=%q", cfg.Method, cfg.Pool)
				}
			},
		},
		{
			name: "flags interspersed with positionals",
			args: []string{"-workers", "2", "mmap", "-v", "process", "-timeout", "1m30s"},
			check: func(t *testing.T, cfg AppConfig) {
				if cfg.Method != "mmap" || cfg.Pool != "process" {
					t.Errorf("got method=%q pool=%q", cfg.Method, cfg.Pool)
				}
				if cfg.Workers != 2 || !cfg.Verbose || cfg.Timeout != 90*time.Second {
					t.Errorf("flags not applied: %+v", cfg)
				}
			},
		},
		{
			name: "no-color",
			args: []string{"-no-color", "naive"},
			check: func(t *testing.T, cfg AppConfig) {
				if !cfg.NoColor || cfg.Method != "naive" {
					t.Errorf("got no-color=%v method=%q", cfg.NoColor, cfg.Method)
				}
			},
		},
		{
			name: "double dash ends flags",
			args: []string{"buffer", "--", "-odd"},
			check: func(t *testing.T, cfg AppConfig) {
				if cfg.Method != "buffer" || cfg.Pool != "-odd" {
					t.Errorf("got method=%q pool=%q", cfg.Method, cfg.Pool)
				}
			},
		},
		{
			name: "invalid pool is left for the caller",
			args: []string{"buffer", "notapool"},
			check: func(t *testing.T, cfg AppConfig) {
				if cfg.Pool != "notapool" {
					t.Errorf("got pool=%q", cfg.Pool)
				}
			},
		},
		{
			name: "data layout and fidelity",
			args: []string{"-data-dir", "/srv/in", "-pattern", "*.txt", "-strip", "corrected", "-mmap-copy", "corrected", "-chunk-size", "4096"},
			check: func(t *testing.T, cfg AppConfig) {
				if cfg.DataDir != "/srv/in" || cfg.Pattern != "*.txt" {
					t.Errorf("got dir=%q pattern=%q", cfg.DataDir, cfg.Pattern)
				}
				want := reverse.Options{ChunkSize: 4096, Strip: reverse.Corrected, MmapCopy: reverse.Corrected}
				if got := cfg.ToOptions(); got != want {
					t.Errorf("ToOptions() = %+v, want %+v", got, want)
				}
			},
		},
		{
			name: "short aliases",
			args: []string{"-q", "-V"},
			check: func(t *testing.T, cfg AppConfig) {
				if !cfg.Quiet || !cfg.Version {
					t.Errorf("aliases not applied: %+v", cfg)
				}
			},
		},
		{
			name: "metrics file",
			args: []string{"-metrics-file", "out.prom"},
			check: func(t *testing.T, cfg AppConfig) {
				if cfg.MetricsFile != "out.prom" {
					t.Errorf("got %q", cfg.MetricsFile)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var errBuf bytes.Buffer
			cfg, err := ParseConfig("revfile", tt.args, &errBuf)
			if err != nil {
				t.Fatalf("ParseConfig(%q) error: %v (stderr: %s)", tt.args, err, errBuf.String())
			}
			tt.check(t, cfg)
		})
	}
}

func TestParseConfig_Errors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name      string
		args      []string
		wantField string
		wantCfg   bool
	}{
		{name: "too many positionals", args: []string{"buffer", "thread", "extra"}, wantCfg: true},
		{name: "quiet and verbose", args: []string{"-quiet", "-verbose"}, wantCfg: true},
		{name: "zero workers", args: []string{"-workers", "0"}, wantField: "workers"},
		{name: "tiny chunk", args: []string{"-chunk-size", "2"}, wantField: "chunk-size"},
		{name: "negative timeout", args: []string{"-timeout", "-1s"}, wantField: "timeout"},
		{name: "bad strip", args: []string{"-strip", "sometimes"}, wantField: "strip"},
		{name: "bad mmap copy", args: []string{"-mmap-copy", "all"}, wantField: "mmap-copy"},
		{name: "empty pattern", args: []string{"-pattern", ""}, wantField: "pattern"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := ParseConfig("revfile", tt.args, &bytes.Buffer{})
			if err == nil {
				t.Fatalf("ParseConfig(%q) should fail", tt.args)
			}
			if apperrors.ExitCodeFor(err) != apperrors.ExitErrorConfig {
				t.Errorf("exit code = %d, want %d", apperrors.ExitCodeFor(err), apperrors.ExitErrorConfig)
			}
			if tt.wantCfg {
				var cfgErr apperrors.ConfigError
				if !errors.As(err, &cfgErr) {
					t.Errorf("want ConfigError, got %T: %v", err, err)
				}
			}
			if tt.wantField != "" {
				var valErr apperrors.ValidationError
				if !errors.As(err, &valErr) || valErr.Field != tt.wantField {
					t.Errorf("want ValidationError on %q, got %v", tt.wantField, err)
				}
			}
		})
	}
}

func TestParseConfig_UnknownFlag(t *testing.T) {
	t.Parallel()
	var errBuf bytes.Buffer
	if _, err := ParseConfig("revfile", []string{"-nope"}, &errBuf); err == nil {
		t.Fatal("unknown flag should fail")
	}
	if !strings.Contains(errBuf.String(), "-nope") {
		t.Errorf("stderr should name the flag, got %q", errBuf.String())
	}
}

func TestParseConfig_Help(t *testing.T) {
	t.Parallel()
	var errBuf bytes.Buffer
	_, err := ParseConfig("revfile", []string{"-h"}, &errBuf)
	if !errors.Is(err, flag.ErrHelp) {
		t.Fatalf("want flag.ErrHelp, got %v", err)
	}
	for _, want := range []string{"Usage: revfile [flags] [method] [pool]", "-chunk-size", "[naive buffer mmap]"} {
		if !strings.Contains(errBuf.String(), want) {
			t.Errorf("usage should contain %q, got:\n%s", want, errBuf.String())
		}
	}
}

func TestValidate_JoinsErrors(t *testing.T) {
	t.Parallel()
	cfg := Default()
	cfg.Workers = 0
	cfg.ChunkSize = 1
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation errors")
	}
	for _, field := range []string{`"workers"`, `"chunk-size"`} {
		if !strings.Contains(err.Error(), field) {
			t.Errorf("error should mention %s, got %v", field, err)
		}
	}
}

func TestToOptions_Defaults(t *testing.T) {
	t.Parallel()
	want := reverse.Options{ChunkSize: reverse.DefaultChunkSize, Strip: reverse.Faithful, MmapCopy: reverse.Faithful}
	if got := Default().ToOptions(); got != want {
		t.Errorf("ToOptions() = %+v, want %+v", got, want)
	}
}
