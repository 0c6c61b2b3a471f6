package reverse

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Method identifies one of the reversal strategies.
type Method string

const (
	Naive  Method = "naive"
	Buffer Method = "buffer"
	Mmap   Method = "mmap"
)

// DefaultMethod is used when no method is given on the command line.
const DefaultMethod = Buffer

// DefaultChunkSize is the span read per iteration by the buffered strategy.
const DefaultChunkSize = 1024 * 1024

// MinChunkSize is the smallest chunk that can hold any UTF-8 rune.
const MinChunkSize = utf8.UTFMax

// OutputSuffix is appended to the input path to build the output path.
const OutputSuffix = ".reversed"

// Fidelity selects between reproducing a known quirk and the corrected behavior.
type Fidelity string

const (
	// Faithful keeps the historical output byte for byte.
	Faithful Fidelity = "faithful"
	// Corrected fixes the quirk.
	Corrected Fidelity = "corrected"
)

// ParseFidelity parses "faithful" or "corrected". An empty string yields Faithful.
func ParseFidelity(s string) (Fidelity, error) {
	switch Fidelity(strings.ToLower(s)) {
	case "", Faithful:
		return Faithful, nil
	case Corrected:
		return Corrected, nil
	}
	return "", fmt.Errorf("unknown fidelity %q (want %q or %q)", s, Faithful, Corrected)
}

// Options tune the strategies. The zero value is the faithful default.
type Options struct {
	// ChunkSize is the buffered strategy's chunk length in bytes.
	ChunkSize int
	// Strip controls whether the buffered strategy trims every chunk
	// (Faithful) or only the file's trailing newline (Corrected).
	Strip Fidelity
	// MmapCopy controls whether the mapped strategy skips the last input
	// byte (Faithful) or copies all of them (Corrected).
	MmapCopy Fidelity
}

func (o Options) chunkSize() int {
	switch {
	case o.ChunkSize <= 0:
		return DefaultChunkSize
	case o.ChunkSize < MinChunkSize:
		return MinChunkSize
	}
	return o.ChunkSize
}

var strategies = map[Method]func(path string, opts Options) error{
	Naive:  reverseNaive,
	Buffer: reverseBuffered,
	Mmap:   reverseMapped,
}

// Methods returns the supported methods in a stable order.
func Methods() []Method {
	return []Method{Naive, Buffer, Mmap}
}

// ParseMethod validates a method name. An empty string yields DefaultMethod.
func ParseMethod(s string) (Method, error) {
	if s == "" {
		return DefaultMethod, nil
	}
	m := Method(strings.ToLower(s))
	if _, ok := strategies[m]; !ok {
		return "", fmt.Errorf("unknown method %q", s)
	}
	return m, nil
}

// Reverse runs the strategy m on path, writing OutputPath(path).
func Reverse(m Method, path string, opts Options) error {
	fn, ok := strategies[m]
	if !ok {
		return fmt.Errorf("unknown method %q", m)
	}
	return fn(path, opts)
}

// OutputPath returns the path the strategies write for the given input.
func OutputPath(path string) string {
	return path + OutputSuffix
}
