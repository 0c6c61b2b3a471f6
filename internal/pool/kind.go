package pool

import (
	"fmt"
	"strings"
)

// Kind selects the isolation model of the pool's workers.
type Kind string

const (
	// Thread workers are goroutines sharing this process's memory.
	Thread Kind = "thread"
	// Process workers are child processes with isolated memory.
	Process Kind = "process"
)

// DefaultKind is used when no pool kind is given on the command line.
const DefaultKind = Thread

// DefaultCapacity is the number of jobs allowed to run at once.
const DefaultCapacity = 8

// Kinds returns the supported pool kinds.
func Kinds() []Kind {
	return []Kind{Thread, Process}
}

// ParseKind validates a pool kind. An empty string yields DefaultKind.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(s)); k {
	case "":
		return DefaultKind, nil
	case Thread, Process:
		return k, nil
	}
	return "", fmt.Errorf("unknown pool kind %q", s)
}
