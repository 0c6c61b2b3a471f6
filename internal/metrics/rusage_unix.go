//go:build unix

package metrics

import (
	"runtime"

	"golang.org/x/sys/unix"
)

// PeakRSS returns the peak resident set size of the calling process and of
// its terminated, waited-for children, in bytes.
func PeakRSS() (self, children uint64, err error) {
	var ru unix.Rusage
	if err := unix.Getrusage(unix.RUSAGE_SELF, &ru); err != nil {
		return 0, 0, err
	}
	self = maxrssBytes(ru.Maxrss)
	if err := unix.Getrusage(unix.RUSAGE_CHILDREN, &ru); err != nil {
		return 0, 0, err
	}
	return self, maxrssBytes(ru.Maxrss), nil
}

// maxrssBytes normalizes ru_maxrss, which Darwin reports in bytes and
// everyone else in kilobytes.
func maxrssBytes(v int64) uint64 {
	if v < 0 {
		return 0
	}
	if runtime.GOOS == "darwin" || runtime.GOOS == "ios" {
		return uint64(v)
	}
	return uint64(v) * 1024
}
