//go:build !unix

package metrics

import "errors"

// ErrRusageUnsupported is returned where getrusage does not exist.
var ErrRusageUnsupported = errors.New("peak RSS is not available on this platform")

// PeakRSS is unavailable on this platform.
func PeakRSS() (self, children uint64, err error) {
	return 0, 0, ErrRusageUnsupported
}
