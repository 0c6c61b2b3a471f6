//go:build unix

package reverse

import (
	"io"
	"math"
	"os"

	"golang.org/x/sys/unix"

	apperrors "github.com/agbru/revfile/internal/errors"
)

// reverseMapped maps the input read-only and the output read-write and copies
// bytes from the end of one to the start of the other.
func reverseMapped(path string, opts Options) (err error) {
	in, err := os.Open(path)
	if err != nil {
		return apperrors.WrapError(err, "open input")
	}
	defer in.Close()

	size, err := in.Seek(0, io.SeekEnd)
	if err != nil {
		return apperrors.WrapError(err, "seek input")
	}
	if size == 0 {
		return apperrors.DegenerateInputError{Path: path, Reason: zeroLengthReason}
	}
	if size >= math.MaxInt {
		return apperrors.DegenerateInputError{Path: path, Reason: "file too large to map"}
	}

	out, err := os.OpenFile(OutputPath(path), os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return apperrors.WrapError(err, "create output")
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = apperrors.WrapError(cerr, "close output")
		}
	}()

	// A placeholder byte gives the output a non-zero size before it is resized.
	if _, err := out.Write([]byte{0}); err != nil {
		return apperrors.WrapError(err, "write placeholder")
	}
	outLen := mappedLength(int(size), opts.MmapCopy)
	if err := out.Truncate(int64(outLen)); err != nil {
		return apperrors.WrapError(err, "resize output")
	}

	src, err := unix.Mmap(int(in.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return apperrors.WrapError(err, "map input")
	}
	defer unix.Munmap(src)

	dst, err := unix.Mmap(int(out.Fd()), 0, outLen, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		return apperrors.WrapError(err, "map output")
	}
	defer func() {
		if uerr := unix.Munmap(dst); uerr != nil && err == nil {
			err = apperrors.WrapError(uerr, "unmap output")
		}
	}()

	copyReversed(dst, src, opts.MmapCopy)
	return apperrors.WrapError(unix.Msync(dst, unix.MS_SYNC), "sync output")
}
