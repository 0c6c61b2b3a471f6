package reverse

import "errors"

// ErrMmapUnsupported is returned by the mapped strategy on platforms without mmap.
var ErrMmapUnsupported = errors.New("memory-mapped reversal is not supported on this platform")

const zeroLengthReason = "cannot memory-map a zero-length file"

// mappedLength is the final output length for an input of size bytes.
func mappedLength(size int, mode Fidelity) int {
	if mode == Corrected {
		return size + 1
	}
	return size
}

// copyReversed fills dst from src in reverse byte order and terminates it
// with a newline. dst must be mappedLength(len(src), mode) bytes long.
//
// In Faithful mode the copy starts one byte early, so the last input byte
// (normally the terminator) is never copied and dst has the same length as
// src.
func copyReversed(dst, src []byte, mode Fidelity) {
	size := len(src)
	if mode == Corrected {
		for i := 0; i < size; i++ {
			dst[i] = src[size-1-i]
		}
		dst[size] = '\n'
		return
	}
	for i := 1; i < size; i++ {
		dst[i-1] = src[size-1-i]
	}
	dst[size-1] = '\n'
}
