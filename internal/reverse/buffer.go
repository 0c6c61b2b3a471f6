package reverse

import (
	"bufio"
	"io"
	"os"
	"unicode/utf8"

	apperrors "github.com/agbru/revfile/internal/errors"
)

// reverseBuffered walks the input from its end to its start in chunks of
// opts.ChunkSize bytes and appends each reversed chunk to the output.
//
// In Faithful strip mode every chunk is trimmed of surrounding whitespace
// before it is reversed, which also removes whitespace that happens to sit on
// a chunk boundary. Corrected mode only drops the file's trailing newline.
func reverseBuffered(path string, opts Options) (err error) {
	in, err := os.Open(path)
	if err != nil {
		return apperrors.WrapError(err, "open input")
	}
	defer in.Close()

	size, err := in.Seek(0, io.SeekEnd)
	if err != nil {
		return apperrors.WrapError(err, "seek input")
	}

	out, err := os.Create(OutputPath(path))
	if err != nil {
		return apperrors.WrapError(err, "create output")
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = apperrors.WrapError(cerr, "close output")
		}
	}()

	chunkSize := int64(opts.chunkSize())
	buf := make([]byte, min(chunkSize, size))
	w := bufio.NewWriterSize(out, len(buf)+utf8.UTFMax)

	for end := size; end > 0; {
		start := max(0, end-chunkSize)
		chunk := buf[:end-start]
		if _, err := in.ReadAt(chunk, start); err != nil {
			return apperrors.WrapError(err, "read input at offset %d", start)
		}
		if start > 0 {
			skip := alignToRuneStart(chunk)
			chunk = chunk[skip:]
			start += int64(skip)
		}
		if !utf8.Valid(chunk) {
			return ErrInvalidText
		}

		text := string(chunk)
		switch {
		case opts.Strip != Corrected:
			text = stripChunk(text)
		case end == size:
			text = trimTerminator(text)
		}
		if _, err := w.WriteString(reverseRunes(text)); err != nil {
			return apperrors.WrapError(err, "write output")
		}
		end = start
	}

	if err := w.WriteByte('\n'); err != nil {
		return apperrors.WrapError(err, "write output")
	}
	return apperrors.WrapError(w.Flush(), "flush output")
}
