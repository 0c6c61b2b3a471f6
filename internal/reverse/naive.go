package reverse

import (
	"os"
	"unicode/utf8"

	apperrors "github.com/agbru/revfile/internal/errors"
)

// reverseNaive loads the whole file, drops its last rune (the terminator) and
// writes the remaining runes in reverse order.
func reverseNaive(path string, _ Options) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return apperrors.WrapError(err, "read input")
	}
	if !utf8.Valid(data) {
		return ErrInvalidText
	}

	runes := []rune(string(data))
	if len(runes) > 0 {
		runes = runes[:len(runes)-1]
	}
	reverseRuneSlice(runes)

	out := make([]byte, 0, len(data))
	out = append(out, string(runes)...)
	out = append(out, '\n')
	if err := os.WriteFile(OutputPath(path), out, 0o644); err != nil {
		return apperrors.WrapError(err, "write output")
	}
	return nil
}
