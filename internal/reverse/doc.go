// Package reverse implements the three file reversal strategies.
//
// Every strategy reads one input file and writes its reversal next to it, at
// the same path with a ".reversed" suffix, followed by a single newline:
//
//	Naive   reads the whole file, drops its final rune and reverses the rest.
//	Buffer  walks the file backwards in fixed-size chunks, stripping and
//	        reversing each chunk.
//	Mmap    maps input and output into memory and copies bytes in reverse.
//
// Naive and Buffer work on UTF-8 runes; Mmap works on raw bytes. Buffer and
// Mmap carry known quirks (per-chunk whitespace stripping, a skipped final
// byte) that are kept by default and can be switched to a corrected variant
// through Options.
package reverse
