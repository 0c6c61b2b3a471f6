//go:build !unix

package reverse

func reverseMapped(string, Options) error {
	return ErrMmapUnsupported
}
