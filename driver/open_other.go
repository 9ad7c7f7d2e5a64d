//go:build !windows

package driver

// Open is only functional on Windows, where the vendor ships its remote
// interface library.
func Open() (Driver, error) {
	return nil, ErrNotSupported
}

// OpenPath is only functional on Windows.
func OpenPath(path string) (Driver, error) {
	return nil, ErrNotSupported
}
