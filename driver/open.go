package driver

import "errors"

// ErrNotSupported is returned by Open on platforms without the vendor's
// remote interface library.
var ErrNotSupported = errors.New("driver: remote interface library is not available on this platform")
