package driver

// Status is a raw result code as returned by the remote interface library.
// 0 always means success; positive values carry operation-specific meaning
// (login, dirty polling); negative values are failures whose meaning depends
// on the operation that produced them.
type Status int32

// Shared result codes.
const (
	StatusOK Status = 0
)

// Login result codes.
const (
	StatusEngineNotRunning Status = 1  // channel open, engine not launched yet
	StatusNoClient         Status = -1 // cannot obtain client, unexpected
	StatusUnexpectedLogin  Status = -2 // a prior logout was expected
)

// RunEngine result codes.
const (
	StatusNotInstalled Status = -1
	StatusUnknownKind  Status = -2
)

// Identity and parameter result codes.
const (
	StatusNoServer          Status = -2 // engine not running behind an open channel
	StatusUnknownParameter  Status = -3
	StatusStructureMismatch Status = -5
)

// Dirty-flag result codes.
const (
	StatusParamsClean Status = 0
	StatusParamsDirty Status = 1
)

// Failed reports whether s is a failure code. Positive codes are
// operation-specific success variants, never failures.
func (s Status) Failed() bool {
	return s < 0
}

// Driver is the raw call surface of the engine's remote interface library.
// Implementations perform the foreign calls and hand back unmapped status
// codes; interpreting those codes is the client's job. Calls are blocking
// and must be assumed non-reentrant (see the package doc).
type Driver interface {
	// Login opens the control channel to the engine.
	Login() Status

	// Logout closes the control channel.
	Logout() Status

	// RunEngine asks the interface library to launch the engine as the
	// given product variant.
	RunEngine(kind int32) Status

	// MixerType reads the numeric product-variant code of the running
	// engine. The returned value is only meaningful when the status is
	// StatusOK.
	MixerType() (int32, Status)

	// Version reads the engine version as four ordinal bytes packed into
	// a uint32, most significant byte first.
	Version() (uint32, Status)

	// ParametersDirty polls the engine's dirty flag. The status doubles
	// as the flag: StatusParamsDirty, StatusParamsClean, or a failure.
	ParametersDirty() Status

	// ParameterFloat reads the named parameter as a float. The value is
	// only meaningful when the status is StatusOK.
	ParameterFloat(name string) (float32, Status)

	// ParameterString reads the named parameter as NUL-terminated text
	// into buf. The interface library assumes adequate capacity; callers
	// must provide at least 512 bytes.
	ParameterString(name string, buf []byte) Status

	// Close releases the underlying library handle. The driver must not
	// be used afterwards.
	Close() error
}
