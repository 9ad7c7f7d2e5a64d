package vmremote

import (
	"fmt"
	"sync"

	"github.com/shaban/vmremote/driver"
)

// SessionState is the lifecycle state of the control channel.
type SessionState int

const (
	StateLoggedOut SessionState = iota
	StateLoggedIn
)

func (s SessionState) String() string {
	if s == StateLoggedIn {
		return "logged in"
	}
	return "logged out"
}

// DefaultStringBufferSize is the capacity pre-allocated for text parameter
// reads. The interface library defines no hard bound for parameter text;
// 512 bytes is the conventional minimum it expects callers to provide.
const DefaultStringBufferSize = 512

// Config holds configuration for client initialization
type Config struct {
	// Driver is the loaded remote interface library. Required.
	Driver driver.Driver

	// ErrorHandler receives asynchronous errors (watcher polls). Defaults
	// to DefaultErrorHandler.
	ErrorHandler ErrorHandler

	// StringBufferSize overrides the capacity for text parameter reads.
	// Values below DefaultStringBufferSize are rejected.
	StringBufferSize int
}

// Client owns the control session toward the mixing engine. All operations
// are serialized behind one mutex: the underlying protocol is synchronous
// and the interface library must be assumed non-reentrant.
//
// There is one control channel per process on the engine side; creating
// multiple logged-in Clients against the real driver is a protocol
// violation the engine will report, not something the Client prevents.
type Client struct {
	mu    sync.Mutex
	drv   driver.Driver
	state SessionState

	errorHandler ErrorHandler
	strBuf       []byte
}

// New creates a client over an already-loaded driver.
func New(config Config) (*Client, error) {
	if config.Driver == nil {
		return nil, fmt.Errorf("Driver is required in Config")
	}
	if config.ErrorHandler == nil {
		config.ErrorHandler = &DefaultErrorHandler{}
	}
	if config.StringBufferSize <= 0 {
		config.StringBufferSize = DefaultStringBufferSize
	} else if config.StringBufferSize < DefaultStringBufferSize {
		return nil, fmt.Errorf("StringBufferSize must be at least %d bytes, got %d",
			DefaultStringBufferSize, config.StringBufferSize)
	}

	return &Client{
		drv:          config.Driver,
		state:        StateLoggedOut,
		errorHandler: config.ErrorHandler,
		strBuf:       make([]byte, config.StringBufferSize),
	}, nil
}

// Login opens the control channel. It returns true when the engine is
// already running, and false when the channel is open but the engine has
// not been launched yet; the channel is usable either way (RunEngine can
// bring the engine up afterwards).
//
// A second Login without an intervening Logout is reported by the driver
// as ErrAlreadyLoggedIn; the collision is surfaced, not suppressed.
func (c *Client) Login() (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch st := c.drv.Login(); st {
	case driver.StatusOK:
		c.state = StateLoggedIn
		return true, nil
	case driver.StatusEngineNotRunning:
		c.state = StateLoggedIn
		return false, nil
	case driver.StatusNoClient:
		return false, protocolErr("login", KindClientUnavailable, st)
	case driver.StatusUnexpectedLogin:
		return false, protocolErr("login", KindAlreadyLoggedIn, st)
	default:
		return false, protocolErr("login", KindUnexpected, st)
	}
}

// Logout closes the control channel. Teardown is best-effort: the session
// drops to logged out whatever the driver reports, and the report itself is
// reduced to a boolean so cleanup paths never have an error to swallow.
func (c *Client) Logout() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	st := c.drv.Logout()
	c.state = StateLoggedOut
	return st == driver.StatusOK
}

// RunEngine asks the interface library to launch the engine as the given
// product variant. It needs no login and leaves the session state alone.
func (c *Client) RunEngine(kind MixerType) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch st := c.drv.RunEngine(int32(kind)); st {
	case driver.StatusOK:
		return nil
	case driver.StatusNotInstalled:
		return protocolErr("runEngine", KindNotInstalled, st)
	case driver.StatusUnknownKind:
		return protocolErr("runEngine", KindUnknownType, st)
	default:
		return protocolErr("runEngine", KindUnexpected, st)
	}
}

// State returns the current session state.
func (c *Client) State() SessionState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// LoggedIn reports whether the control channel is open.
func (c *Client) LoggedIn() bool {
	return c.State() == StateLoggedIn
}
