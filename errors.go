package vmremote

import (
	"fmt"

	"github.com/shaban/vmremote/driver"
)

// Kind classifies a control-channel failure. Raw driver status codes are
// mapped to exactly one Kind at the boundary and never surface as typed
// values beyond the diagnostic message.
type Kind int

const (
	// KindClientUnavailable means the remote interface could not obtain
	// its client slot.
	KindClientUnavailable Kind = iota + 1
	// KindAlreadyLoggedIn means login was attempted while a prior session
	// was still open; a logout was expected first.
	KindAlreadyLoggedIn
	// KindNoServer means the channel is open but the engine is not
	// actually running behind it.
	KindNoServer
	// KindNotInstalled means the engine is not installed on this host.
	KindNotInstalled
	// KindUnknownType means the requested product variant is not one the
	// interface library knows.
	KindUnknownType
	// KindUnknownParameter means no parameter with the requested name
	// exists in the engine's namespace.
	KindUnknownParameter
	// KindStructureMismatch means the parameter exists but its structural
	// shape does not match the request.
	KindStructureMismatch
	// KindUnexpected covers status codes outside the mapped set; a
	// compatibility gap between this client and the installed library.
	KindUnexpected
)

func (k Kind) String() string {
	switch k {
	case KindClientUnavailable:
		return "client unavailable"
	case KindAlreadyLoggedIn:
		return "already logged in"
	case KindNoServer:
		return "no server"
	case KindNotInstalled:
		return "not installed"
	case KindUnknownType:
		return "unknown mixer type"
	case KindUnknownParameter:
		return "unknown parameter"
	case KindStructureMismatch:
		return "structure mismatch"
	case KindUnexpected:
		return "unexpected driver status"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Error is a failed control-channel operation.
type Error struct {
	Kind Kind
	Op   string

	status driver.Status
	detail string
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("vmremote: %s: %s", e.Op, e.Kind)
	if e.detail != "" {
		return msg + ": " + e.detail
	}
	return fmt.Sprintf("%s (driver status %d)", msg, int32(e.status))
}

// Is matches on Kind, so callers can test against the Err* sentinels with
// errors.Is without caring which operation failed.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Op == "" || t.Op == e.Op)
}

// Sentinels for errors.Is. Each matches any *Error of the same Kind.
var (
	ErrClientUnavailable = &Error{Kind: KindClientUnavailable}
	ErrAlreadyLoggedIn   = &Error{Kind: KindAlreadyLoggedIn}
	ErrNoServer          = &Error{Kind: KindNoServer}
	ErrNotInstalled      = &Error{Kind: KindNotInstalled}
	ErrUnknownType       = &Error{Kind: KindUnknownType}
	ErrUnknownParameter  = &Error{Kind: KindUnknownParameter}
	ErrStructureMismatch = &Error{Kind: KindStructureMismatch}
	ErrUnexpected        = &Error{Kind: KindUnexpected}
)

func protocolErr(op string, kind Kind, st driver.Status) *Error {
	return &Error{Kind: kind, Op: op, status: st}
}

// ErrorHandler defines the interface for handling asynchronous client
// errors, e.g. poll failures inside a Watcher.
type ErrorHandler interface {
	HandleError(error)
}

// DefaultErrorHandler provides a basic error handling implementation
type DefaultErrorHandler struct{}

// HandleError implements ErrorHandler interface with basic logging
func (h *DefaultErrorHandler) HandleError(err error) {
	fmt.Printf("Client Error: %v\n", err)
}

// LoggingErrorHandler wraps another handler and logs errors
type LoggingErrorHandler struct {
	underlying ErrorHandler
	logger     func(error)
}

// NewLoggingErrorHandler creates a new logging error handler
func NewLoggingErrorHandler(underlying ErrorHandler, logger func(error)) *LoggingErrorHandler {
	return &LoggingErrorHandler{
		underlying: underlying,
		logger:     logger,
	}
}

// HandleError implements ErrorHandler interface with logging
func (h *LoggingErrorHandler) HandleError(err error) {
	if h.logger != nil {
		h.logger(err)
	}
	if h.underlying != nil {
		h.underlying.HandleError(err)
	}
}

// PanicErrorHandler panics on any error (useful for development)
type PanicErrorHandler struct{}

// HandleError implements ErrorHandler interface by panicking
func (h *PanicErrorHandler) HandleError(err error) {
	panic(fmt.Sprintf("Client error: %v", err))
}
