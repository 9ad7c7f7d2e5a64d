package vmremote

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shaban/vmremote/driver"
)

func TestErrorKindMatching(t *testing.T) {
	err := protocolErr("login", KindAlreadyLoggedIn, driver.StatusUnexpectedLogin)

	assert.True(t, errors.Is(err, ErrAlreadyLoggedIn))
	assert.False(t, errors.Is(err, ErrNoServer))

	// Matching also works through wrapping.
	wrapped := fmt.Errorf("session setup: %w", err)
	assert.True(t, errors.Is(wrapped, ErrAlreadyLoggedIn))
}

func TestErrorMessageNamesOperationAndKind(t *testing.T) {
	err := protocolErr("getParameter", KindUnknownParameter, driver.StatusUnknownParameter)
	assert.Contains(t, err.Error(), "getParameter")
	assert.Contains(t, err.Error(), "unknown parameter")
}

func TestErrorOpScopedSentinel(t *testing.T) {
	err := protocolErr("getVersion", KindNoServer, driver.StatusNoServer)

	assert.True(t, errors.Is(err, &Error{Kind: KindNoServer, Op: "getVersion"}))
	assert.False(t, errors.Is(err, &Error{Kind: KindNoServer, Op: "getMixerType"}))
}
