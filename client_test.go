package vmremote

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shaban/vmremote/driver"
	"github.com/shaban/vmremote/driver/drivertest"
)

func newTestClient(t *testing.T, stub *drivertest.Stub) *Client {
	t.Helper()
	client, err := New(Config{Driver: stub})
	require.NoError(t, err)
	return client
}

func TestNewRequiresDriver(t *testing.T) {
	_, err := New(Config{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Driver is required")
}

func TestNewRejectsUndersizedStringBuffer(t *testing.T) {
	_, err := New(Config{Driver: drivertest.New(), StringBufferSize: 64})
	require.Error(t, err)

	// Zero means "use the default", not "tiny buffer".
	client, err := New(Config{Driver: drivertest.New()})
	require.NoError(t, err)
	assert.NotNil(t, client)
}

func TestLoginEngineRunning(t *testing.T) {
	client := newTestClient(t, drivertest.New())

	running, err := client.Login()
	require.NoError(t, err)
	assert.True(t, running)
	assert.Equal(t, StateLoggedIn, client.State())
}

func TestLoginEngineNotYetRunning(t *testing.T) {
	stub := drivertest.New()
	stub.LoginStatuses = []driver.Status{driver.StatusEngineNotRunning}
	client := newTestClient(t, stub)

	running, err := client.Login()
	require.NoError(t, err)
	assert.False(t, running)

	// The channel is open and usable even though the engine is down.
	assert.True(t, client.LoggedIn())
}

func TestLoginTwiceSurfacesCollision(t *testing.T) {
	stub := drivertest.New()
	stub.LoginStatuses = []driver.Status{driver.StatusOK, driver.StatusUnexpectedLogin}
	client := newTestClient(t, stub)

	_, err := client.Login()
	require.NoError(t, err)

	_, err = client.Login()
	require.ErrorIs(t, err, ErrAlreadyLoggedIn)
	assert.Equal(t, 2, stub.Calls("login"), "collision must reach the driver, not be suppressed locally")
}

func TestLoginClientUnavailable(t *testing.T) {
	stub := drivertest.New()
	stub.LoginStatuses = []driver.Status{driver.StatusNoClient}
	client := newTestClient(t, stub)

	_, err := client.Login()
	require.ErrorIs(t, err, ErrClientUnavailable)
	assert.Equal(t, StateLoggedOut, client.State())
}

func TestLoginUnmappedStatus(t *testing.T) {
	stub := drivertest.New()
	stub.LoginStatuses = []driver.Status{driver.Status(-9)}
	client := newTestClient(t, stub)

	_, err := client.Login()
	require.ErrorIs(t, err, ErrUnexpected)
}

func TestLogoutNeverErrors(t *testing.T) {
	stub := drivertest.New()
	client := newTestClient(t, stub)

	_, err := client.Login()
	require.NoError(t, err)

	assert.True(t, client.Logout())
	assert.Equal(t, StateLoggedOut, client.State())

	// A failing driver logout still tears the session down.
	stub.LogoutStatus = driver.StatusNoClient
	_, err = client.Login()
	require.NoError(t, err)

	assert.False(t, client.Logout())
	assert.Equal(t, StateLoggedOut, client.State())
}

func TestRunEngineNeedsNoLogin(t *testing.T) {
	stub := drivertest.New()
	client := newTestClient(t, stub)

	require.NoError(t, client.RunEngine(MixerBanana))
	assert.Equal(t, []int32{2}, stub.RunKinds)
	assert.Equal(t, StateLoggedOut, client.State())
	assert.Equal(t, 0, stub.Calls("login"))
}

func TestRunEngineFailures(t *testing.T) {
	stub := drivertest.New()
	client := newTestClient(t, stub)

	stub.RunStatus = driver.StatusNotInstalled
	require.ErrorIs(t, client.RunEngine(MixerPotato), ErrNotInstalled)

	stub.RunStatus = driver.StatusUnknownKind
	require.ErrorIs(t, client.RunEngine(MixerType(42)), ErrUnknownType)

	stub.RunStatus = driver.Status(-7)
	require.ErrorIs(t, client.RunEngine(MixerNormal), ErrUnexpected)
}
