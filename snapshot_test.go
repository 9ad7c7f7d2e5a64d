package vmremote

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shaban/vmremote/driver/drivertest"
)

func TestSnapshotCapturesBothKinds(t *testing.T) {
	stub := drivertest.New()
	stub.TypeCode = 2
	stub.VersionValue = 0x03000206
	stub.Floats["Strip[0].Gain"] = -6.0
	stub.Texts["Strip[0].Label"] = "Mic"
	client := newTestClient(t, stub)

	snap, err := client.Snapshot([]string{"Strip[0].Gain", "Strip[0].Label"})
	require.NoError(t, err)

	assert.Equal(t, "banana", snap.MixerType)
	assert.Equal(t, "3.0.2.6", snap.EngineVersion)
	require.Len(t, snap.Values, 2)

	gain := snap.Values["Strip[0].Gain"]
	assert.Equal(t, "float", gain.Kind)
	assert.Equal(t, float32(-6.0), gain.Float)
	assert.True(t, gain.Value().IsFloat())

	label := snap.Values["Strip[0].Label"]
	assert.Equal(t, "text", label.Kind)
	assert.Equal(t, "Mic", label.Text)
	assert.Equal(t, "Mic", label.Value().Text())
}

func TestSnapshotAbortsOnUnknownParameter(t *testing.T) {
	stub := drivertest.New()
	stub.TypeCode = 1
	client := newTestClient(t, stub)

	_, err := client.Snapshot([]string{"Strip[9].Missing"})
	require.ErrorIs(t, err, ErrUnknownParameter)
}

func TestSnapshotRoundTrip(t *testing.T) {
	stub := drivertest.New()
	stub.TypeCode = 3
	stub.VersionValue = 0x01020304
	stub.Floats["Bus[0].Gain"] = 1.5
	client := newTestClient(t, stub)

	snap, err := client.Snapshot([]string{"Bus[0].Gain"})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, snap.SaveToWriter(&buf))

	loaded, err := LoadSnapshot(&buf)
	require.NoError(t, err)
	assert.Equal(t, snap, loaded)
}

func TestLoadSnapshotRejectsVersionSkew(t *testing.T) {
	_, err := LoadSnapshot(bytes.NewBufferString(`{"formatVersion":"9.0.0","values":{}}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "incompatible snapshot version")
}
