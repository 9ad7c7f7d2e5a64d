package vmremote

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shaban/vmremote/driver"
	"github.com/shaban/vmremote/driver/drivertest"
)

func TestMixerTypeMapping(t *testing.T) {
	cases := []struct {
		code int32
		want MixerType
	}{
		{1, MixerNormal},
		{2, MixerBanana},
		{3, MixerPotato},
		{6, MixerPotato64},
	}

	for _, tc := range cases {
		stub := drivertest.New()
		stub.TypeCode = tc.code
		client := newTestClient(t, stub)

		got, err := client.MixerType()
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, "code %d", tc.code)
	}
}

func TestMixerTypeUnmappedCode(t *testing.T) {
	stub := drivertest.New()
	stub.TypeCode = 4 // gap in the protocol's variant codes
	client := newTestClient(t, stub)

	_, err := client.MixerType()
	require.ErrorIs(t, err, ErrUnexpected)
	assert.Contains(t, err.Error(), "unmapped type code 4")
}

func TestMixerTypeFailures(t *testing.T) {
	stub := drivertest.New()
	client := newTestClient(t, stub)

	stub.TypeStatus = driver.StatusNoClient
	_, err := client.MixerType()
	require.ErrorIs(t, err, ErrClientUnavailable)

	stub.TypeStatus = driver.StatusNoServer
	_, err = client.MixerType()
	require.ErrorIs(t, err, ErrNoServer)
}

func TestVersionDecodeIsBitExact(t *testing.T) {
	cases := []struct {
		packed uint32
		want   string
	}{
		{0x01020304, "1.2.3.4"},
		{0x00000000, "0.0.0.0"},
		{0x02000506, "2.0.5.6"},
		{0xffffffff, "255.255.255.255"},
	}

	for _, tc := range cases {
		stub := drivertest.New()
		stub.VersionValue = tc.packed
		client := newTestClient(t, stub)

		got, err := client.Version()
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, "packed %#x", tc.packed)
	}
}

func TestVersionFailures(t *testing.T) {
	stub := drivertest.New()
	client := newTestClient(t, stub)

	stub.VersionStatus = driver.StatusNoServer
	_, err := client.Version()
	require.ErrorIs(t, err, ErrNoServer)

	stub.VersionStatus = driver.Status(-9)
	_, err = client.Version()
	require.ErrorIs(t, err, ErrUnexpected)
}

func TestMixerTypeString(t *testing.T) {
	assert.Equal(t, "banana", MixerBanana.String())
	assert.Equal(t, "potato64", MixerPotato64.String())
	assert.Equal(t, "mixertype(9)", MixerType(9).String())
}
