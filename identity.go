package vmremote

import (
	"fmt"

	"github.com/shaban/vmremote/driver"
)

// MixerType identifies the product variant the engine runs as. The codes
// are fixed by the protocol.
type MixerType int32

const (
	MixerNormal   MixerType = 1
	MixerBanana   MixerType = 2
	MixerPotato   MixerType = 3
	MixerPotato64 MixerType = 6
)

func (t MixerType) String() string {
	switch t {
	case MixerNormal:
		return "normal"
	case MixerBanana:
		return "banana"
	case MixerPotato:
		return "potato"
	case MixerPotato64:
		return "potato64"
	default:
		return fmt.Sprintf("mixertype(%d)", int32(t))
	}
}

func mixerTypeFromCode(code int32) (MixerType, bool) {
	switch t := MixerType(code); t {
	case MixerNormal, MixerBanana, MixerPotato, MixerPotato64:
		return t, true
	default:
		return 0, false
	}
}

// MixerType queries which product variant the engine is running as.
// Requires a logged-in session. A type code outside the known set is a
// compatibility gap and surfaces as ErrUnexpected rather than a guessed
// default.
func (c *Client) MixerType() (MixerType, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	code, st := c.drv.MixerType()
	switch st {
	case driver.StatusOK:
	case driver.StatusNoClient:
		return 0, protocolErr("getMixerType", KindClientUnavailable, st)
	case driver.StatusNoServer:
		return 0, protocolErr("getMixerType", KindNoServer, st)
	default:
		return 0, protocolErr("getMixerType", KindUnexpected, st)
	}

	t, ok := mixerTypeFromCode(code)
	if !ok {
		return 0, &Error{
			Kind:   KindUnexpected,
			Op:     "getMixerType",
			detail: fmt.Sprintf("unmapped type code %d", code),
		}
	}
	return t, nil
}

// Version queries the engine version and renders it as "major.minor.patch.build".
// Requires a logged-in session.
func (c *Client) Version() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	packed, st := c.drv.Version()
	switch st {
	case driver.StatusOK:
		return formatVersion(packed), nil
	case driver.StatusNoClient:
		return "", protocolErr("getVersion", KindClientUnavailable, st)
	case driver.StatusNoServer:
		return "", protocolErr("getVersion", KindNoServer, st)
	default:
		return "", protocolErr("getVersion", KindUnexpected, st)
	}
}

// formatVersion unpacks four ordinal bytes, most significant first.
func formatVersion(packed uint32) string {
	return fmt.Sprintf("%d.%d.%d.%d",
		packed>>24&0xff,
		packed>>16&0xff,
		packed>>8&0xff,
		packed&0xff)
}
