package vmremote

import (
	"bytes"
	"strconv"

	"github.com/shaban/vmremote/driver"
)

// ValueKind tags the two shapes a parameter value can take.
type ValueKind int

const (
	ValueFloat ValueKind = iota
	ValueText
)

// Value is a parameter value of discovered type: either numeric or textual,
// never both. The engine's protocol has no "get type" primitive, so the
// kind is established by probing and carried here explicitly.
type Value struct {
	kind ValueKind
	num  float32
	text string
}

// FloatValue wraps a numeric parameter value.
func FloatValue(f float32) Value {
	return Value{kind: ValueFloat, num: f}
}

// TextValue wraps a textual parameter value.
func TextValue(s string) Value {
	return Value{kind: ValueText, text: s}
}

// Kind returns which case this value carries.
func (v Value) Kind() ValueKind {
	return v.kind
}

// IsFloat reports whether the value is numeric.
func (v Value) IsFloat() bool {
	return v.kind == ValueFloat
}

// Float returns the numeric case; zero for textual values.
func (v Value) Float() float32 {
	return v.num
}

// Text returns the textual case; empty for numeric values.
func (v Value) Text() string {
	return v.text
}

// String renders the value for display.
func (v Value) String() string {
	if v.kind == ValueText {
		return v.text
	}
	return strconv.FormatFloat(float64(v.num), 'g', -1, 32)
}

// Parameter resolves the named parameter without the caller declaring its
// type. The float read is probed first and short-circuits on success; only
// then is the text read attempted. The order is part of the contract:
// numeric parameters vastly outnumber textual ones, and reordering would
// change which failure code surfaces for an absent parameter.
//
// Requires a logged-in session.
func (c *Client) Parameter(name string) (Value, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if f, st := c.drv.ParameterFloat(name); st == driver.StatusOK {
		return FloatValue(f), nil
	}

	st := c.drv.ParameterString(name, c.strBuf)
	if st == driver.StatusOK {
		return TextValue(cstring(c.strBuf)), nil
	}

	switch st {
	case driver.StatusNoClient:
		return Value{}, protocolErr("getParameter", KindClientUnavailable, st)
	case driver.StatusNoServer:
		return Value{}, protocolErr("getParameter", KindNoServer, st)
	case driver.StatusUnknownParameter:
		return Value{}, protocolErr("getParameter", KindUnknownParameter, st)
	case driver.StatusStructureMismatch:
		return Value{}, protocolErr("getParameter", KindStructureMismatch, st)
	default:
		return Value{}, protocolErr("getParameter", KindUnexpected, st)
	}
}

// ParametersDirty polls the engine's dirty flag: true when at least one
// parameter changed since the previous check. The protocol has no push
// mechanism; callers poll this on their own schedule, or start a Watcher.
//
// Requires a logged-in session.
func (c *Client) ParametersDirty() (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch st := c.drv.ParametersDirty(); st {
	case driver.StatusParamsDirty:
		return true, nil
	case driver.StatusParamsClean:
		return false, nil
	case driver.StatusNoClient:
		return false, protocolErr("isParametersDirty", KindClientUnavailable, st)
	case driver.StatusNoServer:
		return false, protocolErr("isParametersDirty", KindNoServer, st)
	default:
		return false, protocolErr("isParametersDirty", KindUnexpected, st)
	}
}

// cstring decodes a NUL-terminated buffer. A buffer the driver filled to
// capacity without a terminator is taken whole.
func cstring(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		return string(b[:i])
	}
	return string(b)
}
