// Package drivertest provides a scriptable in-memory Driver for tests. The
// stub answers from configured status sequences and parameter maps and
// counts every call, so tests can assert not only outcomes but also which
// raw operations were (or were not) attempted.
package drivertest

import (
	"sync"

	"github.com/shaban/vmremote/driver"
)

// Stub implements driver.Driver against in-memory state. The zero value is
// not usable; construct with New.
//
// Status sequences (LoginStatuses, DirtyStatuses) are consumed one entry
// per call, with the last entry repeating once the sequence is exhausted.
// Parameters live in Floats and Texts; a name present in neither map
// answers MissingStatus on both read paths.
type Stub struct {
	mu sync.Mutex

	LoginStatuses []driver.Status
	LogoutStatus  driver.Status
	RunStatus     driver.Status

	TypeCode      int32
	TypeStatus    driver.Status
	VersionValue  uint32
	VersionStatus driver.Status

	DirtyStatuses []driver.Status

	Floats map[string]float32
	Texts  map[string]string

	// Per-name status overrides for the two read paths. An entry here
	// wins over the Floats/Texts lookup.
	FloatStatus  map[string]driver.Status
	StringStatus map[string]driver.Status

	MissingStatus driver.Status

	RunKinds []int32
	closed   bool
	calls    map[string]int
}

// New returns a stub scripted for the happy path: login succeeds with the
// engine already running, every query answers StatusOK, and unknown names
// answer StatusUnknownParameter.
func New() *Stub {
	return &Stub{
		LoginStatuses: []driver.Status{driver.StatusOK},
		DirtyStatuses: []driver.Status{driver.StatusParamsClean},
		Floats:        make(map[string]float32),
		Texts:         make(map[string]string),
		FloatStatus:   make(map[string]driver.Status),
		StringStatus:  make(map[string]driver.Status),
		MissingStatus: driver.StatusUnknownParameter,
		calls:         make(map[string]int),
	}
}

// Calls reports how many times the named raw operation was invoked. Names:
// login, logout, run, type, version, dirty, getFloat, getString, close.
func (s *Stub) Calls(op string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[op]
}

// Closed reports whether Close was called.
func (s *Stub) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

func (s *Stub) record(op string) {
	s.calls[op]++
}

func next(seq *[]driver.Status) driver.Status {
	if len(*seq) == 0 {
		return driver.StatusOK
	}
	st := (*seq)[0]
	if len(*seq) > 1 {
		*seq = (*seq)[1:]
	}
	return st
}

func (s *Stub) Login() driver.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("login")
	return next(&s.LoginStatuses)
}

func (s *Stub) Logout() driver.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("logout")
	return s.LogoutStatus
}

func (s *Stub) RunEngine(kind int32) driver.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("run")
	s.RunKinds = append(s.RunKinds, kind)
	return s.RunStatus
}

func (s *Stub) MixerType() (int32, driver.Status) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("type")
	return s.TypeCode, s.TypeStatus
}

func (s *Stub) Version() (uint32, driver.Status) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("version")
	return s.VersionValue, s.VersionStatus
}

func (s *Stub) ParametersDirty() driver.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("dirty")
	return next(&s.DirtyStatuses)
}

func (s *Stub) ParameterFloat(name string) (float32, driver.Status) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("getFloat")

	if st, ok := s.FloatStatus[name]; ok {
		return 0, st
	}
	if v, ok := s.Floats[name]; ok {
		return v, driver.StatusOK
	}
	if _, ok := s.Texts[name]; ok {
		// Exists, but its shape is textual.
		return 0, driver.StatusStructureMismatch
	}
	return 0, s.MissingStatus
}

func (s *Stub) ParameterString(name string, buf []byte) driver.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("getString")

	if st, ok := s.StringStatus[name]; ok {
		return st
	}
	if text, ok := s.Texts[name]; ok {
		n := copy(buf, text)
		if n < len(buf) {
			buf[n] = 0
		}
		return driver.StatusOK
	}
	if _, ok := s.Floats[name]; ok {
		return driver.StatusStructureMismatch
	}
	return s.MissingStatus
}

func (s *Stub) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("close")
	s.closed = true
	return nil
}
