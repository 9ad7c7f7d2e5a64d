//go:build windows

package driver

import (
	"fmt"
	"path/filepath"
	"runtime"
	"unsafe"

	"golang.org/x/sys/windows"
	"golang.org/x/sys/windows/registry"
)

// Registry location of the Voicemeeter installer entry. The install
// directory is derived from its UninstallString value.
const uninstallKey = `SOFTWARE\Microsoft\Windows\CurrentVersion\Uninstall\VB:Voicemeeter {17359A74-1236-5467}`

const (
	dllName32 = "VoicemeeterRemote.dll"
	dllName64 = "VoicemeeterRemote64.dll"
)

// remote binds the exported VBVMR_* procedures of the vendor library.
type remote struct {
	dll *windows.DLL

	procLogin      *windows.Proc
	procLogout     *windows.Proc
	procRun        *windows.Proc
	procType       *windows.Proc
	procVersion    *windows.Proc
	procDirty      *windows.Proc
	procGetFloat   *windows.Proc
	procGetStringA *windows.Proc
}

// Open locates the remote interface library through the registry and loads
// it. Use OpenPath to bypass discovery with an explicit DLL path.
func Open() (Driver, error) {
	return OpenPath("")
}

// OpenPath loads the remote interface library from the given path, or from
// the registry-discovered install directory when path is empty.
func OpenPath(path string) (Driver, error) {
	if path == "" {
		p, err := locateLibrary()
		if err != nil {
			return nil, err
		}
		path = p
	}

	dll, err := windows.LoadDLL(path)
	if err != nil {
		return nil, fmt.Errorf("driver: load %s: %w", path, err)
	}

	r := &remote{dll: dll}
	bindings := []struct {
		name string
		proc **windows.Proc
	}{
		{"VBVMR_Login", &r.procLogin},
		{"VBVMR_Logout", &r.procLogout},
		{"VBVMR_RunVoicemeeter", &r.procRun},
		{"VBVMR_GetVoicemeeterType", &r.procType},
		{"VBVMR_GetVoicemeeterVersion", &r.procVersion},
		{"VBVMR_IsParametersDirty", &r.procDirty},
		{"VBVMR_GetParameterFloat", &r.procGetFloat},
		{"VBVMR_GetParameterStringA", &r.procGetStringA},
	}
	for _, b := range bindings {
		p, err := dll.FindProc(b.name)
		if err != nil {
			dll.Release()
			return nil, fmt.Errorf("driver: %s has no %s export: %w", path, b.name, err)
		}
		*b.proc = p
	}

	return r, nil
}

// locateLibrary resolves the vendor DLL from the Voicemeeter installer's
// registry entry. Both the WOW6432Node view and the native view are tried,
// since the installer is 32-bit on every edition.
func locateLibrary() (string, error) {
	keys := []string{
		`SOFTWARE\WOW6432Node\Microsoft\Windows\CurrentVersion\Uninstall\VB:Voicemeeter {17359A74-1236-5467}`,
		uninstallKey,
	}

	for _, key := range keys {
		k, err := registry.OpenKey(registry.LOCAL_MACHINE, key, registry.QUERY_VALUE)
		if err != nil {
			continue
		}
		uninstall, _, err := k.GetStringValue("UninstallString")
		k.Close()
		if err != nil || uninstall == "" {
			continue
		}

		name := dllName32
		if runtime.GOARCH == "amd64" || runtime.GOARCH == "arm64" {
			name = dllName64
		}
		return filepath.Join(filepath.Dir(uninstall), name), nil
	}

	return "", fmt.Errorf("driver: voicemeeter installation not found in registry")
}

func (r *remote) call(p *windows.Proc, args ...uintptr) Status {
	// The VBVMR procedures report through their return value only; the
	// Win32 lastErr from Proc.Call carries no signal here.
	ret, _, _ := p.Call(args...)
	return Status(int32(ret)) //nolint:gosec // return value is a C long
}

func (r *remote) Login() Status {
	return r.call(r.procLogin)
}

func (r *remote) Logout() Status {
	return r.call(r.procLogout)
}

func (r *remote) RunEngine(kind int32) Status {
	return r.call(r.procRun, uintptr(kind))
}

func (r *remote) MixerType() (int32, Status) {
	var v int32
	st := r.call(r.procType, uintptr(unsafe.Pointer(&v)))
	return v, st
}

func (r *remote) Version() (uint32, Status) {
	var v int32
	st := r.call(r.procVersion, uintptr(unsafe.Pointer(&v)))
	return uint32(v), st
}

func (r *remote) ParametersDirty() Status {
	return r.call(r.procDirty)
}

func (r *remote) ParameterFloat(name string) (float32, Status) {
	cname, err := windows.BytePtrFromString(name)
	if err != nil {
		// Embedded NUL; no such parameter can exist on the other side.
		return 0, StatusUnknownParameter
	}
	var v float32
	st := r.call(r.procGetFloat,
		uintptr(unsafe.Pointer(cname)),
		uintptr(unsafe.Pointer(&v)))
	return v, st
}

func (r *remote) ParameterString(name string, buf []byte) Status {
	cname, err := windows.BytePtrFromString(name)
	if err != nil {
		return StatusUnknownParameter
	}
	if len(buf) == 0 {
		return StatusStructureMismatch
	}
	return r.call(r.procGetStringA,
		uintptr(unsafe.Pointer(cname)),
		uintptr(unsafe.Pointer(&buf[0])))
}

func (r *remote) Close() error {
	if r.dll == nil {
		return nil
	}
	err := r.dll.Release()
	r.dll = nil
	return err
}
