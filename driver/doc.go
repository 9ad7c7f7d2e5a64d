// Package driver is the foreign-call boundary toward the Voicemeeter remote
// interface library (VoicemeeterRemote.dll). It exposes:
//   - Driver, the raw call surface the client package consumes
//   - Status, the unmapped result codes the vendor library returns
//   - Open, which locates and loads the vendor library on Windows
//
// The package deliberately does no interpretation: status codes are handed
// back as-is and mapped into a semantic error taxonomy one layer up. All
// calls are synchronous and blocking, with no timeout of their own; the
// vendor library must be assumed non-reentrant for session-lifecycle calls,
// so concurrent use has to be serialized by the caller.
//
// On non-Windows platforms Open fails with ErrNotSupported. Tests use the
// drivertest subpackage instead of a real library handle.
package driver
