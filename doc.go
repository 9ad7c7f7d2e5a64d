// Package vmremote is a control-session client for the Voicemeeter audio
// mixing engine. It speaks the engine's remote interface through a loaded
// driver handle and covers:
//   - Session lifecycle: login/logout over the single per-process control
//     channel, plus launching the engine as a chosen product variant
//   - Identity: decoding the running variant and the packed version word
//   - Parameters: reading named control values whose type (numeric or
//     textual) is discovered by probing, and polling the dirty flag
//   - Watcher, an optional adaptive polling loop that turns the dirty flag
//     into callbacks
//   - Snapshot, a read-only JSON capture of named parameter values
//
// The protocol is synchronous and offers no push notification; every call
// blocks until the interface library answers, and Client serializes all
// calls behind one mutex because the library is not reentrant. Failures
// surface as *Error values classified by Kind and matchable with errors.Is
// against the Err* sentinels; raw driver codes never escape the package.
package vmremote
