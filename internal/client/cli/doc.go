// Package cli provides the interactive shift-journal client.
//
// It wires configuration, the local settings database, the API services and
// a line-oriented REPL. Typical flow: log in (saved credentials are used
// when present), start the online watcher, then work on the selected
// (date, shift) slot.
//
// Two full-screen views are built with Bubble Tea: the archive filter and
// the voice recorder used by the "!voice" field input.
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
package cli
