// Package cli provides the interactive qrcontacts command-line client.
//
// It wires configuration, the local cache, the optional remote store and an
// interactive REPL. On start it resumes a persisted session if one is still
// valid; otherwise it runs in local-only mode, where contacts, profile and
// settings live in the cache alone. A background watcher pings the remote
// store and shows online/offline status in the prompt.
//
// Key features:
//   - Register / Login / Logout / whoami
//   - Scan: paste the text decoded from a QR code to add a contact
//   - Add / List / Search / Show / Edit / Delete contacts
//   - Profile, profile picture and QR card settings
//   - Sync with the remote store
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, StartOnlineStatusWatcher, and runREPL for details.
package cli
