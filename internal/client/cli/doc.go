// Package cli provides the interactive Fusion command-line client.
//
// It wires configuration, local token storage, the API client, services and
// an interactive REPL. Typical flow: log in or register, then run CRUD and
// administration commands against the backend.
//
// Key features:
//   - Login / Register (generic, student, instructor) / Logout
//   - Current user and session token inspection
//   - Generic table access: get, create, update, delete
//   - File upload, postal-code lookup, media classification
//   - Administrator user and profile editing
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
