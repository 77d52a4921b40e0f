// Package client is the Fusion backend API client.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic contract (see the Client interface) covering the
//     auth verbs (Login, Register, CurrentUser, Logout), the generic CRUD
//     verbs over /api/<table> (Get, Create, Update, Delete), file upload and
//     the raw Request escape hatch.
//  2. A net/http implementation (see HTTPClient) that keeps the session
//     bearer token in memory, mirrors it to a tokenstore.Store and reloads it
//     lazily when memory is empty.
//
// # Public endpoints
//
// Endpoints under /auth and /components/pwa are public. Every other call
// made without a token fails immediately with ErrNoToken and never reaches
// the network.
//
// # Error Handling
//
// Non-2xx responses surface as *APIError carrying the HTTP status and body.
// Transport failures wrap ErrUnavailable. A 401, whether from the backend or
// from the local token check, matches ErrUnauthenticated with errors.Is.
// Every call is a single attempt: nothing is retried.
//
// # Concurrency
//
// HTTPClient is safe for concurrent use. Requests are independent; no
// ordering is guaranteed between concurrent calls.
package client
