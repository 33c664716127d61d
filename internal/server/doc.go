// Package server runs the HTTP transport and the background workers.
//
// It owns the process lifecycle: it starts the workers, serves HTTP until a
// stop signal arrives, then shuts the HTTP server down gracefully and drains
// the workers.
package server
