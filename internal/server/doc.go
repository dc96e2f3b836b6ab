// Package server wires and runs the sync server's transport.
//
// It owns the HTTP server lifecycle: startup, signal handling, and
// graceful shutdown.
package server
