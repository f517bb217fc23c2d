// Package server wires and runs the application's HTTP transport.
//
// It provides startup, signal handling, and graceful shutdown of the
// listener.
package server
