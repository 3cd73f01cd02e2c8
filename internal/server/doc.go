// Package server runs the HTTP and gRPC transports of the accounts service.
//
// It owns the listeners, starts every enabled transport, waits for a stop
// signal and shuts the transports down gracefully.
package server
