package server

// Server is what cmd/server drives: the HTTP API listener, the optional gRPC
// health listener, and the composite that runs both.
type Server interface {
	// RunServer serves until SIGINT/SIGTERM, then shuts down and returns.
	RunServer()

	// Shutdown stops accepting connections and drains in-flight requests.
	Shutdown()
}
