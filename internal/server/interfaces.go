package server

// Server defines the lifecycle contract of the application server.
//
// RunServer blocks until a termination signal arrives or a component fails,
// and returns after everything was shut down.
type Server interface {
	// RunServer starts serving and blocks until the server stops.
	RunServer() error

	// Shutdown gracefully stops the HTTP server.
	Shutdown()
}
