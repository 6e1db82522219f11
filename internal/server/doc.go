// Package server wires and runs the HTTP server and the background workers.
//
// Both run under one errgroup bound to SIGTERM/SIGINT/SIGQUIT: a signal or
// a failing listener shuts the HTTP server down gracefully and stops every
// worker.
package server
