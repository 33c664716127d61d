package server

import "context"

// Server defines the lifecycle contract of the application server.
//
// RunServer blocks until SIGTERM, SIGINT or SIGQUIT is received and the
// server has shut down. Shutdown stops accepting requests, waits for the
// in-flight ones and then drains background work, giving up when ctx is
// done.
type Server interface {
	RunServer() error
	Shutdown(ctx context.Context) error
}

// Background is work that runs next to the HTTP server, such as the
// notification worker pool.
type Background interface {
	Run(ctx context.Context)
	Shutdown(ctx context.Context) error
}
