package server

import "errors"

// errNoServersAreCreated is returned by [NewServer] when the listen address
// or the HTTP handler is missing.
var errNoServersAreCreated = errors.New("http server is not configured")
