// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors produced by the transport itself, before a request
// reaches the service layer. Callers can match against them with [errors.Is].
var (
	// ErrEmptyAuthorizationHeader is returned by the auth middleware when the
	// incoming request does not include an "Authorization" header at all.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrInvalidAuthorizationHeader is returned when the "Authorization"
	// header is not of the form "Bearer <token>".
	ErrInvalidAuthorizationHeader = errors.New("invalid `Authorization` header")

	// ErrInvalidJSON is returned when a request body cannot be decoded.
	ErrInvalidJSON = errors.New("invalid JSON was passed")

	// ErrInvalidPathID is returned when the {id} path segment is not an integer.
	ErrInvalidPathID = errors.New("subject id must be an integer")

	// ErrInvalidQuery is returned when a numeric query parameter is malformed.
	ErrInvalidQuery = errors.New("invalid query parameter")

	// ErrNoActor is returned when an authenticated route runs without an
	// actor in its context.
	ErrNoActor = errors.New("no authenticated actor in request context")
)
