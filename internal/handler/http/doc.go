// Package http implements the REST transport of the governance core.
//
// Requests pass through trace-id, access-logging and bearer-token middleware
// before reaching handlers, which translate JSON bodies and path parameters
// into GovernanceService calls. Role capabilities are enforced by the
// service layer so that denied calls are audited.
package http
