// Package config loads the settings of the privacy server and its CLI.
//
// Each field is resolved from the first source that sets it:
//
//	environment (APP_*, STORAGE_*, SERVER_*, ADAPTER_*, WORKERS_*, CONFIG)
//	command-line flags
//	the JSON file named by -c / -config
//	built-in defaults
//
// The merged result is validated before it is returned. The server calls
// [GetStructuredConfig]; the CLI calls [GetClientConfig], which also returns
// the positional command arguments left after flag parsing. Adapter
// credentials are read from the environment only, so they never appear in
// process listings.
package config
