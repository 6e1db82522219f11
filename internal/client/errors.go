package client

import "errors"

var (
	ErrNoCommand      = errors.New("no command given")
	ErrUnknownCommand = errors.New("unknown command")
	ErrUsage          = errors.New("invalid command usage")
	ErrNoCredentials  = errors.New("ADAPTER_USERNAME and ADAPTER_PASSWORD must be set")
)
