// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v11"
)

// ErrInvalidEnvConfigs wraps any failure to decode an environment variable.
var ErrInvalidEnvConfigs = errors.New("invalid env configuration")

// parseEnv fills cfg from the process environment following the `env` and
// `envPrefix` tags of [StructuredConfig]. Only variables that are set touch
// cfg, so unset ones stay zero and later sources can fill them.
//
// Every decoding problem is reported at once; the returned error wraps
// [ErrInvalidEnvConfigs].
func parseEnv(cfg *StructuredConfig) error {
	if err := env.Parse(cfg); err != nil {
		var aggregate env.AggregateError
		if errors.As(err, &aggregate) {
			return fmt.Errorf("%w: %d env value(s) rejected: %w", ErrInvalidEnvConfigs, len(aggregate.Errors), err)
		}
		return fmt.Errorf("%w: %w", ErrInvalidEnvConfigs, err)
	}

	return nil
}
