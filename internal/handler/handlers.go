// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package handler assembles the transport handlers exposed by the
// governance server. Only the HTTP API exists today.
package handler

import (
	"github.com/MKhiriev/go-privacy-keeper/internal/config"
	"github.com/MKhiriev/go-privacy-keeper/internal/handler/http"
	"github.com/MKhiriev/go-privacy-keeper/internal/logger"
	"github.com/MKhiriev/go-privacy-keeper/internal/metrics"
	"github.com/MKhiriev/go-privacy-keeper/internal/service"
)

// Handlers groups the transport handlers built for one server instance.
type Handlers struct {
	HTTP *http.Handler
}

// NewHandlers builds the HTTP handler over services. A server config
// without a listen address is rejected because nothing could be served.
func NewHandlers(services *service.Services, m *metrics.Metrics, cfg config.Server, logger *logger.Logger) (*Handlers, error) {
	if cfg.HTTPAddress == "" {
		logger.Error().Str("func", "handler.NewHandlers").Msg("http address is empty")
		return nil, errNoHTTPAddress
	}

	logger.Info().Str("address", cfg.HTTPAddress).Msg("building http handler")
	return &Handlers{HTTP: http.NewHandler(services, m, logger)}, nil
}
