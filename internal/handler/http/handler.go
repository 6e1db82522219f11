package http

import (
	"github.com/MKhiriev/go-privacy-keeper/internal/logger"
	"github.com/MKhiriev/go-privacy-keeper/internal/metrics"
	"github.com/MKhiriev/go-privacy-keeper/internal/service"
)

const (
	// defaultRetentionDays applies when a set-retention body omits days.
	defaultRetentionDays = 365

	// defaultActivityDays is the window of /api/audit/activity without ?days.
	defaultActivityDays = 7
)

// Handler serves the REST API. It owns no state besides its collaborators;
// metrics may be nil.
type Handler struct {
	services *service.Services
	metrics  *metrics.Metrics

	logger *logger.Logger
}

func NewHandler(services *service.Services, m *metrics.Metrics, log *logger.Logger) *Handler {
	h := &Handler{services: services, metrics: m, logger: log}
	log.Debug().Bool("metrics", m != nil).Msg("http handler ready")
	return h
}
