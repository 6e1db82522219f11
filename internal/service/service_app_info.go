package service

import (
	"context"

	"github.com/MKhiriev/go-privacy-keeper/internal/config"
	"github.com/MKhiriev/go-privacy-keeper/internal/logger"
	"github.com/MKhiriev/go-privacy-keeper/models"
)

// appInfoService serves immutable build metadata captured at startup.
type appInfoService struct {
	build models.AppBuildInfo
}

func NewAppInfoService(cfg config.App, logger *logger.Logger) (AppInfoService, error) {
	if cfg.Version == "" {
		return nil, ErrVersionIsNotSpecified
	}

	build := models.NewAppBuildInfo(cfg.Version, cfg.BuildDate, cfg.BuildCommit)

	logger.Info().Object("build", build).Msg("application build info")

	return &appInfoService{build: build}, nil
}

func (s *appInfoService) GetAppVersion(_ context.Context) string {
	return s.build.BuildVersion()
}

func (s *appInfoService) GetBuildInfo(_ context.Context) models.AppBuildInfo {
	return s.build
}
