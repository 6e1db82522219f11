package service

import (
	"fmt"

	"github.com/MKhiriev/go-privacy-keeper/internal/anonymizer"
	"github.com/MKhiriev/go-privacy-keeper/internal/config"
	"github.com/MKhiriev/go-privacy-keeper/internal/crypto"
	"github.com/MKhiriev/go-privacy-keeper/internal/logger"
	"github.com/MKhiriev/go-privacy-keeper/internal/metrics"
	"github.com/MKhiriev/go-privacy-keeper/internal/store"
)

type Services struct {
	AuthService       AuthService
	RetentionService  RetentionService
	GovernanceService GovernanceService
	AppInfoService    AppInfoService
}

// NewServices wires every service over storages. The governance service is
// returned wrapped in argument validation.
func NewServices(
	storages *store.Storages,
	cipher crypto.FieldCipher,
	hasher crypto.PasswordHasher,
	m *metrics.Metrics,
	cfg config.StructuredConfig,
	logger *logger.Logger,
) (*Services, error) {
	return newServices(storages, cipher, hasher, SystemClock{}, m, cfg, logger)
}

func newServices(
	storages *store.Storages,
	cipher crypto.FieldCipher,
	hasher crypto.PasswordHasher,
	clock Clock,
	m *metrics.Metrics,
	cfg config.StructuredConfig,
	logger *logger.Logger,
) (*Services, error) {
	appInfo, err := NewAppInfoService(cfg.App, logger)
	if err != nil {
		return nil, fmt.Errorf("error creating app info service: %w", err)
	}

	auth := NewAuthService(storages.UserRepository, hasher, cfg.App, logger)
	retention := NewRetentionService(storages.SubjectRepository, storages.Transactor, clock, logger)
	engine := anonymizer.NewEngine(storages.SubjectRepository, cipher, logger)

	governance := NewGovernanceService(storages, engine, cipher, retention, auth, clock, m, logger)

	return &Services{
		AuthService:       auth,
		RetentionService:  retention,
		GovernanceService: NewGovernanceValidationService().Wrap(governance),
		AppInfoService:    appInfo,
	}, nil
}
