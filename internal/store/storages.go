package store

import "github.com/MKhiriev/go-privacy-keeper/internal/logger"

// Storages bundles every repository that shares one database handle.
type Storages struct {
	Transactor        Transactor
	SubjectRepository SubjectRepository
	AuditRepository   AuditRepository
	UserRepository    UserRepository
}

// NewStorages wires all repositories on top of db.
func NewStorages(db *DB, logger *logger.Logger) *Storages {
	return &Storages{
		Transactor:        NewTransactor(db),
		SubjectRepository: NewSubjectRepository(db, logger),
		AuditRepository:   NewAuditRepository(db, logger),
		UserRepository:    NewUserRepository(db, logger),
	}
}
