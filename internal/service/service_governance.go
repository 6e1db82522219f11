package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/MKhiriev/go-privacy-keeper/internal/access"
	"github.com/MKhiriev/go-privacy-keeper/internal/anonymizer"
	"github.com/MKhiriev/go-privacy-keeper/internal/crypto"
	"github.com/MKhiriev/go-privacy-keeper/internal/logger"
	"github.com/MKhiriev/go-privacy-keeper/internal/metrics"
	"github.com/MKhiriev/go-privacy-keeper/internal/store"
	"github.com/MKhiriev/go-privacy-keeper/models"
)

// auditCSVHeader is the first row of an audit export.
var auditCSVHeader = []string{"id", "timestamp", "actor_id", "actor_role", "action", "outcome", "detail"}

// governanceService orchestrates every privileged operation and records
// exactly one audit entry per call.
//
// Audit policy:
//   - success entries are written in the same transaction as the work they
//     describe, so they commit together or not at all;
//   - failures are recorded in a separate write after the failed
//     transaction rolled back;
//   - calls rejected with ErrInvalidArgument leave no entry.
type governanceService struct {
	subjects   store.SubjectRepository
	transactor store.Transactor
	recorder   *auditRecorder
	audit      store.AuditRepository

	anonymizer anonymizer.Engine
	cipher     crypto.FieldCipher
	retention  RetentionService
	auth       AuthService

	clock   Clock
	metrics *metrics.Metrics
	logger  *logger.Logger
}

// NewGovernanceService wires the facade over storages and its collaborators.
func NewGovernanceService(
	storages *store.Storages,
	engine anonymizer.Engine,
	cipher crypto.FieldCipher,
	retention RetentionService,
	auth AuthService,
	clock Clock,
	m *metrics.Metrics,
	logger *logger.Logger,
) GovernanceService {
	return &governanceService{
		subjects:   storages.SubjectRepository,
		transactor: storages.Transactor,
		audit:      storages.AuditRepository,
		recorder: &auditRecorder{
			audit:   storages.AuditRepository,
			clock:   clock,
			metrics: m,
		},
		anonymizer: engine,
		cipher:     cipher,
		retention:  retention,
		auth:       auth,
		clock:      clock,
		metrics:    m,
		logger:     logger,
	}
}

// audited runs fn and records its outcome. fn returns the audit detail even
// when it fails. With inTx set, fn and the success entry share one
// transaction.
func (g *governanceService) audited(
	ctx context.Context,
	actor models.Actor,
	action models.AuditAction,
	allowed bool,
	inTx bool,
	fn func(ctx context.Context) (string, error),
) error {
	log := logger.FromContext(ctx)
	start := time.Now()
	defer func() { g.metrics.ObserveOperationLatency(string(action), time.Since(start)) }()

	if !allowed {
		log.Warn().
			Str("func", "*governanceService.audited").
			Int64("actor_id", actor.ID).
			Str("role", actor.Role.String()).
			Str("action", string(action)).
			Msg("operation denied")
		g.recorder.recordFailure(ctx, actor, action, "", ErrForbidden)
		return ErrForbidden
	}

	var detail string
	body := func(ctx context.Context) error {
		d, err := fn(ctx)
		detail = d
		if err != nil {
			return err
		}
		return g.recorder.record(ctx, actor, action, models.OutcomeSuccess, d)
	}

	var err error
	if inTx {
		err = g.transactor.RunInTx(ctx, body)
	} else {
		err = body(ctx)
	}
	if err == nil {
		return nil
	}

	err = translateError(err)
	if errors.Is(err, ErrInvalidArgument) {
		return err
	}

	log.Err(err).
		Str("func", "*governanceService.audited").
		Int64("actor_id", actor.ID).
		Str("action", string(action)).
		Msg("operation failed")
	g.recorder.recordFailure(ctx, actor, action, detail, err)
	return err
}

func canRead(role models.Role) bool {
	return role.Can(models.CapFullRead) || role.Can(models.CapDiagnosisRead) || role.Can(models.CapShadowRead)
}

func canRegister(role models.Role) bool {
	return role.Can(models.CapRegister) || role.Can(models.CapManage)
}

func canManage(role models.Role) bool {
	return role.Can(models.CapManage)
}

func subjectDetail(id int64) string {
	return "subject_id=" + strconv.FormatInt(id, 10)
}

// ── authentication ───────────────────────────────────────────────────────────

func (g *governanceService) Authenticate(ctx context.Context, username, password string) (models.Actor, error) {
	actor, err := g.auth.Authenticate(ctx, username, password)
	if errors.Is(err, ErrInvalidArgument) {
		return models.Actor{}, err
	}

	if err != nil {
		g.recorder.recordFailure(ctx, models.Actor{}, models.ActionLogin, fmt.Sprintf("username=%q", username), err)
		return models.Actor{}, err
	}

	if err = g.recorder.record(ctx, actor, models.ActionLogin, models.OutcomeSuccess, fmt.Sprintf("user_id=%d", actor.ID)); err != nil {
		return models.Actor{}, err
	}

	return actor, nil
}

// ── subjects ─────────────────────────────────────────────────────────────────

func (g *governanceService) AddSubject(ctx context.Context, actor models.Actor, newSubject models.NewSubject) (int64, error) {
	var id int64

	err := g.audited(ctx, actor, models.ActionAddSubject, canRegister(actor.Role), true, func(ctx context.Context) (string, error) {
		subject := models.Subject{
			Name:         newSubject.Name,
			Contact:      newSubject.Contact,
			Diagnosis:    newSubject.Diagnosis,
			ConsentGiven: newSubject.ConsentGiven,
			CreatedAt:    g.clock.Now(),
		}

		created, err := g.subjects.Create(ctx, subject)
		if err != nil {
			return "", err
		}
		subject.ID = created

		// anonymization on write; a failure rolls the insert back
		if err = g.anonymizer.AnonymizeWithin(ctx, subject); err != nil {
			return subjectDetail(created), err
		}

		id = created
		return subjectDetail(created), nil
	})

	return id, err
}

func (g *governanceService) GetView(ctx context.Context, actor models.Actor) ([]models.SubjectView, error) {
	var views []models.SubjectView

	err := g.audited(ctx, actor, models.ActionViewSubjects, canRead(actor.Role), true, func(ctx context.Context) (string, error) {
		subjects, err := g.subjects.ListActive(ctx, today(g.clock))
		if err != nil {
			return "", err
		}

		views = access.ProjectMany(actor.Role, subjects)
		return fmt.Sprintf("count=%d", len(views)), nil
	})

	return views, err
}

func (g *governanceService) GetViewOne(ctx context.Context, actor models.Actor, id int64) (models.SubjectView, error) {
	var view models.SubjectView

	err := g.audited(ctx, actor, models.ActionViewSubject, canRead(actor.Role), true, func(ctx context.Context) (string, error) {
		detail := subjectDetail(id)

		subject, err := g.subjects.GetActive(ctx, id, today(g.clock))
		if err != nil {
			return detail, err
		}

		projected, ok := access.Project(actor.Role, subject)
		if !ok {
			return detail, ErrForbidden
		}

		view = projected
		return detail, nil
	})

	return view, err
}

func (g *governanceService) AnonymizeAll(ctx context.Context, actor models.Actor) (int, error) {
	var count int

	// each record commits on its own so an interrupted sweep keeps its progress
	err := g.audited(ctx, actor, models.ActionAnonymizeAll, canManage(actor.Role), false, func(ctx context.Context) (string, error) {
		n, err := g.anonymizer.AnonymizeAll(ctx)
		if err != nil {
			return fmt.Sprintf("count=%d", n), err
		}

		count = n
		return fmt.Sprintf("count=%d", n), nil
	})

	return count, err
}

// ── encryption ───────────────────────────────────────────────────────────────

func (g *governanceService) EncryptSubject(ctx context.Context, actor models.Actor, id int64) error {
	return g.audited(ctx, actor, models.ActionEncrypt, canManage(actor.Role), true, func(ctx context.Context) (string, error) {
		detail := subjectDetail(id)

		subject, err := g.subjects.GetActive(ctx, id, today(g.clock))
		if err != nil {
			return detail, err
		}
		if subject.Encrypted {
			return detail, ErrAlreadyEncrypted
		}

		sealed, err := g.transformFields(subject, g.cipher.Encrypt)
		if err != nil {
			return detail, err
		}
		sealed.Encrypted = true

		err = g.subjects.ReplaceFields(ctx, sealed)
		if errors.Is(err, store.ErrConditionNotMet) {
			return detail, ErrAlreadyEncrypted
		}
		return detail, err
	})
}

func (g *governanceService) DecryptSubject(ctx context.Context, actor models.Actor, id int64) (models.DecryptedSubject, error) {
	var decrypted models.DecryptedSubject

	err := g.audited(ctx, actor, models.ActionDecrypt, canManage(actor.Role), true, func(ctx context.Context) (string, error) {
		detail := subjectDetail(id)

		subject, err := g.subjects.GetActive(ctx, id, today(g.clock))
		if err != nil {
			return detail, err
		}

		if subject.Encrypted {
			if subject, err = g.transformFields(subject, g.cipher.Decrypt); err != nil {
				return detail, err
			}
		}

		decrypted = models.DecryptedSubject{
			ID:        subject.ID,
			Name:      subject.Name,
			Contact:   subject.Contact,
			Diagnosis: subject.Diagnosis,
		}
		return detail, nil
	})

	return decrypted, err
}

func (g *governanceService) RestoreSubject(ctx context.Context, actor models.Actor, id int64) error {
	return g.audited(ctx, actor, models.ActionRestore, canManage(actor.Role), true, func(ctx context.Context) (string, error) {
		detail := subjectDetail(id)

		subject, err := g.subjects.GetActive(ctx, id, today(g.clock))
		if err != nil {
			return detail, err
		}
		if !subject.Encrypted {
			return detail, ErrAlreadyPlaintext
		}

		opened, err := g.transformFields(subject, g.cipher.Decrypt)
		if err != nil {
			return detail, err
		}
		opened.Encrypted = false

		err = g.subjects.ReplaceFields(ctx, opened)
		if errors.Is(err, store.ErrConditionNotMet) {
			return detail, ErrAlreadyPlaintext
		}
		return detail, err
	})
}

// transformFields applies fn to the identity and sensitive fields of subject.
// Either all three fields are transformed or an error is returned.
func (g *governanceService) transformFields(subject models.Subject, fn func(string) (string, error)) (models.Subject, error) {
	fields := []*string{&subject.Name, &subject.Contact, &subject.Diagnosis}
	for _, field := range fields {
		out, err := fn(*field)
		if err != nil {
			return models.Subject{}, err
		}
		*field = out
	}
	return subject, nil
}

// ── retention ────────────────────────────────────────────────────────────────

func (g *governanceService) SetRetention(ctx context.Context, actor models.Actor, id int64, days int) error {
	if days <= 0 {
		return fmt.Errorf("%w: retention days must be positive, got %d", ErrInvalidArgument, days)
	}

	return g.audited(ctx, actor, models.ActionSetRetention, canManage(actor.Role), true, func(ctx context.Context) (string, error) {
		detail := fmt.Sprintf("subject_id=%d days=%d", id, days)

		retentionDate, err := g.retention.SetRetention(ctx, id, days)
		if err != nil {
			return detail, err
		}

		return detail + " retention_date=" + retentionDate, nil
	})
}

func (g *governanceService) SetConsent(ctx context.Context, actor models.Actor, id int64, given bool) error {
	return g.audited(ctx, actor, models.ActionSetConsent, canManage(actor.Role), true, func(ctx context.Context) (string, error) {
		detail := fmt.Sprintf("subject_id=%d consent=%t", id, given)
		return detail, g.subjects.SetConsent(ctx, id, given, today(g.clock))
	})
}

func (g *governanceService) ListExpired(ctx context.Context, actor models.Actor) ([]models.ExpiredSubject, error) {
	var expired []models.ExpiredSubject

	err := g.audited(ctx, actor, models.ActionCheckExpired, canManage(actor.Role), true, func(ctx context.Context) (string, error) {
		list, err := g.retention.ListExpired(ctx)
		if err != nil {
			return "", err
		}

		expired = list
		return fmt.Sprintf("count=%d", len(list)), nil
	})

	return expired, err
}

func (g *governanceService) PurgeExpired(ctx context.Context, actor models.Actor) (int, error) {
	var deleted []int64

	err := g.audited(ctx, actor, models.ActionPurgeExpired, canManage(actor.Role), true, func(ctx context.Context) (string, error) {
		ids, err := g.retention.PurgeExpired(ctx)
		if err != nil {
			return "", err
		}

		deleted = ids
		return fmt.Sprintf("%d deleted", len(ids)), nil
	})
	if err != nil {
		return 0, err
	}

	g.metrics.AddPurged(len(deleted))
	logger.FromContext(ctx).Info().
		Str("func", "*governanceService.PurgeExpired").
		Int64("actor_id", actor.ID).
		Ints64("subject_ids", deleted).
		Msg("expired subjects purged")

	return len(deleted), nil
}

// ── audit log ────────────────────────────────────────────────────────────────

func (g *governanceService) GetAuditLog(ctx context.Context, actor models.Actor, limit int) ([]models.AuditEntry, error) {
	if limit < 0 {
		return nil, fmt.Errorf("%w: limit must not be negative, got %d", ErrInvalidArgument, limit)
	}

	var entries []models.AuditEntry

	err := g.audited(ctx, actor, models.ActionViewAuditLog, canManage(actor.Role), true, func(ctx context.Context) (string, error) {
		list, err := g.audit.List(ctx, limit)
		if err != nil {
			return "", err
		}

		entries = list
		return fmt.Sprintf("count=%d", len(list)), nil
	})

	return entries, err
}

// ExportAuditLog writes the whole audit log as CSV, oldest entry first. The
// export is buffered and written to w only after its own entry committed.
func (g *governanceService) ExportAuditLog(ctx context.Context, actor models.Actor, w io.Writer) error {
	var buf bytes.Buffer

	err := g.audited(ctx, actor, models.ActionExportAuditLog, canManage(actor.Role), true, func(ctx context.Context) (string, error) {
		buf.Reset()
		cw := csv.NewWriter(&buf)
		if err := cw.Write(auditCSVHeader); err != nil {
			return "", err
		}

		count := 0
		err := g.audit.Each(ctx, func(entry models.AuditEntry) error {
			count++
			return cw.Write([]string{
				strconv.FormatInt(entry.ID, 10),
				entry.Timestamp.UTC().Format(time.RFC3339Nano),
				strconv.FormatInt(entry.ActorID, 10),
				entry.ActorRole,
				string(entry.Action),
				string(entry.Outcome),
				entry.Detail,
			})
		})
		if err != nil {
			return "", err
		}

		cw.Flush()
		if err = cw.Error(); err != nil {
			return "", err
		}

		return fmt.Sprintf("count=%d", count), nil
	})
	if err != nil {
		return err
	}

	if _, err = buf.WriteTo(w); err != nil {
		return fmt.Errorf("writing audit export: %w", err)
	}
	return nil
}

// ActivityStats counts audit entries per UTC calendar day over the last days
// days, today included. Days without activity are reported with zero.
func (g *governanceService) ActivityStats(ctx context.Context, actor models.Actor, days int) ([]models.ActivityStat, error) {
	if days <= 0 {
		return nil, fmt.Errorf("%w: days must be positive, got %d", ErrInvalidArgument, days)
	}

	var stats []models.ActivityStat

	err := g.audited(ctx, actor, models.ActionViewActivity, canManage(actor.Role), true, func(ctx context.Context) (string, error) {
		first := models.Date(g.clock.Now()).AddDate(0, 0, -(days - 1))

		entries, err := g.audit.Since(ctx, first)
		if err != nil {
			return "", err
		}

		counts := make(map[string]int64, days)
		for _, entry := range entries {
			counts[models.FormatDate(entry.Timestamp)]++
		}

		stats = make([]models.ActivityStat, 0, days)
		for i := 0; i < days; i++ {
			day := models.FormatDate(first.AddDate(0, 0, i))
			stats = append(stats, models.ActivityStat{Date: day, Count: counts[day]})
		}

		return fmt.Sprintf("days=%d entries=%d", days, len(entries)), nil
	})

	return stats, err
}
