package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-privacy-keeper/internal/logger"
	"github.com/MKhiriev/go-privacy-keeper/models"
)

var subjectColumns = []string{
	"id",
	"name",
	"contact",
	"diagnosis",
	"anon_name",
	"anon_contact",
	"encrypted",
	"consent_given",
	"retention_date",
	"created_at",
}

// subjectRepository is the SQL implementation of [SubjectRepository]. It
// runs on sqlite and postgres; only the placeholder format differs.
type subjectRepository struct {
	db     *DB
	logger *logger.Logger
}

// NewSubjectRepository constructs a [SubjectRepository] on db.
func NewSubjectRepository(db *DB, logger *logger.Logger) SubjectRepository {
	logger.Debug().Msg("creating subject repository")
	return &subjectRepository{
		db:     db,
		logger: logger,
	}
}

// activeFilter matches subjects that have not reached their retention date.
func activeFilter(today string) sq.Sqlizer {
	return sq.Or{
		sq.Eq{"retention_date": nil},
		sq.Gt{"retention_date": today},
	}
}

// expiredFilter matches subjects whose retention date is on or before today.
func expiredFilter(today string) sq.Sqlizer {
	return sq.And{
		sq.NotEq{"retention_date": nil},
		sq.LtOrEq{"retention_date": today},
	}
}

func (r *subjectRepository) Create(ctx context.Context, subject models.Subject) (int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder.
		Insert(subject.TableName()).
		Columns("name", "contact", "diagnosis", "encrypted", "consent_given", "retention_date", "created_at").
		Values(
			subject.Name,
			subject.Contact,
			subject.Diagnosis,
			subject.Encrypted,
			subject.ConsentGiven,
			nullableDate(subject.RetentionDate),
			subject.CreatedAt.UTC(),
		).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var id int64
	if err = r.db.conn(ctx).QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		log.Err(err).Str("func", "*subjectRepository.Create").Msg("failed to insert subject")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	log.Debug().Str("func", "*subjectRepository.Create").Int64("subject_id", id).Msg("subject inserted")
	return id, nil
}

func (r *subjectRepository) Get(ctx context.Context, id int64) (models.Subject, error) {
	return r.getOne(ctx, "*subjectRepository.Get", sq.Eq{"id": id})
}

func (r *subjectRepository) GetActive(ctx context.Context, id int64, today string) (models.Subject, error) {
	return r.getOne(ctx, "*subjectRepository.GetActive", sq.And{sq.Eq{"id": id}, activeFilter(today)})
}

func (r *subjectRepository) getOne(ctx context.Context, funcName string, where sq.Sqlizer) (models.Subject, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder.
		Select(subjectColumns...).
		From(models.Subject{}.TableName()).
		Where(where).
		ToSql()
	if err != nil {
		return models.Subject{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	subject, err := scanSubject(r.db.conn(ctx).QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Subject{}, ErrSubjectNotFound
	}
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("failed to read subject")
		return models.Subject{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return subject, nil
}

func (r *subjectRepository) ListActive(ctx context.Context, today string) ([]models.Subject, error) {
	return r.list(ctx, "*subjectRepository.ListActive", activeFilter(today))
}

func (r *subjectRepository) ListExpired(ctx context.Context, today string) ([]models.Subject, error) {
	return r.list(ctx, "*subjectRepository.ListExpired", expiredFilter(today))
}

func (r *subjectRepository) list(ctx context.Context, funcName string, where sq.Sqlizer) ([]models.Subject, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder.
		Select(subjectColumns...).
		From(models.Subject{}.TableName()).
		Where(where).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.conn(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("failed to query subjects")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	subjects := make([]models.Subject, 0)
	for rows.Next() {
		subject, scanErr := scanSubject(rows)
		if scanErr != nil {
			log.Err(scanErr).Str("func", funcName).Msg("failed to scan subject row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, scanErr)
		}
		subjects = append(subjects, subject)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).Str("func", funcName).Msg("error iterating subject rows")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return subjects, nil
}

func (r *subjectRepository) ListIDs(ctx context.Context) ([]int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder.
		Select("id").
		From(models.Subject{}.TableName()).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.conn(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*subjectRepository.ListIDs").Msg("failed to query subject ids")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	return scanIDs(rows)
}

func (r *subjectRepository) SetShadow(ctx context.Context, id int64, anonName, anonContact string) error {
	query, args, err := r.db.builder.
		Update(models.Subject{}.TableName()).
		Set("anon_name", anonName).
		Set("anon_contact", anonContact).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.execAffectingOne(ctx, "*subjectRepository.SetShadow", ErrSubjectNotFound, query, args...)
}

func (r *subjectRepository) ReplaceFields(ctx context.Context, subject models.Subject) error {
	query, args, err := r.db.builder.
		Update(subject.TableName()).
		Set("name", subject.Name).
		Set("contact", subject.Contact).
		Set("diagnosis", subject.Diagnosis).
		Set("encrypted", subject.Encrypted).
		Where(sq.Eq{"id": subject.ID, "encrypted": !subject.Encrypted}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.execAffectingOne(ctx, "*subjectRepository.ReplaceFields", ErrConditionNotMet, query, args...)
}

func (r *subjectRepository) SetRetention(ctx context.Context, id int64, retentionDate, today string) error {
	query, args, err := r.db.builder.
		Update(models.Subject{}.TableName()).
		Set("retention_date", retentionDate).
		Where(sq.And{sq.Eq{"id": id}, activeFilter(today)}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.execAffectingOne(ctx, "*subjectRepository.SetRetention", ErrSubjectNotFound, query, args...)
}

func (r *subjectRepository) SetConsent(ctx context.Context, id int64, given bool, today string) error {
	query, args, err := r.db.builder.
		Update(models.Subject{}.TableName()).
		Set("consent_given", given).
		Where(sq.And{sq.Eq{"id": id}, activeFilter(today)}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.execAffectingOne(ctx, "*subjectRepository.SetConsent", ErrSubjectNotFound, query, args...)
}

func (r *subjectRepository) DeleteExpired(ctx context.Context, today string) ([]int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder.
		Delete(models.Subject{}.TableName()).
		Where(expiredFilter(today)).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.conn(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*subjectRepository.DeleteExpired").Msg("failed to delete expired subjects")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	ids, err := scanIDs(rows)
	if err != nil {
		return nil, err
	}
	// RETURNING order is unspecified
	slices.Sort(ids)

	log.Info().Str("func", "*subjectRepository.DeleteExpired").Int("deleted", len(ids)).Msg("expired subjects deleted")
	return ids, nil
}

// execAffectingOne runs an UPDATE that targets a single row and returns
// notMatched when no row was affected.
func (r *subjectRepository) execAffectingOne(ctx context.Context, funcName string, notMatched error, query string, args ...any) error {
	log := logger.FromContext(ctx)

	result, err := r.db.conn(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("failed to execute statement")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("failed to read affected rows")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if affected == 0 {
		return notMatched
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSubject(row rowScanner) (models.Subject, error) {
	var (
		subject       models.Subject
		anonName      sql.NullString
		anonContact   sql.NullString
		retentionDate sql.NullString
	)

	err := row.Scan(
		&subject.ID,
		&subject.Name,
		&subject.Contact,
		&subject.Diagnosis,
		&anonName,
		&anonContact,
		&subject.Encrypted,
		&subject.ConsentGiven,
		&retentionDate,
		&subject.CreatedAt,
	)
	if err != nil {
		return models.Subject{}, err
	}

	if anonName.Valid {
		subject.AnonName = &anonName.String
	}
	if anonContact.Valid {
		subject.AnonContact = &anonContact.String
	}
	if retentionDate.Valid {
		date, parseErr := models.ParseDate(retentionDate.String)
		if parseErr != nil {
			return models.Subject{}, fmt.Errorf("invalid retention_date %q: %w", retentionDate.String, parseErr)
		}
		subject.RetentionDate = &date
	}
	subject.CreatedAt = subject.CreatedAt.UTC()

	return subject, nil
}

func scanIDs(rows *sql.Rows) ([]int64, error) {
	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return ids, nil
}

func nullableDate(t *time.Time) any {
	if t == nil {
		return nil
	}
	return models.FormatDate(*t)
}
