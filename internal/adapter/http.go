package adapter

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"

	"github.com/MKhiriev/go-privacy-keeper/internal/config"
	"github.com/MKhiriev/go-privacy-keeper/internal/logger"
	"github.com/MKhiriev/go-privacy-keeper/internal/utils"
	"github.com/MKhiriev/go-privacy-keeper/models"
	"github.com/go-resty/resty/v2"
)

const traceIDHeader = "X-Trace-ID"

type httpServerAdapter struct {
	client *utils.HTTPClient

	token string

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs an HTTP/REST implementation of [ServerAdapter].
// It normalises and validates the base URL from adapterCfg.HTTPAddress and
// configures the underlying HTTP client with the resolved base URL and
// request timeout.
//
// Returns an error if adapterCfg.HTTPAddress is empty or cannot be parsed as a
// valid URL.
func NewHTTPServerAdapter(adapterCfg config.ClientAdapter, logger *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	return &httpServerAdapter{
		client: utils.NewHTTPClient(baseURL, adapterCfg.RequestTimeout),
		logger: logger,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SetToken implements [ServerAdapter]. It stores token (whitespace-trimmed) for
// use in the Authorization header of all subsequent authenticated requests.
func (h *httpServerAdapter) SetToken(token string) {
	h.token = strings.TrimSpace(token)
}

// Token implements [ServerAdapter].
func (h *httpServerAdapter) Token() string {
	return h.token
}

// Login implements [ServerAdapter]. It POSTs the credentials to
// POST /api/auth/login. The bearer token is taken from the Authorization
// response header and its claims are decoded without verification to fill
// UserID.
func (h *httpServerAdapter) Login(ctx context.Context, credentials models.User) (models.Token, error) {
	var token models.Token

	resp, err := h.request(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(credentials).
		SetResult(&token).
		Post("/api/auth/login")
	if err != nil {
		return models.Token{}, fmt.Errorf("login request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Token{}, err
	}

	signed, err := utils.ParseBearerToken(resp.Header().Get("Authorization"))
	if err != nil {
		return models.Token{}, fmt.Errorf("login parse bearer token: %w", err)
	}

	claims, err := utils.ParseClaimsUnverified(signed)
	if err != nil {
		return models.Token{}, fmt.Errorf("login parse token claims: %w", err)
	}

	token.Claims = claims
	token.SignedString = signed
	if token.UserID, err = token.GetUserID(); err != nil {
		return models.Token{}, err
	}
	if token.Role == models.RoleUnknown {
		token.Role = claims.Role
	}
	h.SetToken(signed)

	h.logger.Debug().Str("func", "*httpServerAdapter.Login").Str("role", token.Role.String()).Msg("logged in")
	return token, nil
}

// Version implements [ServerAdapter] via GET /api/version.
func (h *httpServerAdapter) Version(ctx context.Context) (string, error) {
	resp, err := h.request(ctx).Get("/api/version")
	if err != nil {
		return "", fmt.Errorf("version request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	return strings.TrimSpace(resp.String()), nil
}

// AddSubject implements [ServerAdapter] via POST /api/subjects.
func (h *httpServerAdapter) AddSubject(ctx context.Context, subject models.NewSubject) (int64, error) {
	var added models.AddSubjectResponse

	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(subject).
		SetResult(&added).
		Post("/api/subjects/")
	if err != nil {
		return 0, fmt.Errorf("add subject request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return 0, err
	}

	return added.ID, nil
}

// ListSubjects implements [ServerAdapter] via GET /api/subjects.
func (h *httpServerAdapter) ListSubjects(ctx context.Context) ([]models.SubjectView, error) {
	var views []models.SubjectView

	resp, err := h.authedRequest(ctx).SetResult(&views).Get("/api/subjects/")
	if err != nil {
		return nil, fmt.Errorf("list subjects request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return views, nil
}

// GetSubject implements [ServerAdapter] via GET /api/subjects/{id}.
func (h *httpServerAdapter) GetSubject(ctx context.Context, id int64) (models.SubjectView, error) {
	var view models.SubjectView

	resp, err := h.authedRequest(ctx).SetResult(&view).Get(subjectPath(id, ""))
	if err != nil {
		return models.SubjectView{}, fmt.Errorf("get subject request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.SubjectView{}, err
	}

	return view, nil
}

// AnonymizeAll implements [ServerAdapter] via POST /api/subjects/anonymize.
func (h *httpServerAdapter) AnonymizeAll(ctx context.Context) (int, error) {
	var count models.CountResponse

	resp, err := h.authedRequest(ctx).SetResult(&count).Post("/api/subjects/anonymize")
	if err != nil {
		return 0, fmt.Errorf("anonymize request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return 0, err
	}

	return count.Count, nil
}

// EncryptSubject implements [ServerAdapter] via POST /api/subjects/{id}/encrypt.
// Returns [ErrConflict] (wrapped) if the subject is already encrypted.
func (h *httpServerAdapter) EncryptSubject(ctx context.Context, id int64) error {
	resp, err := h.authedRequest(ctx).Post(subjectPath(id, "/encrypt"))
	if err != nil {
		return fmt.Errorf("encrypt request: %w", err)
	}

	return mapHTTPError(resp)
}

// DecryptSubject implements [ServerAdapter] via POST /api/subjects/{id}/decrypt.
func (h *httpServerAdapter) DecryptSubject(ctx context.Context, id int64) (models.DecryptedSubject, error) {
	var decrypted models.DecryptedSubject

	resp, err := h.authedRequest(ctx).SetResult(&decrypted).Post(subjectPath(id, "/decrypt"))
	if err != nil {
		return models.DecryptedSubject{}, fmt.Errorf("decrypt request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.DecryptedSubject{}, err
	}

	return decrypted, nil
}

// RestoreSubject implements [ServerAdapter] via POST /api/subjects/{id}/restore.
func (h *httpServerAdapter) RestoreSubject(ctx context.Context, id int64) error {
	resp, err := h.authedRequest(ctx).Post(subjectPath(id, "/restore"))
	if err != nil {
		return fmt.Errorf("restore request: %w", err)
	}

	return mapHTTPError(resp)
}

// SetRetention implements [ServerAdapter] via PUT /api/subjects/{id}/retention.
func (h *httpServerAdapter) SetRetention(ctx context.Context, id int64, days *int) error {
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(models.RetentionRequest{Days: days}).
		Put(subjectPath(id, "/retention"))
	if err != nil {
		return fmt.Errorf("set retention request: %w", err)
	}

	return mapHTTPError(resp)
}

// SetConsent implements [ServerAdapter] via PUT /api/subjects/{id}/consent.
func (h *httpServerAdapter) SetConsent(ctx context.Context, id int64, given bool) error {
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(models.ConsentRequest{Given: given}).
		Put(subjectPath(id, "/consent"))
	if err != nil {
		return fmt.Errorf("set consent request: %w", err)
	}

	return mapHTTPError(resp)
}

// ListExpired implements [ServerAdapter] via GET /api/retention/expired.
func (h *httpServerAdapter) ListExpired(ctx context.Context) ([]models.ExpiredSubject, error) {
	var expired models.ExpiredResponse

	resp, err := h.authedRequest(ctx).SetResult(&expired).Get("/api/retention/expired/")
	if err != nil {
		return nil, fmt.Errorf("list expired request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return expired.Expired, nil
}

// PurgeExpired implements [ServerAdapter] via DELETE /api/retention/expired.
func (h *httpServerAdapter) PurgeExpired(ctx context.Context) (int, error) {
	var count models.CountResponse

	resp, err := h.authedRequest(ctx).SetResult(&count).Delete("/api/retention/expired/")
	if err != nil {
		return 0, fmt.Errorf("purge request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return 0, err
	}

	return count.Count, nil
}

// AuditLog implements [ServerAdapter] via GET /api/audit.
func (h *httpServerAdapter) AuditLog(ctx context.Context, limit int) ([]models.AuditEntry, error) {
	var log models.AuditLogResponse

	req := h.authedRequest(ctx).SetResult(&log)
	if limit > 0 {
		req.SetQueryParam("limit", strconv.Itoa(limit))
	}

	resp, err := req.Get("/api/audit/")
	if err != nil {
		return nil, fmt.Errorf("audit log request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return log.Entries, nil
}

// ExportAuditLog implements [ServerAdapter] via GET /api/audit/export.
func (h *httpServerAdapter) ExportAuditLog(ctx context.Context, w io.Writer) error {
	resp, err := h.authedRequest(ctx).Get("/api/audit/export")
	if err != nil {
		return fmt.Errorf("export audit log request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return err
	}

	if _, err = w.Write(resp.Body()); err != nil {
		return fmt.Errorf("write audit export: %w", err)
	}
	return nil
}

// ActivityStats implements [ServerAdapter] via GET /api/audit/activity.
func (h *httpServerAdapter) ActivityStats(ctx context.Context, days int) ([]models.ActivityStat, error) {
	var stats []models.ActivityStat

	resp, err := h.authedRequest(ctx).
		SetQueryParam("days", strconv.Itoa(days)).
		SetResult(&stats).
		Get("/api/audit/activity")
	if err != nil {
		return nil, fmt.Errorf("activity request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return stats, nil
}

func (h *httpServerAdapter) request(ctx context.Context) *resty.Request {
	return h.client.R().
		SetContext(ctx).
		SetHeader(traceIDHeader, utils.NewTraceID())
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.request(ctx)
	if token := h.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}

func subjectPath(id int64, suffix string) string {
	return "/api/subjects/" + strconv.FormatInt(id, 10) + suffix
}
