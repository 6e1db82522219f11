package http

import (
	"encoding/csv"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-privacy-keeper/models"
)

// ─────────────────────────────────────────────
// End-to-end over the router
// ─────────────────────────────────────────────

func TestRoutes_Login(t *testing.T) {
	srv := newTestServer(t)

	resp := srv.do(t, http.MethodPost, "/api/auth/login", "", models.User{Username: "admin", Password: "admin123"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Authorization"), "Bearer ")
	assert.NotEmpty(t, resp.Header.Get(traceIDHeader))

	token := decode[models.Token](t, resp)
	assert.Equal(t, models.RoleAdmin, token.Role)
}

func TestRoutes_LoginFailures(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name string
		body any
		want int
	}{
		{"wrong password", models.User{Username: "admin", Password: "nope"}, http.StatusUnauthorized},
		{"unknown user", models.User{Username: "ghost", Password: "x"}, http.StatusUnauthorized},
		{"empty credentials", models.User{}, http.StatusBadRequest},
		{"unknown field", map[string]string{"login": "admin"}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := srv.do(t, http.MethodPost, "/api/auth/login", "", tt.body)
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}

func TestRoutes_RequireToken(t *testing.T) {
	srv := newTestServer(t)

	resp := srv.do(t, http.MethodGet, "/api/subjects", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = srv.do(t, http.MethodGet, "/api/subjects", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRoutes_SubjectLifecycle(t *testing.T) {
	srv := newTestServer(t)
	adminToken := srv.login(t, "admin", "admin123")
	docToken := srv.login(t, "dr_bob", "doc123")
	recToken := srv.login(t, "alice", "rec123")

	// receptionist registers
	resp := srv.do(t, http.MethodPost, "/api/subjects", recToken, models.NewSubject{
		Name: "John Doe", Contact: "0300-1234567", Diagnosis: "Flu",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[models.AddSubjectResponse](t, resp)
	require.Equal(t, int64(1), created.ID)

	// doctor cannot register
	resp = srv.do(t, http.MethodPost, "/api/subjects", docToken, models.NewSubject{Name: "X", Contact: "1"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// invalid input
	resp = srv.do(t, http.MethodPost, "/api/subjects", recToken, models.NewSubject{Name: "", Contact: "1"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// receptionist view hides diagnosis and real identity
	resp = srv.do(t, http.MethodGet, "/api/subjects/1", recToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"anon_name":"ANON_1"`)
	assert.NotContains(t, string(raw), "John")
	assert.NotContains(t, string(raw), "diagnosis")

	// doctor list shows diagnosis
	resp = srv.do(t, http.MethodGet, "/api/subjects", docToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	views := decode[[]models.SubjectView](t, resp)
	require.Len(t, views, 1)
	assert.Equal(t, "Flu", *views[0].Diagnosis)
	assert.Nil(t, views[0].Name)

	// encrypt, double encrypt, decrypt, restore
	resp = srv.do(t, http.MethodPost, "/api/subjects/1/encrypt", adminToken, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = srv.do(t, http.MethodPost, "/api/subjects/1/encrypt", adminToken, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = srv.do(t, http.MethodPost, "/api/subjects/1/decrypt", adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "no-store", resp.Header.Get("Cache-Control"))
	plain := decode[models.DecryptedSubject](t, resp)
	assert.Equal(t, "John Doe", plain.Name)

	resp = srv.do(t, http.MethodPost, "/api/subjects/1/restore", adminToken, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = srv.do(t, http.MethodPost, "/api/subjects/1/restore", adminToken, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// consent and anonymization sweep
	resp = srv.do(t, http.MethodPut, "/api/subjects/1/consent", adminToken, models.ConsentRequest{Given: true})
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = srv.do(t, http.MethodPost, "/api/subjects/anonymize", adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, decode[models.CountResponse](t, resp).Count)

	// unknown and malformed ids
	resp = srv.do(t, http.MethodGet, "/api/subjects/42", adminToken, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = srv.do(t, http.MethodGet, "/api/subjects/abc", adminToken, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRoutes_Retention(t *testing.T) {
	srv := newTestServer(t)
	adminToken := srv.login(t, "admin", "admin123")

	resp := srv.do(t, http.MethodPost, "/api/subjects", adminToken, models.NewSubject{Name: "A", Contact: "555-0100"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	zero := 0
	resp = srv.do(t, http.MethodPut, "/api/subjects/1/retention", adminToken, models.RetentionRequest{Days: &zero})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// omitted days falls back to the default period
	resp = srv.do(t, http.MethodPut, "/api/subjects/1/retention", adminToken, map[string]any{})
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = srv.do(t, http.MethodPut, "/api/subjects/1/retention", adminToken, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = srv.do(t, http.MethodGet, "/api/retention/expired", adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	expired := decode[models.ExpiredResponse](t, resp)
	assert.Zero(t, expired.Length)
	assert.NotNil(t, expired.Expired)

	resp = srv.do(t, http.MethodDelete, "/api/retention/expired", adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 0, decode[models.CountResponse](t, resp).Count)

	docToken := srv.login(t, "dr_bob", "doc123")
	resp = srv.do(t, http.MethodDelete, "/api/retention/expired", docToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestRoutes_Audit(t *testing.T) {
	srv := newTestServer(t)
	adminToken := srv.login(t, "admin", "admin123")

	resp := srv.do(t, http.MethodGet, "/api/audit?limit=1", adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	log := decode[models.AuditLogResponse](t, resp)
	require.Equal(t, 1, log.Length)
	assert.Equal(t, models.ActionLogin, log.Entries[0].Action)

	resp = srv.do(t, http.MethodGet, "/api/audit?limit=-1", adminToken, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = srv.do(t, http.MethodGet, "/api/audit?limit=x", adminToken, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = srv.do(t, http.MethodGet, "/api/audit/export", adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/csv", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "attachment")
	rows, err := csv.NewReader(resp.Body).ReadAll()
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(rows), 2)
	assert.Equal(t, "id", rows[0][0])

	resp = srv.do(t, http.MethodGet, "/api/audit/activity", adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	stats := decode[[]models.ActivityStat](t, resp)
	require.Len(t, stats, defaultActivityDays)
	assert.Positive(t, stats[len(stats)-1].Count)

	resp = srv.do(t, http.MethodGet, "/api/audit/activity?days=0", adminToken, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	recToken := srv.login(t, "alice", "rec123")
	resp = srv.do(t, http.MethodGet, "/api/audit", recToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestRoutes_VersionAndMetrics(t *testing.T) {
	srv := newTestServer(t)

	resp := srv.do(t, http.MethodGet, "/api/version", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "1.2.3", string(body))
	assert.Equal(t, "N/A", resp.Header.Get(buildDateHeader))
	assert.Equal(t, "N/A", resp.Header.Get(buildCommitHeader))

	srv.login(t, "admin", "admin123")

	resp = srv.do(t, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err = io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `privacy_keeper_operations_total{action="login",outcome="success"} 1`)
}

func TestRoutes_UnknownMethodIsNotFound(t *testing.T) {
	srv := newTestServer(t)

	resp := srv.do(t, http.MethodDelete, "/api/version", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
