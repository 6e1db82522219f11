// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MKhiriev/go-privacy-keeper/internal/config"
	"github.com/MKhiriev/go-privacy-keeper/internal/logger"
	"github.com/MKhiriev/go-privacy-keeper/internal/utils"
	"github.com/MKhiriev/go-privacy-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestAdapter creates an httpServerAdapter pointed at the test server.
func newTestAdapter(t *testing.T, serverURL string) *httpServerAdapter {
	t.Helper()
	adapterCfg := config.ClientAdapter{HTTPAddress: serverURL, RequestTimeout: 5 * time.Second}

	a, err := NewHTTPServerAdapter(adapterCfg, logger.Nop())
	require.NoError(t, err)
	return a.(*httpServerAdapter)
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

// ── Login ───────────────────────────────────────────────────────────────────

func TestLogin_Success(t *testing.T) {
	issued, err := utils.GenerateJWTToken("test", models.Actor{ID: 7, Role: models.RoleDoctor}, time.Hour, "key")
	require.NoError(t, err)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/auth/login", r.URL.Path)
		assert.NotEmpty(t, r.Header.Get(traceIDHeader))

		var creds models.User
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		assert.Equal(t, "dr_bob", creds.Username)
		assert.Equal(t, "doctor123", creds.Password)

		w.Header().Set("Authorization", "Bearer "+issued.SignedString)
		writeJSON(t, w, http.StatusOK, issued)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	token, err := a.Login(context.Background(), models.User{Username: "dr_bob", Password: "doctor123"})

	require.NoError(t, err)
	assert.Equal(t, issued.SignedString, token.SignedString)
	assert.Equal(t, int64(7), token.UserID)
	assert.Equal(t, models.RoleDoctor, token.Role)
	assert.Equal(t, issued.SignedString, a.Token())
}

func TestLogin_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "authentication failed", http.StatusUnauthorized)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	_, err := a.Login(context.Background(), models.User{Username: "admin", Password: "wrong"})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Contains(t, err.Error(), "authentication failed")
	assert.Empty(t, a.Token())
}

func TestLogin_MissingAuthorizationHeader(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, map[string]string{"role": "admin"})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	_, err := a.Login(context.Background(), models.User{Username: "admin", Password: "admin123"})

	require.Error(t, err)
	assert.Empty(t, a.Token())
}

// ── Version ─────────────────────────────────────────────────────────────────

func TestVersion(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/version", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))
		_, _ = w.Write([]byte("1.2.3\n"))
	}))
	defer srv.Close()

	got, err := newTestAdapter(t, srv.URL).Version(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "1.2.3", got)
}

// ── Subjects ────────────────────────────────────────────────────────────────

func TestAddSubject_SendsBearerToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/subjects/", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

		var subject models.NewSubject
		require.NoError(t, json.NewDecoder(r.Body).Decode(&subject))
		assert.Equal(t, "John Doe", subject.Name)

		writeJSON(t, w, http.StatusCreated, models.AddSubjectResponse{ID: 42})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	a.SetToken(" tok ")

	id, err := a.AddSubject(context.Background(), models.NewSubject{Name: "John Doe", Contact: "john@x.com", Diagnosis: "Flu"})

	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
}

func TestAddSubject_Forbidden(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "forbidden", http.StatusForbidden)
	}))
	defer srv.Close()

	_, err := newTestAdapter(t, srv.URL).AddSubject(context.Background(), models.NewSubject{Name: "x"})

	assert.ErrorIs(t, err, ErrForbidden)
}

func TestListSubjects(t *testing.T) {
	anon := "J*** D**"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		writeJSON(t, w, http.StatusOK, []models.SubjectView{{ID: 1, AnonName: &anon}, {ID: 2}})
	}))
	defer srv.Close()

	views, err := newTestAdapter(t, srv.URL).ListSubjects(context.Background())

	require.NoError(t, err)
	require.Len(t, views, 2)
	require.NotNil(t, views[0].AnonName)
	assert.Equal(t, anon, *views[0].AnonName)
	assert.Nil(t, views[0].Name)
}

func TestGetSubject_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/subjects/99", r.URL.Path)
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := newTestAdapter(t, srv.URL).GetSubject(context.Background(), 99)

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAnonymizeAll(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/subjects/anonymize", r.URL.Path)
		writeJSON(t, w, http.StatusOK, models.CountResponse{Count: 3})
	}))
	defer srv.Close()

	n, err := newTestAdapter(t, srv.URL).AnonymizeAll(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestEncryptSubject_Conflict(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/subjects/5/encrypt", r.URL.Path)
		http.Error(w, "subject already encrypted", http.StatusConflict)
	}))
	defer srv.Close()

	err := newTestAdapter(t, srv.URL).EncryptSubject(context.Background(), 5)

	assert.ErrorIs(t, err, ErrConflict)
}

func TestDecryptSubject(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/subjects/5/decrypt", r.URL.Path)
		writeJSON(t, w, http.StatusOK, models.DecryptedSubject{ID: 5, Name: "John Doe", Contact: "john@x.com", Diagnosis: "Flu"})
	}))
	defer srv.Close()

	got, err := newTestAdapter(t, srv.URL).DecryptSubject(context.Background(), 5)

	require.NoError(t, err)
	assert.Equal(t, "Flu", got.Diagnosis)
}

func TestDecryptSubject_Unprocessable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "decryption failed", http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	_, err := newTestAdapter(t, srv.URL).DecryptSubject(context.Background(), 5)

	assert.ErrorIs(t, err, ErrUnprocessable)
}

func TestRestoreSubject(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/subjects/5/restore", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	assert.NoError(t, newTestAdapter(t, srv.URL).RestoreSubject(context.Background(), 5))
}

func TestSetRetention(t *testing.T) {
	days := 30
	tests := []struct {
		name string
		days *int
		body string
	}{
		{name: "explicit days", days: &days, body: `{"days":30}`},
		{name: "server default", days: nil, body: `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPut, r.Method)
				assert.Equal(t, "/api/subjects/3/retention", r.URL.Path)
				body, _ := io.ReadAll(r.Body)
				assert.JSONEq(t, tt.body, string(body))
				w.WriteHeader(http.StatusNoContent)
			}))
			defer srv.Close()

			assert.NoError(t, newTestAdapter(t, srv.URL).SetRetention(context.Background(), 3, tt.days))
		})
	}
}

func TestSetRetention_BadRequest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid argument: days must be positive", http.StatusBadRequest)
	}))
	defer srv.Close()

	days := -1
	err := newTestAdapter(t, srv.URL).SetRetention(context.Background(), 3, &days)

	assert.ErrorIs(t, err, ErrBadRequest)
}

func TestSetConsent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/subjects/3/consent", r.URL.Path)
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"given":true}`, string(body))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	assert.NoError(t, newTestAdapter(t, srv.URL).SetConsent(context.Background(), 3, true))
}

// ── Retention ───────────────────────────────────────────────────────────────

func TestListExpired(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/retention/expired/", r.URL.Path)
		writeJSON(t, w, http.StatusOK, models.ExpiredResponse{
			Expired: []models.ExpiredSubject{{ID: 1, Label: "J*** D**", RetentionDate: "2026-01-01"}},
			Length:  1,
		})
	}))
	defer srv.Close()

	expired, err := newTestAdapter(t, srv.URL).ListExpired(context.Background())

	require.NoError(t, err)
	require.Len(t, expired, 1)
	assert.Equal(t, "2026-01-01", expired[0].RetentionDate)
}

func TestPurgeExpired(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		writeJSON(t, w, http.StatusOK, models.CountResponse{Count: 2})
	}))
	defer srv.Close()

	n, err := newTestAdapter(t, srv.URL).PurgeExpired(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

// ── Audit ───────────────────────────────────────────────────────────────────

func TestAuditLog_Limit(t *testing.T) {
	tests := []struct {
		name      string
		limit     int
		wantQuery string
	}{
		{name: "with limit", limit: 5, wantQuery: "limit=5"},
		{name: "every entry", limit: 0, wantQuery: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, tt.wantQuery, r.URL.RawQuery)
				writeJSON(t, w, http.StatusOK, models.AuditLogResponse{
					Entries: []models.AuditEntry{{ID: 2, Action: models.ActionLogin, Outcome: models.OutcomeSuccess}},
					Length:  1,
				})
			}))
			defer srv.Close()

			entries, err := newTestAdapter(t, srv.URL).AuditLog(context.Background(), tt.limit)

			require.NoError(t, err)
			require.Len(t, entries, 1)
			assert.Equal(t, models.ActionLogin, entries[0].Action)
		})
	}
}

func TestExportAuditLog(t *testing.T) {
	const csv = "id,timestamp,actor_id,actor_role,action,outcome,detail\n1,2026-03-10T09:00:00Z,1,admin,login,success,\n"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/audit/export", r.URL.Path)
		w.Header().Set("Content-Type", "text/csv")
		_, _ = w.Write([]byte(csv))
	}))
	defer srv.Close()

	var buf bytes.Buffer
	require.NoError(t, newTestAdapter(t, srv.URL).ExportAuditLog(context.Background(), &buf))
	assert.Equal(t, csv, buf.String())
}

func TestExportAuditLog_Forbidden(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "forbidden", http.StatusForbidden)
	}))
	defer srv.Close()

	var buf bytes.Buffer
	err := newTestAdapter(t, srv.URL).ExportAuditLog(context.Background(), &buf)

	assert.ErrorIs(t, err, ErrForbidden)
	assert.Zero(t, buf.Len())
}

func TestActivityStats(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "days=3", r.URL.RawQuery)
		writeJSON(t, w, http.StatusOK, []models.ActivityStat{
			{Date: "2026-03-08", Count: 0},
			{Date: "2026-03-09", Count: 4},
			{Date: "2026-03-10", Count: 1},
		})
	}))
	defer srv.Close()

	stats, err := newTestAdapter(t, srv.URL).ActivityStats(context.Background(), 3)

	require.NoError(t, err)
	require.Len(t, stats, 3)
	assert.Equal(t, int64(4), stats[1].Count)
}

func TestActivityStats_InternalServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "internal error", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := newTestAdapter(t, srv.URL).ActivityStats(context.Background(), 3)

	assert.ErrorIs(t, err, ErrInternalServerError)
}

// ── helpers ─────────────────────────────────────────────────────────────────

func TestMapHTTPError_UnknownStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	defer srv.Close()

	_, err := newTestAdapter(t, srv.URL).Version(context.Background())

	require.Error(t, err)
	assert.Equal(t, "http 418: I'm a teapot", err.Error())
}

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{name: "full url", raw: "http://localhost:8080", want: "http://localhost:8080"},
		{name: "trailing slash", raw: "https://keeper.example.com/", want: "https://keeper.example.com"},
		{name: "no scheme", raw: "localhost:8080", want: "http://localhost:8080"},
		{name: "whitespace", raw: "  http://localhost:8080  ", want: "http://localhost:8080"},
		{name: "empty", raw: "", wantErr: true},
		{name: "scheme only", raw: "http://", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := normalizeBaseURL(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewHTTPServerAdapter_InvalidAddress(t *testing.T) {
	_, err := NewHTTPServerAdapter(config.ClientAdapter{}, logger.Nop())
	assert.Error(t, err)
}
