package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-privacy-keeper/internal/config"
	"github.com/MKhiriev/go-privacy-keeper/internal/crypto"
	"github.com/MKhiriev/go-privacy-keeper/internal/logger"
	"github.com/MKhiriev/go-privacy-keeper/internal/metrics"
	"github.com/MKhiriev/go-privacy-keeper/internal/service"
	"github.com/MKhiriev/go-privacy-keeper/internal/store"
	"github.com/MKhiriev/go-privacy-keeper/models"
)

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

// plainHasher stands in for argon2id so tests stay fast.
type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) { return "plain$" + password, nil }

func (plainHasher) Verify(password, encoded string) (bool, error) {
	return encoded == "plain$"+password, nil
}

var testConfig = config.StructuredConfig{
	App: config.App{
		TokenSignKey:  "http-test-key",
		TokenIssuer:   "privacy-keeper-http-test",
		TokenDuration: time.Hour,
		Version:       "1.2.3",
	},
}

type testServer struct {
	*httptest.Server
	registry *prometheus.Registry
}

// newTestServer serves the full router over a migrated sqlite file with the
// default users seeded.
func newTestServer(t *testing.T) *testServer {
	t.Helper()
	ctx := context.Background()

	db, err := store.NewConnect(ctx, config.DB{
		Driver: config.DriverSQLite,
		DSN:    filepath.Join(t.TempDir(), "http.db"),
	}, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, db.Migrate())

	cipher, err := crypto.NewFieldCipher(bytes.Repeat([]byte{7}, 32))
	require.NoError(t, err)

	registry := prometheus.NewRegistry()
	m := metrics.New(registry)

	services, err := service.NewServices(store.NewStorages(db, logger.Nop()), cipher, plainHasher{}, m, testConfig, logger.Nop())
	require.NoError(t, err)
	require.NoError(t, services.AuthService.SeedDefaultUsers(ctx))

	srv := httptest.NewServer(NewHandler(services, m, logger.Nop()).Init(registry))
	t.Cleanup(srv.Close)

	return &testServer{Server: srv, registry: registry}
}

// do sends a request with an optional JSON body and bearer token.
func (s *testServer) do(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, s.URL+path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func (s *testServer) login(t *testing.T, username, password string) string {
	t.Helper()

	resp := s.do(t, http.MethodPost, "/api/auth/login", "", models.User{Username: username, Password: password})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var token models.Token
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&token))
	require.NotEmpty(t, token.SignedString)
	return token.SignedString
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}
