package iam_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	httpapi "github.com/cobaltgate/iam/internal/iam/http"
	"github.com/cobaltgate/iam/internal/iam/service"
	"github.com/cobaltgate/iam/internal/iam/store/drivers/sqlite"
	"github.com/cobaltgate/iam/pkg/cryptox"
	"github.com/cobaltgate/iam/pkg/httpx"
	"github.com/cobaltgate/iam/pkg/jwtx"
	"github.com/cobaltgate/iam/pkg/mailx"
	"github.com/stretchr/testify/require"
)

/*
 * End-to-end tests run the real router over httptest with an in-memory
 * store. Rate limits are relaxed via the RATELIMIT_* overrides so the
 * credential endpoints don't throttle the suite.
 */

const (
	bootstrapToken = "test-bootstrap-token-12345"
	tokenSecret    = "test-token-secret"
	issuer         = "iam-e2e"

	appID         = "app-e2e"
	sadminUserID  = "root"
	sadminPass    = "Root123!"
	adminUserID   = "acme-admin"
	adminPass     = "Admin123!"
	companyID     = "acme"
	companyName   = "Acme Corp"
)

// TestMain relaxes the shared rate-limit profiles (their env overrides are
// read before TestMain runs, so the exported vars are set directly) and
// isolates the password pepper.
func TestMain(m *testing.M) {
	httpx.StrictLimit = httpx.RateLimitConfig{RequestsPerWindow: 1000, Window: time.Minute, Burst: 1000}
	httpx.ModerateLimit = httpx.RateLimitConfig{RequestsPerWindow: 1000, Window: time.Minute, Burst: 1000}

	dir, err := os.MkdirTemp("", "iam-e2e")
	if err != nil {
		panic(err)
	}
	cryptox.SetPepperPath(filepath.Join(dir, "pepper.test"))

	code := m.Run()
	_ = os.RemoveAll(dir)
	os.Exit(code)
}

type testServer struct {
	*httptest.Server

	Store *sqlite.Store
	OTP   *service.OTPService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	signer, err := jwtx.NewSignerHS256([]byte(tokenSecret))
	require.NoError(t, err)
	verifier, err := jwtx.NewVerifierHS256([]byte(tokenSecret), issuer)
	require.NoError(t, err)

	otp := &service.OTPService{Store: st, Mailer: &mailx.LogMailer{Logger: slog.Default()}}
	auth := &service.AuthService{
		Store:    st,
		Signer:   signer,
		Verifier: verifier,
		OTP:      otp,
		Issuer:   issuer,
	}
	users := &service.UserService{Store: st, BootstrapToken: bootstrapToken}

	router := httpapi.NewRouter("e2e", st, slog.Default())
	router.AuthService = auth
	router.OTPService = otp
	router.UserService = users
	router.ApplyRoutes()

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return &testServer{Server: srv, Store: st, OTP: otp}
}

// doJSON sends a JSON request and decodes the response body into a generic
// map for assertions.
func (s *testServer) doJSON(t *testing.T, method, path, token string, body any) (int, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, s.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp.StatusCode, decoded
}

// bootstrapSuperadmin creates the tenant's superadmin through the public
// endpoint and returns its credentials for the test to log in with.
func (s *testServer) bootstrapSuperadmin(t *testing.T) {
	t.Helper()

	req, err := http.NewRequest(http.MethodPost, s.URL+"/create-superadmin", bytes.NewReader(mustJSON(t, map[string]any{
		"appid":    appID,
		"userid":   sadminUserID,
		"username": "Root",
		"password": sadminPass,
	})))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(httpapi.BootstrapTokenHeader, bootstrapToken)

	resp, err := s.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

// login performs a password login and returns the issued token. Fails the
// test when the account is OTP-gated; use loginOTP for those.
func (s *testServer) login(t *testing.T, userID, password string) string {
	t.Helper()

	status, body := s.doJSON(t, http.MethodPost, "/login", "", map[string]any{
		"appid":    appID,
		"userid":   userID,
		"password": password,
	})
	require.Equal(t, http.StatusOK, status)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return token
}

// createUser provisions a user via the admin API.
func (s *testServer) createUser(t *testing.T, token string, fields map[string]any) (int, map[string]any) {
	t.Helper()
	return s.doJSON(t, http.MethodPost, "/users", token, fields)
}

func mustJSON(t *testing.T, v any) []byte {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	return raw
}
