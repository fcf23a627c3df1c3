package iam_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

// seedOTPUser provisions an email-gated account through the admin API.
func seedOTPUser(t *testing.T, srv *testServer, superToken string) {
	t.Helper()

	status, _ := srv.createUser(t, superToken, map[string]any{
		"userid":      "otp-user",
		"username":    "OTP User",
		"password":    "Otp123!",
		"companyid":   companyID,
		"companyname": companyName,
		"otpservice":  "email",
		"profile":     "otp-user@example.com",
	})
	require.Equal(t, http.StatusOK, status)
}

// otpCode reads the challenge code straight from storage; the mailer in
// tests only logs.
func otpCode(t *testing.T, srv *testServer, session string) string {
	t.Helper()

	challenge, err := srv.Store.OTPs().GetOTP(context.Background(), session)
	require.NoError(t, err)
	return challenge.Code
}

func TestOTPLoginFlow(t *testing.T) {
	srv := newTestServer(t)
	srv.bootstrapSuperadmin(t)
	superToken := srv.login(t, sadminUserID, sadminPass)
	seedOTPUser(t, srv, superToken)

	status, body := srv.doJSON(t, http.MethodPost, "/login", "", map[string]any{
		"appid":    appID,
		"userid":   "otp-user",
		"password": "Otp123!",
	})
	require.Equal(t, http.StatusOK, status)
	require.Empty(t, body["token"])

	session, _ := body["otpsession"].(string)
	require.NotEmpty(t, session)

	status, body = srv.doJSON(t, http.MethodPost, "/check-otp", "", map[string]any{
		"appid":      appID,
		"userid":     "otp-user",
		"otpsession": session,
		"otpcode":    otpCode(t, srv, session),
	})
	require.Equal(t, http.StatusOK, status)

	token, _ := body["token"].(string)
	require.NotEmpty(t, token)

	status, body = srv.doJSON(t, http.MethodPost, "/check-token", "", map[string]any{"token": token})
	require.Equal(t, http.StatusOK, status)
	data := body["data"].(map[string]any)
	require.Equal(t, "otp-user", data["userid"])
}

func TestOTPWrongCode(t *testing.T) {
	srv := newTestServer(t)
	srv.bootstrapSuperadmin(t)
	superToken := srv.login(t, sadminUserID, sadminPass)
	seedOTPUser(t, srv, superToken)

	status, body := srv.doJSON(t, http.MethodPost, "/login", "", map[string]any{
		"appid":    appID,
		"userid":   "otp-user",
		"password": "Otp123!",
	})
	require.Equal(t, http.StatusOK, status)
	session := body["otpsession"].(string)

	wrong := "000000"
	if otpCode(t, srv, session) == wrong {
		wrong = "000001"
	}
	status, body = srv.doJSON(t, http.MethodPost, "/check-otp", "", map[string]any{
		"appid":      appID,
		"userid":     "otp-user",
		"otpsession": session,
		"otpcode":    wrong,
	})
	require.Equal(t, http.StatusUnauthorized, status)
	require.Equal(t, "Invalid OTP.", body["message"])
}

func TestOTPResendFlow(t *testing.T) {
	srv := newTestServer(t)
	srv.bootstrapSuperadmin(t)
	superToken := srv.login(t, sadminUserID, sadminPass)
	seedOTPUser(t, srv, superToken)

	status, body := srv.doJSON(t, http.MethodPost, "/login", "", map[string]any{
		"appid":    appID,
		"userid":   "otp-user",
		"password": "Otp123!",
	})
	require.Equal(t, http.StatusOK, status)
	oldSession := body["otpsession"].(string)
	oldCode := otpCode(t, srv, oldSession)

	status, body = srv.doJSON(t, http.MethodPost, "/resend-otp", "", map[string]any{
		"appid":      appID,
		"userid":     "otp-user",
		"otpsession": oldSession,
	})
	require.Equal(t, http.StatusOK, status)
	newSession := body["otpsession"].(string)
	require.NotEmpty(t, newSession)
	require.NotEqual(t, oldSession, newSession)

	// The replaced challenge is dead.
	status, _ = srv.doJSON(t, http.MethodPost, "/check-otp", "", map[string]any{
		"appid":      appID,
		"userid":     "otp-user",
		"otpsession": oldSession,
		"otpcode":    oldCode,
	})
	require.Equal(t, http.StatusUnauthorized, status)

	// The fresh one redeems.
	status, body = srv.doJSON(t, http.MethodPost, "/check-otp", "", map[string]any{
		"appid":      appID,
		"userid":     "otp-user",
		"otpsession": newSession,
		"otpcode":    otpCode(t, srv, newSession),
	})
	require.Equal(t, http.StatusOK, status)
	require.NotEmpty(t, body["token"])
}

func TestOTPResendUnknownSession(t *testing.T) {
	srv := newTestServer(t)

	status, body := srv.doJSON(t, http.MethodPost, "/resend-otp", "", map[string]any{
		"appid":      appID,
		"userid":     "otp-user",
		"otpsession": "01JXXXXXXXXXXXXXXXXXXXXXXX",
	})
	require.Equal(t, http.StatusUnauthorized, status)
	require.Equal(t, "Unauthorized.", body["message"])
}
