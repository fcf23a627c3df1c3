package http

import (
	"errors"
	"net/http"

	"github.com/cobaltgate/iam/internal/iam/service"
	"github.com/cobaltgate/iam/pkg/httpx"
	"github.com/cobaltgate/iam/pkg/slogx"
)

type CheckOTPHandler struct {
	AuthService *service.AuthService
}

type checkOTPRequest struct {
	AppID      string `json:"appid"`
	UserID     string `json:"userid"`
	OTPCode    string `json:"otpcode"`
	OTPSession string `json:"otpsession"`
}

type checkOTPResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Token   string `json:"token"`
}

// ServeHTTP redeems an OTP challenge and finishes the login.
//
//	@Summary		Complete an OTP-gated login
//	@Description	Verifies the code against the pending challenge and issues the bearer token.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		checkOTPRequest		true	"Challenge redemption"
//	@Success		200		{object}	checkOTPResponse	"Bearer token"
//	@Failure		401		{object}	Envelope			"Invalid OTP"
//	@Failure		400		{object}	Envelope			"Token issuance failed"
//	@Failure		500		{object}	Envelope			"Internal server error"
//	@Router			/check-otp [post].
func (h *CheckOTPHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req checkOTPRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.AuthService.CompleteOTP(ctx, req.AppID, req.UserID, req.OTPSession, req.OTPCode)
	if err != nil {
		if !isExpectedAuthError(err) {
			log.Error("OTP completion failed", "appid", req.AppID, "userid", req.UserID, "err", err)
		}
		writeError(w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, checkOTPResponse{
		Code:    200,
		Message: "Successful.",
		Token:   result.Token,
	})
}

type ResendOTPHandler struct {
	OTPService *service.OTPService
}

type resendOTPRequest struct {
	AppID      string `json:"appid"`
	UserID     string `json:"userid"`
	OTPSession string `json:"otpsession"`
}

type resendOTPResponse struct {
	Code       int    `json:"code"`
	Message    string `json:"message"`
	OTPSession string `json:"otpsession"`
}

// ServeHTTP replaces a known challenge with a fresh one. The presented
// session only proves the caller came through login; the replacement is
// minted for the (appid, userid) pair.
//
//	@Summary		Resend a login OTP
//	@Description	Invalidates the presented challenge and issues a fresh one through the user's stored channel.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		resendOTPRequest	true	"Session to replace"
//	@Success		200		{object}	resendOTPResponse	"Fresh otpsession"
//	@Failure		401		{object}	Envelope			"Unknown otpsession"
//	@Failure		500		{object}	Envelope			"Internal server error"
//	@Router			/resend-otp [post].
func (h *ResendOTPHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req resendOTPRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	ok, err := h.OTPService.Exists(ctx, req.OTPSession)
	if err != nil {
		log.Error("OTP lookup failed", "err", err)
		writeError(w, err)
		return
	}
	if !ok {
		writeError(w, service.ErrUnauthorized)
		return
	}

	if err := h.OTPService.Invalidate(ctx, req.OTPSession); err != nil && !errors.Is(err, service.ErrInvalidOTP) {
		log.Error("OTP invalidation failed", "err", err)
		writeError(w, err)
		return
	}

	session, err := h.OTPService.Resend(ctx, req.AppID, req.UserID)
	if err != nil {
		log.Warn("OTP resend failed", "appid", req.AppID, "userid", req.UserID, "err", err)
		writeError(w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, resendOTPResponse{
		Code:       200,
		Message:    "Successful.",
		OTPSession: session,
	})
}
