package http

import (
	"errors"
	"net/http"

	"github.com/cobaltgate/iam/internal/iam/service"
	"github.com/cobaltgate/iam/pkg/httpx"
	"github.com/cobaltgate/iam/pkg/slogx"
)

type LoginHandler struct {
	AuthService *service.AuthService
}

type loginRequest struct {
	AppID    string `json:"appid"`
	UserID   string `json:"userid"`
	Password string `json:"password"`
}

type loginResponse struct {
	Code       int    `json:"code"`
	Message    string `json:"message"`
	OTPSession string `json:"otpsession"`
	Token      string `json:"token"`
	Profile    string `json:"profile,omitempty"`
}

// ServeHTTP handles password login. Users with an OTP channel get back an
// otpsession and an empty token; everyone else gets a token immediately.
//
//	@Summary		Log in with appid-scoped credentials
//	@Description	Checks the password and either opens an OTP challenge or issues a bearer token, depending on the user's otpservice setting.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		loginRequest	true	"Credentials"
//	@Success		200		{object}	loginResponse	"otpsession XOR token is set"
//	@Failure		401		{object}	Envelope		"Unknown userid, wrong password, or frozen account"
//	@Failure		500		{object}	Envelope		"Internal server error"
//	@Router			/login [post].
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.AuthService.Login(ctx, req.AppID, req.UserID, req.Password)
	if err != nil {
		if !isExpectedAuthError(err) {
			log.Error("login failed", "appid", req.AppID, "userid", req.UserID, "err", err)
		}
		writeError(w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, loginResponse{
		Code:       200,
		Message:    "Successful.",
		OTPSession: result.OTPSession,
		Token:      result.Token,
		Profile:    result.Profile,
	})
}

// isExpectedAuthError separates deliberate denials from real faults so the
// log stays quiet under credential guessing.
func isExpectedAuthError(err error) bool {
	return errors.Is(err, service.ErrUseridNotExist) ||
		errors.Is(err, service.ErrPasswordIncorrect) ||
		errors.Is(err, service.ErrAccountFrozen) ||
		errors.Is(err, service.ErrInvalidOTP) ||
		errors.Is(err, service.ErrInvalidToken) ||
		errors.Is(err, service.ErrTokenIssuance)
}
