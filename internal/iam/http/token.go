package http

import (
	"net/http"

	"github.com/cobaltgate/iam/internal/iam/service"
)

type CheckTokenHandler struct {
	AuthService *service.AuthService
}

type checkTokenRequest struct {
	Token string `json:"token"`
}

// tokenIdentity is the identity payload of a successful check. All fields
// reflect current storage, not the claims the token was minted with.
type tokenIdentity struct {
	UserID      string `json:"userid"`
	AppID       string `json:"appid"`
	CompanyID   string `json:"companyid"`
	CompanyName string `json:"companyname"`
	Username    string `json:"username"`
	Role        string `json:"role"`
}

// ServeHTTP validates a bearer token for a relying service.
//
//	@Summary		Validate a bearer token
//	@Description	Checks signature and expiry, then re-resolves the subject so the returned role and company are current.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		checkTokenRequest	true	"Token to validate"
//	@Success		200		{object}	Envelope			"data holds the current identity"
//	@Failure		401		{object}	Envelope			"Invalid Token"
//	@Failure		500		{object}	Envelope			"Internal server error"
//	@Router			/check-token [post].
func (h *CheckTokenHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req checkTokenRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	identity, err := h.AuthService.VerifyToken(r.Context(), req.Token)
	if err != nil {
		writeError(w, err)
		return
	}

	writeOK(w, "Successful.", tokenIdentity{
		UserID:      identity.UserID,
		AppID:       identity.AppID,
		CompanyID:   identity.CompanyID,
		CompanyName: identity.CompanyName,
		Username:    identity.Username,
		Role:        string(identity.Role),
	})
}
