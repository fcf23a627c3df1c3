package http

import (
	"net/http"

	"github.com/cobaltgate/iam/internal/iam/domain"
	"github.com/cobaltgate/iam/internal/iam/service"
	"github.com/cobaltgate/iam/pkg/slogx"
)

// BootstrapTokenHeader carries the shared secret that gates superadmin
// creation when one is configured.
const BootstrapTokenHeader = "X-Bootstrap-Token"

type CreateSuperadminHandler struct {
	UserService *service.UserService
}

// ServeHTTP provisions a superadmin. The endpoint is unauthenticated by
// design (it creates the first identity of a tenant) and is protected by
// the bootstrap token plus the strict rate limit.
//
//	@Summary		Create a superadmin
//	@Description	Bootstrap endpoint for new tenants. Requires the X-Bootstrap-Token header when the service has one configured. The role field is ignored and forced to superadmin.
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Param			X-Bootstrap-Token	header		string		false	"Bootstrap secret"
//	@Param			request				body		userRequest	true	"New superadmin"
//	@Success		200					{object}	Envelope	"data holds the created user"
//	@Failure		400					{object}	Envelope	"Duplicate userid or invalid fields"
//	@Failure		401					{object}	Envelope	"Bootstrap token mismatch"
//	@Failure		500					{object}	Envelope	"Internal server error"
//	@Router			/create-superadmin [post].
func (h *CreateSuperadminHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req userRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	u, err := h.UserService.CreateSuperadmin(ctx, r.Header.Get(BootstrapTokenHeader), service.CreateUserInput{
		AppID:         req.AppID,
		UserID:        req.UserID,
		Username:      req.Username,
		Password:      req.Password,
		CompanyID:     req.CompanyID,
		CompanyName:   req.CompanyName,
		OTPService:    domain.OTPChannel(req.OTPService),
		AccountStatus: domain.AccountStatus(req.AccountStatus),
		Profile:       req.Profile,
		Mobile:        req.Mobile,
		ContactInfo:   req.ContactInfo,
		ContactPerson: req.ContactPerson,
	})
	if err != nil {
		log.Warn("superadmin creation rejected", "appid", req.AppID, "userid", req.UserID, "err", err)
		writeError(w, err)
		return
	}

	writeOK(w, "User created successful.", toUserPayload(u))
}
