package http

import (
	"net/http"

	"github.com/cobaltgate/iam/internal/iam/service"
)

type CompanyRosterHandler struct {
	UserService *service.UserService
}

// ServeHTTP groups the caller's visible users by company.
//
//	@Summary		List companies and their users
//	@Description	Returns every visible user grouped under their company. Admins see only their own company; superadmins see all companies of the appid.
//	@Tags			Users
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	Envelope	"data holds [{companyid, companyname, users}]"
//	@Failure		401	{object}	Envelope	"Missing token or insufficient role"
//	@Failure		500	{object}	Envelope	"Internal server error"
//	@Router			/company-and-user [get].
func (h *CompanyRosterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	actor, ok := identityFrom(ctx)
	if !ok {
		writeError(w, service.ErrInvalidToken)
		return
	}

	roster, err := h.UserService.CompanyRoster(ctx, actor)
	if err != nil {
		writeError(w, err)
		return
	}

	writeOK(w, "Successful.", roster)
}
