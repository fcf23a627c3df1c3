package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/cobaltgate/iam/internal/iam/domain"
	"github.com/cobaltgate/iam/internal/iam/service"
	"github.com/cobaltgate/iam/pkg/httpx"
	"github.com/cobaltgate/iam/pkg/slogx"
)

// userRequest is the settable field set for create and update. Password is
// write-only; it never appears in any response.
type userRequest struct {
	AppID         string `json:"appid"`
	UserID        string `json:"userid"`
	Username      string `json:"username"`
	Password      string `json:"password"`
	CompanyID     string `json:"companyid"`
	CompanyName   string `json:"companyname"`
	OTPService    string `json:"otpservice"`
	Role          string `json:"role"`
	AccountStatus string `json:"accountstatus"`
	Profile       string `json:"profile"`
	Mobile        string `json:"mobile"`
	ContactInfo   string `json:"contactinfo"`
	ContactPerson string `json:"contactperson"`
}

// userPayload is the readable projection of a user. The password hash stays
// server-side.
type userPayload struct {
	UserID        string    `json:"userid"`
	Username      string    `json:"username"`
	AppID         string    `json:"appid"`
	CompanyID     string    `json:"companyid"`
	CompanyName   string    `json:"companyname"`
	OTPService    string    `json:"otpservice"`
	Role          string    `json:"role"`
	AccountStatus string    `json:"accountstatus"`
	Profile       string    `json:"profile"`
	Mobile        string    `json:"mobile"`
	ContactInfo   string    `json:"contactinfo"`
	ContactPerson string    `json:"contactperson"`
	CreatedAt     time.Time `json:"createdat"`
	UpdatedAt     time.Time `json:"updatedat"`
}

func toUserPayload(u domain.User) userPayload {
	return userPayload{
		UserID:        u.UserID,
		Username:      u.Username,
		AppID:         u.AppID,
		CompanyID:     u.CompanyID,
		CompanyName:   u.CompanyName,
		OTPService:    string(u.OTPService),
		Role:          string(u.Role),
		AccountStatus: string(u.AccountStatus),
		Profile:       u.Profile,
		Mobile:        u.Mobile,
		ContactInfo:   u.ContactInfo,
		ContactPerson: u.ContactPerson,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}

type UsersHandler struct {
	UserService *service.UserService
}

// HandleCreate provisions a user on behalf of the authenticated caller.
//
//	@Summary		Create a user
//	@Description	Admins may only create normal users inside their own company; superadmins are unrestricted.
//	@Tags			Users
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		userRequest	true	"New user"
//	@Success		200		{object}	Envelope	"data holds the created user"
//	@Failure		400		{object}	Envelope	"Duplicate userid or invalid fields"
//	@Failure		401		{object}	Envelope	"Missing token or insufficient role"
//	@Failure		500		{object}	Envelope	"Internal server error"
//	@Router			/users [post].
func (h *UsersHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	actor, ok := identityFrom(ctx)
	if !ok {
		writeError(w, service.ErrInvalidToken)
		return
	}

	var req userRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	u, err := h.UserService.Create(ctx, actor, service.CreateUserInput{
		AppID:         actor.AppID,
		UserID:        req.UserID,
		Username:      req.Username,
		Password:      req.Password,
		CompanyID:     req.CompanyID,
		CompanyName:   req.CompanyName,
		OTPService:    domain.OTPChannel(req.OTPService),
		Role:          domain.Role(req.Role),
		AccountStatus: domain.AccountStatus(req.AccountStatus),
		Profile:       req.Profile,
		Mobile:        req.Mobile,
		ContactInfo:   req.ContactInfo,
		ContactPerson: req.ContactPerson,
	})
	if err != nil {
		log.Warn("user creation rejected", "userid", req.UserID, "err", err)
		writeError(w, err)
		return
	}

	writeOK(w, "User created successful.", toUserPayload(u))
}

// listResponse keeps pagination bookkeeping beside the page, matching the
// flat shape clients already parse.
type listResponse struct {
	Code      int           `json:"code"`
	Message   string        `json:"message"`
	Data      []userPayload `json:"data"`
	Page      int           `json:"page"`
	PerPage   int           `json:"perpage"`
	Total     int64         `json:"total"`
	PageCount int           `json:"pagecount"`
}

// HandleList returns users inside the caller's visibility.
//
//	@Summary		List users
//	@Description	Superadmins see every user of their appid; admins see their own company minus superadmins.
//	@Tags			Users
//	@Security		BearerAuth
//	@Produce		json
//	@Param			search	query		string	false	"Free-text filter"
//	@Param			sortby	query		string	false	"Sort column (userid, username, companyid, companyname, role, accountstatus, createdat, updatedat)"
//	@Param			reverse	query		bool	false	"Descending sort"
//	@Param			page	query		int		false	"1-indexed page; omit to fetch everything"
//	@Param			perpage	query		int		false	"Page size"
//	@Success		200		{object}	listResponse
//	@Failure		401		{object}	Envelope	"Missing token or insufficient role"
//	@Failure		500		{object}	Envelope	"Internal server error"
//	@Router			/users [get].
func (h *UsersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	actor, ok := identityFrom(ctx)
	if !ok {
		writeError(w, service.ErrInvalidToken)
		return
	}

	query := r.URL.Query()
	page, _ := strconv.Atoi(query.Get("page"))
	perPage, _ := strconv.Atoi(query.Get("perpage"))
	reverse, _ := strconv.ParseBool(query.Get("reverse"))

	result, err := h.UserService.List(ctx, actor, domain.ListQuery{
		Search:  query.Get("search"),
		SortBy:  query.Get("sortby"),
		Reverse: reverse,
		Page:    page,
		PerPage: perPage,
	})
	if err != nil {
		log.Warn("user listing rejected", "err", err)
		writeError(w, err)
		return
	}

	payload := make([]userPayload, 0, len(result.Users))
	for _, u := range result.Users {
		payload = append(payload, toUserPayload(u))
	}

	httpx.WriteJSON(w, http.StatusOK, listResponse{
		Code:      200,
		Message:   "Successful.",
		Data:      payload,
		Page:      result.Page,
		PerPage:   result.PerPage,
		Total:     result.Total,
		PageCount: result.PageCount,
	})
}

// HandleGet returns one user by userid within the caller's appid.
//
//	@Summary		Get a user
//	@Tags			Users
//	@Security		BearerAuth
//	@Produce		json
//	@Param			userid	path		string		true	"Login identifier"
//	@Success		200		{object}	Envelope	"data holds the user"
//	@Failure		401		{object}	Envelope	"Missing token or insufficient role"
//	@Failure		404		{object}	Envelope	"User not found"
//	@Failure		500		{object}	Envelope	"Internal server error"
//	@Router			/users/{userid} [get].
func (h *UsersHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	actor, ok := identityFrom(ctx)
	if !ok {
		writeError(w, service.ErrInvalidToken)
		return
	}

	u, err := h.UserService.Get(ctx, actor, r.PathValue("userid"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeOK(w, "Successful.", toUserPayload(u))
}

// HandleUpdate rewrites a user record. The response data echoes the userid
// rather than the record, which is all updating clients consume.
//
//	@Summary		Update a user
//	@Description	Full-field overwrite. An empty password keeps the current one. Admins cannot promote to superadmin or change companyid.
//	@Tags			Users
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			userid	path		string		true	"Login identifier"
//	@Param			request	body		userRequest	true	"Replacement fields"
//	@Success		200		{object}	Envelope	"data holds the userid"
//	@Failure		401		{object}	Envelope	"Missing token or insufficient role"
//	@Failure		404		{object}	Envelope	"User not found"
//	@Failure		500		{object}	Envelope	"Internal server error"
//	@Router			/users/{userid} [put].
func (h *UsersHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	actor, ok := identityFrom(ctx)
	if !ok {
		writeError(w, service.ErrInvalidToken)
		return
	}

	var req userRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	userID := r.PathValue("userid")
	_, err := h.UserService.Update(ctx, actor, userID, service.UpdateUserInput{
		Username:      req.Username,
		Password:      req.Password,
		CompanyID:     req.CompanyID,
		CompanyName:   req.CompanyName,
		OTPService:    domain.OTPChannel(req.OTPService),
		Role:          domain.Role(req.Role),
		AccountStatus: domain.AccountStatus(req.AccountStatus),
		Profile:       req.Profile,
		Mobile:        req.Mobile,
		ContactInfo:   req.ContactInfo,
		ContactPerson: req.ContactPerson,
	})
	if err != nil {
		log.Warn("user update rejected", "userid", userID, "err", err)
		writeError(w, err)
		return
	}

	writeOK(w, "User updated successful.", userID)
}

// HandleDelete soft-deletes a user. The body keeps the historical
// 204-in-a-200 shape clients expect.
//
//	@Summary		Delete a user
//	@Description	Soft deletion; the record becomes invisible and the userid may be reused.
//	@Tags			Users
//	@Security		BearerAuth
//	@Produce		json
//	@Param			userid	path		string		true	"Login identifier"
//	@Success		200		{object}	Envelope	"body code is 204"
//	@Failure		401		{object}	Envelope	"Missing token or insufficient role"
//	@Failure		404		{object}	Envelope	"User not found"
//	@Failure		500		{object}	Envelope	"Internal server error"
//	@Router			/users/{userid} [delete].
func (h *UsersHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	actor, ok := identityFrom(ctx)
	if !ok {
		writeError(w, service.ErrInvalidToken)
		return
	}

	userID := r.PathValue("userid")
	if err := h.UserService.Delete(ctx, actor, userID); err != nil {
		log.Warn("user deletion rejected", "userid", userID, "err", err)
		writeError(w, err)
		return
	}

	writeEnvelope(w, http.StatusOK, Envelope{Code: 204, Message: "No Content."})
}
