package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/cobaltgate/iam/internal/iam/service"
	"github.com/cobaltgate/iam/internal/iam/store"
	"github.com/cobaltgate/iam/pkg/httpx"
)

// Envelope is the uniform response body. Code mirrors the HTTP status in
// every case except delete, which keeps its historical 204-in-a-200 shape.
type Envelope struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func writeEnvelope(w http.ResponseWriter, status int, env Envelope) {
	httpx.WriteJSON(w, status, env)
}

func writeOK(w http.ResponseWriter, message string, data any) {
	writeEnvelope(w, http.StatusOK, Envelope{Code: http.StatusOK, Message: message, Data: data})
}

// writeError maps service sentinels onto the wire taxonomy. Anything not
// explicitly mapped is an internal error; the caller is expected to have
// logged it already.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrUseridNotExist):
		writeEnvelope(w, http.StatusUnauthorized, Envelope{Code: 401, Message: "Userid does not exist."})
	case errors.Is(err, service.ErrPasswordIncorrect):
		writeEnvelope(w, http.StatusUnauthorized, Envelope{Code: 401, Message: "Password is incorrect."})
	case errors.Is(err, service.ErrAccountFrozen):
		writeEnvelope(w, http.StatusUnauthorized, Envelope{Code: 401, Message: "Account is frozen."})
	case errors.Is(err, service.ErrInvalidOTP):
		writeEnvelope(w, http.StatusUnauthorized, Envelope{Code: 401, Message: "Invalid OTP."})
	case errors.Is(err, service.ErrInvalidToken):
		writeEnvelope(w, http.StatusUnauthorized, Envelope{Code: 401, Message: "Invalid Token."})
	case errors.Is(err, service.ErrUnauthorized), errors.Is(err, service.ErrBootstrapToken):
		writeEnvelope(w, http.StatusUnauthorized, Envelope{Code: 401, Message: "Unauthorized."})
	case errors.Is(err, service.ErrTokenIssuance):
		writeEnvelope(w, http.StatusBadRequest, Envelope{Code: 400, Message: "Generating token failed."})
	case errors.Is(err, service.ErrInvalidInput):
		writeEnvelope(w, http.StatusBadRequest, Envelope{Code: 400, Message: "Bad Request."})
	case errors.Is(err, store.ErrAlreadyExists):
		writeEnvelope(w, http.StatusBadRequest, Envelope{Code: 400, Message: "User already existed."})
	case errors.Is(err, store.ErrNotFound):
		writeEnvelope(w, http.StatusNotFound, Envelope{Code: 404, Message: "User not found."})
	default:
		writeEnvelope(w, http.StatusInternalServerError, Envelope{Code: 500, Message: "Internal Server Error"})
	}
}

// decodeJSON reads a request body into dst. A malformed body is reported as
// a bad request, not an internal error.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeEnvelope(w, http.StatusBadRequest, Envelope{Code: 400, Message: "Bad Request."})
		return false
	}
	return true
}
