package httpx

type ctxKey string

// CtxKeyIdentity carries the authenticated caller's re-resolved identity.
// The concrete type is owned by the service layer; httpx only needs the key
// so the user-keyed rate limiter can read something stable.
const (
	CtxKeyIdentity ctxKey = "identity"
	CtxKeyUserID   ctxKey = "user_id"
)
