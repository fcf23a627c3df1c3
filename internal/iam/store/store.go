package store

import (
	"context"
	"errors"
	"time"

	"github.com/cobaltgate/iam/internal/iam/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite today)
// implement this. Sub-repositories keep the surface tidy and let services
// state exactly which tables they touch.
//
// Repository invariant: every Users read path excludes soft-deleted rows
// (status = 0). Callers never re-apply that filter.
type Store interface {
	Users() Users
	OTPs() OTPs

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction, rolling back when fn errors
	// and committing otherwise. Prefer this over Tx directly.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos plus Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUser returns the active user for (appid, userid).
	GetUser(ctx context.Context, appID, userID string) (domain.User, error)

	// GetUserByID returns an active user by storage id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// CreateUser inserts a new user (id is provided by the app via ULID).
	// Returns ErrAlreadyExists when an active user holds (appid, userid).
	CreateUser(ctx context.Context, u domain.User) error

	// UpdateUser rewrites the mutable fields of the active user identified
	// by (u.AppID, u.UserID) and bumps updated_at.
	UpdateUser(ctx context.Context, u domain.User) error

	// SoftDelete marks the active user deleted (status=0). The row remains
	// for audit and becomes invisible to every read path.
	SoftDelete(ctx context.Context, appID, userID string) error

	// List returns one page of active users matching q plus the total
	// match count before pagination.
	List(ctx context.Context, q domain.ListQuery) ([]domain.User, int64, error)
}

type OTPs interface {
	// CreateOTP stores a freshly issued pending challenge.
	CreateOTP(ctx context.Context, c domain.OTPChallenge) error

	// GetOTP fetches a challenge by session id regardless of status.
	GetOTP(ctx context.Context, id string) (domain.OTPChallenge, error)

	// MarkVerified transitions a challenge to verified, guarded by the
	// pending status so a challenge can only ever be consumed once.
	// Returns ErrNotFound when the challenge is absent or not pending.
	MarkVerified(ctx context.Context, id string) error

	// Invalidate transitions a challenge to invalidated.
	Invalidate(ctx context.Context, id string) error

	// InvalidatePending invalidates every still-pending challenge for
	// (appid, userid). Called before issuing a replacement.
	InvalidatePending(ctx context.Context, appID, userID string) error

	// InvalidateExpired invalidates pending challenges whose expiry has
	// passed. Housekeeping only; rows are never deleted.
	InvalidateExpired(ctx context.Context, now time.Time) (int64, error)
}
