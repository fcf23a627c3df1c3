package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/cobaltgate/iam/internal/iam/domain"
	"github.com/cobaltgate/iam/internal/iam/store"
)

type otpsRepo struct {
	db dbtx
}

func (r *otpsRepo) CreateOTP(ctx context.Context, c domain.OTPChallenge) error {
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO otp_challenges (id, otpcode, appid, userid, status, expired_at, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.Code, c.AppID, c.UserID, c.Status, c.ExpiresAt, c.CreatedAt,
	)
	if isUniqueViolation(err) {
		return store.ErrAlreadyExists
	}
	return err
}

func (r *otpsRepo) GetOTP(ctx context.Context, id string) (domain.OTPChallenge, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, otpcode, appid, userid, status, expired_at, created_at
		 FROM otp_challenges WHERE id = ?`,
		id,
	)
	var c domain.OTPChallenge
	err := row.Scan(&c.ID, &c.Code, &c.AppID, &c.UserID, &c.Status, &c.ExpiresAt, &c.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return domain.OTPChallenge{}, store.ErrNotFound
		}
		return domain.OTPChallenge{}, err
	}
	return c, nil
}

// MarkVerified only flips challenges still pending. A challenge that was
// already redeemed or invalidated reports ErrNotFound, so double-spends
// surface as verification failures.
func (r *otpsRepo) MarkVerified(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE otp_challenges SET status = ? WHERE id = ? AND status = ?`,
		domain.OTPVerified, id, domain.OTPPending,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *otpsRepo) Invalidate(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE otp_challenges SET status = ? WHERE id = ?`,
		domain.OTPInvalidated, id,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *otpsRepo) InvalidatePending(ctx context.Context, appID, userID string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE otp_challenges SET status = ? WHERE appid = ? AND userid = ? AND status = ?`,
		domain.OTPInvalidated, appID, userID, domain.OTPPending,
	)
	return err
}

func (r *otpsRepo) InvalidateExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE otp_challenges SET status = ? WHERE status = ? AND expired_at <= ?`,
		domain.OTPInvalidated, domain.OTPPending, now.UTC(),
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
