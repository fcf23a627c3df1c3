package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/cobaltgate/iam/internal/iam/domain"
	"github.com/cobaltgate/iam/internal/iam/store"
)

type usersRepo struct {
	db dbtx
}

const userColumns = `id, appid, companyid, companyname, userid, username,
	password_hash, otpservice, role, accountstatus, status, profile, mobile,
	contactinfo, contactperson, created_at, updated_at`

// Every read carries "status = 1": soft-deleted rows are invisible here,
// not in the callers.

func (r *usersRepo) GetUser(ctx context.Context, appID, userID string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE appid = ? AND userid = ? AND status = 1`,
		appID, userID,
	)
	return scanUser(row)
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ? AND status = 1`,
		id,
	)
	return scanUser(row)
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	now := time.Now().UTC()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	u.UpdatedAt = now

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (`+userColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.AppID, u.CompanyID, u.CompanyName, u.UserID, u.Username,
		u.PasswordHash, string(u.OTPService), string(u.Role), string(u.AccountStatus),
		domain.StatusActive, u.Profile, u.Mobile, u.ContactInfo, u.ContactPerson,
		u.CreatedAt, u.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return store.ErrAlreadyExists
	}
	return err
}

func (r *usersRepo) UpdateUser(ctx context.Context, u domain.User) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET
			companyid = ?, companyname = ?, username = ?, password_hash = ?,
			otpservice = ?, role = ?, accountstatus = ?, profile = ?,
			mobile = ?, contactinfo = ?, contactperson = ?, updated_at = ?
		 WHERE appid = ? AND userid = ? AND status = 1`,
		u.CompanyID, u.CompanyName, u.Username, u.PasswordHash,
		string(u.OTPService), string(u.Role), string(u.AccountStatus), u.Profile,
		u.Mobile, u.ContactInfo, u.ContactPerson, time.Now().UTC(),
		u.AppID, u.UserID,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *usersRepo) SoftDelete(ctx context.Context, appID, userID string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET status = ?, updated_at = ? WHERE appid = ? AND userid = ? AND status = 1`,
		domain.StatusDeleted, time.Now().UTC(), appID, userID,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// sortColumns whitelists sortable fields so the sort key can be spliced
// into SQL safely. Request field names follow the API's lowercase style.
var sortColumns = map[string]string{
	"userid":        "userid",
	"username":      "username",
	"companyid":     "companyid",
	"companyname":   "companyname",
	"role":          "role",
	"accountstatus": "accountstatus",
	"createdat":     "created_at",
	"updatedat":     "updated_at",
}

func (r *usersRepo) List(ctx context.Context, q domain.ListQuery) ([]domain.User, int64, error) {
	where, args := buildListFilter(q)

	var total int64
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM users `+where, args...,
	).Scan(&total); err != nil {
		return nil, 0, err
	}

	orderCol, ok := sortColumns[strings.ToLower(q.SortBy)]
	if !ok {
		orderCol = "created_at"
	}
	direction := "ASC"
	if q.Reverse {
		direction = "DESC"
	}

	query := `SELECT ` + userColumns + ` FROM users ` + where +
		fmt.Sprintf(` ORDER BY %s %s, id ASC`, orderCol, direction)

	if q.Page > 0 && q.PerPage > 0 {
		query += ` LIMIT ? OFFSET ?`
		args = append(args, q.PerPage, (q.Page-1)*q.PerPage)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		u, err := scanUserRows(rows)
		if err != nil {
			return nil, 0, err
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func buildListFilter(q domain.ListQuery) (string, []any) {
	clauses := []string{"status = 1", "appid = ?"}
	args := []any{q.AppID}

	if q.CompanyID != "" {
		clauses = append(clauses, "companyid = ?")
		args = append(args, q.CompanyID)
	}
	if q.ExcludeSuperadmins {
		clauses = append(clauses, "role != ?")
		args = append(args, string(domain.RoleSuperadmin))
	}
	if q.Search != "" {
		// Poor man's text index: match the searchable columns as one blob.
		clauses = append(clauses,
			`(userid || ' ' || username || ' ' || companyid || ' ' || companyname
				|| ' ' || profile || ' ' || mobile || ' ' || contactinfo
				|| ' ' || contactperson) LIKE ? ESCAPE '\'`)
		args = append(args, "%"+escapeLike(q.Search)+"%")
	}

	return "WHERE " + strings.Join(clauses, " AND "), args
}

func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row *sql.Row) (domain.User, error) {
	u, err := scanUserFrom(row)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return u, nil
}

func scanUserRows(rows *sql.Rows) (domain.User, error) {
	return scanUserFrom(rows)
}

func scanUserFrom(s rowScanner) (domain.User, error) {
	var u domain.User
	var otpService, role, accountStatus string
	err := s.Scan(
		&u.ID, &u.AppID, &u.CompanyID, &u.CompanyName, &u.UserID, &u.Username,
		&u.PasswordHash, &otpService, &role, &accountStatus, &u.Status,
		&u.Profile, &u.Mobile, &u.ContactInfo, &u.ContactPerson,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return domain.User{}, err
	}
	u.OTPService = domain.OTPChannel(otpService)
	u.Role = domain.Role(role)
	u.AccountStatus = domain.AccountStatus(accountStatus)
	return u, nil
}
