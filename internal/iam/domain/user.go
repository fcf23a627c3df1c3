package domain

import "time"

// Role is the three-tier access level of a user.
type Role string

const (
	RoleSuperadmin Role = "superadmin"
	RoleAdmin      Role = "admin"
	RoleNormal     Role = "normaluser"
)

// Valid reports whether r is one of the defined roles.
func (r Role) Valid() bool {
	switch r {
	case RoleSuperadmin, RoleAdmin, RoleNormal:
		return true
	}
	return false
}

// OTPChannel is the delivery channel preference for login OTP challenges.
// "none" disables the OTP gate entirely; such logins go straight to a token.
type OTPChannel string

const (
	OTPChannelEmail  OTPChannel = "email"
	OTPChannelMobile OTPChannel = "mobile"
	OTPChannelNone   OTPChannel = "none"
)

func (c OTPChannel) Valid() bool {
	switch c {
	case OTPChannelEmail, OTPChannelMobile, OTPChannelNone:
		return true
	}
	return false
}

// AccountStatus is the operational state of an account. A frozen account
// never receives a token, even with correct credentials.
type AccountStatus string

const (
	AccountActive   AccountStatus = "active"
	AccountInactive AccountStatus = "inactive"
	AccountFrozen   AccountStatus = "freeze"
)

func (s AccountStatus) Valid() bool {
	switch s {
	case AccountActive, AccountInactive, AccountFrozen:
		return true
	}
	return false
}

// Lifecycle status of the stored record. Soft-deleted rows survive for
// audit but are invisible to every lookup and listing.
const (
	StatusDeleted = 0
	StatusActive  = 1
)

// User is a tenant-scoped account. (AppID, UserID) uniquely identifies an
// active user; soft-deleted rows may share the pair.
type User struct {
	ID            string // ULID storage key
	AppID         string
	CompanyID     string
	CompanyName   string
	UserID        string // login identifier within the app
	Username      string
	PasswordHash  string // argon2id PHC encoded
	OTPService    OTPChannel
	Role          Role
	AccountStatus AccountStatus
	Status        int // StatusDeleted or StatusActive
	Profile       string
	Mobile        string
	ContactInfo   string
	ContactPerson string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Frozen reports whether the account is barred from token issuance.
func (u User) Frozen() bool { return u.AccountStatus == AccountFrozen }
