package domain

// Identity is the re-resolved caller identity produced by token
// verification. It always reflects current storage, never bare token
// claims, so role or company changes take effect on the next request.
type Identity struct {
	UserID      string
	AppID       string
	CompanyID   string
	CompanyName string
	Username    string
	Role        Role
}

// LoginResult is the outcome of a successful credential check. Exactly one
// of OTPSession and Token is set: users with an OTP channel get a session
// to complete, everyone else gets a token immediately.
type LoginResult struct {
	OTPSession string
	Token      string
	Profile    string
}

// ListQuery captures search, scoping, sorting and pagination for user
// listings. CompanyID empty means all companies (superadmin view);
// ExcludeSuperadmins hides superadmin records from non-superadmin callers.
type ListQuery struct {
	AppID              string
	CompanyID          string
	ExcludeSuperadmins bool

	Search  string // free-text match over indexed columns
	SortBy  string // single column name; empty means creation order
	Reverse bool

	Page    int // 1-indexed; <= 0 disables pagination
	PerPage int
}

// UserPage is one page of a listing plus pagination bookkeeping.
type UserPage struct {
	Users     []User
	Page      int
	PerPage   int
	Total     int64
	PageCount int
}

// CompanyRoster groups visible users under their company.
type CompanyRoster struct {
	CompanyID   string       `json:"companyid"`
	CompanyName string       `json:"companyname"`
	Users       []RosterUser `json:"users"`
}

type RosterUser struct {
	UserID   string `json:"userid"`
	Username string `json:"username"`
}
