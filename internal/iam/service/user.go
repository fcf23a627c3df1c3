package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"

	"github.com/cobaltgate/iam/internal/iam/domain"
	"github.com/cobaltgate/iam/internal/iam/store"
	"github.com/cobaltgate/iam/pkg/cryptox"
	"github.com/cobaltgate/iam/pkg/idx"
)

// ErrInvalidInput flags a request whose fields fail enum or presence
// validation before any policy check runs.
var ErrInvalidInput = errors.New("invalid input")

// ErrBootstrapToken means superadmin creation was attempted without the
// configured bootstrap secret.
var ErrBootstrapToken = errors.New("bootstrap token mismatch")

type UserService struct {
	Store store.Store

	// BootstrapToken gates superadmin creation. Empty leaves the endpoint
	// open, for first-run setups and tests.
	BootstrapToken string
}

// CreateUserInput carries every settable field of a user record. Password
// arrives in plaintext and never leaves this package unhashed.
type CreateUserInput struct {
	AppID         string
	UserID        string
	Username      string
	Password      string
	CompanyID     string
	CompanyName   string
	OTPService    domain.OTPChannel
	Role          domain.Role
	AccountStatus domain.AccountStatus
	Profile       string
	Mobile        string
	ContactInfo   string
	ContactPerson string
}

func (in *CreateUserInput) normalize() error {
	if in.AppID == "" || in.UserID == "" || in.Password == "" {
		return ErrInvalidInput
	}
	if in.OTPService == "" {
		in.OTPService = domain.OTPChannelNone
	}
	if in.Role == "" {
		in.Role = domain.RoleNormal
	}
	if in.AccountStatus == "" {
		in.AccountStatus = domain.AccountActive
	}
	if !in.OTPService.Valid() || !in.Role.Valid() || !in.AccountStatus.Valid() {
		return ErrInvalidInput
	}
	return nil
}

func (in CreateUserInput) toUser() (domain.User, error) {
	hash, err := cryptox.HashPassword(in.Password)
	if err != nil {
		return domain.User{}, fmt.Errorf("failed to hash password: %w", err)
	}
	return domain.User{
		ID:            idx.New().String(),
		AppID:         in.AppID,
		CompanyID:     in.CompanyID,
		CompanyName:   in.CompanyName,
		UserID:        in.UserID,
		Username:      in.Username,
		PasswordHash:  hash,
		OTPService:    in.OTPService,
		Role:          in.Role,
		AccountStatus: in.AccountStatus,
		Status:        domain.StatusActive,
		Profile:       in.Profile,
		Mobile:        in.Mobile,
		ContactInfo:   in.ContactInfo,
		ContactPerson: in.ContactPerson,
	}, nil
}

// CreateSuperadmin provisions a superadmin without an authenticated caller.
// The configured bootstrap token is the only gate; role is forced so the
// endpoint can never mint anything else.
func (s *UserService) CreateSuperadmin(ctx context.Context, bootstrapToken string, in CreateUserInput) (domain.User, error) {
	if s.BootstrapToken != "" &&
		subtle.ConstantTimeCompare([]byte(bootstrapToken), []byte(s.BootstrapToken)) != 1 {
		return domain.User{}, ErrBootstrapToken
	}

	in.Role = domain.RoleSuperadmin
	if err := in.normalize(); err != nil {
		return domain.User{}, err
	}

	u, err := in.toUser()
	if err != nil {
		return domain.User{}, err
	}
	if err := s.Store.Users().CreateUser(ctx, u); err != nil {
		return domain.User{}, err
	}
	return u, nil
}

// Create provisions a user on behalf of an authenticated actor. Admins are
// pinned to their own company and may only create normal users.
func (s *UserService) Create(ctx context.Context, actor domain.Identity, in CreateUserInput) (domain.User, error) {
	in.AppID = actor.AppID
	if err := in.normalize(); err != nil {
		return domain.User{}, err
	}
	if err := canCreate(actor, in.Role); err != nil {
		return domain.User{}, err
	}
	if actor.Role == domain.RoleAdmin {
		in.CompanyID = actor.CompanyID
		in.CompanyName = actor.CompanyName
	}

	u, err := in.toUser()
	if err != nil {
		return domain.User{}, err
	}
	if err := s.Store.Users().CreateUser(ctx, u); err != nil {
		return domain.User{}, err
	}
	return u, nil
}

// Get returns one user within the actor's visibility. A user outside the
// actor's scope reads the same as a missing one would to a policy check,
// but we surface ErrUnauthorized so the caller knows the record exists yet
// is off-limits, matching the listing rules.
func (s *UserService) Get(ctx context.Context, actor domain.Identity, userID string) (domain.User, error) {
	u, err := s.Store.Users().GetUser(ctx, actor.AppID, userID)
	if err != nil {
		return domain.User{}, err
	}
	if err := canRead(actor, u); err != nil {
		return domain.User{}, err
	}
	return u, nil
}

// UpdateUserInput mirrors CreateUserInput minus the identifying pair. An
// empty Password keeps the current hash; everything else is a full
// overwrite.
type UpdateUserInput struct {
	Username      string
	Password      string
	CompanyID     string
	CompanyName   string
	OTPService    domain.OTPChannel
	Role          domain.Role
	AccountStatus domain.AccountStatus
	Profile       string
	Mobile        string
	ContactInfo   string
	ContactPerson string
}

// Update rewrites a user record under the actor's policy: admins cannot
// promote to superadmin nor move users across companies.
func (s *UserService) Update(ctx context.Context, actor domain.Identity, userID string, in UpdateUserInput) (domain.User, error) {
	target, err := s.Store.Users().GetUser(ctx, actor.AppID, userID)
	if err != nil {
		return domain.User{}, err
	}
	if err := canWrite(actor, target); err != nil {
		return domain.User{}, err
	}

	if in.Role == "" {
		in.Role = target.Role
	}
	if in.OTPService == "" {
		in.OTPService = target.OTPService
	}
	if in.AccountStatus == "" {
		in.AccountStatus = target.AccountStatus
	}
	if !in.Role.Valid() || !in.OTPService.Valid() || !in.AccountStatus.Valid() {
		return domain.User{}, ErrInvalidInput
	}
	if err := canSetFields(actor, target, in.Role, in.CompanyID); err != nil {
		return domain.User{}, err
	}

	target.Username = in.Username
	target.OTPService = in.OTPService
	target.Role = in.Role
	target.AccountStatus = in.AccountStatus
	target.Profile = in.Profile
	target.Mobile = in.Mobile
	target.ContactInfo = in.ContactInfo
	target.ContactPerson = in.ContactPerson

	if actor.Role == domain.RoleSuperadmin {
		if in.CompanyID != "" {
			target.CompanyID = in.CompanyID
		}
		if in.CompanyName != "" {
			target.CompanyName = in.CompanyName
		}
	}

	if in.Password != "" {
		hash, err := cryptox.HashPassword(in.Password)
		if err != nil {
			return domain.User{}, fmt.Errorf("failed to hash password: %w", err)
		}
		target.PasswordHash = hash
	}

	if err := s.Store.Users().UpdateUser(ctx, target); err != nil {
		return domain.User{}, err
	}
	return target, nil
}

// Delete soft-deletes a user within the actor's scope. The row stays on
// disk; the (appid, userid) pair frees up immediately.
func (s *UserService) Delete(ctx context.Context, actor domain.Identity, userID string) error {
	target, err := s.Store.Users().GetUser(ctx, actor.AppID, userID)
	if err != nil {
		return err
	}
	if err := canWrite(actor, target); err != nil {
		return err
	}
	return s.Store.Users().SoftDelete(ctx, actor.AppID, userID)
}

// List returns one page of users inside the actor's visibility.
func (s *UserService) List(ctx context.Context, actor domain.Identity, q domain.ListQuery) (domain.UserPage, error) {
	scoped, err := listScope(actor, q)
	if err != nil {
		return domain.UserPage{}, err
	}

	users, total, err := s.Store.Users().List(ctx, scoped)
	if err != nil {
		return domain.UserPage{}, err
	}

	page := domain.UserPage{
		Users:     users,
		Page:      scoped.Page,
		PerPage:   scoped.PerPage,
		Total:     total,
		PageCount: 1,
	}
	if scoped.PerPage > 0 {
		page.PageCount = int((total + int64(scoped.PerPage) - 1) / int64(scoped.PerPage))
	}
	return page, nil
}

// CompanyRoster groups every visible user under their company, in company
// order. Every visible user appears exactly once.
func (s *UserService) CompanyRoster(ctx context.Context, actor domain.Identity) ([]domain.CompanyRoster, error) {
	scoped, err := listScope(actor, domain.ListQuery{SortBy: "companyid"})
	if err != nil {
		return nil, err
	}

	users, _, err := s.Store.Users().List(ctx, scoped)
	if err != nil {
		return nil, err
	}

	roster := make([]domain.CompanyRoster, 0)
	index := make(map[string]int)
	for _, u := range users {
		i, ok := index[u.CompanyID]
		if !ok {
			i = len(roster)
			index[u.CompanyID] = i
			roster = append(roster, domain.CompanyRoster{
				CompanyID:   u.CompanyID,
				CompanyName: u.CompanyName,
				Users:       []domain.RosterUser{},
			})
		}
		roster[i].Users = append(roster[i].Users, domain.RosterUser{
			UserID:   u.UserID,
			Username: u.Username,
		})
	}
	return roster, nil
}
