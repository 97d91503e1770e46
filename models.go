package auth

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// UserRole is the user's role
type UserRole = string

const (
	// RoleStandard is a regular account with no elevated access
	RoleStandard UserRole = "standard"
	// RoleAdmin can reach admin-only operations
	RoleAdmin UserRole = "admin"
)

// GenderNotApplicable marks records created from a federated profile,
// where the provider supplies no gender information.
const GenderNotApplicable = "NA"

// User is the user model. Email is the identity key and is unique at the
// store level. Federated-only accounts carry UnusablePasswordHash and can
// never pass local verification.
type User struct {
	bun.BaseModel `bun:"table:users,alias:usr"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Role          UserRole   `bun:"user_role,notnull" json:"user_role,omitempty"`
	FirstName     string     `bun:"first_name,notnull" json:"first_name,omitempty"`
	LastName      string     `bun:"last_name,notnull" json:"last_name,omitempty"`
	Gender        string     `bun:"gender" json:"gender,omitempty"`
	Email         string     `bun:"email,notnull,unique" json:"email,omitempty"`
	PasswordHash  string     `bun:"password_hash" json:"-"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
	DeletedAt     *time.Time `bun:"deleted_at,soft_delete,nullzero" json:"deleted_at,omitempty"`
}

// IsAdmin reports whether the user carries the admin role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// IsFederatedOnly reports whether the account was created from a federated
// profile and has no local password.
func (u *User) IsFederatedOnly() bool {
	return u != nil && u.PasswordHash == UnusablePasswordHash
}

// EnsureRole defaults the role to standard when unset.
func (u *User) EnsureRole() {
	if u != nil && u.Role == "" {
		u.Role = RoleStandard
	}
}
