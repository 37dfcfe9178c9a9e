package models

import "time"

// Role is the closed set of account roles. Every switch over Role must list
// all four constants.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleTrainer Role = "trainer"
	RoleMentor  Role = "mentor"
	RoleTrainee Role = "trainee"
)

// Roles returns the four roles in display order.
func Roles() []Role {
	return []Role{RoleAdmin, RoleTrainer, RoleMentor, RoleTrainee}
}

// Valid reports whether r is one of the four known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleTrainer, RoleMentor, RoleTrainee:
		return true
	default:
		return false
	}
}

// Title is the human readable role label.
func (r Role) Title() string {
	switch r {
	case RoleAdmin:
		return "Administrator"
	case RoleTrainer:
		return "Trainer"
	case RoleMentor:
		return "Mentor"
	case RoleTrainee:
		return "Trainee"
	default:
		return ""
	}
}

// IDPrefix is the identifier prefix given to new users of the role.
func (r Role) IDPrefix() string {
	switch r {
	case RoleAdmin, RoleTrainer, RoleMentor, RoleTrainee:
		return string(r)
	default:
		return "user"
	}
}

// User is an account of any role. PasswordHash holds a bcrypt hash.
type User struct {
	ID           string    `json:"id" yaml:"id"`
	Email        string    `json:"email" yaml:"email"`
	PasswordHash string    `json:"passwordHash" yaml:"-"`
	Role         Role      `json:"role" yaml:"role"`
	FirstName    string    `json:"firstName" yaml:"firstName"`
	LastName     string    `json:"lastName" yaml:"lastName"`
	Phone        string    `json:"phone,omitempty" yaml:"phone,omitempty"`
	Avatar       string    `json:"avatar,omitempty" yaml:"avatar,omitempty"`
	CreatedAt    time.Time `json:"createdAt" yaml:"createdAt"`
	IsActive     bool      `json:"isActive" yaml:"isActive"`
}

func (u User) Identifier() string { return u.ID }

// FullName joins first and last name.
func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// NewUser carries the caller supplied fields of a user; id and createdAt are
// assigned on insert.
type NewUser struct {
	Email        string
	PasswordHash string
	Role         Role
	FirstName    string
	LastName     string
	Phone        string
	Avatar       string
	IsActive     bool
}

// UserPatch lists the mutable fields of a user. Nil fields are left as is.
type UserPatch struct {
	Email        *string
	PasswordHash *string
	Role         *Role
	FirstName    *string
	LastName     *string
	Phone        *string
	Avatar       *string
	IsActive     *bool
}

// Apply merges the non-nil fields into u.
func (p UserPatch) Apply(u *User) {
	setIf(&u.Email, p.Email)
	setIf(&u.PasswordHash, p.PasswordHash)
	setIf(&u.Role, p.Role)
	setIf(&u.FirstName, p.FirstName)
	setIf(&u.LastName, p.LastName)
	setIf(&u.Phone, p.Phone)
	setIf(&u.Avatar, p.Avatar)
	setIf(&u.IsActive, p.IsActive)
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
