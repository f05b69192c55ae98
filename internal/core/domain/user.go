package domain

import (
	"errors"
	"fmt"
	"reflect"
	"time"
)

// Role distinguishes administrators from regular accounts.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// Label is the human-readable form used in rendered pages.
func (r Role) Label() string {
	switch r {
	case RoleAdmin:
		return "Admin"
	case RoleUser:
		return "User"
	}
	return string(r)
}

var (
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = errors.New("access forbidden")

	// ErrEmailRequired and ErrSuperuserFlags are raised by the user manager
	// for input it cannot turn into a record.
	ErrEmailRequired  = errors.New("the email field must be set")
	ErrSuperuserFlags = errors.New("superuser must have is_staff and is_superuser set")
)

// User is an account identified by its email address.
// The db tags name the persisted columns and drive UserFieldNames.
type User struct {
	ID           string     `db:"id"           json:"id"`
	Email        string     `db:"email"        json:"email"`
	FirstName    string     `db:"first_name"   json:"first_name"`
	LastName     string     `db:"last_name"    json:"last_name"`
	Role         Role       `db:"role"         json:"role"`
	PasswordHash string     `db:"password"     json:"-"`
	IsActive     bool       `db:"is_active"    json:"is_active"`
	IsStaff      bool       `db:"is_staff"     json:"is_staff"`
	IsSuperuser  bool       `db:"is_superuser" json:"is_superuser"`
	LastLogin    *time.Time `db:"last_login"   json:"last_login,omitempty"`
	CreatedAt    time.Time  `db:"created_at"   json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at"   json:"updated_at"`
}

func (u *User) String() string {
	return fmt.Sprintf("%s %s (%s)", u.FirstName, u.LastName, u.Email)
}

// FullName joins first and last name.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// UserFieldNames lists the persisted fields of User in declaration order.
func UserFieldNames() []string {
	t := reflect.TypeOf(User{})
	names := make([]string, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		tag := t.Field(i).Tag.Get("db")
		if tag == "" || tag == "-" {
			continue
		}
		names = append(names, tag)
	}
	return names
}
