package domain

import "time"

// Role enumerates the access levels a portal account can hold.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleAgent    Role = "agent"
	RoleAdmin    Role = "admin"
)

// Valid reports whether the role is one of the enumerated values.
func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleAgent, RoleAdmin:
		return true
	}
	return false
}

// Staff reports whether the role grants cross-customer record access.
func (r Role) Staff() bool {
	return r == RoleAgent || r == RoleAdmin
}

// Address is a postal address attached to a user profile.
type Address struct {
	Street  string
	City    string
	State   string
	ZipCode string
	Country string
}

// User mirrors the persisted representation of a portal account.
// PasswordHash holds an Argon2id "salt:hash" pair, never a plaintext password.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	Phone        string
	Role         Role
	DateOfBirth  *time.Time
	Address      Address
	CreatedAt    time.Time
}

// FullName joins the first and last name for display purposes.
func (u User) FullName() string {
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
