package identity

import "time"

// Roles recognised by the platform. Admins are provisioned out-of-band.
const (
	RoleHomeowner    = "homeowner"
	RoleTradesperson = "tradesperson"
	RoleAdmin        = "admin"
)

// User represents a registered platform member.
type User struct {
	ID           string
	Phone        string
	Name         string
	Role         string
	PasswordHash []byte
	TokenVersion int
	CreatedAt    time.Time
}

// Credentials carries a login or registration request.
type Credentials struct {
	Phone    string
	Password string
	Name     string
	Role     string
}
