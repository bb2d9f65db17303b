package enum

// Role is the access level of an operator account.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)
