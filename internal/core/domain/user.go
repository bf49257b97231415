package domain

// UserRole is the platform-wide role supplied by the identity boundary.
type UserRole string

const (
	RoleUser  UserRole = "USER"
	RoleAdmin UserRole = "ADMIN"
)

// User is the owner of an account. Credentials live here because the service
// ships its own identity collaborator; the ledger engine itself only ever
// sees the (userID, role) pair.
type User struct {
	UserID       string   `json:"userID"` // Primary Key (UUID)
	Name         string   `json:"name"`
	PhoneNumber  string   `json:"phoneNumber"` // Unique login identifier
	PasswordHash string   `json:"-"`
	Role         UserRole `json:"role"`
	Enabled      bool     `json:"enabled"`
	AuditFields
}

// IsAdmin reports whether the user carries the ADMIN role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Caller is the authenticated identity attached to a request by the identity
// boundary. The ledger trusts it and performs no further credential checks.
type Caller struct {
	UserID string
	Role   UserRole
}

// IsAdmin reports whether the caller carries the ADMIN role.
func (c Caller) IsAdmin() bool {
	return c.Role == RoleAdmin
}
