package domain

import "time"

// Role is the access level assigned to a dashboard user.
type Role string

const (
	RoleAdmin        Role = "admin"
	RoleManager      Role = "manager"
	RoleSales        Role = "sales"
	RoleDesigner     Role = "designer"
	RoleManufacturer Role = "manufacturer"
	RoleViewer       Role = "viewer"
)

// CanManageStore reports whether the role may perform bulk store
// operations (listing products/orders, linking orders, connection
// checks). Single-resource lookups are open to any authenticated role.
func (r Role) CanManageStore() bool {
	return r == RoleAdmin || r == RoleManager
}

// User is a persisted dashboard account.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Role         Role      `json:"role"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// AuthenticatedUser is the session-resident view of a user. It is
// produced by the session layer and consumed read-only by handlers.
type AuthenticatedUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  Role   `json:"role"`
}
