package model

import "time"

// Role is the access profile of a user.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleUser    Role = "user"
	RoleManager Role = "manager"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleUser, RoleManager:
		return true
	}
	return false
}

// User represents a person that can own, create and be assigned tasks.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreateUserInput is the payload accepted when registering a user.
type CreateUserInput struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role,omitempty"`
}

// UserPatch lists the fields a user update may replace. Nil fields are left untouched.
type UserPatch struct {
	Name     *string `json:"name,omitempty"`
	Email    *string `json:"email,omitempty"`
	Role     *Role   `json:"role,omitempty"`
	IsActive *bool   `json:"isActive,omitempty"`
}

// Apply merges the provided fields into u.
func (p UserPatch) Apply(u *User) {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Role != nil {
		u.Role = *p.Role
	}
	if p.IsActive != nil {
		u.IsActive = *p.IsActive
	}
}
