package domain

import "time"

// Role enumerates the closed set of account roles.
type Role string

const (
	RoleCitizen  Role = "citizen"
	RoleOfficial Role = "official"
	RoleAnalyst  Role = "analyst"
)

// ValidRole reports whether r is a member of the role enumeration.
func ValidRole(r Role) bool {
	switch r {
	case RoleCitizen, RoleOfficial, RoleAnalyst:
		return true
	}
	return false
}

// User is the domain model for registered accounts. The password is stored
// only as a bcrypt hash. Role changes never travel through the self-service
// profile path; only the privileged role-update path may touch it.
type User struct {
	ID             string
	Email          string
	Name           string
	PasswordHash   string
	Role           Role
	ProfilePicture *string
	EmailVerified  bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// PublicUser is the redacted view returned to callers. It never carries the
// password hash.
type PublicUser struct {
	ID             string  `json:"id"`
	Email          string  `json:"email"`
	Name           string  `json:"name"`
	Role           Role    `json:"role"`
	ProfilePicture *string `json:"profile_picture,omitempty"`
}

// Public returns the redacted view of the user.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:             u.ID,
		Email:          u.Email,
		Name:           u.Name,
		Role:           u.Role,
		ProfilePicture: u.ProfilePicture,
	}
}
