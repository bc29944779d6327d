package enums

import "fmt"

// Role is the closed set of account roles.
type Role string

const (
	RoleStudent    Role = "STUDENT"
	RoleTeacher    Role = "TEACHER"
	RoleAdmin      Role = "ADMIN"
	RoleSuperAdmin Role = "SUPER_ADMIN"
)

var validRoles = []Role{
	RoleStudent,
	RoleTeacher,
	RoleAdmin,
	RoleSuperAdmin,
}

// signupRoles are the roles a caller may self-assign through signup.
var signupRoles = []Role{RoleStudent, RoleTeacher}

// String implements fmt.Stringer.
func (r Role) String() string {
	return string(r)
}

// IsValid reports whether the value is a known Role.
func (r Role) IsValid() bool {
	for _, candidate := range validRoles {
		if candidate == r {
			return true
		}
	}
	return false
}

// IsSignupRole reports whether the role may be requested at signup.
func (r Role) IsSignupRole() bool {
	for _, candidate := range signupRoles {
		if candidate == r {
			return true
		}
	}
	return false
}

// IsAdminRole reports whether the role carries admin privileges.
func (r Role) IsAdminRole() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

// ParseRole converts raw input into a Role.
func ParseRole(value string) (Role, error) {
	for _, candidate := range validRoles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid role %q", value)
}
