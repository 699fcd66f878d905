package domain

// Role is the sign-up role chosen on the registration screen.
type Role string

const (
	RoleEmployee Role = "Employee"
	RoleManager  Role = "Manager"
)

// ParseRole maps free-form input to a Role, defaulting to RoleEmployee.
func ParseRole(s string) Role {
	switch Role(s) {
	case RoleManager, "manager", "MANAGER":
		return RoleManager
	default:
		return RoleEmployee
	}
}

// Credentials are held only for the duration of a login attempt.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegistrationRequest is the body sent to the register endpoints.
// DepartmentID is nil for managers and serialized as an explicit null.
type RegistrationRequest struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	DepartmentID *int   `json:"departmentId"`
}

// MessageResponse is the success body of the register endpoints.
type MessageResponse struct {
	Message string `json:"message"`
}
