package dto

// RegisterForm is the registration screen payload. Both JSON and
// form-encoded bodies are accepted.
type RegisterForm struct {
	Name         string `json:"name" form:"name"`
	Email        string `json:"email" form:"email"`
	Password     string `json:"password" form:"password"`
	Role         string `json:"role" form:"role"`
	DepartmentID int    `json:"departmentId" form:"departmentId"`
}

// LoginForm is the login screen payload.
type LoginForm struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}
