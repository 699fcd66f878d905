package domain

// Department is an organizational unit an employee registers into.
type Department struct {
	DepartmentID   int    `json:"departmentId"`
	DepartmentName string `json:"departmentName"`
}

// DefaultDepartments is used when the backend department list is unavailable.
// The ids must exist in the backend's department table.
func DefaultDepartments() []Department {
	return []Department{
		{DepartmentID: 1, DepartmentName: "Sales"},
		{DepartmentID: 2, DepartmentName: "IT"},
		{DepartmentID: 3, DepartmentName: "Finance"},
	}
}
