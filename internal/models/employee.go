package models

// Employee is a staff record. EmployeeID is the human-assigned business key,
// distinct from the server's internal ID.
type Employee struct {
	ID             int64  `json:"id"`
	EmployeeID     string `json:"employeeId"`
	FullName       string `json:"fullName"`
	Email          string `json:"email"`
	DepartmentID   int64  `json:"departmentId"`
	DepartmentName string `json:"departmentName,omitempty"`
}
