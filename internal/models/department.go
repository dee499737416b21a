package models

// Department owns zero or more employees via Employee.DepartmentID. The
// server blocks deletion while employees are still assigned.
type Department struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	EmployeeCount int    `json:"employeeCount,omitempty"`
}
