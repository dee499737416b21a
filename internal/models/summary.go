package models

import "encoding/json"

// AttendanceSummaryRow aggregates present/absent day counts per employee,
// computed server-side.
type AttendanceSummaryRow struct {
	EmployeeID   string `json:"employeeId"`
	EmployeeName string `json:"employeeName"`
	PresentDays  int    `json:"presentDays"`
	AbsentDays   int    `json:"absentDays"`
}

func (s *AttendanceSummaryRow) UnmarshalJSON(data []byte) error {
	var raw struct {
		EmployeeID      string `json:"employeeId"`
		EmployeeIDSnake string `json:"employee_id"`
		EmployeeName    string `json:"employeeName"`
		EmployeeNameAlt string `json:"employee_name"`
		PresentDays     *int   `json:"presentDays"`
		PresentDaysAlt  *int   `json:"present_days"`
		AbsentDays      *int   `json:"absentDays"`
		AbsentDaysAlt   *int   `json:"absent_days"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	s.EmployeeID = firstString(raw.EmployeeID, raw.EmployeeIDSnake)
	s.EmployeeName = firstString(raw.EmployeeName, raw.EmployeeNameAlt)
	s.PresentDays = firstIntPtr(raw.PresentDays, raw.PresentDaysAlt)
	s.AbsentDays = firstIntPtr(raw.AbsentDays, raw.AbsentDaysAlt)
	return nil
}

func firstIntPtr(values ...*int) int {
	for _, v := range values {
		if v != nil {
			return *v
		}
	}
	return 0
}
