package models

import "encoding/json"

const (
	StatusPresent = "Present"
	StatusAbsent  = "Absent"
)

// AttendanceRecord marks one employee on one calendar day. Date is an ISO
// day string (2006-01-02) so lexicographic order equals chronological order.
// (EmployeeID, Date) is the natural key; the server upserts on re-marking.
type AttendanceRecord struct {
	ID           int64  `json:"id"`
	EmployeeID   string `json:"employeeId"`
	EmployeeName string `json:"employeeName,omitempty"`
	Date         string `json:"date"`
	Status       string `json:"status"`
}

// UnmarshalJSON tolerates the snake_case spellings some backends emit.
func (r *AttendanceRecord) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID              int64  `json:"id"`
		AttendanceID    int64  `json:"attendance_id"`
		EmployeeID      string `json:"employeeId"`
		EmployeeIDSnake string `json:"employee_id"`
		EmployeeName    string `json:"employeeName"`
		EmployeeNameAlt string `json:"employee_name"`
		FullName        string `json:"fullName"`
		FullNameSnake   string `json:"full_name"`
		Date            string `json:"date"`
		AttendanceDate  string `json:"attendance_date"`
		Status          string `json:"status"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	r.ID = firstInt(raw.ID, raw.AttendanceID)
	r.EmployeeID = firstString(raw.EmployeeID, raw.EmployeeIDSnake)
	r.EmployeeName = firstString(raw.EmployeeName, raw.EmployeeNameAlt, raw.FullName, raw.FullNameSnake)
	r.Date = firstString(raw.Date, raw.AttendanceDate)
	r.Status = raw.Status
	return nil
}

// DisplayName is what lists render for the row's employee.
func (r AttendanceRecord) DisplayName() string {
	return firstString(r.EmployeeName, r.EmployeeID)
}

func firstString(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func firstInt(values ...int64) int64 {
	for _, v := range values {
		if v != 0 {
			return v
		}
	}
	return 0
}
