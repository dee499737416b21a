// Package hrtest is an in-memory HRMS backend for tests: the full REST
// surface the console consumes, with map-backed stores, selectable response
// envelopes, and scriptable bulk failures.
package hrtest

import (
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Aryaman-leo/HRMS-Frontend/internal/models"
)

// Envelope selects how list responses are wrapped.
type Envelope string

const (
	EnvelopeBare   Envelope = "bare"   // [...]
	EnvelopeData   Envelope = "data"   // {"data": [...]}
	EnvelopeEntity Envelope = "entity" // {"employees": [...]} etc.
)

type Server struct {
	mu sync.Mutex

	Envelope          Envelope
	SummaryStatus     int      // non-zero forces that status on /api/attendance/summary
	FailBulkIDs       []string // employee ids the bulk endpoint rejects
	OmitBulkFailedIDs bool     // report only the failed count, not the ids

	engine      *gin.Engine
	nextID      int64
	employees   []models.Employee
	departments []models.Department
	attendance  []models.AttendanceRecord
	logs        []models.AdminLogEntry
	summary     []models.AttendanceSummaryRow
}

func NewServer() *Server {
	gin.SetMode(gin.TestMode)
	s := &Server{Envelope: EnvelopeBare, engine: gin.New()}
	s.routes()
	return s
}

func (s *Server) Handler() http.Handler { return s.engine }

func (s *Server) routes() {
	api := s.engine.Group("/api")

	api.GET("/employees", s.listEmployees)
	api.POST("/employees", s.createEmployee)
	api.DELETE("/employees/:id", s.deleteEmployee)
	api.POST("/employees/bulk/csv", s.importEmployeesCSV)

	api.GET("/departments", s.listDepartments)
	api.POST("/departments", s.createDepartment)
	api.DELETE("/departments/:id", s.deleteDepartment)
	api.POST("/departments/bulk/csv", s.importDepartmentsCSV)

	api.GET("/attendance", s.listAttendance)
	api.POST("/attendance", s.markAttendance)
	api.POST("/attendance/bulk", s.markAttendanceBulk)
	api.GET("/attendance/summary", s.attendanceSummary)

	api.GET("/admin-logs", s.listAdminLogs)
}

func (s *Server) respondList(c *gin.Context, entityKey string, list any) {
	switch s.Envelope {
	case EnvelopeData:
		c.JSON(http.StatusOK, gin.H{"data": list})
	case EnvelopeEntity:
		c.JSON(http.StatusOK, gin.H{entityKey: list})
	default:
		c.JSON(http.StatusOK, list)
	}
}

// Seed helpers

func (s *Server) AddDepartment(name string) models.Department {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	dept := models.Department{ID: s.nextID, Name: name}
	s.departments = append(s.departments, dept)
	return dept
}

func (s *Server) AddEmployee(employeeID, fullName, email string, departmentID int64) models.Employee {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	emp := models.Employee{
		ID:             s.nextID,
		EmployeeID:     employeeID,
		FullName:       fullName,
		Email:          strings.ToLower(email),
		DepartmentID:   departmentID,
		DepartmentName: s.departmentName(departmentID),
	}
	s.employees = append(s.employees, emp)
	return emp
}

func (s *Server) AddAttendance(employeeID, date, status string) models.AttendanceRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.upsertAttendance(employeeID, date, status)
}

func (s *Server) AddLog(action, entityType, entityID, details string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.appendLog(action, entityType, entityID, details)
}

func (s *Server) SetSummary(rows []models.AttendanceSummaryRow) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.summary = rows
}

func (s *Server) Employees() []models.Employee {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Employee, len(s.employees))
	copy(out, s.employees)
	return out
}

func (s *Server) Attendance() []models.AttendanceRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.AttendanceRecord, len(s.attendance))
	copy(out, s.attendance)
	return out
}

func (s *Server) Logs() []models.AdminLogEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.AdminLogEntry, len(s.logs))
	copy(out, s.logs)
	return out
}

func (s *Server) departmentName(id int64) string {
	for _, dept := range s.departments {
		if dept.ID == id {
			return dept.Name
		}
	}
	return ""
}

func (s *Server) upsertAttendance(employeeID, date, status string) models.AttendanceRecord {
	name := employeeID
	for _, emp := range s.employees {
		if emp.EmployeeID == employeeID {
			name = emp.FullName
		}
	}
	for i, record := range s.attendance {
		if record.EmployeeID == employeeID && record.Date == date {
			s.attendance[i].Status = status
			return s.attendance[i]
		}
	}
	s.nextID++
	record := models.AttendanceRecord{
		ID:           s.nextID,
		EmployeeID:   employeeID,
		EmployeeName: name,
		Date:         date,
		Status:       status,
	}
	s.attendance = append(s.attendance, record)
	return record
}

func (s *Server) appendLog(action, entityType, entityID, details string) {
	s.nextID++
	s.logs = append(s.logs, models.AdminLogEntry{
		ID:         s.nextID,
		CreatedAt:  time.Now().Format(time.RFC3339),
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Details:    details,
	})
}

// Employees

func (s *Server) listEmployees(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.respondList(c, "employees", s.employees)
}

type createEmployeeRequest struct {
	EmployeeID   string `json:"employeeId"`
	FullName     string `json:"fullName"`
	Email        string `json:"email"`
	DepartmentID int64  `json:"departmentId"`
}

func (s *Server) createEmployee(c *gin.Context) {
	var req createEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}
	if req.EmployeeID == "" || req.FullName == "" || req.Email == "" || req.DepartmentID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required fields"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, emp := range s.employees {
		if strings.EqualFold(emp.Email, req.Email) {
			c.JSON(http.StatusConflict, gin.H{"message": "Email already exists"})
			return
		}
		if emp.EmployeeID == req.EmployeeID {
			c.JSON(http.StatusConflict, gin.H{"message": "Employee ID already exists"})
			return
		}
	}
	if s.departmentName(req.DepartmentID) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown department"})
		return
	}

	s.nextID++
	emp := models.Employee{
		ID:             s.nextID,
		EmployeeID:     req.EmployeeID,
		FullName:       req.FullName,
		Email:          strings.ToLower(req.Email),
		DepartmentID:   req.DepartmentID,
		DepartmentName: s.departmentName(req.DepartmentID),
	}
	s.employees = append(s.employees, emp)
	s.appendLog("create", "employee", emp.EmployeeID, "Added "+emp.FullName)
	c.JSON(http.StatusCreated, emp)
}

func (s *Server) deleteEmployee(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, emp := range s.employees {
		if emp.ID == id {
			s.employees = append(s.employees[:i], s.employees[i+1:]...)
			s.appendLog("delete", "employee", emp.EmployeeID, "Removed "+emp.FullName)
			c.JSON(http.StatusOK, gin.H{"message": "deleted"})
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "employee not found"})
}

// Departments

func (s *Server) listDepartments(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := make([]models.Department, len(s.departments))
	copy(list, s.departments)
	for i := range list {
		count := 0
		for _, emp := range s.employees {
			if emp.DepartmentID == list[i].ID {
				count++
			}
		}
		list[i].EmployeeCount = count
	}
	s.respondList(c, "departments", list)
}

type createDepartmentRequest struct {
	Name string `json:"name"`
}

func (s *Server) createDepartment(c *gin.Context) {
	var req createDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, dept := range s.departments {
		if strings.EqualFold(dept.Name, req.Name) {
			c.JSON(http.StatusConflict, gin.H{"message": "Department already exists"})
			return
		}
	}
	s.nextID++
	dept := models.Department{ID: s.nextID, Name: req.Name}
	s.departments = append(s.departments, dept)
	s.appendLog("create", "department", strconv.FormatInt(dept.ID, 10), "Added "+dept.Name)
	c.JSON(http.StatusCreated, dept)
}

func (s *Server) deleteDepartment(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, emp := range s.employees {
		if emp.DepartmentID == id {
			c.JSON(http.StatusConflict, gin.H{"message": "Department has employees assigned. Reassign or remove them first."})
			return
		}
	}
	for i, dept := range s.departments {
		if dept.ID == id {
			s.departments = append(s.departments[:i], s.departments[i+1:]...)
			s.appendLog("delete", "department", strconv.FormatInt(id, 10), "Removed "+dept.Name)
			c.JSON(http.StatusOK, gin.H{"message": "deleted"})
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "department not found"})
}

// Attendance

func (s *Server) listAttendance(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.respondList(c, "attendance", s.attendance)
}

type markAttendanceRequest struct {
	EmployeeID string `json:"employeeId"`
	Date       string `json:"date"`
	Status     string `json:"status"`
}

func (s *Server) markAttendance(c *gin.Context) {
	var req markAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.EmployeeID == "" || req.Date == "" || req.Status == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	record := s.upsertAttendance(req.EmployeeID, req.Date, req.Status)
	s.appendLog("mark", "attendance", req.EmployeeID, req.Date+" "+req.Status)
	c.JSON(http.StatusCreated, record)
}

type bulkAttendanceRequest struct {
	Date    string `json:"date"`
	Records []struct {
		EmployeeID string `json:"employeeId"`
		Status     string `json:"status"`
	} `json:"records"`
}

func (s *Server) markAttendanceBulk(c *gin.Context) {
	var req bulkAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	rejected := map[string]bool{}
	for _, id := range s.FailBulkIDs {
		rejected[id] = true
	}

	var failedIDs []string
	for _, record := range req.Records {
		if rejected[record.EmployeeID] {
			failedIDs = append(failedIDs, record.EmployeeID)
			continue
		}
		s.upsertAttendance(record.EmployeeID, req.Date, record.Status)
	}
	s.appendLog("bulk-mark", "attendance", "", fmt.Sprintf("%s: %d records, %d failed", req.Date, len(req.Records), len(failedIDs)))

	response := gin.H{"failed": len(failedIDs)}
	if !s.OmitBulkFailedIDs && len(failedIDs) > 0 {
		response["failedIds"] = failedIDs
	}
	c.JSON(http.StatusOK, response)
}

func (s *Server) attendanceSummary(c *gin.Context) {
	if s.SummaryStatus != 0 {
		c.JSON(s.SummaryStatus, gin.H{"error": "summary unavailable"})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.respondList(c, "summary", s.summary)
}

// Admin logs

func (s *Server) listAdminLogs(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := s.logs
	if raw := c.Query("limit"); raw != "" {
		if limit, err := strconv.Atoi(raw); err == nil && limit < len(list) {
			list = list[len(list)-limit:]
		}
	}
	s.respondList(c, "logs", list)
}

// CSV imports

func (s *Server) importEmployeesCSV(c *gin.Context) {
	rows, err := readCSVUpload(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	created, failed := 0, 0
	for _, row := range rows {
		if len(row) < 4 {
			failed++
			continue
		}
		employeeID, fullName, email := row[0], row[1], strings.ToLower(row[2])
		departmentID, convErr := strconv.ParseInt(row[3], 10, 64)
		if employeeID == "" || fullName == "" || email == "" || convErr != nil || s.departmentName(departmentID) == "" {
			failed++
			continue
		}
		duplicate := false
		for _, emp := range s.employees {
			if emp.EmployeeID == employeeID || strings.EqualFold(emp.Email, email) {
				duplicate = true
				break
			}
		}
		if duplicate {
			failed++
			continue
		}
		s.nextID++
		s.employees = append(s.employees, models.Employee{
			ID:             s.nextID,
			EmployeeID:     employeeID,
			FullName:       fullName,
			Email:          email,
			DepartmentID:   departmentID,
			DepartmentName: s.departmentName(departmentID),
		})
		created++
	}
	s.appendLog("import", "employee", "", fmt.Sprintf("csv: %d created, %d failed", created, failed))
	c.JSON(http.StatusOK, gin.H{"created": created, "failed": failed})
}

func (s *Server) importDepartmentsCSV(c *gin.Context) {
	rows, err := readCSVUpload(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	created, failed := 0, 0
	for _, row := range rows {
		if len(row) < 1 || row[0] == "" {
			failed++
			continue
		}
		duplicate := false
		for _, dept := range s.departments {
			if strings.EqualFold(dept.Name, row[0]) {
				duplicate = true
				break
			}
		}
		if duplicate {
			failed++
			continue
		}
		s.nextID++
		s.departments = append(s.departments, models.Department{ID: s.nextID, Name: row[0]})
		created++
	}
	s.appendLog("import", "department", "", fmt.Sprintf("csv: %d created, %d failed", created, failed))
	c.JSON(http.StatusOK, gin.H{"created": created, "failed": failed})
}

// readCSVUpload parses the uploaded file and strips a header row when the
// first cell looks like a column name.
func readCSVUpload(c *gin.Context) ([][]string, error) {
	file, _, err := c.Request.FormFile("file")
	if err != nil {
		return nil, fmt.Errorf("missing file field")
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	var rows [][]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("malformed csv")
		}
		rows = append(rows, row)
	}
	if len(rows) > 0 && looksLikeHeader(rows[0]) {
		rows = rows[1:]
	}
	return rows, nil
}

func looksLikeHeader(row []string) bool {
	if len(row) == 0 {
		return false
	}
	first := strings.ToLower(strings.TrimSpace(row[0]))
	return first == "employee_id" || first == "employeeid" || first == "name" || first == "department_name"
}
