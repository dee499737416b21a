package controller

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/Aryaman-leo/HRMS-Frontend/internal/api"
	"github.com/Aryaman-leo/HRMS-Frontend/internal/models"
	"github.com/Aryaman-leo/HRMS-Frontend/internal/notify"
)

const (
	msgEmployeeAdded   = "Employee added."
	msgEmployeeRemoved = "Employee removed."
)

// EmployeeInput is the add-employee form payload.
type EmployeeInput struct {
	EmployeeID   string `json:"employeeId" validate:"required"`
	FullName     string `json:"fullName" validate:"required"`
	Email        string `json:"email" validate:"required,email"`
	DepartmentID int64  `json:"departmentId" validate:"required"`
}

type Employees struct {
	*List[models.Employee]
	client  *api.Client
	hub     *notify.Hub
	changed *RefreshTrigger
	confirm func(models.Employee) bool
}

func NewEmployees(client *api.Client, hub *notify.Hub, changed *RefreshTrigger, log *zap.Logger) *Employees {
	e := &Employees{client: client, hub: hub, changed: changed}
	e.List = NewList(e.fetchAll, hub, log)
	return e
}

// SetConfirm installs the callback asked before a delete; a nil callback
// means confirmed.
func (e *Employees) SetConfirm(confirm func(models.Employee) bool) {
	e.confirm = confirm
}

func (e *Employees) fetchAll(ctx context.Context) ([]models.Employee, error) {
	body, err := e.client.Get(ctx, "/api/employees", nil)
	if err != nil {
		return nil, err
	}
	return api.DecodeList[models.Employee](body, "employees")
}

// Create validates the form locally, then posts it. A non-empty map is the
// inline field errors; the form blocks resubmission until they clear. On
// success the refresh trigger fires so the sibling list re-fetches.
func (e *Employees) Create(ctx context.Context, input EmployeeInput) (map[string]string, error) {
	input.EmployeeID = strings.TrimSpace(input.EmployeeID)
	input.FullName = strings.TrimSpace(input.FullName)
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))

	if errs := fieldErrors(input); errs != nil {
		return errs, nil
	}

	_, err := e.client.Post(ctx, "/api/employees", input)
	if err != nil {
		message := displayMessage(err)
		e.hub.Error(message)
		if api.StatusOf(err) == 409 && strings.Contains(strings.ToLower(message), "email") {
			return map[string]string{"email": msgEmailExists}, err
		}
		return nil, err
	}

	e.hub.Success(msgEmployeeAdded)
	if e.changed != nil {
		e.changed.Fire()
	}
	return nil, nil
}

// Delete asks for confirmation, issues the call, and removes the row from
// local state without a re-fetch. A failure leaves the list untouched and
// surfaces the server's message.
func (e *Employees) Delete(ctx context.Context, id int64) error {
	var target models.Employee
	found := false
	for _, emp := range e.Items() {
		if emp.ID == id {
			target = emp
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("employee %d not in list", id)
	}
	if e.confirm != nil && !e.confirm(target) {
		return nil
	}

	if _, err := e.client.Delete(ctx, fmt.Sprintf("/api/employees/%d", id)); err != nil {
		message := displayMessage(err)
		e.SetError(message)
		e.hub.Error(message)
		return err
	}

	e.Remove(func(emp models.Employee) bool { return emp.ID == id })
	e.hub.Success(msgEmployeeRemoved)
	if e.changed != nil {
		e.changed.Fire()
	}
	return nil
}

// SearchFields are the employee fields the list search matches against.
func SearchFields(emp models.Employee) []string {
	return []string{emp.EmployeeID, emp.FullName, emp.Email}
}
