package controller

import (
	"context"
	"testing"

	"github.com/Aryaman-leo/HRMS-Frontend/internal/hrtest"
	"github.com/Aryaman-leo/HRMS-Frontend/internal/listview"
	"github.com/Aryaman-leo/HRMS-Frontend/internal/models"
	"github.com/Aryaman-leo/HRMS-Frontend/internal/notify"
)

func seedTwoEmployees(e *env) {
	dept := e.server.AddDepartment("Engineering")
	e.server.AddEmployee("EMP001", "Jane", "jane@company.com", dept.ID)
	e.server.AddEmployee("EMP002", "John", "john@company.com", dept.ID)
}

func TestEmployeesRefreshAllEnvelopes(t *testing.T) {
	for _, envelope := range []hrtest.Envelope{hrtest.EnvelopeBare, hrtest.EnvelopeData, hrtest.EnvelopeEntity} {
		t.Run(string(envelope), func(t *testing.T) {
			e := newEnv(t)
			e.server.Envelope = envelope
			seedTwoEmployees(e)

			employees := NewEmployees(e.client, e.hub, e.trigger, nil)
			if err := employees.Refresh(context.Background()); err != nil {
				t.Fatalf("refresh: %v", err)
			}
			if employees.Len() != 2 {
				t.Fatalf("expected 2 employees, got %d", employees.Len())
			}
		})
	}
}

func TestEmployeeSearchScenario(t *testing.T) {
	e := newEnv(t)
	seedTwoEmployees(e)

	employees := NewEmployees(e.client, e.hub, e.trigger, nil)
	if err := employees.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}

	visible := listview.Search(employees.Items(), "jane", SearchFields)
	if len(visible) != 1 || visible[0].EmployeeID != "EMP001" {
		t.Fatalf("unexpected search result: %+v", visible)
	}
}

func TestCreateValidatesBeforeNetwork(t *testing.T) {
	e := newEnv(t)
	e.server.AddDepartment("Engineering")
	employees := NewEmployees(e.client, e.hub, e.trigger, nil)

	errs, err := employees.Create(context.Background(), EmployeeInput{
		EmployeeID: "  ",
		FullName:   "Jane",
		Email:      "not-an-email",
	})
	if err != nil {
		t.Fatalf("validation failure must not be a network error: %v", err)
	}
	if errs["employeeId"] != msgRequired {
		t.Fatalf("expected required error for employeeId, got %+v", errs)
	}
	if errs["email"] != msgEmailInvalid {
		t.Fatalf("expected invalid-email error, got %+v", errs)
	}
	if errs["departmentId"] != msgRequired {
		t.Fatalf("expected required error for departmentId, got %+v", errs)
	}

	if len(e.server.Employees()) != 0 {
		t.Fatal("invalid form must not reach the server")
	}
	if e.trigger.Count() != 0 {
		t.Fatal("invalid form must not fire the refresh trigger")
	}
	if len(e.hub.Active()) != 0 {
		t.Fatal("validation errors render inline, not as notifications")
	}
}

func TestCreateSuccessFiresTriggerAndNotifies(t *testing.T) {
	e := newEnv(t)
	dept := e.server.AddDepartment("Engineering")
	employees := NewEmployees(e.client, e.hub, e.trigger, nil)

	errs, err := employees.Create(context.Background(), EmployeeInput{
		EmployeeID:   " EMP003 ",
		FullName:     "Ravi",
		Email:        "Ravi@Company.com",
		DepartmentID: dept.ID,
	})
	if err != nil || errs != nil {
		t.Fatalf("create failed: errs=%v err=%v", errs, err)
	}

	stored := e.server.Employees()
	if len(stored) != 1 || stored[0].EmployeeID != "EMP003" || stored[0].Email != "ravi@company.com" {
		t.Fatalf("input should be trimmed and email lowercased: %+v", stored)
	}
	if e.trigger.Count() != 1 {
		t.Fatal("create should fire the refresh trigger")
	}
	if n := e.lastNotification(); n.Kind != notify.KindSuccess || n.Message != msgEmployeeAdded {
		t.Fatalf("unexpected notification: %+v", n)
	}
}

func TestCreateDuplicateEmailMapsToFieldError(t *testing.T) {
	e := newEnv(t)
	dept := e.server.AddDepartment("Engineering")
	e.server.AddEmployee("EMP001", "Jane", "jane@company.com", dept.ID)
	employees := NewEmployees(e.client, e.hub, e.trigger, nil)

	errs, err := employees.Create(context.Background(), EmployeeInput{
		EmployeeID:   "EMP009",
		FullName:     "Other Jane",
		Email:        "jane@company.com",
		DepartmentID: dept.ID,
	})
	if err == nil {
		t.Fatal("expected conflict error")
	}
	if errs["email"] != msgEmailExists {
		t.Fatalf("409 email conflict should map to the email field, got %+v", errs)
	}
	if n := e.lastNotification(); n.Kind != notify.KindError {
		t.Fatalf("expected error notification, got %+v", n)
	}
}

func TestDeleteConfirmedRemovesOptimistically(t *testing.T) {
	e := newEnv(t)
	seedTwoEmployees(e)
	employees := NewEmployees(e.client, e.hub, e.trigger, nil)
	_ = employees.Refresh(context.Background())

	var asked models.Employee
	employees.SetConfirm(func(emp models.Employee) bool {
		asked = emp
		return true
	})

	target := employees.Items()[0]
	if err := employees.Delete(context.Background(), target.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if asked.ID != target.ID {
		t.Fatal("confirmation should receive the target employee")
	}
	if employees.Len() != 1 {
		t.Fatal("delete should remove the row locally without a re-fetch")
	}
	if len(e.server.Employees()) != 1 {
		t.Fatal("delete should reach the server")
	}
	if n := e.lastNotification(); n.Message != msgEmployeeRemoved {
		t.Fatalf("unexpected notification: %+v", n)
	}
}

func TestDeleteDeclinedDoesNothing(t *testing.T) {
	e := newEnv(t)
	seedTwoEmployees(e)
	employees := NewEmployees(e.client, e.hub, e.trigger, nil)
	_ = employees.Refresh(context.Background())
	employees.SetConfirm(func(models.Employee) bool { return false })

	if err := employees.Delete(context.Background(), employees.Items()[0].ID); err != nil {
		t.Fatalf("declined delete should be a silent no-op: %v", err)
	}
	if employees.Len() != 2 || len(e.server.Employees()) != 2 {
		t.Fatal("declined delete must not touch anything")
	}
}
