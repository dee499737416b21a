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
	msgDepartmentAdded   = "Department added."
	msgDepartmentRemoved = "Department removed."
)

type DepartmentInput struct {
	Name string `json:"name" validate:"required"`
}

type Departments struct {
	*List[models.Department]
	client  *api.Client
	hub     *notify.Hub
	changed *RefreshTrigger
	confirm func(models.Department) bool
}

func NewDepartments(client *api.Client, hub *notify.Hub, changed *RefreshTrigger, log *zap.Logger) *Departments {
	d := &Departments{client: client, hub: hub, changed: changed}
	d.List = NewList(d.fetchAll, hub, log)
	return d
}

func (d *Departments) SetConfirm(confirm func(models.Department) bool) {
	d.confirm = confirm
}

func (d *Departments) fetchAll(ctx context.Context) ([]models.Department, error) {
	body, err := d.client.Get(ctx, "/api/departments", nil)
	if err != nil {
		return nil, err
	}
	return api.DecodeList[models.Department](body, "departments")
}

func (d *Departments) Create(ctx context.Context, input DepartmentInput) (map[string]string, error) {
	input.Name = strings.TrimSpace(input.Name)

	if errs := fieldErrors(input); errs != nil {
		return errs, nil
	}

	if _, err := d.client.Post(ctx, "/api/departments", input); err != nil {
		d.hub.Error(displayMessage(err))
		return nil, err
	}

	d.hub.Success(msgDepartmentAdded)
	if d.changed != nil {
		d.changed.Fire()
	}
	return nil, nil
}

// Delete reports the server's message verbatim when deletion is blocked,
// e.g. while employees are still assigned; the list stays unchanged.
func (d *Departments) Delete(ctx context.Context, id int64) error {
	var target models.Department
	found := false
	for _, dept := range d.Items() {
		if dept.ID == id {
			target = dept
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("department %d not in list", id)
	}
	if d.confirm != nil && !d.confirm(target) {
		return nil
	}

	if _, err := d.client.Delete(ctx, fmt.Sprintf("/api/departments/%d", id)); err != nil {
		message := displayMessage(err)
		d.SetError(message)
		d.hub.Error(message)
		return err
	}

	d.Remove(func(dept models.Department) bool { return dept.ID == id })
	d.hub.Success(msgDepartmentRemoved)
	if d.changed != nil {
		d.changed.Fire()
	}
	return nil
}
