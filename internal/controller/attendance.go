package controller

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"github.com/Aryaman-leo/HRMS-Frontend/internal/api"
	"github.com/Aryaman-leo/HRMS-Frontend/internal/listview"
	"github.com/Aryaman-leo/HRMS-Frontend/internal/models"
	"github.com/Aryaman-leo/HRMS-Frontend/internal/notify"
)

// Attendance is the records list with its employee and date-range filters.
type Attendance struct {
	*List[models.AttendanceRecord]
	client *api.Client
}

func NewAttendance(client *api.Client, hub *notify.Hub, log *zap.Logger) *Attendance {
	a := &Attendance{client: client}
	a.List = NewList(a.fetchAll, hub, log)
	return a
}

func (a *Attendance) fetchAll(ctx context.Context) ([]models.AttendanceRecord, error) {
	body, err := a.client.Get(ctx, "/api/attendance", nil)
	if err != nil {
		return nil, err
	}
	return api.DecodeList[models.AttendanceRecord](body, "attendance", "records")
}

// Filtered derives the visible records: exact employee match when set,
// inclusive date bounds when set. The source list is never mutated.
func (a *Attendance) Filtered(employeeID string, dates listview.DateRange) []models.AttendanceRecord {
	records := a.Items()
	if employeeID != "" {
		records = listview.Filter(records, func(r models.AttendanceRecord) bool {
			return r.EmployeeID == employeeID
		})
	}
	if !dates.IsZero() {
		records = listview.Filter(records, func(r models.AttendanceRecord) bool {
			return dates.Contains(r.Date)
		})
	}
	return records
}

// Option is a selectable filter value.
type Option struct {
	Value string
	Label string
}

// EmployeeOptions lists the distinct employees present in the records,
// labeled "name (id)" and sorted by label.
func (a *Attendance) EmployeeOptions() []Option {
	seen := map[string]bool{}
	var options []Option
	for _, record := range a.Items() {
		if record.EmployeeID == "" || seen[record.EmployeeID] {
			continue
		}
		seen[record.EmployeeID] = true
		options = append(options, Option{
			Value: record.EmployeeID,
			Label: record.DisplayName() + " (" + record.EmployeeID + ")",
		})
	}
	sort.Slice(options, func(i, j int) bool { return options[i].Label < options[j].Label })
	return options
}
