// Package dashboard aggregates the console's list fetches into the counts
// the overview page shows.
package dashboard

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Aryaman-leo/HRMS-Frontend/internal/api"
	"github.com/Aryaman-leo/HRMS-Frontend/internal/listview"
	"github.com/Aryaman-leo/HRMS-Frontend/internal/models"
)

// Stats holds the derived dashboard numbers. PresentToday and AbsentToday
// count today's records only, matching status case-insensitively.
type Stats struct {
	Employees    int
	Departments  int
	PresentToday int
	AbsentToday  int
	Summary      []models.AttendanceSummaryRow
}

type Aggregator struct {
	client *api.Client
	log    *zap.Logger
}

func New(client *api.Client, log *zap.Logger) *Aggregator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Aggregator{client: client, log: log}
}

// Load issues the four fetches concurrently. A summary failure falls back to
// an empty list; any other failure zeroes the stats so the page never shows
// partial numbers.
func (a *Aggregator) Load(ctx context.Context) (Stats, error) {
	var (
		wg          sync.WaitGroup
		employees   []models.Employee
		departments []models.Department
		attendance  []models.AttendanceRecord
		summary     []models.AttendanceSummaryRow

		empErr, deptErr, attErr error
	)

	wg.Add(4)
	go func() {
		defer wg.Done()
		employees, empErr = fetchList[models.Employee](ctx, a.client, "/api/employees", "employees")
	}()
	go func() {
		defer wg.Done()
		departments, deptErr = fetchList[models.Department](ctx, a.client, "/api/departments", "departments")
	}()
	go func() {
		defer wg.Done()
		attendance, attErr = fetchList[models.AttendanceRecord](ctx, a.client, "/api/attendance", "attendance", "records")
	}()
	go func() {
		defer wg.Done()
		rows, err := fetchList[models.AttendanceSummaryRow](ctx, a.client, "/api/attendance/summary", "summary")
		if err != nil {
			a.log.Warn("attendance summary unavailable", zap.Error(err))
			return
		}
		summary = rows
	}()
	wg.Wait()

	for _, err := range []error{empErr, deptErr, attErr} {
		if err != nil {
			return Stats{}, err
		}
	}

	stats := Stats{
		Employees:   len(employees),
		Departments: len(departments),
		Summary:     summary,
	}
	today := time.Now().Format("2006-01-02")
	for _, record := range attendance {
		if record.Date != today {
			continue
		}
		switch {
		case strings.EqualFold(record.Status, models.StatusPresent):
			stats.PresentToday++
		case strings.EqualFold(record.Status, models.StatusAbsent):
			stats.AbsentToday++
		}
	}
	return stats, nil
}

func fetchList[T any](ctx context.Context, client *api.Client, path string, keys ...string) ([]T, error) {
	body, err := client.Get(ctx, path, nil)
	if err != nil {
		return nil, err
	}
	return api.DecodeList[T](body, keys...)
}

// SearchSummary filters summary rows by employee name or id.
func SearchSummary(rows []models.AttendanceSummaryRow, query string) []models.AttendanceSummaryRow {
	return listview.Search(rows, query, func(row models.AttendanceSummaryRow) []string {
		return []string{row.EmployeeID, row.EmployeeName}
	})
}
