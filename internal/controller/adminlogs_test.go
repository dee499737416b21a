package controller

import (
	"context"
	"fmt"
	"testing"

	"github.com/Aryaman-leo/HRMS-Frontend/internal/hrtest"
	"github.com/Aryaman-leo/HRMS-Frontend/internal/listview"
	"github.com/Aryaman-leo/HRMS-Frontend/internal/models"
)

func TestAdminLogsFetchesWrappedList(t *testing.T) {
	e := newEnv(t)
	e.server.Envelope = hrtest.EnvelopeEntity
	e.server.AddLog("create", "employee", "EMP001", "Added Jane")
	e.server.AddLog("delete", "department", "4", "Removed Sales")

	logs := NewAdminLogs(e.client, e.hub, nil)
	if err := logs.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}

	if logs.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", logs.Len())
	}
	if logs.Items()[0].Action != "create" || logs.Items()[1].EntityType != "department" {
		t.Fatalf("unexpected entries: %+v", logs.Items())
	}
}

func TestAdminLogsCapAtFiveHundredNewest(t *testing.T) {
	e := newEnv(t)
	for i := 0; i < 650; i++ {
		e.server.AddLog("create", "employee", fmt.Sprintf("EMP%03d", i), "seeded")
	}

	logs := NewAdminLogs(e.client, e.hub, nil)
	if err := logs.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}

	if logs.Len() != 500 {
		t.Fatalf("expected the cap of 500 entries, got %d", logs.Len())
	}
	// Oldest 150 fall off the front.
	if got := logs.Items()[0].EntityID; got != "EMP150" {
		t.Fatalf("expected the cap to keep the newest entries, first is %q", got)
	}
}

func TestAdminLogsSearchAndPagination(t *testing.T) {
	e := newEnv(t)
	for i := 0; i < 30; i++ {
		e.server.AddLog("create", "employee", fmt.Sprintf("EMP%03d", i), "Added someone")
	}
	e.server.AddLog("delete", "employee", "EMP007", "Removed Jane")

	logs := NewAdminLogs(e.client, e.hub, nil)
	if err := logs.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}

	view := listview.NewView(25)
	view.SetSearch("removed")
	page := listview.Apply(view, logs.Items(), func(entry models.AdminLogEntry) []string {
		return entry.SearchText()
	})
	if page.Total != 1 || page.Items[0].EntityID != "EMP007" {
		t.Fatalf("search missed the delete entry: %+v", page)
	}

	view.SetSearch("")
	page = listview.Apply(view, logs.Items(), func(entry models.AdminLogEntry) []string {
		return entry.SearchText()
	})
	if page.Total != 31 || page.TotalPages != 2 || len(page.Items) != 25 {
		t.Fatalf("unexpected pagination: total=%d pages=%d len=%d", page.Total, page.TotalPages, len(page.Items))
	}
}
