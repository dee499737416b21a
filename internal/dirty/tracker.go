// Package dirty tracks per-row pending vs. last-saved attendance status for
// the bulk marking form, so saves submit exactly the rows that changed.
package dirty

import (
	"sort"
	"sync"
)

// Row pairs the last server-confirmed status with the live UI selection for
// one employee.
type Row struct {
	Saved   string
	Pending string
}

// Dirty reports whether the row has a non-empty pending value that differs
// from the saved one.
func (r Row) Dirty() bool {
	return r.Pending != "" && r.Pending != r.Saved
}

// Entry is one dirty row ready for submission.
type Entry struct {
	EmployeeID string `json:"employeeId"`
	Status     string `json:"status"`
}

// Tracker holds the rows for the active date plus per-row in-flight flags
// that block duplicate submissions.
type Tracker struct {
	mu        sync.Mutex
	rows      map[string]Row
	inFlight  map[string]bool
	submitted map[string]string
	stale     bool
}

func NewTracker() *Tracker {
	return &Tracker{
		rows:      map[string]Row{},
		inFlight:  map[string]bool{},
		submitted: map[string]string{},
	}
}

// LoadSaved replaces all state with the server-confirmed statuses for the
// active date. Pending selections are prefilled to match, so nothing starts
// dirty.
func (t *Tracker) LoadSaved(saved map[string]string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rows = make(map[string]Row, len(saved))
	for id, status := range saved {
		t.rows[id] = Row{Saved: status, Pending: status}
	}
	t.inFlight = map[string]bool{}
	t.submitted = map[string]string{}
	t.stale = false
}

func (t *Tracker) SetPending(employeeID, status string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	row := t.rows[employeeID]
	row.Pending = status
	t.rows[employeeID] = row
}

func (t *Tracker) Row(employeeID string) Row {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.rows[employeeID]
}

// DirtyEntries returns the rows to submit, ordered by employee id for
// deterministic batches.
func (t *Tracker) DirtyEntries() []Entry {
	t.mu.Lock()
	defer t.mu.Unlock()
	var entries []Entry
	for id, row := range t.rows {
		if row.Dirty() {
			entries = append(entries, Entry{EmployeeID: id, Status: row.Pending})
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].EmployeeID < entries[j].EmployeeID })
	return entries
}

func (t *Tracker) HasDirty() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, row := range t.rows {
		if row.Dirty() {
			return true
		}
	}
	return false
}

// BeginSave marks the row in flight and returns the pending status being
// submitted. ok is false, and the caller must not issue a request, when the
// row is clean or a save is already running.
func (t *Tracker) BeginSave(employeeID string) (string, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	row := t.rows[employeeID]
	if t.inFlight[employeeID] || !row.Dirty() {
		return "", false
	}
	t.inFlight[employeeID] = true
	t.submitted[employeeID] = row.Pending
	return row.Pending, true
}

// EndSave clears the in-flight flag and, on success, promotes the status
// that was actually submitted. A value edited while the save was in flight
// stays pending; only what reached the server counts as saved.
func (t *Tracker) EndSave(employeeID string, ok bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	status, tracked := t.submitted[employeeID]
	delete(t.inFlight, employeeID)
	delete(t.submitted, employeeID)
	if !ok || !tracked {
		return
	}
	row := t.rows[employeeID]
	row.Saved = status
	t.rows[employeeID] = row
}

func (t *Tracker) Saving(employeeID string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.inFlight[employeeID]
}

// PromoteEntries promotes exactly the submitted batch to saved, skipping the
// named failures. Each row's saved value becomes the status that was in the
// batch; a row edited or added after the snapshot was taken is untouched and
// stays dirty.
func (t *Tracker) PromoteEntries(submitted []Entry, failedIDs []string) {
	failed := make(map[string]bool, len(failedIDs))
	for _, id := range failedIDs {
		failed[id] = true
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, entry := range submitted {
		if failed[entry.EmployeeID] {
			continue
		}
		row := t.rows[entry.EmployeeID]
		row.Saved = entry.Status
		t.rows[entry.EmployeeID] = row
	}
}

// MarkStale flags that the server rejected part of a batch without naming
// the rows; saved state must be re-fetched before trusting it again.
func (t *Tracker) MarkStale() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stale = true
}

func (t *Tracker) Stale() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stale
}
