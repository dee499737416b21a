package models

// BulkAttendanceResult is the response of POST /api/attendance/bulk. Failed
// counts rejected records; FailedIDs names them when the server can.
type BulkAttendanceResult struct {
	Failed    int      `json:"failed"`
	FailedIDs []string `json:"failedIds,omitempty"`
}

// BulkImportResult is the response of the CSV roster-import endpoints.
type BulkImportResult struct {
	Created int `json:"created"`
	Failed  int `json:"failed"`
}
