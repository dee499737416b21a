// Package bulkimport uploads roster files to the bulk CSV endpoints. It
// accepts .csv files as-is and converts the first sheet of an .xlsx workbook
// to CSV before upload.
package bulkimport

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/Aryaman-leo/HRMS-Frontend/internal/api"
	"github.com/Aryaman-leo/HRMS-Frontend/internal/models"
	"github.com/Aryaman-leo/HRMS-Frontend/internal/notify"
)

const (
	msgSelectCSV    = "Please select a .csv file."
	msgImportFailed = "Import failed."
)

var errUnsupportedType = errors.New("unsupported file type")

// ResultMessage renders the success notification for an import outcome.
type ResultMessage func(created, failed int) string

func defaultResultMessage(created, failed int) string {
	if failed > 0 {
		return fmt.Sprintf("Created %d, skipped %d.", created, failed)
	}
	return fmt.Sprintf("Created %d.", created)
}

// EmployeeResultMessage phrases employee import outcomes.
func EmployeeResultMessage(created, failed int) string {
	if failed > 0 {
		return fmt.Sprintf("Created %d, skipped %d (duplicates/invalid).", created, failed)
	}
	return fmt.Sprintf("Created %d employee(s).", created)
}

// DepartmentResultMessage phrases department import outcomes.
func DepartmentResultMessage(created, failed int) string {
	if failed > 0 {
		return fmt.Sprintf("Created %d, skipped %d (duplicates).", created, failed)
	}
	return fmt.Sprintf("Created %d department(s).", created)
}

type Importer struct {
	client  *api.Client
	hub     *notify.Hub
	log     *zap.Logger
	message ResultMessage

	// OnSuccess runs after a completed upload so the owning list can
	// re-fetch.
	OnSuccess func()
}

func New(client *api.Client, hub *notify.Hub, message ResultMessage, log *zap.Logger) *Importer {
	if message == nil {
		message = defaultResultMessage
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Importer{client: client, hub: hub, log: log, message: message}
}

// Upload sends the file to the given bulk endpoint. Anything that is not a
// .csv or .xlsx by extension is rejected before any network traffic.
func (i *Importer) Upload(ctx context.Context, endpoint, filename string, file io.Reader) (models.BulkImportResult, error) {
	var result models.BulkImportResult

	payload, uploadName, err := prepare(filename, file)
	if err != nil {
		if errors.Is(err, errUnsupportedType) {
			i.hub.Error(msgSelectCSV)
		} else {
			i.hub.Error(msgImportFailed)
		}
		return result, err
	}

	body, err := i.client.PostMultipart(ctx, endpoint, "file", uploadName, bytes.NewReader(payload))
	if err != nil {
		var apiErr *api.Error
		if errors.As(err, &apiErr) && apiErr.Message != "" {
			i.hub.Error(apiErr.Message)
		} else {
			i.hub.Error(msgImportFailed)
		}
		return result, err
	}

	if err := json.Unmarshal(body, &result); err != nil {
		i.hub.Error(msgImportFailed)
		return result, fmt.Errorf("decode import result: %w", err)
	}

	i.log.Info("bulk import finished",
		zap.String("endpoint", endpoint),
		zap.Int("created", result.Created),
		zap.Int("failed", result.Failed))
	i.hub.Success(i.message(result.Created, result.Failed))
	if i.OnSuccess != nil {
		i.OnSuccess()
	}
	return result, nil
}

// prepare returns the CSV bytes to upload and the filename to present.
func prepare(filename string, file io.Reader) ([]byte, string, error) {
	switch strings.ToLower(path.Ext(filename)) {
	case ".csv":
		data, err := io.ReadAll(file)
		if err != nil {
			return nil, "", fmt.Errorf("read upload: %w", err)
		}
		return data, filename, nil
	case ".xlsx":
		data, err := convertWorkbook(file)
		if err != nil {
			return nil, "", err
		}
		return data, strings.TrimSuffix(filename, path.Ext(filename)) + ".csv", nil
	default:
		return nil, "", fmt.Errorf("%w %q", errUnsupportedType, path.Ext(filename))
	}
}

func convertWorkbook(file io.Reader) ([]byte, error) {
	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	workbook, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer func() { _ = workbook.Close() }()

	sheet := workbook.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("no worksheet found")
	}
	rows, err := workbook.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read worksheet: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("worksheet is empty")
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return nil, fmt.Errorf("convert worksheet: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("convert worksheet: %w", err)
	}
	return buf.Bytes(), nil
}
