package controller

import (
	"context"
	"net/url"

	"go.uber.org/zap"

	"github.com/Aryaman-leo/HRMS-Frontend/internal/api"
	"github.com/Aryaman-leo/HRMS-Frontend/internal/models"
	"github.com/Aryaman-leo/HRMS-Frontend/internal/notify"
)

const adminLogFetchLimit = "500"

// AdminLogs is the read-only audit trail list.
type AdminLogs struct {
	*List[models.AdminLogEntry]
	client *api.Client
}

func NewAdminLogs(client *api.Client, hub *notify.Hub, log *zap.Logger) *AdminLogs {
	a := &AdminLogs{client: client}
	a.List = NewList(a.fetchAll, hub, log)
	return a
}

func (a *AdminLogs) fetchAll(ctx context.Context) ([]models.AdminLogEntry, error) {
	query := url.Values{}
	query.Set("limit", adminLogFetchLimit)
	body, err := a.client.Get(ctx, "/api/admin-logs", query)
	if err != nil {
		return nil, err
	}
	return api.DecodeList[models.AdminLogEntry](body, "logs")
}
