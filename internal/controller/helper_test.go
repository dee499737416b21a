package controller

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Aryaman-leo/HRMS-Frontend/internal/api"
	"github.com/Aryaman-leo/HRMS-Frontend/internal/hrtest"
	"github.com/Aryaman-leo/HRMS-Frontend/internal/notify"
)

type env struct {
	server  *hrtest.Server
	client  *api.Client
	hub     *notify.Hub
	trigger *RefreshTrigger
}

func newEnv(t *testing.T) *env {
	t.Helper()
	server := hrtest.NewServer()
	ts := httptest.NewServer(server.Handler())
	t.Cleanup(ts.Close)

	client, err := api.New(ts.URL, 5*time.Second, nil)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	hub := notify.NewHub(time.Minute)
	t.Cleanup(hub.Close)

	return &env{
		server:  server,
		client:  client,
		hub:     hub,
		trigger: NewRefreshTrigger(),
	}
}

// lastNotification returns the newest live notification, or a zero value.
func (e *env) lastNotification() notify.Notification {
	active := e.hub.Active()
	if len(active) == 0 {
		return notify.Notification{}
	}
	return active[len(active)-1]
}

func waitFor(t *testing.T, timeout time.Duration, condition func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if condition() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition never met")
}
