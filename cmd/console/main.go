package main

import (
	"context"
	"fmt"
	"log"

	"go.uber.org/zap"

	"github.com/Aryaman-leo/HRMS-Frontend/internal/api"
	"github.com/Aryaman-leo/HRMS-Frontend/internal/config"
	"github.com/Aryaman-leo/HRMS-Frontend/internal/dashboard"
	"github.com/Aryaman-leo/HRMS-Frontend/internal/notify"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger, err := newLogger(cfg.AppEnv)
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	client, err := api.New(cfg.BaseURL, cfg.RequestTimeout, logger)
	if err != nil {
		log.Fatalf("client error: %v", err)
	}

	hub := notify.NewHub(notify.DefaultTTL)
	defer hub.Close()

	notifications := hub.Subscribe()
	done := make(chan struct{})
	go func() {
		defer close(done)
		for n := range notifications {
			logger.Info("notification", zap.String("kind", string(n.Kind)), zap.String("message", n.Message))
		}
	}()

	stats, err := dashboard.New(client, logger).Load(context.Background())
	if err != nil {
		hub.Unsubscribe(notifications)
		<-done
		log.Fatalf("dashboard error: %v", err)
	}

	fmt.Printf("Employees:      %d\n", stats.Employees)
	fmt.Printf("Departments:    %d\n", stats.Departments)
	fmt.Printf("Present today:  %d\n", stats.PresentToday)
	fmt.Printf("Absent today:   %d\n", stats.AbsentToday)
	for _, row := range stats.Summary {
		fmt.Printf("  %-10s %-20s present=%d absent=%d\n", row.EmployeeID, row.EmployeeName, row.PresentDays, row.AbsentDays)
	}

	hub.Unsubscribe(notifications)
	<-done
}

func newLogger(appEnv string) (*zap.Logger, error) {
	if appEnv == "local" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
