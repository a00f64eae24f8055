package service

import (
	"context"
	"io"

	"aircon_controller/internal/gateway"
	"aircon_controller/internal/logger"
	"aircon_controller/internal/models"
	"aircon_controller/internal/mqtt"
	"aircon_controller/internal/repository"
)

// Controller runs one control cycle.
type Controller interface {
	RunOnce(ctx context.Context) (Result, error)
}

// Setup runs the interactive first-run dialogue.
type Setup interface {
	Run(ctx context.Context, in io.Reader, out io.Writer) (models.Appliance, error)
}

// Monitoring exposes the read-only status view.
type Monitoring interface {
	GetStatus(ctx context.Context) (Status, error)
}

// EventLog exposes the decision journal with filtering.
type EventLog interface {
	List(ctx context.Context, f LogFilter) ([]models.ControlEvent, error)
}

// Deps are the collaborators shared by the services.
type Deps struct {
	Gateway   gateway.Gateway
	Cache     TemperatureCache
	Publisher mqtt.Publisher
	Policy    Policy
	Log       *logger.Logger
}

// Service aggregates all sub-services.
type Service struct {
	Controller
	Setup
	Monitoring
	EventLog
}

func NewService(repos *repository.Repository, deps Deps) *Service {
	return &Service{
		Controller: NewControlService(repos, deps.Gateway, deps.Cache, deps.Publisher, deps.Policy, deps.Log),
		Setup:      NewSetupService(repos, deps.Gateway, deps.Publisher, deps.Log),
		Monitoring: NewStatusService(repos.Settings, repos.StateRepo, deps.Policy),
		EventLog:   NewEventLogService(repos.EventRepo),
	}
}
