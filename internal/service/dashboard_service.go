package service

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/fleetdesk/fleet-api/internal/store"
)

// DashboardMetrics holds the aggregate counts shown on the dashboard.
type DashboardMetrics struct {
	TotalUsers     int64 `json:"totalUsers"`
	TotalVehicles  int64 `json:"totalVehicles"`
	ActiveVehicles int64 `json:"activeVehicles"`
}

// DashboardService computes aggregate metrics across users and vehicles.
type DashboardService interface {
	// Metrics returns the dashboard counters. The underlying reads run in
	// parallel and are not transactional with each other.
	Metrics(ctx context.Context) (*DashboardMetrics, error)
}

// DashboardServiceImpl implements the DashboardService interface.
type DashboardServiceImpl struct {
	users    store.UserStore
	vehicles store.VehicleStore
	logger   *slog.Logger
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(
	users store.UserStore,
	vehicles store.VehicleStore,
	logger *slog.Logger,
) *DashboardServiceImpl {
	if logger == nil {
		logger = slog.Default()
	}
	return &DashboardServiceImpl{
		users:    users,
		vehicles: vehicles,
		logger:   logger.With("component", "dashboard_service"),
	}
}

// Ensure DashboardServiceImpl implements DashboardService interface
var _ DashboardService = (*DashboardServiceImpl)(nil)

// Metrics implements DashboardService.Metrics
func (s *DashboardServiceImpl) Metrics(ctx context.Context) (*DashboardMetrics, error) {
	var metrics DashboardMetrics

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		total, err := s.users.Count(ctx)
		if err != nil {
			return err
		}
		metrics.TotalUsers = total
		return nil
	})

	g.Go(func() error {
		vm, err := s.vehicles.Metrics(ctx)
		if err != nil {
			return err
		}
		metrics.TotalVehicles = vm.TotalVehicles
		metrics.ActiveVehicles = vm.ActiveVehicles
		return nil
	})

	if err := g.Wait(); err != nil {
		s.logger.Error("failed to compute dashboard metrics", "error", err)
		return nil, err
	}

	return &metrics, nil
}
