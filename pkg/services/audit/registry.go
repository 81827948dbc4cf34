package audit

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/de-tools/alarm-atlas/pkg/adapters"
	"github.com/de-tools/alarm-atlas/pkg/models/api"
	"github.com/de-tools/alarm-atlas/pkg/services/alarms"
)

// ErrUnknownAudit is returned when an audit name has no registered runner.
var ErrUnknownAudit = errors.New("audit is not registered")

// Runner executes one named audit and produces the shared report shape.
type Runner func(ctx context.Context) (api.Report, error)

// Registry is the dispatch surface external tooling invokes audits through.
type Registry interface {
	// Register adds a new named audit
	Register(name string, runner Runner) error
	// Run executes the named audit
	Run(ctx context.Context, name string) (api.Report, error)
	// ListAudits returns the registered audit names, sorted
	ListAudits() []string
}

type registry struct {
	mu      sync.RWMutex
	runners map[string]Runner
}

// NewRegistry creates an empty audit registry
func NewRegistry() Registry {
	return &registry{
		runners: make(map[string]Runner),
	}
}

func (r *registry) Register(name string, runner Runner) error {
	if name == "" {
		return fmt.Errorf("audit name cannot be empty")
	}
	if runner == nil {
		return fmt.Errorf("runner cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.runners[name]; exists {
		return fmt.Errorf("audit %q is already registered", name)
	}

	r.runners[name] = runner
	return nil
}

func (r *registry) Run(ctx context.Context, name string) (api.Report, error) {
	r.mu.RLock()
	runner, exists := r.runners[name]
	r.mu.RUnlock()

	if !exists {
		return api.Report{}, fmt.Errorf("audit %q: %w", name, ErrUnknownAudit)
	}

	return runner(ctx)
}

func (r *registry) ListAudits() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.runners))
	for name := range r.runners {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Audit names exposed through the registry.
const (
	OrphanedAlarms     = "orphaned-alarms"
	StaleAlarms        = "stale-alarms"
	OrphanedDashboards = "orphaned-dashboards"
)

// NewAWSRegistry wires the three CloudWatch audits against live clients.
func NewAWSRegistry(cfg aws.Config, settings Settings) (Registry, error) {
	ctrl, err := NewAWSController(cfg, settings)
	if err != nil {
		return nil, err
	}
	staleAuditor := alarms.NewStaleAuditor(cfg, settings.PageSize, settings.AlarmMonthlyCost)
	dashboardAuditor := alarms.NewDashboardAuditor(cfg, settings.DashboardMonthlyCost)

	r := NewRegistry()
	register := func(name string, runner Runner) {
		if err == nil {
			err = r.Register(name, runner)
		}
	}

	register(OrphanedAlarms, func(ctx context.Context) (api.Report, error) {
		report, runErr := ctrl.Run(ctx)
		if runErr != nil {
			return api.Report{}, runErr
		}
		return adapters.MapOrphanReportDomainToApi(report), nil
	})
	register(StaleAlarms, func(ctx context.Context) (api.Report, error) {
		report, runErr := staleAuditor.Find(ctx, settings.StalePeriodDays)
		if runErr != nil {
			return api.Report{}, runErr
		}
		return adapters.MapStaleAlarmReportDomainToApi(report), nil
	})
	register(OrphanedDashboards, func(ctx context.Context) (api.Report, error) {
		report, runErr := dashboardAuditor.Find(ctx, settings.StalePeriodDays)
		if runErr != nil {
			return api.Report{}, runErr
		}
		return adapters.MapDashboardReportDomainToApi(report), nil
	})

	if err != nil {
		return nil, err
	}
	return r, nil
}
