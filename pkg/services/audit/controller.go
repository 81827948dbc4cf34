package audit

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/de-tools/alarm-atlas/pkg/models/domain"
	"github.com/de-tools/alarm-atlas/pkg/services/alarms"
	"github.com/de-tools/alarm-atlas/pkg/services/inventory"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// AlarmSource supplies the normalized alarm catalog. Without it the audit is
// meaningless, so a load failure aborts the whole run.
type AlarmSource interface {
	LoadAlarms(ctx context.Context) ([]domain.AlarmRecord, error)
}

// Controller runs one orphan audit: it fans out the inventory collectors and
// the alarm loader, joins, reconciles the two snapshots against the rule
// table and aggregates the findings.
type Controller struct {
	rules      []domain.ResourceTypeRule
	alarms     AlarmSource
	collectors []inventory.Collector
	settings   Settings
}

func NewController(source AlarmSource, collectors []inventory.Collector, settings Settings) (*Controller, error) {
	if source == nil {
		return nil, fmt.Errorf("an alarm source must be provided")
	}
	if len(collectors) == 0 {
		return nil, fmt.Errorf("at least one collector must be provided")
	}

	seen := make(map[string]struct{}, len(collectors))
	for _, collector := range collectors {
		rt := collector.ResourceType()
		if _, exists := seen[rt]; exists {
			return nil, fmt.Errorf("duplicate collector for resource type: %s", rt)
		}
		seen[rt] = struct{}{}
	}

	return &Controller{
		rules:      Rules(),
		alarms:     source,
		collectors: collectors,
		settings:   settings,
	}, nil
}

// NewAWSController wires the full collector set for the rule table against
// live AWS clients built from the given SDK config. Retry/backoff policy is
// whatever the config carries; the controller adds none of its own.
func NewAWSController(cfg aws.Config, settings Settings) (*Controller, error) {
	return NewController(
		alarms.NewLoader(cfg, settings.PageSize),
		[]inventory.Collector{
			inventory.NewEC2Collector(cfg, settings.PageSize),
			inventory.NewRDSClusterCollector(cfg, settings.PageSize),
			inventory.NewRDSInstanceCollector(cfg, settings.PageSize),
			inventory.NewTargetGroupCollector(cfg, settings.PageSize),
			inventory.NewLBTargetGroupCollector(cfg, settings.PageSize),
			inventory.NewLoadBalancerCollector(cfg, settings.PageSize),
			inventory.NewECSServiceCollector(cfg, settings.PageSize),
			inventory.NewECSClusterCollector(cfg, settings.PageSize),
			inventory.NewLambdaCollector(cfg, settings.PageSize),
			inventory.NewLambdaResourceCollector(cfg, settings.PageSize),
			inventory.NewSQSCollector(cfg, settings.PageSize),
			inventory.NewS3Collector(cfg),
		},
		settings,
	)
}

// Run executes the audit. A failed inventory query degrades that type to an
// empty inventory (its alarms will all be flagged, see the report's
// FailedInventory); a failed alarm load, or cancellation of ctx, fails the
// run as a whole rather than returning a silently partial report.
func (c *Controller) Run(ctx context.Context) (domain.OrphanReport, error) {
	results := make([]domain.InventoryResult, len(c.collectors))
	var alarmRecords []domain.AlarmRecord

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.settings.Workers)

	g.Go(func() error {
		records, err := c.alarms.LoadAlarms(gctx)
		if err != nil {
			return fmt.Errorf("failed to load alarm catalog: %w", err)
		}
		alarmRecords = records
		return nil
	})

	for i, collector := range c.collectors {
		i, collector := i, collector
		g.Go(func() error {
			records, err := collector.Collect(gctx)
			if err != nil {
				zerolog.Ctx(ctx).Error().
					Err(err).
					Str("resource_type", collector.ResourceType()).
					Msg("inventory query failed, continuing with empty inventory")
				results[i] = domain.InventoryResult{ResourceType: collector.ResourceType(), Err: err}
				return nil
			}
			results[i] = domain.InventoryResult{ResourceType: collector.ResourceType(), Records: records}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return domain.OrphanReport{}, err
	}
	// Collectors swallow their own errors, so a cancellation that hit only
	// collectors would otherwise slip through as a partial report.
	if err := ctx.Err(); err != nil {
		return domain.OrphanReport{}, err
	}

	inventoryByType := make(map[string][]domain.ResourceRecord, len(results))
	var failed []string
	for _, result := range results {
		if result.Err != nil {
			failed = append(failed, result.ResourceType)
			continue
		}
		inventoryByType[result.ResourceType] = result.Records
	}

	findings := Reconcile(c.rules, inventoryByType, alarmRecords)
	return BuildOrphanReport(findings, failed, c.settings.AlarmMonthlyCost), nil
}
