package alarms

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/de-tools/alarm-atlas/pkg/models/domain"
	"github.com/rs/zerolog"
)

type dashboardsAPI interface {
	cloudwatch.ListDashboardsAPIClient
	GetDashboard(ctx context.Context, params *cloudwatch.GetDashboardInput, optFns ...func(*cloudwatch.Options)) (*cloudwatch.GetDashboardOutput, error)
}

// DashboardAuditor finds dashboards that have not been modified within the
// lookback period.
type DashboardAuditor struct {
	client      dashboardsAPI
	monthlyCost float64
	now         func() time.Time
}

func NewDashboardAuditor(cfg aws.Config, monthlyCost float64) *DashboardAuditor {
	return &DashboardAuditor{
		client:      cloudwatch.NewFromConfig(cfg),
		monthlyCost: monthlyCost,
		now:         time.Now,
	}
}

func (a *DashboardAuditor) Find(ctx context.Context, periodDays int) (domain.DashboardReport, error) {
	now := a.now()

	paginator := cloudwatch.NewListDashboardsPaginator(a.client, &cloudwatch.ListDashboardsInput{})

	var findings []domain.DashboardFinding
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return domain.DashboardReport{}, fmt.Errorf("failed to list dashboards: %w", err)
		}

		for _, entry := range page.DashboardEntries {
			name := aws.ToString(entry.DashboardName)

			ageDays := 0
			lastModified := time.Time{}
			if entry.LastModified != nil {
				lastModified = *entry.LastModified
				ageDays = int(now.Sub(lastModified).Hours() / 24)
			}
			if ageDays < periodDays {
				continue
			}

			findings = append(findings, domain.DashboardFinding{
				DashboardName: name,
				DashboardArn:  aws.ToString(entry.DashboardArn),
				LastModified:  lastModified,
				AgeDays:       ageDays,
				WidgetCount:   a.widgetCount(ctx, name),
				MonthlyCost:   a.monthlyCost,
			})
		}
	}

	return domain.DashboardReport{
		Count:            len(findings),
		TotalMonthlyCost: float64(len(findings)) * a.monthlyCost,
		Findings:         findings,
	}, nil
}

// widgetCount parses the dashboard body; a body that cannot be fetched or
// parsed counts as zero widgets rather than failing the audit.
func (a *DashboardAuditor) widgetCount(ctx context.Context, name string) int {
	resp, err := a.client.GetDashboard(ctx, &cloudwatch.GetDashboardInput{
		DashboardName: aws.String(name),
	})
	if err != nil {
		zerolog.Ctx(ctx).Debug().Err(err).Str("dashboard", name).Msg("failed to fetch dashboard body")
		return 0
	}

	var body struct {
		Widgets []json.RawMessage `json:"widgets"`
	}
	if err := json.Unmarshal([]byte(aws.ToString(resp.DashboardBody)), &body); err != nil {
		zerolog.Ctx(ctx).Debug().Err(err).Str("dashboard", name).Msg("failed to parse dashboard body")
		return 0
	}
	return len(body.Widgets)
}
