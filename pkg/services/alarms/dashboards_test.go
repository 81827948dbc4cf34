package alarms

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDashboardsClient struct {
	pages  []*cloudwatch.ListDashboardsOutput
	err    error
	calls  int
	body   string
	getErr error
}

func (f *fakeDashboardsClient) ListDashboards(
	ctx context.Context,
	params *cloudwatch.ListDashboardsInput,
	optFns ...func(*cloudwatch.Options),
) (*cloudwatch.ListDashboardsOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	page := f.pages[f.calls]
	f.calls++
	return page, nil
}

func (f *fakeDashboardsClient) GetDashboard(
	ctx context.Context,
	params *cloudwatch.GetDashboardInput,
	optFns ...func(*cloudwatch.Options),
) (*cloudwatch.GetDashboardOutput, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return &cloudwatch.GetDashboardOutput{DashboardBody: aws.String(f.body)}, nil
}

func newDashboardAuditor(client dashboardsAPI, now time.Time) *DashboardAuditor {
	return &DashboardAuditor{
		client:      client,
		monthlyCost: 3.00,
		now:         func() time.Time { return now },
	}
}

func TestDashboardAuditorFind(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC)

	t.Run("stale dashboard is flagged with widget count", func(t *testing.T) {
		modified := now.AddDate(0, 0, -200)
		client := &fakeDashboardsClient{
			pages: []*cloudwatch.ListDashboardsOutput{{
				DashboardEntries: []types.DashboardEntry{{
					DashboardName: aws.String("legacy-ops"),
					DashboardArn:  aws.String("arn:aws:cloudwatch::123:dashboard/legacy-ops"),
					LastModified:  aws.Time(modified),
				}},
			}},
			body: `{"widgets":[{"type":"metric"},{"type":"text"},{"type":"metric"}]}`,
		}

		report, err := newDashboardAuditor(client, now).Find(ctx, 90)
		require.NoError(t, err)
		require.Len(t, report.Findings, 1)

		finding := report.Findings[0]
		assert.Equal(t, "legacy-ops", finding.DashboardName)
		assert.Equal(t, 200, finding.AgeDays)
		assert.Equal(t, modified, finding.LastModified)
		assert.Equal(t, 3, finding.WidgetCount)
		assert.InDelta(t, 3.00, finding.MonthlyCost, 1e-9)
		assert.Equal(t, 1, report.Count)
		assert.InDelta(t, 3.00, report.TotalMonthlyCost, 1e-9)
	})

	t.Run("recently modified dashboard is skipped", func(t *testing.T) {
		client := &fakeDashboardsClient{
			pages: []*cloudwatch.ListDashboardsOutput{{
				DashboardEntries: []types.DashboardEntry{{
					DashboardName: aws.String("active"),
					LastModified:  aws.Time(now.AddDate(0, 0, -5)),
				}},
			}},
		}

		report, err := newDashboardAuditor(client, now).Find(ctx, 90)
		require.NoError(t, err)
		assert.Empty(t, report.Findings)
	})

	t.Run("unreadable body counts zero widgets", func(t *testing.T) {
		client := &fakeDashboardsClient{
			pages: []*cloudwatch.ListDashboardsOutput{{
				DashboardEntries: []types.DashboardEntry{{
					DashboardName: aws.String("broken"),
					LastModified:  aws.Time(now.AddDate(0, 0, -100)),
				}},
			}},
			getErr: errors.New("denied"),
		}

		report, err := newDashboardAuditor(client, now).Find(ctx, 90)
		require.NoError(t, err)
		require.Len(t, report.Findings, 1)
		assert.Zero(t, report.Findings[0].WidgetCount)
	})

	t.Run("list failure is returned", func(t *testing.T) {
		client := &fakeDashboardsClient{err: errors.New("throttled")}

		_, err := newDashboardAuditor(client, now).Find(ctx, 90)
		assert.Error(t, err)
	})
}
