package adapters

import (
	"testing"
	"time"

	"github.com/de-tools/alarm-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatHeader(t *testing.T) {
	cases := map[string]string{
		"AlarmName":             "Alarm Name",
		"AlarmArn":              "Alarm Arn",
		"StateUpdatedTimestamp": "State Updated Timestamp",
		"AgeDays":               "Age Days",
		"EstimatedMonthlyCost":  "Estimated Monthly Cost",
		"WidgetCount":           "Widget Count",
		"age_days":              "Age Days",
		"Tags":                  "Tags",
	}
	for accessor, want := range cases {
		assert.Equal(t, want, FormatHeader(accessor), accessor)
	}
}

func TestMapOrphanReportDomainToApi(t *testing.T) {
	report := MapOrphanReportDomainToApi(domain.OrphanReport{
		Count:            2,
		TotalMonthlyCost: 0.20,
		FailedInventory:  []string{domain.TypeSQS},
		Findings: []domain.OrphanFinding{
			{
				AlarmName:  "cpu-high",
				Namespace:  "AWS/EC2",
				Dimensions: "InstanceId=i-dead",
				Reason:     "Alarm not associated with any active resource",
			},
			{
				AlarmName:  "q-depth",
				Namespace:  "AWS/SQS",
				Dimensions: "QueueName=jobs",
				Reason:     "Alarm not associated with any active resource",
			},
		},
	})

	assert.Equal(t, 217, report.ID)
	assert.Equal(t, "Orphaned CloudWatch Alarms", report.Name)
	assert.Equal(t, 2, report.Count)
	assert.Equal(t, "$0.20", report.TotalMonthlyCost)
	assert.Equal(t, []string{domain.TypeSQS}, report.FailedInventory)

	assert.Equal(t, map[string]string{
		"1": "AlarmName", "2": "Namespace", "3": "Dimensions", "4": "Description",
	}, report.Fields)
	require.Len(t, report.Headers, 4)
	assert.Equal(t, "Alarm Name", report.Headers[0].Header)
	assert.Equal(t, "AlarmName", report.Headers[0].Accessor)

	require.Len(t, report.Resource, 2)
	assert.Equal(t, "cpu-high", report.Resource[0]["AlarmName"])
	assert.Equal(t, "InstanceId=i-dead", report.Resource[0]["Dimensions"])
	assert.Equal(t, "Alarm not associated with any active resource", report.Resource[0]["Description"])
}

func TestMapStaleAlarmReportDomainToApi(t *testing.T) {
	updated := time.Date(2026, 5, 1, 8, 30, 0, 0, time.UTC)
	report := MapStaleAlarmReportDomainToApi(domain.StaleAlarmReport{
		Count:            1,
		TotalMonthlyCost: 0.10,
		Findings: []domain.StaleAlarmFinding{{
			AlarmName:      "forgotten",
			AlarmArn:       "arn:aws:cloudwatch:us-east-1:123:alarm:forgotten",
			StateValue:     "INSUFFICIENT_DATA",
			StateReason:    "Insufficient Data",
			MetricName:     "CPUUtilization",
			Namespace:      "AWS/EC2",
			ActionsEnabled: true,
			AlarmActions:   1,
			StateUpdatedAt: updated,
			AgeDays:        115,
			MonthlyCost:    0.10,
			Tags:           "None",
		}},
	})

	assert.Equal(t, 215, report.ID)
	assert.Equal(t, "Unused CloudWatch Alarms", report.Name)
	require.Len(t, report.Headers, 13)
	require.Len(t, report.Resource, 1)

	row := report.Resource[0]
	assert.Equal(t, "true", row["ActionsEnabled"])
	assert.Equal(t, "1", row["AlarmActionsCount"])
	assert.Equal(t, "2026-05-01 08:30:00", row["StateUpdatedTimestamp"])
	assert.Equal(t, "115", row["AgeDays"])
	assert.Equal(t, "$0.10", row["EstimatedMonthlyCost"])
	assert.Equal(t, "CloudWatch alarm in INSUFFICIENT_DATA state for 115+ days", row["Description"])
}

func TestMapDashboardReportDomainToApi(t *testing.T) {
	report := MapDashboardReportDomainToApi(domain.DashboardReport{
		Count:            1,
		TotalMonthlyCost: 3.00,
		Findings: []domain.DashboardFinding{{
			DashboardName: "legacy-ops",
			DashboardArn:  "arn:aws:cloudwatch::123:dashboard/legacy-ops",
			AgeDays:       200,
			WidgetCount:   3,
			MonthlyCost:   3.00,
		}},
	})

	assert.Equal(t, 216, report.ID)
	assert.Equal(t, "Orphaned CloudWatch Dashboards", report.Name)
	assert.Equal(t, "$3.00", report.TotalMonthlyCost)
	require.Len(t, report.Resource, 1)

	row := report.Resource[0]
	// Zero time means the API never reported a modification timestamp.
	assert.Equal(t, "N/A", row["LastModified"])
	assert.Equal(t, "3", row["WidgetCount"])
	assert.Equal(t, "CloudWatch dashboard not modified in 200 days", row["Description"])
}
