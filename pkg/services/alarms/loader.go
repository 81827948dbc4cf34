package alarms

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"github.com/de-tools/alarm-atlas/pkg/models/domain"
)

// Loader enumerates the CloudWatch alarm catalog and normalizes every metric
// alarm to (namespace, dimension set) records.
type Loader struct {
	client   cloudwatch.DescribeAlarmsAPIClient
	pageSize int32
}

func NewLoader(cfg aws.Config, pageSize int32) *Loader {
	return &Loader{client: cloudwatch.NewFromConfig(cfg), pageSize: pageSize}
}

// LoadAlarms returns one record per plain metric alarm and, for math alarms,
// one record per sub-metric that wraps a metric stat. Each sub-metric may
// reference a different resource, so each is reconciled on its own; a
// sub-metric without a metric stat (an expression over other queries) is
// skipped, not an error.
func (l *Loader) LoadAlarms(ctx context.Context) ([]domain.AlarmRecord, error) {
	paginator := cloudwatch.NewDescribeAlarmsPaginator(l.client, &cloudwatch.DescribeAlarmsInput{
		MaxRecords: aws.Int32(l.pageSize),
	})

	var records []domain.AlarmRecord
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to describe alarms: %w", err)
		}
		for _, alarm := range page.MetricAlarms {
			records = append(records, normalizeAlarm(alarm)...)
		}
	}
	return records, nil
}

func normalizeAlarm(alarm types.MetricAlarm) []domain.AlarmRecord {
	name := aws.ToString(alarm.AlarmName)

	if alarm.Namespace != nil {
		return []domain.AlarmRecord{{
			AlarmName:  name,
			Namespace:  aws.ToString(alarm.Namespace),
			Dimensions: dimensionsToMap(alarm.Dimensions),
		}}
	}

	var records []domain.AlarmRecord
	for _, query := range alarm.Metrics {
		stat := query.MetricStat
		if stat == nil || stat.Metric == nil || stat.Metric.Namespace == nil {
			continue
		}
		records = append(records, domain.AlarmRecord{
			AlarmName:  name,
			Namespace:  aws.ToString(stat.Metric.Namespace),
			Dimensions: dimensionsToMap(stat.Metric.Dimensions),
		})
	}
	return records
}

func dimensionsToMap(dimensions []types.Dimension) map[string]string {
	m := make(map[string]string, len(dimensions))
	for _, d := range dimensions {
		m[aws.ToString(d.Name)] = aws.ToString(d.Value)
	}
	return m
}
