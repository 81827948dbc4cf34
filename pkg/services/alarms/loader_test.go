package alarms

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"github.com/de-tools/alarm-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDescribeAlarmsClient struct {
	pages []*cloudwatch.DescribeAlarmsOutput
	err   error
	calls int
}

func (f *fakeDescribeAlarmsClient) DescribeAlarms(
	ctx context.Context,
	params *cloudwatch.DescribeAlarmsInput,
	optFns ...func(*cloudwatch.Options),
) (*cloudwatch.DescribeAlarmsOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	page := f.pages[f.calls]
	f.calls++
	return page, nil
}

func metricAlarm(name, namespace string, dims map[string]string) types.MetricAlarm {
	var dimensions []types.Dimension
	for k, v := range dims {
		dimensions = append(dimensions, types.Dimension{Name: aws.String(k), Value: aws.String(v)})
	}
	return types.MetricAlarm{
		AlarmName:  aws.String(name),
		Namespace:  aws.String(namespace),
		Dimensions: dimensions,
	}
}

func TestLoadAlarms(t *testing.T) {
	ctx := context.Background()

	t.Run("plain metric alarm yields one record", func(t *testing.T) {
		client := &fakeDescribeAlarmsClient{pages: []*cloudwatch.DescribeAlarmsOutput{
			{MetricAlarms: []types.MetricAlarm{
				metricAlarm("cpu-high", "AWS/EC2", map[string]string{"InstanceId": "i-1"}),
			}},
		}}

		records, err := (&Loader{client: client, pageSize: 10}).LoadAlarms(ctx)
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, domain.AlarmRecord{
			AlarmName:  "cpu-high",
			Namespace:  "AWS/EC2",
			Dimensions: map[string]string{"InstanceId": "i-1"},
		}, records[0])
	})

	t.Run("math alarm fans out per metric stat", func(t *testing.T) {
		alarm := types.MetricAlarm{
			AlarmName: aws.String("error-rate"),
			Metrics: []types.MetricDataQuery{
				{
					// Expression over the other queries carries no metric of
					// its own and must not produce a record.
					Id:         aws.String("ratio"),
					Expression: aws.String("errors / invocations"),
				},
				{
					Id: aws.String("errors"),
					MetricStat: &types.MetricStat{Metric: &types.Metric{
						Namespace: aws.String("AWS/Lambda"),
						Dimensions: []types.Dimension{
							{Name: aws.String("FunctionName"), Value: aws.String("checkout")},
						},
					}},
				},
				{
					Id: aws.String("invocations"),
					MetricStat: &types.MetricStat{Metric: &types.Metric{
						Namespace: aws.String("AWS/Lambda"),
						Dimensions: []types.Dimension{
							{Name: aws.String("FunctionName"), Value: aws.String("billing")},
						},
					}},
				},
			},
		}
		client := &fakeDescribeAlarmsClient{pages: []*cloudwatch.DescribeAlarmsOutput{
			{MetricAlarms: []types.MetricAlarm{alarm}},
		}}

		records, err := (&Loader{client: client, pageSize: 10}).LoadAlarms(ctx)
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, "error-rate", records[0].AlarmName)
		assert.Equal(t, map[string]string{"FunctionName": "checkout"}, records[0].Dimensions)
		assert.Equal(t, "error-rate", records[1].AlarmName)
		assert.Equal(t, map[string]string{"FunctionName": "billing"}, records[1].Dimensions)
	})

	t.Run("paginates until the token runs out", func(t *testing.T) {
		client := &fakeDescribeAlarmsClient{pages: []*cloudwatch.DescribeAlarmsOutput{
			{
				MetricAlarms: []types.MetricAlarm{metricAlarm("a", "AWS/EC2", map[string]string{"InstanceId": "i-1"})},
				NextToken:    aws.String("page-2"),
			},
			{
				MetricAlarms: []types.MetricAlarm{metricAlarm("b", "AWS/EC2", map[string]string{"InstanceId": "i-2"})},
			},
		}}

		records, err := (&Loader{client: client, pageSize: 1}).LoadAlarms(ctx)
		require.NoError(t, err)
		assert.Len(t, records, 2)
		assert.Equal(t, 2, client.calls)
	})

	t.Run("describe failure is returned", func(t *testing.T) {
		client := &fakeDescribeAlarmsClient{err: errors.New("access denied")}

		_, err := (&Loader{client: client, pageSize: 10}).LoadAlarms(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to describe alarms")
	})
}

func TestNormalizeAlarm_EmptyDimensions(t *testing.T) {
	records := normalizeAlarm(types.MetricAlarm{
		AlarmName: aws.String("fleet"),
		Namespace: aws.String("AWS/EC2"),
	})
	require.Len(t, records, 1)
	assert.Empty(t, records[0].Dimensions)
	assert.NotNil(t, records[0].Dimensions)
}
