package alarms

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"github.com/de-tools/alarm-atlas/pkg/models/domain"
	"github.com/rs/zerolog"
)

const maxStateReasonLength = 100

type staleAlarmsAPI interface {
	cloudwatch.DescribeAlarmsAPIClient
	ListTagsForResource(ctx context.Context, params *cloudwatch.ListTagsForResourceInput, optFns ...func(*cloudwatch.Options)) (*cloudwatch.ListTagsForResourceOutput, error)
}

// StaleAuditor finds alarms that have sat in INSUFFICIENT_DATA beyond the
// lookback period, or whose state reason names a resource that is gone.
type StaleAuditor struct {
	client      staleAlarmsAPI
	pageSize    int32
	monthlyCost float64
	now         func() time.Time
}

func NewStaleAuditor(cfg aws.Config, pageSize int32, monthlyCost float64) *StaleAuditor {
	return &StaleAuditor{
		client:      cloudwatch.NewFromConfig(cfg),
		pageSize:    pageSize,
		monthlyCost: monthlyCost,
		now:         time.Now,
	}
}

func (a *StaleAuditor) Find(ctx context.Context, periodDays int) (domain.StaleAlarmReport, error) {
	now := a.now()
	cutoff := now.AddDate(0, 0, -periodDays)

	paginator := cloudwatch.NewDescribeAlarmsPaginator(a.client, &cloudwatch.DescribeAlarmsInput{
		MaxRecords: aws.Int32(a.pageSize),
	})

	var findings []domain.StaleAlarmFinding
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return domain.StaleAlarmReport{}, fmt.Errorf("failed to describe alarms: %w", err)
		}

		for _, alarm := range page.MetricAlarms {
			candidate := staleCandidate{
				name:           aws.ToString(alarm.AlarmName),
				arn:            aws.ToString(alarm.AlarmArn),
				state:          string(alarm.StateValue),
				reason:         aws.ToString(alarm.StateReason),
				metricName:     aws.ToString(alarm.MetricName),
				namespace:      aws.ToString(alarm.Namespace),
				actionsEnabled: aws.ToBool(alarm.ActionsEnabled),
				alarmActions:   len(alarm.AlarmActions),
				stateUpdated:   alarm.StateUpdatedTimestamp,
			}
			if finding, ok := a.evaluate(ctx, candidate, now, cutoff); ok {
				findings = append(findings, finding)
			}
		}
		for _, alarm := range page.CompositeAlarms {
			candidate := staleCandidate{
				name:           aws.ToString(alarm.AlarmName),
				arn:            aws.ToString(alarm.AlarmArn),
				state:          string(alarm.StateValue),
				reason:         aws.ToString(alarm.StateReason),
				actionsEnabled: aws.ToBool(alarm.ActionsEnabled),
				alarmActions:   len(alarm.AlarmActions),
				stateUpdated:   alarm.StateUpdatedTimestamp,
			}
			if finding, ok := a.evaluate(ctx, candidate, now, cutoff); ok {
				findings = append(findings, finding)
			}
		}
	}

	return domain.StaleAlarmReport{
		Count:            len(findings),
		TotalMonthlyCost: float64(len(findings)) * a.monthlyCost,
		Findings:         findings,
	}, nil
}

type staleCandidate struct {
	name           string
	arn            string
	state          string
	reason         string
	metricName     string
	namespace      string
	actionsEnabled bool
	alarmActions   int
	stateUpdated   *time.Time
}

func (a *StaleAuditor) evaluate(
	ctx context.Context,
	c staleCandidate,
	now, cutoff time.Time,
) (domain.StaleAlarmFinding, bool) {
	stale := false
	if c.state == string(types.StateValueInsufficientData) &&
		c.stateUpdated != nil && c.stateUpdated.Before(cutoff) {
		stale = true
	}

	lowerReason := strings.ToLower(c.reason)
	if strings.Contains(lowerReason, "does not exist") || strings.Contains(lowerReason, "not found") {
		stale = true
	}

	if !stale {
		return domain.StaleAlarmFinding{}, false
	}

	ageDays := 0
	updatedAt := time.Time{}
	if c.stateUpdated != nil {
		updatedAt = *c.stateUpdated
		ageDays = int(now.Sub(updatedAt).Hours() / 24)
	}

	reason := c.reason
	if len(reason) > maxStateReasonLength {
		reason = reason[:maxStateReasonLength] + "..."
	}

	metricName := c.metricName
	if metricName == "" {
		metricName = "N/A"
	}
	namespace := c.namespace
	if namespace == "" {
		namespace = "N/A"
	}

	return domain.StaleAlarmFinding{
		AlarmName:      c.name,
		AlarmArn:       c.arn,
		StateValue:     c.state,
		StateReason:    reason,
		MetricName:     metricName,
		Namespace:      namespace,
		ActionsEnabled: c.actionsEnabled,
		AlarmActions:   c.alarmActions,
		StateUpdatedAt: updatedAt,
		AgeDays:        ageDays,
		MonthlyCost:    a.monthlyCost,
		Tags:           a.tags(ctx, c.arn),
	}, true
}

// tags renders the alarm's tags as "k=v, ..."; lookup failures degrade to
// "None" since tags are informational here.
func (a *StaleAuditor) tags(ctx context.Context, arn string) string {
	resp, err := a.client.ListTagsForResource(ctx, &cloudwatch.ListTagsForResourceInput{
		ResourceARN: aws.String(arn),
	})
	if err != nil {
		zerolog.Ctx(ctx).Debug().Err(err).Str("alarm_arn", arn).Msg("failed to list alarm tags")
		return "None"
	}
	if len(resp.Tags) == 0 {
		return "None"
	}

	pairs := make([]string, 0, len(resp.Tags))
	for _, tag := range resp.Tags {
		pairs = append(pairs, fmt.Sprintf("%s=%s", aws.ToString(tag.Key), aws.ToString(tag.Value)))
	}
	return strings.Join(pairs, ", ")
}
