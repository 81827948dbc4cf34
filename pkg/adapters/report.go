package adapters

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/de-tools/alarm-atlas/pkg/models/api"
	"github.com/de-tools/alarm-atlas/pkg/models/domain"
)

var (
	camelBoundary   = regexp.MustCompile(`([a-z])([A-Z])`)
	acronymBoundary = regexp.MustCompile(`([A-Z]{2,})([A-Z][a-z])`)
)

// FormatHeader converts a row accessor into a display label:
// "AlarmName" -> "Alarm Name", "AlarmArn" -> "Alarm Arn", "age_days" -> "Age Days".
func FormatHeader(accessor string) string {
	s := strings.ReplaceAll(accessor, "_", " ")
	s = camelBoundary.ReplaceAllString(s, "$1 $2")
	s = acronymBoundary.ReplaceAllString(s, "$1 $2")

	words := strings.Fields(s)
	for i, w := range words {
		if w != strings.ToUpper(w) {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

func mapColumns(columns []string) (map[string]string, []api.Header) {
	fields := make(map[string]string, len(columns))
	headers := make([]api.Header, 0, len(columns))
	for i, accessor := range columns {
		fields[strconv.Itoa(i+1)] = accessor
		headers = append(headers, api.Header{Header: FormatHeader(accessor), Accessor: accessor})
	}
	return fields, headers
}

func formatMoney(amount float64) string {
	return fmt.Sprintf("$%.2f", amount)
}

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return "N/A"
	}
	return t.Format("2006-01-02 15:04:05")
}

func MapOrphanReportDomainToApi(r domain.OrphanReport) api.Report {
	columns := []string{"AlarmName", "Namespace", "Dimensions", "Description"}
	fields, headers := mapColumns(columns)

	rows := make([]map[string]string, 0, len(r.Findings))
	for _, f := range r.Findings {
		rows = append(rows, map[string]string{
			"AlarmName":   f.AlarmName,
			"Namespace":   f.Namespace,
			"Dimensions":  f.Dimensions,
			"Description": f.Reason,
		})
	}

	return api.Report{
		ID:               217,
		Name:             "Orphaned CloudWatch Alarms",
		Fields:           fields,
		Headers:          headers,
		Count:            r.Count,
		TotalMonthlyCost: formatMoney(r.TotalMonthlyCost),
		FailedInventory:  r.FailedInventory,
		Resource:         rows,
	}
}

func MapStaleAlarmReportDomainToApi(r domain.StaleAlarmReport) api.Report {
	columns := []string{
		"AlarmName", "AlarmArn", "StateValue", "StateReason", "MetricName",
		"Namespace", "ActionsEnabled", "AlarmActionsCount", "StateUpdatedTimestamp",
		"AgeDays", "EstimatedMonthlyCost", "Tags", "Description",
	}
	fields, headers := mapColumns(columns)

	rows := make([]map[string]string, 0, len(r.Findings))
	for _, f := range r.Findings {
		rows = append(rows, map[string]string{
			"AlarmName":             f.AlarmName,
			"AlarmArn":              f.AlarmArn,
			"StateValue":            f.StateValue,
			"StateReason":           f.StateReason,
			"MetricName":            f.MetricName,
			"Namespace":             f.Namespace,
			"ActionsEnabled":        strconv.FormatBool(f.ActionsEnabled),
			"AlarmActionsCount":     strconv.Itoa(f.AlarmActions),
			"StateUpdatedTimestamp": formatTimestamp(f.StateUpdatedAt),
			"AgeDays":               strconv.Itoa(f.AgeDays),
			"EstimatedMonthlyCost":  formatMoney(f.MonthlyCost),
			"Tags":                  f.Tags,
			"Description":           fmt.Sprintf("CloudWatch alarm in %s state for %d+ days", f.StateValue, f.AgeDays),
		})
	}

	return api.Report{
		ID:               215,
		Name:             "Unused CloudWatch Alarms",
		Fields:           fields,
		Headers:          headers,
		Count:            r.Count,
		TotalMonthlyCost: formatMoney(r.TotalMonthlyCost),
		Resource:         rows,
	}
}

func MapDashboardReportDomainToApi(r domain.DashboardReport) api.Report {
	columns := []string{
		"DashboardName", "DashboardArn", "LastModified", "AgeDays",
		"WidgetCount", "EstimatedMonthlyCost", "Description",
	}
	fields, headers := mapColumns(columns)

	rows := make([]map[string]string, 0, len(r.Findings))
	for _, f := range r.Findings {
		rows = append(rows, map[string]string{
			"DashboardName":        f.DashboardName,
			"DashboardArn":         f.DashboardArn,
			"LastModified":         formatTimestamp(f.LastModified),
			"AgeDays":              strconv.Itoa(f.AgeDays),
			"WidgetCount":          strconv.Itoa(f.WidgetCount),
			"EstimatedMonthlyCost": formatMoney(f.MonthlyCost),
			"Description":          fmt.Sprintf("CloudWatch dashboard not modified in %d days", f.AgeDays),
		})
	}

	return api.Report{
		ID:               216,
		Name:             "Orphaned CloudWatch Dashboards",
		Fields:           fields,
		Headers:          headers,
		Count:            r.Count,
		TotalMonthlyCost: formatMoney(r.TotalMonthlyCost),
		Resource:         rows,
	}
}
