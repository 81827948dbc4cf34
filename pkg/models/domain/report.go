package domain

import "time"

// OrphanFinding flags one alarm record whose dimensions reference a resource
// absent from the live inventory.
type OrphanFinding struct {
	AlarmName  string
	Namespace  string
	Dimensions string // "k1=v1, k2=v2"
	Reason     string
}

// OrphanReport is the aggregated outcome of one reconciliation run.
// FailedInventory lists resource types whose inventory query failed; alarms
// shaped for those types are still reported orphaned (absence of data is
// conflated with absence of resource), so the failure is surfaced here
// rather than silently folded into the findings.
type OrphanReport struct {
	Count            int
	TotalMonthlyCost float64
	FailedInventory  []string
	Findings         []OrphanFinding
}

// StaleAlarmFinding flags an alarm stuck in INSUFFICIENT_DATA beyond the
// lookback period, or whose state reason names a missing resource.
type StaleAlarmFinding struct {
	AlarmName      string
	AlarmArn       string
	StateValue     string
	StateReason    string
	MetricName     string
	Namespace      string
	ActionsEnabled bool
	AlarmActions   int
	StateUpdatedAt time.Time
	AgeDays        int
	MonthlyCost    float64
	Tags           string
}

type StaleAlarmReport struct {
	Count            int
	TotalMonthlyCost float64
	Findings         []StaleAlarmFinding
}

// DashboardFinding flags a dashboard that has not been modified within the
// lookback period.
type DashboardFinding struct {
	DashboardName string
	DashboardArn  string
	LastModified  time.Time
	AgeDays       int
	WidgetCount   int
	MonthlyCost   float64
}

type DashboardReport struct {
	Count            int
	TotalMonthlyCost float64
	Findings         []DashboardFinding
}
