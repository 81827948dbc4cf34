package audit

import "github.com/de-tools/alarm-atlas/pkg/models/domain"

// BuildOrphanReport aggregates reconciliation findings into the final report:
// finding count, count times the flat per-alarm monthly cost, and the
// resource types whose inventory query failed during the run.
func BuildOrphanReport(
	findings []domain.OrphanFinding,
	failedInventory []string,
	monthlyCostPerAlarm float64,
) domain.OrphanReport {
	return domain.OrphanReport{
		Count:            len(findings),
		TotalMonthlyCost: float64(len(findings)) * monthlyCostPerAlarm,
		FailedInventory:  failedInventory,
		Findings:         findings,
	}
}
