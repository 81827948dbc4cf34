package api

// Header pairs a display label with the row key it reads from. The casing of
// the JSON keys is shared with the sibling "find unused X" tools, which feed
// the same table component.
type Header struct {
	Header   string `json:"Header"`
	Accessor string `json:"accessor"`
}

// Report is the wire shape every audit emits: an ordered field mapping, the
// derived table headers, the finding rows and a formatted total.
type Report struct {
	ID               int                 `json:"id"`
	Name             string              `json:"name"`
	Fields           map[string]string   `json:"fields"`
	Headers          []Header            `json:"headers"`
	Count            int                 `json:"count"`
	TotalMonthlyCost string              `json:"total_monthly_cost"`
	FailedInventory  []string            `json:"failed_inventory,omitempty"`
	Resource         []map[string]string `json:"resource"`
}
