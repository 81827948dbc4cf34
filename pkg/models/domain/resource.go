package domain

// ResourceRecord identifies one live resource by the dimension key/value
// pairs CloudWatch uses to scope metrics to it, e.g. {InstanceId: "i-123"}
// or the compound {ClusterName: "c1", ServiceName: "s1"}.
type ResourceRecord struct {
	ResourceType string
	Identity     map[string]string
}

// InventoryResult is the tagged outcome of one per-type inventory query.
// A failed query carries its cause and an empty record set; reconciliation
// degrades to the empty inventory for that type instead of aborting the run.
type InventoryResult struct {
	ResourceType string
	Records      []ResourceRecord
	Err          error
}
