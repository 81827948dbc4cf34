package domain

// AlarmRecord is one normalized (namespace, dimension set) shape extracted
// from a CloudWatch alarm. A metric alarm yields exactly one record; a math
// alarm yields one record per sub-metric that wraps a metric stat, all
// sharing the parent alarm's name.
type AlarmRecord struct {
	AlarmName  string
	Namespace  string
	Dimensions map[string]string
}
