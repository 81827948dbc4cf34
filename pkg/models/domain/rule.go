package domain

// Resource type names shared between the rule table and the inventory
// collectors. Records and rules join on these strings.
const (
	TypeEC2Instance             = "EC2Instance"
	TypeRDSCluster              = "RDSCluster"
	TypeRDSInstance             = "RDSInstance"
	TypeTargetGroup             = "TargetGroup"
	TypeLoadBalancerTargetGroup = "LoadBalancerTargetGroup"
	TypeLoadBalancer            = "LoadBalancer"
	TypeECSService              = "ECSService"
	TypeECSCluster              = "ECSCluster"
	TypeLambda                  = "Lambda"
	TypeLambdaResource          = "LambdaResource"
	TypeSQS                     = "SQS"
	TypeS3Bucket                = "S3Bucket"
)

// ResourceTypeRule declares, for one resource type, the namespaces its
// alarms live in and the dimension keys that identify its shape. Excluded
// keys disambiguate resource types sharing a namespace: AWS/ApplicationELB
// hosts TargetGroup-only, LoadBalancer-only and TargetGroup+LoadBalancer
// alarms simultaneously.
type ResourceTypeRule struct {
	ResourceType          string
	Namespaces            []string
	RequiredDimensionKeys []string
	ExcludedDimensionKeys []string
}

// Matches reports whether an alarm's dimension key set satisfies the rule's
// shape: every required key present, no excluded key present. Values are
// irrelevant here; shape classification looks at keys only.
func (r ResourceTypeRule) Matches(dimensions map[string]string) bool {
	for _, key := range r.RequiredDimensionKeys {
		if _, ok := dimensions[key]; !ok {
			return false
		}
	}
	for _, key := range r.ExcludedDimensionKeys {
		if _, ok := dimensions[key]; ok {
			return false
		}
	}
	return true
}
