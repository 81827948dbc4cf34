package audit

import "github.com/de-tools/alarm-atlas/pkg/models/domain"

// Rules returns the resource-type rule table. Order is significant: findings
// are emitted in table order, which keeps report output stable across runs.
//
// Rules sharing a namespace must stay pairwise shape-disjoint; the excluded
// keys exist for exactly that. AWS/ApplicationELB hosts three shapes at once
// (TargetGroup alone, LoadBalancer alone, and the pair), AWS/Lambda two
// (FunctionName alone vs FunctionName+Resource), AWS/ECS two (ClusterName
// alone vs ClusterName+ServiceName).
func Rules() []domain.ResourceTypeRule {
	return []domain.ResourceTypeRule{
		{
			ResourceType:          domain.TypeEC2Instance,
			Namespaces:            []string{"AWS/EC2", "CWAgent"},
			RequiredDimensionKeys: []string{"InstanceId"},
		},
		{
			ResourceType:          domain.TypeRDSCluster,
			Namespaces:            []string{"AWS/RDS"},
			RequiredDimensionKeys: []string{"DBClusterIdentifier"},
		},
		{
			ResourceType:          domain.TypeRDSInstance,
			Namespaces:            []string{"AWS/RDS"},
			RequiredDimensionKeys: []string{"DBInstanceIdentifier"},
		},
		{
			ResourceType:          domain.TypeTargetGroup,
			Namespaces:            []string{"AWS/ApplicationELB"},
			RequiredDimensionKeys: []string{"TargetGroup"},
			ExcludedDimensionKeys: []string{"LoadBalancer"},
		},
		{
			ResourceType:          domain.TypeLoadBalancerTargetGroup,
			Namespaces:            []string{"AWS/ApplicationELB"},
			RequiredDimensionKeys: []string{"TargetGroup", "LoadBalancer"},
		},
		{
			ResourceType:          domain.TypeLoadBalancer,
			Namespaces:            []string{"AWS/ApplicationELB"},
			RequiredDimensionKeys: []string{"LoadBalancer"},
			ExcludedDimensionKeys: []string{"TargetGroup"},
		},
		{
			ResourceType:          domain.TypeECSService,
			Namespaces:            []string{"AWS/ECS"},
			RequiredDimensionKeys: []string{"ClusterName", "ServiceName"},
		},
		{
			ResourceType:          domain.TypeECSCluster,
			Namespaces:            []string{"AWS/ECS"},
			RequiredDimensionKeys: []string{"ClusterName"},
			ExcludedDimensionKeys: []string{"ServiceName"},
		},
		{
			ResourceType:          domain.TypeLambda,
			Namespaces:            []string{"AWS/Lambda"},
			RequiredDimensionKeys: []string{"FunctionName"},
			ExcludedDimensionKeys: []string{"Resource"},
		},
		{
			ResourceType:          domain.TypeLambdaResource,
			Namespaces:            []string{"AWS/Lambda"},
			RequiredDimensionKeys: []string{"FunctionName", "Resource"},
		},
		{
			ResourceType:          domain.TypeSQS,
			Namespaces:            []string{"AWS/SQS"},
			RequiredDimensionKeys: []string{"QueueName"},
		},
		{
			ResourceType:          domain.TypeS3Bucket,
			Namespaces:            []string{"AWS/S3"},
			RequiredDimensionKeys: []string{"BucketName"},
		},
	}
}
