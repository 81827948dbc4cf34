package inventory

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/rds"
	"github.com/aws/aws-sdk-go-v2/service/rds/types"
	"github.com/de-tools/alarm-atlas/pkg/models/domain"
)

// Alarms are only reconciled against the engines the audit covers.
var rdsEngineFilter = types.Filter{
	Name:   aws.String("engine"),
	Values: []string{"mysql", "aurora-mysql", "postgres", "aurora-postgresql"},
}

type rdsClusterCollector struct {
	client   rds.DescribeDBClustersAPIClient
	pageSize int32
}

func NewRDSClusterCollector(cfg aws.Config, pageSize int32) *rdsClusterCollector {
	return &rdsClusterCollector{client: rds.NewFromConfig(cfg), pageSize: pageSize}
}

func (c *rdsClusterCollector) ResourceType() string {
	return domain.TypeRDSCluster
}

func (c *rdsClusterCollector) Collect(ctx context.Context) ([]domain.ResourceRecord, error) {
	paginator := rds.NewDescribeDBClustersPaginator(c.client, &rds.DescribeDBClustersInput{
		Filters:    []types.Filter{rdsEngineFilter},
		MaxRecords: aws.Int32(c.pageSize),
	})

	var records []domain.ResourceRecord
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to describe RDS clusters: %w", err)
		}
		for _, cluster := range page.DBClusters {
			records = append(records, domain.ResourceRecord{
				ResourceType: domain.TypeRDSCluster,
				Identity: map[string]string{
					"DBClusterIdentifier": aws.ToString(cluster.DBClusterIdentifier),
				},
			})
		}
	}
	return records, nil
}

type rdsInstanceCollector struct {
	client   rds.DescribeDBInstancesAPIClient
	pageSize int32
}

func NewRDSInstanceCollector(cfg aws.Config, pageSize int32) *rdsInstanceCollector {
	return &rdsInstanceCollector{client: rds.NewFromConfig(cfg), pageSize: pageSize}
}

func (c *rdsInstanceCollector) ResourceType() string {
	return domain.TypeRDSInstance
}

func (c *rdsInstanceCollector) Collect(ctx context.Context) ([]domain.ResourceRecord, error) {
	paginator := rds.NewDescribeDBInstancesPaginator(c.client, &rds.DescribeDBInstancesInput{
		Filters:    []types.Filter{rdsEngineFilter},
		MaxRecords: aws.Int32(c.pageSize),
	})

	var records []domain.ResourceRecord
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to describe RDS instances: %w", err)
		}
		for _, instance := range page.DBInstances {
			records = append(records, domain.ResourceRecord{
				ResourceType: domain.TypeRDSInstance,
				Identity: map[string]string{
					"DBInstanceIdentifier": aws.ToString(instance.DBInstanceIdentifier),
				},
			})
		}
	}
	return records, nil
}
