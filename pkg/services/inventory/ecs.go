package inventory

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ecs"
	"github.com/de-tools/alarm-atlas/pkg/models/domain"
)

type ecsClusterCollector struct {
	client   ecs.ListClustersAPIClient
	pageSize int32
}

func NewECSClusterCollector(cfg aws.Config, pageSize int32) *ecsClusterCollector {
	return &ecsClusterCollector{client: ecs.NewFromConfig(cfg), pageSize: pageSize}
}

func (c *ecsClusterCollector) ResourceType() string {
	return domain.TypeECSCluster
}

func (c *ecsClusterCollector) Collect(ctx context.Context) ([]domain.ResourceRecord, error) {
	paginator := ecs.NewListClustersPaginator(c.client, &ecs.ListClustersInput{
		MaxResults: aws.Int32(c.pageSize),
	})

	var records []domain.ResourceRecord
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list ECS clusters: %w", err)
		}
		for _, clusterArn := range page.ClusterArns {
			name, ok := arnSuffix(clusterArn, "cluster/")
			if !ok {
				continue
			}
			records = append(records, domain.ResourceRecord{
				ResourceType: domain.TypeECSCluster,
				Identity:     map[string]string{"ClusterName": name},
			})
		}
	}
	return records, nil
}

type ecsServiceAPI interface {
	ecs.ListClustersAPIClient
	ecs.ListServicesAPIClient
}

type ecsServiceCollector struct {
	client   ecsServiceAPI
	pageSize int32
}

func NewECSServiceCollector(cfg aws.Config, pageSize int32) *ecsServiceCollector {
	return &ecsServiceCollector{client: ecs.NewFromConfig(cfg), pageSize: pageSize}
}

func (c *ecsServiceCollector) ResourceType() string {
	return domain.TypeECSService
}

func (c *ecsServiceCollector) Collect(ctx context.Context) ([]domain.ResourceRecord, error) {
	clusters := ecs.NewListClustersPaginator(c.client, &ecs.ListClustersInput{
		MaxResults: aws.Int32(c.pageSize),
	})

	var records []domain.ResourceRecord
	for clusters.HasMorePages() {
		clusterPage, err := clusters.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list ECS clusters: %w", err)
		}
		for _, clusterArn := range clusterPage.ClusterArns {
			clusterName, ok := arnSuffix(clusterArn, "cluster/")
			if !ok {
				continue
			}

			services := ecs.NewListServicesPaginator(c.client, &ecs.ListServicesInput{
				Cluster:    aws.String(clusterArn),
				MaxResults: aws.Int32(c.pageSize),
			})
			for services.HasMorePages() {
				servicePage, err := services.NextPage(ctx)
				if err != nil {
					return nil, fmt.Errorf("failed to list services for cluster %s: %w", clusterName, err)
				}
				for _, serviceArn := range servicePage.ServiceArns {
					serviceName := serviceArn[strings.LastIndex(serviceArn, "/")+1:]
					records = append(records, domain.ResourceRecord{
						ResourceType: domain.TypeECSService,
						Identity: map[string]string{
							"ClusterName": clusterName,
							"ServiceName": serviceName,
						},
					})
				}
			}
		}
	}
	return records, nil
}
