package inventory

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/de-tools/alarm-atlas/pkg/models/domain"
)

type ec2Collector struct {
	client   ec2.DescribeInstancesAPIClient
	pageSize int32
}

func NewEC2Collector(cfg aws.Config, pageSize int32) *ec2Collector {
	return &ec2Collector{client: ec2.NewFromConfig(cfg), pageSize: pageSize}
}

func (c *ec2Collector) ResourceType() string {
	return domain.TypeEC2Instance
}

func (c *ec2Collector) Collect(ctx context.Context) ([]domain.ResourceRecord, error) {
	paginator := ec2.NewDescribeInstancesPaginator(c.client, &ec2.DescribeInstancesInput{
		MaxResults: aws.Int32(c.pageSize),
	})

	var records []domain.ResourceRecord
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to describe EC2 instances: %w", err)
		}
		for _, reservation := range page.Reservations {
			for _, instance := range reservation.Instances {
				records = append(records, domain.ResourceRecord{
					ResourceType: domain.TypeEC2Instance,
					Identity:     map[string]string{"InstanceId": aws.ToString(instance.InstanceId)},
				})
			}
		}
	}
	return records, nil
}
