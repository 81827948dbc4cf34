package inventory

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/de-tools/alarm-atlas/pkg/models/domain"
)

type sqsCollector struct {
	client   sqs.ListQueuesAPIClient
	pageSize int32
}

func NewSQSCollector(cfg aws.Config, pageSize int32) *sqsCollector {
	return &sqsCollector{client: sqs.NewFromConfig(cfg), pageSize: pageSize}
}

func (c *sqsCollector) ResourceType() string {
	return domain.TypeSQS
}

func (c *sqsCollector) Collect(ctx context.Context) ([]domain.ResourceRecord, error) {
	paginator := sqs.NewListQueuesPaginator(c.client, &sqs.ListQueuesInput{
		MaxResults: aws.Int32(c.pageSize),
	})

	var records []domain.ResourceRecord
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list SQS queues: %w", err)
		}
		for _, queueURL := range page.QueueUrls {
			// The QueueName dimension is the last path segment of the URL.
			name := queueURL[strings.LastIndex(queueURL, "/")+1:]
			if name == "" {
				continue
			}
			records = append(records, domain.ResourceRecord{
				ResourceType: domain.TypeSQS,
				Identity:     map[string]string{"QueueName": name},
			})
		}
	}
	return records, nil
}
