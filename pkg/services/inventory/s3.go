package inventory

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/de-tools/alarm-atlas/pkg/models/domain"
)

type listBucketsAPI interface {
	ListBuckets(ctx context.Context, params *s3.ListBucketsInput, optFns ...func(*s3.Options)) (*s3.ListBucketsOutput, error)
}

type s3Collector struct {
	client listBucketsAPI
}

func NewS3Collector(cfg aws.Config) *s3Collector {
	return &s3Collector{client: s3.NewFromConfig(cfg)}
}

func (c *s3Collector) ResourceType() string {
	return domain.TypeS3Bucket
}

func (c *s3Collector) Collect(ctx context.Context) ([]domain.ResourceRecord, error) {
	resp, err := c.client.ListBuckets(ctx, &s3.ListBucketsInput{})
	if err != nil {
		return nil, fmt.Errorf("failed to list S3 buckets: %w", err)
	}

	var records []domain.ResourceRecord
	for _, bucket := range resp.Buckets {
		records = append(records, domain.ResourceRecord{
			ResourceType: domain.TypeS3Bucket,
			Identity:     map[string]string{"BucketName": aws.ToString(bucket.Name)},
		})
	}
	return records, nil
}
