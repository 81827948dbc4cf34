package awsauth

import (
	"context"
	"fmt"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
)

const (
	DefaultRegion = "us-east-1" // Default region if not specified in AWS profile
)

func LoadConfig(ctx context.Context, profile, region string) (*awssdk.Config, error) {
	optFns := []func(*config.LoadOptions) error{
		config.WithSharedConfigProfile(profile),
		config.WithDefaultRegion(DefaultRegion),
	}
	if region != "" {
		optFns = append(optFns, config.WithRegion(region))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, optFns...)
	if err != nil {
		return nil, fmt.Errorf("unable to load AWS SDK config: %w", err)
	}

	// Test the credentials
	_, err = awsCfg.Credentials.Retrieve(ctx)
	if err != nil {
		return nil, fmt.Errorf("invalid AWS credentials for profile %s: %w", profile, err)
	}

	return &awsCfg, nil
}
