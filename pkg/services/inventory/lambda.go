package inventory

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/de-tools/alarm-atlas/pkg/models/domain"
)

type lambdaCollector struct {
	client   lambda.ListFunctionsAPIClient
	pageSize int32
}

func NewLambdaCollector(cfg aws.Config, pageSize int32) *lambdaCollector {
	return &lambdaCollector{client: lambda.NewFromConfig(cfg), pageSize: pageSize}
}

func (c *lambdaCollector) ResourceType() string {
	return domain.TypeLambda
}

func (c *lambdaCollector) Collect(ctx context.Context) ([]domain.ResourceRecord, error) {
	paginator := lambda.NewListFunctionsPaginator(c.client, &lambda.ListFunctionsInput{
		MaxItems: aws.Int32(c.pageSize),
	})

	var records []domain.ResourceRecord
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list Lambda functions: %w", err)
		}
		for _, function := range page.Functions {
			records = append(records, domain.ResourceRecord{
				ResourceType: domain.TypeLambda,
				Identity:     map[string]string{"FunctionName": aws.ToString(function.FunctionName)},
			})
		}
	}
	return records, nil
}

type lambdaResourceAPI interface {
	lambda.ListFunctionsAPIClient
	lambda.ListVersionsByFunctionAPIClient
}

// lambdaResourceCollector enumerates function versions and aliases. The
// Resource dimension equals the bare function name for $LATEST and
// "name:version" for published versions.
type lambdaResourceCollector struct {
	client   lambdaResourceAPI
	pageSize int32
}

func NewLambdaResourceCollector(cfg aws.Config, pageSize int32) *lambdaResourceCollector {
	return &lambdaResourceCollector{client: lambda.NewFromConfig(cfg), pageSize: pageSize}
}

func (c *lambdaResourceCollector) ResourceType() string {
	return domain.TypeLambdaResource
}

func (c *lambdaResourceCollector) Collect(ctx context.Context) ([]domain.ResourceRecord, error) {
	functions := lambda.NewListFunctionsPaginator(c.client, &lambda.ListFunctionsInput{
		MaxItems: aws.Int32(c.pageSize),
	})

	var records []domain.ResourceRecord
	for functions.HasMorePages() {
		functionPage, err := functions.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list Lambda functions: %w", err)
		}
		for _, function := range functionPage.Functions {
			functionName := aws.ToString(function.FunctionName)

			versions := lambda.NewListVersionsByFunctionPaginator(c.client, &lambda.ListVersionsByFunctionInput{
				FunctionName: aws.String(functionName),
				MaxItems:     aws.Int32(c.pageSize),
			})
			for versions.HasMorePages() {
				versionPage, err := versions.NextPage(ctx)
				if err != nil {
					return nil, fmt.Errorf("failed to list versions for function %s: %w", functionName, err)
				}
				for _, version := range versionPage.Versions {
					name := aws.ToString(version.FunctionName)
					resource := name
					if aws.ToString(version.Version) != "$LATEST" {
						resource = name + ":" + aws.ToString(version.Version)
					}
					records = append(records, domain.ResourceRecord{
						ResourceType: domain.TypeLambdaResource,
						Identity: map[string]string{
							"FunctionName": name,
							"Resource":     resource,
						},
					})
				}
			}
		}
	}
	return records, nil
}
