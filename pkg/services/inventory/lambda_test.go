package inventory

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	lambdatypes "github.com/aws/aws-sdk-go-v2/service/lambda/types"
	"github.com/de-tools/alarm-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLambdaClient struct {
	functions []*lambda.ListFunctionsOutput
	versions  map[string]*lambda.ListVersionsByFunctionOutput
	fnCalls   int
}

func (f *fakeLambdaClient) ListFunctions(
	ctx context.Context,
	params *lambda.ListFunctionsInput,
	optFns ...func(*lambda.Options),
) (*lambda.ListFunctionsOutput, error) {
	page := f.functions[f.fnCalls]
	f.fnCalls++
	return page, nil
}

func (f *fakeLambdaClient) ListVersionsByFunction(
	ctx context.Context,
	params *lambda.ListVersionsByFunctionInput,
	optFns ...func(*lambda.Options),
) (*lambda.ListVersionsByFunctionOutput, error) {
	return f.versions[*params.FunctionName], nil
}

func TestLambdaCollector(t *testing.T) {
	client := &fakeLambdaClient{functions: []*lambda.ListFunctionsOutput{{
		Functions: []lambdatypes.FunctionConfiguration{
			{FunctionName: aws.String("checkout")},
			{FunctionName: aws.String("billing")},
		},
	}}}

	collector := &lambdaCollector{client: client, pageSize: 10}
	records, err := collector.Collect(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "checkout", records[0].Identity["FunctionName"])
	assert.Equal(t, "billing", records[1].Identity["FunctionName"])
}

func TestLambdaResourceCollector(t *testing.T) {
	client := &fakeLambdaClient{
		functions: []*lambda.ListFunctionsOutput{{
			Functions: []lambdatypes.FunctionConfiguration{
				{FunctionName: aws.String("checkout")},
			},
		}},
		versions: map[string]*lambda.ListVersionsByFunctionOutput{
			"checkout": {Versions: []lambdatypes.FunctionConfiguration{
				{FunctionName: aws.String("checkout"), Version: aws.String("$LATEST")},
				{FunctionName: aws.String("checkout"), Version: aws.String("7")},
			}},
		},
	}

	collector := &lambdaResourceCollector{client: client, pageSize: 10}
	records, err := collector.Collect(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)
	// $LATEST maps to the bare name, published versions to "name:version".
	assert.Equal(t, domain.ResourceRecord{
		ResourceType: domain.TypeLambdaResource,
		Identity:     map[string]string{"FunctionName": "checkout", "Resource": "checkout"},
	}, records[0])
	assert.Equal(t, "checkout:7", records[1].Identity["Resource"])
}
