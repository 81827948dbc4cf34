package inventory

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	elbv2 "github.com/aws/aws-sdk-go-v2/service/elasticloadbalancingv2"
	"github.com/de-tools/alarm-atlas/pkg/models/domain"
)

// CloudWatch scopes ELB metrics to the ARN suffix: "targetgroup/<name>/<id>"
// for target groups and "<type>/<name>/<id>" for load balancers.

type targetGroupCollector struct {
	client   elbv2.DescribeTargetGroupsAPIClient
	pageSize int32
}

func NewTargetGroupCollector(cfg aws.Config, pageSize int32) *targetGroupCollector {
	return &targetGroupCollector{client: elbv2.NewFromConfig(cfg), pageSize: pageSize}
}

func (c *targetGroupCollector) ResourceType() string {
	return domain.TypeTargetGroup
}

func (c *targetGroupCollector) Collect(ctx context.Context) ([]domain.ResourceRecord, error) {
	paginator := elbv2.NewDescribeTargetGroupsPaginator(c.client, &elbv2.DescribeTargetGroupsInput{
		PageSize: aws.Int32(c.pageSize),
	})

	var records []domain.ResourceRecord
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to describe target groups: %w", err)
		}
		for _, tg := range page.TargetGroups {
			suffix, ok := arnSuffix(aws.ToString(tg.TargetGroupArn), "targetgroup/")
			if !ok {
				continue
			}
			records = append(records, domain.ResourceRecord{
				ResourceType: domain.TypeTargetGroup,
				Identity:     map[string]string{"TargetGroup": "targetgroup/" + suffix},
			})
		}
	}
	return records, nil
}

// lbTargetGroupCollector emits one record per (load balancer, target group)
// pair, joined from each target group's associated load balancer ARNs.
type lbTargetGroupCollector struct {
	client   elbv2.DescribeTargetGroupsAPIClient
	pageSize int32
}

func NewLBTargetGroupCollector(cfg aws.Config, pageSize int32) *lbTargetGroupCollector {
	return &lbTargetGroupCollector{client: elbv2.NewFromConfig(cfg), pageSize: pageSize}
}

func (c *lbTargetGroupCollector) ResourceType() string {
	return domain.TypeLoadBalancerTargetGroup
}

func (c *lbTargetGroupCollector) Collect(ctx context.Context) ([]domain.ResourceRecord, error) {
	paginator := elbv2.NewDescribeTargetGroupsPaginator(c.client, &elbv2.DescribeTargetGroupsInput{
		PageSize: aws.Int32(c.pageSize),
	})

	var records []domain.ResourceRecord
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to describe target groups: %w", err)
		}
		for _, tg := range page.TargetGroups {
			tgSuffix, ok := arnSuffix(aws.ToString(tg.TargetGroupArn), "targetgroup/")
			if !ok {
				continue
			}
			for _, lbArn := range tg.LoadBalancerArns {
				lbSuffix, ok := arnSuffix(lbArn, "loadbalancer/")
				if !ok {
					continue
				}
				records = append(records, domain.ResourceRecord{
					ResourceType: domain.TypeLoadBalancerTargetGroup,
					Identity: map[string]string{
						"LoadBalancer": lbSuffix,
						"TargetGroup":  "targetgroup/" + tgSuffix,
					},
				})
			}
		}
	}
	return records, nil
}

type loadBalancerCollector struct {
	client   elbv2.DescribeLoadBalancersAPIClient
	pageSize int32
}

func NewLoadBalancerCollector(cfg aws.Config, pageSize int32) *loadBalancerCollector {
	return &loadBalancerCollector{client: elbv2.NewFromConfig(cfg), pageSize: pageSize}
}

func (c *loadBalancerCollector) ResourceType() string {
	return domain.TypeLoadBalancer
}

func (c *loadBalancerCollector) Collect(ctx context.Context) ([]domain.ResourceRecord, error) {
	paginator := elbv2.NewDescribeLoadBalancersPaginator(c.client, &elbv2.DescribeLoadBalancersInput{
		PageSize: aws.Int32(c.pageSize),
	})

	var records []domain.ResourceRecord
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to describe load balancers: %w", err)
		}
		for _, lb := range page.LoadBalancers {
			suffix, ok := arnSuffix(aws.ToString(lb.LoadBalancerArn), "loadbalancer/")
			if !ok {
				continue
			}
			records = append(records, domain.ResourceRecord{
				ResourceType: domain.TypeLoadBalancer,
				Identity:     map[string]string{"LoadBalancer": suffix},
			})
		}
	}
	return records, nil
}
