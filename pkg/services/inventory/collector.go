package inventory

import (
	"context"
	"strings"

	"github.com/de-tools/alarm-atlas/pkg/models/domain"
)

// Collector enumerates the live resources of one type, producing the identity
// records reconciliation matches alarm dimensions against. Implementations
// paginate exhaustively, capped per call by the configured page size, and are
// strictly read-only.
type Collector interface {
	ResourceType() string
	Collect(ctx context.Context) ([]domain.ResourceRecord, error)
}

// arnSuffix returns the part of an ARN after the given marker, e.g.
// "app/my-lb/123" for marker "loadbalancer/". CloudWatch dimensions carry
// these short forms, not full ARNs.
func arnSuffix(arn, marker string) (string, bool) {
	_, suffix, found := strings.Cut(arn, marker)
	if !found || suffix == "" {
		return "", false
	}
	return suffix, true
}
