package audit

import (
	"sort"
	"strings"
	"sync"

	"github.com/de-tools/alarm-atlas/pkg/models/domain"
)

// OrphanReason is attached to every orphan finding. The wording is part of
// the report contract shared with the sibling cleanup tools.
const OrphanReason = "Alarm not associated with any active resource"

// identitySeparator joins required-key values into an index key. A control
// character keeps "a"+"bc" and "ab"+"c" from colliding.
const identitySeparator = "\x1f"

// Reconcile checks every alarm record against the rule table and the live
// inventory, and returns a finding for each record whose referenced resource
// no longer exists.
//
// Each (rule, namespace) shape is independent, so shapes run concurrently and
// write to their own slot; slots are concatenated in rule-table order, which
// makes the output deterministic for a fixed pair of snapshots. The inventory
// for a shape is indexed by the tuple of required-key values, so the per-alarm
// lookup is O(1) instead of a scan over the fleet.
func Reconcile(
	rules []domain.ResourceTypeRule,
	inventory map[string][]domain.ResourceRecord,
	alarms []domain.AlarmRecord,
) []domain.OrphanFinding {
	type shape struct {
		rule      domain.ResourceTypeRule
		namespace string
	}

	var shapes []shape
	for _, rule := range rules {
		for _, ns := range rule.Namespaces {
			shapes = append(shapes, shape{rule: rule, namespace: ns})
		}
	}

	slots := make([][]domain.OrphanFinding, len(shapes))
	var wg sync.WaitGroup
	for i, s := range shapes {
		wg.Add(1)
		go func(i int, s shape) {
			defer wg.Done()
			slots[i] = reconcileShape(s.rule, s.namespace, inventory[s.rule.ResourceType], alarms)
		}(i, s)
	}
	wg.Wait()

	findings := make([]domain.OrphanFinding, 0)
	for _, slot := range slots {
		findings = append(findings, slot...)
	}
	return findings
}

func reconcileShape(
	rule domain.ResourceTypeRule,
	namespace string,
	records []domain.ResourceRecord,
	alarms []domain.AlarmRecord,
) []domain.OrphanFinding {
	index := make(map[string]struct{}, len(records))
	for _, record := range records {
		key, ok := identityKey(rule.RequiredDimensionKeys, record.Identity)
		if !ok {
			continue
		}
		index[key] = struct{}{}
	}

	var findings []domain.OrphanFinding
	for _, alarm := range alarms {
		if alarm.Namespace != namespace || !rule.Matches(alarm.Dimensions) {
			continue
		}

		// Matches guarantees every required key is present.
		key, _ := identityKey(rule.RequiredDimensionKeys, alarm.Dimensions)
		if _, exists := index[key]; exists {
			continue
		}

		findings = append(findings, domain.OrphanFinding{
			AlarmName:  alarm.AlarmName,
			Namespace:  alarm.Namespace,
			Dimensions: summarizeDimensions(alarm.Dimensions),
			Reason:     OrphanReason,
		})
	}
	return findings
}

// identityKey concatenates the values of the required dimension keys.
// Matching is exact, case-sensitive string equality; callers must already
// supply both sides in the same format (short forms, not full ARNs).
func identityKey(requiredKeys []string, values map[string]string) (string, bool) {
	parts := make([]string, 0, len(requiredKeys))
	for _, key := range requiredKeys {
		value, ok := values[key]
		if !ok {
			return "", false
		}
		parts = append(parts, value)
	}
	return strings.Join(parts, identitySeparator), true
}

// summarizeDimensions renders "k1=v1, k2=v2" with keys sorted, so the same
// snapshot always produces the same summary.
func summarizeDimensions(dimensions map[string]string) string {
	keys := make([]string, 0, len(dimensions))
	for key := range dimensions {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, key := range keys {
		pairs = append(pairs, key+"="+dimensions[key])
	}
	return strings.Join(pairs, ", ")
}
