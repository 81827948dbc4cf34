package commands

import (
	"context"
	"fmt"

	"github.com/de-tools/alarm-atlas/pkg/models/api"
	"github.com/de-tools/alarm-atlas/pkg/services/audit"
	"github.com/spf13/cobra"
)

// RegistryFactory builds an audit registry for the given AWS profile and
// region; settingsPath may be empty, in which case defaults apply.
type RegistryFactory func(ctx context.Context, profile, region, settingsPath string) (audit.Registry, error)

// Reporter renders one audit report to the terminal.
type Reporter interface {
	Handle(report *api.Report) error
}

type AuditCmd struct {
	factory      RegistryFactory
	table        Reporter
	json         Reporter
	profile      string
	region       string
	settingsPath string
	asJSON       bool
}

func NewAuditCmd(factory RegistryFactory, table, json Reporter) *cobra.Command {
	ac := &AuditCmd{factory: factory, table: table, json: json}
	cmd := &cobra.Command{
		Use:   "audit [name]",
		Short: "Run a named audit (orphaned-alarms, stale-alarms, orphaned-dashboards)",
		Args:  cobra.ExactArgs(1),
		RunE:  ac.run,
	}

	cmd.Flags().StringVar(&ac.profile, "profile", "", "AWS shared config profile to use")
	cmd.Flags().StringVar(&ac.region, "region", "", "AWS region (defaults to the profile's region)")
	cmd.Flags().StringVar(&ac.settingsPath, "settings", "", "Path to an audit settings file")
	cmd.Flags().BoolVar(&ac.asJSON, "json", false, "Emit the report as JSON instead of a table")

	_ = cmd.MarkFlagRequired("profile")

	return cmd
}

func (ac *AuditCmd) run(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	name := args[0]

	registry, err := ac.factory(ctx, ac.profile, ac.region, ac.settingsPath)
	if err != nil {
		return fmt.Errorf("failed to create audit registry: %w", err)
	}

	report, err := registry.Run(ctx, name)
	if err != nil {
		return fmt.Errorf("failed to run audit %s: %w", name, err)
	}

	if ac.asJSON {
		return ac.json.Handle(&report)
	}
	return ac.table.Handle(&report)
}
