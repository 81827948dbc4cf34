package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

type AuditsCmd struct {
	factory      RegistryFactory
	profile      string
	region       string
	settingsPath string
}

func NewAuditsCmd(factory RegistryFactory) *cobra.Command {
	ac := &AuditsCmd{factory: factory}
	cmd := &cobra.Command{
		Use:   "audits",
		Short: "List available audits",
		RunE:  ac.run,
	}

	cmd.Flags().StringVar(&ac.profile, "profile", "", "AWS shared config profile to use")
	cmd.Flags().StringVar(&ac.region, "region", "", "AWS region (defaults to the profile's region)")
	cmd.Flags().StringVar(&ac.settingsPath, "settings", "", "Path to an audit settings file")

	_ = cmd.MarkFlagRequired("profile")

	return cmd
}

func (ac *AuditsCmd) run(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	registry, err := ac.factory(ctx, ac.profile, ac.region, ac.settingsPath)
	if err != nil {
		return fmt.Errorf("failed to create audit registry: %w", err)
	}

	names := registry.ListAudits()
	if len(names) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No audits registered")
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Available audits:\n%s\n", strings.Join(names, "\n"))
	return nil
}
