package terminal

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/de-tools/alarm-atlas/pkg/runtime/terminal/export"
	"github.com/de-tools/alarm-atlas/pkg/services/audit"
	"github.com/de-tools/alarm-atlas/pkg/services/awsauth"
	"github.com/de-tools/alarm-atlas/pkg/terminal/commands"
	"github.com/spf13/cobra"
)

// CLI represents the command-line interface
type CLI struct {
	factory commands.RegistryFactory
	rootCmd *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	Factory commands.RegistryFactory
	Output  io.Writer
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Factory == nil {
		opts.Factory = DefaultRegistryFactory
	}

	cli := &CLI{factory: opts.Factory}
	cli.rootCmd = cli.newRootCmd(opts.Output)
	return cli
}

func (cli *CLI) Execute() error {
	return cli.rootCmd.Execute()
}

func (cli *CLI) newRootCmd(output io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "alarm-atlas",
		Short: "CloudWatch alarm hygiene audits",
	}

	cmd.AddCommand(commands.NewAuditCmd(cli.factory, export.NewReporter(output), NewReporter(output)))
	cmd.AddCommand(commands.NewAuditsCmd(cli.factory))

	return cmd
}

// DefaultRegistryFactory loads settings and AWS credentials, then wires the
// audits against live clients.
func DefaultRegistryFactory(ctx context.Context, profile, region, settingsPath string) (audit.Registry, error) {
	settings := audit.DefaultSettings()
	if settingsPath != "" {
		loaded, err := audit.LoadSettings(settingsPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load audit settings: %w", err)
		}
		settings = *loaded
	}

	if profile == "" {
		profile = settings.Profile
	}
	if region == "" {
		region = settings.Region
	}

	cfg, err := awsauth.LoadConfig(ctx, profile, region)
	if err != nil {
		return nil, err
	}

	return audit.NewAWSRegistry(*cfg, settings)
}
