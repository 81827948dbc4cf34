package main

import (
	"fmt"
	"net"
	"os"

	"github.com/de-tools/alarm-atlas/pkg/server"
	"github.com/de-tools/alarm-atlas/pkg/services/audit"
	"github.com/de-tools/alarm-atlas/pkg/services/awsauth"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	profile      string
	region       string
	settingsPath string
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the web server for Alarm Atlas",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVar(&profile, "profile", "", "AWS shared config profile to use")
	rootCmd.Flags().StringVar(&region, "region", "", "AWS region (defaults to the profile's region)")
	rootCmd.Flags().StringVar(&settingsPath, "settings", "", "Path to an audit settings file")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	settings := audit.DefaultSettings()
	if settingsPath != "" {
		loaded, err := audit.LoadSettings(settingsPath)
		if err != nil {
			return fmt.Errorf("failed to load audit settings: %w", err)
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
		return fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	registry, err := audit.NewAWSRegistry(*cfg, settings)
	if err != nil {
		return fmt.Errorf("failed to create audit registry: %w", err)
	}

	logger.Info().Str("profile", profile).Str("region", cfg.Region).Msg("audit registry ready")
	for _, name := range registry.ListAudits() {
		logger.Info().Msgf("Audit available: `%s`", name)
	}

	host := os.Getenv("SERVER_HOST")
	port := os.Getenv("SERVER_PORT")

	if host == "" || port == "" {
		logger.Error().Msgf("Missing server configuration from .env file")
		os.Exit(1)
	}

	api := server.NewWebAPI(logger, server.Config{
		Addr: net.JoinHostPort(host, port),
		Dependencies: server.Dependencies{
			Registry: registry,
		},
	})

	return api.Start()
}
