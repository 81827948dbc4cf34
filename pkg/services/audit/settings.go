package audit

import (
	"fmt"

	"github.com/spf13/viper"
)

// Settings contains the knobs shared by the audits. PageSize caps every
// listing call; Workers bounds how many cloud queries run at once (the APIs
// throttle); the cost figures are the flat monthly prices attached to
// findings.
type Settings struct {
	Profile              string  `mapstructure:"profile"`
	Region               string  `mapstructure:"region"`
	PageSize             int32   `mapstructure:"page_size"`
	Workers              int     `mapstructure:"workers"`
	StalePeriodDays      int     `mapstructure:"stale_period_days"`
	AlarmMonthlyCost     float64 `mapstructure:"alarm_monthly_cost"`
	DashboardMonthlyCost float64 `mapstructure:"dashboard_monthly_cost"`
}

func DefaultSettings() Settings {
	return Settings{
		PageSize:             100,
		Workers:              4,
		StalePeriodDays:      90,
		AlarmMonthlyCost:     0.10,
		DashboardMonthlyCost: 3.00,
	}
}

// LoadSettings reads audit settings from the given profile file, with
// DefaultSettings filling anything the file leaves out.
func LoadSettings(profilePath string) (*Settings, error) {
	defaults := DefaultSettings()

	v := viper.New()
	v.SetConfigFile(profilePath)
	v.SetDefault("page_size", defaults.PageSize)
	v.SetDefault("workers", defaults.Workers)
	v.SetDefault("stale_period_days", defaults.StalePeriodDays)
	v.SetDefault("alarm_monthly_cost", defaults.AlarmMonthlyCost)
	v.SetDefault("dashboard_monthly_cost", defaults.DashboardMonthlyCost)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return nil, fmt.Errorf("failed to parse audit settings: %w", err)
	}
	return &settings, nil
}
