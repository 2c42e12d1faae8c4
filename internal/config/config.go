package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"
)

const (
	configFileStem = "roster_config"

	// DefaultStaffCount is the size of the generated staff list when no staff source is configured
	DefaultStaffCount = 52
)

// Config represents the application configuration
type Config struct {
	// Year and Month select the default roster month; CLI flags take precedence
	Year  int `yaml:"year,omitempty" validate:"omitempty,min=1"`
	Month int `yaml:"month,omitempty" validate:"omitempty,min=1,max=12"`

	// Holidays are fixed day numbers of the configured month treated as off-days.
	// They are ignored when a different month is rostered.
	Holidays []int `yaml:"holidays,omitempty" validate:"dive,min=1,max=31"`

	// HolidayRules are RFC 5545 recurrence rules expanded into holidays for the roster month
	HolidayRules []string `yaml:"holidayRules,omitempty" validate:"dive,required"`

	// Duty lists; empty means the built-in defaults
	AncillaryDuties []string `yaml:"ancillaryDuties,omitempty" validate:"dive,required"`
	WeekdayDuties   []string `yaml:"weekdayDuties,omitempty" validate:"dive,required"`
	OffDayDuties    []string `yaml:"offDayDuties,omitempty" validate:"dive,required"`

	PaidLeaveCountsAsRest *bool `yaml:"paidLeaveCountsAsRest,omitempty"`
	CompensationFallback  *bool `yaml:"compensationFallback,omitempty"`

	// Staff sources. At most one of StaffFile and StaffSheetID may be set;
	// with neither, DefaultStaffCount generic staff members are generated.
	StaffFile         string `yaml:"staffFile,omitempty" validate:"excluded_with=StaffSheetID"`
	StaffSheetID      string `yaml:"staffSheetID,omitempty" validate:"required_with=StaffTab"`
	StaffTab          string `yaml:"staffTab,omitempty" validate:"required_with=StaffSheetID"`
	DefaultStaffCount int    `yaml:"defaultStaffCount,omitempty" validate:"omitempty,min=1"`

	// RosterSheetID is the spreadsheet finished rosters are published to
	RosterSheetID string `yaml:"rosterSheetID,omitempty"`

	// OutputDir is where CSV exports are written; empty means the working directory
	OutputDir string `yaml:"outputDir,omitempty"`
}

// PaidLeaveAsRest reports whether paid leave counts towards rest totals (default true)
func (c *Config) PaidLeaveAsRest() bool {
	return c.PaidLeaveCountsAsRest == nil || *c.PaidLeaveCountsAsRest
}

// UseCompensationFallback reports whether compensation may fall back to any free day (default true)
func (c *Config) UseCompensationFallback() bool {
	return c.CompensationFallback == nil || *c.CompensationFallback
}

// StaffCount returns the size of the generated staff list
func (c *Config) StaffCount() int {
	if c.DefaultStaffCount > 0 {
		return c.DefaultStaffCount
	}
	return DefaultStaffCount
}

// IsConfiguredMonth reports whether year/month is the month the fixed holidays belong to.
// Unset config fields match anything.
func (c *Config) IsConfiguredMonth(year, month int) bool {
	return (c.Year == 0 || c.Year == year) && (c.Month == 0 || c.Month == month)
}

// UsesSheets reports whether any feature needs Google Sheets access
func (c *Config) UsesSheets() bool {
	return c.StaffSheetID != "" || c.RosterSheetID != ""
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// LoadWithEnv loads and validates the configuration with an environment suffix.
// For example, env="test" will look for "roster_config.test.yaml"; an empty env looks for
// "roster_config.yaml". The current directory is searched first, then the home directory.
func LoadWithEnv(env string) (*Config, error) {
	configPath, err := findConfigFile(env)
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration struct and checks rrule syntax
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	for i, rule := range cfg.HolidayRules {
		if _, err := rrule.StrToRRule(rule); err != nil {
			return fmt.Errorf("invalid rrule in holidayRules[%d]: %w", i, err)
		}
	}

	return nil
}

// findConfigFile searches for the config file in current directory and home directory
func findConfigFile(env string) (string, error) {
	configFileName := configFileStem + ".yaml"
	if env != "" {
		configFileName = configFileStem + "." + env + ".yaml"
	}

	if _, err := os.Stat(configFileName); err == nil {
		return configFileName, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homeConfigPath := filepath.Join(homeDir, configFileName)
	if _, err := os.Stat(homeConfigPath); err == nil {
		return homeConfigPath, nil
	}

	return "", fmt.Errorf("%s not found in current directory or home directory", configFileName)
}
