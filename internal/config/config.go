// Package config defines the data structures related to configuration and
// includes functions for loading and validating the config.
package config

import (
	"fmt"
	"io"

	"github.com/iwvelando/raroc-pricing/pkg/cashflow"
	"github.com/iwvelando/raroc-pricing/pkg/validation"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for raroc-pricing.
type Configuration struct {
	Loans   []Loan
	Logging LoggingConfig `yaml:"logging,omitempty"`
	Output  OutputConfig  `yaml:"output,omitempty"`
	Cache   CacheConfig   `yaml:"cache,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv
}

// CacheConfig holds schedule-cache configuration options. The cache is
// optional; the zero value disables it.
type CacheConfig struct {
	Backend   string `yaml:"backend,omitempty"`   // memory, redis
	RedisAddr string `yaml:"redisAddr,omitempty"` // host:port for the redis backend
}

// Loan holds one loan's pricing inputs as configured. Rates are annual
// percentages.
type Loan struct {
	LoanID       string
	Principal    float64
	AnnualRate   float64
	TermMonths   int
	FTPRate      float64
	DiscountRate float64
	NIIFee       float64
	NIIMonths    int
	NIEAmount    float64
	PDRating     int
	LGDGrade     string
	ZipCode      string
}

// Parameters converts a configured loan into engine parameters.
func (l Loan) Parameters() cashflow.LoanParameters {
	return cashflow.LoanParameters{
		Principal:    l.Principal,
		AnnualRate:   l.AnnualRate,
		TermMonths:   l.TermMonths,
		FTPRate:      l.FTPRate,
		DiscountRate: l.DiscountRate,
		NIIFee:       l.NIIFee,
		NIIMonths:    l.NIIMonths,
		NIEAmount:    l.NIEAmount,
		PDRating:     l.PDRating,
		LGDGrade:     l.LGDGrade,
		ZipCode:      l.ZipCode,
		LoanID:       l.LoanID,
	}
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.AutomaticEnv()

	v.SetConfigType("yml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	var configuration Configuration
	err := v.Unmarshal(&configuration)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	return &configuration, nil
}

// LoadConfigurationFromReader loads a YAML-formatted configuration from an
// in-memory source, e.g. an uploaded file.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := viper.New()
	v.SetConfigType("yml")

	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config data, %s", err)
	}

	var configuration Configuration
	err := v.Unmarshal(&configuration)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	return &configuration, nil
}

// ValidateConfiguration performs general validation of the configuration and
// returns warnings. Hard parameter errors surface later from the engine.
func (c *Configuration) ValidateConfiguration() []string {
	var warnings []string
	if len(c.Loans) == 0 {
		warnings = append(warnings, "no loans configured")
	}
	for _, loan := range c.Loans {
		warnings = append(warnings, validation.ValidateLoanParameters(loan.Parameters())...)
	}
	return warnings
}
