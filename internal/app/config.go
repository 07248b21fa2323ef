package app

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/specialistvlad/caregrid/internal/platform"
	"github.com/specialistvlad/caregrid/internal/provision"
	"github.com/specialistvlad/caregrid/internal/synth"
)

// configValidate is the validator for Config. Initialized in init() with
// custom validators.
var configValidate *validator.Validate

func init() {
	configValidate = validator.New()
	_ = configValidate.RegisterValidation("synth_format", func(fl validator.FieldLevel) bool {
		_, err := synth.ParseFormat(fl.Field().String())
		return err == nil
	})
	_ = configValidate.RegisterValidation("endpoint_list", func(fl validator.FieldLevel) bool {
		return platform.ValidateEndpoints(fl.Field().String()) == nil
	})
}

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	LogFormat string `validate:"oneof=text json"`
	LogLevel  string `validate:"oneof=debug info warn error"`

	// Format is the descriptor encoding written by Synth.
	Format string `validate:"synth_format"`
	// OutPath is where output is written. Empty means the app's writer.
	OutPath string
	// ValuesPath is a YAML or JSON file of materialized attribute values,
	// read by Containers.
	ValuesPath string

	BrokerBootstrap string `validate:"required,endpoint_list"`
	DiscoveryDomain string `validate:"required,hostname_rfc1123"`
}

// DefaultConfig returns the configuration of a local deployment.
func DefaultConfig() Config {
	return Config{
		LogFormat:       "text",
		LogLevel:        "info",
		Format:          string(synth.FormatJSON),
		BrokerBootstrap: platform.DefaultBrokerBootstrap,
		DiscoveryDomain: platform.DefaultDiscoveryDomain,
	}
}

// NewConfig validates cfg and returns a copy of it.
func NewConfig(cfg Config) (*Config, error) {
	if err := configValidate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// ProvisionOptions returns the provisioner options carried by the config.
func (c *Config) ProvisionOptions() provision.Options {
	return provision.Options{
		BrokerBootstrap: c.BrokerBootstrap,
		DiscoveryDomain: c.DiscoveryDomain,
	}
}
