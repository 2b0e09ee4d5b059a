// Package config reads the chaincode launcher settings from the environment.
package config

import (
	"errors"
	"fmt"
	"strings"

	"medequip/registry"

	"github.com/caarlos0/env/v11"
)

// Contract names accepted by DEPLOY_CONTRACTS.
const (
	ContractDonorVerification      = registry.DonorVerificationNamespace
	ContractEquipmentCertification = registry.EquipmentCertificationNamespace
)

// Config controls how the chaincode process is launched.
type Config struct {
	// ServerAddress switches to chaincode-as-a-service when set.
	ServerAddress   string   `env:"CHAINCODE_SERVER_ADDRESS"`
	CCID            string   `env:"CHAINCODE_ID"`
	TLSDisabled     bool     `env:"CHAINCODE_TLS_DISABLED"            envDefault:"true"`
	TLSKeyFile      string   `env:"CHAINCODE_TLS_KEY_FILE"`
	TLSCertFile     string   `env:"CHAINCODE_TLS_CERT_FILE"`
	TLSClientCAFile string   `env:"CHAINCODE_TLS_CLIENT_CA_CERT_FILE"`
	LogLevel        string   `env:"CHAINCODE_LOG_LEVEL"               envDefault:"info"`
	Contracts       []string `env:"DEPLOY_CONTRACTS"                  envDefault:"donor-verification,equipment-certification" envSeparator:","`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load parses the environment and validates the result.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// AsService reports whether the chaincode runs as an external service.
func (c Config) AsService() bool {
	return c.ServerAddress != ""
}

// Validate checks that the settings describe a launchable chaincode.
func (c *Config) Validate() error {
	if c.AsService() && c.CCID == "" {
		return errors.New("CHAINCODE_ID is required when CHAINCODE_SERVER_ADDRESS is set")
	}
	if c.AsService() && !c.TLSDisabled && (c.TLSKeyFile == "" || c.TLSCertFile == "") {
		return errors.New("CHAINCODE_TLS_KEY_FILE and CHAINCODE_TLS_CERT_FILE are required when TLS is enabled")
	}

	contracts := make([]string, 0, len(c.Contracts))
	seen := make(map[string]bool)
	for _, name := range c.Contracts {
		name = strings.TrimSpace(name)
		if name == "" || seen[name] {
			continue
		}
		switch name {
		case ContractDonorVerification, ContractEquipmentCertification:
		default:
			return fmt.Errorf("unknown contract %q in DEPLOY_CONTRACTS", name)
		}
		seen[name] = true
		contracts = append(contracts, name)
	}
	if len(contracts) == 0 {
		return errors.New("DEPLOY_CONTRACTS must name at least one contract")
	}
	c.Contracts = contracts
	return nil
}

// Deploys reports whether the named contract is selected.
func (c Config) Deploys(name string) bool {
	for _, n := range c.Contracts {
		if n == name {
			return true
		}
	}
	return false
}
