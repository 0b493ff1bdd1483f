package config

import (
	"errors"
	"fmt"
	"os"

	"shoguntrade/internal/handlers/business"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// feePolicyFile is the on-disk shape of FEE_POLICY_FILE:
//
//	default_rate: 0.08
//	rates:
//	  evo: 0.055
type feePolicyFile struct {
	DefaultRate string            `yaml:"default_rate"`
	Rates       map[string]string `yaml:"rates"`
}

// ParseFeePolicy decodes a YAML fee table. A missing default keeps the
// built-in default rate.
func ParseFeePolicy(data []byte) (business.FeePolicy, error) {
	var raw feePolicyFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return business.FeePolicy{}, fmt.Errorf("failed to parse fee policy: %w", err)
	}

	policy := business.DefaultFeePolicy()
	if raw.DefaultRate != "" {
		rate, err := decimal.NewFromString(raw.DefaultRate)
		if err != nil {
			return business.FeePolicy{}, fmt.Errorf("invalid default_rate %q: %w", raw.DefaultRate, err)
		}
		policy.DefaultRate = rate
	}
	if len(raw.Rates) > 0 {
		policy.Rates = make(map[string]decimal.Decimal, len(raw.Rates))
		for walletType, value := range raw.Rates {
			rate, err := decimal.NewFromString(value)
			if err != nil {
				return business.FeePolicy{}, fmt.Errorf("invalid rate %q for %s: %w", value, walletType, err)
			}
			policy.Rates[walletType] = rate
		}
	}
	if err := policy.Validate(); err != nil {
		return business.FeePolicy{}, err
	}
	return policy, nil
}

// LoadFeePolicy reads FEE_POLICY_FILE, falling back to the built-in table
// when the variable is unset or the file does not exist.
func LoadFeePolicy() (business.FeePolicy, error) {
	path := GetEnv("FEE_POLICY_FILE", "")
	if path == "" {
		return business.DefaultFeePolicy(), nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		log.Warnf("Fee policy file %s not found, using built-in rates", path)
		return business.DefaultFeePolicy(), nil
	}
	if err != nil {
		return business.FeePolicy{}, fmt.Errorf("failed to read fee policy: %w", err)
	}
	return ParseFeePolicy(data)
}
