package business

import (
	"fmt"

	"shoguntrade/internal/models"

	"github.com/shopspring/decimal"
)

// FeePolicy maps a wallet type to the fee charged on airdrop payouts.
type FeePolicy struct {
	DefaultRate decimal.Decimal
	Rates       map[string]decimal.Decimal
}

// DefaultFeePolicy charges 5.5% for evo wallets and 8% for everything else.
func DefaultFeePolicy() FeePolicy {
	return FeePolicy{
		DefaultRate: decimal.RequireFromString("0.08"),
		Rates: map[string]decimal.Decimal{
			models.WalletTypeEvo: decimal.RequireFromString("0.055"),
		},
	}
}

// RateFor returns the fee rate for walletType.
func (p FeePolicy) RateFor(walletType string) decimal.Decimal {
	if rate, ok := p.Rates[walletType]; ok {
		return rate
	}
	return p.DefaultRate
}

// Split returns fee and net for a payout of total. fee + net == total.
func (p FeePolicy) Split(total decimal.Decimal, walletType string) (fee, net decimal.Decimal) {
	fee = total.Mul(p.RateFor(walletType))
	net = total.Sub(fee)
	return fee, net
}

// Validate rejects rates outside [0, 1].
func (p FeePolicy) Validate() error {
	one := decimal.NewFromInt(1)
	check := func(name string, rate decimal.Decimal) error {
		if rate.IsNegative() || rate.GreaterThan(one) {
			return fmt.Errorf("fee rate %s for %q out of range", rate, name)
		}
		return nil
	}
	if err := check("default", p.DefaultRate); err != nil {
		return err
	}
	for name, rate := range p.Rates {
		if err := check(name, rate); err != nil {
			return err
		}
	}
	return nil
}
