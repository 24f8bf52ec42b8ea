package common

import (
	"fmt"
	"math/big"
)

// Token amounts are 18-decimal fixed point, USD amounts 6-decimal fixed point.
// All conversions between the two go through these explicit scale factors.
const (
	TokenDecimals  = 18
	USDDecimals    = 6
	BpsDenominator = 10000
)

var (
	TokenScale = new(big.Int).Exp(big.NewInt(10), big.NewInt(TokenDecimals), nil)
	USDScale   = new(big.Int).Exp(big.NewInt(10), big.NewInt(USDDecimals), nil)
)

// ParseAmount parses a non-negative decimal integer amount string.
func ParseAmount(entity, value string) (*big.Int, error) {
	amount, ok := new(big.Int).SetString(value, 10)
	if !ok {
		return nil, ValidationError(fmt.Sprintf("InvalidAmount for %s with value %s", entity, value), nil)
	}
	if amount.Sign() < 0 {
		return nil, ValidationError(fmt.Sprintf("InvalidAmount for %s: negative value %s", entity, value), nil)
	}

	return amount, nil
}

// ParsePositiveAmount parses a strictly positive decimal integer amount string.
func ParsePositiveAmount(entity, value string) (*big.Int, error) {
	amount, err := ParseAmount(entity, value)
	if err != nil {
		return nil, err
	}
	if amount.Sign() == 0 {
		return nil, ValidationError(fmt.Sprintf("%s amount cannot be zero", entity), ErrCannotBeZero)
	}

	return amount, nil
}

// UsdToTokens converts a 6-decimal USD amount into an 18-decimal token amount
// at a 6-decimal USD unit price: tokens = usd * 10^18 / price.
func UsdToTokens(usdAmount, price *big.Int) *big.Int {
	tokens := new(big.Int).Mul(usdAmount, TokenScale)
	return tokens.Div(tokens, price)
}

// ApplyBps returns amount * bps / 10000.
func ApplyBps(amount *big.Int, bps uint64) *big.Int {
	result := new(big.Int).Mul(amount, new(big.Int).SetUint64(bps))
	return result.Div(result, big.NewInt(BpsDenominator))
}

// PercentOf returns amount * percent / 100.
func PercentOf(amount *big.Int, percent uint64) *big.Int {
	result := new(big.Int).Mul(amount, new(big.Int).SetUint64(percent))
	return result.Div(result, big.NewInt(100))
}

// ConvertToWei scales a whole-token amount to its 18-decimal representation.
func ConvertToWei(tokens uint64) string {
	amount := new(big.Int).SetUint64(tokens)
	return amount.Mul(amount, TokenScale).String()
}
