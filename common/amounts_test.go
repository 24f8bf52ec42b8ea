package common

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUsdToTokens(t *testing.T) {
	t.Parallel()

	// 1000 USD at 0.04 USD per token buys 25000 whole tokens.
	usd := big.NewInt(1_000_000_000)
	price := big.NewInt(40_000)

	tokens := UsdToTokens(usd, price)

	expected, _ := new(big.Int).SetString("25000000000000000000000", 10)
	require.Zero(t, tokens.Cmp(expected))
}

func TestUsdToTokensTruncates(t *testing.T) {
	t.Parallel()

	// 1 USD at 3 USD per token is a third of a token, truncated.
	tokens := UsdToTokens(big.NewInt(1_000_000), big.NewInt(3_000_000))

	expected, _ := new(big.Int).SetString("333333333333333333", 10)
	require.Zero(t, tokens.Cmp(expected))
}

func TestApplyBps(t *testing.T) {
	t.Parallel()

	base, _ := new(big.Int).SetString("25000000000000000000000", 10)

	bonus := ApplyBps(base, 2000)

	expected, _ := new(big.Int).SetString("5000000000000000000000", 10)
	require.Zero(t, bonus.Cmp(expected))
	require.Zero(t, ApplyBps(base, 0).Sign())
}

func TestPercentOf(t *testing.T) {
	t.Parallel()

	amount := big.NewInt(1000)

	require.EqualValues(t, 100, PercentOf(amount, 10).Int64())
	require.EqualValues(t, 1000, PercentOf(amount, 100).Int64())
	require.Zero(t, PercentOf(amount, 0).Sign())
}

func TestParseAmount(t *testing.T) {
	t.Parallel()

	amount, err := ParseAmount("test", "12345")
	require.NoError(t, err)
	require.EqualValues(t, 12345, amount.Int64())

	_, err = ParseAmount("test", "12.5")
	require.Error(t, err)

	_, err = ParseAmount("test", "-1")
	require.Error(t, err)

	_, err = ParseAmount("test", "")
	require.Error(t, err)
}

func TestParsePositiveAmount(t *testing.T) {
	t.Parallel()

	_, err := ParsePositiveAmount("test", "0")
	require.Error(t, err)

	amount, err := ParsePositiveAmount("test", "1")
	require.NoError(t, err)
	require.EqualValues(t, 1, amount.Int64())
}

func TestConvertToWei(t *testing.T) {
	t.Parallel()

	require.Equal(t, "1000000000000000000", ConvertToWei(1))
	require.Equal(t, "0", ConvertToWei(0))
}
