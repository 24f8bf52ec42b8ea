package oracle

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/hyperledger/fabric-contract-api-go/contractapi"

	"github.com/buckhoff/token-presale-contract/common"
)

var ErrUnsupportedPaymentToken = errors.New("UnsupportedPaymentToken")

// SmartContract is the multi-token price feed. It normalizes arbitrary
// accepted payment tokens to canonical 6-decimal USD amounts for the
// purchase engine.
type SmartContract struct {
	contractapi.Contract
	AC common.AccessControl
}

func NewSmartContract() *SmartContract {
	sc := &SmartContract{AC: common.NewLedgerAccessControl()}
	sc.Name = common.ServiceOracle
	return sc
}

func (s *SmartContract) accessControl() common.AccessControl {
	if s.AC == nil {
		s.AC = common.NewLedgerAccessControl()
	}
	return s.AC
}

// SetTokenFeed prices a payment token at priceUSD (6-decimal fixed point per
// whole token) with the token's own decimal count.
func (s *SmartContract) SetTokenFeed(ctx contractapi.TransactionContextInterface, token, priceUSD string, tokenDecimals uint64) error {
	_, err := common.RequireRole(ctx, s.accessControl(), common.RoleAdmin)
	if err != nil {
		return err
	}

	if token == "" {
		return common.ValidationError("token cannot be zero", common.ErrZeroAddress)
	}
	if tokenDecimals > 36 {
		return common.ValidationError(fmt.Sprintf("token decimals %d out of range", tokenDecimals), nil)
	}

	price, err := common.ParsePositiveAmount("price", priceUSD)
	if err != nil {
		return err
	}

	now, err := common.TxTimestamp(ctx)
	if err != nil {
		return err
	}

	feed := &TokenFeed{
		Token:         token,
		PriceUSD:      price.String(),
		TokenDecimals: tokenDecimals,
		Active:        true,
		UpdatedAt:     now,
	}
	err = SetTokenFeed(ctx, feed)
	if err != nil {
		return err
	}

	return EmitFeedUpdated(ctx, feed)
}

func (s *SmartContract) SetFeedStatus(ctx contractapi.TransactionContextInterface, token string, active bool) error {
	_, err := common.RequireRole(ctx, s.accessControl(), common.RoleAdmin)
	if err != nil {
		return err
	}

	feed, err := GetTokenFeed(ctx, token)
	if err != nil {
		return err
	}

	feed.Active = active
	err = SetTokenFeed(ctx, feed)
	if err != nil {
		return err
	}

	return EmitFeedUpdated(ctx, feed)
}

// ConvertToUSD converts an amount of a payment token (in the token's own
// decimals) into a 6-decimal USD amount string.
func (s *SmartContract) ConvertToUSD(ctx contractapi.TransactionContextInterface, token, amount string) (string, error) {
	usdAmount, err := Convert(ctx, token, amount)
	if err != nil {
		return "", err
	}

	return usdAmount.String(), nil
}

func (s *SmartContract) GetTokenFeed(ctx contractapi.TransactionContextInterface, token string) (*TokenFeed, error) {
	return GetTokenFeed(ctx, token)
}

// Convert is the package-level conversion used in-process by the purchase
// engine: usd = amount * price / 10^tokenDecimals.
func Convert(ctx contractapi.TransactionContextInterface, token, amount string) (*big.Int, error) {
	feed, err := GetTokenFeed(ctx, token)
	if err != nil {
		return nil, err
	}
	if !feed.Active {
		return nil, common.ValidationError(fmt.Sprintf("unsupported payment token %s: feed inactive", token), ErrUnsupportedPaymentToken)
	}

	paymentAmount, err := common.ParsePositiveAmount("payment", amount)
	if err != nil {
		return nil, err
	}

	price, err := common.ParseAmount("price", feed.PriceUSD)
	if err != nil {
		return nil, err
	}

	tokenScale := new(big.Int).Exp(big.NewInt(10), new(big.Int).SetUint64(feed.TokenDecimals), nil)
	usdAmount := new(big.Int).Mul(paymentAmount, price)

	return usdAmount.Div(usdAmount, tokenScale), nil
}
