package oracle

import (
	"encoding/json"
	"fmt"

	"github.com/hyperledger/fabric-contract-api-go/contractapi"

	"github.com/buckhoff/token-presale-contract/common"
)

const feedKeyFormat = "price_feed_%s"

// TokenFeed prices one accepted payment token in 6-decimal USD per whole
// token unit.
type TokenFeed struct {
	Token         string `json:"token"`
	PriceUSD      string `json:"priceUsd"`
	TokenDecimals uint64 `json:"tokenDecimals"`
	Active        bool   `json:"active"`
	UpdatedAt     uint64 `json:"updatedAt"`
}

func GetTokenFeed(ctx contractapi.TransactionContextInterface, token string) (*TokenFeed, error) {
	feedKey := fmt.Sprintf(feedKeyFormat, token)
	feedAsBytes, err := ctx.GetStub().GetState(feedKey)
	if err != nil {
		return nil, common.IntegrityError(fmt.Sprintf("failed to get price feed with Key %s", feedKey), err)
	}
	if feedAsBytes == nil {
		return nil, common.ValidationError(fmt.Sprintf("unsupported payment token %s", token), ErrUnsupportedPaymentToken)
	}

	var feed TokenFeed
	err = json.Unmarshal(feedAsBytes, &feed)
	if err != nil {
		return nil, common.IntegrityError("failed to unmarshal price feed", err)
	}

	return &feed, nil
}

func SetTokenFeed(ctx contractapi.TransactionContextInterface, feed *TokenFeed) error {
	feedKey := fmt.Sprintf(feedKeyFormat, feed.Token)
	feedAsBytes, err := json.Marshal(feed)
	if err != nil {
		return common.IntegrityError("failed to marshal price feed", err)
	}

	err = ctx.GetStub().PutState(feedKey, feedAsBytes)
	if err != nil {
		return common.IntegrityError(fmt.Sprintf("failed to set price feed with Key %s", feedKey), err)
	}

	return nil
}
