package oracle

import (
	"encoding/json"
	"fmt"

	"github.com/hyperledger/fabric-contract-api-go/contractapi"
)

type FeedUpdatedEvent struct {
	Token         string `json:"token"`
	PriceUSD      string `json:"priceUsd"`
	TokenDecimals uint64 `json:"tokenDecimals"`
	Active        bool   `json:"active"`
	UpdatedAt     uint64 `json:"updatedAt"`
}

func EmitFeedUpdated(ctx contractapi.TransactionContextInterface, feed *TokenFeed) error {
	event := FeedUpdatedEvent{
		Token:         feed.Token,
		PriceUSD:      feed.PriceUSD,
		TokenDecimals: feed.TokenDecimals,
		Active:        feed.Active,
		UpdatedAt:     feed.UpdatedAt,
	}

	eventJSON, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to obtain JSON encoding: %v", err)
	}

	err = ctx.GetStub().SetEvent("FeedUpdated", eventJSON)
	if err != nil {
		return fmt.Errorf("failed to set event: %v", err)
	}

	return nil
}
