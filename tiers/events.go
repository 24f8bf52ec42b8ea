package tiers

import (
	"encoding/json"
	"fmt"

	"github.com/hyperledger/fabric-contract-api-go/contractapi"
)

type TierAddedEvent struct {
	TierID     uint64 `json:"tierId"`
	Price      string `json:"price"`
	Allocation string `json:"allocation"`
	Deadline   uint64 `json:"deadline"`
}

type TierUpdatedEvent struct {
	TierID uint64 `json:"tierId"`
}

type TierStatusChangedEvent struct {
	TierID uint64 `json:"tierId"`
	Active bool   `json:"active"`
}

type TierActivatedEvent struct {
	TierID uint64 `json:"tierId"`
}

type TierAdvancedEvent struct {
	FromTier uint64 `json:"fromTier"`
	ToTier   uint64 `json:"toTier"`
	HasNext  bool   `json:"hasNext"`
}

type TierExhaustedEvent struct {
	TierID uint64 `json:"tierId"`
	Sold   string `json:"sold"`
}

type TierProgressionSetEvent struct {
	FromTier uint64 `json:"fromTier"`
	ToTier   uint64 `json:"toTier"`
}

type TierBridgeSetEvent struct {
	FromTier uint64 `json:"fromTier"`
	ToTier   uint64 `json:"toTier"`
	Enabled  bool   `json:"enabled"`
}

type SaleRecordedEvent struct {
	Fills []TierFill `json:"fills"`
}

func emitEvent(ctx contractapi.TransactionContextInterface, name string, payload interface{}) error {
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to obtain JSON encoding: %v", err)
	}

	err = ctx.GetStub().SetEvent(name, payloadJSON)
	if err != nil {
		return fmt.Errorf("failed to set event: %v", err)
	}

	return nil
}

func EmitTierAdded(ctx contractapi.TransactionContextInterface, tier *Tier) error {
	return emitEvent(ctx, "TierAdded", TierAddedEvent{
		TierID:     tier.ID,
		Price:      tier.Price,
		Allocation: tier.Allocation,
		Deadline:   tier.Deadline,
	})
}

func EmitTierUpdated(ctx contractapi.TransactionContextInterface, tierID uint64) error {
	return emitEvent(ctx, "TierUpdated", TierUpdatedEvent{TierID: tierID})
}

func EmitTierStatusChanged(ctx contractapi.TransactionContextInterface, tierID uint64, active bool) error {
	return emitEvent(ctx, "TierStatusChanged", TierStatusChangedEvent{TierID: tierID, Active: active})
}

func EmitTierActivated(ctx contractapi.TransactionContextInterface, tierID uint64) error {
	return emitEvent(ctx, "TierActivated", TierActivatedEvent{TierID: tierID})
}

func EmitTierAdvanced(ctx contractapi.TransactionContextInterface, from, to uint64, hasNext bool) error {
	return emitEvent(ctx, "TierAdvanced", TierAdvancedEvent{FromTier: from, ToTier: to, HasNext: hasNext})
}

func EmitTierExhausted(ctx contractapi.TransactionContextInterface, tierID uint64, sold string) error {
	return emitEvent(ctx, "TierExhausted", TierExhaustedEvent{TierID: tierID, Sold: sold})
}

func EmitTierProgressionSet(ctx contractapi.TransactionContextInterface, from, to uint64) error {
	return emitEvent(ctx, "TierProgressionSet", TierProgressionSetEvent{FromTier: from, ToTier: to})
}

func EmitTierBridgeSet(ctx contractapi.TransactionContextInterface, from, to uint64, enabled bool) error {
	return emitEvent(ctx, "TierBridgeSet", TierBridgeSetEvent{FromTier: from, ToTier: to, Enabled: enabled})
}

func EmitSaleRecorded(ctx contractapi.TransactionContextInterface, fills []TierFill) error {
	return emitEvent(ctx, "SaleRecorded", SaleRecordedEvent{Fills: fills})
}
