package tiers

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/hyperledger/fabric-contract-api-go/contractapi"

	"github.com/buckhoff/token-presale-contract/common"
)

const (
	tierKeyFormat       = "tier_%d"
	tierCountKey        = "tier_count"
	activeTierKey       = "active_tier"
	tierProgressionsKey = "tier_progressions"
	tierBridgesKey      = "tier_bridges"
)

// Tier is one pricing/allocation bracket of the crowdsale. Prices and
// purchase bounds are 6-decimal USD, allocations 18-decimal tokens.
type Tier struct {
	ID                     uint64 `json:"id"`
	Price                  string `json:"price"`
	Allocation             string `json:"allocation"`
	Sold                   string `json:"sold"`
	MinPurchase            string `json:"minPurchase"`
	MaxPurchase            string `json:"maxPurchase"`
	BonusBps               uint64 `json:"bonusBps"`
	VestingTGEPercent      uint64 `json:"vestingTgePercent"`
	VestingCliffSeconds    uint64 `json:"vestingCliffSeconds"`
	VestingDurationSeconds uint64 `json:"vestingDurationSeconds"`
	Deadline               uint64 `json:"deadline"`
	Active                 bool   `json:"active"`
	DynamicPricing         bool   `json:"dynamicPricing"`
	MaxIncreaseBps         uint64 `json:"maxIncreaseBps"`
}

// TierInput carries the admin-supplied tier terms for add/update calls.
type TierInput struct {
	Price                  string `json:"price"`
	Allocation             string `json:"allocation"`
	MinPurchase            string `json:"minPurchase"`
	MaxPurchase            string `json:"maxPurchase"`
	BonusBps               uint64 `json:"bonusBps"`
	VestingTGEPercent      uint64 `json:"vestingTgePercent"`
	VestingCliffSeconds    uint64 `json:"vestingCliffSeconds"`
	VestingDurationSeconds uint64 `json:"vestingDurationSeconds"`
	Deadline               uint64 `json:"deadline"`
	DynamicPricing         bool   `json:"dynamicPricing"`
	MaxIncreaseBps         uint64 `json:"maxIncreaseBps"`
}

// BridgeConfig allows a purchase overflowing one tier to spill into an
// explicitly configured target tier instead of reverting.
type BridgeConfig struct {
	Target  uint64 `json:"target"`
	Enabled bool   `json:"enabled"`
}

// TierFill reports how a recorded sale was distributed across tiers.
type TierFill struct {
	TierID uint64 `json:"tierId"`
	Amount string `json:"amount"`
}

func GetTier(ctx contractapi.TransactionContextInterface, id uint64) (*Tier, error) {
	tierKey := fmt.Sprintf(tierKeyFormat, id)
	tierAsBytes, err := ctx.GetStub().GetState(tierKey)
	if err != nil {
		return nil, common.IntegrityError(fmt.Sprintf("failed to get tier with Key %s", tierKey), err)
	}
	if tierAsBytes == nil {
		return nil, common.ValidationError(fmt.Sprintf("invalid tier id %d", id), ErrInvalidTierID)
	}

	var tier Tier
	err = json.Unmarshal(tierAsBytes, &tier)
	if err != nil {
		return nil, common.IntegrityError("failed to unmarshal tier", err)
	}

	return &tier, nil
}

func SetTier(ctx contractapi.TransactionContextInterface, tier *Tier) error {
	tierKey := fmt.Sprintf(tierKeyFormat, tier.ID)
	tierAsBytes, err := json.Marshal(tier)
	if err != nil {
		return common.IntegrityError("failed to marshal tier", err)
	}

	err = ctx.GetStub().PutState(tierKey, tierAsBytes)
	if err != nil {
		return common.IntegrityError(fmt.Sprintf("failed to set tier with Key %s", tierKey), err)
	}

	return nil
}

func GetTierCount(ctx contractapi.TransactionContextInterface) (uint64, error) {
	countAsBytes, err := ctx.GetStub().GetState(tierCountKey)
	if err != nil {
		return 0, common.IntegrityError("failed to get tier count", err)
	}
	if countAsBytes == nil {
		return 0, nil
	}

	count, err := strconv.ParseUint(string(countAsBytes), 10, 64)
	if err != nil {
		return 0, common.IntegrityError("failed to parse tier count", err)
	}

	return count, nil
}

func setTierCount(ctx contractapi.TransactionContextInterface, count uint64) error {
	err := ctx.GetStub().PutState(tierCountKey, []byte(strconv.FormatUint(count, 10)))
	if err != nil {
		return common.IntegrityError("failed to set tier count", err)
	}

	return nil
}

// GetActiveTierID returns the live tier id, or ErrNoActiveTier when sales
// have not started or the progression graph has run out.
func GetActiveTierID(ctx contractapi.TransactionContextInterface) (uint64, error) {
	idAsBytes, err := ctx.GetStub().GetState(activeTierKey)
	if err != nil {
		return 0, common.IntegrityError("failed to get active tier", err)
	}
	if idAsBytes == nil {
		return 0, common.ConflictError("no active tier", ErrNoActiveTier)
	}

	id, err := strconv.ParseUint(string(idAsBytes), 10, 64)
	if err != nil {
		return 0, common.IntegrityError("failed to parse active tier id", err)
	}

	return id, nil
}

func setActiveTierID(ctx contractapi.TransactionContextInterface, id uint64) error {
	err := ctx.GetStub().PutState(activeTierKey, []byte(strconv.FormatUint(id, 10)))
	if err != nil {
		return common.IntegrityError("failed to set active tier", err)
	}

	return nil
}

func clearActiveTierID(ctx contractapi.TransactionContextInterface) error {
	err := ctx.GetStub().DelState(activeTierKey)
	if err != nil {
		return common.IntegrityError("failed to clear active tier", err)
	}

	return nil
}

func GetProgressions(ctx contractapi.TransactionContextInterface) (map[uint64]uint64, error) {
	progressionsAsBytes, err := ctx.GetStub().GetState(tierProgressionsKey)
	if err != nil {
		return nil, common.IntegrityError("failed to get tier progressions", err)
	}
	if progressionsAsBytes == nil {
		return map[uint64]uint64{}, nil
	}

	var progressions map[uint64]uint64
	err = json.Unmarshal(progressionsAsBytes, &progressions)
	if err != nil {
		return nil, common.IntegrityError("failed to unmarshal tier progressions", err)
	}

	return progressions, nil
}

func setProgressions(ctx contractapi.TransactionContextInterface, progressions map[uint64]uint64) error {
	progressionsAsBytes, err := json.Marshal(progressions)
	if err != nil {
		return common.IntegrityError("failed to marshal tier progressions", err)
	}

	err = ctx.GetStub().PutState(tierProgressionsKey, progressionsAsBytes)
	if err != nil {
		return common.IntegrityError("failed to set tier progressions", err)
	}

	return nil
}

func GetBridges(ctx contractapi.TransactionContextInterface) (map[uint64]BridgeConfig, error) {
	bridgesAsBytes, err := ctx.GetStub().GetState(tierBridgesKey)
	if err != nil {
		return nil, common.IntegrityError("failed to get tier bridges", err)
	}
	if bridgesAsBytes == nil {
		return map[uint64]BridgeConfig{}, nil
	}

	var bridges map[uint64]BridgeConfig
	err = json.Unmarshal(bridgesAsBytes, &bridges)
	if err != nil {
		return nil, common.IntegrityError("failed to unmarshal tier bridges", err)
	}

	return bridges, nil
}

func setBridges(ctx contractapi.TransactionContextInterface, bridges map[uint64]BridgeConfig) error {
	bridgesAsBytes, err := json.Marshal(bridges)
	if err != nil {
		return common.IntegrityError("failed to marshal tier bridges", err)
	}

	err = ctx.GetStub().PutState(tierBridgesKey, bridgesAsBytes)
	if err != nil {
		return common.IntegrityError("failed to set tier bridges", err)
	}

	return nil
}
