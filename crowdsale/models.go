package crowdsale

import (
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/hyperledger/fabric-contract-api-go/contractapi"

	"github.com/buckhoff/token-presale-contract/common"
)

// Sale lifecycle, derived from the configured window plus the TGE flag.
const (
	StateNotStarted   = "NOT_STARTED"
	StateActive       = "ACTIVE"
	StateEnded        = "ENDED"
	StateTGECompleted = "TGE_COMPLETED"
)

// Emergency states are orthogonal to the sale lifecycle.
const (
	EmergencyNormal   = "NORMAL"
	EmergencyMinor    = "MINOR_EMERGENCY"
	EmergencyCritical = "CRITICAL_EMERGENCY"
)

const (
	configKey         = "crowdsale_config"
	purchaseKey       = "purchase_record_%s"
	buyersKey         = "crowdsale_buyers"
	totalTokensKey    = "crowdsale_total_tokens"
	totalUSDKey       = "crowdsale_total_usd"
	tgeCompletedKey   = "crowdsale_tge_completed"
	emergencyKey      = "crowdsale_emergency"
	requiredApprovals = "crowdsale_recovery_required_approvals"

	// DefaultRequiredApprovals matches the registry's recovery quorum.
	DefaultRequiredApprovals = 2
)

// Config carries the sale window and the per-address limits. Amounts are
// decimal strings: USD values carry 6 decimals, token values 18.
type Config struct {
	PresaleStart        uint64 `json:"presaleStart"`
	PresaleEnd          uint64 `json:"presaleEnd"`
	MinPurchaseInterval uint64 `json:"minPurchaseInterval"`
	MaxPurchaseUSD      string `json:"maxPurchaseUsd"`
	MaxTokensPerAddress string `json:"maxTokensPerAddress"`
	Treasury            string `json:"treasury"`
	Stablecoin          string `json:"stablecoin"`
}

// PurchaseRecord accumulates one buyer's activity across the whole sale.
// Payments maps payment token address to the raw amount paid in that token.
type PurchaseRecord struct {
	Buyer             string            `json:"buyer"`
	TokensPurchased   string            `json:"tokensPurchased"`
	BonusTokens       string            `json:"bonusTokens"`
	USDAmount         string            `json:"usdAmount"`
	LastPurchaseAt    uint64            `json:"lastPurchaseAt"`
	Payments          map[string]string `json:"payments"`
	VestingScheduleID uint64            `json:"vestingScheduleId"`
	ScheduleCreated   bool              `json:"scheduleCreated"`
}

// EmergencyStatus tracks the pause flag and the recovery approval cycle.
type EmergencyStatus struct {
	State         string          `json:"state"`
	ApprovalCount uint64          `json:"approvalCount"`
	Approvals     map[string]bool `json:"approvals,omitempty"`
	Initiator     string          `json:"initiator,omitempty"`
	InitiatedAt   uint64          `json:"initiatedAt,omitempty"`
}

func GetConfig(ctx contractapi.TransactionContextInterface) (*Config, error) {
	data, err := ctx.GetStub().GetState(configKey)
	if err != nil {
		return nil, common.IntegrityError("failed to read crowdsale config", err)
	}
	if data == nil {
		return nil, common.ConflictError("presale has not been configured", ErrConfigNotSet)
	}

	var config Config
	err = json.Unmarshal(data, &config)
	if err != nil {
		return nil, common.IntegrityError("failed to unmarshal crowdsale config", err)
	}

	return &config, nil
}

func SetConfig(ctx contractapi.TransactionContextInterface, config *Config) error {
	data, err := json.Marshal(config)
	if err != nil {
		return common.IntegrityError("failed to marshal crowdsale config", err)
	}

	err = ctx.GetStub().PutState(configKey, data)
	if err != nil {
		return common.IntegrityError("failed to store crowdsale config", err)
	}

	return nil
}

// GetPurchaseRecord returns the buyer's record, or a zeroed record when the
// buyer has never purchased.
func GetPurchaseRecord(ctx contractapi.TransactionContextInterface, buyer string) (*PurchaseRecord, error) {
	data, err := ctx.GetStub().GetState(fmt.Sprintf(purchaseKey, buyer))
	if err != nil {
		return nil, common.IntegrityError(fmt.Sprintf("failed to read purchase record for %s", buyer), err)
	}
	if data == nil {
		return &PurchaseRecord{
			Buyer:           buyer,
			TokensPurchased: "0",
			BonusTokens:     "0",
			USDAmount:       "0",
			Payments:        map[string]string{},
		}, nil
	}

	var record PurchaseRecord
	err = json.Unmarshal(data, &record)
	if err != nil {
		return nil, common.IntegrityError(fmt.Sprintf("failed to unmarshal purchase record for %s", buyer), err)
	}
	if record.Payments == nil {
		record.Payments = map[string]string{}
	}

	return &record, nil
}

func SetPurchaseRecord(ctx contractapi.TransactionContextInterface, record *PurchaseRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return common.IntegrityError("failed to marshal purchase record", err)
	}

	err = ctx.GetStub().PutState(fmt.Sprintf(purchaseKey, record.Buyer), data)
	if err != nil {
		return common.IntegrityError("failed to store purchase record", err)
	}

	return nil
}

func GetBuyers(ctx contractapi.TransactionContextInterface) ([]string, error) {
	data, err := ctx.GetStub().GetState(buyersKey)
	if err != nil {
		return nil, common.IntegrityError("failed to read buyers list", err)
	}
	if data == nil {
		return nil, nil
	}

	var buyers []string
	err = json.Unmarshal(data, &buyers)
	if err != nil {
		return nil, common.IntegrityError("failed to unmarshal buyers list", err)
	}

	return buyers, nil
}

func setBuyers(ctx contractapi.TransactionContextInterface, buyers []string) error {
	data, err := json.Marshal(buyers)
	if err != nil {
		return common.IntegrityError("failed to marshal buyers list", err)
	}

	err = ctx.GetStub().PutState(buyersKey, data)
	if err != nil {
		return common.IntegrityError("failed to store buyers list", err)
	}

	return nil
}

func getBigState(ctx contractapi.TransactionContextInterface, key string) (*big.Int, error) {
	data, err := ctx.GetStub().GetState(key)
	if err != nil {
		return nil, common.IntegrityError(fmt.Sprintf("failed to read %s", key), err)
	}
	if data == nil {
		return big.NewInt(0), nil
	}

	return common.ParseAmount(key, string(data))
}

func setBigState(ctx contractapi.TransactionContextInterface, key string, value *big.Int) error {
	err := ctx.GetStub().PutState(key, []byte(value.String()))
	if err != nil {
		return common.IntegrityError(fmt.Sprintf("failed to store %s", key), err)
	}

	return nil
}

func GetTotalTokensSold(ctx contractapi.TransactionContextInterface) (*big.Int, error) {
	return getBigState(ctx, totalTokensKey)
}

func GetTotalUSDRaised(ctx contractapi.TransactionContextInterface) (*big.Int, error) {
	return getBigState(ctx, totalUSDKey)
}

func IsTGECompleted(ctx contractapi.TransactionContextInterface) (bool, error) {
	data, err := ctx.GetStub().GetState(tgeCompletedKey)
	if err != nil {
		return false, common.IntegrityError("failed to read tge flag", err)
	}

	return string(data) == "true", nil
}

func setTGECompleted(ctx contractapi.TransactionContextInterface) error {
	err := ctx.GetStub().PutState(tgeCompletedKey, []byte("true"))
	if err != nil {
		return common.IntegrityError("failed to store tge flag", err)
	}

	return nil
}

func GetEmergencyStatus(ctx contractapi.TransactionContextInterface) (*EmergencyStatus, error) {
	data, err := ctx.GetStub().GetState(emergencyKey)
	if err != nil {
		return nil, common.IntegrityError("failed to read emergency status", err)
	}
	if data == nil {
		return &EmergencyStatus{State: EmergencyNormal}, nil
	}

	var status EmergencyStatus
	err = json.Unmarshal(data, &status)
	if err != nil {
		return nil, common.IntegrityError("failed to unmarshal emergency status", err)
	}

	return &status, nil
}

func setEmergencyStatus(ctx contractapi.TransactionContextInterface, status *EmergencyStatus) error {
	data, err := json.Marshal(status)
	if err != nil {
		return common.IntegrityError("failed to marshal emergency status", err)
	}

	err = ctx.GetStub().PutState(emergencyKey, data)
	if err != nil {
		return common.IntegrityError("failed to store emergency status", err)
	}

	return nil
}

func GetRequiredApprovals(ctx contractapi.TransactionContextInterface) (uint64, error) {
	data, err := ctx.GetStub().GetState(requiredApprovals)
	if err != nil {
		return 0, common.IntegrityError("failed to read required approvals", err)
	}
	if data == nil {
		return DefaultRequiredApprovals, nil
	}

	var required uint64
	err = json.Unmarshal(data, &required)
	if err != nil {
		return 0, common.IntegrityError("failed to unmarshal required approvals", err)
	}

	return required, nil
}

func setRequiredApprovals(ctx contractapi.TransactionContextInterface, required uint64) error {
	data, err := json.Marshal(required)
	if err != nil {
		return common.IntegrityError("failed to marshal required approvals", err)
	}

	err = ctx.GetStub().PutState(requiredApprovals, data)
	if err != nil {
		return common.IntegrityError("failed to store required approvals", err)
	}

	return nil
}
