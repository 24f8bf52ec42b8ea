package vesting

import (
	"encoding/json"
	"fmt"
	"math/big"
	"strconv"

	"github.com/hyperledger/fabric-contract-api-go/contractapi"

	"github.com/buckhoff/token-presale-contract/common"
)

const (
	scheduleKeyFormat   = "vesting_schedule_%d"
	scheduleCountKey    = "vesting_schedule_count"
	userSchedulesFormat = "user_vestings_%s"
	categoryKeyFormat   = "vesting_category_%s"
	totalCommittedKey   = "total_committed"
	totalClaimsKey      = "total_claims_for_all"
	vaultAddressKey     = "vesting_vault"
)

// Schedule kinds. Linear is the crowdsale default; the other kinds replace
// the linear interpolation with their own vesting functions.
const (
	KindLinear       = "linear"
	KindMilestone    = "milestone"
	KindAccelerated  = "accelerated"
	KindPerformance  = "performance"
	KindVariableRate = "variable-rate"
)

type Milestone struct {
	Name      string `json:"name"`
	Amount    string `json:"amount"`
	Completed bool   `json:"completed"`
}

type PerformanceMetric struct {
	Name        string `json:"name"`
	WeightBps   uint64 `json:"weightBps"`
	AchievedBps uint64 `json:"achievedBps"`
}

type RatePeriod struct {
	DurationSeconds uint64 `json:"durationSeconds"`
	RateBps         uint64 `json:"rateBps"`
}

// VestingSchedule is one beneficiary's vesting position. Amounts are
// 18-decimal token strings.
type VestingSchedule struct {
	ID             uint64              `json:"id"`
	Beneficiary    string              `json:"beneficiary"`
	TotalAmount    string              `json:"totalAmount"`
	Claimed        string              `json:"claimed"`
	StartTimestamp uint64              `json:"startTimestamp"`
	CliffDuration  uint64              `json:"cliffDuration"`
	Duration       uint64              `json:"duration"`
	TGEPercentage  uint64              `json:"tgePercentage"`
	Category       string              `json:"category"`
	Kind           string              `json:"kind"`
	Revocable      bool                `json:"revocable"`
	Revoked        bool                `json:"revoked"`
	RevokedAt      uint64              `json:"revokedAt"`
	Milestones     []Milestone         `json:"milestones,omitempty"`
	MultiplierBps  uint64              `json:"multiplierBps,omitempty"`
	Accelerated    bool                `json:"accelerated,omitempty"`
	MaxAmount      string              `json:"maxAmount,omitempty"`
	Metrics        []PerformanceMetric `json:"metrics,omitempty"`
	Rates          []RatePeriod        `json:"rates,omitempty"`
}

// Category is a distribution bucket (team, advisors, presale, ...) with a
// hard supply cap over all schedules created in it.
type Category struct {
	Name        string `json:"name"`
	TotalSupply string `json:"totalSupply"`
	Allocated   string `json:"allocated"`
	CreatedAt   uint64 `json:"createdAt"`
}

// CategoryInput is the configuration row for InitializeVesting. The
// percentage split across categories is deployment configuration, not
// contract behavior.
type CategoryInput struct {
	Name        string `json:"name"`
	TotalSupply string `json:"totalSupply"`
}

func GetSchedule(ctx contractapi.TransactionContextInterface, id uint64) (*VestingSchedule, error) {
	scheduleKey := fmt.Sprintf(scheduleKeyFormat, id)
	scheduleAsBytes, err := ctx.GetStub().GetState(scheduleKey)
	if err != nil {
		return nil, common.IntegrityError(fmt.Sprintf("failed to get schedule with Key %s", scheduleKey), err)
	}
	if scheduleAsBytes == nil {
		return nil, common.ValidationError(fmt.Sprintf("schedule %d does not exist", id), ErrScheduleNotFound)
	}

	var schedule VestingSchedule
	err = json.Unmarshal(scheduleAsBytes, &schedule)
	if err != nil {
		return nil, common.IntegrityError("failed to unmarshal schedule", err)
	}

	return &schedule, nil
}

func SetSchedule(ctx contractapi.TransactionContextInterface, schedule *VestingSchedule) error {
	scheduleKey := fmt.Sprintf(scheduleKeyFormat, schedule.ID)
	scheduleAsBytes, err := json.Marshal(schedule)
	if err != nil {
		return common.IntegrityError("failed to marshal schedule", err)
	}

	err = ctx.GetStub().PutState(scheduleKey, scheduleAsBytes)
	if err != nil {
		return common.IntegrityError(fmt.Sprintf("failed to set schedule with Key %s", scheduleKey), err)
	}

	return nil
}

func GetScheduleCount(ctx contractapi.TransactionContextInterface) (uint64, error) {
	countAsBytes, err := ctx.GetStub().GetState(scheduleCountKey)
	if err != nil {
		return 0, common.IntegrityError("failed to get schedule count", err)
	}
	if countAsBytes == nil {
		return 0, nil
	}

	count, err := strconv.ParseUint(string(countAsBytes), 10, 64)
	if err != nil {
		return 0, common.IntegrityError("failed to parse schedule count", err)
	}

	return count, nil
}

func setScheduleCount(ctx contractapi.TransactionContextInterface, count uint64) error {
	err := ctx.GetStub().PutState(scheduleCountKey, []byte(strconv.FormatUint(count, 10)))
	if err != nil {
		return common.IntegrityError("failed to set schedule count", err)
	}

	return nil
}

func GetUserSchedules(ctx contractapi.TransactionContextInterface, beneficiary string) ([]uint64, error) {
	userKey := fmt.Sprintf(userSchedulesFormat, beneficiary)
	userJSON, err := ctx.GetStub().GetState(userKey)
	if err != nil {
		return nil, common.IntegrityError(fmt.Sprintf("failed to get user vestings for %s", userKey), err)
	}
	if userJSON == nil {
		return []uint64{}, nil
	}

	var ids []uint64
	err = json.Unmarshal(userJSON, &ids)
	if err != nil {
		return nil, common.IntegrityError(fmt.Sprintf("failed to unmarshal user vesting list for %s", beneficiary), err)
	}

	return ids, nil
}

func setUserSchedules(ctx contractapi.TransactionContextInterface, beneficiary string, ids []uint64) error {
	userJSON, err := json.Marshal(ids)
	if err != nil {
		return common.IntegrityError(fmt.Sprintf("failed to marshal user vesting list for %s", beneficiary), err)
	}

	err = ctx.GetStub().PutState(fmt.Sprintf(userSchedulesFormat, beneficiary), userJSON)
	if err != nil {
		return common.IntegrityError(fmt.Sprintf("failed to set user vesting list for %s", beneficiary), err)
	}

	return nil
}

func GetCategory(ctx contractapi.TransactionContextInterface, name string) (*Category, error) {
	categoryKey := fmt.Sprintf(categoryKeyFormat, name)
	categoryAsBytes, err := ctx.GetStub().GetState(categoryKey)
	if err != nil {
		return nil, common.IntegrityError(fmt.Sprintf("failed to get category with Key %s", categoryKey), err)
	}
	if categoryAsBytes == nil {
		return nil, common.ValidationError(fmt.Sprintf("vesting category %s does not exist", name), ErrCategoryNotFound)
	}

	var category Category
	err = json.Unmarshal(categoryAsBytes, &category)
	if err != nil {
		return nil, common.IntegrityError("failed to unmarshal category", err)
	}

	return &category, nil
}

func SetCategory(ctx contractapi.TransactionContextInterface, category *Category) error {
	categoryAsBytes, err := json.Marshal(category)
	if err != nil {
		return common.IntegrityError("failed to marshal category", err)
	}

	err = ctx.GetStub().PutState(fmt.Sprintf(categoryKeyFormat, category.Name), categoryAsBytes)
	if err != nil {
		return common.IntegrityError(fmt.Sprintf("failed to set category %s", category.Name), err)
	}

	return nil
}

func GetTotalCommitted(ctx contractapi.TransactionContextInterface) (*big.Int, error) {
	committedAsBytes, err := ctx.GetStub().GetState(totalCommittedKey)
	if err != nil {
		return nil, common.IntegrityError("failed to get total committed", err)
	}

	committed := big.NewInt(0)
	if committedAsBytes != nil {
		_, success := committed.SetString(string(committedAsBytes), 10)
		if !success {
			return nil, common.IntegrityError("failed to parse total committed", nil)
		}
	}

	return committed, nil
}

func setTotalCommitted(ctx contractapi.TransactionContextInterface, committed *big.Int) error {
	err := ctx.GetStub().PutState(totalCommittedKey, []byte(committed.String()))
	if err != nil {
		return common.IntegrityError("failed to set total committed", err)
	}

	return nil
}

func GetTotalClaimsForAll(ctx contractapi.TransactionContextInterface) (*big.Int, error) {
	totalClaimsAsBytes, err := ctx.GetStub().GetState(totalClaimsKey)
	if err != nil {
		return nil, common.IntegrityError("failed to get total claims", err)
	}

	totalClaims := big.NewInt(0)
	if totalClaimsAsBytes != nil {
		_, success := totalClaims.SetString(string(totalClaimsAsBytes), 10)
		if !success {
			return nil, common.IntegrityError("failed to parse claimed amount for all", nil)
		}
	}

	return totalClaims, nil
}

func setTotalClaimsForAll(ctx contractapi.TransactionContextInterface, totalClaims *big.Int) error {
	err := ctx.GetStub().PutState(totalClaimsKey, []byte(totalClaims.String()))
	if err != nil {
		return common.IntegrityError("failed to set total claims", err)
	}

	return nil
}

// GetVaultAddress returns the token account that funds vesting payouts.
func GetVaultAddress(ctx contractapi.TransactionContextInterface) (string, error) {
	vaultAsBytes, err := ctx.GetStub().GetState(vaultAddressKey)
	if err != nil {
		return "", common.IntegrityError("failed to get vault address", err)
	}
	if vaultAsBytes == nil {
		return "", common.ConflictError("vesting vault not configured", ErrVaultNotConfigured)
	}

	return string(vaultAsBytes), nil
}

func setVaultAddress(ctx contractapi.TransactionContextInterface, address string) error {
	err := ctx.GetStub().PutState(vaultAddressKey, []byte(address))
	if err != nil {
		return common.IntegrityError("failed to set vault address", err)
	}

	return nil
}
