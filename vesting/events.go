package vesting

import (
	"encoding/json"
	"fmt"

	"github.com/hyperledger/fabric-contract-api-go/contractapi"
)

type VestingScheduleCreatedEvent struct {
	ScheduleID     uint64 `json:"scheduleId"`
	Beneficiary    string `json:"beneficiary"`
	TotalAmount    string `json:"totalAmount"`
	StartTimestamp uint64 `json:"startTimestamp"`
	CliffDuration  uint64 `json:"cliffDuration"`
	Duration       uint64 `json:"duration"`
	TGEPercentage  uint64 `json:"tgePercentage"`
	Category       string `json:"category"`
	Kind           string `json:"kind"`
}

type TokensClaimedEvent struct {
	ScheduleID  uint64 `json:"scheduleId"`
	Beneficiary string `json:"beneficiary"`
	Amount      string `json:"amount"`
}

type ScheduleAugmentedEvent struct {
	ScheduleID  uint64 `json:"scheduleId"`
	AddedAmount string `json:"addedAmount"`
	TotalAmount string `json:"totalAmount"`
}

type ScheduleRevokedEvent struct {
	ScheduleID   uint64 `json:"scheduleId"`
	VestedFrozen string `json:"vestedFrozen"`
	RevokedAt    uint64 `json:"revokedAt"`
}

type MilestoneCompletedEvent struct {
	ScheduleID uint64 `json:"scheduleId"`
	Index      uint64 `json:"index"`
}

type MetricUpdatedEvent struct {
	ScheduleID  uint64 `json:"scheduleId"`
	Index       uint64 `json:"index"`
	AchievedBps uint64 `json:"achievedBps"`
}

type AccelerationTriggeredEvent struct {
	ScheduleID uint64 `json:"scheduleId"`
}

type CategoryInitializedEvent struct {
	Name        string `json:"name"`
	TotalSupply string `json:"totalSupply"`
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

func EmitVestingScheduleCreated(ctx contractapi.TransactionContextInterface, schedule *VestingSchedule) error {
	return emitEvent(ctx, "VestingScheduleCreated", VestingScheduleCreatedEvent{
		ScheduleID:     schedule.ID,
		Beneficiary:    schedule.Beneficiary,
		TotalAmount:    schedule.TotalAmount,
		StartTimestamp: schedule.StartTimestamp,
		CliffDuration:  schedule.CliffDuration,
		Duration:       schedule.Duration,
		TGEPercentage:  schedule.TGEPercentage,
		Category:       schedule.Category,
		Kind:           schedule.Kind,
	})
}

func EmitTokensClaimed(ctx contractapi.TransactionContextInterface, scheduleID uint64, beneficiary, amount string) error {
	return emitEvent(ctx, "TokensClaimed", TokensClaimedEvent{
		ScheduleID:  scheduleID,
		Beneficiary: beneficiary,
		Amount:      amount,
	})
}

func EmitScheduleAugmented(ctx contractapi.TransactionContextInterface, scheduleID uint64, added, total string) error {
	return emitEvent(ctx, "VestingScheduleAugmented", ScheduleAugmentedEvent{
		ScheduleID:  scheduleID,
		AddedAmount: added,
		TotalAmount: total,
	})
}

func EmitScheduleRevoked(ctx contractapi.TransactionContextInterface, scheduleID uint64, vestedFrozen string, revokedAt uint64) error {
	return emitEvent(ctx, "VestingScheduleRevoked", ScheduleRevokedEvent{
		ScheduleID:   scheduleID,
		VestedFrozen: vestedFrozen,
		RevokedAt:    revokedAt,
	})
}

func EmitMilestoneCompleted(ctx contractapi.TransactionContextInterface, scheduleID, index uint64) error {
	return emitEvent(ctx, "MilestoneCompleted", MilestoneCompletedEvent{ScheduleID: scheduleID, Index: index})
}

func EmitMetricUpdated(ctx contractapi.TransactionContextInterface, scheduleID, index, achievedBps uint64) error {
	return emitEvent(ctx, "PerformanceMetricUpdated", MetricUpdatedEvent{
		ScheduleID:  scheduleID,
		Index:       index,
		AchievedBps: achievedBps,
	})
}

func EmitAccelerationTriggered(ctx contractapi.TransactionContextInterface, scheduleID uint64) error {
	return emitEvent(ctx, "AccelerationTriggered", AccelerationTriggeredEvent{ScheduleID: scheduleID})
}

func EmitCategoryInitialized(ctx contractapi.TransactionContextInterface, category *Category) error {
	return emitEvent(ctx, "VestingCategoryInitialized", CategoryInitializedEvent{
		Name:        category.Name,
		TotalSupply: category.TotalSupply,
	})
}
