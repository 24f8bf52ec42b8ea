package crowdsale

import (
	"encoding/json"
	"fmt"

	"github.com/hyperledger/fabric-contract-api-go/contractapi"

	"github.com/buckhoff/token-presale-contract/common"
)

type PresaleConfiguredEvent struct {
	PresaleStart uint64 `json:"presaleStart"`
	PresaleEnd   uint64 `json:"presaleEnd"`
	Treasury     string `json:"treasury"`
}

type TokensPurchasedEvent struct {
	Buyer         string `json:"buyer"`
	TierID        uint64 `json:"tierId"`
	PaymentToken  string `json:"paymentToken"`
	PaymentAmount string `json:"paymentAmount"`
	TokenAmount   string `json:"tokenAmount"`
	BonusAmount   string `json:"bonusAmount"`
	USDAmount     string `json:"usdAmount"`
}

type TGECompletedEvent struct {
	CompletedAt uint64 `json:"completedAt"`
}

type TokensWithdrawnEvent struct {
	Buyer      string `json:"buyer"`
	ScheduleID uint64 `json:"scheduleId"`
	Amount     string `json:"amount"`
}

type PresalePausedEvent struct {
	PausedBy string `json:"pausedBy"`
}

type PresaleResumedEvent struct {
	ResumedBy string `json:"resumedBy"`
}

type EmergencyRecoveryInitiatedEvent struct {
	Initiator         string `json:"initiator"`
	RequiredApprovals uint64 `json:"requiredApprovals"`
}

type RecoveryApprovedEvent struct {
	Approver      string `json:"approver"`
	ApprovalCount uint64 `json:"approvalCount"`
	Required      uint64 `json:"required"`
}

type EmergencyRecoveryCompletedEvent struct {
	Approvals uint64 `json:"approvals"`
}

func emitEvent(ctx contractapi.TransactionContextInterface, name string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return common.IntegrityError(fmt.Sprintf("failed to marshal %s event", name), err)
	}

	err = ctx.GetStub().SetEvent(name, data)
	if err != nil {
		return common.IntegrityError(fmt.Sprintf("failed to emit %s event", name), err)
	}

	return nil
}

func EmitPresaleConfigured(ctx contractapi.TransactionContextInterface, config *Config) error {
	return emitEvent(ctx, "PresaleConfigured", PresaleConfiguredEvent{
		PresaleStart: config.PresaleStart,
		PresaleEnd:   config.PresaleEnd,
		Treasury:     config.Treasury,
	})
}

func EmitTokensPurchased(ctx contractapi.TransactionContextInterface, event *TokensPurchasedEvent) error {
	return emitEvent(ctx, "TokensPurchased", event)
}

func EmitTGECompleted(ctx contractapi.TransactionContextInterface, completedAt uint64) error {
	return emitEvent(ctx, "TGECompleted", TGECompletedEvent{CompletedAt: completedAt})
}

func EmitTokensWithdrawn(ctx contractapi.TransactionContextInterface, buyer string, scheduleID uint64, amount string) error {
	return emitEvent(ctx, "TokensWithdrawn", TokensWithdrawnEvent{
		Buyer:      buyer,
		ScheduleID: scheduleID,
		Amount:     amount,
	})
}

func EmitPresalePaused(ctx contractapi.TransactionContextInterface, pausedBy string) error {
	return emitEvent(ctx, "PresalePaused", PresalePausedEvent{PausedBy: pausedBy})
}

func EmitPresaleResumed(ctx contractapi.TransactionContextInterface, resumedBy string) error {
	return emitEvent(ctx, "PresaleResumed", PresaleResumedEvent{ResumedBy: resumedBy})
}

func EmitEmergencyRecoveryInitiated(ctx contractapi.TransactionContextInterface, initiator string, required uint64) error {
	return emitEvent(ctx, "EmergencyRecoveryInitiated", EmergencyRecoveryInitiatedEvent{
		Initiator:         initiator,
		RequiredApprovals: required,
	})
}

func EmitRecoveryApproved(ctx contractapi.TransactionContextInterface, approver string, count, required uint64) error {
	return emitEvent(ctx, "RecoveryApproved", RecoveryApprovedEvent{
		Approver:      approver,
		ApprovalCount: count,
		Required:      required,
	})
}

func EmitEmergencyRecoveryCompleted(ctx contractapi.TransactionContextInterface, approvals uint64) error {
	return emitEvent(ctx, "EmergencyRecoveryCompleted", EmergencyRecoveryCompletedEvent{Approvals: approvals})
}
