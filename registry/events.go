package registry

import (
	"encoding/json"
	"fmt"

	"github.com/hyperledger/fabric-contract-api-go/contractapi"
)

type ContractRegisteredEvent struct {
	Name    string `json:"name"`
	ID      string `json:"id"`
	Address string `json:"address"`
	Version uint64 `json:"version"`
}

type ContractUpdatedEvent struct {
	Name       string `json:"name"`
	OldAddress string `json:"oldAddress"`
	NewAddress string `json:"newAddress"`
	Version    uint64 `json:"version"`
}

type ContractStatusChangedEvent struct {
	Name   string `json:"name"`
	Active bool   `json:"active"`
}

type SystemPauseEvent struct {
	Actor     string `json:"actor"`
	Timestamp uint64 `json:"timestamp"`
}

type EmergencyRecoveryInitiatedEvent struct {
	Initiator         string `json:"initiator"`
	RequiredApprovals uint64 `json:"requiredApprovals"`
	Timestamp         uint64 `json:"timestamp"`
}

type RecoveryApprovedEvent struct {
	Approver      string `json:"approver"`
	ApprovalCount uint64 `json:"approvalCount"`
	Required      uint64 `json:"requiredApprovals"`
}

type EmergencyRecoveryCompletedEvent struct {
	ApprovalCount uint64 `json:"approvalCount"`
	Timestamp     uint64 `json:"timestamp"`
}

type ContractReferenceUpdatedEvent struct {
	Consumer string `json:"consumer"`
	Service  string `json:"service"`
	Address  string `json:"address"`
}

type FallbackAddressSetEvent struct {
	Consumer string `json:"consumer"`
	Service  string `json:"service"`
	Address  string `json:"address"`
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

func EmitContractRegistered(ctx contractapi.TransactionContextInterface, record *ContractRecord) error {
	return emitEvent(ctx, "ContractRegistered", ContractRegisteredEvent{
		Name:    record.Name,
		ID:      record.ID,
		Address: record.CurrentAddress,
		Version: record.Version,
	})
}

func EmitContractUpdated(ctx contractapi.TransactionContextInterface, record *ContractRecord, oldAddress string) error {
	return emitEvent(ctx, "ContractUpdated", ContractUpdatedEvent{
		Name:       record.Name,
		OldAddress: oldAddress,
		NewAddress: record.CurrentAddress,
		Version:    record.Version,
	})
}

func EmitContractStatusChanged(ctx contractapi.TransactionContextInterface, name string, active bool) error {
	return emitEvent(ctx, "ContractStatusChanged", ContractStatusChangedEvent{Name: name, Active: active})
}

func EmitSystemPaused(ctx contractapi.TransactionContextInterface, actor string, timestamp uint64) error {
	return emitEvent(ctx, "SystemPaused", SystemPauseEvent{Actor: actor, Timestamp: timestamp})
}

func EmitSystemResumed(ctx contractapi.TransactionContextInterface, actor string, timestamp uint64) error {
	return emitEvent(ctx, "SystemResumed", SystemPauseEvent{Actor: actor, Timestamp: timestamp})
}

func EmitEmergencyRecoveryInitiated(ctx contractapi.TransactionContextInterface, initiator string, required, timestamp uint64) error {
	return emitEvent(ctx, "EmergencyRecoveryInitiated", EmergencyRecoveryInitiatedEvent{
		Initiator:         initiator,
		RequiredApprovals: required,
		Timestamp:         timestamp,
	})
}

func EmitRecoveryApproved(ctx contractapi.TransactionContextInterface, approver string, count, required uint64) error {
	return emitEvent(ctx, "RecoveryApproved", RecoveryApprovedEvent{
		Approver:      approver,
		ApprovalCount: count,
		Required:      required,
	})
}

func EmitEmergencyRecoveryCompleted(ctx contractapi.TransactionContextInterface, count, timestamp uint64) error {
	return emitEvent(ctx, "EmergencyRecoveryCompleted", EmergencyRecoveryCompletedEvent{
		ApprovalCount: count,
		Timestamp:     timestamp,
	})
}

func EmitContractReferenceUpdated(ctx contractapi.TransactionContextInterface, consumer, service, address string) error {
	return emitEvent(ctx, "ContractReferenceUpdated", ContractReferenceUpdatedEvent{
		Consumer: consumer,
		Service:  service,
		Address:  address,
	})
}

func EmitFallbackAddressSet(ctx contractapi.TransactionContextInterface, consumer, service, address string) error {
	return emitEvent(ctx, "FallbackAddressSet", FallbackAddressSetEvent{
		Consumer: consumer,
		Service:  service,
		Address:  address,
	})
}
