package registry

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/hyperledger/fabric-contract-api-go/contractapi"

	"github.com/buckhoff/token-presale-contract/common"
)

const (
	contractRecordKeyFormat = "contract_record_%s"
	contractNamesKey        = "contract_names"
	systemPausedKey         = "system_paused"
	recoveryStateKey        = "recovery_state"
	requiredApprovalsKey    = "recovery_required_approvals"
	registryInitializedKey  = "registry_initialized"

	// DefaultRequiredApprovals is the recovery quorum until an admin
	// configures one explicitly.
	DefaultRequiredApprovals = 2
)

// ContractRecord is the versioned directory entry for a registered contract.
type ContractRecord struct {
	Name                  string   `json:"name"`
	ID                    string   `json:"id"`
	CurrentAddress        string   `json:"currentAddress"`
	InterfaceID           string   `json:"interfaceId"`
	Version               uint64   `json:"version"`
	Active                bool     `json:"active"`
	ImplementationHistory []string `json:"implementationHistory"`
	RegisteredAt          uint64   `json:"registeredAt"`
	UpdatedAt             uint64   `json:"updatedAt"`
}

// RecoveryState tracks one emergency-recovery cycle.
type RecoveryState struct {
	InRecovery        bool            `json:"inRecovery"`
	RequiredApprovals uint64          `json:"requiredApprovals"`
	ApprovalCount     uint64          `json:"approvalCount"`
	Approvals         map[string]bool `json:"approvals"`
	Initiator         string          `json:"initiator"`
	InitiatedAt       uint64          `json:"initiatedAt"`
}

func GetContractRecord(ctx contractapi.TransactionContextInterface, name string) (*ContractRecord, error) {
	id, err := common.ContractID(name)
	if err != nil {
		return nil, err
	}

	recordKey := fmt.Sprintf(contractRecordKeyFormat, id)
	recordAsBytes, err := ctx.GetStub().GetState(recordKey)
	if err != nil {
		return nil, common.IntegrityError(fmt.Sprintf("failed to get contract record with Key %s", recordKey), err)
	}
	if recordAsBytes == nil {
		return nil, common.ValidationError(fmt.Sprintf("%s: %s", ErrNotRegistered, name), ErrNotRegistered)
	}

	var record ContractRecord
	err = json.Unmarshal(recordAsBytes, &record)
	if err != nil {
		return nil, common.IntegrityError("failed to unmarshal contract record", err)
	}

	return &record, nil
}

func SetContractRecord(ctx contractapi.TransactionContextInterface, record *ContractRecord) error {
	recordKey := fmt.Sprintf(contractRecordKeyFormat, record.ID)
	recordAsBytes, err := json.Marshal(record)
	if err != nil {
		return common.IntegrityError("failed to marshal contract record", err)
	}

	err = ctx.GetStub().PutState(recordKey, recordAsBytes)
	if err != nil {
		return common.IntegrityError(fmt.Sprintf("failed to set contract record with Key %s", recordKey), err)
	}

	return nil
}

func GetContractNames(ctx contractapi.TransactionContextInterface) ([]string, error) {
	namesAsBytes, err := ctx.GetStub().GetState(contractNamesKey)
	if err != nil {
		return nil, common.IntegrityError("failed to get contract names", err)
	}
	if namesAsBytes == nil {
		return []string{}, nil
	}

	var names []string
	err = json.Unmarshal(namesAsBytes, &names)
	if err != nil {
		return nil, common.IntegrityError("failed to unmarshal contract names", err)
	}

	return names, nil
}

func setContractNames(ctx contractapi.TransactionContextInterface, names []string) error {
	namesAsBytes, err := json.Marshal(names)
	if err != nil {
		return common.IntegrityError("failed to marshal contract names", err)
	}

	err = ctx.GetStub().PutState(contractNamesKey, namesAsBytes)
	if err != nil {
		return common.IntegrityError("failed to set contract names", err)
	}

	return nil
}

// IsSystemPaused reports the system-wide pause flag. Consumers across the
// suite use this for their whenContractNotPaused checks.
func IsSystemPaused(ctx contractapi.TransactionContextInterface) (bool, error) {
	pausedAsBytes, err := ctx.GetStub().GetState(systemPausedKey)
	if err != nil {
		return false, common.IntegrityError("failed to get system pause state", err)
	}

	return pausedAsBytes != nil, nil
}

func setSystemPaused(ctx contractapi.TransactionContextInterface, paused bool) error {
	var err error
	if paused {
		err = ctx.GetStub().PutState(systemPausedKey, []byte("1"))
	} else {
		err = ctx.GetStub().DelState(systemPausedKey)
	}
	if err != nil {
		return common.IntegrityError("failed to set system pause state", err)
	}

	return nil
}

func GetRecoveryState(ctx contractapi.TransactionContextInterface) (*RecoveryState, error) {
	recoveryAsBytes, err := ctx.GetStub().GetState(recoveryStateKey)
	if err != nil {
		return nil, common.IntegrityError("failed to get recovery state", err)
	}
	if recoveryAsBytes == nil {
		return &RecoveryState{Approvals: map[string]bool{}}, nil
	}

	var recovery RecoveryState
	err = json.Unmarshal(recoveryAsBytes, &recovery)
	if err != nil {
		return nil, common.IntegrityError("failed to unmarshal recovery state", err)
	}
	if recovery.Approvals == nil {
		recovery.Approvals = map[string]bool{}
	}

	return &recovery, nil
}

func setRecoveryState(ctx contractapi.TransactionContextInterface, recovery *RecoveryState) error {
	recoveryAsBytes, err := json.Marshal(recovery)
	if err != nil {
		return common.IntegrityError("failed to marshal recovery state", err)
	}

	err = ctx.GetStub().PutState(recoveryStateKey, recoveryAsBytes)
	if err != nil {
		return common.IntegrityError("failed to set recovery state", err)
	}

	return nil
}

func GetRequiredApprovals(ctx contractapi.TransactionContextInterface) (uint64, error) {
	requiredAsBytes, err := ctx.GetStub().GetState(requiredApprovalsKey)
	if err != nil {
		return 0, common.IntegrityError("failed to get required approvals", err)
	}
	if requiredAsBytes == nil {
		return DefaultRequiredApprovals, nil
	}

	required, err := strconv.ParseUint(string(requiredAsBytes), 10, 64)
	if err != nil {
		return 0, common.IntegrityError("failed to parse required approvals", err)
	}

	return required, nil
}

func setRequiredApprovals(ctx contractapi.TransactionContextInterface, required uint64) error {
	err := ctx.GetStub().PutState(requiredApprovalsKey, []byte(strconv.FormatUint(required, 10)))
	if err != nil {
		return common.IntegrityError("failed to set required approvals", err)
	}

	return nil
}

// IsRegistryAccessible reports whether the registry namespace has been
// initialized on this ledger. Consumers treat a missing registry as
// unreachable and fall back to their locally configured addresses.
func IsRegistryAccessible(ctx contractapi.TransactionContextInterface) (bool, error) {
	marker, err := ctx.GetStub().GetState(registryInitializedKey)
	if err != nil {
		return false, common.IntegrityError("failed to probe registry", err)
	}

	return marker != nil, nil
}
