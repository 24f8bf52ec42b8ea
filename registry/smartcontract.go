package registry

import (
	"fmt"

	"github.com/hyperledger/fabric-contract-api-go/contractapi"

	"github.com/buckhoff/token-presale-contract/common"
)

// SmartContract is the central service directory for the suite. Every other
// contract resolves its collaborators and the system-wide pause flag through
// it.
type SmartContract struct {
	contractapi.Contract
	AC common.AccessControl
}

func NewSmartContract() *SmartContract {
	sc := &SmartContract{AC: common.NewLedgerAccessControl()}
	sc.Name = common.ServiceRegistry
	return sc
}

func (s *SmartContract) accessControl() common.AccessControl {
	if s.AC == nil {
		s.AC = common.NewLedgerAccessControl()
	}
	return s.AC
}

// Initialize bootstraps the access-control roles for the deployer and marks
// the registry namespace live so dependents can probe reachability.
func (s *SmartContract) Initialize(ctx contractapi.TransactionContextInterface) error {
	err := common.BootstrapAccessControl(ctx, s.accessControl())
	if err != nil {
		return err
	}

	err = ctx.GetStub().PutState(registryInitializedKey, []byte("1"))
	if err != nil {
		return common.IntegrityError("failed to mark registry initialized", err)
	}

	return nil
}

func (s *SmartContract) RegisterContract(ctx contractapi.TransactionContextInterface, name, address, interfaceID string) error {
	_, err := common.RequireRole(ctx, s.accessControl(), common.RoleRegistrar)
	if err != nil {
		return err
	}

	if !common.IsContractAddressValid(address) {
		return common.ValidationError(fmt.Sprintf("invalid contract address %q", address), common.ErrZeroAddress)
	}

	id, err := common.ContractID(name)
	if err != nil {
		return err
	}

	existing, err := ctx.GetStub().GetState(fmt.Sprintf(contractRecordKeyFormat, id))
	if err != nil {
		return common.IntegrityError("failed to probe contract record", err)
	}
	if existing != nil {
		return common.ConflictError(fmt.Sprintf("contract %s already registered", name), ErrAlreadyRegistered)
	}

	now, err := common.TxTimestamp(ctx)
	if err != nil {
		return err
	}

	record := &ContractRecord{
		Name:                  name,
		ID:                    id,
		CurrentAddress:        address,
		InterfaceID:           interfaceID,
		Version:               1,
		Active:                true,
		ImplementationHistory: []string{address},
		RegisteredAt:          now,
		UpdatedAt:             now,
	}

	err = SetContractRecord(ctx, record)
	if err != nil {
		return err
	}

	names, err := GetContractNames(ctx)
	if err != nil {
		return err
	}
	names = append(names, name)
	err = setContractNames(ctx, names)
	if err != nil {
		return err
	}

	return EmitContractRegistered(ctx, record)
}

func (s *SmartContract) UpdateContract(ctx contractapi.TransactionContextInterface, name, newAddress, interfaceID string) error {
	_, err := common.RequireRole(ctx, s.accessControl(), common.RoleRegistrar)
	if err != nil {
		return err
	}

	if !common.IsContractAddressValid(newAddress) {
		return common.ValidationError(fmt.Sprintf("invalid contract address %q", newAddress), common.ErrZeroAddress)
	}

	record, err := GetContractRecord(ctx, name)
	if err != nil {
		return err
	}

	if record.CurrentAddress == newAddress {
		return common.ValidationError(fmt.Sprintf("contract %s already at address %s", name, newAddress), ErrSameAddress)
	}

	now, err := common.TxTimestamp(ctx)
	if err != nil {
		return err
	}

	oldAddress := record.CurrentAddress
	record.CurrentAddress = newAddress
	record.InterfaceID = interfaceID
	record.Version++
	record.ImplementationHistory = append(record.ImplementationHistory, newAddress)
	record.UpdatedAt = now

	err = SetContractRecord(ctx, record)
	if err != nil {
		return err
	}

	return EmitContractUpdated(ctx, record, oldAddress)
}

func (s *SmartContract) SetContractStatus(ctx contractapi.TransactionContextInterface, name string, active bool) error {
	_, err := common.RequireRole(ctx, s.accessControl(), common.RoleRegistrar)
	if err != nil {
		return err
	}

	record, err := GetContractRecord(ctx, name)
	if err != nil {
		return err
	}

	record.Active = active
	err = SetContractRecord(ctx, record)
	if err != nil {
		return err
	}

	return EmitContractStatusChanged(ctx, name, active)
}

// PauseSystem halts every mutating entry point across the suite that checks
// system pause state through the registry.
func (s *SmartContract) PauseSystem(ctx contractapi.TransactionContextInterface) error {
	signer, err := common.RequireRole(ctx, s.accessControl(), common.RoleEmergency)
	if err != nil {
		return err
	}

	paused, err := IsSystemPaused(ctx)
	if err != nil {
		return err
	}
	if paused {
		return common.ConflictError("system already paused", ErrAlreadyPaused)
	}

	err = setSystemPaused(ctx, true)
	if err != nil {
		return err
	}

	now, err := common.TxTimestamp(ctx)
	if err != nil {
		return err
	}

	return EmitSystemPaused(ctx, signer, now)
}

// ResumeSystem lifts the pause outside of recovery. While a recovery cycle is
// active the pause can only clear through the approval quorum.
func (s *SmartContract) ResumeSystem(ctx contractapi.TransactionContextInterface) error {
	signer, err := common.RequireRole(ctx, s.accessControl(), common.RoleEmergency)
	if err != nil {
		return err
	}

	paused, err := IsSystemPaused(ctx)
	if err != nil {
		return err
	}
	if !paused {
		return common.ConflictError("system is not paused", ErrNotPaused)
	}

	recovery, err := GetRecoveryState(ctx)
	if err != nil {
		return err
	}
	if recovery.InRecovery && recovery.ApprovalCount < recovery.RequiredApprovals {
		return common.ConflictError(
			fmt.Sprintf("recovery in progress: %d of %d approvals", recovery.ApprovalCount, recovery.RequiredApprovals),
			ErrRecoveryInProgress)
	}

	err = setSystemPaused(ctx, false)
	if err != nil {
		return err
	}

	now, err := common.TxTimestamp(ctx)
	if err != nil {
		return err
	}

	return EmitSystemResumed(ctx, signer, now)
}

// InitiateEmergencyRecovery opens a recovery cycle. It requires the system to
// already be paused and resets the approval set.
func (s *SmartContract) InitiateEmergencyRecovery(ctx contractapi.TransactionContextInterface) error {
	signer, err := common.RequireRole(ctx, s.accessControl(), common.RoleEmergency)
	if err != nil {
		return err
	}

	paused, err := IsSystemPaused(ctx)
	if err != nil {
		return err
	}
	if !paused {
		return common.ConflictError("recovery requires the system to be paused", ErrNotPaused)
	}

	required, err := GetRequiredApprovals(ctx)
	if err != nil {
		return err
	}

	now, err := common.TxTimestamp(ctx)
	if err != nil {
		return err
	}

	recovery := &RecoveryState{
		InRecovery:        true,
		RequiredApprovals: required,
		ApprovalCount:     0,
		Approvals:         map[string]bool{},
		Initiator:         signer,
		InitiatedAt:       now,
	}
	err = setRecoveryState(ctx, recovery)
	if err != nil {
		return err
	}

	return EmitEmergencyRecoveryInitiated(ctx, signer, required, now)
}

// ApproveRecovery records one admin approval. The approval that meets the
// quorum clears the pause and closes the cycle in the same transaction.
func (s *SmartContract) ApproveRecovery(ctx contractapi.TransactionContextInterface) error {
	signer, err := common.RequireRole(ctx, s.accessControl(), common.RoleAdmin)
	if err != nil {
		return err
	}

	recovery, err := GetRecoveryState(ctx)
	if err != nil {
		return err
	}
	if !recovery.InRecovery {
		return common.ConflictError("no recovery in progress", ErrNotInRecovery)
	}
	if recovery.Approvals[signer] {
		return common.ConflictError(fmt.Sprintf("approver %s already approved", signer), ErrAlreadyApproved)
	}

	recovery.Approvals[signer] = true
	recovery.ApprovalCount++

	err = EmitRecoveryApproved(ctx, signer, recovery.ApprovalCount, recovery.RequiredApprovals)
	if err != nil {
		return err
	}

	if recovery.ApprovalCount == recovery.RequiredApprovals {
		recovery.InRecovery = false
		err = setRecoveryState(ctx, recovery)
		if err != nil {
			return err
		}

		err = setSystemPaused(ctx, false)
		if err != nil {
			return err
		}

		now, err := common.TxTimestamp(ctx)
		if err != nil {
			return err
		}

		return EmitEmergencyRecoveryCompleted(ctx, recovery.ApprovalCount, now)
	}

	return setRecoveryState(ctx, recovery)
}

func (s *SmartContract) SetRequiredApprovals(ctx contractapi.TransactionContextInterface, required uint64) error {
	_, err := common.RequireRole(ctx, s.accessControl(), common.RoleAdmin)
	if err != nil {
		return err
	}

	if required == 0 {
		return common.ValidationError("required approvals must be at least 1", ErrInvalidApprovalQuorum)
	}

	recovery, err := GetRecoveryState(ctx)
	if err != nil {
		return err
	}
	if recovery.InRecovery {
		return common.ConflictError("cannot change quorum during recovery", ErrRecoveryInProgress)
	}

	return setRequiredApprovals(ctx, required)
}

func (s *SmartContract) GrantRole(ctx contractapi.TransactionContextInterface, roleName, account string) error {
	_, err := common.RequireRole(ctx, s.accessControl(), common.RoleAdmin)
	if err != nil {
		return err
	}

	roleID, err := common.ContractID(roleName)
	if err != nil {
		return err
	}

	return s.accessControl().GrantRole(ctx, roleID, account)
}

func (s *SmartContract) RevokeRole(ctx contractapi.TransactionContextInterface, roleName, account string) error {
	_, err := common.RequireRole(ctx, s.accessControl(), common.RoleAdmin)
	if err != nil {
		return err
	}

	roleID, err := common.ContractID(roleName)
	if err != nil {
		return err
	}

	return s.accessControl().RevokeRole(ctx, roleID, account)
}

func (s *SmartContract) HasRole(ctx contractapi.TransactionContextInterface, roleName, account string) (bool, error) {
	roleID, err := common.ContractID(roleName)
	if err != nil {
		return false, err
	}

	return s.accessControl().HasRole(ctx, roleID, account)
}

func (s *SmartContract) GetContractAddress(ctx contractapi.TransactionContextInterface, name string) (string, error) {
	record, err := GetContractRecord(ctx, name)
	if err != nil {
		return "", err
	}

	return record.CurrentAddress, nil
}

func (s *SmartContract) GetContractVersion(ctx contractapi.TransactionContextInterface, name string) (uint64, error) {
	record, err := GetContractRecord(ctx, name)
	if err != nil {
		return 0, err
	}

	return record.Version, nil
}

// IsContractActive never fails: unknown names simply report inactive.
func (s *SmartContract) IsContractActive(ctx contractapi.TransactionContextInterface, name string) (bool, error) {
	id, err := common.ContractID(name)
	if err != nil {
		return false, err
	}

	recordAsBytes, err := ctx.GetStub().GetState(fmt.Sprintf(contractRecordKeyFormat, id))
	if err != nil {
		return false, common.IntegrityError("failed to probe contract record", err)
	}
	if recordAsBytes == nil {
		return false, nil
	}

	record, err := GetContractRecord(ctx, name)
	if err != nil {
		return false, err
	}

	return record.Active, nil
}

func (s *SmartContract) GetImplementationHistory(ctx contractapi.TransactionContextInterface, name string) ([]string, error) {
	record, err := GetContractRecord(ctx, name)
	if err != nil {
		return nil, err
	}

	return record.ImplementationHistory, nil
}

func (s *SmartContract) GetAllContractNames(ctx contractapi.TransactionContextInterface) ([]string, error) {
	return GetContractNames(ctx)
}

func (s *SmartContract) IsSystemPaused(ctx contractapi.TransactionContextInterface) (bool, error) {
	return IsSystemPaused(ctx)
}

func (s *SmartContract) GetRecoveryStatus(ctx contractapi.TransactionContextInterface) (*RecoveryState, error) {
	return GetRecoveryState(ctx)
}
