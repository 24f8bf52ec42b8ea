package common

import (
	"fmt"

	"github.com/hyperledger/fabric-contract-api-go/contractapi"
)

// Role identifiers are content-derived, matching the service-name scheme.
var (
	RoleAdmin          = MustContractID("ADMIN_ROLE")
	RoleEmergency      = MustContractID("EMERGENCY_ROLE")
	RoleRegistrar      = MustContractID("REGISTRAR_ROLE")
	RoleVestingManager = MustContractID("VESTING_MANAGER_ROLE")
	RoleCrowdsale      = MustContractID("CROWDSALE_ROLE")
)

const (
	roleKeyFormat    = "role_%s_%s"
	roleBootstrapKey = "role_bootstrap_done"
)

// AccessControl is the capability policy consulted at the start of every
// mutating operation. It is injected into each contract so tests and future
// deployments can swap the policy without touching contract logic.
type AccessControl interface {
	HasRole(ctx contractapi.TransactionContextInterface, role, account string) (bool, error)
	GrantRole(ctx contractapi.TransactionContextInterface, role, account string) error
	RevokeRole(ctx contractapi.TransactionContextInterface, role, account string) error
}

// LedgerAccessControl stores role grants in world state.
type LedgerAccessControl struct{}

func NewLedgerAccessControl() *LedgerAccessControl {
	return &LedgerAccessControl{}
}

func (ac *LedgerAccessControl) HasRole(ctx contractapi.TransactionContextInterface, role, account string) (bool, error) {
	granted, err := ctx.GetStub().GetState(fmt.Sprintf(roleKeyFormat, role, account))
	if err != nil {
		return false, NewCustomError(CodeIntegrity, fmt.Sprintf("failed to read role %s for %s", role, account), err)
	}

	return granted != nil, nil
}

func (ac *LedgerAccessControl) GrantRole(ctx contractapi.TransactionContextInterface, role, account string) error {
	if account == "" {
		return ValidationError("account cannot be zero", ErrZeroAddress)
	}

	err := ctx.GetStub().PutState(fmt.Sprintf(roleKeyFormat, role, account), []byte("1"))
	if err != nil {
		return NewCustomError(CodeIntegrity, fmt.Sprintf("failed to grant role %s to %s", role, account), err)
	}

	return nil
}

func (ac *LedgerAccessControl) RevokeRole(ctx contractapi.TransactionContextInterface, role, account string) error {
	err := ctx.GetStub().DelState(fmt.Sprintf(roleKeyFormat, role, account))
	if err != nil {
		return NewCustomError(CodeIntegrity, fmt.Sprintf("failed to revoke role %s from %s", role, account), err)
	}

	return nil
}

// RequireRole resolves the caller identity and rejects the call unless the
// caller holds the given role.
func RequireRole(ctx contractapi.TransactionContextInterface, ac AccessControl, role string) (string, error) {
	signer, err := GetUserID(ctx)
	if err != nil {
		return "", ValidationError("failed to get client id", err)
	}

	ok, err := ac.HasRole(ctx, role, signer)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", AuthorizationError(fmt.Sprintf("account %s is missing role %s", signer, role), ErrNotAuthorized)
	}

	return signer, nil
}

// BootstrapAccessControl grants the founding roles to the first initializer.
// Subsequent calls are no-ops so a later contract Initialize cannot reseed
// the admin set.
func BootstrapAccessControl(ctx contractapi.TransactionContextInterface, ac AccessControl) error {
	done, err := ctx.GetStub().GetState(roleBootstrapKey)
	if err != nil {
		return NewCustomError(CodeIntegrity, "failed to read access control bootstrap flag", err)
	}
	if done != nil {
		return nil
	}

	signer, err := GetUserID(ctx)
	if err != nil {
		return ValidationError("failed to get client id", err)
	}

	for _, role := range []string{RoleAdmin, RoleEmergency, RoleRegistrar, RoleVestingManager} {
		if err := ac.GrantRole(ctx, role, signer); err != nil {
			return err
		}
	}

	err = ctx.GetStub().PutState(roleBootstrapKey, []byte("1"))
	if err != nil {
		return NewCustomError(CodeIntegrity, "failed to set access control bootstrap flag", err)
	}

	return nil
}
