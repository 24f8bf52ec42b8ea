package common

import (
	"encoding/base64"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/buckhoff/token-presale-contract/mocks"
)

func worldStateContext(worldState map[string][]byte, user string) *mocks.TransactionContext {
	stub := &mocks.ChaincodeStub{}
	stub.GetStateStub = func(key string) ([]byte, error) {
		return worldState[key], nil
	}
	stub.PutStateStub = func(key string, value []byte) error {
		worldState[key] = value
		return nil
	}
	stub.DelStateStub = func(key string) error {
		delete(worldState, key)
		return nil
	}

	clientID := &mocks.ClientIdentity{}
	clientID.GetIDReturns(base64.StdEncoding.EncodeToString(
		[]byte(fmt.Sprintf("x509::CN=%s,O=kalp::CN=ca.kalp.io", user))), nil)

	ctx := &mocks.TransactionContext{}
	ctx.GetStubReturns(stub)
	ctx.GetClientIdentityReturns(clientID)
	return ctx
}

func TestLedgerAccessControl(t *testing.T) {
	t.Parallel()

	worldState := map[string][]byte{}
	ctx := worldStateContext(worldState, adminAddress)
	ac := NewLedgerAccessControl()

	ok, err := ac.HasRole(ctx, RoleAdmin, adminAddress)
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, ac.GrantRole(ctx, RoleAdmin, adminAddress))

	ok, err = ac.HasRole(ctx, RoleAdmin, adminAddress)
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, ac.RevokeRole(ctx, RoleAdmin, adminAddress))

	ok, err = ac.HasRole(ctx, RoleAdmin, adminAddress)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestGrantRoleRejectsEmptyAccount(t *testing.T) {
	t.Parallel()

	ctx := worldStateContext(map[string][]byte{}, adminAddress)

	err := NewLedgerAccessControl().GrantRole(ctx, RoleAdmin, "")
	require.ErrorIs(t, err, ErrZeroAddress)
}

func TestRequireRole(t *testing.T) {
	t.Parallel()

	worldState := map[string][]byte{}
	ac := NewLedgerAccessControl()

	adminCtx := worldStateContext(worldState, adminAddress)
	require.NoError(t, ac.GrantRole(adminCtx, RoleAdmin, adminAddress))

	signer, err := RequireRole(adminCtx, ac, RoleAdmin)
	require.NoError(t, err)
	require.Equal(t, adminAddress, signer)

	buyerCtx := worldStateContext(worldState, buyerAddress)
	_, err = RequireRole(buyerCtx, ac, RoleAdmin)
	require.ErrorIs(t, err, ErrNotAuthorized)
}

func TestBootstrapAccessControlIsOneShot(t *testing.T) {
	t.Parallel()

	worldState := map[string][]byte{}
	ac := NewLedgerAccessControl()

	adminCtx := worldStateContext(worldState, adminAddress)
	require.NoError(t, BootstrapAccessControl(adminCtx, ac))

	for _, role := range []string{RoleAdmin, RoleEmergency, RoleRegistrar, RoleVestingManager} {
		ok, err := ac.HasRole(adminCtx, role, adminAddress)
		require.NoError(t, err)
		require.True(t, ok)
	}

	// A later caller cannot reseed the admin set.
	buyerCtx := worldStateContext(worldState, buyerAddress)
	require.NoError(t, BootstrapAccessControl(buyerCtx, ac))

	ok, err := ac.HasRole(buyerCtx, RoleAdmin, buyerAddress)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestContractID(t *testing.T) {
	t.Parallel()

	id, err := ContractID("ContractRegistry")
	require.NoError(t, err)
	require.Len(t, id, 64)

	other, err := ContractID("Crowdsale")
	require.NoError(t, err)
	require.NotEqual(t, id, other)

	again, err := ContractID("ContractRegistry")
	require.NoError(t, err)
	require.Equal(t, id, again)

	_, err = ContractID("")
	require.Error(t, err)

	_, err = ContractID("this name is far too long to be a service identifier")
	require.Error(t, err)
}
