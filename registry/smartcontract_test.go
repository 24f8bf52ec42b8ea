package registry

import (
	"encoding/base64"
	"fmt"
	"testing"

	"github.com/golang/protobuf/ptypes/timestamp"
	"github.com/stretchr/testify/require"

	"github.com/buckhoff/token-presale-contract/common"
	"github.com/buckhoff/token-presale-contract/mocks"
)

const (
	adminUser  = "0b87970433b22494faff1cc7a819e71bddc7880c"
	secondUser = "52091d1a4f247dc47a5dcf7b993459e2a6b73b09"
	plainUser  = "9f2c4e8ab13d5f6a7890c1d2e3f4a5b6c7d8e9f0"

	crowdsaleAddress  = "klp-63726f776473616c65-cc"
	crowdsaleUpgraded = "klp-63726f776473616c6532-cc"
)

func testContext(worldState map[string][]byte, user string) *mocks.TransactionContext {
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
	stub.GetTxTimestampStub = func() (*timestamp.Timestamp, error) {
		return &timestamp.Timestamp{Seconds: 1700000000}, nil
	}

	clientID := &mocks.ClientIdentity{}
	clientID.GetIDReturns(base64.StdEncoding.EncodeToString(
		[]byte(fmt.Sprintf("x509::CN=%s,O=kalp::CN=ca.kalp.io", user))), nil)

	ctx := &mocks.TransactionContext{}
	ctx.GetStubReturns(stub)
	ctx.GetClientIdentityReturns(clientID)
	return ctx
}

func initializedRegistry(t *testing.T) (*SmartContract, map[string][]byte) {
	t.Helper()

	registry := NewSmartContract()
	worldState := map[string][]byte{}
	require.NoError(t, registry.Initialize(testContext(worldState, adminUser)))
	return registry, worldState
}

func TestInitializeGrantsFounderRoles(t *testing.T) {
	t.Parallel()

	registry, worldState := initializedRegistry(t)
	ctx := testContext(worldState, adminUser)

	for _, role := range []string{"ADMIN_ROLE", "EMERGENCY_ROLE", "REGISTRAR_ROLE"} {
		ok, err := registry.HasRole(ctx, role, adminUser)
		require.NoError(t, err)
		require.True(t, ok, role)
	}

	accessible, err := IsRegistryAccessible(ctx)
	require.NoError(t, err)
	require.True(t, accessible)
}

func TestRegisterContract(t *testing.T) {
	t.Parallel()

	registry, worldState := initializedRegistry(t)
	ctx := testContext(worldState, adminUser)

	require.NoError(t, registry.RegisterContract(ctx, common.ServiceCrowdsale, crowdsaleAddress, "ICrowdsale"))

	address, err := registry.GetContractAddress(ctx, common.ServiceCrowdsale)
	require.NoError(t, err)
	require.Equal(t, crowdsaleAddress, address)

	version, err := registry.GetContractVersion(ctx, common.ServiceCrowdsale)
	require.NoError(t, err)
	require.EqualValues(t, 1, version)

	active, err := registry.IsContractActive(ctx, common.ServiceCrowdsale)
	require.NoError(t, err)
	require.True(t, active)

	names, err := registry.GetAllContractNames(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{common.ServiceCrowdsale}, names)
}

func TestRegisterContractRejectsDuplicate(t *testing.T) {
	t.Parallel()

	registry, worldState := initializedRegistry(t)
	ctx := testContext(worldState, adminUser)

	require.NoError(t, registry.RegisterContract(ctx, common.ServiceCrowdsale, crowdsaleAddress, "ICrowdsale"))

	err := registry.RegisterContract(ctx, common.ServiceCrowdsale, crowdsaleUpgraded, "ICrowdsale")
	require.ErrorIs(t, err, ErrAlreadyRegistered)
}

func TestRegisterContractRequiresRegistrarRole(t *testing.T) {
	t.Parallel()

	registry, worldState := initializedRegistry(t)
	ctx := testContext(worldState, plainUser)

	err := registry.RegisterContract(ctx, common.ServiceCrowdsale, crowdsaleAddress, "ICrowdsale")
	require.ErrorIs(t, err, common.ErrNotAuthorized)
}

func TestRegisterContractRejectsInvalidAddress(t *testing.T) {
	t.Parallel()

	registry, worldState := initializedRegistry(t)
	ctx := testContext(worldState, adminUser)

	err := registry.RegisterContract(ctx, common.ServiceCrowdsale, "not-an-address", "ICrowdsale")
	require.Error(t, err)
}

func TestUpdateContract(t *testing.T) {
	t.Parallel()

	registry, worldState := initializedRegistry(t)
	ctx := testContext(worldState, adminUser)

	require.NoError(t, registry.RegisterContract(ctx, common.ServiceCrowdsale, crowdsaleAddress, "ICrowdsale"))
	require.NoError(t, registry.UpdateContract(ctx, common.ServiceCrowdsale, crowdsaleUpgraded, "ICrowdsale"))

	address, err := registry.GetContractAddress(ctx, common.ServiceCrowdsale)
	require.NoError(t, err)
	require.Equal(t, crowdsaleUpgraded, address)

	version, err := registry.GetContractVersion(ctx, common.ServiceCrowdsale)
	require.NoError(t, err)
	require.EqualValues(t, 2, version)

	history, err := registry.GetImplementationHistory(ctx, common.ServiceCrowdsale)
	require.NoError(t, err)
	require.Equal(t, []string{crowdsaleAddress, crowdsaleUpgraded}, history)
}

func TestUpdateContractRejectsSameAddress(t *testing.T) {
	t.Parallel()

	registry, worldState := initializedRegistry(t)
	ctx := testContext(worldState, adminUser)

	require.NoError(t, registry.RegisterContract(ctx, common.ServiceCrowdsale, crowdsaleAddress, "ICrowdsale"))

	err := registry.UpdateContract(ctx, common.ServiceCrowdsale, crowdsaleAddress, "ICrowdsale")
	require.ErrorIs(t, err, ErrSameAddress)
}

func TestIsContractActiveForUnknownName(t *testing.T) {
	t.Parallel()

	registry, worldState := initializedRegistry(t)

	// Unknown names report inactive rather than failing, so callers can
	// probe for optional services.
	active, err := registry.IsContractActive(testContext(worldState, adminUser), "NoSuchService")
	require.NoError(t, err)
	require.False(t, active)
}

func TestSetContractStatus(t *testing.T) {
	t.Parallel()

	registry, worldState := initializedRegistry(t)
	ctx := testContext(worldState, adminUser)

	require.NoError(t, registry.RegisterContract(ctx, common.ServiceCrowdsale, crowdsaleAddress, "ICrowdsale"))
	require.NoError(t, registry.SetContractStatus(ctx, common.ServiceCrowdsale, false))

	active, err := registry.IsContractActive(ctx, common.ServiceCrowdsale)
	require.NoError(t, err)
	require.False(t, active)
}

func TestPauseAndResumeSystem(t *testing.T) {
	t.Parallel()

	registry, worldState := initializedRegistry(t)
	ctx := testContext(worldState, adminUser)

	require.NoError(t, registry.PauseSystem(ctx))

	paused, err := registry.IsSystemPaused(ctx)
	require.NoError(t, err)
	require.True(t, paused)

	err = registry.PauseSystem(ctx)
	require.ErrorIs(t, err, ErrAlreadyPaused)

	require.NoError(t, registry.ResumeSystem(ctx))

	paused, err = registry.IsSystemPaused(ctx)
	require.NoError(t, err)
	require.False(t, paused)

	err = registry.ResumeSystem(ctx)
	require.ErrorIs(t, err, ErrNotPaused)
}

func TestPauseSystemRequiresEmergencyRole(t *testing.T) {
	t.Parallel()

	registry, worldState := initializedRegistry(t)

	err := registry.PauseSystem(testContext(worldState, plainUser))
	require.ErrorIs(t, err, common.ErrNotAuthorized)
}

func TestEmergencyRecoveryProtocol(t *testing.T) {
	t.Parallel()

	registry, worldState := initializedRegistry(t)
	adminCtx := testContext(worldState, adminUser)

	// A second approver is needed to reach the default quorum.
	require.NoError(t, registry.GrantRole(adminCtx, "ADMIN_ROLE", secondUser))

	err := registry.InitiateEmergencyRecovery(adminCtx)
	require.ErrorIs(t, err, ErrNotPaused)

	require.NoError(t, registry.PauseSystem(adminCtx))
	require.NoError(t, registry.InitiateEmergencyRecovery(adminCtx))

	err = registry.InitiateEmergencyRecovery(adminCtx)
	require.ErrorIs(t, err, ErrRecoveryInProgress)

	// Resume is blocked until the quorum approves.
	err = registry.ResumeSystem(adminCtx)
	require.ErrorIs(t, err, ErrRecoveryInProgress)

	require.NoError(t, registry.ApproveRecovery(adminCtx))

	err = registry.ApproveRecovery(adminCtx)
	require.ErrorIs(t, err, ErrAlreadyApproved)

	status, err := registry.GetRecoveryStatus(adminCtx)
	require.NoError(t, err)
	require.True(t, status.InRecovery)
	require.EqualValues(t, 1, status.ApprovalCount)

	// The quorum-completing approval closes the cycle and unpauses.
	require.NoError(t, registry.ApproveRecovery(testContext(worldState, secondUser)))

	status, err = registry.GetRecoveryStatus(adminCtx)
	require.NoError(t, err)
	require.False(t, status.InRecovery)

	paused, err := registry.IsSystemPaused(adminCtx)
	require.NoError(t, err)
	require.False(t, paused)
}

func TestApproveRecoveryWithoutCycle(t *testing.T) {
	t.Parallel()

	registry, worldState := initializedRegistry(t)

	err := registry.ApproveRecovery(testContext(worldState, adminUser))
	require.ErrorIs(t, err, ErrNotInRecovery)
}

func TestSetRequiredApprovals(t *testing.T) {
	t.Parallel()

	registry, worldState := initializedRegistry(t)
	ctx := testContext(worldState, adminUser)

	err := registry.SetRequiredApprovals(ctx, 0)
	require.ErrorIs(t, err, ErrInvalidApprovalQuorum)

	require.NoError(t, registry.SetRequiredApprovals(ctx, 1))

	require.NoError(t, registry.PauseSystem(ctx))
	require.NoError(t, registry.InitiateEmergencyRecovery(ctx))

	err = registry.SetRequiredApprovals(ctx, 3)
	require.ErrorIs(t, err, ErrRecoveryInProgress)

	// With a quorum of one the single approval completes recovery.
	require.NoError(t, registry.ApproveRecovery(ctx))

	paused, err := registry.IsSystemPaused(ctx)
	require.NoError(t, err)
	require.False(t, paused)
}

func TestGrantAndRevokeRole(t *testing.T) {
	t.Parallel()

	registry, worldState := initializedRegistry(t)
	adminCtx := testContext(worldState, adminUser)

	require.NoError(t, registry.GrantRole(adminCtx, "REGISTRAR_ROLE", secondUser))

	ok, err := registry.HasRole(adminCtx, "REGISTRAR_ROLE", secondUser)
	require.NoError(t, err)
	require.True(t, ok)

	secondCtx := testContext(worldState, secondUser)
	require.NoError(t, registry.RegisterContract(secondCtx, common.ServiceCrowdsale, crowdsaleAddress, "ICrowdsale"))

	require.NoError(t, registry.RevokeRole(adminCtx, "REGISTRAR_ROLE", secondUser))

	err = registry.RegisterContract(secondCtx, common.ServiceTierManager, crowdsaleUpgraded, "ITierManager")
	require.ErrorIs(t, err, common.ErrNotAuthorized)
}
