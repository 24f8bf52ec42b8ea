package tiers

import (
	"encoding/base64"
	"fmt"
	"math/big"
	"testing"

	"github.com/golang/protobuf/ptypes/timestamp"
	"github.com/stretchr/testify/require"

	"github.com/buckhoff/token-presale-contract/common"
	"github.com/buckhoff/token-presale-contract/mocks"
)

const (
	adminUser     = "0b87970433b22494faff1cc7a819e71bddc7880c"
	crowdsaleUser = "52091d1a4f247dc47a5dcf7b993459e2a6b73b09"
	plainUser     = "9f2c4e8ab13d5f6a7890c1d2e3f4a5b6c7d8e9f0"

	baseTime = uint64(1700000000)
	oneDay   = uint64(86400)

	allocation25k = "25000000000000000000000"
	allocation50k = "50000000000000000000000"
)

func testContext(worldState map[string][]byte, user string, now uint64) *mocks.TransactionContext {
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
		return &timestamp.Timestamp{Seconds: int64(now)}, nil
	}

	clientID := &mocks.ClientIdentity{}
	clientID.GetIDReturns(base64.StdEncoding.EncodeToString(
		[]byte(fmt.Sprintf("x509::CN=%s,O=kalp::CN=ca.kalp.io", user))), nil)

	ctx := &mocks.TransactionContext{}
	ctx.GetStubReturns(stub)
	ctx.GetClientIdentityReturns(clientID)
	return ctx
}

func tierInput(allocation string) *TierInput {
	return &TierInput{
		Price:                  "40000",
		Allocation:             allocation,
		MinPurchase:            "10000000",
		MaxPurchase:            "100000000000",
		BonusBps:               2000,
		VestingTGEPercent:      20,
		VestingCliffSeconds:    0,
		VestingDurationSeconds: 31536000,
		Deadline:               baseTime + oneDay,
	}
}

func tierManagerWithAdmin(t *testing.T) (*SmartContract, map[string][]byte) {
	t.Helper()

	manager := NewSmartContract()
	worldState := map[string][]byte{}
	ctx := testContext(worldState, adminUser, baseTime)
	require.NoError(t, manager.AC.GrantRole(ctx, common.RoleAdmin, adminUser))
	return manager, worldState
}

// crowdsaleContext impersonates the registered crowdsale, wired through the
// consumer's fallback table so no live registry is needed.
func crowdsaleContext(t *testing.T, manager *SmartContract, worldState map[string][]byte) *mocks.TransactionContext {
	t.Helper()

	adminCtx := testContext(worldState, adminUser, baseTime)
	require.NoError(t, manager.SetFallbackAddress(adminCtx, common.ServiceCrowdsale, crowdsaleUser))
	return testContext(worldState, crowdsaleUser, baseTime)
}

func TestAddTier(t *testing.T) {
	t.Parallel()

	manager, worldState := tierManagerWithAdmin(t)
	ctx := testContext(worldState, adminUser, baseTime)

	id, err := manager.AddTier(ctx, tierInput(allocation25k))
	require.NoError(t, err)
	require.EqualValues(t, 0, id)

	// The first tier added is live immediately.
	active, err := manager.GetActiveTier(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 0, active.ID)
	require.True(t, active.Active)
	require.Equal(t, "0", active.Sold)

	id, err = manager.AddTier(ctx, tierInput(allocation50k))
	require.NoError(t, err)
	require.EqualValues(t, 1, id)

	active, err = manager.GetActiveTier(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 0, active.ID)
}

func TestAddTierValidation(t *testing.T) {
	t.Parallel()

	manager, worldState := tierManagerWithAdmin(t)
	ctx := testContext(worldState, adminUser, baseTime)

	input := tierInput(allocation25k)
	input.Price = "0"
	_, err := manager.AddTier(ctx, input)
	require.ErrorIs(t, err, common.ErrCannotBeZero)

	input = tierInput(allocation25k)
	input.MinPurchase = "200000000000"
	_, err = manager.AddTier(ctx, input)
	require.ErrorIs(t, err, ErrInvalidTierTerms)

	input = tierInput(allocation25k)
	input.VestingTGEPercent = 150
	_, err = manager.AddTier(ctx, input)
	require.ErrorIs(t, err, ErrInvalidTierTerms)

	input = tierInput(allocation25k)
	input.VestingCliffSeconds = input.VestingDurationSeconds + 1
	_, err = manager.AddTier(ctx, input)
	require.ErrorIs(t, err, ErrInvalidTierTerms)

	input = tierInput(allocation25k)
	input.Deadline = baseTime - 1
	_, err = manager.AddTier(ctx, input)
	require.ErrorIs(t, err, ErrDeadlineInPast)

	_, err = manager.AddTier(testContext(worldState, plainUser, baseTime), tierInput(allocation25k))
	require.ErrorIs(t, err, common.ErrNotAuthorized)
}

func TestUpdateTierKeepsSoldWithinAllocation(t *testing.T) {
	t.Parallel()

	manager, worldState := tierManagerWithAdmin(t)
	ctx := testContext(worldState, adminUser, baseTime)

	_, err := manager.AddTier(ctx, tierInput(allocation50k))
	require.NoError(t, err)

	sold, _ := new(big.Int).SetString(allocation25k, 10)
	_, err = ApplySale(ctx, 0, sold)
	require.NoError(t, err)

	// Shrinking below sold volume is rejected.
	input := tierInput("1000000000000000000")
	err = manager.UpdateTier(ctx, 0, input)
	require.ErrorIs(t, err, ErrInvalidTierTerms)

	require.NoError(t, manager.UpdateTier(ctx, 0, tierInput(allocation50k)))

	tier, err := manager.GetTier(ctx, 0)
	require.NoError(t, err)
	require.Equal(t, allocation25k, tier.Sold)
}

func TestApplySale(t *testing.T) {
	t.Parallel()

	manager, worldState := tierManagerWithAdmin(t)
	ctx := testContext(worldState, adminUser, baseTime)

	_, err := manager.AddTier(ctx, tierInput(allocation50k))
	require.NoError(t, err)

	amount, _ := new(big.Int).SetString(allocation25k, 10)
	fills, err := ApplySale(ctx, 0, amount)
	require.NoError(t, err)
	require.Len(t, fills, 1)
	require.EqualValues(t, 0, fills[0].TierID)
	require.Equal(t, allocation25k, fills[0].Amount)

	remaining, err := manager.GetRemainingAllocation(ctx, 0)
	require.NoError(t, err)
	require.Equal(t, allocation25k, remaining)
}

func TestApplySaleRejectsOverAllocation(t *testing.T) {
	t.Parallel()

	manager, worldState := tierManagerWithAdmin(t)
	ctx := testContext(worldState, adminUser, baseTime)

	_, err := manager.AddTier(ctx, tierInput(allocation25k))
	require.NoError(t, err)

	amount, _ := new(big.Int).SetString(allocation50k, 10)
	_, err = ApplySale(ctx, 0, amount)
	require.ErrorIs(t, err, ErrExceedsTierAllocation)
}

func TestApplySaleRejectsExpiredTier(t *testing.T) {
	t.Parallel()

	manager, worldState := tierManagerWithAdmin(t)
	ctx := testContext(worldState, adminUser, baseTime)

	_, err := manager.AddTier(ctx, tierInput(allocation25k))
	require.NoError(t, err)

	lateCtx := testContext(worldState, adminUser, baseTime+2*oneDay)
	_, err = ApplySale(lateCtx, 0, big.NewInt(1))
	require.ErrorIs(t, err, ErrTierDeadlinePassed)
}

func TestApplySaleExhaustionAdvancesTier(t *testing.T) {
	t.Parallel()

	manager, worldState := tierManagerWithAdmin(t)
	ctx := testContext(worldState, adminUser, baseTime)

	_, err := manager.AddTier(ctx, tierInput(allocation25k))
	require.NoError(t, err)
	_, err = manager.AddTier(ctx, tierInput(allocation50k))
	require.NoError(t, err)
	require.NoError(t, manager.SetTierProgression(ctx, 0, 1))

	amount, _ := new(big.Int).SetString(allocation25k, 10)
	fills, err := ApplySale(ctx, 0, amount)
	require.NoError(t, err)
	require.Len(t, fills, 1)

	exhausted, err := manager.GetTier(ctx, 0)
	require.NoError(t, err)
	require.False(t, exhausted.Active)

	active, err := manager.GetActiveTier(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 1, active.ID)
}

func TestApplySaleBridgesOverflow(t *testing.T) {
	t.Parallel()

	manager, worldState := tierManagerWithAdmin(t)
	ctx := testContext(worldState, adminUser, baseTime)

	_, err := manager.AddTier(ctx, tierInput(allocation25k))
	require.NoError(t, err)
	_, err = manager.AddTier(ctx, tierInput(allocation50k))
	require.NoError(t, err)
	require.NoError(t, manager.SetTierStatus(ctx, 1, true))
	require.NoError(t, manager.SetTierBridge(ctx, 0, 1, true))

	// 30000 tokens against a 25000 tier: 25000 fill the tier, 5000 bridge.
	amount, _ := new(big.Int).SetString("30000000000000000000000", 10)
	fills, err := ApplySale(ctx, 0, amount)
	require.NoError(t, err)
	require.Len(t, fills, 2)
	require.EqualValues(t, 0, fills[0].TierID)
	require.Equal(t, allocation25k, fills[0].Amount)
	require.EqualValues(t, 1, fills[1].TierID)
	require.Equal(t, "5000000000000000000000", fills[1].Amount)

	target, err := manager.GetTier(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, "5000000000000000000000", target.Sold)
}

func TestApplySaleBridgeDisabled(t *testing.T) {
	t.Parallel()

	manager, worldState := tierManagerWithAdmin(t)
	ctx := testContext(worldState, adminUser, baseTime)

	_, err := manager.AddTier(ctx, tierInput(allocation25k))
	require.NoError(t, err)
	_, err = manager.AddTier(ctx, tierInput(allocation50k))
	require.NoError(t, err)
	require.NoError(t, manager.SetTierBridge(ctx, 0, 1, false))

	amount, _ := new(big.Int).SetString("30000000000000000000000", 10)
	_, err = ApplySale(ctx, 0, amount)
	require.ErrorIs(t, err, ErrExceedsTierAllocation)
}

func TestSetTierProgressionRejectsCycles(t *testing.T) {
	t.Parallel()

	manager, worldState := tierManagerWithAdmin(t)
	ctx := testContext(worldState, adminUser, baseTime)

	for i := 0; i < 3; i++ {
		_, err := manager.AddTier(ctx, tierInput(allocation25k))
		require.NoError(t, err)
	}

	err := manager.SetTierProgression(ctx, 0, 0)
	require.ErrorIs(t, err, ErrCircularProgression)

	require.NoError(t, manager.SetTierProgression(ctx, 0, 1))
	require.NoError(t, manager.SetTierProgression(ctx, 1, 2))

	err = manager.SetTierProgression(ctx, 2, 0)
	require.ErrorIs(t, err, ErrCircularProgression)
}

func TestSetActiveTierRestrictedToCrowdsale(t *testing.T) {
	t.Parallel()

	manager, worldState := tierManagerWithAdmin(t)
	adminCtx := testContext(worldState, adminUser, baseTime)

	_, err := manager.AddTier(adminCtx, tierInput(allocation25k))
	require.NoError(t, err)
	_, err = manager.AddTier(adminCtx, tierInput(allocation50k))
	require.NoError(t, err)

	crowdsaleCtx := crowdsaleContext(t, manager, worldState)

	err = manager.SetActiveTier(testContext(worldState, plainUser, baseTime), 1)
	require.ErrorIs(t, err, ErrNotCrowdsaleCaller)

	require.NoError(t, manager.SetActiveTier(crowdsaleCtx, 1))

	active, err := manager.GetActiveTier(adminCtx)
	require.NoError(t, err)
	require.EqualValues(t, 1, active.ID)
}

func TestRecordPurchaseRestrictedToCrowdsale(t *testing.T) {
	t.Parallel()

	manager, worldState := tierManagerWithAdmin(t)
	adminCtx := testContext(worldState, adminUser, baseTime)

	_, err := manager.AddTier(adminCtx, tierInput(allocation25k))
	require.NoError(t, err)

	_, err = manager.RecordPurchase(testContext(worldState, plainUser, baseTime), 0, "1000")
	require.ErrorIs(t, err, ErrNotCrowdsaleCaller)

	crowdsaleCtx := crowdsaleContext(t, manager, worldState)
	fills, err := manager.RecordPurchase(crowdsaleCtx, 0, "1000000000000000000")
	require.NoError(t, err)
	require.Len(t, fills, 1)
}

func TestCheckAndAdvanceTier(t *testing.T) {
	t.Parallel()

	manager, worldState := tierManagerWithAdmin(t)
	ctx := testContext(worldState, adminUser, baseTime)

	_, err := manager.AddTier(ctx, tierInput(allocation25k))
	require.NoError(t, err)
	_, err = manager.AddTier(ctx, tierInput(allocation50k))
	require.NoError(t, err)
	require.NoError(t, manager.SetTierProgression(ctx, 0, 1))

	// Before the deadline nothing changes.
	require.NoError(t, manager.CheckAndAdvanceTier(ctx))
	active, err := manager.GetActiveTier(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 0, active.ID)

	lateCtx := testContext(worldState, adminUser, baseTime+2*oneDay)
	require.NoError(t, manager.CheckAndAdvanceTier(lateCtx))

	active, err = manager.GetActiveTier(lateCtx)
	require.NoError(t, err)
	require.EqualValues(t, 1, active.ID)
}

func TestAdvanceWithoutProgressionClearsActiveTier(t *testing.T) {
	t.Parallel()

	manager, worldState := tierManagerWithAdmin(t)
	ctx := testContext(worldState, adminUser, baseTime)

	_, err := manager.AddTier(ctx, tierInput(allocation25k))
	require.NoError(t, err)

	require.NoError(t, AdvanceActive(ctx))

	_, err = manager.GetActiveTier(ctx)
	require.ErrorIs(t, err, ErrNoActiveTier)
}

func TestCurrentPriceDynamic(t *testing.T) {
	t.Parallel()

	tier := &Tier{
		ID:             0,
		Price:          "40000",
		Allocation:     allocation50k,
		Sold:           allocation25k,
		DynamicPricing: true,
		MaxIncreaseBps: 5000,
	}

	// Half sold with a 50% max increase prices at 125% of base.
	price, err := CurrentPrice(tier)
	require.NoError(t, err)
	require.EqualValues(t, 50000, price.Int64())

	tier.DynamicPricing = false
	price, err = CurrentPrice(tier)
	require.NoError(t, err)
	require.EqualValues(t, 40000, price.Int64())
}

func TestExtendTier(t *testing.T) {
	t.Parallel()

	manager, worldState := tierManagerWithAdmin(t)
	ctx := testContext(worldState, adminUser, baseTime)

	_, err := manager.AddTier(ctx, tierInput(allocation25k))
	require.NoError(t, err)

	require.NoError(t, manager.ExtendTier(ctx, 0, oneDay))

	tier, err := manager.GetTier(ctx, 0)
	require.NoError(t, err)
	require.Equal(t, baseTime+2*oneDay, tier.Deadline)

	err = manager.ExtendTier(ctx, 0, 0)
	require.ErrorIs(t, err, common.ErrCannotBeZero)
}

func TestOfflineModeRequiresRole(t *testing.T) {
	t.Parallel()

	manager, worldState := tierManagerWithAdmin(t)

	plainCtx := testContext(worldState, plainUser, baseTime)
	require.ErrorIs(t, manager.EnableOfflineMode(plainCtx), common.ErrNotAuthorized)
	require.ErrorIs(t, manager.DisableOfflineMode(plainCtx), common.ErrNotAuthorized)

	adminCtx := testContext(worldState, adminUser, baseTime)
	require.NoError(t, manager.EnableOfflineMode(adminCtx))

	offline, err := manager.IsOfflineMode(adminCtx)
	require.NoError(t, err)
	require.True(t, offline)
}
