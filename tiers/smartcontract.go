package tiers

import (
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/hyperledger/fabric-contract-api-go/contractapi"

	"github.com/buckhoff/token-presale-contract/common"
	"github.com/buckhoff/token-presale-contract/registry"
)

// SmartContract owns the ordered set of pricing tiers and the sold-per-tier
// accounting. Which tier is live is single-sourced here; only the registered
// Crowdsale contract may move it.
type SmartContract struct {
	contractapi.Contract
	registry.Aware
	AC common.AccessControl
}

func NewSmartContract() *SmartContract {
	sc := &SmartContract{AC: common.NewLedgerAccessControl()}
	sc.Name = common.ServiceTierManager
	sc.ConsumerName = common.ServiceTierManager
	return sc
}

func (s *SmartContract) accessControl() common.AccessControl {
	if s.AC == nil {
		s.AC = common.NewLedgerAccessControl()
	}
	return s.AC
}

func validateTierTerms(input *TierInput) error {
	if _, err := common.ParsePositiveAmount("tier price", input.Price); err != nil {
		return err
	}
	if _, err := common.ParsePositiveAmount("tier allocation", input.Allocation); err != nil {
		return err
	}

	minPurchase, err := common.ParseAmount("tier min purchase", input.MinPurchase)
	if err != nil {
		return err
	}
	maxPurchase, err := common.ParseAmount("tier max purchase", input.MaxPurchase)
	if err != nil {
		return err
	}
	if minPurchase.Cmp(maxPurchase) > 0 {
		return common.ValidationError("min purchase exceeds max purchase", ErrInvalidTierTerms)
	}

	if input.VestingTGEPercent > 100 {
		return common.ValidationError(fmt.Sprintf("tge percent %d exceeds 100", input.VestingTGEPercent), ErrInvalidTierTerms)
	}
	if input.VestingDurationSeconds == 0 {
		return common.ValidationError("vesting duration cannot be zero", ErrInvalidTierTerms)
	}
	if input.VestingCliffSeconds > input.VestingDurationSeconds {
		return common.ValidationError("vesting cliff exceeds duration", ErrInvalidTierTerms)
	}

	return nil
}

// AddTier appends a tier with the given terms. The first tier added becomes
// the active tier.
func (s *SmartContract) AddTier(ctx contractapi.TransactionContextInterface, input *TierInput) (uint64, error) {
	_, err := common.RequireRole(ctx, s.accessControl(), common.RoleAdmin)
	if err != nil {
		return 0, err
	}

	err = validateTierTerms(input)
	if err != nil {
		return 0, err
	}

	now, err := common.TxTimestamp(ctx)
	if err != nil {
		return 0, err
	}
	if input.Deadline <= now {
		return 0, common.ValidationError(fmt.Sprintf("tier deadline %d is not in the future", input.Deadline), ErrDeadlineInPast)
	}

	count, err := GetTierCount(ctx)
	if err != nil {
		return 0, err
	}

	tier := &Tier{
		ID:                     count,
		Price:                  input.Price,
		Allocation:             input.Allocation,
		Sold:                   "0",
		MinPurchase:            input.MinPurchase,
		MaxPurchase:            input.MaxPurchase,
		BonusBps:               input.BonusBps,
		VestingTGEPercent:      input.VestingTGEPercent,
		VestingCliffSeconds:    input.VestingCliffSeconds,
		VestingDurationSeconds: input.VestingDurationSeconds,
		Deadline:               input.Deadline,
		Active:                 true,
		DynamicPricing:         input.DynamicPricing,
		MaxIncreaseBps:         input.MaxIncreaseBps,
	}

	err = SetTier(ctx, tier)
	if err != nil {
		return 0, err
	}

	err = setTierCount(ctx, count+1)
	if err != nil {
		return 0, err
	}

	if count == 0 {
		err = setActiveTierID(ctx, 0)
		if err != nil {
			return 0, err
		}
	}

	return tier.ID, EmitTierAdded(ctx, tier)
}

// UpdateTier replaces a tier's terms. Sold volume is preserved and must stay
// within the new allocation.
func (s *SmartContract) UpdateTier(ctx contractapi.TransactionContextInterface, id uint64, input *TierInput) error {
	_, err := common.RequireRole(ctx, s.accessControl(), common.RoleAdmin)
	if err != nil {
		return err
	}

	err = validateTierTerms(input)
	if err != nil {
		return err
	}

	tier, err := GetTier(ctx, id)
	if err != nil {
		return err
	}

	sold, err := common.ParseAmount("tier sold", tier.Sold)
	if err != nil {
		return err
	}
	allocation, err := common.ParseAmount("tier allocation", input.Allocation)
	if err != nil {
		return err
	}
	if sold.Cmp(allocation) > 0 {
		return common.ValidationError(
			fmt.Sprintf("new allocation %s below sold volume %s", input.Allocation, tier.Sold), ErrInvalidTierTerms)
	}

	tier.Price = input.Price
	tier.Allocation = input.Allocation
	tier.MinPurchase = input.MinPurchase
	tier.MaxPurchase = input.MaxPurchase
	tier.BonusBps = input.BonusBps
	tier.VestingTGEPercent = input.VestingTGEPercent
	tier.VestingCliffSeconds = input.VestingCliffSeconds
	tier.VestingDurationSeconds = input.VestingDurationSeconds
	tier.Deadline = input.Deadline
	tier.DynamicPricing = input.DynamicPricing
	tier.MaxIncreaseBps = input.MaxIncreaseBps

	err = SetTier(ctx, tier)
	if err != nil {
		return err
	}

	return EmitTierUpdated(ctx, id)
}

// requireCrowdsaleCaller enforces that the signer is the Crowdsale service
// registered in the registry (or configured as fallback).
func (s *SmartContract) requireCrowdsaleCaller(ctx contractapi.TransactionContextInterface) error {
	signer, err := common.GetUserID(ctx)
	if err != nil {
		return common.ValidationError("failed to get client id", err)
	}

	crowdsaleAddress, err := s.Resolve(ctx, common.ServiceCrowdsale)
	if err != nil {
		return err
	}
	if signer != crowdsaleAddress {
		return common.AuthorizationError(
			fmt.Sprintf("caller %s is not the registered crowdsale %s", signer, crowdsaleAddress), ErrNotCrowdsaleCaller)
	}

	return nil
}

// SetActiveTier moves the live tier. Restricted to the registered Crowdsale
// caller so there is a single source of truth for tier progression.
func (s *SmartContract) SetActiveTier(ctx contractapi.TransactionContextInterface, id uint64) error {
	err := s.requireCrowdsaleCaller(ctx)
	if err != nil {
		return err
	}

	tier, err := GetTier(ctx, id)
	if err != nil {
		return err
	}

	if !tier.Active {
		tier.Active = true
		err = SetTier(ctx, tier)
		if err != nil {
			return err
		}
	}

	err = setActiveTierID(ctx, id)
	if err != nil {
		return err
	}

	return EmitTierActivated(ctx, id)
}

// SetTierProgression adds an explicit progression edge. Edges that would
// close a cycle are rejected at write time.
func (s *SmartContract) SetTierProgression(ctx contractapi.TransactionContextInterface, from, to uint64) error {
	_, err := common.RequireRole(ctx, s.accessControl(), common.RoleAdmin)
	if err != nil {
		return err
	}

	if from == to {
		return common.ValidationError("tier cannot progress to itself", ErrCircularProgression)
	}

	if _, err := GetTier(ctx, from); err != nil {
		return err
	}
	if _, err := GetTier(ctx, to); err != nil {
		return err
	}

	progressions, err := GetProgressions(ctx)
	if err != nil {
		return err
	}

	// Walk forward from the proposed target; reaching the source again
	// means the new edge would close a cycle.
	seen := map[uint64]bool{}
	cursor := to
	for {
		if cursor == from {
			return common.IntegrityError(
				fmt.Sprintf("progression %d -> %d would create a cycle", from, to), ErrCircularProgression)
		}
		if seen[cursor] {
			break
		}
		seen[cursor] = true

		next, ok := progressions[cursor]
		if !ok {
			break
		}
		cursor = next
	}

	progressions[from] = to
	err = setProgressions(ctx, progressions)
	if err != nil {
		return err
	}

	return EmitTierProgressionSet(ctx, from, to)
}

// SetTierBridge enables or disables overflow bridging from one tier into an
// explicit target tier.
func (s *SmartContract) SetTierBridge(ctx contractapi.TransactionContextInterface, from, to uint64, enabled bool) error {
	_, err := common.RequireRole(ctx, s.accessControl(), common.RoleAdmin)
	if err != nil {
		return err
	}

	if from == to {
		return common.ValidationError("tier cannot bridge to itself", ErrInvalidTierTerms)
	}
	if _, err := GetTier(ctx, from); err != nil {
		return err
	}
	if _, err := GetTier(ctx, to); err != nil {
		return err
	}

	bridges, err := GetBridges(ctx)
	if err != nil {
		return err
	}

	bridges[from] = BridgeConfig{Target: to, Enabled: enabled}
	err = setBridges(ctx, bridges)
	if err != nil {
		return err
	}

	return EmitTierBridgeSet(ctx, from, to, enabled)
}

func (s *SmartContract) SetTierStatus(ctx contractapi.TransactionContextInterface, id uint64, active bool) error {
	_, err := common.RequireRole(ctx, s.accessControl(), common.RoleAdmin)
	if err != nil {
		return err
	}

	tier, err := GetTier(ctx, id)
	if err != nil {
		return err
	}

	tier.Active = active
	err = SetTier(ctx, tier)
	if err != nil {
		return err
	}

	return EmitTierStatusChanged(ctx, id, active)
}

func (s *SmartContract) SetTierDeadline(ctx contractapi.TransactionContextInterface, id, deadline uint64) error {
	_, err := common.RequireRole(ctx, s.accessControl(), common.RoleAdmin)
	if err != nil {
		return err
	}

	now, err := common.TxTimestamp(ctx)
	if err != nil {
		return err
	}
	if deadline <= now {
		return common.ValidationError(fmt.Sprintf("deadline %d is not in the future", deadline), ErrDeadlineInPast)
	}

	tier, err := GetTier(ctx, id)
	if err != nil {
		return err
	}

	tier.Deadline = deadline
	err = SetTier(ctx, tier)
	if err != nil {
		return err
	}

	return EmitTierUpdated(ctx, id)
}

func (s *SmartContract) ExtendTier(ctx contractapi.TransactionContextInterface, id, extraSeconds uint64) error {
	_, err := common.RequireRole(ctx, s.accessControl(), common.RoleAdmin)
	if err != nil {
		return err
	}

	if extraSeconds == 0 {
		return common.ValidationError("extension cannot be zero", common.ErrCannotBeZero)
	}

	tier, err := GetTier(ctx, id)
	if err != nil {
		return err
	}

	tier.Deadline += extraSeconds
	err = SetTier(ctx, tier)
	if err != nil {
		return err
	}

	return EmitTierUpdated(ctx, id)
}

// CheckAndAdvanceTier deactivates the active tier once its deadline has
// passed and follows the configured progression edge. Callable by anyone;
// it is a clock-driven housekeeping step.
func (s *SmartContract) CheckAndAdvanceTier(ctx contractapi.TransactionContextInterface) error {
	activeID, err := GetActiveTierID(ctx)
	if err != nil {
		return err
	}

	tier, err := GetTier(ctx, activeID)
	if err != nil {
		return err
	}

	now, err := common.TxTimestamp(ctx)
	if err != nil {
		return err
	}
	if tier.Deadline > now {
		return nil
	}

	tier.Active = false
	err = SetTier(ctx, tier)
	if err != nil {
		return err
	}

	return advanceFrom(ctx, activeID)
}

// AdvanceActive retires the active tier regardless of deadline and follows
// its progression edge. It backs the purchase engine's manual advance.
func AdvanceActive(ctx contractapi.TransactionContextInterface) error {
	activeID, err := GetActiveTierID(ctx)
	if err != nil {
		return err
	}

	tier, err := GetTier(ctx, activeID)
	if err != nil {
		return err
	}

	tier.Active = false
	err = SetTier(ctx, tier)
	if err != nil {
		return err
	}

	return advanceFrom(ctx, activeID)
}

func advanceFrom(ctx contractapi.TransactionContextInterface, fromID uint64) error {
	progressions, err := GetProgressions(ctx)
	if err != nil {
		return err
	}

	nextID, ok := progressions[fromID]
	if !ok {
		err = clearActiveTierID(ctx)
		if err != nil {
			return err
		}
		return EmitTierAdvanced(ctx, fromID, 0, false)
	}

	next, err := GetTier(ctx, nextID)
	if err != nil {
		return err
	}
	if !next.Active {
		next.Active = true
		err = SetTier(ctx, next)
		if err != nil {
			return err
		}
	}

	err = setActiveTierID(ctx, nextID)
	if err != nil {
		return err
	}

	return EmitTierAdvanced(ctx, fromID, nextID, true)
}

// RecordPurchase is the transaction form of ApplySale, restricted to the
// registered Crowdsale caller.
func (s *SmartContract) RecordPurchase(ctx contractapi.TransactionContextInterface, tierID uint64, tokenAmount string) ([]TierFill, error) {
	err := s.requireCrowdsaleCaller(ctx)
	if err != nil {
		return nil, err
	}

	amount, err := common.ParsePositiveAmount("token", tokenAmount)
	if err != nil {
		return nil, err
	}

	return ApplySale(ctx, tierID, amount)
}

// ApplySale records sold volume against a tier, re-validated against current
// state so no serialization of concurrent purchases can push sold past the
// allocation. On exact exhaustion the tier deactivates and auto-advances.
// When the amount overflows the tier's remaining allocation the sale splits
// into an enabled bridge target instead of failing.
func ApplySale(ctx contractapi.TransactionContextInterface, tierID uint64, amount *big.Int) ([]TierFill, error) {
	tier, err := GetTier(ctx, tierID)
	if err != nil {
		return nil, err
	}
	if !tier.Active {
		return nil, common.ConflictError(fmt.Sprintf("tier %d is not active", tierID), ErrTierNotActive)
	}

	now, err := common.TxTimestamp(ctx)
	if err != nil {
		return nil, err
	}
	if tier.Deadline <= now {
		return nil, common.ConflictError(fmt.Sprintf("tier %d deadline has passed", tierID), ErrTierDeadlinePassed)
	}

	sold, err := common.ParseAmount("tier sold", tier.Sold)
	if err != nil {
		return nil, err
	}
	allocation, err := common.ParseAmount("tier allocation", tier.Allocation)
	if err != nil {
		return nil, err
	}

	remaining := new(big.Int).Sub(allocation, sold)

	if amount.Cmp(remaining) <= 0 {
		fill, err := fillTier(ctx, tier, sold, allocation, amount)
		if err != nil {
			return nil, err
		}

		fills := []TierFill{fill}
		return fills, EmitSaleRecorded(ctx, fills)
	}

	bridges, err := GetBridges(ctx)
	if err != nil {
		return nil, err
	}
	bridge, ok := bridges[tierID]
	if !ok || !bridge.Enabled {
		return nil, common.ConflictError(
			fmt.Sprintf("tier %d allocation exceeded: remaining %s, requested %s", tierID, remaining, amount),
			ErrExceedsTierAllocation)
	}

	overflow := new(big.Int).Sub(amount, remaining)

	var fills []TierFill
	if remaining.Sign() > 0 {
		fill, err := fillTier(ctx, tier, sold, allocation, remaining)
		if err != nil {
			return nil, err
		}
		fills = append(fills, fill)
	}

	target, err := GetTier(ctx, bridge.Target)
	if err != nil {
		return nil, err
	}
	if !target.Active {
		return nil, common.ConflictError(fmt.Sprintf("bridge target tier %d is not active", bridge.Target), ErrTierNotActive)
	}

	targetSold, err := common.ParseAmount("tier sold", target.Sold)
	if err != nil {
		return nil, err
	}
	targetAllocation, err := common.ParseAmount("tier allocation", target.Allocation)
	if err != nil {
		return nil, err
	}
	targetRemaining := new(big.Int).Sub(targetAllocation, targetSold)
	if overflow.Cmp(targetRemaining) > 0 {
		return nil, common.ConflictError(
			fmt.Sprintf("bridge target tier %d allocation exceeded: remaining %s, requested %s",
				bridge.Target, targetRemaining, overflow),
			ErrExceedsTierAllocation)
	}

	fill, err := fillTier(ctx, target, targetSold, targetAllocation, overflow)
	if err != nil {
		return nil, err
	}
	fills = append(fills, fill)

	return fills, EmitSaleRecorded(ctx, fills)
}

func fillTier(ctx contractapi.TransactionContextInterface, tier *Tier, sold, allocation, amount *big.Int) (TierFill, error) {
	newSold := new(big.Int).Add(sold, amount)
	if newSold.Cmp(allocation) > 0 {
		return TierFill{}, common.IntegrityError(
			fmt.Sprintf("tier %d sold %s would exceed allocation %s", tier.ID, newSold, allocation), ErrExceedsTierAllocation)
	}

	tier.Sold = newSold.String()
	exhausted := newSold.Cmp(allocation) == 0
	if exhausted {
		tier.Active = false
	}

	err := SetTier(ctx, tier)
	if err != nil {
		return TierFill{}, err
	}

	if exhausted {
		err = EmitTierExhausted(ctx, tier.ID, tier.Sold)
		if err != nil {
			return TierFill{}, err
		}

		activeID, activeErr := GetActiveTierID(ctx)
		if activeErr == nil && activeID == tier.ID {
			err = advanceFrom(ctx, tier.ID)
			if err != nil {
				return TierFill{}, err
			}
		}
	}

	return TierFill{TierID: tier.ID, Amount: amount.String()}, nil
}

// CurrentPrice interpolates the live price of a tier between its base price
// and basePrice*(1+maxIncreaseBps) proportional to sold/allocation. Tiers
// without dynamic pricing return the base price.
func CurrentPrice(tier *Tier) (*big.Int, error) {
	price, err := common.ParseAmount("tier price", tier.Price)
	if err != nil {
		return nil, err
	}
	if !tier.DynamicPricing {
		return price, nil
	}

	sold, err := common.ParseAmount("tier sold", tier.Sold)
	if err != nil {
		return nil, err
	}
	allocation, err := common.ParseAmount("tier allocation", tier.Allocation)
	if err != nil {
		return nil, err
	}
	if allocation.Sign() == 0 {
		return price, nil
	}

	if sold.Cmp(allocation) > 0 {
		sold = allocation
	}

	// price + price * maxIncreaseBps/10000 * sold/allocation
	increase := new(big.Int).Mul(price, new(big.Int).SetUint64(tier.MaxIncreaseBps))
	increase.Mul(increase, sold)
	increase.Div(increase, big.NewInt(common.BpsDenominator))
	increase.Div(increase, allocation)

	return price.Add(price, increase), nil
}

// GetCurrentPrice exposes dynamic pricing to callers and indexers.
func (s *SmartContract) GetCurrentPrice(ctx contractapi.TransactionContextInterface, id uint64) (string, error) {
	tier, err := GetTier(ctx, id)
	if err != nil {
		return "", err
	}

	price, err := CurrentPrice(tier)
	if err != nil {
		return "", err
	}

	return price.String(), nil
}

func (s *SmartContract) GetTier(ctx contractapi.TransactionContextInterface, id uint64) (*Tier, error) {
	return GetTier(ctx, id)
}

func (s *SmartContract) GetActiveTier(ctx contractapi.TransactionContextInterface) (*Tier, error) {
	activeID, err := GetActiveTierID(ctx)
	if err != nil {
		return nil, err
	}

	return GetTier(ctx, activeID)
}

func (s *SmartContract) GetRemainingAllocation(ctx contractapi.TransactionContextInterface, id uint64) (string, error) {
	tier, err := GetTier(ctx, id)
	if err != nil {
		return "", err
	}

	sold, err := common.ParseAmount("tier sold", tier.Sold)
	if err != nil {
		return "", err
	}
	allocation, err := common.ParseAmount("tier allocation", tier.Allocation)
	if err != nil {
		return "", err
	}

	return new(big.Int).Sub(allocation, sold).String(), nil
}

// ExportTierConfiguration dumps every tier for migration tooling.
func (s *SmartContract) ExportTierConfiguration(ctx contractapi.TransactionContextInterface) (string, error) {
	count, err := GetTierCount(ctx)
	if err != nil {
		return "", err
	}

	tiersOut := make([]*Tier, 0, count)
	for id := uint64(0); id < count; id++ {
		tier, err := GetTier(ctx, id)
		if err != nil {
			return "", err
		}
		tiersOut = append(tiersOut, tier)
	}

	exported, err := json.Marshal(tiersOut)
	if err != nil {
		return "", common.IntegrityError("failed to marshal tier export", err)
	}

	return string(exported), nil
}

// Registry-aware admin surface.

func (s *SmartContract) SetRegistry(ctx contractapi.TransactionContextInterface, address string) error {
	_, err := common.RequireRole(ctx, s.accessControl(), common.RoleAdmin)
	if err != nil {
		return err
	}

	return s.Aware.SetRegistry(ctx, address)
}

// EnableOfflineMode shadows the embedded base's ungated form so the
// dispatcher only ever exposes the role-gated transaction.
func (s *SmartContract) EnableOfflineMode(ctx contractapi.TransactionContextInterface) error {
	_, err := common.RequireRole(ctx, s.accessControl(), common.RoleAdmin)
	if err != nil {
		return err
	}

	return s.Aware.EnableOfflineMode(ctx)
}

func (s *SmartContract) DisableOfflineMode(ctx contractapi.TransactionContextInterface) error {
	_, err := common.RequireRole(ctx, s.accessControl(), common.RoleAdmin)
	if err != nil {
		return err
	}

	return s.Aware.DisableOfflineMode(ctx)
}

func (s *SmartContract) SetFallbackAddress(ctx contractapi.TransactionContextInterface, service, address string) error {
	_, err := common.RequireRole(ctx, s.accessControl(), common.RoleAdmin)
	if err != nil {
		return err
	}

	return s.Aware.SetFallbackAddress(ctx, service, address)
}

func (s *SmartContract) UpdateContractReferences(ctx contractapi.TransactionContextInterface) ([]string, error) {
	_, err := common.RequireRole(ctx, s.accessControl(), common.RoleAdmin)
	if err != nil {
		return nil, err
	}

	return s.Aware.UpdateContractReferences(ctx, []string{common.ServiceCrowdsale})
}
