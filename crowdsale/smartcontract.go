package crowdsale

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/hyperledger/fabric-contract-api-go/contractapi"

	"github.com/buckhoff/token-presale-contract/common"
	"github.com/buckhoff/token-presale-contract/oracle"
	"github.com/buckhoff/token-presale-contract/registry"
	"github.com/buckhoff/token-presale-contract/tiers"
	"github.com/buckhoff/token-presale-contract/vesting"
)

// SmartContract is the purchase engine. It orchestrates a sale end to end:
// oracle conversion, tier allocation, payment collection into the treasury
// and vesting schedule creation for the buyer.
type SmartContract struct {
	contractapi.Contract
	registry.Aware
	AC common.AccessControl

	// SaleToken reaches the project token contract; PaymentClient builds a
	// client for an arbitrary payment token address. Both are injectable
	// for tests.
	SaleToken     common.TokenClient
	PaymentClient func(token string) common.TokenClient
}

func NewSmartContract() *SmartContract {
	sc := &SmartContract{AC: common.NewLedgerAccessControl()}
	sc.Name = common.ServiceCrowdsale
	sc.ConsumerName = common.ServiceCrowdsale
	return sc
}

func (s *SmartContract) accessControl() common.AccessControl {
	if s.AC == nil {
		s.AC = common.NewLedgerAccessControl()
	}
	return s.AC
}

func (s *SmartContract) saleToken() common.TokenClient {
	if s.SaleToken == nil {
		s.SaleToken = &common.InvokerTokenClient{Resolve: func(ctx contractapi.TransactionContextInterface) (string, error) {
			return s.Aware.Resolve(ctx, common.ServiceToken)
		}}
	}
	return s.SaleToken
}

func (s *SmartContract) paymentClient(token string) common.TokenClient {
	if s.PaymentClient != nil {
		return s.PaymentClient(token)
	}
	return &common.InvokerTokenClient{Resolve: func(contractapi.TransactionContextInterface) (string, error) {
		return token, nil
	}}
}

// ConfigurePresale installs the sale window, limits and treasury. Callable
// again before the sale starts to adjust terms.
func (s *SmartContract) ConfigurePresale(ctx contractapi.TransactionContextInterface, config *Config) error {
	_, err := common.RequireRole(ctx, s.accessControl(), common.RoleAdmin)
	if err != nil {
		return err
	}

	if config.PresaleStart == 0 || config.PresaleEnd <= config.PresaleStart {
		return common.ValidationError(
			fmt.Sprintf("presale window [%d, %d] is invalid", config.PresaleStart, config.PresaleEnd),
			ErrInvalidPresaleWindow)
	}
	if !common.IsUserAddressValid(config.Treasury) && !common.IsContractAddressValid(config.Treasury) {
		return common.ValidationError(fmt.Sprintf("invalid treasury address %q", config.Treasury), ErrTreasuryNotSet)
	}
	if _, err := common.ParsePositiveAmount("max purchase usd", config.MaxPurchaseUSD); err != nil {
		return err
	}
	if _, err := common.ParsePositiveAmount("max tokens per address", config.MaxTokensPerAddress); err != nil {
		return err
	}

	err = SetConfig(ctx, config)
	if err != nil {
		return err
	}

	return EmitPresaleConfigured(ctx, config)
}

// GetSaleState derives the lifecycle state from the clock and the TGE flag.
func (s *SmartContract) GetSaleState(ctx contractapi.TransactionContextInterface) (string, error) {
	config, err := GetConfig(ctx)
	if err != nil {
		if errors.Is(err, ErrConfigNotSet) {
			return StateNotStarted, nil
		}
		return "", err
	}

	tgeCompleted, err := IsTGECompleted(ctx)
	if err != nil {
		return "", err
	}
	if tgeCompleted {
		return StateTGECompleted, nil
	}

	now, err := common.TxTimestamp(ctx)
	if err != nil {
		return "", err
	}

	switch {
	case now < config.PresaleStart:
		return StateNotStarted, nil
	case now > config.PresaleEnd:
		return StateEnded, nil
	default:
		return StateActive, nil
	}
}

// Purchase buys with the configured stablecoin, whose amount is taken as the
// canonical 6-decimal USD value directly.
func (s *SmartContract) Purchase(ctx contractapi.TransactionContextInterface, tierID uint64, usdAmount string) error {
	config, err := GetConfig(ctx)
	if err != nil {
		return err
	}
	if config.Stablecoin == "" {
		return common.ConflictError("no stablecoin configured for direct purchases", ErrStablecoinNotSet)
	}

	usd, err := common.ParsePositiveAmount("usd amount", usdAmount)
	if err != nil {
		return err
	}

	return s.purchase(ctx, config, tierID, config.Stablecoin, usd, usd)
}

// PurchaseWithToken buys with an arbitrary supported payment token, converted
// to USD through the price oracle.
func (s *SmartContract) PurchaseWithToken(ctx contractapi.TransactionContextInterface, tierID uint64, token, amount string) error {
	config, err := GetConfig(ctx)
	if err != nil {
		return err
	}

	payAmount, err := common.ParsePositiveAmount("payment amount", amount)
	if err != nil {
		return err
	}

	usd, err := oracle.Convert(ctx, token, amount)
	if err != nil {
		return err
	}
	if usd.Sign() == 0 {
		return common.ValidationError("payment converts to zero usd", common.ErrCannotBeZero)
	}

	return s.purchase(ctx, config, tierID, token, payAmount, usd)
}

func (s *SmartContract) purchase(ctx contractapi.TransactionContextInterface, config *Config, tierID uint64, payToken string, payAmount, usd *big.Int) error {
	buyer, err := common.GetUserID(ctx)
	if err != nil {
		return common.ValidationError("failed to get client id", err)
	}

	status, err := GetEmergencyStatus(ctx)
	if err != nil {
		return err
	}
	if status.State != EmergencyNormal {
		return common.SystemHaltError(
			fmt.Sprintf("presale is in %s state", status.State), common.ErrSystemPaused)
	}

	err = s.RequireSystemNotPaused(ctx)
	if err != nil {
		return err
	}

	now, err := common.TxTimestamp(ctx)
	if err != nil {
		return err
	}
	if now < config.PresaleStart || now > config.PresaleEnd {
		return common.ConflictError(
			fmt.Sprintf("presale window is [%d, %d], now is %d", config.PresaleStart, config.PresaleEnd, now),
			ErrPresaleNotActive)
	}

	tier, err := tiers.GetTier(ctx, tierID)
	if err != nil {
		return err
	}
	if !tier.Active {
		return common.ConflictError(fmt.Sprintf("tier %d is not active", tierID), tiers.ErrTierNotActive)
	}

	minPurchase, err := common.ParseAmount("tier min purchase", tier.MinPurchase)
	if err != nil {
		return err
	}
	maxPurchase, err := common.ParseAmount("tier max purchase", tier.MaxPurchase)
	if err != nil {
		return err
	}
	maxPurchaseUSD, err := common.ParseAmount("max purchase usd", config.MaxPurchaseUSD)
	if err != nil {
		return err
	}

	if usd.Cmp(minPurchase) < 0 {
		return common.ValidationError(
			fmt.Sprintf("usd amount %s below tier minimum %s", usd, minPurchase), ErrBelowMinPurchase)
	}
	if usd.Cmp(maxPurchase) > 0 {
		return common.ValidationError(
			fmt.Sprintf("usd amount %s above tier maximum %s", usd, maxPurchase), ErrAboveMaxPurchase)
	}
	if usd.Cmp(maxPurchaseUSD) > 0 {
		return common.ValidationError(
			fmt.Sprintf("usd amount %s above per-transaction cap %s", usd, maxPurchaseUSD), ErrAboveMaxPurchase)
	}

	record, err := GetPurchaseRecord(ctx, buyer)
	if err != nil {
		return err
	}
	if record.LastPurchaseAt > 0 && now-record.LastPurchaseAt < config.MinPurchaseInterval {
		return common.ConflictError(
			fmt.Sprintf("last purchase at %d, interval is %d seconds", record.LastPurchaseAt, config.MinPurchaseInterval),
			ErrPurchaseTooSoon)
	}

	price, err := tiers.CurrentPrice(tier)
	if err != nil {
		return err
	}
	baseTokens := common.UsdToTokens(usd, price)
	if baseTokens.Sign() == 0 {
		return common.ValidationError("usd amount too small for one token unit", common.ErrCannotBeZero)
	}
	bonusTokens := common.ApplyBps(baseTokens, tier.BonusBps)
	totalTokens := new(big.Int).Add(baseTokens, bonusTokens)

	held, err := common.ParseAmount("tokens purchased", record.TokensPurchased)
	if err != nil {
		return err
	}
	heldBonus, err := common.ParseAmount("bonus tokens", record.BonusTokens)
	if err != nil {
		return err
	}
	maxPerAddress, err := common.ParseAmount("max tokens per address", config.MaxTokensPerAddress)
	if err != nil {
		return err
	}

	projected := new(big.Int).Add(held, heldBonus)
	projected.Add(projected, totalTokens)
	if projected.Cmp(maxPerAddress) > 0 {
		return common.ConflictError(
			fmt.Sprintf("projected holdings %s exceed per-address cap %s", projected, maxPerAddress),
			ErrExceedsMaxTokensPerAddr)
	}

	// Allocation is re-validated against current sold amounts inside the
	// tier manager, so two concurrent purchases cannot oversell a tier.
	_, err = tiers.ApplySale(ctx, tierID, baseTokens)
	if err != nil {
		if errors.Is(err, tiers.ErrExceedsTierAllocation) {
			return common.ConflictError(
				fmt.Sprintf("purchase of %s tokens exceeds tier %d allocation", baseTokens, tierID),
				ErrExceedsMaxTierPurchase)
		}
		return err
	}

	err = s.recordPurchase(ctx, config, record, tierID, payToken, payAmount, usd, baseTokens, bonusTokens, now)
	if err != nil {
		return err
	}

	// Payment collection and vesting setup happen after all local
	// bookkeeping so a re-entrant token call observes consistent state.
	err = s.paymentClient(payToken).TransferFrom(ctx, buyer, config.Treasury, payAmount)
	if err != nil {
		return err
	}

	err = s.ensureVesting(ctx, config, record, tier, totalTokens)
	if err != nil {
		return err
	}

	return EmitTokensPurchased(ctx, &TokensPurchasedEvent{
		Buyer:         buyer,
		TierID:        tierID,
		PaymentToken:  payToken,
		PaymentAmount: payAmount.String(),
		TokenAmount:   baseTokens.String(),
		BonusAmount:   bonusTokens.String(),
		USDAmount:     usd.String(),
	})
}

func (s *SmartContract) recordPurchase(ctx contractapi.TransactionContextInterface, config *Config, record *PurchaseRecord, tierID uint64, payToken string, payAmount, usd, baseTokens, bonusTokens *big.Int, now uint64) error {
	held, _ := new(big.Int).SetString(record.TokensPurchased, 10)
	heldBonus, _ := new(big.Int).SetString(record.BonusTokens, 10)
	heldUSD, _ := new(big.Int).SetString(record.USDAmount, 10)
	if held == nil || heldBonus == nil || heldUSD == nil {
		return common.IntegrityError(fmt.Sprintf("purchase record for %s is corrupted", record.Buyer), nil)
	}

	firstPurchase := record.LastPurchaseAt == 0

	record.TokensPurchased = held.Add(held, baseTokens).String()
	record.BonusTokens = heldBonus.Add(heldBonus, bonusTokens).String()
	record.USDAmount = heldUSD.Add(heldUSD, usd).String()
	record.LastPurchaseAt = now

	paid := big.NewInt(0)
	if prev, ok := record.Payments[payToken]; ok {
		paid, ok = new(big.Int).SetString(prev, 10)
		if !ok {
			return common.IntegrityError(fmt.Sprintf("payment ledger for %s is corrupted", record.Buyer), nil)
		}
	}
	record.Payments[payToken] = paid.Add(paid, payAmount).String()

	err := SetPurchaseRecord(ctx, record)
	if err != nil {
		return err
	}

	if firstPurchase {
		buyers, err := GetBuyers(ctx)
		if err != nil {
			return err
		}
		err = setBuyers(ctx, append(buyers, record.Buyer))
		if err != nil {
			return err
		}
	}

	totalTokens, err := GetTotalTokensSold(ctx)
	if err != nil {
		return err
	}
	sold := new(big.Int).Add(baseTokens, bonusTokens)
	err = setBigState(ctx, totalTokensKey, totalTokens.Add(totalTokens, sold))
	if err != nil {
		return err
	}

	totalUSD, err := GetTotalUSDRaised(ctx)
	if err != nil {
		return err
	}
	return setBigState(ctx, totalUSDKey, totalUSD.Add(totalUSD, usd))
}

// ensureVesting creates the buyer's schedule on first purchase, using the
// tier's vesting terms anchored at presale end, and augments it afterwards.
func (s *SmartContract) ensureVesting(ctx contractapi.TransactionContextInterface, config *Config, record *PurchaseRecord, tier *tiers.Tier, totalTokens *big.Int) error {
	if record.ScheduleCreated {
		return vesting.Augment(ctx, s.saleToken(), record.VestingScheduleID, totalTokens)
	}

	id, err := vesting.Create(ctx, s.saleToken(), &vesting.CreateParams{
		Beneficiary:    record.Buyer,
		Amount:         totalTokens.String(),
		StartTimestamp: config.PresaleEnd,
		CliffDuration:  tier.VestingCliffSeconds,
		Duration:       tier.VestingDurationSeconds,
		TGEPercentage:  tier.VestingTGEPercent,
		Kind:           vesting.KindLinear,
	})
	if err != nil {
		return err
	}

	record.VestingScheduleID = id
	record.ScheduleCreated = true
	return SetPurchaseRecord(ctx, record)
}

// CompleteTGE marks the token generation event done once the sale window has
// closed. It is a one-shot transition.
func (s *SmartContract) CompleteTGE(ctx contractapi.TransactionContextInterface) error {
	_, err := common.RequireRole(ctx, s.accessControl(), common.RoleAdmin)
	if err != nil {
		return err
	}

	config, err := GetConfig(ctx)
	if err != nil {
		return err
	}

	now, err := common.TxTimestamp(ctx)
	if err != nil {
		return err
	}
	if now <= config.PresaleEnd {
		return common.ConflictError(
			fmt.Sprintf("presale still active until %d, now is %d", config.PresaleEnd, now), ErrPresaleStillActive)
	}

	tgeCompleted, err := IsTGECompleted(ctx)
	if err != nil {
		return err
	}
	if tgeCompleted {
		return common.ConflictError("tge already completed", ErrTGEAlreadyCompleted)
	}

	err = setTGECompleted(ctx)
	if err != nil {
		return err
	}

	return EmitTGECompleted(ctx, now)
}

// WithdrawTokens releases the caller's claimable vested tokens after TGE,
// delegating to the vesting engine's claim path.
func (s *SmartContract) WithdrawTokens(ctx contractapi.TransactionContextInterface) (string, error) {
	buyer, err := common.GetUserID(ctx)
	if err != nil {
		return "", common.ValidationError("failed to get client id", err)
	}

	status, err := GetEmergencyStatus(ctx)
	if err != nil {
		return "", err
	}
	if status.State != EmergencyNormal {
		return "", common.SystemHaltError(
			fmt.Sprintf("presale is in %s state", status.State), common.ErrSystemPaused)
	}

	err = s.RequireSystemNotPaused(ctx)
	if err != nil {
		return "", err
	}

	tgeCompleted, err := IsTGECompleted(ctx)
	if err != nil {
		return "", err
	}
	if !tgeCompleted {
		return "", common.ConflictError("tge not completed yet", ErrTGENotCompleted)
	}

	record, err := GetPurchaseRecord(ctx, buyer)
	if err != nil {
		return "", err
	}
	if !record.ScheduleCreated {
		return "", common.ConflictError(fmt.Sprintf("no purchase record for %s", buyer), ErrNoPurchaseRecord)
	}

	now, err := common.TxTimestamp(ctx)
	if err != nil {
		return "", err
	}

	amount, err := vesting.ClaimFor(ctx, s.saleToken(), buyer, record.VestingScheduleID, now)
	if err != nil {
		return "", err
	}

	err = EmitTokensWithdrawn(ctx, buyer, record.VestingScheduleID, amount.String())
	if err != nil {
		return "", err
	}

	return amount.String(), nil
}

// Emergency surface, mirroring the registry's protocol: pause toggles the
// minor state, recovery escalates to critical and needs a quorum of admin
// approvals to return to normal.

func (s *SmartContract) PausePresale(ctx contractapi.TransactionContextInterface) error {
	signer, err := common.RequireRole(ctx, s.accessControl(), common.RoleEmergency)
	if err != nil {
		return err
	}

	status, err := GetEmergencyStatus(ctx)
	if err != nil {
		return err
	}
	if status.State != EmergencyNormal {
		return common.ConflictError(fmt.Sprintf("presale already in %s state", status.State), ErrAlreadyPaused)
	}

	status.State = EmergencyMinor
	err = setEmergencyStatus(ctx, status)
	if err != nil {
		return err
	}

	return EmitPresalePaused(ctx, signer)
}

func (s *SmartContract) ResumePresale(ctx contractapi.TransactionContextInterface) error {
	signer, err := common.RequireRole(ctx, s.accessControl(), common.RoleEmergency)
	if err != nil {
		return err
	}

	status, err := GetEmergencyStatus(ctx)
	if err != nil {
		return err
	}
	if status.State == EmergencyNormal {
		return common.ConflictError("presale is not paused", ErrNotPaused)
	}
	if status.State == EmergencyCritical {
		return common.ConflictError("recovery in progress, approvals required to resume", ErrRecoveryInProgress)
	}

	status.State = EmergencyNormal
	err = setEmergencyStatus(ctx, status)
	if err != nil {
		return err
	}

	return EmitPresaleResumed(ctx, signer)
}

func (s *SmartContract) InitiateEmergencyRecovery(ctx contractapi.TransactionContextInterface) error {
	signer, err := common.RequireRole(ctx, s.accessControl(), common.RoleEmergency)
	if err != nil {
		return err
	}

	status, err := GetEmergencyStatus(ctx)
	if err != nil {
		return err
	}
	if status.State == EmergencyNormal {
		return common.ConflictError("presale must be paused before recovery", ErrNotPaused)
	}
	if status.State == EmergencyCritical {
		return common.ConflictError("recovery already in progress", ErrRecoveryInProgress)
	}

	required, err := GetRequiredApprovals(ctx)
	if err != nil {
		return err
	}

	now, err := common.TxTimestamp(ctx)
	if err != nil {
		return err
	}

	err = setEmergencyStatus(ctx, &EmergencyStatus{
		State:       EmergencyCritical,
		Approvals:   map[string]bool{},
		Initiator:   signer,
		InitiatedAt: now,
	})
	if err != nil {
		return err
	}

	return EmitEmergencyRecoveryInitiated(ctx, signer, required)
}

func (s *SmartContract) ApproveEmergencyRecovery(ctx contractapi.TransactionContextInterface) error {
	signer, err := common.RequireRole(ctx, s.accessControl(), common.RoleAdmin)
	if err != nil {
		return err
	}

	status, err := GetEmergencyStatus(ctx)
	if err != nil {
		return err
	}
	if status.State != EmergencyCritical {
		return common.ConflictError("no recovery in progress", ErrNotInRecovery)
	}
	if status.Approvals[signer] {
		return common.ConflictError(fmt.Sprintf("%s already approved this recovery", signer), ErrAlreadyApproved)
	}

	if status.Approvals == nil {
		status.Approvals = map[string]bool{}
	}
	status.Approvals[signer] = true
	status.ApprovalCount++

	required, err := GetRequiredApprovals(ctx)
	if err != nil {
		return err
	}

	if status.ApprovalCount >= required {
		approvals := status.ApprovalCount
		err = setEmergencyStatus(ctx, &EmergencyStatus{State: EmergencyNormal})
		if err != nil {
			return err
		}
		return EmitEmergencyRecoveryCompleted(ctx, approvals)
	}

	err = setEmergencyStatus(ctx, status)
	if err != nil {
		return err
	}

	return EmitRecoveryApproved(ctx, signer, status.ApprovalCount, required)
}

func (s *SmartContract) SetRequiredApprovals(ctx contractapi.TransactionContextInterface, required uint64) error {
	_, err := common.RequireRole(ctx, s.accessControl(), common.RoleAdmin)
	if err != nil {
		return err
	}

	if required == 0 {
		return common.ValidationError("required approvals must be at least 1", ErrInvalidApprovalQuorum)
	}

	status, err := GetEmergencyStatus(ctx)
	if err != nil {
		return err
	}
	if status.State == EmergencyCritical {
		return common.ConflictError("cannot change quorum during recovery", ErrRecoveryInProgress)
	}

	return setRequiredApprovals(ctx, required)
}

// Admin tier controls, kept consistent with the tier manager by sharing its
// state accessors.

func (s *SmartContract) AdvanceTier(ctx contractapi.TransactionContextInterface) error {
	_, err := common.RequireRole(ctx, s.accessControl(), common.RoleAdmin)
	if err != nil {
		return err
	}

	return tiers.AdvanceActive(ctx)
}

func (s *SmartContract) SetTierDeadline(ctx contractapi.TransactionContextInterface, tierID, deadline uint64) error {
	_, err := common.RequireRole(ctx, s.accessControl(), common.RoleAdmin)
	if err != nil {
		return err
	}

	now, err := common.TxTimestamp(ctx)
	if err != nil {
		return err
	}
	if deadline <= now {
		return common.ValidationError(
			fmt.Sprintf("deadline %d is not in the future", deadline), tiers.ErrDeadlineInPast)
	}

	tier, err := tiers.GetTier(ctx, tierID)
	if err != nil {
		return err
	}

	tier.Deadline = deadline
	err = tiers.SetTier(ctx, tier)
	if err != nil {
		return err
	}

	return tiers.EmitTierUpdated(ctx, tierID)
}

func (s *SmartContract) ExtendTier(ctx contractapi.TransactionContextInterface, tierID, extraSeconds uint64) error {
	_, err := common.RequireRole(ctx, s.accessControl(), common.RoleAdmin)
	if err != nil {
		return err
	}

	if extraSeconds == 0 {
		return common.ValidationError("extension cannot be zero", common.ErrCannotBeZero)
	}

	tier, err := tiers.GetTier(ctx, tierID)
	if err != nil {
		return err
	}

	tier.Deadline += extraSeconds
	err = tiers.SetTier(ctx, tier)
	if err != nil {
		return err
	}

	return tiers.EmitTierUpdated(ctx, tierID)
}

func (s *SmartContract) SetTierStatus(ctx contractapi.TransactionContextInterface, tierID uint64, active bool) error {
	_, err := common.RequireRole(ctx, s.accessControl(), common.RoleAdmin)
	if err != nil {
		return err
	}

	tier, err := tiers.GetTier(ctx, tierID)
	if err != nil {
		return err
	}

	tier.Active = active
	err = tiers.SetTier(ctx, tier)
	if err != nil {
		return err
	}

	return tiers.EmitTierStatusChanged(ctx, tierID, active)
}

// Queries.

func (s *SmartContract) GetPurchaseInfo(ctx contractapi.TransactionContextInterface, buyer string) (*PurchaseRecord, error) {
	if !common.IsUserAddressValid(buyer) {
		return nil, common.ValidationError(fmt.Sprintf("invalid buyer address %q", buyer), common.ErrInvalidUserAddress)
	}

	return GetPurchaseRecord(ctx, buyer)
}

func (s *SmartContract) GetTotalsSold(ctx contractapi.TransactionContextInterface) (string, error) {
	total, err := GetTotalTokensSold(ctx)
	if err != nil {
		return "", err
	}

	return total.String(), nil
}

func (s *SmartContract) GetTotalsRaised(ctx contractapi.TransactionContextInterface) (string, error) {
	total, err := GetTotalUSDRaised(ctx)
	if err != nil {
		return "", err
	}

	return total.String(), nil
}

func (s *SmartContract) GetEmergencyState(ctx contractapi.TransactionContextInterface) (*EmergencyStatus, error) {
	return GetEmergencyStatus(ctx)
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

	return s.Aware.UpdateContractReferences(ctx, []string{
		common.ServiceToken,
		common.ServiceTierManager,
		common.ServiceVesting,
		common.ServiceOracle,
		common.ServiceTreasury,
	})
}
