package vesting

import (
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/hyperledger/fabric-contract-api-go/contractapi"

	"github.com/buckhoff/token-presale-contract/common"
	"github.com/buckhoff/token-presale-contract/registry"
)

// SmartContract is the vesting engine: per-beneficiary schedules whose
// claimable amount is a pure function of elapsed time, disbursed from a
// pre-funded vault account on claim.
type SmartContract struct {
	contractapi.Contract
	registry.Aware
	AC    common.AccessControl
	Token common.TokenClient
}

func NewSmartContract() *SmartContract {
	sc := &SmartContract{AC: common.NewLedgerAccessControl()}
	sc.Name = common.ServiceVesting
	sc.ConsumerName = common.ServiceVesting
	sc.Token = &common.InvokerTokenClient{Resolve: func(ctx contractapi.TransactionContextInterface) (string, error) {
		return sc.Aware.Resolve(ctx, common.ServiceToken)
	}}
	return sc
}

func (s *SmartContract) accessControl() common.AccessControl {
	if s.AC == nil {
		s.AC = common.NewLedgerAccessControl()
	}
	return s.AC
}

func (s *SmartContract) tokenClient() common.TokenClient {
	if s.Token == nil {
		s.Token = &common.InvokerTokenClient{Resolve: func(ctx contractapi.TransactionContextInterface) (string, error) {
			return s.Aware.Resolve(ctx, common.ServiceToken)
		}}
	}
	return s.Token
}

// InitializeVesting seeds the distribution categories. The split is
// deployment configuration; each category caps the total amount of schedules
// that may be created under it.
func (s *SmartContract) InitializeVesting(ctx contractapi.TransactionContextInterface, categories []CategoryInput) error {
	_, err := common.RequireRole(ctx, s.accessControl(), common.RoleAdmin)
	if err != nil {
		return err
	}

	now, err := common.TxTimestamp(ctx)
	if err != nil {
		return err
	}

	for _, input := range categories {
		if input.Name == "" {
			return common.ValidationError("category name cannot be empty", common.ErrCannotBeZero)
		}
		if _, err := common.ParsePositiveAmount("category supply", input.TotalSupply); err != nil {
			return err
		}

		category := &Category{
			Name:        input.Name,
			TotalSupply: input.TotalSupply,
			Allocated:   "0",
			CreatedAt:   now,
		}
		err = SetCategory(ctx, category)
		if err != nil {
			return err
		}

		err = EmitCategoryInitialized(ctx, category)
		if err != nil {
			return err
		}
	}

	return nil
}

// SetVaultAddress configures the token account whose balance funds payouts.
func (s *SmartContract) SetVaultAddress(ctx contractapi.TransactionContextInterface, address string) error {
	_, err := common.RequireRole(ctx, s.accessControl(), common.RoleAdmin)
	if err != nil {
		return err
	}

	if !common.IsUserAddressValid(address) && !common.IsContractAddressValid(address) {
		return common.ValidationError(fmt.Sprintf("invalid vault address %q", address), common.ErrZeroAddress)
	}

	return setVaultAddress(ctx, address)
}

// CreateParams carries the full terms for a new schedule of any kind.
type CreateParams struct {
	Beneficiary    string              `json:"beneficiary"`
	Amount         string              `json:"amount"`
	StartTimestamp uint64              `json:"startTimestamp"`
	CliffDuration  uint64              `json:"cliffDuration"`
	Duration       uint64              `json:"duration"`
	TGEPercentage  uint64              `json:"tgePercentage"`
	Category       string              `json:"category"`
	Revocable      bool                `json:"revocable"`
	Kind           string              `json:"kind"`
	Milestones     []Milestone         `json:"milestones,omitempty"`
	MultiplierBps  uint64              `json:"multiplierBps,omitempty"`
	MaxAmount      string              `json:"maxAmount,omitempty"`
	Metrics        []PerformanceMetric `json:"metrics,omitempty"`
	Rates          []RatePeriod        `json:"rates,omitempty"`
}

func validateCreateParams(params *CreateParams) (*big.Int, error) {
	if !common.IsUserAddressValid(params.Beneficiary) {
		return nil, common.ValidationError(fmt.Sprintf("invalid beneficiary %q", params.Beneficiary), common.ErrInvalidUserAddress)
	}

	amount, err := common.ParsePositiveAmount("schedule", params.Amount)
	if err != nil {
		return nil, err
	}

	if params.StartTimestamp == 0 {
		return nil, common.ValidationError("start timestamp cannot be zero", common.ErrCannotBeZero)
	}
	// Zero duration would mean instantaneous full vesting, which is
	// disallowed outright.
	if params.Duration == 0 {
		return nil, common.ValidationError("vesting duration cannot be zero", ErrZeroDuration)
	}
	if params.CliffDuration > params.Duration {
		return nil, common.ValidationError("cliff exceeds duration", ErrCliffExceedsDuration)
	}
	if params.TGEPercentage > 100 {
		return nil, common.ValidationError(fmt.Sprintf("tge percentage %d exceeds 100", params.TGEPercentage), ErrInvalidTGEPercentage)
	}

	switch params.Kind {
	case "", KindLinear, KindMilestone, KindAccelerated, KindPerformance, KindVariableRate:
	default:
		return nil, common.ValidationError(fmt.Sprintf("unknown schedule kind %q", params.Kind), ErrInvalidScheduleKind)
	}

	return amount, nil
}

// requireVaultCoverage fails schedule creation when the vault balance could
// not cover the full outstanding commitment including the new amount.
func requireVaultCoverage(ctx contractapi.TransactionContextInterface, token common.TokenClient, extra *big.Int) (*big.Int, error) {
	committed, err := GetTotalCommitted(ctx)
	if err != nil {
		return nil, err
	}

	vault, err := GetVaultAddress(ctx)
	if err != nil {
		return nil, err
	}

	balance, err := token.BalanceOf(ctx, vault)
	if err != nil {
		return nil, err
	}

	needed := new(big.Int).Add(committed, extra)
	if balance.Cmp(needed) < 0 {
		return nil, common.IntegrityError(
			fmt.Sprintf("insufficient contract balance: vault holds %s, commitment would be %s", balance, needed),
			ErrInsufficientContractBalance)
	}

	return committed, nil
}

func allocateCategory(ctx contractapi.TransactionContextInterface, name string, amount *big.Int) error {
	if name == "" {
		return nil
	}

	category, err := GetCategory(ctx, name)
	if err != nil {
		return err
	}

	allocated, err := common.ParseAmount("category allocated", category.Allocated)
	if err != nil {
		return err
	}
	supply, err := common.ParseAmount("category supply", category.TotalSupply)
	if err != nil {
		return err
	}

	allocated.Add(allocated, amount)
	if allocated.Cmp(supply) > 0 {
		return common.ConflictError(fmt.Sprintf("category %s supply reached", name), ErrTotalSupplyReached)
	}

	category.Allocated = allocated.String()
	return SetCategory(ctx, category)
}

// Create installs a new schedule. It is the package-level form used both by
// the transaction surface and in-process by the purchase engine.
func Create(ctx contractapi.TransactionContextInterface, token common.TokenClient, params *CreateParams) (uint64, error) {
	amount, err := validateCreateParams(params)
	if err != nil {
		return 0, err
	}

	committed, err := requireVaultCoverage(ctx, token, amount)
	if err != nil {
		return 0, err
	}

	err = allocateCategory(ctx, params.Category, amount)
	if err != nil {
		return 0, err
	}

	id, err := GetScheduleCount(ctx)
	if err != nil {
		return 0, err
	}

	kind := params.Kind
	if kind == "" {
		kind = KindLinear
	}

	schedule := &VestingSchedule{
		ID:             id,
		Beneficiary:    params.Beneficiary,
		TotalAmount:    amount.String(),
		Claimed:        "0",
		StartTimestamp: params.StartTimestamp,
		CliffDuration:  params.CliffDuration,
		Duration:       params.Duration,
		TGEPercentage:  params.TGEPercentage,
		Category:       params.Category,
		Kind:           kind,
		Revocable:      params.Revocable,
		Milestones:     params.Milestones,
		MultiplierBps:  params.MultiplierBps,
		MaxAmount:      params.MaxAmount,
		Metrics:        params.Metrics,
		Rates:          params.Rates,
	}

	err = SetSchedule(ctx, schedule)
	if err != nil {
		return 0, err
	}

	err = setScheduleCount(ctx, id+1)
	if err != nil {
		return 0, err
	}

	ids, err := GetUserSchedules(ctx, params.Beneficiary)
	if err != nil {
		return 0, err
	}
	ids = append(ids, id)
	err = setUserSchedules(ctx, params.Beneficiary, ids)
	if err != nil {
		return 0, err
	}

	err = setTotalCommitted(ctx, committed.Add(committed, amount))
	if err != nil {
		return 0, err
	}

	return id, EmitVestingScheduleCreated(ctx, schedule)
}

// Augment grows an existing schedule, used when a buyer purchases again: the
// crowdsale tops up the canonical schedule instead of duplicating it.
func Augment(ctx contractapi.TransactionContextInterface, token common.TokenClient, id uint64, addAmount *big.Int) error {
	if addAmount.Sign() <= 0 {
		return common.ValidationError("augment amount cannot be zero", common.ErrCannotBeZero)
	}

	schedule, err := GetSchedule(ctx, id)
	if err != nil {
		return err
	}
	if schedule.Revoked {
		return common.ConflictError(fmt.Sprintf("schedule %d is revoked", id), ErrScheduleRevoked)
	}

	committed, err := requireVaultCoverage(ctx, token, addAmount)
	if err != nil {
		return err
	}

	err = allocateCategory(ctx, schedule.Category, addAmount)
	if err != nil {
		return err
	}

	total, err := common.ParseAmount("schedule total", schedule.TotalAmount)
	if err != nil {
		return err
	}
	total.Add(total, addAmount)
	schedule.TotalAmount = total.String()

	err = SetSchedule(ctx, schedule)
	if err != nil {
		return err
	}

	err = setTotalCommitted(ctx, committed.Add(committed, addAmount))
	if err != nil {
		return err
	}

	return EmitScheduleAugmented(ctx, id, addAmount.String(), schedule.TotalAmount)
}

func (s *SmartContract) CreateVestingSchedule(ctx contractapi.TransactionContextInterface, params *CreateParams) (uint64, error) {
	_, err := common.RequireRole(ctx, s.accessControl(), common.RoleVestingManager)
	if err != nil {
		return 0, err
	}

	return Create(ctx, s.tokenClient(), params)
}

// CreateBatchVestingSchedules applies all-or-nothing semantics: every item is
// validated before any schedule is installed, so an audit trail never shows a
// half-applied batch.
func (s *SmartContract) CreateBatchVestingSchedules(ctx contractapi.TransactionContextInterface, batch []*CreateParams) ([]uint64, error) {
	_, err := common.RequireRole(ctx, s.accessControl(), common.RoleVestingManager)
	if err != nil {
		return nil, err
	}

	if len(batch) == 0 {
		return nil, common.ValidationError("no schedules provided", ErrNoBeneficiaries)
	}

	batchTotal := big.NewInt(0)
	for _, params := range batch {
		amount, err := validateCreateParams(params)
		if err != nil {
			return nil, err
		}
		batchTotal.Add(batchTotal, amount)
	}

	_, err = requireVaultCoverage(ctx, s.tokenClient(), batchTotal)
	if err != nil {
		return nil, err
	}

	ids := make([]uint64, 0, len(batch))
	for _, params := range batch {
		id, err := Create(ctx, s.tokenClient(), params)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, nil
}

func (s *SmartContract) CalculateTGEAmount(ctx contractapi.TransactionContextInterface, id uint64) (string, error) {
	schedule, err := GetSchedule(ctx, id)
	if err != nil {
		return "", err
	}

	amount, err := common.ParseAmount("schedule total", schedule.TotalAmount)
	if err != nil {
		return "", err
	}

	return TGEAmount(schedule, amount).String(), nil
}

func (s *SmartContract) CalculateVestedAmount(ctx contractapi.TransactionContextInterface, id uint64) (string, error) {
	schedule, err := GetSchedule(ctx, id)
	if err != nil {
		return "", err
	}

	now, err := common.TxTimestamp(ctx)
	if err != nil {
		return "", err
	}

	vested, err := VestedAmount(schedule, now)
	if err != nil {
		return "", err
	}

	return vested.String(), nil
}

func (s *SmartContract) CalculateClaimableAmount(ctx contractapi.TransactionContextInterface, id uint64) (string, error) {
	schedule, err := GetSchedule(ctx, id)
	if err != nil {
		return "", err
	}

	now, err := common.TxTimestamp(ctx)
	if err != nil {
		return "", err
	}

	claimable, err := ClaimableAmount(schedule, now)
	if err != nil {
		return "", err
	}

	return claimable.String(), nil
}

// ClaimTokens pays out the claimable slice of the caller's schedule. All
// bookkeeping is committed before the outbound token transfer so a
// re-entrant call cannot double-spend the claim.
func (s *SmartContract) ClaimTokens(ctx contractapi.TransactionContextInterface, id uint64) (string, error) {
	signer, err := common.GetUserID(ctx)
	if err != nil {
		return "", common.ValidationError("failed to get client id", err)
	}

	err = s.RequireSystemNotPaused(ctx)
	if err != nil {
		return "", err
	}

	now, err := common.TxTimestamp(ctx)
	if err != nil {
		return "", err
	}

	amount, err := ClaimFor(ctx, s.tokenClient(), signer, id, now)
	if err != nil {
		return "", err
	}

	return amount.String(), nil
}

// ClaimFor performs the claim bookkeeping and payout for one schedule. The
// package-level form lets the purchase engine route post-TGE withdrawals
// through the same path as direct claims.
func ClaimFor(ctx contractapi.TransactionContextInterface, token common.TokenClient, signer string, id uint64, now uint64) (*big.Int, error) {
	schedule, err := GetSchedule(ctx, id)
	if err != nil {
		return nil, err
	}

	if schedule.Beneficiary != signer {
		return nil, common.AuthorizationError(
			fmt.Sprintf("caller %s is not the beneficiary of schedule %d", signer, id), ErrNotBeneficiary)
	}

	claimable, err := ClaimableAmount(schedule, now)
	if err != nil {
		return nil, err
	}
	if claimable.Sign() == 0 {
		if schedule.Revoked {
			return nil, common.ConflictError(fmt.Sprintf("schedule %d revoked, nothing left to claim", id), ErrScheduleRevoked)
		}
		return nil, common.ConflictError(fmt.Sprintf("no tokens to claim for schedule %d", id), ErrNothingToClaim)
	}

	claimed, err := common.ParseAmount("schedule claimed", schedule.Claimed)
	if err != nil {
		return nil, err
	}
	schedule.Claimed = claimed.Add(claimed, claimable).String()

	err = SetSchedule(ctx, schedule)
	if err != nil {
		return nil, err
	}

	committed, err := GetTotalCommitted(ctx)
	if err != nil {
		return nil, err
	}
	err = setTotalCommitted(ctx, committed.Sub(committed, claimable))
	if err != nil {
		return nil, err
	}

	totalClaims, err := GetTotalClaimsForAll(ctx)
	if err != nil {
		return nil, err
	}
	err = setTotalClaimsForAll(ctx, totalClaims.Add(totalClaims, claimable))
	if err != nil {
		return nil, err
	}

	err = EmitTokensClaimed(ctx, id, signer, claimable.String())
	if err != nil {
		return nil, err
	}

	err = token.Transfer(ctx, signer, claimable)
	if err != nil {
		return nil, err
	}

	return claimable, nil
}

// BatchClaimTokens claims across several of the caller's schedules
// all-or-nothing: each schedule must have a positive claimable amount.
func (s *SmartContract) BatchClaimTokens(ctx contractapi.TransactionContextInterface, ids []uint64) (string, error) {
	signer, err := common.GetUserID(ctx)
	if err != nil {
		return "", common.ValidationError("failed to get client id", err)
	}

	err = s.RequireSystemNotPaused(ctx)
	if err != nil {
		return "", err
	}

	now, err := common.TxTimestamp(ctx)
	if err != nil {
		return "", err
	}

	for _, id := range ids {
		schedule, err := GetSchedule(ctx, id)
		if err != nil {
			return "", err
		}
		if schedule.Beneficiary != signer {
			return "", common.AuthorizationError(
				fmt.Sprintf("caller %s is not the beneficiary of schedule %d", signer, id), ErrNotBeneficiary)
		}

		claimable, err := ClaimableAmount(schedule, now)
		if err != nil {
			return "", err
		}
		if claimable.Sign() == 0 {
			return "", common.ConflictError(fmt.Sprintf("no tokens to claim for schedule %d", id), ErrNothingToClaim)
		}
	}

	total := big.NewInt(0)
	for _, id := range ids {
		amount, err := ClaimFor(ctx, s.tokenClient(), signer, id, now)
		if err != nil {
			return "", err
		}
		total.Add(total, amount)
	}

	return total.String(), nil
}

// RevokeVestingSchedule freezes a revocable schedule's vesting function at
// the current timestamp. Tokens already claimed are never clawed back; the
// unvested remainder is released from the commitment.
func (s *SmartContract) RevokeVestingSchedule(ctx contractapi.TransactionContextInterface, id uint64) error {
	_, err := common.RequireRole(ctx, s.accessControl(), common.RoleAdmin)
	if err != nil {
		return err
	}

	now, err := common.TxTimestamp(ctx)
	if err != nil {
		return err
	}

	return revoke(ctx, id, now)
}

func revoke(ctx contractapi.TransactionContextInterface, id, now uint64) error {
	schedule, err := GetSchedule(ctx, id)
	if err != nil {
		return err
	}
	if !schedule.Revocable {
		return common.ConflictError(fmt.Sprintf("schedule %d is not revocable", id), ErrScheduleNotRevocable)
	}
	if schedule.Revoked {
		return common.ConflictError(fmt.Sprintf("schedule %d already revoked", id), ErrScheduleRevoked)
	}

	vested, err := VestedAmount(schedule, now)
	if err != nil {
		return err
	}

	total, err := common.ParseAmount("schedule total", schedule.TotalAmount)
	if err != nil {
		return err
	}
	unvested := new(big.Int).Sub(total, vested)

	schedule.Revoked = true
	schedule.RevokedAt = now
	err = SetSchedule(ctx, schedule)
	if err != nil {
		return err
	}

	committed, err := GetTotalCommitted(ctx)
	if err != nil {
		return err
	}
	err = setTotalCommitted(ctx, committed.Sub(committed, unvested))
	if err != nil {
		return err
	}

	return EmitScheduleRevoked(ctx, id, vested.String(), now)
}

// BatchRevokeSchedules revokes several schedules all-or-nothing.
func (s *SmartContract) BatchRevokeSchedules(ctx contractapi.TransactionContextInterface, ids []uint64) error {
	_, err := common.RequireRole(ctx, s.accessControl(), common.RoleAdmin)
	if err != nil {
		return err
	}

	now, err := common.TxTimestamp(ctx)
	if err != nil {
		return err
	}

	for _, id := range ids {
		schedule, err := GetSchedule(ctx, id)
		if err != nil {
			return err
		}
		if !schedule.Revocable {
			return common.ConflictError(fmt.Sprintf("schedule %d is not revocable", id), ErrScheduleNotRevocable)
		}
		if schedule.Revoked {
			return common.ConflictError(fmt.Sprintf("schedule %d already revoked", id), ErrScheduleRevoked)
		}
	}

	for _, id := range ids {
		err = revoke(ctx, id, now)
		if err != nil {
			return err
		}
	}

	return nil
}

// CompleteMilestone marks one milestone of a milestone-kind schedule done,
// stepping its vesting function up.
func (s *SmartContract) CompleteMilestone(ctx contractapi.TransactionContextInterface, id, index uint64) error {
	_, err := common.RequireRole(ctx, s.accessControl(), common.RoleVestingManager)
	if err != nil {
		return err
	}

	schedule, err := GetSchedule(ctx, id)
	if err != nil {
		return err
	}
	if schedule.Kind != KindMilestone {
		return common.ValidationError(fmt.Sprintf("schedule %d is not milestone-based", id), ErrInvalidScheduleKind)
	}
	if index >= uint64(len(schedule.Milestones)) {
		return common.ValidationError(fmt.Sprintf("schedule %d has no milestone %d", id, index), ErrMilestoneNotFound)
	}
	if schedule.Milestones[index].Completed {
		return common.ConflictError(fmt.Sprintf("milestone %d of schedule %d already completed", index, id), nil)
	}

	schedule.Milestones[index].Completed = true
	err = SetSchedule(ctx, schedule)
	if err != nil {
		return err
	}

	return EmitMilestoneCompleted(ctx, id, index)
}

// TriggerAcceleration enables the multiplier of an accelerated schedule.
func (s *SmartContract) TriggerAcceleration(ctx contractapi.TransactionContextInterface, id uint64) error {
	_, err := common.RequireRole(ctx, s.accessControl(), common.RoleVestingManager)
	if err != nil {
		return err
	}

	schedule, err := GetSchedule(ctx, id)
	if err != nil {
		return err
	}
	if schedule.Kind != KindAccelerated {
		return common.ValidationError(fmt.Sprintf("schedule %d is not accelerated", id), ErrInvalidScheduleKind)
	}
	if schedule.Accelerated {
		return common.ConflictError(fmt.Sprintf("schedule %d already accelerated", id), nil)
	}

	schedule.Accelerated = true
	err = SetSchedule(ctx, schedule)
	if err != nil {
		return err
	}

	return EmitAccelerationTriggered(ctx, id)
}

// UpdatePerformanceMetric ratchets one metric's achievement upward. A
// decrease is rejected so the vested amount stays monotone.
func (s *SmartContract) UpdatePerformanceMetric(ctx contractapi.TransactionContextInterface, id, index, achievedBps uint64) error {
	_, err := common.RequireRole(ctx, s.accessControl(), common.RoleVestingManager)
	if err != nil {
		return err
	}

	schedule, err := GetSchedule(ctx, id)
	if err != nil {
		return err
	}
	if schedule.Kind != KindPerformance {
		return common.ValidationError(fmt.Sprintf("schedule %d is not performance-based", id), ErrInvalidScheduleKind)
	}
	if index >= uint64(len(schedule.Metrics)) {
		return common.ValidationError(fmt.Sprintf("schedule %d has no metric %d", id, index), ErrMetricNotFound)
	}
	if achievedBps < schedule.Metrics[index].AchievedBps {
		return common.ValidationError(
			fmt.Sprintf("metric %d of schedule %d cannot decrease", index, id), ErrMetricDecreased)
	}

	schedule.Metrics[index].AchievedBps = achievedBps
	err = SetSchedule(ctx, schedule)
	if err != nil {
		return err
	}

	return EmitMetricUpdated(ctx, id, index, achievedBps)
}

func (s *SmartContract) GetVestingSchedule(ctx contractapi.TransactionContextInterface, id uint64) (*VestingSchedule, error) {
	return GetSchedule(ctx, id)
}

func (s *SmartContract) GetSchedulesForBeneficiary(ctx contractapi.TransactionContextInterface, beneficiary string) ([]uint64, error) {
	return GetUserSchedules(ctx, beneficiary)
}

func (s *SmartContract) GetCategoryInfo(ctx contractapi.TransactionContextInterface, name string) (*Category, error) {
	return GetCategory(ctx, name)
}

// ExportVestingData dumps a beneficiary's schedules for migration tooling.
func (s *SmartContract) ExportVestingData(ctx contractapi.TransactionContextInterface, beneficiary string) (string, error) {
	ids, err := GetUserSchedules(ctx, beneficiary)
	if err != nil {
		return "", err
	}

	schedules := make([]*VestingSchedule, 0, len(ids))
	for _, id := range ids {
		schedule, err := GetSchedule(ctx, id)
		if err != nil {
			return "", err
		}
		schedules = append(schedules, schedule)
	}

	exported, err := json.Marshal(schedules)
	if err != nil {
		return "", common.IntegrityError("failed to marshal vesting export", err)
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

	return s.Aware.UpdateContractReferences(ctx, []string{common.ServiceToken, common.ServiceCrowdsale})
}
