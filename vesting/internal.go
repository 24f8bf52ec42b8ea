package vesting

import (
	"math/big"

	"github.com/buckhoff/token-presale-contract/common"
)

// TGEAmount is the immediately unlocked slice of a schedule:
// amount * tgePercentage / 100.
func TGEAmount(schedule *VestingSchedule, amount *big.Int) *big.Int {
	return common.PercentOf(amount, schedule.TGEPercentage)
}

// VestedAmount computes the vested total of a schedule as a pure function of
// the clock. Revocation freezes the function at the revocation timestamp.
// Whatever the schedule kind, the result never exceeds the schedule cap.
func VestedAmount(schedule *VestingSchedule, now uint64) (*big.Int, error) {
	amount, err := common.ParseAmount("schedule total", schedule.TotalAmount)
	if err != nil {
		return nil, err
	}

	effectiveNow := now
	if schedule.Revoked && schedule.RevokedAt < effectiveNow {
		effectiveNow = schedule.RevokedAt
	}

	var vested *big.Int
	switch schedule.Kind {
	case KindLinear, "":
		vested = linearVested(schedule, amount, effectiveNow)
	case KindMilestone:
		vested = milestoneVested(schedule, amount, effectiveNow)
	case KindAccelerated:
		vested = acceleratedVested(schedule, amount, effectiveNow)
	case KindPerformance:
		return performanceVested(schedule, amount)
	case KindVariableRate:
		vested = variableRateVested(schedule, amount, effectiveNow)
	default:
		return nil, common.IntegrityError("unknown schedule kind "+schedule.Kind, ErrInvalidScheduleKind)
	}

	if vested.Cmp(amount) > 0 {
		vested = amount
	}

	return vested, nil
}

// linearVested: TGE amount until the cliff ends, full amount after the
// duration, linear interpolation in between.
func linearVested(schedule *VestingSchedule, amount *big.Int, now uint64) *big.Int {
	tgeAmount := TGEAmount(schedule, amount)

	cliffEnd := schedule.StartTimestamp + schedule.CliffDuration
	end := schedule.StartTimestamp + schedule.Duration

	if now < cliffEnd {
		return tgeAmount
	}
	if now >= end {
		return new(big.Int).Set(amount)
	}

	vestingSpan := schedule.Duration - schedule.CliffDuration
	if vestingSpan == 0 {
		return new(big.Int).Set(amount)
	}

	elapsed := now - cliffEnd
	remainder := new(big.Int).Sub(amount, tgeAmount)
	accrued := new(big.Int).Mul(remainder, new(big.Int).SetUint64(elapsed))
	accrued.Div(accrued, new(big.Int).SetUint64(vestingSpan))

	return accrued.Add(accrued, tgeAmount)
}

// milestoneVested: a step function over completed milestones on top of the
// TGE amount. Time only matters for the TGE release before the cliff.
func milestoneVested(schedule *VestingSchedule, amount *big.Int, now uint64) *big.Int {
	vested := TGEAmount(schedule, amount)

	if now < schedule.StartTimestamp {
		return vested
	}

	for _, milestone := range schedule.Milestones {
		if !milestone.Completed {
			continue
		}
		milestoneAmount, err := common.ParseAmount("milestone", milestone.Amount)
		if err != nil {
			continue
		}
		vested.Add(vested, milestoneAmount)
	}

	return vested
}

// acceleratedVested: the linear function with a multiplier applied once the
// acceleration trigger has been met.
func acceleratedVested(schedule *VestingSchedule, amount *big.Int, now uint64) *big.Int {
	vested := linearVested(schedule, amount, now)
	if !schedule.Accelerated || schedule.MultiplierBps == 0 {
		return vested
	}

	return common.ApplyBps(vested, schedule.MultiplierBps)
}

// performanceVested: amount weighted by achieved metric ratios, capped at the
// schedule's max amount. Achievement can only be ratcheted upward, which
// keeps the vested amount monotone.
func performanceVested(schedule *VestingSchedule, amount *big.Int) (*big.Int, error) {
	weighted := big.NewInt(0)
	for _, metric := range schedule.Metrics {
		achieved := metric.AchievedBps
		if achieved > common.BpsDenominator {
			achieved = common.BpsDenominator
		}
		contribution := new(big.Int).Mul(amount, new(big.Int).SetUint64(metric.WeightBps))
		contribution.Mul(contribution, new(big.Int).SetUint64(achieved))
		weighted.Add(weighted, contribution)
	}
	weighted.Div(weighted, big.NewInt(common.BpsDenominator*common.BpsDenominator))

	cap := amount
	if schedule.MaxAmount != "" {
		maxAmount, err := common.ParseAmount("schedule max", schedule.MaxAmount)
		if err != nil {
			return nil, err
		}
		cap = maxAmount
	}

	if weighted.Cmp(cap) > 0 {
		return cap, nil
	}

	return weighted, nil
}

// variableRateVested: a piecewise-rate table over sequential periods starting
// at the cliff end, each period releasing amount*rateBps, linear within the
// running period.
func variableRateVested(schedule *VestingSchedule, amount *big.Int, now uint64) *big.Int {
	vested := TGEAmount(schedule, amount)

	periodStart := schedule.StartTimestamp + schedule.CliffDuration
	if now < periodStart {
		return vested
	}

	for _, period := range schedule.Rates {
		periodEnd := periodStart + period.DurationSeconds
		portion := common.ApplyBps(amount, period.RateBps)

		if now >= periodEnd {
			vested.Add(vested, portion)
			periodStart = periodEnd
			continue
		}

		if period.DurationSeconds > 0 {
			elapsed := now - periodStart
			partial := new(big.Int).Mul(portion, new(big.Int).SetUint64(elapsed))
			partial.Div(partial, new(big.Int).SetUint64(period.DurationSeconds))
			vested.Add(vested, partial)
		}
		break
	}

	return vested
}

// ClaimableAmount is the vested amount not yet claimed.
func ClaimableAmount(schedule *VestingSchedule, now uint64) (*big.Int, error) {
	vested, err := VestedAmount(schedule, now)
	if err != nil {
		return nil, err
	}

	claimed, err := common.ParseAmount("schedule claimed", schedule.Claimed)
	if err != nil {
		return nil, err
	}

	claimable := new(big.Int).Sub(vested, claimed)
	if claimable.Sign() < 0 {
		return nil, common.IntegrityError("claimed amount exceeds vested amount", nil)
	}

	return claimable, nil
}
