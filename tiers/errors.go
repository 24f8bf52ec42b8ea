package tiers

import "errors"

var (
	ErrInvalidTierID         = errors.New("InvalidTierId")
	ErrTierNotActive         = errors.New("TierNotActive")
	ErrNoActiveTier          = errors.New("NoActiveTier")
	ErrTierDeadlinePassed    = errors.New("TierDeadlinePassed")
	ErrExceedsTierAllocation = errors.New("ExceedsTierAllocation")
	ErrCircularProgression   = errors.New("CircularTierProgression")
	ErrInvalidTierTerms      = errors.New("InvalidTierTerms")
	ErrDeadlineInPast        = errors.New("DeadlineInPast")
	ErrNotCrowdsaleCaller    = errors.New("NotCrowdsaleCaller")
	ErrBridgeNotEnabled      = errors.New("BridgeNotEnabled")
)
