package crowdsale

import "errors"

var (
	ErrConfigNotSet            = errors.New("PresaleNotConfigured")
	ErrPresaleNotActive        = errors.New("PresaleNotActive")
	ErrPresaleStillActive      = errors.New("PresaleStillActive")
	ErrBelowMinPurchase        = errors.New("BelowMinPurchase")
	ErrAboveMaxPurchase        = errors.New("AboveMaxPurchase")
	ErrExceedsMaxTierPurchase  = errors.New("ExceedsMaxTierPurchase")
	ErrPurchaseTooSoon         = errors.New("PurchaseTooSoon")
	ErrExceedsMaxTokensPerAddr = errors.New("ExceedsMaxTokensPerAddress")
	ErrTGENotCompleted         = errors.New("TGENotCompletedYet")
	ErrTGEAlreadyCompleted     = errors.New("TGEAlreadyCompleted")
	ErrNoPurchaseRecord        = errors.New("NoPurchaseRecord")
	ErrNotPaused               = errors.New("PresaleNotPaused")
	ErrAlreadyPaused           = errors.New("PresaleAlreadyPaused")
	ErrNotInRecovery           = errors.New("NoRecoveryInProgress")
	ErrRecoveryInProgress      = errors.New("RecoveryAlreadyInProgress")
	ErrAlreadyApproved         = errors.New("RecoveryAlreadyApproved")
	ErrTreasuryNotSet          = errors.New("TreasuryNotConfigured")
	ErrStablecoinNotSet        = errors.New("StablecoinNotConfigured")
	ErrInvalidPresaleWindow    = errors.New("InvalidPresaleWindow")
	ErrInvalidApprovalQuorum   = errors.New("InvalidApprovalQuorum")
)
