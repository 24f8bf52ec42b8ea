package vesting

import "errors"

var (
	ErrScheduleNotFound            = errors.New("ScheduleNotFound")
	ErrNotBeneficiary              = errors.New("NotTheBeneficiary")
	ErrNothingToClaim              = errors.New("NoTokensToClaim")
	ErrScheduleRevoked             = errors.New("ScheduleRevoked")
	ErrScheduleNotRevocable        = errors.New("ScheduleNotRevocable")
	ErrInsufficientContractBalance = errors.New("InsufficientContractBalance")
	ErrZeroDuration                = errors.New("ZeroDuration")
	ErrCliffExceedsDuration        = errors.New("CliffExceedsDuration")
	ErrInvalidTGEPercentage        = errors.New("InvalidTGEPercentage")
	ErrNoBeneficiaries             = errors.New("NoBeneficiaries")
	ErrArraysLengthMismatch        = errors.New("ArraysLengthMismatch")
	ErrCategoryNotFound            = errors.New("CategoryNotFound")
	ErrTotalSupplyReached          = errors.New("TotalSupplyReached")
	ErrVaultNotConfigured          = errors.New("VaultNotConfigured")
	ErrInvalidScheduleKind         = errors.New("InvalidScheduleKind")
	ErrMilestoneNotFound           = errors.New("MilestoneNotFound")
	ErrMetricNotFound              = errors.New("MetricNotFound")
	ErrMetricDecreased             = errors.New("MetricDecreased")
)
