package registry

import "errors"

var (
	ErrAlreadyRegistered     = errors.New("ContractAlreadyRegistered")
	ErrNotRegistered         = errors.New("ContractNotRegistered")
	ErrSameAddress           = errors.New("SameImplementationAddress")
	ErrAlreadyPaused         = errors.New("SystemAlreadyPaused")
	ErrNotPaused             = errors.New("SystemNotPaused")
	ErrNotInRecovery         = errors.New("NotInRecovery")
	ErrRecoveryInProgress    = errors.New("RecoveryInProgress")
	ErrAlreadyApproved       = errors.New("AlreadyApproved")
	ErrRegistryNotSet        = errors.New("RegistryNotSet")
	ErrRegistryNotAccessible = errors.New("RegistryNotAccessible")
	ErrNoFallbackAddress     = errors.New("NoFallbackAddress")
	ErrServiceNotResolvable  = errors.New("ServiceNotResolvable")
	ErrInvalidApprovalQuorum = errors.New("InvalidApprovalQuorum")
)
