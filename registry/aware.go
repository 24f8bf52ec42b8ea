package registry

import (
	"fmt"

	"github.com/hyperledger/fabric-contract-api-go/contractapi"

	"github.com/buckhoff/token-presale-contract/common"
)

const (
	awareRegistryKeyFormat = "aware_registry_%s"
	awareOfflineKeyFormat  = "aware_offline_%s"
	awareFallbackKeyFormat = "aware_fallback_%s_%s"
	awareRefKeyFormat      = "aware_ref_%s_%s"
)

// Aware is the registry-aware base capability embedded by every dependent
// contract. It owns the consumer's registry handle, offline mode flag and
// fallback address table, and implements the shared resolution algorithm:
// live registry lookup first, locally configured fallback when offline or
// when the lookup fails.
type Aware struct {
	// ConsumerName is the embedding contract's own registry key; it
	// namespaces the consumer's local state.
	ConsumerName string
}

func (a *Aware) registryKey() string {
	return fmt.Sprintf(awareRegistryKeyFormat, a.ConsumerName)
}

func (a *Aware) SetRegistry(ctx contractapi.TransactionContextInterface, address string) error {
	if !common.IsContractAddressValid(address) {
		return common.ValidationError(fmt.Sprintf("invalid registry address %q", address), common.ErrZeroAddress)
	}

	err := ctx.GetStub().PutState(a.registryKey(), []byte(address))
	if err != nil {
		return common.IntegrityError("failed to set registry address", err)
	}

	return nil
}

func (a *Aware) RegistryAddress(ctx contractapi.TransactionContextInterface) (string, error) {
	addressAsBytes, err := ctx.GetStub().GetState(a.registryKey())
	if err != nil {
		return "", common.IntegrityError("failed to get registry address", err)
	}

	return string(addressAsBytes), nil
}

func (a *Aware) IsOfflineMode(ctx contractapi.TransactionContextInterface) (bool, error) {
	offlineAsBytes, err := ctx.GetStub().GetState(fmt.Sprintf(awareOfflineKeyFormat, a.ConsumerName))
	if err != nil {
		return false, common.IntegrityError("failed to get offline mode flag", err)
	}

	return offlineAsBytes != nil, nil
}

func (a *Aware) EnableOfflineMode(ctx contractapi.TransactionContextInterface) error {
	err := ctx.GetStub().PutState(fmt.Sprintf(awareOfflineKeyFormat, a.ConsumerName), []byte("1"))
	if err != nil {
		return common.IntegrityError("failed to enable offline mode", err)
	}

	return nil
}

// DisableOfflineMode refuses to come back online on faith: the configured
// registry must exist and be reachable first.
func (a *Aware) DisableOfflineMode(ctx contractapi.TransactionContextInterface) error {
	address, err := a.RegistryAddress(ctx)
	if err != nil {
		return err
	}
	if address == "" {
		return common.ConflictError("registry not set", ErrRegistryNotSet)
	}

	accessible, err := IsRegistryAccessible(ctx)
	if err != nil {
		return err
	}
	if !accessible {
		return common.ConflictError("registry not accessible", ErrRegistryNotAccessible)
	}

	err = ctx.GetStub().DelState(fmt.Sprintf(awareOfflineKeyFormat, a.ConsumerName))
	if err != nil {
		return common.IntegrityError("failed to disable offline mode", err)
	}

	return nil
}

func (a *Aware) SetFallbackAddress(ctx contractapi.TransactionContextInterface, service, address string) error {
	if !common.IsContractAddressValid(address) {
		return common.ValidationError(fmt.Sprintf("invalid fallback address %q", address), common.ErrZeroAddress)
	}

	id, err := common.ContractID(service)
	if err != nil {
		return err
	}

	err = ctx.GetStub().PutState(fmt.Sprintf(awareFallbackKeyFormat, a.ConsumerName, id), []byte(address))
	if err != nil {
		return common.IntegrityError("failed to set fallback address", err)
	}

	return EmitFallbackAddressSet(ctx, a.ConsumerName, service, address)
}

func (a *Aware) FallbackAddress(ctx contractapi.TransactionContextInterface, service string) (string, error) {
	id, err := common.ContractID(service)
	if err != nil {
		return "", err
	}

	addressAsBytes, err := ctx.GetStub().GetState(fmt.Sprintf(awareFallbackKeyFormat, a.ConsumerName, id))
	if err != nil {
		return "", common.IntegrityError("failed to get fallback address", err)
	}

	return string(addressAsBytes), nil
}

// Resolve returns the address to use for a named service. Offline mode and
// failed or inactive registry lookups fall back to the locally configured
// address; if neither source can produce one the resolution fails with a
// descriptive error rather than a silent zero value.
func (a *Aware) Resolve(ctx contractapi.TransactionContextInterface, service string) (string, error) {
	offline, err := a.IsOfflineMode(ctx)
	if err != nil {
		return "", err
	}

	if !offline {
		address, lookupErr := a.liveLookup(ctx, service)
		if lookupErr == nil {
			return address, nil
		}
	}

	fallback, err := a.FallbackAddress(ctx, service)
	if err != nil {
		return "", err
	}
	if fallback == "" {
		return "", common.ConflictError(
			fmt.Sprintf("service %s not resolvable for %s: no live registry entry and no fallback", service, a.ConsumerName),
			ErrServiceNotResolvable)
	}

	return fallback, nil
}

func (a *Aware) liveLookup(ctx contractapi.TransactionContextInterface, service string) (string, error) {
	registryAddress, err := a.RegistryAddress(ctx)
	if err != nil {
		return "", err
	}
	if registryAddress == "" {
		return "", common.ConflictError("registry not set", ErrRegistryNotSet)
	}

	accessible, err := IsRegistryAccessible(ctx)
	if err != nil {
		return "", err
	}
	if !accessible {
		return "", common.ConflictError("registry not accessible", ErrRegistryNotAccessible)
	}

	record, err := GetContractRecord(ctx, service)
	if err != nil {
		return "", err
	}
	if !record.Active {
		return "", common.ConflictError(fmt.Sprintf("service %s is inactive", service), ErrServiceNotResolvable)
	}

	return record.CurrentAddress, nil
}

// UpdateContractReferences re-resolves and caches the consumer's known
// dependencies. It is best effort: a dependency that fails to resolve is
// skipped and reported in the returned list rather than failing the call.
func (a *Aware) UpdateContractReferences(ctx contractapi.TransactionContextInterface, services []string) ([]string, error) {
	var failed []string

	for _, service := range services {
		address, err := a.Resolve(ctx, service)
		if err != nil {
			failed = append(failed, service)
			continue
		}

		id, err := common.ContractID(service)
		if err != nil {
			failed = append(failed, service)
			continue
		}

		err = ctx.GetStub().PutState(fmt.Sprintf(awareRefKeyFormat, a.ConsumerName, id), []byte(address))
		if err != nil {
			return nil, common.IntegrityError("failed to cache contract reference", err)
		}

		err = EmitContractReferenceUpdated(ctx, a.ConsumerName, service, address)
		if err != nil {
			return nil, err
		}
	}

	return failed, nil
}

// CachedReference returns the last cached address for a service, empty when
// never resolved.
func (a *Aware) CachedReference(ctx contractapi.TransactionContextInterface, service string) (string, error) {
	id, err := common.ContractID(service)
	if err != nil {
		return "", err
	}

	addressAsBytes, err := ctx.GetStub().GetState(fmt.Sprintf(awareRefKeyFormat, a.ConsumerName, id))
	if err != nil {
		return "", common.IntegrityError("failed to get cached reference", err)
	}

	return string(addressAsBytes), nil
}

// RequireSystemNotPaused enforces the registry side of the
// whenContractNotPaused check. The check is skipped when the consumer is
// offline or the registry is unreachable; local pause flags are the
// embedding contract's responsibility.
func (a *Aware) RequireSystemNotPaused(ctx contractapi.TransactionContextInterface) error {
	offline, err := a.IsOfflineMode(ctx)
	if err != nil {
		return err
	}
	if offline {
		return nil
	}

	registryAddress, err := a.RegistryAddress(ctx)
	if err != nil {
		return err
	}
	if registryAddress == "" {
		return nil
	}

	accessible, err := IsRegistryAccessible(ctx)
	if err != nil {
		return err
	}
	if !accessible {
		return nil
	}

	paused, err := IsSystemPaused(ctx)
	if err != nil {
		return err
	}
	if paused {
		return common.SystemHaltError("system is paused", common.ErrSystemPaused)
	}

	return nil
}
