package common

import (
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/sha3"
)

// MaxNameLength bounds every human-readable service or role name so its
// content-derived identifier stays comparable in constant space.
const MaxNameLength = 32

// ContractID derives the fixed-size identifier for a service or role name as
// the Keccak-256 hash of the name, hex encoded. Names longer than 32 bytes are
// rejected.
func ContractID(name string) (string, error) {
	if name == "" {
		return "", ValidationError("name cannot be empty", nil)
	}
	if len(name) > MaxNameLength {
		return "", ValidationError(fmt.Sprintf("name %q exceeds %d bytes", name, MaxNameLength), nil)
	}

	hash := sha3.NewLegacyKeccak256()
	hash.Write([]byte(name))

	return hex.EncodeToString(hash.Sum(nil)), nil
}

// MustContractID is for the suite's compile-time role and service names, which
// are all within the size budget.
func MustContractID(name string) string {
	id, err := ContractID(name)
	if err != nil {
		panic(err)
	}
	return id
}
