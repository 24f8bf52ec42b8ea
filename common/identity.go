package common

import (
	"encoding/base64"
	"fmt"
	"regexp"
	"strings"

	"github.com/hyperledger/fabric-contract-api-go/contractapi"
)

const (
	contractAddressRegex = `^klp-[a-fA-F0-9]+-cc$`
	hexAddressRegex      = `^[0-9a-fA-F]{40}$`
	zeroHexAddress       = "0x0000000000000000000000000000000000000000"
)

// GetUserID extracts the ledger user address from the x509 CN of the caller's
// client identity.
func GetUserID(ctx contractapi.TransactionContextInterface) (string, error) {
	b64ID, err := ctx.GetClientIdentity().GetID()
	if err != nil {
		return "", fmt.Errorf("failed to read clientID: %v", err)
	}

	decodeID, err := base64.StdEncoding.DecodeString(b64ID)
	if err != nil {
		return "", fmt.Errorf("failed to base64 decode clientID: %v", err)
	}

	completeID := string(decodeID)
	cnIndex := strings.Index(completeID, "x509::CN=")
	commaIndex := strings.Index(completeID, ",")
	if cnIndex == -1 || commaIndex == -1 || commaIndex <= cnIndex+9 {
		return "", fmt.Errorf("unexpected client identity format: %s", completeID)
	}
	userID := completeID[cnIndex+9 : commaIndex]

	if !IsUserAddressValid(userID) {
		return "", fmt.Errorf("%w: %s", ErrInvalidUserAddress, userID)
	}

	return userID, nil
}

func IsUserAddressValid(address string) bool {
	if address == "" {
		return false
	}

	isValid, _ := regexp.MatchString(hexAddressRegex, address)
	return isValid
}

func IsContractAddressValid(address string) bool {
	if address == "" || address == zeroHexAddress {
		return false
	}

	isContract, _ := regexp.MatchString(contractAddressRegex, address)
	isUser, _ := regexp.MatchString(hexAddressRegex, address)
	return isContract || isUser
}

// TxTimestamp returns the deterministic transaction timestamp in unix seconds.
func TxTimestamp(ctx contractapi.TransactionContextInterface) (uint64, error) {
	ts, err := ctx.GetStub().GetTxTimestamp()
	if err != nil {
		return 0, NewCustomError(CodeIntegrity, "failed to get transaction timestamp", err)
	}
	if ts.Seconds < 0 {
		return 0, NewCustomError(CodeIntegrity, "transaction timestamp before epoch", nil)
	}

	return uint64(ts.Seconds), nil
}
