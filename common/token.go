package common

import (
	"fmt"
	"math/big"

	"github.com/hyperledger/fabric-chaincode-go/shim"
	"github.com/hyperledger/fabric-contract-api-go/contractapi"
)

// TokenClient is the consumer-side surface of the fungible token contract.
// The suite only ever mints, transfers and reads balances; token mechanics
// themselves live in the token chaincode.
type TokenClient interface {
	BalanceOf(ctx contractapi.TransactionContextInterface, account string) (*big.Int, error)
	Transfer(ctx contractapi.TransactionContextInterface, to string, amount *big.Int) error
	TransferFrom(ctx contractapi.TransactionContextInterface, from, to string, amount *big.Int) error
	Mint(ctx contractapi.TransactionContextInterface, to string, amount *big.Int) error
}

// InvokerTokenClient reaches the token contract through a chaincode
// invocation against the resolved token address.
type InvokerTokenClient struct {
	// Resolve returns the token chaincode address, normally through the
	// consumer's registry-aware resolution.
	Resolve func(ctx contractapi.TransactionContextInterface) (string, error)
	Channel string
}

func (c *InvokerTokenClient) invoke(ctx contractapi.TransactionContextInterface, args ...string) ([]byte, error) {
	if c.Resolve == nil {
		return nil, IntegrityError("token client has no resolver configured", nil)
	}

	tokenAddress, err := c.Resolve(ctx)
	if err != nil {
		return nil, err
	}
	if tokenAddress == "" {
		return nil, ValidationError("token contract address not resolved", ErrZeroAddress)
	}

	invokeArgs := make([][]byte, len(args))
	for i, arg := range args {
		invokeArgs[i] = []byte(arg)
	}

	response := ctx.GetStub().InvokeChaincode(tokenAddress, invokeArgs, c.Channel)
	if response.Status != shim.OK {
		return nil, NewCustomError(CodeIntegrity,
			fmt.Sprintf("token contract %s rejected %s: %s", tokenAddress, args[0], response.Message), nil)
	}

	return response.Payload, nil
}

func (c *InvokerTokenClient) BalanceOf(ctx contractapi.TransactionContextInterface, account string) (*big.Int, error) {
	payload, err := c.invoke(ctx, "BalanceOf", account)
	if err != nil {
		return nil, err
	}

	balance, ok := new(big.Int).SetString(string(payload), 10)
	if !ok {
		return nil, IntegrityError(fmt.Sprintf("token contract returned malformed balance %q", payload), nil)
	}

	return balance, nil
}

func (c *InvokerTokenClient) Transfer(ctx contractapi.TransactionContextInterface, to string, amount *big.Int) error {
	_, err := c.invoke(ctx, "Transfer", to, amount.String())
	return err
}

func (c *InvokerTokenClient) TransferFrom(ctx contractapi.TransactionContextInterface, from, to string, amount *big.Int) error {
	_, err := c.invoke(ctx, "TransferFrom", from, to, amount.String())
	return err
}

func (c *InvokerTokenClient) Mint(ctx contractapi.TransactionContextInterface, to string, amount *big.Int) error {
	_, err := c.invoke(ctx, "Mint", to, amount.String())
	return err
}
