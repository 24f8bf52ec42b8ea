package oracle

import (
	"encoding/base64"
	"fmt"
	"testing"

	"github.com/golang/protobuf/ptypes/timestamp"
	"github.com/stretchr/testify/require"

	"github.com/buckhoff/token-presale-contract/common"
	"github.com/buckhoff/token-presale-contract/mocks"
)

const (
	adminUser = "0b87970433b22494faff1cc7a819e71bddc7880c"
	plainUser = "9f2c4e8ab13d5f6a7890c1d2e3f4a5b6c7d8e9f0"

	wethAddress = "klp-77657468746f6b656e-cc"
	usdcAddress = "klp-75736463746f6b656e-cc"
)

func testContext(worldState map[string][]byte, user string) *mocks.TransactionContext {
	stub := &mocks.ChaincodeStub{}
	stub.GetStateStub = func(key string) ([]byte, error) {
		return worldState[key], nil
	}
	stub.PutStateStub = func(key string, value []byte) error {
		worldState[key] = value
		return nil
	}
	stub.GetTxTimestampStub = func() (*timestamp.Timestamp, error) {
		return &timestamp.Timestamp{Seconds: 1700000000}, nil
	}

	clientID := &mocks.ClientIdentity{}
	clientID.GetIDReturns(base64.StdEncoding.EncodeToString(
		[]byte(fmt.Sprintf("x509::CN=%s,O=kalp::CN=ca.kalp.io", user))), nil)

	ctx := &mocks.TransactionContext{}
	ctx.GetStubReturns(stub)
	ctx.GetClientIdentityReturns(clientID)
	return ctx
}

func oracleWithAdmin(t *testing.T) (*SmartContract, map[string][]byte) {
	t.Helper()

	oracle := NewSmartContract()
	worldState := map[string][]byte{}
	require.NoError(t, oracle.AC.GrantRole(testContext(worldState, adminUser), common.RoleAdmin, adminUser))
	return oracle, worldState
}

func TestSetTokenFeedAndConvert(t *testing.T) {
	t.Parallel()

	oracle, worldState := oracleWithAdmin(t)
	ctx := testContext(worldState, adminUser)

	// WETH at 2000 USD, 18 token decimals.
	require.NoError(t, oracle.SetTokenFeed(ctx, wethAddress, "2000000000", 18))

	// Half a WETH converts to 1000 USD.
	usd, err := oracle.ConvertToUSD(ctx, wethAddress, "500000000000000000")
	require.NoError(t, err)
	require.Equal(t, "1000000000", usd)

	feed, err := oracle.GetTokenFeed(ctx, wethAddress)
	require.NoError(t, err)
	require.True(t, feed.Active)
	require.EqualValues(t, 1700000000, feed.UpdatedAt)
}

func TestConvertStablecoin(t *testing.T) {
	t.Parallel()

	oracle, worldState := oracleWithAdmin(t)
	ctx := testContext(worldState, adminUser)

	// A 6-decimal stablecoin at exactly 1 USD converts one to one.
	require.NoError(t, oracle.SetTokenFeed(ctx, usdcAddress, "1000000", 6))

	usd, err := oracle.ConvertToUSD(ctx, usdcAddress, "250000000")
	require.NoError(t, err)
	require.Equal(t, "250000000", usd)
}

func TestConvertUnknownToken(t *testing.T) {
	t.Parallel()

	_, worldState := oracleWithAdmin(t)

	_, err := Convert(testContext(worldState, adminUser), wethAddress, "1000")
	require.ErrorIs(t, err, ErrUnsupportedPaymentToken)
}

func TestConvertInactiveFeed(t *testing.T) {
	t.Parallel()

	oracle, worldState := oracleWithAdmin(t)
	ctx := testContext(worldState, adminUser)

	require.NoError(t, oracle.SetTokenFeed(ctx, wethAddress, "2000000000", 18))
	require.NoError(t, oracle.SetFeedStatus(ctx, wethAddress, false))

	_, err := Convert(ctx, wethAddress, "1000")
	require.ErrorIs(t, err, ErrUnsupportedPaymentToken)
}

func TestSetTokenFeedRequiresAdmin(t *testing.T) {
	t.Parallel()

	oracle, worldState := oracleWithAdmin(t)

	err := oracle.SetTokenFeed(testContext(worldState, plainUser), wethAddress, "2000000000", 18)
	require.ErrorIs(t, err, common.ErrNotAuthorized)
}

func TestSetTokenFeedRejectsZeroPrice(t *testing.T) {
	t.Parallel()

	oracle, worldState := oracleWithAdmin(t)

	err := oracle.SetTokenFeed(testContext(worldState, adminUser), wethAddress, "0", 18)
	require.ErrorIs(t, err, common.ErrCannotBeZero)
}
