package registry

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/buckhoff/token-presale-contract/common"
)

const (
	registryAddress = "klp-726567697374727931-cc"
	tokenAddress    = "klp-746f6b656e31-cc"
	fallbackToken   = "klp-746f6b656e6662-cc"
)

func consumer() *Aware {
	return &Aware{ConsumerName: common.ServiceCrowdsale}
}

func TestResolveLiveLookup(t *testing.T) {
	t.Parallel()

	reg, worldState := initializedRegistry(t)
	ctx := testContext(worldState, adminUser)
	require.NoError(t, reg.RegisterContract(ctx, common.ServiceToken, tokenAddress, "IToken"))

	aware := consumer()
	require.NoError(t, aware.SetRegistry(ctx, registryAddress))

	address, err := aware.Resolve(ctx, common.ServiceToken)
	require.NoError(t, err)
	require.Equal(t, tokenAddress, address)
}

func TestResolveFallsBackWhenServiceInactive(t *testing.T) {
	t.Parallel()

	reg, worldState := initializedRegistry(t)
	ctx := testContext(worldState, adminUser)
	require.NoError(t, reg.RegisterContract(ctx, common.ServiceToken, tokenAddress, "IToken"))
	require.NoError(t, reg.SetContractStatus(ctx, common.ServiceToken, false))

	aware := consumer()
	require.NoError(t, aware.SetRegistry(ctx, registryAddress))
	require.NoError(t, aware.SetFallbackAddress(ctx, common.ServiceToken, fallbackToken))

	address, err := aware.Resolve(ctx, common.ServiceToken)
	require.NoError(t, err)
	require.Equal(t, fallbackToken, address)
}

func TestResolveFailsWithoutAnySource(t *testing.T) {
	t.Parallel()

	_, worldState := initializedRegistry(t)
	ctx := testContext(worldState, adminUser)

	aware := consumer()
	_, err := aware.Resolve(ctx, common.ServiceToken)
	require.ErrorIs(t, err, ErrServiceNotResolvable)
}

func TestOfflineModeSkipsLiveLookup(t *testing.T) {
	t.Parallel()

	reg, worldState := initializedRegistry(t)
	ctx := testContext(worldState, adminUser)
	require.NoError(t, reg.RegisterContract(ctx, common.ServiceToken, tokenAddress, "IToken"))

	aware := consumer()
	require.NoError(t, aware.SetRegistry(ctx, registryAddress))
	require.NoError(t, aware.SetFallbackAddress(ctx, common.ServiceToken, fallbackToken))
	require.NoError(t, aware.EnableOfflineMode(ctx))

	address, err := aware.Resolve(ctx, common.ServiceToken)
	require.NoError(t, err)
	require.Equal(t, fallbackToken, address)

	require.NoError(t, aware.DisableOfflineMode(ctx))

	address, err = aware.Resolve(ctx, common.ServiceToken)
	require.NoError(t, err)
	require.Equal(t, tokenAddress, address)
}

func TestDisableOfflineModeRequiresReachableRegistry(t *testing.T) {
	t.Parallel()

	// No registry initialization marker in this world state.
	worldState := map[string][]byte{}
	ctx := testContext(worldState, adminUser)

	aware := consumer()
	require.NoError(t, aware.EnableOfflineMode(ctx))

	err := aware.DisableOfflineMode(ctx)
	require.ErrorIs(t, err, ErrRegistryNotSet)

	require.NoError(t, aware.SetRegistry(ctx, registryAddress))

	err = aware.DisableOfflineMode(ctx)
	require.ErrorIs(t, err, ErrRegistryNotAccessible)
}

func TestUpdateContractReferences(t *testing.T) {
	t.Parallel()

	reg, worldState := initializedRegistry(t)
	ctx := testContext(worldState, adminUser)
	require.NoError(t, reg.RegisterContract(ctx, common.ServiceToken, tokenAddress, "IToken"))

	aware := consumer()
	require.NoError(t, aware.SetRegistry(ctx, registryAddress))

	failed, err := aware.UpdateContractReferences(ctx, []string{common.ServiceToken, common.ServiceOracle})
	require.NoError(t, err)
	require.Equal(t, []string{common.ServiceOracle}, failed)

	cached, err := aware.CachedReference(ctx, common.ServiceToken)
	require.NoError(t, err)
	require.Equal(t, tokenAddress, cached)
}

func TestRequireSystemNotPaused(t *testing.T) {
	t.Parallel()

	reg, worldState := initializedRegistry(t)
	ctx := testContext(worldState, adminUser)

	aware := consumer()
	require.NoError(t, aware.SetRegistry(ctx, registryAddress))
	require.NoError(t, aware.RequireSystemNotPaused(ctx))

	require.NoError(t, reg.PauseSystem(ctx))

	err := aware.RequireSystemNotPaused(ctx)
	require.ErrorIs(t, err, common.ErrSystemPaused)

	// Offline consumers are exempt from the shared pause flag.
	require.NoError(t, aware.EnableOfflineMode(ctx))
	require.NoError(t, aware.RequireSystemNotPaused(ctx))
}

func TestRequireSystemNotPausedSkipsWhenRegistryUnset(t *testing.T) {
	t.Parallel()

	worldState := map[string][]byte{
		"system_paused": []byte("true"),
	}

	require.NoError(t, consumer().RequireSystemNotPaused(testContext(worldState, adminUser)))
}
