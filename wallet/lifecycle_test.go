package wallet

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/xerrors"

	"github.com/veilnet/create-wallet/client"
	"github.com/veilnet/create-wallet/config"
)

type fakeWallet struct {
	states   chan client.WalletState
	startErr error
	closes   int32
}

func (f *fakeWallet) States() <-chan client.WalletState { return f.states }
func (f *fakeWallet) Start(context.Context) error       { return f.startErr }
func (f *fakeWallet) Close() error {
	atomic.AddInt32(&f.closes, 1)
	return nil
}

func withFakeBuild(t *testing.T, fn func(context.Context, config.Config, [SeedLen]byte) (client.Wallet, error)) {
	t.Helper()
	orig := build
	build = fn
	t.Cleanup(func() { build = orig })
}

func testConfig(t *testing.T) config.Config {
	t.Helper()
	cfg, err := config.ForNetwork("standalone")
	require.NoError(t, err)
	return cfg
}

func TestBuildFreshReturnsHandleAndSeed(t *testing.T) {
	fake := &fakeWallet{states: make(chan client.WalletState, 1)}
	fake.states <- client.WalletState{Address: "veil1abc"}

	var gotSeed [SeedLen]byte
	withFakeBuild(t, func(_ context.Context, _ config.Config, seed [SeedLen]byte) (client.Wallet, error) {
		gotSeed = seed
		return fake, nil
	})

	w, seed, err := BuildFresh(context.Background(), testConfig(t))
	require.NoError(t, err)
	require.Same(t, fake, w)
	require.Equal(t, seed.Bytes(), gotSeed)
	require.Len(t, seed.String(), 64)

	CloseWallet(w)
	require.Equal(t, int32(1), atomic.LoadInt32(&fake.closes))
}

func TestBuildFreshConstructionFailure(t *testing.T) {
	withFakeBuild(t, func(context.Context, config.Config, [SeedLen]byte) (client.Wallet, error) {
		return nil, xerrors.New("indexer unreachable")
	})

	w, _, err := BuildFresh(context.Background(), testConfig(t))
	require.Error(t, err)
	require.Nil(t, w)

	// no handle, no close attempt
	require.NotPanics(t, func() { CloseWallet(w) })
}

func TestBuildFromSeedStartFailureStillReturnsHandle(t *testing.T) {
	fake := &fakeWallet{
		states:   make(chan client.WalletState),
		startErr: xerrors.New("subscribe refused"),
	}
	withFakeBuild(t, func(context.Context, config.Config, [SeedLen]byte) (client.Wallet, error) {
		return fake, nil
	})

	w, err := BuildFromSeed(context.Background(), testConfig(t), GenesisSeed())
	require.Error(t, err)
	require.Same(t, fake, w)

	CloseWallet(w)
	require.Equal(t, int32(1), atomic.LoadInt32(&fake.closes))
}

func TestBuildFromSeedStreamClosedBeforeFirstState(t *testing.T) {
	fake := &fakeWallet{states: make(chan client.WalletState)}
	close(fake.states)
	withFakeBuild(t, func(context.Context, config.Config, [SeedLen]byte) (client.Wallet, error) {
		return fake, nil
	})

	w, err := BuildFromSeed(context.Background(), testConfig(t), GenesisSeed())
	require.Error(t, err)
	require.Same(t, fake, w)
}

func TestBuildAndWaitForFundsAlreadyFunded(t *testing.T) {
	fake := &fakeWallet{states: make(chan client.WalletState, 1)}
	fake.states <- client.WalletState{
		Address:  "veil1abc",
		Balances: map[string]uint64{client.NativeToken: 77},
	}
	withFakeBuild(t, func(context.Context, config.Config, [SeedLen]byte) (client.Wallet, error) {
		return fake, nil
	})

	_, balance, err := BuildAndWaitForFunds(context.Background(), testConfig(t), GenesisSeed())
	require.NoError(t, err)
	require.Equal(t, uint64(77), balance)
}

func TestBuildAndWaitForFundsBlocksUntilFunded(t *testing.T) {
	fake := &fakeWallet{states: make(chan client.WalletState, 2)}
	fake.states <- client.WalletState{Address: "veil1abc"} // empty first state
	fake.states <- snapshot(true, 500)
	withFakeBuild(t, func(context.Context, config.Config, [SeedLen]byte) (client.Wallet, error) {
		return fake, nil
	})

	_, balance, err := BuildAndWaitForFunds(context.Background(), testConfig(t), GenesisSeed())
	require.NoError(t, err)
	require.Equal(t, uint64(500), balance)
}
