package wallet

import (
	"context"

	logging "github.com/ipfs/go-log/v2"
	"golang.org/x/xerrors"

	"github.com/veilnet/create-wallet/client"
	"github.com/veilnet/create-wallet/config"
)

var log = logging.Logger("wallet")

// build is swapped out in tests.
var build = client.Build

// BuildFresh generates a new random seed and constructs a running
// wallet from it. It returns after the first observed state snapshot,
// whatever the balance. The returned handle may be non-nil even on
// error; the caller owns the single close attempt either way.
func BuildFresh(ctx context.Context, cfg config.Config) (client.Wallet, Seed, error) {
	seed, err := NewRandomSeed()
	if err != nil {
		return nil, Seed{}, err
	}

	log.Infow("generated wallet seed", "seed", seed.String())

	w, _, err := buildAndStart(ctx, cfg, seed)
	return w, seed, err
}

// BuildFromSeed constructs a running wallet from a known seed, for
// restoring or connecting to an existing wallet.
func BuildFromSeed(ctx context.Context, cfg config.Config, seed Seed) (client.Wallet, error) {
	w, _, err := buildAndStart(ctx, cfg, seed)
	return w, err
}

// BuildAndWaitForFunds constructs a running wallet from a known seed
// and, if the first observed native balance is zero, blocks until
// funds arrive. It returns the funded balance.
func BuildAndWaitForFunds(ctx context.Context, cfg config.Config, seed Seed) (client.Wallet, uint64, error) {
	w, first, err := buildAndStart(ctx, cfg, seed)
	if err != nil {
		return w, 0, err
	}

	balance := first.Balance(client.NativeToken)
	if balance == 0 {
		log.Info("wallet is not funded, waiting for funds")
		balance, err = AwaitFunds(ctx, w.States())
		if err != nil {
			return w, 0, err
		}
	}

	log.Infow("wallet is funded", "balance", balance)
	return w, balance, nil
}

// buildAndStart runs the shared construction sequence: build against
// the configuration's endpoints, start synchronization, then await the
// first state snapshot. On failure after construction the handle is
// still returned so the caller can close it.
func buildAndStart(ctx context.Context, cfg config.Config, seed Seed) (client.Wallet, client.WalletState, error) {
	w, err := build(ctx, cfg, seed.Bytes())
	if err != nil {
		return nil, client.WalletState{}, xerrors.Errorf("building wallet: %w", err)
	}

	if err := w.Start(ctx); err != nil {
		return w, client.WalletState{}, xerrors.Errorf("starting wallet: %w", err)
	}

	var first client.WalletState
	select {
	case st, ok := <-w.States():
		if !ok {
			return w, client.WalletState{}, xerrors.New("state stream closed before first snapshot")
		}
		first = st
	case <-ctx.Done():
		return w, client.WalletState{}, ctx.Err()
	}

	log.Infow("wallet ready",
		"address", first.Address,
		"balance", first.Balance(client.NativeToken))

	return w, first, nil
}
