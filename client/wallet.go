package client

import (
	"context"
	"encoding/json"

	logging "github.com/ipfs/go-log/v2"
	"golang.org/x/xerrors"

	"github.com/veilnet/create-wallet/config"
)

var log = logging.Logger("client")

// NativeToken is the canonical identifier of the chain's base currency
// inside a wallet's balances map.
const NativeToken = "veil"

// SyncProgress reports how far behind the wallet's local view is.
// SourceGap counts ledger events the indexer has not streamed yet,
// ApplyGap counts streamed events the wallet has not applied yet.
type SyncProgress struct {
	ApplyGap  uint64 `json:"applyGap"`
	SourceGap uint64 `json:"sourceGap"`
	Synced    bool   `json:"synced"`
}

// WalletState is one snapshot from the wallet's state stream. Snapshots
// arrive continuously while the wallet syncs against the indexer.
type WalletState struct {
	Address      string            `json:"address"`
	Balances     map[string]uint64 `json:"balances"`
	Progress     *SyncProgress     `json:"syncProgress"`
	Transactions []json.RawMessage `json:"transactionHistory"`
}

// Synced reports whether the snapshot was taken from a fully caught-up
// view. A snapshot without progress information counts as not synced.
func (s WalletState) Synced() bool {
	return s.Progress != nil && s.Progress.Synced
}

func (s WalletState) ApplyGap() uint64 {
	if s.Progress == nil {
		return 0
	}
	return s.Progress.ApplyGap
}

func (s WalletState) SourceGap() uint64 {
	if s.Progress == nil {
		return 0
	}
	return s.Progress.SourceGap
}

// Balance returns the amount held for token, zero when absent.
func (s WalletState) Balance(token string) uint64 {
	return s.Balances[token]
}

func (s WalletState) TxCount() int {
	return len(s.Transactions)
}

// Wallet is a running wallet instance. Start must be called once before
// reading States; Close must be attempted exactly once by the owner.
type Wallet interface {
	// States is the push stream of state snapshots. The channel is
	// closed when the stream ends or the wallet is closed.
	States() <-chan WalletState
	Start(ctx context.Context) error
	Close() error
}

// Build constructs a wallet bound to the configuration's endpoints and
// the given seed. It verifies the proof server is reachable and dials
// the indexer event stream, but does not subscribe until Start.
func Build(ctx context.Context, cfg config.Config, seed [32]byte) (Wallet, error) {
	if err := Ping(ctx, cfg.ProofServer); err != nil {
		return nil, xerrors.Errorf("proof server unavailable: %w", err)
	}

	addr := DeriveAddress(seed, cfg.Network)

	conn, err := dialIndexer(ctx, cfg.IndexerWS)
	if err != nil {
		return nil, xerrors.Errorf("dialing indexer stream %s: %w", cfg.IndexerWS, err)
	}

	log.Debugw("wallet built", "address", addr, "network", cfg.Network)
	return newWalletConn(addr, conn), nil
}
