package wallet

import (
	"context"
	"time"

	"golang.org/x/xerrors"

	"github.com/veilnet/create-wallet/client"
)

// throttleInterval bounds how often snapshots are evaluated and logged
// while waiting for funds. Dropped snapshots cost nothing: the stream
// is monotonically informative toward sync, so a later snapshot always
// reflects at least as much as a dropped one.
const throttleInterval = 10 * time.Second

// AwaitFunds blocks until the wallet reports a synced state with a
// strictly positive native-token balance, and returns that balance.
// It is a passive subscriber over the state stream with first-match
// semantics: exactly one value resolves the wait, then it returns.
// There is no internal timeout; cancel ctx to abort.
func AwaitFunds(ctx context.Context, states <-chan client.WalletState) (uint64, error) {
	return awaitFunds(ctx, states, throttleInterval)
}

func awaitFunds(ctx context.Context, states <-chan client.WalletState, throttle time.Duration) (uint64, error) {
	var lastEval time.Time

	for {
		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		case st, ok := <-states:
			if !ok {
				return 0, xerrors.New("state stream closed while waiting for funds")
			}

			if !lastEval.IsZero() && time.Since(lastEval) < throttle {
				continue
			}
			lastEval = time.Now()

			log.Infow("waiting for funds",
				"sourceGap", st.SourceGap(),
				"applyGap", st.ApplyGap(),
				"transactions", st.TxCount())

			// The balance is only trustworthy once the local view has
			// fully caught up; partially-synced snapshots are observed
			// but never resolve the wait.
			if !st.Synced() {
				continue
			}

			if balance := st.Balance(client.NativeToken); balance > 0 {
				return balance, nil
			}
		}
	}
}
