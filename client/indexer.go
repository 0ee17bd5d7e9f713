package client

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"golang.org/x/xerrors"
)

// verbosity hint forwarded to the indexer with the subscription; keeps
// the stream's own diagnostics quiet.
const streamVerbosity = "warn"

const (
	msgSubscribe = "subscribe"
	msgNext      = "next"
	msgComplete  = "complete"
	msgError     = "error"
)

type streamMessage struct {
	ID      string          `json:"id"`
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type subscribePayload struct {
	Address   string `json:"address"`
	Verbosity string `json:"verbosity"`
}

func dialIndexer(ctx context.Context, wsAddr string) (*websocket.Conn, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, wsAddr, nil)
	return conn, err
}

// walletConn is the concrete Wallet over the indexer's wallet-state
// subscription. One reader goroutine owns the connection after Start
// and pushes decoded snapshots onto states.
type walletConn struct {
	address string
	conn    *websocket.Conn
	states  chan WalletState

	closeOnce sync.Once
	done      chan struct{}
}

func newWalletConn(address string, conn *websocket.Conn) *walletConn {
	return &walletConn{
		address: address,
		conn:    conn,
		states:  make(chan WalletState, 1),
		done:    make(chan struct{}),
	}
}

func (w *walletConn) States() <-chan WalletState {
	return w.states
}

// Start subscribes to state snapshots for the wallet's address and
// launches the read loop. The SDK-side sync begins here.
func (w *walletConn) Start(ctx context.Context) error {
	payload, err := json.Marshal(subscribePayload{
		Address:   w.address,
		Verbosity: streamVerbosity,
	})
	if err != nil {
		return err
	}

	sub := streamMessage{
		ID:      uuid.NewString(),
		Type:    msgSubscribe,
		Payload: payload,
	}

	if err := w.conn.WriteJSON(&sub); err != nil {
		return xerrors.Errorf("subscribing to wallet state: %w", err)
	}

	go w.readLoop()
	return nil
}

func (w *walletConn) readLoop() {
	defer close(w.states)

	for {
		var msg streamMessage
		if err := w.conn.ReadJSON(&msg); err != nil {
			select {
			case <-w.done:
				// expected: Close tore down the connection
			default:
				log.Warnf("wallet state stream ended: %v", err)
			}
			return
		}

		switch msg.Type {
		case msgNext:
			var st WalletState
			if err := json.Unmarshal(msg.Payload, &st); err != nil {
				log.Warnf("dropping undecodable state snapshot: %v", err)
				continue
			}
			select {
			case w.states <- st:
			case <-w.done:
				return
			}
		case msgComplete:
			return
		case msgError:
			log.Errorf("indexer stream error: %s", msg.Payload)
			return
		}
	}
}

// Close tears down the subscription. Safe to call once per handle; the
// reader goroutine exits on the closed connection.
func (w *walletConn) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.done)
		err = w.conn.Close()
	})
	return err
}
