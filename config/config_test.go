package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestForNetworkStandalone(t *testing.T) {
	cfg, err := ForNetwork("standalone")
	require.NoError(t, err)

	require.Equal(t, Standalone, cfg.Network)
	require.Equal(t, "http://127.0.0.1:8088/api/v1/graphql", cfg.Indexer)
	require.Equal(t, "ws://127.0.0.1:8088/api/v1/graphql/ws", cfg.IndexerWS)
	require.Equal(t, "http://127.0.0.1:9944", cfg.Node)
	require.Equal(t, "http://127.0.0.1:6300", cfg.ProofServer)
}

func TestForNetworkTestnet(t *testing.T) {
	cfg, err := ForNetwork("testnet")
	require.NoError(t, err)

	require.Equal(t, Testnet, cfg.Network)
	require.Contains(t, cfg.Indexer, "testnet.veil.network")
	// proofs stay local even against the remote network
	require.Equal(t, "http://127.0.0.1:6300", cfg.ProofServer)
}

func TestForNetworkInvalid(t *testing.T) {
	for _, name := range []string{"mainnet", "", "devnet"} {
		_, err := ForNetwork(name)
		require.Error(t, err, name)
	}
}

func TestNetworkIDString(t *testing.T) {
	require.Equal(t, "standalone", Standalone.String())
	require.Equal(t, "testnet", Testnet.String())
}

func TestOverridesReplaceOnlyPresentKeys(t *testing.T) {
	dir := t.TempDir()
	yaml := "standalone:\n  node: http://127.0.0.1:19944\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "wallet.yaml"), []byte(yaml), 0o644))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := ForNetwork("standalone")
	require.NoError(t, err)
	require.Equal(t, "http://127.0.0.1:19944", cfg.Node)
	// untouched keys keep their static defaults
	require.Equal(t, "http://127.0.0.1:8088/api/v1/graphql", cfg.Indexer)
}
