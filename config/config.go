package config

import (
	"strings"

	logging "github.com/ipfs/go-log/v2"
	"github.com/spf13/viper"
	"golang.org/x/xerrors"
)

var log = logging.Logger("config")

// NetworkID selects the address/transaction encoding rules for a network.
// It travels inside Config and is passed explicitly to every derivation
// call; there is no process-global network state.
type NetworkID byte

const (
	Standalone NetworkID = iota
	Testnet
)

func (n NetworkID) String() string {
	switch n {
	case Standalone:
		return "standalone"
	case Testnet:
		return "testnet"
	default:
		return "unknown"
	}
}

// AddressPrefix is the human-readable prefix for addresses encoded under
// this network's rules.
func (n NetworkID) AddressPrefix() string {
	if n == Testnet {
		return "tveil"
	}
	return "veil"
}

// Config is the static service bundle for one network: where the indexer
// answers queries, where it pushes wallet state events, where the node
// RPC lives, and where proofs get generated. The proof server stays on
// loopback even against a remote network.
type Config struct {
	Indexer     string `yaml:"indexer"`
	IndexerWS   string `yaml:"indexerWS"`
	Node        string `yaml:"node"`
	ProofServer string `yaml:"proofServer"`

	Network NetworkID `yaml:"-"`
}

var networks = map[string]Config{
	"standalone": {
		Indexer:     "http://127.0.0.1:8088/api/v1/graphql",
		IndexerWS:   "ws://127.0.0.1:8088/api/v1/graphql/ws",
		Node:        "http://127.0.0.1:9944",
		ProofServer: "http://127.0.0.1:6300",
		Network:     Standalone,
	},
	"testnet": {
		Indexer:     "https://indexer.testnet.veil.network/api/v1/graphql",
		IndexerWS:   "wss://indexer.testnet.veil.network/api/v1/graphql/ws",
		Node:        "https://rpc.testnet.veil.network",
		ProofServer: "http://127.0.0.1:6300",
		Network:     Testnet,
	},
}

// ForNetwork maps a network name onto its endpoint bundle. The name set
// is closed; anything else is an error. No network I/O happens here.
func ForNetwork(name string) (Config, error) {
	cfg, ok := networks[strings.ToLower(name)]
	if !ok {
		return Config{}, xerrors.Errorf("invalid network: %s", name)
	}

	applyOverrides(name, &cfg)
	return cfg, nil
}

// Names returns the accepted network names.
func Names() []string {
	return []string{"standalone", "testnet"}
}

// applyOverrides lets a local wallet.yaml repoint individual endpoints,
// e.g. at a dockerised standalone stack on non-default ports. Absence of
// the file is the normal case.
func applyOverrides(name string, cfg *Config) {
	v := viper.New()
	v.SetConfigName("wallet")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./conf")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Warnf("ignoring unreadable wallet.yaml: %v", err)
		}
		return
	}

	for key, dst := range map[string]*string{
		name + ".indexer":     &cfg.Indexer,
		name + ".indexerWS":   &cfg.IndexerWS,
		name + ".node":        &cfg.Node,
		name + ".proofServer": &cfg.ProofServer,
	} {
		if v.IsSet(key) {
			*dst = v.GetString(key)
			log.Infow("endpoint override", "key", key, "value", *dst)
		}
	}
}
