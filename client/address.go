package client

import (
	"crypto/ed25519"

	"github.com/mr-tron/base58"
	"golang.org/x/crypto/blake2b"

	"github.com/veilnet/create-wallet/config"
)

// DeriveAddress computes the wallet address for a seed under a given
// network's encoding rules. Derivation is deterministic: the same seed
// on the same network always yields the same address.
func DeriveAddress(seed [32]byte, network config.NetworkID) string {
	key := ed25519.NewKeyFromSeed(seed[:])
	pub := key.Public().(ed25519.PublicKey)

	sum := blake2b.Sum256(pub)

	payload := make([]byte, 0, 21)
	payload = append(payload, byte(network))
	payload = append(payload, sum[:20]...)

	return network.AddressPrefix() + "1" + base58.Encode(payload)
}
