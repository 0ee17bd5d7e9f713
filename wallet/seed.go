package wallet

import (
	"crypto/rand"
	"encoding/hex"

	"golang.org/x/xerrors"
)

// SeedLen is the byte length of wallet seed material.
const SeedLen = 32

// Seed is the secret material a wallet's keys and address derive from.
// It is displayed hex-encoded and never persisted by this tool; the
// user is responsible for recording it.
type Seed [SeedLen]byte

func NewRandomSeed() (Seed, error) {
	var s Seed
	if _, err := rand.Read(s[:]); err != nil {
		return Seed{}, xerrors.Errorf("generating seed: %w", err)
	}
	return s, nil
}

// ParseSeed decodes a 64-character hex seed.
func ParseSeed(s string) (Seed, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return Seed{}, xerrors.Errorf("seed is not valid hex: %w", err)
	}
	if len(b) != SeedLen {
		return Seed{}, xerrors.Errorf("seed must be %d bytes, got %d", SeedLen, len(b))
	}

	var seed Seed
	copy(seed[:], b)
	return seed, nil
}

// GenesisSeed is the well-known seed of the standalone network's
// pre-funded genesis wallet.
func GenesisSeed() Seed {
	var s Seed
	s[SeedLen-1] = 1
	return s
}

func (s Seed) Bytes() [SeedLen]byte {
	return s
}

func (s Seed) String() string {
	return hex.EncodeToString(s[:])
}
