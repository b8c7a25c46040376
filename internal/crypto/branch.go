package crypto

import (
	"lukechampine.com/blake3"

	"github.com/vaultsandbox/hybrid-go/scheme"
)

// BranchSeed derives the per-algorithm sub-seed:
//
//	blake3-256(purpose tag || scheme id || config id || entropy)
//
// The purpose tag keeps a signature and a KEM that share a descriptor from
// ever sharing key material.
func BranchSeed(entropy []byte, purpose scheme.Purpose, d scheme.Descriptor) [BranchSeedSize]byte {
	h := blake3.New(BranchSeedSize, nil)
	h.Write([]byte{purpose.Tag(), d.ID, d.Config})
	h.Write(entropy)

	var out [BranchSeedSize]byte
	h.Sum(out[:0])
	return out
}
