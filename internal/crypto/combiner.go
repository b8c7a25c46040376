package crypto

import (
	"lukechampine.com/blake3"
)

// Combiner folds per-algorithm KEM shared secrets into one secret. The
// order of Add calls is significant and must follow ciphertext wire order
// on both sides.
type Combiner struct {
	h *blake3.Hasher
	n int
}

// NewCombiner returns a combiner keyed with [CombinerSalt].
func NewCombiner() *Combiner {
	h := blake3.New(SharedSecretSize, nil)
	h.Write(CombinerSalt[:])
	return &Combiner{h: h}
}

// Add absorbs one per-algorithm shared secret.
func (c *Combiner) Add(secret []byte) {
	c.h.Write(secret)
	c.n++
}

// Len returns the number of secrets absorbed.
func (c *Combiner) Len() int {
	return c.n
}

// Sum returns the combined shared secret.
func (c *Combiner) Sum() []byte {
	return c.h.Sum(make([]byte, 0, SharedSecretSize))
}

// AddressHash returns blake3-256(AddressTag || combinedPublicKey).
func AddressHash(combinedPublicKey []byte) [AddressSize]byte {
	h := blake3.New(AddressSize, nil)
	h.Write([]byte{AddressTag})
	h.Write(combinedPublicKey)

	var out [AddressSize]byte
	h.Sum(out[:0])
	return out
}
