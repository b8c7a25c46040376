// Package hybrid combines several signature algorithms into one signature
// scheme, and several key-encapsulation mechanisms into one KEM, so that an
// attacker has to break every constituent algorithm to break the whole.
//
// Everything is derived from a seed. A seed records which algorithms are
// selected, in order, and carries 48 bytes of secret entropy. Secret keys are
// never stored: each operation re-derives the keypair it needs from the seed
// and wipes it afterwards.
//
// Basic usage:
//
//	suite := hybrid.Default()
//
//	seed, err := suite.GenerateSeed(
//	    []string{"ml-dsa-65", "ed25519"},
//	    []string{"ml-kem-768", "x25519"},
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	pub, err := suite.CombinedPublicKey(hybrid.Signature, seed)
//	sig, err := suite.Sign(seed, []byte("hello"))
//	err = suite.VerifySignature([]byte("hello"), pub, sig)
//
// Combined public keys, signatures and ciphertexts are sequences of records,
// each tagged with the algorithm descriptor it belongs to. Verification
// requires a valid signature for every key in the combined public key, and
// the combined KEM secret hashes every per-algorithm secret in ciphertext
// order.
package hybrid
