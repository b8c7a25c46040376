package crypto

import (
	"crypto/rand"
	"fmt"
	"io"
)

// randReader is the random source used for seed entropy and encapsulation.
// It can be overridden for testing.
var randReader io.Reader = rand.Reader

// RandomBytes returns n bytes from the package random source.
func RandomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := io.ReadFull(randReader, b); err != nil {
		return nil, fmt.Errorf("read random: %w", err)
	}
	return b, nil
}
