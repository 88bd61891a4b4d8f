package passwordreset

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// generateCode draws a uniform random number in [0, 10^length) from a
// cryptographically secure source and zero-pads it to a fixed width, so
// "000042" is a valid six-digit code.
func generateCode(length int) (string, error) {
	upper := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(length)), nil)

	n, err := rand.Int(rand.Reader, upper)
	if err != nil {
		return "", fmt.Errorf("failed to generate reset code: %w", err)
	}

	return fmt.Sprintf("%0*d", length, n), nil
}
