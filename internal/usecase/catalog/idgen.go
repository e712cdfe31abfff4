package catalog

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// Identifier generation for the account and card catalog. Formats
// follow the Turkish retail-banking conventions the bank exposes:
// 10-digit account numbers, TR-prefixed IBANs with fixed bank and
// branch codes, and masked card numbers that only reveal the last four
// digits.

const (
	bankCode   = "0001"
	branchCode = "0001"
	// Check digits are not computed; the catalog issues identifiers,
	// it does not validate foreign ones.
	checkDigits = "32"
)

func randomDigits(n int) string {
	max := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(n)), nil)
	v, err := rand.Int(rand.Reader, max)
	if err != nil {
		// crypto/rand only fails if the platform entropy source is
		// broken, at which point nothing in this process is safe.
		panic(fmt.Sprintf("catalog: entropy source unavailable: %v", err))
	}
	return fmt.Sprintf("%0*d", n, v)
}

// generateAccountNumber returns a 10-digit account number.
func generateAccountNumber() string {
	return randomDigits(10)
}

// generateIBAN returns a Turkish-format IBAN for a new account.
func generateIBAN() string {
	return fmt.Sprintf("TR%s %s %s %s", checkDigits, bankCode, branchCode, randomDigits(11))
}

// generateCardNumber returns a masked card number; the real PAN never
// exists in this system.
func generateCardNumber() string {
	return "4*** **** **** " + randomDigits(4)
}
