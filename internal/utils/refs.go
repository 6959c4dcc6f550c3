package utils

import (
	"strings"

	"github.com/google/uuid"
)

// BookingReference generates a human-readable reference like BK3F82A1C9.
// Uniqueness is probabilistic; the insert path carries no collision retry.
func BookingReference() string {
	return "BK" + randomHex(8)
}

// TransactionID generates a payment transaction id like TXN9D4E21C07A5B.
func TransactionID() string {
	return "TXN" + randomHex(12)
}

func randomHex(n int) string {
	hex := strings.ReplaceAll(uuid.NewString(), "-", "")
	return strings.ToUpper(hex[:n])
}
