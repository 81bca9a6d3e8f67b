package pkg

import (
	"fmt"
	"strings"
)

const maxAddressHexLen = 64

// NormalizeAddress validates a ledger account address (0x followed by 1..64 hex digits)
// and returns its lower-cased form. Differently cased spellings of one address map to
// the same normalized value.
func NormalizeAddress(address string) (string, error) {
	addr := strings.ToLower(strings.TrimSpace(address))
	if !strings.HasPrefix(addr, "0x") {
		return "", fmt.Errorf("address %q must start with 0x", address)
	}

	digits := addr[2:]
	if len(digits) == 0 || len(digits) > maxAddressHexLen {
		return "", fmt.Errorf("address %q must have between 1 and %d hex digits", address, maxAddressHexLen)
	}
	for _, r := range digits {
		if !isHexDigit(r) {
			return "", fmt.Errorf("address %q contains non hex character %q", address, r)
		}
	}

	return addr, nil
}

func isHexDigit(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f')
}
