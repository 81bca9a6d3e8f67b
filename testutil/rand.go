package testutil

import (
	"crypto/rand"
	"errors"
	"math/big"
	"strings"

	"github.com/brianvoe/gofakeit/v7"
)

const alphaNum = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// RandomAlphaNum generates a random alphanumeric string of the given length.
func RandomAlphaNum(length int) (string, error) {
	if length <= 0 {
		return "", errors.New("length must be greater than 0")
	}

	var builder strings.Builder
	builder.Grow(length)
	for range length {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(alphaNum))))
		if err != nil {
			return "", err
		}
		builder.WriteByte(alphaNum[num.Int64()])
	}

	return builder.String(), nil
}

// RandomAddress returns a random full length account address in mixed case,
// the way wallets tend to display them.
func RandomAddress() string {
	const hexDigits = "0123456789abcdefABCDEF"

	var builder strings.Builder
	builder.WriteString("0x")
	for range 64 {
		builder.WriteByte(hexDigits[gofakeit.IntN(len(hexDigits))])
	}
	return builder.String()
}
