package service

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

var codeRange = big.NewInt(1000000)

// GenerateCode returns a confirmation code uniformly distributed over 000000-999999.
func GenerateCode() (string, error) {
	n, err := rand.Int(rand.Reader, codeRange)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n), nil
}
