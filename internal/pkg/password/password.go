package password

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrHashingFailed    = errors.New("pin hashing failed")
	ErrComparisonFailed = errors.New("pin comparison failed")
	ErrInvalidPIN       = errors.New("invalid pin")
)

const DefaultCost = bcrypt.DefaultCost

// HashPIN hashes the store owner's admin PIN for storage in configuration.
func HashPIN(pin string) (string, error) {
	if pin == "" {
		return "", ErrInvalidPIN
	}

	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(pin), DefaultCost)
	if err != nil {
		return "", ErrHashingFailed
	}

	return string(hashedBytes), nil
}

func ComparePIN(hashedPIN, pin string) error {
	if hashedPIN == "" || pin == "" {
		return ErrInvalidPIN
	}

	err := bcrypt.CompareHashAndPassword([]byte(hashedPIN), []byte(pin))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrComparisonFailed
		}
		return err
	}

	return nil
}
