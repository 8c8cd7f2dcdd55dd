package security

import (
	"crypto/rand"
	"errors"
	"math/big"
)

var (
	errNegativeLength = errors.New("length must be non-negative")
	errEmptyAlphabet  = errors.New("alphabet must not be empty")
)

// RandomString draws length characters from alphabet using crypto/rand.
// rand.Int keeps each draw unbiased regardless of the alphabet size.
func RandomString(length int, alphabet string) (string, error) {
	switch {
	case length < 0:
		return "", errNegativeLength
	case length == 0:
		return "", nil
	case len(alphabet) == 0:
		return "", errEmptyAlphabet
	}

	bound := big.NewInt(int64(len(alphabet)))
	out := make([]byte, length)
	for i := range out {
		pick, err := rand.Int(rand.Reader, bound)
		if err != nil {
			return "", err
		}
		out[i] = alphabet[pick.Int64()]
	}

	return string(out), nil
}
