package auth

import (
	"crypto/rand"
	"math/big"
	"strconv"
	"time"
)

// OTPTTL is how long a password-reset code stays valid.
const OTPTTL = 10 * time.Minute

// GenerateOTP returns a six digit code in [100000, 999999].
func GenerateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(n.Int64()+100000, 10), nil
}
