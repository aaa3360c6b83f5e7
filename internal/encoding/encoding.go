// Package encoding converts between message strings and the integers RSA
// operates on.
package encoding

import (
	"math/big"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ErrEncodingRange is returned when an integer does not fit the requested
// octet length.
var ErrEncodingRange = errors.New("integer too large for octet length")

// OS2IP interprets b as a big-endian unsigned integer.
func OS2IP(b []byte) *big.Int {
	return new(big.Int).SetBytes(b)
}

// I2OSP writes x as exactly length big-endian octets, left-padded with zeros.
func I2OSP(x *big.Int, length int) ([]byte, error) {
	if x.Sign() < 0 {
		return nil, errors.Errorf("cannot encode negative integer %s", x)
	}
	if length < 0 || x.BitLen() > 8*length {
		return nil, errors.Wrapf(ErrEncodingRange, "%d-bit integer into %d octets", x.BitLen(), length)
	}
	return x.FillBytes(make([]byte, length)), nil
}

// ASCIIToInt concatenates the decimal ASCII codes of s into one integer, so
// "Hi" becomes 72105. Only printable ASCII is accepted.
func ASCIIToInt(s string) (*big.Int, error) {
	if s == "" {
		return nil, errors.New("cannot encode empty string")
	}

	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < ' ' || c > '~' {
			return nil, errors.Errorf("non-printable character %q at offset %d", c, i)
		}
		sb.WriteString(strconv.Itoa(int(c)))
	}

	x, _ := new(big.Int).SetString(sb.String(), 10)
	return x, nil
}

// IntToASCII reverses ASCIIToInt. Digits are consumed three at a time when
// the group starts with '1' and two at a time otherwise; a trailing lone
// digit is dropped.
func IntToASCII(x *big.Int) string {
	digits := x.String()
	var sb strings.Builder
	for j := 0; j+1 < len(digits); {
		width := 2
		if digits[j] == '1' {
			width = 3
		}
		if j+width > len(digits) {
			width = len(digits) - j
		}
		code, _ := strconv.Atoi(digits[j : j+width])
		sb.WriteByte(byte(code))
		j += width
	}
	return sb.String()
}
