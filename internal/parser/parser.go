// Package parser reads integers from command-line arguments and decoded
// JSON/CSV fields.
package parser

import (
	"encoding/json"
	"math"
	"math/big"
	"strings"

	"github.com/pkg/errors"
)

// ParseInt parses a signed integer written in decimal, hex with a 0x prefix
// or binary with a 0b prefix. Surrounding whitespace and '_' digit
// separators are ignored.
func ParseInt(s string) (*big.Int, error) {
	str := strings.ReplaceAll(strings.TrimSpace(s), "_", "")

	neg := false
	if strings.HasPrefix(str, "-") {
		neg = true
		str = str[1:]
	} else if strings.HasPrefix(str, "+") {
		str = str[1:]
	}

	base := 10
	switch {
	case strings.HasPrefix(str, "0x"), strings.HasPrefix(str, "0X"):
		base, str = 16, str[2:]
	case strings.HasPrefix(str, "0b"), strings.HasPrefix(str, "0B"):
		base, str = 2, str[2:]
	}

	if str == "" || strings.HasPrefix(str, "-") || strings.HasPrefix(str, "+") {
		return nil, errors.Errorf("invalid number format: %q", s)
	}

	z, ok := new(big.Int).SetString(str, base)
	if !ok {
		return nil, errors.Errorf("invalid number format: %q", s)
	}
	if neg {
		z.Neg(z)
	}
	return z, nil
}

// ParseValue parses a big integer from a decoded field: a string in any
// form ParseInt accepts, a json.Number, or a Go integer. Floats are only
// accepted when they hold an exact integer.
func ParseValue(val interface{}) (*big.Int, error) {
	switch v := val.(type) {
	case string:
		return ParseInt(v)

	case json.Number:
		return ParseInt(string(v))

	case float64:
		if math.IsInf(v, 0) || math.IsNaN(v) || v != math.Trunc(v) {
			return nil, errors.Errorf("invalid number format: %v", v)
		}
		z, _ := new(big.Float).SetFloat64(v).Int(nil)
		return z, nil

	case int64:
		return big.NewInt(v), nil

	case int:
		return big.NewInt(int64(v)), nil

	case uint64:
		return new(big.Int).SetUint64(v), nil

	case *big.Int:
		if v == nil {
			return nil, errors.New("nil integer")
		}
		return new(big.Int).Set(v), nil

	default:
		return nil, errors.Errorf("unsupported type: %T", val)
	}
}
