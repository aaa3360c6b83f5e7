package encoding

import (
	"math/big"
	"sort"

	"github.com/pkg/errors"
)

// Codec turns a message into an integer and back.
type Codec interface {
	Encode(msg string) (*big.Int, error)
	Decode(x *big.Int) (string, error)
}

// ASCIICodec uses the decimal ASCII-digit encoding.
type ASCIICodec struct{}

// Encode implements Codec.
func (ASCIICodec) Encode(msg string) (*big.Int, error) {
	return ASCIIToInt(msg)
}

// Decode implements Codec.
func (ASCIICodec) Decode(x *big.Int) (string, error) {
	if x.Sign() < 0 {
		return "", errors.Errorf("cannot decode negative integer %s", x)
	}
	return IntToASCII(x), nil
}

// OctetCodec uses the big-endian octet-string encoding. Decode emits the
// minimal number of octets.
type OctetCodec struct{}

// Encode implements Codec.
func (OctetCodec) Encode(msg string) (*big.Int, error) {
	return OS2IP([]byte(msg)), nil
}

// Decode implements Codec.
func (OctetCodec) Decode(x *big.Int) (string, error) {
	b, err := I2OSP(x, (x.BitLen()+7)/8)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

var codecs = map[string]Codec{
	"ascii": ASCIICodec{},
	"octet": OctetCodec{},
}

// Lookup returns the codec registered under name.
func Lookup(name string) (Codec, error) {
	c, ok := codecs[name]
	if !ok {
		return nil, errors.Errorf("unknown encoding %q (available: %v)", name, Names())
	}
	return c, nil
}

// Names lists the registered codec names in sorted order.
func Names() []string {
	names := make([]string, 0, len(codecs))
	for name := range codecs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
