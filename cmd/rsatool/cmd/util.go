package cmd

import (
	"fmt"
	"io"
	"math/big"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mahdiidarabi/textbook-rsa/internal/encoding"
	"github.com/mahdiidarabi/textbook-rsa/internal/parser"
	"github.com/mahdiidarabi/textbook-rsa/pkg/rsakey"
)

// formatInt prints x in hex unless --decimal is set.
func formatInt(x *big.Int) string {
	if viper.GetBool("decimal") {
		return x.String()
	}
	if x.Sign() < 0 {
		return "-0x" + new(big.Int).Neg(x).Text(16)
	}
	return "0x" + x.Text(16)
}

// keyConfig builds a key configuration from --bits and --e-bits.
func keyConfig() (rsakey.KeyConfig, error) {
	config := rsakey.DefaultKeyConfig()
	config.Bits = viper.GetInt("bits")
	if config.Bits < 4 {
		return config, errors.Errorf("--bits must be at least 4, got %d", config.Bits)
	}
	config.ExponentBits = viper.GetInt("e-bits")
	if config.ExponentBits == 0 {
		config.ExponentBits = rsakey.ExponentBitsFor(config.Bits)
	}
	return config, nil
}

func newGenerator() (*rsakey.Generator, error) {
	config, err := keyConfig()
	if err != nil {
		return nil, err
	}
	return rsakey.NewGenerator().WithConfig(config), nil
}

func codec() (encoding.Codec, error) {
	return encoding.Lookup(viper.GetString("encoding"))
}

// parseArg parses a positional integer argument.
func parseArg(arg, what string) (*big.Int, error) {
	x, err := parser.ParseInt(arg)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid %s", what)
	}
	return x, nil
}

// intFlag parses an integer flag, returning nil when it is unset.
func intFlag(cmd *cobra.Command, name string) (*big.Int, error) {
	s, err := cmd.Flags().GetString(name)
	if err != nil {
		return nil, err
	}
	if s == "" {
		return nil, nil
	}
	x, err := parser.ParseInt(s)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid --%s", name)
	}
	return x, nil
}

// intFlags parses integer flags that must all be set.
func intFlags(cmd *cobra.Command, names ...string) ([]*big.Int, error) {
	values := make([]*big.Int, len(names))
	for i, name := range names {
		x, err := intFlag(cmd, name)
		if err != nil {
			return nil, err
		}
		if x == nil {
			return nil, errors.Errorf("--%s is required", name)
		}
		values[i] = x
	}
	return values, nil
}

func printKey(w io.Writer, key *rsakey.Key) {
	fmt.Fprintf(w, "p=%s\n", formatInt(key.P))
	fmt.Fprintf(w, "q=%s\n", formatInt(key.Q))
	fmt.Fprintf(w, "N=%s\n", formatInt(key.N))
	fmt.Fprintf(w, "e=%s\n", formatInt(key.E))
	fmt.Fprintf(w, "d=%s\n", formatInt(key.D))
}

// checkPositive rejects moduli and exponents that cannot be used with PowerMod.
func checkPositive(values map[string]*big.Int) error {
	for name, x := range values {
		if x != nil && x.Sign() <= 0 {
			return errors.Errorf("--%s must be positive, got %s", name, x)
		}
	}
	return nil
}

// messageKeyConfig sizes a key so its modulus exceeds m. A larger --bits
// wins; --e-bits overrides the derived exponent size.
func messageKeyConfig(m *big.Int) rsakey.KeyConfig {
	config := rsakey.ConfigFor(m)
	if bits := viper.GetInt("bits"); bits > config.Bits {
		config.Bits = bits
		config.ExponentBits = rsakey.ExponentBitsFor(bits)
	}
	if eBits := viper.GetInt("e-bits"); eBits > 0 {
		config.ExponentBits = eBits
	}
	return config
}
