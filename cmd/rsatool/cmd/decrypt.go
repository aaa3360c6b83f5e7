package cmd

import (
	"fmt"
	"math/big"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/mahdiidarabi/textbook-rsa/pkg/rsakey"
)

func init() {
	rootCmd.AddCommand(decryptCmd)
	decryptCmd.Flags().String("n", "", "modulus")
	decryptCmd.Flags().String("d", "", "private exponent")
	decryptCmd.Flags().String("p", "", "first prime (with --q and --e instead of --n and --d)")
	decryptCmd.Flags().String("q", "", "second prime")
	decryptCmd.Flags().String("e", "", "public exponent")
	decryptCmd.Flags().Bool("int", false, "print the plaintext as an integer instead of text")
}

// decryptCmd represents the decrypt command
var decryptCmd = &cobra.Command{
	Use:           "decrypt <ciphertext>",
	Short:         "Decrypt a textbook RSA ciphertext",
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ct, err := parseArg(args[0], "ciphertext")
		if err != nil {
			return err
		}

		key, err := decryptionKey(cmd)
		if err != nil {
			return err
		}

		var session rsakey.Session
		session.SetKey(key)
		m, err := session.Decrypt(ct)
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		if asInt, _ := cmd.Flags().GetBool("int"); asInt {
			fmt.Fprintf(w, "m=%s\n", formatInt(m))
			return nil
		}

		c, err := codec()
		if err != nil {
			return err
		}
		msg, err := c.Decode(m)
		if err != nil {
			return errors.Wrap(err, "failed to decode plaintext")
		}
		fmt.Fprintf(w, "Decrypted message: %s\n", msg)
		return nil
	},
}

// decryptionKey reads either --n/--d or --p/--q/--e.
func decryptionKey(cmd *cobra.Command) (*rsakey.Key, error) {
	if cmd.Flags().Changed("p") || cmd.Flags().Changed("q") {
		v, err := intFlags(cmd, "p", "q", "e")
		if err != nil {
			return nil, err
		}
		if err := checkPositive(map[string]*big.Int{"p": v[0], "q": v[1], "e": v[2]}); err != nil {
			return nil, err
		}
		return rsakey.FromPrimes(v[0], v[1], v[2])
	}

	v, err := intFlags(cmd, "n", "d")
	if err != nil {
		return nil, err
	}
	if err := checkPositive(map[string]*big.Int{"n": v[0], "d": v[1]}); err != nil {
		return nil, err
	}
	return &rsakey.Key{N: v[0], D: v[1]}, nil
}
