package cmd

import (
	"fmt"
	"math/big"

	"github.com/apex/log"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/mahdiidarabi/textbook-rsa/pkg/rsakey"
)

func init() {
	rootCmd.AddCommand(encryptCmd)
	encryptCmd.Flags().String("n", "", "modulus (generate a key when unset)")
	encryptCmd.Flags().String("e", "", "public exponent")
	encryptCmd.Flags().Bool("int", false, "treat the message as an integer instead of text")
}

// encryptCmd represents the encrypt command
var encryptCmd = &cobra.Command{
	Use:   "encrypt <message>",
	Short: "Encrypt a message with textbook RSA",
	Long: `Encrypt a message with textbook RSA.

Without --n and --e a fresh key is generated, sized so the modulus exceeds
the encoded message.`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		asInt, _ := cmd.Flags().GetBool("int")

		var m *big.Int
		if asInt {
			var err error
			if m, err = parseArg(args[0], "message"); err != nil {
				return err
			}
		} else {
			c, err := codec()
			if err != nil {
				return err
			}
			if m, err = c.Encode(args[0]); err != nil {
				return errors.Wrap(err, "failed to encode message")
			}
		}

		n, err := intFlag(cmd, "n")
		if err != nil {
			return err
		}
		e, err := intFlag(cmd, "e")
		if err != nil {
			return err
		}

		if err := checkPositive(map[string]*big.Int{"n": n, "e": e}); err != nil {
			return err
		}

		var session rsakey.Session
		generated := n == nil
		switch {
		case n != nil && e != nil:
			session.SetKey(&rsakey.Key{N: n, E: e})
		case n != nil || e != nil:
			return errors.New("--n and --e must be given together")
		default:
			config := messageKeyConfig(m)
			log.WithFields(log.Fields{
				"bits":   config.Bits,
				"e-bits": config.ExponentBits,
			}).Debug("generating key for message")

			if err := session.Generate(rsakey.NewGenerator().WithConfig(config)); err != nil {
				return errors.Wrap(err, "failed to generate key")
			}
		}

		ct, err := session.Encrypt(m)
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "m=%s\n", formatInt(m))
		if generated {
			printKey(w, session.Key)
		}
		fmt.Fprintf(w, "ct=%s\n", formatInt(ct))
		return nil
	},
}
