package cmd

import (
	"context"
	"fmt"
	"io"
	"math/big"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/mahdiidarabi/textbook-rsa/pkg/rsaattack"
	"github.com/mahdiidarabi/textbook-rsa/pkg/rsakey"
)

func init() {
	rootCmd.AddCommand(commonModulusCmd)
	commonModulusCmd.Flags().BoolP("generate", "g", false, "encrypt --message under two keys sharing a modulus and recover it")
	commonModulusCmd.Flags().StringP("message", "m", "attack at dawn", "message for --generate")
	commonModulusCmd.Flags().StringP("file", "f", "", "ciphertext set file (JSON or CSV)")
	commonModulusCmd.Flags().String("format", "", "ciphertext set format: json or csv (default from file extension)")
	commonModulusCmd.Flags().String("n", "", "shared modulus")
	commonModulusCmd.Flags().String("e1", "", "first public exponent")
	commonModulusCmd.Flags().String("c1", "", "first ciphertext")
	commonModulusCmd.Flags().String("e2", "", "second public exponent")
	commonModulusCmd.Flags().String("c2", "", "second ciphertext")
}

// commonModulusCmd represents the common-modulus command
var commonModulusCmd = &cobra.Command{
	Use:     "common-modulus",
	Aliases: []string{"cm"},
	Short:   "Recover a message encrypted twice under one modulus",
	Example: `  # Demo with a generated key pair
  ❯ rsatool common-modulus --generate --message "attack at dawn"

  # Recover from a file of {n, e, c} records
  ❯ rsatool common-modulus --file ciphertexts.json

  # Recover from two ciphertexts
  ❯ rsatool common-modulus --n 3233 --e1 17 --c1 2790 --e2 7 --c2 1317`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()

		result, err := recoverPlaintext(cmd, w)
		if err != nil {
			return err
		}

		fmt.Fprintf(w, "\n[+] Recovered message from ciphertexts %d and %d:\n", result.Pair[0], result.Pair[1])
		fmt.Fprintf(w, "    m=%s\n", formatInt(result.Message))
		if c, err := codec(); err == nil {
			if text, err := c.Decode(result.Message); err == nil {
				fmt.Fprintf(w, "    text: %q\n", text)
			}
		}
		if result.Verified {
			fmt.Fprintln(w, "    ✓ Verified against every ciphertext!")
		}
		return nil
	},
}

// recoverPlaintext runs the attack on whichever input the flags select.
func recoverPlaintext(cmd *cobra.Command, w io.Writer) (*rsaattack.PlaintextResult, error) {
	generate, _ := cmd.Flags().GetBool("generate")
	file, _ := cmd.Flags().GetString("file")
	ctx := context.Background()
	client := rsaattack.NewClient()

	switch {
	case generate && file != "":
		return nil, errors.New("cannot combine --generate with --file")
	case generate:
		msg, _ := cmd.Flags().GetString("message")
		set, err := generateCiphertextSet(w, msg)
		if err != nil {
			return nil, err
		}
		return client.RecoverPlaintext(ctx, set)
	case file != "":
		format, _ := cmd.Flags().GetString("format")
		p, err := setParser(file, format)
		if err != nil {
			return nil, err
		}
		return client.WithParser(p).RecoverPlaintextFromFile(ctx, file)
	}

	v, err := intFlags(cmd, "n", "e1", "c1", "e2", "c2")
	if err != nil {
		return nil, err
	}
	if err := checkPositive(map[string]*big.Int{"n": v[0], "e1": v[1], "e2": v[3]}); err != nil {
		return nil, err
	}
	return client.RecoverPlaintext(ctx, &rsaattack.CiphertextSet{
		N: v[0],
		Ciphertexts: []*rsaattack.Ciphertext{
			{E: v[1], C: v[2]},
			{E: v[3], C: v[4]},
		},
	})
}

// generateCiphertextSet encrypts msg under two keys sharing a modulus.
func generateCiphertextSet(w io.Writer, msg string) (*rsaattack.CiphertextSet, error) {
	c, err := codec()
	if err != nil {
		return nil, err
	}
	m, err := c.Encode(msg)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode message")
	}

	g := rsakey.NewGenerator().WithConfig(messageKeyConfig(m))
	k1, k2, err := g.GenerateCommonModulusPair()
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate keys")
	}

	set := &rsaattack.CiphertextSet{N: k1.N}
	for i, key := range []*rsakey.Key{k1, k2} {
		var session rsakey.Session
		session.SetKey(key)
		ct, err := session.Encrypt(m)
		if err != nil {
			return nil, err
		}
		set.Ciphertexts = append(set.Ciphertexts, &rsaattack.Ciphertext{E: key.E, C: ct})
		fmt.Fprintf(w, "e%d=%s c%d=%s\n", i+1, formatInt(key.E), i+1, formatInt(ct))
	}
	fmt.Fprintf(w, "N=%s\n", formatInt(k1.N))
	return set, nil
}

func setParser(file, format string) (rsaattack.CiphertextSetParser, error) {
	if format == "" {
		format = strings.TrimPrefix(strings.ToLower(filepath.Ext(file)), ".")
	}
	switch format {
	case "json":
		return &rsaattack.JSONParser{}, nil
	case "csv":
		return &rsaattack.CSVParser{}, nil
	default:
		return nil, errors.Errorf("unknown ciphertext set format %q (use json or csv)", format)
	}
}
