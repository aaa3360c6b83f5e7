package cmd

import (
	"github.com/apex/log"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(keygenCmd)
}

// keygenCmd represents the keygen command
var keygenCmd = &cobra.Command{
	Use:           "keygen",
	Short:         "Generate an RSA key",
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := newGenerator()
		if err != nil {
			return err
		}
		log.WithFields(log.Fields{
			"bits":   g.Config().Bits,
			"e-bits": g.Config().ExponentBits,
		}).Debug("generating key")

		key, err := g.Generate()
		if err != nil {
			return errors.Wrap(err, "failed to generate key")
		}

		printKey(cmd.OutOrStdout(), key)
		return nil
	},
}
