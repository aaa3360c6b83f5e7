package cmd

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/mahdiidarabi/textbook-rsa/pkg/nmath"
)

func init() {
	rootCmd.AddCommand(nextprimeCmd)
	nextprimeCmd.Flags().IntP("count", "c", 1, "number of consecutive primes to print")
}

// nextprimeCmd represents the nextprime command
var nextprimeCmd = &cobra.Command{
	Use:           "nextprime <n>",
	Short:         "Print the primes following n",
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := parseArg(args[0], "integer")
		if err != nil {
			return err
		}
		count, _ := cmd.Flags().GetInt("count")
		if count < 1 {
			return errors.Errorf("--count must be at least 1, got %d", count)
		}

		w := cmd.OutOrStdout()
		for i := 0; i < count; i++ {
			n = nmath.NextPrime(n)
			fmt.Fprintln(w, formatInt(n))
		}
		return nil
	},
}
