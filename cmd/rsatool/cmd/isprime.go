package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mahdiidarabi/textbook-rsa/pkg/nmath"
)

func init() {
	rootCmd.AddCommand(isprimeCmd)
	isprimeCmd.Flags().Bool("stages", false, "show the outcome of each primality stage")
}

// isprimeCmd represents the isprime command
var isprimeCmd = &cobra.Command{
	Use:           "isprime <n>...",
	Short:         "Test integers for primality (Baillie-PSW)",
	Args:          cobra.MinimumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		stages, _ := cmd.Flags().GetBool("stages")
		w := cmd.OutOrStdout()

		for _, arg := range args {
			n, err := parseArg(arg, "integer")
			if err != nil {
				return err
			}

			verdict := "composite"
			if nmath.IsPrime(n) {
				verdict = "prime"
			}
			fmt.Fprintf(w, "%s is %s\n", formatInt(n), verdict)

			if stages && n.Sign() > 0 && n.Bit(0) == 1 {
				fmt.Fprintf(w, "    trial division: %s\n", nmath.TrialDivision(n))
				fmt.Fprintf(w, "    miller-rabin base 2: %t\n", nmath.MillerRabinBase2(n))
				square := nmath.IsPerfectSquare(n)
				fmt.Fprintf(w, "    perfect square: %t\n", square)
				if !square {
					if d, err := nmath.ChooseLucasD(n); err == nil {
						fmt.Fprintf(w, "    lucas D: %s\n", d)
					}
				}
			}
		}
		return nil
	},
}
