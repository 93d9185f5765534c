package cmd

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/guileen/keyguess/input"
	"github.com/guileen/keyguess/inspect"
)

func newGuessCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "guess <input>",
		Short: "Try every decoder on the input",
		Long: `Run every decoder over the input and report the ones that succeed:
row key, memcomparable key, write column family key, write record and
leading varint.`,
		Example: `  keyguess guess 7480000000000000355f728000000000000001
  keyguess guess "[80, 0, 118, 1, 0]" -o text`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := input.Parse(args[0])
			if err != nil {
				return err
			}
			report := inspect.New().Guess(raw)
			return a.print(cmd, report, func(w io.Writer) { printReport(w, report) })
		},
	}
}
