package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/guileen/keyguess/input"
	"github.com/guileen/keyguess/inspect"
	"github.com/guileen/keyguess/protocol/api"
	"github.com/guileen/keyguess/storage"
)

func newScanCmd(a *app) *cobra.Command {
	var (
		dataDir string
		prefix  string
		limit   int
	)
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Decode the keys and values of a pebble store",
		Long: `Open a pebble store read-only and run every decoder over the keys and
values under a prefix, in key order.`,
		Example: `  keyguess scan --data-dir ./capture --prefix "[116]" --limit 20 -o text`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pc := a.cfg.PebbleConfig()
			if dataDir != "" {
				pc.Path = dataDir
			}
			pc.ReadOnly = true

			var p []byte
			if prefix != "" {
				var err error
				if p, err = input.Parse(prefix); err != nil {
					return err
				}
			}

			store, err := storage.Open(pc)
			if err != nil {
				return err
			}
			defer store.Close()

			entries, err := store.Inspect(cmd.Context(), inspect.New(), p, limit)
			if err != nil {
				return err
			}
			if entries == nil {
				entries = []storage.Entry{}
			}
			resp := api.ScanResponse{Entries: entries, Count: len(entries)}
			return a.print(cmd, resp, func(w io.Writer) {
				for _, e := range entries {
					fmt.Fprintf(w, "== key\n")
					printReport(w, e.KeyReport)
					fmt.Fprintf(w, "-- value\n")
					printReport(w, e.ValueReport)
				}
				fmt.Fprintf(w, "%d entries\n", len(entries))
			})
		},
	}
	cmd.Flags().StringVarP(&dataDir, "data-dir", "d", "", "pebble directory (defaults to storage.path)")
	cmd.Flags().StringVar(&prefix, "prefix", "", "key prefix, in any input notation")
	cmd.Flags().IntVar(&limit, "limit", 100, "maximum entries, 0 for all")
	return cmd
}
