package cmd

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/guileen/keyguess/codec"
	"github.com/guileen/keyguess/input"
	"github.com/guileen/keyguess/protocol/api"
)

func newRecordCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "record",
		Short: "Parse or build row keys (t{table}_r{row})",
	}

	cmd.AddCommand(&cobra.Command{
		Use:     "parse <input>",
		Short:   "Parse a row key",
		Example: `  keyguess record parse 7480000000000000355f728000000000000001`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := input.Parse(args[0])
			if err != nil {
				return err
			}
			rec, err := codec.ParseRecord(raw)
			if err != nil {
				return err
			}
			return a.print(cmd, api.RecordResponse{Record: rec, Key: rec.String()}, func(w io.Writer) {
				fmt.Fprintf(w, "table_id: %d\nrow_id:   %d\n", rec.TableID, rec.RowID)
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "encode <table_id> <row_id>",
		Short: "Build a row key",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return errValidation("invalid table id %q", args[0])
			}
			row, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil {
				return errValidation("invalid row id %q", args[1])
			}
			return a.printBytes(cmd, codec.EncodeRecord(codec.Record{TableID: table, RowID: row}), "")
		},
	})

	return cmd
}
