package cmd

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/guileen/keyguess/input"
	"github.com/guileen/keyguess/mvcc"
	"github.com/guileen/keyguess/protocol/api"
)

func newWriteCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "write",
		Short: "Parse or build MVCC write records",
	}

	var trace bool
	parse := &cobra.Command{
		Use:     "parse <input>",
		Short:   "Parse a write record",
		Example: `  keyguess write parse "[80, 0, 118, 1, 0]" --trace`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := input.Parse(args[0])
			if err != nil {
				return err
			}
			var tr *mvcc.Trace
			if trace {
				tr = &mvcc.Trace{}
			}
			rec, n, err := mvcc.ParseWritePrefix(raw, tr)
			if err != nil {
				return err
			}
			resp := api.WriteParseResponse{Write: rec, Unparsed: len(raw) - n}
			if tr != nil {
				resp.Spans = tr.Spans
			}
			return a.print(cmd, resp, func(w io.Writer) {
				printWrite(w, rec)
				printSpans(w, resp.Spans)
			})
		},
	}
	parse.Flags().BoolVar(&trace, "trace", false, "show which bytes produced each field")
	cmd.AddCommand(parse)

	var (
		writeType          string
		startTS            uint64
		shortValue         string
		overlappedRollback bool
		gcFence            uint64
	)
	encode := &cobra.Command{
		Use:     "encode",
		Short:   "Build a write record",
		Example: `  keyguess write encode --type Put --start-ts 425 --short-value "[1, 2]"`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var wt mvcc.WriteType
			if err := wt.UnmarshalText([]byte(writeType)); err != nil {
				return err
			}
			var short []byte
			if cmd.Flags().Changed("short-value") {
				var err error
				if short, err = input.Parse(shortValue); err != nil {
					return err
				}
			}
			rec, err := mvcc.NewWrite(wt, mvcc.TimeStamp(startTS), short)
			if err != nil {
				return err
			}
			rec.HasOverlappedRollback = overlappedRollback
			if cmd.Flags().Changed("gc-fence") {
				rec.SetGCFence(mvcc.TimeStamp(gcFence))
			}
			return a.printBytes(cmd, rec.ToBytes(), "")
		},
	}
	flags := encode.Flags()
	flags.StringVar(&writeType, "type", "Put", "write type: Put, Delete, Lock or Rollback")
	flags.Uint64Var(&startTS, "start-ts", 0, "start timestamp")
	flags.StringVar(&shortValue, "short-value", "", "inline value, in any input notation")
	flags.BoolVar(&overlappedRollback, "overlapped-rollback", false, "set the overlapped rollback flag")
	flags.Uint64Var(&gcFence, "gc-fence", 0, "gc fence timestamp")
	cmd.AddCommand(encode)

	return cmd
}
