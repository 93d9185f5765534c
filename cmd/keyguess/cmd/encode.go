package cmd

import (
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/guileen/keyguess/codec"
	"github.com/guileen/keyguess/input"
	"github.com/guileen/keyguess/protocol/api"
)

func newEncodeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Encode bytes or integers",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "memcomparable <input>",
		Short: "Encode bytes in memcomparable groups",
		Example: `  keyguess encode memcomparable "[1, 2, 3]"
  keyguess encode memcomparable 7480000000000000355f728000000000000001`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, notation, err := input.Detect(args[0])
			if err != nil {
				return err
			}
			return a.printBytes(cmd, codec.EncodeBytes(raw), notation)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "varint <n>",
		Short: "Encode an unsigned integer as a varint",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := parseUint(args[0])
			if err != nil {
				return err
			}
			return a.printBytes(cmd, codec.EncodeUvarint(n), "")
		},
	})

	var order string
	endian := &cobra.Command{
		Use:   "endian <n>",
		Short: "Encode an unsigned integer as 8 fixed-width bytes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := parseUint(args[0])
			if err != nil {
				return err
			}
			out, err := codec.EncodeUint64(codec.ByteOrder(order), n)
			if err != nil {
				return err
			}
			return a.printBytes(cmd, out, "")
		},
	}
	endian.Flags().StringVar(&order, "order", string(codec.BigEndian), "byte order: big or little")
	cmd.AddCommand(endian)

	return cmd
}

func (a *app) printBytes(cmd *cobra.Command, b []byte, notation input.Notation) error {
	resp := api.BytesResponse{Output: api.NewBytes(b), Notation: string(notation)}
	return a.print(cmd, resp, func(w io.Writer) { printBytes(w, resp.Output) })
}

func parseUint(s string) (uint64, error) {
	n, err := strconv.ParseUint(s, 0, 64)
	if err != nil {
		return 0, errValidation("invalid unsigned integer %q", s)
	}
	return n, nil
}
