package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/guileen/keyguess/codec"
	"github.com/guileen/keyguess/errors"
	"github.com/guileen/keyguess/input"
	"github.com/guileen/keyguess/protocol/api"
)

func newDecodeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decode",
		Short: "Decode memcomparable bytes, varints or fixed-width integers",
	}

	cmd.AddCommand(&cobra.Command{
		Use:     "memcomparable <input>",
		Short:   "Decode memcomparable groups",
		Example: `  keyguess decode memcomparable 010203000000000000fa`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, notation, err := input.Detect(args[0])
			if err != nil {
				return err
			}
			out, err := codec.DecodeBytes(raw)
			if err != nil {
				return err
			}
			return a.printBytes(cmd, out, notation)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "varint <input>",
		Short: "Decode the varint at the front of the input",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := input.Parse(args[0])
			if err != nil {
				return err
			}
			v, n, err := codec.DecodeUvarint(raw)
			if err != nil {
				return err
			}
			resp := api.VarintDecodeResponse{Value: v, Width: n}
			return a.print(cmd, resp, func(w io.Writer) {
				fmt.Fprintf(w, "%d (%d bytes)\n", v, n)
			})
		},
	})

	var order string
	endian := &cobra.Command{
		Use:   "endian <input>",
		Short: "Decode 8 fixed-width bytes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := input.Parse(args[0])
			if err != nil {
				return err
			}
			v, err := codec.DecodeUint64(codec.ByteOrder(order), raw)
			if err != nil {
				return err
			}
			return a.print(cmd, api.EndianDecodeResponse{Value: v}, func(w io.Writer) {
				fmt.Fprintln(w, v)
			})
		},
	}
	endian.Flags().StringVar(&order, "order", string(codec.BigEndian), "byte order: big or little")
	cmd.AddCommand(endian)

	return cmd
}

func errValidation(format string, args ...any) error {
	return errors.Errorf(errors.ErrCodeValidation, format, args...)
}
