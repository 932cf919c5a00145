package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bft-labs/envtap/internal/domain"
	"github.com/bft-labs/envtap/pkg/codec"
)

func newDecodeCmd(c *cli) *cobra.Command {
	var dump bool
	cmd := &cobra.Command{
		Use:   "decode <frame-token>",
		Short: "Decode a frame token and print its shape and pixel statistics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			enc, err := domain.ParseEncodedFrame(args[0])
			if err != nil {
				return err
			}
			frame, err := codec.Decode(enc)
			if err != nil {
				return err
			}

			lo, hi, sum := uint8(255), uint8(0), 0
			for _, p := range frame.Pix {
				lo = min(lo, p)
				hi = max(hi, p)
				sum += int(p)
			}
			shape := frame.Shape()
			fmt.Fprintf(c.out, "shape %dx%dx%d\n", shape[0], shape[1], shape[2])
			fmt.Fprintf(c.out, "bytes %d (encoded %d)\n", frame.Len(), len(enc))
			if frame.Len() > 0 {
				fmt.Fprintf(c.out, "min %d max %d mean %.2f\n", lo, hi, float64(sum)/float64(frame.Len()))
			}
			if dump {
				for row := 0; row < frame.Height; row++ {
					start := row * frame.Width * frame.Channels
					fmt.Fprintln(c.out, frame.Pix[start:start+frame.Width*frame.Channels])
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&dump, "dump", false, "print the pixel rows")
	return cmd
}
