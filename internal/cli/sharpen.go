package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/acrovato/gmshcfd/internal/infra/airfoilfile"
)

func sharpenCmd() *cobra.Command {
	var nChange int

	c := &cobra.Command{
		Use:   "sharpen <airfoil.dat>",
		Short: "Convert a blunt trailing edge to a sharp one",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			out, err := airfoilfile.Sharpen(args[0], nChange)
			if err != nil {
				return err
			}
			fmt.Fprintln(os.Stdout, "wrote "+out)
			return nil
		},
	}

	c.Flags().IntVar(&nChange, "points", 10, "number of points to blend near the trailing edge")
	return c
}
