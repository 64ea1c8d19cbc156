package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/acrovato/gmshcfd/internal/infra/airfoilfile"
	"github.com/acrovato/gmshcfd/internal/infra/config"
	"github.com/acrovato/gmshcfd/internal/usecase"
)

func validateCmd() *cobra.Command {
	var casePath string

	c := &cobra.Command{
		Use:   "validate",
		Short: "Check a case file and its airfoils without building geometry",
		RunE: func(cmd *cobra.Command, _ []string) error {
			th := DefaultTheme()

			cs, err := config.LoadCase(casePath)
			if err != nil {
				return err
			}

			uc := usecase.NewValidateCase(airfoilfile.NewLoader())
			wings, err := uc.Execute(cmd.Context(), cs)
			if err != nil {
				return err
			}

			fmt.Fprintln(os.Stdout, th.OK.Render("valid: ")+th.Title.Render(cs.Name))
			for _, w := range wings {
				te := "blunt TE"
				if w.SharpTE {
					te = "sharp TE"
				}
				fmt.Fprintf(os.Stdout, "  %s  %d sections, %s\n", w.Name, w.Sections, te)
			}
			return nil
		},
	}

	c.Flags().StringVarP(&casePath, "case", "c", "", "case file (required)")
	_ = c.MarkFlagRequired("case")
	return c
}
