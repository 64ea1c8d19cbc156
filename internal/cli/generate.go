package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/acrovato/gmshcfd/internal/domain"
	"github.com/acrovato/gmshcfd/internal/infra/airfoilfile"
	"github.com/acrovato/gmshcfd/internal/infra/buildstore"
	"github.com/acrovato/gmshcfd/internal/infra/config"
	"github.com/acrovato/gmshcfd/internal/infra/geoscript"
	"github.com/acrovato/gmshcfd/internal/infra/logger"
	"github.com/acrovato/gmshcfd/internal/infra/workspace"
	"github.com/acrovato/gmshcfd/internal/usecase"
)

func generateCmd() *cobra.Command {
	var casePath string
	var wsRoot string
	var clean bool
	var noReport bool
	var format string

	c := &cobra.Command{
		Use:   "generate",
		Short: "Build the domain topology for a case and write the mesher script",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cs, err := config.LoadCase(casePath)
			if err != nil {
				return err
			}

			outDir, err := workspace.Prepare(wsRoot, cs.Name, clean)
			if err != nil {
				return err
			}

			started := time.Now().UTC()
			model := geoscript.NewModel(cs.Name)
			uc := usecase.NewGenerateModel(airfoilfile.NewLoader(), model, logger.L())

			topo, err := uc.Execute(cmd.Context(), cs)
			if err != nil {
				return err
			}

			geoPath := filepath.Join(outDir, cs.Name+".geo")
			f, err := os.Create(geoPath)
			if err != nil {
				return &domain.OpError{Op: "cli.write_geo", Kind: domain.KindExecution, Path: geoPath, Err: err}
			}
			if err := model.WriteGeo(f); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return &domain.OpError{Op: "cli.write_geo", Kind: domain.KindExecution, Path: geoPath, Err: err}
			}

			report := buildReport(cs, topo, model, started)
			if !noReport {
				id, err := buildstore.NewJSONStore(outDir).SaveReport(report)
				if err != nil {
					return err
				}
				report.ID = id
			}

			return printBuild(os.Stdout, report, geoPath, format)
		},
	}

	c.Flags().StringVarP(&casePath, "case", "c", "", "case file (required)")
	c.Flags().StringVarP(&wsRoot, "workspace", "w", "", "workspace root (default \"workspace\")")
	c.Flags().BoolVar(&clean, "clean", false, "clean the case output directory first")
	c.Flags().BoolVar(&noReport, "no-report", false, "do not save a build report under reports/")
	c.Flags().StringVar(&format, "format", "pretty", "output format: pretty|json")

	_ = c.MarkFlagRequired("case")
	return c
}

func buildReport(cs domain.Case, topo domain.ModelTopology, model *geoscript.Model, started time.Time) domain.BuildReport {
	report := domain.BuildReport{
		CaseName:   cs.Name,
		DomainType: cs.Domain.Type,
		StartedAt:  started,
		FinishedAt: time.Now().UTC(),
		Entities:   model.Stats(),
		Groups:     model.Groups(),
	}
	wakeSurfaces := map[string]int{}
	for _, wk := range topo.Wakes {
		wakeSurfaces[wk.Name] = len(wk.Surfaces)
	}
	for _, w := range topo.Wings {
		report.Wings = append(report.Wings, domain.WingReport{
			Name:         w.Name,
			Sections:     w.Sections,
			SharpTE:      w.SharpTE,
			Surfaces:     len(w.Surfaces),
			WakeSurfaces: wakeSurfaces[w.Name+"Wake"],
		})
	}
	return report
}

func printBuild(w io.Writer, report domain.BuildReport, geoPath, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		payload := map[string]any{
			"script": geoPath,
			"report": report,
		}
		return enc.Encode(payload)
	case "pretty", "":
		printPrettyBuild(w, report, geoPath)
		return nil
	default:
		return fmt.Errorf("unsupported format %q (expected pretty|json)", format)
	}
}

func printPrettyBuild(w io.Writer, report domain.BuildReport, geoPath string) {
	th := DefaultTheme()

	body := th.Title.Render(fmt.Sprintf("%s (%s)", report.CaseName, report.DomainType)) + "\n\n"
	for _, wing := range report.Wings {
		te := "blunt TE"
		if wing.SharpTE {
			te = "sharp TE"
		}
		body += fmt.Sprintf("%s  %d sections, %s, %d surfaces", wing.Name, wing.Sections, te, wing.Surfaces)
		if wing.WakeSurfaces > 0 {
			body += fmt.Sprintf(", %d wake surfaces", wing.WakeSurfaces)
		}
		body += "\n"
	}
	body += "\n"
	body += th.Label.Render("entities") + fmt.Sprintf("  %d points, %d curves, %d surfaces, %d volumes\n",
		report.Entities.Points, report.Entities.Curves, report.Entities.Surfaces, report.Entities.Volumes)
	body += th.Label.Render("groups") + "    "
	for i, g := range report.Groups {
		if i > 0 {
			body += ", "
		}
		body += g.Name
	}
	body += "\n"
	body += th.Label.Render("script") + "    " + geoPath
	if report.ID != "" {
		body += "\n" + th.Label.Render("report") + "    " + report.ID
	}

	fmt.Fprintln(w, th.Card.Render(body))
}
