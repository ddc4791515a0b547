package root

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/yanqian/healthdash/internal/bootstrap"
	"github.com/yanqian/healthdash/internal/domain/report"
	"github.com/yanqian/healthdash/internal/infra/artifactstore"
	"github.com/yanqian/healthdash/internal/interface/cli"
)

func newReportCmd() *cobra.Command {
	var (
		month   string
		withPDF bool
		withCSV bool
		outDir  string
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Generate a monthly report and optionally save it as PDF or CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCore(cmd, true, func(ctx context.Context, core *bootstrap.Core) error {
				if month == "" {
					month = core.Aggregator.CurrentMonth()
				}
				if err := core.Aggregator.GenerateReportFor(ctx, month); err != nil {
					return err
				}
				generated, _ := core.Aggregator.Views().Report()
				show(cmd, cli.Report(generated.Report))

				var formats []report.Format
				if withPDF {
					formats = append(formats, report.FormatPDF)
				}
				if withCSV {
					formats = append(formats, report.FormatCSV)
				}
				local := artifactstore.NewDirStore(outDir)
				for _, format := range formats {
					artifact, err := core.Exporter.Export(ctx, format)
					if err != nil {
						return err
					}
					path, err := local.Save(ctx, artifact)
					if err != nil {
						return err
					}
					show(cmd, cli.LabelValue("Saved", path))
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&month, "month", "m", "", "Month to report (YYYY-MM, default current)")
	cmd.Flags().BoolVar(&withPDF, "pdf", false, "Save the report as PDF")
	cmd.Flags().BoolVar(&withCSV, "csv", false, "Save the report entries as CSV")
	cmd.Flags().StringVarP(&outDir, "out", "o", ".", "Directory for saved files")
	return cmd
}
