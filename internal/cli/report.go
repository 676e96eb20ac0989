package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/didacticiel/Gpresence/internal/domain/report"
	"github.com/didacticiel/Gpresence/internal/pkg/export"
	serviceReport "github.com/didacticiel/Gpresence/internal/service/report"
	"github.com/spf13/cobra"
)

type reportList struct {
	Reports []report.Report       `json:"rapports"`
	Summary serviceReport.Summary `json:"resume"`
}

func newReportsCommand(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "reports",
		Aliases: []string{"rapports"},
		Short:   "Consulter et générer les rapports",
	}
	cmd.AddCommand(
		newReportsListCommand(a),
		newReportsCreateCommand(a),
		newReportsDeleteCommand(a),
		newReportsExportCommand(a),
	)
	return cmd
}

func addReportFilterFlags(cmd *cobra.Command, filter *report.ReportFilter) {
	cmd.Flags().StringVar(&filter.Type, "type", "", "all, mensuel, hebdomadaire, annuel or personnalise")
	cmd.Flags().StringVar(&filter.Search, "search", "", "Text to look for in the content")
}

func newReportsListCommand(a *App) *cobra.Command {
	var filter report.ReportFilter

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Lister les rapports",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.require(); err != nil {
				return err
			}

			reports, err := a.Reports.List(cmd.Context(), filter)
			if err != nil {
				return err
			}
			if reports == nil {
				reports = []report.Report{}
			}
			list := reportList{Reports: reports, Summary: serviceReport.Summarize(reports)}

			return a.render(list, func(w io.Writer) {
				if len(reports) == 0 {
					fmt.Fprintln(w, "Aucun rapport trouvé")
					return
				}
				fmt.Fprintln(w, "ID\tTYPE\tEMPLOYÉ\tPÉRIODE\tCRÉÉ LE\tCONTENU")
				for _, r := range reports {
					fmt.Fprintf(w, "%d\t%s\t%s\t%s → %s\t%s\t%s\n",
						r.ID, r.Type.Label(), r.Author.Name, r.StartDate, r.EndDate,
						r.CreatedAt.Local().Format("2006-01-02"), excerpt(r.Content, 40))
				}
				fmt.Fprintf(w, "\nTotal: %d\n", list.Summary.Total)
			})
		},
	}

	addReportFilterFlags(cmd, &filter)
	return cmd
}

func newReportsCreateCommand(a *App) *cobra.Command {
	var req report.CreateReportRequest

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Générer un rapport",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.require(); err != nil {
				return err
			}
			created, err := a.Reports.Create(cmd.Context(), req)
			if err != nil {
				return err
			}
			return a.render(created, func(w io.Writer) {
				fmt.Fprintf(w, "Rapport %s créé (id %d)\n", created.Type.Label(), created.ID)
			})
		},
	}

	cmd.Flags().StringVar(&req.Type, "type", string(report.TypeMonthly), "mensuel, hebdomadaire, annuel or personnalise")
	cmd.Flags().StringVar(&req.StartDate, "from", "", "First day (YYYY-MM-DD)")
	cmd.Flags().StringVar(&req.EndDate, "to", "", "Last day (YYYY-MM-DD)")
	cmd.Flags().StringVar(&req.Content, "content", "", "Report content")
	cmd.MarkFlagRequired("from")
	cmd.MarkFlagRequired("to")
	cmd.MarkFlagRequired("content")
	return cmd
}

func newReportsDeleteCommand(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Supprimer un rapport",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.require(); err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := a.Reports.Delete(cmd.Context(), id); err != nil {
				return err
			}
			a.println(fmt.Sprintf("Rapport %d supprimé", id))
			return nil
		},
	}
}

func newReportsExportCommand(a *App) *cobra.Command {
	var (
		filter report.ReportFilter
		file   string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Exporter les rapports au format xlsx",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.require(); err != nil {
				return err
			}
			reports, err := a.Reports.List(cmd.Context(), filter)
			if err != nil {
				return err
			}
			err = export.ToFile(file, func(w io.Writer) error {
				return export.Reports(w, reports)
			})
			if err != nil {
				return fmt.Errorf("failed to export reports: %w", err)
			}
			a.println(fmt.Sprintf("%d rapport(s) exporté(s) vers %s", len(reports), file))
			return nil
		},
	}

	addReportFilterFlags(cmd, &filter)
	cmd.Flags().StringVarP(&file, "file", "f", "rapports.xlsx", "Destination file")
	return cmd
}

func excerpt(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}
