package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func NewRootCommand(opts Options) *cobra.Command {
	a := &App{opts: opts}

	cmd := &cobra.Command{
		Use:           "gpresence",
		Short:         "Tableau de bord des présences employés",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			switch a.format {
			case formatTable, formatJSON, formatYAML:
			default:
				return fmt.Errorf("unsupported output format %q (table, json, yaml)", a.format)
			}
			return a.init()
		},
	}

	cmd.Version = opts.Version
	cmd.SetVersionTemplate("gpresence {{.Version}}\n")
	cmd.PersistentFlags().StringVarP(&a.format, "output", "o", formatTable, "Output format: table, json or yaml")

	cmd.AddCommand(
		newLoginCommand(a),
		newRegisterCommand(a),
		newLogoutCommand(a),
		newWhoAmICommand(a),
		newDashboardCommand(a),
		newPresencesCommand(a),
		newEmployeesCommand(a),
		newReportsCommand(a),
	)
	return cmd
}
