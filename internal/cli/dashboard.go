package cli

import (
	"fmt"
	"io"

	"github.com/didacticiel/Gpresence/internal/domain/dashboard"
	"github.com/didacticiel/Gpresence/internal/domain/presence"
	"github.com/didacticiel/Gpresence/internal/domain/user"
	"github.com/spf13/cobra"
)

type dashboardView struct {
	dashboard.Home
	Own *presence.Record `json:"ma_presence,omitempty"`
}

func newDashboardCommand(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Afficher l'accueil du rôle connecté",
		RunE: func(cmd *cobra.Command, args []string) error {
			identity, err := a.require()
			if err != nil {
				return err
			}

			view := dashboardView{Home: dashboard.HomeFor(identity)}
			if identity.Can(user.PermissionPresenceSelfService) {
				own, err := a.board().Reconciler().LoadOwnPresence(cmd.Context())
				if err != nil {
					return err
				}
				view.Own = own.Record
			}

			return a.render(view, func(w io.Writer) {
				fmt.Fprintln(w, view.Title)
				fmt.Fprintln(w, view.Greeting)
				fmt.Fprintln(w, view.Summary)
				if identity.Can(user.PermissionPresenceSelfService) {
					fmt.Fprintln(w)
					writeOwnPresence(w, view.Own)
				}
				fmt.Fprintln(w)
				fmt.Fprintln(w, "Raccourcis")
				for _, s := range view.Shortcuts {
					fmt.Fprintf(w, "  %s\t%s\n", s.Label, s.Command)
				}
				fmt.Fprintln(w)
				fmt.Fprintln(w, "Navigation")
				for _, n := range view.Navigation {
					fmt.Fprintf(w, "  %s\t%s\n", n.Label, n.Command)
				}
			})
		},
	}
}

func writeOwnPresence(w io.Writer, record *presence.Record) {
	if record == nil {
		fmt.Fprintln(w, "Aucune présence enregistrée aujourd'hui")
		return
	}
	fmt.Fprintf(w, "Présence du %s\t%s\n", record.Date, record.Status.Label())
	fmt.Fprintf(w, "  Arrivée\t%s\n", orDash(record.CheckInTime))
	fmt.Fprintf(w, "  Sortie\t%s\n", orDash(record.CheckOutTime))
}
