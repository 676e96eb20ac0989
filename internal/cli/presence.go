package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/didacticiel/Gpresence/internal/domain/presence"
	"github.com/didacticiel/Gpresence/internal/domain/user"
	"github.com/didacticiel/Gpresence/internal/pkg/export"
	servicePresence "github.com/didacticiel/Gpresence/internal/service/presence"
	"github.com/spf13/cobra"
)

const msgNoPresences = "Aucune présence trouvée pour ces critères"

type presenceRow struct {
	presence.Record
	Actions presence.ActionPermission `json:"actions"`
}

type presenceList struct {
	Presences []presenceRow           `json:"presences"`
	Stats     presence.AggregateStats `json:"stats"`
	Filter    presence.Filter         `json:"filter"`
}

func newPresencesCommand(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "presences",
		Aliases: []string{"presence"},
		Short:   "Consulter et pointer les présences",
	}
	cmd.AddCommand(
		newPresencesListCommand(a),
		newPresencesMineCommand(a),
		newPresencesCreateCommand(a),
		newPresencesActionCommand(a, presence.ActionCheckIn),
		newPresencesActionCommand(a, presence.ActionCheckOut),
		newPresencesExportCommand(a),
	)
	return cmd
}

func addFilterFlags(cmd *cobra.Command, filter *presence.Filter) {
	cmd.Flags().StringVar(&filter.Date, "date", "", "Day to show (YYYY-MM-DD)")
	cmd.Flags().StringVar(&filter.Status, "status", "", "all, arrive, parti or absent")
	cmd.Flags().StringVar(&filter.Search, "search", "", "Employee name or username")
}

func newPresencesListCommand(a *App) *cobra.Command {
	var filter presence.Filter

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Lister les présences",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.require(); err != nil {
				return err
			}

			board := a.board()
			snap, err := board.Load(cmd.Context(), filter)
			if err != nil {
				return err
			}

			list := presenceList{Stats: snap.Stats, Filter: snap.Filter, Presences: []presenceRow{}}
			for _, card := range board.Cards() {
				list.Presences = append(list.Presences, presenceRow{Record: card.Record, Actions: card.Permission})
			}

			return a.render(list, func(w io.Writer) {
				if snap.IsEmpty() {
					fmt.Fprintln(w, msgNoPresences)
				} else {
					fmt.Fprintln(w, "ID\tEMPLOYÉ\tUTILISATEUR\tDATE\tARRIVÉE\tSORTIE\tSTATUT\tACTIONS")
					for _, row := range list.Presences {
						fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
							row.ID,
							row.Employee.Name,
							row.Employee.User.Username,
							row.Date,
							orDash(row.CheckInTime),
							orDash(row.CheckOutTime),
							row.Status.Label(),
							actionsLabel(row.Actions),
						)
					}
				}
				fmt.Fprintf(w, "\nTotal: %d\tArrivés: %d\tPartis: %d\tAbsents: %d\n",
					list.Stats.Total, list.Stats.ArrivedCount, list.Stats.LeftCount, list.Stats.AbsentCount)
			})
		},
	}

	addFilterFlags(cmd, &filter)
	return cmd
}

func newPresencesMineCommand(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "mine",
		Short: "Afficher ma présence du jour",
		RunE: func(cmd *cobra.Command, args []string) error {
			identity, err := a.require()
			if err != nil {
				return err
			}
			if !identity.Can(user.PermissionPresenceSelfService) {
				return presence.ErrSelfServiceStaffOnly
			}

			board := a.board()
			own, err := board.Reconciler().LoadOwnPresence(cmd.Context())
			if err != nil {
				return err
			}

			view := presenceRow{}
			if card, ok := board.OwnCard(); ok {
				view = presenceRow{Record: card.Record, Actions: card.Permission}
			}
			var out any = view
			if !own.Exists() {
				out = struct {
					Presence *presence.Record `json:"presence"`
				}{}
			}

			return a.render(out, func(w io.Writer) {
				writeOwnPresence(w, own.Record)
				if own.Exists() {
					fmt.Fprintf(w, "  Actions\t%s\n", actionsLabel(view.Actions))
				}
			})
		},
	}
}

func newPresencesCreateCommand(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "create",
		Short: "Créer ma présence du jour",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.require(); err != nil {
				return err
			}
			outcome := a.board().CreateOwn(cmd.Context())
			if !outcome.OK() {
				return &outcomeError{outcome: outcome}
			}
			return nil
		},
	}
}

func newPresencesActionCommand(a *App, action presence.Action) *cobra.Command {
	use, short := "check-in [id]", "Pointer l'arrivée (sans id : ma présence du jour)"
	if action == presence.ActionCheckOut {
		use, short = "check-out [id]", "Pointer la sortie (sans id : ma présence du jour)"
	}

	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			identity, err := a.require()
			if err != nil {
				return err
			}

			board := a.board()
			if _, err := board.Load(cmd.Context(), presence.Filter{}); err != nil {
				return err
			}

			var recordID int64
			if len(args) == 1 {
				recordID, err = strconv.ParseInt(args[0], 10, 64)
				if err != nil || recordID <= 0 {
					return fmt.Errorf("invalid presence id %q", args[0])
				}
			} else {
				if !identity.Can(user.PermissionPresenceSelfService) {
					return fmt.Errorf("an id is required: gpresence presences %s <id>", cmd.Name())
				}
				recordID, err = ownRecordID(cmd.Context(), board, action)
				if err != nil {
					return err
				}
			}

			var outcome servicePresence.Outcome
			if action == presence.ActionCheckOut {
				outcome = board.CheckOut(cmd.Context(), recordID)
			} else {
				outcome = board.CheckIn(cmd.Context(), recordID)
			}
			if !outcome.OK() {
				return &outcomeError{outcome: outcome}
			}
			return nil
		},
	}
}

// ownRecordID returns today's own record, creating it first for a check-in.
func ownRecordID(ctx context.Context, board *servicePresence.Board, action presence.Action) (int64, error) {
	if card, ok := board.OwnCard(); ok {
		return card.Record.ID, nil
	}
	if action != presence.ActionCheckIn {
		return 0, presence.ErrNotCheckedIn
	}

	outcome := board.CreateOwn(ctx)
	if !outcome.OK() {
		return 0, &outcomeError{outcome: outcome}
	}
	card, ok := board.OwnCard()
	if !ok {
		return 0, presence.ErrPresenceNotFound
	}
	return card.Record.ID, nil
}

func newPresencesExportCommand(a *App) *cobra.Command {
	var (
		filter presence.Filter
		file   string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Exporter les présences au format xlsx",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.require(); err != nil {
				return err
			}

			snap, err := a.board().Load(cmd.Context(), filter)
			if err != nil {
				return err
			}
			err = export.ToFile(file, func(w io.Writer) error {
				return export.Presences(w, snap.Records, snap.Stats)
			})
			if err != nil {
				return fmt.Errorf("failed to export presences: %w", err)
			}
			a.println(fmt.Sprintf("%d présence(s) exportée(s) vers %s", len(snap.Records), file))
			return nil
		},
	}

	addFilterFlags(cmd, &filter)
	cmd.Flags().StringVarP(&file, "file", "f", "presences.xlsx", "Destination file")
	return cmd
}

func actionsLabel(p presence.ActionPermission) string {
	switch {
	case p.CanCheckIn:
		return "arrivée"
	case p.CanCheckOut:
		return "sortie"
	}
	return "-"
}
