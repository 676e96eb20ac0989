package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/didacticiel/Gpresence/internal/domain/employee"
	"github.com/spf13/cobra"
)

func newEmployeesCommand(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "employees",
		Aliases: []string{"employes"},
		Short:   "Gérer les employés",
	}
	cmd.AddCommand(
		newEmployeesListCommand(a),
		newEmployeesCreateCommand(a),
		newEmployeesUpdateCommand(a),
		newEmployeesDeleteCommand(a),
	)
	return cmd
}

func newEmployeesListCommand(a *App) *cobra.Command {
	var (
		query  employee.ListQuery
		sortBy string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Lister les employés",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.require(); err != nil {
				return err
			}

			query.SortBy = employee.SortField(sortBy)
			roster, err := a.Employees.List(cmd.Context(), query)
			if err != nil {
				return err
			}

			return a.render(roster, func(w io.Writer) {
				if len(roster.Employees) == 0 {
					fmt.Fprintln(w, "Aucun employé trouvé")
				} else {
					fmt.Fprintln(w, "ID\tNOM\tPOSTE\tUTILISATEUR\tEMAIL\tTÉLÉPHONE")
					for _, e := range roster.Employees {
						email := e.ContactEmail()
						if email == "" {
							email = "-"
						}
						fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n", e.ID, e.Name, e.Position, e.UserUsername, email, orDash(e.Phone))
					}
				}
				fmt.Fprintf(w, "\nTotal: %d\tPostes: %d\tAvec email: %d\tNouveaux ce mois: %d\n",
					roster.Stats.Total, roster.Stats.Positions, roster.Stats.WithEmail, roster.Stats.CreatedThisMonth)
			})
		},
	}

	cmd.Flags().StringVar(&query.Search, "search", "", "Name, position, username or email")
	cmd.Flags().StringVar(&query.Position, "position", "", "Only this position")
	cmd.Flags().StringVar(&sortBy, "sort", "", "nom, poste, user_username or created_at")
	cmd.Flags().BoolVar(&query.Desc, "desc", false, "Sort descending")
	return cmd
}

func addEmployeeFlags(cmd *cobra.Command, req *employee.EmployeeRequest, userID *int64) {
	cmd.Flags().StringVar(&req.Name, "nom", "", "Full name")
	cmd.Flags().StringVar(&req.Position, "poste", "", "Position")
	cmd.Flags().StringVar(&req.Phone, "telephone", "", "Phone number")
	cmd.Flags().StringVar(&req.Email, "email", "", "Contact email")
	cmd.Flags().Int64Var(userID, "user", 0, "Linked user account id")
	cmd.MarkFlagRequired("nom")
	cmd.MarkFlagRequired("poste")
}

func newEmployeesCreateCommand(a *App) *cobra.Command {
	var (
		req    employee.EmployeeRequest
		userID int64
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Ajouter un employé",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.require(); err != nil {
				return err
			}
			if userID != 0 {
				req.UserID = &userID
			}
			created, err := a.Employees.Create(cmd.Context(), req)
			if err != nil {
				return err
			}
			return a.render(created, func(w io.Writer) {
				fmt.Fprintf(w, "Employé %s créé (id %d)\n", created.Name, created.ID)
			})
		},
	}

	addEmployeeFlags(cmd, &req, &userID)
	return cmd
}

func newEmployeesUpdateCommand(a *App) *cobra.Command {
	var (
		req    employee.EmployeeRequest
		userID int64
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Modifier un employé",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.require(); err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if userID != 0 {
				req.UserID = &userID
			}
			updated, err := a.Employees.Update(cmd.Context(), id, req)
			if err != nil {
				return err
			}
			return a.render(updated, func(w io.Writer) {
				fmt.Fprintf(w, "Employé %s mis à jour\n", updated.Name)
			})
		},
	}

	addEmployeeFlags(cmd, &req, &userID)
	return cmd
}

func newEmployeesDeleteCommand(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Supprimer un employé",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.require(); err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := a.Employees.Delete(cmd.Context(), id); err != nil {
				return err
			}
			a.println(fmt.Sprintf("Employé %d supprimé", id))
			return nil
		},
	}
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}
