package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/didacticiel/Gpresence/internal/domain/auth"
	"github.com/spf13/cobra"
)

func newLoginCommand(a *App) *cobra.Command {
	var identifier, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Se connecter avec un nom d'utilisateur ou un email",
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				var err error
				if password, err = readLine(a.opts.Stdin); err != nil {
					return err
				}
			}

			identity, err := a.Auth.Login(cmd.Context(), auth.LoginRequest{
				Identifier: strings.TrimSpace(identifier),
				Password:   password,
			})
			if err != nil {
				return err
			}
			a.println(fmt.Sprintf("Connecté en tant que %s (%s)", identity.Username, identity.Role))
			return nil
		},
	}

	cmd.Flags().StringVarP(&identifier, "username", "u", "", "Username or email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "Password (read from stdin when omitted)")
	cmd.MarkFlagRequired("username")
	return cmd
}

func newRegisterCommand(a *App) *cobra.Command {
	var req auth.RegisterRequest

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Créer un compte employé",
		RunE: func(cmd *cobra.Command, args []string) error {
			message, err := a.Auth.Register(cmd.Context(), req)
			if err != nil {
				return err
			}
			a.println(message)
			return nil
		},
	}

	cmd.Flags().StringVarP(&req.Username, "username", "u", "", "Username")
	cmd.Flags().StringVar(&req.Email, "email", "", "Email address")
	cmd.Flags().StringVarP(&req.Password, "password", "p", "", "Password")
	cmd.MarkFlagRequired("username")
	cmd.MarkFlagRequired("email")
	cmd.MarkFlagRequired("password")
	return cmd
}

func newLogoutCommand(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Se déconnecter",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.Auth.Logout(); err != nil {
				return err
			}
			a.println("Déconnecté")
			return nil
		},
	}
}

func newWhoAmICommand(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Afficher l'utilisateur connecté",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.require(); err != nil {
				return err
			}
			who, err := a.Auth.WhoAmI()
			if err != nil {
				return err
			}
			return a.render(who, func(w io.Writer) {
				fmt.Fprintf(w, "Utilisateur\t%s\n", who.User.Username)
				fmt.Fprintf(w, "Rôle\t%s\n", who.User.Role)
				if who.User.Email != "" {
					fmt.Fprintf(w, "Email\t%s\n", who.User.Email)
				}
				if who.ExpiresAt != nil {
					fmt.Fprintf(w, "Jeton valable jusqu'au\t%s\n", who.ExpiresAt.Local().Format("2006-01-02 15:04"))
				}
			})
		},
	}
}

func readLine(r io.Reader) (string, error) {
	scanner := bufio.NewScanner(r)
	if scanner.Scan() {
		return strings.TrimRight(scanner.Text(), "\r\n"), nil
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return "", nil
}
