package dashboard

import (
	"github.com/didacticiel/Gpresence/internal/domain/user"
)

// NavEntry is one navigation item. Command is the CLI path that opens it.
type NavEntry struct {
	Label   string `json:"label"`
	Command string `json:"command"`
}

// Shortcut is a call to action on the role's home screen.
type Shortcut struct {
	Label   string `json:"label"`
	Command string `json:"command"`
}

type Home struct {
	Greeting   string     `json:"greeting"`
	Role       user.Role  `json:"role"`
	Title      string     `json:"title"`
	Summary    string     `json:"summary"`
	Shortcuts  []Shortcut `json:"shortcuts"`
	Navigation []NavEntry `json:"navigation"`
}

// Navigation lists the entries visible to a role. Presences stays hidden
// for staff, who reach their own record from the home screen instead.
func Navigation(role user.Role) []NavEntry {
	entries := []NavEntry{{Label: "Tableau de bord", Command: "gpresence dashboard"}}

	if user.HasPermission(role, user.PermissionEmployeeViewAll) {
		entries = append(entries, NavEntry{Label: "Employés", Command: "gpresence employees list"})
	}
	if user.HasPermission(role, user.PermissionPresenceViewAll) {
		entries = append(entries, NavEntry{Label: "Présences", Command: "gpresence presences list"})
	}
	if user.HasPermission(role, user.PermissionReportsView) {
		entries = append(entries, NavEntry{Label: "Rapports", Command: "gpresence reports list"})
	}

	return entries
}

// HomeFor builds the landing screen of an identity.
func HomeFor(identity user.Identity) Home {
	home := Home{
		Greeting:   "Bienvenue, " + identity.Username + " !",
		Role:       identity.Role,
		Navigation: Navigation(identity.Role),
	}

	switch identity.Role {
	case user.RoleAdmin:
		home.Title = "Tableau de bord Administrateur"
		home.Summary = "Vous avez accès à toutes les fonctionnalités du système."
		home.Shortcuts = []Shortcut{
			{Label: "Gérer les employés", Command: "gpresence employees list"},
			{Label: "Voir toutes les présences", Command: "gpresence presences list"},
			{Label: "Générer des rapports", Command: "gpresence reports create"},
		}
	case user.RoleRH:
		home.Title = "Tableau de bord RH"
		home.Summary = "Vous pouvez gérer les employés et consulter les présences."
		home.Shortcuts = []Shortcut{
			{Label: "Gérer les employés", Command: "gpresence employees list"},
			{Label: "Voir toutes les présences", Command: "gpresence presences list"},
			{Label: "Générer des rapports", Command: "gpresence reports create"},
		}
	case user.RoleManager:
		home.Title = "Tableau de bord Manager"
		home.Summary = "Vous pouvez consulter les présences et rapports de votre équipe."
		home.Shortcuts = []Shortcut{
			{Label: "Voir les présences", Command: "gpresence presences list"},
			{Label: "Générer des rapports", Command: "gpresence reports create"},
		}
	case user.RoleStaff:
		home.Title = "Votre Présence"
		home.Summary = "Marquez votre arrivée/départ ci-dessous."
		home.Shortcuts = []Shortcut{
			{Label: "Voir ma présence", Command: "gpresence presences mine"},
			{Label: "Marquer mon arrivée", Command: "gpresence presences check-in"},
			{Label: "Marquer ma sortie", Command: "gpresence presences check-out"},
		}
	}

	return home
}
