package dashboard

import (
	"testing"

	"github.com/didacticiel/Gpresence/internal/domain/user"
	"github.com/stretchr/testify/assert"
)

func labels(entries []NavEntry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Label)
	}
	return out
}

func TestNavigation(t *testing.T) {
	tests := []struct {
		role user.Role
		want []string
	}{
		{user.RoleAdmin, []string{"Tableau de bord", "Employés", "Présences", "Rapports"}},
		{user.RoleRH, []string{"Tableau de bord", "Employés", "Présences", "Rapports"}},
		{user.RoleManager, []string{"Tableau de bord", "Présences", "Rapports"}},
		{user.RoleStaff, []string{"Tableau de bord"}},
		{user.Role("guest"), []string{"Tableau de bord"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			assert.Equal(t, tt.want, labels(Navigation(tt.role)))
		})
	}
}

func TestHomeFor(t *testing.T) {
	home := HomeFor(user.Identity{ID: 7, Username: "awa", Role: user.RoleStaff})
	assert.Equal(t, "Bienvenue, awa !", home.Greeting)
	assert.Equal(t, "Votre Présence", home.Title)
	assert.Len(t, home.Shortcuts, 3)

	home = HomeFor(user.Identity{ID: 1, Username: "admin", Role: user.RoleAdmin})
	assert.Equal(t, "Tableau de bord Administrateur", home.Title)
	assert.Len(t, home.Navigation, 4)
}
