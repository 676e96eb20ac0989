package report

import (
	"time"

	"github.com/didacticiel/Gpresence/internal/pkg/dateonly"
)

type Type string

const (
	TypeMonthly Type = "mensuel"
	TypeWeekly  Type = "hebdomadaire"
	TypeYearly  Type = "annuel"
	TypeCustom  Type = "personnalise"
)

var Types = []Type{TypeMonthly, TypeWeekly, TypeYearly, TypeCustom}

func (t Type) IsValid() bool {
	for _, typ := range Types {
		if t == typ {
			return true
		}
	}
	return false
}

// Label is the name shown to users.
func (t Type) Label() string {
	switch t {
	case TypeMonthly:
		return "Mensuel"
	case TypeWeekly:
		return "Hebdomadaire"
	case TypeYearly:
		return "Annuel"
	case TypeCustom:
		return "Personnalisé"
	}
	return string(t)
}

type Report struct {
	ID        int64         `json:"id"`
	Author    Author        `json:"employe"`
	Type      Type          `json:"type"`
	StartDate dateonly.Date `json:"date_debut"`
	EndDate   dateonly.Date `json:"date_fin"`
	Content   string        `json:"contenu"`
	CreatedAt time.Time     `json:"created_at"`
}

// Author is the employee who generated the report.
type Author struct {
	ID   int64      `json:"id,omitempty"`
	Name string     `json:"nom"`
	User AuthorUser `json:"user"`
}

type AuthorUser struct {
	Username string `json:"username"`
}
