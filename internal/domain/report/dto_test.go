package report

import (
	"errors"
	"testing"

	"github.com/didacticiel/Gpresence/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateReportRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     CreateReportRequest
		invalid []string
	}{
		{
			name: "valid",
			req:  CreateReportRequest{Type: "mensuel", StartDate: "2026-09-01", EndDate: "2026-09-30", Content: "RAS"},
		},
		{
			name: "single day range",
			req:  CreateReportRequest{Type: "personnalise", StartDate: "2026-09-01", EndDate: "2026-09-01", Content: "RAS"},
		},
		{
			name:    "end before start",
			req:     CreateReportRequest{Type: "annuel", StartDate: "2026-09-30", EndDate: "2026-09-01", Content: "RAS"},
			invalid: []string{"date_fin"},
		},
		{
			name:    "unknown type and missing content",
			req:     CreateReportRequest{Type: "quotidien", StartDate: "2026-09-01", EndDate: "2026-09-02"},
			invalid: []string{"type", "contenu"},
		},
		{
			name:    "bad dates",
			req:     CreateReportRequest{Type: "hebdomadaire", StartDate: "01/09/2026", EndDate: "", Content: "RAS"},
			invalid: []string{"date_debut", "date_fin"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if len(tt.invalid) == 0 {
				assert.NoError(t, err)
				return
			}
			var verrs validator.ValidationErrors
			require.True(t, errors.As(err, &verrs))
			for _, f := range tt.invalid {
				assert.Contains(t, verrs.ToMap(), f)
			}
		})
	}
}

func TestReportFilter(t *testing.T) {
	f := ReportFilter{Type: "all", Search: "awa"}
	require.NoError(t, f.Validate())
	assert.Equal(t, map[string]string{"search": "awa"}, f.QueryParams())

	assert.Error(t, (&ReportFilter{Type: "daily"}).Validate())
	assert.Equal(t, "Personnalisé", TypeCustom.Label())
}
