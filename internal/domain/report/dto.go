package report

import (
	"strings"

	"github.com/didacticiel/Gpresence/internal/pkg/validator"
)

// CreateReportRequest is the write payload of POST /rapports/.
type CreateReportRequest struct {
	Type      string `json:"type"`
	StartDate string `json:"date_debut"`
	EndDate   string `json:"date_fin"`
	Content   string `json:"contenu"`
}

func (r *CreateReportRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Type) {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type is required",
		})
	} else if !Type(r.Type).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be one of mensuel, hebdomadaire, annuel, personnalise",
		})
	}

	start, startOK := validator.IsValidDate(r.StartDate)
	if !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "date_debut",
			Message: "date_debut must use YYYY-MM-DD",
		})
	}
	end, endOK := validator.IsValidDate(r.EndDate)
	if !endOK {
		errs = append(errs, validator.ValidationError{
			Field:   "date_fin",
			Message: "date_fin must use YYYY-MM-DD",
		})
	}
	if startOK && endOK && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "date_fin",
			Message: "date_fin must not be before date_debut",
		})
	}

	if validator.IsEmpty(r.Content) {
		errs = append(errs, validator.ValidationError{
			Field:   "contenu",
			Message: "contenu is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ReportFilter maps to GET /rapports/?type&search.
type ReportFilter struct {
	Type   string
	Search string
}

func (f *ReportFilter) Validate() error {
	if f.Type != "" && f.Type != "all" && !Type(f.Type).IsValid() {
		return validator.ValidationErrors{{
			Field:   "type",
			Message: "type must be one of mensuel, hebdomadaire, annuel, personnalise",
		}}
	}
	return nil
}

func (f ReportFilter) QueryParams() map[string]string {
	params := make(map[string]string)
	if f.Type != "" && f.Type != "all" {
		params["type"] = f.Type
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		params["search"] = s
	}
	return params
}
