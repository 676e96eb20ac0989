package presence

import (
	"strings"

	"github.com/didacticiel/Gpresence/internal/pkg/validator"
)

// Filter narrows the presence list. Empty fields are not sent.
type Filter struct {
	Date   string `json:"date,omitempty"`
	Status string `json:"statut,omitempty"`
	Search string `json:"search,omitempty"`
}

func (f *Filter) Validate() error {
	var errs validator.ValidationErrors

	if f.Date != "" {
		if _, ok := validator.IsValidDate(f.Date); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "date",
				Message: "date must use YYYY-MM-DD",
			})
		}
	}

	if f.Status != "" && f.Status != StatusAll && !Status(f.Status).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "statut",
			Message: "statut must be one of all, arrive, parti, absent",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// QueryParams encodes the filter for GET /presences/. The "all" status is
// the same as no status.
func (f Filter) QueryParams() map[string]string {
	params := make(map[string]string)
	if f.Date != "" {
		params["date"] = f.Date
	}
	if f.Status != "" && f.Status != StatusAll {
		params["statut"] = f.Status
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		params["search"] = s
	}
	return params
}

// ListFilter is the server side view of a Filter, scoped to one owner when
// the caller may only see its own records.
type ListFilter struct {
	Filter
	OwnerUserID *int64
}

// OwnPresenceResponse answers GET /ma-presence/.
type OwnPresenceResponse struct {
	Success  bool    `json:"success"`
	Presence *Record `json:"presence,omitempty"`
	Message  string  `json:"message,omitempty"`
}

// ActionResponse answers every presence mutation.
type ActionResponse struct {
	Success  bool    `json:"success"`
	Message  string  `json:"message"`
	Presence *Record `json:"presence,omitempty"`
}
