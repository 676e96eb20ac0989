package presence

import "errors"

var (
	// Business rules, returned to users as is
	ErrAlreadyCheckedIn  = errors.New("Arrivée déjà pointée pour aujourd'hui")
	ErrNotCheckedIn      = errors.New("Impossible de pointer la sortie avant l'arrivée")
	ErrAlreadyCheckedOut = errors.New("Sortie déjà pointée pour aujourd'hui")
	ErrPresenceExists    = errors.New("Une présence existe déjà pour aujourd'hui")
	ErrNoEmployeeProfile = errors.New("Aucun profil employé associé à cet utilisateur")

	// General errors
	ErrPresenceNotFound     = errors.New("presence record not found")
	ErrNotOwner             = errors.New("presence record belongs to another employee")
	ErrSelfServiceStaffOnly = errors.New("self-service presence is reserved to staff")
	ErrActionNotPermitted   = errors.New("action not permitted")
)

// IsBusinessRule reports whether err is a rule violation the server answers
// with {success:false, message}.
func IsBusinessRule(err error) bool {
	return errors.Is(err, ErrAlreadyCheckedIn) ||
		errors.Is(err, ErrNotCheckedIn) ||
		errors.Is(err, ErrAlreadyCheckedOut) ||
		errors.Is(err, ErrPresenceExists) ||
		errors.Is(err, ErrNoEmployeeProfile)
}
