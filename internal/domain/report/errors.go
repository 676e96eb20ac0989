package report

import "errors"

var (
	ErrReportNotFound  = errors.New("report not found")
	ErrNoAuthorProfile = errors.New("Aucun profil employé pour signer ce rapport")
)
