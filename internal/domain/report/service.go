package report

import (
	"context"

	"github.com/didacticiel/Gpresence/internal/domain/user"
)

// ReportService manages generated reports on the server.
type ReportService interface {
	List(ctx context.Context, filter ReportFilter) ([]Report, error)
	// Create files the report under the caller's employee profile.
	Create(ctx context.Context, caller user.Identity, req CreateReportRequest) (Report, error)
	Delete(ctx context.Context, id int64) error
}
