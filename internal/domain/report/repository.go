package report

import (
	"context"
)

type ReportRepository interface {
	List(ctx context.Context, filter ReportFilter) ([]Report, error)
	Create(ctx context.Context, authorEmployeeID int64, req CreateReportRequest) (Report, error)
	Delete(ctx context.Context, id int64) error
}
