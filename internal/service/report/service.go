// Package report backs the reports screen.
package report

import (
	"context"
	"fmt"

	"github.com/didacticiel/Gpresence/internal/domain/report"
)

// ReportAPI is implemented by *client.ReportEndpoint.
type ReportAPI interface {
	List(ctx context.Context, filter report.ReportFilter) ([]report.Report, error)
	Create(ctx context.Context, req report.CreateReportRequest) (report.Report, error)
	Delete(ctx context.Context, id int64) error
}

type ReportBookService struct {
	api ReportAPI
}

func NewReportBookService(api ReportAPI) *ReportBookService {
	return &ReportBookService{api: api}
}

// Summary counts reports per type.
type Summary struct {
	Total  int                 `json:"total" yaml:"total"`
	ByType map[report.Type]int `json:"par_type" yaml:"par_type"`
}

func (s *ReportBookService) List(ctx context.Context, filter report.ReportFilter) ([]report.Report, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	reports, err := s.api.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch reports: %w", err)
	}
	return reports, nil
}

// Create checks the date range locally before calling the API.
func (s *ReportBookService) Create(ctx context.Context, req report.CreateReportRequest) (report.Report, error) {
	if err := req.Validate(); err != nil {
		return report.Report{}, err
	}
	return s.api.Create(ctx, req)
}

func (s *ReportBookService) Delete(ctx context.Context, id int64) error {
	return s.api.Delete(ctx, id)
}

func Summarize(reports []report.Report) Summary {
	summary := Summary{Total: len(reports), ByType: make(map[report.Type]int)}
	for _, r := range reports {
		summary.ByType[r.Type]++
	}
	return summary
}
