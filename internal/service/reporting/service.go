package reporting

import (
	"context"
	"errors"
	"fmt"

	"github.com/didacticiel/Gpresence/internal/domain/employee"
	"github.com/didacticiel/Gpresence/internal/domain/report"
	"github.com/didacticiel/Gpresence/internal/domain/user"
)

type ReportingServiceImpl struct {
	report.ReportRepository
	employee.EmployeeRepository
}

func NewReportingService(reportRepository report.ReportRepository, employeeRepository employee.EmployeeRepository) report.ReportService {
	return &ReportingServiceImpl{
		ReportRepository:   reportRepository,
		EmployeeRepository: employeeRepository,
	}
}

// List implements report.ReportService.
func (s *ReportingServiceImpl) List(ctx context.Context, filter report.ReportFilter) ([]report.Report, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	reports, err := s.ReportRepository.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	return reports, nil
}

// Create implements report.ReportService.
func (s *ReportingServiceImpl) Create(ctx context.Context, caller user.Identity, req report.CreateReportRequest) (report.Report, error) {
	if err := req.Validate(); err != nil {
		return report.Report{}, err
	}

	author, err := s.EmployeeRepository.GetByUserID(ctx, caller.ID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return report.Report{}, report.ErrNoAuthorProfile
		}
		return report.Report{}, fmt.Errorf("failed to get author profile: %w", err)
	}

	return s.ReportRepository.Create(ctx, author.ID, req)
}

// Delete implements report.ReportService.
func (s *ReportingServiceImpl) Delete(ctx context.Context, id int64) error {
	return s.ReportRepository.Delete(ctx, id)
}
