package directory

import (
	"context"
	"fmt"

	"github.com/didacticiel/Gpresence/internal/domain/employee"
)

type DirectoryServiceImpl struct {
	employee.EmployeeRepository
}

func NewDirectoryService(employeeRepository employee.EmployeeRepository) employee.EmployeeService {
	return &DirectoryServiceImpl{EmployeeRepository: employeeRepository}
}

// List implements employee.EmployeeService.
func (s *DirectoryServiceImpl) List(ctx context.Context) ([]employee.Employee, error) {
	employees, err := s.EmployeeRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	return employees, nil
}

// Create implements employee.EmployeeService.
func (s *DirectoryServiceImpl) Create(ctx context.Context, req employee.EmployeeRequest) (employee.Employee, error) {
	if err := req.Validate(); err != nil {
		return employee.Employee{}, err
	}
	return s.EmployeeRepository.Create(ctx, req)
}

// Update implements employee.EmployeeService.
func (s *DirectoryServiceImpl) Update(ctx context.Context, id int64, req employee.EmployeeRequest) (employee.Employee, error) {
	if err := req.Validate(); err != nil {
		return employee.Employee{}, err
	}
	return s.EmployeeRepository.Update(ctx, id, req)
}
