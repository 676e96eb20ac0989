package client

import (
	"context"
	"fmt"

	"github.com/didacticiel/Gpresence/internal/domain/employee"
)

type EmployeeEndpoint struct {
	transport *Transport
}

func (e *EmployeeEndpoint) List(ctx context.Context) ([]employee.Employee, error) {
	resp, err := e.transport.Get(ctx, "employes/", nil)
	if err != nil {
		return nil, err
	}

	employees := []employee.Employee{}
	if err := decode(resp, &employees); err != nil {
		return nil, err
	}
	return employees, nil
}

func (e *EmployeeEndpoint) Create(ctx context.Context, req employee.EmployeeRequest) (employee.Employee, error) {
	var out employee.Employee

	resp, err := e.transport.Post(ctx, "employes/", req)
	if err != nil {
		return out, err
	}
	return out, decode(resp, &out)
}

func (e *EmployeeEndpoint) Update(ctx context.Context, id int64, req employee.EmployeeRequest) (employee.Employee, error) {
	var out employee.Employee

	resp, err := e.transport.Put(ctx, fmt.Sprintf("employes/%d/", id), req)
	if err != nil {
		return out, err
	}
	return out, decode(resp, &out)
}

func (e *EmployeeEndpoint) Delete(ctx context.Context, id int64) error {
	resp, err := e.transport.Delete(ctx, fmt.Sprintf("employes/%d/", id))
	if err != nil {
		return err
	}
	return decode(resp, nil)
}
