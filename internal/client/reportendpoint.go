package client

import (
	"context"
	"fmt"

	"github.com/didacticiel/Gpresence/internal/domain/report"
)

type ReportEndpoint struct {
	transport *Transport
}

func (e *ReportEndpoint) List(ctx context.Context, filter report.ReportFilter) ([]report.Report, error) {
	resp, err := e.transport.Get(ctx, "rapports/", filter.QueryParams())
	if err != nil {
		return nil, err
	}

	reports := []report.Report{}
	if err := decode(resp, &reports); err != nil {
		return nil, err
	}
	return reports, nil
}

func (e *ReportEndpoint) Create(ctx context.Context, req report.CreateReportRequest) (report.Report, error) {
	var out report.Report

	resp, err := e.transport.Post(ctx, "rapports/", req)
	if err != nil {
		return out, err
	}
	return out, decode(resp, &out)
}

func (e *ReportEndpoint) Delete(ctx context.Context, id int64) error {
	resp, err := e.transport.Delete(ctx, fmt.Sprintf("rapports/%d/", id))
	if err != nil {
		return err
	}
	return decode(resp, nil)
}
