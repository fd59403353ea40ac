package repository

import (
	"context"
	"maps"

	apperrors "taskops/internal/errors"
	"taskops/internal/model"
)

// ReportFilter narrows report listings. An empty Type matches every report.
type ReportFilter struct {
	Type model.ReportType
}

// ReportRepository defines report persistence operations. Reports are never updated.
type ReportRepository interface {
	Create(ctx context.Context, report *model.Report) error
	FindByID(ctx context.Context, id string) (*model.Report, error)
	List(ctx context.Context, filter ReportFilter) ([]model.Report, error)
	Delete(ctx context.Context, id string) error
}

type reportRepository struct {
	store *orderedStore[model.Report]
}

// NewReportRepository builds an in-memory report repository.
func NewReportRepository() ReportRepository {
	return &reportRepository{store: newOrderedStore[model.Report]()}
}

func (r *reportRepository) Create(ctx context.Context, report *model.Report) error {
	return r.store.insert(report.ID, cloneReport(*report), nil)
}

func (r *reportRepository) FindByID(ctx context.Context, id string) (*model.Report, error) {
	report, ok := r.store.get(id)
	if !ok {
		return nil, apperrors.ErrReportNotFound
	}
	report = cloneReport(report)
	return &report, nil
}

func (r *reportRepository) List(ctx context.Context, filter ReportFilter) ([]model.Report, error) {
	reports := r.store.filter(func(report model.Report) bool {
		return filter.Type == "" || report.Type == filter.Type
	})
	for i := range reports {
		reports[i] = cloneReport(reports[i])
	}
	return reports, nil
}

// cloneReport detaches the tally maps from the original.
func cloneReport(report model.Report) model.Report {
	report.Data.TasksByStatus = maps.Clone(report.Data.TasksByStatus)
	report.Data.TasksByPriority = maps.Clone(report.Data.TasksByPriority)
	return report
}

func (r *reportRepository) Delete(ctx context.Context, id string) error {
	if !r.store.remove(id) {
		return apperrors.ErrReportNotFound
	}
	return nil
}
