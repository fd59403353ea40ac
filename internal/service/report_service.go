package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"taskops/internal/cache"
	apperrors "taskops/internal/errors"
	"taskops/internal/logger"
	"taskops/internal/model"
	"taskops/internal/repository"
)

const (
	reportCacheTTL = 5 * time.Minute
	// titleDateLayout renders dates as dd/mm/yyyy.
	titleDateLayout = "02/01/2006"
)

// ReportService generates and manages report snapshots.
type ReportService interface {
	GenerateReport(ctx context.Context, input model.GenerateReportInput) (*model.Report, error)
	// GetReport returns nil without an error when the report does not exist.
	GetReport(ctx context.Context, id string) (*model.Report, error)
	ListReports(ctx context.Context) ([]model.Report, error)
	ListReportsByType(ctx context.Context, reportType model.ReportType) ([]model.Report, error)
	DeleteReport(ctx context.Context, id string) error
	SummaryStatistics(ctx context.Context) (*model.ReportSummary, error)
}

type reportService struct {
	reports  repository.ReportRepository
	users    repository.UserRepository
	tasks    repository.TaskRepository
	cache    *cache.Client
	cacheTTL time.Duration
	logger   *zap.Logger
	now      func() time.Time
}

// NewReportService builds a ReportService. The user and task repositories are only read.
// cache may be nil; a non-positive ttl selects the default.
func NewReportService(
	reports repository.ReportRepository,
	users repository.UserRepository,
	tasks repository.TaskRepository,
	cache *cache.Client,
	ttl time.Duration,
	log *zap.Logger,
) ReportService {
	if ttl <= 0 {
		ttl = reportCacheTTL
	}
	return &reportService{
		reports:  reports,
		users:    users,
		tasks:    tasks,
		cache:    cache,
		cacheTTL: ttl,
		logger:   logger.OrNop(log),
		now:      time.Now,
	}
}

func (s *reportService) cacheKey(id string) string {
	return fmt.Sprintf("report:%s", id)
}

// GenerateReport computes a snapshot of the current user and task stores and stores it as a new report.
func (s *reportService) GenerateReport(ctx context.Context, input model.GenerateReportInput) (*model.Report, error) {
	s.logger.Info("Generating report", zap.String("type", string(input.Type)))

	dateRange := model.DateRange{Start: input.StartDate, End: input.EndDate}
	data, err := s.calculateReportData(ctx, dateRange)
	if err != nil {
		return nil, fmt.Errorf("calculate report data: %w", err)
	}

	report := &model.Report{
		ID:          newID("report"),
		Title:       reportTitle(input.Type, dateRange),
		Type:        input.Type,
		GeneratedBy: input.GeneratedBy,
		DateRange:   dateRange,
		Data:        data,
		CreatedAt:   s.now(),
	}

	if err := s.reports.Create(ctx, report); err != nil {
		return nil, fmt.Errorf("create report: %w", err)
	}

	s.logger.Info("Report generated successfully", zap.String("report_id", report.ID))
	return report, nil
}

// calculateReportData mixes two scopes: user count and the
// status/priority tallies cover every stored record, while the task count and
// completion rate only cover tasks created inside dateRange.
func (s *reportService) calculateReportData(ctx context.Context, dateRange model.DateRange) (model.ReportData, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return model.ReportData{}, err
	}
	tasks, err := s.tasks.List(ctx, repository.TaskFilter{})
	if err != nil {
		return model.ReportData{}, err
	}

	stats := tallyTasks(tasks)

	inRange, completed := 0, 0
	for _, task := range tasks {
		if !dateRange.Contains(task.CreatedAt) {
			continue
		}
		inRange++
		if task.Status == model.TaskStatusDone {
			completed++
		}
	}

	completionRate := 0.0
	if inRange > 0 {
		completionRate = float64(completed) / float64(inRange)
	}

	return model.ReportData{
		TotalUsers:      len(users),
		TotalTasks:      inRange,
		TasksByStatus:   stats.ByStatus,
		TasksByPriority: stats.ByPriority,
		CompletionRate:  completionRate,
	}, nil
}

// reportTitle builds e.g. "Monthly Report: 01/11/2025 - 30/11/2025".
func reportTitle(reportType model.ReportType, dateRange model.DateRange) string {
	label := string(reportType)
	if label != "" {
		label = strings.ToUpper(label[:1]) + label[1:]
	}
	return fmt.Sprintf("%s Report: %s - %s",
		label,
		dateRange.Start.Format(titleDateLayout),
		dateRange.End.Format(titleDateLayout),
	)
}

func (s *reportService) GetReport(ctx context.Context, id string) (*model.Report, error) {
	s.logger.Debug("Fetching report by ID", zap.String("report_id", id))

	var cached model.Report
	if s.cache.GetJSON(ctx, s.cacheKey(id), &cached) {
		return &cached, nil
	}

	report, err := s.reports.FindByID(ctx, id)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	s.cache.SetJSON(ctx, s.cacheKey(id), report, s.cacheTTL)
	return report, nil
}

func (s *reportService) ListReports(ctx context.Context) ([]model.Report, error) {
	s.logger.Debug("Fetching all reports")
	return s.reports.List(ctx, repository.ReportFilter{})
}

func (s *reportService) ListReportsByType(ctx context.Context, reportType model.ReportType) ([]model.Report, error) {
	s.logger.Debug("Fetching reports by type", zap.String("type", string(reportType)))
	if reportType == "" {
		return []model.Report{}, nil
	}
	return s.reports.List(ctx, repository.ReportFilter{Type: reportType})
}

func (s *reportService) DeleteReport(ctx context.Context, id string) error {
	s.logger.Info("Deleting report", zap.String("report_id", id))

	if err := s.reports.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.Delete(ctx, s.cacheKey(id))

	s.logger.Info("Report deleted successfully", zap.String("report_id", id))
	return nil
}

func (s *reportService) SummaryStatistics(ctx context.Context) (*model.ReportSummary, error) {
	reports, err := s.reports.List(ctx, repository.ReportFilter{})
	if err != nil {
		return nil, err
	}

	summary := &model.ReportSummary{
		TotalReports:  len(reports),
		ReportsByType: make(map[model.ReportType]int),
	}
	for _, report := range reports {
		summary.ReportsByType[report.Type]++
	}
	return summary, nil
}
