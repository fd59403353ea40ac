package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"taskops/internal/logger"
	"taskops/internal/model"
)

// SystemUserID is recorded as the author of scheduled reports.
const SystemUserID = "system"

// SchedulerService wraps cron-based jobs.
type SchedulerService struct {
	cron   *cron.Cron
	logger *zap.Logger
}

// NewSchedulerService creates a stopped scheduler evaluating specs in loc.
func NewSchedulerService(loc *time.Location, log *zap.Logger) *SchedulerService {
	if loc == nil {
		loc = time.Local
	}
	return &SchedulerService{
		cron:   cron.New(cron.WithLocation(loc), cron.WithSeconds()),
		logger: logger.OrNop(log),
	}
}

// ScheduleDaily registers a daily job at the given HH:MM time string.
func (s *SchedulerService) ScheduleDaily(timeStr string, job func()) (cron.EntryID, error) {
	spec, err := buildSpec(timeStr, "*")
	if err != nil {
		return 0, err
	}
	return s.cron.AddFunc(spec, job)
}

// ScheduleWeekly registers a job running every weekday at the given HH:MM time string.
func (s *SchedulerService) ScheduleWeekly(weekday time.Weekday, timeStr string, job func()) (cron.EntryID, error) {
	spec, err := buildSpec(timeStr, strconv.Itoa(int(weekday)))
	if err != nil {
		return 0, err
	}
	return s.cron.AddFunc(spec, job)
}

// ScheduleReports registers the daily report (previous 24 hours) at dailyAt
// and the weekly report (previous 7 days) on Mondays at weeklyAt.
func (s *SchedulerService) ScheduleReports(reports ReportService, dailyAt, weeklyAt string) error {
	if _, err := s.ScheduleDaily(dailyAt, s.reportJob(reports, model.ReportTypeDaily, 24*time.Hour)); err != nil {
		return fmt.Errorf("schedule daily report: %w", err)
	}
	if _, err := s.ScheduleWeekly(time.Monday, weeklyAt, s.reportJob(reports, model.ReportTypeWeekly, 7*24*time.Hour)); err != nil {
		return fmt.Errorf("schedule weekly report: %w", err)
	}
	return nil
}

func (s *SchedulerService) reportJob(reports ReportService, reportType model.ReportType, window time.Duration) func() {
	return func() {
		end := time.Now()
		report, err := reports.GenerateReport(context.Background(), model.GenerateReportInput{
			Type:        reportType,
			GeneratedBy: SystemUserID,
			StartDate:   end.Add(-window),
			EndDate:     end,
		})
		if err != nil {
			s.logger.Error("scheduled report failed", zap.String("type", string(reportType)), zap.Error(err))
			return
		}
		s.logger.Info("scheduled report generated", zap.String("type", string(reportType)), zap.String("report_id", report.ID))
	}
}

// Entries returns the number of registered jobs.
func (s *SchedulerService) Entries() int {
	return len(s.cron.Entries())
}

// Start runs the registered jobs in the background.
func (s *SchedulerService) Start() {
	s.cron.Start()
}

// Stop halts the scheduler and waits for running jobs to finish.
func (s *SchedulerService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

// buildSpec turns HH:MM into a six-field cron spec (second minute hour dom month dow).
func buildSpec(timeStr, dow string) (string, error) {
	parts := strings.Split(timeStr, ":")
	if len(parts) != 2 {
		return "", fmt.Errorf("invalid time %q, expected HH:MM", timeStr)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return "", fmt.Errorf("invalid hour in %q", timeStr)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return "", fmt.Errorf("invalid minute in %q", timeStr)
	}
	return fmt.Sprintf("0 %d %d * * %s", minute, hour, dow), nil
}
