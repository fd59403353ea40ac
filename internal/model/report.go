package model

import "time"

// ReportType names the period a report covers.
type ReportType string

const (
	ReportTypeDaily   ReportType = "daily"
	ReportTypeWeekly  ReportType = "weekly"
	ReportTypeMonthly ReportType = "monthly"
	ReportTypeCustom  ReportType = "custom"
)

// Valid reports whether t is a known report type.
func (t ReportType) Valid() bool {
	switch t {
	case ReportTypeDaily, ReportTypeWeekly, ReportTypeMonthly, ReportTypeCustom:
		return true
	}
	return false
}

// DateRange is an inclusive time window.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether t lies within the range, bounds included.
func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// ReportData is the snapshot stored in a report.
//
// TotalUsers, TasksByStatus and TasksByPriority describe the whole store at
// generation time; TotalTasks and CompletionRate only cover tasks created
// inside the report's date range.
type ReportData struct {
	TotalUsers      int                  `json:"totalUsers"`
	TotalTasks      int                  `json:"totalTasks"`
	TasksByStatus   map[TaskStatus]int   `json:"tasksByStatus"`
	TasksByPriority map[TaskPriority]int `json:"tasksByPriority"`
	CompletionRate  float64              `json:"completionRate"`
}

// Report is an immutable snapshot of user and task activity.
type Report struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Type        ReportType `json:"type"`
	GeneratedBy string     `json:"generatedBy"`
	DateRange   DateRange  `json:"dateRange"`
	Data        ReportData `json:"data"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// GenerateReportInput is the request to build a new report.
type GenerateReportInput struct {
	Type        ReportType
	GeneratedBy string
	StartDate   time.Time
	EndDate     time.Time
}

// ReportSummary counts stored reports.
type ReportSummary struct {
	TotalReports  int                `json:"totalReports"`
	ReportsByType map[ReportType]int `json:"reportsByType"`
}
