package handler

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"taskops/internal/logger"
	"taskops/internal/model"
	"taskops/internal/service"
)

const missingReportFields = "Missing required fields: type, generatedBy, startDate, endDate"

// ReportHandler serves the /reports endpoints.
type ReportHandler struct {
	svc    service.ReportService
	logger *zap.Logger
}

// NewReportHandler creates a report handler.
func NewReportHandler(svc service.ReportService, log *zap.Logger) *ReportHandler {
	return &ReportHandler{svc: svc, logger: logger.OrNop(log)}
}

// GenerateReportRequest represents a report generation request.
type GenerateReportRequest struct {
	Type        string `json:"type" validate:"required,oneof=daily weekly monthly custom" enums:"daily,weekly,monthly,custom"`
	GeneratedBy string `json:"generatedBy" validate:"required"`
	StartDate   string `json:"startDate" validate:"required" example:"2025-11-01"`
	EndDate     string `json:"endDate" validate:"required" example:"2025-11-30"`
}

// GenerateReport godoc
// @Summary Generate report
// @Description Snapshots user and task counts. Task totals and completion rate cover the date range; the rest covers all data.
// @Tags reports
// @Accept json
// @Produce json
// @Param report body GenerateReportRequest true "Report parameters"
// @Success 201 {object} Response{data=model.Report}
// @Failure 400 {object} Response
// @Router /reports [post]
func (h *ReportHandler) GenerateReport(c echo.Context) error {
	var req GenerateReportRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(reportValidationMessage(err))
	}

	start, err := parseDate(req.StartDate)
	if err != nil {
		return badRequest("Invalid start date")
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		return badRequest("Invalid end date")
	}

	report, err := h.svc.GenerateReport(c.Request().Context(), model.GenerateReportInput{
		Type:        model.ReportType(req.Type),
		GeneratedBy: req.GeneratedBy,
		StartDate:   start,
		EndDate:     end,
	})
	if err != nil {
		h.logger.Error("Error generating report", zap.Error(err))
		return writeError(err)
	}
	return respond(c, http.StatusCreated, report, "Report generated successfully")
}

func reportValidationMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			if fe.Tag() == "required" {
				return missingReportFields
			}
		}
		return "Invalid report type"
	}
	return err.Error()
}

// ListReports godoc
// @Summary List reports
// @Tags reports
// @Produce json
// @Param type query string false "Report type" Enums(daily, weekly, monthly, custom)
// @Success 200 {object} Response{data=[]model.Report}
// @Router /reports [get]
func (h *ReportHandler) ListReports(c echo.Context) error {
	ctx := c.Request().Context()

	var (
		reports []model.Report
		err     error
	)
	if reportType := c.QueryParam("type"); reportType != "" {
		reports, err = h.svc.ListReportsByType(ctx, model.ReportType(reportType))
	} else {
		reports, err = h.svc.ListReports(ctx)
	}
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, reports, "")
}

// ReportStatistics godoc
// @Summary Report statistics
// @Tags reports
// @Produce json
// @Success 200 {object} Response{data=model.ReportSummary}
// @Router /reports/statistics [get]
func (h *ReportHandler) ReportStatistics(c echo.Context) error {
	summary, err := h.svc.SummaryStatistics(c.Request().Context())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, summary, "")
}

// GetReport godoc
// @Summary Get report by id
// @Tags reports
// @Produce json
// @Param id path string true "Report ID"
// @Success 200 {object} Response{data=model.Report}
// @Failure 404 {object} Response
// @Router /reports/{id} [get]
func (h *ReportHandler) GetReport(c echo.Context) error {
	report, err := h.svc.GetReport(c.Request().Context(), c.Param("id"))
	if err != nil {
		return readError(err)
	}
	if report == nil {
		return notFound("Report not found")
	}
	return respond(c, http.StatusOK, report, "")
}

// DeleteReport godoc
// @Summary Delete report
// @Tags reports
// @Produce json
// @Param id path string true "Report ID"
// @Success 200 {object} Response
// @Failure 400 {object} Response
// @Router /reports/{id} [delete]
func (h *ReportHandler) DeleteReport(c echo.Context) error {
	if err := h.svc.DeleteReport(c.Request().Context(), c.Param("id")); err != nil {
		h.logger.Error("Error deleting report", zap.String("report_id", c.Param("id")), zap.Error(err))
		return writeError(err)
	}
	return respond(c, http.StatusOK, nil, "Report deleted successfully")
}
