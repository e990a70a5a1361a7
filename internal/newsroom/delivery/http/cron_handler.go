package http

import (
	"net/http"

	"golang-ai-newsroom/internal/newsroom/service"
	"golang-ai-newsroom/pkg/common"
	"golang-ai-newsroom/pkg/logger"

	"github.com/labstack/echo/v4"
)

// CronHandler exposes the generation jobs as HTTP trigger endpoints, so an
// external cron can drive them instead of the in-process scheduler.
type CronHandler struct {
	schedulerService service.SchedulerService
	logger           *logger.Logger
}

// NewCronHandler creates a new CronHandler.
func NewCronHandler(schedulerService service.SchedulerService, logger *logger.Logger) *CronHandler {
	return &CronHandler{schedulerService: schedulerService, logger: logger}
}

// RegisterRoutes registers the cron trigger routes to the Echo group.
func (h *CronHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/articles", h.RunArticles)
	g.GET("/events", h.RunEvents)
	g.GET("/articles-from-events", h.RunArticlesFromEvents)
	g.GET("/edition", h.RunEdition)
	g.GET("/daily", h.RunDaily)
}

// RunArticles godoc
// @Summary Run article generation for all tenants
// @Tags cron
// @Produce json
// @Success 200 {object} dto.JobReport
// @Failure 500 {object} dto.ErrorResponse
// @Router /cron/articles [get]
func (h *CronHandler) RunArticles(c echo.Context) error {
	return h.run(c, common.JobReporterArticles)
}

// RunEvents godoc
// @Summary Run event generation for all tenants
// @Tags cron
// @Produce json
// @Success 200 {object} dto.JobReport
// @Failure 500 {object} dto.ErrorResponse
// @Router /cron/events [get]
func (h *CronHandler) RunEvents(c echo.Context) error {
	return h.run(c, common.JobReporterEvents)
}

// RunArticlesFromEvents godoc
// @Summary Run article-from-events generation for all tenants
// @Tags cron
// @Produce json
// @Success 200 {object} dto.JobReport
// @Failure 500 {object} dto.ErrorResponse
// @Router /cron/articles-from-events [get]
func (h *CronHandler) RunArticlesFromEvents(c echo.Context) error {
	return h.run(c, common.JobArticlesFromEvents)
}

// RunEdition godoc
// @Summary Run hourly edition generation for all tenants
// @Tags cron
// @Produce json
// @Success 200 {object} dto.JobReport
// @Failure 500 {object} dto.ErrorResponse
// @Router /cron/edition [get]
func (h *CronHandler) RunEdition(c echo.Context) error {
	return h.run(c, common.JobNewspaperEdition)
}

// RunDaily godoc
// @Summary Run daily edition generation for all tenants
// @Tags cron
// @Produce json
// @Success 200 {object} dto.JobReport
// @Failure 500 {object} dto.ErrorResponse
// @Router /cron/daily [get]
func (h *CronHandler) RunDaily(c echo.Context) error {
	return h.run(c, common.JobDailyEdition)
}

func (h *CronHandler) run(c echo.Context, jobName string) error {
	report, err := h.schedulerService.RunJob(c.Request().Context(), jobName)
	if err != nil {
		h.logger.Error("cron trigger failed",
			logger.StringField("job", jobName),
			logger.ErrorField(err),
		)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, report)
}
