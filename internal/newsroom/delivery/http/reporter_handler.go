package http

import (
	"net/http"
	"strconv"

	"golang-ai-newsroom/internal/entity"
	"golang-ai-newsroom/internal/newsroom/dto"
	"golang-ai-newsroom/internal/newsroom/repository"
	"golang-ai-newsroom/pkg/logger"
	"golang-ai-newsroom/pkg/utils"

	"github.com/labstack/echo/v4"
)

// ReporterHandler handles HTTP requests for reporters and their articles.
type ReporterHandler struct {
	reporterRepo repository.ReporterRepository
	articleRepo  repository.ArticleRepository
	eventRepo    repository.EventRepository
	logger       *logger.Logger
}

// NewReporterHandler creates a new ReporterHandler.
func NewReporterHandler(reporterRepo repository.ReporterRepository, articleRepo repository.ArticleRepository, eventRepo repository.EventRepository, logger *logger.Logger) *ReporterHandler {
	return &ReporterHandler{reporterRepo: reporterRepo, articleRepo: articleRepo, eventRepo: eventRepo, logger: logger}
}

// RegisterRoutes registers the reporter routes to the Echo group.
func (h *ReporterHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/reporters", h.SaveReporter)
	g.GET("/reporters", h.GetAllReporters)
	g.GET("/reporters/:id", h.GetReporter)
	g.DELETE("/reporters/:id", h.DeleteReporter)
	g.GET("/reporters/:id/articles", h.GetReporterArticles)
	g.GET("/reporters/:id/events", h.GetReporterEvents)
	g.GET("/articles", h.GetAllArticles)
	g.GET("/articles/:id", h.GetArticle)
}

// SaveReporter godoc
// @Summary Create or update a reporter
// @Tags reporters
// @Accept json
// @Produce json
// @Param X-User-ID header string true "Tenant id"
// @Param reporter body dto.SaveReporterRequest true "Reporter to save"
// @Success 201 {object} entity.Reporter
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /reporters [post]
func (h *ReporterHandler) SaveReporter(c echo.Context) error {
	userID, err := tenantID(c)
	if err != nil {
		return err
	}

	var req dto.SaveReporterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}
	if req.Prompt == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "prompt is required"})
	}

	reporter := &entity.Reporter{
		ID:      req.ID,
		Beats:   req.Beats,
		Prompt:  req.Prompt,
		Enabled: req.Enabled,
	}
	if reporter.ID == "" {
		reporter.ID = utils.GenerateID("reporter")
	}

	if err := h.reporterRepo.Save(c.Request().Context(), userID, reporter); err != nil {
		h.logger.Error("failed to save reporter", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, reporter)
}

// GetAllReporters godoc
// @Summary List the tenant's reporters
// @Tags reporters
// @Produce json
// @Param X-User-ID header string true "Tenant id"
// @Success 200 {array} entity.Reporter
// @Failure 500 {object} dto.ErrorResponse
// @Router /reporters [get]
func (h *ReporterHandler) GetAllReporters(c echo.Context) error {
	userID, err := tenantID(c)
	if err != nil {
		return err
	}

	reporters, err := h.reporterRepo.GetAll(c.Request().Context(), userID)
	if err != nil {
		h.logger.Error("failed to list reporters", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, reporters)
}

// GetReporter godoc
// @Summary Get one reporter
// @Tags reporters
// @Produce json
// @Param X-User-ID header string true "Tenant id"
// @Param id path string true "Reporter id"
// @Success 200 {object} entity.Reporter
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /reporters/{id} [get]
func (h *ReporterHandler) GetReporter(c echo.Context) error {
	userID, err := tenantID(c)
	if err != nil {
		return err
	}

	reporter, err := h.reporterRepo.Get(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		h.logger.Error("failed to get reporter", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	if reporter == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "reporter not found"})
	}
	return c.JSON(http.StatusOK, reporter)
}

// DeleteReporter godoc
// @Summary Delete a reporter
// @Tags reporters
// @Produce json
// @Param X-User-ID header string true "Tenant id"
// @Param id path string true "Reporter id"
// @Success 204
// @Failure 500 {object} dto.ErrorResponse
// @Router /reporters/{id} [delete]
func (h *ReporterHandler) DeleteReporter(c echo.Context) error {
	userID, err := tenantID(c)
	if err != nil {
		return err
	}

	if err := h.reporterRepo.Delete(c.Request().Context(), userID, c.Param("id")); err != nil {
		h.logger.Error("failed to delete reporter", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.NoContent(http.StatusNoContent)
}

// GetReporterArticles godoc
// @Summary List a reporter's articles, newest first
// @Tags reporters
// @Produce json
// @Param X-User-ID header string true "Tenant id"
// @Param id path string true "Reporter id"
// @Param limit query int false "Maximum number of articles"
// @Success 200 {array} entity.Article
// @Failure 500 {object} dto.ErrorResponse
// @Router /reporters/{id}/articles [get]
func (h *ReporterHandler) GetReporterArticles(c echo.Context) error {
	userID, err := tenantID(c)
	if err != nil {
		return err
	}

	articles, err := h.articleRepo.GetByReporter(c.Request().Context(), userID, c.Param("id"), queryLimit(c))
	if err != nil {
		h.logger.Error("failed to list reporter articles", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, articles)
}

// GetReporterEvents godoc
// @Summary List a reporter's events, newest first
// @Tags reporters
// @Produce json
// @Param X-User-ID header string true "Tenant id"
// @Param id path string true "Reporter id"
// @Param limit query int false "Maximum number of events"
// @Success 200 {array} entity.Event
// @Failure 500 {object} dto.ErrorResponse
// @Router /reporters/{id}/events [get]
func (h *ReporterHandler) GetReporterEvents(c echo.Context) error {
	userID, err := tenantID(c)
	if err != nil {
		return err
	}

	events, err := h.eventRepo.GetByReporter(c.Request().Context(), userID, c.Param("id"), queryLimit(c))
	if err != nil {
		h.logger.Error("failed to list reporter events", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, events)
}

// GetAllArticles godoc
// @Summary List all of the tenant's articles, newest first
// @Tags articles
// @Produce json
// @Param X-User-ID header string true "Tenant id"
// @Param limit query int false "Maximum number of articles"
// @Success 200 {array} entity.Article
// @Failure 500 {object} dto.ErrorResponse
// @Router /articles [get]
func (h *ReporterHandler) GetAllArticles(c echo.Context) error {
	userID, err := tenantID(c)
	if err != nil {
		return err
	}

	articles, err := h.articleRepo.GetAll(c.Request().Context(), userID, queryLimit(c))
	if err != nil {
		h.logger.Error("failed to list articles", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, articles)
}

// GetArticle godoc
// @Summary Get one article
// @Tags articles
// @Produce json
// @Param X-User-ID header string true "Tenant id"
// @Param id path string true "Article id"
// @Success 200 {object} entity.Article
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /articles/{id} [get]
func (h *ReporterHandler) GetArticle(c echo.Context) error {
	userID, err := tenantID(c)
	if err != nil {
		return err
	}

	article, err := h.articleRepo.Get(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		h.logger.Error("failed to get article", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	if article == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "article not found"})
	}
	return c.JSON(http.StatusOK, article)
}

// queryLimit parses the optional "limit" query parameter; zero means no
// limit.
func queryLimit(c echo.Context) int {
	limit, err := strconv.Atoi(c.QueryParam("limit"))
	if err != nil || limit < 0 {
		return 0
	}
	return limit
}
