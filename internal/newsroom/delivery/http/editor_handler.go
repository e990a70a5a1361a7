package http

import (
	"net/http"

	"golang-ai-newsroom/internal/entity"
	"golang-ai-newsroom/internal/newsroom/dto"
	"golang-ai-newsroom/internal/newsroom/repository"
	"golang-ai-newsroom/internal/newsroom/service"
	"golang-ai-newsroom/pkg/logger"

	"github.com/labstack/echo/v4"
)

// EditorHandler handles HTTP requests for the editor configuration and the
// curated editions.
type EditorHandler struct {
	editorRepo       repository.EditorRepository
	editionRepo      repository.EditionRepository
	dailyEditionRepo repository.DailyEditionRepository
	editorService    service.EditorService
	logger           *logger.Logger
}

// NewEditorHandler creates a new EditorHandler.
func NewEditorHandler(
	editorRepo repository.EditorRepository,
	editionRepo repository.EditionRepository,
	dailyEditionRepo repository.DailyEditionRepository,
	editorService service.EditorService,
	logger *logger.Logger,
) *EditorHandler {
	return &EditorHandler{
		editorRepo:       editorRepo,
		editionRepo:      editionRepo,
		dailyEditionRepo: dailyEditionRepo,
		editorService:    editorService,
		logger:           logger,
	}
}

// RegisterRoutes registers the editor routes to the Echo group.
func (h *EditorHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/editor", h.GetEditor)
	g.POST("/editor", h.SaveEditor)
	g.GET("/editions", h.GetAllEditions)
	g.GET("/editions/latest", h.GetLatestEdition)
	g.GET("/editions/:id", h.GetEdition)
	g.GET("/daily-editions", h.GetAllDailyEditions)
	g.GET("/daily-editions/latest", h.GetLatestDailyEdition)
	g.GET("/daily-editions/:id", h.GetDailyEdition)
}

// GetEditor godoc
// @Summary Get the tenant's editor configuration
// @Tags editor
// @Produce json
// @Param X-User-ID header string true "Tenant id"
// @Success 200 {object} entity.Editor
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /editor [get]
func (h *EditorHandler) GetEditor(c echo.Context) error {
	userID, err := tenantID(c)
	if err != nil {
		return err
	}

	editor, err := h.editorRepo.Get(c.Request().Context(), userID)
	if err != nil {
		h.logger.Error("failed to get editor", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	if editor == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "editor not configured"})
	}
	return c.JSON(http.StatusOK, editor)
}

// SaveEditor godoc
// @Summary Create or update the tenant's editor configuration
// @Tags editor
// @Accept json
// @Produce json
// @Param X-User-ID header string true "Tenant id"
// @Param editor body dto.SaveEditorRequest true "Editor configuration"
// @Success 200 {object} entity.Editor
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /editor [post]
func (h *EditorHandler) SaveEditor(c echo.Context) error {
	userID, err := tenantID(c)
	if err != nil {
		return err
	}

	var req dto.SaveEditorRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}
	if req.Bio == "" || req.Prompt == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "bio and prompt are required"})
	}

	editor := &entity.Editor{
		Bio:                            req.Bio,
		Prompt:                         req.Prompt,
		ModelName:                      req.ModelName,
		MessageSliceCount:              req.MessageSliceCount,
		InputTokenCost:                 req.InputTokenCost,
		OutputTokenCost:                req.OutputTokenCost,
		ArticleGenerationPeriodMinutes: req.ArticleGenerationPeriodMinutes,
		EventGenerationPeriodMinutes:   req.EventGenerationPeriodMinutes,
		EditionGenerationPeriodMinutes: req.EditionGenerationPeriodMinutes,
	}
	applyEditorDefaults(editor)

	if err := h.editorRepo.Save(c.Request().Context(), userID, editor); err != nil {
		if err == entity.ErrInvalidPeriod || err == entity.ErrInvalidTokenCost {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		h.logger.Error("failed to save editor", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, editor)
}

// GetAllEditions godoc
// @Summary List the tenant's newspaper editions, newest first
// @Tags editions
// @Produce json
// @Param X-User-ID header string true "Tenant id"
// @Param limit query int false "Maximum number of editions"
// @Success 200 {array} entity.NewspaperEdition
// @Failure 500 {object} dto.ErrorResponse
// @Router /editions [get]
func (h *EditorHandler) GetAllEditions(c echo.Context) error {
	userID, err := tenantID(c)
	if err != nil {
		return err
	}

	editions, err := h.editionRepo.GetAll(c.Request().Context(), userID, queryLimit(c))
	if err != nil {
		h.logger.Error("failed to list editions", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, editions)
}

// GetLatestEdition godoc
// @Summary Get the most recent newspaper edition with its articles
// @Tags editions
// @Produce json
// @Param X-User-ID header string true "Tenant id"
// @Success 200 {object} dto.EditionWithArticles
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /editions/latest [get]
func (h *EditorHandler) GetLatestEdition(c echo.Context) error {
	userID, err := tenantID(c)
	if err != nil {
		return err
	}

	edition, err := h.editorService.GetLatestEdition(c.Request().Context(), userID)
	if err != nil {
		h.logger.Error("failed to get latest edition", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	if edition == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "no editions yet"})
	}
	return h.respondEditionWithArticles(c, userID, edition.ID)
}

// GetEdition godoc
// @Summary Get one newspaper edition with its articles
// @Tags editions
// @Produce json
// @Param X-User-ID header string true "Tenant id"
// @Param id path string true "Edition id"
// @Success 200 {object} dto.EditionWithArticles
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /editions/{id} [get]
func (h *EditorHandler) GetEdition(c echo.Context) error {
	userID, err := tenantID(c)
	if err != nil {
		return err
	}
	return h.respondEditionWithArticles(c, userID, c.Param("id"))
}

func (h *EditorHandler) respondEditionWithArticles(c echo.Context, userID, editionID string) error {
	edition, articles, err := h.editorService.GetEditionWithArticles(c.Request().Context(), userID, editionID)
	if err != nil {
		h.logger.Error("failed to resolve edition", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	if edition == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "edition not found"})
	}
	return c.JSON(http.StatusOK, dto.EditionWithArticles{Edition: edition, Articles: articles})
}

// GetAllDailyEditions godoc
// @Summary List the tenant's daily editions, newest first
// @Tags daily-editions
// @Produce json
// @Param X-User-ID header string true "Tenant id"
// @Param limit query int false "Maximum number of daily editions"
// @Success 200 {array} entity.DailyEdition
// @Failure 500 {object} dto.ErrorResponse
// @Router /daily-editions [get]
func (h *EditorHandler) GetAllDailyEditions(c echo.Context) error {
	userID, err := tenantID(c)
	if err != nil {
		return err
	}

	dailyEditions, err := h.dailyEditionRepo.GetAll(c.Request().Context(), userID, queryLimit(c))
	if err != nil {
		h.logger.Error("failed to list daily editions", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, dailyEditions)
}

// GetLatestDailyEdition godoc
// @Summary Get the most recent daily edition with its editions
// @Tags daily-editions
// @Produce json
// @Param X-User-ID header string true "Tenant id"
// @Success 200 {object} dto.DailyEditionWithEditions
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /daily-editions/latest [get]
func (h *EditorHandler) GetLatestDailyEdition(c echo.Context) error {
	userID, err := tenantID(c)
	if err != nil {
		return err
	}

	dailyEdition, err := h.editorService.GetLatestDailyEdition(c.Request().Context(), userID)
	if err != nil {
		h.logger.Error("failed to get latest daily edition", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	if dailyEdition == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "no daily editions yet"})
	}
	return h.respondDailyEditionWithEditions(c, userID, dailyEdition.ID)
}

// GetDailyEdition godoc
// @Summary Get one daily edition with its editions
// @Tags daily-editions
// @Produce json
// @Param X-User-ID header string true "Tenant id"
// @Param id path string true "Daily edition id"
// @Success 200 {object} dto.DailyEditionWithEditions
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /daily-editions/{id} [get]
func (h *EditorHandler) GetDailyEdition(c echo.Context) error {
	userID, err := tenantID(c)
	if err != nil {
		return err
	}
	return h.respondDailyEditionWithEditions(c, userID, c.Param("id"))
}

func (h *EditorHandler) respondDailyEditionWithEditions(c echo.Context, userID, dailyEditionID string) error {
	dailyEdition, editions, err := h.editorService.GetDailyEditionWithEditions(c.Request().Context(), userID, dailyEditionID)
	if err != nil {
		h.logger.Error("failed to resolve daily edition", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	if dailyEdition == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "daily edition not found"})
	}
	return c.JSON(http.StatusOK, dto.DailyEditionWithEditions{DailyEdition: dailyEdition, Editions: editions})
}

// applyEditorDefaults fills unset numeric fields with the documented
// defaults so Validate passes for minimal payloads.
func applyEditorDefaults(editor *entity.Editor) {
	if editor.ModelName == "" {
		editor.ModelName = entity.DefaultModelName
	}
	if editor.MessageSliceCount == 0 {
		editor.MessageSliceCount = entity.DefaultMessageSliceCount
	}
	if editor.InputTokenCost == 0 {
		editor.InputTokenCost = entity.DefaultInputTokenCost
	}
	if editor.OutputTokenCost == 0 {
		editor.OutputTokenCost = entity.DefaultOutputTokenCost
	}
	if editor.ArticleGenerationPeriodMinutes == 0 {
		editor.ArticleGenerationPeriodMinutes = entity.DefaultArticleGenerationPeriodMinutes
	}
	if editor.EventGenerationPeriodMinutes == 0 {
		editor.EventGenerationPeriodMinutes = entity.DefaultEventGenerationPeriodMinutes
	}
	if editor.EditionGenerationPeriodMinutes == 0 {
		editor.EditionGenerationPeriodMinutes = entity.DefaultEditionGenerationPeriodMinutes
	}
}
