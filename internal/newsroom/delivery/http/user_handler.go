package http

import (
	"errors"
	"net/http"

	"golang-ai-newsroom/internal/entity"
	"golang-ai-newsroom/internal/newsroom/dto"
	"golang-ai-newsroom/internal/newsroom/repository"
	"golang-ai-newsroom/internal/newsroom/service"
	"golang-ai-newsroom/pkg/logger"

	"github.com/labstack/echo/v4"
)

// UserHandler handles HTTP requests for accounts, tenant AI configuration,
// usage counters and KPIs.
type UserHandler struct {
	userRepo   repository.UserRepository
	kpiService service.KpiService
	logger     *logger.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userRepo repository.UserRepository, kpiService service.KpiService, logger *logger.Logger) *UserHandler {
	return &UserHandler{userRepo: userRepo, kpiService: kpiService, logger: logger}
}

// RegisterRoutes registers the user routes to the Echo group.
func (h *UserHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/users", h.CreateUser)
	g.GET("/users", h.GetAllUsers)
	g.GET("/users/:id", h.GetUser)
	g.DELETE("/users/:id", h.DeleteUser)
	g.GET("/ai-config", h.GetAIConfig)
	g.PUT("/ai-config", h.UpdateAIConfig)
	g.GET("/usage", h.GetUsage)
	g.GET("/kpis", h.GetKpis)
}

// CreateUser godoc
// @Summary Register a new account
// @Tags users
// @Accept json
// @Produce json
// @Param user body dto.CreateUserRequest true "Account to create"
// @Success 201 {object} entity.User
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /users [post]
func (h *UserHandler) CreateUser(c echo.Context) error {
	var req dto.CreateUserRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}
	if req.Email == "" || req.PasswordHash == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email and passwordHash are required"})
	}

	role := entity.Role(req.Role)
	if role == "" {
		role = entity.RoleUser
	}

	user, err := h.userRepo.Create(c.Request().Context(), &entity.User{
		Email:        req.Email,
		PasswordHash: req.PasswordHash,
		Role:         role,
	})
	if err != nil {
		if errors.Is(err, entity.ErrDuplicateEmail) {
			return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
		}
		h.logger.Error("failed to create user", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, user)
}

// GetAllUsers godoc
// @Summary List all accounts
// @Tags users
// @Produce json
// @Param X-User-Role header string true "Caller role"
// @Success 200 {array} entity.User
// @Failure 403 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /users [get]
func (h *UserHandler) GetAllUsers(c echo.Context) error {
	if err := requireRole(c, string(entity.RoleAdmin)); err != nil {
		return err
	}
	users, err := h.userRepo.GetAll(c.Request().Context())
	if err != nil {
		h.logger.Error("failed to list users", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, users)
}

// GetUser godoc
// @Summary Get one account
// @Tags users
// @Produce json
// @Param id path string true "User id"
// @Success 200 {object} entity.User
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /users/{id} [get]
func (h *UserHandler) GetUser(c echo.Context) error {
	user, err := h.userRepo.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		h.logger.Error("failed to get user", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	if user == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
	}
	return c.JSON(http.StatusOK, user)
}

// DeleteUser godoc
// @Summary Delete an account
// @Tags users
// @Produce json
// @Param X-User-Role header string true "Caller role"
// @Param id path string true "User id"
// @Success 204
// @Failure 403 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /users/{id} [delete]
func (h *UserHandler) DeleteUser(c echo.Context) error {
	if err := requireRole(c, string(entity.RoleAdmin)); err != nil {
		return err
	}
	if err := h.userRepo.Delete(c.Request().Context(), c.Param("id")); err != nil {
		h.logger.Error("failed to delete user", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.NoContent(http.StatusNoContent)
}

// GetAIConfig godoc
// @Summary Get the tenant's AI configuration
// @Tags ai-config
// @Produce json
// @Param X-User-ID header string true "Tenant id"
// @Success 200 {object} entity.AIConfig
// @Failure 500 {object} dto.ErrorResponse
// @Router /ai-config [get]
func (h *UserHandler) GetAIConfig(c echo.Context) error {
	userID, err := tenantID(c)
	if err != nil {
		return err
	}

	aiConfig, err := h.userRepo.GetAIConfig(c.Request().Context(), userID)
	if err != nil {
		h.logger.Error("failed to get AI config", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, aiConfig)
}

// UpdateAIConfig godoc
// @Summary Update the tenant's AI configuration
// @Tags ai-config
// @Accept json
// @Produce json
// @Param X-User-ID header string true "Tenant id"
// @Param config body entity.AIConfig true "AI configuration"
// @Success 200 {object} entity.AIConfig
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /ai-config [put]
func (h *UserHandler) UpdateAIConfig(c echo.Context) error {
	userID, err := tenantID(c)
	if err != nil {
		return err
	}

	var aiConfig entity.AIConfig
	if err := c.Bind(&aiConfig); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}

	if err := h.userRepo.UpdateAIConfig(c.Request().Context(), userID, &aiConfig); err != nil {
		h.logger.Error("failed to update AI config", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, aiConfig)
}

// GetUsage godoc
// @Summary Get the tenant's cumulative usage counters
// @Tags usage
// @Produce json
// @Param X-User-ID header string true "Tenant id"
// @Success 200 {object} entity.UsageStats
// @Failure 500 {object} dto.ErrorResponse
// @Router /usage [get]
func (h *UserHandler) GetUsage(c echo.Context) error {
	userID, err := tenantID(c)
	if err != nil {
		return err
	}

	stats, err := h.kpiService.GetUsageStats(c.Request().Context(), userID)
	if err != nil {
		h.logger.Error("failed to get usage stats", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, stats)
}

// GetKpis godoc
// @Summary Get the tenant's KPI counters
// @Tags kpis
// @Produce json
// @Param X-User-ID header string true "Tenant id"
// @Success 200 {array} dto.KpiResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /kpis [get]
func (h *UserHandler) GetKpis(c echo.Context) error {
	userID, err := tenantID(c)
	if err != nil {
		return err
	}

	kpis := make([]dto.KpiResponse, 0, len(entity.KpiNames))
	for _, name := range entity.KpiNames {
		value, err := h.kpiService.GetKpi(c.Request().Context(), userID, name)
		if err != nil {
			h.logger.Error("failed to get kpi", logger.StringField("kpi", name), logger.ErrorField(err))
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		kpis = append(kpis, dto.KpiResponse{Name: name, Value: value})
	}
	return c.JSON(http.StatusOK, kpis)
}
