package http

import (
	"net/http"

	"golang-ai-newsroom/internal/entity"
	"golang-ai-newsroom/internal/newsroom/dto"
	"golang-ai-newsroom/internal/newsroom/repository"
	"golang-ai-newsroom/pkg/logger"
	"golang-ai-newsroom/pkg/utils"

	"github.com/labstack/echo/v4"
)

// AdHandler handles HTTP requests for ad entries.
type AdHandler struct {
	adRepo repository.AdRepository
	logger *logger.Logger
}

// NewAdHandler creates a new AdHandler.
func NewAdHandler(adRepo repository.AdRepository, logger *logger.Logger) *AdHandler {
	return &AdHandler{adRepo: adRepo, logger: logger}
}

// RegisterRoutes registers the ad routes to the Echo group.
func (h *AdHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/ads", h.SaveAd)
	g.GET("/ads", h.GetAllAds)
	g.GET("/ads/:id", h.GetAd)
	g.DELETE("/ads/:id", h.DeleteAd)
}

// SaveAd godoc
// @Summary Create an ad
// @Tags ads
// @Accept json
// @Produce json
// @Param X-User-ID header string true "Tenant id"
// @Param ad body dto.SaveAdRequest true "Ad to create"
// @Success 201 {object} entity.AdEntry
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /ads [post]
func (h *AdHandler) SaveAd(c echo.Context) error {
	userID, err := tenantID(c)
	if err != nil {
		return err
	}

	var req dto.SaveAdRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}

	ad := &entity.AdEntry{
		ID:            utils.GenerateID("ad"),
		UserID:        userID,
		Name:          req.Name,
		BidPrice:      req.BidPrice,
		PromptContent: req.PromptContent,
	}
	if err := h.adRepo.Save(c.Request().Context(), userID, ad); err != nil {
		h.logger.Error("failed to save ad", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, ad)
}

// GetAllAds godoc
// @Summary List the tenant's ads
// @Tags ads
// @Produce json
// @Param X-User-ID header string true "Tenant id"
// @Success 200 {array} entity.AdEntry
// @Failure 500 {object} dto.ErrorResponse
// @Router /ads [get]
func (h *AdHandler) GetAllAds(c echo.Context) error {
	userID, err := tenantID(c)
	if err != nil {
		return err
	}

	ads, err := h.adRepo.GetAll(c.Request().Context(), userID)
	if err != nil {
		h.logger.Error("failed to list ads", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, ads)
}

// GetAd godoc
// @Summary Get one ad
// @Tags ads
// @Produce json
// @Param X-User-ID header string true "Tenant id"
// @Param id path string true "Ad id"
// @Success 200 {object} entity.AdEntry
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /ads/{id} [get]
func (h *AdHandler) GetAd(c echo.Context) error {
	userID, err := tenantID(c)
	if err != nil {
		return err
	}

	ad, err := h.adRepo.Get(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		h.logger.Error("failed to get ad", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	if ad == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "ad not found"})
	}
	return c.JSON(http.StatusOK, ad)
}

// DeleteAd godoc
// @Summary Delete an ad
// @Tags ads
// @Produce json
// @Param X-User-ID header string true "Tenant id"
// @Param id path string true "Ad id"
// @Success 204
// @Failure 500 {object} dto.ErrorResponse
// @Router /ads/{id} [delete]
func (h *AdHandler) DeleteAd(c echo.Context) error {
	userID, err := tenantID(c)
	if err != nil {
		return err
	}

	if err := h.adRepo.Delete(c.Request().Context(), userID, c.Param("id")); err != nil {
		h.logger.Error("failed to delete ad", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.NoContent(http.StatusNoContent)
}
