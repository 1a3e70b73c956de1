package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/gss-portal/internal/config"
	"github.com/localnerve/gss-portal/internal/services"
	"github.com/localnerve/gss-portal/internal/utils"
	"gorm.io/gorm"
)

// PublicHandler handles the unauthenticated routes
type PublicHandler struct {
	DB    *gorm.DB
	Cfg   *config.Config
	Store *services.LocalDocumentStore
}

// Health handles GET /api/health
// @Summary Service health
// @Tags Public
// @Produce json
// @Success 200 {object} services.HealthCheckResult
// @Router /health [get]
func (h *PublicHandler) Health(c *fiber.Ctx) error {
	result := services.HealthCheck(h.Cfg, h.DB)
	status := fiber.StatusOK
	if result.Status != "healthy" {
		status = fiber.StatusServiceUnavailable
	}
	return utils.SuccessResponse(c, result, status)
}

// ListInstitutions handles GET /api/institutions
// @Summary List institutions
// @Tags Public
// @Produce json
// @Success 200 {array} models.Institution
// @Router /institutions [get]
func (h *PublicHandler) ListInstitutions(c *fiber.Ctx) error {
	institutions, err := services.ListInstitutions(h.DB)
	if err != nil {
		return utils.DomainErrorResponse(c, err, "listInstitutions")
	}
	return utils.SuccessResponse(c, institutions, fiber.StatusOK)
}

// ListCourses handles GET /api/institutions/:id/courses
// @Summary List an institution's courses
// @Description Populates the dependent course select
// @Tags Public
// @Produce json
// @Param id path int true "Institution ID"
// @Success 200 {array} models.Course
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /institutions/{id}/courses [get]
func (h *PublicHandler) ListCourses(c *fiber.Ctx) error {
	institutionID, err := parseIDParam(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest, "listCourses")
	}

	courses, err := services.ListCoursesByInstitution(h.DB, institutionID)
	if err != nil {
		return utils.DomainErrorResponse(c, err, "listCourses")
	}
	return utils.SuccessResponse(c, courses, fiber.StatusOK)
}

// WindowStatus handles GET /api/config/status
// @Summary Application window status
// @Description Whether submissions are open and the legacy path is still offered
// @Tags Public
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /config/status [get]
func (h *PublicHandler) WindowStatus(c *fiber.Ctx) error {
	cfg, err := services.GetConfig(h.DB)
	if err != nil {
		return utils.DomainErrorResponse(c, err, "windowStatus")
	}

	now := time.Now()
	return utils.SuccessResponse(c, fiber.Map{
		"open":        !cfg.IsClosedNow(now),
		"close_at":    cfg.CloseAt,
		"legacy_path": cfg.LegacyLookupEnabled && !cfg.RolloverDue(now),
		"rollover_at": cfg.RolloverAt,
	}, fiber.StatusOK)
}

// ServeDocument handles GET /media/*
// @Summary Serve a signed document
// @Description Validates the HMAC signature and expiry, then streams the stored PDF
// @Tags Public
// @Produce application/pdf
// @Param key path string true "Document storage key"
// @Param expires query int true "Expiry unix timestamp"
// @Param signature query string true "HMAC signature"
// @Success 200
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /media/{key} [get]
func (h *PublicHandler) ServeDocument(c *fiber.Ctx) error {
	key := c.Params("*")
	expires := int64(c.QueryInt("expires"))
	signature := c.Query("signature")

	if !h.Store.VerifySignedURL(key, signature, expires, time.Now()) {
		return utils.ErrorResponse(c, "Invalid or expired document link", fiber.StatusForbidden, "serveDocument")
	}

	data, err := h.Store.Open(key)
	if err != nil {
		return utils.NotFoundResponse(c, "Document not found")
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	return c.Send(data)
}
