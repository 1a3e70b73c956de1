package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/gss-portal/internal/services"
	"github.com/localnerve/gss-portal/internal/utils"
	"gorm.io/gorm"
)

// AdminHandler handles the staff-only lifecycle and configuration routes
type AdminHandler struct {
	DB         *gorm.DB
	Dispatcher services.Dispatcher
}

// GetConfig handles GET /api/admin/config
// @Summary Get the application window configuration
// @Tags Admin
// @Produce json
// @Success 200 {object} models.ApplicationConfig
// @Failure 403 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /admin/config [get]
func (h *AdminHandler) GetConfig(c *fiber.Ctx) error {
	cfg, err := services.GetConfig(h.DB)
	if err != nil {
		return utils.DomainErrorResponse(c, err, "getConfig")
	}
	return utils.SuccessResponse(c, cfg, fiber.StatusOK)
}

// UpdateConfig handles PUT /api/admin/config
// @Summary Update the application window configuration
// @Tags Admin
// @Accept json
// @Produce json
// @Param config body services.ConfigUpdate true "Window settings"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /admin/config [put]
func (h *AdminHandler) UpdateConfig(c *fiber.Ctx) error {
	var update services.ConfigUpdate
	if err := c.BodyParser(&update); err != nil {
		return utils.ErrorResponse(c, "Invalid request body", fiber.StatusBadRequest, "updateConfig")
	}

	cfg, err := services.UpdateConfig(h.DB, update)
	if err != nil {
		return utils.DomainErrorResponse(c, err, "updateConfig")
	}

	return utils.MutationSuccessResponse(c, cfg)
}

// StartContinuation handles POST /api/applications/:id/continue
// @Summary Spawn the next-year continuing application
// @Description Atomic create-or-fetch of the continuation row for an approved application
// @Tags Admin
// @Produce json
// @Param id path int true "Application ID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /applications/{id}/continue [post]
func (h *AdminHandler) StartContinuation(c *fiber.Ctx) error {
	appID, err := parseIDParam(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest, "startContinuation")
	}

	continuation, events, err := services.CreateContinuingApplication(h.DB, appID, time.Now().UTC())
	if err != nil {
		return utils.DomainErrorResponse(c, err, "startContinuation")
	}

	dispatchEvents(h.Dispatcher, events)

	if continuation == nil {
		return utils.ErrorResponse(c,
			"Application is not eligible for a continuing cycle", fiber.StatusConflict, "startContinuation")
	}
	return utils.MutationSuccessResponse(c, fiber.Map{
		"application_id": continuation.ApplicationID,
		"year_of_study":  continuation.YearOfStudy,
		"status":         continuation.Status,
	})
}

// AdvanceYear handles POST /api/applications/:id/advance
// @Summary Advance the year counter on the current row
// @Description Administrative same-row year advance; marks GRADUATING at program length
// @Tags Admin
// @Produce json
// @Param id path int true "Application ID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /applications/{id}/advance [post]
func (h *AdminHandler) AdvanceYear(c *fiber.Ctx) error {
	appID, err := parseIDParam(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest, "advanceYear")
	}

	advanced, events, err := services.IncrementYearAndCheckGraduation(h.DB, appID)
	if err != nil {
		return utils.DomainErrorResponse(c, err, "advanceYear")
	}

	dispatchEvents(h.Dispatcher, events)

	return utils.MutationSuccessResponse(c, fiber.Map{"advanced": advanced})
}

// MarkPassout handles POST /api/applications/:id/passout
// @Summary Mark an application as passed out
// @Description Terminal transition; no further transitions are defined from PASSOUT
// @Tags Admin
// @Produce json
// @Param id path int true "Application ID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /applications/{id}/passout [post]
func (h *AdminHandler) MarkPassout(c *fiber.Ctx) error {
	reviewerID, err := getUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusForbidden, "portal.authorization.staff")
	}

	appID, err := parseIDParam(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest, "markPassout")
	}

	review, events, err := services.MarkPassout(h.DB, appID, reviewerID, true)
	if err != nil {
		return utils.DomainErrorResponse(c, err, "markPassout")
	}

	dispatchEvents(h.Dispatcher, events)

	result := fiber.Map{"changed": review != nil}
	if review != nil {
		result["review_id"] = review.ReviewID
	}
	return utils.MutationSuccessResponse(c, result)
}
