package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/gss-portal/internal/services"
	"github.com/localnerve/gss-portal/internal/utils"
	"gorm.io/gorm"
)

// LegacyHandler handles the legacy-student migration routes
type LegacyHandler struct {
	DB         *gorm.DB
	Dispatcher services.Dispatcher
}

// LegacyLookupInput is the lookup request payload.
type LegacyLookupInput struct {
	FirstName   string `json:"first_name"`
	Surname     string `json:"surname"`
	YearOfStudy *int   `json:"year_of_study"`
}

// LegacyConfirmInput is the confirm request payload.
type LegacyConfirmInput struct {
	InstitutionID uint64 `json:"institution_id"`
	CourseID      uint64 `json:"course_id"`
	YearOfStudy   int    `json:"year_of_study"`
}

// Lookup handles POST /api/legacy/lookup
// @Summary Look up legacy student records
// @Description Case-insensitive exact-name match against historical paper records, optionally narrowed by year
// @Tags Legacy
// @Accept json
// @Produce json
// @Param lookup body LegacyLookupInput true "Lookup criteria"
// @Success 200 {array} models.LegacyStudent
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /legacy/lookup [post]
func (h *LegacyHandler) Lookup(c *fiber.Ctx) error {
	if _, err := getUserID(c); err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusForbidden, "portal.authorization.applicant")
	}

	available, err := services.LegacyPathAvailable(h.DB, time.Now())
	if err != nil {
		return utils.DomainErrorResponse(c, err, "legacyLookup")
	}
	if !available {
		return utils.ErrorResponse(c,
			"Legacy lookup is no longer available, use the continuing application path",
			fiber.StatusForbidden, "portal.legacy.rollover")
	}

	var input LegacyLookupInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, "Invalid request body", fiber.StatusBadRequest, "legacyLookup")
	}

	candidates, err := services.LookupLegacy(h.DB, input.FirstName, input.Surname, input.YearOfStudy)
	if err != nil {
		return utils.DomainErrorResponse(c, err, "legacyLookup")
	}

	return utils.SuccessResponse(c, candidates, fiber.StatusOK)
}

// Confirm handles POST /api/legacy/:id/confirm
// @Summary Confirm a legacy record match
// @Description Bind the chosen legacy record to this account and create its continuing application
// @Tags Legacy
// @Accept json
// @Produce json
// @Param id path int true "Legacy record ID"
// @Param confirm body LegacyConfirmInput true "Selection payload"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 422 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /legacy/{id}/confirm [post]
func (h *LegacyHandler) Confirm(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusForbidden, "portal.authorization.applicant")
	}

	available, err := services.LegacyPathAvailable(h.DB, time.Now())
	if err != nil {
		return utils.DomainErrorResponse(c, err, "legacyConfirm")
	}
	if !available {
		return utils.ErrorResponse(c,
			"Legacy lookup is no longer available, use the continuing application path",
			fiber.StatusForbidden, "portal.legacy.rollover")
	}

	legacyID, err := parseIDParam(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest, "legacyConfirm")
	}

	var input LegacyConfirmInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, "Invalid request body", fiber.StatusBadRequest, "legacyConfirm")
	}

	app, events, err := services.ConfirmLegacy(h.DB, legacyID,
		input.InstitutionID, input.CourseID, input.YearOfStudy, userID, getUserEmail(c))
	if err != nil {
		return utils.DomainErrorResponse(c, err, "legacyConfirm")
	}

	dispatchEvents(h.Dispatcher, events)

	return utils.MutationSuccessResponse(c, fiber.Map{
		"application_id": app.ApplicationID,
		"status":         app.Status,
		"year_of_study":  app.YearOfStudy,
	})
}
