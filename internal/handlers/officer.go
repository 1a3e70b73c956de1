// officer.go
//
// A scholarship-application management portal data service
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of gss-portal.
// gss-portal is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// gss-portal is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with gss-portal.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package handlers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/gss-portal/internal/services"
	"github.com/localnerve/gss-portal/internal/utils"
	"gorm.io/gorm"
)

// OfficerHandler handles the officer review routes
type OfficerHandler struct {
	DB           *gorm.DB
	Reader       services.PaymentReader
	Store        services.DocumentStore
	Dispatcher   services.Dispatcher
	SignedURLTTL time.Duration
}

// SetStatusInput is the officer status-change payload.
type SetStatusInput struct {
	Status string `json:"status"`
	Note   string `json:"note"`
	Notify *bool  `json:"notify"`
}

// ReviewInput is the officer review-authoring payload.
type ReviewInput struct {
	Status string `json:"status"`
	Note   string `json:"note"`
	Notify *bool  `json:"notify"`
}

// ListApplications handles GET /api/officer/applications
// @Summary List applications for review
// @Description Filterable review queue, newest first
// @Tags Officer
// @Produce json
// @Param status query string false "Filter by application status"
// @Param institution_id query int false "Filter by institution"
// @Param continuing query bool false "Filter by continuing flag"
// @Param limit query int false "Page size (default 50)"
// @Param offset query int false "Page offset"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /officer/applications [get]
func (h *OfficerHandler) ListApplications(c *fiber.Ctx) error {
	filter := services.OfficerListFilter{
		Status: c.Query("status"),
		Limit:  c.QueryInt("limit"),
		Offset: c.QueryInt("offset"),
	}
	if raw := c.Query("institution_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return utils.ErrorResponse(c, "invalid institution_id parameter", fiber.StatusBadRequest, "officerList")
		}
		filter.InstitutionID = id
	}
	if raw := c.Query("continuing"); raw != "" {
		continuing := raw == "true" || raw == "1"
		filter.IsContinuing = &continuing
	}

	apps, total, err := services.ListApplicationsForOfficer(h.DB, filter)
	if err != nil {
		return utils.DomainErrorResponse(c, err, "officerList")
	}

	return utils.SuccessResponse(c, fiber.Map{
		"total":        total,
		"applications": apps,
	}, fiber.StatusOK)
}

// GetApplication handles GET /api/officer/applications/:id
// @Summary Get one application
// @Description Full application detail with review history and financial summary
// @Tags Officer
// @Produce json
// @Param id path int true "Application ID"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /officer/applications/{id} [get]
func (h *OfficerHandler) GetApplication(c *fiber.Ctx) error {
	appID, err := parseIDParam(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest, "officerGet")
	}

	app, err := services.GetApplication(h.DB, appID)
	if err != nil {
		return utils.DomainErrorResponse(c, err, "officerGet")
	}

	summary, err := services.Summarize(h.Reader, app, app.Course)
	if err != nil {
		return utils.DomainErrorResponse(c, err, "officerGet")
	}

	return utils.SuccessResponse(c, fiber.Map{
		"application": app,
		"reference":   app.UniqueID(),
		"finance":     summary,
	}, fiber.StatusOK)
}

// Dashboard handles GET /api/officer/dashboard
// @Summary Officer dashboard aggregates
// @Description Totals by status and institution, plus approved-pool financial totals
// @Tags Officer
// @Produce json
// @Success 200 {object} services.DashboardStats
// @Failure 403 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /officer/dashboard [get]
func (h *OfficerHandler) Dashboard(c *fiber.Ctx) error {
	stats, err := services.DashboardStatsQuery(h.DB)
	if err != nil {
		return utils.DomainErrorResponse(c, err, "officerDashboard")
	}
	return utils.SuccessResponse(c, stats, fiber.StatusOK)
}

// SetStatus handles POST /api/applications/:id/status
// @Summary Change an application's status
// @Description Apply a status transition with its audit review record
// @Tags Officer
// @Accept json
// @Produce json
// @Param id path int true "Application ID"
// @Param transition body SetStatusInput true "Transition payload"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /applications/{id}/status [post]
func (h *OfficerHandler) SetStatus(c *fiber.Ctx) error {
	reviewerID, err := getUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusForbidden, "portal.authorization.officer")
	}

	appID, err := parseIDParam(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest, "setStatus")
	}

	var input SetStatusInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, "Invalid request body", fiber.StatusBadRequest, "setStatus")
	}
	notify := input.Notify == nil || *input.Notify

	review, events, err := services.SetStatus(h.DB, appID, input.Status, reviewerID, input.Note, notify)
	if err != nil {
		return utils.DomainErrorResponse(c, err, "setStatus")
	}

	dispatchEvents(h.Dispatcher, events)

	if review == nil {
		// Same-status no-op
		return utils.MutationSuccessResponse(c, fiber.Map{"changed": false})
	}
	return utils.MutationSuccessResponse(c, fiber.Map{
		"changed":   true,
		"review_id": review.ReviewID,
		"status":    input.Status,
	})
}

// PostReview handles POST /api/applications/:id/reviews
// @Summary Author a review
// @Description Record an officer review; the derived application status stays authoritative
// @Tags Officer
// @Accept json
// @Produce json
// @Param id path int true "Application ID"
// @Param review body ReviewInput true "Review payload"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /applications/{id}/reviews [post]
func (h *OfficerHandler) PostReview(c *fiber.Ctx) error {
	reviewerID, err := getUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusForbidden, "portal.authorization.officer")
	}

	appID, err := parseIDParam(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest, "postReview")
	}

	var input ReviewInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, "Invalid request body", fiber.StatusBadRequest, "postReview")
	}
	notify := input.Notify == nil || *input.Notify

	review, events, err := services.ApplyReview(h.DB, appID, reviewerID, input.Note, input.Status, notify)
	if err != nil {
		return utils.DomainErrorResponse(c, err, "postReview")
	}

	dispatchEvents(h.Dispatcher, events)

	return utils.MutationSuccessResponse(c, fiber.Map{
		"review_id": review.ReviewID,
		"status":    review.Status,
	})
}

// GetDocument handles GET /api/documents/*
// @Summary Get a signed document URL
// @Description Issue a time-limited signed retrieval URL for a stored document
// @Tags Officer
// @Produce json
// @Param key path string true "Document storage key"
// @Success 302
// @Failure 403 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /documents/{key} [get]
func (h *OfficerHandler) GetDocument(c *fiber.Ctx) error {
	key := c.Params("*")
	if key == "" {
		return utils.ErrorResponse(c, "missing document key", fiber.StatusBadRequest, "getDocument")
	}

	ttl := h.SignedURLTTL
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	url, err := h.Store.SignedURL(key, time.Now().Add(ttl))
	if err != nil {
		return utils.DomainErrorResponse(c, err, "getDocument")
	}

	return c.Redirect(url, fiber.StatusFound)
}
