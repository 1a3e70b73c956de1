// applications.go
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
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/gss-portal/internal/services"
	"github.com/localnerve/gss-portal/internal/utils"
	"gorm.io/gorm"
)

// ApplicationHandler handles the applicant-facing application routes
type ApplicationHandler struct {
	DB     *gorm.DB
	Reader services.PaymentReader
	Store  services.DocumentStore
}

// SubmitApplication handles POST /api/applications
// @Summary Submit a new application
// @Description Create a first-time scholarship application for the signed-in account
// @Tags Applications
// @Accept json
// @Produce json
// @Param application body services.NewApplicationInput true "Application payload"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 422 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /applications [post]
func (h *ApplicationHandler) SubmitApplication(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusForbidden, "portal.authorization.applicant")
	}

	var input services.NewApplicationInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, "Invalid request body", fiber.StatusBadRequest, "submitApplication")
	}
	if input.Email == "" {
		input.Email = getUserEmail(c)
	}

	app, err := services.SubmitNewApplication(h.DB, userID, input)
	if err != nil {
		return utils.DomainErrorResponse(c, err, "submitApplication")
	}

	return utils.MutationSuccessResponse(c, fiber.Map{
		"application_id": app.ApplicationID,
		"status":         app.Status,
	})
}

// ListApplications handles GET /api/applications
// @Summary List own applications
// @Description List the account's applications with derived financial summaries
// @Tags Applications
// @Produce json
// @Success 200 {array} services.ApplicationView
// @Failure 403 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /applications [get]
func (h *ApplicationHandler) ListApplications(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusForbidden, "portal.authorization.applicant")
	}

	views, err := services.ListApplicantApplications(h.DB, h.Reader, userID)
	if err != nil {
		return utils.DomainErrorResponse(c, err, "listApplications")
	}

	return utils.SuccessResponse(c, views, fiber.StatusOK)
}

// EditApplication handles PUT /api/applications/:id
// @Summary Edit a continuing application once
// @Description Apply the one-time edit to a continuing application
// @Tags Applications
// @Accept json
// @Produce json
// @Param id path int true "Application ID"
// @Param edit body services.ContinuingEditInput true "Edit payload"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /applications/{id} [put]
func (h *ApplicationHandler) EditApplication(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusForbidden, "portal.authorization.applicant")
	}

	appID, err := parseIDParam(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest, "editApplication")
	}

	var input services.ContinuingEditInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, "Invalid request body", fiber.StatusBadRequest, "editApplication")
	}

	app, err := services.EditContinuingApplication(h.DB, appID, userID, input)
	if err != nil {
		return utils.DomainErrorResponse(c, err, "editApplication")
	}

	return utils.MutationSuccessResponse(c, fiber.Map{
		"application_id": app.ApplicationID,
		"has_edited":     true,
	})
}

// UploadDocument handles POST /api/applications/:id/documents
// @Summary Upload the supporting PDF bundle
// @Description Attach the scanned PDF bundle to an application (10MB cap)
// @Tags Applications
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Application ID"
// @Param document formData file true "PDF document"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /applications/{id}/documents [post]
func (h *ApplicationHandler) UploadDocument(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusForbidden, "portal.authorization.applicant")
	}

	appID, err := parseIDParam(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest, "uploadDocument")
	}

	fileHeader, err := c.FormFile("document")
	if err != nil {
		return utils.ErrorResponse(c, "Missing document file", fiber.StatusBadRequest, "uploadDocument")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return utils.ErrorResponse(c, "Unable to read document file", fiber.StatusBadRequest, "uploadDocument")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return utils.ErrorResponse(c, "Unable to read document file", fiber.StatusBadRequest, "uploadDocument")
	}

	meta, err := services.AttachDocument(h.DB, h.Store, appID, userID, fileHeader.Filename, data)
	if err != nil {
		return utils.DomainErrorResponse(c, err, "uploadDocument")
	}

	return utils.MutationSuccessResponse(c, meta)
}
