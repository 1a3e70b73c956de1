// common.go
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
	"context"
	"fmt"
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/gss-portal/internal/services"
)

// getUserID extracts the account ID from context (set by auth middleware)
func getUserID(c *fiber.Ctx) (string, error) {
	user := c.Locals("user")
	if user == nil {
		return "", fmt.Errorf("user not found in context")
	}

	userMap, ok := user.(map[string]interface{})
	if !ok {
		return "", fmt.Errorf("invalid user data format")
	}

	userID, ok := userMap["id"].(string)
	if !ok {
		return "", fmt.Errorf("user ID not found")
	}

	return userID, nil
}

// getUserEmail extracts the account email from context.
func getUserEmail(c *fiber.Ctx) string {
	user := c.Locals("user")
	if user == nil {
		return ""
	}
	if userMap, ok := user.(map[string]interface{}); ok {
		if email, ok := userMap["email"].(string); ok {
			return email
		}
	}
	return ""
}

// parseIDParam parses a numeric route parameter.
func parseIDParam(c *fiber.Ctx, name string) (uint64, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid %s parameter", name)
	}
	return id, nil
}

// dispatchEvents forwards committed domain events to the notifier in the
// background. Called only after the owning transaction has committed.
func dispatchEvents(dispatcher services.Dispatcher, events []services.Event) {
	if dispatcher == nil || len(events) == 0 {
		return
	}
	go func() {
		if err := dispatcher.Dispatch(context.Background(), events); err != nil {
			log.Printf("Failed to dispatch %d event(s): %v", len(events), err)
		}
	}()
}
