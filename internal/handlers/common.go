// common.go
//
// SecurePulse wearable health monitoring service
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of securepulse.
// securepulse is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// securepulse is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with securepulse.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/securepulse/internal/middleware"
	"github.com/localnerve/securepulse/internal/services"
	"github.com/localnerve/securepulse/internal/store"
	"github.com/localnerve/securepulse/internal/types"
	"github.com/localnerve/securepulse/internal/utils"
	"go.uber.org/zap"
)

var errNoUser = &types.CustomError{
	Code:    fiber.StatusUnauthorized,
	Message: "Authorization token is required",
	Type:    types.ErrorTypeAuthorization,
}

// MessageResponse is the body of simple acknowledgements.
type MessageResponse struct {
	Message string `json:"message"`
}

// userID returns the caller id set by the auth middleware.
func userID(c *fiber.Ctx) (string, error) {
	claims, ok := middleware.CurrentUser(c)
	if !ok || claims.UserID == "" {
		return "", errNoUser
	}
	return claims.UserID, nil
}

// parseBody decodes the JSON body into dst. Malformed input yields a 400 *types.CustomError.
func parseBody(c *fiber.Ctx, dst any) error {
	if err := c.BodyParser(dst); err != nil {
		return types.NewError(fiber.StatusBadRequest, types.ErrorTypeValidation, "Invalid request body")
	}
	return nil
}

// respondError maps service and store errors onto the error envelope.
// notFound is the message used for owner-scoped misses.
func respondError(c *fiber.Ctx, log *zap.Logger, err error, notFound string) error {
	var validation *services.ValidationError
	var custom *types.CustomError

	switch {
	case errors.As(err, &custom):
		return utils.CustomErrorResponse(c, custom)
	case errors.As(err, &validation):
		return utils.ErrorResponse(c, validation.Message, fiber.StatusBadRequest, types.ErrorTypeValidation)
	case errors.Is(err, services.ErrUserExists):
		return utils.ErrorResponse(c, "User already exists", fiber.StatusBadRequest, types.ErrorTypeConflict)
	case errors.Is(err, services.ErrBraceletExists):
		return utils.ErrorResponse(c, "Bracelet already registered", fiber.StatusBadRequest, types.ErrorTypeConflict)
	case errors.Is(err, store.ErrDuplicate):
		return utils.ErrorResponse(c, "Resource already exists", fiber.StatusBadRequest, types.ErrorTypeConflict)
	case errors.Is(err, services.ErrInvalidCredentials):
		return utils.ErrorResponse(c, "Invalid email or password", fiber.StatusUnauthorized, types.ErrorTypeAuthorization)
	case errors.Is(err, services.ErrInvalidStatus):
		return utils.ErrorResponse(c, "Alert status cannot be set back to active", fiber.StatusBadRequest, types.ErrorTypeValidation)
	case errors.Is(err, services.ErrInvalidTransition):
		return utils.ErrorResponse(c, "Alert has already been closed with a different status", fiber.StatusConflict, types.ErrorTypeConflict)
	case errors.Is(err, store.ErrNotFound):
		return utils.NotFoundResponse(c, notFound)
	}

	log.Error("Request failed",
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.Error(err),
	)
	return utils.InternalErrorResponse(c)
}

func logger(log *zap.Logger) *zap.Logger {
	if log == nil {
		return zap.NewNop()
	}
	return log
}
