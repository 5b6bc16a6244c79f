package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/securepulse/internal/models"
	"github.com/localnerve/securepulse/internal/services"
	"github.com/localnerve/securepulse/internal/store"
	"go.uber.org/zap"
)

// UserHandler handles profile and emergency contact routes
type UserHandler struct {
	Accounts *services.Accounts
	Logger   *zap.Logger
}

type ProfileRequest struct {
	Name  *string `json:"name"`
	Phone *string `json:"phone"`
	Plan  *string `json:"plan" example:"Family"`
}

type ContactRequest struct {
	Name  string `json:"name" example:"Grace Hopper"`
	Phone string `json:"phone" example:"+15555550100"`
	Email string `json:"email" example:"grace@example.com"`
}

// GetProfile handles GET /api/users/profile
// @Summary Get profile
// @Description Get the caller's profile with emergency contacts
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.User
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /users/profile [get]
func (h *UserHandler) GetProfile(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}

	user, err := h.Accounts.Profile(c.UserContext(), uid)
	if err != nil {
		return respondError(c, logger(h.Logger), err, "User not found")
	}
	return c.JSON(user)
}

// UpdateProfile handles PUT /api/users/profile
// @Summary Update profile
// @Description Update name, phone or plan. Omitted fields are unchanged.
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body ProfileRequest true "Profile fields"
// @Success 200 {object} models.User
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /users/profile [put]
func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}

	var req ProfileRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	update := store.ProfileUpdate{Name: req.Name, Phone: req.Phone}
	if req.Plan != nil {
		plan, err := models.ParsePlan(*req.Plan)
		if err != nil {
			return respondError(c, logger(h.Logger), &services.ValidationError{Message: err.Error()}, "")
		}
		update.Plan = &plan
	}

	user, err := h.Accounts.UpdateProfile(c.UserContext(), uid, update)
	if err != nil {
		return respondError(c, logger(h.Logger), err, "User not found")
	}
	return c.JSON(user)
}

// AddContact handles POST /api/users/emergency-contacts
// @Summary Add emergency contact
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body ContactRequest true "Contact"
// @Success 201 {object} models.EmergencyContact
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /users/emergency-contacts [post]
func (h *UserHandler) AddContact(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}

	var req ContactRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	contact, err := h.Accounts.AddContact(c.UserContext(), uid, services.ContactRequest{
		Name:  req.Name,
		Phone: req.Phone,
		Email: req.Email,
	})
	if err != nil {
		return respondError(c, logger(h.Logger), err, "User not found")
	}
	return c.Status(fiber.StatusCreated).JSON(contact)
}

// ListContacts handles GET /api/users/emergency-contacts
// @Summary List emergency contacts
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.EmergencyContact
// @Router /users/emergency-contacts [get]
func (h *UserHandler) ListContacts(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}

	contacts, err := h.Accounts.Contacts(c.UserContext(), uid)
	if err != nil {
		return respondError(c, logger(h.Logger), err, "User not found")
	}
	return c.JSON(contacts)
}

// DeleteContact handles DELETE /api/users/emergency-contacts/:contactId
// @Summary Remove emergency contact
// @Tags Users
// @Security BearerAuth
// @Param contactId path string true "Contact ID"
// @Success 204
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /users/emergency-contacts/{contactId} [delete]
func (h *UserHandler) DeleteContact(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}

	if err := h.Accounts.RemoveContact(c.UserContext(), uid, c.Params("contactId")); err != nil {
		return respondError(c, logger(h.Logger), err, "Emergency contact not found")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
