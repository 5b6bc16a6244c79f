package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/securepulse/internal/models"
	"github.com/localnerve/securepulse/internal/services"
	"github.com/localnerve/securepulse/internal/store"
	"github.com/localnerve/securepulse/internal/types"
	"go.uber.org/zap"
)

// BraceletHandler handles device registration and sync routes
type BraceletHandler struct {
	Bracelets *services.Bracelets
	Logger    *zap.Logger
}

type BraceletRequest struct {
	DeviceID string `json:"deviceId" example:"SP-00A1-7F3C"`
	Nickname string `json:"nickname" example:"Grandma's bracelet"`
}

type BraceletUpdateRequest struct {
	Status   *string        `json:"status" example:"inactive"`
	Battery  *types.FlexInt `json:"battery" swaggertype:"integer" example:"87"`
	Nickname *string        `json:"nickname"`
}

type BraceletResponse struct {
	Message  string          `json:"message"`
	Bracelet models.Bracelet `json:"bracelet"`
}

// Register handles POST /api/bracelets
// @Summary Register bracelet
// @Description Register a device to the caller. Nickname defaults to the last four characters of the device id.
// @Tags Bracelets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body BraceletRequest true "Device"
// @Success 201 {object} BraceletResponse
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /bracelets [post]
func (h *BraceletHandler) Register(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}

	var req BraceletRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	bracelet, err := h.Bracelets.Register(c.UserContext(), uid, req.DeviceID, req.Nickname)
	if err != nil {
		return respondError(c, logger(h.Logger), err, "User not found")
	}
	return c.Status(fiber.StatusCreated).JSON(BraceletResponse{
		Message:  "Bracelet registered",
		Bracelet: *bracelet,
	})
}

// List handles GET /api/bracelets
// @Summary List bracelets
// @Tags Bracelets
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Bracelet
// @Router /bracelets [get]
func (h *BraceletHandler) List(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}

	bracelets, err := h.Bracelets.List(c.UserContext(), uid)
	if err != nil {
		return respondError(c, logger(h.Logger), err, "User not found")
	}
	return c.JSON(bracelets)
}

// Update handles PUT /api/bracelets/:braceletId
// @Summary Update bracelet
// @Description Update status, battery or nickname and record the sync time
// @Tags Bracelets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param braceletId path string true "Bracelet ID"
// @Param body body BraceletUpdateRequest true "Fields to update"
// @Success 200 {object} models.Bracelet
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /bracelets/{braceletId} [put]
func (h *BraceletHandler) Update(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}

	var req BraceletUpdateRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	update := store.BraceletUpdate{Nickname: req.Nickname}
	if req.Status != nil {
		status, err := models.ParseBraceletStatus(*req.Status)
		if err != nil {
			return respondError(c, logger(h.Logger), &services.ValidationError{Message: err.Error()}, "")
		}
		update.Status = &status
	}
	if req.Battery != nil {
		battery := req.Battery.Int()
		update.Battery = &battery
	}

	bracelet, err := h.Bracelets.Update(c.UserContext(), uid, c.Params("braceletId"), update)
	if err != nil {
		return respondError(c, logger(h.Logger), err, "Bracelet not found")
	}
	return c.JSON(bracelet)
}
