package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/securepulse/internal/models"
	"github.com/localnerve/securepulse/internal/services"
	"github.com/localnerve/securepulse/internal/types"
	"go.uber.org/zap"
)

// AlertHandler handles emergency alert routes
type AlertHandler struct {
	Alerts *services.AlertManager
	Logger *zap.Logger
}

type AlertRequest struct {
	BraceletID  string           `json:"braceletId"`
	AlertType   string           `json:"alertType" example:"SOS"`
	Description string           `json:"description" example:"Pressed the SOS button"`
	Latitude    *types.FlexFloat `json:"latitude" swaggertype:"number" example:"40.7128"`
	Longitude   *types.FlexFloat `json:"longitude" swaggertype:"number" example:"-74.006"`
}

type AlertStatusRequest struct {
	Status string `json:"status" example:"resolved"`
}

type AlertResponse struct {
	Message string                `json:"message"`
	Alert   models.EmergencyAlert `json:"alert"`
}

// Create handles POST /api/emergency-alerts
// @Summary Raise an emergency alert
// @Description Create an active alert and notify the caller's emergency contacts
// @Tags EmergencyAlerts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body AlertRequest true "Alert"
// @Success 201 {object} AlertResponse
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /emergency-alerts [post]
func (h *AlertHandler) Create(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}

	var req AlertRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	alertType, err := models.ParseAlertType(req.AlertType)
	if err != nil {
		return respondError(c, logger(h.Logger), &services.ValidationError{Message: err.Error()}, "")
	}

	alert, err := h.Alerts.Create(c.UserContext(), services.CreateAlertRequest{
		OwnerID:     uid,
		BraceletID:  req.BraceletID,
		Type:        alertType,
		Description: req.Description,
		Latitude:    flexFloatPtr(req.Latitude),
		Longitude:   flexFloatPtr(req.Longitude),
		Source:      services.SourceManual,
	})
	if err != nil {
		return respondError(c, logger(h.Logger), err, "Bracelet not found")
	}

	return c.Status(fiber.StatusCreated).JSON(AlertResponse{
		Message: "Emergency alert created",
		Alert:   *alert,
	})
}

// List handles GET /api/emergency-alerts
// @Summary List emergency alerts
// @Description The caller's alerts, newest first
// @Tags EmergencyAlerts
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.EmergencyAlert
// @Router /emergency-alerts [get]
func (h *AlertHandler) List(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}

	alerts, err := h.Alerts.List(c.UserContext(), uid)
	if err != nil {
		return respondError(c, logger(h.Logger), err, "User not found")
	}
	return c.JSON(alerts)
}

// UpdateStatus handles PUT /api/emergency-alerts/:alertId
// @Summary Close an emergency alert
// @Description Mark an alert resolved or false_alarm. Repeating the current status refreshes respondedAt.
// @Tags EmergencyAlerts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param alertId path string true "Alert ID"
// @Param body body AlertStatusRequest true "New status"
// @Success 200 {object} models.EmergencyAlert
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Router /emergency-alerts/{alertId} [put]
func (h *AlertHandler) UpdateStatus(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}

	var req AlertStatusRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	status, err := models.ParseAlertStatus(req.Status)
	if err != nil {
		return respondError(c, logger(h.Logger), &services.ValidationError{Message: err.Error()}, "")
	}

	alert, err := h.Alerts.UpdateStatus(c.UserContext(), uid, c.Params("alertId"), status)
	if err != nil {
		return respondError(c, logger(h.Logger), err, "Alert not found")
	}
	return c.JSON(alert)
}

func flexFloatPtr(f *types.FlexFloat) *float64 {
	if f == nil {
		return nil
	}
	v := f.Float64()
	return &v
}
