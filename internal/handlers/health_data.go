// health_data.go
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
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/securepulse/internal/models"
	"github.com/localnerve/securepulse/internal/services"
	"github.com/localnerve/securepulse/internal/store"
	"github.com/localnerve/securepulse/internal/types"
	"go.uber.org/zap"
)

type SampleReader interface {
	Recent(ctx context.Context, ownerID, braceletID string, limit int) ([]models.HealthSample, error)
}

// HealthDataHandler handles vital-sign uploads and reads
type HealthDataHandler struct {
	Ingestor *services.Ingestor
	Samples  SampleReader
	Logger   *zap.Logger
}

// ReadingRequest is one set of vitals. Numbers may be sent as strings.
type ReadingRequest struct {
	HeartRate   *types.FlexInt  `json:"heartRate" swaggertype:"integer" example:"72"`
	BloodOxygen types.FlexFloat `json:"bloodOxygen" swaggertype:"number" example:"98.5"`
	Temperature types.FlexFloat `json:"temperature" swaggertype:"number" example:"36.6"`
	Steps       types.FlexInt   `json:"steps" swaggertype:"integer" example:"4200"`
}

type HealthDataRequest struct {
	BraceletID string `json:"braceletId"`
	ReadingRequest
}

type BatchRequest struct {
	BraceletID string                         `json:"braceletId"`
	Samples    types.FlexList[ReadingRequest] `json:"samples" swaggertype:"array,object"`
}

type HealthDataResponse struct {
	Message    string                 `json:"message"`
	HealthData models.HealthSample    `json:"healthData"`
	Alert      *models.EmergencyAlert `json:"alert,omitempty"`
}

type BatchResponse struct {
	Message    string                `json:"message"`
	HealthData []models.HealthSample `json:"healthData"`
	Alerts     int                   `json:"alerts"`
}

func (r ReadingRequest) reading() (services.Reading, error) {
	if r.HeartRate == nil {
		return services.Reading{}, &services.ValidationError{Message: "heartRate is required"}
	}
	return services.Reading{
		HeartRate:   r.HeartRate.Int(),
		BloodOxygen: r.BloodOxygen.Float64(),
		Temperature: r.Temperature.Float64(),
		Steps:       r.Steps.Int(),
	}, nil
}

// Record handles POST /api/health-data
// @Summary Record health data
// @Description Store a reading. An abnormal heart rate also raises a Health alert.
// @Tags HealthData
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body HealthDataRequest true "Reading"
// @Success 201 {object} HealthDataResponse
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /health-data [post]
func (h *HealthDataHandler) Record(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}

	var req HealthDataRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	reading, err := req.reading()
	if err != nil {
		return respondError(c, logger(h.Logger), err, "")
	}

	result, err := h.Ingestor.Ingest(c.UserContext(), services.IngestRequest{
		OwnerID:    uid,
		BraceletID: req.BraceletID,
		Reading:    reading,
	})
	if err != nil {
		return respondError(c, logger(h.Logger), err, "Bracelet not found")
	}

	return c.Status(fiber.StatusCreated).JSON(HealthDataResponse{
		Message:    "Health data recorded",
		HealthData: *result.Sample,
		Alert:      result.Alert,
	})
}

// RecordBatch handles POST /api/health-data/batch
// @Summary Record buffered health data
// @Description Store one or more readings uploaded together. Each reading gets its own server timestamp.
// @Tags HealthData
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body BatchRequest true "Readings"
// @Success 201 {object} BatchResponse
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /health-data/batch [post]
func (h *HealthDataHandler) RecordBatch(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}

	var req BatchRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	readings := make([]services.Reading, 0, len(req.Samples))
	for _, r := range req.Samples.Slice() {
		reading, err := r.reading()
		if err != nil {
			return respondError(c, logger(h.Logger), err, "")
		}
		readings = append(readings, reading)
	}

	results, err := h.Ingestor.IngestBatch(c.UserContext(), uid, req.BraceletID, readings)
	if err != nil {
		return respondError(c, logger(h.Logger), err, "Bracelet not found")
	}

	resp := BatchResponse{
		Message:    "Health data recorded",
		HealthData: make([]models.HealthSample, 0, len(results)),
	}
	for _, r := range results {
		resp.HealthData = append(resp.HealthData, *r.Sample)
		if r.Alert != nil {
			resp.Alerts++
		}
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// List handles GET /api/health-data/:braceletId
// @Summary Recent health data
// @Description Up to 100 of the newest readings for one of the caller's bracelets
// @Tags HealthData
// @Produce json
// @Security BearerAuth
// @Param braceletId path string true "Bracelet ID"
// @Success 200 {array} models.HealthSample
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /health-data/{braceletId} [get]
func (h *HealthDataHandler) List(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}

	samples, err := h.Samples.Recent(c.UserContext(), uid, c.Params("braceletId"), store.MaxRecentSamples)
	if err != nil {
		return respondError(c, logger(h.Logger), err, "Bracelet not found")
	}
	return c.JSON(samples)
}
