// ingest.go
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

package services

import (
	"context"
	"time"

	"github.com/localnerve/securepulse/internal/metrics"
	"github.com/localnerve/securepulse/internal/models"
	"github.com/localnerve/securepulse/internal/rules"
	"go.uber.org/zap"
)

// MaxBatchSize caps the number of readings accepted by IngestBatch.
const MaxBatchSize = 500

type SampleWriter interface {
	Append(ctx context.Context, sample *models.HealthSample) error
}

type AlertCreator interface {
	Create(ctx context.Context, req CreateAlertRequest) (*models.EmergencyAlert, error)
}

// Reading is one set of vitals as reported by a bracelet.
type Reading struct {
	HeartRate   int
	BloodOxygen float64
	Temperature float64
	Steps       int
}

type IngestRequest struct {
	OwnerID    string
	BraceletID string
	Reading
}

// IngestResult holds the stored sample and, when the rules fired and the
// alert could be created, the alert.
type IngestResult struct {
	Sample *models.HealthSample
	Alert  *models.EmergencyAlert
}

// Ingestor persists readings and raises Health alerts for anomalous ones.
type Ingestor struct {
	Samples          SampleWriter
	Bracelets        BraceletLookup
	Alerts           AlertCreator
	Rules            *rules.Engine
	Logger           *zap.Logger
	EnforceOwnership bool
	Now              func() time.Time
}

func (in *Ingestor) Ingest(ctx context.Context, req IngestRequest) (*IngestResult, error) {
	if err := in.authorize(ctx, req.OwnerID, req.BraceletID); err != nil {
		return nil, err
	}
	if err := validateReading(req.Reading); err != nil {
		return nil, err
	}
	return in.ingest(ctx, req.OwnerID, req.BraceletID, req.Reading)
}

// IngestBatch stores readings in order, each with its own server timestamp.
// Every reading is validated before the first write. A store failure part way
// through returns the results written so far alongside the error.
func (in *Ingestor) IngestBatch(ctx context.Context, ownerID, braceletID string, readings []Reading) ([]IngestResult, error) {
	if err := in.authorize(ctx, ownerID, braceletID); err != nil {
		return nil, err
	}
	if len(readings) == 0 {
		return nil, invalid("samples must contain at least one reading")
	}
	if len(readings) > MaxBatchSize {
		return nil, invalid("samples must not contain more than %d readings", MaxBatchSize)
	}
	for i, r := range readings {
		if err := validateReading(r); err != nil {
			return nil, invalid("samples[%d]: %s", i, err.Error())
		}
	}

	results := make([]IngestResult, 0, len(readings))
	for _, r := range readings {
		result, err := in.ingest(ctx, ownerID, braceletID, r)
		if err != nil {
			return results, err
		}
		results = append(results, *result)
	}
	return results, nil
}

func (in *Ingestor) authorize(ctx context.Context, ownerID, braceletID string) error {
	if ownerID == "" {
		return invalid("userId is required")
	}
	if braceletID == "" {
		return invalid("braceletId is required")
	}
	if !in.EnforceOwnership {
		return nil
	}
	_, err := in.Bracelets.FindBracelet(ctx, ownerID, braceletID)
	return err
}

func (in *Ingestor) ingest(ctx context.Context, ownerID, braceletID string, r Reading) (*IngestResult, error) {
	sample := &models.HealthSample{
		BraceletID:  braceletID,
		UserID:      ownerID,
		HeartRate:   r.HeartRate,
		BloodOxygen: r.BloodOxygen,
		Temperature: r.Temperature,
		Steps:       r.Steps,
		Timestamp:   in.now(),
	}
	if err := in.Samples.Append(ctx, sample); err != nil {
		return nil, err
	}
	metrics.SamplesIngested.Inc()

	result := &IngestResult{Sample: sample}

	intent, ok := in.engine().Evaluate(rules.Sample{
		HeartRate:   r.HeartRate,
		BloodOxygen: r.BloodOxygen,
		Temperature: r.Temperature,
		Steps:       r.Steps,
	})
	if !ok {
		return result, nil
	}

	alert, err := in.Alerts.Create(ctx, CreateAlertRequest{
		OwnerID:     ownerID,
		BraceletID:  braceletID,
		Type:        intent.Type,
		Description: intent.Description,
		Source:      SourceIngest,
	})
	if err != nil {
		// The sample stays stored; the alert is lost.
		metrics.IngestAlertFailures.Inc()
		in.logger().Error("Failed to create alert for anomalous sample",
			zap.String("sample_id", sample.ID),
			zap.String("bracelet_id", braceletID),
			zap.String("user_id", ownerID),
			zap.String("alert_type", string(intent.Type)),
			zap.Error(err),
		)
		return result, nil
	}
	result.Alert = alert
	return result, nil
}

func validateReading(r Reading) error {
	switch {
	case r.HeartRate < 0 || r.HeartRate > 300:
		return invalid("heartRate must be between 0 and 300")
	case !inRange(r.BloodOxygen, 0, 100):
		return invalid("bloodOxygen must be between 0 and 100")
	case !inRange(r.Temperature, 0, 120):
		return invalid("temperature must be between 0 and 120")
	case r.Steps < 0:
		return invalid("steps must not be negative")
	}
	return nil
}

func (in *Ingestor) engine() *rules.Engine {
	if in.Rules == nil {
		return rules.Default()
	}
	return in.Rules
}

func (in *Ingestor) now() time.Time {
	now := time.Now
	if in.Now != nil {
		now = in.Now
	}
	return now().UTC().Truncate(time.Microsecond)
}

func (in *Ingestor) logger() *zap.Logger {
	if in.Logger == nil {
		return zap.NewNop()
	}
	return in.Logger
}
