package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/localnerve/securepulse/internal/models"
	"github.com/localnerve/securepulse/internal/store"
)

// ErrBraceletExists is returned when the device id is already registered.
var ErrBraceletExists = fmt.Errorf("%w: bracelet already registered", store.ErrDuplicate)

type Bracelets struct {
	Identities *store.IdentityStore
	Now        func() time.Time
}

// Register adds a device to the owner's account and bumps their bracelet count.
func (b *Bracelets) Register(ctx context.Context, ownerID, deviceID, nickname string) (*models.Bracelet, error) {
	deviceID = strings.TrimSpace(deviceID)
	if deviceID == "" {
		return nil, invalid("deviceId is required")
	}
	if len(deviceID) > 128 {
		return nil, invalid("deviceId must not exceed 128 characters")
	}
	nickname = strings.TrimSpace(nickname)
	if nickname == "" {
		nickname = models.DefaultNickname(deviceID)
	}

	bracelet := &models.Bracelet{
		UserID:   ownerID,
		DeviceID: deviceID,
		Nickname: nickname,
		Status:   models.BraceletActive,
		Battery:  100,
	}
	if err := b.Identities.CreateBracelet(ctx, bracelet); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, ErrBraceletExists
		}
		return nil, err
	}
	return bracelet, nil
}

func (b *Bracelets) List(ctx context.Context, ownerID string) ([]models.Bracelet, error) {
	return b.Identities.ListBracelets(ctx, ownerID)
}

// Update applies the given fields and records the sync time.
func (b *Bracelets) Update(ctx context.Context, ownerID, braceletID string, update store.BraceletUpdate) (*models.Bracelet, error) {
	if update.Status != nil && !update.Status.Valid() {
		return nil, invalid("invalid status %q", *update.Status)
	}
	if update.Battery != nil && (*update.Battery < 0 || *update.Battery > 100) {
		return nil, invalid("battery must be between 0 and 100")
	}

	now := time.Now
	if b.Now != nil {
		now = b.Now
	}
	return b.Identities.UpdateBracelet(ctx, ownerID, braceletID, update, now().UTC().Truncate(time.Microsecond))
}
