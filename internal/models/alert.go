// alert.go
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

package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EmergencyAlert struct {
	ID          string      `gorm:"type:char(36);primaryKey" json:"id"`
	UserID      string      `gorm:"type:char(36);not null;index:idx_emergency_alerts_user_created,priority:1" json:"userId"`
	BraceletID  string      `gorm:"type:char(36);not null;index" json:"braceletId"`
	AlertType   AlertType   `gorm:"size:16;not null" json:"alertType"`
	Description string      `gorm:"type:text" json:"description"`
	Latitude    *float64    `json:"latitude"`
	Longitude   *float64    `json:"longitude"`
	Status      AlertStatus `gorm:"size:16;not null;default:'active'" json:"status"`
	CreatedAt   time.Time   `gorm:"index:idx_emergency_alerts_user_created,priority:2" json:"createdAt"`
	RespondedAt *time.Time  `json:"respondedAt"`
	Bracelet    *Bracelet   `gorm:"foreignKey:BraceletID" json:"-"`
	User        *User       `gorm:"foreignKey:UserID" json:"-"`
}

func (EmergencyAlert) TableName() string {
	return "emergency_alerts"
}

func (a *EmergencyAlert) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

func (a *EmergencyAlert) HasLocation() bool {
	return a.Latitude != nil && a.Longitude != nil
}

// MapLink points at the alert coordinates, or is empty when none were supplied.
func (a *EmergencyAlert) MapLink() string {
	if !a.HasLocation() {
		return ""
	}
	return fmt.Sprintf("https://maps.google.com/?q=%g,%g", *a.Latitude, *a.Longitude)
}

// NotificationLog records a single notification attempt for auditing.
type NotificationLog struct {
	ID        string         `gorm:"type:char(36);primaryKey" json:"id"`
	AlertID   *string        `gorm:"type:char(36);index" json:"alertId"`
	UserID    string         `gorm:"type:char(36);not null;index" json:"userId"`
	Channel   Channel        `gorm:"size:16;not null" json:"channel"`
	Recipient string         `gorm:"size:255" json:"recipient"`
	Status    DeliveryStatus `gorm:"size:16;not null" json:"status"`
	Error     string         `gorm:"type:text" json:"error,omitempty"`
	Payload   JSON           `json:"payload"`
	CreatedAt time.Time      `json:"createdAt"`
}

func (NotificationLog) TableName() string {
	return "notification_logs"
}

func (n *NotificationLog) BeforeCreate(tx *gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	return nil
}
