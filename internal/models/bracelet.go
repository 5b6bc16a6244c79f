package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Bracelet struct {
	ID        string         `gorm:"type:char(36);primaryKey" json:"id"`
	UserID    string         `gorm:"type:char(36);not null;index" json:"userId"`
	DeviceID  string         `gorm:"size:128;not null;uniqueIndex" json:"deviceId"`
	Nickname  string         `gorm:"size:255" json:"nickname"`
	Status    BraceletStatus `gorm:"size:16;not null;default:'active'" json:"status"`
	Battery   int            `gorm:"not null;default:100" json:"battery"`
	LastSync  *time.Time     `json:"lastSync"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

func (Bracelet) TableName() string {
	return "bracelets"
}

func (b *Bracelet) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	if b.Status == "" {
		b.Status = BraceletActive
	}
	return nil
}

// DefaultNickname names a bracelet after the last four characters of its device id.
func DefaultNickname(deviceID string) string {
	suffix := []rune(deviceID)
	if len(suffix) > 4 {
		suffix = suffix[len(suffix)-4:]
	}
	return "Bracelet " + string(suffix)
}

// HealthSample is one vital-signs reading. Rows are append-only.
type HealthSample struct {
	ID          string    `gorm:"type:char(36);primaryKey" json:"id"`
	BraceletID  string    `gorm:"type:char(36);not null;index:idx_health_samples_bracelet_time,priority:1" json:"braceletId"`
	UserID      string    `gorm:"type:char(36);not null;index" json:"userId"`
	HeartRate   int       `json:"heartRate"`
	BloodOxygen float64   `json:"bloodOxygen"`
	Temperature float64   `json:"temperature"`
	Steps       int       `json:"steps"`
	Timestamp   time.Time `gorm:"not null;index:idx_health_samples_bracelet_time,priority:2" json:"timestamp"`
	Bracelet    *Bracelet `gorm:"foreignKey:BraceletID" json:"-"`
	User        *User     `gorm:"foreignKey:UserID" json:"-"`
}

func (HealthSample) TableName() string {
	return "health_samples"
}

func (s *HealthSample) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
