package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is an account holder. Email is the unique login identifier.
type User struct {
	ID                string             `gorm:"type:char(36);primaryKey" json:"id"`
	Name              string             `gorm:"size:255" json:"name"`
	Email             string             `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Password          string             `gorm:"size:255;not null" json:"-"`
	Phone             string             `gorm:"size:64" json:"phone"`
	Plan              Plan               `gorm:"size:32;not null;default:'Individual'" json:"plan"`
	BraceletCount     int                `gorm:"not null;default:0" json:"braceletCount"`
	CreatedAt         time.Time          `json:"createdAt"`
	UpdatedAt         time.Time          `json:"updatedAt"`
	Bracelets         []Bracelet         `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"bracelets,omitempty"`
	EmergencyContacts []EmergencyContact `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"emergencyContacts,omitempty"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.Plan == "" {
		u.Plan = PlanIndividual
	}
	return nil
}

// EmergencyContact is a person notified when one of the owner's alerts is raised.
type EmergencyContact struct {
	ID        string    `gorm:"type:char(36);primaryKey" json:"id"`
	UserID    string    `gorm:"type:char(36);not null;index" json:"userId"`
	Name      string    `gorm:"size:255" json:"name"`
	Phone     string    `gorm:"size:64" json:"phone"`
	Email     string    `gorm:"size:255" json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (EmergencyContact) TableName() string {
	return "emergency_contacts"
}

func (c *EmergencyContact) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
