package models

import "fmt"

// Plan is a user's subscription tier.
type Plan string

const (
	PlanIndividual   Plan = "Individual"
	PlanFamily       Plan = "Family"
	PlanOrganization Plan = "Organization"
)

func (p Plan) Valid() bool {
	switch p {
	case PlanIndividual, PlanFamily, PlanOrganization:
		return true
	}
	return false
}

func ParsePlan(s string) (Plan, error) {
	return parseEnum("plan", Plan(s))
}

// BraceletStatus is the device state reported by the owner or the device itself.
type BraceletStatus string

const (
	BraceletActive   BraceletStatus = "active"
	BraceletInactive BraceletStatus = "inactive"
	BraceletLost     BraceletStatus = "lost"
)

func (s BraceletStatus) Valid() bool {
	switch s {
	case BraceletActive, BraceletInactive, BraceletLost:
		return true
	}
	return false
}

func ParseBraceletStatus(s string) (BraceletStatus, error) {
	return parseEnum("bracelet status", BraceletStatus(s))
}

// AlertType classifies an emergency alert.
type AlertType string

const (
	AlertSOS      AlertType = "SOS"
	AlertFall     AlertType = "Fall"
	AlertTamper   AlertType = "Tamper"
	AlertHealth   AlertType = "Health"
	AlertGeofence AlertType = "Geofence"
)

func (t AlertType) Valid() bool {
	switch t {
	case AlertSOS, AlertFall, AlertTamper, AlertHealth, AlertGeofence:
		return true
	}
	return false
}

func ParseAlertType(s string) (AlertType, error) {
	return parseEnum("alert type", AlertType(s))
}

// AlertStatus is the lifecycle state of an emergency alert.
// Active is the only initial state; Resolved and FalseAlarm are terminal.
type AlertStatus string

const (
	AlertActive     AlertStatus = "active"
	AlertResolved   AlertStatus = "resolved"
	AlertFalseAlarm AlertStatus = "false_alarm"
)

func (s AlertStatus) Valid() bool {
	switch s {
	case AlertActive, AlertResolved, AlertFalseAlarm:
		return true
	}
	return false
}

func (s AlertStatus) Terminal() bool {
	return s == AlertResolved || s == AlertFalseAlarm
}

// CanTransitionTo reports whether an alert in status s may be moved to next.
// Repeating the current terminal status is allowed so responders can re-acknowledge.
func (s AlertStatus) CanTransitionTo(next AlertStatus) bool {
	if !next.Terminal() {
		return false
	}
	switch s {
	case AlertActive:
		return true
	case AlertResolved, AlertFalseAlarm:
		return s == next
	}
	return false
}

func ParseAlertStatus(s string) (AlertStatus, error) {
	return parseEnum("alert status", AlertStatus(s))
}

// Channel is the transport a notification was sent over.
type Channel string

const (
	ChannelEmail Channel = "email"
	ChannelSMS   Channel = "sms"
	ChannelLog   Channel = "log"
)

func (c Channel) Valid() bool {
	switch c {
	case ChannelEmail, ChannelSMS, ChannelLog:
		return true
	}
	return false
}

// DeliveryStatus is the outcome of one notification attempt.
type DeliveryStatus string

const (
	DeliverySent    DeliveryStatus = "sent"
	DeliveryFailed  DeliveryStatus = "failed"
	DeliverySkipped DeliveryStatus = "skipped"
)

func (d DeliveryStatus) Valid() bool {
	switch d {
	case DeliverySent, DeliveryFailed, DeliverySkipped:
		return true
	}
	return false
}

type enum interface {
	~string
	Valid() bool
}

func parseEnum[T enum](kind string, v T) (T, error) {
	if !v.Valid() {
		var zero T
		return zero, fmt.Errorf("invalid %s %q", kind, string(v))
	}
	return v, nil
}
