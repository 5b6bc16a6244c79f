package notify

import (
	"bytes"
	"fmt"
	"html/template"
	"strconv"
	"time"

	"github.com/localnerve/securepulse/internal/models"
)

// AlertDetails is everything a recipient is told about an alert.
type AlertDetails struct {
	UserName    string
	AlertType   models.AlertType
	Description string
	CreatedAt   time.Time
	Location    string
	MapLink     string
}

func NewAlertDetails(user *models.User, alert *models.EmergencyAlert) AlertDetails {
	details := AlertDetails{
		UserName:    displayName(user),
		AlertType:   alert.AlertType,
		Description: alert.Description,
		CreatedAt:   alert.CreatedAt,
		MapLink:     alert.MapLink(),
	}
	if alert.HasLocation() {
		details.Location = strconv.FormatFloat(*alert.Latitude, 'f', -1, 64) + "," +
			strconv.FormatFloat(*alert.Longitude, 'f', -1, 64)
	}
	return details
}

const timeLayout = "2006-01-02 15:04:05 MST"

var emergencyEmail = template.Must(template.New("emergency").Parse(`<h2 style="color: red;">Emergency Alert</h2>
<p><strong>User:</strong> {{.UserName}}</p>
<p><strong>Alert Type:</strong> {{.AlertType}}</p>
<p><strong>Description:</strong> {{.Description}}</p>
<p><strong>Time:</strong> {{.Time}}</p>
{{- if .MapLink}}
<p><strong>Location:</strong> <a href="{{.MapLink}}">View on Map</a></p>
{{- end}}
<p style="color: red; font-weight: bold;">PLEASE RESPOND IMMEDIATELY IF AVAILABLE!</p>
`))

var welcomeEmail = template.Must(template.New("welcome").Parse(`<h2>Welcome, {{.}}!</h2>
<p>Thank you for joining SecurePulse. Your safety is our priority.</p>
<p>Next steps:</p>
<ol>
  <li>Complete your profile</li>
  <li>Register your bracelet(s)</li>
  <li>Add emergency contacts</li>
  <li>Download the mobile app</li>
</ol>
<p>Need help? <a href="mailto:hello@securepulse.co.za">Contact Support</a></p>
`))

// EmergencyEmail renders the alert email sent to contacts.
func EmergencyEmail(d AlertDetails) (Message, error) {
	var html bytes.Buffer
	err := emergencyEmail.Execute(&html, struct {
		AlertDetails
		Time string
	}{d, d.CreatedAt.UTC().Format(timeLayout)})
	if err != nil {
		return Message{}, fmt.Errorf("failed to render emergency email: %w", err)
	}

	return Message{
		Subject: fmt.Sprintf("EMERGENCY ALERT - %s needs help!", d.UserName),
		Text:    emergencyText(d),
		HTML:    html.String(),
	}, nil
}

// EmergencySMS renders the short text variant. Health alerts get a softer wording.
func EmergencySMS(d AlertDetails) Message {
	if d.AlertType == models.AlertHealth {
		return Message{
			Text: fmt.Sprintf("Health Alert: %s: %s. Please check on them.", d.UserName, d.Description),
		}
	}
	return Message{Text: emergencyText(d)}
}

func emergencyText(d AlertDetails) string {
	location := d.Location
	if location == "" {
		location = "Unknown"
	}
	return fmt.Sprintf("EMERGENCY ALERT: %s triggered %s. Location: %s. Please respond immediately if available.",
		d.UserName, d.AlertType, location)
}

func WelcomeEmail(user *models.User) (Message, error) {
	name := displayName(user)

	var html bytes.Buffer
	if err := welcomeEmail.Execute(&html, name); err != nil {
		return Message{}, fmt.Errorf("failed to render welcome email: %w", err)
	}

	return Message{
		Subject: "Welcome to SecurePulse!",
		Text:    fmt.Sprintf("Welcome, %s! Thank you for joining SecurePulse.", name),
		HTML:    html.String(),
	}, nil
}

func displayName(user *models.User) string {
	if user.Name != "" {
		return user.Name
	}
	return user.Email
}
