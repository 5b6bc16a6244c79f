package notify

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/localnerve/securepulse/internal/models"
)

// SMSNotifier sends text messages through the Twilio REST API.
type SMSNotifier struct {
	client     *resty.Client
	accountSID string
	from       string
}

type SMSConfig struct {
	BaseURL    string
	AccountSID string
	AuthToken  string
	From       string
	Timeout    time.Duration
}

type twilioMessage struct {
	SID    string `json:"sid"`
	Status string `json:"status"`
}

type twilioError struct {
	Code     int    `json:"code"`
	Message  string `json:"message"`
	MoreInfo string `json:"more_info"`
	Status   int    `json:"status"`
}

func NewSMSNotifier(cfg SMSConfig) *SMSNotifier {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(timeout).
		SetBasicAuth(cfg.AccountSID, cfg.AuthToken).
		SetHeader("Accept", "application/json").
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond).
		// Only retry answers that prove Twilio did not accept the message.
		// A transport error may come after acceptance and would send twice.
		AddRetryCondition(func(r *resty.Response, err error) bool {
			if err != nil || r == nil {
				return false
			}
			return r.StatusCode() == http.StatusTooManyRequests || r.StatusCode() == http.StatusServiceUnavailable
		})

	return &SMSNotifier{
		client:     client,
		accountSID: cfg.AccountSID,
		from:       cfg.From,
	}
}

func (n *SMSNotifier) Channel() models.Channel {
	return models.ChannelSMS
}

func (n *SMSNotifier) Send(ctx context.Context, to string, msg Message) error {
	var result twilioMessage
	var apiErr twilioError

	resp, err := n.client.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"To":   to,
			"From": n.from,
			"Body": msg.Text,
		}).
		SetResult(&result).
		SetError(&apiErr).
		Post(fmt.Sprintf("/2010-04-01/Accounts/%s/Messages.json", n.accountSID))
	if err != nil {
		return fmt.Errorf("failed to send SMS to %s: %w", to, err)
	}
	if resp.IsError() {
		if apiErr.Message != "" {
			return fmt.Errorf("twilio rejected SMS to %s (status %d, code %d): %s", to, resp.StatusCode(), apiErr.Code, apiErr.Message)
		}
		return fmt.Errorf("twilio rejected SMS to %s: status %d", to, resp.StatusCode())
	}
	return nil
}
