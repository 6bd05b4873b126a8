package providers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"sgpj-client/internal/config"
	"sgpj-client/internal/models"
)

const twilioAPI = "https://api.twilio.com/2010-04-01"

// SMS delivers reminders through the Twilio Messages endpoint.
type SMS struct {
	accountSID string
	authToken  string
	fromNumber string
	recipients []string
	baseURL    string
	client     *http.Client
}

func NewSMS(cfg config.Config) *SMS {
	return &SMS{
		accountSID: cfg.SMS.AccountSID,
		authToken:  cfg.SMS.AuthToken,
		fromNumber: cfg.SMS.FromNumber,
		recipients: cfg.SMS.Recipients,
		baseURL:    twilioAPI,
		client:     &http.Client{},
	}
}

// Send texts every recipient and reports all failures together.
func (s *SMS) Send(ctx context.Context, task models.Task) error {
	if s.accountSID == "" || s.authToken == "" || s.fromNumber == "" {
		return fmt.Errorf("missing SMS configuration: AccountSID, AuthToken, or FromNumber is empty")
	}
	if len(s.recipients) == 0 {
		return fmt.Errorf("no SMS recipients configured")
	}
	var errs []error
	for _, to := range s.recipients {
		if err := s.sendOne(ctx, to, task.Subject+"\n"+task.Body); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (s *SMS) sendOne(ctx context.Context, to, body string) error {
	urlStr := fmt.Sprintf("%s/Accounts/%s/Messages.json", s.baseURL, s.accountSID)
	msgData := url.Values{}
	msgData.Set("To", to)
	msgData.Set("From", s.fromNumber)
	msgData.Set("Body", body)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, urlStr, strings.NewReader(msgData.Encode()))
	if err != nil {
		return fmt.Errorf("failed to create SMS request for %s: %w", to, err)
	}
	req.SetBasicAuth(s.accountSID, s.authToken)
	req.Header.Add("Accept", "application/json")
	req.Header.Add("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send SMS to %s: %w", to, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("twilio API returned status %d for %s", resp.StatusCode, to)
	}
	return nil
}
