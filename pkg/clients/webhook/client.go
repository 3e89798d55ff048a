// Package webhook posts reminder notifications to an operator-configured
// HTTP endpoint.
package webhook

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// Client exposes the notification operations used by the application.
type Client interface {
	SendCreditReminder(ctx context.Context, reminder CreditReminder) error
}

// CreditReminder is the payload posted for one unpaid credit sale nearing or
// past its due date.
type CreditReminder struct {
	Type       string  `json:"type"`
	SaleID     string  `json:"saleId"`
	ClientName string  `json:"clientNom"`
	Total      float64 `json:"total"`
	DueDate    string  `json:"dueDate"`
}

// APIClient is a resty-backed implementation of Client.
type APIClient struct {
	httpClient *resty.Client
	url        string
}

// NewClient builds a webhook client targeting the given endpoint URL.
func NewClient(url string) *APIClient {
	restyClient := resty.New()
	restyClient.
		SetHeader("Content-Type", "application/json").
		SetTimeout(15 * time.Second)

	return &APIClient{
		httpClient: restyClient,
		url:        url,
	}
}

// apiError captures whatever error body the receiving endpoint returns.
type apiError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// SendCreditReminder posts one reminder. Delivery is best-effort; the caller
// only logs failures.
func (c *APIClient) SendCreditReminder(ctx context.Context, reminder CreditReminder) error {
	if reminder.Type == "" {
		reminder.Type = "credit_due"
	}

	apiErr := new(apiError)
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(reminder).
		SetError(apiErr).
		Post(c.url)
	if err != nil {
		return fmt.Errorf("send credit reminder: %w", err)
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		message := apiErr.Message
		if message == "" {
			message = apiErr.Error
		}
		return fmt.Errorf("webhook error: code=%d, message=%s", resp.StatusCode(), message)
	}

	return nil
}
