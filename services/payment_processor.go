// services/payment_processor.go
package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
)

// PaymentProcessor is the single opaque call the platform makes per fee
// charge. Card handling, 3DS, and processor specifics live behind it.
type PaymentProcessor interface {
	Charge(payerID string, amount float64, description string) (string, error)
}

// httpPaymentProcessor charges through the configured payment API
type httpPaymentProcessor struct {
	apiURL    string
	shopID    string
	secretKey string
	client    *http.Client
}

// NewPaymentProcessorFromEnv returns the HTTP processor when PAYMENT_API_URL
// is configured, and the always-succeeding stub otherwise (local dev, tests).
func NewPaymentProcessorFromEnv() PaymentProcessor {
	apiURL := os.Getenv("PAYMENT_API_URL")
	if apiURL == "" {
		return &StubPaymentProcessor{}
	}
	return &httpPaymentProcessor{
		apiURL:    apiURL,
		shopID:    os.Getenv("PAYMENT_SHOP_ID"),
		secretKey: os.Getenv("PAYMENT_SECRET_KEY"),
		client:    &http.Client{Timeout: 15 * time.Second},
	}
}

type chargeAmount struct {
	Value    string `json:"value"`
	Currency string `json:"currency"`
}

type chargeRequest struct {
	Amount      chargeAmount      `json:"amount"`
	Description string            `json:"description"`
	Capture     bool              `json:"capture"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

type chargeResponse struct {
	ID     string       `json:"id"`
	Status string       `json:"status"`
	Paid   bool         `json:"paid"`
	Amount chargeAmount `json:"amount"`
}

// Charge creates a capture-now payment and returns the processor's reference.
// The Idempotence-Key header makes network retries safe on the processor side.
func (p *httpPaymentProcessor) Charge(payerID string, amount float64, description string) (string, error) {
	body, err := json.Marshal(chargeRequest{
		Amount:      chargeAmount{Value: fmt.Sprintf("%.2f", amount), Currency: "USD"},
		Description: description,
		Capture:     true,
		Metadata:    map[string]string{"payer_id": payerID},
	})
	if err != nil {
		return "", fmt.Errorf("failed to build charge request: %v", err)
	}

	req, err := http.NewRequest(http.MethodPost, p.apiURL, bytes.NewBuffer(body))
	if err != nil {
		return "", fmt.Errorf("failed to build charge request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Idempotence-Key", uuid.New().String())
	req.SetBasicAuth(p.shopID, p.secretKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("payment request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("payment API returned status %d", resp.StatusCode)
	}

	var result chargeResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode payment response: %v", err)
	}
	if !result.Paid {
		return "", fmt.Errorf("payment not confirmed, status %q", result.Status)
	}

	return result.ID, nil
}

// StubPaymentProcessor confirms every charge without calling anything.
// Used when no payment API is configured.
type StubPaymentProcessor struct{}

// Charge returns a synthetic processor reference
func (p *StubPaymentProcessor) Charge(payerID string, amount float64, description string) (string, error) {
	return "stub-" + uuid.New().String(), nil
}
