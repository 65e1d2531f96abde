package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// PayPalProvider takes payments through the PayPal Orders v2 REST API
type PayPalProvider struct {
	BaseURL      string
	ClientID     string
	ClientSecret string
	Currency     string
	client       *http.Client

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

// NewPayPalProvider creates a new PayPal provider
func NewPayPalProvider(baseURL, clientID, clientSecret, currency string) *PayPalProvider {
	return &PayPalProvider{
		BaseURL:      strings.TrimRight(baseURL, "/"),
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Currency:     currency,
		client:       &http.Client{Timeout: 15 * time.Second},
	}
}

func (p *PayPalProvider) Name() string { return "paypal" }

type paypalAmount struct {
	CurrencyCode string `json:"currency_code"`
	Value        string `json:"value"`
}

type paypalPurchaseUnit struct {
	ReferenceID string       `json:"reference_id"`
	Amount      paypalAmount `json:"amount"`
}

type paypalOrderRequest struct {
	Intent        string               `json:"intent"`
	PurchaseUnits []paypalPurchaseUnit `json:"purchase_units"`
}

type paypalOrderResponse struct {
	ID            string `json:"id"`
	Status        string `json:"status"`
	PurchaseUnits []struct {
		Payments struct {
			Captures []struct {
				ID     string `json:"id"`
				Status string `json:"status"`
			} `json:"captures"`
		} `json:"payments"`
	} `json:"purchase_units"`
}

type paypalErrorResponse struct {
	Name    string `json:"name"`
	Message string `json:"message"`
	Details []struct {
		Issue       string `json:"issue"`
		Description string `json:"description"`
	} `json:"details"`
}

// CreateOrder creates a CAPTURE-intent order for the entry fee
func (p *PayPalProvider) CreateOrder(ctx context.Context, contestID string, amount float64) (string, error) {
	body := paypalOrderRequest{
		Intent: "CAPTURE",
		PurchaseUnits: []paypalPurchaseUnit{{
			ReferenceID: contestID,
			Amount: paypalAmount{
				CurrencyCode: p.Currency,
				Value:        decimal.NewFromFloat(amount).StringFixed(2),
			},
		}},
	}

	var order paypalOrderResponse
	status, err := p.do(ctx, http.MethodPost, "/v2/checkout/orders", body, &order)
	if err != nil {
		return "", err
	}
	if status >= 300 || order.ID == "" {
		return "", fmt.Errorf("paypal create order failed with status %d", status)
	}
	return order.ID, nil
}

// Capture captures an approved order. PayPal answers 422 for declined instruments,
// which is reported as an unsuccessful result.
func (p *PayPalProvider) Capture(ctx context.Context, orderID, externalPaymentID string) (*CaptureResult, error) {
	var order paypalOrderResponse
	var failure paypalErrorResponse
	status, err := p.do(ctx, http.MethodPost, "/v2/checkout/orders/"+url.PathEscape(orderID)+"/capture", nil, &order, &failure)
	if err != nil {
		return nil, err
	}

	switch {
	case status == http.StatusUnprocessableEntity:
		reason := failure.Message
		if len(failure.Details) > 0 {
			reason = failure.Details[0].Issue
		}
		return &CaptureResult{Success: false, Reason: reason}, nil
	case status == http.StatusNotFound:
		return nil, ErrUnknownOrder
	case status >= 300:
		return nil, fmt.Errorf("paypal capture failed with status %d", status)
	}

	if order.Status != "COMPLETED" {
		return &CaptureResult{Success: false, Reason: "order status " + order.Status}, nil
	}
	paymentID := externalPaymentID
	if len(order.PurchaseUnits) > 0 && len(order.PurchaseUnits[0].Payments.Captures) > 0 {
		paymentID = order.PurchaseUnits[0].Payments.Captures[0].ID
	}
	return &CaptureResult{Success: true, PaymentID: paymentID}, nil
}

// do sends an authenticated JSON request. The success body decodes into out and, when given,
// a non-2xx body decodes into failure.
func (p *PayPalProvider) do(ctx context.Context, method, path string, body interface{}, out interface{}, failure ...interface{}) (int, error) {
	token, err := p.token(ctx)
	if err != nil {
		return 0, err
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return 0, err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, p.BaseURL+path, reader)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("paypal request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, err
	}
	target := out
	if resp.StatusCode >= 300 {
		if len(failure) == 0 {
			return resp.StatusCode, nil
		}
		target = failure[0]
	}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, target); err != nil {
			return resp.StatusCode, fmt.Errorf("failed to decode paypal response: %w", err)
		}
	}
	return resp.StatusCode, nil
}

// token returns a cached client-credentials access token, fetching a new one when expired
func (p *PayPalProvider) token(ctx context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.accessToken != "" && time.Now().Before(p.tokenExpiry) {
		return p.accessToken, nil
	}
	if p.ClientID == "" {
		return "", ErrMissingClientID
	}

	form := url.Values{"grant_type": {"client_credentials"}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.BaseURL+"/v1/oauth2/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.SetBasicAuth(p.ClientID, p.ClientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("paypal token request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("paypal token request failed with status %d", resp.StatusCode)
	}

	var tokenResp struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil {
		return "", fmt.Errorf("failed to decode paypal token: %w", err)
	}

	p.accessToken = tokenResp.AccessToken
	// refresh a minute early
	p.tokenExpiry = time.Now().Add(time.Duration(tokenResp.ExpiresIn)*time.Second - time.Minute)
	return p.accessToken, nil
}
