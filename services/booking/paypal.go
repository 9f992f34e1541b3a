// File: services/booking/paypal.go
package booking

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// PayPalGateway implements RedirectGateway against the PayPal Orders API.
type PayPalGateway struct {
	APIBase      string
	ClientID     string
	ClientSecret string
	// ReturnBase is the server base URL the return/cancel routes live under.
	ReturnBase string
	HTTPClient *http.Client
}

// NewPayPalGateway builds a gateway; a nil httpClient falls back to the
// default client.
func NewPayPalGateway(apiBase, clientID, clientSecret, returnBase string, httpClient *http.Client) *PayPalGateway {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &PayPalGateway{
		APIBase:      apiBase,
		ClientID:     clientID,
		ClientSecret: clientSecret,
		ReturnBase:   returnBase,
		HTTPClient:   httpClient,
	}
}

type payPalOrder struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Links  []struct {
		Href string `json:"href"`
		Rel  string `json:"rel"`
	} `json:"links"`
}

type payPalTokenResponse struct {
	AccessToken string `json:"access_token"`
}

func (g *PayPalGateway) accessToken(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		fmt.Sprintf("%s/v1/oauth2/token", g.APIBase),
		strings.NewReader("grant_type=client_credentials"))
	if err != nil {
		return "", err
	}
	req.SetBasicAuth(g.ClientID, g.ClientSecret)
	req.Header.Add("Content-Type", "application/x-www-form-urlencoded")

	resp, err := g.HTTPClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to get access token, status: %s", resp.Status)
	}

	var tokenResp payPalTokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil {
		return "", err
	}
	return tokenResp.AccessToken, nil
}

// CreateOrder creates a CAPTURE order carrying the booking ID in the return
// and cancel URLs, and returns the approval link the browser must follow.
func (g *PayPalGateway) CreateOrder(ctx context.Context, amount float64, currency, bookingID string) (string, string, error) {
	token, err := g.accessToken(ctx)
	if err != nil {
		return "", "", err
	}

	payload := map[string]interface{}{
		"intent": "CAPTURE",
		"purchase_units": []map[string]interface{}{
			{
				"reference_id": bookingID,
				"amount": map[string]string{
					"currency_code": currency,
					"value":         fmt.Sprintf("%.2f", amount),
				},
			},
		},
		"application_context": map[string]string{
			"return_url": fmt.Sprintf("%s/api/payments/paypal/return?bookingId=%s", g.ReturnBase, url.QueryEscape(bookingID)),
			"cancel_url": fmt.Sprintf("%s/api/payments/paypal/cancel?bookingId=%s", g.ReturnBase, url.QueryEscape(bookingID)),
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		fmt.Sprintf("%s/v2/checkout/orders", g.APIBase), bytes.NewBuffer(body))
	if err != nil {
		return "", "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := g.HTTPClient.Do(req)
	if err != nil {
		return "", "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		respBody, _ := io.ReadAll(resp.Body)
		return "", "", fmt.Errorf("failed to create order: %s", string(respBody))
	}

	var order payPalOrder
	if err := json.NewDecoder(resp.Body).Decode(&order); err != nil {
		return "", "", err
	}

	approvalURL := ""
	for _, link := range order.Links {
		if link.Rel == "approve" {
			approvalURL = link.Href
			break
		}
	}
	if approvalURL == "" {
		return "", "", fmt.Errorf("order %s has no approval link", order.ID)
	}
	return order.ID, approvalURL, nil
}

// CaptureOrder captures an approved order (phase 2).
func (g *PayPalGateway) CaptureOrder(ctx context.Context, orderID string) (string, error) {
	token, err := g.accessToken(ctx)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		fmt.Sprintf("%s/v2/checkout/orders/%s/capture", g.APIBase, orderID), nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := g.HTTPClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("failed to capture order: %s", string(respBody))
	}

	var order payPalOrder
	if err := json.NewDecoder(resp.Body).Decode(&order); err != nil {
		return "", err
	}
	if order.Status != "COMPLETED" {
		return "", fmt.Errorf("order %s not completed: %s", orderID, order.Status)
	}
	return order.ID, nil
}
