package paymentControllers

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"os"
)

// GatewayOrder is the gateway-side order reference the hosted checkout is
// opened against.
type GatewayOrder struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

type gatewayOrderResponse struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Error    *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Client talks to the hosted payment gateway. Amounts always cross the wire
// in the smallest currency unit.
type Client struct {
	keyID     string
	keySecret string
	apiURL    string
	testMode  bool
	http      *http.Client
}

// NewClientFromEnv reads the gateway credentials, test mode included when
// GATEWAY_MODE is sandbox or dev.
func NewClientFromEnv() (*Client, error) {
	keyID := os.Getenv("GATEWAY_KEY_ID")
	keySecret := os.Getenv("GATEWAY_KEY_SECRET")
	apiURL := os.Getenv("GATEWAY_API_URL")
	if keyID == "" || keySecret == "" || apiURL == "" {
		return nil, fmt.Errorf("gateway configuration missing")
	}

	mode := os.Getenv("GATEWAY_MODE")
	return &Client{
		keyID:     keyID,
		keySecret: keySecret,
		apiURL:    apiURL,
		testMode:  mode == "sandbox" || mode == "dev",
		http:      &http.Client{},
	}, nil
}

// ToMinorUnits converts a rupee amount to paise.
func ToMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// CreateOrder registers the amount with the gateway and returns its order
// reference for the hosted checkout.
func (g *Client) CreateOrder(amountMinor int64, currency, receipt string) (*GatewayOrder, error) {
	payload := map[string]interface{}{
		"amount":   amountMinor,
		"currency": currency,
		"receipt":  receipt,
	}
	if g.testMode {
		payload["test"] = 1
	}

	jsonData, _ := json.Marshal(payload)
	req, err := http.NewRequest("POST", g.apiURL+"/orders", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.SetBasicAuth(g.keyID, g.keySecret)

	resp, err := g.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach payment gateway: %v", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gateway API error (%d): %s", resp.StatusCode, string(body))
	}

	var gwResp gatewayOrderResponse
	if err := json.Unmarshal(body, &gwResp); err != nil {
		return nil, fmt.Errorf("failed to parse gateway response: %v", err)
	}
	if gwResp.Error != nil {
		return nil, fmt.Errorf("gateway error: %s", gwResp.Error.Message)
	}
	if gwResp.ID == "" {
		return nil, fmt.Errorf("gateway returned empty order reference")
	}

	return &GatewayOrder{ID: gwResp.ID, Amount: gwResp.Amount, Currency: gwResp.Currency}, nil
}

// VerifySignature checks the checkout callback against the original gateway
// order reference. The expected signature is HMAC-SHA256 of
// "<orderRef>|<paymentID>" under the key secret. An unverifiable response is
// a failure, never a retry state.
func (g *Client) VerifySignature(orderRef, paymentID, signature string) bool {
	return verifySignature(g.keySecret, orderRef, paymentID, signature)
}

func verifySignature(secret, orderRef, paymentID, signature string) bool {
	if orderRef == "" || paymentID == "" || signature == "" {
		return false
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderRef + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
