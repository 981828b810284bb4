package propfusion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/google/uuid"

	"asp_listings/config"
	"asp_listings/httputil"
	"asp_listings/models"
)

type LeadsClient struct {
	http        *http.Client
	leadsURL    string
	ipLookupURL string
}

func NewLeadsClient(httpClient *http.Client, cfg config.PropFusionConfig) *LeadsClient {
	return &LeadsClient{
		http:        httpClient,
		leadsURL:    cfg.LeadsURL,
		ipLookupURL: cfg.IPLookupURL,
	}
}

// LeadReceipt identifies a submitted lead. Response is whatever the API
// answered with.
type LeadReceipt struct {
	RequestID string
	Response  json.RawMessage
}

// Submit validates the form and posts it as a lead. Nothing is sent when
// validation fails.
func (c *LeadsClient) Submit(ctx context.Context, form models.ContactForm) (*LeadReceipt, error) {
	if err := form.Validate(); err != nil {
		return nil, err
	}

	lead := form.ToLead()
	if ip, err := c.lookupIP(ctx); err != nil {
		log.Printf("Leads: could not get IP address: %v", err)
	} else {
		lead.IPAddress = ip
	}

	body, err := json.Marshal(lead)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.leadsURL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	requestID := uuid.NewString()
	req.Header.Set("accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(httputil.RequestIDHeader, requestID)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("submit lead: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("API call failed with status: %d", resp.StatusCode)
	}

	log.Printf("Leads: lead created for %s (request %s)", lead.Email, requestID)
	receipt := &LeadReceipt{RequestID: requestID}
	if json.Valid(respBody) {
		receipt.Response = respBody
	}
	return receipt, nil
}

func (c *LeadsClient) lookupIP(ctx context.Context) (string, error) {
	if c.ipLookupURL == "" {
		return "", fmt.Errorf("IP lookup disabled")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.ipLookupURL, nil)
	if err != nil {
		return "", err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("IP lookup status %d", resp.StatusCode)
	}

	var result struct {
		IP string `json:"ip"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", err
	}
	return result.IP, nil
}
