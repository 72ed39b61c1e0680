// Package nbrb implements the rate feed port against the National Bank of the
// Republic of Belarus exchange rates API.
package nbrb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/dkazlouski/currency_exchange_app/internal/apperrors"
	"github.com/dkazlouski/currency_exchange_app/internal/core/ports/clients"
	"github.com/shopspring/decimal"
)

// DefaultBaseURL is the production NBRB exchange rates API.
const DefaultBaseURL = "https://api.nbrb.by/exrates"

// feedRate mirrors one record of the NBRB daily rates payload.
type feedRate struct {
	Abbreviation string          `json:"Cur_Abbreviation"`
	Scale        int64           `json:"Cur_Scale"`
	OfficialRate decimal.Decimal `json:"Cur_OfficialRate"`
	Date         string          `json:"Date"`
}

// Client fetches daily rate snapshots over HTTP. It performs exactly one round
// trip per call and leaves retry policy to its callers.
type Client struct {
	baseURL string
	client  *http.Client
}

// New constructs a Client for the given base URL with a bounded request timeout.
// An empty baseURL falls back to DefaultBaseURL.
func New(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// FetchDaily loads the daily rate list for ondate, or for the feed's "today"
// when ondate is nil. Daily quotes use periodicity=0.
func (c *Client) FetchDaily(ctx context.Context, ondate *time.Time) ([]clients.RateRecord, error) {
	params := url.Values{}
	params.Set("periodicity", "0")
	if ondate != nil {
		params.Set("ondate", ondate.Format("2006-01-02"))
	}
	requestURL := fmt.Sprintf("%s/rates?%s", c.baseURL, params.Encode())

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, apperrors.NewExternalServiceError("failed to build rates feed request", err)
	}

	response, err := c.client.Do(request)
	if err != nil {
		return nil, apperrors.NewExternalServiceError("rates feed request failed", err)
	}
	defer response.Body.Close()

	if response.StatusCode < 200 || response.StatusCode > 299 {
		return nil, apperrors.NewExternalServiceError(
			fmt.Sprintf("rates feed returned status %d", response.StatusCode), nil)
	}

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, apperrors.NewExternalServiceError("failed to read rates feed response", err)
	}

	// The feed must answer with a list; a scalar or object payload means the
	// upstream contract is broken and the whole fetch is rejected.
	var feedRates []feedRate
	if err := json.Unmarshal(body, &feedRates); err != nil {
		return nil, apperrors.NewExternalServiceError("unexpected rates feed payload, expected a list", err)
	}

	records := make([]clients.RateRecord, len(feedRates))
	for i, fr := range feedRates {
		records[i] = clients.RateRecord{
			Abbreviation: fr.Abbreviation,
			Scale:        fr.Scale,
			Rate:         fr.OfficialRate,
			Date:         fr.Date,
		}
	}
	return records, nil
}
