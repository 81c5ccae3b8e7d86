// Package api holds the simulate request contract and a typed HTTP
// client for the aos-duel API server.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/pefman/aos-duel/internal/roster"
	"github.com/pefman/aos-duel/internal/sim"
	"github.com/pefman/aos-duel/internal/stats"
)

var httpClient = &http.Client{Timeout: 30 * time.Second}

// Simple cache for the unit list to reduce redundant API calls
var (
	unitCache      []roster.UnitRecord
	unitCacheTime  time.Time
	unitCacheTTL   = 5 * time.Minute
	unitCacheMutex sync.RWMutex
)

// SimRequest is the payload for POST /api/simulate. Attacker and
// defender are either names resolved against the server's roster or
// inline definitions; an inline definition wins over a name.
type SimRequest struct {
	Attacker    string             `json:"attacker,omitempty"`
	Defender    string             `json:"defender,omitempty"`
	AttackerDef *roster.UnitRecord `json:"attacker_def,omitempty"`
	DefenderDef *roster.UnitRecord `json:"defender_def,omitempty"`
	Params      sim.Params         `json:"params"`
}

// SimResponse is the reply to a simulate call.
type SimResponse struct {
	Run    stats.RunSummary `json:"run"`
	Result sim.Result       `json:"result"`
}

// Config holds API client configuration
type Config struct {
	BaseURL string
}

type Client struct {
	config Config
}

func NewClient(baseURL string) *Client {
	return &Client{
		config: Config{BaseURL: baseURL},
	}
}

func (c *Client) apiGet(path string, out interface{}) error {
	base := strings.TrimRight(c.config.BaseURL, "/")
	req, _ := http.NewRequestWithContext(context.Background(), http.MethodGet, base+path, nil)
	req.Header.Set("Accept", "application/json")
	resp, err := httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != 200 {
		return fmt.Errorf("api status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) apiPost(path string, in, out interface{}) error {
	base := strings.TrimRight(c.config.BaseURL, "/")
	body, err := json.Marshal(in)
	if err != nil {
		return err
	}
	req, _ := http.NewRequestWithContext(context.Background(), http.MethodPost, base+path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	resp, err := httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != 200 {
		return fmt.Errorf("api status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// FetchUnits returns the server's roster, cached for a few minutes.
func (c *Client) FetchUnits() ([]roster.UnitRecord, error) {
	unitCacheMutex.RLock()
	if unitCache != nil && time.Since(unitCacheTime) < unitCacheTTL {
		cached := unitCache
		unitCacheMutex.RUnlock()
		return cached, nil
	}
	unitCacheMutex.RUnlock()

	var units []roster.UnitRecord
	if err := c.apiGet("/api/units", &units); err != nil {
		return nil, err
	}

	unitCacheMutex.Lock()
	unitCache = units
	unitCacheTime = time.Now()
	unitCacheMutex.Unlock()
	return units, nil
}

// FetchUnit returns one unit definition by name.
func (c *Client) FetchUnit(name string) (roster.UnitRecord, error) {
	var rec roster.UnitRecord
	err := c.apiGet("/api/units/"+url.PathEscape(name), &rec)
	return rec, err
}

// Simulate submits a simulation request and returns the server's reply.
func (c *Client) Simulate(req SimRequest) (SimResponse, error) {
	var resp SimResponse
	err := c.apiPost("/api/simulate", req, &resp)
	return resp, err
}
